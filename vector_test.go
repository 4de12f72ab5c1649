package hakoniwa

import (
	"math"
	"testing"
)

func TestVec2Ops(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	b := Vec2{X: 3, Y: -1}

	if got := a.Add(b); got != (Vec2{X: 4, Y: 1}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Vec2{X: -2, Y: 3}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != (Vec2{X: 2, Y: 4}) {
		t.Errorf("Scale = %+v", got)
	}
	if got := (Vec2{X: 3, Y: 4}).Length(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Length = %v", got)
	}
	if got := a.Lerp(b, 0.5); got != (Vec2{X: 2, Y: 0.5}) {
		t.Errorf("Lerp = %+v", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp wrong")
	}
}

func TestLerp(t *testing.T) {
	if Lerp(0, 10, 0.3) != 3 {
		t.Errorf("Lerp = %v", Lerp(0, 10, 0.3))
	}
}

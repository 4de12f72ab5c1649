package hakoniwa

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
)

// hookComp records every hook invocation and can be told to fail.
type hookComp struct {
	calls []string

	awakeErr  error
	startErr  error
	enableErr error
}

func (h *hookComp) Awake(ctx context.Context) error {
	h.calls = append(h.calls, "awake")
	return h.awakeErr
}

func (h *hookComp) Start(ctx context.Context) error {
	h.calls = append(h.calls, "start")
	return h.startErr
}

func (h *hookComp) Update(dt float64) {
	h.calls = append(h.calls, "update")
}

func (h *hookComp) OnEnable() error {
	h.calls = append(h.calls, "enable")
	return h.enableErr
}

func (h *hookComp) OnDisable() error {
	h.calls = append(h.calls, "disable")
	return nil
}

func (h *hookComp) OnDestroy() {
	h.calls = append(h.calls, "destroy")
}

func (h *hookComp) count(name string) int {
	n := 0
	for _, c := range h.calls {
		if c == name {
			n++
		}
	}
	return n
}

func TestLifecycleHappyPath(t *testing.T) {
	h := &hookComp{}
	l := NewLifecycle(h)
	ctx := context.Background()

	if l.State() != StateUninitialized {
		t.Fatalf("fresh state = %s", l.State())
	}
	if err := l.Awake(ctx); err != nil {
		t.Fatal(err)
	}
	if l.State() != StateAwake {
		t.Errorf("state after Awake = %s", l.State())
	}
	if err := l.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if l.State() != StateEnabled {
		t.Errorf("state after Start = %s", l.State())
	}
	l.Update(0.016)

	want := []string{"awake", "start", "enable", "update"}
	if len(h.calls) != len(want) {
		t.Fatalf("calls = %v", h.calls)
	}
	for i := range want {
		if h.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", h.calls, want)
		}
	}
}

func TestUpdateBeforeStartNeverDispatches(t *testing.T) {
	h := &hookComp{}
	l := NewLifecycle(h)

	l.Update(0.016)
	if err := l.Awake(context.Background()); err != nil {
		t.Fatal(err)
	}
	l.Update(0.016)

	if h.count("update") != 0 {
		t.Errorf("update dispatched before start completed: %v", h.calls)
	}
}

func TestAwakeFailureLeavesStateUnchanged(t *testing.T) {
	fail := errors.New("boom")
	h := &hookComp{awakeErr: fail}
	l := NewLifecycle(h)

	if err := l.Awake(context.Background()); !errors.Is(err, fail) {
		t.Fatalf("expected hook error surfaced, got %v", err)
	}
	if l.State() != StateUninitialized {
		t.Errorf("failed transition committed: %s", l.State())
	}
	// Retry after clearing the fault succeeds.
	h.awakeErr = nil
	if err := l.Awake(context.Background()); err != nil {
		t.Fatal(err)
	}
	if l.State() != StateAwake {
		t.Errorf("retry did not commit: %s", l.State())
	}
}

func TestStartFailureStaysAwake(t *testing.T) {
	fail := errors.New("boom")
	h := &hookComp{startErr: fail}
	l := NewLifecycle(h)
	ctx := context.Background()

	if err := l.Awake(ctx); err != nil {
		t.Fatal(err)
	}
	if err := l.Start(ctx); !errors.Is(err, fail) {
		t.Fatalf("expected hook error surfaced, got %v", err)
	}
	if l.State() != StateAwake {
		t.Errorf("failed Start committed: %s", l.State())
	}
}

func TestStartBeforeAwakeErrors(t *testing.T) {
	l := NewLifecycle(&hookComp{})
	if err := l.Start(context.Background()); err == nil {
		t.Error("Start before Awake should error")
	}
}

func TestEnableDisableRoundTrip(t *testing.T) {
	h := &hookComp{}
	l := NewLifecycle(h)
	ctx := context.Background()
	if err := l.Awake(ctx); err != nil {
		t.Fatal(err)
	}
	if err := l.Start(ctx); err != nil {
		t.Fatal(err)
	}

	if err := l.SetEnabled(false); err != nil {
		t.Fatal(err)
	}
	if l.State() != StateDisabled {
		t.Errorf("state = %s", l.State())
	}
	l.Update(0.016) // disabled: no dispatch
	if err := l.SetEnabled(true); err != nil {
		t.Fatal(err)
	}
	if l.State() != StateEnabled {
		t.Errorf("state = %s", l.State())
	}
	// Same value again is a no-op.
	if err := l.SetEnabled(true); err != nil {
		t.Fatal(err)
	}

	if h.count("disable") != 1 || h.count("enable") != 2 {
		// one enable from Start, one from re-enabling
		t.Errorf("hook counts wrong: %v", h.calls)
	}
	if h.count("update") != 0 {
		t.Error("update dispatched while disabled")
	}
}

func TestUpdatePanicSuppressed(t *testing.T) {
	l := NewLifecycle(&panickyComp{})
	l.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()
	if err := l.Awake(ctx); err != nil {
		t.Fatal(err)
	}
	if err := l.Start(ctx); err != nil {
		t.Fatal(err)
	}
	// Must not panic through to the frame loop.
	l.Update(0.016)
	l.Update(0.016)
}

type panickyComp struct{}

func (p *panickyComp) Update(dt float64) { panic("bad component") }

func TestDestroyIdempotentAndOrdered(t *testing.T) {
	h := &hookComp{}
	l := NewLifecycle(h)
	var order []string
	l.AddCleanup(func() { order = append(order, "first") })
	l.AddCleanup(func() { order = append(order, "second") })

	l.Destroy()
	l.Destroy() // second call is a no-op

	if h.count("destroy") != 1 {
		t.Errorf("OnDestroy ran %d times", h.count("destroy"))
	}
	// Cleanups run LIFO, before OnDestroy.
	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("cleanup order = %v", order)
	}
	if l.State() != StateDestroyed {
		t.Errorf("state = %s", l.State())
	}
}

func TestDestroyedComponentFailsFast(t *testing.T) {
	l := NewLifecycle(&hookComp{})
	l.Destroy()

	// Reset is a documented no-op on a destroyed component.
	l.Reset()
	if l.State() != StateDestroyed {
		t.Error("Reset revived a destroyed component")
	}

	defer func() {
		if recover() == nil {
			t.Error("SetEnabled on destroyed component should panic")
		}
	}()
	_ = l.SetEnabled(true)
}

func TestResetAllowsReinitialization(t *testing.T) {
	h := &hookComp{}
	l := NewLifecycle(h)
	ctx := context.Background()
	if err := l.Awake(ctx); err != nil {
		t.Fatal(err)
	}
	l.Reset()
	if l.State() != StateUninitialized {
		t.Fatalf("state after Reset = %s", l.State())
	}
	if err := l.Awake(ctx); err != nil {
		t.Fatal(err)
	}
	if h.count("awake") != 2 {
		t.Errorf("awake ran %d times", h.count("awake"))
	}
}

func TestConcurrentAwakeConverges(t *testing.T) {
	h := &hookComp{}
	l := NewLifecycle(h)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Awake(context.Background())
		}()
	}
	wg.Wait()

	if l.State() != StateAwake {
		t.Errorf("state = %s", l.State())
	}
	if h.count("awake") != 1 {
		t.Errorf("awake hook ran %d times", h.count("awake"))
	}
}

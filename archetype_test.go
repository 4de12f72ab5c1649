package hakoniwa

import "testing"

type compA struct{ V int }
type compB struct{ S string }

func testRegistry() *Registry {
	r := NewRegistry()
	r.Register("A", func() Component { return &compA{} })
	r.Register("B", func() Component { return &compB{} })
	return r
}

func mustMask(t *testing.T, r *Registry, names ...ComponentTypeID) BitMask {
	t.Helper()
	m, err := r.MaskOf(names...)
	if err != nil {
		t.Fatalf("MaskOf(%v): %v", names, err)
	}
	return m
}

func TestArchetypeIDIsOrderSignificant(t *testing.T) {
	r := testRegistry()
	ab := NewArchetype([]ComponentTypeID{"A", "B"}, mustMask(t, r, "A", "B"), r)
	ba := NewArchetype([]ComponentTypeID{"B", "A"}, mustMask(t, r, "B", "A"), r)

	if ab.ID() != "A|B" {
		t.Errorf("expected id A|B, got %q", ab.ID())
	}
	if ba.ID() != "B|A" {
		t.Errorf("expected id B|A, got %q", ba.ID())
	}
	// Same component set, identical masks, distinct identities.
	if !ab.Mask().Equals(ba.Mask()) {
		t.Error("masks should be identical")
	}
	if ab.ID() == ba.ID() {
		t.Error("ids must differ")
	}
}

func TestArchetypeMaskMismatchPanics(t *testing.T) {
	r := testRegistry()
	wrong := mustMask(t, r, "B")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for mask/signature mismatch")
		}
	}()
	NewArchetype([]ComponentTypeID{"A"}, wrong, r)
}

func TestArchetypeAddAndGet(t *testing.T) {
	r := testRegistry()
	a := NewArchetype([]ComponentTypeID{"A", "B"}, mustMask(t, r, "A", "B"), r)

	e := Entity{ID: 1, Version: 1}
	inst := &compA{V: 42}
	row := a.AddEntity(e, map[ComponentTypeID]Component{"A": inst})
	if row != 0 {
		t.Errorf("expected row 0, got %d", row)
	}
	if a.EntityCount() != 1 {
		t.Errorf("expected 1 entity, got %d", a.EntityCount())
	}
	if got := a.Component(e, "A"); got != Component(inst) {
		t.Error("supplied instance not stored")
	}
	// B was not supplied: the registry factory fills the slot.
	if b, ok := a.Component(e, "B").(*compB); !ok || b == nil {
		t.Error("missing component not default-constructed")
	}
	if a.Component(e, "Missing") != nil {
		t.Error("unknown type should return nil, not panic")
	}
	if a.Component(Entity{ID: 9, Version: 1}, "A") != nil {
		t.Error("unknown entity should return nil, not panic")
	}
}

func TestArchetypeSwapRemoval(t *testing.T) {
	r := testRegistry()
	a := NewArchetype([]ComponentTypeID{"A"}, mustMask(t, r, "A"), r)

	e1 := Entity{ID: 1, Version: 1}
	e2 := Entity{ID: 2, Version: 1}
	e3 := Entity{ID: 3, Version: 1}
	a.AddEntity(e1, map[ComponentTypeID]Component{"A": &compA{V: 1}})
	a.AddEntity(e2, map[ComponentTypeID]Component{"A": &compA{V: 2}})
	a.AddEntity(e3, map[ComponentTypeID]Component{"A": &compA{V: 3}})

	removed := a.RemoveEntity(e1)
	if got := removed["A"].(*compA).V; got != 1 {
		t.Errorf("removed wrong component: %d", got)
	}
	if a.EntityCount() != 2 {
		t.Errorf("expected 2 entities after removal, got %d", a.EntityCount())
	}
	// Last row swapped into the freed slot; storage stays dense.
	if a.Entities()[0] != e3 {
		t.Errorf("expected e3 in row 0, got %+v", a.Entities()[0])
	}
	// Row alignment: every surviving entity still reads its own data.
	if got := a.Component(e3, "A").(*compA).V; got != 3 {
		t.Errorf("e3 data corrupted after swap: %d", got)
	}
	if got := a.Component(e2, "A").(*compA).V; got != 2 {
		t.Errorf("e2 data corrupted after swap: %d", got)
	}
	if a.HasEntity(e1) {
		t.Error("removed entity still present")
	}
}

func TestArchetypeRemoveAbsentIsNoop(t *testing.T) {
	r := testRegistry()
	a := NewArchetype([]ComponentTypeID{"A"}, mustMask(t, r, "A"), r)
	a.AddEntity(Entity{ID: 1, Version: 1}, nil)

	removed := a.RemoveEntity(Entity{ID: 99, Version: 1})
	if len(removed) != 0 {
		t.Errorf("expected empty map, got %v", removed)
	}
	if a.EntityCount() != 1 {
		t.Error("no-op removal changed entity count")
	}
}

func TestArchetypeRepeatedAddRemoveKeepsAlignment(t *testing.T) {
	r := testRegistry()
	a := NewArchetype([]ComponentTypeID{"A", "B"}, mustMask(t, r, "A", "B"), r)

	for round := 0; round < 5; round++ {
		ents := make([]Entity, 8)
		for i := range ents {
			ents[i] = Entity{ID: uint32(round*100 + i), Version: 1}
			a.AddEntity(ents[i], map[ComponentTypeID]Component{
				"A": &compA{V: i},
				"B": &compB{S: string(rune('a' + i))},
			})
		}
		// Remove every other entity, then verify the rest.
		for i := 0; i < len(ents); i += 2 {
			a.RemoveEntity(ents[i])
		}
		for i := 1; i < len(ents); i += 2 {
			av := a.Component(ents[i], "A").(*compA).V
			bs := a.Component(ents[i], "B").(*compB).S
			if av != i || bs != string(rune('a'+i)) {
				t.Fatalf("round %d: entity %d misaligned: A=%d B=%q", round, i, av, bs)
			}
		}
		for i := 1; i < len(ents); i += 2 {
			a.RemoveEntity(ents[i])
		}
		if a.EntityCount() != 0 {
			t.Fatalf("round %d: expected empty archetype, got %d", round, a.EntityCount())
		}
	}
}

func TestEmptyArchetype(t *testing.T) {
	r := testRegistry()
	a := NewArchetype(nil, nil, r)

	if a.ID() != EmptyArchetypeID {
		t.Errorf("expected id EMPTY, got %q", a.ID())
	}
	if !a.Mask().IsEmpty() {
		t.Error("empty archetype mask should be empty")
	}
	e := Entity{ID: 5, Version: 1}
	a.AddEntity(e, nil)
	if a.EntityCount() != 1 || !a.HasEntity(e) {
		t.Error("empty archetype should still track entities")
	}
	removed := a.RemoveEntity(e)
	if len(removed) != 0 {
		t.Errorf("expected no components, got %v", removed)
	}
	if a.EntityCount() != 0 || a.HasEntity(e) {
		t.Error("removal from empty archetype failed")
	}
}

func TestArchetypeEdges(t *testing.T) {
	r := testRegistry()
	a := NewArchetype([]ComponentTypeID{"A"}, mustMask(t, r, "A"), r)

	if _, ok := a.Edge(EdgeAdd("B")); ok {
		t.Error("fresh archetype should have no edges")
	}
	a.SetEdge(EdgeAdd("B"), "A|B")
	if id, ok := a.Edge(EdgeAdd("B")); !ok || id != "A|B" {
		t.Errorf("edge not memoized: %q, %v", id, ok)
	}
}

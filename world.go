package hakoniwa

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrInvalidEntity is returned for operations on a destroyed or stale
	// entity handle.
	ErrInvalidEntity = errors.New("hakoniwa: invalid entity")
	// ErrComponentPresent is returned by AddComponent when the entity already
	// carries the component type. Silently duplicating the bit in the
	// signature is never an option.
	ErrComponentPresent = errors.New("hakoniwa: component already present")
	// ErrDuplicateType is returned by CreateEntity when the same component
	// type appears twice in the initial set.
	ErrDuplicateType = errors.New("hakoniwa: duplicate component type")
)

// World owns the archetype graph: every archetype keyed by id, the entity
// location index, the query cache, and the registry that assigned the
// component bits. All mutation is synchronous and non-reentrant; a caller
// must not mutate the World from inside iteration over entities or query
// results. One World is one logical simulation thread.
type World struct {
	registry      *Registry
	archetypes    map[string]*Archetype
	archetypeList []*Archetype // creation order, drives stable query results

	metas       []entityMeta
	freeIDs     []uint32
	nextVersion uint32

	cache            map[queryKey][]*Archetype
	archetypeVersion uint32

	events    *EventBus
	resources *Resources
	systems   []System
	logger    *slog.Logger
}

// WorldOption configures a World at construction.
type WorldOption func(*World)

// WithCapacity preallocates the entity index for n entities.
func WithCapacity(n int) WorldOption {
	return func(w *World) {
		w.metas = make([]entityMeta, 0, n)
		w.freeIDs = make([]uint32, 0, n)
	}
}

// WithLogger sets the logger used for world diagnostics and suppressed
// update-hook failures.
func WithLogger(l *slog.Logger) WorldOption {
	return func(w *World) { w.logger = l }
}

// NewWorld creates a World over the given registry. The empty archetype is
// created eagerly so entities without components always have a home.
func NewWorld(registry *Registry, opts ...WorldOption) *World {
	w := &World{
		registry:    registry,
		archetypes:  make(map[string]*Archetype, 16),
		cache:       make(map[queryKey][]*Archetype),
		events:      NewEventBus(),
		resources:   NewResources(),
		nextVersion: 1,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.getOrCreateArchetype(nil, nil)
	return w
}

// Registry returns the component registry the World was built over.
func (w *World) Registry() *Registry { return w.registry }

// Events returns the World's event bus. Structural events (entity created or
// destroyed, component added or removed, archetype created) are published
// here.
func (w *World) Events() *EventBus { return w.events }

// Resources returns the World's type-keyed resource store.
func (w *World) Resources() *Resources { return w.resources }

// CreateEntity creates an entity with the supplied initial components. The
// signature order is the supplied order; ["A","B"] and ["B","A"] land in
// different archetypes. The same type twice is an error, as is a type with no
// registered bit.
func (w *World) CreateEntity(components ...TypedComponent) (Entity, error) {
	signature := make([]ComponentTypeID, 0, len(components))
	byType := make(map[ComponentTypeID]Component, len(components))
	for _, tc := range components {
		if _, ok := byType[tc.Type]; ok {
			return Entity{}, fmt.Errorf("%w: %q", ErrDuplicateType, tc.Type)
		}
		signature = append(signature, tc.Type)
		byType[tc.Type] = tc.Value
	}
	mask, err := w.registry.MaskOf(signature...)
	if err != nil {
		return Entity{}, err
	}

	arch := w.getOrCreateArchetype(signature, mask)
	e := w.allocEntity()
	row := arch.AddEntity(e, byType)
	w.metas[e.ID] = entityMeta{arch: arch, row: row, version: e.Version}

	Publish(w.events, EntityCreated{Entity: e, ArchetypeID: arch.ID()})
	return e, nil
}

// AddComponent migrates the entity to the archetype whose signature is the
// current one with name appended, carrying every existing instance plus the
// new one. Adding a type the entity already has returns ErrComponentPresent.
// A nil instance is filled from the registry factory.
//
// The move is copy-then-delete: the entity is appended to the destination
// before its source row is released, so no data is lost even though the two
// steps are distinct. Both steps run in one uninterruptible synchronous
// span.
func (w *World) AddComponent(e Entity, name ComponentTypeID, c Component) error {
	meta, ok := w.lookup(e)
	if !ok {
		return ErrInvalidEntity
	}
	bit, ok := w.registry.BitOf(name)
	if !ok {
		return fmt.Errorf("hakoniwa: component type %q not registered", name)
	}
	src := meta.arch
	if src.Mask().Has(bit) {
		return fmt.Errorf("%w: %q on entity %d", ErrComponentPresent, name, e.ID)
	}

	dst := w.edgeTarget(src, EdgeAdd(name), func() ([]ComponentTypeID, BitMask) {
		sig := make([]ComponentTypeID, 0, len(src.Signature())+1)
		sig = append(sig, src.Signature()...)
		sig = append(sig, name)
		return sig, src.Mask().Set(bit)
	})
	dst.SetEdge(EdgeRemove(name), src.ID())

	staged := src.componentsAt(meta.row)
	staged[name] = c
	w.moveEntity(e, src, dst, staged)

	Publish(w.events, ComponentAdded{Entity: e, Type: name, FromID: src.ID(), ToID: dst.ID()})
	return nil
}

// RemoveComponent migrates the entity to the archetype whose signature is
// the current one with name removed, preserving the relative order of the
// remaining types. The removed instance is dropped. Removing a type the
// entity does not have is a no-op, not an error.
func (w *World) RemoveComponent(e Entity, name ComponentTypeID) error {
	meta, ok := w.lookup(e)
	if !ok {
		return ErrInvalidEntity
	}
	bit, ok := w.registry.BitOf(name)
	if !ok {
		return fmt.Errorf("hakoniwa: component type %q not registered", name)
	}
	src := meta.arch
	if !src.Mask().Has(bit) {
		return nil
	}

	dst := w.edgeTarget(src, EdgeRemove(name), func() ([]ComponentTypeID, BitMask) {
		sig := make([]ComponentTypeID, 0, len(src.Signature())-1)
		for _, t := range src.Signature() {
			if t != name {
				sig = append(sig, t)
			}
		}
		return sig, src.Mask().Unset(bit)
	})
	dst.SetEdge(EdgeAdd(name), src.ID())

	staged := src.componentsAt(meta.row)
	delete(staged, name)
	w.moveEntity(e, src, dst, staged)

	Publish(w.events, ComponentRemoved{Entity: e, Type: name, FromID: src.ID(), ToID: dst.ID()})
	return nil
}

// DestroyEntity removes the entity's row and index entry and recycles its
// ID. Destroying a dead or stale handle is a no-op.
func (w *World) DestroyEntity(e Entity) {
	meta, ok := w.lookup(e)
	if !ok {
		return
	}
	archID := meta.arch.ID()
	_, moved := meta.arch.removeRow(meta.row)
	if moved != (Entity{}) {
		w.metas[moved.ID].row = meta.row
	}
	w.metas[e.ID] = entityMeta{version: 0, row: -1}
	w.freeIDs = append(w.freeIDs, e.ID)

	Publish(w.events, EntityDestroyed{Entity: e, ArchetypeID: archID})
}

// ComponentOf returns the entity's instance of the given type, or nil when
// the handle is stale or the type is absent.
func (w *World) ComponentOf(e Entity, name ComponentTypeID) Component {
	meta, ok := w.lookup(e)
	if !ok {
		return nil
	}
	pool := meta.arch.Pool(name)
	if pool == nil {
		return nil
	}
	return pool[meta.row]
}

// HasComponent reports whether the entity currently carries the type.
func (w *World) HasComponent(e Entity, name ComponentTypeID) bool {
	meta, ok := w.lookup(e)
	if !ok {
		return false
	}
	bit, ok := w.registry.BitOf(name)
	return ok && meta.arch.Mask().Has(bit)
}

// IsValid reports whether the handle refers to a live entity.
func (w *World) IsValid(e Entity) bool {
	_, ok := w.lookup(e)
	return ok
}

// Location returns the entity's current archetype and row. Rows move on
// swap-removal; do not cache them across structural changes.
func (w *World) Location(e Entity) (*Archetype, int, bool) {
	meta, ok := w.lookup(e)
	if !ok {
		return nil, 0, false
	}
	return meta.arch, meta.row, true
}

// Archetype returns the archetype with the given order-significant id.
func (w *World) Archetype(id string) (*Archetype, bool) {
	a, ok := w.archetypes[id]
	return a, ok
}

// Archetypes returns all archetypes in creation order. The slice is shared;
// callers must not mutate it.
func (w *World) Archetypes() []*Archetype { return w.archetypeList }

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return len(w.metas) - len(w.freeIDs)
}

// lookup resolves a handle against the location index.
func (w *World) lookup(e Entity) (entityMeta, bool) {
	if int(e.ID) >= len(w.metas) {
		return entityMeta{}, false
	}
	meta := w.metas[e.ID]
	if meta.version == 0 || meta.version != e.Version {
		return entityMeta{}, false
	}
	return meta, true
}

// allocEntity pops a recycled ID or extends the index.
func (w *World) allocEntity() Entity {
	var id uint32
	if n := len(w.freeIDs); n > 0 {
		id = w.freeIDs[n-1]
		w.freeIDs = w.freeIDs[:n-1]
	} else {
		id = uint32(len(w.metas))
		w.metas = append(w.metas, entityMeta{})
	}
	v := w.nextVersion
	w.nextVersion++
	return Entity{ID: id, Version: v}
}

// edgeTarget resolves a migration destination through the source archetype's
// edge cache, synthesizing the destination on a miss. synth returns the
// destination's ordered signature and mask.
func (w *World) edgeTarget(src *Archetype, key string, synth func() ([]ComponentTypeID, BitMask)) *Archetype {
	if id, ok := src.Edge(key); ok {
		if dst, ok := w.archetypes[id]; ok {
			return dst
		}
	}
	sig, mask := synth()
	dst := w.getOrCreateArchetype(sig, mask)
	src.SetEdge(key, dst.ID())
	return dst
}

// moveEntity migrates the entity from src to dst with the staged component
// set: append to the destination first, then release the source row, fixing
// the index entry of whichever entity the swap displaced.
func (w *World) moveEntity(e Entity, src, dst *Archetype, staged map[ComponentTypeID]Component) {
	oldRow := w.metas[e.ID].row
	newRow := dst.AddEntity(e, staged)
	_, moved := src.removeRow(oldRow)
	if moved != (Entity{}) {
		w.metas[moved.ID].row = oldRow
	}
	w.metas[e.ID].arch = dst
	w.metas[e.ID].row = newRow
}

// getOrCreateArchetype finds the archetype for the exact ordered signature,
// creating and registering it on a miss. Creation is the structural change
// that invalidates every cached query.
func (w *World) getOrCreateArchetype(signature []ComponentTypeID, mask BitMask) *Archetype {
	id := ArchetypeID(signature)
	if a, ok := w.archetypes[id]; ok {
		return a
	}
	a := NewArchetype(signature, mask, w.registry)
	w.archetypes[id] = a
	w.archetypeList = append(w.archetypeList, a)
	w.archetypeVersion++
	w.invalidateQueries()
	w.logger.Debug("archetype created", "id", id, "mask", mask.Key())
	Publish(w.events, ArchetypeCreated{ID: id})
	return a
}

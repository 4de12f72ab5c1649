package hakoniwa

import (
	"fmt"
	"strings"
)

// EmptyArchetypeID is the id of the archetype with no components.
const EmptyArchetypeID = "EMPTY"

// ArchetypeID derives the textual identity of an ordered signature. Identity
// is order-significant: ["A","B"] and ["B","A"] are distinct archetypes even
// though their masks are identical. Edge caching and id-based lookups depend
// on this, so it must not be normalized to a set.
func ArchetypeID(signature []ComponentTypeID) string {
	if len(signature) == 0 {
		return EmptyArchetypeID
	}
	parts := make([]string, len(signature))
	for i, name := range signature {
		parts[i] = string(name)
	}
	return strings.Join(parts, "|")
}

// EdgeAdd and EdgeRemove build the transition keys stored in an archetype's
// edge map.
func EdgeAdd(name ComponentTypeID) string    { return "add:" + string(name) }
func EdgeRemove(name ComponentTypeID) string { return "remove:" + string(name) }

// Archetype is a dense columnar store for all entities sharing one exact
// ordered component signature. Row i of every pool belongs to entities[i];
// that alignment is the structural invariant every mutation preserves.
//
// Archetypes do not track entity locations themselves. The World's entity
// index is the single source of truth for (archetype, row) and is updated on
// every swap-removal.
type Archetype struct {
	id        string
	signature []ComponentTypeID
	mask      BitMask
	entities  []Entity
	pools     map[ComponentTypeID][]Component
	edges     map[string]string
	registry  *Registry
}

// NewArchetype creates an empty archetype for the given ordered signature.
// The supplied mask must be exactly the OR of the registry bits of the
// signature's types; a mismatch would corrupt every downstream query, so it
// panics rather than degrade.
func NewArchetype(signature []ComponentTypeID, mask BitMask, registry *Registry) *Archetype {
	sig := make([]ComponentTypeID, len(signature))
	copy(sig, signature)

	want, err := registry.MaskOf(sig...)
	if err != nil {
		panic(fmt.Sprintf("hakoniwa: archetype signature %v: %v", sig, err))
	}
	if !mask.Equals(want) {
		panic(fmt.Sprintf("hakoniwa: archetype mask %s does not match signature %v (want %s)",
			mask.Key(), sig, want.Key()))
	}

	pools := make(map[ComponentTypeID][]Component, len(sig))
	for _, name := range sig {
		pools[name] = nil
	}
	return &Archetype{
		id:        ArchetypeID(sig),
		signature: sig,
		mask:      mask.clone(),
		pools:     pools,
		edges:     make(map[string]string),
		registry:  registry,
	}
}

// ID returns the order-significant textual identity of the archetype.
func (a *Archetype) ID() string { return a.id }

// Signature returns the ordered component type list. The slice is shared;
// callers must not mutate it.
func (a *Archetype) Signature() []ComponentTypeID { return a.signature }

// Mask returns the archetype's component bitmask.
func (a *Archetype) Mask() BitMask { return a.mask }

// EntityCount returns the number of stored entities.
func (a *Archetype) EntityCount() int { return len(a.entities) }

// Entities returns the dense entity row list. The slice is shared and is
// reordered by swap-removal; iterate a copy if removals may happen mid-loop.
func (a *Archetype) Entities() []Entity { return a.entities }

// Pool returns the dense component column for the given type, or nil when
// the archetype's signature does not contain it.
func (a *Archetype) Pool(name ComponentTypeID) []Component { return a.pools[name] }

// AddEntity appends a row for the entity. Every type in the signature takes
// the supplied instance when present, otherwise a default instance from the
// registry factory. Returns the new row index.
//
// Callers are expected not to add an entity twice; the archetype does not
// check, but pool alignment is preserved regardless.
func (a *Archetype) AddEntity(e Entity, components map[ComponentTypeID]Component) int {
	row := len(a.entities)
	a.entities = append(a.entities, e)
	for _, name := range a.signature {
		c, ok := components[name]
		if !ok || c == nil {
			c = a.registry.New(name)
		}
		a.pools[name] = append(a.pools[name], c)
	}
	return row
}

// RemoveEntity removes the entity's row by swap-removal and returns its
// components keyed by type. Removing an absent entity is not an error: it
// returns an empty map and changes nothing.
func (a *Archetype) RemoveEntity(e Entity) map[ComponentTypeID]Component {
	row := a.rowOf(e)
	if row < 0 {
		return map[ComponentTypeID]Component{}
	}
	removed, _ := a.removeRow(row)
	return removed
}

// removeRow removes the given row, swapping the last row into its place to
// keep storage dense. It returns the removed components and the entity that
// was moved into the freed slot (the zero Entity when the removed row was the
// last one). The World uses the moved entity to fix its index.
func (a *Archetype) removeRow(row int) (map[ComponentTypeID]Component, Entity) {
	last := len(a.entities) - 1
	removed := make(map[ComponentTypeID]Component, len(a.signature))
	var moved Entity
	for _, name := range a.signature {
		pool := a.pools[name]
		removed[name] = pool[row]
		pool[row] = pool[last]
		pool[last] = nil
		a.pools[name] = pool[:last]
	}
	if row < last {
		moved = a.entities[last]
		a.entities[row] = moved
	}
	a.entities = a.entities[:last]
	return removed, moved
}

// Component returns the entity's instance of the given type, or nil when the
// entity is absent or the archetype does not contain the type. Neither case
// is exceptional in a per-frame system.
func (a *Archetype) Component(e Entity, name ComponentTypeID) Component {
	pool, ok := a.pools[name]
	if !ok {
		return nil
	}
	row := a.rowOf(e)
	if row < 0 {
		return nil
	}
	return pool[row]
}

// HasEntity reports whether the entity currently has a row here.
func (a *Archetype) HasEntity(e Entity) bool {
	return a.rowOf(e) >= 0
}

// Edge returns the cached target archetype id for a transition key.
func (a *Archetype) Edge(key string) (string, bool) {
	id, ok := a.edges[key]
	return id, ok
}

// SetEdge memoizes the target archetype id for a transition key. Edges are
// written by the World during migration, not by the archetype itself.
func (a *Archetype) SetEdge(key, targetID string) {
	a.edges[key] = targetID
}

// componentsAt copies the row's components into a fresh map, used by the
// World to stage a migration.
func (a *Archetype) componentsAt(row int) map[ComponentTypeID]Component {
	out := make(map[ComponentTypeID]Component, len(a.signature)+1)
	for _, name := range a.signature {
		out[name] = a.pools[name][row]
	}
	return out
}

func (a *Archetype) rowOf(e Entity) int {
	for i, other := range a.entities {
		if other == e {
			return i
		}
	}
	return -1
}

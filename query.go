package hakoniwa

// queryKey identifies one cached query by the canonical keys of its required
// and excluded masks.
type queryKey struct {
	required string
	excluded string
}

// Query returns every archetype whose mask contains all required bits and
// none of the excluded bits. Pass a nil excluded mask to exclude nothing.
//
// Results are in archetype creation order and are memoized per mask pair;
// repeated calls with no intervening archetype creation return the identical
// slice. Entity adds and removes inside existing archetypes never invalidate
// the cache. Callers must not mutate the returned slice.
func (w *World) Query(required, excluded BitMask) []*Archetype {
	key := queryKey{required: required.Key(), excluded: excluded.Key()}
	if cached, ok := w.cache[key]; ok {
		return cached
	}
	var matches []*Archetype
	for _, a := range w.archetypeList {
		if a.Mask().ContainsAll(required) && !a.Mask().Intersects(excluded) {
			matches = append(matches, a)
		}
	}
	w.cache[key] = matches
	return matches
}

// QueryIDs is Query returning archetype ids instead of archetypes.
func (w *World) QueryIDs(required, excluded BitMask) []string {
	matches := w.Query(required, excluded)
	ids := make([]string, len(matches))
	for i, a := range matches {
		ids[i] = a.ID()
	}
	return ids
}

// invalidateQueries drops every cached entry. Clearing wholesale on each new
// archetype trades recompute cost for correctness; a query is at most
// recomputed once before the next structural change.
func (w *World) invalidateQueries() {
	clear(w.cache)
}

// Filter is a cursor over every entity matching a component query, walking
// one component column without per-step allocation. It is the convenience
// layer over Query for single-column systems; systems needing several
// columns index the archetype pools directly.
//
// A Filter detects archetype creation since its last Reset and refreshes its
// matching list; it does not tolerate entity mutation mid-iteration.
type Filter struct {
	world    *World
	name     ComponentTypeID
	required BitMask
	excluded BitMask

	matches []*Archetype
	version uint32

	archIdx int
	row     int
	pool    []Component
	ents    []Entity
	cur     Entity
}

// NewFilter creates a filter over entities carrying the named component,
// optionally excluding entities that carry any of the excluded types. All
// names must be registered.
func NewFilter(w *World, name ComponentTypeID, excluded ...ComponentTypeID) (*Filter, error) {
	required, err := w.registry.MaskOf(name)
	if err != nil {
		return nil, err
	}
	exclMask, err := w.registry.MaskOf(excluded...)
	if err != nil {
		return nil, err
	}
	f := &Filter{world: w, name: name, required: required, excluded: exclMask}
	f.Reset()
	return f, nil
}

// Reset rewinds the cursor, refreshing the matching archetype list if new
// archetypes appeared since the previous Reset.
func (f *Filter) Reset() {
	if f.matches == nil || f.version != f.world.archetypeVersion {
		f.matches = f.world.Query(f.required, f.excluded)
		f.version = f.world.archetypeVersion
	}
	f.archIdx = -1
	f.row = -1
	f.pool = nil
	f.ents = nil
}

// Next advances to the next matching entity. It must return true before
// Entity or Get are used.
func (f *Filter) Next() bool {
	f.row++
	if f.row < len(f.ents) {
		f.cur = f.ents[f.row]
		return true
	}
	for {
		f.archIdx++
		if f.archIdx >= len(f.matches) {
			return false
		}
		a := f.matches[f.archIdx]
		if a.EntityCount() == 0 {
			continue
		}
		f.ents = a.Entities()
		f.pool = a.Pool(f.name)
		f.row = 0
		f.cur = f.ents[0]
		return true
	}
}

// Entity returns the current entity.
func (f *Filter) Entity() Entity { return f.cur }

// Get returns the current entity's instance of the filtered component type.
func (f *Filter) Get() Component { return f.pool[f.row] }

// Count returns the number of entities currently matching the filter,
// without disturbing the cursor.
func (f *Filter) Count() int {
	if f.matches == nil || f.version != f.world.archetypeVersion {
		f.matches = f.world.Query(f.required, f.excluded)
		f.version = f.world.archetypeVersion
	}
	n := 0
	for _, a := range f.matches {
		n += a.EntityCount()
	}
	return n
}

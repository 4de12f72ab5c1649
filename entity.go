package hakoniwa

// Entity is an opaque stable handle for an object in the World. The ID is
// recycled after destruction; the version tag distinguishes a live entity
// from a stale reference to a previous occupant of the same ID. Identity
// never changes while the entity lives, however often its storage location
// does.
type Entity struct {
	ID      uint32
	Version uint32
}

// entityMeta is the World's location index entry for one entity ID: which
// archetype holds it, at which row, and the version that makes the handle
// valid. Version 0 marks a dead slot.
type entityMeta struct {
	arch    *Archetype
	row     int
	version uint32
}

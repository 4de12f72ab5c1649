package hakoniwa

// Structural events published on the World's event bus. Subscribers observe
// entity and archetype lifecycle without polling; systems that cache derived
// state (spatial indices, render batches) key their invalidation off these.

// EntityCreated is published after an entity lands in its initial archetype.
type EntityCreated struct {
	Entity      Entity
	ArchetypeID string
}

// EntityDestroyed is published after an entity's row and index entry are
// gone. The handle is stale by the time subscribers see this.
type EntityDestroyed struct {
	Entity      Entity
	ArchetypeID string
}

// ComponentAdded is published after a migration triggered by AddComponent.
type ComponentAdded struct {
	Entity Entity
	Type   ComponentTypeID
	FromID string
	ToID   string
}

// ComponentRemoved is published after a migration triggered by
// RemoveComponent.
type ComponentRemoved struct {
	Entity Entity
	Type   ComponentTypeID
	FromID string
	ToID   string
}

// ArchetypeCreated is published when a new archetype is synthesized. Every
// cached query is invalidated at the same moment.
type ArchetypeCreated struct {
	ID string
}

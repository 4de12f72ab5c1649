package hakoniwa

import "context"

// ComponentTypeID is the stable string name identifying a component kind.
// It is the map key everywhere: registry bits, archetype pools, signatures.
type ComponentTypeID string

// Component is the marker type for all component instances. Components are
// plain values; behavior is opted into through the capability interfaces
// below, all of which default to no-ops when unimplemented.
type Component any

// TypedComponent pairs a component instance with its type name. Slices of
// TypedComponent carry the signature order that plain maps would lose.
type TypedComponent struct {
	Type  ComponentTypeID
	Value Component
}

// Typed is a convenience constructor for TypedComponent.
func Typed(id ComponentTypeID, c Component) TypedComponent {
	return TypedComponent{Type: id, Value: c}
}

// Factory constructs a default instance of a component type. Factories are
// registered alongside bit positions and used by archetypes to fill pools
// when an entity is added without an explicit instance for some type.
type Factory func() Component

// Awaker is implemented by components that run one-time setup before any
// other hook. The hook may block; the lifecycle waits for it to return.
type Awaker interface {
	Awake(ctx context.Context) error
}

// Starter is implemented by components that run setup after Awake and
// before the first Update.
type Starter interface {
	Start(ctx context.Context) error
}

// Updater is implemented by components that want per-frame ticks.
// dt is the elapsed frame time in seconds.
type Updater interface {
	Update(dt float64)
}

// EnableObserver is implemented by components that react to the enabled
// flag toggling.
type EnableObserver interface {
	OnEnable() error
	OnDisable() error
}

// Destroyer is implemented by components that release resources on
// destruction.
type Destroyer interface {
	OnDestroy()
}

// Validator is implemented by components that can check their own
// configuration.
type Validator interface {
	Validate() error
}

// Serializer is implemented by components that own their persistence
// format. The engine core never serializes components itself.
type Serializer interface {
	Serialize() ([]byte, error)
	Deserialize(data []byte) error
}

// Cloner is implemented by components that support deep copies.
type Cloner interface {
	Clone() Component
}

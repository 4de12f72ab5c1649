package hakoniwa

import "fmt"

// DefaultBitCapacity is the default number of component-type bits a Registry
// may allocate. Masks themselves grow without bound; the cap exists so a
// runaway registration loop fails loudly instead of degrading every
// downstream query.
const DefaultBitCapacity = 256

// Registry maps component type names to stable bit positions and default
// factories. Bits are assigned in first-come order and are never recycled or
// reassigned for the lifetime of the registry.
//
// Registration is a setup-time step: the World and its archetypes only
// consume the registry, they never allocate bits themselves.
type Registry struct {
	bits      map[ComponentTypeID]int
	factories map[ComponentTypeID]Factory
	names     []ComponentTypeID // bit -> name, in assignment order
	capacity  int
}

// NewRegistry creates an empty registry with the default bit capacity.
func NewRegistry() *Registry {
	return NewRegistryWithCapacity(DefaultBitCapacity)
}

// NewRegistryWithCapacity creates an empty registry that may allocate up to
// capacity component-type bits. It panics if capacity is not positive.
func NewRegistryWithCapacity(capacity int) *Registry {
	if capacity <= 0 {
		panic(fmt.Sprintf("hakoniwa: registry bit capacity must be positive, got %d", capacity))
	}
	return &Registry{
		bits:      make(map[ComponentTypeID]int, 16),
		factories: make(map[ComponentTypeID]Factory, 16),
		names:     make([]ComponentTypeID, 0, 16),
		capacity:  capacity,
	}
}

// Register assigns a bit to the named component type and records its default
// factory. Registering a name that already has a bit returns the existing
// bit; the factory is not replaced. It panics when the bit capacity is
// exhausted or the factory is nil for a new name, since either would corrupt
// all downstream signatures.
func (r *Registry) Register(name ComponentTypeID, factory Factory) int {
	if bit, ok := r.bits[name]; ok {
		return bit
	}
	if factory == nil {
		panic(fmt.Sprintf("hakoniwa: nil factory for component type %q", name))
	}
	if len(r.names) >= r.capacity {
		panic(fmt.Sprintf("hakoniwa: component bit capacity (%d) exhausted registering %q", r.capacity, name))
	}
	bit := len(r.names)
	r.bits[name] = bit
	r.factories[name] = factory
	r.names = append(r.names, name)
	return bit
}

// BitOf returns the bit assigned to the named type.
func (r *Registry) BitOf(name ComponentTypeID) (int, bool) {
	bit, ok := r.bits[name]
	return bit, ok
}

// MaskOf builds the mask with the bit of every named type set. It returns an
// error naming the first unregistered type it encounters.
func (r *Registry) MaskOf(names ...ComponentTypeID) (BitMask, error) {
	var m BitMask
	for _, name := range names {
		bit, ok := r.bits[name]
		if !ok {
			return nil, fmt.Errorf("hakoniwa: component type %q not registered", name)
		}
		m = m.Set(bit)
	}
	return m, nil
}

// New constructs a default instance of the named type via its registered
// factory. An unknown name is a configuration error and panics.
func (r *Registry) New(name ComponentTypeID) Component {
	factory, ok := r.factories[name]
	if !ok {
		panic(fmt.Sprintf("hakoniwa: no factory registered for component type %q", name))
	}
	return factory()
}

// Registered reports whether the named type has an assigned bit.
func (r *Registry) Registered(name ComponentTypeID) bool {
	_, ok := r.bits[name]
	return ok
}

// Len returns the number of registered component types.
func (r *Registry) Len() int {
	return len(r.names)
}

// Names returns the registered type names in bit-assignment order. The
// returned slice is a copy.
func (r *Registry) Names() []ComponentTypeID {
	out := make([]ComponentTypeID, len(r.names))
	copy(out, r.names)
	return out
}

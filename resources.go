package hakoniwa

import (
	"fmt"
	"reflect"
)

// Resources is a type-keyed store for world-global singletons: a clock, an
// asset table, tuning parameters. At most one value per concrete type may be
// present at a time.
type Resources struct {
	items map[reflect.Type]any
}

// NewResources creates an empty store.
func NewResources() *Resources {
	return &Resources{items: make(map[reflect.Type]any)}
}

// AddResource stores res under its concrete type. A second value of the same
// type is a configuration error and panics.
func AddResource[T any](r *Resources, res *T) {
	t := reflect.TypeFor[*T]()
	if _, ok := r.items[t]; ok {
		panic(fmt.Sprintf("hakoniwa: resource of type %s already exists", t))
	}
	r.items[t] = res
}

// GetResource retrieves the stored value of type T, or nil when absent.
func GetResource[T any](r *Resources) *T {
	if res, ok := r.items[reflect.TypeFor[*T]()]; ok {
		return res.(*T)
	}
	return nil
}

// RemoveResource drops the stored value of type T, if any.
func RemoveResource[T any](r *Resources) {
	delete(r.items, reflect.TypeFor[*T]())
}

// HasResource reports whether a value of type T is stored.
func HasResource[T any](r *Resources) bool {
	_, ok := r.items[reflect.TypeFor[*T]()]
	return ok
}

// Clear removes every stored resource.
func (r *Resources) Clear() {
	clear(r.items)
}

// Len returns the number of stored resources.
func (r *Resources) Len() int {
	return len(r.items)
}

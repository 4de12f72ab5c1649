package hakoniwa

import (
	"fmt"
	"math"
)

// Metadata associates declarative data with component type names:
// dependencies between component types and an update priority. It is a
// setup-time registry; systems read it to order their work.
type Metadata struct {
	deps       map[ComponentTypeID][]ComponentTypeID
	priorities map[ComponentTypeID]int
}

// NewMetadata creates an empty metadata registry.
func NewMetadata() *Metadata {
	return &Metadata{
		deps:       make(map[ComponentTypeID][]ComponentTypeID),
		priorities: make(map[ComponentTypeID]int),
	}
}

// SetDependencies declares that the named component type requires the given
// types. Introducing a dependency cycle is a configuration error and panics:
// a cycle makes every dependency-ordered pass unsolvable.
func (m *Metadata) SetDependencies(name ComponentTypeID, deps ...ComponentTypeID) {
	prev, had := m.deps[name]
	m.deps[name] = append([]ComponentTypeID(nil), deps...)
	if cycle := m.findCycle(name); cycle != nil {
		if had {
			m.deps[name] = prev
		} else {
			delete(m.deps, name)
		}
		panic(fmt.Sprintf("hakoniwa: dependency cycle: %v", cycle))
	}
}

// DependenciesOf returns the declared dependencies of the named type.
func (m *Metadata) DependenciesOf(name ComponentTypeID) []ComponentTypeID {
	return m.deps[name]
}

// SetPriority records the update priority for the named type. The value is
// accepted as a float for symmetry with numeric config sources but must be a
// finite integer; anything else panics rather than silently coercing into
// undefined ordering.
func (m *Metadata) SetPriority(name ComponentTypeID, priority float64) {
	if math.IsNaN(priority) || math.IsInf(priority, 0) || priority != math.Trunc(priority) {
		panic(fmt.Sprintf("hakoniwa: priority for %q must be a finite integer, got %v", name, priority))
	}
	m.priorities[name] = int(priority)
}

// PriorityOf returns the recorded priority, or 0 when none was set.
func (m *Metadata) PriorityOf(name ComponentTypeID) int {
	return m.priorities[name]
}

// findCycle walks the dependency graph from name and returns the first
// cycle path found, or nil.
func (m *Metadata) findCycle(name ComponentTypeID) []ComponentTypeID {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[ComponentTypeID]int)
	var path []ComponentTypeID

	var visit func(n ComponentTypeID) []ComponentTypeID
	visit = func(n ComponentTypeID) []ComponentTypeID {
		switch state[n] {
		case visiting:
			return append(path[:len(path):len(path)], n)
		case done:
			return nil
		}
		state[n] = visiting
		path = append(path, n)
		for _, d := range m.deps[n] {
			if cycle := visit(d); cycle != nil {
				return cycle
			}
		}
		path = path[:len(path)-1]
		state[n] = done
		return nil
	}
	return visit(name)
}

package hakoniwa

// System is a unit of per-frame logic run against the World. Lower priority
// values run first.
type System interface {
	Update(w *World, dt float64)
	Priority() int
}

// AddSystem registers a system, keeping the run list sorted by priority.
// Registration order breaks ties.
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i-1].Priority() <= w.systems[i].Priority() {
			break
		}
		w.systems[i-1], w.systems[i] = w.systems[i], w.systems[i-1]
	}
}

// Update runs every registered system in priority order. dt is the frame
// time in seconds.
func (w *World) Update(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
}

// Systems returns the registered systems in run order. The slice is shared;
// callers must not mutate it.
func (w *World) Systems() []System { return w.systems }

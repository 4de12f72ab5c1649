package hakoniwa

import "math/rand/v2"

// Component type names for the built-in particle simulation. The simulation
// is an ordinary consumer of the public surface: registry factories, entity
// creation, queries over archetype pools, and destruction through the World.
const (
	TypePosition ComponentTypeID = "Position"
	TypeVelocity ComponentTypeID = "Velocity"
	TypeParticle ComponentTypeID = "Particle"
)

// Position is a world-space location.
type Position struct {
	Pos Vec2
}

// Velocity is a rate of change of position, units per second.
type Velocity struct {
	Vel Vec2
}

// Particle tracks a particle's age against its time to live, in seconds.
type Particle struct {
	Age float64
	TTL float64
}

// RegisterParticleComponents registers the particle component types on the
// given registry. Factories return pointers so pool slots can be mutated in
// place during integration.
func RegisterParticleComponents(r *Registry) {
	r.Register(TypePosition, func() Component { return &Position{} })
	r.Register(TypeVelocity, func() Component { return &Velocity{} })
	r.Register(TypeParticle, func() Component { return &Particle{} })
}

// Emitter spawns particles around an origin with randomized velocity and
// lifetime.
type Emitter struct {
	Origin Vec2
	Speed  float64 // maximum initial speed, units per second
	TTL    float64 // maximum lifetime, seconds

	rng *rand.Rand
}

// NewEmitter creates an emitter seeded for reproducible spawns.
func NewEmitter(origin Vec2, speed, ttl float64, seed uint64) *Emitter {
	return &Emitter{
		Origin: origin,
		Speed:  speed,
		TTL:    ttl,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Emit spawns n particles into the world and returns their handles.
func (em *Emitter) Emit(w *World, n int) ([]Entity, error) {
	out := make([]Entity, 0, n)
	for i := 0; i < n; i++ {
		vel := Vec2{
			X: (em.rng.Float64()*2 - 1) * em.Speed,
			Y: (em.rng.Float64()*2 - 1) * em.Speed,
		}
		ttl := Clamp(em.rng.Float64()*em.TTL, 0.05, em.TTL)
		e, err := w.CreateEntity(
			Typed(TypePosition, &Position{Pos: em.Origin}),
			Typed(TypeVelocity, &Velocity{Vel: vel}),
			Typed(TypeParticle, &Particle{TTL: ttl}),
		)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}

// ParticleSystem integrates particle motion, ages particles, and destroys
// the expired ones. Expired entities are collected during iteration and
// destroyed afterwards, since structural mutation mid-iteration is not
// allowed.
type ParticleSystem struct {
	meta *Metadata

	required BitMask
	expired  []Entity // reused across frames
}

// NewParticleSystem creates the system. Its run priority comes from the
// metadata registry's entry for the Particle type.
func NewParticleSystem(w *World, meta *Metadata) (*ParticleSystem, error) {
	required, err := w.Registry().MaskOf(TypePosition, TypeVelocity, TypeParticle)
	if err != nil {
		return nil, err
	}
	return &ParticleSystem{meta: meta, required: required}, nil
}

// Priority implements System.
func (ps *ParticleSystem) Priority() int {
	return ps.meta.PriorityOf(TypeParticle)
}

// Update implements System.
func (ps *ParticleSystem) Update(w *World, dt float64) {
	ps.expired = ps.expired[:0]
	for _, arch := range w.Query(ps.required, nil) {
		positions := arch.Pool(TypePosition)
		velocities := arch.Pool(TypeVelocity)
		particles := arch.Pool(TypeParticle)
		ents := arch.Entities()
		for i := range ents {
			pos := positions[i].(*Position)
			vel := velocities[i].(*Velocity)
			p := particles[i].(*Particle)
			pos.Pos = pos.Pos.Add(vel.Vel.Scale(dt))
			p.Age += dt
			if p.Age >= p.TTL {
				ps.expired = append(ps.expired, ents[i])
			}
		}
	}
	for _, e := range ps.expired {
		w.DestroyEntity(e)
	}
}

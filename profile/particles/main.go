// Profiling:
// go build ./profile/particles
// go tool pprof -http=":8000" -nodefraction=0.001 ./particles mem.pprof

package main

import (
	"fmt"

	"github.com/pkg/profile"
	"github.com/soracane/hakoniwa"
)

func main() {
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	defer p.Stop()

	registry := hakoniwa.NewRegistry()
	hakoniwa.RegisterParticleComponents(registry)
	world := hakoniwa.NewWorld(registry, hakoniwa.WithCapacity(200000))

	meta := hakoniwa.NewMetadata()
	meta.SetPriority(hakoniwa.TypeParticle, 10)
	system, err := hakoniwa.NewParticleSystem(world, meta)
	if err != nil {
		panic(err)
	}
	world.AddSystem(system)

	emitter := hakoniwa.NewEmitter(hakoniwa.Vec2{}, 50, 2.0, 42)
	const dt = 1.0 / 60.0
	for frame := 0; frame < 600; frame++ {
		if _, err := emitter.Emit(world, 500); err != nil {
			panic(err)
		}
		world.Update(dt)
	}
	fmt.Println("live entities:", world.EntityCount())
}

// Profiling:
// go build ./profile/migration
// go tool pprof -http=":8000" -nodefraction=0.001 ./migration cpu.prof

package main

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/soracane/hakoniwa"
)

type tagA struct{ V int64 }
type tagB struct{ V int64 }

const (
	typeA hakoniwa.ComponentTypeID = "A"
	typeB hakoniwa.ComponentTypeID = "B"
)

func main() {
	f, _ := os.Create("cpu.prof")
	_ = pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	run(50, 10000)

	memFile, _ := os.Create("mem.prof")
	defer memFile.Close()
	runtime.GC()
	_ = pprof.WriteHeapProfile(memFile)
}

func run(rounds, numEntities int) {
	for range rounds {
		registry := hakoniwa.NewRegistry()
		registry.Register(typeA, func() hakoniwa.Component { return &tagA{} })
		registry.Register(typeB, func() hakoniwa.Component { return &tagB{} })
		w := hakoniwa.NewWorld(registry, hakoniwa.WithCapacity(numEntities))

		ents := make([]hakoniwa.Entity, numEntities)
		for i := range ents {
			e, err := w.CreateEntity(hakoniwa.Typed(typeA, &tagA{V: int64(i)}))
			if err != nil {
				panic(err)
			}
			ents[i] = e
		}
		for _, e := range ents {
			if err := w.AddComponent(e, typeB, &tagB{}); err != nil {
				panic(err)
			}
		}
		for _, e := range ents {
			if err := w.RemoveComponent(e, typeB); err != nil {
				panic(err)
			}
		}
	}
}

package main

import (
	"fmt"
	"log"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/goHydro/grid"
	"github.com/maseology/goHydro/tem"
	"github.com/maseology/lem"
	"github.com/maseology/lem/flowdir"
	"github.com/maseology/lem/forcing"
	"github.com/maseology/lem/mesh"
	"github.com/maseology/lem/overland"
	"github.com/maseology/mmio"
)

func main() {

	const (
		gdefFP  = "M:/LEM/demo/demo.gdef"
		hdemFP  = "M:/LEM/demo/demo.uhdem"
		outPrfx = "M:/LEM/demo/out/demo."
		nr, nc  = 100, 120

		stormIntensity = 1.8e-5 // [m/s] (~65 mm/hr)
		stormDuration  = 3600.  // [s]
		modelDuration  = 7200.  // [s]
	)

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap("\nRun complete")

	println("load grid definition")
	gd, err := grid.ReadGDEF(gdefFP, true)
	if err != nil {
		log.Fatalf("%v", err)
	}
	m, err := mesh.FromGDEF(gd, nr, nc)
	if err != nil {
		log.Fatalf("%v", err)
	}

	println("load topologic DEM")
	z := func() []float64 {
		var dem tem.TEM
		if err := dem.New(hdemFP); err != nil {
			log.Fatalf(" tem.New() error: %v", err)
		}
		z := make([]float64, nr*nc)
		for _, c := range gd.Sactives {
			t, ok := dem.TEC[c]
			if !ok {
				log.Fatalf(" error: cell id %d not found in %s", c, hdemFP)
			}
			if t.Z == -9999. {
				fmt.Printf("    WARNING no elevation assigned to cell %d\n", c)
			}
			z[c] = t.Z
		}
		return z
	}()
	tt.Print("load complete\n")

	println("direct flow")
	fd, err := flowdir.FromMesh(m, z, nil)
	if err != nil {
		log.Fatalf(" flowdir.FromMesh: %v", err)
	}
	net := flowdir.NewNetwork(fd.Receiver)
	uca := net.ContributingCellMap()
	outlet := func() int {
		o := 0
		for i, v := range uca {
			if v > uca[o] {
				o = i
			}
		}
		return o
	}()
	fmt.Printf("  %d sinks; outlet cell %d drains %d cells\n", len(fd.Sinks), outlet, uca[outlet])

	println("route storm")
	sol, err := overland.New(m, z, overland.DefaultParams())
	if err != nil {
		log.Fatalf(" overland.New: %v", err)
	}
	storm := forcing.Storm{Intensity: stormIntensity, Duration: stormDuration}

	uiprogress.Start()
	const nstp = 24
	bar := uiprogress.AddBar(nstp).AppendCompleted().PrependElapsed()
	for k := 1; k <= nstp; k++ {
		if err := sol.Advance(storm.Intensity, storm.Duration, modelDuration*float64(k)/nstp); err != nil {
			log.Fatalf(" overland.Advance: %v", err)
		}
		bar.Incr()
	}
	uiprogress.Stop()

	println("write results")
	for fp, f := range map[string][]float64{
		outPrfx + "depth.bin": sol.Depth(),
		outPrfx + "tau.bin":   sol.ShearStress(),
		outPrfx + "slope.bin": fd.Steepest,
	} {
		if err := lem.WriteFloats(fp, f); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if err := lem.WriteInts(outPrfx+"receiver.bin", fd.Receiver); err != nil {
		log.Fatalf("%v", err)
	}
	if err := lem.WriteInts(outPrfx+"uca.bin", uca); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf(" final depth at outlet: %.4f m\n", sol.Depth()[outlet])
}

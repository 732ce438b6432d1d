// Command btdemo drives a headless simulation of a handful of units, each
// wired to a template behavior tree, and prints the trees' results tick by
// tick. It exercises the same World/ObjectManager/BehaviorTreeManager wiring
// the full game uses, minus rendering and input.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"teraglest/internal/data"
	"teraglest/internal/engine"
)

func main() {
	ticks := flag.Int("ticks", 10, "number of simulation ticks to run")
	tickRate := flag.Duration("tick", 200*time.Millisecond, "simulated time per tick")
	flag.Parse()

	world, err := buildDemoWorld()
	if err != nil {
		log.Fatalf("btdemo: %v", err)
	}

	factory := engine.NewBehaviorTreeFactory(world)
	units := []struct {
		unitType string
		position engine.Vector3
	}{
		{"soldier", engine.Vector3{X: 0, Y: 0, Z: 0}},
		{"scout", engine.Vector3{X: 5, Y: 0, Z: 5}},
		{"worker", engine.Vector3{X: -5, Y: 0, Z: 2}},
	}

	for _, spec := range units {
		unit, err := world.ObjectManager.CreateUnit(1, spec.unitType, spec.position, &data.UnitDefinition{Name: spec.unitType})
		if err != nil {
			log.Fatalf("btdemo: create unit %s: %v", spec.unitType, err)
		}
		if err := factory.SetupUnitBehavior(unit, world.GetBehaviorTreeManager()); err != nil {
			log.Fatalf("btdemo: setup behavior for %s: %v", spec.unitType, err)
		}
		fmt.Printf("spawned %s unit %d at %v\n", spec.unitType, unit.ID, spec.position)
	}

	for i := 0; i < *ticks; i++ {
		world.Update(*tickRate)
		fmt.Printf("tick %d: active contexts=%d\n", i+1, world.GetBehaviorTreeManager().ActiveContexts())
	}
}

// buildDemoWorld assembles a minimal World with no map or asset data, the
// same bare-struct-literal pattern the unit manager's own tests use.
func buildDemoWorld() (*engine.World, error) {
	settings := engine.GameSettings{
		PlayerFactions: map[int]string{1: "demo_faction"},
		GameSpeed:      1.0,
	}
	world, err := engine.NewWorld(settings, &data.TechTree{}, &data.AssetManager{})
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	if err := world.AddPlayer(1, "Demo Player", "demo_faction", false); err != nil {
		return nil, fmt.Errorf("add player: %w", err)
	}
	return world, nil
}

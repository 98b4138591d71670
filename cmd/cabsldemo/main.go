// Command cabsldemo wires a tiny option tree end to end: a traffic-light
// option cycling through red, green, and amber phases, driven once per
// wall-clock tick. It exists to exercise the engine outside of tests.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cabsl-go/cabsl"
	"github.com/cabsl-go/cabsl/optionbuilder"
)

const (
	stateRed    = "red"
	stateGreen  = "green"
	stateAmber  = "amber_pending"
	ticksPerPhase int64 = 3
)

func buildTrafficLight() (*cabsl.OptionDescriptor, error) {
	b := optionbuilder.New("traffic_light")
	b.Initial(stateRed)
	b.Normal(stateGreen)
	b.Normal(stateAmber)

	return b.Descriptor(func(s *cabsl.ExecutionScope) {
		s.EmitGraphNode()
		switch s.CurrentState() {
		case b.ID(stateRed):
			if s.StateTime() >= ticksPerPhase {
				s.UpdateState(b.ID(stateGreen), cabsl.StateNormal)
			}
		case b.ID(stateGreen):
			if s.StateTime() >= ticksPerPhase {
				s.UpdateState(b.ID(stateAmber), cabsl.StateNormal)
			}
		case b.ID(stateAmber):
			if s.StateTime() >= 1 {
				s.UpdateState(b.ID(stateRed), cabsl.StateNormal)
			}
		}
	})
}

func main() {
	registry := cabsl.NewOptionRegistry()

	desc, err := buildTrafficLight()
	if err != nil {
		panic(err)
	}
	if err := registry.Register(desc); err != nil {
		panic(err)
	}

	behavior := cabsl.NewContextTable()
	engine := cabsl.NewEngine(behavior, registry)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	var cycle uint32
	for {
		select {
		case <-ticker.C:
			cycle++
			if err := engine.BeginFrame(cycle); err != nil {
				fmt.Printf("begin_frame error: %v\n", err)
				continue
			}
			engine.Execute("traffic_light")
			fmt.Printf("\n--- cycle %d ---\n", cycle)
			fmt.Println(engine.Graph.DOT())
			if err := engine.EndFrame(); err != nil {
				fmt.Printf("end_frame error: %v\n", err)
			}
			if cycle >= 24 {
				fmt.Println("demo complete")
				return
			}
		case <-sig:
			fmt.Println("\nshutting down")
			return
		}
	}
}

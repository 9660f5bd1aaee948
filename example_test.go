package sprig_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/sprig"
	"github.com/aretw0/sprig/pkg/domain"
	"github.com/aretw0/sprig/pkg/greeter"
	"github.com/aretw0/sprig/pkg/ports"
)

// ExampleEngine demonstrates a custom single-step pipeline over the
// map-based state.
func ExampleEngine() {
	shout := ports.StepFunc("shout", func(_ context.Context, state domain.State) (domain.Delta, error) {
		msg, _ := state.GetString("message")
		return domain.Delta{"shouted": msg + "!!!"}, nil
	})

	eng, err := sprig.New("shouter", []ports.Step{shout})
	if err != nil {
		log.Fatal(err)
	}

	out, err := eng.Invoke(context.Background(), domain.State{"message": "hello"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(out["shouted"])
	// Output: hello!!!
}

// Example_greeter runs the reference agent for the two demo names.
func Example_greeter() {
	agent, err := greeter.New()
	if err != nil {
		log.Fatal(err)
	}

	for _, name := range []string{"Alice", "Bob"} {
		out, err := agent.Invoke(context.Background(), greeter.State{Name: name})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out.Greeting)
	}

	// Output:
	// Hello, Alice! Welcome!
	// Hello, Bob! Welcome!
}

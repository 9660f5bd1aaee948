/*
Package sprig is a minimal step pipeline for state transformations: an
ordered sequence of pure steps, each mapping the current state to a delta of
changed fields, merged last-writer-wins into a private working copy.

It is deliberately not a graph executor. There is exactly one path through a
pipeline: start, each step in registration order, end. If your flow needs
branching, loops or tool calls, reach for a full engine instead; Sprig is
the seed you plant before the trellis goes up.

# Concept

State is a flat map of named fields. A step reads the state and returns only
the fields it computed (the "delta"); the runner merges deltas between steps
and hands the caller the union of the initial input and everything produced
along the way. The caller's input map is never mutated, and every invocation
owns its working copy, so concurrent invocations are fully independent.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/sprig"
		"github.com/aretw0/sprig/pkg/greeter"
	)

	func main() {
		agent, err := greeter.New()
		if err != nil {
			log.Fatal(err)
		}

		out, err := agent.Invoke(context.Background(), greeter.State{Name: "Alice"})
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(out.Greeting) // Hello, Alice! Welcome!
	}

Custom pipelines register their own steps:

	eng, err := sprig.New("my-pipeline", []ports.Step{myStep})
	final, err := eng.Invoke(ctx, domain.State{"input": "value"})

# Observability

Lifecycle hooks (pipeline start/end, step start/end) decouple the runtime
from metrics and logging backends; pkg/observability ships a Prometheus hook
set and an OpenTelemetry tracing bootstrap driven by an explicit Config, so
the core stays pure and testable with no environment variables set.
*/
package sprig

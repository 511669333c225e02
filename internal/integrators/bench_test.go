package integrators

import (
	"testing"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/physics"
)

func benchmarkIntegrator(b *testing.B, integrator dynamo.Integrator) {
	dyn := physics.NewDefaultFreeFall()
	x := dynamo.State{1e9, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 1.0/60)
	}
}

func BenchmarkEuler(b *testing.B)           { benchmarkIntegrator(b, NewEuler()) }
func BenchmarkSymplecticEuler(b *testing.B) { benchmarkIntegrator(b, NewSymplecticEuler()) }
func BenchmarkRK4(b *testing.B)             { benchmarkIntegrator(b, NewRK4()) }
func BenchmarkVerlet(b *testing.B)          { benchmarkIntegrator(b, NewVerlet()) }
func BenchmarkLeapfrog(b *testing.B)        { benchmarkIntegrator(b, NewLeapfrog()) }

func BenchmarkAdvance(b *testing.B) {
	model := physics.NewDefaultFreeFall()
	s := physics.NewBodyState(1e9, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s = model.Advance(s, 1.0/60)
	}
}

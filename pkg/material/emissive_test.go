package material

import (
	"math/rand"
	"testing"

	"github.com/elyse-vance/lumen/pkg/vecmath"
)

func TestEmissiveEmit(t *testing.T) {
	e := NewEmissive(vecmath.New(0.8, 0.3, 0.2), 15)

	got := e.Emit()
	want := vecmath.New(12, 4.5, 3)

	if got != want {
		t.Errorf("Emit() = %v, want %v", got, want)
	}
}

func TestEmissiveNeverScatters(t *testing.T) {
	e := NewEmissive(vecmath.New(1, 1, 1), 1)
	rng := rand.New(rand.NewSource(1))

	_, ok := e.Scatter(vecmath.Ray{}, HitRecord{}, rng)
	if ok {
		t.Error("Emissive.Scatter should never succeed (terminal material)")
	}
}

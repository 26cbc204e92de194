// pkg/entity/entity_test.go
package entity

import (
	"math"
	"testing"

	"github.com/JTStephens18/galaxyGPU/pkg/physics"
)

func TestRigidBody_ImpulseScaledByMass(t *testing.T) {
	tests := []struct {
		name     string
		mass     float64
		impulse  physics.Vector3
		expected physics.Vector3
	}{
		{"unit_mass", 1, physics.Vector3{X: 3}, physics.Vector3{X: 3}},
		{"heavy_body", 4, physics.Vector3{X: 8, Y: -4}, physics.Vector3{X: 2, Y: -1}},
		{"clamped_zero_mass", 0, physics.Vector3{Z: 5}, physics.Vector3{Z: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewRigidBody(GenerateID(), physics.Vector3{}, tt.mass, 1)
			b.ApplyImpulse(tt.impulse)
			v := b.GetVelocity()
			if math.Abs(v.X-tt.expected.X) > 1e-9 ||
				math.Abs(v.Y-tt.expected.Y) > 1e-9 ||
				math.Abs(v.Z-tt.expected.Z) > 1e-9 {
				t.Errorf("velocity = %v, expected %v", v, tt.expected)
			}
		})
	}
}

func TestRigidBody_UpdateIntegratesVelocity(t *testing.T) {
	b := NewRigidBody(GenerateID(), physics.Vector3{X: 1}, 2, 1)
	b.ApplyImpulse(physics.Vector3{X: 4}) // velocity 2
	b.Update(0.5)
	if math.Abs(b.Position.X-2) > 1e-9 {
		t.Errorf("position.X = %v, expected 2", b.Position.X)
	}
}

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		if seen[id] {
			t.Fatalf("duplicate ID %d", id)
		}
		seen[id] = true
	}
}

func TestRegistry_AddRemoveCompacts(t *testing.T) {
	r := NewRegistry()
	a := r.Add(physics.Vector3{X: 1}, 3)
	b := r.Add(physics.Vector3{X: 2}, 3)
	c := r.Add(physics.Vector3{X: 3}, 3)

	if !r.Remove(b) {
		t.Fatal("Remove(b) returned false")
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", r.Len())
	}

	// Remaining targets stay reachable after the swap
	for _, id := range []ID{a, c} {
		if _, ok := r.Get(id); !ok {
			t.Errorf("target %d lost after unrelated removal", id)
		}
	}
	if _, ok := r.Get(b); ok {
		t.Error("removed target still present")
	}
	if r.Remove(b) {
		t.Error("second Remove of same ID returned true")
	}
}

func TestRegistry_DamageDestroysAtZero(t *testing.T) {
	r := NewRegistry()
	id := r.Add(physics.Vector3{}, 2)

	if destroyed := r.Damage(id, 1); destroyed {
		t.Error("target destroyed with health remaining")
	}
	if destroyed := r.Damage(id, 1); !destroyed {
		t.Error("target not destroyed at zero health")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d after destruction, expected 0", r.Len())
	}
}

func TestRegistry_PositionsSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Add(physics.Vector3{X: 1}, 1)
	r.Add(physics.Vector3{X: 2}, 1)

	buf := make([]physics.Vector3, 0, 4)
	out := r.Positions(buf)
	if len(out) != 2 {
		t.Fatalf("Positions() returned %d entries, expected 2", len(out))
	}

	// Reuse without growth
	out = r.Positions(out[:0])
	if len(out) != 2 {
		t.Fatalf("reused Positions() returned %d entries, expected 2", len(out))
	}
}

// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func vecEqual(a, b Vector3) bool {
	return math.Abs(a.X-b.X) < tolerance &&
		math.Abs(a.Y-b.Y) < tolerance &&
		math.Abs(a.Z-b.Z) < tolerance
}

func TestVector3_Add(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector3
		v2       Vector3
		expected Vector3
	}{
		{
			name:     "positive_vectors",
			v1:       Vector3{X: 3, Y: 4, Z: 5},
			v2:       Vector3{X: 1, Y: 2, Z: 3},
			expected: Vector3{X: 4, Y: 6, Z: 8},
		},
		{
			name:     "negative_vectors",
			v1:       Vector3{X: -3, Y: -4, Z: -5},
			v2:       Vector3{X: -1, Y: -2, Z: -3},
			expected: Vector3{X: -4, Y: -6, Z: -8},
		},
		{
			name:     "mixed_signs",
			v1:       Vector3{X: 5, Y: -3, Z: 2},
			v2:       Vector3{X: -2, Y: 7, Z: -2},
			expected: Vector3{X: 3, Y: 4, Z: 0},
		},
		{
			name:     "zero_vector",
			v1:       Vector3{},
			v2:       Vector3{X: 5, Y: -3, Z: 1},
			expected: Vector3{X: 5, Y: -3, Z: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v1.Add(tt.v2)
			if !vecEqual(result, tt.expected) {
				t.Errorf("Add() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector3_Normalize(t *testing.T) {
	tests := []struct {
		name   string
		vector Vector3
	}{
		{"unit_x", Vector3{X: 1}},
		{"long_diagonal", Vector3{X: 3, Y: 4, Z: 12}},
		{"negative_components", Vector3{X: -2, Y: 5, Z: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()
			if math.Abs(result.Length()-1.0) > tolerance {
				t.Errorf("Normalize() length = %v, expected 1", result.Length())
			}
		})
	}

	t.Run("zero_vector", func(t *testing.T) {
		result := Vector3{}.Normalize()
		if !vecEqual(result, Vector3{}) {
			t.Errorf("Normalize() of zero vector = %v, expected zero vector", result)
		}
	})
}

func TestVector3_RotateY_PreservesLength(t *testing.T) {
	tests := []struct {
		name   string
		vector Vector3
		angle  float64
	}{
		{"quarter_turn", Vector3{X: 3, Y: 1, Z: 4}, math.Pi / 2},
		{"full_turn", Vector3{X: -2, Y: 0, Z: 5}, 2 * math.Pi},
		{"small_angle", Vector3{X: 10, Y: -3, Z: 0}, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rotated := tt.vector.RotateY(tt.angle)
			if math.Abs(rotated.Length()-tt.vector.Length()) > tolerance {
				t.Errorf("RotateY() changed length from %v to %v", tt.vector.Length(), rotated.Length())
			}
			if math.Abs(rotated.Y-tt.vector.Y) > tolerance {
				t.Errorf("RotateY() changed Y from %v to %v", tt.vector.Y, rotated.Y)
			}
		})
	}
}

func TestVector3_RotateY_FullTurnRoundTrip(t *testing.T) {
	v := Vector3{X: 1.5, Y: 2, Z: -3.25}
	rotated := v.RotateY(2 * math.Pi)
	if !vecEqual(rotated, v) {
		t.Errorf("RotateY(2π) = %v, expected %v", rotated, v)
	}
}

func TestVector3_Dot(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector3
		v2       Vector3
		expected float64
	}{
		{"orthogonal", Vector3{X: 1}, Vector3{Y: 1}, 0},
		{"parallel", Vector3{X: 2}, Vector3{X: 3}, 6},
		{"general", Vector3{X: 1, Y: 2, Z: 3}, Vector3{X: 4, Y: -5, Z: 6}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v1.Dot(tt.v2)
			if math.Abs(result-tt.expected) > tolerance {
				t.Errorf("Dot() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector3_Cross(t *testing.T) {
	result := Vector3{X: 1}.Cross(Vector3{Y: 1})
	if !vecEqual(result, Vector3{Z: 1}) {
		t.Errorf("Cross(x, y) = %v, expected z", result)
	}
}

func TestVector3_DistanceXZ_IgnoresHeight(t *testing.T) {
	a := Vector3{X: 0, Y: 100, Z: 0}
	b := Vector3{X: 3, Y: -50, Z: 4}
	if d := a.DistanceXZ(b); math.Abs(d-5) > tolerance {
		t.Errorf("DistanceXZ() = %v, expected 5", d)
	}
}

func TestUpdateMovement_DampingStopsCoasting(t *testing.T) {
	state := &MovementState{
		Velocity: Vector3{X: 10},
		Thrust:   5,
		MaxSpeed: 20,
		Damping:  2,
	}
	for i := 0; i < 200; i++ {
		UpdateMovement(state, 1.0/60.0, 0, 0, 0)
	}
	if state.Velocity.Length() > 0.05 {
		t.Errorf("velocity after coasting = %v, expected near zero", state.Velocity.Length())
	}
}

func TestUpdateMovement_SpeedClamped(t *testing.T) {
	state := &MovementState{
		Thrust:   1000,
		MaxSpeed: 12,
	}
	for i := 0; i < 100; i++ {
		UpdateMovement(state, 1.0/60.0, 1, 0, 0)
	}
	if state.Velocity.Length() > state.MaxSpeed+tolerance {
		t.Errorf("speed %v exceeds max %v", state.Velocity.Length(), state.MaxSpeed)
	}
}

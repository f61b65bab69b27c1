package material

import (
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
		{"Clamp large negative", -10.0, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewSeededSampler(42)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.Scattered.Direction.Normalize()

	tolerance := 1e-10
	if actual.Subtract(expected).Length() > tolerance {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, actual)
	}

	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_AbsorbsReflectionIntoSurface(t *testing.T) {
	tests := []struct {
		name      string
		fuzzness  float64
		direction core.Vec3
		sample    core.Vec3
	}{
		{
			// Travelling along the normal (from inside) mirrors straight into the surface
			name:      "Ray leaving through the surface",
			fuzzness:  0.0,
			direction: core.NewVec3(0, 0, 1),
			sample:    core.NewVec3(0.5, 0.5, 0.5),
		},
		{
			// Grazing reflection pushed below the surface by fuzz point (0, 0, -0.5)
			name:      "Fuzzed below the surface",
			fuzzness:  1.0,
			direction: core.NewVec3(1, 0, -0.01),
			sample:    core.NewVec3(0.5, 0.5, 0.25),
		},
	}

	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal.Fuzzness = tt.fuzzness
			hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}
			rayIn := core.NewRay(core.NewVec3(0, 0, 1), tt.direction)

			if _, didScatter := metal.Scatter(rayIn, hit, fixedSampler{sample: tt.sample}); didScatter {
				t.Error("Expected metal to absorb the ray")
			}
		})
	}
}

func TestMetal_ReflectsUnnormalizedDirection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}
	rayIn := core.NewRay(core.NewVec3(-3, 0, 0.3), core.NewVec3(3, 0, -0.3))

	// Fuzz point (0, 0, -0.2): (3, 0, 0.3) + (0, 0, -0.2) stays above the surface
	scatter, didScatter := metal.Scatter(rayIn, hit, fixedSampler{sample: core.NewVec3(0.5, 0.5, 0.4)})
	if !didScatter {
		t.Fatal("Expected grazing ray with a long direction to scatter")
	}

	expected := core.NewVec3(3, 0, 0.1)
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected scattered direction %v, got %v", expected, scatter.Scattered.Direction)
	}
}

func TestMetal_FuzzyReflectionStaysAboveSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	sampler := core.NewSeededSampler(42)

	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal}
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.2), core.NewVec3(1, 0, -0.2))

	scattered, absorbed := 0, 0
	for i := 0; i < 1000; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			absorbed++
			continue
		}
		scattered++
		if scatter.Scattered.Direction.Dot(normal) <= 0 {
			t.Fatalf("Scattered direction %v points into the surface", scatter.Scattered.Direction)
		}
	}

	if scattered == 0 || absorbed == 0 {
		t.Errorf("Expected a mix of scattered and absorbed rays at grazing angle, got %d/%d", scattered, absorbed)
	}
}

func TestReflect(t *testing.T) {
	got := Reflect(core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0))
	if !got.Equals(core.NewVec3(1, 1, 0)) {
		t.Errorf("Expected (1, 1, 0), got %v", got)
	}
}

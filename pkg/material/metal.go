package material

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Vec3 // Metal color
	Fuzzness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := Reflect(rayIn.Direction, hit.Normal)

	// Perturb the mirror direction inside a sphere of radius Fuzzness
	if m.Fuzzness > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzzness))
	}

	scattered := core.NewRay(hit.Point, reflected)

	// Rays fuzzed below the surface are absorbed
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, true
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

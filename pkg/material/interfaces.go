package material

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter decides what happens to rayIn at hit. It returns the attenuation and the
	// outgoing ray, or false when the ray is absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection, ray.At(T)
	Normal   core.Vec3 // Unit surface normal, pointing away from the shape's interior
	Material Material  // Material of the hit object, owned by the shape
}

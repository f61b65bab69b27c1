package geometry

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2.0 * a)
	if root < tMin || root > tMax {
		// Try the farther intersection point
		root = (-b + sqrtD) / (2.0 * a)
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	return &material.HitRecord{
		T:        root,
		Point:    point,
		Normal:   point.Subtract(s.Center).Normalize(),
		Material: s.Material,
	}, true
}

// HitsSphere reports whether the infinite line of ray crosses the sphere at all.
// Unlike Hit it ignores the t range and tangent rays.
func HitsSphere(center core.Vec3, radius float64, ray core.Ray) bool {
	oc := ray.Origin.Subtract(center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - radius*radius
	return b*b-4*a*c > 0
}

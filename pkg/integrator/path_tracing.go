package integrator

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

const (
	// DefaultMaxDepth is the bounce budget of a camera ray
	DefaultMaxDepth = 50

	// HitEpsilon is the minimum t for scene hits, so a scattered ray
	// does not immediately re-hit the surface it left
	HitEpsilon = 0.001
)

// PathTracingIntegrator implements the recursive scattering estimator:
// each hit asks the surface material for an attenuation and a new ray
// until the ray escapes to the background or the bounce budget runs out.
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A negative maxDepth is treated as 0.
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, world, sampler, pt.MaxDepth)
}

// rayColor returns the color for a ray with bouncesLeft scattering events remaining
func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, bouncesLeft int) core.Vec3 {
	hit, isHit := world.Hit(ray, HitEpsilon, math.Inf(1))
	if !isHit {
		return BackgroundGradient(ray)
	}

	// Out of bounces, no more light is gathered
	if bouncesLeft <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(
		pt.rayColor(scatter.Scattered, world, sampler, bouncesLeft-1))
}

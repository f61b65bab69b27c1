package integrator

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// BackgroundIntegrator ignores the scene and returns the sky gradient
type BackgroundIntegrator struct{}

// RayColor implements Integrator
func (BackgroundIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	return BackgroundGradient(ray)
}

// SphereTestIntegrator paints a fixed sphere in a flat color over the background.
// It ignores the scene and is used to check camera setup.
type SphereTestIntegrator struct {
	Center core.Vec3
	Radius float64
	Color  core.Vec3
}

// NewSphereTestIntegrator returns the red test sphere at (0, 0, -1) with radius 0.5
func NewSphereTestIntegrator() *SphereTestIntegrator {
	return &SphereTestIntegrator{
		Center: core.NewVec3(0, 0, -1),
		Radius: 0.5,
		Color:  core.NewVec3(1, 0, 0),
	}
}

// RayColor implements Integrator
func (s *SphereTestIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	if geometry.HitsSphere(s.Center, s.Radius, ray) {
		return s.Color
	}
	return BackgroundGradient(ray)
}

// NormalIntegrator maps the surface normal of the nearest hit from [-1,1] to [0,1] RGB
type NormalIntegrator struct {
	TMin float64
}

// RayColor implements Integrator
func (n NormalIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, n.TMin, math.Inf(1))
	if !isHit {
		return BackgroundGradient(ray)
	}
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}

// UVGradient colors each pixel by its viewport position: red grows to the right,
// green grows upwards, blue is constant
type UVGradient struct {
	Blue float64
}

// UVColor implements UVShader
func (g UVGradient) UVColor(u, v float64) core.Vec3 {
	return core.NewVec3(u, v, g.Blue)
}

package integrator

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color seen along ray in world.
	// The sampler is the only source of randomness.
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3
}

// UVShader computes a color directly from normalized viewport coordinates,
// without casting a ray
type UVShader interface {
	UVColor(u, v float64) core.Vec3
}

var (
	// BackgroundBottom is the sky color looking straight down
	BackgroundBottom = core.NewVec3(1.0, 1.0, 1.0)
	// BackgroundTop is the sky color looking straight up
	BackgroundTop = core.NewVec3(0.5, 0.7, 1.0)
)

// BackgroundGradient returns the sky color for a ray that escapes the scene.
// It depends only on the vertical component of the normalized direction.
func BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return BackgroundBottom.Multiply(1.0 - t).Add(BackgroundTop.Multiply(t))
}

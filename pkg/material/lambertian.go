package material

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// It aims at a random point of the unit sphere tangent to the surface at the hit point,
// so a lambertian surface never absorbs.
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	target := hit.Point.Add(hit.Normal).Add(core.RandomInUnitSphere(sampler))
	scattered := core.NewRay(hit.Point, target.Subtract(hit.Point))

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: l.Albedo,
	}, true
}

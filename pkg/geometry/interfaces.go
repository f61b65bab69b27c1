package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit reports the intersection of ray with the shape for t in [tMin, tMax], both inclusive
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

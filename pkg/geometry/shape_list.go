package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// ShapeList is an ordered collection of shapes that behaves as a single shape
type ShapeList struct {
	Shapes []Shape
}

// NewShapeList creates a list holding the given shapes
func NewShapeList(shapes ...Shape) *ShapeList {
	return &ShapeList{Shapes: shapes}
}

// Add appends a shape to the list
func (l *ShapeList) Add(shape Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Len returns the number of shapes in the list
func (l *ShapeList) Len() int {
	return len(l.Shapes)
}

// Hit returns the nearest intersection among all shapes in [tMin, tMax].
// Every member is tested against the closest hit found so far, so member order
// only changes how much work is done, never the result.
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// NewDefaultScene creates the four-sphere scene: a diffuse ball on a diffuse ground
// between a polished silver ball and a rough gold one
func NewDefaultScene() *Scene {
	s := NewScene("default", "Diffuse and metal spheres on a diffuse ground", geometry.DefaultCameraConfig())

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3)))
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3))
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0))

	return s
}

// NewEmptyScene creates a scene with no shapes; every ray sees the sky
func NewEmptyScene() *Scene {
	return NewScene("empty", "No objects, background gradient only", geometry.DefaultCameraConfig())
}

// NewMirrorsScene creates two perfect mirrors facing each other along the z axis,
// one in front of the camera and one behind it. The central ray bounces between
// them until the depth limit.
func NewMirrorsScene() *Scene {
	s := NewScene("mirrors", "Two facing perfect mirrors over a diffuse ground", geometry.DefaultCameraConfig())

	mirror := material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.0)
	s.AddSphere(core.NewVec3(0, 0, -2), 1, mirror)
	s.AddSphere(core.NewVec3(0, 0, 2), 1, mirror)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	return s
}

package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Default output resolution of the built-in scenes
const (
	DefaultWidth  = 600
	DefaultHeight = 300
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Description  string
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	World        *geometry.ShapeList // Objects in the scene, searched in order
	Width        int                 // Preferred image width
	Height       int                 // Preferred image height
}

// NewScene creates a scene with the given camera and shapes at the default resolution
func NewScene(name, description string, cameraConfig geometry.CameraConfig, shapes ...geometry.Shape) *Scene {
	return &Scene{
		Name:         name,
		Description:  description,
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		World:        geometry.NewShapeList(shapes...),
		Width:        DefaultWidth,
		Height:       DefaultHeight,
	}
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetWorld returns the aggregate of every shape in the scene
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}

// GetShapeCount returns the number of shapes in the scene
func (s *Scene) GetShapeCount() int {
	return s.World.Len()
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/loaders"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// NewSceneFromFile creates a scene from a JSON scene file
func NewSceneFromFile(path string) (*Scene, error) {
	sceneFile, err := loaders.LoadScene(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}

	s := FromSceneFile(sceneFile)
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// FromSceneFile converts a validated scene description into a scene
func FromSceneFile(sceneFile *loaders.SceneFile) *Scene {
	cameraConfig := geometry.DefaultCameraConfig()
	if c := sceneFile.Camera; c != nil {
		cameraConfig = geometry.CameraConfig{
			Origin:          toVec3(c.Origin),
			LowerLeftCorner: toVec3(c.LowerLeftCorner),
			Horizontal:      toVec3(c.Horizontal),
			Vertical:        toVec3(c.Vertical),
		}
	}

	s := NewScene(sceneFile.Name, sceneFile.Description, cameraConfig)
	if sceneFile.Size != nil {
		s.Width = sceneFile.Size.Width
		s.Height = sceneFile.Size.Height
	}

	for _, sphere := range sceneFile.Spheres {
		s.AddSphere(toVec3(sphere.Center), sphere.Radius, convertMaterial(sphere.Material))
	}
	return s
}

// convertMaterial maps a material description onto a material; the type was checked by Validate
func convertMaterial(spec loaders.MaterialSpec) material.Material {
	albedo := toVec3(spec.Albedo)
	if spec.Type == loaders.MaterialMetal {
		return material.NewMetal(albedo, spec.Fuzz)
	}
	return material.NewLambertian(albedo)
}

func toVec3(v []float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

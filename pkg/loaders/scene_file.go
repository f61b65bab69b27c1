package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Material types understood by the scene file format
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
)

// SceneFile is the parsed contents of a JSON scene description
type SceneFile struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Camera      *CameraSpec    `json:"camera,omitempty"` // nil means the standard viewport
	Spheres     []SphereSpec   `json:"spheres"`
	Size        *ImageSizeSpec `json:"size,omitempty"`
}

// CameraSpec describes a fixed viewport camera. Every vector is [x, y, z].
type CameraSpec struct {
	Origin          []float64 `json:"origin"`
	LowerLeftCorner []float64 `json:"lowerLeftCorner"`
	Horizontal      []float64 `json:"horizontal"`
	Vertical        []float64 `json:"vertical"`
}

// ImageSizeSpec is the preferred output resolution of a scene
type ImageSizeSpec struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SphereSpec describes one sphere and its material
type SphereSpec struct {
	Center   []float64    `json:"center"`
	Radius   float64      `json:"radius"`
	Material MaterialSpec `json:"material"`
}

// MaterialSpec describes a surface material
type MaterialSpec struct {
	Type   string    `json:"type"`
	Albedo []float64 `json:"albedo"`
	Fuzz   float64   `json:"fuzz,omitempty"` // metal only
}

// LoadScene reads and validates a JSON scene file
func LoadScene(filename string) (*SceneFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scene, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return scene, nil
}

// ParseScene decodes and validates a JSON scene description
func ParseScene(r io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var scene SceneFile
	if err := decoder.Decode(&scene); err != nil {
		return nil, fmt.Errorf("invalid scene JSON: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return &scene, nil
}

// Validate checks vector arity, radii and material types
func (s *SceneFile) Validate() error {
	if s.Camera != nil {
		vectors := map[string][]float64{
			"origin":          s.Camera.Origin,
			"lowerLeftCorner": s.Camera.LowerLeftCorner,
			"horizontal":      s.Camera.Horizontal,
			"vertical":        s.Camera.Vertical,
		}
		for name, v := range vectors {
			if len(v) != 3 {
				return fmt.Errorf("camera %s: expected 3 components, got %d", name, len(v))
			}
		}
	}

	if s.Size != nil && (s.Size.Width <= 0 || s.Size.Height <= 0) {
		return fmt.Errorf("size must be positive, got %dx%d", s.Size.Width, s.Size.Height)
	}

	for i, sphere := range s.Spheres {
		if len(sphere.Center) != 3 {
			return fmt.Errorf("sphere %d: center needs 3 components, got %d", i, len(sphere.Center))
		}
		if !(sphere.Radius > 0) {
			return fmt.Errorf("sphere %d: radius must be positive, got %g", i, sphere.Radius)
		}
		if err := sphere.Material.validate(); err != nil {
			return fmt.Errorf("sphere %d: %w", i, err)
		}
	}
	return nil
}

func (m MaterialSpec) validate() error {
	switch m.Type {
	case MaterialLambertian, MaterialMetal:
	default:
		return fmt.Errorf("unknown material type %q", m.Type)
	}
	if len(m.Albedo) != 3 {
		return fmt.Errorf("%s albedo needs 3 components, got %d", m.Type, len(m.Albedo))
	}
	if m.Type == MaterialLambertian && m.Fuzz != 0 {
		return fmt.Errorf("fuzz is only valid for metal")
	}
	return nil
}

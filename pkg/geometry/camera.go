package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// CameraConfig fixes an axis-aligned viewport in camera space
type CameraConfig struct {
	Origin          core.Vec3 `json:"origin"`          // Eye point
	LowerLeftCorner core.Vec3 `json:"lowerLeftCorner"` // Lower-left corner of the image plane
	Horizontal      core.Vec3 `json:"horizontal"`      // Full horizontal span of the image plane
	Vertical        core.Vec3 `json:"vertical"`        // Full vertical span of the image plane
}

// DefaultCameraConfig returns a 2:1 viewport x in [-2, 2], y in [-1, 1] on the plane z = -1,
// seen from the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Origin:          core.NewVec3(0, 0, 0),
		LowerLeftCorner: core.NewVec3(-2, -1, -1),
		Horizontal:      core.NewVec3(4, 0, 0),
		Vertical:        core.NewVec3(0, 2, 0),
	}
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera from its viewport configuration
func NewCamera(config CameraConfig) *Camera {
	return &Camera{
		origin:          config.Origin,
		lowerLeftCorner: config.LowerLeftCorner,
		horizontal:      config.Horizontal,
		vertical:        config.Vertical,
	}
}

// GetRay generates a ray for screen coordinates (u, v) where 0 <= u,v <= 1.
// (0, 0) is the lower-left corner of the image plane.
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return CameraConfig{
		Origin:          c.origin,
		LowerLeftCorner: c.lowerLeftCorner,
		Horizontal:      c.horizontal,
		Vertical:        c.vertical,
	}
}

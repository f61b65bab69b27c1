package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the nearest hit of an inspection ray and the shape it belongs to
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape
}

// inspectPixel casts the unjittered ray of pixel (pixelX, pixelY) and returns the nearest hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	u := float64(pixelX) / float64(width)
	v := float64(height-1-pixelY) / float64(height)
	ray := sceneObj.Camera.GetRay(u, v)

	// Same search as the shape list, remembering which shape won
	result := InspectResult{}
	closest := math.Inf(1)
	for _, shape := range sceneObj.World.Shapes {
		if hit, ok := shape.Hit(ray, integrator.HitEpsilon, closest); ok {
			closest = hit.T
			result = InspectResult{Hit: true, HitRecord: hit, Shape: shape}
		}
	}
	return result
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo.X, m.Albedo.Y, m.Albedo.Z)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo.X, m.Albedo.Y, m.Albedo.Z)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties

	default:
		return "unknown", properties
	}
}

func hexColor(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", int(r*255), int(g*255), int(b*255))
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}
	setup, err := req.resolve()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= setup.width || pixelY < 0 || pixelY >= setup.height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(setup.scene, setup.width, setup.height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	hit := result.HitRecord
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}

package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Radiance     [3]float64             `json:"radiance"` // Shaded color along the inspection ray
	LitBy        []string               `json:"litBy"`    // Types of the lights that reach the point
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains the closest surface hit under a pixel
type InspectResult struct {
	Hit      bool
	Ray      core.Ray
	Surface  geometry.SurfaceHit
	Radiance core.Vec3
	LitBy    []lights.LightType
}

// inspectPixel casts a ray through the center of the pixel and reports the first surface hit
func inspectPixel(sceneObj *scene.Scene, width, height int, planeWidth float64, pixelX, pixelY int) InspectResult {
	camera := sceneObj.GetCamera().ConfigureResolution(height, width, planeWidth)
	raytracer := renderer.NewRaytracer(sceneObj)

	ray := core.NewRayThrough(camera.Position(), camera.MapPixelToPlanePoint(float64(pixelX), float64(pixelY)))
	result := InspectResult{
		Ray:      ray,
		Radiance: raytracer.Shade(ray, 0),
	}

	hit, isHit := raytracer.ClosestIntersection(ray)
	if !isHit {
		return result
	}

	result.Hit = true
	result.Surface = hit

	point := ray.At(hit.T)
	for _, light := range sceneObj.GetLights() {
		if raytracer.IsLit(point, light) {
			result.LitBy = append(result.LitBy, light.Type())
		}
	}

	return result
}

// extractMaterialInfo classifies a material and lists its coefficients
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"ka":        vecToArray(mat.Ka),
		"kd":        vecToArray(mat.Kd),
		"ks":        vecToArray(mat.Ks),
		"shininess": mat.Shininess,
		"color": fmt.Sprintf("#%02x%02x%02x",
			int(255*clamp01(mat.Kd.X)), int(255*clamp01(mat.Kd.Y)), int(255*clamp01(mat.Kd.Z))),
	}
	if mat.Reflecting {
		properties["kr"] = vecToArray(mat.Kr)
	}
	if mat.Transparent {
		properties["kt"] = vecToArray(mat.Kt)
		properties["refractionIndex"] = mat.RefractionIndex
	}

	switch {
	case mat.Transparent:
		return "transparent", properties
	case mat.Reflecting:
		return "reflective", properties
	default:
		return "opaque", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecToArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.AxisAlignedBox:
		properties["min"] = vecToArray(geom.Min)
		properties["max"] = vecToArray(geom.Max)
		return "box", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	// Create request object for parameter parsing
	inspectReq := &RenderRequest{}

	// Parse common scene parameters using shared function
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	// Validate pixel coordinates
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result := inspectPixel(sceneObj, inspectReq.Width, inspectReq.Height, inspectReq.PlaneWidth, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Radiance: vecToArray(result.Radiance)})
		return
	}

	hit := result.Surface
	materialType, materialProps := s.extractMaterialInfo(hit.Surface.Material)
	geometryType, geometryProps := s.extractGeometryInfo(hit.Surface.Shape)

	litBy := make([]string, 0, len(result.LitBy))
	for _, lightType := range result.LitBy {
		litBy = append(litBy, string(lightType))
	}

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecToArray(result.Ray.At(hit.T)),
		Normal:       vecToArray(hit.Normal),
		Distance:     hit.T,
		Inside:       hit.Inside,
		Radiance:     vecToArray(result.Radiance),
		LitBy:        litBy,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}

func vecToArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}

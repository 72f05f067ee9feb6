package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port       int
	numWorkers int // 0 = auto-detect
}

// NewServer creates a new web server
func NewServer(port, numWorkers int) *Server {
	return &Server{port: port, numWorkers: numWorkers}
}

// RenderRequest represents a render request from the client.
// Nil overrides keep the scene's own settings.
type RenderRequest struct {
	Scene        string  `json:"scene"`      // Scene ID (e.g., "mirrors")
	Width        int     `json:"width"`      // Image width
	Height       int     `json:"height"`     // Image height
	PlaneWidth   float64 `json:"planeWidth"` // View plane width in world units
	MaxRecursion *int    `json:"maxRecursion,omitempty"`
	AntiAliasing *int    `json:"antiAliasing,omitempty"`
	Reflections  *bool   `json:"reflections,omitempty"`
	Refractions  *bool   `json:"refractions,omitempty"`
}

// Stats represents render statistics
type Stats struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	TotalPixels    int     `json:"totalPixels"`
	PrimaryRays    int     `json:"primaryRays"`
	Workers        int     `json:"workers"`
	RaysPerSecond  float64 `json:"raysPerSecond"`
	PrimitiveCount int     `json:"primitiveCount"`
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": scene.ListScenes()})
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.CreateScene(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.GetRenderConfig()
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"maxRecursion": config.MaxRecursionLevel,
			"antiAliasing": config.AntiAliasingFactor,
			"reflections":  config.RenderReflections,
			"refractions":  config.RenderRefractions,
		},
		"limits": map[string]interface{}{
			"width":        map[string]int{"min": 1, "max": 2000},
			"height":       map[string]int{"min": 1, "max": 2000},
			"maxRecursion": map[string]int{"min": 0, "max": 20},
			"antiAliasing": map[string]int{"min": 1, "max": 3},
			"planeWidth":   map[string]float64{"min": 0.01, "max": 100},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the scene, size and override parameters
// shared by the render and inspect endpoints
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 2000); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 225, 1, 2000); err != nil {
		return err
	}
	if req.PlaneWidth, err = parseFloatParam(query, "planeWidth", 2, 0.01, 100); err != nil {
		return err
	}
	if req.MaxRecursion, err = parseOptionalIntParam(query, "maxRecursion", 0, 20); err != nil {
		return err
	}
	if req.AntiAliasing, err = parseOptionalIntParam(query, "antiAliasing", 1, 3); err != nil {
		return err
	}
	if req.Reflections, err = parseOptionalBoolParam(query, "reflections"); err != nil {
		return err
	}
	if req.Refractions, err = parseOptionalBoolParam(query, "refractions"); err != nil {
		return err
	}

	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseOptionalIntParam is parseIntParam returning nil when the key is absent
func parseOptionalIntParam(values url.Values, key string, min, max int) (*int, error) {
	if values.Get(key) == "" {
		return nil, nil
	}
	parsed, err := parseIntParam(values, key, 0, min, max)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if !(parsed >= min && parsed <= max) {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func parseOptionalBoolParam(values url.Values, key string) (*bool, error) {
	value := values.Get(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", key, value)
	}
	return &parsed, nil
}

// createScene creates the requested scene with the request's overrides applied
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.CreateScene(req.Scene)
	if err != nil {
		return nil, err
	}

	if req.MaxRecursion != nil {
		sceneObj.WithMaxRecursionLevel(*req.MaxRecursion)
	}
	if req.AntiAliasing != nil {
		sceneObj.WithAntiAliasingFactor(*req.AntiAliasing)
	}
	if req.Reflections != nil {
		sceneObj.WithReflections(*req.Reflections)
	}
	if req.Refractions != nil {
		sceneObj.WithRefractions(*req.Refractions)
	}

	if err := sceneObj.Validate(); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

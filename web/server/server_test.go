package server

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

type sseRecord struct {
	event string
	data  string
}

// parseSSE splits a recorded SSE body into events
func parseSSE(t *testing.T, body string) []sseRecord {
	t.Helper()

	var records []sseRecord
	var current sseRecord
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if current.event != "" {
				records = append(records, current)
			}
			current = sseRecord{}
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Reading SSE body: %v", err)
	}
	return records
}

func serve(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewServer(0, 2).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := serve(t, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
}

func TestHandleScenes(t *testing.T) {
	rec := serve(t, "/api/scenes")

	var response struct {
		Scenes []struct {
			ID string `json:"id"`
		} `json:"scenes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(response.Scenes) != 4 {
		t.Errorf("Expected 4 scenes, got %d", len(response.Scenes))
	}
}

func TestHandleSceneConfig(t *testing.T) {
	rec := serve(t, "/api/scene-config?scene=mirrors")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		Defaults struct {
			MaxRecursion int  `json:"maxRecursion"`
			Reflections  bool `json:"reflections"`
		} `json:"defaults"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if response.Defaults.MaxRecursion != 5 || !response.Defaults.Reflections {
		t.Errorf("Unexpected defaults: %+v", response.Defaults)
	}

	if rec := serve(t, "/api/scene-config?scene=nope"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown scene, got %d", rec.Code)
	}
}

func TestParseCommonSceneParams(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"Defaults", "", false},
		{"All set", "scene=mirrors&width=64&height=32&planeWidth=3&maxRecursion=2&antiAliasing=3&reflections=true&refractions=0", false},
		{"Width too large", "width=5000", true},
		{"Bad height", "height=tall", true},
		{"Plane width zero", "planeWidth=0", true},
		{"Anti-aliasing out of range", "antiAliasing=4", true},
		{"Bad bool", "reflections=maybe", true},
	}

	s := NewServer(0, 2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/render?"+tt.query, nil)
			req := &RenderRequest{}
			err := s.parseCommonSceneParams(r, req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%t, got %v", tt.wantErr, err)
			}
			if tt.wantErr {
				return
			}
			if tt.query == "" {
				if req.Scene != "default" || req.Width != 400 || req.Height != 225 || req.PlaneWidth != 2 {
					t.Errorf("Unexpected defaults: %+v", req)
				}
				if req.MaxRecursion != nil || req.Reflections != nil {
					t.Errorf("Expected no overrides: %+v", req)
				}
			}
		})
	}
}

func TestHandleRender_StreamsImage(t *testing.T) {
	query := url.Values{}
	query.Set("scene", "empty")
	query.Set("width", "8")
	query.Set("height", "4")
	rec := serve(t, "/api/render?"+query.Encode())

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected SSE content type, got %q", ct)
	}

	events := parseSSE(t, rec.Body.String())
	if len(events) == 0 {
		t.Fatal("Expected SSE events")
	}

	counts := make(map[string]int)
	for _, e := range events {
		counts[e.event]++
	}
	if counts["console"] == 0 {
		t.Error("Expected console messages from the render")
	}
	if counts["progress"] != 4 {
		t.Errorf("Expected one progress event per row, got %d", counts["progress"])
	}

	last := events[len(events)-1]
	if last.event != "complete" {
		t.Fatalf("Expected final complete event, got %q: %s", last.event, last.data)
	}

	var update CompleteUpdate
	if err := json.Unmarshal([]byte(last.data), &update); err != nil {
		t.Fatalf("Invalid completion payload: %v", err)
	}
	if update.Stats.TotalPixels != 32 || update.Stats.Workers != 2 {
		t.Errorf("Unexpected stats: %+v", update.Stats)
	}

	raw, err := base64.StdEncoding.DecodeString(update.ImageData)
	if err != nil {
		t.Fatalf("Invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Invalid PNG: %v", err)
	}
	r, g, b, _ := img.At(3, 2).RGBA()
	if r>>8 != 0 || g>>8 != 127 || b>>8 != 255 {
		t.Errorf("Expected background pixel (0,127,255), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"Invalid parameter", "width=0"},
		{"Unknown scene", "scene=nope&width=8&height=8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := parseSSE(t, serve(t, "/api/render?"+tt.query).Body.String())
			if len(events) == 0 || events[len(events)-1].event != "error" {
				t.Errorf("Expected a final error event, got %+v", events)
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	t.Run("Hit", func(t *testing.T) {
		// The default scene's red sphere sits left of center
		rec := serve(t, "/api/inspect?scene=default&width=400&height=225&x=120&y=112")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var response InspectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if !response.Hit {
			t.Fatal("Expected a hit")
		}
		if response.GeometryType != "sphere" {
			t.Errorf("Expected sphere, got %q", response.GeometryType)
		}
		if response.Distance <= 0 {
			t.Errorf("Expected positive distance, got %f", response.Distance)
		}
	})

	t.Run("Miss", func(t *testing.T) {
		rec := serve(t, "/api/inspect?scene=empty&width=10&height=10&x=5&y=5")
		var response InspectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if response.Hit {
			t.Error("Expected no hit in the empty scene")
		}
		if response.Radiance != [3]float64{0, 0.5, 1} {
			t.Errorf("Expected background radiance, got %v", response.Radiance)
		}
	})

	t.Run("Out of bounds", func(t *testing.T) {
		if rec := serve(t, "/api/inspect?scene=empty&width=10&height=10&x=10&y=0"); rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("Bad coordinate", func(t *testing.T) {
		if rec := serve(t, "/api/inspect?scene=empty&x=a&y=0"); rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}

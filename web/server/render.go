package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "complete", "error"
	Data string `json:"data"` // JSON-encoded data
}

// ProgressUpdate is sent after every completed row of pixels
type ProgressUpdate struct {
	Completed int   `json:"completed"`
	Total     int   `json:"total"`
	ElapsedMs int64 `json:"elapsedMs"`
}

// CompleteUpdate carries the finished image
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// RenderingPipeline contains the configured scene and scheduler
type RenderingPipeline struct {
	Scene     *scene.Scene
	Scheduler *renderer.Scheduler
}

// handleRender renders a scene and streams console messages, progress and
// the final image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine; it drains the channel until it is closed
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(w, ctx, sseEventChan)
		close(writerDone)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	// Parse and validate request
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
		close(consoleDone)
	}()
	stopConsole := func() {
		close(consoleChan)
		<-consoleDone
	}

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		stopConsole()
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	startTime := time.Now()
	img, stats, err := pipeline.Scheduler.RenderWithOptions(ctx, renderer.RenderOptions{
		Width:      req.Width,
		Height:     req.Height,
		PlaneWidth: req.PlaneWidth,
		OnProgress: func(p renderer.RenderProgress) {
			s.handleProgress(ctx, sseEventChan, p, startTime)
		},
	})
	stopConsole()

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	s.handleComplete(ctx, sseEventChan, img, stats, pipeline.Scene, startTime)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents writes all SSE events from a single goroutine. Once the
// client is gone it keeps draining so senders never block.
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent) {
	broken := false
	for event := range sseEventChan {
		if broken || ctx.Err() != nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			// Client disconnected during write
			broken = true
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		}
	}
}

// setupRenderingPipeline creates and configures the scene and scheduler
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, err
	}

	scheduler := renderer.NewScheduler(sceneObj, renderer.SchedulerConfig{NumWorkers: s.numWorkers}, logger)
	return &RenderingPipeline{
		Scene:     sceneObj,
		Scheduler: scheduler,
	}, nil
}

// handleProgress sends a progress event
func (s *Server) handleProgress(ctx context.Context, sseEventChan chan<- SSEEvent, p renderer.RenderProgress, startTime time.Time) {
	data, err := json.Marshal(ProgressUpdate{
		Completed: p.Completed,
		Total:     p.Total,
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
	if err != nil {
		log.Printf("Error marshaling progress update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "progress", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleComplete encodes the final image and sends the completion event
func (s *Server) handleComplete(ctx context.Context, sseEventChan chan<- SSEEvent, img image.Image, stats renderer.RenderStats, sceneObj *scene.Scene, startTime time.Time) {
	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	data, err := json.Marshal(CompleteUpdate{
		ImageData: imageData,
		Stats: Stats{
			Width:          stats.Width,
			Height:         stats.Height,
			TotalPixels:    stats.TotalPixels,
			PrimaryRays:    stats.PrimaryRays,
			Workers:        stats.Workers,
			RaysPerSecond:  stats.RaysPerSecond(),
			PrimitiveCount: sceneObj.GetPrimitiveCount(),
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
	if err != nil {
		log.Printf("Error marshaling completion: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}

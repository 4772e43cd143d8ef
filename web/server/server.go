// Package server exposes the renderer over HTTP: single frames as PNG and
// animations as a Server-Sent Events stream of base64 frames.
package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// FrameRequest represents a frame render request from the client
type FrameRequest struct {
	Width    int     // image width
	Height   int     // image height
	MaxDepth int     // recursion bound for the evaluator
	Time     float64 // animation clock value
	Frames   int     // frame count, animation stream only
	TimeStep float64 // clock advance per frame, animation stream only
}

// FrameUpdate is a single SSE animation update
type FrameUpdate struct {
	FrameNumber int     `json:"frameNumber"`
	TotalFrames int     `json:"totalFrames"`
	Time        float64 `json:"time"`
	ImageData   string  `json:"imageData"` // base64 encoded PNG
	AvgFrameMs  float64 `json:"avgFrameMs"`
	IsComplete  bool    `json:"isComplete"`
	ElapsedMs   int64   `json:"elapsedMs"`
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Handler returns a mux with the server's routes, for embedding and tests
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/frame", s.handleFrame)
	mux.HandleFunc("/api/animate", s.handleAnimate)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleIndex serves the embedded viewer page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

// handleFrame renders a single frame and returns it as PNG
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	req, err := parseFrameRequest(r.URL.Query())
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	surface := renderFrame(req)

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, surface.ToImage()); err != nil {
		log.Printf("encoding frame: %v", err)
	}
}

// handleAnimate streams an animation as Server-Sent Events
func (s *Server) handleAnimate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := parseFrameRequest(r.URL.Query())
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sc := scene.New()
	camera := renderer.NewCamera(req.Width, req.Height)
	rt := renderer.NewRenderer(sc, camera, renderer.Config{
		Width:    req.Width,
		Height:   req.Height,
		MaxDepth: req.MaxDepth,
	})
	surface := renderer.NewSurface(req.Width, req.Height)

	ctx := r.Context()
	startTime := time.Now()
	for frame := 0; frame < req.Frames; frame++ {
		if ctx.Err() != nil {
			return // client disconnected
		}
		t := req.Time + float64(frame)*req.TimeStep
		sc.SetTime(t)
		rt.Tick(0, surface)

		imageData, err := imageToBase64PNG(surface)
		if err != nil {
			s.sendSSEError(w, fmt.Sprintf("Encode error: %v", err))
			return
		}
		update := FrameUpdate{
			FrameNumber: frame + 1,
			TotalFrames: req.Frames,
			Time:        t,
			ImageData:   imageData,
			AvgFrameMs:  rt.Stats().AvgFrameMs,
			IsComplete:  frame == req.Frames-1,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		}
		if err := s.sendSSEUpdate(w, update); err != nil {
			return
		}
	}
	s.sendSSEEvent(w, "complete", "Animation completed")
}

// parseFrameRequest parses and validates request parameters
func parseFrameRequest(query url.Values) (*FrameRequest, error) {
	req := &FrameRequest{}
	var err error
	if req.Width, err = parseIntParam(query, "width", 640, 64, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 360, 64, 2000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 8, 1, 64); err != nil {
		return nil, err
	}
	if req.Frames, err = parseIntParam(query, "frames", 60, 1, 3600); err != nil {
		return nil, err
	}
	if req.Time, err = parseFloatParam(query, "time", 0); err != nil {
		return nil, err
	}
	if req.TimeStep, err = parseFloatParam(query, "step", 1.0/30); err != nil {
		return nil, err
	}
	return req, nil
}

func parseIntParam(query url.Values, name string, def, minVal, maxVal int) (int, error) {
	raw := query.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", name, err)
	}
	if v < minVal || v > maxVal {
		return 0, fmt.Errorf("parameter %s must be between %d and %d", name, minVal, maxVal)
	}
	return v, nil
}

func parseFloatParam(query url.Values, name string, def float64) (float64, error) {
	raw := query.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", name, err)
	}
	return v, nil
}

// renderFrame renders one frame for a request
func renderFrame(req *FrameRequest) *renderer.Surface {
	sc := scene.New()
	sc.SetTime(req.Time)
	camera := renderer.NewCamera(req.Width, req.Height)
	rt := renderer.NewRenderer(sc, camera, renderer.Config{
		Width:    req.Width,
		Height:   req.Height,
		MaxDepth: req.MaxDepth,
	})
	surface := renderer.NewSurface(req.Width, req.Height)
	rt.Tick(0, surface)
	return surface
}

// imageToBase64PNG encodes a surface as a base64 PNG string
func imageToBase64PNG(surface *renderer.Surface) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, surface.ToImage()); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEUpdate sends a frame update as an SSE data event
func (s *Server) sendSSEUpdate(w http.ResponseWriter, update FrameUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// sendSSEEvent sends a named SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, message string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, message)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// sendSSEError sends an error as an SSE event
func (s *Server) sendSSEError(w http.ResponseWriter, message string) {
	s.sendSSEEvent(w, "error", message)
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Whitted Raytracer</title></head>
<body style="background:#111;color:#ddd;font-family:sans-serif;text-align:center">
<h2>Whitted Raytracer</h2>
<img id="frame" width="640" height="360" style="image-rendering:pixelated">
<p id="stats"></p>
<script>
const img = document.getElementById('frame');
const stats = document.getElementById('stats');
const es = new EventSource('/api/animate?frames=600');
es.onmessage = (e) => {
  const u = JSON.parse(e.data);
  img.src = 'data:image/png;base64,' + u.imageData;
  stats.textContent = 'frame ' + u.frameNumber + '/' + u.totalFrames +
    ' - ' + u.avgFrameMs.toFixed(2) + 'ms avg';
  if (u.isComplete) es.close();
};
es.addEventListener('error', () => es.close());
</script>
</body>
</html>
`

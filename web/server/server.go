package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/df07/go-weekend-raytracer/pkg/publish"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	console   *Console
	publisher *publish.Publisher // nil disables /api/publish
	renders   atomic.Int64
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port, console: NewConsole(DefaultConsoleSize)}
}

// SetPublisher enables publishing renders to object storage
func (s *Server) SetPublisher(publisher *publish.Publisher) {
	s.publisher = publisher
}

// ModeInfo describes a render mode for the API
type ModeInfo struct {
	Name            string `json:"name"`
	Key             string `json:"key"`
	Description     string `json:"description"`
	Antialias       bool   `json:"antialias"`
	SamplesPerPixel int    `json:"samplesPerPixel"`
	MaxDepth        int    `json:"maxDepth"`
}

// ModesResponse is the body of /api/modes
type ModesResponse struct {
	Modes  []ModeInfo        `json:"modes"`
	Scenes []scene.SceneInfo `json:"scenes"`
}

// Handler returns the HTTP handler serving every API endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/modes", s.handleModes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/console", s.handleConsole)
	mux.HandleFunc("/api/publish", s.handlePublish)
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

// handleModes lists render modes and available scenes
func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := ModesResponse{Scenes: scenes}
	for _, mode := range renderer.Modes() {
		response.Modes = append(response.Modes, ModeInfo{
			Name:            mode.Name,
			Key:             string(mode.Key),
			Description:     mode.Description,
			Antialias:       mode.Config.Antialias,
			SamplesPerPixel: mode.Config.SamplesPerPixel,
			MaxDepth:        mode.Config.MaxDepth,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

// handleConsole returns recent render log messages
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.console.Messages())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

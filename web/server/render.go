package server

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nfnt/resize"

	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Request limits
const (
	MaxImageSize = 1024
	MaxSamples   = 1000
	MaxDepth     = 100
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Mode      string // Render mode name
	Scene     string // Scene name or file:<name> ID
	Width     int    // Image width, 0 = scene default
	Height    int    // Image height, 0 = scene default
	Samples   int    // Samples per pixel, 0 = mode default
	Depth     *int   // Max bounces, nil = mode default
	Antialias *bool  // Jittered supersampling, nil = mode default
	Seed      int64  // Random seed, 0 = mode default
	Thumb     int    // Bounding box of a thumbnail, 0 = full size
}

// parseRenderRequest parses and validates the query parameters shared by render endpoints
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{
		Mode:  values.Get("mode"),
		Scene: values.Get("scene"),
	}
	if req.Mode == "" {
		req.Mode = "materials"
	}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 1, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, MaxSamples); err != nil {
		return nil, err
	}
	if values.Get("depth") != "" {
		depth, err := parseIntParam(values, "depth", 0, 0, MaxDepth)
		if err != nil {
			return nil, err
		}
		req.Depth = &depth
	}
	if value := values.Get("antialias"); value != "" {
		antialias, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid antialias: %s", value)
		}
		req.Antialias = &antialias
	}
	if req.Thumb, err = parseIntParam(values, "thumb", 0, 1, MaxImageSize); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	return req, nil
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

// renderSetup is a resolved request ready to render
type renderSetup struct {
	scene  *scene.Scene
	mode   renderer.Mode
	width  int
	height int
}

// resolve looks up the mode and scene and fills in default sizes
func (req *RenderRequest) resolve() (*renderSetup, error) {
	mode, err := renderer.ModeByName(req.Mode)
	if err != nil {
		return nil, err
	}
	sceneObj, err := scene.ByName(req.Scene)
	if err != nil {
		return nil, err
	}

	setup := &renderSetup{scene: sceneObj, mode: mode, width: sceneObj.Width, height: sceneObj.Height}
	if req.Width > 0 {
		setup.width = req.Width
	}
	if req.Height > 0 {
		setup.height = req.Height
	}
	setup.width = min(setup.width, MaxImageSize)
	setup.height = min(setup.height, MaxImageSize)
	return setup, nil
}

// render produces the image for a request, thumbnailed when requested
func (s *Server) render(req *RenderRequest) (image.Image, renderer.RenderStats, error) {
	setup, err := req.resolve()
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))

	raytracer := renderer.NewRaytracer(setup.scene, setup.width, setup.height)
	raytracer.SetMode(setup.mode)
	raytracer.MergeSamplingConfig(renderer.SamplingOverrides{
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.Depth,
		Antialias:       req.Antialias,
		Seed:            req.Seed,
	})
	raytracer.SetLogger(NewWebLogger(renderID, s.console))

	img, stats := raytracer.RenderPass()
	if req.Thumb > 0 {
		return resize.Thumbnail(uint(req.Thumb), uint(req.Thumb), img, resize.Lanczos3), stats, nil
	}
	return img, stats, nil
}

// handleRender renders a single image and returns it as PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	img, stats, err := s.render(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := imageio.EncodeImage(&buf, img, "png"); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Mode", stats.Mode)
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handlePublish renders a PNG and uploads it, returning the public URL
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}
	if s.publisher == nil {
		writeError(w, http.StatusServiceUnavailable, "publishing is not configured")
		return
	}

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	img, _, err := s.render(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := imageio.EncodeImage(&buf, img, "png"); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	bounds := img.Bounds()
	sceneName := strings.ReplaceAll(req.Scene, ":", "-")
	name := fmt.Sprintf("%s-%s-%dx%d-%d.png", sceneName, req.Mode, bounds.Dx(), bounds.Dy(), req.Seed)
	url, err := s.publisher.Upload(r.Context(), name, buf.Bytes(), "image/png")
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

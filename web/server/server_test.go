package server

import (
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-weekend-raytracer/pkg/publish"
)

// fakeS3 accepts every upload
type fakeS3 struct {
	s3iface.S3API
	keys []string
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	io.Copy(io.Discard, input.Body)
	f.keys = append(f.keys, aws.StringValue(input.Key))
	return &s3.PutObjectOutput{}, nil
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, NewServer(0), http.MethodGet, "/api/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleModes(t *testing.T) {
	rec := doRequest(t, NewServer(0), http.MethodGet, "/api/modes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body ModesResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(body.Modes) != 6 {
		t.Errorf("Expected 6 modes, got %d", len(body.Modes))
	}
	if body.Modes[0].Name != "uv" || body.Modes[0].Key != "1" {
		t.Errorf("Unexpected first mode: %+v", body.Modes[0])
	}
	if len(body.Scenes) < 3 {
		t.Errorf("Expected at least the built-in scenes, got %d", len(body.Scenes))
	}
}

func TestHandleRender(t *testing.T) {
	s := NewServer(0)
	rec := doRequest(t, s, http.MethodGet, "/api/render?mode=uv&scene=empty&width=8&height=4")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}
	if mode := rec.Header().Get("X-Render-Mode"); mode != "uv" {
		t.Errorf("Expected X-Render-Mode uv, got %s", mode)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Fatalf("Expected 8x4, got %v", img.Bounds())
	}

	// Bottom-left pixel is u=0, v=0: (0, 0, 0.2)
	r, g, b, _ := img.At(0, 3).RGBA()
	if r != 0 || g != 0 || b>>8 != 51 {
		t.Errorf("Expected (0, 0, 51), got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}

	if len(s.console.Messages()) == 0 {
		t.Error("Render should log to the console")
	}
}

func TestHandleRender_Thumbnail(t *testing.T) {
	rec := doRequest(t, NewServer(0), http.MethodGet, "/api/render?mode=background&scene=empty&width=64&height=32&thumb=16")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Errorf("Expected 16x8 thumbnail, got %v", img.Bounds())
	}
}

func TestHandleRender_ZeroDepth(t *testing.T) {
	rec := doRequest(t, NewServer(0), http.MethodGet, "/api/render?mode=materials&scene=default&width=4&height=2&depth=0&antialias=false")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}

	// Bottom-right ray (1, -1, -1) hits the ground; no bounces left means black
	if r, g, b, _ := img.At(3, 1).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Errorf("Expected black ground pixel, got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
	// Top-left ray misses and keeps the sky
	if r, _, _, _ := img.At(0, 0).RGBA(); r == 0 {
		t.Error("Expected sky at the top-left pixel")
	}
}

func TestParseRenderRequest_DepthAndAntialias(t *testing.T) {
	req, err := parseRenderRequest(url.Values{"depth": {"0"}, "antialias": {"false"}})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if req.Depth == nil || *req.Depth != 0 {
		t.Errorf("Expected explicit depth 0, got %v", req.Depth)
	}
	if req.Antialias == nil || *req.Antialias {
		t.Errorf("Expected antialias false, got %v", req.Antialias)
	}

	req, err = parseRenderRequest(url.Values{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if req.Depth != nil || req.Antialias != nil {
		t.Error("Expected unset depth and antialias to keep mode defaults")
	}
}

func TestHandleRender_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"zero width", "width=0"},
		{"too wide", "width=5000"},
		{"too tall", "height=1025"},
		{"non-numeric samples", "samples=lots"},
		{"too deep", "depth=1000"},
		{"negative depth", "depth=-1"},
		{"bad antialias", "antialias=maybe"},
		{"bad seed", "seed=x"},
		{"unknown mode", "mode=chapter2"},
		{"unknown scene", "scene=cornell-box"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, NewServer(0), http.MethodGet, "/api/render?"+tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "error") {
				t.Errorf("Expected JSON error body, got %s", rec.Body.String())
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	// Pixel (1, 0) of a 2x2 image looks straight down -z at the center sphere
	rec := doRequest(t, NewServer(0), http.MethodGet, "/api/inspect?scene=default&width=2&height=2&x=1&y=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !body.Hit {
		t.Fatal("Expected a hit")
	}
	if body.MaterialType != "lambertian" || body.GeometryType != "sphere" {
		t.Errorf("Unexpected types: %s / %s", body.MaterialType, body.GeometryType)
	}
	if body.Distance != 0.5 {
		t.Errorf("Expected distance 0.5, got %v", body.Distance)
	}
	if body.Normal != [3]float64{0, 0, 1} {
		t.Errorf("Expected normal (0, 0, 1), got %v", body.Normal)
	}
}

func TestHandleInspect_Miss(t *testing.T) {
	rec := doRequest(t, NewServer(0), http.MethodGet, "/api/inspect?scene=empty&width=2&height=2&x=0&y=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body.Hit {
		t.Error("Empty scene should not be hit")
	}
}

func TestHandleInspect_BadCoordinates(t *testing.T) {
	for _, query := range []string{"x=2&y=0", "x=0&y=-1", "x=a&y=0", "x=0"} {
		rec := doRequest(t, NewServer(0), http.MethodGet, "/api/inspect?scene=empty&width=2&height=2&"+query)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestHandlePublish(t *testing.T) {
	s := NewServer(0)

	if rec := doRequest(t, s, http.MethodGet, "/api/publish"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: expected 405, got %d", rec.Code)
	}
	if rec := doRequest(t, s, http.MethodPost, "/api/publish"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Unconfigured: expected 503, got %d", rec.Code)
	}

	fake := &fakeS3{}
	s.SetPublisher(publish.NewPublisherWithClient(publish.Config{Bucket: "renders", CDNURL: "https://cdn.example.com"}, fake))

	rec := doRequest(t, s, http.MethodPost, "/api/publish?mode=uv&scene=empty&width=4&height=2&seed=9")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["url"] != "https://cdn.example.com/empty-uv-4x2-9.png" {
		t.Errorf("Unexpected URL: %s", body["url"])
	}
	if len(fake.keys) != 1 || fake.keys[0] != "empty-uv-4x2-9.png" {
		t.Errorf("Unexpected uploads: %v", fake.keys)
	}
}

func TestHandleConsole(t *testing.T) {
	s := NewServer(0)
	doRequest(t, s, http.MethodGet, "/api/render?mode=background&scene=empty&width=2&height=2")

	rec := doRequest(t, s, http.MethodGet, "/api/console")
	var messages []ConsoleMessage
	if err := json.NewDecoder(rec.Body).Decode(&messages); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(messages) != 1 || messages[0].RenderID != "render-1" {
		t.Errorf("Unexpected console messages: %+v", messages)
	}
}

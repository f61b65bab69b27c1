package renderer

import (
	"image"
	"image/color"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of jittered rays per pixel when antialiasing
	MaxDepth        int   // Maximum ray bounce depth
	Antialias       bool  // Jitter, average and gamma-correct samples; otherwise one centered-corner ray
	Seed            int64 // Seed of the raytracer's random source
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        integrator.DefaultMaxDepth,
		Antialias:       true,
		Seed:            42, // Deterministic for testing
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *geometry.Camera
	GetWorld() geometry.Shape
}

// Raytracer turns a scene into a pixel buffer
type Raytracer struct {
	scene      Scene
	width      int
	height     int
	mode       Mode
	config     SamplingConfig
	integrator integrator.Integrator
	uvShader   integrator.UVShader
	sampler    core.Sampler
	logger     core.Logger
}

// NewRaytracer creates a new raytracer using the full material mode
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	rt := &Raytracer{
		scene:  scene,
		width:  width,
		height: height,
	}
	rt.SetMode(MaterialsMode())
	return rt
}

// SetMode switches the color computation and resets sampling to the mode's defaults
func (rt *Raytracer) SetMode(mode Mode) {
	rt.mode = mode
	rt.SetSamplingConfig(mode.Config)
}

// Mode returns the current render mode
func (rt *Raytracer) Mode() Mode {
	return rt.mode
}

// SetSamplingConfig updates the sampling configuration and reseeds the random source
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
	rt.sampler = core.NewSeededSampler(config.Seed)
	rt.integrator, rt.uvShader = rt.mode.build(config)
}

// SamplingOverrides lists the sampling fields a caller wants to change.
// Zero counts and nil pointers keep the current value, so a bounce budget
// of 0 or turning antialiasing off needs the pointer fields.
type SamplingOverrides struct {
	SamplesPerPixel int
	MaxDepth        *int
	Antialias       *bool
	Seed            int64
}

// MergeSamplingConfig applies only the fields set in updates
func (rt *Raytracer) MergeSamplingConfig(updates SamplingOverrides) {
	rt.SetSamplingConfig(MergeSamplingConfig(rt.config, updates))
}

// GetSamplingConfig returns the current sampling configuration
func (rt *Raytracer) GetSamplingConfig() SamplingConfig {
	return rt.config
}

// SetSampler replaces the random source, e.g. with a scripted sampler in tests
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// SetLogger sets the logger used for render summaries
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// MergeSamplingConfig returns base with every set field of updates applied
func MergeSamplingConfig(base SamplingConfig, updates SamplingOverrides) SamplingConfig {
	merged := base
	if updates.SamplesPerPixel != 0 {
		merged.SamplesPerPixel = updates.SamplesPerPixel
	}
	if updates.MaxDepth != nil {
		merged.MaxDepth = *updates.MaxDepth
	}
	if updates.Antialias != nil {
		merged.Antialias = *updates.Antialias
	}
	if updates.Seed != 0 {
		merged.Seed = updates.Seed
	}
	return merged
}

// shade returns the linear color for viewport coordinates (u, v)
func (rt *Raytracer) shade(u, v float64) core.Vec3 {
	if rt.uvShader != nil {
		return rt.uvShader.UVColor(u, v)
	}
	ray := rt.scene.GetCamera().GetRay(u, v)
	return rt.integrator.RayColor(ray, rt.scene.GetWorld(), rt.sampler)
}

// samplesPerPixel returns the number of rays cast per pixel
func (rt *Raytracer) samplesPerPixel() int {
	if !rt.config.Antialias || rt.config.SamplesPerPixel < 1 {
		return 1
	}
	return rt.config.SamplesPerPixel
}

// PixelColor returns the color of pixel (col, row) before quantization.
// Row 0 is the top of the image; the viewport's v axis points up.
func (rt *Raytracer) PixelColor(col, row int) core.Vec3 {
	j := rt.height - 1 - row
	width, height := float64(rt.width), float64(rt.height)

	if !rt.config.Antialias {
		return rt.shade(float64(col)/width, float64(j)/height)
	}

	// Accumulate color from multiple samples
	samples := rt.samplesPerPixel()
	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}
	for sample := 0; sample < samples; sample++ {
		jitter := rt.sampler.Get2D()
		u := (float64(col) + jitter.X) / width
		v := (float64(j) + jitter.Y) / height
		colorAccum = colorAccum.Add(rt.shade(u, v))
	}

	// Average, then gamma 2
	return colorAccum.Divide(float64(samples)).Sqrt()
}

// RenderPass renders every pixel, top row first and left to right within a row
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))

	for row := 0; row < rt.height; row++ {
		for col := 0; col < rt.width; col++ {
			img.SetRGBA(col, row, ToRGBA(rt.PixelColor(col, row)))
		}
	}

	stats := RenderStats{
		Mode:            rt.mode.Name,
		TotalPixels:     rt.width * rt.height,
		SamplesPerPixel: rt.samplesPerPixel(),
		TotalSamples:    rt.width * rt.height * rt.samplesPerPixel(),
		Duration:        time.Since(startTime),
	}

	if rt.logger != nil {
		rt.logger.Printf("Rendered %dx%d %s in %v (%d samples/pixel)\n",
			rt.width, rt.height, stats.Mode, stats.Duration, stats.SamplesPerPixel)
	}

	return img, stats
}

// ToRGBA quantizes a linear color to 8 bits per channel
func ToRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: QuantizeChannel(c.X),
		G: QuantizeChannel(c.Y),
		B: QuantizeChannel(c.Z),
		A: 255,
	}
}

// QuantizeChannel maps [0, 1] to [0, 255] as floor(255.99 * x).
// Values outside [0, 1] are clamped first and NaN becomes 0.
func QuantizeChannel(x float64) uint8 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		x = 1
	}
	return uint8(255.99 * x)
}

package renderer

import (
	"fmt"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// Mode selects how pixel colors are computed
type Mode struct {
	Name        string
	Key         rune // Preview window hotkey
	Description string
	Config      SamplingConfig // Sampling defaults for the mode

	newIntegrator func(config SamplingConfig) integrator.Integrator
	uvShader      integrator.UVShader
}

// build returns the integrator or UV shader for the mode with the given configuration
func (m Mode) build(config SamplingConfig) (integrator.Integrator, integrator.UVShader) {
	if m.uvShader != nil {
		return nil, m.uvShader
	}
	if m.newIntegrator == nil {
		return integrator.NewPathTracingIntegrator(config.MaxDepth), nil
	}
	return m.newIntegrator(config), nil
}

// fixedConfig is the sampling configuration for single-ray diagnostic modes
func fixedConfig() SamplingConfig {
	return SamplingConfig{SamplesPerPixel: 1, MaxDepth: integrator.DefaultMaxDepth, Seed: 42}
}

// UVMode colors pixels by viewport coordinate
func UVMode() Mode {
	return Mode{
		Name:        "uv",
		Key:         '1',
		Description: "Viewport coordinate gradient, no rays",
		Config:      fixedConfig(),
		uvShader:    integrator.UVGradient{Blue: 0.2},
	}
}

// BackgroundMode renders only the sky gradient
func BackgroundMode() Mode {
	return Mode{
		Name:        "background",
		Key:         '3',
		Description: "Sky gradient only",
		Config:      fixedConfig(),
		newIntegrator: func(SamplingConfig) integrator.Integrator {
			return integrator.BackgroundIntegrator{}
		},
	}
}

// SphereMode renders the fixed red test sphere
func SphereMode() Mode {
	return Mode{
		Name:        "sphere",
		Key:         '4',
		Description: "Red test sphere over the sky",
		Config:      fixedConfig(),
		newIntegrator: func(SamplingConfig) integrator.Integrator {
			return integrator.NewSphereTestIntegrator()
		},
	}
}

// NormalsMode shades scene hits by surface normal
func NormalsMode() Mode {
	return Mode{
		Name:        "normals",
		Key:         '5',
		Description: "Surface normals of the scene",
		Config:      fixedConfig(),
		newIntegrator: func(SamplingConfig) integrator.Integrator {
			return integrator.NormalIntegrator{TMin: 0}
		},
	}
}

// AntialiasedNormalsMode shades scene hits by surface normal with jittered samples
func AntialiasedNormalsMode() Mode {
	return Mode{
		Name:        "normals-aa",
		Key:         '6',
		Description: "Antialiased surface normals of the scene",
		Config:      SamplingConfig{SamplesPerPixel: 10, MaxDepth: integrator.DefaultMaxDepth, Antialias: true, Seed: 42},
		newIntegrator: func(SamplingConfig) integrator.Integrator {
			return integrator.NormalIntegrator{TMin: 0}
		},
	}
}

// MaterialsMode runs the full scattering estimator
func MaterialsMode() Mode {
	return Mode{
		Name:        "materials",
		Key:         '7',
		Description: "Diffuse and metal materials, path traced",
		Config:      DefaultSamplingConfig(),
	}
}

// Modes returns every render mode in hotkey order
func Modes() []Mode {
	return []Mode{UVMode(), BackgroundMode(), SphereMode(), NormalsMode(), AntialiasedNormalsMode(), MaterialsMode()}
}

// ModeByName looks up a render mode by name, case-insensitively
func ModeByName(name string) (Mode, error) {
	for _, mode := range Modes() {
		if strings.EqualFold(mode.Name, name) {
			return mode, nil
		}
	}
	return Mode{}, fmt.Errorf("unknown render mode: %q", name)
}

// ModeByKey looks up a render mode by preview hotkey
func ModeByKey(key rune) (Mode, bool) {
	for _, mode := range Modes() {
		if mode.Key == key {
			return mode, true
		}
	}
	return Mode{}, false
}

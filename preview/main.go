package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

func main() {
	sceneName := flag.String("scene", "default", "Scene name or file:<name>")
	width := flag.Int("width", scene.DefaultWidth, "Window width")
	height := flag.Int("height", scene.DefaultHeight, "Window height")
	outDir := flag.String("out", "output", "Directory for the PPM dump on exit")
	noDump := flag.Bool("no-dump", false, "Skip writing every mode's PPM on exit")
	flag.Parse()

	selectedScene, err := scene.ByName(*sceneName)
	if err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}

	if err := run(selectedScene, *width, *height); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}

	if !*noDump {
		if err := dumpModes(selectedScene, *width, *height, *outDir); err != nil {
			log.Printf("Error: %v", err)
			os.Exit(1)
		}
	}
}

func init() {
	// SDL calls must stay on the main thread
	runtime.LockOSThread()
}

// run opens the window and re-renders whenever a mode hotkey is pressed
func run(selectedScene *scene.Scene, width, height int) error {
	window, surface, err := startScreen("Weekend Raytracer", width, height)
	if err != nil {
		return err
	}
	defer stopScreen(window)

	raytracer := renderer.NewRaytracer(selectedScene, width, height)
	raytracer.SetLogger(renderer.NewDefaultLogger())

	log.Printf("Keys: 1 uv, 3 background, 4 sphere, 5 normals, 6 antialiased normals, 7 materials, Esc quits")

	current, _ := renderer.ModeByKey('1')
	dirty := true
	for {
		prevUpdate := sdl.GetTicks()

		running, pressed := handleInputs()
		if !running {
			return nil
		}
		if mode, ok := renderer.ModeByKey(pressed); ok && mode.Name != current.Name {
			current = mode
			dirty = true
		}

		if dirty {
			raytracer.SetMode(current)
			img, _ := raytracer.RenderPass()
			if err := blit(window, surface, img); err != nil {
				return err
			}
			dirty = false
		}

		if elapsed := sdl.GetTicks() - prevUpdate; elapsed < MsPerFrame {
			sdl.Delay(MsPerFrame - elapsed)
		}
	}
}

// dumpModes renders every mode of the scene and writes <dir>/<mode>.ppm
func dumpModes(selectedScene *scene.Scene, width, height int, dir string) error {
	raytracer := renderer.NewRaytracer(selectedScene, width, height)
	for _, mode := range renderer.Modes() {
		raytracer.SetMode(mode)
		img, _ := raytracer.RenderPass()

		path := filepath.Join(dir, mode.Name+".ppm")
		if err := imageio.SavePPM(path, img); err != nil {
			return fmt.Errorf("failed to dump %s: %w", mode.Name, err)
		}
		fmt.Printf("Saved %s\n", path)
	}
	return nil
}

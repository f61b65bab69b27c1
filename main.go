package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/publish"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	mode      string
	sceneName string
	sceneFile string
	width     int
	height    int
	samples   int
	depth     *int // nil = mode default
	seed      int64
	out       string
	image     string
	scale     int
	publish   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.mode, "mode", "materials", "Render mode: "+strings.Join(modeNames(), ", "))
	flag.StringVar(&opts.sceneName, "scene", "default", "Scene: "+strings.Join(scene.Names(), ", ")+" or file:<name> from scenes/")
	flag.StringVar(&opts.sceneFile, "scene-file", "", "Path to a JSON scene file (overrides -scene)")
	flag.IntVar(&opts.width, "width", 0, "Image width (0 = scene default)")
	flag.IntVar(&opts.height, "height", 0, "Image height (0 = scene default)")
	flag.IntVar(&opts.samples, "samples", 0, "Samples per pixel for antialiased modes (0 = mode default)")
	depth := flag.Int("depth", 0, "Maximum bounces (unset = mode default)")
	flag.Int64Var(&opts.seed, "seed", 0, "Random seed (0 = mode default)")
	flag.StringVar(&opts.out, "out", "", "PPM output path (default output/<mode>.ppm)")
	flag.StringVar(&opts.image, "image", "", "Also save a raster image (.png, .jpg, ...)")
	flag.IntVar(&opts.scale, "scale", 1, "Integer upscale factor for -image")
	flag.BoolVar(&opts.publish, "publish", false, "Upload outputs to S3 (configured by S3_* environment variables)")
	envFile := flag.String("env", ".env", "Environment file to load")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "depth" {
			opts.depth = depth
		}
	})

	if *help {
		printHelp()
		return
	}

	if err := publish.LoadEnv(*envFile); err != nil {
		fmt.Printf("Error loading environment: %v\n", err)
		os.Exit(1)
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Weekend Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Render modes:")
	for _, mode := range renderer.Modes() {
		fmt.Printf("  %-12s %s\n", mode.Name, mode.Description)
	}
	fmt.Println()
	fmt.Println("Scenes:")
	if infos, err := scene.ListAllScenes(); err == nil {
		for _, info := range infos {
			fmt.Printf("  %-20s %s\n", info.ID, info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<mode>.ppm")
}

func modeNames() []string {
	var names []string
	for _, mode := range renderer.Modes() {
		names = append(names, mode.Name)
	}
	return names
}

// createScene resolves a scene from a file path or a registered name
func createScene(sceneName, sceneFile string) (*scene.Scene, error) {
	if sceneFile != "" {
		return scene.NewSceneFromFile(sceneFile)
	}
	return scene.ByName(sceneName)
}

// run renders one image according to opts and writes the outputs
func run(opts options, stdout io.Writer) error {
	mode, err := renderer.ModeByName(opts.mode)
	if err != nil {
		return err
	}

	selectedScene, err := createScene(opts.sceneName, opts.sceneFile)
	if err != nil {
		return err
	}

	width, height := selectedScene.Width, selectedScene.Height
	if opts.width > 0 {
		width = opts.width
	}
	if opts.height > 0 {
		height = opts.height
	}

	fmt.Fprintf(stdout, "Rendering %s (%s) at %dx%d...\n", selectedScene.Name, mode.Name, width, height)

	raytracer := renderer.NewRaytracer(selectedScene, width, height)
	raytracer.SetMode(mode)
	raytracer.MergeSamplingConfig(renderer.SamplingOverrides{
		SamplesPerPixel: opts.samples,
		MaxDepth:        opts.depth,
		Seed:            opts.seed,
	})
	raytracer.SetLogger(log.New(stdout, "", 0))

	img, stats := raytracer.RenderPass()
	fmt.Fprintf(stdout, "Average luminance: %.4f (%d samples total)\n",
		renderer.CalculateAverageLuminance(img), stats.TotalSamples)

	outPath := opts.out
	if outPath == "" {
		outPath = filepath.Join("output", mode.Name+".ppm")
	}
	if err := imageio.SavePPM(outPath, img); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", outPath)
	outputs := []string{outPath}

	if opts.image != "" {
		if err := imageio.SaveImage(opts.image, img, opts.scale); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Image saved as %s\n", opts.image)
		outputs = append(outputs, opts.image)
	}

	if opts.publish {
		return publishOutputs(outputs, stdout)
	}
	return nil
}

// publishOutputs uploads each file and prints its public URL
func publishOutputs(paths []string, stdout io.Writer) error {
	publisher, err := publish.NewPublisher(publish.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("failed to configure publishing: %w", err)
	}
	publisher.SetLogger(log.New(stdout, "", 0))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, path := range paths {
		url, err := publisher.UploadFile(ctx, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Published %s\n", url)
	}
	return nil
}

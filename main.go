package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneType  string
	Width      int
	Height     int
	PlaneWidth float64
	Workers    int
	OutputDir  string

	// Scene overrides, applied only when the flag was given
	MaxRecursion *int
	AntiAliasing *int
	Reflections  *bool
	Refractions  *bool

	Help bool
	List bool
}

func main() {
	fs := flag.NewFlagSet("raytracer", flag.ExitOnError)
	config, err := parseFlags(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if config.Help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		fs.PrintDefaults()
		fmt.Println()
		printScenes()
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.png")
		return
	}
	if config.List {
		printScenes()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags reads the command line into a Config
func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	sceneType := fs.String("scene", "default", "Scene to render (see -list)")
	width := fs.Int("width", 400, "Image width in pixels")
	height := fs.Int("height", 225, "Image height in pixels")
	planeWidth := fs.Float64("plane-width", 2, "Width of the view plane in world units")
	workers := fs.Int("workers", 0, "Number of parallel workers (0 = auto-detect)")
	outputDir := fs.String("output", "output", "Directory renders are written to")
	recursion := fs.Int("recursion", 1, "Override the scene's max recursion level")
	antiAliasing := fs.Int("aa", 1, "Override the scene's anti-aliasing factor (1-3)")
	reflections := fs.Bool("reflections", false, "Override whether reflections are traced")
	refractions := fs.Bool("refractions", false, "Override whether refractions are traced")
	help := fs.Bool("help", false, "Show help information")
	list := fs.Bool("list", false, "List available scenes")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	config := Config{
		SceneType:  *sceneType,
		Width:      *width,
		Height:     *height,
		PlaneWidth: *planeWidth,
		Workers:    *workers,
		OutputDir:  *outputDir,
		Help:       *help,
		List:       *list,
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "recursion":
			config.MaxRecursion = recursion
		case "aa":
			config.AntiAliasing = antiAliasing
		case "reflections":
			config.Reflections = reflections
		case "refractions":
			config.Refractions = refractions
		}
	})

	return config, nil
}

func printScenes() {
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-10s - %s\n", info.ID, info.Description)
	}
}

// createScene builds the named scene and applies the command line overrides
func createScene(config Config) (*scene.Scene, error) {
	s, err := scene.CreateScene(config.SceneType)
	if err != nil {
		return nil, err
	}

	if config.MaxRecursion != nil {
		s.WithMaxRecursionLevel(*config.MaxRecursion)
	}
	if config.AntiAliasing != nil {
		s.WithAntiAliasingFactor(*config.AntiAliasing)
	}
	if config.Reflections != nil {
		s.WithReflections(*config.Reflections)
	}
	if config.Refractions != nil {
		s.WithRefractions(*config.Refractions)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func run(ctx context.Context, config Config) error {
	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, err := createScene(config)
	if err != nil {
		return err
	}
	fmt.Printf("Using %s scene...\n", selectedScene.GetName())
	fmt.Print(selectedScene)

	// Create output directory for this scene type
	outputDir := filepath.Join(config.OutputDir, selectedScene.GetName())
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	scheduler := renderer.NewScheduler(
		selectedScene,
		renderer.SchedulerConfig{NumWorkers: config.Workers},
		renderer.NewDefaultLogger(),
	)

	img, stats, err := scheduler.Render(ctx, config.Width, config.Height, config.PlaneWidth)
	if err != nil {
		return err
	}
	fmt.Printf("Render stats: %v\n", stats)

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	if err := savePNG(filename, img); err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

func savePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}
	return file.Close()
}

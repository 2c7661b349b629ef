package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"tinyrender/internal/batch"
	"tinyrender/internal/config"
	"tinyrender/internal/imageio"
	"tinyrender/internal/logging"
	"tinyrender/internal/mathutil"
	"tinyrender/internal/raster"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a JSON or YAML config file")
	envFile := flag.String("env", ".env", "Path to a .env file")
	outputDir := flag.String("output", "", "Output directory (default: .)")
	format := flag.String("format", "", "Output format: tga, png, bmp, webp (default: tga)")
	mode := flag.String("mode", "", "Render mode: wireframe, flat, random (default: flat)")
	width := flag.Int("width", 0, "Image width (default: 800)")
	height := flag.Int("height", 0, "Image height (default: 800)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	seed := flag.Int64("seed", 0, "Color seed for random mode")
	noRLE := flag.Bool("no-rle", false, "Write uncompressed TGA")
	fit := flag.Bool("fit", false, "Rescale each mesh into the unit cube")
	logFile := flag.String("log", "", "Log file path")
	dev := flag.Bool("dev", false, "Verbose console logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: render [flags] mesh.obj|dir ...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadDotEnv(*envFile); err != nil {
		fatal("%v", err)
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fatal("loading config: %v", err)
		}
	}
	cfg.ApplyEnv()
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Format:    *format,
		Mode:      *mode,
		Width:     *width,
		Height:    *height,
		Workers:   *workers,
		Seed:      *seed,
		NoRLE:     *noRLE,
		LogFile:   *logFile,
		Dev:       *dev,
	})

	logger, err := logging.New(logging.Options{Development: cfg.Development, File: cfg.LogFile})
	if err != nil {
		fatal("logger: %v", err)
	}
	defer logger.Sync()

	renderMode, err := raster.ParseMode(cfg.Mode)
	if err != nil {
		fatal("%v", err)
	}
	outFormat, err := imageio.ParseFormat(cfg.Format)
	if err != nil {
		fatal("%v", err)
	}

	jobs, err := batch.Discover(flag.Args(), cfg.OutputDir, outFormat)
	if err != nil {
		fatal("%v", err)
	}
	if len(jobs) == 0 {
		fmt.Println("No meshes to render.")
		return
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Printf("tinyrender %s → %s\n", renderMode, outFormat)
	fmt.Printf("Meshes: %d, Workers: %d, Size: %dx%d\n", len(jobs), cfg.Workers, cfg.Width, cfg.Height)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := batch.Run(ctx, batch.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		Render: raster.Options{
			Mode:     renderMode,
			Rotation: mathutil.EulerDeg(cfg.Pitch, cfg.Yaw, cfg.Roll),
			Seed:     cfg.Seed,
		},
		Save:    imageio.SaveOptions{RLE: cfg.UseRLE()},
		Fit:     *fit,
		Workers: cfg.Workers,
		Logger:  logger,
	}, jobs)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	success, failed := batch.Summarize(results)
	ok := color.New(color.FgGreen, color.Bold)
	ok.Printf("Rendered: %d/%d (%s)\n", success, len(jobs), humanize.Bytes(batch.TotalBytes(results)))

	if failed > 0 {
		bad := color.New(color.FgRed, color.Bold)
		bad.Printf("\nFailed (%d):\n", failed)
		shown := 0
		for _, r := range results {
			if r.Success {
				continue
			}
			if shown == 20 {
				color.New(color.FgHiBlack).Printf("  ... and %d more\n", failed-shown)
				break
			}
			fmt.Printf("  %s: %s\n", r.Mesh, r.Error)
			shown++
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		logger.Warn("manifest write failed", zap.Error(err))
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		logger.Sync()
		os.Exit(1)
	}
}

func fatal(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

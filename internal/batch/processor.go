package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"tinyrender/internal/imageio"
	"tinyrender/internal/mesh"
	"tinyrender/internal/raster"
	"tinyrender/internal/tga"
)

// Job renders one mesh file into one image file.
type Job struct {
	Mesh   string
	Output string
}

// Config holds the settings shared by every job of a run.
type Config struct {
	Width    int
	Height   int
	BytesPP  int // defaults to tga.RGB
	Render   raster.Options
	Save     imageio.SaveOptions
	Fit      bool // rescale each mesh into [-1, 1] before rendering
	Workers  int
	Progress time.Duration // progress log interval, defaults to 2s
	Logger   *zap.Logger
}

// Result holds the outcome of one job.
type Result struct {
	Mesh     string        `json:"mesh"`
	Output   string        `json:"output"`
	Faces    int           `json:"faces"`
	Bytes    int64         `json:"bytes"`
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Discover expands inputs into jobs. A directory contributes every .obj file
// below it; outputs mirror the input layout under outDir with the format's
// extension.
func Discover(inputs []string, outDir string, format imageio.Format) ([]Job, error) {
	var jobs []Job
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("batch: %w", err)
		}
		if !info.IsDir() {
			jobs = append(jobs, Job{Mesh: in, Output: outputPath(outDir, filepath.Base(in), format)})
			continue
		}
		err = filepath.WalkDir(in, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".obj") {
				return nil
			}
			rel, err := filepath.Rel(in, path)
			if err != nil {
				return err
			}
			jobs = append(jobs, Job{Mesh: path, Output: outputPath(outDir, rel, format)})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("batch: walk %s: %w", in, err)
		}
	}
	return jobs, nil
}

func outputPath(outDir, rel string, format imageio.Format) string {
	return filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+format.Ext())
}

// Run renders all jobs on a worker pool. Each job owns its image and depth
// buffer. Results keep the order of jobs. Cancelling ctx stops workers from
// picking up new jobs; those are reported as failed.
func Run(ctx context.Context, cfg Config, jobs []Job) []Result {
	cfg = cfg.withDefaults()
	log := cfg.Logger

	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.Progress)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("meshes_per_sec", rate))
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Mesh: jobs[idx].Mesh, Output: jobs[idx].Output, Error: err.Error()}
				} else {
					results[idx] = processJob(cfg, jobs[idx])
				}
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	log.Info("batch finished", zap.Int("jobs", total), zap.Duration("elapsed", time.Since(start)))
	return results
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.BytesPP == 0 {
		c.BytesPP = tga.RGB
	}
	if c.Progress <= 0 {
		c.Progress = 2 * time.Second
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

func processJob(cfg Config, job Job) Result {
	start := time.Now()
	res := Result{Mesh: job.Mesh, Output: job.Output}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Duration = time.Since(start)
		cfg.Logger.Warn("render failed", zap.String("mesh", job.Mesh), zap.Error(err))
		return res
	}

	model, err := mesh.Load(job.Mesh)
	if err != nil {
		return fail(err)
	}
	if model.NumFaces() == 0 {
		return fail(fmt.Errorf("mesh: %s has no faces", job.Mesh))
	}
	res.Faces = model.NumFaces()
	if cfg.Fit {
		model = model.Fit()
	}

	img, err := tga.NewImage(cfg.Width, cfg.Height, cfg.BytesPP)
	if err != nil {
		return fail(err)
	}
	if err := raster.RenderMesh(img, model, cfg.Render); err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		return fail(err)
	}
	if err := imageio.Save(job.Output, img, cfg.Save); err != nil {
		return fail(err)
	}

	if info, err := os.Stat(job.Output); err == nil {
		res.Bytes = info.Size()
	}
	res.Success = true
	res.Duration = time.Since(start)
	cfg.Logger.Debug("rendered",
		zap.String("mesh", job.Mesh),
		zap.String("output", job.Output),
		zap.Int("faces", res.Faces),
		zap.Duration("elapsed", res.Duration))
	return res
}

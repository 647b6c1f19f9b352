package batch

import (
	"context"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"phong-renderer/internal/config"
	"phong-renderer/internal/logger"
	"phong-renderer/internal/mathutil"
	"phong-renderer/internal/output"
	"phong-renderer/internal/postprocess"
	"phong-renderer/internal/raster"
	"phong-renderer/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Format      string
	Lights      map[string]raster.LightConfig
	TexResolver texture.Resolver
	RenderSize  int
	Supersample int
	Workers     int
}

// Result holds the outcome of rendering one image.
type Result struct {
	Job     string
	Frame   int // -1 for single-image jobs
	Path    string
	Average raster.RGB
	Success bool
	Error   string
}

// Task is one image to render. Turntable jobs expand into one task per frame.
type Task struct {
	Job   config.Job
	Frame int
}

// Expand turns jobs into tasks in output order.
func Expand(jobs []config.Job) []Task {
	var tasks []Task
	for _, j := range jobs {
		if j.Kind == config.KindTurntable {
			for f := 0; f < j.Frames; f++ {
				tasks = append(tasks, Task{Job: j, Frame: f})
			}
			continue
		}
		tasks = append(tasks, Task{Job: j, Frame: -1})
	}
	return tasks
}

// OutputPath returns where a task's image is written, relative to the output dir.
func (t Task) OutputPath(format string) string {
	if t.Frame < 0 {
		return fmt.Sprintf("%s.%s", t.Job.Name, format)
	}
	return filepath.Join(t.Job.Name, fmt.Sprintf("%03d.%s", t.Frame, format))
}

// Run renders all jobs using a worker pool. Tasks not started before ctx is
// cancelled are reported as failed with the context error.
func Run(ctx context.Context, cfg Config, jobs []config.Job) []Result {
	tasks := Expand(jobs)
	total := len(tasks)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					logger.Sugar.Infof("[%d/%d] %.1f images/sec", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	taskChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range taskChan {
				if err := ctx.Err(); err != nil {
					results[idx] = failed(tasks[idx], err.Error())
				} else {
					results[idx] = processTask(cfg, tasks[idx])
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range tasks {
		taskChan <- i
	}
	close(taskChan)

	wg.Wait()
	close(done)

	logger.Debug("batch finished",
		zap.Int("images", total),
		zap.Duration("elapsed", time.Since(start)))

	return results
}

func failed(t Task, msg string) Result {
	return Result{Job: t.Job.Name, Frame: t.Frame, Error: msg}
}

func processTask(cfg Config, t Task) Result {
	lc, ok := cfg.Lights[t.Job.Light]
	if !ok {
		return failed(t, fmt.Sprintf("unknown light %q", t.Job.Light))
	}

	rel := t.OutputPath(cfg.Format)
	if !filepath.IsLocal(rel) {
		return failed(t, fmt.Sprintf("output path %q leaves the output dir", rel))
	}

	img, err := Render(cfg, t, lc)
	if err != nil {
		return failed(t, err.Error())
	}

	if err := output.Save(filepath.Join(cfg.OutputDir, rel), img); err != nil {
		return failed(t, err.Error())
	}

	logger.Debug("rendered",
		zap.String("job", t.Job.Name),
		zap.Int("frame", t.Frame),
		zap.String("path", rel))

	return Result{
		Job:     t.Job.Name,
		Frame:   t.Frame,
		Path:    rel,
		Average: raster.AverageColor(img),
		Success: true,
	}
}

// Render produces the final (downsampled) image for one task.
func Render(cfg Config, t Task, lc raster.LightConfig) (*image.NRGBA, error) {
	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	size := cfg.RenderSize

	rot := TiltMatrix(t.Job.Tilt)

	switch t.Job.Kind {
	case config.KindSphere:
		img := raster.RenderSphere(size*ss, rot, &lc)
		return postprocess.Downsample(img, size, size), nil

	case config.KindTurntable:
		lc.DirVec = TurntableLight(lc.DirVec, t.Frame, t.Job.Frames)
		img := raster.RenderSphere(size*ss, rot, &lc)
		return postprocess.Downsample(img, size, size), nil

	case config.KindNormalMap:
		if cfg.TexResolver == nil {
			return nil, fmt.Errorf("no normal map source for %q", t.Job.NormalMap)
		}
		nm, err := cfg.TexResolver.Resolve(t.Job.NormalMap)
		if err != nil {
			return nil, err
		}
		b := nm.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			return nil, fmt.Errorf("empty normal map %q", t.Job.NormalMap)
		}
		w := size
		h := size * b.Dy() / b.Dx()
		if h < 1 {
			h = 1
		}
		img := raster.ShadeNormalMap(nm, w*ss, h*ss, &lc)
		return postprocess.Downsample(img, w, h), nil
	}

	return nil, fmt.Errorf("unknown job kind %q", t.Job.Kind)
}

// TiltMatrix builds the model rotation from per-axis angles in degrees.
func TiltMatrix(deg [3]float64) mathutil.Mat3 {
	return mathutil.EulerDeg(deg[0], deg[1], deg[2])
}

// TurntableLight rotates a light direction about the Y axis by frame/frames
// of a full turn.
func TurntableLight(dir mathutil.Vec3, frame, frames int) mathutil.Vec3 {
	if frames <= 0 {
		return dir
	}
	angle := 2 * math.Pi * float64(frame) / float64(frames)
	return mathutil.RotY(angle).MulVec3(dir)
}

// Package batch renders frames without a window, for smoke tests and
// turntable captures.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/debug"
	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/renderer"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/internal/logger"
)

// Options configures a batch run.
type Options struct {
	Frames int
	// Deadline bounds each frame; zero disables it. A frame that runs out
	// of time is ended early and counted as aborted.
	Deadline time.Duration
	// Orbit turns the camera by this many degrees of azimuth between frames.
	Orbit float32
	// ScreenshotDir receives one PNG per frame when set.
	ScreenshotDir string

	Renderer renderer.Options
}

// Result summarizes a run.
type Result struct {
	Frames      int
	Aborted     int
	Triangles   int
	Screenshots []string
	Elapsed     time.Duration
}

// Run renders opts.Frames frames of sc through dev. ctx cancels the whole
// run; a nil cam selects a camera framing the scene.
func Run(ctx context.Context, dev gpu.Device, sc *scene.Scene, cam *camera.Camera, opts Options) (Result, error) {
	log := logger.Named("batch")
	if opts.Frames <= 0 {
		opts.Frames = 1
	}
	if opts.Renderer.Width <= 0 || opts.Renderer.Height <= 0 {
		opts.Renderer.Width, opts.Renderer.Height = 640, 480
	}
	if cam == nil {
		cam = camera.New()
		cam.FitBounds(sc.Bounds())
	}
	cam.SetAspectRatio(float32(opts.Renderer.Width) / float32(opts.Renderer.Height))

	r, err := renderer.New(dev, sc, cam, opts.Renderer)
	if err != nil {
		return Result{}, err
	}
	defer r.Close()

	var shots *debug.ScreenshotCapture
	if opts.ScreenshotDir != "" {
		shots = debug.NewScreenshotCapture(opts.ScreenshotDir, "frame")
	}

	var res Result
	start := time.Now()
	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		dev.ResetStats()

		err := renderFrame(ctx, r, opts.Deadline)
		switch {
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			res.Aborted++
			log.Warn("frame deadline exceeded", zap.Int("frame", i), zap.Object("stats", r.FrameStats()))
		case err != nil:
			return res, fmt.Errorf("frame %d: %w", i, err)
		}
		res.Frames++
		res.Triangles += dev.Stats().Triangles()

		if shots != nil {
			w, h := r.ImageSize()
			px, err := dev.ReadPixels(int32(w), int32(h))
			if err != nil {
				return res, fmt.Errorf("frame %d: %w", i, err)
			}
			path, err := shots.CaptureFrame(i, px, w, h)
			if err != nil {
				return res, fmt.Errorf("frame %d: %w", i, err)
			}
			res.Screenshots = append(res.Screenshots, path)
		}

		log.Debug("frame rendered",
			zap.Int("frame", i),
			zap.Object("stats", r.FrameStats()),
			zap.Object("device", dev.Stats()),
		)
		cam.Azimuth(opts.Orbit)
	}
	res.Elapsed = time.Since(start)

	log.Info("batch finished",
		zap.Int("frames", res.Frames),
		zap.Int("aborted", res.Aborted),
		zap.Int("triangles", res.Triangles),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func renderFrame(ctx context.Context, r *renderer.Renderer, deadline time.Duration) error {
	if deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}
	return r.Render(ctx)
}

package batch

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/renderer"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/internal/sceneio"
	"github.com/Faultbox/sceneview/pkg/math"
)

func TestRunDemo(t *testing.T) {
	dir := t.TempDir()
	dev := gpu.NewRecorder()

	res, err := Run(context.Background(), dev, sceneio.Demo(), nil, Options{
		Frames:        3,
		Orbit:         10,
		ScreenshotDir: dir,
		Renderer:      renderer.Options{Width: 32, Height: 24},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Frames)
	assert.Zero(t, res.Aborted)
	assert.Positive(t, res.Triangles)
	require.Len(t, res.Screenshots, 3)
	for _, p := range res.Screenshots {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
	assert.Zero(t, dev.Stats().Programs, "renderer resources are released")
	assert.Zero(t, dev.Stats().Buffers)
}

func TestRunEmptyScene(t *testing.T) {
	res, err := Run(context.Background(), gpu.NewRecorder(), scene.New("empty"), nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Frames)
	assert.Zero(t, res.Triangles)
}

func TestRunLightsOff(t *testing.T) {
	dev := gpu.NewRecorder()
	_, err := Run(context.Background(), dev, sceneio.Demo(), nil, Options{
		Renderer: renderer.Options{ExplicitFlags: true},
	})
	require.NoError(t, err)

	color, ok := dev.UniformValue("lightColor")
	require.True(t, ok)
	assert.Equal(t, math.Black, color)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, gpu.NewRecorder(), sceneio.Demo(), nil, Options{Frames: 5})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Frames)
}

func TestRunResourceFailure(t *testing.T) {
	dev := gpu.NewRecorder()
	dev.FailPrograms = true

	_, err := Run(context.Background(), dev, sceneio.Demo(), nil, Options{})
	assert.ErrorIs(t, err, gpu.ErrInjected)
}

// slowDevice stalls on every triangle draw.
type slowDevice struct {
	*gpu.Recorder
	delay time.Duration
}

func (d *slowDevice) DrawTriangles(vao gpu.VertexArray, n int32) {
	time.Sleep(d.delay)
	d.Recorder.DrawTriangles(vao, n)
}

func TestRunFrameDeadline(t *testing.T) {
	dev := &slowDevice{Recorder: gpu.NewRecorder(), delay: 20 * time.Millisecond}

	res, err := Run(context.Background(), dev, sceneio.Demo(), nil, Options{
		Frames:   2,
		Deadline: time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Frames)
	assert.Equal(t, 2, res.Aborted)
}

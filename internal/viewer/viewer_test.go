package viewer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/renderer"
	"github.com/Faultbox/sceneview/internal/engine/shader"
	"github.com/Faultbox/sceneview/pkg/math"
)

func TestNewCamera(t *testing.T) {
	cfg := config.Default().Camera
	cfg.Distance = 25
	cfg.ViewAngle = 40
	cfg.Projection = "orthographic"

	cam := NewCamera(cfg)
	assert.Equal(t, math.Vec3{Z: 25}, cam.Position())
	assert.True(t, cam.FocalPoint().ApproxEqual(math.Vec3{}, 1e-5))
	assert.Equal(t, float32(40), cam.ViewAngle())
	assert.Equal(t, camera.Orthographic, cam.ProjectionType())

	near, far := cam.ClippingPlanes()
	assert.Equal(t, cfg.Near, near)
	assert.Equal(t, cfg.Far, far)
}

func TestRendererOptions(t *testing.T) {
	cfg := config.Default().Renderer
	cfg.Mode = "wireframe"
	cfg.DrawBounds = true
	cfg.DrawAxes = true

	opts, err := RendererOptions(cfg, 800, 600)
	require.NoError(t, err)
	assert.Equal(t, renderer.Wireframe, opts.Mode)
	assert.Equal(t, renderer.UseLights|renderer.DrawSceneBounds|renderer.DrawActorBounds|renderer.DrawAxes, opts.Flags)
	assert.True(t, opts.ExplicitFlags)
	assert.Equal(t, shader.LitVertexSource, opts.VertexShader)
	assert.Equal(t, 800, opts.Width)
}

func TestRendererOptionsLightsOff(t *testing.T) {
	cfg := config.Default().Renderer
	cfg.UseLights = false

	opts, err := RendererOptions(cfg, 1, 1)
	require.NoError(t, err)
	assert.Zero(t, opts.Flags)
	assert.True(t, opts.ExplicitFlags)
}

func TestRendererOptionsShaderFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.vert")
	require.NoError(t, os.WriteFile(path, []byte("// custom"), 0o644))

	cfg := config.Default().Renderer
	cfg.VertexShader = path
	opts, err := RendererOptions(cfg, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "// custom", opts.VertexShader)
	assert.Equal(t, shader.LitFragmentSource, opts.FragmentShader)

	cfg.VertexShader = filepath.Join(t.TempDir(), "missing.vert")
	_, err = RendererOptions(cfg, 1, 1)
	assert.Error(t, err)

	cfg.VertexShader = ""
	cfg.Mode = "points"
	_, err = RendererOptions(cfg, 1, 1)
	assert.Error(t, err)
}

package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/tidemirror/internal/engine/camera"
	"github.com/Faultbox/tidemirror/internal/engine/lighting"
	"github.com/Faultbox/tidemirror/internal/engine/reflection"
	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/internal/engine/scene/scenetest"
	"github.com/Faultbox/tidemirror/internal/engine/sky"
	"github.com/Faultbox/tidemirror/internal/engine/water"
	"github.com/Faultbox/tidemirror/pkg/math"
)

type fixture struct {
	r     *scenetest.Rasterizer
	g     *scene.Graph
	water *water.Water
	sky   *sky.Sky
	cfg   Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := scenetest.New()
	log := zaptest.NewLogger(t)

	w, err := water.New(r, water.BuildPlane(10000, 10000, 1), water.DefaultOptions(), log)
	require.NoError(t, err)
	w.Transform = water.HorizontalTransform(0)
	s := sky.New(sky.DefaultModel(), sky.DefaultScale)

	g := scene.NewGraph()
	g.Add("sky", s)
	g.Add("water", w)

	return &fixture{
		r:     r,
		g:     g,
		water: w,
		sky:   s,
		cfg: Config{
			Rasterizer: r,
			Graph:      g,
			Water:      w,
			Sky:        s,
			Sun:        lighting.DefaultSun(),
			Log:        log,
		},
	}
}

func pose(eye math.Vec3) camera.Pose {
	return camera.LookAt(eye, math.Vec3{}, math.Up, camera.DefaultLens(16.0/9))
}

func TestRenderOrder(t *testing.T) {
	f := newFixture(t)
	ctx, err := New(f.cfg)
	require.NoError(t, err)
	defer ctx.Close()

	stats, err := ctx.Render(Input{Camera: pose(math.Vec3{X: 30, Y: 30, Z: 100}), Delta: 1.0 / 60})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.Frame)
	assert.Equal(t, reflection.Rendered, stats.Reflection)
	assert.False(t, stats.Degraded)
	assert.Equal(t, 1, stats.Hooks)

	require.Len(t, f.r.Submissions, 2)
	refl, main := f.r.Submissions[0], f.r.Submissions[1]

	assert.Same(t, f.water.Target(), refl.Target)
	assert.Equal(t, []string{"sky"}, refl.Drawn)
	assert.False(t, refl.Shadows)

	assert.Nil(t, main.Target)
	assert.Equal(t, []string{"sky", "water"}, main.Drawn)
	assert.True(t, main.Shadows)
	assert.True(t, main.Stereo)
	assert.Equal(t, math.Vec3{X: 30, Y: 30, Z: 100}, main.View.Eye)
}

func TestRenderFromBelowSkipsReflection(t *testing.T) {
	f := newFixture(t)
	ctx, err := New(f.cfg)
	require.NoError(t, err)

	stats, err := ctx.Render(Input{Camera: pose(math.Vec3{Y: -20, Z: 30}), Delta: 1.0 / 60})
	require.NoError(t, err)

	assert.Equal(t, reflection.Skipped, stats.Reflection)
	assert.Empty(t, f.r.OffscreenSubmissions())
	require.Len(t, f.r.Submissions, 1, "main pass still runs")
}

func TestRenderKeepsCallerTarget(t *testing.T) {
	f := newFixture(t)
	ctx, err := New(f.cfg)
	require.NoError(t, err)

	offscreen, err := f.r.AllocateTarget(scene.TargetSpec{Width: 64, Height: 64})
	require.NoError(t, err)
	f.r.SetRenderTarget(offscreen)

	_, err = ctx.Render(Input{Camera: pose(math.Vec3{Y: 40, Z: 80}), Delta: 0.1})
	require.NoError(t, err)

	last := f.r.Submissions[len(f.r.Submissions)-1]
	assert.Same(t, offscreen, last.Target)
	assert.Same(t, offscreen, f.r.RenderTarget())
}

func TestRenderAdvancesWaterTime(t *testing.T) {
	f := newFixture(t)
	ctx, err := New(f.cfg)
	require.NoError(t, err)

	cam := pose(math.Vec3{Y: 30, Z: 100})
	for i := 0; i < 3; i++ {
		_, err := ctx.Render(Input{Camera: cam, Delta: 0.5})
		require.NoError(t, err)
	}
	assert.InDelta(t, 1.5, f.water.Time(), 1e-6)
}

func TestRenderFixedTimeStep(t *testing.T) {
	f := newFixture(t)
	f.cfg.TimeStep = 1.0 / 60
	ctx, err := New(f.cfg)
	require.NoError(t, err)

	stats, err := ctx.Render(Input{Camera: pose(math.Vec3{Y: 30, Z: 100}), Delta: 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/60, stats.WaterTime, 1e-7)
}

func TestRenderRejectsNegativeDelta(t *testing.T) {
	f := newFixture(t)
	f.cfg.DayCycle = lighting.NewDayCycle(0.3, 0.2, 400, 60)
	f.cfg.TimeStep = 1.0 / 60
	ctx, err := New(f.cfg)
	require.NoError(t, err)
	cam := pose(math.Vec3{Y: 30, Z: 100})

	_, err = ctx.Render(Input{Camera: cam, Delta: 0.5})
	require.NoError(t, err)
	submitted := len(f.r.Submissions)
	sun := ctx.Sun()
	inclination := f.cfg.DayCycle.Inclination
	waterTime := f.water.Time()

	_, err = ctx.Render(Input{Camera: cam, Delta: -1})
	assert.ErrorIs(t, err, water.ErrNegativeDelta)
	assert.Len(t, f.r.Submissions, submitted)
	assert.Equal(t, sun, ctx.Sun())
	assert.Equal(t, inclination, f.cfg.DayCycle.Inclination)
	assert.Equal(t, waterTime, f.water.Time())

	stats, err := ctx.Render(Input{Camera: cam, Delta: 0.5})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.Frame, "a rejected frame is not counted")
}

func TestRenderRejectsInvalidPose(t *testing.T) {
	f := newFixture(t)
	ctx, err := New(f.cfg)
	require.NoError(t, err)

	_, err = ctx.Render(Input{Camera: pose(math.Vec3{}), Delta: 0.1})
	assert.ErrorIs(t, err, camera.ErrInvalidPose)
	assert.Empty(t, f.r.Submissions)
	assert.Zero(t, f.water.Time())
}

func TestRenderRejectsBadLens(t *testing.T) {
	f := newFixture(t)
	ctx, err := New(f.cfg)
	require.NoError(t, err)

	cam := pose(math.Vec3{Y: 30, Z: 100})
	cam.Near = 0
	_, err = ctx.Render(Input{Camera: cam})
	assert.ErrorIs(t, err, camera.ErrInvalidLens)
}

func TestRenderDegradedWater(t *testing.T) {
	r := scenetest.New()
	r.FailAllocation = true
	w, err := water.New(r, water.BuildPlane(100, 100, 1), water.DefaultOptions(), nil)
	require.NoError(t, err)
	w.Transform = water.HorizontalTransform(0)

	g := scene.NewGraph()
	g.Add("water", w)
	ctx, err := New(Config{Rasterizer: r, Graph: g, Water: w, Sun: lighting.DefaultSun()})
	require.NoError(t, err)

	stats, err := ctx.Render(Input{Camera: pose(math.Vec3{Y: 30, Z: 100}), Delta: 0.1})
	require.NoError(t, err, "allocation failure must not fail the frame")
	assert.True(t, stats.Degraded)
	assert.Empty(t, r.OffscreenSubmissions())
	assert.Len(t, r.Submissions, 1)
}

func TestRenderDegeneratePlane(t *testing.T) {
	f := newFixture(t)
	f.water.Transform = math.Scale(0, 0, 0)
	ctx, err := New(f.cfg)
	require.NoError(t, err)

	_, err = ctx.Render(Input{Camera: pose(math.Vec3{Y: 30, Z: 100}), Delta: 0.1})
	assert.ErrorIs(t, err, math.ErrDegeneratePlane)
	assert.Nil(t, f.r.RenderTarget())
}

func TestSunStaysConsistent(t *testing.T) {
	f := newFixture(t)
	f.cfg.DayCycle = lighting.NewDayCycle(0.3, 0.2, 400, 60)
	ctx, err := New(f.cfg)
	require.NoError(t, err)

	_, err = ctx.Render(Input{Camera: pose(math.Vec3{Y: 30, Z: 100}), Delta: 5})
	require.NoError(t, err)

	sun := ctx.Sun()
	assert.True(t, sun.Position.ApproxEqual(f.cfg.DayCycle.Position(), 1e-4))
	assert.Equal(t, sun.Position, f.sky.SunPosition)
	assert.True(t, f.water.Uniforms().SunDirection.ApproxEqual(sun.Direction, 1e-6))
	assert.True(t, f.sky.Atmosphere().SunDirection.ApproxEqual(sun.Direction, 1e-6))

	moved := lighting.DefaultSun()
	moved.SetPosition(math.Vec3{Y: 400})
	ctx.SetSun(moved)
	f.cfg.DayCycle.Length = 0
	_, err = ctx.Render(Input{Camera: pose(math.Vec3{Y: 30, Z: 100}), Delta: 1})
	require.NoError(t, err)
	assert.Equal(t, f.cfg.DayCycle.Position(), f.sky.SunPosition)
}

func TestCloseReleasesTarget(t *testing.T) {
	f := newFixture(t)
	ctx, err := New(f.cfg)
	require.NoError(t, err)

	ctx.Close()
	ctx.Close()
	assert.True(t, f.r.Allocated[0].Destroyed)

	_, err = ctx.Render(Input{Camera: pose(math.Vec3{Y: 30, Z: 100})})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestNewValidates(t *testing.T) {
	_, err := New(Config{Graph: scene.NewGraph()})
	assert.Error(t, err)
	_, err = New(Config{Rasterizer: scenetest.New()})
	assert.Error(t, err)
	_, err = New(Config{Rasterizer: scenetest.New(), Graph: scene.NewGraph(), TimeStep: -1})
	assert.Error(t, err)
}

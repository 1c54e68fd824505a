package main

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tidemirror/internal/assets"
	"github.com/Faultbox/tidemirror/internal/config"
	"github.com/Faultbox/tidemirror/internal/engine/camera"
	"github.com/Faultbox/tidemirror/internal/engine/debug"
	"github.com/Faultbox/tidemirror/internal/engine/frame"
	"github.com/Faultbox/tidemirror/internal/engine/input"
	"github.com/Faultbox/tidemirror/internal/engine/renderer"
	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/internal/engine/sky"
	"github.com/Faultbox/tidemirror/internal/engine/texture"
	"github.com/Faultbox/tidemirror/internal/engine/water"
	"github.com/Faultbox/tidemirror/internal/engine/window"
	"github.com/Faultbox/tidemirror/internal/logger"
)

// app owns the window, the rasterizer and the scene.
type app struct {
	cfg   *config.Config
	flags *config.Flags
	log   *zap.Logger

	window   *window.Window
	input    *input.Input
	renderer *renderer.GL
	assets   *assets.Manager
	graph    *scene.Graph
	frame    *frame.Context
	orbit    *camera.OrbitCamera
	capture  *debug.ScreenshotCapture
}

func newApp(cfg *config.Config, flags *config.Flags, screenshotDir string) (*app, error) {
	a := &app{
		cfg:     cfg,
		flags:   flags,
		assets:  assets.NewManager(),
		log:     logger.Named("sunset"),
		input:   input.New(),
		orbit:   cfg.Camera.Orbit(),
		capture: debug.NewScreenshotCapture(screenshotDir, "sunset"),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      "Tidemirror",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.DrawableSize()
	rcfg := renderer.Config{Width: width, Height: height}
	if cfg.Graphics.Shadows {
		rcfg.ShadowResolution = int32(cfg.Graphics.ShadowResolution)
	}
	a.renderer, err = renderer.New(rcfg, logger.Named("renderer"))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := a.buildScene(); err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, err
	}

	a.log.Info("viewer initialized")
	return a, nil
}

func (a *app) buildScene() error {
	opts := a.cfg.Water.Options()
	if path := a.cfg.Water.NormalMap; path != "" {
		normals, err := texture.LoadNormalMapFile(a.assets, path)
		if err != nil {
			return err
		}
		opts.Normals = normals
	}

	graph := scene.NewGraph()
	a.graph = graph

	sun := a.cfg.Sky.Sun(a.cfg.Water.SunColor)
	heavens := sky.New(a.cfg.Sky.Model(), a.cfg.Sky.Scale)
	graph.Add("sky", heavens)

	surface, err := water.New(a.renderer, water.BuildPlane(a.cfg.Water.Extent, a.cfg.Water.Extent, 1), opts, logger.Named("water"))
	if err != nil {
		return fmt.Errorf("failed to create water: %w", err)
	}
	surface.Transform = water.HorizontalTransform(a.cfg.Water.Level)
	graph.Add("water", surface)

	a.frame, err = frame.New(frame.Config{
		Rasterizer: a.renderer,
		Graph:      graph,
		Water:      surface,
		Sky:        heavens,
		Sun:        sun,
		DayCycle:   a.cfg.Sky.DayCycle(),
		TimeStep:   a.cfg.Water.TimeStep,
		Log:        logger.Named("frame"),
	})
	if err != nil {
		surface.Destroy()
		return fmt.Errorf("failed to create frame context: %w", err)
	}
	return nil
}

// Run drives frames until the window closes or Escape is pressed.
func (a *app) Run() error {
	last := time.Now()
	fpsTimer := last
	frames := 0

	a.log.Info("starting render loop")
	for {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		if a.input.Update() {
			return nil
		}
		if w, h, ok := a.input.Resized(); ok {
			a.renderer.Resize(w, h)
		}

		a.orbit.Advance(dt)
		a.renderer.SetLight(a.frame.Sun().Direction)
		pose := a.orbit.Pose(a.cfg.Camera.Lens(a.window.Aspect()))

		stats, err := a.frame.Render(frame.Input{Camera: pose, Delta: dt})
		if err != nil {
			return err
		}

		a.handleKeys()
		a.window.SwapBuffers()

		frames++
		if since := now.Sub(fpsTimer); since >= time.Second {
			a.log.Debug("frame stats",
				zap.Float64("fps", float64(frames)/since.Seconds()),
				zap.Stringer("reflection", stats.Reflection),
				zap.Bool("degraded", stats.Degraded),
				zap.Float32("water_time", stats.WaterTime),
			)
			frames = 0
			fpsTimer = now
		}
	}
}

// handleKeys runs the key actions once the frame is drawn.
func (a *app) handleKeys() {
	// F5 re-reads the water look from the config file.
	if a.input.IsKeyPressed(sdl.SCANCODE_F5) {
		a.reload()
	}
	if a.input.IsKeyPressed(sdl.SCANCODE_F9) {
		a.saveView()
	}
	if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
		a.screenshot()
	}
}

func (a *app) reload() {
	cfg, err := config.Load(a.flags)
	if err != nil {
		a.log.Warn("config reload failed", zap.Error(err))
		return
	}
	node := a.graph.Find("water")
	if node == nil {
		return
	}
	surface, ok := node.Renderable.(*water.Water)
	if !ok {
		return
	}
	cfg.Water.Restyle(surface)
	a.cfg.Water.WaterColor = cfg.Water.WaterColor
	a.cfg.Water.DistortionScale = cfg.Water.DistortionScale
	a.cfg.Water.Alpha = cfg.Water.Alpha
	a.log.Info("water restyled",
		zap.Stringer("color", cfg.Water.WaterColor),
		zap.Float32("distortion_scale", cfg.Water.DistortionScale),
		zap.Float32("alpha", cfg.Water.Alpha),
	)
}

func (a *app) saveView() {
	a.cfg.Camera.SetView(a.orbit.Position(), a.orbit.Center)
	if err := a.cfg.Save(); err != nil {
		a.log.Warn("saving view failed", zap.Error(err))
		return
	}
	a.log.Info("view saved", zap.String("dir", config.ConfigDir()))
}

func (a *app) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	name, err := a.capture.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", name))
}

// Close tears the scene down in reverse order of creation.
func (a *app) Close() {
	if a.frame != nil {
		a.frame.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	hits, misses := a.assets.CacheStats()
	a.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
	a.assets.Close()
}

// Package frame runs one rendered frame: simulation step, reflection
// pre-passes, then the main pass. The host owns the loop and calls Render
// once per display refresh.
package frame

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/tidemirror/internal/engine/camera"
	"github.com/Faultbox/tidemirror/internal/engine/lighting"
	"github.com/Faultbox/tidemirror/internal/engine/reflection"
	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/internal/engine/sky"
	"github.com/Faultbox/tidemirror/internal/engine/water"
)

// ErrClosed is returned by Render after Close.
var ErrClosed = errors.New("frame context closed")

// Config wires the parts of a scene the frame pipeline drives. Water and
// Sky are optional.
type Config struct {
	Rasterizer scene.Rasterizer
	Graph      *scene.Graph
	Water      *water.Water
	Sky        *sky.Sky
	Sun        lighting.SunState
	DayCycle   *lighting.DayCycle // nil keeps the sun where the host puts it

	// TimeStep, when positive, replaces Input.Delta for the water clock.
	TimeStep float32

	Log *zap.Logger
}

// Input is what the host supplies each frame.
type Input struct {
	Camera camera.Pose
	Delta  float32 // seconds since the previous frame
}

// Stats reports what a frame did.
type Stats struct {
	Frame      uint64
	Reflection reflection.Outcome
	Degraded   bool
	Hooks      int
	WaterTime  float32
}

// Context is the explicit, caller-owned state of the render loop.
type Context struct {
	cfg    Config
	log    *zap.Logger
	frame  uint64
	closed bool
}

// New validates cfg and creates a context. Release it with Close.
func New(cfg Config) (*Context, error) {
	if cfg.Rasterizer == nil {
		return nil, errors.New("frame: nil rasterizer")
	}
	if cfg.Graph == nil {
		return nil, errors.New("frame: nil scene graph")
	}
	if cfg.TimeStep < 0 {
		return nil, fmt.Errorf("frame: negative time step %v", cfg.TimeStep)
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	c := &Context{cfg: cfg, log: log}
	c.pushSun()
	return c, nil
}

// Sun returns the current sun state.
func (c *Context) Sun() lighting.SunState { return c.cfg.Sun }

// SetSun replaces the sun state. It reaches water and sky on the next
// Render, together.
func (c *Context) SetSun(s lighting.SunState) {
	c.cfg.Sun = s
}

// Render draws one frame. In order: the water clock and sun advance, every
// pre-pass hook renders its reflection (each restores the rasterizer state
// it changed), then the graph is drawn from in.Camera into the current
// render target. An invalid camera or a negative delta is rejected before
// any of it happens.
func (c *Context) Render(in Input) (Stats, error) {
	if c.closed {
		return Stats{}, ErrClosed
	}
	if err := in.Camera.Validate(); err != nil {
		return Stats{}, err
	}
	dt := in.Delta
	if c.cfg.TimeStep > 0 {
		dt = c.cfg.TimeStep
	}
	if !(in.Delta >= 0) {
		return Stats{}, fmt.Errorf("frame %d: %w: %v", c.frame+1, water.ErrNegativeDelta, in.Delta)
	}

	c.frame++
	stats := Stats{Frame: c.frame}

	if c.cfg.DayCycle != nil {
		c.cfg.DayCycle.Advance(in.Delta, &c.cfg.Sun)
	}
	c.pushSun()

	if w := c.cfg.Water; w != nil {
		if err := w.Advance(dt); err != nil {
			return stats, fmt.Errorf("frame %d: %w", c.frame, err)
		}
		stats.WaterTime = w.Time()
	}

	hooks := c.cfg.Graph.Hooks()
	stats.Hooks = len(hooks)
	for _, h := range hooks {
		if err := h.OnBeforeMainPass(c.cfg.Rasterizer, c.cfg.Graph, in.Camera); err != nil {
			return stats, fmt.Errorf("frame %d: pre-pass: %w", c.frame, err)
		}
	}

	if w := c.cfg.Water; w != nil {
		stats.Reflection = w.LastOutcome()
		stats.Degraded = w.Degraded()
	}

	if err := c.cfg.Rasterizer.Render(c.cfg.Graph, scene.ViewFromPose(in.Camera), true); err != nil {
		return stats, fmt.Errorf("frame %d: main pass: %w", c.frame, err)
	}
	return stats, nil
}

// pushSun keeps the water and sky on the same sun.
func (c *Context) pushSun() {
	if c.cfg.Water != nil {
		c.cfg.Water.SetSun(c.cfg.Sun.Direction, c.cfg.Sun.Color)
	}
	if c.cfg.Sky != nil {
		c.cfg.Sky.SetSun(c.cfg.Sun)
	}
}

// Close releases the water reflection target. Render fails afterwards.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.cfg.Water != nil {
		c.cfg.Water.Destroy()
	}
	c.log.Debug("frame context closed", zap.Uint64("frames", c.frame))
}

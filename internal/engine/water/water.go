// Package water implements a reflective water surface: a renderable whose
// pre-pass renders the scene mirrored across its plane, and the shading
// model that combines that reflection with a scrolling normal map.
package water

import (
	"errors"
	"fmt"
	stdmath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/tidemirror/internal/engine/camera"
	"github.com/Faultbox/tidemirror/internal/engine/mirror"
	"github.com/Faultbox/tidemirror/internal/engine/reflection"
	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/internal/engine/texture"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// ErrNegativeDelta is returned by Advance for deltas that would run time
// backwards.
var ErrNegativeDelta = errors.New("negative time delta")

// Procedural normal map used when Options.Normals is nil.
const (
	proceduralSize = 256
	proceduralSeed = 1
)

// Water is a planar reflective surface. Its plane is the local XY plane of
// Transform, facing local +Z.
type Water struct {
	Transform math.Mat4

	opts     Options
	geometry *scene.Geometry
	target   scene.Target
	pass     reflection.Pass
	log      *zap.Logger

	time          float32
	eye           math.Vec3
	textureMatrix math.Mat4
	lastOutcome   reflection.Outcome
}

// New builds a water surface over geom and allocates its reflection target.
// If the target cannot be allocated the surface is still returned, in flat
// fill mode, and the failure is logged.
func New(r scene.Rasterizer, geom *scene.Geometry, opts Options, log *zap.Logger) (*Water, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if geom == nil {
		return nil, fmt.Errorf("%w: nil geometry", ErrInvalidOptions)
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Normals == nil {
		opts.Normals = ProceduralNormals()
		log.Debug("using procedural normal map", zap.Int("size", proceduralSize))
	}
	opts.SunDirection = opts.SunDirection.Normalize()

	w := &Water{
		Transform:     math.Identity(),
		opts:          opts,
		geometry:      geom,
		log:           log,
		time:          opts.Time,
		eye:           opts.Eye,
		textureMatrix: math.Identity(),
	}

	spec := scene.TargetSpec{Width: opts.TextureWidth, Height: opts.TextureHeight}
	target, err := reflection.Allocate(r, spec)
	if err != nil {
		log.Warn("reflection disabled, using flat water color", zap.Error(err))
		w.lastOutcome = reflection.Degraded
	} else {
		w.target = target
		if !spec.Mipmaps() {
			log.Debug("reflection target is not a power of two, mipmaps disabled",
				zap.Int32("width", spec.Width),
				zap.Int32("height", spec.Height))
		}
	}
	w.pass = reflection.Pass{Target: w.target, Log: log}
	return w, nil
}

// ProceduralNormals returns the tileable normal map used when no image is
// supplied.
func ProceduralNormals() NormalMap {
	return texture.NewSampler(texture.ProceduralNormalMap(proceduralSize, proceduralSeed), scene.Repeat)
}

// HorizontalTransform lays the surface flat at the given height, facing +Y.
func HorizontalTransform(level float32) math.Mat4 {
	return math.Translate(0, level, 0).Mul(math.RotateX(-stdmath.Pi / 2))
}

// PlaneFromTransform returns the mirror plane of a surface with world
// transform m: local +Z rotated into world space, through m's origin.
func PlaneFromTransform(m math.Mat4) (math.Plane, error) {
	normal := m.ExtractRotation().TransformVec3Direction(math.Vec3{0, 0, 1})
	return math.NewPlane(normal, m.Position())
}

// Geometry implements scene.Renderable.
func (w *Water) Geometry() *scene.Geometry { return w.geometry }

// WorldMatrix implements scene.Renderable.
func (w *Water) WorldMatrix() math.Mat4 { return w.Transform }

// Material implements scene.Renderable.
func (w *Water) Material() scene.Material { return (*material)(w) }

// CastShadow reports false. The surface may receive shadows but casts none.
func (w *Water) CastShadow() bool { return false }

// Plane returns the current mirror plane.
func (w *Water) Plane() (math.Plane, error) {
	return PlaneFromTransform(w.Transform)
}

// OnBeforeMainPass derives the mirror camera for main and renders the
// reflection of g into the surface's target. A mirror facing away from the
// camera skips the render; the surface then shows the previous reflection.
// Without a target the outcome is always Degraded.
func (w *Water) OnBeforeMainPass(r scene.Rasterizer, g *scene.Graph, main camera.Pose) error {
	plane, err := w.Plane()
	if err != nil {
		w.log.Error("water plane is degenerate", zap.Error(err))
		return fmt.Errorf("water plane: %w", err)
	}

	mc, err := mirror.Derive(main, plane, w.opts.ClipBias)
	if err != nil {
		return fmt.Errorf("mirror camera: %w", err)
	}
	w.eye = mc.Eye
	if mc.Visible {
		w.textureMatrix = mc.TextureMatrix
	}

	if w.target == nil {
		w.lastOutcome = reflection.Degraded
		return nil
	}

	w.pass.Exclude = w.node(g)
	outcome, err := w.pass.Run(r, g, mc)
	w.lastOutcome = outcome
	return err
}

func (w *Water) node(g *scene.Graph) *scene.Node {
	for _, n := range g.Nodes() {
		if n.Renderable == scene.Renderable(w) {
			return n
		}
	}
	return nil
}

// Advance moves simulation time forward by dt seconds.
func (w *Water) Advance(dt float32) error {
	if !(dt >= 0) {
		return fmt.Errorf("%w: %v", ErrNegativeDelta, dt)
	}
	w.time += dt
	return nil
}

// Time returns the accumulated simulation time.
func (w *Water) Time() float32 { return w.time }

// SetSun updates the sun uniforms. direction need not be normalized.
func (w *Water) SetSun(direction, color math.Vec3) {
	w.opts.SunDirection = direction.Normalize()
	w.opts.SunColor = color
}

// SetWaterColor updates the body color.
func (w *Water) SetWaterColor(c math.Vec3) { w.opts.WaterColor = c }

// SetDistortionScale updates the reflection distortion strength.
func (w *Water) SetDistortionScale(s float32) { w.opts.DistortionScale = s }

// SetAlpha updates the output alpha; it has no effect on lighting.
func (w *Water) SetAlpha(a float32) { w.opts.Alpha = math.Clamp(a, 0, 1) }

// Degraded reports whether the surface has no reflection target.
func (w *Water) Degraded() bool { return w.target == nil }

// LastOutcome reports what the most recent pre-pass did.
func (w *Water) LastOutcome() reflection.Outcome { return w.lastOutcome }

// Target returns the reflection target, nil in flat fill mode.
func (w *Water) Target() scene.Target { return w.target }

// Normals returns the normal map in use.
func (w *Water) Normals() NormalMap { return w.opts.Normals }

// Uniforms returns the current shader inputs.
func (w *Water) Uniforms() Uniforms {
	return Uniforms{
		Time:            w.time,
		Alpha:           w.opts.Alpha,
		Size:            w.opts.Size,
		DistortionScale: w.opts.DistortionScale,
		SunColor:        w.opts.SunColor,
		SunDirection:    w.opts.SunDirection,
		Eye:             w.eye,
		WaterColor:      w.opts.WaterColor,
		TextureMatrix:   w.textureMatrix,
		FlatFill:        w.target == nil,
	}
}

// Destroy releases the reflection target.
func (w *Water) Destroy() {
	if w.target != nil {
		w.target.Destroy()
		w.target = nil
		w.pass.Target = nil
	}
}

// Package renderer provides the OpenGL 4.1 rasterizer.
package renderer

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tidemirror/internal/engine/framebuffer"
	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/internal/engine/shader"
	"github.com/Faultbox/tidemirror/internal/engine/shadow"
	"github.com/Faultbox/tidemirror/pkg/math"
)

//go:embed depth.vert
var depthVertex string

//go:embed depth.frag
var depthFragment string

const depthProgram = "shadow-depth"

// shadowUnit is the texture unit reserved for the shadow map. Material
// textures start above it.
const shadowUnit = 0

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	// ShadowResolution sizes the shadow map. Zero disables shadows.
	ShadowResolution int32
	ClearColor       math.Vec3
}

// GL draws scene graphs with OpenGL. It must be created and used on the
// thread that owns the GL context.
type GL struct {
	config Config
	log    *zap.Logger

	programs *shader.Cache
	meshes   map[*scene.Geometry]*mesh
	images   map[scene.ImageTexture]uint32

	target     scene.Target
	shadowAuto bool
	stereo     bool

	shadows     *shadow.Map
	toLight     math.Vec3
	lightSpace  math.Mat4
	shadowReady bool
}

// New creates a rasterizer. It must be called after the GL context is current.
func New(cfg Config, log *zap.Logger) (*GL, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &GL{
		config:     cfg,
		log:        log,
		programs:   shader.NewCache(),
		meshes:     make(map[*scene.Geometry]*mesh),
		images:     make(map[scene.ImageTexture]uint32),
		shadowAuto: true,
		toLight:    math.Up,
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	if cfg.ShadowResolution > 0 {
		if _, err := r.programs.Get(depthProgram, depthVertex, depthFragment); err != nil {
			return nil, fmt.Errorf("failed to create depth program: %w", err)
		}
		sm, err := shadow.NewMap(cfg.ShadowResolution)
		if err != nil {
			log.Warn("shadows disabled", zap.Error(err))
		} else {
			r.shadows = sm
		}
	}

	return r, nil
}

// Close releases every GPU resource the rasterizer created. Targets handed
// out by AllocateTarget belong to their callers.
func (r *GL) Close() {
	r.log.Info("closing renderer")
	for g, m := range r.meshes {
		m.destroy()
		delete(r.meshes, g)
	}
	for t, id := range r.images {
		gl.DeleteTextures(1, &id)
		delete(r.images, t)
	}
	r.programs.Destroy()
	if r.shadows != nil {
		r.shadows.Destroy()
		r.shadows = nil
	}
}

// Resize updates the default framebuffer viewport.
func (r *GL) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ReadPixels reads the default framebuffer as RGBA rows, bottom row first.
func (r *GL) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// SetLight sets the direction towards the shadow-casting light.
func (r *GL) SetLight(toLight math.Vec3) {
	r.toLight = toLight.Normalize()
}

// AllocateTarget implements scene.Rasterizer.
func (r *GL) AllocateTarget(spec scene.TargetSpec) (scene.Target, error) {
	fb, err := framebuffer.New(spec)
	if err != nil {
		return nil, err
	}
	r.log.Debug("render target allocated",
		zap.Int32("width", spec.Width),
		zap.Int32("height", spec.Height),
		zap.Bool("mipmaps", fb.HasMipmaps()),
	)
	return fb, nil
}

// RenderTarget implements scene.Rasterizer.
func (r *GL) RenderTarget() scene.Target { return r.target }

// SetRenderTarget implements scene.Rasterizer.
func (r *GL) SetRenderTarget(t scene.Target) { r.target = t }

// ShadowAutoUpdate implements scene.Rasterizer.
func (r *GL) ShadowAutoUpdate() bool { return r.shadowAuto }

// SetShadowAutoUpdate implements scene.Rasterizer.
func (r *GL) SetShadowAutoUpdate(enabled bool) { r.shadowAuto = enabled }

// StereoEnabled implements scene.Rasterizer. The GL backend draws a single
// view whatever the flag says.
func (r *GL) StereoEnabled() bool { return r.stereo }

// SetStereoEnabled implements scene.Rasterizer.
func (r *GL) SetStereoEnabled(enabled bool) { r.stereo = enabled }

// Render implements scene.Rasterizer.
func (r *GL) Render(g *scene.Graph, view scene.View, clear bool) error {
	if r.shadowAuto && r.shadows != nil {
		if err := r.renderShadows(g); err != nil {
			return err
		}
	}

	var fb *framebuffer.Framebuffer
	restore := func() {}
	switch t := r.target.(type) {
	case nil:
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	case *framebuffer.Framebuffer:
		fb = t
		restore = fb.BindWithViewport()
	default:
		return fmt.Errorf("render target %T was not allocated by this rasterizer", t)
	}

	if clear {
		c := r.config.ClearColor
		gl.ClearColor(c.X, c.Y, c.Z, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	}

	var err error
	for _, n := range drawOrder(g.Nodes()) {
		if err = r.draw(n, view); err != nil {
			break
		}
	}

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	restore()
	if err != nil {
		return err
	}
	if fb != nil {
		fb.UpdateMipmaps()
	}
	return nil
}

// drawOrder returns the visible nodes with opaque ones first. Graph order
// is kept within each group.
func drawOrder(nodes []*scene.Node) []*scene.Node {
	ordered := make([]*scene.Node, 0, len(nodes))
	var transparent []*scene.Node
	for _, n := range nodes {
		if !n.Visible || n.Renderable == nil {
			continue
		}
		if m := n.Material(); m != nil && m.Transparent() {
			transparent = append(transparent, n)
			continue
		}
		ordered = append(ordered, n)
	}
	return append(ordered, transparent...)
}

// cullMode returns whether face culling is on and which face is culled.
func cullMode(side scene.Side) (enabled bool, face uint32) {
	switch side {
	case scene.BackSide:
		return true, gl.FRONT
	case scene.DoubleSide:
		return false, gl.BACK
	default:
		return true, gl.BACK
	}
}

func (r *GL) mesh(g *scene.Geometry) *mesh {
	m, ok := r.meshes[g]
	if !ok {
		m = uploadMesh(g)
		r.meshes[g] = m
	}
	return m
}

func (r *GL) draw(n *scene.Node, view scene.View) error {
	mat := n.Material()
	geom := n.Geometry()
	if mat == nil || geom == nil || len(geom.Indices) == 0 {
		return nil
	}

	sh := mat.Shader()
	prog, err := r.programs.Get(sh.Name, sh.Vertex, sh.Fragment)
	if err != nil {
		return fmt.Errorf("drawing %s: %w", n.Name, err)
	}
	prog.Use()

	u := &uniforms{r: r, prog: prog, unit: shadowUnit + 1}
	u.SetMat4(scene.UniformModel, n.WorldMatrix())
	u.SetMat4(scene.UniformView, view.View)
	u.SetMat4(scene.UniformProjection, view.Projection)
	u.SetVec3(scene.UniformCamera, view.Eye)
	u.SetBool(scene.UniformShadowsEnabled, r.shadowReady)
	if r.shadows != nil {
		r.shadows.BindTexture(gl.TEXTURE0 + shadowUnit)
		u.setUnit(scene.UniformShadowMap, shadowUnit)
		u.SetMat4(scene.UniformLightSpace, r.lightSpace)
	}
	mat.Apply(u)

	if enabled, face := cullMode(mat.Side()); enabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(face)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
	if mat.Transparent() {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}

	r.mesh(geom).draw()
	return nil
}

// renderShadows refreshes the shadow map from the current light.
func (r *GL) renderShadows(g *scene.Graph) error {
	bounds, ok := shadow.Bounds(g)
	if !ok {
		r.shadowReady = false
		return nil
	}
	prog, err := r.programs.Get(depthProgram, depthVertex, depthFragment)
	if err != nil {
		return err
	}
	r.lightSpace = shadow.LightMatrix(r.toLight, bounds)

	r.shadows.Bind()
	prog.Use()
	u := &uniforms{r: r, prog: prog}
	u.SetMat4(scene.UniformLightSpace, r.lightSpace)
	for _, n := range g.Nodes() {
		if !shadow.Casts(n) {
			continue
		}
		geom := n.Geometry()
		if geom == nil || len(geom.Indices) == 0 {
			continue
		}
		u.SetMat4(scene.UniformModel, n.WorldMatrix())
		r.mesh(geom).draw()
	}
	r.shadows.Unbind()
	r.shadowReady = true
	return nil
}

var _ scene.Rasterizer = (*GL)(nil)

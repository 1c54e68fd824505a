package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tidemirror/internal/engine/framebuffer"
	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/internal/engine/shader"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// uniforms writes material values into the current program. Textures take
// consecutive units starting at unit.
type uniforms struct {
	r    *GL
	prog *shader.Program
	unit uint32
}

func (u *uniforms) SetBool(name string, v bool) {
	if loc := u.prog.Uniform(name); loc >= 0 {
		var i int32
		if v {
			i = 1
		}
		gl.Uniform1i(loc, i)
	}
}

func (u *uniforms) SetFloat(name string, v float32) {
	if loc := u.prog.Uniform(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

func (u *uniforms) SetVec3(name string, v math.Vec3) {
	if loc := u.prog.Uniform(name); loc >= 0 {
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

func (u *uniforms) SetMat4(name string, m math.Mat4) {
	if loc := u.prog.Uniform(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	}
}

func (u *uniforms) SetTexture(name string, t scene.Texture) {
	if u.prog.Uniform(name) < 0 {
		return
	}
	id := u.r.textureID(t)
	if id == 0 {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + u.unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
	u.setUnit(name, int32(u.unit))
	u.unit++
}

func (u *uniforms) setUnit(name string, unit int32) {
	if loc := u.prog.Uniform(name); loc >= 0 {
		gl.Uniform1i(loc, unit)
	}
}

func (r *GL) textureID(t scene.Texture) uint32 {
	switch tex := t.(type) {
	case *framebuffer.Framebuffer:
		return tex.ColorTexture()
	case scene.ImageTexture:
		id, ok := r.images[tex]
		if !ok {
			id = uploadImage(tex)
			r.images[tex] = id
		}
		return id
	default:
		r.log.Debug("unsupported texture", zap.String("type", typeName(t)))
		return 0
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

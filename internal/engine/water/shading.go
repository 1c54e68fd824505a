package water

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tidemirror/pkg/math"
)

// Shading constants shared with water.frag.
const (
	Shininess     = 100
	SpecularPower = 2
	DiffusePower  = 0.5
	ReflectanceR0 = 0.3
)

// Sampler is a filtered 2D texture lookup.
type Sampler interface {
	Sample(uv math.Vec2) math.Vec4
}

// Uniforms are the per-frame shader inputs. Besides Time, every field is
// either derived each frame or supplied by the scene owner.
type Uniforms struct {
	Time            float32
	Alpha           float32
	Size            float32
	DistortionScale float32

	SunColor     math.Vec3
	SunDirection math.Vec3
	Eye          math.Vec3
	WaterColor   math.Vec3

	TextureMatrix math.Mat4

	// FlatFill drops reflection and lighting and paints WaterColor.
	FlatFill bool
}

// Fragment is one point on the surface being shaded.
type Fragment struct {
	WorldPosition math.Vec3
	ShadowMask    float32 // 1 when unshadowed
}

// Noise sums the normal map at four scales and scroll rates and recentres
// the result, giving each component a range of about [-1, 1].
func Noise(normals Sampler, uv math.Vec2, time float32) math.Vec4 {
	uv0 := uv.Div(math.Vec2{103, 103}).Add(math.Vec2{time / 17, time / 29})
	uv1 := uv.Div(math.Vec2{107, 107}).Sub(math.Vec2{time / -19, time / 31})
	uv2 := uv.Div(math.Vec2{8907, 9803}).Add(math.Vec2{time / 101, time / 97})
	uv3 := uv.Div(math.Vec2{1091, 1027}).Sub(math.Vec2{time / 109, time / -113})

	sum := normals.Sample(uv0).
		Add(normals.Sample(uv1)).
		Add(normals.Sample(uv2)).
		Add(normals.Sample(uv3))

	return math.Vec4{sum[0]*0.5 - 1, sum[1]*0.5 - 1, sum[2]*0.5 - 1, sum[3]*0.5 - 1}
}

// SurfaceNormal turns a noise sample into a world-space normal. The map's
// blue channel becomes +Y, and vertical detail is damped against
// horizontal.
func SurfaceNormal(noise math.Vec4) math.Vec3 {
	return math.Vec3{noise[0] * 1.5, noise[2], noise[1] * 1.5}.Normalize()
}

// SunLight returns the diffuse and specular sun contributions.
func SunLight(u Uniforms, normal, eyeDir math.Vec3, shiny, spec, diffuse float32) (diffuseColor, specularColor math.Vec3) {
	reflection := u.SunDirection.Negate().Reflect(normal).Normalize()
	direction := math32.Max(0, eyeDir.Dot(reflection))
	specularColor = u.SunColor.Scale(math32.Pow(direction, shiny) * spec)
	diffuseColor = u.SunColor.Scale(math32.Max(u.SunDirection.Dot(normal), 0) * diffuse)
	return diffuseColor, specularColor
}

// Reflectance is Schlick's Fresnel approximation with R0 = 0.3, for
// cosTheta between the surface normal and the eye direction.
func Reflectance(cosTheta float32) float32 {
	theta := math32.Max(cosTheta, 0)
	return ReflectanceR0 + (1-ReflectanceR0)*math32.Pow(1-theta, 5)
}

// Distortion is the reflection lookup offset for a perturbed normal seen
// from distance.
func Distortion(normal math.Vec3, distance, scale float32) math.Vec2 {
	return normal.XZ().Scale((0.001 + 1/distance) * scale)
}

// Shade evaluates the water fragment program on the CPU. A nil reflection
// sampler or FlatFill gives the flat water-color fill.
func Shade(u Uniforms, normals, reflection Sampler, frag Fragment) math.Vec4 {
	if u.FlatFill || reflection == nil || normals == nil {
		return u.WaterColor.Vec4(u.Alpha)
	}

	world := frag.WorldPosition
	noise := Noise(normals, math.Vec2{X: world.X, Y: world.Z}.Scale(u.Size), u.Time)
	normal := SurfaceNormal(noise)

	worldToEye := u.Eye.Sub(world)
	eyeDir := worldToEye.Normalize()
	diffuseLight, specularLight := SunLight(u, normal, eyeDir, Shininess, SpecularPower, DiffusePower)

	distance := worldToEye.Length()
	mirrorCoord := u.TextureMatrix.MulVec4(world.Vec4(1))
	uv := math.Vec2{X: mirrorCoord[0] / mirrorCoord[3], Y: mirrorCoord[1] / mirrorCoord[3]}
	uv = uv.Add(Distortion(normal, distance, u.DistortionScale))
	reflectionSample := reflection.Sample(uv).XYZ()

	reflectance := Reflectance(eyeDir.Dot(normal))
	scatter := u.WaterColor.Scale(math32.Max(0, normal.Dot(eyeDir)))

	surface := u.SunColor.Mul(diffuseLight).Scale(0.3).Add(scatter).Scale(frag.ShadowMask)
	mirrored := math.Vec3{0.1, 0.1, 0.1}.
		Add(reflectionSample.Scale(0.9)).
		Add(reflectionSample.Mul(specularLight))

	albedo := math.Vec3{
		math.Mix(surface.X, mirrored.X, reflectance),
		math.Mix(surface.Y, mirrored.Y, reflectance),
		math.Mix(surface.Z, mirrored.Z, reflectance),
	}
	return albedo.Vec4(u.Alpha)
}

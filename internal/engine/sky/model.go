// Package sky implements a Preetham-style atmospheric scattering sky dome.
//
// Model evaluates the same closed form the sky shaders run on the GPU, split
// the same way: Atmosphere holds the per-sun terms the vertex stage computes
// once, and Atmosphere.Color is the per-direction fragment stage.
package sky

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tidemirror/internal/engine/lighting"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// Scattering constants.
var (
	// TotalRayleigh is the Rayleigh coefficient for the primaries
	// (680, 550, 450) nm at sea level.
	TotalRayleigh = math.Vec3{5.804542996261093e-6, 1.3562911419845635e-5, 3.0265902468824876e-5}

	// MieConst folds the wavelength dependence of Mie scattering.
	MieConst = math.Vec3{1.8399918514433978e14, 2.7798023919660528e14, 4.0790479543861094e14}
)

const (
	// Earth's apparent solar illuminance.
	sunIlluminance = 1000.0

	// Zenith angle where the sun stops contributing (~92.3°).
	cutoffAngle = 1.6110731556870734
	steepness   = 1.5

	rayleighZenithLength = 8.4e3
	mieZenithLength      = 1.25e3

	// cos of the sun's angular radius.
	sunAngularDiameterCos = 0.999956676946448443553574619906976478926848692873900859324

	threeOverSixteenPi = 0.05968310365946075
	oneOverFourPi      = 0.07957747154594767

	// Uncharted2 filmic curve.
	shoulderStrength = 0.15
	linearStrength   = 0.50
	linearAngle      = 0.10
	toeStrength      = 0.20
	toeNumerator     = 0.02
	toeDenominator   = 0.30
	whiteScale       = 1.0748724675633854 // 1 / Uncharted2(1000)
)

// Model holds the sky parameters. It carries no evaluation state.
type Model struct {
	Turbidity       float32
	Rayleigh        float32
	MieCoefficient  float32
	MieDirectionalG float32
	Luminance       float32
	Up              math.Vec3
}

// DefaultModel returns clear-sky parameters.
func DefaultModel() Model {
	return Model{
		Turbidity:       lighting.DefaultTurbidity,
		Rayleigh:        lighting.DefaultRayleigh,
		MieCoefficient:  lighting.DefaultMieCoefficient,
		MieDirectionalG: lighting.DefaultMieDirectionalG,
		Luminance:       lighting.DefaultLuminance,
		Up:              math.Up,
	}
}

// ModelFromSun copies the scattering coefficients of a sun state.
func ModelFromSun(s lighting.SunState) Model {
	m := DefaultModel()
	m.Turbidity = s.Turbidity
	m.Rayleigh = s.Rayleigh
	m.MieCoefficient = s.MieCoefficient
	m.MieDirectionalG = s.MieDirectionalG
	m.Luminance = s.Luminance
	return m
}

// SunIntensity is the empirical solar falloff for the cosine of the sun's
// zenith angle. It peaks at the zenith and reaches zero at cutoffAngle.
func SunIntensity(zenithCos float32) float32 {
	zenithAngle := math32.Acos(math.Clamp(zenithCos, -1, 1))
	return sunIlluminance * math32.Max(0, 1-math32.Exp(-((cutoffAngle-zenithAngle)/steepness)))
}

// TotalMie returns the Mie coefficient for turbidity t.
func TotalMie(t float32) math.Vec3 {
	c := (0.2 * t) * 10e-18
	return MieConst.Scale(0.434 * c)
}

// RayleighPhase is (3/16π)(1+cos²θ).
func RayleighPhase(cosTheta float32) float32 {
	return threeOverSixteenPi * (1 + cosTheta*cosTheta)
}

// HenyeyGreensteinPhase is the Mie phase function for anisotropy g.
func HenyeyGreensteinPhase(cosTheta, g float32) float32 {
	g2 := g * g
	inverse := 1 / math32.Pow(1-2*g*cosTheta+g2, 1.5)
	return oneOverFourPi * ((1 - g2) * inverse)
}

// Atmosphere is the per-sun state of the model.
type Atmosphere struct {
	SunDirection math.Vec3
	SunE         float32
	SunFade      float32
	BetaR        math.Vec3
	BetaM        math.Vec3

	up        math.Vec3
	g         float32
	luminance float32
}

// Atmosphere evaluates the per-sun terms for a sun at sunPosition.
func (m Model) Atmosphere(sunPosition math.Vec3) Atmosphere {
	up := m.Up
	if up == (math.Vec3{}) {
		up = math.Up
	}
	sunDir := sunPosition.Normalize()

	sunfade := 1 - math.Clamp(1-math32.Exp(sunPosition.Y/450000), 0, 1)
	rayleighCoefficient := m.Rayleigh - (1 - sunfade)

	return Atmosphere{
		SunDirection: sunDir,
		SunE:         SunIntensity(sunDir.Dot(up)),
		SunFade:      sunfade,
		BetaR:        TotalRayleigh.Scale(rayleighCoefficient),
		BetaM:        TotalMie(m.Turbidity).Scale(m.MieCoefficient),
		up:           up,
		g:            m.MieDirectionalG,
		luminance:    m.Luminance,
	}
}

// Color returns the tone-mapped sky color seen along view direction dir.
func (a Atmosphere) Color(dir math.Vec3) math.Vec3 {
	dir = dir.Normalize()

	// Optical length
	zenithAngle := math32.Acos(math32.Max(0, a.up.Dot(dir)))
	inverse := 1 / (math32.Cos(zenithAngle) + 0.15*math32.Pow(93.885-zenithAngle*180/math32.Pi, -1.253))
	sR := rayleighZenithLength * inverse
	sM := mieZenithLength * inverse

	// Combined extinction factor
	fex := expVec(a.BetaR.Scale(sR).Add(a.BetaM.Scale(sM)).Negate())

	// In-scattering
	cosTheta := dir.Dot(a.SunDirection)
	betaRTheta := a.BetaR.Scale(RayleighPhase(cosTheta*0.5 + 0.5))
	betaMTheta := a.BetaM.Scale(HenyeyGreensteinPhase(cosTheta, a.g))
	ratio := betaRTheta.Add(betaMTheta).Div(a.BetaR.Add(a.BetaM))

	one := math.Vec3{1, 1, 1}
	lin := powVec(ratio.Scale(a.SunE).Mul(one.Sub(fex)), 1.5)
	horizon := math.Clamp(math32.Pow(1-a.up.Dot(a.SunDirection), 5), 0, 1)
	lin = lin.Mul(mixVec(one, powVec(ratio.Scale(a.SunE).Mul(fex), 0.5), horizon))

	// Night sky plus the solar disk
	l0 := fex.Scale(0.1)
	sundisk := math.Smoothstep(sunAngularDiameterCos, sunAngularDiameterCos+0.00002, cosTheta)
	l0 = l0.Add(fex.Scale(a.SunE * 19000 * sundisk))

	texColor := lin.Add(l0).Scale(0.04).Add(math.Vec3{0, 0.0003, 0.00075})

	exposure := math32.Log2(2 / math32.Pow(a.luminance, 4))
	curr := uncharted2Vec(texColor.Scale(exposure))
	color := curr.Scale(whiteScale)

	gamma := 1 / (1.2 + 1.2*a.SunFade)
	return powVec(clampVec(color), gamma)
}

// Color evaluates a single direction for a sun at sunPosition.
func (m Model) Color(sunPosition, dir math.Vec3) math.Vec3 {
	return m.Atmosphere(sunPosition).Color(dir)
}

func uncharted2(x float32) float32 {
	const (
		a = shoulderStrength
		b = linearStrength
		c = linearAngle
		d = toeStrength
		e = toeNumerator
		f = toeDenominator
	)
	return ((x*(a*x+c*b) + d*e) / (x*(a*x+b) + d*f)) - e/f
}

func uncharted2Vec(v math.Vec3) math.Vec3 {
	return math.Vec3{uncharted2(v.X), uncharted2(v.Y), uncharted2(v.Z)}
}

func expVec(v math.Vec3) math.Vec3 {
	return math.Vec3{math32.Exp(v.X), math32.Exp(v.Y), math32.Exp(v.Z)}
}

func powVec(v math.Vec3, p float32) math.Vec3 {
	return math.Vec3{math32.Pow(v.X, p), math32.Pow(v.Y, p), math32.Pow(v.Z, p)}
}

func mixVec(a, b math.Vec3, t float32) math.Vec3 {
	return math.Vec3{math.Mix(a.X, b.X, t), math.Mix(a.Y, b.Y, t), math.Mix(a.Z, b.Z, t)}
}

func clampVec(v math.Vec3) math.Vec3 {
	return math.Vec3{math32.Max(0, v.X), math32.Max(0, v.Y), math32.Max(0, v.Z)}
}

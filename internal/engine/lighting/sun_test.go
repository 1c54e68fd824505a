package lighting

import (
	stdmath "math"
	"testing"

	"github.com/Faultbox/tidemirror/pkg/math"
)

func TestSunFromAnglesDefault(t *testing.T) {
	p := SunFromAngles(DefaultInclination, DefaultAzimuth, DefaultDistance)

	if l := p.Length(); stdmath.Abs(float64(l-DefaultDistance)) > 1e-2 {
		t.Errorf("distance = %v, want %v", l, DefaultDistance)
	}
	// Evening sun: just above the horizon.
	if p.Y <= 0 || p.Y > 20 {
		t.Errorf("height = %v, want small positive", p.Y)
	}
}

func TestSunFromAnglesHorizon(t *testing.T) {
	for _, az := range []float32{0.1, 0.3, 0.7} {
		p := SunFromAngles(0.5, az, 100)
		if stdmath.Abs(float64(p.Y)) > 1e-4 {
			t.Errorf("azimuth %v: y = %v, want 0 at inclination 0.5", az, p.Y)
		}
	}
}

func TestDefaultSunDirection(t *testing.T) {
	s := DefaultSun()
	want := s.Position.Normalize()
	if !s.Direction.ApproxEqual(want, 1e-6) {
		t.Errorf("Direction = %v, want %v", s.Direction, want)
	}
	if s.Turbidity != DefaultTurbidity || s.MieDirectionalG != DefaultMieDirectionalG {
		t.Errorf("unexpected coefficients %+v", s)
	}
}

func TestDayCycleAdvance(t *testing.T) {
	c := NewDayCycle(0.25, DefaultAzimuth, 100, 10)
	var s SunState

	c.Advance(2.5, &s)
	if stdmath.Abs(float64(c.Inclination-0.75)) > 1e-6 {
		t.Errorf("Inclination = %v, want 0.75", c.Inclination)
	}
	if !s.Position.ApproxEqual(c.Position(), 1e-5) {
		t.Errorf("sun not updated")
	}

	c.Advance(10, &s)
	if stdmath.Abs(float64(c.Inclination-0.75)) > 1e-5 {
		t.Errorf("full day should wrap to 0.75, got %v", c.Inclination)
	}
}

func TestDayCycleFrozen(t *testing.T) {
	c := NewDayCycle(0.4, 0.2, 400, 0)
	var s SunState
	c.Advance(5, &s)
	c.Advance(-1, &s)
	if c.Inclination != 0.4 {
		t.Errorf("Inclination = %v, want unchanged", c.Inclination)
	}
	if s.Direction == (math.Vec3{}) {
		t.Errorf("sun direction not written")
	}
}

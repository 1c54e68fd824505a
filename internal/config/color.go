package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tidemirror/pkg/math"
)

// Color is a 0xRRGGBB color. In YAML it is written as a hex string, and
// plain integers are accepted too.
type Color uint32

// ParseColor parses "0xRRGGBB", "#RRGGBB" or "RRGGBB".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "#")
	hex = strings.TrimPrefix(strings.TrimPrefix(hex, "0x"), "0X")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || v > 0xFFFFFF {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	return Color(v), nil
}

// String formats the color as 0xRRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("0x%06X", uint32(c))
}

// Vec3 returns the color as RGB components in [0, 1].
func (c Color) Vec3() math.Vec3 {
	return math.RGB(uint32(c))
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a scalar", node.Line)
	}
	if node.Tag == "!!int" {
		var v uint32
		if err := node.Decode(&v); err != nil {
			return err
		}
		if v > 0xFFFFFF {
			return fmt.Errorf("line %d: color %d out of range", node.Line, v)
		}
		*c = Color(v)
		return nil
	}
	parsed, err := ParseColor(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

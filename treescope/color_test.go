package treescope

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexColor = regexp.MustCompile(`^#[0-9A-F]{6}$`)

func TestColorFromString_Format(t *testing.T) {
	for _, s := range []string{"", "a", "structree.Point", "some/longer.Name"} {
		c := ColorFromString(s)
		assert.Regexp(t, hexColor, c, "input %q", s)
	}
}

func TestColorFromString_Stable(t *testing.T) {
	require.Equal(t, ColorFromString("structree.Point"), ColorFromString("structree.Point"))
	assert.NotEqual(t, ColorFromString("structree.Point"), ColorFromString("structree.Line"))
}

func TestHSLToRGB(t *testing.T) {
	cases := []struct {
		name    string
		h, s, l float64
		r, g, b uint8
	}{
		{"black", 0, 0, 0, 0, 0, 0},
		{"white", 0, 0, 1, 255, 255, 255},
		{"gray", 0.5, 0, 0.5, 128, 128, 128},
		{"red", 0, 1, 0.5, 255, 0, 0},
		{"green", 1.0 / 3.0, 1, 0.5, 0, 255, 0},
		{"blue", 2.0 / 3.0, 1, 0.5, 0, 0, 255},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b := hslToRGB(tc.h, tc.s, tc.l)
			assert.Equal(t, [3]uint8{tc.r, tc.g, tc.b}, [3]uint8{r, g, b})
		})
	}
}

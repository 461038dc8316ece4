// internal/colors/color.go
package colors

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const maxChannel = 255

var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
var rgbFuncRegex = regexp.MustCompile(`(?i)^rgb\(\s*([^,\s)]+)\s*(?:,\s*|\s+)([^,\s)]+)\s*(?:,\s*|\s+)([^,\s)]+)\s*\)$`)

// Color is an HSL color: H in [0,360), S and L in [0,100].
type Color struct {
	H float64
	S float64
	L float64
}

func FromHSL(h, s, l float64) Color {
	return Color{H: h, S: s, L: l}
}

func FromRGB(r, g, b uint8) Color {
	return fromColorful(colorful.Color{
		R: float64(r) / maxChannel,
		G: float64(g) / maxChannel,
		B: float64(b) / maxChannel,
	})
}

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// Parse reads a 3 or 6 digit hex color or an rgb(r, g, b) call.
func Parse(value string) (Color, error) {
	trimmed := strings.TrimSpace(value)
	switch {
	case strings.HasPrefix(trimmed, "#"):
		return parseHex(trimmed)
	case len(trimmed) >= 4 && strings.EqualFold(trimmed[:4], "rgb("):
		return parseRGBFunc(trimmed)
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrUnparseableColorToken, value)
	}
}

func parseHex(value string) (Color, error) {
	if !hexColorRegex.MatchString(value) {
		return Color{}, fmt.Errorf("%w: invalid hex color %q", ErrUnparseableColorToken, value)
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return Color{}, fmt.Errorf("%w: invalid hex color %q: %v", ErrUnparseableColorToken, value, err)
	}
	return fromColorful(c), nil
}

func parseRGBFunc(value string) (Color, error) {
	m := rgbFuncRegex.FindStringSubmatch(value)
	if m == nil {
		return Color{}, fmt.Errorf("%w: malformed rgb call %q", ErrUnparseableColorToken, value)
	}
	var channels [3]uint8
	for i, raw := range m[1:] {
		channel, err := parseChannel(raw)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: %v", ErrUnparseableColorToken, value, err)
		}
		channels[i] = channel
	}
	return FromRGB(channels[0], channels[1], channels[2]), nil
}

// parseChannel accepts 0-255 integers or 0%-100% percentages.
func parseChannel(raw string) (uint8, error) {
	if pct, ok := strings.CutSuffix(raw, "%"); ok {
		f, err := strconv.ParseFloat(pct, 64)
		if err != nil || f < 0 || f > 100 {
			return 0, fmt.Errorf("channel %q out of range", raw)
		}
		return uint8(math.Round(f / 100 * maxChannel)), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > maxChannel {
		return 0, fmt.Errorf("channel %q out of range", raw)
	}
	return uint8(n), nil
}

func fromColorful(c colorful.Color) Color {
	h, s, l := c.Hsl()
	return Color{H: h, S: s * 100, L: l * 100}
}

func (c Color) colorful() colorful.Color {
	return colorful.Hsl(c.H, c.S/100, c.L/100).Clamped()
}

// WithLightness returns c with its lightness replaced.
func (c Color) WithLightness(l float64) Color {
	c.L = l
	return c
}

func (c Color) RGB() (uint8, uint8, uint8) {
	return c.colorful().RGB255()
}

// Hex returns the lowercase #rrggbb form.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// CSS returns the rgb(r,g,b) form used in generated stylesheets.
func (c Color) CSS() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}

// DistanceLab is the CIE L*a*b* distance between c and other.
func (c Color) DistanceLab(other Color) float64 {
	return c.colorful().DistanceLab(other.colorful())
}

func (c Color) String() string {
	return fmt.Sprintf("hsl(%.2f, %.2f%%, %.2f%%)", c.H, c.S, c.L)
}

// internal/palette/quantizer.go
package palette

import (
	"errors"
	"fmt"
	"math"
	"regexp"

	"github.com/codr1/svgtint/internal/colors"
)

const (
	DefaultLevels     = 255
	DefaultPrefix     = "primary"
	maxLightnessValue = 100.0
)

var (
	ErrInvalidLevels = errors.New("palette levels must be >= 1")
	ErrInvalidPrefix = errors.New("invalid palette prefix")
)

var prefixRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Quantizer snaps lightness values to n+1 evenly spaced levels in [0, 100].
type Quantizer struct {
	levels []float64
	prefix string
}

func NewQuantizer(n int, prefix string) (*Quantizer, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidLevels, n)
	}
	if !prefixRegex.MatchString(prefix) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}
	step := maxLightnessValue / float64(n)
	levels := make([]float64, n+1)
	for i := range levels {
		levels[i] = float64(i) * step
	}
	return &Quantizer{levels: levels, prefix: prefix}, nil
}

// Max returns n, the highest level index.
func (q *Quantizer) Max() int {
	return len(q.levels) - 1
}

// Index returns the nearest level for l, clamped to [0, Max()]. NaN maps to 0.
func (q *Quantizer) Index(l float64) int {
	n := q.Max()
	x := math.Round((l / maxLightnessValue) * float64(n))
	switch {
	case math.IsNaN(x) || x <= 0:
		return 0
	case x >= float64(n):
		return n
	}
	return int(x)
}

// Lightness returns the canonical lightness of level index.
func (q *Quantizer) Lightness(index int) float64 {
	return q.levels[index]
}

// Snap returns c with its lightness replaced by the nearest canonical level.
func (q *Quantizer) Snap(c colors.Color) (colors.Color, int) {
	index := q.Index(c.L)
	return c.WithLightness(q.levels[index]), index
}

// Identifier names a level. It depends on nothing but index and the prefix.
func (q *Quantizer) Identifier(index int) string {
	return fmt.Sprintf("%s-l-%d", q.prefix, index)
}

// Reference is the text substituted into documents for level index.
func (q *Quantizer) Reference(index int) string {
	return fmt.Sprintf("var(--%s)", q.Identifier(index))
}

// Equivalent reports whether a and b map to the same palette entry.
func (q *Quantizer) Equivalent(a, b colors.Color) bool {
	return q.Index(a.L) == q.Index(b.L) && a.H == b.H && a.S == b.S
}

// internal/colors/resolver.go
package colors

import (
	"fmt"
	"math"

	"github.com/codr1/svgtint/internal/tokenizer"
)

// Grayscale luminosity weights.
const (
	redWeight   = 0.30
	greenWeight = 0.59
	blueWeight  = 0.11
)

// Resolver turns tokens into colors using a fixed keyword table.
type Resolver struct {
	named NamedTable
}

func NewResolver(named NamedTable) *Resolver {
	return &Resolver{named: named}
}

func (r *Resolver) Named() NamedTable {
	return r.named
}

func (r *Resolver) Resolve(tok tokenizer.Token) (Color, error) {
	switch tok.Kind {
	case tokenizer.KindKeyword:
		hex, ok := r.named.Lookup(tok.Text)
		if !ok {
			return Color{}, fmt.Errorf("%w: %q", ErrUnresolvedNamedColor, tok.Text)
		}
		return Parse(hex)
	case tokenizer.KindHex, tokenizer.KindFunctionalRGB:
		return Parse(tok.Text)
	default:
		return Color{}, fmt.Errorf("%w: unknown token kind %d for %q", ErrUnparseableColorToken, tok.Kind, tok.Text)
	}
}

// Grayscale resolves tok and projects it onto a neutral gray of equal luminosity.
// Only the lightness of the result is meaningful.
func (r *Resolver) Grayscale(tok tokenizer.Token) (Color, error) {
	c, err := r.Resolve(tok)
	if err != nil {
		return Color{}, err
	}
	return ToGrayscale(c), nil
}

func ToGrayscale(c Color) Color {
	red, green, blue := c.RGB()
	y := math.Round(redWeight*float64(red) + greenWeight*float64(green) + blueWeight*float64(blue))
	if y > maxChannel {
		y = maxChannel
	}
	gray := uint8(y)
	return FromRGB(gray, gray, gray)
}

// internal/theme/theme.go
package theme

import (
	"fmt"

	"github.com/codr1/svgtint/internal/boundary"
	"github.com/codr1/svgtint/internal/colors"
	"github.com/codr1/svgtint/internal/lightness"
	"github.com/codr1/svgtint/internal/palette"
)

const (
	DefaultPrimaryColor = "#00acc1"
	DefaultTolerance    = 0.2
)

// Options are the raw inputs a Theme is built from.
type Options struct {
	PrimaryColor string
	Tolerance    float64
	Levels       int
	Prefix       string
	NamedColors  map[string]string
}

func DefaultOptions() Options {
	return Options{
		PrimaryColor: DefaultPrimaryColor,
		Tolerance:    DefaultTolerance,
		Levels:       palette.DefaultLevels,
		Prefix:       palette.DefaultPrefix,
	}
}

// Theme is the run-wide, read-only recoloring configuration. It is safe to share
// between goroutines once built.
type Theme struct {
	primary   colors.Color
	tolerance float64
	reference boundary.Boundary
	named     colors.NamedTable
	quantizer *palette.Quantizer
}

func New(opts Options) (*Theme, error) {
	primary, err := colors.Parse(opts.PrimaryColor)
	if err != nil {
		return nil, fmt.Errorf("primary color: %w", err)
	}
	reference, err := lightness.Reference(primary.L, opts.Tolerance)
	if err != nil {
		return nil, fmt.Errorf("tolerance: %w", err)
	}
	named := colors.DefaultNamedTable(primary)
	if len(opts.NamedColors) > 0 {
		named, err = named.With(opts.NamedColors)
		if err != nil {
			return nil, fmt.Errorf("named colors: %w", err)
		}
	}
	quantizer, err := palette.NewQuantizer(opts.Levels, opts.Prefix)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}

	return &Theme{
		primary:   primary,
		tolerance: opts.Tolerance,
		reference: reference,
		named:     named,
		quantizer: quantizer,
	}, nil
}

func (t *Theme) Primary() colors.Color {
	return t.primary
}

func (t *Theme) Tolerance() float64 {
	return t.tolerance
}

// Reference is the primary's allowed lightness band.
func (t *Theme) Reference() boundary.Boundary {
	return t.reference
}

func (t *Theme) Named() colors.NamedTable {
	return t.named
}

func (t *Theme) Quantizer() *palette.Quantizer {
	return t.quantizer
}

// Palette returns the identifier to color table for every level.
func (t *Theme) Palette() []palette.Entry {
	return t.quantizer.Table(t.primary)
}

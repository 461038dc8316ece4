// Package lightness computes document lightness bands and maps them into the
// primary color's tolerance band.
package lightness

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/codr1/svgtint/internal/boundary"
)

var (
	ErrNoSamples        = errors.New("no lightness samples")
	ErrInvalidTolerance = errors.New("tolerance must be a finite number >= 0")
)

// Reference returns the band a document may occupy without being rescaled:
// [(1-tolerance)*primary, (1+tolerance)*primary].
func Reference(primaryLightness, tolerance float64) (boundary.Boundary, error) {
	if math.IsNaN(tolerance) || math.IsInf(tolerance, 0) || tolerance < 0 {
		return boundary.Boundary{}, fmt.Errorf("%w, got %g", ErrInvalidTolerance, tolerance)
	}
	return boundary.New((1-tolerance)*primaryLightness, (1+tolerance)*primaryLightness)
}

// Observe returns the [min, max] band of samples. samples is not modified.
func Observe(samples []float64) (boundary.Boundary, error) {
	if len(samples) == 0 {
		return boundary.Boundary{}, ErrNoSamples
	}
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)
	return boundary.New(sorted[0], sorted[len(sorted)-1])
}

// Rescaler maps lightness values from a document band onto a reference band.
type Rescaler struct {
	reference boundary.Boundary
	observed  boundary.Boundary
	primary   float64
	contained bool
}

func NewRescaler(reference, observed boundary.Boundary, primaryLightness float64) Rescaler {
	return Rescaler{
		reference: reference,
		observed:  observed,
		primary:   primaryLightness,
		contained: reference.Contains(observed),
	}
}

// Contained reports whether the document band already fits the reference band,
// in which case Rescale is the identity for every value.
func (r Rescaler) Contained() bool {
	return r.contained
}

func (r Rescaler) Reference() boundary.Boundary {
	return r.reference
}

func (r Rescaler) Observed() boundary.Boundary {
	return r.observed
}

func (r Rescaler) Rescale(l float64) float64 {
	if r.contained {
		return l
	}
	// A single-lightness document collapses onto the primary.
	if r.observed.Range() == 0 {
		return r.primary
	}
	distance := l - r.observed.Low
	return r.reference.Low + (distance/r.observed.Range())*r.reference.Range()
}

// internal/boundary/boundary.go
package boundary

import (
	"errors"
	"fmt"
)

var ErrInvalidBoundary = errors.New("invalid boundary")

// Boundary is a closed lightness interval [Low, High].
type Boundary struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

func New(low, high float64) (Boundary, error) {
	if low > high {
		return Boundary{}, fmt.Errorf("%w: low %g is greater than high %g", ErrInvalidBoundary, low, high)
	}
	return Boundary{Low: low, High: high}, nil
}

func (b Boundary) Range() float64 {
	return b.High - b.Low
}

// Contains reports whether other lies entirely inside b.
func (b Boundary) Contains(other Boundary) bool {
	return other.Low >= b.Low && other.High <= b.High
}

// Adjust clamps b into reference.
func (b Boundary) Adjust(reference Boundary) Boundary {
	adjusted := b
	if adjusted.Low < reference.Low {
		adjusted.Low = reference.Low
	}
	if adjusted.High > reference.High {
		adjusted.High = reference.High
	}
	// A band lying fully outside reference collapses onto the nearest edge.
	if adjusted.Low > reference.High {
		adjusted.Low = reference.High
	}
	if adjusted.High < reference.Low {
		adjusted.High = reference.Low
	}
	return adjusted
}

func (b Boundary) String() string {
	return fmt.Sprintf("[%g, %g]", b.Low, b.High)
}

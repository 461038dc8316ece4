// internal/recolor/sink.go
package recolor

import (
	"github.com/rs/zerolog"

	"github.com/codr1/svgtint/internal/boundary"
)

// BoundaryEvent is emitted once per document after the scan phase.
type BoundaryEvent struct {
	Document  string
	Reference boundary.Boundary
	Observed  boundary.Boundary
	Adjusted  boundary.Boundary
	Contained bool
	Samples   int
}

// SubstitutionEvent describes one replaced token.
type SubstitutionEvent struct {
	Document          string
	Token             string
	GrayHex           string
	OriginalLightness float64
	ScaledHex         string
	ScaledLightness   float64
	NormalizedHex     string
	NormalizedL       float64
	Index             int
	Identifier        string
}

// FailureEvent describes a token left as literal text.
type FailureEvent struct {
	Document string
	Token    string
	Offset   int
	Err      error
}

// Sink receives diagnostics from a Transformer. It never affects control flow.
type Sink interface {
	BoundaryComputed(BoundaryEvent)
	TokenSubstituted(SubstitutionEvent)
	ResolutionFailed(FailureEvent)
}

type NopSink struct{}

func (NopSink) BoundaryComputed(BoundaryEvent) {}

func (NopSink) TokenSubstituted(SubstitutionEvent) {}

func (NopSink) ResolutionFailed(FailureEvent) {}

// LogSink writes events to a zerolog logger.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) BoundaryComputed(e BoundaryEvent) {
	s.logger.Info().
		Str("file", e.Document).
		Float64("reference_low", e.Reference.Low).
		Float64("reference_high", e.Reference.High).
		Float64("observed_low", e.Observed.Low).
		Float64("observed_high", e.Observed.High).
		Float64("adjusted_low", e.Adjusted.Low).
		Float64("adjusted_high", e.Adjusted.High).
		Bool("contained", e.Contained).
		Int("samples", e.Samples).
		Msg("Lightness boundaries computed")
}

func (s *LogSink) TokenSubstituted(e SubstitutionEvent) {
	s.logger.Debug().
		Str("file", e.Document).
		Str("token", e.Token).
		Str("gray", e.GrayHex).
		Float64("lightness", e.OriginalLightness).
		Str("scaled", e.ScaledHex).
		Float64("scaled_lightness", e.ScaledLightness).
		Str("normalized", e.NormalizedHex).
		Float64("normalized_lightness", e.NormalizedL).
		Int("index", e.Index).
		Str("identifier", e.Identifier).
		Msg("Color substituted")
}

func (s *LogSink) ResolutionFailed(e FailureEvent) {
	s.logger.Warn().
		Err(e.Err).
		Str("file", e.Document).
		Str("token", e.Token).
		Int("offset", e.Offset).
		Msg("Color token left unchanged")
}

// Package recolor rewrites color tokens in a document into references to the
// theme's palette.
//
// A document is processed in two phases. Analyze scans every token once and
// derives the document's lightness band. Apply rescans the text and replaces each
// token, using only the band computed by Analyze.
package recolor

import (
	"github.com/codr1/svgtint/internal/boundary"
	"github.com/codr1/svgtint/internal/colors"
	"github.com/codr1/svgtint/internal/lightness"
	"github.com/codr1/svgtint/internal/theme"
	"github.com/codr1/svgtint/internal/tokenizer"
)

type Document struct {
	Name    string // for diagnostics
	Path    string
	Content string
}

// Analysis is the result of the scan phase.
type Analysis struct {
	Tokens   int
	Samples  int
	rescaler lightness.Rescaler
}

// Empty reports whether no token could be resolved, so nothing will be rewritten.
func (a Analysis) Empty() bool {
	return a.Samples == 0
}

func (a Analysis) Reference() boundary.Boundary {
	return a.rescaler.Reference()
}

func (a Analysis) Observed() boundary.Boundary {
	return a.rescaler.Observed()
}

func (a Analysis) Contained() bool {
	return a.rescaler.Contained()
}

type Result struct {
	Content     string
	Tokens      int
	Substituted int
	Unchanged   int
	Analysis    Analysis
}

type Transformer struct {
	theme     *theme.Theme
	resolver  *colors.Resolver
	tokenizer *tokenizer.Tokenizer
	sink      Sink
}

func New(th *theme.Theme, sink Sink) *Transformer {
	if sink == nil {
		sink = NopSink{}
	}
	return &Transformer{
		theme:     th,
		resolver:  colors.NewResolver(th.Named()),
		tokenizer: tokenizer.New(th.Named().Keywords()),
		sink:      sink,
	}
}

// Transform runs both phases. A document without resolvable tokens is returned as is.
func (t *Transformer) Transform(doc Document) Result {
	analysis := t.Analyze(doc)
	return t.Apply(doc, analysis)
}

// Analyze is the read-only scan phase.
func (t *Transformer) Analyze(doc Document) Analysis {
	tokens := t.tokenizer.Scan(doc.Content)
	samples := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		gray, err := t.resolver.Grayscale(tok)
		if err != nil {
			continue
		}
		samples = append(samples, gray.L)
	}

	analysis := Analysis{Tokens: len(tokens), Samples: len(samples)}
	if analysis.Empty() {
		return analysis
	}

	// Observe only fails on an empty sample set, which is handled above.
	observed, _ := lightness.Observe(samples)
	reference := t.theme.Reference()
	analysis.rescaler = lightness.NewRescaler(reference, observed, t.theme.Primary().L)

	t.sink.BoundaryComputed(BoundaryEvent{
		Document:  doc.Name,
		Reference: reference,
		Observed:  observed,
		Adjusted:  observed.Adjust(reference),
		Contained: analysis.rescaler.Contained(),
		Samples:   len(samples),
	})
	return analysis
}

// Apply is the replace phase. It never modifies doc.
func (t *Transformer) Apply(doc Document, analysis Analysis) Result {
	result := Result{Content: doc.Content, Tokens: analysis.Tokens, Analysis: analysis}
	if analysis.Tokens == 0 {
		return result
	}
	if analysis.Empty() {
		for _, tok := range t.tokenizer.Scan(doc.Content) {
			if _, err := t.resolver.Grayscale(tok); err != nil {
				t.fail(doc, tok, err)
			}
		}
		result.Unchanged = analysis.Tokens
		return result
	}

	primary := t.theme.Primary()
	quantizer := t.theme.Quantizer()
	result.Content = t.tokenizer.Replace(doc.Content, func(tok tokenizer.Token) string {
		gray, err := t.resolver.Grayscale(tok)
		if err != nil {
			t.fail(doc, tok, err)
			result.Unchanged++
			return tok.Text
		}

		scaled := primary.WithLightness(analysis.rescaler.Rescale(gray.L))
		normalized, index := quantizer.Snap(scaled)
		t.sink.TokenSubstituted(SubstitutionEvent{
			Document:          doc.Name,
			Token:             tok.Text,
			GrayHex:           gray.Hex(),
			OriginalLightness: gray.L,
			ScaledHex:         scaled.Hex(),
			ScaledLightness:   scaled.L,
			NormalizedHex:     normalized.Hex(),
			NormalizedL:       normalized.L,
			Index:             index,
			Identifier:        quantizer.Identifier(index),
		})
		result.Substituted++
		return quantizer.Reference(index)
	})
	result.Tokens = result.Substituted + result.Unchanged
	return result
}

func (t *Transformer) fail(doc Document, tok tokenizer.Token, err error) {
	t.sink.ResolutionFailed(FailureEvent{
		Document: doc.Name,
		Token:    tok.Text,
		Offset:   tok.Start,
		Err:      err,
	})
}

package recolor

import (
	"sort"
	"strings"

	"github.com/codr1/svgtint/internal/colors"
	"github.com/codr1/svgtint/internal/tokenizer"
)

// ColorMatch is a named color and its perceptual distance from a token's color.
type ColorMatch struct {
	Name     string
	Hex      string
	Distance float64
}

// TokenUsage counts the occurrences of one distinct token in a document.
// Tokens that differ only in case are counted together.
type TokenUsage struct {
	Token     string
	Kind      tokenizer.Kind
	Count     int
	Color     colors.Color
	Gray      colors.Color
	Err       error
	Closest   []ColorMatch
	Reference string // palette reference the token would be rewritten to
	Recolored colors.Color
}

type Inspection struct {
	Document string
	Tokens   []TokenUsage
	Analysis Analysis
}

// Inspect reports the distinct color tokens of doc without rewriting it. Each
// token lists up to closest named colors ordered by CIE Lab distance.
func (t *Transformer) Inspect(doc Document, closest int) Inspection {
	analysis := t.Analyze(doc)
	usages := make(map[string]*TokenUsage)
	var order []string

	for _, tok := range t.tokenizer.Scan(doc.Content) {
		key := strings.ToLower(tok.Text)
		if usage, ok := usages[key]; ok {
			usage.Count++
			continue
		}

		usage := &TokenUsage{Token: tok.Text, Kind: tok.Kind, Count: 1}
		usage.Color, usage.Err = t.resolver.Resolve(tok)
		if usage.Err == nil {
			usage.Gray = colors.ToGrayscale(usage.Color)
			usage.Closest = t.closestNamed(usage.Color, closest)
			if !analysis.Empty() {
				scaled := t.theme.Primary().WithLightness(analysis.rescaler.Rescale(usage.Gray.L))
				normalized, index := t.theme.Quantizer().Snap(scaled)
				usage.Recolored = normalized
				usage.Reference = t.theme.Quantizer().Reference(index)
			}
		}
		usages[key] = usage
		order = append(order, key)
	}

	inspection := Inspection{Document: doc.Name, Analysis: analysis}
	for _, key := range order {
		inspection.Tokens = append(inspection.Tokens, *usages[key])
	}
	sort.SliceStable(inspection.Tokens, func(i, j int) bool {
		return inspection.Tokens[i].Count > inspection.Tokens[j].Count
	})
	return inspection
}

func (t *Transformer) closestNamed(c colors.Color, limit int) []ColorMatch {
	if limit <= 0 {
		return nil
	}
	named := t.theme.Named()
	matches := make([]ColorMatch, 0, named.Len())
	for _, name := range named.Keywords() {
		hex, _ := named.Lookup(name)
		reference, err := colors.Parse(hex)
		if err != nil {
			continue
		}
		matches = append(matches, ColorMatch{Name: name, Hex: hex, Distance: c.DistanceLab(reference)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

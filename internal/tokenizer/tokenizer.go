// internal/tokenizer/tokenizer.go
package tokenizer

import (
	"regexp"
	"sort"
	"strings"
)

// Kind tags which grammar alternative produced a token.
type Kind int

const (
	KindKeyword Kind = iota
	KindHex
	KindFunctionalRGB
)

func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindHex:
		return "hex"
	case KindFunctionalRGB:
		return "rgb"
	default:
		return "unknown"
	}
}

// Token is a color-like substring of a document. Start and End are byte offsets.
type Token struct {
	Kind  Kind
	Text  string
	Start int
	End   int
}

// Tokenizer finds color tokens in text: table keywords (word-bounded), 3 to 6 digit hex
// colors and rgb(...) calls, all case-insensitive, leftmost match first.
type Tokenizer struct {
	re         *regexp.Regexp
	keywordIdx int
	hexIdx     int
	rgbIdx     int
}

func New(keywords []string) *Tokenizer {
	sorted := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if strings.TrimSpace(keyword) == "" {
			continue
		}
		sorted = append(sorted, regexp.QuoteMeta(keyword))
	}
	sort.Strings(sorted)

	alternatives := []string{}
	if len(sorted) > 0 {
		alternatives = append(alternatives, `(?P<keyword>\b(?:`+strings.Join(sorted, "|")+`)\b)`)
	}
	alternatives = append(alternatives,
		`(?P<hex>#[0-9a-f]{3,6})`,
		`(?P<rgb>rgb\(.*?\))`,
	)

	re := regexp.MustCompile(`(?i)` + strings.Join(alternatives, "|"))
	return &Tokenizer{
		re:         re,
		keywordIdx: re.SubexpIndex("keyword"),
		hexIdx:     re.SubexpIndex("hex"),
		rgbIdx:     re.SubexpIndex("rgb"),
	}
}

// Scan returns every token in text, left to right.
func (t *Tokenizer) Scan(text string) []Token {
	matches := t.re.FindAllStringSubmatchIndex(text, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, Token{
			Kind:  t.kindOf(m),
			Text:  text[m[0]:m[1]],
			Start: m[0],
			End:   m[1],
		})
	}
	return tokens
}

// Replace rescans text and substitutes each token with fn's result.
func (t *Tokenizer) Replace(text string, fn func(Token) string) string {
	tokens := t.Scan(text)
	if len(tokens) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, tok := range tokens {
		b.WriteString(text[last:tok.Start])
		b.WriteString(fn(tok))
		last = tok.End
	}
	b.WriteString(text[last:])
	return b.String()
}

func (t *Tokenizer) kindOf(m []int) Kind {
	matched := func(idx int) bool {
		return idx > 0 && 2*idx < len(m) && m[2*idx] >= 0
	}
	switch {
	case matched(t.keywordIdx):
		return KindKeyword
	case matched(t.hexIdx):
		return KindHex
	default:
		return KindFunctionalRGB
	}
}

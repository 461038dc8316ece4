// internal/colors/named.go
package colors

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	ErrUnresolvedNamedColor   = errors.New("unresolved named color")
	ErrUnparseableColorToken  = errors.New("unparseable color token")
	ErrInvalidNamedColorEntry = errors.New("invalid named color entry")
)

const CurrentColor = "currentColor"

// Keywords are matched on word boundaries, so they must start and end with a word character.
var keywordRegex = regexp.MustCompile(`^\w(?:[\w-]*\w)?$`)

// defaultNamedColors are the CSS keywords recognized in documents, besides currentColor.
var defaultNamedColors = map[string]string{
	"black":  "#000000",
	"gold":   "#FFD700",
	"gray":   "#808080",
	"green":  "#008000",
	"orange": "#FFA500",
	"purple": "#800080",
	"red":    "#FF0000",
	"silver": "#C0C0C0",
	"white":  "#FFFFFF",
}

// NamedTable maps color keywords to hex values. Lookups ignore case.
type NamedTable struct {
	entries  map[string]string
	keywords []string
}

// DefaultNamedTable builds the keyword table with currentColor bound to primary.
func DefaultNamedTable(primary Color) NamedTable {
	entries := make(map[string]string, len(defaultNamedColors)+1)
	for name, hex := range defaultNamedColors {
		entries[name] = hex
	}
	entries[CurrentColor] = primary.Hex()
	table, _ := NewNamedTable(entries)
	return table
}

func NewNamedTable(entries map[string]string) (NamedTable, error) {
	table := NamedTable{
		entries:  make(map[string]string, len(entries)),
		keywords: make([]string, 0, len(entries)),
	}
	for name, hex := range entries {
		if err := table.add(name, hex); err != nil {
			return NamedTable{}, err
		}
	}
	sort.Strings(table.keywords)
	return table, nil
}

// With returns a copy of t extended by extra. Existing keywords are overridden.
func (t NamedTable) With(extra map[string]string) (NamedTable, error) {
	merged := make(map[string]string, len(t.entries)+len(extra))
	for _, keyword := range t.keywords {
		merged[keyword] = t.entries[strings.ToLower(keyword)]
	}
	for name, hex := range extra {
		for existing := range merged {
			if strings.EqualFold(existing, name) {
				delete(merged, existing)
			}
		}
		merged[name] = hex
	}
	return NewNamedTable(merged)
}

func (t *NamedTable) add(name, hex string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty keyword", ErrInvalidNamedColorEntry)
	}
	if !keywordRegex.MatchString(name) {
		return fmt.Errorf("%w: keyword %q must be letters, digits, '_' or inner '-'", ErrInvalidNamedColorEntry, name)
	}
	if !IsHexColor(hex) {
		return fmt.Errorf("%w: %s must be a hex color like #AABBCC, got %q", ErrInvalidNamedColorEntry, name, hex)
	}
	key := strings.ToLower(name)
	if _, exists := t.entries[key]; exists {
		return fmt.Errorf("%w: duplicate keyword %q", ErrInvalidNamedColorEntry, name)
	}
	t.entries[key] = strings.TrimSpace(hex)
	t.keywords = append(t.keywords, name)
	return nil
}

func (t NamedTable) Lookup(name string) (string, bool) {
	hex, ok := t.entries[strings.ToLower(name)]
	return hex, ok
}

// Keywords returns the table's keywords in sorted order.
func (t NamedTable) Keywords() []string {
	out := make([]string, len(t.keywords))
	copy(out, t.keywords)
	return out
}

func (t NamedTable) Len() int {
	return len(t.entries)
}

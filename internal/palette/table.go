// internal/palette/table.go
package palette

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/codr1/svgtint/internal/colors"
)

type Format string

const (
	FormatSass Format = "sass"
	FormatCSS  Format = "css"
)

var ErrUnknownFormat = errors.New("unknown stylesheet format")

// Entry binds one palette level to its concrete color.
type Entry struct {
	Index      int
	Identifier string
	Lightness  float64
	Color      colors.Color
}

// Table builds one entry per level, ascending, using primary's hue and saturation.
func (q *Quantizer) Table(primary colors.Color) []Entry {
	entries := make([]Entry, 0, len(q.levels))
	for index, l := range q.levels {
		entries = append(entries, Entry{
			Index:      index,
			Identifier: q.Identifier(index),
			Lightness:  l,
			Color:      primary.WithLightness(l),
		})
	}
	return entries
}

func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatSass:
		return FormatSass, nil
	case FormatCSS:
		return FormatCSS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
	}
}

// FormatForFile picks a format from a file extension, falling back to fallback.
func FormatForFile(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sass":
		return FormatSass
	case ".css":
		return FormatCSS
	default:
		return fallback
	}
}

// WriteStylesheet renders entries as custom properties.
func WriteStylesheet(w io.Writer, entries []Entry, format Format) error {
	bw := bufio.NewWriter(w)
	switch format {
	case FormatSass:
		fmt.Fprint(bw, "html\n")
		for _, entry := range entries {
			fmt.Fprintf(bw, "\t--%s: %s\n", entry.Identifier, entry.Color.CSS())
		}
	case FormatCSS:
		fmt.Fprint(bw, ":root {\n")
		for _, entry := range entries {
			fmt.Fprintf(bw, "  --%s: %s;\n", entry.Identifier, entry.Color.CSS())
		}
		fmt.Fprint(bw, "}\n")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return bw.Flush()
}

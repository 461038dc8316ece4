// Package batch recolors every matching document under an input folder.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/svgtint/internal/palette"
	"github.com/codr1/svgtint/internal/recolor"
	"github.com/codr1/svgtint/internal/storage"
	"github.com/codr1/svgtint/internal/theme"
)

// Store lists, reads and writes documents.
type Store interface {
	Discover(root string) ([]string, error)
	Matches(path string) bool
	Read(path string) (string, error)
	Write(path, content string) error
}

type Options struct {
	RunID         string
	Input         string
	Output        string
	Workers       int // 0 uses GOMAXPROCS
	PalettePath   string
	PaletteFormat palette.Format
	ReportPath    string // empty disables the report
}

type Runner struct {
	store       Store
	theme       *theme.Theme
	transformer *recolor.Transformer
	opts        Options
}

func NewRunner(store Store, th *theme.Theme, sink recolor.Sink, opts Options) *Runner {
	if opts.RunID == "" {
		opts.RunID = uuid.New().String()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.PaletteFormat == "" {
		opts.PaletteFormat = palette.FormatForFile(opts.PalettePath, palette.FormatSass)
	}
	return &Runner{
		store:       store,
		theme:       th,
		transformer: recolor.New(th, sink),
		opts:        opts,
	}
}

func (r *Runner) RunID() string {
	return r.opts.RunID
}

// Run transforms all documents, then writes the palette stylesheet and the report.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	logger := log.Ctx(ctx)
	start := time.Now()

	discovered, err := r.store.Discover(r.opts.Input)
	if err != nil {
		return nil, err
	}
	paths := discovered[:0]
	for _, path := range discovered {
		if !r.isOutput(path) {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		// the palette does not depend on any document, so it is still written
		logger.Warn().Str("input", r.opts.Input).Msg("No documents found")
	}
	logger.Info().
		Str("input", r.opts.Input).
		Int("documents", len(paths)).
		Int("workers", r.opts.Workers).
		Msg("Recoloring documents")

	documents := make([]DocumentReport, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := r.ProcessFile(path)
			if err != nil {
				return err
			}
			documents[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := r.WritePalette(); err != nil {
		return nil, err
	}

	report := r.newReport(documents)
	if r.opts.ReportPath != "" {
		if err := r.writeReport(report); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Int("documents", len(documents)).
		Int("substituted", report.Totals.Substituted).
		Int("unchanged", report.Totals.Unchanged).
		Str("palette", r.opts.PalettePath).
		Dur("duration", time.Since(start)).
		Msg("Recoloring complete")
	return report, nil
}

// ProcessFile transforms a single document and writes it to its output location.
func (r *Runner) ProcessFile(path string) (DocumentReport, error) {
	outputPath, err := storage.OutputPath(path, r.opts.Input, r.opts.Output)
	if err != nil {
		return DocumentReport{}, err
	}
	content, err := r.store.Read(path)
	if err != nil {
		return DocumentReport{}, err
	}

	result := r.transformer.Transform(recolor.Document{
		Name:    filepath.Base(path),
		Path:    path,
		Content: content,
	})

	if err := r.store.Write(outputPath, result.Content); err != nil {
		return DocumentReport{}, err
	}
	return documentReport(path, outputPath, result), nil
}

// WritePalette writes the stylesheet for every palette level.
func (r *Runner) WritePalette() error {
	var b strings.Builder
	if err := palette.WriteStylesheet(&b, r.theme.Palette(), r.opts.PaletteFormat); err != nil {
		return fmt.Errorf("render palette: %w", err)
	}
	return r.store.Write(r.opts.PalettePath, b.String())
}

func (r *Runner) writeReport(report *Report) error {
	var b strings.Builder
	if err := WriteReport(&b, report); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return r.store.Write(r.opts.ReportPath, b.String())
}

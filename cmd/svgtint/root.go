// cmd/svgtint/root.go
package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/codr1/svgtint/internal/batch"
	"github.com/codr1/svgtint/internal/config"
	"github.com/codr1/svgtint/internal/recolor"
	"github.com/codr1/svgtint/internal/storage"
	"github.com/codr1/svgtint/internal/theme"
)

type globalFlags struct {
	configPath string
	verbose    bool
}

// session is everything a command needs once configuration is resolved.
type session struct {
	cfg    *config.Config
	theme  *theme.Theme
	logger zerolog.Logger
	ctx    context.Context
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "svgtint [input] [output] [primary-color] [tolerance]",
		Short: "Recolor SVG documents into a primary color palette",
		Long: `svgtint rewrites every color in a folder of SVG documents into a reference to
a lightness level of one primary color, var(--primary-l-N), and writes the
stylesheet that defines those levels.

Arguments override the configuration file in order: input folder, output
folder, primary color and tolerance.`,
		Args:         cobra.MaximumNArgs(4),
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags, func(cfg *config.Config) error {
				return cfg.ApplyArgs(args)
			})
			if err != nil {
				return err
			}
			runner := newRunner(s)
			report, err := runner.Run(s.ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recolored %d documents (%d colors substituted, %d unchanged) into %s\n",
				report.Totals.Documents, report.Totals.Substituted, report.Totals.Unchanged, s.cfg.Output)
			return nil
		},
	}
	cmd.SetVersionTemplate(`{{printf "svgtint version %s\n" .Version}}`)

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to a yaml configuration file")
	cmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "log every substitution")

	cmd.AddCommand(newPaletteCmd(flags))
	cmd.AddCommand(newInspectCmd(flags))
	cmd.AddCommand(newWatchCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newSession loads configuration, lets override adjust it and builds the theme.
func newSession(cmd *cobra.Command, flags *globalFlags, override func(*config.Config) error) (*session, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if override != nil {
		if err := override(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Input, err = filepath.Abs(cfg.Input); err != nil {
		return nil, fmt.Errorf("resolve input folder: %w", err)
	}
	if cfg.Output, err = filepath.Abs(cfg.Output); err != nil {
		return nil, fmt.Errorf("resolve output folder: %w", err)
	}

	th, err := theme.New(cfg.ThemeOptions())
	if err != nil {
		return nil, err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Log, flags.verbose)
	logger.Debug().
		Str("primary", th.Primary().Hex()).
		Float64("tolerance", th.Tolerance()).
		Str("reference", th.Reference().String()).
		Msg("Theme ready")

	return &session{
		cfg:    cfg,
		theme:  th,
		logger: logger,
		ctx:    logger.WithContext(cmd.Context()),
	}, nil
}

func newRunner(s *session) *batch.Runner {
	report := s.cfg.Report
	if report != "" && !filepath.IsAbs(report) {
		report = filepath.Join(s.cfg.Output, report)
	}
	return batch.NewRunner(
		storage.NewFS(s.cfg.Extensions),
		s.theme,
		recolor.NewLogSink(s.logger),
		batch.Options{
			Input:         s.cfg.Input,
			Output:        s.cfg.Output,
			Workers:       s.cfg.Workers,
			PalettePath:   s.cfg.PalettePath(),
			PaletteFormat: s.cfg.PaletteFormat(),
			ReportPath:    report,
		},
	)
}

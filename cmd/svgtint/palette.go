package main

import (
	"github.com/spf13/cobra"

	"github.com/codr1/svgtint/internal/config"
	"github.com/codr1/svgtint/internal/palette"
)

func newPaletteCmd(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "palette [primary-color] [tolerance]",
		Short: "Print the palette stylesheet without touching any document",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags, func(cfg *config.Config) error {
				// only the theme arguments; folders stay as configured
				return cfg.ApplyArgs(append([]string{cfg.Input, cfg.Output}, args...))
			})
			if err != nil {
				return err
			}

			selected := s.cfg.PaletteFormat()
			if format != "" {
				if selected, err = palette.ParseFormat(format); err != nil {
					return err
				}
			}
			return palette.WriteStylesheet(cmd.OutOrStdout(), s.theme.Palette(), selected)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "stylesheet format: sass or css (default from the palette file name)")
	return cmd
}

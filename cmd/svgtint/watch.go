package main

import (
	"github.com/spf13/cobra"

	"github.com/codr1/svgtint/internal/config"
)

func newWatchCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [input] [output] [primary-color] [tolerance]",
		Short: "Recolor once, then again whenever a document changes",
		Args:  cobra.MaximumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags, func(cfg *config.Config) error {
				return cfg.ApplyArgs(args)
			})
			if err != nil {
				return err
			}

			runner := newRunner(s)
			if _, err := runner.Run(s.ctx); err != nil {
				return err
			}
			return runner.Watch(s.ctx, nil)
		},
	}
}

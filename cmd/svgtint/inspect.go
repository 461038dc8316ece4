package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codr1/svgtint/internal/colors"
	"github.com/codr1/svgtint/internal/recolor"
	"github.com/codr1/svgtint/internal/storage"
)

func newInspectCmd(flags *globalFlags) *cobra.Command {
	var closest int

	cmd := &cobra.Command{
		Use:   "inspect <svg-file>",
		Short: "Show the colors used by one document and where they would land in the palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags, nil)
			if err != nil {
				return err
			}

			path := args[0]
			content, err := storage.NewFS(s.cfg.Extensions).Read(path)
			if err != nil {
				return err
			}

			transformer := recolor.New(s.theme, recolor.NewLogSink(s.logger))
			inspection := transformer.Inspect(recolor.Document{
				Name:    filepath.Base(path),
				Path:    path,
				Content: content,
			}, closest)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Document: %s\n", inspection.Document)
			if inspection.Analysis.Empty() {
				fmt.Fprintln(out, "Lightness: no resolvable colors")
			} else {
				fmt.Fprintf(out, "Lightness: observed %s, reference %s, contained %t\n",
					inspection.Analysis.Observed(), inspection.Analysis.Reference(), inspection.Analysis.Contained())
			}

			for _, usage := range inspection.Tokens {
				fmt.Fprintf(out, "  Color: %s (%s), Count: %d\n", usage.Token, usage.Kind, usage.Count)
				if usage.Err != nil {
					fmt.Fprintf(out, "    Error: %v\n", usage.Err)
					continue
				}
				fmt.Fprintf(out, "    Gray: %s, Lightness: %.2f\n", usage.Gray.Hex(), usage.Gray.L)
				if usage.Reference != "" {
					text, ratio := colors.BestTextColor(usage.Recolored)
					fmt.Fprintf(out, "    Becomes: %s %s, Text: %s at %.2f:1\n",
						usage.Reference, usage.Recolored.CSS(), text.Hex(), ratio)
				}
				if len(usage.Closest) > 0 {
					fmt.Fprintln(out, "    Closest Matches:")
				}
				for _, match := range usage.Closest {
					fmt.Fprintf(out, "      %s (%s), Distance: %.4f\n", match.Name, match.Hex, match.Distance)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&closest, "closest", "n", 3, "number of closest named colors to list")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/naveenspark/catalyst/pkg/domain"
)

// showConcurrency caps parallel detail fetches for `programs show`.
const showConcurrency = 4

func newProgramsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "programs",
		Aliases: []string{"program", "p"},
		Short:   "Query the program catalog without the TUI",
	}
	cmd.AddCommand(newProgramsListCmd(e), newProgramsShowCmd(e))
	return cmd
}

func newProgramsListCmd(e *env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every program in source order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, formatTable, formatJSON, formatYAML); err != nil {
				return err
			}
			programs, err := e.client().ListPrograms(cmd.Context())
			if err != nil {
				return err
			}
			e.logger.Debug().Int("count", len(programs)).Msg("listed programs")
			return writeSummaries(cmd.OutOrStdout(), format, programs)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", formatTable, "output format: table, json or yaml")
	return cmd
}

func newProgramsShowCmd(e *env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <id> [id...]",
		Short: "Show one or more programs with their call-to-action widget",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, ids []string) error {
			if err := checkFormat(format, formatText, formatJSON, formatYAML); err != nil {
				return err
			}
			c := e.client()
			details := make([]*domain.ProgramDetail, len(ids))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(showConcurrency)
			for i, id := range ids {
				g.Go(func() error {
					p, err := c.GetProgram(ctx, id)
					if err != nil {
						return fmt.Errorf("program %q: %w", id, err)
					}
					details[i] = p
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			return writeDetails(cmd.OutOrStdout(), format, details)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", formatText, "output format: text, json or yaml")
	return cmd
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newRunCmd() *cobra.Command {
	var batch bool
	var only string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the built-in demo DMA scenarios against an in-memory host",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios := scenarioList()
			if only != "" {
				scenarios = filterScenarios(scenarios, only)
				if len(scenarios) == 0 {
					return fmt.Errorf("no scenario named %q", only)
				}
			}

			if batch {
				return runBatch(cmd.Context(), scenarios)
			}
			return runSequential(scenarios)
		},
	}
	cmd.Flags().BoolVar(&batch, "batch", false, "run every scenario concurrently (each against its own engine and bus)")
	cmd.Flags().StringVar(&only, "only", "", "run a single named scenario")
	return cmd
}

func filterScenarios(all []scenario, name string) []scenario {
	for _, s := range all {
		if s.name == name {
			return []scenario{s}
		}
	}
	return nil
}

func runSequential(scenarios []scenario) error {
	for _, s := range scenarios {
		if err := runScenario(s); err != nil {
			return err
		}
		fmt.Printf("ok   %s\n", s.name)
	}
	return nil
}

// runBatch runs every scenario concurrently. Each scenario gets its own
// Engine and Bus, so there is no shared mutable state beyond stdout. Every
// scenario runs to its end (the scenarios do not watch the group's
// context); Wait then returns the first scenario failure, if any.
func runBatch(ctx context.Context, scenarios []scenario) error {
	g, _ := errgroup.WithContext(ctx)
	for _, s := range scenarios {
		s := s
		g.Go(func() error {
			if err := runScenario(s); err != nil {
				return err
			}
			fmt.Printf("ok   %s (batch)\n", s.name)
			return nil
		})
	}
	return g.Wait()
}

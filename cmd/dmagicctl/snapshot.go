package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Arm a scenario, save a snapshot mid-flight, and restore it into a fresh engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios := scenarioList()
			s := filterScenarios(scenarios, name)
			if len(s) == 0 {
				return fmt.Errorf("no scenario named %q", name)
			}
			return runSnapshotDemo(s[0])
		},
	}
	cmd.Flags().StringVar(&name, "scenario", "copy16", "scenario to snapshot mid-flight")
	return cmd
}

func runSnapshotDemo(s scenario) error {
	e, bus := newHarness(s.revision)
	s.build(bus, e)

	if err := e.Update(); err != nil {
		return fmt.Errorf("snapshot demo: %w", err)
	}

	block := e.SnapshotSave()
	fmt.Printf("saved snapshot: version=%d bytes=%d\n", block.Version, len(block.Data))

	restored, _ := newHarness(s.revision)
	if err := restored.SnapshotLoad(block); err != nil {
		return fmt.Errorf("snapshot demo: restore: %w", err)
	}

	if restored.Revision() != e.Revision() {
		return fmt.Errorf("snapshot demo: restored revision %s, want %s", restored.Revision(), e.Revision())
	}
	fmt.Printf("restored engine: revision=%s status=0x%02X\n", restored.Revision(), restored.Status())
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/retrobus/dmagic65"
)

func newInspectCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Step a scenario interactively, one cooperative Update at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios := scenarioList()
			s := filterScenarios(scenarios, name)
			if len(s) == 0 {
				return fmt.Errorf("no scenario named %q", name)
			}
			return inspectScenario(s[0])
		},
	}
	cmd.Flags().StringVar(&name, "scenario", "copy16", "scenario to step through")
	return cmd
}

// inspectScenario puts stdin into raw mode and lets the user single-step
// an Engine with the space bar, printing the status byte, busy flag and
// chip revision after each step; q quits. Raw mode is restored on exit the same way
// terminal_host.go restores it for the emulator's TerminalHost.
func inspectScenario(s scenario) error {
	e, bus := newHarness(s.revision)
	s.build(bus, e)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		// Not an interactive terminal (e.g. piped input in CI): just run
		// it to completion and print the final state once.
		for e.Busy() {
			if err := e.Update(); err != nil {
				return err
			}
		}
		printRegisters(e)
		return nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("inspect: failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	fmt.Print("space: step   q: quit\r\n")
	printRegisters(e)

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return nil
		}
		switch buf[0] {
		case 'q', 3: // q or Ctrl-C
			return nil
		case ' ':
			if !e.Busy() {
				fmt.Print("idle\r\n")
				continue
			}
			if err := e.Update(); err != nil {
				fmt.Printf("error: %v\r\n", err)
				return nil
			}
			printRegisters(e)
		}
	}
}

func printRegisters(e *dmagic.Engine) {
	fmt.Printf("status=0x%02X busy=%v revision=%s\r\n", e.Status(), e.Busy(), e.Revision())
}

// dmagicctl drives a dmagic.Engine against an in-memory host simulation,
// for exercising and inspecting DMA list programs without a real C65 or
// MEGA-65 system attached.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dmagicctl",
		Short: "Drive a DMAgic F018 engine against an in-memory host simulation",
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newSnapshotCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

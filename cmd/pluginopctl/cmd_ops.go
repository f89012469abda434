package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/core-quic/pluginop/pkg/operation"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "Load modules and print the resolved operation table",
	RunE:  runOps,
}

var opsModules []string

func init() {
	opsCmd.Flags().StringSliceVar(&opsModules, "module", nil, "module to load (repeatable, in dispatch order)")
	rootCmd.AddCommand(opsCmd)
}

func runOps(cmd *cobra.Command, args []string) error {
	if len(opsModules) == 0 {
		return fmt.Errorf("ops: at least one --module is required (known: %v)", demoModuleNames())
	}
	handler, closer, err := buildHandler(context.Background(), opsModules)
	if err != nil {
		return err
	}
	defer closer()

	fmt.Printf("%-7s %-28s %s\n", "anchor", "operation", "module")
	for _, anchor := range []operation.Anchor{operation.Before, operation.Replace, operation.After} {
		for _, op := range allKnownOperations() {
			for _, m := range handler.Modules() {
				if m.Provides(op, anchor) {
					fmt.Printf("%-7s %-28s %s\n", anchor, op, m.Name)
				}
			}
		}
	}
	return nil
}

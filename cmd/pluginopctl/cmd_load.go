package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/core-quic/pluginop/pkg/operation"
)

var loadCmd = &cobra.Command{
	Use:   "load <module>",
	Short: "Load a module and print its resolved operation table",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	name := args[0]
	handler, closer, err := buildHandler(context.Background(), []string{name})
	if err != nil {
		return err
	}
	defer closer()

	m := handler.Modules()[0]
	fmt.Printf("%s: loaded (instance %s), initialized=%v, permissions=%#02x\n",
		name, m.InstanceID, m.Env.Initialized, uint8(m.Env.Permissions))

	for _, anchor := range []operation.Anchor{operation.Before, operation.Replace, operation.After} {
		for _, op := range allKnownOperations() {
			if m.Provides(op, anchor) {
				fmt.Printf("  %-7s %s\n", anchor, op)
			}
		}
	}
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/core-quic/pluginop/pkg/operation"
)

var callCmd = &cobra.Command{
	Use:   "call <operation>",
	Short: "Load modules and dispatch a single operation",
	Args:  cobra.ExactArgs(1),
	RunE:  runCall,
}

var (
	callModules []string
	callArgs    []string
)

func init() {
	callCmd.Flags().StringSliceVar(&callModules, "module", nil, "module to load (repeatable, in dispatch order)")
	callCmd.Flags().StringArrayVar(&callArgs, "arg", nil, "argument as kind:value, e.g. u64:42 (repeatable, in order)")
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	if len(callModules) == 0 {
		return fmt.Errorf("call: at least one --module is required (known: %v)", demoModuleNames())
	}

	op, _, err := operation.FromName(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnknownOperation, args[0], err)
	}

	values, err := parseArgs(callArgs)
	if err != nil {
		return err
	}

	ctx := context.Background()
	handler, closer, err := buildHandler(ctx, callModules)
	if err != nil {
		return err
	}
	defer closer()

	out, err := handler.Call(ctx, op, values)
	if err != nil {
		return fmt.Errorf("call %s: %w", args[0], err)
	}

	if len(out) == 0 {
		fmt.Println("ok (no outputs)")
		return nil
	}
	for i, v := range out {
		fmt.Printf("out[%d] = %s\n", i, formatValue(v))
	}
	return nil
}

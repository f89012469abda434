package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "pluginopctl",
	Short: "Load, inspect, and invoke operation-plugin modules",
	Long: `pluginopctl is a manual-testing harness for the operation dispatch
engine: load one or more modules, inspect the operation table they resolve
to, invoke a single operation, or drop into an interactive shell.`,
}

func init() {
	rootCmd.PersistentFlags().Int("depth-cap", 0, "Reentrancy depth cap (0 uses the engine default)")
	viper.BindPFlag("dispatch.depth-cap", rootCmd.PersistentFlags().Lookup("depth-cap"))

	rootCmd.PersistentFlags().String("log-jsonl", "", "Append dispatch-lifecycle events as JSON-L to this file (unset disables)")
	viper.BindPFlag("logging.jsonl-path", rootCmd.PersistentFlags().Lookup("log-jsonl"))

	rootCmd.PersistentFlags().String("log-sqlite", "", "Record dispatch-lifecycle events into this SQLite database (unset disables)")
	viper.BindPFlag("logging.sqlite-path", rootCmd.PersistentFlags().Lookup("log-sqlite"))
}

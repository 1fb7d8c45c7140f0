// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"github.com/spf13/cobra"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "someipbind",
	Short: "someipbind - SOME/IP event sample binding",
	Long: `someipbind deserializes SOME/IP and signal-based event samples with
end-to-end protection checking.

It interprets raw event frames per deployed wire layout (SOME/IP, signal-based
PDU, with or without E2E protection), runs the configured E2E profile check,
and hands deserialized samples to the application through a bounded sample
cache with back-pressure.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "/etc/someipbind/config.yml",
		"config file path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(validateCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adaptivemw/someipbind/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		fmt.Printf("configuration OK: %d event(s)\n", len(cfg.Events))
		return nil
	},
}

package cmd

import (
	"github.com/spf13/cobra"

	"meeting-sync/config"
)

func Root(config *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{}
	rootCmd.AddCommand(server(config))
	rootCmd.AddCommand(sync(config))
	rootCmd.AddCommand(livestream(config))
	return rootCmd
}

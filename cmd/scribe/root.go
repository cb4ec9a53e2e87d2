package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var addrFlag string

	rootCmd := &cobra.Command{
		Use:           "scribe",
		Short:         "Scribe transcription CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&addrFlag, "addr", defaultAPIBase, "Base URL of the scribed API")

	rootCmd.AddCommand(newStatusCommand(&addrFlag))
	rootCmd.AddCommand(newHealthCommand(&addrFlag))
	rootCmd.AddCommand(newUploadCommand(&addrFlag))
	rootCmd.AddCommand(newShowCommand(&addrFlag))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

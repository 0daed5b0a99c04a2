package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "ymlog",
		Short:         "Streaming YAML log writer and inspector",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newExecCommand(ctx))
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newShowCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

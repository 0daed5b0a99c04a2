package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ymlog/internal/replay"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Verify that a log stream parses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer file.Close()

			stats, err := replay.Check(file)
			if err != nil {
				return fmt.Errorf("log stream %s is damaged: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d document(s), %d record(s), max depth %d\n",
				stats.Documents, stats.Records, stats.MaxDepth)
			return nil
		},
	}
}

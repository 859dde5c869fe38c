package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evanschultz/float-worldbook/pkg/stats"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <markdown-file|->",
		Short: "Count words and characters in a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			s := stats.Compute(string(data))
			a.logger.Debug("stats computed",
				zap.String("source", args[0]),
				zap.Int("words", s.Words),
				zap.Int("chars", s.Chars))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), s.String())
			return err
		},
	}
}

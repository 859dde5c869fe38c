package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evanschultz/float-worldbook/pkg/world"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [world-file]",
		Short: "Check a world file for duplicate ids and dangling references",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.worldPath(args, 0)
			if err != nil {
				return err
			}
			w, err := world.LoadFile(path)
			if err != nil {
				return err
			}

			issues := world.Validate(w.Elements)
			out := cmd.OutOrStdout()
			for _, issue := range issues {
				fmt.Fprintln(out, issue.String())
			}
			if len(issues) == 0 {
				fmt.Fprintf(out, "%s: %d elements, no issues\n", path, len(w.Elements))
			}

			a.logger.Info("world validated",
				zap.String("path", path),
				zap.Int("issues", len(issues)))

			if world.HasErrors(issues) {
				return fmt.Errorf("%s: world has errors", path)
			}
			return nil
		},
	}
}

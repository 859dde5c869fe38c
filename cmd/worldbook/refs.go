package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evanschultz/float-worldbook/pkg/refindex"
	"github.com/evanschultz/float-worldbook/pkg/tui/components"
)

func newRefsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "refs <id> [world-file]",
		Short: "Print the elements that link to an element",
		Long: `Print every element that references <id>, grouped by relation.

Nothing is printed when no element links to <id>, including when <id>
does not exist.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.worldPath(args, 1)
			if err != nil {
				return err
			}
			_, store, err := a.loadStore(path)
			if err != nil {
				return err
			}

			id := args[0]
			groups := store.Snapshot().ReverseLinks(id)
			a.logger.Debug("reverse links",
				zap.String("id", id),
				zap.Int("groups", groups.Len()))

			if groups.Empty() {
				return nil
			}
			if asJSON {
				return writeGroupsJSON(cmd.OutOrStdout(), groups)
			}
			return writeGroups(cmd.OutOrStdout(), groups)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print groups as JSON")
	return cmd
}

func writeGroups(w io.Writer, groups refindex.Groups) error {
	for _, g := range groups {
		if _, err := fmt.Fprintf(w, "%s (%d)\n", g.Label, len(g.Elements)); err != nil {
			return err
		}
		for _, e := range g.Elements {
			line := fmt.Sprintf("  %s (%s)", e.Name, e.ID)
			if badge := components.Badge(e.Category); badge != "" {
				line = fmt.Sprintf("  [%s] %s (%s)", badge, e.Name, e.ID)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

type jsonRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type jsonGroup struct {
	Label    string    `json:"label"`
	Elements []jsonRef `json:"elements"`
}

func writeGroupsJSON(w io.Writer, groups refindex.Groups) error {
	out := make([]jsonGroup, 0, groups.Len())
	for _, g := range groups {
		jg := jsonGroup{Label: g.Label, Elements: make([]jsonRef, 0, len(g.Elements))}
		for _, e := range g.Elements {
			jg.Elements = append(jg.Elements, jsonRef{ID: e.ID, Name: e.Name})
		}
		out = append(out, jg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

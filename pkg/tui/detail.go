package tui

import (
	"fmt"
	"strings"

	"github.com/evanschultz/float-worldbook/pkg/models"
	"github.com/evanschultz/float-worldbook/pkg/world"
)

// detailMarkdown renders an element and its outbound references as markdown
// for glamour. Reverse links are drawn separately by the references panel.
func detailMarkdown(e models.Element, snap *world.Snapshot) string {
	var b strings.Builder

	name := e.Name
	if name == "" {
		name = e.ID
	}
	fmt.Fprintf(&b, "# %s\n\n", name)

	var meta []string
	if e.Category != "" {
		meta = append(meta, "_"+e.Category+"_")
	}
	for _, tag := range e.Tags {
		meta = append(meta, "`#"+tag+"`")
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " · "))
		b.WriteString("\n\n")
	}

	if content := strings.TrimSpace(e.Content); content != "" {
		b.WriteString(content)
		b.WriteString("\n\n")
	}

	var lines []string
	for _, rel := range models.Relations {
		ref := rel.Refs(e)
		if ref.IsNone() {
			continue
		}
		names := make([]string, 0, len(ref.IDs()))
		for _, id := range ref.IDs() {
			names = append(names, refName(snap, id))
		}
		lines = append(lines, fmt.Sprintf("- **%s:** %s", rel.Label, strings.Join(names, ", ")))
	}
	if len(lines) > 0 {
		b.WriteString("---\n\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}

func refName(snap *world.Snapshot, id string) string {
	target, ok := snap.Lookup(id)
	if !ok {
		return "`" + id + "` (missing)"
	}
	if target.Name == "" {
		return target.ID
	}
	return target.Name
}

package tui

import (
	"strings"

	"github.com/evanschultz/float-worldbook/pkg/models"
	"github.com/evanschultz/float-worldbook/pkg/tui/components"
	"github.com/evanschultz/float-worldbook/pkg/world"
)

// Messages
type snapshotMsg struct {
	snap *world.Snapshot
}

type detailRenderedMsg struct {
	id      string
	version uint64
	content string
}

type errMsg struct {
	err error
}

// List items
type elementItem struct {
	element models.Element
}

func (i elementItem) FilterValue() string {
	return i.element.Name + " " + i.element.Category + " " + strings.Join(i.element.Tags, " ")
}

func (i elementItem) Title() string {
	name := i.element.Name
	if name == "" {
		name = i.element.ID
	}
	if badge := components.Badge(i.element.Category); badge != "" {
		return "[" + badge + "] " + name
	}
	return name
}

func (i elementItem) Description() string {
	parts := []string{}
	if i.element.Category != "" {
		parts = append(parts, i.element.Category)
	}
	if len(i.element.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(i.element.Tags, " #"))
	}
	if len(parts) == 0 {
		return i.element.ID
	}
	return strings.Join(parts, " • ")
}

package components

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evanschultz/float-worldbook/pkg/models"
	"github.com/evanschultz/float-worldbook/pkg/refindex"
)

// NavigateMsg asks the host to open the detail view of element ID.
type NavigateMsg struct {
	ID string
}

type chip struct {
	element models.Element
}

// ReferencesPanel shows the grouped "what links here" list for one element
// and lets the user pick a referrer to jump to.
type ReferencesPanel struct {
	groups  refindex.Groups
	chips   []chip
	cursor  int
	focused bool
	width   int

	// Styles
	panelStyle    lipgloss.Style
	headerStyle   lipgloss.Style
	groupStyle    lipgloss.Style
	chipStyle     lipgloss.Style
	selectedStyle lipgloss.Style
	badgeStyle    lipgloss.Style
}

type referencesKeyMap struct {
	Prev key.Binding
	Next key.Binding
	Open key.Binding
}

var referencesKeys = referencesKeyMap{
	Prev: key.NewBinding(
		key.WithKeys("up", "left", "k", "h"),
		key.WithHelp("←/↑", "previous"),
	),
	Next: key.NewBinding(
		key.WithKeys("down", "right", "j", "l"),
		key.WithHelp("→/↓", "next"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
}

func NewReferencesPanel() ReferencesPanel {
	return ReferencesPanel{
		panelStyle: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")),
		groupStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		chipStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Padding(0, 1),
		selectedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		badgeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")),
	}
}

// SetGroups replaces the panel contents. The selection is kept when the
// same referrer is still present.
func (p *ReferencesPanel) SetGroups(groups refindex.Groups) {
	var prev string
	if sel, ok := p.Selected(); ok {
		prev = sel.ID
	}

	p.groups = groups
	p.chips = nil
	p.cursor = 0
	found := false
	for _, g := range groups {
		for _, e := range g.Elements {
			if !found && prev != "" && e.ID == prev {
				p.cursor = len(p.chips)
				found = true
			}
			p.chips = append(p.chips, chip{element: e})
		}
	}
}

func (p *ReferencesPanel) SetWidth(width int) {
	p.width = width
}

func (p *ReferencesPanel) Focus() tea.Cmd {
	p.focused = true
	return nil
}

func (p *ReferencesPanel) Blur() tea.Cmd {
	p.focused = false
	return nil
}

func (p *ReferencesPanel) Focused() bool {
	return p.focused
}

// Empty reports whether there is nothing to show.
func (p ReferencesPanel) Empty() bool {
	return p.groups.Empty()
}

// Selected returns the highlighted referrer.
func (p ReferencesPanel) Selected() (models.Element, bool) {
	if p.cursor < 0 || p.cursor >= len(p.chips) {
		return models.Element{}, false
	}
	return p.chips[p.cursor].element, true
}

func (p ReferencesPanel) Update(msg tea.Msg) (ReferencesPanel, tea.Cmd) {
	if !p.focused || len(p.chips) == 0 {
		return p, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, referencesKeys.Prev):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, referencesKeys.Next):
			if p.cursor < len(p.chips)-1 {
				p.cursor++
			}
		case key.Matches(msg, referencesKeys.Open):
			if sel, ok := p.Selected(); ok {
				id := sel.ID
				return p, func() tea.Msg { return NavigateMsg{ID: id} }
			}
		}
	}

	return p, nil
}

// View renders nothing when there are no references.
func (p ReferencesPanel) View() string {
	if p.Empty() {
		return ""
	}

	inner := p.width - 4
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder
	b.WriteString(p.headerStyle.Render("references"))

	i := 0
	for _, g := range p.groups {
		b.WriteString("\n\n")
		b.WriteString(p.groupStyle.Render(fmt.Sprintf("%s (%d)", g.Label, len(g.Elements))))
		b.WriteString("\n")

		var rendered []string
		for range g.Elements {
			rendered = append(rendered, p.renderChip(i))
			i++
		}
		b.WriteString(wrapChips(rendered, inner))
	}

	style := p.panelStyle
	if p.focused {
		style = style.BorderForeground(lipgloss.Color("62"))
	}
	if p.width > 0 {
		style = style.Width(p.width - 2)
	}
	return style.Render(b.String())
}

func (p ReferencesPanel) renderChip(i int) string {
	e := p.chips[i].element
	label := e.Name
	if label == "" {
		label = e.ID
	}
	if badge := Badge(e.Category); badge != "" {
		label = p.badgeStyle.Render(badge) + " " + label
	}
	if p.focused && i == p.cursor {
		return p.selectedStyle.Render(label)
	}
	return p.chipStyle.Render(label)
}

// wrapChips lays chips out left to right, starting a new line when the next
// chip would overflow width.
func wrapChips(chips []string, width int) string {
	var lines []string
	var line []string
	lineWidth := 0
	for _, c := range chips {
		w := lipgloss.Width(c)
		if lineWidth > 0 && lineWidth+w > width {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line, lineWidth = nil, 0
		}
		line = append(line, c)
		lineWidth += w
	}
	if len(line) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return strings.Join(lines, "\n")
}

// Badge is the upper-cased first letter of a category, or "" when the
// element has none.
func Badge(category string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(category))
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

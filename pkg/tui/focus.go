package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FocusableComponent represents a component that can receive focus
type FocusableComponent interface {
	Focus() tea.Cmd
	Blur() tea.Cmd
	Focused() bool
}

// FocusManager cycles focus between the panes of the detail view
type FocusManager struct {
	components []FocusableComponent
	current    int
}

// NewFocusManager focuses the first component
func NewFocusManager(components ...FocusableComponent) *FocusManager {
	fm := &FocusManager{components: components}
	if len(components) > 0 {
		components[0].Focus()
	}
	return fm
}

// Next moves focus to the next component that accepts it. skip reports
// components that should be passed over, such as an empty panel.
func (fm *FocusManager) Next(skip func(FocusableComponent) bool) tea.Cmd {
	n := len(fm.components)
	if n == 0 {
		return nil
	}
	for step := 1; step <= n; step++ {
		i := (fm.current + step) % n
		if skip != nil && skip(fm.components[i]) {
			continue
		}
		return fm.SetFocus(i)
	}
	return nil
}

// SetFocus sets focus to a specific component index
func (fm *FocusManager) SetFocus(index int) tea.Cmd {
	if index < 0 || index >= len(fm.components) {
		return nil
	}
	fm.components[fm.current].Blur()
	fm.current = index
	return fm.components[fm.current].Focus()
}

// Reset returns focus to the first component
func (fm *FocusManager) Reset() tea.Cmd {
	return fm.SetFocus(0)
}

// Current returns the focused component
func (fm *FocusManager) Current() FocusableComponent {
	if len(fm.components) == 0 {
		return nil
	}
	return fm.components[fm.current]
}

// contentPane is the scrolling rendered-markdown half of the detail view
type contentPane struct {
	viewport viewport.Model
	focused  bool
}

func newContentPane() *contentPane {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().PaddingRight(1)
	return &contentPane{viewport: vp}
}

func (c *contentPane) Focus() tea.Cmd {
	c.focused = true
	return nil
}

func (c *contentPane) Blur() tea.Cmd {
	c.focused = false
	return nil
}

func (c *contentPane) Focused() bool {
	return c.focused
}

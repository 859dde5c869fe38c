package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/evanschultz/float-worldbook/pkg/stats"
)

type EditorMode int

const (
	ModeEdit EditorMode = iota
	ModePreview
)

// MarkdownEditor edits an element's content with a live preview and a
// writing-stats footer.
type MarkdownEditor struct {
	textarea textarea.Model
	preview  string
	mode     EditorMode
	title    string
	style    string
	width    int
	height   int
	renderer *glamour.TermRenderer

	// Styles
	borderStyle lipgloss.Style
	titleStyle  lipgloss.Style
	modeStyle   lipgloss.Style
	helpStyle   lipgloss.Style
	statsStyle  lipgloss.Style
}

type editorKeyMap struct {
	Save    key.Binding
	Cancel  key.Binding
	Preview key.Binding
	Bold    key.Binding
	Italic  key.Binding
}

var editorKeys = editorKeyMap{
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Preview: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "preview"),
	),
	Bold: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("ctrl+b", "bold"),
	),
	Italic: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "italic"),
	),
}

// NewRenderer builds a glamour renderer for a named style. "auto" picks
// dark or light from the terminal background.
func NewRenderer(style string, wordWrap int) (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithStandardStyle(style)
	if style == "" || style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	return glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wordWrap))
}

func NewMarkdownEditor(style string) MarkdownEditor {
	ta := textarea.New()
	ta.Placeholder = "Describe this element..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Focus()

	renderer, _ := NewRenderer(style, 80)

	return MarkdownEditor{
		textarea: ta,
		mode:     ModeEdit,
		style:    style,
		renderer: renderer,
		borderStyle: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")),
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")),
		modeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		statsStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}

func (m MarkdownEditor) Init() tea.Cmd {
	return textarea.Blink
}

func (m MarkdownEditor) Update(msg tea.Msg) (MarkdownEditor, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, editorKeys.Save):
			content := m.textarea.Value()
			return m, func() tea.Msg { return SaveMsg{Content: content} }

		case key.Matches(msg, editorKeys.Cancel):
			return m, func() tea.Msg { return CancelMsg{} }

		case key.Matches(msg, editorKeys.Preview):
			m.togglePreview()
			return m, nil

		case m.mode == ModePreview:
			// read-only
			return m, nil

		case key.Matches(msg, editorKeys.Bold):
			m.emphasize("**")
			return m, nil

		case key.Matches(msg, editorKeys.Italic):
			m.emphasize("*")
			return m, nil
		}
	}

	if m.mode != ModeEdit {
		return m, nil
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m MarkdownEditor) View() string {
	var content string
	var modeText string

	if m.mode == ModeEdit {
		content = m.textarea.View()
		modeText = "Edit Mode"
	} else {
		content = m.preview
		modeText = "Preview Mode"
	}

	title := m.titleStyle.Render(m.title)
	mode := m.modeStyle.Render(modeText)
	titleBar := lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", max(0, m.width-lipgloss.Width(title)-lipgloss.Width(mode)-4)),
		mode,
	)

	var helpText string
	if m.mode == ModeEdit {
		helpText = "ctrl+s: save • esc: cancel • ctrl+p: preview • ctrl+b/ctrl+t: bold/italic"
	} else {
		helpText = "ctrl+s: save • esc: cancel • ctrl+p: back to editing"
	}

	footer := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.statsStyle.Render(m.Stats().String()),
		"   ",
		m.helpStyle.Render(helpText),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		m.borderStyle.Width(max(0, m.width-2)).Height(max(0, m.height-4)).Render(content),
		footer,
	)
}

// Stats counts the current draft.
func (m MarkdownEditor) Stats() stats.Stats {
	return stats.Compute(m.textarea.Value())
}

func (m *MarkdownEditor) SetTitle(title string) {
	m.title = title
}

func (m *MarkdownEditor) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateSize()
}

func (m *MarkdownEditor) SetValue(value string) {
	m.textarea.SetValue(value)
	m.mode = ModeEdit
}

func (m MarkdownEditor) Value() string {
	return m.textarea.Value()
}

func (m MarkdownEditor) Mode() EditorMode {
	return m.mode
}

func (m *MarkdownEditor) updateSize() {
	m.textarea.SetWidth(max(0, m.width-4))
	m.textarea.SetHeight(max(1, m.height-6))

	if renderer, err := NewRenderer(m.style, max(20, m.width-4)); err == nil {
		m.renderer = renderer
	}
}

func (m *MarkdownEditor) togglePreview() {
	if m.mode == ModePreview {
		m.mode = ModeEdit
		return
	}
	m.mode = ModePreview

	draft := m.textarea.Value()
	if m.renderer == nil {
		m.preview = draft
		return
	}
	rendered, err := m.renderer.Render(draft)
	if err != nil {
		m.preview = "Error rendering markdown: " + err.Error()
		return
	}
	m.preview = rendered
}

// emphasize appends an empty marker pair to the draft and puts the cursor
// between the markers. textarea has no byte offset for its cursor, so the
// pair always goes at the end.
func (m *MarkdownEditor) emphasize(marker string) {
	head := m.textarea.Value() + marker
	m.textarea.SetValue(head + marker)

	lastLine := head[strings.LastIndex(head, "\n")+1:]
	m.textarea.SetCursor(len([]rune(lastLine)))
}

// SaveMsg carries the edited content back to the host.
type SaveMsg struct {
	Content string
}

// CancelMsg tells the host the edit was abandoned.
type CancelMsg struct{}

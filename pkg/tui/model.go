package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/evanschultz/float-worldbook/pkg/config"
	"github.com/evanschultz/float-worldbook/pkg/models"
	"github.com/evanschultz/float-worldbook/pkg/refindex"
	"github.com/evanschultz/float-worldbook/pkg/tui/components"
	"github.com/evanschultz/float-worldbook/pkg/world"
)

type state int

const (
	stateList state = iota
	stateDetail
	stateEdit
)

// refCache memoizes reverse links for one element of one snapshot.
type refCache struct {
	id      string
	version uint64
	groups  refindex.Groups
	ok      bool
}

type Model struct {
	store  *world.Store
	snap   *world.Snapshot
	ui     config.UIConfig
	logger *zap.Logger

	state  state
	width  int
	height int

	// Components
	list    list.Model
	content *contentPane
	refs    *components.ReferencesPanel
	editor  components.MarkdownEditor
	focus   *FocusManager
	help    help.Model

	// Navigation
	current string
	history []string

	cache refCache
	err   error
}

type keyMap struct {
	Enter  key.Binding
	Filter key.Binding
	Back   key.Binding
	Edit   key.Binding
	Tab    key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	// the list handles "/" itself; this binding only feeds the help line
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// New builds the UI over store. The store stays the single writer; the UI
// reads snapshots and writes edits back through Put.
func New(store *world.Store, ui config.UIConfig, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("170")).
		BorderForeground(lipgloss.Color("170"))

	refs := components.NewReferencesPanel()
	m := Model{
		store:   store,
		snap:    store.Snapshot(),
		ui:      ui,
		logger:  logger,
		state:   stateList,
		list:    list.New([]list.Item{}, delegate, 0, 0),
		content: newContentPane(),
		refs:    &refs,
		editor:  components.NewMarkdownEditor(ui.Style),
		help:    help.New(),
	}
	m.list.Title = "World"
	m.list.SetShowHelp(false)
	m.list.SetFilteringEnabled(true)
	m.list.DisableQuitKeybindings()
	m.focus = NewFocusManager(m.content, m.refs)
	m.refreshList()

	return m
}

// SetTitle names the element list, usually after the world.
func (m *Model) SetTitle(title string) {
	if title != "" {
		m.list.Title = title
	}
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.store)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		if m.state == stateDetail {
			cmds = append(cmds, m.renderDetail())
		}

	case snapshotMsg:
		// a save may already have moved us past this notification
		if msg.snap.Version() <= m.snap.Version() {
			return m, waitForChange(m.store)
		}
		m.snap = msg.snap
		cmds = append(cmds, m.refreshList(), waitForChange(m.store))
		if m.state != stateList {
			if _, ok := m.snap.Lookup(m.current); !ok {
				m.logger.Info("open element removed from world", zap.String("id", m.current))
				m.state = stateList
				m.current = ""
				m.history = nil
			} else if m.state == stateDetail {
				m.refreshReferences()
				cmds = append(cmds, m.renderDetail())
			}
		}
		return m, tea.Batch(cmds...)

	case detailRenderedMsg:
		// drop renders for an element we have since navigated away from
		if msg.id == m.current {
			m.content.viewport.SetContent(msg.content)
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		m.logger.Error("ui error", zap.Error(msg.err))
		return m, nil

	case components.NavigateMsg:
		return m, m.open(msg.ID, true)

	case components.SaveMsg:
		return m, m.save(msg.Content)

	case components.CancelMsg:
		m.state = stateDetail
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	// Update components
	var cmd tea.Cmd
	switch m.state {
	case stateList:
		m.list, cmd = m.list.Update(msg)
	case stateDetail:
		if m.refs.Focused() {
			*m.refs, cmd = m.refs.Update(msg)
		} else {
			m.content.viewport, cmd = m.content.viewport.Update(msg)
		}
	case stateEdit:
		m.editor, cmd = m.editor.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch m.state {
	case stateList:
		if m.list.FilterState() == list.Filtering {
			return false, nil
		}
		switch {
		case key.Matches(msg, keys.Quit):
			return true, tea.Quit
		case key.Matches(msg, keys.Enter):
			if i, ok := m.list.SelectedItem().(elementItem); ok {
				m.history = nil
				return true, m.open(i.element.ID, false)
			}
			return true, nil
		}

	case stateDetail:
		switch {
		case key.Matches(msg, keys.Quit):
			return true, tea.Quit
		case key.Matches(msg, keys.Back):
			return true, m.back()
		case key.Matches(msg, keys.Edit):
			return true, m.startEdit()
		case key.Matches(msg, keys.Tab):
			return true, m.focus.Next(func(c FocusableComponent) bool {
				return c == FocusableComponent(m.refs) && m.refs.Empty()
			})
		}

	case stateEdit:
		if msg.Type == tea.KeyCtrlC {
			return true, tea.Quit
		}
	}
	return false, nil
}

// open shows the detail view for id. With push, the element being left is
// remembered so esc can return to it.
func (m *Model) open(id string, push bool) tea.Cmd {
	if _, ok := m.snap.Lookup(id); !ok {
		m.logger.Warn("navigate to unknown element", zap.String("id", id))
		return nil
	}

	if push && m.state == stateDetail && m.current != "" && m.current != id {
		m.history = append(m.history, m.current)
	}
	m.current = id
	m.state = stateDetail
	m.err = nil

	m.focus.Reset()
	m.refreshReferences()
	m.content.viewport.SetContent("")
	m.content.viewport.GotoTop()

	m.logger.Debug("element opened", zap.String("id", id), zap.Int("depth", len(m.history)))
	return m.renderDetail()
}

func (m *Model) back() tea.Cmd {
	if n := len(m.history); n > 0 {
		id := m.history[n-1]
		m.history = m.history[:n-1]
		return m.open(id, false)
	}
	m.state = stateList
	m.current = ""
	return nil
}

func (m *Model) startEdit() tea.Cmd {
	e, ok := m.snap.Lookup(m.current)
	if !ok {
		return nil
	}
	m.editor.SetTitle("Editing " + e.Name)
	m.editor.SetValue(e.Content)
	m.editor.SetSize(m.width, m.height)
	m.state = stateEdit
	return m.editor.Init()
}

// save writes only the content back, on top of whatever the store holds now,
// so a reload that landed while editing keeps its reference changes.
func (m *Model) save(content string) tea.Cmd {
	_, snap, err := m.store.Update(m.current, func(e *models.Element) {
		e.Content = content
	})
	if err != nil {
		m.logger.Warn("edited element no longer in world", zap.String("id", m.current), zap.Error(err))
		m.snap = m.store.Snapshot()
		m.state = stateList
		m.current = ""
		m.history = nil
		return m.refreshList()
	}

	m.snap = snap
	m.state = stateDetail
	m.refreshReferences()
	return tea.Batch(m.refreshList(), m.renderDetail())
}

// reverseLinks recomputes only when the element or the snapshot changed.
func (m *Model) reverseLinks(id string) refindex.Groups {
	version := m.snap.Version()
	if m.cache.ok && m.cache.id == id && m.cache.version == version {
		return m.cache.groups
	}

	groups := m.snap.ReverseLinks(id)
	m.cache = refCache{id: id, version: version, groups: groups, ok: true}
	m.logger.Debug("reverse links computed",
		zap.String("id", id),
		zap.Uint64("version", version),
		zap.Int("groups", groups.Len()))
	return groups
}

func (m *Model) refreshReferences() {
	m.refs.SetGroups(m.reverseLinks(m.current))
	if m.refs.Empty() && m.refs.Focused() {
		m.focus.Reset()
	}
	m.layout()
}

func (m *Model) refreshList() tea.Cmd {
	elements := m.snap.Elements()
	items := make([]list.Item, len(elements))
	for i, e := range elements {
		items[i] = elementItem{element: e}
	}
	return m.list.SetItems(items)
}

func (m *Model) layout() {
	m.help.Width = m.width
	m.list.SetSize(m.width, max(0, m.height-1))
	m.refs.SetWidth(m.width)

	refsHeight := 0
	if !m.refs.Empty() {
		refsHeight = lipgloss.Height(m.refs.View())
	}
	m.content.viewport.Width = m.width
	m.content.viewport.Height = max(3, m.height-refsHeight-1)
}

func (m Model) wrapWidth() int {
	wrap := m.width - 4
	if m.ui.WordWrap > 0 && (wrap <= 0 || m.ui.WordWrap < wrap) {
		wrap = m.ui.WordWrap
	}
	return max(20, wrap)
}

func (m Model) renderDetail() tea.Cmd {
	e, ok := m.snap.Lookup(m.current)
	if !ok {
		return nil
	}
	snap, style, wrap := m.snap, m.ui.Style, m.wrapWidth()

	return func() tea.Msg {
		renderer, err := components.NewRenderer(style, wrap)
		if err != nil {
			return errMsg{err}
		}
		rendered, err := renderer.Render(detailMarkdown(e, snap))
		if err != nil {
			return errMsg{fmt.Errorf("render %s: %w", e.ID, err)}
		}
		return detailRenderedMsg{id: e.ID, version: snap.Version(), content: rendered}
	}
}

func (m Model) View() string {
	var content string
	var helpText string

	switch m.state {
	case stateList:
		content = m.list.View()
		helpText = fmt.Sprintf("%d elements • ", m.snap.Len()) +
			m.help.ShortHelpView([]key.Binding{keys.Enter, keys.Filter, keys.Quit})

	case stateDetail:
		parts := []string{m.content.viewport.View()}
		if !m.refs.Empty() {
			parts = append(parts, m.refs.View())
		}
		content = lipgloss.JoinVertical(lipgloss.Left, parts...)
		bindings := []key.Binding{keys.Edit, keys.Back, keys.Quit}
		if !m.refs.Empty() {
			bindings = append([]key.Binding{keys.Tab, keys.Enter}, bindings...)
		}
		helpText = m.help.ShortHelpView(bindings)

	case stateEdit:
		return m.editor.View()
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Align(lipgloss.Center).
		Width(m.width)
	if m.err != nil {
		helpText = fmt.Sprintf("error: %v", m.err)
		helpStyle = helpStyle.Foreground(lipgloss.Color("9"))
	}

	return lipgloss.JoinVertical(
		lipgloss.Top,
		content,
		helpStyle.Render(helpText),
	)
}

// waitForChange blocks until the store publishes a new snapshot.
func waitForChange(store *world.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: <-store.Changes()}
	}
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hcs-labs/hub/internal/agent"
	"github.com/hcs-labs/hub/internal/config"
	"github.com/hcs-labs/hub/internal/models"
	"github.com/hcs-labs/hub/internal/search"
	"github.com/hcs-labs/hub/internal/state"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#626262"))

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Browser runs the interactive hub view.
type Browser struct {
	store *state.Store
	cfg   *config.Config
}

func NewBrowser(store *state.Store, cfg *config.Config) *Browser {
	return &Browser{store: store, cfg: cfg}
}

func (b *Browser) Run() error {
	m := newModel(b.store, b.cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

type rowKind int

const (
	rowProject rowKind = iota
	rowChat
	rowUserChat
	rowSection
)

// row is one visible sidebar line.
type row struct {
	kind      rowKind
	projectID string
	id        string
	label     string
}

// agentReplyMsg delivers a scheduled agent reply. The target project may
// have been deleted in the meantime; the update loop drops the reply then.
type agentReplyMsg struct {
	projectID string
	reply     string
}

type model struct {
	store *state.Store
	cfg   *config.Config

	rows   []row
	cursor int

	searchMode  bool
	searchInput textinput.Model

	composeMode  bool
	composeInput textinput.Model

	viewport viewport.Model
	width    int
	height   int
	ready    bool
	status   string
}

func newModel(store *state.Store, cfg *config.Config) model {
	si := textinput.New()
	si.Placeholder = "search..."
	si.CharLimit = 60

	ci := textinput.New()
	ci.Placeholder = "message..."
	ci.CharLimit = 500

	m := model{
		store:        store,
		cfg:          cfg,
		searchInput:  si,
		composeInput: ci,
		viewport:     viewport.New(0, 0),
	}
	m.rebuildRows()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

// rebuildRows derives the sidebar rows from the current filtered views.
func (m *model) rebuildRows() {
	snapshot := m.store.Snapshot()
	rows := []row{{kind: rowSection, label: "Projects"}}

	for _, project := range snapshot.Projects {
		chats, visible := snapshot.FilteredChats[project.ID]
		if m.searchInput.Value() != "" && !visible {
			continue
		}
		marker := "▸"
		if snapshot.ExpandedProjects[project.ID] {
			marker = "▾"
		}
		rows = append(rows, row{
			kind:      rowProject,
			projectID: project.ID,
			id:        project.ID,
			label:     fmt.Sprintf("%s %s", marker, project.Name),
		})
		if !snapshot.ExpandedProjects[project.ID] {
			continue
		}
		for _, chat := range chats {
			rows = append(rows, row{
				kind:      rowChat,
				projectID: project.ID,
				id:        chat.ID,
				label:     "  " + chat.Title,
			})
		}
	}

	rows = append(rows, row{kind: rowSection, label: "Direct chats"})
	for _, chat := range snapshot.FilteredUserChats {
		label := chat.Username
		if chat.Unread > 0 {
			label = fmt.Sprintf("%s (%d)", label, chat.Unread)
		}
		rows = append(rows, row{kind: rowUserChat, id: chat.ID, label: label})
	}

	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) applySearch() {
	snapshot := m.store.Snapshot()
	result := search.Filter(snapshot, m.searchInput.Value())
	m.store.ApplyFilter(result.FilteredChats, result.FilteredUserChats, result.Expand)
	m.rebuildRows()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.contentWidth()
		m.viewport.Height = msg.Height - 4
		m.ready = true
		return m, nil

	case agentReplyMsg:
		snapshot := m.store.Snapshot()
		if snapshot.ProjectByID(msg.projectID) == nil {
			// Conversation is gone, drop the reply.
			return m, nil
		}
		m.store.AppendMessage(models.SenderAgent, msg.reply, msg.projectID)
		m.refreshConversation()
		m.rebuildRows()
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.updateSearch(msg)
		}
		if m.composeMode {
			return m.updateCompose(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchMode = false
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.applySearch()
		return m, nil
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.composeMode = false
		m.composeInput.SetValue("")
		m.composeInput.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.composeInput.Value())
		m.composeMode = false
		m.composeInput.SetValue("")
		m.composeInput.Blur()
		if text == "" {
			return m, nil
		}
		return m.sendMessage(text)
	}

	var cmd tea.Cmd
	m.composeInput, cmd = m.composeInput.Update(msg)
	return m, cmd
}

func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key but another "d" cancels an armed delete dialog.
	if msg.String() != "d" {
		if snapshot := m.store.Snapshot(); snapshot.Dialog != nil {
			m.store.CloseDialog()
			m.status = ""
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		for i := m.cursor - 1; i >= 0; i-- {
			if m.rows[i].kind != rowSection {
				m.cursor = i
				break
			}
		}
		return m, nil

	case "down", "j":
		for i := m.cursor + 1; i < len(m.rows); i++ {
			if m.rows[i].kind != rowSection {
				m.cursor = i
				break
			}
		}
		return m, nil

	case "/":
		m.searchMode = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "enter", " ":
		return m.activateRow()

	case "n":
		if r := m.currentRow(); r != nil && r.projectID != "" {
			if _, _, err := m.store.CreateChat(r.projectID); err != nil {
				m.status = err.Error()
			}
			m.applySearch()
		}
		return m, nil

	case "m":
		if r := m.currentRow(); r != nil && r.projectID != "" {
			m.composeMode = true
			m.composeInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case "d":
		return m.deleteRow()
	}

	return m, nil
}

func (m model) activateRow() (tea.Model, tea.Cmd) {
	r := m.currentRow()
	if r == nil {
		return m, nil
	}

	switch r.kind {
	case rowProject:
		m.store.SelectProject(r.projectID)
		m.store.ToggleProjectExpansion(r.projectID)
		m.rebuildRows()
	case rowChat:
		m.store.SelectProject(r.projectID)
		m.store.SelectChat(r.id)
		m.refreshConversation()
	case rowUserChat:
		m.store.SelectChat(r.id)
		m.refreshUserConversation(r.id)
	}
	return m, nil
}

// deleteRow routes a delete through the dialog intent, mirroring the
// confirmation flow: first press arms the dialog, second press confirms.
func (m model) deleteRow() (tea.Model, tea.Cmd) {
	r := m.currentRow()
	if r == nil || r.kind == rowSection {
		return m, nil
	}

	snapshot := m.store.Snapshot()
	if snapshot.Dialog == nil || snapshot.Dialog.ID != r.id {
		intent := models.DialogIntent{ID: r.id, Name: r.label, ProjectID: r.projectID}
		switch r.kind {
		case rowProject:
			intent.Type = models.DialogProject
		case rowChat:
			intent.Type = models.DialogChat
		case rowUserChat:
			intent.Type = models.DialogUserChat
		}
		m.store.OpenDialog(intent)
		m.status = fmt.Sprintf("Press d again to delete %q, any other key to cancel", strings.TrimSpace(r.label))
		return m, nil
	}

	dialog := *snapshot.Dialog
	m.store.CloseDialog()
	m.status = ""

	var err error
	switch dialog.Type {
	case models.DialogProject:
		_, err = m.store.DeleteProject(dialog.ID)
	case models.DialogChat:
		_, err = m.store.DeleteChat(dialog.ProjectID, dialog.ID)
	case models.DialogUserChat:
		_, err = m.store.DeleteUserChat(dialog.ID)
	}
	if err != nil {
		m.status = err.Error()
	}

	m.applySearch()
	return m, nil
}

func (m model) sendMessage(text string) (tea.Model, tea.Cmd) {
	r := m.currentRow()
	if r == nil || r.projectID == "" {
		return m, nil
	}
	projectID := r.projectID

	if _, err := m.store.AppendMessage(models.SenderUser, text, projectID); err != nil {
		m.status = err.Error()
		return m, nil
	}
	if r.kind == rowChat {
		m.store.SetChatPreview(projectID, r.id, text)
	}
	m.refreshConversation()

	reply := agent.Respond(text)
	delay := m.cfg.ReplyDelay()
	return m, tea.Tick(delay, func(time.Time) tea.Msg {
		return agentReplyMsg{projectID: projectID, reply: reply}
	})
}

func (m *model) currentRow() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

func (m *model) refreshConversation() {
	snapshot := m.store.Snapshot()
	projectID := snapshot.SelectedProjectID
	if r := m.currentRow(); r != nil && r.projectID != "" {
		projectID = r.projectID
	}
	if projectID == "" {
		m.viewport.SetContent("")
		return
	}

	var b strings.Builder
	for _, message := range snapshot.MessagesFor(projectID) {
		fmt.Fprintf(&b, "[%s] %s: %s\n", message.Timestamp.Format("15:04"), message.Sender, message.Text)
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *model) refreshUserConversation(userChatID string) {
	messages, err := m.store.UserChatMessages(userChatID)
	if err != nil {
		m.status = err.Error()
		return
	}

	var b strings.Builder
	for _, message := range messages {
		fmt.Fprintf(&b, "[%s] %s: %s\n", message.Timestamp.Format("15:04"), message.Sender, message.Text)
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m model) sidebarWidth() int {
	w := m.width / 3
	if w < 28 {
		w = 28
	}
	return w
}

func (m model) contentWidth() int {
	return m.width - m.sidebarWidth() - 4
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var sidebar strings.Builder
	sidebar.WriteString(titleStyle.Render("Hub") + "\n")
	if m.searchMode || m.searchInput.Value() != "" {
		sidebar.WriteString(m.searchInput.View() + "\n")
	}
	for i, r := range m.rows {
		switch {
		case r.kind == rowSection:
			sidebar.WriteString(sectionStyle.Render(r.label) + "\n")
		case i == m.cursor:
			sidebar.WriteString(selectedItemStyle.Render(r.label) + "\n")
		default:
			sidebar.WriteString(itemStyle.Render(r.label) + "\n")
		}
	}

	left := paneStyle.Width(m.sidebarWidth()).Height(m.height - 4).Render(sidebar.String())

	var content string
	if m.composeMode {
		content = m.viewport.View() + "\n" + m.composeInput.View()
	} else {
		content = m.viewport.View()
	}
	right := paneStyle.Width(m.contentWidth()).Height(m.height - 4).Render(content)

	help := helpStyle.Render("↑/↓ move · enter open · / search · n new chat · m message · d delete · q quit")
	if m.status != "" {
		help = helpStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		help,
	)
}

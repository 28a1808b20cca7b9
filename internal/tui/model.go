package tui

import (
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/ticketscout/internal/assistant"
	"github.com/csheth/ticketscout/internal/guide"
	"github.com/csheth/ticketscout/internal/session"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Assistant   assistant.Client
	TicketCount int
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	layout := newPageLayout()

	query := textarea.New()
	query.Placeholder = queryPlaceholder
	query.ShowLineNumbers = false
	query.CharLimit = 0
	query.SetWidth(layout.contentWidth)
	query.SetHeight(queryRows)
	query.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(layout.contentWidth, layout.viewportHeight)
	vp.MouseWheelEnabled = true

	backend := ""
	if config.Assistant != nil {
		backend = config.Assistant.Name()
	}

	return &model{
		config:        config,
		session:       session.New(),
		layout:        layout,
		query:         query,
		spinner:       spin,
		viewport:      vp,
		jobs:          newJobBus(),
		jobStatus:     map[jobKind]jobSnapshot{},
		focus:         focusQuery,
		guide:         guide.Build(guide.Metadata{Backend: backend, TicketCount: config.TicketCount}),
		viewportDirty: true,
		infoMessage:   "Describe the problem, then press Ctrl+S to find relevant tickets.",
	}
}

type model struct {
	config  Config
	session *session.State
	layout  pageLayout

	query    textarea.Model
	spinner  spinner.Model
	viewport viewport.Model

	jobs      *jobBus
	jobStatus map[jobKind]jobSnapshot
	guide     []guide.Step

	focus         focusTarget
	infoMessage   string
	helpVisible   bool
	promptVisible bool
	viewportDirty bool
	// summaryLine is the content line the summary panel starts on.
	summaryLine   int
	jumpToSummary bool
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.query.SetWidth(m.layout.contentWidth)
		m.viewport.Width = m.layout.contentWidth
		m.viewport.Height = m.layout.viewportHeight
		m.markViewportDirty()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case jobSignalMsg:
		m.jobStatus[msg.Snapshot.Kind] = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		m.jobStatus[msg.Snapshot.Kind] = msg.Snapshot
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case searchResultMsg:
		m.handleSearchResult(msg)
		return m, nil
	case summaryResultMsg:
		m.handleSummaryResult(msg)
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, m.quit()
	case key.Matches(msg, keys.Back):
		switch {
		case m.helpVisible:
			m.helpVisible = false
			return m, nil
		case m.promptVisible:
			m.promptVisible = false
			m.markViewportDirty()
			return m, nil
		}
		return m, m.quit()
	case key.Matches(msg, keys.Search):
		return m, m.startSearch()
	case key.Matches(msg, keys.Summarize):
		return m, m.startSummarize()
	case key.Matches(msg, keys.Reset):
		m.resetSession()
		return m, nil
	case key.Matches(msg, keys.Prompt):
		m.togglePrompt()
		return m, nil
	case key.Matches(msg, keys.HelpAny):
		m.helpVisible = !m.helpVisible
		return m, nil
	case key.Matches(msg, keys.NextFocus):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, keys.PrevFocus):
		m.cycleFocus(-1)
		return m, nil
	case key.Matches(msg, keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.focus == focusQuery {
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Activate):
		return m, m.activateFocused()
	case key.Matches(msg, keys.Help):
		m.helpVisible = !m.helpVisible
	case key.Matches(msg, keys.ScrollUp):
		m.viewport.LineUp(1)
	case key.Matches(msg, keys.ScrollDown):
		m.viewport.LineDown(1)
	}
	return m, nil
}

func (m *model) activateFocused() tea.Cmd {
	switch m.focus {
	case focusSearch:
		return m.startSearch()
	case focusSummarize:
		return m.startSummarize()
	default:
		return nil
	}
}

func (m *model) cycleFocus(delta int) {
	idx := 0
	for i, target := range focusOrder {
		if target == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(focusOrder)) % len(focusOrder)
	m.setFocus(focusOrder[idx])
}

func (m *model) setFocus(target focusTarget) {
	m.focus = target
	if target == focusQuery {
		m.query.Focus()
		return
	}
	m.query.Blur()
}

func (m *model) searchEnabled() bool {
	return m.session.CanSearch(m.query.Value())
}

func (m *model) summarizeEnabled() bool {
	return m.session.CanSummarize()
}

func (m *model) loading() bool {
	return m.session.SearchLoading() || m.session.SummaryLoading()
}

func (m *model) startSearch() tea.Cmd {
	query := m.query.Value()
	if !m.searchEnabled() {
		if query == "" {
			m.infoMessage = "Enter a query before searching."
		} else {
			m.infoMessage = "A search is already running."
		}
		return nil
	}
	if m.config.Assistant == nil {
		m.infoMessage = "No assistant backend is configured."
		return nil
	}
	token := m.session.BeginSearch(query)
	m.jobs.Cancel(jobKindSummary)
	m.promptVisible = false
	m.infoMessage = fmt.Sprintf("Searching tickets for %q…", trimmedQuery(query))
	m.viewport.GotoTop()
	m.markViewportDirty()
	return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindSearch, searchJob(m.config.Assistant, token)))
}

func (m *model) startSummarize() tea.Cmd {
	if m.session.SummaryLoading() {
		m.infoMessage = "A summary is already being generated."
		return nil
	}
	if m.config.Assistant == nil {
		m.infoMessage = "No assistant backend is configured."
		return nil
	}
	token, err := m.session.BeginSummarize(m.query.Value())
	if errors.Is(err, session.ErrNothingToSummarize) {
		m.infoMessage = err.Error()
		return nil
	}
	m.promptVisible = false
	m.infoMessage = fmt.Sprintf("Summarizing %s with %s…", pluralTickets(len(token.Tickets)), m.config.Assistant.Name())
	m.markViewportDirty()
	return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindSummary, summarizeJob(m.config.Assistant, token)))
}

func (m *model) handleSearchResult(msg searchResultMsg) {
	if !m.session.CompleteSearch(msg.token, msg.tickets, msg.err) {
		log.Printf("[search] dropped stale result for %q", msg.token.Query)
		return
	}
	switch {
	case msg.err != nil:
		log.Printf("[search] %q failed: %v", msg.token.Query, msg.err)
		m.infoMessage = "Search failed."
	case m.session.TicketCount() == 0:
		m.infoMessage = "No relevant tickets matched. Try a different query."
	default:
		m.infoMessage = fmt.Sprintf("Found %s. Press Ctrl+G to generate an AI summary.", pluralTickets(m.session.TicketCount()))
	}
	m.markViewportDirty()
}

func (m *model) handleSummaryResult(msg summaryResultMsg) {
	if !m.session.CompleteSummary(msg.token, msg.summary, msg.err) {
		log.Printf("[summary] dropped stale result for %q", msg.token.Query)
		return
	}
	if msg.err != nil {
		log.Printf("[summary] %q failed: %v", msg.token.Query, msg.err)
		m.infoMessage = "Summary failed."
	} else {
		m.infoMessage = "AI summary ready. Press Ctrl+O to see the intended model prompt."
		m.jumpToSummary = true
	}
	m.markViewportDirty()
}

func (m *model) resetSession() {
	m.jobs.Cancel(jobKindSearch)
	m.jobs.Cancel(jobKindSummary)
	m.session.Reset()
	m.query.Reset()
	m.promptVisible = false
	m.setFocus(focusQuery)
	m.infoMessage = "Session cleared."
	m.viewport.GotoTop()
	m.markViewportDirty()
}

func (m *model) togglePrompt() {
	if m.session.Summary() == "" {
		m.infoMessage = "Generate a summary first to preview the model prompt."
		return
	}
	m.promptVisible = !m.promptVisible
	m.markViewportDirty()
}

func (m *model) quit() tea.Cmd {
	m.jobs.Stop()
	return tea.Quit
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if m.viewportDirty {
		m.refreshViewport()
	}
}

func (m *model) refreshViewport() {
	m.viewportDirty = false
	offset := m.viewport.YOffset
	m.viewport.SetContent(m.buildDisplayContent())
	if m.jumpToSummary {
		offset = m.summaryLine
		m.jumpToSummary = false
	}
	m.viewport.SetYOffset(offset)
}

var (
	heroTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#5b4fe0")).Padding(0, 2)
	taglineStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#bcc8ff")).Italic(true)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	ticketTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1e40af"))
	keywordStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	errorBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("9")).Padding(0, 1)
	resultsBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#60a5fa")).Padding(0, 1)
	summaryBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#c084fc")).Padding(0, 1)
	promptBoxStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)

	searchButtonStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#2563eb")).Padding(0, 2)
	summarizeButtonStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#9333ea")).Padding(0, 2)
	disabledButtonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Background(lipgloss.Color("#1f2937")).Padding(0, 2)
	focusedButtonStyle   = lipgloss.NewStyle().Underline(true)
)

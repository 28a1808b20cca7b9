package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/ticketscout/internal/markdown"
)

func (m *model) View() string {
	m.refreshViewportIfDirty()
	parts := []string{
		m.heroView(),
		m.query.View(),
		m.buttonRow(),
		m.statusLine(),
		m.errorPanel(),
	}
	if strings.TrimSpace(m.viewport.View()) != "" {
		parts = append(parts, m.viewport.View())
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView(), m.helpView())
	}
	parts = append(parts, m.sessionMeterView())
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		heroTitleStyle.Render(heroTitle),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) buttonRow() string {
	search := m.renderButton(searchButtonStyle, searchIcon, searchButtonLabel, m.searchEnabled(), m.session.SearchLoading(), m.focus == focusSearch)
	summarize := m.renderButton(summarizeButtonStyle, summarizeIcon, summarizeButtonLabel, m.summarizeEnabled(), m.session.SummaryLoading(), m.focus == focusSummarize)
	return lipgloss.JoinHorizontal(lipgloss.Top, search, "  ", summarize)
}

func (m *model) renderButton(style lipgloss.Style, icon, label string, enabled, loading, focused bool) string {
	if loading {
		icon = m.spinner.View()
	}
	text := fmt.Sprintf("%s %s", icon, label)
	if !enabled {
		style = disabledButtonStyle
	}
	if focused {
		style = style.Copy().Inherit(focusedButtonStyle)
		text = "▸ " + text
	}
	return style.Render(text)
}

func (m *model) statusLine() string {
	if m.infoMessage == "" {
		return ""
	}
	message := m.infoMessage
	if m.loading() {
		message = fmt.Sprintf("%s %s", m.spinner.View(), message)
	}
	return helperStyle.Render(wordwrap.String(message, m.layout.contentWidth))
}

func (m *model) errorPanel() string {
	if !m.session.Failed() {
		return ""
	}
	content := errorStyle.Copy().Bold(true).Render(errorTitle) + "\n" + errorStyle.Render(errorBody)
	return errorBoxStyle.Copy().Width(m.layout.boxWidth()).Render(content)
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func (m *model) sessionMeterView() string {
	stats := []string{
		fmt.Sprintf("State %s", m.session.Phase()),
		fmt.Sprintf("Results %d", m.session.TicketCount()),
	}
	if m.config.Assistant != nil {
		stats = append(stats, m.config.Assistant.Name())
	}
	if badges := m.jobStatusBadges(); len(badges) > 0 {
		stats = append(stats, badges...)
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) jobStatusBadges() []string {
	badges := []string{}
	for _, kind := range []jobKind{jobKindSearch, jobKindSummary} {
		snapshot, ok := m.jobStatus[kind]
		if !ok {
			continue
		}
		if snapshot.Status == jobStatusRunning {
			badges = append(badges, fmt.Sprintf("%s %s", kind, snapshot.Status))
			continue
		}
		badges = append(badges, fmt.Sprintf("%s %s (%s)", kind, snapshot.Status, snapshot.Duration.Round(100*time.Millisecond)))
	}
	return badges
}

func (m *model) keyLegendView() string {
	bindings := keys.legend()
	rows := []string{sectionHeaderStyle.Render("Key Bindings")}
	const columns = 3
	for i := 0; i < len(bindings); i += columns {
		end := i + columns
		if end > len(bindings) {
			end = len(bindings)
		}
		var cells []string
		for _, binding := range bindings[i:end] {
			help := binding.Help()
			cell := lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(help.Key), keyDescStyle.Render(" "+help.Desc+"  "))
			cells = append(cells, cell)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func (m *model) helpView() string {
	lines := []string{sectionHeaderStyle.Render("Workflow")}
	width := m.layout.panelWidth()
	for _, step := range m.guide {
		lines = append(lines, step.Title)
		lines = append(lines, markdown.Render(step.Description, width))
	}
	return legendBoxStyle.Render(strings.Join(lines, "\n"))
}

package tui

import (
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/ticketscout/internal/assistant"
	"github.com/csheth/ticketscout/internal/ticket"
)

type pageLayout struct {
	contentWidth   int
	queryHeight    int
	viewportHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		contentWidth:   76,
		queryHeight:    queryRows,
		viewportHeight: 12,
	}
}

func (l *pageLayout) Update(width, height int) {
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.contentWidth = innerWidth
	l.queryHeight = queryRows
	// hero, buttons, status line, error panel, meter and the blank lines between them
	const chrome = 14
	content := height - chrome - l.queryHeight
	if content < minViewportHeight {
		content = minViewportHeight
	}
	l.viewportHeight = content
}

// boxWidth is the width handed to a bordered style; borders sit outside it.
func (l pageLayout) boxWidth() int {
	return l.contentWidth - 2
}

// panelWidth is the text width inside a bordered, padded panel.
func (l pageLayout) panelWidth() int {
	width := l.contentWidth - 4
	if width < 20 {
		width = 20
	}
	return width
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

// buildDisplayContent renders the scrollable area: the results panel when
// tickets are held, then the summary panel when a summary exists.
func (m *model) buildDisplayContent() string {
	cb := &contentBuilder{}
	tickets := m.session.Tickets()
	if len(tickets) > 0 {
		cb.WriteString(m.resultsPanel(tickets))
	}
	if summary := m.session.Summary(); summary != "" {
		if cb.String() != "" {
			cb.WriteRune('\n')
		}
		m.summaryLine = cb.Line()
		cb.WriteString(m.summaryPanel(summary))
		if m.promptVisible {
			cb.WriteRune('\n')
			cb.WriteString(m.promptPanel(tickets))
		}
	}
	return cb.String()
}

func (m *model) resultsPanel(tickets []ticket.Ticket) string {
	width := m.layout.panelWidth()
	cb := &contentBuilder{}
	cb.WriteString(sectionHeaderStyle.Render(resultsPanelTitle))
	cb.WriteRune('\n')
	for idx, t := range tickets {
		cb.WriteRune('\n')
		cb.WriteString(ticketTitleStyle.Render(wordwrap.String(t.Title, width)))
		cb.WriteString(helperStyle.Render("  " + t.ID))
		cb.WriteRune('\n')
		cb.WriteString(indent.String(wordwrap.String(t.Description, width-2), 2))
		cb.WriteRune('\n')
		cb.WriteString(keywordStyle.Render(indent.String(wordwrap.String(keywordLine(t), width-2), 2)))
		if idx < len(tickets)-1 {
			cb.WriteRune('\n')
		}
	}
	return resultsBoxStyle.Copy().Width(m.layout.boxWidth()).Render(cb.String())
}

// summaryPanel shows the summary as preformatted text. It holds the user's
// query verbatim, so nothing in it is interpreted as markup.
func (m *model) summaryPanel(summary string) string {
	width := m.layout.panelWidth()
	lines := strings.Split(strings.TrimRight(summary, "\n"), "\n")
	for i, line := range lines {
		lines[i] = wordwrap.String(line, width)
	}
	content := sectionHeaderStyle.Render(summaryPanelTitle) + "\n\n" + strings.Join(lines, "\n")
	return summaryBoxStyle.Copy().Width(m.layout.boxWidth()).Render(content)
}

func (m *model) promptPanel(tickets []ticket.Ticket) string {
	prompt := assistant.BuildPrompt(m.session.SummaryQuery(), tickets)
	content := helperStyle.Render("Intended model prompt (not sent)") + "\n\n" + wordwrap.String(prompt, m.layout.panelWidth())
	return promptBoxStyle.Copy().Width(m.layout.boxWidth()).Render(content)
}

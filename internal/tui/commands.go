package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/ticketscout/internal/assistant"
	"github.com/csheth/ticketscout/internal/session"
	"github.com/csheth/ticketscout/internal/ticket"
)

func searchJob(client assistant.Retriever, token session.SearchToken) jobRunner {
	query := token.Query
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, searchTimeout)
		defer cancel()
		tickets, err := client.FetchRelevantTickets(ctx, query)
		return searchResultMsg{token: token, tickets: tickets, err: err}, err
	}
}

func summarizeJob(client assistant.Summarizer, token session.SummaryToken) jobRunner {
	query := token.Query
	tickets := append([]ticket.Ticket(nil), token.Tickets...)
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, summaryTimeout)
		defer cancel()
		summary, err := client.Summarize(ctx, query, tickets)
		return summaryResultMsg{token: token, summary: summary, err: err}, err
	}
}

func keywordLine(t ticket.Ticket) string {
	return "Keywords: " + strings.Join(t.Keywords, ", ")
}

func pluralTickets(n int) string {
	if n == 1 {
		return "1 ticket"
	}
	return fmt.Sprintf("%d tickets", n)
}

func trimmedQuery(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	if len([]rune(value)) <= 40 {
		return value
	}
	runes := []rune(value)
	return fmt.Sprintf("%s…", strings.TrimSpace(string(runes[:37])))
}

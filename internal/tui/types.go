package tui

import (
	"time"

	"github.com/csheth/ticketscout/internal/session"
	"github.com/csheth/ticketscout/internal/ticket"
)

const (
	heroTitle   = "Vector Search & AI Summary"
	heroTagline = "Search for tickets using natural language and get an AI-powered summary."
)

const (
	searchButtonLabel    = "Find Relevant Tickets (Simulated DB)"
	summarizeButtonLabel = "Generate AI Summary (Simulated LLM)"
	searchIcon           = "⌕"
	summarizeIcon        = "ϟ"
)

const (
	resultsPanelTitle = "Retrieved Tickets"
	summaryPanelTitle = "AI Summary"
)

const (
	queryPlaceholder = "Enter your query about a ticket or a business problem, e.g., 'What's the status of the login bug?'"
	errorTitle       = "Error"
	errorBody        = "An error occurred. Please check the log and try again."
)

const (
	minViewportWidth          = 40
	minViewportHeight         = 6
	viewportHorizontalPadding = 4
	queryRows                 = 4
)

const (
	searchTimeout  = 30 * time.Second
	summaryTimeout = time.Minute
)

type focusTarget int

const (
	focusQuery focusTarget = iota
	focusSearch
	focusSummarize
)

var focusOrder = []focusTarget{focusQuery, focusSearch, focusSummarize}

type searchResultMsg struct {
	token   session.SearchToken
	tickets []ticket.Ticket
	err     error
}

type summaryResultMsg struct {
	token   session.SummaryToken
	summary string
	err     error
}

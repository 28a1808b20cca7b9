// Package session tracks the search-then-summarize workflow for one view.
//
// The workflow is a small state machine. Each asynchronous action hands out
// a token when it begins and the state only accepts a completion carrying the
// latest token, so a slow result can never overwrite a newer one.
package session

import (
	"errors"

	"github.com/csheth/ticketscout/internal/ticket"
)

// Phase enumerates the workflow states.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSearching
	PhaseSearchError
	PhaseSearched
	PhaseSummarizing
	PhaseSummaryError
	PhaseSummarized
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSearching:
		return "searching"
	case PhaseSearchError:
		return "search-error"
	case PhaseSearched:
		return "searched"
	case PhaseSummarizing:
		return "summarizing"
	case PhaseSummaryError:
		return "summary-error"
	case PhaseSummarized:
		return "summarized"
	default:
		return "unknown"
	}
}

// ErrNothingToSummarize is returned when summarize is requested before any
// ticket has been retrieved. Its text is shown to the user verbatim.
var ErrNothingToSummarize = errors.New("No tickets were retrieved to summarize. Please perform a search first.")

// SearchToken identifies one search attempt.
type SearchToken struct {
	gen   uint64
	Query string
}

// SummaryToken identifies one summarize attempt and carries its inputs.
type SummaryToken struct {
	gen     uint64
	Query   string
	Tickets []ticket.Ticket
}

// State is the session state for a single view. It is not safe for
// concurrent use; callers serialize access the way bubbletea serializes Update.
type State struct {
	phase        Phase
	query        string
	tickets      []ticket.Ticket
	summary      string
	summaryQuery string
	searchGen    uint64
	summaryGen   uint64
}

// New returns an idle session.
func New() *State {
	return &State{phase: PhaseIdle}
}

func (s *State) Phase() Phase { return s.phase }

// Query returns the query that produced the held results.
func (s *State) Query() string { return s.query }

// Tickets returns a copy of the held results.
func (s *State) Tickets() []ticket.Ticket {
	return append([]ticket.Ticket(nil), s.tickets...)
}

// TicketCount avoids copying when only the size matters.
func (s *State) TicketCount() int { return len(s.tickets) }

func (s *State) Summary() string { return s.summary }

// SummaryQuery is the query restated by the current or pending summary.
func (s *State) SummaryQuery() string { return s.summaryQuery }

func (s *State) SearchLoading() bool { return s.phase == PhaseSearching }

func (s *State) SummaryLoading() bool { return s.phase == PhaseSummarizing }

// Failed reports whether the most recent action ended in an error.
func (s *State) Failed() bool {
	return s.phase == PhaseSearchError || s.phase == PhaseSummaryError
}

// CanSearch mirrors the search button's enablement rule.
func (s *State) CanSearch(query string) bool {
	return !s.SearchLoading() && query != ""
}

// CanSummarize mirrors the summarize button's enablement rule.
func (s *State) CanSummarize() bool {
	return !s.SummaryLoading() && len(s.tickets) > 0
}

// BeginSearch discards results, summary and error, and starts a search.
// Outstanding tokens of either kind become stale.
func (s *State) BeginSearch(query string) SearchToken {
	s.searchGen++
	s.summaryGen++
	s.phase = PhaseSearching
	s.query = query
	s.tickets = nil
	s.summary = ""
	s.summaryQuery = ""
	return SearchToken{gen: s.searchGen, Query: query}
}

// CompleteSearch applies a search outcome and reports whether it was
// current. Stale outcomes leave the state untouched.
func (s *State) CompleteSearch(token SearchToken, tickets []ticket.Ticket, err error) bool {
	if token.gen != s.searchGen || s.phase != PhaseSearching {
		return false
	}
	if err != nil {
		s.phase = PhaseSearchError
		s.tickets = nil
		return true
	}
	s.phase = PhaseSearched
	s.tickets = append([]ticket.Ticket(nil), tickets...)
	return true
}

// BeginSummarize starts summarizing the held results against query, which
// is whatever the user has typed now and may differ from the search query.
// Without results it returns ErrNothingToSummarize and leaves the state
// unchanged.
func (s *State) BeginSummarize(query string) (SummaryToken, error) {
	if len(s.tickets) == 0 {
		return SummaryToken{}, ErrNothingToSummarize
	}
	s.summaryGen++
	s.phase = PhaseSummarizing
	s.summary = ""
	s.summaryQuery = query
	return SummaryToken{
		gen:     s.summaryGen,
		Query:   query,
		Tickets: s.Tickets(),
	}, nil
}

// CompleteSummary applies a summarize outcome and reports whether it was
// current. Results are kept whether or not summarizing succeeded.
func (s *State) CompleteSummary(token SummaryToken, summary string, err error) bool {
	if token.gen != s.summaryGen || s.phase != PhaseSummarizing {
		return false
	}
	if err != nil {
		s.phase = PhaseSummaryError
		return true
	}
	s.phase = PhaseSummarized
	s.summary = summary
	return true
}

// Reset returns to idle and invalidates every outstanding token.
func (s *State) Reset() {
	s.searchGen++
	s.summaryGen++
	s.phase = PhaseIdle
	s.query = ""
	s.tickets = nil
	s.summary = ""
	s.summaryQuery = ""
}

package assistant

import (
	"fmt"
	"strings"

	"github.com/csheth/ticketscout/internal/ticket"
)

// SummaryHeader is the opening line of every generated summary.
func SummaryHeader(query string) string {
	return fmt.Sprintf("Based on your search for \"%s\", I found the following relevant tickets:", query)
}

const noTicketsFound = "No relevant tickets were found in the database. Please try a different query."

// BuildSummary renders the placeholder synthesis for the retrieved tickets.
func BuildSummary(model, query string, tickets []ticket.Ticket) string {
	if model == "" {
		model = DefaultModel
	}
	var b strings.Builder
	b.WriteString(SummaryHeader(query))
	b.WriteString("\n\n")
	if len(tickets) == 0 {
		b.WriteString(noTicketsFound)
		return b.String()
	}
	for _, t := range tickets {
		fmt.Fprintf(&b, "- **%s** (%s): %s...\n", t.Title, t.ID, t.Excerpt(ExcerptLength))
	}
	fmt.Fprintf(&b, "\nTo get a detailed summary of these tickets, you would send this information to an AI model like %s with a prompt like: \"Summarize the key information from these tickets and answer the user's question: '%s'\".\n", model, query)
	return b.String()
}

// BuildPrompt returns the instruction a real model would receive for query.
func BuildPrompt(query string, tickets []ticket.Ticket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The user's query is: '%s'. ", query)
	b.WriteString("Based on the following related tickets, provide a summary and answer the user's question.\n\n")
	b.WriteString("Retrieved Tickets:\n")
	for _, t := range tickets {
		fmt.Fprintf(&b, "- [%s] %s\n  %s\n", t.ID, t.Title, strings.TrimSpace(t.Description))
		if len(t.Keywords) > 0 {
			fmt.Fprintf(&b, "  keywords: %s\n", strings.Join(t.Keywords, ", "))
		}
	}
	return b.String()
}

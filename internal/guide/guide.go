package guide

import (
	"fmt"
	"strings"
)

// Step represents one actionable recommendation in the search workflow.
type Step struct {
	Title       string
	Description string
}

// Metadata carries just enough context for personalizing guide steps.
type Metadata struct {
	Backend     string
	TicketCount int
}

// Build returns the search-then-summarize walkthrough shown in the help
// overlay. Descriptions are markdown.
func Build(meta Metadata) []Step {
	backend := strings.TrimSpace(meta.Backend)
	if backend == "" {
		backend = "the assistant"
	}
	catalog := "the ticket catalog"
	if meta.TicketCount > 0 {
		catalog = fmt.Sprintf("the %d-ticket catalog", meta.TicketCount)
	}

	return []Step{
		{
			Title:       "1 – Describe the problem",
			Description: "Type a word or phrase from a ticket title or description, e.g. `login` or `slow database`. Matching ignores case.",
		},
		{
			Title:       "2 – Find relevant tickets",
			Description: fmt.Sprintf("Press **Ctrl+S** (or Enter on the Search button) to scan %s. Starting a new search clears earlier results and summaries.", catalog),
		},
		{
			Title:       "3 – Generate the summary",
			Description: fmt.Sprintf("Once tickets are listed, press **Ctrl+G** to have %s summarize them against what is in the query box.", backend),
		},
		{
			Title:       "4 – Review the intended prompt",
			Description: "Press **Ctrl+O** after a summary to see the prompt a real model would receive.",
		},
	}
}

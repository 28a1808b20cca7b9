package ticket

import (
	"errors"
	"fmt"
	"strings"
)

// Ticket is a support or work item that can be retrieved and summarized.
type Ticket struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
}

var (
	// ErrMissingID is returned when a catalog entry has no identifier.
	ErrMissingID = errors.New("ticket id is required")
	// ErrDuplicateID is returned when two catalog entries share an identifier.
	ErrDuplicateID = errors.New("duplicate ticket id")
)

// Excerpt returns at most n runes from the start of the description.
func (t Ticket) Excerpt(n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(t.Description)
	if len(runes) <= n {
		return t.Description
	}
	return string(runes[:n])
}

// SearchOptions tunes how a query is matched against tickets.
type SearchOptions struct {
	// IncludeKeywords also matches the query against each keyword.
	IncludeKeywords bool
}

// Catalog is an immutable, ordered set of tickets.
type Catalog struct {
	tickets []Ticket
}

// NewCatalog validates the entries and returns a catalog that owns a copy of them.
func NewCatalog(tickets []Ticket) (*Catalog, error) {
	seen := make(map[string]struct{}, len(tickets))
	owned := make([]Ticket, 0, len(tickets))
	for i, t := range tickets {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrMissingID)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
		t.ID = id
		t.Keywords = append([]string(nil), t.Keywords...)
		owned = append(owned, t)
	}
	return &Catalog{tickets: owned}, nil
}

// Len reports how many tickets the catalog holds.
func (c *Catalog) Len() int {
	return len(c.tickets)
}

// All returns every ticket in catalog order.
func (c *Catalog) All() []Ticket {
	return cloneTickets(c.tickets)
}

// Search returns the tickets whose title or description contains query,
// ignoring case, in catalog order. The result never aliases catalog storage.
func (c *Catalog) Search(query string, opts SearchOptions) []Ticket {
	needle := strings.ToLower(query)
	matches := []Ticket{}
	for _, t := range c.tickets {
		if t.matches(needle, opts) {
			matches = append(matches, cloneTicket(t))
		}
	}
	return matches
}

func (t Ticket) matches(needle string, opts SearchOptions) bool {
	if strings.Contains(strings.ToLower(t.Description), needle) ||
		strings.Contains(strings.ToLower(t.Title), needle) {
		return true
	}
	if !opts.IncludeKeywords {
		return false
	}
	for _, keyword := range t.Keywords {
		if strings.Contains(strings.ToLower(keyword), needle) {
			return true
		}
	}
	return false
}

func cloneTicket(t Ticket) Ticket {
	t.Keywords = append([]string(nil), t.Keywords...)
	return t
}

func cloneTickets(tickets []Ticket) []Ticket {
	out := make([]Ticket, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, cloneTicket(t))
	}
	return out
}

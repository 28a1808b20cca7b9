package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/csheth/ticketscout/internal/ticket"
)

type simulatedClient struct {
	catalog      *ticket.Catalog
	model        string
	searchDelay  time.Duration
	summaryDelay time.Duration
	searchOpts   ticket.SearchOptions
}

func (c *simulatedClient) Name() string {
	return fmt.Sprintf("Simulated (%s)", c.model)
}

func (c *simulatedClient) FetchRelevantTickets(ctx context.Context, query string) ([]ticket.Ticket, error) {
	if err := wait(ctx, c.searchDelay); err != nil {
		return nil, fmt.Errorf("search tickets: %w", err)
	}
	return c.catalog.Search(query, c.searchOpts), nil
}

func (c *simulatedClient) Summarize(ctx context.Context, query string, tickets []ticket.Ticket) (string, error) {
	if err := wait(ctx, c.summaryDelay); err != nil {
		return "", fmt.Errorf("summarize tickets: %w", err)
	}
	return BuildSummary(c.model, query, tickets), nil
}

// wait blocks for d or until ctx is done, whichever comes first.
func wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/csheth/ticketscout/internal/ticket"
)

const (
	// DefaultModel is the model named in generated summaries.
	DefaultModel = "gpt-4o-mini"
	// DefaultSearchDelay stands in for a vector search round trip.
	DefaultSearchDelay = 1500 * time.Millisecond
	// DefaultSummaryDelay stands in for a model completion round trip.
	DefaultSummaryDelay = 2 * time.Second
	// ExcerptLength caps how much of each description a summary quotes.
	ExcerptLength = 80
)

// Config describes how to build a simulated assistant.
type Config struct {
	Catalog         *ticket.Catalog
	Model           string
	SearchDelay     time.Duration
	SummaryDelay    time.Duration
	IncludeKeywords bool
}

// Retriever finds tickets relevant to a free-text query.
type Retriever interface {
	FetchRelevantTickets(ctx context.Context, query string) ([]ticket.Ticket, error)
}

// Summarizer synthesizes retrieved tickets into prose for the user.
type Summarizer interface {
	Summarize(ctx context.Context, query string, tickets []ticket.Ticket) (string, error)
}

// Client bundles retrieval and summarization behind a single backend.
type Client interface {
	Retriever
	Summarizer
	Name() string
}

// New builds the local simulated backend. Zero delays are honoured as-is so
// callers that want the defaults should start from DefaultConfig.
func New(cfg Config) (Client, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("assistant: ticket catalog is required")
	}
	if cfg.SearchDelay < 0 || cfg.SummaryDelay < 0 {
		return nil, errors.New("assistant: delays must not be negative")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &simulatedClient{
		catalog:      cfg.Catalog,
		model:        model,
		searchDelay:  cfg.SearchDelay,
		summaryDelay: cfg.SummaryDelay,
		searchOpts:   ticket.SearchOptions{IncludeKeywords: cfg.IncludeKeywords},
	}, nil
}

// DefaultConfig returns a config using the stock delays and model.
func DefaultConfig(catalog *ticket.Catalog) Config {
	return Config{
		Catalog:      catalog,
		Model:        DefaultModel,
		SearchDelay:  DefaultSearchDelay,
		SummaryDelay: DefaultSummaryDelay,
	}
}

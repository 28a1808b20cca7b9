package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/ticketscout/internal/ticket"
)

func newCatalog(t *testing.T) *ticket.Catalog {
	t.Helper()
	catalog, err := ticket.NewCatalog(ticket.Builtin())
	require.NoError(t, err)
	return catalog
}

func instantClient(t *testing.T) Client {
	t.Helper()
	client, err := New(Config{Catalog: newCatalog(t)})
	require.NoError(t, err)
	return client
}

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	require.Error(t, err)

	_, err = New(Config{Catalog: newCatalog(t), SearchDelay: -time.Second})
	require.Error(t, err)

	client, err := New(Config{Catalog: newCatalog(t)})
	require.NoError(t, err)
	assert.Equal(t, "Simulated (gpt-4o-mini)", client.Name())
}

func TestDefaultConfigDelays(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig(newCatalog(t))
	assert.Equal(t, 1500*time.Millisecond, cfg.SearchDelay)
	assert.Equal(t, 2*time.Second, cfg.SummaryDelay)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
}

func TestFetchRelevantTickets(t *testing.T) {
	t.Parallel()
	client := instantClient(t)

	got, err := client.FetchRelevantTickets(context.Background(), "login")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "TKT-101", got[0].ID)

	got, err = client.FetchRelevantTickets(context.Background(), "frontend")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchRelevantTicketsWithKeywords(t *testing.T) {
	t.Parallel()

	client, err := New(Config{Catalog: newCatalog(t), IncludeKeywords: true})
	require.NoError(t, err)
	got, err := client.FetchRelevantTickets(context.Background(), "frontend")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFetchHonoursDelay(t *testing.T) {
	t.Parallel()

	client, err := New(Config{Catalog: newCatalog(t), SearchDelay: 30 * time.Millisecond})
	require.NoError(t, err)
	start := time.Now()
	_, err = client.FetchRelevantTickets(context.Background(), "login")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestCancelledContextAbortsWait(t *testing.T) {
	t.Parallel()

	client, err := New(Config{Catalog: newCatalog(t), SearchDelay: time.Hour, SummaryDelay: time.Hour})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.FetchRelevantTickets(ctx, "login")
	require.ErrorIs(t, err, context.Canceled)

	_, err = client.Summarize(ctx, "login", ticket.Builtin())
	require.ErrorIs(t, err, context.Canceled)
}

func TestSummarizeListsEachTicket(t *testing.T) {
	t.Parallel()
	client := instantClient(t)
	tickets := ticket.Builtin()[:2]

	summary, err := client.Summarize(context.Background(), "ui bugs", tickets)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(summary, `Based on your search for "ui bugs", I found the following relevant tickets:`))
	for _, tk := range tickets {
		line := "- **" + tk.Title + "** (" + tk.ID + "): " + tk.Excerpt(80) + "..."
		assert.Contains(t, summary, line)
	}
	assert.Equal(t, 2, strings.Count(summary, "\n- **"))
	assert.Contains(t, summary, "an AI model like gpt-4o-mini")
	assert.Contains(t, summary, "answer the user's question: 'ui bugs'")
}

func TestBuildSummaryWithoutTickets(t *testing.T) {
	t.Parallel()

	summary := BuildSummary("", "nothing", nil)
	assert.Equal(t, SummaryHeader("nothing")+"\n\n"+noTicketsFound, summary)
}

func TestBuildSummaryExcerptLength(t *testing.T) {
	t.Parallel()

	tk := ticket.Ticket{ID: "X-1", Title: "Long", Description: strings.Repeat("a", 200)}
	summary := BuildSummary("m", "q", []ticket.Ticket{tk})
	assert.Contains(t, summary, "(X-1): "+strings.Repeat("a", 80)+"...\n")
	assert.NotContains(t, summary, strings.Repeat("a", 81))
}

func TestBuildPromptIncludesTickets(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt("status of login", ticket.Builtin()[:1])
	assert.Contains(t, prompt, "The user's query is: 'status of login'.")
	assert.Contains(t, prompt, "[TKT-101] Failed login attempts on production")
	assert.Contains(t, prompt, "keywords: login, authentication")
}

package ticket

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtinCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(Builtin())
	require.NoError(t, err)
	return catalog
}

func ids(tickets []Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, t.ID)
	}
	return out
}

func TestSearchMatchesTitleAndDescription(t *testing.T) {
	t.Parallel()
	catalog := builtinCatalog(t)

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "login only in first ticket", query: "login", want: []string{"TKT-101"}},
		{name: "case insensitive", query: "LOGIN", want: []string{"TKT-101"}},
		{name: "title match", query: "Dashboard UI", want: []string{"TKT-102"}},
		{name: "keywords ignored", query: "frontend", want: []string{}},
		{name: "several matches keep order", query: "user", want: []string{"TKT-101", "TKT-102", "TKT-103", "TKT-104"}},
		{name: "database", query: "database", want: []string{"TKT-103"}},
		{name: "no match", query: "kubernetes", want: []string{}},
		{name: "empty query matches all", query: "", want: []string{"TKT-101", "TKT-102", "TKT-103", "TKT-104"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := catalog.Search(tc.query, SearchOptions{})
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestSearchWithKeywords(t *testing.T) {
	t.Parallel()
	catalog := builtinCatalog(t)

	got := catalog.Search("frontend", SearchOptions{IncludeKeywords: true})
	assert.Equal(t, []string{"TKT-102", "TKT-104"}, ids(got))
}

func TestSearchDoesNotAliasCatalog(t *testing.T) {
	t.Parallel()
	catalog := builtinCatalog(t)

	got := catalog.Search("login", SearchOptions{})
	require.Len(t, got, 1)
	got[0].Title = "mutated"
	got[0].Keywords[0] = "mutated"

	again := catalog.Search("login", SearchOptions{})
	require.Len(t, again, 1)
	assert.Equal(t, "Failed login attempts on production", again[0].Title)
	assert.Equal(t, "login", again[0].Keywords[0])
}

func TestNewCatalogValidatesIDs(t *testing.T) {
	t.Parallel()

	_, err := NewCatalog([]Ticket{{ID: " "}})
	require.ErrorIs(t, err, ErrMissingID)

	_, err = NewCatalog([]Ticket{{ID: "A"}, {ID: "A"}})
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	tk := Ticket{Description: "héllo world"}
	assert.Equal(t, "héllo", tk.Excerpt(5))
	assert.Equal(t, "héllo world", tk.Excerpt(80))
	assert.Equal(t, "", tk.Excerpt(0))
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, 4, catalog.Len())

	dir := t.TempDir()
	path := filepath.Join(dir, "tickets.yaml")
	doc := `tickets:
  - id: OPS-1
    title: Rotate certificates
    description: The edge certificates expire next week.
    keywords: [tls, ops]
  - id: OPS-2
    title: Clean up disk
    description: Build agents are running out of space.
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	catalog, err = LoadCatalog(path)
	require.NoError(t, err)
	require.Equal(t, 2, catalog.Len())
	assert.Equal(t, []string{"tls", "ops"}, catalog.All()[0].Keywords)
	assert.Equal(t, []string{"OPS-2"}, ids(catalog.Search("DISK", SearchOptions{})))
}

func TestParseCatalogRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := ParseCatalog([]byte("tickets:\n  - id: X\n    titel: typo\n"))
	require.Error(t, err)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/ticketscout/internal/config"
)

type recordedRun struct {
	model tea.Model
	opts  []tea.ProgramOption
	calls int
}

func (r *recordedRun) run(model tea.Model, opts ...tea.ProgramOption) error {
	r.calls++
	r.model = model
	r.opts = opts
	return nil
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{"SEARCH_DELAY", "SUMMARY_DELAY", "TICKETS_PATH", "MODEL", "INCLUDE_KEYWORDS", "LOG_FILE", "ALT_SCREEN"} {
		t.Setenv("TICKETSCOUT_"+key, "")
		require.NoError(t, os.Unsetenv("TICKETSCOUT_"+key))
	}
	return home
}

func executeCLI(t *testing.T, runner *recordedRun, args ...string) (string, string, error) {
	t.Helper()
	if runner == nil {
		runner = &recordedRun{}
	}
	root := newRootCmdWith(runner.run)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConfigInitWritesDefaults(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	stdout, _, err := executeCLI(t, nil, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "search_delay")
	assert.Contains(t, string(data), "1.5s")

	_, _, err = executeCLI(t, nil, "config", "init", "--config", path)
	require.ErrorIs(t, err, config.ErrConfigExists)

	_, _, err = executeCLI(t, nil, "config", "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestConfigInitUsesDefaultPath(t *testing.T) {
	isolateHome(t)
	want, err := config.DefaultPath()
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, nil, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, want)

	_, err = os.Stat(want)
	require.NoError(t, err)
}

func TestConfigShowLayersFileAndEnv(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("search_delay = '250ms'\nmodel = 'file-model'\n"), 0o644))

	stdout, _, err := executeCLI(t, nil, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "250ms")
	assert.Contains(t, stdout, "file-model")
	assert.Contains(t, stdout, "# "+path)

	t.Setenv("TICKETSCOUT_MODEL", "env-model")
	stdout, _, err = executeCLI(t, nil, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "env-model")
	assert.NotContains(t, stdout, "file-model")
}

func TestConfigShowHonoursFlags(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("model = 'file-model'\n"), 0o644))

	stdout, _, err := executeCLI(t, nil, "config", "show", "--config", path,
		"--model", "flag-model", "--search-delay", "750ms", "--no-alt-screen")
	require.NoError(t, err)
	assert.Contains(t, stdout, "flag-model")
	assert.NotContains(t, stdout, "file-model")
	assert.Contains(t, stdout, "750ms")
	assert.Contains(t, stdout, "alt_screen = false")
}

func TestConfigShowRejectsNegativeDelay(t *testing.T) {
	isolateHome(t)
	t.Setenv("TICKETSCOUT_SUMMARY_DELAY", "-1s")

	_, _, err := executeCLI(t, nil, "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary_delay")
}

func TestRootStartsProgram(t *testing.T) {
	isolateHome(t)
	runner := &recordedRun{}

	_, _, err := executeCLI(t, runner, "--search-delay", "10ms", "--summary-delay", "10ms")
	require.NoError(t, err)
	assert.Equal(t, 1, runner.calls)
	require.NotNil(t, runner.model)
	assert.Len(t, runner.opts, 2, "mouse support plus alt screen")
}

func TestRootNoAltScreen(t *testing.T) {
	isolateHome(t)
	runner := &recordedRun{}

	_, _, err := executeCLI(t, runner, "--no-alt-screen")
	require.NoError(t, err)
	assert.Len(t, runner.opts, 1)
}

func TestRootLoadsTicketCatalog(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "tickets.yaml")
	catalog := `tickets:
  - id: OPS-1
    title: Disk almost full on build agent
    description: The shared runner is at 95% capacity.
    keywords: [infra]
`
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o644))

	runner := &recordedRun{}
	_, _, err := executeCLI(t, runner, "--tickets", path)
	require.NoError(t, err)
	assert.Equal(t, 1, runner.calls)
}

func TestRootFailsOnMissingCatalog(t *testing.T) {
	isolateHome(t)
	runner := &recordedRun{}

	_, _, err := executeCLI(t, runner, "--tickets", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, runner.calls)
}

func TestRootLogsToFile(t *testing.T) {
	isolateHome(t)
	logPath := filepath.Join(t.TempDir(), "ticketscout.log")

	_, _, err := executeCLI(t, &recordedRun{}, "--log-file", logPath)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[main] starting with 4 tickets")
}

func TestRootRejectsArguments(t *testing.T) {
	isolateHome(t)
	_, _, err := executeCLI(t, nil, "unexpected")
	require.Error(t, err)
}

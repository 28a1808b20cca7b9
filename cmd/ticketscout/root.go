package main

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/csheth/ticketscout/internal/assistant"
	"github.com/csheth/ticketscout/internal/config"
	"github.com/csheth/ticketscout/internal/ticket"
	"github.com/csheth/ticketscout/internal/tui"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type programRunner func(model tea.Model, opts ...tea.ProgramOption) error

func runProgram(model tea.Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(model, opts...).Run()
	return err
}

var flagBindings = []struct{ flag, key string }{
	{"search-delay", config.KeySearchDelay},
	{"summary-delay", config.KeySummaryDelay},
	{"tickets", config.KeyTicketsPath},
	{"model", config.KeyModel},
	{"include-keywords", config.KeyIncludeKeywords},
	{"log-file", config.KeyLogFile},
}

type rootOptions struct {
	configPath  string
	noAltScreen bool
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(runProgram)
}

func newRootCmdWith(run programRunner) *cobra.Command {
	v := viper.New()
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "ticketscout",
		Short:         "Search support tickets and draft an AI summary from the terminal",
		Long:          "ticketscout finds tickets whose title or description matches a free-text query and summarizes them with a simulated model.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		Version:       version,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v, opts)
			if err != nil {
				return err
			}
			return runTUI(cfg, run)
		},
	}

	// Persistent so that config show reports the same overrides a run would use.
	flags := rootCmd.PersistentFlags()
	def := config.Default()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ticketscout/config.toml)")
	flags.BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	flags.Duration("search-delay", def.SearchDelay, "simulated ticket search latency")
	flags.Duration("summary-delay", def.SummaryDelay, "simulated summary latency")
	flags.String("tickets", def.TicketsPath, "YAML ticket catalog (defaults to the built-in tickets)")
	flags.String("model", def.Model, "model name quoted in generated summaries")
	flags.Bool("include-keywords", def.IncludeKeywords, "also match queries against ticket keywords")
	flags.String("log-file", def.LogFile, "append debug logs to this file")
	for _, b := range flagBindings {
		if err := v.BindPFlag(b.key, flags.Lookup(b.flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(newConfigCmd(v, opts))
	return rootCmd
}

func loadConfig(v *viper.Viper, opts *rootOptions) (config.Config, error) {
	if opts.noAltScreen {
		v.Set(config.KeyAltScreen, false)
	}
	return config.Load(v, opts.configPath)
}

func runTUI(cfg config.Config, run programRunner) error {
	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	catalog, err := ticket.LoadCatalog(cfg.TicketsPath)
	if err != nil {
		return err
	}
	client, err := assistant.New(assistant.Config{
		Catalog:         catalog,
		Model:           cfg.Model,
		SearchDelay:     cfg.SearchDelay,
		SummaryDelay:    cfg.SummaryDelay,
		IncludeKeywords: cfg.IncludeKeywords,
	})
	if err != nil {
		return err
	}
	log.Printf("[main] starting with %d tickets, backend %s", catalog.Len(), client.Name())

	programOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	model := tui.New(tui.Config{Assistant: client, TicketCount: catalog.Len()})
	if err := run(model, programOpts...); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// setupLogging routes the standard logger to path, or discards it so log
// lines never land on top of the TUI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "ticketscout")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	appDir     = "ticketscout"
	configName = "config"
	configType = "toml"
	envPrefix  = "TICKETSCOUT"
)

// Keys understood by Load. Flags are bound to these names by the CLI.
const (
	KeySearchDelay     = "search_delay"
	KeySummaryDelay    = "summary_delay"
	KeyTicketsPath     = "tickets_path"
	KeyModel           = "model"
	KeyIncludeKeywords = "include_keywords"
	KeyLogFile         = "log_file"
	KeyAltScreen       = "alt_screen"
)

// ErrConfigExists is returned by Write when the target exists and force is unset.
var ErrConfigExists = errors.New("config file already exists")

// Config is the effective runtime configuration.
type Config struct {
	SearchDelay     time.Duration
	SummaryDelay    time.Duration
	TicketsPath     string
	Model           string
	IncludeKeywords bool
	LogFile         string
	AltScreen       bool
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		SearchDelay:  1500 * time.Millisecond,
		SummaryDelay: 2 * time.Second,
		Model:        "gpt-4o-mini",
		AltScreen:    true,
	}
}

// DefaultPath is where Load looks for a config file when none is given.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, appDir, configName+"."+configType), nil
}

// Load layers defaults, the config file, TICKETSCOUT_* environment variables
// and any flags already bound on v. A missing default config file is fine;
// a missing explicit path is not.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	def := Default()
	v.SetDefault(KeySearchDelay, def.SearchDelay)
	v.SetDefault(KeySummaryDelay, def.SummaryDelay)
	v.SetDefault(KeyTicketsPath, def.TicketsPath)
	v.SetDefault(KeyModel, def.Model)
	v.SetDefault(KeyIncludeKeywords, def.IncludeKeywords)
	v.SetDefault(KeyLogFile, def.LogFile)
	v.SetDefault(KeyAltScreen, def.AltScreen)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		if defaultPath, err := DefaultPath(); err == nil {
			v.AddConfigPath(filepath.Dir(defaultPath))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		SearchDelay:     v.GetDuration(KeySearchDelay),
		SummaryDelay:    v.GetDuration(KeySummaryDelay),
		TicketsPath:     v.GetString(KeyTicketsPath),
		Model:           strings.TrimSpace(v.GetString(KeyModel)),
		IncludeKeywords: v.GetBool(KeyIncludeKeywords),
		LogFile:         v.GetString(KeyLogFile),
		AltScreen:       v.GetBool(KeyAltScreen),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the program cannot run with.
func (c Config) Validate() error {
	if c.SearchDelay < 0 {
		return fmt.Errorf("%s must not be negative, got %s", KeySearchDelay, c.SearchDelay)
	}
	if c.SummaryDelay < 0 {
		return fmt.Errorf("%s must not be negative, got %s", KeySummaryDelay, c.SummaryDelay)
	}
	if c.Model == "" {
		return fmt.Errorf("%s must not be empty", KeyModel)
	}
	return nil
}

type fileSchema struct {
	SearchDelay     string `toml:"search_delay"`
	SummaryDelay    string `toml:"summary_delay"`
	TicketsPath     string `toml:"tickets_path"`
	Model           string `toml:"model"`
	IncludeKeywords bool   `toml:"include_keywords"`
	LogFile         string `toml:"log_file"`
	AltScreen       bool   `toml:"alt_screen"`
}

// Encode renders cfg as a TOML document Load can read back.
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(fileSchema{
		SearchDelay:     cfg.SearchDelay.String(),
		SummaryDelay:    cfg.SummaryDelay.String(),
		TicketsPath:     cfg.TicketsPath,
		Model:           cfg.Model,
		IncludeKeywords: cfg.IncludeKeywords,
		LogFile:         cfg.LogFile,
		AltScreen:       cfg.AltScreen,
	})
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// Write stores cfg at path, refusing to replace an existing file unless force is set.
func Write(path string, cfg Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

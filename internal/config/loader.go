package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// LoaderOptions controls how configuration is loaded.
type LoaderOptions struct {
	// ConfigPath is the path to a TOML config file (optional).
	// If provided but the file is missing or invalid, loading fails.
	ConfigPath string

	// Environment replaces the process environment when non-nil.
	Environment map[string]string

	// FlagOverrides are CLI flag values that override every other source.
	FlagOverrides FlagOverrides

	// Logger is used for warning messages (e.g., undecoded keys).
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// FlagOverrides holds CLI flag values.  Nil or empty means unset.
type FlagOverrides struct {
	UIDDomain    *string
	LoggingLevel *string
}

type fileConfig struct {
	Calendar *calendarFileConfig `toml:"calendar"`
	Logging  *loggingFileConfig  `toml:"logging"`
}

type calendarFileConfig struct {
	ProductID           string `toml:"product_id"`
	UIDDomain           string `toml:"uid_domain"`
	ReminderTrigger     string `toml:"reminder_trigger"`
	ReminderDescription string `toml:"reminder_description"`
	LineLength          *int   `toml:"line_length"`
}

type loggingFileConfig struct {
	Level string `toml:"level"`
}

// envConfig lists the ICS_* variables.
type envConfig struct {
	ProductID           string `env:"ICS_PRODUCT_ID"`
	UIDDomain           string `env:"ICS_UID_DOMAIN"`
	ReminderTrigger     string `env:"ICS_REMINDER_TRIGGER"`
	ReminderDescription string `env:"ICS_REMINDER_DESCRIPTION"`
	LineLength          string `env:"ICS_LINE_LENGTH"`
	LogLevel            string `env:"ICS_LOG_LEVEL"`
}

// Load loads configuration with the following precedence:
//  1. Defaults
//  2. TOML config file values
//  3. ICS_* environment variables
//  4. CLI flags
//
// Unknown TOML keys produce a warning but do not fail the load.
func Load(opts LoaderOptions) (*Config, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := DefaultConfig()

	if opts.ConfigPath != "" {
		data, err := os.ReadFile(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigPath, err)
		}
		var fc fileConfig
		md, err := toml.Decode(string(data), &fc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", opts.ConfigPath, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			logger.Warn("config file contains undecoded keys", "path", opts.ConfigPath, "keys", keys)
		}
		overlayFileConfig(cfg, &fc)
	}

	var ec envConfig
	if err := parseEnv(&ec, opts.Environment); err != nil {
		return nil, err
	}
	if err := overlayEnv(cfg, &ec); err != nil {
		return nil, err
	}

	overlayFlags(cfg, opts.FlagOverrides)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseEnv(target *envConfig, environment map[string]string) error {
	var err error
	if environment != nil {
		err = env.ParseWithOptions(target, env.Options{Environment: environment})
	} else {
		err = env.Parse(target)
	}
	if err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func overlayFileConfig(cfg *Config, fc *fileConfig) {
	if c := fc.Calendar; c != nil {
		setString(&cfg.Calendar.ProductID, c.ProductID)
		setString(&cfg.Calendar.UIDDomain, c.UIDDomain)
		setString(&cfg.Calendar.ReminderTrigger, c.ReminderTrigger)
		setString(&cfg.Calendar.ReminderDescription, c.ReminderDescription)
		if c.LineLength != nil {
			cfg.Calendar.LineLength = *c.LineLength
		}
	}
	if fc.Logging != nil {
		setString(&cfg.Logging.Level, fc.Logging.Level)
	}
}

func overlayEnv(cfg *Config, ec *envConfig) error {
	setString(&cfg.Calendar.ProductID, ec.ProductID)
	setString(&cfg.Calendar.UIDDomain, ec.UIDDomain)
	setString(&cfg.Calendar.ReminderTrigger, ec.ReminderTrigger)
	setString(&cfg.Calendar.ReminderDescription, ec.ReminderDescription)
	if v := strings.TrimSpace(ec.LineLength); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ICS_LINE_LENGTH %q: %w", ec.LineLength, err)
		}
		cfg.Calendar.LineLength = n
	}
	setString(&cfg.Logging.Level, ec.LogLevel)
	return nil
}

func overlayFlags(cfg *Config, f FlagOverrides) {
	if f.UIDDomain != nil {
		setString(&cfg.Calendar.UIDDomain, *f.UIDDomain)
	}
	if f.LoggingLevel != nil {
		setString(&cfg.Logging.Level, *f.LoggingLevel)
	}
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func validate(cfg *Config) error {
	if _, err := ParseLevel(cfg.Logging.Level); err != nil {
		return err
	}
	if strings.ContainsAny(cfg.Calendar.UIDDomain, "@ \t\r\n") {
		return fmt.Errorf("invalid uid_domain %q: must be a bare domain name", cfg.Calendar.UIDDomain)
	}
	trigger := strings.TrimPrefix(strings.TrimPrefix(cfg.Calendar.ReminderTrigger, "-"), "+")
	if !strings.HasPrefix(trigger, "P") || len(trigger) < 3 {
		return fmt.Errorf("invalid reminder_trigger %q: must be an RFC 5545 duration such as -PT15M", cfg.Calendar.ReminderTrigger)
	}
	if cfg.Calendar.LineLength > 0 && cfg.Calendar.LineLength < 10 {
		return fmt.Errorf("invalid line_length %d: must be negative, zero or at least 10", cfg.Calendar.LineLength)
	}
	return nil
}

// Package config loads the settings of the icsinvite command.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	ics "github.com/powerdashhr/interview-ics"
)

// Config is the effective configuration after all sources are merged.
type Config struct {
	Calendar CalendarConfig
	Logging  LoggingConfig
}

// CalendarConfig holds the deployment constants written into documents.
type CalendarConfig struct {
	ProductID           string
	UIDDomain           string
	ReminderTrigger     string
	ReminderDescription string
	// LineLength is the fold limit in octets.  Negative disables folding.
	LineLength int
}

type LoggingConfig struct {
	Level string
}

// DefaultConfig returns the configuration used when no source sets a value.
func DefaultConfig() *Config {
	s := ics.DefaultSettings()
	return &Config{
		Calendar: CalendarConfig{
			ProductID:           s.ProductID,
			UIDDomain:           s.UIDDomain,
			ReminderTrigger:     s.ReminderTrigger,
			ReminderDescription: s.ReminderDescription,
			LineLength:          s.LineLength,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Settings converts the calendar section into builder settings.
func (c *Config) Settings() ics.Settings {
	return ics.Settings{
		ProductID:           c.Calendar.ProductID,
		UIDDomain:           c.Calendar.UIDDomain,
		ReminderTrigger:     c.Calendar.ReminderTrigger,
		ReminderDescription: c.Calendar.ReminderDescription,
		LineLength:          c.Calendar.LineLength,
	}
}

// ParseLevel maps a logging level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid logging level %q: must be one of debug, info, warn, error", s)
	}
}

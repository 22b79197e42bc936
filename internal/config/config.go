package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"horas/internal/core"
)

// Timesheet sources
const (
	SourcePublished = "published"
	SourceFile      = "file"
	SourceSheets    = "sheets"
)

// Journal backends
const (
	JournalNone   = "none"
	JournalSQLite = "sqlite"
	JournalAMQP   = "amqp"
)

type Config struct {
	// HTTP Server
	Port string

	// Timesheet
	TimesheetYear   int
	TimesheetSource string
	TimesheetTSVURL string
	TimesheetFile   string
	Locale          string
	FetchTimeout    time.Duration

	// Google Sheets
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Load journal
	Journal       string
	SQLiteDBPath  string
	JournalKeep   int
	PruneInterval time.Duration

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		TimesheetYear:   getEnvInt("TIMESHEET_YEAR", 2026),
		TimesheetSource: getEnv("TIMESHEET_SOURCE", SourcePublished),
		TimesheetTSVURL: getEnv("TIMESHEET_TSV_URL", ""),
		TimesheetFile:   getEnv("TIMESHEET_FILE", "data/timesheet.tsv"),
		Locale:          getEnv("LOCALE", "es"),
		FetchTimeout:    getEnvDuration("FETCH_TIMEOUT", 60*time.Second),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Horas"),

		Journal:       getEnv("JOURNAL", JournalNone),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/horas.db"),
		JournalKeep:   getEnvInt("JOURNAL_KEEP", 500),
		PruneInterval: getEnvDuration("PRUNE_INTERVAL", time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "horas"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "load_events"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return cfg
}

// Validate validates the configuration and returns an error listing every problem
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.TimesheetYear < 1970 || c.TimesheetYear > 9999 {
		errors = append(errors, fmt.Sprintf("invalid timesheet year %d: must be between 1970 and 9999", c.TimesheetYear))
	}

	switch c.TimesheetSource {
	case SourcePublished:
		if c.TimesheetTSVURL == "" {
			errors = append(errors, "TIMESHEET_TSV_URL is required when using the published source")
		} else if u, err := url.Parse(c.TimesheetTSVURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid TSV URL '%s': %v", c.TimesheetTSVURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid TSV URL scheme '%s': must be 'http' or 'https'", u.Scheme))
		}
	case SourceFile:
		if c.TimesheetFile == "" {
			errors = append(errors, "TIMESHEET_FILE is required when using the file source")
		} else if _, err := os.Stat(c.TimesheetFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("timesheet file does not exist: %s", c.TimesheetFile))
		}
	case SourceSheets:
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using the sheets source")
		}
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when using the sheets source")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid timesheet source '%s': must be one of %v",
			c.TimesheetSource, []string{SourcePublished, SourceFile, SourceSheets}))
	}

	if _, ok := core.LookupLocale(c.Locale); !ok {
		errors = append(errors, fmt.Sprintf("invalid locale '%s': must be one of %v", c.Locale, core.LocaleCodes()))
	}

	if c.FetchTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid fetch timeout %v: must be at least 1 second", c.FetchTimeout))
	} else if c.FetchTimeout > 10*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid fetch timeout %v: must be at most 10 minutes", c.FetchTimeout))
	}

	switch c.Journal {
	case JournalNone:
	case JournalSQLite:
		errors = append(errors, c.validateSQLite()...)
	case JournalAMQP:
		if c.AMQPURL == "" {
			errors = append(errors, "AMQP URL is required when using the amqp journal")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid journal '%s': must be one of %v",
			c.Journal, []string{JournalNone, JournalSQLite, JournalAMQP}))
	}

	errors = append(errors, c.validateAMQP()...)

	if c.JournalKeep < 0 {
		errors = append(errors, fmt.Sprintf("invalid journal keep %d: must not be negative", c.JournalKeep))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ValidateWorker checks the settings needed by the journal worker, which
// always reads AMQP and writes SQLite regardless of JOURNAL.
func (c *Config) ValidateWorker() error {
	var errors []string
	if c.AMQPURL == "" {
		errors = append(errors, "AMQP URL is required by the worker")
	}
	errors = append(errors, c.validateAMQP()...)
	errors = append(errors, c.validateSQLite()...)
	if c.PruneInterval < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid prune interval %v: must be at least 1 minute", c.PruneInterval))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func (c *Config) validateSQLite() []string {
	if c.SQLiteDBPath == "" {
		return []string{"SQLite database path cannot be empty when using the sqlite journal"}
	}
	// Check if directory exists or can be created
	dir := filepath.Dir(c.SQLiteDBPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return []string{fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err)}
			}
		}
	}
	return nil
}

func (c *Config) validateAMQP() []string {
	if c.AMQPURL == "" {
		return nil
	}
	var errors []string
	if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
	} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
		errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
	}
	if c.AMQPExchange == "" {
		errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
	}
	if c.AMQPQueue == "" {
		errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
	}
	return errors
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

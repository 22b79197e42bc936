package backend

import (
	"fmt"

	"horas/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	cfg := Config{
		Source:  SourceType(appConfig.TimesheetSource),
		Journal: JournalType(appConfig.Journal),

		TSVURL:        appConfig.TimesheetTSVURL,
		TimesheetFile: appConfig.TimesheetFile,

		GoogleSpreadsheetID: appConfig.GoogleSpreadsheetID,
		GoogleSheetName:     appConfig.GoogleSheetName,

		SQLiteDBPath: appConfig.SQLiteDBPath,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Source.IsValid() {
		return fmt.Errorf("invalid source type: %s", c.Source)
	}
	if !c.Journal.IsValid() {
		return fmt.Errorf("invalid journal type: %s", c.Journal)
	}

	switch c.Source {
	case PublishedSource:
		if c.TSVURL == "" {
			return fmt.Errorf("TSV URL is required for published source")
		}
	case FileSource:
		if c.TimesheetFile == "" {
			return fmt.Errorf("timesheet file is required for file source")
		}
	case SheetsSource:
		if c.GoogleSpreadsheetID == "" {
			return fmt.Errorf("Google Spreadsheet ID is required for sheets source")
		}
	}

	switch c.Journal {
	case SQLiteJournal:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite journal")
		}
	case AMQPJournal:
		if c.AMQPURL == "" {
			return fmt.Errorf("AMQP URL is required for amqp journal")
		}
	}

	return nil
}

// GetSourceTypeStrings returns all valid source type strings
func GetSourceTypeStrings() []string {
	types := []SourceType{PublishedSource, FileSource, SheetsSource}
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}

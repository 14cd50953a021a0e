package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CREDENTIALS       = "TRACKER_CREDENTIALS"
	TASKS_SHEET       = "TRACKER_TASKS_SHEET"
	PROJECTS_SHEET    = "TRACKER_PROJECTS_SHEET"
	CREDENTIALS_SHEET = "TRACKER_CREDENTIALS_SHEET"
	CACHE_TTL         = "TRACKER_CACHE_TTL"
	CACHE_SIZE        = "TRACKER_CACHE_SIZE"
	API_INTERVAL      = "TRACKER_API_INTERVAL"
	MAX_RETRIES       = "TRACKER_MAX_RETRIES"
	BACKOFF           = "TRACKER_BACKOFF"
	REPAIR_HEADERS    = "TRACKER_REPAIR_HEADERS"
	LOG_LEVEL         = "TRACKER_LOG_LEVEL"
	LOG_FILE          = "TRACKER_LOG_FILE"
)

type Config struct {
	Credentials string
	Sheets      Sheets

	CacheTTL      time.Duration
	CacheSize     int
	APIInterval   time.Duration
	MaxRetries    int
	Backoff       time.Duration
	RepairHeaders bool

	LogLevel string
	LogFile  string
}

// Sheets holds the spreadsheet IDs for the three worksheets.
type Sheets struct {
	Tasks       string
	Projects    string
	Credentials string
}

var url = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)

func NewConfig() *Config {
	return &Config{
		CacheTTL:      60 * time.Second,
		CacheSize:     256,
		APIInterval:   1200 * time.Millisecond,
		MaxRetries:    5,
		Backoff:       1 * time.Second,
		RepairHeaders: true,
		LogLevel:      "info",
	}
}

// Load reads the settings from a dotenv style file (if it exists) and then overrides them with
// any matching environment variables.
func (c *Config) Load(file string) error {
	values := map[string]string{}

	if file != "" {
		if _, err := os.Stat(file); err == nil {
			if m, err := godotenv.Read(file); err != nil {
				return fmt.Errorf("error reading configuration file %v (%w)", file, err)
			} else {
				values = m
			}
		} else if !os.IsNotExist(err) {
			return err
		}
	}

	for _, k := range []string{
		CREDENTIALS, TASKS_SHEET, PROJECTS_SHEET, CREDENTIALS_SHEET,
		CACHE_TTL, CACHE_SIZE, API_INTERVAL, MAX_RETRIES, BACKOFF, REPAIR_HEADERS,
		LOG_LEVEL, LOG_FILE,
	} {
		if v, ok := os.LookupEnv(k); ok {
			values[k] = v
		}
	}

	return c.apply(values)
}

func (c *Config) apply(values map[string]string) error {
	for k, v := range values {
		v = strings.TrimSpace(v)

		switch k {
		case CREDENTIALS:
			c.Credentials = v

		case TASKS_SHEET:
			c.Sheets.Tasks = SpreadsheetID(v)

		case PROJECTS_SHEET:
			c.Sheets.Projects = SpreadsheetID(v)

		case CREDENTIALS_SHEET:
			c.Sheets.Credentials = SpreadsheetID(v)

		case CACHE_TTL:
			if d, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid %v '%v' (%w)", k, v, err)
			} else {
				c.CacheTTL = d
			}

		case API_INTERVAL:
			if d, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid %v '%v' (%w)", k, v, err)
			} else {
				c.APIInterval = d
			}

		case BACKOFF:
			if d, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid %v '%v' (%w)", k, v, err)
			} else {
				c.Backoff = d
			}

		case CACHE_SIZE:
			if N, err := strconv.Atoi(v); err != nil || N < 1 {
				return fmt.Errorf("invalid %v '%v'", k, v)
			} else {
				c.CacheSize = N
			}

		case MAX_RETRIES:
			if N, err := strconv.Atoi(v); err != nil || N < 1 {
				return fmt.Errorf("invalid %v '%v'", k, v)
			} else {
				c.MaxRetries = N
			}

		case REPAIR_HEADERS:
			if b, err := strconv.ParseBool(v); err != nil {
				return fmt.Errorf("invalid %v '%v' (%w)", k, v, err)
			} else {
				c.RepairHeaders = b
			}

		case LOG_LEVEL:
			c.LogLevel = v

		case LOG_FILE:
			c.LogFile = v
		}
	}

	return nil
}

// Validate checks that the credentials and all three worksheets are configured.
func (c *Config) Validate() error {
	if c.Credentials == "" {
		return fmt.Errorf("missing service account credentials (%v)", CREDENTIALS)
	}

	if c.Sheets.Tasks == "" {
		return fmt.Errorf("missing tasks spreadsheet (%v)", TASKS_SHEET)
	}

	if c.Sheets.Projects == "" {
		return fmt.Errorf("missing projects spreadsheet (%v)", PROJECTS_SHEET)
	}

	if c.Sheets.Credentials == "" {
		return fmt.Errorf("missing credentials spreadsheet (%v)", CREDENTIALS_SHEET)
	}

	return nil
}

// SpreadsheetID extracts the spreadsheet ID from a Google Sheets URL. Anything that isn't a
// URL is assumed to already be an ID.
func SpreadsheetID(v string) string {
	if match := url.FindStringSubmatch(strings.TrimSpace(v)); len(match) > 1 {
		return match[1]
	}

	return strings.TrimSpace(v)
}

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tracker.env")
	env := `
TRACKER_CREDENTIALS=/etc/tracker/service-account.json
TRACKER_TASKS_SHEET=https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit
TRACKER_PROJECTS_SHEET=1gOMPaQRPk8jHIqgZ7kSbv6UW3ZYd1S5f
TRACKER_CREDENTIALS_SHEET=1MhzThPgYHkMbcTLcNqMyB6teuWm022_tV3plMPBQ-20
TRACKER_CACHE_TTL=30s
TRACKER_API_INTERVAL=500ms
TRACKER_MAX_RETRIES=3
TRACKER_REPAIR_HEADERS=false
`
	if err := os.WriteFile(file, []byte(env), 0600); err != nil {
		t.Fatalf("%v", err)
	}

	t.Setenv(CACHE_SIZE, "64")

	expected := Config{
		Credentials: "/etc/tracker/service-account.json",
		Sheets: Sheets{
			Tasks:       "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
			Projects:    "1gOMPaQRPk8jHIqgZ7kSbv6UW3ZYd1S5f",
			Credentials: "1MhzThPgYHkMbcTLcNqMyB6teuWm022_tV3plMPBQ-20",
		},
		CacheTTL:      30 * time.Second,
		CacheSize:     64,
		APIInterval:   500 * time.Millisecond,
		MaxRetries:    3,
		Backoff:       1 * time.Second,
		RepairHeaders: false,
		LogLevel:      "info",
	}

	c := NewConfig()
	if err := c.Load(file); err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if !reflect.DeepEqual(*c, expected) {
		t.Errorf("Incorrect configuration\n   expected: %+v\n   got:      %+v\n", expected, *c)
	}

	if err := c.Validate(); err != nil {
		t.Errorf("Unexpected validation error (%v)", err)
	}
}

func TestLoadWithMissingFile(t *testing.T) {
	c := NewConfig()
	if err := c.Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("Unexpected error loading missing configuration file (%v)", err)
	}

	if err := c.Validate(); err == nil {
		t.Errorf("Expected validation error for unconfigured credentials, got %v", err)
	}
}

func TestLoadWithInvalidDuration(t *testing.T) {
	t.Setenv(CACHE_TTL, "a minute")

	c := NewConfig()
	if err := c.Load(""); err == nil {
		t.Errorf("Expected error for invalid %v, got %v", CACHE_TTL, err)
	}
}

func TestSpreadsheetID(t *testing.T) {
	tests := map[string]string{
		"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms":      "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
		"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit": "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
		"  1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms ":                                          "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
	}

	for v, expected := range tests {
		if id := SpreadsheetID(v); id != expected {
			t.Errorf("Incorrect spreadsheet ID for '%v' - expected:%v, got:%v", v, expected, id)
		}
	}
}

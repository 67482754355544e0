package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestSetAndGet(t *testing.T) {
	cfg := &Cfg{
		DBPath:         "./test.sqlite",
		Days:           7,
		PerFeed:        10,
		FetchTimeout:   15,
		IngestInterval: 600,
		WorkerCount:    1,
		Port:           "8080",
		UserAgent:      "Test Agent",
		Timezone:       "UTC",
		Version:        "test-version",
	}

	Set(cfg)
	got := Get()

	if got.DBPath != "./test.sqlite" {
		t.Errorf("Expected DB path './test.sqlite', got '%s'", got.DBPath)
	}
	if got.Days != 7 {
		t.Errorf("Expected days 7, got %d", got.Days)
	}
	if got.PerFeed != 10 {
		t.Errorf("Expected per-feed 10, got %d", got.PerFeed)
	}
	if got.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", got.Port)
	}
	if got.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", got.UserAgent)
	}
	if got.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", got.Version)
	}
}

func TestApplyTimezone(t *testing.T) {
	if err := applyTimezone("UTC"); err != nil {
		t.Errorf("UTC should be a valid timezone: %v", err)
	}
	if err := applyTimezone("Not/AZone"); err == nil {
		t.Error("Expected error for invalid timezone")
	}
}

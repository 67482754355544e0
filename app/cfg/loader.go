package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./data/petropulse.sqlite" description:"Path to the SQLite database file"`

	// Ingestion configuration
	FeedsFile      string `long:"feeds-file" env:"FEEDS_FILE" description:"YAML file with feed sources (defaults to the built-in list)"`
	Days           int    `long:"days" env:"INGEST_DAYS" default:"30" description:"Only keep articles from the last N days"`
	PerFeed        int    `long:"per-feed" env:"INGEST_PER_FEED" default:"30" description:"Maximum items to take from each feed"`
	FetchTimeout   int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"15" description:"HTTP fetch timeout in seconds"`
	ExtractContent bool   `long:"extract-content" env:"EXTRACT_CONTENT" description:"Fetch article pages and extract full text"`
	IngestInterval int    `long:"ingest-interval" env:"INGEST_INTERVAL" default:"3600" description:"Seconds between scheduled ingestion passes in serve mode"`
	WorkerCount    int    `long:"worker-count" env:"WORKER_COUNT" default:"1" description:"Number of background workers for scheduled tasks"`

	// HTTP server configuration
	Port    string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl string `long:"base-url" env:"BASE_URL" description:"Public base URL for the dashboard (e.g. https://pulse.example.com)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"PetroPulse/1.0 (+https://github.com/petropulse/petropulse)" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g. UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load parses flags and environment variables and returns the configuration
// together with the remaining positional arguments (the subcommand).
// A nil config with nil error means help was requested.
func Load() (*Cfg, []string, error) {
	// Optional .env file, ignored when absent
	_ = godotenv.Load()

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	parser.Usage = "[OPTIONS] <ingest|serve>"

	args, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil, nil
			}
		}
		return nil, nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:         raw.DBPath,
		FeedsFile:      raw.FeedsFile,
		Days:           raw.Days,
		PerFeed:        raw.PerFeed,
		FetchTimeout:   raw.FetchTimeout,
		ExtractContent: raw.ExtractContent,
		IngestInterval: raw.IngestInterval,
		WorkerCount:    raw.WorkerCount,
		Port:           raw.Port,
		BaseUrl:        raw.BaseUrl,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, args, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set replaces the global configuration. Intended for tests.
func Set(c *Cfg) {
	globalCfg = c
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}

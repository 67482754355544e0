package ingest

import (
	"time"
)

// Options control a single ingestion pass.
type Options struct {
	Days           int  // drop entries older than N days (0 disables the cutoff)
	PerFeed        int  // max items per feed (0 means all)
	ExtractContent bool // fetch article pages for full text
}

// Stats summarizes one ingestion pass.
type Stats struct {
	Fetched    int // entries pulled from feeds
	Stale      int // dropped by the --days cutoff
	Duplicates int // links already seen this pass or already stored
	Irrelevant int // dropped by the energy-relevance gate
	Stored     int
	BySource   map[string]int // stored count per source
	Duration   time.Duration
}

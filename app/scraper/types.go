package scraper

import (
	"time"
)

// Entry is one article pulled from an RSS/Atom feed, before analysis.
type Entry struct {
	Source      string
	Title       string
	Link        string
	Summary     string
	PublishedAt time.Time
}

package database

import (
	"time"
)

// Entities are the organization and geopolitical mentions found in an
// article, stored as one JSON object.
type Entities struct {
	Orgs []string `json:"org"`
	Gpes []string `json:"gpe"`
}

// All returns the flattened mention list, organizations first.
func (e Entities) All() []string {
	out := make([]string, 0, len(e.Orgs)+len(e.Gpes))
	out = append(out, e.Orgs...)
	out = append(out, e.Gpes...)
	return out
}

// Article is a stored news article. Rows are written once during
// ingestion and never mutated afterwards.
type Article struct {
	ID             int64
	Source         string
	Title          string
	Link           string // unique key, deduplicates repeated ingestion runs
	PublishedAt    time.Time
	Content        string
	Topics         []string
	Entities       Entities
	SentimentLabel string // Positive, Neutral or Negative
	SentimentScore float64
	CreatedAt      time.Time
}

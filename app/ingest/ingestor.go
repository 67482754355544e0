package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/petropulse/petropulse/app/analysis"
	"github.com/petropulse/petropulse/app/database"
	"github.com/petropulse/petropulse/app/scraper"
)

// Ingestor runs one pass of the pipeline: scrape feeds, gate by
// relevance, tag topics, score sentiment, store.
type Ingestor struct {
	scraper   *scraper.Scraper
	extractor *scraper.ContentExtractor
	tagger    *analysis.Tagger
	entities  *analysis.EntityExtractor
	scorer    *analysis.SentimentScorer
	repo      database.ArticleRepository
}

func NewIngestor(feedScraper *scraper.Scraper, extractor *scraper.ContentExtractor,
	repo database.ArticleRepository) *Ingestor {
	return &Ingestor{
		scraper:   feedScraper,
		extractor: extractor,
		tagger:    analysis.NewTagger(),
		entities:  analysis.NewEntityExtractor(),
		scorer:    analysis.NewSentimentScorer(),
		repo:      repo,
	}
}

// Run executes one ingestion pass over the given feeds. Articles are
// written once; links already stored are left untouched.
func (i *Ingestor) Run(ctx context.Context, feedURLs []string, opts Options) (*Stats, error) {
	started := time.Now()

	stats := &Stats{BySource: make(map[string]int)}

	entries := i.scraper.Run(ctx, feedURLs, opts.PerFeed)
	stats.Fetched = len(entries)

	var cutoff time.Time
	if opts.Days > 0 {
		cutoff = time.Now().UTC().AddDate(0, 0, -opts.Days)
	}

	seen := make(map[string]bool)

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		if !cutoff.IsZero() && entry.PublishedAt.Before(cutoff) {
			stats.Stale++
			continue
		}

		if seen[entry.Link] {
			stats.Duplicates++
			continue
		}
		seen[entry.Link] = true

		stored, err := i.repo.HasLink(entry.Link)
		if err != nil {
			return stats, fmt.Errorf("failed to check stored link: %w", err)
		}
		if stored {
			stats.Duplicates++
			continue
		}

		article := i.process(ctx, entry, opts)
		if article == nil {
			stats.Irrelevant++
			continue
		}

		inserted, err := i.repo.InsertArticle(*article)
		if err != nil {
			return stats, fmt.Errorf("failed to store article: %w", err)
		}
		if !inserted {
			stats.Duplicates++
			continue
		}

		stats.Stored++
		stats.BySource[article.Source]++
	}

	stats.Duration = time.Since(started)

	slog.Info("Ingestion pass completed",
		"fetched", stats.Fetched,
		"stale", stats.Stale,
		"duplicates", stats.Duplicates,
		"irrelevant", stats.Irrelevant,
		"stored", stats.Stored,
		"duration", stats.Duration)

	return stats, nil
}

// process enriches one entry into a storable article, or returns nil
// when the entry fails the energy-relevance gate.
func (i *Ingestor) process(ctx context.Context, entry scraper.Entry, opts Options) *database.Article {
	content := entry.Summary
	if opts.ExtractContent && i.extractor != nil {
		extracted, err := i.extractor.Run(ctx, entry.Link)
		if err != nil {
			slog.Debug("Content extraction failed, using feed summary", "url", entry.Link, "error", err)
		} else {
			content = extracted
		}
	}

	combined := strings.Join([]string{entry.Title, entry.Summary, content}, " ")
	if !i.tagger.IsEnergyRelated(combined) {
		slog.Debug("Entry not energy related, skipping", "title", entry.Title)
		return nil
	}

	topics := i.tagger.Run(combined)
	orgs, gpes := i.entities.Run(entry.Title, content)

	scoreInput := content
	if strings.TrimSpace(scoreInput) == "" {
		scoreInput = entry.Title
	}
	label, score := i.scorer.Score(scoreInput)

	return &database.Article{
		Source:         entry.Source,
		Title:          entry.Title,
		Link:           entry.Link,
		PublishedAt:    entry.PublishedAt,
		Content:        content,
		Topics:         topics,
		Entities:       database.Entities{Orgs: orgs, Gpes: gpes},
		SentimentLabel: label,
		SentimentScore: score,
	}
}

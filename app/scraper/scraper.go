package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Scraper fetches and parses RSS/Atom feeds into normalized entries.
type Scraper struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	userAgent  string
	timeout    time.Duration
}

func NewScraper(httpClient *http.Client, userAgent string, timeout time.Duration) *Scraper {
	return &Scraper{
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Run fetches every feed URL sequentially. A failing feed is logged and
// skipped; the pass continues with the next one.
func (s *Scraper) Run(ctx context.Context, feedURLs []string, perFeed int) []Entry {
	var entries []Entry

	for _, feedURL := range feedURLs {
		select {
		case <-ctx.Done():
			slog.Warn("Scrape pass cancelled", "remaining_feeds", len(feedURLs))
			return entries
		default:
		}

		feedEntries, err := s.FetchFeed(ctx, feedURL, perFeed)
		if err != nil {
			slog.Warn("Failed to fetch feed, skipping", "url", feedURL, "error", err)
			continue
		}

		entries = append(entries, feedEntries...)
	}

	return entries
}

// FetchFeed fetches one feed and returns up to perFeed normalized entries.
func (s *Scraper) FetchFeed(ctx context.Context, feedURL string, perFeed int) ([]Entry, error) {
	data, err := s.fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	feed, err := s.parser.Parse(bytes.NewReader(normalizeCharset(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	source := sourceName(feed, feedURL)

	items := feed.Items
	if perFeed > 0 && len(items) > perFeed {
		items = items[:perFeed]
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if item.Link == "" {
			continue
		}
		entries = append(entries, Entry{
			Source:      source,
			Title:       item.Title,
			Link:        item.Link,
			Summary:     item.Description,
			PublishedAt: publishedDate(item),
		})
	}

	slog.Debug("Feed fetched", "url", feedURL, "source", source, "entries", len(entries))
	return entries, nil
}

func (s *Scraper) fetch(ctx context.Context, feedURL string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// publishedDate falls back from published to updated to the current
// time, so every entry carries a usable timestamp.
func publishedDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	return time.Now().UTC()
}

// sourceName prefers the feed's own title and falls back to the feed
// URL's host with the www prefix stripped.
func sourceName(feed *gofeed.Feed, feedURL string) string {
	if feed.Title != "" {
		return feed.Title
	}
	if u, err := url.Parse(feedURL); err == nil && u.Host != "" {
		return strings.TrimPrefix(u.Host, "www.")
	}
	return "Unknown Source"
}

package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/petropulse/petropulse/app/analysis"
	"github.com/petropulse/petropulse/app/database"
	"github.com/petropulse/petropulse/app/scraper"
)

const energyRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Energy Wire</title>
    <item>
      <title>Hydrogen investment surges to record levels</title>
      <link>https://example.com/articles/hydrogen</link>
      <description>Green hydrogen projects attracted record funding.</description>
      <pubDate>Thu, 27 Aug 2026 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Local theater stages new play</title>
      <link>https://example.com/articles/theater</link>
      <description>The community theater opens its fall season.</description>
      <pubDate>Thu, 27 Aug 2026 11:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Pipeline maintenance complete</title>
      <link>https://example.com/articles/pipeline</link>
      <description>Gas pipeline returns to full capacity.</description>
      <pubDate>Mon, 05 Jan 2004 12:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func newTestIngestor(t *testing.T) (*Ingestor, database.ArticleRepository) {
	t.Helper()

	db, err := database.NewConnection(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := database.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	repo := database.NewArticleRepository(db)
	feedScraper := scraper.NewScraper(&http.Client{}, "PetroPulse-test/1.0", 5*time.Second)

	return NewIngestor(feedScraper, nil, repo), repo
}

func serveRSS(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRun_StoresRelevantArticles(t *testing.T) {
	ingestor, repo := newTestIngestor(t)
	server := serveRSS(t, energyRSS)

	stats, err := ingestor.Run(context.Background(), []string{server.URL}, Options{Days: 0, PerFeed: 0})
	if err != nil {
		t.Fatalf("Ingestion failed: %v", err)
	}

	if stats.Fetched != 3 {
		t.Errorf("Expected 3 fetched entries, got %d", stats.Fetched)
	}
	// The theater item fails the relevance gate
	if stats.Irrelevant != 1 {
		t.Errorf("Expected 1 irrelevant entry, got %d", stats.Irrelevant)
	}
	if stats.Stored != 2 {
		t.Errorf("Expected 2 stored articles, got %d", stats.Stored)
	}
	if stats.BySource["Energy Wire"] != 2 {
		t.Errorf("Expected 2 articles from 'Energy Wire', got %d", stats.BySource["Energy Wire"])
	}

	articles, err := repo.GetArticles(database.ArticleFilter{})
	if err != nil {
		t.Fatal(err)
	}
	for _, article := range articles {
		switch article.SentimentLabel {
		case analysis.LabelPositive, analysis.LabelNeutral, analysis.LabelNegative:
		default:
			t.Errorf("Article %s has invalid sentiment label %q", article.Link, article.SentimentLabel)
		}
	}
}

func TestRun_SecondPassAddsNoDuplicates(t *testing.T) {
	ingestor, repo := newTestIngestor(t)
	server := serveRSS(t, energyRSS)

	if _, err := ingestor.Run(context.Background(), []string{server.URL}, Options{}); err != nil {
		t.Fatalf("First pass failed: %v", err)
	}
	countAfterFirst, err := repo.GetArticleCount()
	if err != nil {
		t.Fatal(err)
	}

	stats, err := ingestor.Run(context.Background(), []string{server.URL}, Options{})
	if err != nil {
		t.Fatalf("Second pass failed: %v", err)
	}

	countAfterSecond, err := repo.GetArticleCount()
	if err != nil {
		t.Fatal(err)
	}
	if countAfterSecond != countAfterFirst {
		t.Errorf("Second pass changed row count: %d -> %d", countAfterFirst, countAfterSecond)
	}
	if stats.Stored != 0 {
		t.Errorf("Second pass should store nothing, stored %d", stats.Stored)
	}
	if stats.Duplicates == 0 {
		t.Error("Second pass should report duplicates")
	}
}

func TestRun_DaysCutoff(t *testing.T) {
	ingestor, repo := newTestIngestor(t)
	server := serveRSS(t, energyRSS)

	// The pipeline item is from 2004 and must be dropped
	stats, err := ingestor.Run(context.Background(), []string{server.URL}, Options{Days: 365})
	if err != nil {
		t.Fatalf("Ingestion failed: %v", err)
	}

	if stats.Stale == 0 {
		t.Error("Expected the 2004 entry to be counted as stale")
	}

	has, err := repo.HasLink("https://example.com/articles/pipeline")
	if err != nil {
		t.Fatal(err)
	}
	if has {
		t.Error("Stale article should not be stored")
	}
}

func TestRun_TopicsAttached(t *testing.T) {
	ingestor, repo := newTestIngestor(t)
	server := serveRSS(t, energyRSS)

	if _, err := ingestor.Run(context.Background(), []string{server.URL}, Options{}); err != nil {
		t.Fatal(err)
	}

	articles, err := repo.GetArticles(database.ArticleFilter{Topic: "Hydrogen"})
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 1 {
		t.Fatalf("Expected 1 article tagged Hydrogen, got %d", len(articles))
	}
	if articles[0].Link != "https://example.com/articles/hydrogen" {
		t.Errorf("Wrong article tagged: %s", articles[0].Link)
	}
}

func TestRun_FailingFeedDoesNotAbortPass(t *testing.T) {
	ingestor, _ := newTestIngestor(t)

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()
	good := serveRSS(t, energyRSS)

	stats, err := ingestor.Run(context.Background(), []string{bad.URL, good.URL}, Options{})
	if err != nil {
		t.Fatalf("Pass should survive a failing feed: %v", err)
	}
	if stats.Stored == 0 {
		t.Error("Expected articles stored from the healthy feed")
	}
}

func TestRun_EntitiesAttached(t *testing.T) {
	ingestor, repo := newTestIngestor(t)

	const rss = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Energy Wire</title>
    <item>
      <title>OPEC agrees deeper oil output cut</title>
      <link>https://example.com/articles/opec-cut</link>
      <description>The group will reduce crude production next quarter.</description>
      <pubDate>Thu, 27 Aug 2026 10:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`
	server := serveRSS(t, rss)

	if _, err := ingestor.Run(context.Background(), []string{server.URL}, Options{}); err != nil {
		t.Fatal(err)
	}

	articles, err := repo.GetArticles(database.ArticleFilter{Entity: "OPEC"})
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 1 {
		t.Fatalf("Expected 1 article mentioning OPEC, got %d", len(articles))
	}

	found := false
	for _, org := range articles[0].Entities.Orgs {
		if org == "OPEC" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected OPEC in organizations, got %v", articles[0].Entities.Orgs)
	}
}

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petropulse/petropulse/app/cfg"
	"github.com/petropulse/petropulse/app/database"
)

func newTestServer(t *testing.T) (*gin.Engine, database.ArticleRepository) {
	t.Helper()

	cfg.Set(&cfg.Cfg{Port: "8080", UserAgent: "PetroPulse-test/1.0"})

	db, err := database.NewConnection(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := database.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	repo := database.NewArticleRepository(db)
	server := NewServer(NewHandler(repo))

	return server, repo
}

func seedArticles(t *testing.T, repo database.ArticleRepository) {
	t.Helper()

	articles := []database.Article{
		{
			Source:         "Energy Wire",
			Title:          "Hydrogen investment surges",
			Link:           "https://example.com/hydrogen",
			PublishedAt:    time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
			Topics:         []string{"Hydrogen", "Energy Investment"},
			Entities:       database.Entities{Orgs: []string{"Chevron"}, Gpes: []string{"Norway"}},
			SentimentLabel: "Positive",
			SentimentScore: 0.6,
		},
		{
			Source:         "Gov Data",
			Title:          "Pipeline leak under investigation",
			Link:           "https://example.com/pipeline",
			PublishedAt:    time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC),
			Topics:         []string{"Pipeline Safety"},
			Entities:       database.Entities{Gpes: []string{"Canada"}},
			SentimentLabel: "Negative",
			SentimentScore: -0.4,
		},
		{
			Source:         "Energy Wire",
			Title:          "Refinery output steady in July",
			Link:           "https://example.com/refinery",
			PublishedAt:    time.Date(2026, 8, 22, 15, 0, 0, 0, time.UTC),
			Topics:         []string{"Refining"},
			SentimentLabel: "Neutral",
			SentimentScore: 0.01,
		},
	}

	for _, article := range articles {
		if _, err := repo.InsertArticle(article); err != nil {
			t.Fatalf("Failed to seed article %s: %v", article.Link, err)
		}
	}
}

func doGet(t *testing.T, server *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestAPIGetArticles(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticles(t, repo)

	w := doGet(t, server, "/api/articles")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Articles []ArticleResponse `json:"articles"`
		Total    int               `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Total != 3 {
		t.Errorf("Expected 3 articles, got %d", resp.Total)
	}
	// Newest first
	if resp.Articles[0].Link != "https://example.com/refinery" {
		t.Errorf("Expected newest article first, got %s", resp.Articles[0].Link)
	}
}

func TestAPIGetArticles_TopicFilter(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticles(t, repo)

	w := doGet(t, server, "/api/articles?topic=Hydrogen")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Articles []ArticleResponse `json:"articles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if len(resp.Articles) != 1 {
		t.Fatalf("Expected 1 article for topic Hydrogen, got %d", len(resp.Articles))
	}
	if resp.Articles[0].Link != "https://example.com/hydrogen" {
		t.Errorf("Wrong article matched: %s", resp.Articles[0].Link)
	}
}

func TestAPIGetArticles_DateRange(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticles(t, repo)

	// The 'to' bound covers its whole day
	w := doGet(t, server, "/api/articles?from=2026-08-21&to=2026-08-21")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Articles []ArticleResponse `json:"articles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if len(resp.Articles) != 1 {
		t.Fatalf("Expected 1 article on 2026-08-21, got %d", len(resp.Articles))
	}
	if resp.Articles[0].Link != "https://example.com/pipeline" {
		t.Errorf("Wrong article matched: %s", resp.Articles[0].Link)
	}
}

func TestAPIGetArticles_InvalidDate(t *testing.T) {
	server, _ := newTestServer(t)

	w := doGet(t, server, "/api/articles?from=yesterday")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid date, got %d", w.Code)
	}
}

func TestAPIExportArticlesCSV(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticles(t, repo)

	w := doGet(t, server, "/api/articles.csv")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected text/csv content type, got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "articles.csv") {
		t.Errorf("Expected attachment disposition, got %s", cd)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "source,title,link") {
		t.Errorf("Unexpected CSV header: %s", lines[0])
	}
}

func TestAPIGetSourcesAndTopics(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticles(t, repo)

	w := doGet(t, server, "/api/sources")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var sourcesResp struct {
		Sources []string `json:"sources"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &sourcesResp); err != nil {
		t.Fatal(err)
	}
	if len(sourcesResp.Sources) != 2 {
		t.Errorf("Expected 2 sources, got %v", sourcesResp.Sources)
	}

	w = doGet(t, server, "/api/topics")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var topicsResp struct {
		Topics []string `json:"topics"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &topicsResp); err != nil {
		t.Fatal(err)
	}
	if len(topicsResp.Topics) != 4 {
		t.Errorf("Expected 4 distinct topics, got %v", topicsResp.Topics)
	}
}

func TestAPIGetArticles_EntityFilter(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticles(t, repo)

	w := doGet(t, server, "/api/articles?entity=Chevron")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Articles []ArticleResponse `json:"articles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if len(resp.Articles) != 1 {
		t.Fatalf("Expected 1 article mentioning Chevron, got %d", len(resp.Articles))
	}
	if resp.Articles[0].Link != "https://example.com/hydrogen" {
		t.Errorf("Wrong article matched: %s", resp.Articles[0].Link)
	}
	if len(resp.Articles[0].Entities.Orgs) != 1 || resp.Articles[0].Entities.Orgs[0] != "Chevron" {
		t.Errorf("Entities missing from response: %+v", resp.Articles[0].Entities)
	}
}

func TestAPIGetEntities(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticles(t, repo)

	w := doGet(t, server, "/api/entities")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Entities []string `json:"entities"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	want := []string{"Canada", "Chevron", "Norway"}
	if len(resp.Entities) != len(want) {
		t.Fatalf("Expected %d entities, got %v", len(want), resp.Entities)
	}
	for i, name := range want {
		if resp.Entities[i] != name {
			t.Errorf("Expected entity %q at position %d, got %q", name, i, resp.Entities[i])
		}
	}
}

func TestAPIGetSentimentIndex(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticles(t, repo)

	w := doGet(t, server, "/api/sentiment")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Sentiment []SentimentPointResponse `json:"sentiment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if len(resp.Sentiment) != 3 {
		t.Fatalf("Expected 3 daily points, got %d", len(resp.Sentiment))
	}
	if resp.Sentiment[0].Date != "2026-08-20" {
		t.Errorf("Expected oldest day first, got %s", resp.Sentiment[0].Date)
	}
}

func TestAPIGetTopTerms(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticles(t, repo)

	w := doGet(t, server, "/api/terms?terms=5")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Terms []TermResponse `json:"terms"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if len(resp.Terms) == 0 {
		t.Fatal("Expected some terms")
	}
	if len(resp.Terms) > 5 {
		t.Errorf("Expected at most 5 terms, got %d", len(resp.Terms))
	}
	for _, term := range resp.Terms {
		if term.Count < 1 {
			t.Errorf("Term %q has non-positive count %d", term.Word, term.Count)
		}
	}
}

func TestGetHealth(t *testing.T) {
	server, _ := newTestServer(t)

	w := doGet(t, server, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if _, ok := resp["timestamp"]; !ok {
		t.Error("Expected timestamp in health response")
	}
}

func TestGetStats(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticles(t, repo)

	w := doGet(t, server, "/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Articles int            `json:"articles"`
		Sources  map[string]int `json:"sources"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Articles != 3 {
		t.Errorf("Expected 3 articles in stats, got %d", resp.Articles)
	}
	if resp.Sources["Energy Wire"] != 2 {
		t.Errorf("Expected 2 articles from Energy Wire, got %d", resp.Sources["Energy Wire"])
	}
}

func TestGetDashboard(t *testing.T) {
	server, repo := newTestServer(t)
	seedArticles(t, repo)

	w := doGet(t, server, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "PetroPulse") {
		t.Error("Dashboard should carry the application title")
	}
	if !strings.Contains(body, "Hydrogen investment surges") {
		t.Error("Dashboard should list seeded articles")
	}
	if !strings.Contains(body, "Daily sentiment index") {
		t.Error("Dashboard should render the sentiment section")
	}
}

func TestGetDashboard_Empty(t *testing.T) {
	server, _ := newTestServer(t)

	w := doGet(t, server, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on empty database, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Nothing ingested yet") {
		t.Error("Empty dashboard should show the empty state")
	}
}

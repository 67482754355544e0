package api

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petropulse/petropulse/app/analysis"
	"github.com/petropulse/petropulse/app/cfg"
	"github.com/petropulse/petropulse/app/database"
)

const dateLayout = "2006-01-02"

func NewHandler(repo database.ArticleRepository) *Handler {
	return &Handler{repo: repo}
}

// parseFilter builds an article filter from the request query. Dates
// are YYYY-MM-DD; both bounds cover their whole day.
func parseFilter(c *gin.Context) (database.ArticleFilter, error) {
	var filter database.ArticleFilter

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return filter, fmt.Errorf("invalid 'from' date %q, expected YYYY-MM-DD", from)
		}
		filter.From = &t
	}

	if to := c.Query("to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return filter, fmt.Errorf("invalid 'to' date %q, expected YYYY-MM-DD", to)
		}
		endOfDay := t.Add(24*time.Hour - time.Second)
		filter.To = &endOfDay
	}

	for _, source := range c.QueryArray("source") {
		if source = strings.TrimSpace(source); source != "" {
			filter.Sources = append(filter.Sources, source)
		}
	}

	filter.Topic = strings.TrimSpace(c.Query("topic"))
	filter.Entity = strings.TrimSpace(c.Query("entity"))

	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid 'limit' value %q", limit)
		}
		filter.Limit = n
	}

	return filter, nil
}

func toArticleResponse(article database.Article) ArticleResponse {
	topics := article.Topics
	if topics == nil {
		topics = []string{}
	}
	entities := article.Entities
	if entities.Orgs == nil {
		entities.Orgs = []string{}
	}
	if entities.Gpes == nil {
		entities.Gpes = []string{}
	}
	return ArticleResponse{
		ID:             article.ID,
		Source:         article.Source,
		Title:          article.Title,
		Link:           article.Link,
		PublishedAt:    article.PublishedAt.UTC().Format(time.RFC3339),
		Topics:         topics,
		Entities:       entities,
		SentimentLabel: article.SentimentLabel,
		SentimentScore: article.SentimentScore,
	}
}

func (h *Handler) APIGetArticles(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	articles, err := h.repo.GetArticles(filter)
	if err != nil {
		slog.Error("Database error", "operation", "get_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	out := make([]ArticleResponse, 0, len(articles))
	for _, article := range articles {
		out = append(out, toArticleResponse(article))
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": out,
		"total":    len(out),
	})
}

func (h *Handler) APIExportArticlesCSV(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	articles, err := h.repo.GetArticles(filter)
	if err != nil {
		slog.Error("Database error", "operation", "export_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="articles.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"source", "title", "link", "published_at", "topics", "entities", "sentiment_label", "sentiment_score"})

	for _, article := range articles {
		w.Write([]string{
			article.Source,
			article.Title,
			article.Link,
			article.PublishedAt.UTC().Format(time.RFC3339),
			strings.Join(article.Topics, "; "),
			strings.Join(article.Entities.All(), "; "),
			article.SentimentLabel,
			strconv.FormatFloat(article.SentimentScore, 'f', 4, 64),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		slog.Error("CSV write error", "error", err)
	}
}

func (h *Handler) APIGetSources(c *gin.Context) {
	sources, err := h.repo.GetSources()
	if err != nil {
		slog.Error("Database error", "operation", "get_sources", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if sources == nil {
		sources = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

func (h *Handler) APIGetTopics(c *gin.Context) {
	topics, err := h.repo.GetTopics()
	if err != nil {
		slog.Error("Database error", "operation", "get_topics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if topics == nil {
		topics = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (h *Handler) APIGetEntities(c *gin.Context) {
	entities, err := h.repo.GetEntities()
	if err != nil {
		slog.Error("Database error", "operation", "get_entities", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if entities == nil {
		entities = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"entities": entities})
}

func (h *Handler) APIGetSentimentIndex(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := h.repo.GetSentimentIndex(filter)
	if err != nil {
		slog.Error("Database error", "operation", "get_sentiment_index", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	out := make([]SentimentPointResponse, 0, len(points))
	for _, point := range points {
		out = append(out, SentimentPointResponse{
			Date:     point.Date,
			Score:    point.Score,
			Articles: point.Articles,
		})
	}

	c.JSON(http.StatusOK, gin.H{"sentiment": out})
}

func (h *Handler) APIGetTopTerms(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	termLimit := 25
	if limit := c.Query("terms"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid 'terms' value %q", limit)})
			return
		}
		termLimit = n
	}

	articles, err := h.repo.GetArticles(filter)
	if err != nil {
		slog.Error("Database error", "operation", "get_terms", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	titles := make([]string, 0, len(articles))
	for _, article := range articles {
		titles = append(titles, article.Title)
	}

	terms := analysis.TopTerms(titles, termLimit)
	out := make([]TermResponse, 0, len(terms))
	for _, term := range terms {
		out = append(out, TermResponse{Word: term.Word, Count: term.Count})
	}

	c.JSON(http.StatusOK, gin.H{"terms": out})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.repo.GetArticleCount(); err == nil {
		health["articles"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"version": cfg.GetVersion(),
	}

	if count, err := h.repo.GetArticleCount(); err == nil {
		stats["articles"] = count
	}
	if counts, err := h.repo.GetSourceCounts(); err == nil {
		stats["sources"] = counts
	}
	if oldest, newest, err := h.repo.GetDateRange(); err == nil && oldest != nil {
		stats["oldest_article"] = oldest.UTC().Format(time.RFC3339)
		stats["newest_article"] = newest.UTC().Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, stats)
}

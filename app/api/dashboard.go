package api

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petropulse/petropulse/app/analysis"
	"github.com/petropulse/petropulse/app/cfg"
	"github.com/petropulse/petropulse/app/database"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

const dashboardTableLimit = 50

func dashboardTemplate() *template.Template {
	funcs := template.FuncMap{
		"score": func(v float64) string {
			return fmt.Sprintf("%+.3f", v)
		},
		// Bar width in pixels for a compound score in [-1, 1]
		"mulwidth": func(v float64) float64 {
			if v < 0 {
				v = -v
			}
			return 2 + v*120
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/dashboard.html"))
}

type dashboardArticle struct {
	Source         string
	Title          string
	Link           string
	Published      string
	Topics         []string
	SentimentLabel string
	SentimentScore float64
}

type dashboardData struct {
	Version string

	From   string
	To     string
	Source string
	Topic  string
	Entity string

	Sources  []string
	Topics   []string
	Entities []string

	TotalArticles int
	SourceCount   int
	AvgSentiment  float64
	PositiveShare float64

	Sentiment []database.SentimentPoint
	Terms     []analysis.Term
	Articles  []dashboardArticle

	ExportQuery template.URL
}

func (h *Handler) GetDashboard(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	filter.Limit = 0

	articles, err := h.repo.GetArticles(filter)
	if err != nil {
		slog.Error("Database error", "operation", "dashboard_articles", "error", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	sources, err := h.repo.GetSources()
	if err != nil {
		slog.Error("Database error", "operation", "dashboard_sources", "error", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	topics, err := h.repo.GetTopics()
	if err != nil {
		slog.Error("Database error", "operation", "dashboard_topics", "error", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	entities, err := h.repo.GetEntities()
	if err != nil {
		slog.Error("Database error", "operation", "dashboard_entities", "error", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	sentiment, err := h.repo.GetSentimentIndex(filter)
	if err != nil {
		slog.Error("Database error", "operation", "dashboard_sentiment", "error", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	data := dashboardData{
		Version:     cfg.GetVersion(),
		From:        c.Query("from"),
		To:          c.Query("to"),
		Source:      c.Query("source"),
		Topic:       c.Query("topic"),
		Entity:      c.Query("entity"),
		Sources:     sources,
		Topics:      topics,
		Entities:    entities,
		Sentiment:   sentiment,
		ExportQuery: template.URL(c.Request.URL.RawQuery),
	}

	data.TotalArticles = len(articles)

	bySource := make(map[string]bool)
	positive := 0
	var scoreSum float64
	titles := make([]string, 0, len(articles))

	for _, article := range articles {
		bySource[article.Source] = true
		scoreSum += article.SentimentScore
		if article.SentimentLabel == analysis.LabelPositive {
			positive++
		}
		titles = append(titles, article.Title)
	}

	data.SourceCount = len(bySource)
	if len(articles) > 0 {
		data.AvgSentiment = scoreSum / float64(len(articles))
		data.PositiveShare = 100 * float64(positive) / float64(len(articles))
	}

	data.Terms = analysis.TopTerms(titles, 20)

	shown := articles
	if len(shown) > dashboardTableLimit {
		shown = shown[:dashboardTableLimit]
	}
	for _, article := range shown {
		data.Articles = append(data.Articles, dashboardArticle{
			Source:         article.Source,
			Title:          article.Title,
			Link:           article.Link,
			Published:      article.PublishedAt.UTC().Format("2006-01-02 15:04"),
			Topics:         article.Topics,
			SentimentLabel: article.SentimentLabel,
			SentimentScore: article.SentimentScore,
		})
	}

	c.HTML(http.StatusOK, "dashboard.html", data)
}

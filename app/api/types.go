package api

import (
	"github.com/petropulse/petropulse/app/database"
)

type Handler struct {
	repo database.ArticleRepository
}

// ArticleResponse is the JSON shape of one article.
type ArticleResponse struct {
	ID             int64             `json:"id"`
	Source         string            `json:"source"`
	Title          string            `json:"title"`
	Link           string            `json:"link"`
	PublishedAt    string            `json:"published_at"`
	Topics         []string          `json:"topics"`
	Entities       database.Entities `json:"entities"`
	SentimentLabel string            `json:"sentiment_label"`
	SentimentScore float64           `json:"sentiment_score"`
}

type SentimentPointResponse struct {
	Date     string  `json:"date"`
	Score    float64 `json:"score"`
	Articles int     `json:"articles"`
}

type TermResponse struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

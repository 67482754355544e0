package database

import (
	"time"
)

// ArticleFilter narrows article queries. Nil time bounds and empty
// slices mean "no restriction". Both time bounds are inclusive.
type ArticleFilter struct {
	From    *time.Time
	To      *time.Time
	Sources []string
	Topic   string
	Entity  string // matches either an organization or a GPE mention
	Limit   int
}

// SentimentPoint is one day of the aggregate sentiment index.
type SentimentPoint struct {
	Date     string  // YYYY-MM-DD
	Score    float64 // average compound score for the day
	Articles int
}

type ArticleRepository interface {
	InsertArticle(article Article) (bool, error)
	HasLink(link string) (bool, error)

	GetArticles(filter ArticleFilter) ([]Article, error)
	GetArticleCount() (int, error)
	GetSources() ([]string, error)
	GetTopics() ([]string, error)
	GetEntities() ([]string, error)
	GetSourceCounts() (map[string]int, error)
	GetDateRange() (*time.Time, *time.Time, error)
	GetSentimentIndex(filter ArticleFilter) ([]SentimentPoint, error)
}

package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

var _ ArticleRepository = (*SQLArticleRepository)(nil)

// SQLArticleRepository handles database operations for articles
type SQLArticleRepository struct {
	db *DB
}

func NewArticleRepository(db *DB) *SQLArticleRepository {
	return &SQLArticleRepository{db: db}
}

// Timestamps are stored as RFC3339 UTC text so that range comparisons
// work lexicographically and day grouping is a substring operation.
const timeLayout = time.RFC3339

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// Rows written by SQLite defaults use datetime('now') format
		t, err = time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	}
	return t, err
}

// InsertArticle stores an article. Returns false when a row with the
// same link already exists; the existing row is left untouched.
func (r *SQLArticleRepository) InsertArticle(article Article) (bool, error) {
	topics, err := json.Marshal(article.Topics)
	if err != nil {
		return false, fmt.Errorf("failed to encode topics: %w", err)
	}
	if article.Topics == nil {
		topics = []byte("[]")
	}

	entities, err := json.Marshal(article.Entities)
	if err != nil {
		return false, fmt.Errorf("failed to encode entities: %w", err)
	}

	createdAt := article.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := r.db.Exec(`
		INSERT INTO articles (
			source, title, link, published_at, content,
			topics, entities, sentiment_label, sentiment_score, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(link) DO NOTHING
	`, article.Source, article.Title, article.Link, encodeTime(article.PublishedAt),
		article.Content, string(topics), string(entities), article.SentimentLabel,
		article.SentimentScore, encodeTime(createdAt))

	if err != nil {
		return false, fmt.Errorf("failed to insert article: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}

// HasLink reports whether an article with the given link is already stored
func (r *SQLArticleRepository) HasLink(link string) (bool, error) {
	var id int64
	err := r.db.QueryRow("SELECT id FROM articles WHERE link = ? LIMIT 1", link).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check link: %w", err)
	}
	return true, nil
}

func buildFilter(filter ArticleFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.From != nil {
		clauses = append(clauses, "published_at >= ?")
		args = append(args, encodeTime(*filter.From))
	}
	if filter.To != nil {
		clauses = append(clauses, "published_at <= ?")
		args = append(args, encodeTime(*filter.To))
	}
	if len(filter.Sources) > 0 {
		placeholders := strings.Repeat("?,", len(filter.Sources))
		clauses = append(clauses, fmt.Sprintf("source IN (%s)", placeholders[:len(placeholders)-1]))
		for _, s := range filter.Sources {
			args = append(args, s)
		}
	}
	if filter.Topic != "" {
		// Topics are a JSON string array; matching the quoted value
		// finds exact topic membership.
		quoted, _ := json.Marshal(filter.Topic)
		clauses = append(clauses, "topics LIKE ?")
		args = append(args, "%"+string(quoted)+"%")
	}
	if filter.Entity != "" {
		// Same quoted-value match over the entities JSON object,
		// covering both the org and gpe lists.
		quoted, _ := json.Marshal(filter.Entity)
		clauses = append(clauses, "entities LIKE ?")
		args = append(args, "%"+string(quoted)+"%")
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// GetArticles returns articles matching the filter, newest first
func (r *SQLArticleRepository) GetArticles(filter ArticleFilter) ([]Article, error) {
	where, args := buildFilter(filter)

	query := `
		SELECT id, source, title, link, published_at, COALESCE(content, ''),
		       topics, COALESCE(entities, '{}'), sentiment_label, sentiment_score, created_at
		FROM articles` + where + `
		ORDER BY published_at DESC`

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

func scanArticle(rows *sql.Rows) (Article, error) {
	var article Article
	var publishedAt, createdAt, topics, entities string

	err := rows.Scan(&article.ID, &article.Source, &article.Title, &article.Link,
		&publishedAt, &article.Content, &topics, &entities,
		&article.SentimentLabel, &article.SentimentScore, &createdAt)
	if err != nil {
		return article, fmt.Errorf("failed to scan article row: %w", err)
	}

	if article.PublishedAt, err = decodeTime(publishedAt); err != nil {
		return article, fmt.Errorf("failed to parse published_at: %w", err)
	}
	if article.CreatedAt, err = decodeTime(createdAt); err != nil {
		return article, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(topics), &article.Topics); err != nil {
		return article, fmt.Errorf("failed to decode topics: %w", err)
	}
	if err := json.Unmarshal([]byte(entities), &article.Entities); err != nil {
		return article, fmt.Errorf("failed to decode entities: %w", err)
	}

	return article, nil
}

// GetArticleCount returns the total number of stored articles
func (r *SQLArticleRepository) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

// GetSources returns the distinct article sources, sorted
func (r *SQLArticleRepository) GetSources() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT source FROM articles ORDER BY source")
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		out = append(out, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source rows: %w", err)
	}

	return out, nil
}

// GetTopics returns the distinct topics attached to stored articles, sorted
func (r *SQLArticleRepository) GetTopics() ([]string, error) {
	rows, err := r.db.Query("SELECT topics FROM articles")
	if err != nil {
		return nil, fmt.Errorf("failed to get topics: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan topics row: %w", err)
		}

		var topics []string
		if err := json.Unmarshal([]byte(raw), &topics); err != nil {
			return nil, fmt.Errorf("failed to decode topics: %w", err)
		}
		for _, topic := range topics {
			seen[topic] = true
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating topics rows: %w", err)
	}

	out := make([]string, 0, len(seen))
	for topic := range seen {
		out = append(out, topic)
	}
	sort.Strings(out)

	return out, nil
}

// GetEntities returns every distinct entity mention (organizations and
// GPEs flattened), sorted
func (r *SQLArticleRepository) GetEntities() ([]string, error) {
	rows, err := r.db.Query("SELECT entities FROM articles")
	if err != nil {
		return nil, fmt.Errorf("failed to get entities: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan entities row: %w", err)
		}

		var entities Entities
		if err := json.Unmarshal([]byte(raw), &entities); err != nil {
			return nil, fmt.Errorf("failed to decode entities: %w", err)
		}
		for _, name := range entities.All() {
			seen[name] = true
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entities rows: %w", err)
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)

	return out, nil
}

// GetSourceCounts returns the article count per source
func (r *SQLArticleRepository) GetSourceCounts() (map[string]int, error) {
	rows, err := r.db.Query("SELECT source, COUNT(*) FROM articles GROUP BY source")
	if err != nil {
		return nil, fmt.Errorf("failed to get source counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("failed to scan source count row: %w", err)
		}
		counts[source] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source count rows: %w", err)
	}

	return counts, nil
}

// GetDateRange returns the oldest and newest published dates, or nils
// when the table is empty
func (r *SQLArticleRepository) GetDateRange() (*time.Time, *time.Time, error) {
	var minStr, maxStr sql.NullString
	err := r.db.QueryRow("SELECT MIN(published_at), MAX(published_at) FROM articles").Scan(&minStr, &maxStr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get date range: %w", err)
	}

	if !minStr.Valid || !maxStr.Valid {
		return nil, nil, nil
	}

	oldest, err := decodeTime(minStr.String)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse oldest date: %w", err)
	}
	newest, err := decodeTime(maxStr.String)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse newest date: %w", err)
	}

	return &oldest, &newest, nil
}

// GetSentimentIndex returns the average sentiment score per day for
// articles matching the filter, oldest day first
func (r *SQLArticleRepository) GetSentimentIndex(filter ArticleFilter) ([]SentimentPoint, error) {
	where, args := buildFilter(filter)

	rows, err := r.db.Query(`
		SELECT substr(published_at, 1, 10) AS day,
		       AVG(sentiment_score),
		       COUNT(*)
		FROM articles`+where+`
		GROUP BY day
		ORDER BY day
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get sentiment index: %w", err)
	}
	defer rows.Close()

	var points []SentimentPoint
	for rows.Next() {
		var point SentimentPoint
		if err := rows.Scan(&point.Date, &point.Score, &point.Articles); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment row: %w", err)
		}
		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sentiment rows: %w", err)
	}

	return points, nil
}

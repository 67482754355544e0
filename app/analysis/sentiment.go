package analysis

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Sentiment labels stored with every article.
const (
	LabelPositive = "Positive"
	LabelNeutral  = "Neutral"
	LabelNegative = "Negative"
)

// VADER convention: compound scores within (-0.05, 0.05) are neutral.
const neutralThreshold = 0.05

// SentimentScorer computes a polarity label and compound score per
// article using the VADER lexicon.
type SentimentScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Score returns the sentiment label and compound score in [-1, 1].
// Empty text is Neutral with score 0.
func (s *SentimentScorer) Score(text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return LabelNeutral, 0
	}

	compound := s.analyzer.PolarityScores(text).Compound
	return Label(compound), compound
}

// Label maps a compound score to its polarity label.
func Label(compound float64) string {
	switch {
	case compound >= neutralThreshold:
		return LabelPositive
	case compound <= -neutralThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

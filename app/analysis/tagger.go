package analysis

import (
	"strings"
)

// Tagger attaches topics from the static vocabulary to article text.
type Tagger struct {
	topics   []string
	lowered  []string
	keywords []string
}

func NewTagger() *Tagger {
	lowered := make([]string, len(TopicList))
	for i, topic := range TopicList {
		lowered[i] = strings.ToLower(topic)
	}
	return &Tagger{
		topics:   TopicList,
		lowered:  lowered,
		keywords: EnergyKeywords,
	}
}

// Run returns every topic whose name occurs in the text. The match is
// a case-insensitive substring check; an article can carry zero tags.
func (t *Tagger) Run(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)

	var tags []string
	for i, needle := range t.lowered {
		if strings.Contains(lower, needle) {
			tags = append(tags, t.topics[i])
		}
	}
	return tags
}

// IsEnergyRelated reports whether the text mentions any configured
// energy keyword. Articles failing this gate are not stored.
func (t *Tagger) IsEnergyRelated(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range t.keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

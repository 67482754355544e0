package sources

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed feeds.yml
var defaultFeeds []byte

// Load returns the feed source list. With an empty path the built-in
// list is used; otherwise the given YAML file is read.
func Load(path string) (*List, error) {
	data := defaultFeeds
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read feeds file: %w", err)
		}
	}

	var list List
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse feeds YAML: %w", err)
	}

	if err := validate(&list); err != nil {
		return nil, err
	}

	return &list, nil
}

func validate(list *List) error {
	if len(list.Groups) == 0 {
		return fmt.Errorf("feed list has no groups")
	}

	seen := make(map[string]bool)
	for _, group := range list.Groups {
		if group.Name == "" {
			return fmt.Errorf("feed group without a name")
		}
		for _, url := range group.Feeds {
			if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
				return fmt.Errorf("invalid feed URL in group %q: %s", group.Name, url)
			}
			if seen[url] {
				return fmt.Errorf("duplicate feed URL: %s", url)
			}
			seen[url] = true
		}
	}

	return nil
}

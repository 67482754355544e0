package sources

// List is the full set of configured feed sources, grouped by category.
type List struct {
	Groups []Group `yaml:"groups"`
}

// Group is a named category of feed URLs (wires, industry press, company
// newsrooms and so on). Groups exist for the config file's readability;
// ingestion flattens them.
type Group struct {
	Name  string   `yaml:"name"`
	Feeds []string `yaml:"feeds"`
}

// URLs returns every feed URL across all groups, in file order.
func (l *List) URLs() []string {
	var urls []string
	for _, g := range l.Groups {
		urls = append(urls, g.Feeds...)
	}
	return urls
}

// Count returns the total number of configured feeds.
func (l *List) Count() int {
	n := 0
	for _, g := range l.Groups {
		n += len(g.Feeds)
	}
	return n
}

package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/petropulse/petropulse/app/ingest"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("23")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	storedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("35"))

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// RenderSummary formats the result of one ingestion pass for the terminal.
func RenderSummary(stats *ingest.Stats, feedCount int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("PetroPulse ingestion"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Feeds", fmt.Sprintf("%d", feedCount)},
		{"Fetched", fmt.Sprintf("%d", stats.Fetched)},
		{"Stale", fmt.Sprintf("%d", stats.Stale)},
		{"Duplicates", fmt.Sprintf("%d", stats.Duplicates)},
		{"Irrelevant", fmt.Sprintf("%d", stats.Irrelevant)},
		{"Duration", stats.Duration.Round(time.Millisecond).String()},
	}
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(valueStyle.Render(row.value))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Stored"))
	b.WriteString(storedStyle.Render(fmt.Sprintf("%d", stats.Stored)))
	b.WriteString("\n")

	if len(stats.BySource) > 0 {
		b.WriteString("\n")

		names := make([]string, 0, len(stats.BySource))
		for name := range stats.BySource {
			names = append(names, name)
		}
		sort.Strings(names)

		var lines []string
		for _, name := range names {
			lines = append(lines, fmt.Sprintf("%s  %d", sourceStyle.Render(name), stats.BySource[name]))
		}
		b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	return b.String()
}

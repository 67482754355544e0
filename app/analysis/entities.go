package analysis

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// orgLexicon names the companies, agencies and bodies that dominate
// energy coverage. Prose's stock model only labels PERSON and GPE, so
// organizations are matched against this list instead.
var orgLexicon = []string{
	// Agencies & bodies
	"OPEC", "OPEC+", "IEA", "EIA", "FERC", "DOE", "EPA", "NOAA",
	"European Commission", "International Energy Agency",
	// Supermajors & NOCs
	"ExxonMobil", "Exxon Mobil", "Chevron", "Shell", "BP", "TotalEnergies",
	"Eni", "Equinor", "ConocoPhillips", "Saudi Aramco", "Aramco",
	"QatarEnergy", "ADNOC", "Petrobras", "Gazprom", "Rosneft", "PetroChina",
	"Sinopec", "CNOOC", "Pemex",
	// Midstream & LNG
	"Enbridge", "Williams", "Kinder Morgan", "TC Energy", "Cheniere",
	"Venture Global", "Energy Transfer", "Enterprise Products",
	// Services & equipment
	"SLB", "Schlumberger", "Halliburton", "Baker Hughes", "Wood Group",
	"Saipem", "TechnipFMC", "Subsea 7",
	// Utilities & renewables
	"NextEra", "Iberdrola", "Orsted", "Vestas", "Siemens Energy",
	"GE Vernova", "Duke Energy", "Dominion Energy",
}

// EntityExtractor pulls organization and geopolitical mentions out of
// article text. GPE mentions come from prose's named-entity model;
// organizations from the curated lexicon above.
type EntityExtractor struct {
	orgs    []string
	lowered []string
}

func NewEntityExtractor() *EntityExtractor {
	lowered := make([]string, len(orgLexicon))
	for i, org := range orgLexicon {
		lowered[i] = strings.ToLower(org)
	}
	return &EntityExtractor{orgs: orgLexicon, lowered: lowered}
}

// Run returns the unique organization and GPE mentions in the title and
// text, order of first appearance preserved.
func (e *EntityExtractor) Run(title, text string) (orgs []string, gpes []string) {
	combined := strings.TrimSpace(title + "\n" + text)
	if combined == "" {
		return nil, nil
	}

	lower := strings.ToLower(combined)
	for i, needle := range e.lowered {
		if containsWord(lower, needle) {
			orgs = append(orgs, e.orgs[i])
		}
	}
	orgs = uniqueFold(orgs)

	doc, err := prose.NewDocument(combined)
	if err != nil {
		// Model failure degrades to lexicon-only entities
		return orgs, nil
	}

	for _, ent := range doc.Entities() {
		if ent.Label != "GPE" {
			continue
		}
		if name := strings.TrimSpace(ent.Text); name != "" {
			gpes = append(gpes, name)
		}
	}

	return orgs, uniqueFold(gpes)
}

// containsWord reports whether needle occurs in s on word boundaries,
// so "Eni" does not match inside "denied".
func containsWord(s, needle string) bool {
	for start := 0; ; {
		idx := strings.Index(s[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start

		before := idx == 0 || isBoundary(s[idx-1])
		end := idx + len(needle)
		after := end == len(s) || isBoundary(s[end])
		if before && after {
			return true
		}
		start = idx + 1
	}
}

func isBoundary(b byte) bool {
	return !(b >= 'a' && b <= 'z') && !(b >= '0' && b <= '9')
}

// uniqueFold deduplicates case-insensitively, keeping first occurrences.
func uniqueFold(names []string) []string {
	if len(names) < 2 {
		return names
	}
	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, name := range names {
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

package scraper

import (
	"regexp"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

var xmlEncodingRe = regexp.MustCompile(`(?i)(<\?xml[^>]*encoding=["'])([^"']+)(["'])`)

// normalizeCharset converts feed bytes declared in a non-UTF-8 encoding
// (a handful of industry feeds still ship ISO-8859-1 or Windows-1252)
// to UTF-8 before parsing. Unknown encodings are passed through as-is.
func normalizeCharset(data []byte) []byte {
	match := xmlEncodingRe.FindSubmatch(data)
	if match == nil {
		return data
	}

	name := strings.ToLower(string(match[2]))
	if name == "utf-8" || name == "utf8" {
		return data
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return data
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}

	// Only the encoding value is rewritten; version, standalone and the
	// rest of the declaration pass through untouched.
	return xmlEncodingRe.ReplaceAll(decoded, []byte(`${1}UTF-8${3}`))
}

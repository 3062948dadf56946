package citations

import (
	"strings"

	"github.com/ternarybob/dirigo/internal/models"
	"github.com/ternarybob/dirigo/internal/services/classifier"
)

const (
	// boilerplateMarker appears on filler pages in scanned directives
	boilerplateMarker = "This page intentionally left blank"

	// excerptLength bounds the displayed snippet
	excerptLength = 200

	// minExcerptLength drops excerpts too short to be a useful citation
	minExcerptLength = 20
)

// Build turns raw retrieval passages into a deduplicated, filtered,
// human-readable citation list. Passages are processed in the order
// delivered by the index (relevance-ranked, highest first) and output
// ordering is acceptance order.
//
// A passage is dropped when its text is blank, contains the blank-page
// boilerplate marker, or trims to an excerpt shorter than 20 characters.
// Passages whose filename cannot produce a canonical URL are kept with a
// degraded placeholder URL. Once a URL has been emitted, later passages
// mapping to the same URL are skipped even if their excerpt differs.
func Build(passages []models.RetrievalPassage, limit int) []models.Citation {
	citations := make([]models.Citation, 0, limit)
	seen := make(map[string]bool)

	for _, passage := range passages {
		if len(citations) >= limit {
			break
		}

		if strings.TrimSpace(passage.Text) == "" {
			continue
		}
		if strings.Contains(passage.Text, boilerplateMarker) {
			continue
		}

		excerpt := Excerpt(passage.Text)
		if len(excerpt) < minExcerptLength {
			continue
		}

		sourceURL, _ := classifier.DeriveSourceURL(passage.SourceFilename)
		if seen[sourceURL] {
			continue
		}
		seen[sourceURL] = true

		citations = append(citations, models.Citation{
			Excerpt:        excerpt,
			SourceURL:      sourceURL,
			SourceFilename: passage.SourceFilename,
		})
	}

	return citations
}

// Excerpt returns the first 200 characters of a passage, trimmed
func Excerpt(text string) string {
	if len(text) > excerptLength {
		text = text[:excerptLength]
	}
	return strings.TrimSpace(text)
}

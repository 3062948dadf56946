package index

import (
	"strings"
)

// minChunkSize is the threshold below which a paragraph is merged with its
// neighbor rather than indexed on its own. Very short passages embed poorly
// and dilute retrieval quality.
const minChunkSize = 200

// chunkText splits document text into retrieval passages. Paragraphs are the
// unit of splitting; adjacent small paragraphs are merged until maxChunkSize
// is reached, and a single oversize paragraph is hard-split at maxChunkSize
// boundaries.
func chunkText(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1200
	}

	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	var current strings.Builder

	flush := func() {
		chunk := strings.TrimSpace(current.String())
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		// Hard-split paragraphs that exceed the chunk size on their own
		if len(para) > maxChunkSize {
			flush()
			for len(para) > maxChunkSize {
				cut := splitPoint(para, maxChunkSize)
				chunks = append(chunks, strings.TrimSpace(para[:cut]))
				para = strings.TrimSpace(para[cut:])
			}
			if para != "" {
				current.WriteString(para)
			}
			continue
		}

		if current.Len() > 0 && current.Len()+len(para)+2 > maxChunkSize {
			if current.Len() >= minChunkSize {
				flush()
			} else {
				// Undersized buffer: keep merging even past the limit
				// rather than emit a fragment
				current.WriteString("\n\n")
				current.WriteString(para)
				flush()
				continue
			}
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}

// splitPoint finds a break position at or before limit, preferring a
// sentence end, then any whitespace, then the hard limit.
func splitPoint(text string, limit int) int {
	if len(text) <= limit {
		return len(text)
	}

	window := text[:limit]
	if idx := strings.LastIndexAny(window, ".!?"); idx > limit/2 {
		return idx + 1
	}
	if idx := strings.LastIndexAny(window, " \t\n"); idx > limit/2 {
		return idx + 1
	}
	return limit
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/dirigo/internal/interfaces"
	"github.com/ternarybob/dirigo/internal/models"
)

// formatAnswer formats a chat response as markdown
func formatAnswer(resp *interfaces.ChatResponse) string {
	var sb strings.Builder
	sb.WriteString(resp.Answer)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("_Scoped to: %s_\n", resp.Region))
	if resp.LowCoverage {
		sb.WriteString("_Note: no regional supplementals were found; the answer draws on national directives only._\n")
	}
	return sb.String()
}

// formatPassages formats retrieval results as markdown
func formatPassages(query, region string, passages []models.RetrievalPassage) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Passages for \"%s\" in %s (%d results)\n\n", query, region, len(passages)))

	if len(passages) == 0 {
		sb.WriteString("No passages found.\n")
		return sb.String()
	}

	for i, p := range passages {
		sb.WriteString(fmt.Sprintf("### %d. %s (score %.3f)\n", i+1, p.SourceFilename, p.Score))
		sb.WriteString(p.Text)
		sb.WriteString("\n\n---\n\n")
	}

	return sb.String()
}

// formatDirective formats a single directive as markdown
func formatDirective(d *models.Directive) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", d.Title))
	sb.WriteString(fmt.Sprintf("**Filename:** %s\n", d.Filename))
	sb.WriteString(fmt.Sprintf("**Series:** %s\n", d.Series))
	sb.WriteString(fmt.Sprintf("**Scope:** %s\n", d.Scope))
	if d.SourceURL != "" {
		sb.WriteString(fmt.Sprintf("**URL:** %s\n", d.SourceURL))
	}
	sb.WriteString(fmt.Sprintf("**Fetched:** %s\n\n", d.FetchedAt.Format(time.RFC3339)))

	sb.WriteString("## Content\n\n")
	content := d.Content
	if len(content) > 4000 {
		content = content[:4000] + "..."
	}
	sb.WriteString(content)
	sb.WriteString("\n")

	return sb.String()
}

// formatDirectiveList formats a directive list as markdown
func formatDirectiveList(scopeFilter string, directives []*models.Directive) string {
	var sb strings.Builder
	if scopeFilter != "" {
		sb.WriteString(fmt.Sprintf("## Directives in scope %q (%d)\n\n", scopeFilter, len(directives)))
	} else {
		sb.WriteString(fmt.Sprintf("## Directives (%d)\n\n", len(directives)))
	}

	if len(directives) == 0 {
		sb.WriteString("No directives stored.\n")
		return sb.String()
	}

	for i, d := range directives {
		sb.WriteString(fmt.Sprintf("%d. **%s** (series %s, %s)\n", i+1, d.Filename, d.Series, d.Scope))
		if d.SourceURL != "" {
			sb.WriteString(fmt.Sprintf("   URL: %s\n", d.SourceURL))
		}
	}

	return sb.String()
}

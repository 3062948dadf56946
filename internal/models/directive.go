package models

import (
	"time"
)

// ScopeNational is the classification tag for nationally scoped directives.
// Regional supplementals carry their region's display name instead.
const ScopeNational = "National"

// Directive represents one regulatory PDF document from the directives corpus.
// Scope is derived once at load time and is immutable afterwards.
type Directive struct {
	// Identity
	ID       string `json:"id"`       // dir_{uuid}
	Filename string `json:"filename"` // Original PDF basename, e.g. pd02001003curr.pdf
	Path     string `json:"path"`     // Path relative to the directives store root

	// Content
	Title   string `json:"title"`
	Content string `json:"content"` // Full extracted text

	// Classification
	Series      string `json:"series"`       // 3-digit series code extracted from the filename; "" when unknown
	Scope       string `json:"scope"`        // ScopeNational, a region display name, or "" for ungrouped
	Office      string `json:"office"`       // Specific suboffice when classification is office-level
	IsAuthority bool   `json:"is_authority"` // The designated classification authority directive

	// Source
	SourceURL string `json:"url"` // Canonical public URL, derived from filename conventions

	// Timestamps
	FetchedAt time.Time `json:"fetched_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsNational reports whether the directive is nationally scoped
func (d *Directive) IsNational() bool {
	return d.Scope == ScopeNational
}

// RetrievalPassage is a transient unit returned by a retrieval index query.
// It is never persisted.
type RetrievalPassage struct {
	Text           string  `json:"text"`
	SourceFilename string  `json:"source_filename"`
	Score          float64 `json:"score"`
}

// Citation is a display-only reference derived from a retrieval passage.
// Created per user query and discarded after the response is rendered.
type Citation struct {
	Excerpt        string `json:"excerpt"` // Bounded-length snippet of the passage text
	SourceURL      string `json:"source_url"`
	SourceFilename string `json:"source_filename"`
}

// DirectiveStats represents statistics about the stored corpus
type DirectiveStats struct {
	TotalDirectives    int            `json:"total_directives"`
	NationalDirectives int            `json:"national_directives"`
	DirectivesByScope  map[string]int `json:"directives_by_scope"`
	LastUpdated        time.Time      `json:"last_updated"`
}

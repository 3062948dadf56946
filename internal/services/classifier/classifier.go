package classifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dirigo/internal/models"
)

// RawDocument is a loaded but not yet classified document
type RawDocument struct {
	Path      string // Path relative to the directives store root
	Filename  string // Basename
	Title     string
	Content   string
	FetchedAt time.Time
}

// Service derives organizational metadata for loaded documents from filename
// and path conventions. Classification happens once at load time; directives
// are never reclassified mid-session.
type Service struct {
	catalog           *models.Catalog
	authorityFilename string
	logger            arbor.ILogger
}

// NewService creates a classifier for the given catalog. authorityFilename
// names the single designated directive whose content defines the official
// series/region mapping rules.
func NewService(catalog *models.Catalog, authorityFilename string, logger arbor.ILogger) *Service {
	return &Service{
		catalog:           catalog,
		authorityFilename: strings.ToLower(authorityFilename),
		logger:            logger,
	}
}

// Classify derives scope for each raw document. The classification authority
// document is marked distinctly; its absence degrades quality, not
// availability, and is surfaced as a non-fatal warning.
func (s *Service) Classify(raw []RawDocument) []*models.Directive {
	directives := make([]*models.Directive, 0, len(raw))
	authoritySeen := false

	for _, doc := range raw {
		directive := &models.Directive{
			ID:        "dir_" + uuid.New().String(),
			Filename:  doc.Filename,
			Path:      doc.Path,
			Title:     doc.Title,
			Content:   doc.Content,
			FetchedAt: doc.FetchedAt,
		}

		info := ParseFilename(doc.Filename)
		if info.Valid {
			directive.Series = info.Series
		}
		directive.SourceURL, _ = DeriveSourceURL(doc.Filename)

		if strings.ToLower(doc.Filename) == s.authorityFilename {
			directive.IsAuthority = true
			authoritySeen = true
		}

		directive.Scope = s.deriveScope(doc.Path, info)

		if directive.Scope == "" {
			// Ungrouped documents are never silently dropped; they are simply
			// excluded from every region's filtered set.
			s.logger.Debug().
				Str("filename", doc.Filename).
				Msg("Directive matches no known region and no national code, leaving ungrouped")
		}

		directives = append(directives, directive)
	}

	if !authoritySeen && s.authorityFilename != "" {
		s.logger.Warn().
			Str("authority_filename", s.authorityFilename).
			Msg("Classification authority directive not found, falling back to filename heuristics only")
	}

	s.logger.Info().
		Int("total", len(directives)).
		Msg("Classified directives")

	return directives
}

// deriveScope picks a scope for one document. Order: a region name appearing
// in the file path wins, then a parseable national filename, then ungrouped.
func (s *Service) deriveScope(docPath string, info FilenameInfo) string {
	lowerPath := strings.ToLower(docPath)
	for _, region := range s.catalog.RegionNames() {
		if strings.Contains(lowerPath, strings.ToLower(region)) {
			return region
		}
	}

	if info.Valid {
		return models.ScopeNational
	}

	return ""
}

// Describe reports the scope distribution for logging
func Describe(directives []*models.Directive) string {
	counts := make(map[string]int)
	for _, d := range directives {
		scope := d.Scope
		if scope == "" {
			scope = "ungrouped"
		}
		counts[scope]++
	}

	parts := make([]string, 0, len(counts))
	for scope, n := range counts {
		parts = append(parts, fmt.Sprintf("%s=%d", scope, n))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

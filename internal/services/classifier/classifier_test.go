package classifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dirigo/internal/models"
)

func newTestService(t *testing.T, authorityFilename string) *Service {
	t.Helper()
	catalog, err := models.DefaultCatalog()
	if err != nil {
		t.Fatalf("failed to load default catalog: %v", err)
	}
	logger := arbor.NewLogger()
	return NewService(catalog, authorityFilename, logger)
}

func TestClassifyScope(t *testing.T) {
	service := newTestService(t, "")

	tests := []struct {
		name      string
		path      string
		filename  string
		wantScope string
	}{
		{
			name:      "national filename",
			path:      "pd00501005curr.pdf",
			filename:  "pd00501005curr.pdf",
			wantScope: models.ScopeNational,
		},
		{
			name:      "region name in path wins over filename",
			path:      "Southern Region/pd00501005curr.pdf",
			filename:  "pd00501005curr.pdf",
			wantScope: "Southern Region",
		},
		{
			name:      "region match is case insensitive",
			path:      "western region/sup0001.pdf",
			filename:  "sup0001.pdf",
			wantScope: "Western Region",
		},
		{
			name:      "unparseable filename outside region stays ungrouped",
			path:      "misc/notes.pdf",
			filename:  "notes.pdf",
			wantScope: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directives := service.Classify([]RawDocument{{
				Path:      tt.path,
				Filename:  tt.filename,
				Title:     tt.filename,
				FetchedAt: time.Now(),
			}})

			assert.Len(t, directives, 1)
			assert.Equal(t, tt.wantScope, directives[0].Scope)
		})
	}
}

func TestClassifyFields(t *testing.T) {
	service := newTestService(t, "pd00101001curr.pdf")

	directives := service.Classify([]RawDocument{
		{Path: "pd00101001curr.pdf", Filename: "pd00101001curr.pdf", Title: "pd00101001curr"},
		{Path: "pd02001003curr.pdf", Filename: "pd02001003curr.pdf", Title: "pd02001003curr"},
	})

	assert.Len(t, directives, 2)

	authority := directives[0]
	assert.True(t, authority.IsAuthority)
	assert.Equal(t, "001", authority.Series)
	assert.Equal(t, "https://www.weather.gov/media/directives/001_pdfs/pd00101001curr.pdf", authority.SourceURL)
	assert.NotEmpty(t, authority.ID)

	other := directives[1]
	assert.False(t, other.IsAuthority)
	assert.Equal(t, "020", other.Series)
	assert.NotEqual(t, authority.ID, other.ID)
}

func TestClassifyAuthorityCaseInsensitive(t *testing.T) {
	service := newTestService(t, "pd00101001curr.pdf")

	directives := service.Classify([]RawDocument{
		{Path: "PD00101001CURR.PDF", Filename: "PD00101001CURR.PDF", Title: "authority"},
	})

	assert.Len(t, directives, 1)
	assert.True(t, directives[0].IsAuthority)
}

func TestDescribe(t *testing.T) {
	directives := []*models.Directive{
		{Scope: models.ScopeNational},
		{Scope: models.ScopeNational},
		{Scope: "Southern Region"},
		{Scope: ""},
	}

	assert.Equal(t, "National=2 Southern Region=1 ungrouped=1", Describe(directives))
	assert.Equal(t, "", Describe(nil))
}

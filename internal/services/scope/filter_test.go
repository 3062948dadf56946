package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/dirigo/internal/models"
)

func testCorpus() []*models.Directive {
	return []*models.Directive{
		{Filename: "a.pdf", Scope: models.ScopeNational},
		{Filename: "b.pdf", Scope: "Southern Region"},
		{Filename: "c.pdf", Scope: "Western Region"},
		{Filename: "d.pdf", Scope: models.ScopeNational},
		{Filename: "e.pdf", Scope: ""},
	}
}

func filenames(directives []*models.Directive) []string {
	names := make([]string, 0, len(directives))
	for _, d := range directives {
		names = append(names, d.Filename)
	}
	return names
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name            string
		region          string
		want            []string
		wantLowCoverage bool
	}{
		{
			name:            "region with supplementals",
			region:          "Southern Region",
			want:            []string{"a.pdf", "d.pdf", "b.pdf"},
			wantLowCoverage: false,
		},
		{
			name:            "region without supplementals",
			region:          "Alaska Region",
			want:            []string{"a.pdf", "d.pdf"},
			wantLowCoverage: true,
		},
		{
			name:            "empty region sees national only",
			region:          "",
			want:            []string{"a.pdf", "d.pdf"},
			wantLowCoverage: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, lowCoverage := Filter(testCorpus(), tt.region)
			assert.Equal(t, tt.want, filenames(filtered))
			assert.Equal(t, tt.wantLowCoverage, lowCoverage)
		})
	}
}

// Every region-filtered set contains every national directive.
func TestFilterNationalSuperset(t *testing.T) {
	corpus := testCorpus()
	for _, region := range []string{"Southern Region", "Western Region", "Pacific Region", ""} {
		filtered, _ := Filter(corpus, region)
		assert.GreaterOrEqual(t, len(filtered), 2, "region %q lost national directives", region)
		assert.Equal(t, "a.pdf", filtered[0].Filename)
		assert.Equal(t, "d.pdf", filtered[1].Filename)
	}
}

func TestFilterIdempotent(t *testing.T) {
	once, low1 := Filter(testCorpus(), "Southern Region")
	twice, low2 := Filter(once, "Southern Region")
	assert.Equal(t, filenames(once), filenames(twice))
	assert.Equal(t, low1, low2)
}

func TestResolve(t *testing.T) {
	catalog, err := models.DefaultCatalog()
	assert.NoError(t, err)

	tests := []struct {
		name       string
		selection  models.Selection
		wantRegion string
		wantErr    string
	}{
		{
			name:       "region only",
			selection:  models.Selection{Region: "Southern Region"},
			wantRegion: "Southern Region",
		},
		{
			name:       "office degrades to parent region",
			selection:  models.Selection{Office: "OUN"},
			wantRegion: "Southern Region",
		},
		{
			name:       "matching region and office",
			selection:  models.Selection{Region: "Southern Region", Office: "OUN"},
			wantRegion: "Southern Region",
		},
		{
			name:      "office and region mismatch",
			selection:  models.Selection{Region: "Western Region", Office: "OUN"},
			wantErr:   "belongs to",
		},
		{
			name:      "unknown office",
			selection: models.Selection{Office: "XYZ"},
			wantErr:   "unknown office",
		},
		{
			name:      "unknown region",
			selection: models.Selection{Region: "Atlantis Region"},
			wantErr:   "unknown region",
		},
		{
			name:      "empty selection",
			selection: models.Selection{},
			wantErr:   "no region or office",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, err := Resolve(catalog, tt.selection)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantRegion, region)
		})
	}
}

// An office selection and a bare selection of its parent region produce the
// same filtered corpus.
func TestOfficeEquivalentToParentRegion(t *testing.T) {
	catalog, err := models.DefaultCatalog()
	assert.NoError(t, err)

	byOffice, err := Resolve(catalog, models.Selection{Office: "OUN"})
	assert.NoError(t, err)
	byRegion, err := Resolve(catalog, models.Selection{Region: "Southern Region"})
	assert.NoError(t, err)

	fromOffice, _ := Filter(testCorpus(), byOffice)
	fromRegion, _ := Filter(testCorpus(), byRegion)
	assert.Equal(t, filenames(fromRegion), filenames(fromOffice))
}

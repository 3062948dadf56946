package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	assert.NoError(t, err)
	assert.NotEmpty(t, catalog.Regions)
	assert.True(t, catalog.HasRegion("Southern Region"))
	assert.False(t, catalog.HasRegion(ScopeNational))
}

func TestCatalogValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		wantErr string
	}{
		{
			name:    "empty catalog",
			catalog: Catalog{},
			wantErr: "no regions",
		},
		{
			name: "empty region name",
			catalog: Catalog{Regions: []CatalogRegion{
				{Name: "  ", Offices: []string{"OUN"}},
			}},
			wantErr: "empty name",
		},
		{
			name: "region named like national scope",
			catalog: Catalog{Regions: []CatalogRegion{
				{Name: ScopeNational, Offices: []string{"OUN"}},
			}},
			wantErr: "national scope tag",
		},
		{
			name: "duplicate office across regions",
			catalog: Catalog{Regions: []CatalogRegion{
				{Name: "Southern Region", Offices: []string{"OUN"}},
				{Name: "Western Region", Offices: []string{"oun"}},
			}},
			wantErr: "mapped to both",
		},
		{
			name: "region name substring collision",
			catalog: Catalog{Regions: []CatalogRegion{
				{Name: "Region", Offices: []string{"AAA"}},
				{Name: "Southern Region", Offices: []string{"BBB"}},
			}},
			wantErr: "substring",
		},
		{
			name: "valid catalog",
			catalog: Catalog{Regions: []CatalogRegion{
				{Name: "Southern Region", Offices: []string{"OUN", "TSA"}},
				{Name: "Western Region", Offices: []string{"SEW"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestOfficeRegion(t *testing.T) {
	catalog, err := DefaultCatalog()
	assert.NoError(t, err)

	region, ok := catalog.OfficeRegion("OUN")
	assert.True(t, ok)
	assert.Equal(t, "Southern Region", region)

	// Lookup is case-insensitive
	region, ok = catalog.OfficeRegion("oun")
	assert.True(t, ok)
	assert.Equal(t, "Southern Region", region)

	_, ok = catalog.OfficeRegion("XYZ")
	assert.False(t, ok)
}

func TestOffices(t *testing.T) {
	catalog, err := DefaultCatalog()
	assert.NoError(t, err)

	offices := catalog.Offices("Southern Region")
	assert.Contains(t, offices, "OUN")
	assert.Contains(t, offices, "TSA")

	assert.Nil(t, catalog.Offices("No Such Region"))
}

func TestLoadCatalogFallsBackToDefault(t *testing.T) {
	catalog, err := LoadCatalog("")
	assert.NoError(t, err)
	assert.NotEmpty(t, catalog.RegionNames())
}

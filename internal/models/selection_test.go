package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextSelection(t *testing.T) {
	catalog, err := DefaultCatalog()
	assert.NoError(t, err)

	tests := []struct {
		name      string
		current   Selection
		newRegion string
		newOffice string
		want      Selection
	}{
		{
			name:      "selecting an office derives its region",
			current:   Selection{},
			newOffice: "OUN",
			want:      Selection{Region: "Southern Region", Office: "OUN"},
		},
		{
			name:      "selecting a region clears a foreign office",
			current:   Selection{Region: "Southern Region", Office: "OUN"},
			newRegion: "Western Region",
			want:      Selection{Region: "Western Region"},
		},
		{
			name:      "selecting a region keeps a matching office",
			current:   Selection{Region: "Southern Region", Office: "OUN"},
			newRegion: "Southern Region",
			want:      Selection{Region: "Southern Region", Office: "OUN"},
		},
		{
			name:      "unknown office keeps the current region",
			current:   Selection{Region: "Southern Region"},
			newOffice: "XYZ",
			want:      Selection{Region: "Southern Region", Office: "XYZ"},
		},
		{
			name:      "office switch re-derives the region",
			current:   Selection{Region: "Southern Region", Office: "OUN"},
			newOffice: "SEW",
			want:      Selection{Region: "Western Region", Office: "SEW"},
		},
		{
			name:    "no change when both arguments are empty",
			current: Selection{Region: "Southern Region", Office: "OUN"},
			want:    Selection{Region: "Southern Region", Office: "OUN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextSelection(catalog, tt.current, tt.newRegion, tt.newOffice)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectionIsZero(t *testing.T) {
	assert.True(t, Selection{}.IsZero())
	assert.False(t, Selection{Region: "Southern Region"}.IsZero())
	assert.False(t, Selection{Office: "OUN"}.IsZero())
}

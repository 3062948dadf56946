package scope

import (
	"fmt"
	"strings"

	"github.com/ternarybob/dirigo/internal/models"
)

// Filter selects the subset of directives visible to a region-scoped
// retrieval index: national directives always, plus regional supplementals
// whose scope matches the requested region.
//
// Output ordering is a contract: national directives first in input order,
// then regional in input order. Several callers concatenate national +
// regional lists and depend on that ordering.
//
// The second return value signals low coverage: the regional subset was
// empty and only national directives are visible. That condition is a
// non-fatal advisory, never an error.
func Filter(directives []*models.Directive, requestedRegion string) ([]*models.Directive, bool) {
	national := make([]*models.Directive, 0, len(directives))
	regional := make([]*models.Directive, 0)

	for _, d := range directives {
		if d.IsNational() {
			national = append(national, d)
			continue
		}
		if d.Scope == "" || requestedRegion == "" {
			continue
		}
		if d.Scope == requestedRegion || strings.Contains(d.Scope, requestedRegion) {
			regional = append(regional, d)
		}
	}

	return append(national, regional...), len(regional) == 0
}

// Resolve derives the single region to filter by from a user selection.
// Office-level requests degrade to their parent region. An unresolvable
// selection is an error: the caller must prompt for re-selection and must
// not proceed to retrieval.
func Resolve(catalog *models.Catalog, selection models.Selection) (string, error) {
	if selection.Office != "" {
		region, ok := catalog.OfficeRegion(selection.Office)
		if !ok {
			return "", fmt.Errorf("unknown office %q: select a known office or a region", selection.Office)
		}
		if selection.Region != "" && selection.Region != region {
			return "", fmt.Errorf("office %s belongs to %s, not %s: re-select region or office",
				selection.Office, region, selection.Region)
		}
		return region, nil
	}

	if selection.Region != "" {
		if !catalog.HasRegion(selection.Region) {
			return "", fmt.Errorf("unknown region %q", selection.Region)
		}
		return selection.Region, nil
	}

	return "", fmt.Errorf("no region or office selected")
}

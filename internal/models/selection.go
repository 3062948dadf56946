package models

// Selection is the user's region/office choice for scope filtering.
// An empty Selection means no scoping has been chosen yet.
type Selection struct {
	Region string `json:"region"`
	Office string `json:"office"`
}

// IsZero reports whether nothing has been selected
func (s Selection) IsZero() bool {
	return s.Region == "" && s.Office == ""
}

// NextSelection computes the selection that results from the user changing
// the region or office controls. Exactly one of newRegion/newOffice should be
// non-empty per transition; the other argument must be "".
//
// Policy: selecting an office always auto-derives its parent region, and
// selecting a region clears the office unless the office already belongs to
// that region.
func NextSelection(catalog *Catalog, current Selection, newRegion, newOffice string) Selection {
	next := current

	if newRegion != "" {
		next.Region = newRegion
		if next.Office != "" {
			if parent, ok := catalog.OfficeRegion(next.Office); !ok || parent != newRegion {
				next.Office = ""
			}
		}
		return next
	}

	if newOffice != "" {
		next.Office = newOffice
		if parent, ok := catalog.OfficeRegion(newOffice); ok {
			next.Region = parent
		}
		return next
	}

	return next
}

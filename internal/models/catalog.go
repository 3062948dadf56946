package models

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// CatalogRegion is one organizational region and its offices
type CatalogRegion struct {
	Name    string   `yaml:"name"`
	Offices []string `yaml:"offices"`
}

// Catalog is the static region/office mapping used for scope filtering.
// Every office maps to exactly one region; region names must exactly match
// the scope strings produced by directive classification.
type Catalog struct {
	Regions []CatalogRegion `yaml:"regions"`

	officeRegion map[string]string
}

// DefaultCatalog returns the embedded region/office catalog
func DefaultCatalog() (*Catalog, error) {
	return parseCatalog(defaultCatalogYAML)
}

// LoadCatalog reads a catalog from a YAML file, falling back to the
// embedded default when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	catalog.officeRegion = make(map[string]string)
	for _, region := range catalog.Regions {
		for _, office := range region.Offices {
			catalog.officeRegion[strings.ToUpper(office)] = region.Name
		}
	}

	return &catalog, nil
}

// Validate rejects empty catalogs, duplicate offices, and region names that
// are substrings of one another. Substring-based scope matching is ambiguous
// when one region name contains another, so collisions are a startup error.
func (c *Catalog) Validate() error {
	if len(c.Regions) == 0 {
		return fmt.Errorf("catalog contains no regions")
	}

	seenOffice := make(map[string]string)
	for _, region := range c.Regions {
		if strings.TrimSpace(region.Name) == "" {
			return fmt.Errorf("catalog contains a region with an empty name")
		}
		if region.Name == ScopeNational {
			return fmt.Errorf("catalog region name %q conflicts with the national scope tag", region.Name)
		}
		for _, office := range region.Offices {
			key := strings.ToUpper(office)
			if prev, ok := seenOffice[key]; ok {
				return fmt.Errorf("office %s is mapped to both %s and %s", office, prev, region.Name)
			}
			seenOffice[key] = region.Name
		}
	}

	for i, a := range c.Regions {
		for j, b := range c.Regions {
			if i == j {
				continue
			}
			if strings.Contains(b.Name, a.Name) {
				return fmt.Errorf("region name %q is a substring of %q: scope matching would be ambiguous", a.Name, b.Name)
			}
		}
	}

	return nil
}

// RegionNames returns region display names in catalog order
func (c *Catalog) RegionNames() []string {
	names := make([]string, 0, len(c.Regions))
	for _, region := range c.Regions {
		names = append(names, region.Name)
	}
	return names
}

// OfficeRegion resolves an office code to its parent region.
// The lookup is total for every known office and case-insensitive.
func (c *Catalog) OfficeRegion(office string) (string, bool) {
	region, ok := c.officeRegion[strings.ToUpper(office)]
	return region, ok
}

// HasRegion reports whether the catalog contains the given region name
func (c *Catalog) HasRegion(name string) bool {
	for _, region := range c.Regions {
		if region.Name == name {
			return true
		}
	}
	return false
}

// Offices returns the office codes of a region, or nil for unknown regions
func (c *Catalog) Offices(region string) []string {
	for _, r := range c.Regions {
		if r.Name == region {
			return r.Offices
		}
	}
	return nil
}

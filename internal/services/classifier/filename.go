package classifier

import (
	"fmt"
	"path"
	"strings"
)

// Directive filenames follow the convention:
//
//	pd<series:3 digits><remaining code>curr.pdf
//
// e.g. pd02001003curr.pdf carries series "020". The series code occupies
// characters [2:5) of the basename. This is the single place that grammar is
// parsed; every component that needs a series code goes through here.

const (
	filenamePrefix  = "pd"
	filenameSuffix  = "curr.pdf"
	seriesStart     = 2
	seriesEnd       = 5
	directivesMedia = "https://www.weather.gov/media/directives"
)

// SeriesUnknown is returned when a filename does not follow the convention
const SeriesUnknown = "unknown"

// FilenameInfo is the parsed form of a directive filename
type FilenameInfo struct {
	Basename string
	Series   string // 3-digit series code, or SeriesUnknown
	Current  bool   // Filename carries the "curr.pdf" suffix
	Valid    bool   // Prefix and series digits both present
}

// ParseFilename parses a directive filename (or any path ending in one).
// Malformed names never fail: they parse as invalid with SeriesUnknown.
func ParseFilename(name string) FilenameInfo {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	lower := strings.ToLower(base)

	info := FilenameInfo{
		Basename: base,
		Series:   SeriesUnknown,
		Current:  strings.HasSuffix(lower, filenameSuffix),
	}

	if !strings.HasPrefix(lower, filenamePrefix) || len(lower) < seriesEnd {
		return info
	}

	series := lower[seriesStart:seriesEnd]
	for _, r := range series {
		if r < '0' || r > '9' {
			return info
		}
	}

	info.Series = series
	info.Valid = true
	return info
}

// DeriveSourceURL builds the canonical public URL for a directive filename.
// Filenames that do not follow the convention get a degraded placeholder URL
// and ok=false; callers must not drop the document solely for that.
func DeriveSourceURL(filename string) (string, bool) {
	info := ParseFilename(filename)
	if !info.Valid {
		return "unknown://" + info.Basename, false
	}
	return fmt.Sprintf("%s/%s_pdfs/%s", directivesMedia, info.Series, info.Basename), true
}

package wikidata

import (
	"regexp"
	"strconv"

	"github.com/arnoldlayne0/mapisse/snapshot"
)

// pointRe matches the WKT literal Wikidata uses for coordinates:
// "Point(<lon> <lat>)".
var pointRe = regexp.MustCompile(`^Point\((-?[0-9.]+) (-?[0-9.]+)\)$`)

// entityIDRe matches a bare entity identifier such as "Q12345". A label
// of this shape means the English translation is missing upstream, not
// that the entity is really called that.
var entityIDRe = regexp.MustCompile(`^Q\d+$`)

// IsEntityID reports whether label is an untranslated entity identifier.
func IsEntityID(label string) bool {
	return entityIDRe.MatchString(label)
}

// ParsePoint parses a "Point(<lon> <lat>)" literal. ok is false when the
// literal is malformed or the coordinates fall outside valid ranges.
func ParsePoint(s string) (lat, lon float64, ok bool) {
	m := pointRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	lat, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// NormalizeRow converts one phase-2 binding into a Record attributed to
// painter. ok is false when the row should be skipped: empty or
// untranslated painting/museum/painter labels carry no displayable data.
//
// Geometry is best-effort: a missing or malformed coords literal leaves
// both coordinates nil rather than rejecting the row. City and country
// fall back to the "Unknown" sentinel, never an empty string.
func NormalizeRow(painter string, b Binding) (snapshot.Record, bool) {
	painting := b.Get("paintingLabel")
	museum := b.Get("museumLabel")
	if painter == "" || painting == "" || museum == "" {
		return snapshot.Record{}, false
	}
	if IsEntityID(painter) || IsEntityID(painting) || IsEntityID(museum) {
		return snapshot.Record{}, false
	}

	rec := snapshot.Record{
		Painter:  painter,
		Painting: painting,
		Museum:   museum,
		City:     placeLabel(b.Get("cityLabel")),
		Country:  placeLabel(b.Get("countryLabel")),
	}
	if lat, lon, ok := ParsePoint(b.Get("coords")); ok {
		rec.Lat = &lat
		rec.Lon = &lon
	}
	return rec, true
}

// placeLabel maps absent or untranslated place labels to the sentinel.
func placeLabel(label string) string {
	if label == "" || IsEntityID(label) {
		return snapshot.UnknownPlace
	}
	return label
}

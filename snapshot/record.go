// Package snapshot holds the canonical artwork table and its columnar
// on-disk form.
//
// A snapshot is replaced wholesale on each refresh; there is no merge.
// Loaders get their own copy and may read it concurrently.
package snapshot

// UnknownPlace is stored for city/country when the source has no value.
// These two columns never carry an empty string.
const UnknownPlace = "Unknown"

// Record is one painting-held-at-museum fact.
//
// Lat and Lon are both set or both nil, never one-sided. When set they
// are within [-90,90] and [-180,180]; normalization drops anything else.
type Record struct {
	Painter  string   `parquet:"painter" json:"painter"`
	Painting string   `parquet:"painting" json:"painting"`
	Museum   string   `parquet:"museum" json:"museum"`
	City     string   `parquet:"city" json:"city"`
	Country  string   `parquet:"country" json:"country"`
	Lat      *float64 `parquet:"lat,optional" json:"lat,omitempty"`
	Lon      *float64 `parquet:"lon,optional" json:"lon,omitempty"`
}

// HasCoords reports whether the record carries a museum location.
func (r Record) HasCoords() bool {
	return r.Lat != nil && r.Lon != nil
}

// Key identifies a record for dedup purposes. Two fetch strategies can
// surface the same fact; only the first occurrence is kept.
func (r Record) Key() string {
	return r.Painter + "\x1f" + r.Painting + "\x1f" + r.Museum
}

// Package view computes filtered, bounded projections of a snapshot for
// display. Query is a pure function of its arguments: no state is held
// between calls and concurrent use is safe.
package view

import (
	"sort"
	"strconv"

	"github.com/arnoldlayne0/mapisse/snapshot"
)

// MaxMarkers bounds the marker set under an artist filter. Beyond it the
// museums with the most paintings win, ties broken by name ascending.
const MaxMarkers = 10

// Filter selects rows by exact match on the stored painter and/or museum
// name. Empty string means "no restriction".
type Filter struct {
	Artist string
	Museum string
}

// Marker is one map unit: a museum and the paintings attributed to it
// under the active filter.
type Marker struct {
	Museum        string   `json:"museum"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
	PaintingCount int      `json:"paintingCount"`
	Paintings     []string `json:"paintings"`
}

// Truncation describes a marker set cut down to MaxMarkers.
type Truncation struct {
	Shown     int    `json:"shown"`
	Total     int    `json:"total"`
	Remaining int    `json:"remaining"`
	Artist    string `json:"artist"`
}

// Counts summarises the matched rows.
type Counts struct {
	Rows     int `json:"rows"`
	Painters int `json:"painters"`
	Museums  int `json:"museums"`
}

// View is the result handed to the display layer. Rows always include
// records without coordinates; Markers never do.
type View struct {
	Rows       []snapshot.Record `json:"rows"`
	Markers    []Marker          `json:"markers"`
	Truncation *Truncation       `json:"truncation,omitempty"`
	Counts     Counts            `json:"counts"`
	// Empty is set when filters were given and nothing matched.
	Empty bool `json:"empty"`
	// NoFilterMatch distinguishes "a requested name exists nowhere in the
	// snapshot" from "both names exist but never together".
	NoFilterMatch bool `json:"noFilterMatch"`
}

// Query computes the filtered view. Matching is case-sensitive on the
// canonical stored strings.
func Query(snap *snapshot.Snapshot, f Filter) View {
	rows := make([]snapshot.Record, 0, len(snap.Records))
	artistSeen, museumSeen := false, false
	for _, r := range snap.Records {
		if f.Artist != "" && r.Painter == f.Artist {
			artistSeen = true
		}
		if f.Museum != "" && r.Museum == f.Museum {
			museumSeen = true
		}
		if f.Artist != "" && r.Painter != f.Artist {
			continue
		}
		if f.Museum != "" && r.Museum != f.Museum {
			continue
		}
		rows = append(rows, r)
	}

	v := View{
		Rows:   rows,
		Counts: countRows(rows),
	}

	filtered := f.Artist != "" || f.Museum != ""
	if filtered && len(rows) == 0 {
		v.Empty = true
		v.NoFilterMatch = (f.Artist != "" && !artistSeen) || (f.Museum != "" && !museumSeen)
	}

	markers := aggregate(rows)
	sort.Slice(markers, func(i, j int) bool {
		if markers[i].PaintingCount != markers[j].PaintingCount {
			return markers[i].PaintingCount > markers[j].PaintingCount
		}
		return markers[i].Museum < markers[j].Museum
	})

	// Truncation applies to the artist view only: a single museum filter
	// already bounds the set, and the unfiltered map shows everything.
	if f.Artist != "" && f.Museum == "" && len(markers) > MaxMarkers {
		total := len(markers)
		markers = markers[:MaxMarkers]
		v.Truncation = &Truncation{
			Shown:     MaxMarkers,
			Total:     total,
			Remaining: total - MaxMarkers,
			Artist:    f.Artist,
		}
	}
	v.Markers = markers
	return v
}

// aggregate groups rows with coordinates by museum location. Painting
// order within a marker follows row order.
func aggregate(rows []snapshot.Record) []Marker {
	index := make(map[string]int)
	var markers []Marker
	for _, r := range rows {
		if !r.HasCoords() {
			continue
		}
		key := r.Museum + "\x1f" + r.City + "\x1f" + r.Country + "\x1f" +
			strconv.FormatFloat(*r.Lat, 'f', -1, 64) + "\x1f" +
			strconv.FormatFloat(*r.Lon, 'f', -1, 64)
		i, ok := index[key]
		if !ok {
			i = len(markers)
			index[key] = i
			markers = append(markers, Marker{
				Museum:  r.Museum,
				City:    r.City,
				Country: r.Country,
				Lat:     *r.Lat,
				Lon:     *r.Lon,
			})
		}
		markers[i].PaintingCount++
		markers[i].Paintings = append(markers[i].Paintings, r.Painting)
	}
	return markers
}

func countRows(rows []snapshot.Record) Counts {
	painters := make(map[string]struct{})
	museums := make(map[string]struct{})
	for _, r := range rows {
		painters[r.Painter] = struct{}{}
		museums[r.Museum] = struct{}{}
	}
	return Counts{Rows: len(rows), Painters: len(painters), Museums: len(museums)}
}

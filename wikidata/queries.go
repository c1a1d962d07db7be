package wikidata

import (
	"fmt"
	"strings"
)

// TopPaintersQuery selects the most referenced painters, ranked by
// sitelink count (a proxy for notability). The endpoint's ordering is
// kept as-is; ties are not re-sorted locally.
const TopPaintersQuery = `SELECT ?painter ?painterLabel WHERE {
  ?painter wdt:P106 wd:Q1028181 ;
           wikibase:sitelinks ?linkCount .
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}
ORDER BY DESC(?linkCount)
LIMIT %d`

// paintingsByPainterQuery fetches one painter's paintings together with
// the holding museum, its coordinates, and its city/country labels.
const paintingsByPainterQuery = `SELECT DISTINCT ?paintingLabel ?museumLabel ?cityLabel ?countryLabel ?coords WHERE {
  ?painting wdt:P170 wd:%s ;
            wdt:P31 wd:Q3305213 ;
            wdt:P195 ?museum .
  ?museum wdt:P31/wdt:P279* wd:Q33506 .
  OPTIONAL { ?museum wdt:P625 ?coords . }
  OPTIONAL { ?museum wdt:P131 ?city . }
  OPTIONAL { ?museum wdt:P17 ?country . }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}`

// TopPainters renders the phase-1 query for the given result budget.
func TopPainters(limit int) string {
	return fmt.Sprintf(TopPaintersQuery, limit)
}

// PaintingsByPainter renders the phase-2 query for one painter entity.
func PaintingsByPainter(painterID string) string {
	return fmt.Sprintf(paintingsByPainterQuery, painterID)
}

const entityPrefix = "http://www.wikidata.org/entity/"

// ParsePainters extracts painter identities from phase-1 bindings,
// preserving the endpoint's ranking order. Rows without a resolvable
// entity URI are dropped.
func ParsePainters(rows []Binding) []Painter {
	painters := make([]Painter, 0, len(rows))
	for _, b := range rows {
		uri := b.Get("painter")
		if !strings.HasPrefix(uri, entityPrefix) {
			continue
		}
		id := strings.TrimPrefix(uri, entityPrefix)
		if id == "" {
			continue
		}
		name := b.Get("painterLabel")
		if name == "" {
			name = id
		}
		painters = append(painters, Painter{ID: id, Name: name})
	}
	return painters
}

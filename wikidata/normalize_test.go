package wikidata

import "testing"

func bind(values map[string]string) Binding {
	b := make(Binding, len(values))
	for k, v := range values {
		b[k] = Value{Type: "literal", Value: v}
	}
	return b
}

func TestNormalizeRow_Complete(t *testing.T) {
	rec, ok := NormalizeRow("Leonardo da Vinci", bind(map[string]string{
		"paintingLabel": "Mona Lisa",
		"museumLabel":   "Louvre",
		"cityLabel":     "Paris",
		"countryLabel":  "France",
		"coords":        "Point(2.3376 48.8606)",
	}))
	if !ok {
		t.Fatal("row should normalize")
	}
	if rec.Painter != "Leonardo da Vinci" || rec.Painting != "Mona Lisa" || rec.Museum != "Louvre" {
		t.Fatalf("labels: got %+v", rec)
	}
	if rec.City != "Paris" || rec.Country != "France" {
		t.Errorf("place: got city=%q country=%q", rec.City, rec.Country)
	}
	if !rec.HasCoords() {
		t.Fatal("coords should be present")
	}
	if *rec.Lat != 48.8606 || *rec.Lon != 2.3376 {
		t.Errorf("coords: got lat=%v lon=%v", *rec.Lat, *rec.Lon)
	}
}

func TestNormalizeRow_GeometryIsBestEffort(t *testing.T) {
	// WHY: A museum without usable coordinates still belongs in the table;
	// it just never becomes a marker.
	cases := map[string]string{
		"absent":       "",
		"malformed":    "POINT 2.3 48.8",
		"not numbers":  "Point(a b)",
		"out of range": "Point(200.0 95.0)",
	}
	for name, coords := range cases {
		t.Run(name, func(t *testing.T) {
			rec, ok := NormalizeRow("Painter", bind(map[string]string{
				"paintingLabel": "Work",
				"museumLabel":   "Museum",
				"coords":        coords,
			}))
			if !ok {
				t.Fatal("row should normalize")
			}
			if rec.Lat != nil || rec.Lon != nil {
				t.Errorf("coords should be absent, got lat=%v lon=%v", rec.Lat, rec.Lon)
			}
		})
	}
}

func TestNormalizeRow_RejectsPlaceholderLabels(t *testing.T) {
	base := map[string]string{
		"paintingLabel": "The Night Watch",
		"museumLabel":   "Rijksmuseum",
	}
	cases := []struct {
		name    string
		painter string
		mutate  func(map[string]string)
	}{
		{"painting is bare entity id", "Rembrandt", func(m map[string]string) { m["paintingLabel"] = "Q12345" }},
		{"museum is bare entity id", "Rembrandt", func(m map[string]string) { m["museumLabel"] = "Q999" }},
		{"painter is bare entity id", "Q42", func(map[string]string) {}},
		{"painting missing", "Rembrandt", func(m map[string]string) { delete(m, "paintingLabel") }},
		{"museum missing", "Rembrandt", func(m map[string]string) { delete(m, "museumLabel") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := make(map[string]string, len(base))
			for k, v := range base {
				row[k] = v
			}
			tc.mutate(row)
			if _, ok := NormalizeRow(tc.painter, bind(row)); ok {
				t.Error("row should be skipped")
			}
		})
	}
}

func TestNormalizeRow_UnknownPlaceSentinel(t *testing.T) {
	rec, ok := NormalizeRow("Painter", bind(map[string]string{
		"paintingLabel": "Work",
		"museumLabel":   "Museum",
		"countryLabel":  "Q30", // untranslated country label
	}))
	if !ok {
		t.Fatal("row should normalize")
	}
	if rec.City != "Unknown" {
		t.Errorf("city: got %q, want Unknown", rec.City)
	}
	if rec.Country != "Unknown" {
		t.Errorf("country: got %q, want Unknown", rec.Country)
	}
}

func TestParsePoint(t *testing.T) {
	cases := []struct {
		in       string
		lat, lon float64
		ok       bool
	}{
		{"Point(2.3376 48.8606)", 48.8606, 2.3376, true},
		{"Point(-70.0 -33.4)", -33.4, -70.0, true},
		{"Point(180 90)", 90, 180, true},
		{"Point(180.1 0)", 0, 0, false},
		{"Point(0 90.5)", 0, 0, false},
		{"Point(1 2 3)", 0, 0, false},
		{"", 0, 0, false},
		{"2.3 48.8", 0, 0, false},
	}
	for _, tc := range cases {
		lat, lon, ok := ParsePoint(tc.in)
		if ok != tc.ok {
			t.Errorf("ParsePoint(%q): ok=%v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && (lat != tc.lat || lon != tc.lon) {
			t.Errorf("ParsePoint(%q): got (%v,%v), want (%v,%v)", tc.in, lat, lon, tc.lat, tc.lon)
		}
	}
}

func TestIsEntityID(t *testing.T) {
	for label, want := range map[string]bool{
		"Q12345":    true,
		"Q1":        true,
		"Q":         false,
		"Q12a":      false,
		"Mona Lisa": false,
		"":          false,
		"Quentin":   false,
	} {
		if got := IsEntityID(label); got != want {
			t.Errorf("IsEntityID(%q): got %v, want %v", label, got, want)
		}
	}
}

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arnoldlayne0/mapisse/snapshot"
	"github.com/arnoldlayne0/mapisse/view"
)

func fptr(v float64) *float64 { return &v }

func testSnapshot() *snapshot.Snapshot {
	return snapshot.New([]snapshot.Record{
		{Painter: "Leonardo da Vinci", Painting: "Mona Lisa", Museum: "Louvre",
			City: "Paris", Country: "France", Lat: fptr(48.8606), Lon: fptr(2.3376)},
		{Painter: "Rembrandt", Painting: "The Night Watch", Museum: "Rijksmuseum",
			City: "Amsterdam", Country: "Netherlands", Lat: fptr(52.36), Lon: fptr(4.885)},
		{Painter: "Rembrandt", Painting: "Self-Portrait", Museum: "Private Collection",
			City: "Unknown", Country: "Unknown"},
	})
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(testSnapshot(), nil).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, into any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get %s: status %d", url, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func TestHealthz(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d", resp.StatusCode)
	}
}

func TestView_Filtered(t *testing.T) {
	ts := testServer(t)
	var v view.View
	getJSON(t, ts.URL+"/api/view?artist=Rembrandt", &v)
	if v.Counts.Rows != 2 || v.Counts.Museums != 2 {
		t.Errorf("counts: got %+v", v.Counts)
	}
	if len(v.Markers) != 1 || v.Markers[0].Museum != "Rijksmuseum" {
		t.Errorf("markers: got %+v", v.Markers)
	}
}

func TestView_EmptyIntersection(t *testing.T) {
	ts := testServer(t)
	var v view.View
	getJSON(t, ts.URL+"/api/view?artist=Rembrandt&museum=Louvre", &v)
	if !v.Empty {
		t.Error("empty intersection should be flagged, not an error status")
	}
	if v.NoFilterMatch {
		t.Error("both names exist; NoFilterMatch must be false")
	}
}

func TestArtistsAndMuseums(t *testing.T) {
	ts := testServer(t)

	var artists struct {
		Artists []string `json:"artists"`
	}
	getJSON(t, ts.URL+"/api/artists", &artists)
	if len(artists.Artists) != 2 || artists.Artists[0] != "Leonardo da Vinci" {
		t.Errorf("artists: got %v", artists.Artists)
	}

	var museums struct {
		Museums []string `json:"museums"`
	}
	getJSON(t, ts.URL+"/api/museums", &museums)
	if len(museums.Museums) != 3 {
		t.Errorf("museums: got %v", museums.Museums)
	}
}

func TestSummary(t *testing.T) {
	ts := testServer(t)
	var summary map[string]any
	getJSON(t, ts.URL+"/api/summary", &summary)
	if summary["paintings"].(float64) != 3 {
		t.Errorf("paintings: got %v", summary["paintings"])
	}
	if summary["with_coords"].(float64) != 2 {
		t.Errorf("with_coords: got %v", summary["with_coords"])
	}
	if summary["fetched_at"] == "" {
		t.Error("summary should carry provenance")
	}
}

package httpserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	server "india_travel/internal/adapters/http_server"
	"india_travel/internal/app"
	"india_travel/internal/catalog"
	"india_travel/internal/domain"
)

func newHandler(t *testing.T, o server.Options) http.Handler {
	t.Helper()
	c, err := catalog.Open(context.Background(), catalog.EmbeddedSource{})
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	views, err := server.NewViews()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	srv := server.New(o)
	srv.MountHandlers(&server.Handlers{Q: app.NewQueryService(c), Views: views})
	return srv.Mux()
}

func do(t *testing.T, h http.Handler, target string, hdr map[string]string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	body, _ := io.ReadAll(rr.Body)
	return rr, string(body)
}

func decodeList(t *testing.T, body string) []domain.Destination {
	t.Helper()
	var out []domain.Destination
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return out
}

func TestAPI_ListDestinations(t *testing.T) {
	h := newHandler(t, server.Options{})

	rr, body := do(t, h, "/api/destinations", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	list := decodeList(t, body)
	if len(list) != 10 || list[0].ID != "ladakh" {
		t.Fatalf("unexpected list: %d items", len(list))
	}

	etag := rr.Header().Get("ETag")
	if !strings.HasPrefix(etag, `W/"`) {
		t.Fatalf("missing weak etag: %q", etag)
	}
	rr2, _ := do(t, h, "/api/destinations", map[string]string{"If-None-Match": etag})
	if rr2.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rr2.Code)
	}
}

func TestAPI_GetDestination_WireFormat(t *testing.T) {
	h := newHandler(t, server.Options{})

	rr, body := do(t, h, "/api/destination/goa", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, k := range []string{"id", "name", "tagline", "region", "coordinates", "description",
		"best_time", "duration", "highlights", "activities", "how_to_reach", "tips"} {
		if _, ok := raw[k]; !ok {
			t.Fatalf("missing key %q in %s", k, body)
		}
	}
	coords, _ := raw["coordinates"].(map[string]any)
	if coords["lat"] != 15.2993 || coords["lng"] != 74.124 {
		t.Fatalf("unexpected coordinates: %v", coords)
	}
	if raw["name"] != "Goa" || raw["best_time"] != "November to February" {
		t.Fatalf("unexpected record: %s", body)
	}
}

func TestAPI_GetDestination_NotFound(t *testing.T) {
	h := newHandler(t, server.Options{})

	for _, id := range []string{"atlantis", "GOA"} {
		rr, body := do(t, h, "/api/destination/"+id, nil)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s: status %d", id, rr.Code)
		}
		if body != `{"error":"Destination not found"}` {
			t.Fatalf("%s: unexpected body %q", id, body)
		}
	}
}

func TestAPI_Search(t *testing.T) {
	h := newHandler(t, server.Options{})

	cases := []struct {
		target string
		want   []string
	}{
		{"/api/search?q=kerala", []string{"munnar", "alleppey"}},
		{"/api/search?q=KERALA", []string{"munnar", "alleppey"}},
		{"/api/search?q=Himachal+Pradesh", []string{"spiti", "manali", "shimla"}},
		{"/api/search?q=NONEXISTENTXYZ", []string{}},
	}
	for _, tc := range cases {
		rr, body := do(t, h, tc.target, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status %d", tc.target, rr.Code)
		}
		got := decodeList(t, body)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: got %d results, want %v", tc.target, len(got), tc.want)
		}
		for i := range got {
			if got[i].ID != tc.want[i] {
				t.Fatalf("%s: position %d = %q, want %q", tc.target, i, got[i].ID, tc.want[i])
			}
		}
	}
}

func TestAPI_Search_EmptyAndMissingQuery(t *testing.T) {
	h := newHandler(t, server.Options{})

	for _, target := range []string{"/api/search", "/api/search?q="} {
		_, body := do(t, h, target, nil)
		if got := decodeList(t, body); len(got) != 10 {
			t.Fatalf("%s: expected full catalog, got %d", target, len(got))
		}
	}

	_, body := do(t, h, "/api/search?q=NONEXISTENTXYZ", nil)
	if strings.TrimSpace(body) != "[]" {
		t.Fatalf("empty result must encode as [], got %q", body)
	}
}

func TestAPI_Search_InvalidArgument(t *testing.T) {
	h := newHandler(t, server.Options{})

	for _, target := range []string{"/api/search?q=a&q=b", "/api/search?q=%FF"} {
		rr, body := do(t, h, target, nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rr.Code)
		}
		if !strings.Contains(body, `"error"`) {
			t.Fatalf("%s: expected error payload, got %q", target, body)
		}
	}
}

func TestViews_Index(t *testing.T) {
	h := newHandler(t, server.Options{})

	rr, body := do(t, h, "/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("content type %q", rr.Header().Get("Content-Type"))
	}
	for _, name := range []string{"Ladakh", "Spiti Valley", "Munnar", "Ooty", "Gokarna", "Hampi", "Manali", "Shimla"} {
		if !strings.Contains(body, name) {
			t.Fatalf("index missing %q", name)
		}
	}
	if !strings.Contains(body, `href="/destination/alleppey"`) {
		t.Fatalf("index missing detail link")
	}
}

func TestViews_IndexMapMarkers(t *testing.T) {
	h := newHandler(t, server.Options{})

	_, body := do(t, h, "/", nil)
	if n := strings.Count(body, `class="map-marker"`); n != 10 {
		t.Fatalf("expected 10 map markers, got %d", n)
	}
	// ladakh at 34.1526N 77.5771E
	if !strings.Contains(body, `href="#card-ladakh" style="top: 9.2%; left: 31.9%"`) {
		t.Fatalf("ladakh marker not positioned from its coordinates")
	}
	if !strings.Contains(body, `id="card-ladakh"`) {
		t.Fatalf("marker target card missing")
	}

	// the map keeps every marker while the list is filtered
	_, body = do(t, h, "/?q=kerala", nil)
	if n := strings.Count(body, `class="map-marker"`); n != 10 {
		t.Fatalf("filtered index: expected 10 map markers, got %d", n)
	}
}

func TestViews_IndexFiltered(t *testing.T) {
	h := newHandler(t, server.Options{})

	_, body := do(t, h, "/?q=kerala", nil)
	if !strings.Contains(body, "/destination/munnar") || strings.Contains(body, "/destination/ladakh") {
		t.Fatalf("filter not applied")
	}

	_, body = do(t, h, "/?q=NONEXISTENTXYZ", nil)
	if !strings.Contains(body, "No destinations found") {
		t.Fatalf("expected empty state")
	}
}

func TestViews_Destination(t *testing.T) {
	h := newHandler(t, server.Options{})

	rr, body := do(t, h, "/destination/hampi", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	for _, s := range []string{"City of Ruins", "Virupaksha Temple", "Hire a guide for historical context", "15.3350, 76.4600"} {
		if !strings.Contains(body, s) {
			t.Fatalf("detail page missing %q", s)
		}
	}

	rr, body = do(t, h, "/destination/atlantis", nil)
	if rr.Code != http.StatusNotFound || !strings.Contains(body, "Destination not found") {
		t.Fatalf("expected 404 page, got %d", rr.Code)
	}
}

func TestStaticAndHealth(t *testing.T) {
	h := newHandler(t, server.Options{})

	rr, body := do(t, h, "/static/style.css", nil)
	if rr.Code != http.StatusOK || !strings.Contains(body, ".destination-card") {
		t.Fatalf("static: status %d", rr.Code)
	}
	rr, body = do(t, h, "/healthz", nil)
	if rr.Code != http.StatusOK || body != "ok" {
		t.Fatalf("healthz: %d %q", rr.Code, body)
	}
}

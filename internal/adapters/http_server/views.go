package httpserver

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"india_travel/internal/app"
	"india_travel/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type Views struct{ t *template.Template }

func NewViews() (*Views, error) {
	t, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Views{t: t}, nil
}

type indexPage struct {
	Query        string
	Destinations []domain.Destination
	Markers      []mapMarker
	Total        int
}

// Bounding box of the index map, in degrees.
const (
	mapNorth = 37.0
	mapSouth = 6.0
	mapWest  = 68.0
	mapEast  = 98.0
)

type mapMarker struct {
	ID    string
	Name  string
	Style template.CSS
}

// markersFor places one marker per destination, as percentage offsets
// inside the map box. Points outside the box are pinned to its edge.
func markersFor(ds []domain.Destination) []mapMarker {
	out := make([]mapMarker, 0, len(ds))
	for _, d := range ds {
		top := clampPct((mapNorth - d.Coordinates.Lat) / (mapNorth - mapSouth) * 100)
		left := clampPct((d.Coordinates.Lng - mapWest) / (mapEast - mapWest) * 100)
		out = append(out, mapMarker{
			ID:    d.ID,
			Name:  d.Name,
			Style: template.CSS(fmt.Sprintf("top: %.1f%%; left: %.1f%%", top, left)),
		})
	}
	return out
}

func clampPct(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

type detailPage struct {
	Destination domain.Destination
}

type notFoundPage struct {
	Message string
}

// render executes into a buffer first so a template failure still yields a
// clean 500 instead of a half-written page.
func (v *Views) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := v.t.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Str("template", name).Msg("write page failed")
	}
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	q, err := app.ParseSearchQuery(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid query parameter q", http.StatusBadRequest)
		return
	}
	all := h.Q.List()
	page := indexPage{Query: q, Destinations: all, Markers: markersFor(all), Total: len(all)}
	if q != "" {
		page.Destinations = h.Q.Search(q)
	}
	h.Views.render(w, http.StatusOK, "index.html", page)
}

func (h *Handlers) destinationPage(w http.ResponseWriter, r *http.Request) {
	d, err := h.Q.GetDestination(chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		h.Views.render(w, http.StatusNotFound, "not_found.html", notFoundPage{Message: msgNotFound})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get destination failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.Views.render(w, http.StatusOK, "destination.html", detailPage{Destination: d})
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"india_travel/internal/app"
	"india_travel/internal/domain"
)

const msgNotFound = "Destination not found"

type Handlers struct {
	Q     *app.QueryService
	Views *Views
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/", h.index)
	s.mux.Get("/destination/{id}", h.destinationPage)
	s.mux.Handle("/static/*", staticHandler())

	s.mux.Group(func(r chi.Router) {
		r.Use(s.apiMW...)
		r.Get("/api/destinations", h.listDestinations)
		r.Get("/api/destination/{id}", h.getDestination)
		r.Get("/api/search", h.search)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	body, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		log.Error().Err(err).Msg("marshal error response failed")
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write JSON error response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body, err := calcETagAndBody(v)
	if err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("marshal response failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("write body failed")
	}
}

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Q.List())
}

func (h *Handlers) getDestination(w http.ResponseWriter, r *http.Request) {
	d, err := h.Q.GetDestination(chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get destination failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, r, d)
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	q, err := app.ParseSearchQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query parameter q")
		return
	}
	writeJSON(w, r, h.Q.Search(q))
}

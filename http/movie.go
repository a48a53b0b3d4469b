package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/movies"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// handleIndex renders a random sample of movies that have thumbnails.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sample, err := s.MovieService.FindMovies(r.Context(), movies.MovieFilter{
		Thumbnail: true,
		SortBy:    movies.SortRandom,
		Limit:     IndexSampleSize,
	})
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	s.render(w, r, http.StatusOK, "index", struct{ Movies []*movies.Movie }{sample})
}

// handleMovie serves one movie as JSON when the client accepts it, and as
// an HTML page otherwise. Unknown IDs get an explicit not-found response.
func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	id, err := movies.ParseMovieID(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	m, err := s.MovieService.FindMovieByID(r.Context(), id)
	if wantsJSON(r) {
		if err != nil {
			Error(w, r, s.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
		return
	}

	switch {
	case movies.ErrorCode(err) == movies.ENOTFOUND:
		s.render(w, r, http.StatusNotFound, "notfound", id)
	case err != nil:
		Error(w, r, s.Logger, err)
	default:
		s.render(w, r, http.StatusOK, "movie", m)
	}
}

// handleSearch serves the full-text endpoint. A missing or empty q yields [].
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	result, err := s.MovieService.SearchMovies(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// catalogEntry is one element of /all-movies.json. The replica has no use
// for the year.
type catalogEntry struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail string `json:"thumbnail"`
}

// handleAllMovies serves the full catalog, newest first, for client-side
// replication. Responses carry an ETag so revalidation is cheap.
func (s *Server) handleAllMovies(w http.ResponseWriter, r *http.Request) {
	all, err := s.MovieService.FindMovies(r.Context(), movies.MovieFilter{SortBy: movies.SortNewest})
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	entries := make([]catalogEntry, len(all))
	for i, m := range all {
		entries[i] = catalogEntry{ID: m.ID, Title: m.Title, Extract: m.Extract, Thumbnail: m.Thumbnail}
	}

	body, err := json.Marshal(entries)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(CatalogMaxAge.Seconds())))
	w.Header().Set("ETag", etag)

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	writeBody(w, http.StatusOK, "application/json", body)
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Movies int    `json:"movies"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := s.MovieService.CountMovies(r.Context())
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, &HealthResponse{Status: "ok", Movies: n})
}

// render executes a named template into a buffer first so a template
// failure can still produce a clean error response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	writeBody(w, status, "text/html; charset=utf-8", buf.Bytes())
}

// etagMatches reports whether an If-None-Match header value matches etag
// under weak comparison. The header may be "*" or a comma-separated list.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

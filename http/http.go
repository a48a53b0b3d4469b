// Package http provides the HTTP transport for the movie catalog: a chi-based
// Server exposing the catalog, and a Client implementing movies.Catalog
// against that server.
package http

import (
	"log/slog"
	"net/http"

	"github.com/fwojciec/movies"
	json "github.com/goccy/go-json"
)

// ErrorResponse is the JSON body returned for failed API requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	movies.ECONFLICT: http.StatusConflict,
	movies.EINVALID:  http.StatusBadRequest,
	movies.ENOTFOUND: http.StatusNotFound,
	movies.EINTERNAL: http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error writes err as a JSON error response. Internal errors are logged and
// reported to the client without their details.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code, message := movies.ErrorCode(err), movies.ErrorMessage(err)
	status := ErrorStatusCode(code)

	if status == http.StatusInternalServerError {
		logger.Error("http error",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
		message = "internal error"
	}

	writeJSON(w, status, &ErrorResponse{Error: message})
}

// writeJSON encodes v and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeBody(w, status, "application/json", body)
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

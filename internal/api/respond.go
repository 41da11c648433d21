package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/Procure/internal/scoring"
	"github.com/MikeSquared-Agency/Procure/internal/session"
)

// writeJSON encodes v before committing the status so an encoding failure
// can still be reported as a 500 with an error body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var ctxErr *scoring.UnknownContextError
	var cfgErr *scoring.ConfigurationError
	var nfErr *scoring.NonFiniteScoreError
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &ctxErr),
		errors.As(err, &nfErr),
		errors.Is(err, session.ErrSupplierCount),
		errors.Is(err, session.ErrOutOfRange),
		errors.Is(err, session.ErrScoreCount):
		return http.StatusBadRequest
	case errors.As(err, &cfgErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrStoreClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

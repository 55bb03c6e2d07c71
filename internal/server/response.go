package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/inkwell-blog/inkwell/internal/content"
	"github.com/inkwell-blog/inkwell/pkg/types"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON writes v with the given status. Records go out bare, exactly in
// the wire shape the repository emits.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps repository errors onto status codes: missing rows are the
// client's 404, malformed requests their 400, and everything else a server
// fault that keeps its diagnostics in the log, not on the wire.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, content.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, types.ErrInvalidKind),
		errors.Is(err, content.ErrIncompleteRequest),
		errors.As(err, &verrs):
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	default:
		s.logger.Error("request failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

// badRequest is for decode failures before any repository call.
func (s *Server) badRequest(w http.ResponseWriter, msg string) {
	s.writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

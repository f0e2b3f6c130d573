package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytree/pkg/errors"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

// writeError writes err as {error, code} with the status its code maps to.
// Uncoded errors are reported as internal errors without their message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code, msg = errors.ErrCodeInternal, "internal error"
	}
	if status >= http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("request failed", "err", err)
	}
	writeJSON(w, status, errorBody{Error: msg, Code: code})
}

// parseID parses a positive person id.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid id %q", s)
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid JSON body")
	}
	return nil
}

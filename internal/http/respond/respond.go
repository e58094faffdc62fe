// Package respond holds the JSON and error helpers shared by every
// handler package.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/centavoapp/centavo/internal/ledger"
)

// JSON writes v with the given status. Encoding failures are logged;
// the status line is already on the wire by then.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// Error maps ledger error classes onto HTTP statuses: validation 400,
// not found 404, constraint 409, anything else 500.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, ledger.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrConstraint):
		status = http.StatusConflict
	case errors.Is(err, ledger.ErrNoWallet):
		status = http.StatusConflict
	}

	JSON(w, status, errorBody{Error: err.Error()})
}

// BadRequest reports a malformed request body or parameter.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

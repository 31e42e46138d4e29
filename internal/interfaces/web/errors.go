package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/room-schedule/internal/infrastructure/cove"
)

const (
	codeMethodNotAllowed = "method_not_allowed"
	codeInvalidDate      = "invalid_date"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeSourceError maps a retrieval failure onto a JSON error response.
func writeSourceError(w http.ResponseWriter, err error) {
	var apiErr *cove.APIError
	if !errors.As(err, &apiErr) {
		writeError(w, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}
	status := http.StatusBadGateway
	if apiErr.Kind == cove.KindCanceled {
		status = http.StatusServiceUnavailable
	}
	writeError(w, status, apiErr.Code, apiErr.Message)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

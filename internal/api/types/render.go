package types

import (
	"encoding/json"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders err with the status its code maps to.
func WriteError(w http.ResponseWriter, err error) {
	apiErr, status := FromAppError(err)
	WriteJSON(w, status, APIResponse{Success: false, Error: apiErr})
}

// WriteErrorStr renders a bare error with an explicit status and code.
func WriteErrorStr(w http.ResponseWriter, status int, code, msg string) {
	WriteJSON(w, status, APIResponse{Success: false, Error: &APIError{Code: code, Message: msg}})
}

package handler

import (
	"encoding/json"
	"net/http"
)

// dataEnvelope wraps every successful response body.
type dataEnvelope struct {
	Data any `json:"data"`
}

// errorResponse is the standard error response format.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteData writes a success response wrapping data in the standard
// {"data": ...} envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataEnvelope{Data: data})
}

// WriteError writes a standard error response with the given status code,
// error code, and human-readable message.
func WriteError(w http.ResponseWriter, status int, errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Error:   errorCode,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) // Write error intentionally ignored in response helper
}

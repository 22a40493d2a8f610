package http

import (
	"encoding/json"
	"net/http"
)

// Every response leaves through one of the writers below so the envelope is
// uniform: successes are {"status":"success","data":...} or a bare message,
// failures are {"status":"error","code":...,"message":...} with the code
// drawn from the mapDomainError table.
type errorBody struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, map[string]any{
		"status": "success",
		"data":   data,
	})
}

// writeMessage is for operations whose result is the status transition
// itself (publish, cancel) rather than a resource body.
func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"status":  "success",
		"message": message,
	})
}

func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, errorBody{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

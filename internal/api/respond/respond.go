// Package respond writes JSON responses with the service's permissive
// CORS header set and the stable error envelope.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"shipment-route-service/internal/platform/apperr"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization, X-Request-ID",
}

func setCORS(w http.ResponseWriter) {
	for k, v := range corsHeaders {
		w.Header().Set(k, v)
	}
}

// JSON writes v with status and the CORS header set.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	setCORS(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("response encode failed",
			"method", r.Method, "path", r.URL.Path, "err", err)
	}
}

// errorBody is the envelope every failure response uses.
type errorBody struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// Error classifies err and writes its envelope.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperr.From(err)
	ErrorKind(w, r, ae.Kind, ae.Message)
}

// ErrorKind writes the envelope for an explicit kind and message.
func ErrorKind(w http.ResponseWriter, r *http.Request, kind apperr.Kind, message string) {
	status := kind.Status()
	JSON(w, r, status, errorBody{
		Error:      string(kind),
		Message:    message,
		StatusCode: status,
	})
}

// Preflight answers a CORS preflight request.
func Preflight(w http.ResponseWriter) {
	setCORS(w)
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"shipment-route-service/internal/platform/apperr"
)

var errBadBody = apperr.New(apperr.KindBadRequest, "Invalid JSON body")

// decodeBody decodes a JSON request body into v. An empty body is
// allowed and leaves v untouched; a malformed one maps to bad_request.
func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errBadBody
	}

	return nil
}

// queryInt reads an integer query parameter with a fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return n
}

// rowCount extracts the count field from a `SELECT count() ... GROUP ALL`
// result.
func rowCount(rows []map[string]any) int {
	if len(rows) == 0 {
		return 0
	}
	if n, ok := rows[0]["count"].(float64); ok {
		return int(n)
	}
	return 0
}

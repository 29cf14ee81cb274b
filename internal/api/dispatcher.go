package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"shipment-route-service/internal/api/respond"
	"shipment-route-service/internal/platform/apperr"
)

// HandlerFunc is the unit the dispatcher routes to. Path parameters
// arrive already extracted; query parameters stay on the request.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, params map[string]string)

// placeholder is the pattern segment that matches any run of characters
// excluding the path separator.
const placeholder = "{}"

type rule struct {
	method     string
	segments   []string
	paramNames []string
	handler    HandlerFunc
}

// Dispatcher matches method+path against an ordered rule list,
// first-match-wins. Rules must be registered most-specific-first where
// ambiguity exists; there is no specificity scoring. The rule list is
// immutable once serving starts.
type Dispatcher struct {
	rules  []rule
	logger *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Register appends a rule. Pattern segments equal to "{}" are
// placeholders; paramNames[i] binds the i-th placeholder in declaration
// order. Registration panics on a placeholder/name count mismatch since
// the rule table is static.
func (d *Dispatcher) Register(method, pattern string, paramNames []string, h HandlerFunc) {
	segments := strings.Split(pattern, "/")

	n := 0
	for _, s := range segments {
		if s == placeholder {
			n++
		}
	}
	if n != len(paramNames) {
		panic(fmt.Sprintf("dispatcher: pattern %q has %d placeholders but %d parameter names", pattern, n, len(paramNames)))
	}

	d.rules = append(d.rules, rule{
		method:     method,
		segments:   segments,
		paramNames: paramNames,
		handler:    h,
	})
}

// Match returns the first registered rule whose method and pattern both
// match, with its extracted parameters. No trailing-slash normalization
// is applied and the query string never participates.
func (d *Dispatcher) Match(method, path string) (HandlerFunc, map[string]string, bool) {
	parts := strings.Split(path, "/")

	for _, rl := range d.rules {
		if rl.method != method {
			continue
		}

		params, ok := matchSegments(rl.segments, rl.paramNames, parts)
		if !ok {
			continue
		}

		return rl.handler, params, true
	}

	return nil, nil, false
}

func matchSegments(segments, paramNames, parts []string) (map[string]string, bool) {
	if len(parts) != len(segments) {
		return nil, false
	}

	params := make(map[string]string, len(paramNames))
	i := 0
	for j, seg := range segments {
		if seg == placeholder {
			if parts[j] == "" {
				return nil, false
			}
			params[paramNames[i]] = parts[j]
			i++
			continue
		}
		if seg != parts[j] {
			return nil, false
		}
	}

	return params, true
}

// ServeHTTP dispatches one request: CORS preflight, rule matching, and
// a recovery wrapper guaranteeing exactly one well-formed response.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		respond.Preflight(w)
		return
	}

	handler, params, ok := d.Match(r.Method, r.URL.Path)
	if !ok {
		respond.ErrorKind(w, r, apperr.KindNotFound,
			fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path))
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("handler panicked",
				"method", r.Method, "path", r.URL.Path, "panic", rec)
			respond.ErrorKind(w, r, apperr.KindInternal, "Internal server error")
		}
	}()

	handler(w, r, params)
}

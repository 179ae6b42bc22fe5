package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/byteforge/aegis-frontend/aegis"
	"github.com/byteforge/aegis-frontend/internal/logging"
)

const contentTypeJSON = "application/json; charset=utf-8"
const contentTypeHTML = "text/html; charset=utf-8"

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRaw relays a backend response body verbatim.
func writeRaw(w http.ResponseWriter, statusCode int, data json.RawMessage) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// relayFailure translates a backend failure outcome, falling back to
// the route-appropriate status code when the backend omitted one.
func relayFailure(w http.ResponseWriter, outcome aegis.Outcome, fallback int) {
	statusCode := outcome.StatusCode
	if statusCode == 0 {
		statusCode = fallback
	}
	writeError(w, statusCode, outcome.Err)
}

// serverError is the handler-boundary translation for transport
// failures: log the cause, never leak it to the caller.
func (s *Server) serverError(w http.ResponseWriter, route string, err error) {
	s.logger.Error("Request failed", logging.Extra{"route": route, "error": err.Error()})
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// bearerToken extracts the token from an Authorization header. The
// second return is false for a missing or malformed header.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return token, token != ""
}

// decodeBody parses a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func toString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("%v", v)
}

// redirectWithError redirects to a page with an error message in the query.
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(errorMsg), http.StatusSeeOther)
}

// redirectSuccess redirects to a page after a successful action.
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

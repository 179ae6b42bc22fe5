package server

import (
	"net/http"

	"github.com/byteforge/aegis-frontend/aegis"
	"github.com/byteforge/aegis-frontend/internal/logging"
)

// Tenant-admin proxies. The caller's bearer token identifies them; the
// backend derives their site from the token, so no site id is supplied.

// AdminListUsersHandler lists the users of the caller's own site.
func (s *Server) AdminListUsersHandler() http.HandlerFunc {
	const route = RouteAPIAdminUsers
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}

		outcome, err := s.bearerClient(token).AdminListUsers(r.Context())
		if err != nil {
			s.serverError(w, route, err)
			return
		}
		if !outcome.Success {
			relayFailure(w, outcome, http.StatusInternalServerError)
			return
		}

		s.logger.Info("Admin users listed", logging.Extra{"route": route})
		writeRaw(w, http.StatusOK, outcome.Data)
	}
}

// AdminCreateUserHandler creates a user on the caller's own site.
func (s *Server) AdminCreateUserHandler() http.HandlerFunc {
	const route = RouteAPIAdminUsers
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}

		var body struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		}
		if err := decodeBody(r, &body); err != nil || body.Email == "" {
			writeError(w, http.StatusBadRequest, "Email is required")
			return
		}

		outcome, err := s.bearerClient(token).AdminRegisterUser(r.Context(), body.Email, aegis.ParseRole(body.Role))
		if err != nil {
			s.serverError(w, route, err)
			return
		}
		if !outcome.Success {
			relayFailure(w, outcome, http.StatusInternalServerError)
			return
		}

		s.logger.Info("User created via tenant admin", logging.Extra{"route": route, "email": body.Email})
		writeRaw(w, http.StatusCreated, outcome.Data)
	}
}

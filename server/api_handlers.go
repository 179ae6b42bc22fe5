package server

import (
	"net/http"

	"github.com/byteforge/aegis-frontend/internal/logging"
)

// HealthHandler reports this process plus the backend it fronts. The
// backend being down degrades the report rather than failing it.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		backendURL := s.config.GetBackendURL()

		outcome, err := s.backendClient().HealthCheck(r.Context())
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":      "degraded",
				"frontend":    "ok",
				"backend":     "unreachable",
				"backend_url": backendURL,
				"error":       err.Error(),
			})
			return
		}

		if !outcome.Success {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":      "degraded",
				"frontend":    "ok",
				"backend":     "error",
				"backend_url": backendURL,
				"error":       outcome.Err,
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"status":      "healthy",
			"frontend":    "ok",
			"backend":     "ok",
			"backend_url": backendURL,
		})
	}
}

// SiteHandler resolves a site by domain for the login page.
func (s *Server) SiteHandler() http.HandlerFunc {
	const route = RouteAPISite
	return func(w http.ResponseWriter, r *http.Request) {
		domain := r.URL.Query().Get("domain")
		if domain == "" {
			writeError(w, http.StatusBadRequest, "Domain parameter is required")
			return
		}

		outcome, err := s.backendClient().GetSiteByDomain(r.Context(), domain)
		if err != nil {
			s.serverError(w, route, err)
			return
		}
		if !outcome.Success {
			relayFailure(w, outcome, http.StatusNotFound)
			return
		}
		writeRaw(w, http.StatusOK, outcome.Data)
	}
}

// LoginProxyHandler forwards a tenant login to the backend.
func (s *Server) LoginProxyHandler() http.HandlerFunc {
	const route = RouteAPILogin
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SiteID   int64  `json:"site_id"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &body); err != nil || body.SiteID == 0 || body.Email == "" || body.Password == "" {
			writeError(w, http.StatusBadRequest, "site_id, email, and password are required")
			return
		}

		outcome, err := s.backendClient().Login(r.Context(), body.Email, body.Password, body.SiteID)
		if err != nil {
			s.serverError(w, route, err)
			return
		}
		if !outcome.Success {
			relayFailure(w, outcome, http.StatusUnauthorized)
			return
		}

		s.logger.Info("Login successful", logging.Extra{"route": route})
		writeRaw(w, http.StatusOK, outcome.Data)
	}
}

// ResetPasswordHandler consumes a reset token and new password.
func (s *Server) ResetPasswordHandler() http.HandlerFunc {
	const route = RouteAPIResetPassword
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Token       string `json:"token"`
			NewPassword string `json:"new_password"`
		}
		if err := decodeBody(r, &body); err != nil || body.Token == "" || body.NewPassword == "" {
			writeError(w, http.StatusBadRequest, "Token and new_password are required")
			return
		}

		outcome, err := s.backendClient().ResetPassword(r.Context(), body.Token, body.NewPassword)
		if err != nil {
			s.serverError(w, route, err)
			return
		}
		if !outcome.Success {
			relayFailure(w, outcome, http.StatusBadRequest)
			return
		}

		s.logger.Info("Password reset successful", logging.Extra{"route": route})
		writeRaw(w, http.StatusOK, outcome.Data)
	}
}

// CheckVerificationTokenHandler is the read-only check before email
// verification: it reports whether a password must be collected first.
func (s *Server) CheckVerificationTokenHandler() http.HandlerFunc {
	const route = RouteAPICheckVerificationToken
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Token string `json:"token"`
		}
		if err := decodeBody(r, &body); err != nil || body.Token == "" {
			writeError(w, http.StatusBadRequest, "Token is required")
			return
		}

		outcome, err := s.backendClient().CheckVerificationToken(r.Context(), body.Token)
		if err != nil {
			s.serverError(w, route, err)
			return
		}
		if !outcome.Success {
			relayFailure(w, outcome, http.StatusBadRequest)
			return
		}
		writeRaw(w, http.StatusOK, outcome.Data)
	}
}

// VerifyEmailHandler consumes a verification token, optionally setting
// the user's first password in the same call.
func (s *Server) VerifyEmailHandler() http.HandlerFunc {
	const route = RouteAPIVerifyEmail
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Token    string `json:"token"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &body); err != nil || body.Token == "" {
			writeError(w, http.StatusBadRequest, "Token is required")
			return
		}

		outcome, err := s.backendClient().VerifyEmail(r.Context(), body.Token, body.Password)
		if err != nil {
			s.serverError(w, route, err)
			return
		}
		if !outcome.Success {
			relayFailure(w, outcome, http.StatusBadRequest)
			return
		}

		s.logger.Info("Email verified", logging.Extra{"route": route})
		writeRaw(w, http.StatusOK, outcome.Data)
	}
}

// ConfirmEmailChangeHandler consumes an email-change confirmation token.
func (s *Server) ConfirmEmailChangeHandler() http.HandlerFunc {
	const route = RouteAPIConfirmEmailChange
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Token string `json:"token"`
		}
		if err := decodeBody(r, &body); err != nil || body.Token == "" {
			writeError(w, http.StatusBadRequest, "Token is required")
			return
		}

		outcome, err := s.backendClient().ConfirmEmailChange(r.Context(), body.Token)
		if err != nil {
			s.serverError(w, route, err)
			return
		}
		if !outcome.Success {
			relayFailure(w, outcome, http.StatusBadRequest)
			return
		}

		s.logger.Info("Email change confirmed", logging.Extra{"route": route})
		writeRaw(w, http.StatusOK, outcome.Data)
	}
}

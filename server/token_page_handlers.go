package server

import (
	"net/http"

	"github.com/byteforge/aegis-frontend/aegis"
	"github.com/byteforge/aegis-frontend/status"
)

// Pages driven by an emailed token: password reset, email verification
// (optionally collecting a first password), email-change confirmation.

const minPasswordLength = 8

// VerifyPageData is the template model for the verification flow.
type VerifyPageData struct {
	AppName string
	Status  status.State
	Message string
	Email   string
	Token   string
}

func (s *Server) renderPage(w http.ResponseWriter, templateName string, data any) {
	tmpl, err := ParseTemplate(templateName)
	if err != nil {
		http.Error(w, "Failed to load template", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	_ = tmpl.Execute(w, data)
}

// ResetPasswordPageHandler serves the reset form for an emailed token.
func (s *Server) ResetPasswordPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		data := PageData{
			AppName: s.config.GetAppName(),
			Status:  status.Idle,
			Token:   token,
		}
		if token == "" {
			data.Status, data.Message = projectOutcome(status.Error, "This password reset link is invalid.")
		}
		s.renderPage(w, "reset_password.html", data)
	}
}

// ResetPasswordSubmitHandler validates the form locally, then consumes
// the token against the backend. Mismatched confirmation passwords are
// rejected before any network call.
func (s *Server) ResetPasswordSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		token := r.FormValue("token")
		newPassword := r.FormValue("new_password")
		confirmPassword := r.FormValue("confirm_password")

		data := PageData{AppName: s.config.GetAppName(), Token: token}

		if token == "" {
			data.Status, data.Message = projectOutcome(status.Error, "This password reset link is invalid.")
			s.renderPage(w, "reset_password.html", data)
			return
		}
		if len(newPassword) < minPasswordLength {
			data.Status, data.Message = projectOutcome(status.Error, "Password must be at least 8 characters.")
			s.renderPage(w, "reset_password.html", data)
			return
		}
		if newPassword != confirmPassword {
			data.Status, data.Message = projectOutcome(status.Error, "Passwords do not match.")
			s.renderPage(w, "reset_password.html", data)
			return
		}

		outcome, err := s.backendClient().ResetPassword(r.Context(), token, newPassword)
		if err != nil {
			data.Status, data.Message = projectOutcome(status.Error, "Network error, please try again.")
			s.renderPage(w, "reset_password.html", data)
			return
		}
		if !outcome.Success {
			data.Status, data.Message = projectOutcome(status.Error, outcome.Err)
			s.renderPage(w, "reset_password.html", data)
			return
		}

		data.Status, data.Message = projectOutcome(status.Success, "Your password has been reset. You can now sign in.")
		s.renderPage(w, "reset_password.html", data)
	}
}

// VerifyEmailPageHandler checks the token before verifying: tokens for
// admin-created users first require a password to be set, self-
// registered users verify immediately.
func (s *Server) VerifyEmailPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		data := VerifyPageData{AppName: s.config.GetAppName(), Token: token}

		if token == "" {
			data.Status, data.Message = projectOutcome(status.Error, "This verification link is invalid.")
			s.renderPage(w, "verify_email.html", data)
			return
		}

		checkOutcome, err := s.backendClient().CheckVerificationToken(r.Context(), token)
		if err != nil {
			data.Status, data.Message = projectOutcome(status.Error, "Network error, please try again.")
			s.renderPage(w, "verify_email.html", data)
			return
		}
		if !checkOutcome.Success {
			data.Status, data.Message = projectOutcome(status.Error, checkOutcome.Err)
			s.renderPage(w, "verify_email.html", data)
			return
		}

		tokenStatus, err := aegis.Decode[aegis.TokenStatus](checkOutcome)
		if err != nil {
			data.Status, data.Message = projectOutcome(status.Error, "Verification failed, please try again.")
			s.renderPage(w, "verify_email.html", data)
			return
		}

		if tokenStatus.PasswordRequired {
			data.Status, data.Message = projectOutcome(status.PasswordRequired, "")
			data.Email = tokenStatus.Email
			s.renderPage(w, "verify_email.html", data)
			return
		}

		s.verifyAndRender(w, r, token, "")
	}
}

// VerifyEmailSubmitHandler handles the password-setup step. Password
// rules are checked locally; a mismatch never reaches the backend.
func (s *Server) VerifyEmailSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		token := r.FormValue("token")
		password := r.FormValue("password")
		confirmPassword := r.FormValue("confirm_password")
		email := r.FormValue("email")

		data := VerifyPageData{
			AppName: s.config.GetAppName(),
			Token:   token,
			Email:   email,
		}

		if token == "" {
			data.Status, data.Message = projectOutcome(status.Error, "This verification link is invalid.")
			s.renderPage(w, "verify_email.html", data)
			return
		}
		if len(password) < minPasswordLength {
			data.Status, data.Message = projectOutcome(status.PasswordRequired, "Password must be at least 8 characters.")
			s.renderPage(w, "verify_email.html", data)
			return
		}
		if password != confirmPassword {
			data.Status, data.Message = projectOutcome(status.PasswordRequired, "Passwords do not match.")
			s.renderPage(w, "verify_email.html", data)
			return
		}

		s.verifyAndRender(w, r, token, password)
	}
}

// verifyAndRender performs the verification call and renders either the
// countdown redirect or the terminal result.
func (s *Server) verifyAndRender(w http.ResponseWriter, r *http.Request, token, password string) {
	data := VerifyPageData{AppName: s.config.GetAppName(), Token: token}

	outcome, err := s.backendClient().VerifyEmail(r.Context(), token, password)
	if err != nil {
		data.Status, data.Message = projectOutcome(status.Error, "Network error, please try again.")
		s.renderPage(w, "verify_email.html", data)
		return
	}
	if !outcome.Success {
		data.Status, data.Message = projectOutcome(status.Error, outcome.Err)
		s.renderPage(w, "verify_email.html", data)
		return
	}

	var result struct {
		RedirectURL string `json:"redirect_url"`
	}
	if decoded, err := aegis.Decode[map[string]any](outcome); err == nil {
		if u, ok := decoded["redirect_url"].(string); ok {
			result.RedirectURL = u
		}
	}

	if result.RedirectURL != "" {
		s.renderDelayedRedirect(w, RedirectData{
			AppName:          s.config.GetAppName(),
			Title:            "Email verified",
			Message:          "Your email address has been verified.",
			TargetURL:        result.RedirectURL,
			CountdownSeconds: status.VerifyCountdownSeconds,
		})
		return
	}

	data.Status, data.Message = projectOutcome(status.Success, "Your email address has been verified.")
	s.renderPage(w, "verify_email.html", data)
}

// ConfirmEmailChangePageHandler consumes an email-change token on load,
// mirroring how the emailed link is expected to behave.
func (s *Server) ConfirmEmailChangePageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		data := PageData{AppName: s.config.GetAppName(), Token: token}

		if token == "" {
			data.Status, data.Message = projectOutcome(status.Error, "This confirmation link is invalid.")
			s.renderPage(w, "confirm_email_change.html", data)
			return
		}

		outcome, err := s.backendClient().ConfirmEmailChange(r.Context(), token)
		if err != nil {
			data.Status, data.Message = projectOutcome(status.Error, "Network error, please try again.")
			s.renderPage(w, "confirm_email_change.html", data)
			return
		}
		if !outcome.Success {
			data.Status, data.Message = projectOutcome(status.Error, outcome.Err)
			s.renderPage(w, "confirm_email_change.html", data)
			return
		}

		data.Status, data.Message = projectOutcome(status.Success, "Your email address has been updated.")
		s.renderPage(w, "confirm_email_change.html", data)
	}
}

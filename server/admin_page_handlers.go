package server

import (
	"net/http"
	"net/url"

	"github.com/byteforge/aegis-frontend/aegis"
	"github.com/byteforge/aegis-frontend/internal/logging"
	"github.com/byteforge/aegis-frontend/status"
	"github.com/byteforge/aegis-frontend/webstore"
)

// AdminPageData is the template model for the tenant admin console.
type AdminPageData struct {
	AppName  string
	SiteName string
	Users    []aegis.User
	Status   status.State
	Message  string
}

// AdminPageHandler renders the tenant admin console: the site's user
// table plus the create-user form. Runs behind the tenant route guard.
func (s *Server) AdminPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		data := AdminPageData{
			AppName:  s.config.GetAppName(),
			SiteName: session.SiteName,
			Status:   status.Idle,
		}
		if errorMsg := r.URL.Query().Get("error"); errorMsg != "" {
			data.Status, data.Message = projectOutcome(status.Error, errorMsg)
		} else if notice := r.URL.Query().Get("notice"); notice != "" {
			data.Status, data.Message = projectOutcome(status.Success, notice)
		}

		outcome, err := s.bearerClient(session.AccessToken).AdminListUsers(r.Context())
		if err != nil {
			data.Status, data.Message = projectOutcome(status.Error, "Could not load users, please try again.")
			s.renderPage(w, "admin.html", data)
			return
		}
		if !outcome.Success {
			// Token expiry is only discovered here; the store keeps no
			// expiry of its own.
			if outcome.StatusCode == http.StatusUnauthorized {
				s.store.Clear(w, webstore.ScopeTenantAdmin)
				redirectWithError(w, r, RouteLogin, "Your session has expired, please sign in again")
				return
			}
			data.Status, data.Message = projectOutcome(status.Error, outcome.Err)
			s.renderPage(w, "admin.html", data)
			return
		}

		users, err := aegis.Decode[[]aegis.User](outcome)
		if err != nil {
			data.Status, data.Message = projectOutcome(status.Error, "Could not load users, please try again.")
			s.renderPage(w, "admin.html", data)
			return
		}

		data.Users = users
		s.renderPage(w, "admin.html", data)
	}
}

// AdminCreateUserSubmitHandler processes the create-user form and
// bounces back to the console with the result.
func (s *Server) AdminCreateUserSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		role := r.FormValue("role")
		if email == "" {
			redirectWithError(w, r, RouteAdmin, "Email is required")
			return
		}

		outcome, err := s.bearerClient(session.AccessToken).AdminRegisterUser(r.Context(), email, aegis.ParseRole(role))
		if err != nil {
			redirectWithError(w, r, RouteAdmin, "Could not create the user, please try again")
			return
		}
		if !outcome.Success {
			redirectWithError(w, r, RouteAdmin, outcome.Err)
			return
		}

		s.logger.Info("User created via tenant admin", logging.Extra{
			"route": RouteAdminCreateUser,
			"email": email,
		})
		http.Redirect(w, r, RouteAdmin+"?notice="+url.QueryEscape("Invitation sent to "+email), http.StatusSeeOther)
	}
}

package server

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/byteforge/aegis-frontend/aegis"
	"github.com/byteforge/aegis-frontend/internal/logging"
	"github.com/byteforge/aegis-frontend/status"
	"github.com/byteforge/aegis-frontend/webstore"
)

// AegisPageData is the template model for the super-admin console.
type AegisPageData struct {
	AppName  string
	Sites    []aegis.Site
	Users    []aegis.User
	SiteID   int64
	SiteName string
	Status   status.State
	Message  string
}

// AegisLoginPageHandler serves the super-admin login form.
func (s *Server) AegisLoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{
			AppName: s.config.GetAppName(),
			Status:  status.Idle,
			Email:   r.URL.Query().Get("email"),
		}
		if errorMsg := r.URL.Query().Get("error"); errorMsg != "" {
			data.Status, data.Message = projectOutcome(status.Error, errorMsg)
		}
		s.renderPage(w, "aegis_login.html", data)
	}
}

// AegisLoginSubmitHandler logs a super-admin in against the configured
// admin site. The admin site id never reaches the browser.
func (s *Server) AegisLoginSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminDomain := s.config.GetAegisAdminDomain()
		if adminDomain == "" {
			http.Error(w, "AEGIS_ADMIN_DOMAIN is not configured", http.StatusInternalServerError)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")
		if email == "" || password == "" {
			s.redirectLoginError(w, r, RouteAegisLogin, "Email and password are required", email)
			return
		}

		client := s.backendClient()

		siteOutcome, err := client.GetSiteByDomain(r.Context(), adminDomain)
		if err != nil || !siteOutcome.Success {
			s.redirectLoginError(w, r, RouteAegisLogin, "Admin site not found", email)
			return
		}
		site, err := aegis.Decode[aegis.Site](siteOutcome)
		if err != nil {
			s.redirectLoginError(w, r, RouteAegisLogin, "Admin site not found", email)
			return
		}

		loginOutcome, err := client.Login(r.Context(), email, password, site.ID)
		if err != nil {
			s.redirectLoginError(w, r, RouteAegisLogin, "Login failed, please try again", email)
			return
		}
		if !loginOutcome.Success {
			s.redirectLoginError(w, r, RouteAegisLogin, loginOutcome.Err, email)
			return
		}

		result, err := aegis.Decode[aegis.LoginResult](loginOutcome)
		if err != nil {
			s.redirectLoginError(w, r, RouteAegisLogin, "Login failed, please try again", email)
			return
		}

		session := webstore.Session{
			AccessToken:  result.AuthToken.Token,
			RefreshToken: result.RefreshToken.Token,
			UserID:       result.AuthToken.UserID,
			SiteID:       site.ID,
			SiteName:     site.Name,
			Scope:        webstore.ScopeAegisAdmin,
		}
		if err := s.store.Save(w, session); err != nil {
			s.redirectLoginError(w, r, RouteAegisLogin, "Failed to create session", email)
			return
		}

		s.logger.Info("Aegis admin login successful", logging.Extra{"route": RouteAegisLogin})
		s.renderDelayedRedirect(w, RedirectData{
			AppName:   s.config.GetAppName(),
			Title:     "Signed in",
			Message:   "Login successful, taking you to the dashboard.",
			TargetURL: RouteAegisDashboard,
			DelayMs:   status.LoginRedirectDelay.Milliseconds(),
		})
	}
}

// AegisLogoutHandler clears the super-admin session.
func (s *Server) AegisLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.store.Clear(w, webstore.ScopeAegisAdmin)
		redirectSuccess(w, r, RouteAegisLogin)
	}
}

// AegisDashboardHandler renders the cross-site console: every
// configured site with a link into its user management page.
func (s *Server) AegisDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := AegisPageData{AppName: s.config.GetAppName(), Status: status.Idle}

		if s.config.GetMasterAPIKey() == "" {
			data.Status, data.Message = projectOutcome(status.Error, "MASTER_API_KEY is not configured")
			s.renderPage(w, "aegis_dashboard.html", data)
			return
		}

		outcome, err := s.masterClient().ListSites(r.Context())
		if err != nil {
			data.Status, data.Message = projectOutcome(status.Error, "Could not load sites, please try again.")
			s.renderPage(w, "aegis_dashboard.html", data)
			return
		}
		if !outcome.Success {
			if outcome.StatusCode == http.StatusUnauthorized {
				s.store.Clear(w, webstore.ScopeAegisAdmin)
				redirectWithError(w, r, RouteAegisLogin, "Your session has expired, please sign in again")
				return
			}
			data.Status, data.Message = projectOutcome(status.Error, outcome.Err)
			s.renderPage(w, "aegis_dashboard.html", data)
			return
		}

		sites, err := aegis.Decode[[]aegis.Site](outcome)
		if err != nil {
			data.Status, data.Message = projectOutcome(status.Error, "Could not load sites, please try again.")
			s.renderPage(w, "aegis_dashboard.html", data)
			return
		}

		data.Sites = sites
		s.renderPage(w, "aegis_dashboard.html", data)
	}
}

// AegisSiteUsersPageHandler renders user management for one site.
func (s *Server) AegisSiteUsersPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := AegisPageData{
			AppName: s.config.GetAppName(),
			Status:  status.Idle,
		}
		if errorMsg := r.URL.Query().Get("error"); errorMsg != "" {
			data.Status, data.Message = projectOutcome(status.Error, errorMsg)
		} else if notice := r.URL.Query().Get("notice"); notice != "" {
			data.Status, data.Message = projectOutcome(status.Success, notice)
		}

		if s.config.GetMasterAPIKey() == "" {
			data.Status, data.Message = projectOutcome(status.Error, "MASTER_API_KEY is not configured")
			s.renderPage(w, "aegis_site_users.html", data)
			return
		}

		siteID, ok := siteIDFromPath(r)
		if !ok {
			http.Error(w, "Invalid site ID", http.StatusBadRequest)
			return
		}
		data.SiteID = siteID

		outcome, err := s.masterClient().ListUsersBySite(r.Context(), siteID)
		if err != nil {
			data.Status, data.Message = projectOutcome(status.Error, "Could not load users, please try again.")
			s.renderPage(w, "aegis_site_users.html", data)
			return
		}
		if !outcome.Success {
			data.Status, data.Message = projectOutcome(status.Error, outcome.Err)
			s.renderPage(w, "aegis_site_users.html", data)
			return
		}

		users, err := aegis.Decode[[]aegis.User](outcome)
		if err != nil {
			data.Status, data.Message = projectOutcome(status.Error, "Could not load users, please try again.")
			s.renderPage(w, "aegis_site_users.html", data)
			return
		}

		data.Users = users
		s.renderPage(w, "aegis_site_users.html", data)
	}
}

// AegisCreateSiteUserSubmitHandler processes the per-site create-user
// form and bounces back to the site page with the result.
func (s *Server) AegisCreateSiteUserSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.GetMasterAPIKey() == "" {
			http.Error(w, "MASTER_API_KEY is not configured", http.StatusInternalServerError)
			return
		}

		siteID, ok := siteIDFromPath(r)
		if !ok {
			http.Error(w, "Invalid site ID", http.StatusBadRequest)
			return
		}
		sitePage := fmt.Sprintf("/aegis-admin/sites/%d", siteID)

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		role := r.FormValue("role")
		if email == "" {
			redirectWithError(w, r, sitePage, "Email is required")
			return
		}

		outcome, err := s.masterClient().RegisterSiteUser(r.Context(), email, siteID, aegis.ParseRole(role))
		if err != nil {
			redirectWithError(w, r, sitePage, "Could not create the user, please try again")
			return
		}
		if !outcome.Success {
			redirectWithError(w, r, sitePage, outcome.Err)
			return
		}

		s.logger.Info("User created via aegis admin", logging.Extra{
			"route": RouteAegisSiteCreateUser,
			"email": email,
		})
		http.Redirect(w, r, sitePage+"?notice="+url.QueryEscape("Invitation sent to "+email), http.StatusSeeOther)
	}
}

package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/byteforge/aegis-frontend/aegis"
	"github.com/byteforge/aegis-frontend/status"
	"github.com/byteforge/aegis-frontend/webstore"
)

// PageData is the template model shared by the public pages.
type PageData struct {
	AppName  string
	SiteName string
	Status   status.State
	Message  string
	Email    string
	Token    string
}

// RedirectData drives the post-success redirect pages: a short fixed
// delay after login, a visible countdown after verification.
type RedirectData struct {
	AppName          string
	Title            string
	Message          string
	TargetURL        string
	DelayMs          int64
	CountdownSeconds int
}

// projectOutcome walks one submit cycle through the status transition
// table: enter Loading, then settle on the outcome state. Pages render
// the settled projection; an invalid outcome keeps the prior state.
func projectOutcome(to status.State, message string) (status.State, string) {
	p := status.Projection{State: status.Idle}
	_ = p.Advance(status.Loading, "")
	_ = p.Advance(to, message)
	return p.State, p.Message
}

// siteDomain derives the tenant domain from the request host.
func siteDomain(r *http.Request) string {
	host := r.Host
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return host
}

// IndexHandler renders the home page
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{AppName: s.config.GetAppName()}

		// Best effort: show the resolved site name when the backend
		// knows this domain. The home page renders either way.
		if outcome, err := s.backendClient().GetSiteByDomain(r.Context(), siteDomain(r)); err == nil && outcome.Success {
			if site, err := aegis.Decode[aegis.Site](outcome); err == nil {
				data.SiteName = site.Name
			}
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// LoginPageHandler serves the tenant login form.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{
			AppName: s.config.GetAppName(),
			Status:  status.Idle,
			Email:   r.URL.Query().Get("email"),
		}
		if errorMsg := r.URL.Query().Get("error"); errorMsg != "" {
			data.Status, data.Message = projectOutcome(status.Error, errorMsg)
		}

		if outcome, err := s.backendClient().GetSiteByDomain(r.Context(), siteDomain(r)); err == nil && outcome.Success {
			if site, err := aegis.Decode[aegis.Site](outcome); err == nil {
				data.SiteName = site.Name
			}
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// LoginSubmitHandler processes the tenant login form. On success the
// session is persisted and a short delayed redirect to the dashboard
// is rendered.
func (s *Server) LoginSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")

		if email == "" || password == "" {
			s.redirectLoginError(w, r, RouteLogin, "Email and password are required", email)
			return
		}

		client := s.backendClient()

		siteOutcome, err := client.GetSiteByDomain(r.Context(), siteDomain(r))
		if err != nil || !siteOutcome.Success {
			s.redirectLoginError(w, r, RouteLogin, "Site not found for this domain", email)
			return
		}
		site, err := aegis.Decode[aegis.Site](siteOutcome)
		if err != nil {
			s.redirectLoginError(w, r, RouteLogin, "Site not found for this domain", email)
			return
		}

		loginOutcome, err := client.Login(r.Context(), email, password, site.ID)
		if err != nil {
			s.redirectLoginError(w, r, RouteLogin, "Login failed, please try again", email)
			return
		}
		if !loginOutcome.Success {
			s.redirectLoginError(w, r, RouteLogin, loginOutcome.Err, email)
			return
		}

		result, err := aegis.Decode[aegis.LoginResult](loginOutcome)
		if err != nil {
			s.redirectLoginError(w, r, RouteLogin, "Login failed, please try again", email)
			return
		}

		session := webstore.Session{
			AccessToken:  result.AuthToken.Token,
			RefreshToken: result.RefreshToken.Token,
			UserID:       result.AuthToken.UserID,
			SiteID:       site.ID,
			SiteName:     site.Name,
			Scope:        webstore.ScopeTenantAdmin,
		}
		if err := s.store.Save(w, session); err != nil {
			s.redirectLoginError(w, r, RouteLogin, "Failed to create session", email)
			return
		}

		s.renderDelayedRedirect(w, RedirectData{
			AppName:   s.config.GetAppName(),
			Title:     "Signed in",
			Message:   "Login successful, taking you to the dashboard.",
			TargetURL: RouteAdmin,
			DelayMs:   status.LoginRedirectDelay.Milliseconds(),
		})
	}
}

// LogoutHandler clears the tenant session.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.store.Clear(w, webstore.ScopeTenantAdmin)
		redirectSuccess(w, r, RouteLogin)
	}
}

// redirectLoginError sends the user back to a login form, preserving
// the typed email.
func (s *Server) redirectLoginError(w http.ResponseWriter, r *http.Request, loginRoute, errorMsg, email string) {
	fullPath := loginRoute + "?error=" + url.QueryEscape(errorMsg)
	if email != "" {
		fullPath += "&email=" + url.QueryEscape(email)
	}
	http.Redirect(w, r, fullPath, http.StatusSeeOther)
}

func (s *Server) renderDelayedRedirect(w http.ResponseWriter, data RedirectData) {
	tmpl, err := ParseTemplate("redirect.html")
	if err != nil {
		http.Error(w, "Failed to load template", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	_ = tmpl.Execute(w, data)
}

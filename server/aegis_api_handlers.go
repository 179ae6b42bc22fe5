package server

import (
	"net/http"
	"strconv"

	"github.com/byteforge/aegis-frontend/aegis"
	"github.com/byteforge/aegis-frontend/internal/logging"
)

// Aegis (super-admin) proxies. The proxy authenticates to the backend
// with the server-held master key; the inbound bearer token only gates
// whether the caller may ask the proxy at all. Precondition order is
// configuration, then authorization, then input.

// AegisSiteHandler resolves the designated admin site from server
// configuration.
func (s *Server) AegisSiteHandler() http.HandlerFunc {
	const route = RouteAPIAegisSite
	return func(w http.ResponseWriter, r *http.Request) {
		adminDomain := s.config.GetAegisAdminDomain()
		if adminDomain == "" {
			writeError(w, http.StatusInternalServerError, "AEGIS_ADMIN_DOMAIN is not configured")
			return
		}

		outcome, err := s.backendClient().GetSiteByDomain(r.Context(), adminDomain)
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

// AegisLoginHandler logs a super-admin in against the admin site,
// resolving the site id server-side so it never reaches the browser.
func (s *Server) AegisLoginHandler() http.HandlerFunc {
	const route = RouteAPIAegisLogin
	return func(w http.ResponseWriter, r *http.Request) {
		adminDomain := s.config.GetAegisAdminDomain()
		if adminDomain == "" {
			writeError(w, http.StatusInternalServerError, "AEGIS_ADMIN_DOMAIN is not configured")
			return
		}

		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &body); err != nil || body.Email == "" || body.Password == "" {
			writeError(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		client := s.backendClient()

		siteOutcome, err := client.GetSiteByDomain(r.Context(), adminDomain)
		if err != nil {
			s.serverError(w, route, err)
			return
		}
		if !siteOutcome.Success {
			writeError(w, http.StatusInternalServerError, "Admin site not found")
			return
		}
		site, err := aegis.Decode[aegis.Site](siteOutcome)
		if err != nil {
			s.serverError(w, route, err)
			return
		}

		loginOutcome, err := client.Login(r.Context(), body.Email, body.Password, site.ID)
		if err != nil {
			s.serverError(w, route, err)
			return
		}
		if !loginOutcome.Success {
			relayFailure(w, loginOutcome, http.StatusUnauthorized)
			return
		}

		s.logger.Info("Aegis admin login successful", logging.Extra{"route": route})
		writeRaw(w, http.StatusOK, loginOutcome.Data)
	}
}

// AegisListSitesHandler lists every configured site.
func (s *Server) AegisListSitesHandler() http.HandlerFunc {
	const route = RouteAPIAegisSites
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.GetMasterAPIKey() == "" {
			writeError(w, http.StatusInternalServerError, "MASTER_API_KEY is not configured")
			return
		}
		if _, ok := bearerToken(r); !ok {
			writeError(w, http.StatusUnauthorized, "Authorization required")
			return
		}

		outcome, err := s.masterClient().ListSites(r.Context())
		if err != nil {
			s.serverError(w, route, err)
			return
		}
		if !outcome.Success {
			relayFailure(w, outcome, http.StatusInternalServerError)
			return
		}

		s.logger.Info("Sites listed", logging.Extra{"route": route})
		writeRaw(w, http.StatusOK, outcome.Data)
	}
}

// siteIDFromPath parses the {siteId} path segment.
func siteIDFromPath(r *http.Request) (int64, bool) {
	siteID, err := strconv.ParseInt(r.PathValue("siteId"), 10, 64)
	return siteID, err == nil
}

// AegisListSiteUsersHandler lists the users of an explicit site.
func (s *Server) AegisListSiteUsersHandler() http.HandlerFunc {
	const route = RouteAPIAegisSiteUsers
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.GetMasterAPIKey() == "" {
			writeError(w, http.StatusInternalServerError, "MASTER_API_KEY is not configured")
			return
		}
		if _, ok := bearerToken(r); !ok {
			writeError(w, http.StatusUnauthorized, "Authorization required")
			return
		}
		siteID, ok := siteIDFromPath(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid site ID")
			return
		}

		outcome, err := s.masterClient().ListUsersBySite(r.Context(), siteID)
		if err != nil {
			s.serverError(w, route, err)
			return
		}
		if !outcome.Success {
			relayFailure(w, outcome, http.StatusInternalServerError)
			return
		}

		s.logger.Info("Site users listed", logging.Extra{
			"route":   route,
			"site_id": strconv.FormatInt(siteID, 10),
		})
		writeRaw(w, http.StatusOK, outcome.Data)
	}
}

// AegisCreateSiteUserHandler creates a user on an explicit site.
func (s *Server) AegisCreateSiteUserHandler() http.HandlerFunc {
	const route = RouteAPIAegisSiteUsers
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.GetMasterAPIKey() == "" {
			writeError(w, http.StatusInternalServerError, "MASTER_API_KEY is not configured")
			return
		}
		if _, ok := bearerToken(r); !ok {
			writeError(w, http.StatusUnauthorized, "Authorization required")
			return
		}
		siteID, ok := siteIDFromPath(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid site ID")
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

		outcome, err := s.masterClient().RegisterSiteUser(r.Context(), body.Email, siteID, aegis.ParseRole(body.Role))
		if err != nil {
			s.serverError(w, route, err)
			return
		}
		if !outcome.Success {
			relayFailure(w, outcome, http.StatusInternalServerError)
			return
		}

		s.logger.Info("User created via aegis admin", logging.Extra{
			"route":   route,
			"email":   body.Email,
			"site_id": strconv.FormatInt(siteID, 10),
		})
		writeRaw(w, http.StatusCreated, outcome.Data)
	}
}

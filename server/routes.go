package server

import (
	"github.com/byteforge/aegis-frontend/webstore"
)

func (s *Server) initRoutes() {
	guardTenant := s.RequireSession(webstore.ScopeTenantAdmin)
	guardAegis := s.RequireSession(webstore.ScopeAegisAdmin)

	// PAGES - public
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmitHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	s.RegisterRouteHandler("GET "+RouteResetPassword, ChainMiddleware(s.ResetPasswordPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteResetPassword, ChainMiddleware(s.ResetPasswordSubmitHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteVerifyEmail, ChainMiddleware(s.VerifyEmailPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteVerifyEmail, ChainMiddleware(s.VerifyEmailSubmitHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteConfirmEmailChange, ChainMiddleware(s.ConfirmEmailChangePageHandler(), s.HTMLMiddleWare()...))

	// PAGES - tenant admin console (route guarded)
	s.RegisterRouteHandler("GET "+RouteAdmin, ChainMiddleware(s.AdminPageHandler(), s.HTMLMiddleWare(guardTenant)...))
	s.RegisterRouteHandler("POST "+RouteAdminCreateUser, ChainMiddleware(s.AdminCreateUserSubmitHandler(), s.HTMLMiddleWare(guardTenant)...))

	// PAGES - aegis super-admin console (route guarded)
	s.RegisterRouteHandler("GET "+RouteAegisLogin, ChainMiddleware(s.AegisLoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAegisLogin, ChainMiddleware(s.AegisLoginSubmitHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAegisLogout, ChainMiddleware(s.AegisLogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAegisDashboard, ChainMiddleware(s.AegisDashboardHandler(), s.HTMLMiddleWare(guardAegis)...))
	s.RegisterRouteHandler("GET "+RouteAegisSiteUsers, ChainMiddleware(s.AegisSiteUsersPageHandler(), s.HTMLMiddleWare(guardAegis)...))
	s.RegisterRouteHandler("POST "+RouteAegisSiteCreateUser, ChainMiddleware(s.AegisCreateSiteUserSubmitHandler(), s.HTMLMiddleWare(guardAegis)...))

	// API proxy routes - public
	s.RegisterRouteHandler("GET "+RouteAPIHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPISite, ChainMiddleware(s.SiteHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPILogin, ChainMiddleware(s.LoginProxyHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIResetPassword, ChainMiddleware(s.ResetPasswordHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPICheckVerificationToken, ChainMiddleware(s.CheckVerificationTokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIVerifyEmail, ChainMiddleware(s.VerifyEmailHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIConfirmEmailChange, ChainMiddleware(s.ConfirmEmailChangeHandler(), s.APIMiddleware()...))

	// API proxy routes - tenant admin (bearer token)
	s.RegisterRouteHandler("GET "+RouteAPIAdminUsers, ChainMiddleware(s.AdminListUsersHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIAdminUsers, ChainMiddleware(s.AdminCreateUserHandler(), s.APIMiddleware()...))

	// API proxy routes - aegis admin (master key)
	s.RegisterRouteHandler("GET "+RouteAPIAegisSite, ChainMiddleware(s.AegisSiteHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIAegisLogin, ChainMiddleware(s.AegisLoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIAegisSites, ChainMiddleware(s.AegisListSitesHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIAegisSiteUsers, ChainMiddleware(s.AegisListSiteUsersHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIAegisSiteUsers, ChainMiddleware(s.AegisCreateSiteUserHandler(), s.APIMiddleware()...))

	// Operational
	if s.metrics != nil {
		s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())
	}
}

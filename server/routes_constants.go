package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Page Routes
	RouteHome               = "/"
	RouteLogin              = "/login"
	RouteLogout             = "/logout"
	RouteAdmin              = "/admin"
	RouteAdminCreateUser    = "/admin/users"
	RouteResetPassword      = "/reset-password"
	RouteVerifyEmail        = "/verify-email"
	RouteConfirmEmailChange = "/confirm-email-change"

	// Aegis (super-admin) Page Routes
	RouteAegisLogin          = "/aegis-admin/login"
	RouteAegisLogout         = "/aegis-admin/logout"
	RouteAegisDashboard      = "/aegis-admin/dashboard"
	RouteAegisSiteUsers      = "/aegis-admin/sites/{siteId}"
	RouteAegisSiteCreateUser = "/aegis-admin/sites/{siteId}/users"

	// API Proxy Routes - public
	RouteAPIHealth                 = "/api/health"
	RouteAPISite                   = "/api/site"
	RouteAPILogin                  = "/api/login"
	RouteAPIResetPassword          = "/api/reset-password"
	RouteAPICheckVerificationToken = "/api/check-verification-token"
	RouteAPIVerifyEmail            = "/api/verify-email"
	RouteAPIConfirmEmailChange     = "/api/confirm-email-change"

	// API Proxy Routes - tenant admin (bearer token scoped)
	RouteAPIAdminUsers = "/api/admin/users"

	// API Proxy Routes - aegis admin (master key scoped)
	RouteAPIAegisSite      = "/api/aegis-admin/site"
	RouteAPIAegisLogin     = "/api/aegis-admin/login"
	RouteAPIAegisSites     = "/api/aegis-admin/sites"
	RouteAPIAegisSiteUsers = "/api/aegis-admin/sites/{siteId}/users"

	// Operational
	RouteMetrics = "/metrics"
)

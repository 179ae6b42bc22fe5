package aegis

import (
	"context"
	"fmt"
	"net/url"
)

// HealthCheck reports whether the backend considers itself healthy.
func (c *Client) HealthCheck(ctx context.Context) (Outcome, error) {
	return c.get(ctx, "/health")
}

// GetSiteByDomain resolves a site by its configured domain.
func (c *Client) GetSiteByDomain(ctx context.Context, domain string) (Outcome, error) {
	return c.get(ctx, "/sites/by-domain?domain="+url.QueryEscape(domain))
}

// Login authenticates a user against a site.
func (c *Client) Login(ctx context.Context, email, password string, siteID int64) (Outcome, error) {
	return c.post(ctx, "/auth/login", map[string]any{
		"site_id":  siteID,
		"email":    email,
		"password": password,
	})
}

// AdminListUsers lists users for the caller's own site. The backend
// derives the site from the bearer token; no site id is supplied.
func (c *Client) AdminListUsers(ctx context.Context) (Outcome, error) {
	return c.get(ctx, "/admin/users")
}

// AdminRegisterUser creates a user on the caller's own site.
func (c *Client) AdminRegisterUser(ctx context.Context, email string, role UserRole) (Outcome, error) {
	return c.post(ctx, "/admin/users", map[string]any{
		"email": email,
		"role":  role,
	})
}

// ListSites lists every configured site. Master-key scoped.
func (c *Client) ListSites(ctx context.Context) (Outcome, error) {
	return c.get(ctx, "/master/sites")
}

// ListUsersBySite lists the users of an explicit site. Master-key scoped.
func (c *Client) ListUsersBySite(ctx context.Context, siteID int64) (Outcome, error) {
	return c.get(ctx, fmt.Sprintf("/master/sites/%d/users", siteID))
}

// RegisterSiteUser creates a user on an explicit site. Master-key scoped.
func (c *Client) RegisterSiteUser(ctx context.Context, email string, siteID int64, role UserRole) (Outcome, error) {
	return c.post(ctx, fmt.Sprintf("/master/sites/%d/users", siteID), map[string]any{
		"email": email,
		"role":  role,
	})
}

// ResetPassword consumes a reset token and sets a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (Outcome, error) {
	return c.post(ctx, "/auth/reset-password", map[string]any{
		"token":        token,
		"new_password": newPassword,
	})
}

// CheckVerificationToken is a read-only probe reporting whether the
// verification token needs a password collected first.
func (c *Client) CheckVerificationToken(ctx context.Context, token string) (Outcome, error) {
	return c.post(ctx, "/auth/verify-email/check", map[string]any{
		"token": token,
	})
}

// VerifyEmail consumes a verification token. password is optional and
// only sent when the token requires one to be set.
func (c *Client) VerifyEmail(ctx context.Context, token, password string) (Outcome, error) {
	body := map[string]any{"token": token}
	if password != "" {
		body["password"] = password
	}
	return c.post(ctx, "/auth/verify-email", body)
}

// ConfirmEmailChange consumes an email-change confirmation token.
func (c *Client) ConfirmEmailChange(ctx context.Context, token string) (Outcome, error) {
	return c.post(ctx, "/auth/confirm-email-change", map[string]any{
		"token": token,
	})
}

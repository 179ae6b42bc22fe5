package server_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResetPasswordPageWithoutToken(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/reset-password", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "This password reset link is invalid.")
	require.Zero(t, f.backend.hits.Load())
}

func TestResetPasswordPageCarriesToken(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/reset-password?token=tok-123", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "tok-123")
}

func TestResetPasswordSubmitShortPassword(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(formRequest("/reset-password", url.Values{
		"token":            {"tok-123"},
		"new_password":     {"short"},
		"confirm_password": {"short"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Password must be at least 8 characters.")
	require.Zero(t, f.backend.hits.Load(), "local validation must not reach the backend")
}

func TestResetPasswordSubmitMismatch(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(formRequest("/reset-password", url.Values{
		"token":            {"tok-123"},
		"new_password":     {"password-one"},
		"confirm_password": {"password-two"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Passwords do not match.")
	require.Zero(t, f.backend.hits.Load())
}

func TestResetPasswordSubmitSuccess(t *testing.T) {
	f := newTestFixture(t)
	f.backend.respond("POST /auth/reset-password", http.StatusOK, `{"message":"ok"}`)

	rec := f.do(formRequest("/reset-password", url.Values{
		"token":            {"tok-123"},
		"new_password":     {"longenough"},
		"confirm_password": {"longenough"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Your password has been reset.")
}

func TestResetPasswordSubmitExpiredToken(t *testing.T) {
	f := newTestFixture(t)
	f.backend.respond("POST /auth/reset-password", http.StatusBadRequest, `{"error":"Token expired"}`)

	rec := f.do(formRequest("/reset-password", url.Values{
		"token":            {"tok-123"},
		"new_password":     {"longenough"},
		"confirm_password": {"longenough"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Token expired")
}

func TestVerifyEmailPageWithoutToken(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/verify-email", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "This verification link is invalid.")
	require.Zero(t, f.backend.hits.Load())
}

func TestVerifyEmailPagePasswordRequired(t *testing.T) {
	f := newTestFixture(t)
	f.backend.respond("POST /auth/verify-email/check", http.StatusOK,
		`{"email":"invited@acme.com","password_required":true}`)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/verify-email?token=tok-123", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "invited@acme.com")
	require.Contains(t, body, `name="password"`)
	require.Contains(t, body, "tok-123")

	// Only the check call ran; the token was not consumed.
	require.Equal(t, int64(1), f.backend.hits.Load())
}

func TestVerifyEmailPageImmediateVerification(t *testing.T) {
	f := newTestFixture(t)
	f.backend.respond("POST /auth/verify-email/check", http.StatusOK,
		`{"email":"self@acme.com","password_required":false}`)
	f.backend.respond("POST /auth/verify-email", http.StatusOK,
		`{"redirect_url":"https://acme.example.com/welcome"}`)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/verify-email?token=tok-123", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// Countdown redirect to the site-supplied URL.
	body := rec.Body.String()
	require.Contains(t, body, "https://acme.example.com/welcome")
	require.Contains(t, body, "Redirecting in")
	require.Equal(t, int64(2), f.backend.hits.Load())
}

func TestVerifyEmailPageInvalidToken(t *testing.T) {
	f := newTestFixture(t)
	f.backend.respond("POST /auth/verify-email/check", http.StatusBadRequest,
		`{"error":"Invalid or expired token"}`)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/verify-email?token=bad", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestVerifyEmailSubmitMismatchedPasswords(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(formRequest("/verify-email", url.Values{
		"token":            {"tok-123"},
		"email":            {"invited@acme.com"},
		"password":         {"password-one"},
		"confirm_password": {"password-two"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	// The form re-renders for a retry; nothing reached the backend.
	body := rec.Body.String()
	require.Contains(t, body, "Passwords do not match.")
	require.Contains(t, body, `name="password"`)
	require.Zero(t, f.backend.hits.Load())
}

func TestVerifyEmailSubmitShortPassword(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(formRequest("/verify-email", url.Values{
		"token":            {"tok-123"},
		"password":         {"short"},
		"confirm_password": {"short"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Password must be at least 8 characters.")
	require.Zero(t, f.backend.hits.Load())
}

func TestVerifyEmailSubmitSetsPassword(t *testing.T) {
	f := newTestFixture(t)
	f.backend.respond("POST /auth/verify-email", http.StatusOK, `{"message":"verified"}`)

	rec := f.do(formRequest("/verify-email", url.Values{
		"token":            {"tok-123"},
		"password":         {"longenough"},
		"confirm_password": {"longenough"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Your email address has been verified.")
}

func TestConfirmEmailChangeWithoutToken(t *testing.T) {
	f := newTestFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/confirm-email-change", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "This confirmation link is invalid.")
	require.Zero(t, f.backend.hits.Load())
}

func TestConfirmEmailChangeConsumesTokenOnLoad(t *testing.T) {
	f := newTestFixture(t)
	f.backend.respond("POST /auth/confirm-email-change", http.StatusOK, `{"message":"ok"}`)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/confirm-email-change?token=tok-123", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Your email address has been updated.")
	require.Equal(t, int64(1), f.backend.hits.Load())
}

func TestConfirmEmailChangeRejectedToken(t *testing.T) {
	f := newTestFixture(t)
	f.backend.respond("POST /auth/confirm-email-change", http.StatusBadRequest, `{"error":"Invalid or expired token"}`)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/confirm-email-change?token=bad", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid or expired token")
}

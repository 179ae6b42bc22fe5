package webstore_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/byteforge/aegis-frontend/internal/errors"
	"github.com/byteforge/aegis-frontend/webstore"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func saveSession(t *testing.T, st *webstore.Store, s webstore.Session) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, st.Save(rec, s))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := webstore.New(testSecret, 3600, false)

	session := webstore.Session{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-def",
		UserID:       42,
		SiteID:       7,
		SiteName:     "Acme",
		Scope:        webstore.ScopeTenantAdmin,
	}
	cookie := saveSession(t, st, session)
	require.Equal(t, "site_admin_session", cookie.Name)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, 3600, cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)

	got, err := st.Load(req, webstore.ScopeTenantAdmin)
	require.NoError(t, err)
	require.Equal(t, session, got)
}

func TestScopesUseSeparateCookies(t *testing.T) {
	st := webstore.New(testSecret, 3600, false)

	tenant := saveSession(t, st, webstore.Session{AccessToken: "t", UserID: 1, Scope: webstore.ScopeTenantAdmin})
	aegis := saveSession(t, st, webstore.Session{AccessToken: "a", UserID: 2, Scope: webstore.ScopeAegisAdmin})

	require.Equal(t, "site_admin_session", tenant.Name)
	require.Equal(t, "aegis_admin_session", aegis.Name)

	// Both cookies coexist on one request and load independently.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(tenant)
	req.AddCookie(aegis)

	got, err := st.Load(req, webstore.ScopeTenantAdmin)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.UserID)

	got, err = st.Load(req, webstore.ScopeAegisAdmin)
	require.NoError(t, err)
	require.Equal(t, int64(2), got.UserID)
}

func TestLoadAbsentCookie(t *testing.T) {
	st := webstore.New(testSecret, 3600, false)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	_, err := st.Load(req, webstore.ScopeTenantAdmin)
	require.ErrorIs(t, err, errors.ErrSessionAbsent)
}

func TestLoadTamperedCookie(t *testing.T) {
	st := webstore.New(testSecret, 3600, false)

	cookie := saveSession(t, st, webstore.Session{AccessToken: "x", UserID: 9, Scope: webstore.ScopeTenantAdmin})
	cookie.Value += "tamper"

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)

	_, err := st.Load(req, webstore.ScopeTenantAdmin)
	require.ErrorIs(t, err, errors.ErrSessionInvalid)
}

func TestLoadRejectsForeignSecret(t *testing.T) {
	signer := webstore.New("another-secret-another-secret-00", 3600, false)
	st := webstore.New(testSecret, 3600, false)

	cookie := saveSession(t, signer, webstore.Session{AccessToken: "x", UserID: 9, Scope: webstore.ScopeTenantAdmin})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)

	_, err := st.Load(req, webstore.ScopeTenantAdmin)
	require.ErrorIs(t, err, errors.ErrSessionInvalid)
}

func TestLoadRejectsWrongScope(t *testing.T) {
	st := webstore.New(testSecret, 3600, false)

	// A tenant session presented under the aegis cookie name must not
	// unlock the aegis console.
	cookie := saveSession(t, st, webstore.Session{AccessToken: "x", UserID: 9, Scope: webstore.ScopeTenantAdmin})
	cookie.Name = webstore.ScopeAegisAdmin.CookieName()

	req := httptest.NewRequest(http.MethodGet, "/aegis-admin/dashboard", nil)
	req.AddCookie(cookie)

	_, err := st.Load(req, webstore.ScopeAegisAdmin)
	require.ErrorIs(t, err, errors.ErrSessionInvalid)
}

func TestClearExpiresCookie(t *testing.T) {
	st := webstore.New(testSecret, 3600, false)

	rec := httptest.NewRecorder()
	st.Clear(rec, webstore.ScopeAegisAdmin)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "aegis_admin_session", cookies[0].Name)
	require.Equal(t, -1, cookies[0].MaxAge)
	require.Empty(t, cookies[0].Value)
}

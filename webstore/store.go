// Package webstore persists browser session credentials in signed
// cookies. Two scopes exist side by side without collision - the tenant
// admin console and the aegis super-admin console each get their own
// cookie - so one browser can hold both sessions at once.
//
// The store is stateless: there is no server-side session object, the
// backend remains the source of truth for token validity. No expiry is
// tracked here; an expired token surfaces as a 401 from the first
// proxied call that uses it.
package webstore

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/byteforge/aegis-frontend/internal/errors"
)

// Scope selects which console a session belongs to.
type Scope string

const (
	ScopeTenantAdmin Scope = "tenant-admin"
	ScopeAegisAdmin  Scope = "aegis-admin"
)

// CookieName returns the scope's cookie, the key-prefix equivalent of
// the two storage namespaces.
func (s Scope) CookieName() string {
	if s == ScopeAegisAdmin {
		return "aegis_admin_session"
	}
	return "site_admin_session"
}

// Session holds the credentials written on login and cleared on logout.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       int64
	SiteID       int64
	SiteName     string
	Scope        Scope
}

type sessionClaims struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	SiteID       int64  `json:"site_id"`
	SiteName     string `json:"site_name"`
	Scope        string `json:"scope"`
	jwt.RegisteredClaims
}

// Store signs and verifies session cookies with an HMAC secret so the
// payload cannot be forged or edited client-side.
type Store struct {
	secret []byte
	maxAge int
	secure bool
}

func New(secret string, maxAge int, secure bool) *Store {
	return &Store{secret: []byte(secret), maxAge: maxAge, secure: secure}
}

// Save persists all session fields in one cookie write.
func (st *Store) Save(w http.ResponseWriter, s Session) error {
	claims := sessionClaims{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		SiteID:       s.SiteID,
		SiteName:     s.SiteName,
		Scope:        string(s.Scope),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(s.UserID, 10),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(st.secret)
	if err != nil {
		return fmt.Errorf("sign session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.Scope.CookieName(),
		Value:    signed,
		Path:     "/",
		MaxAge:   st.maxAge,
		HttpOnly: true,
		Secure:   st.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Load returns the scope's session, errors.ErrSessionAbsent when no
// cookie exists, or errors.ErrSessionInvalid when the cookie does not
// verify or carries the wrong scope.
func (st *Store) Load(r *http.Request, scope Scope) (Session, error) {
	cookie, err := r.Cookie(scope.CookieName())
	if err != nil || cookie.Value == "" {
		return Session{}, errors.ErrSessionAbsent
	}

	var claims sessionClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return st.secret, nil
	})
	if err != nil {
		return Session{}, errors.ErrSessionInvalid
	}
	if claims.Scope != string(scope) {
		return Session{}, errors.ErrSessionInvalid
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Session{}, errors.ErrSessionInvalid
	}

	return Session{
		AccessToken:  claims.AccessToken,
		RefreshToken: claims.RefreshToken,
		UserID:       userID,
		SiteID:       claims.SiteID,
		SiteName:     claims.SiteName,
		Scope:        scope,
	}, nil
}

// Clear removes the scope's cookie.
func (st *Store) Clear(w http.ResponseWriter, scope Scope) {
	http.SetCookie(w, &http.Cookie{
		Name:     scope.CookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   st.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

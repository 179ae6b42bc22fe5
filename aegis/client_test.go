package aegis_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/byteforge/aegis-frontend/aegis"
	"github.com/stretchr/testify/require"
)

// capturedRequest records what the backend saw for header and body
// assertions.
type capturedRequest struct {
	method string
	path   string
	query  string
	header http.Header
	body   []byte
}

// backendFixture is an httptest server standing in for the aegis
// backend, replying with a fixed status and body.
type backendFixture struct {
	server   *httptest.Server
	status   int
	response string
	last     *capturedRequest
}

func newBackendFixture(t *testing.T, status int, response string) *backendFixture {
	t.Helper()

	f := &backendFixture{status: status, response: response}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.last = &capturedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			header: r.Header.Clone(),
			body:   body,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.response))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func TestSuccessCarriesBodyVerbatim(t *testing.T) {
	payload := `{"token":{"token":"abc","user_id":1},"extra":"untouched"}`
	f := newBackendFixture(t, http.StatusOK, payload)

	c := aegis.New(f.server.URL)
	outcome, err := c.HealthCheck(context.Background())
	require.NoError(t, err)
	require.True(t, outcome.Success)
	require.Equal(t, http.StatusOK, outcome.StatusCode)
	require.JSONEq(t, payload, string(outcome.Data))
}

func TestFailureCarriesBackendError(t *testing.T) {
	f := newBackendFixture(t, http.StatusUnauthorized, `{"error":"Invalid credentials"}`)

	c := aegis.New(f.server.URL)
	outcome, err := c.Login(context.Background(), "a@b.com", "nope", 1)
	require.NoError(t, err)
	require.False(t, outcome.Success)
	require.Equal(t, "Invalid credentials", outcome.Err)
	require.Equal(t, http.StatusUnauthorized, outcome.StatusCode)
}

func TestFailureWithoutErrorFieldFallsBackToStatus(t *testing.T) {
	f := newBackendFixture(t, http.StatusBadGateway, `not json`)

	c := aegis.New(f.server.URL)
	outcome, err := c.HealthCheck(context.Background())
	require.NoError(t, err)
	require.False(t, outcome.Success)
	require.Equal(t, http.StatusBadGateway, outcome.StatusCode)
	require.NotEmpty(t, outcome.Err)
}

func TestTransportErrorIsReturnedAsError(t *testing.T) {
	// Closed server: the request never gets a response.
	f := newBackendFixture(t, http.StatusOK, `{}`)
	f.server.Close()

	c := aegis.New(f.server.URL)
	_, err := c.HealthCheck(context.Background())
	require.Error(t, err)
}

func TestBearerTokenHeader(t *testing.T) {
	f := newBackendFixture(t, http.StatusOK, `{"users":[]}`)

	c := aegis.New(f.server.URL)
	c.SetAuthToken("token-123")
	_, err := c.AdminListUsers(context.Background())
	require.NoError(t, err)

	require.Equal(t, http.MethodGet, f.last.method)
	require.Equal(t, "/admin/users", f.last.path)
	require.Equal(t, "Bearer token-123", f.last.header.Get("Authorization"))
}

func TestMasterKeyHeader(t *testing.T) {
	f := newBackendFixture(t, http.StatusOK, `{"sites":[]}`)

	c := aegis.New(f.server.URL, aegis.WithMasterKey("master-xyz"))
	_, err := c.ListSites(context.Background())
	require.NoError(t, err)

	require.Equal(t, "/master/sites", f.last.path)
	require.Equal(t, "master-xyz", f.last.header.Get("X-Master-Key"))
	require.Empty(t, f.last.header.Get("Authorization"))
}

func TestGetSiteByDomainEscapesQuery(t *testing.T) {
	f := newBackendFixture(t, http.StatusOK, `{"site":{"id":1}}`)

	c := aegis.New(f.server.URL)
	_, err := c.GetSiteByDomain(context.Background(), "shop.example.com")
	require.NoError(t, err)

	require.Equal(t, "/sites/by-domain", f.last.path)
	require.Equal(t, "domain=shop.example.com", f.last.query)
}

func TestLoginPostsExpectedBody(t *testing.T) {
	f := newBackendFixture(t, http.StatusOK, `{}`)

	c := aegis.New(f.server.URL)
	_, err := c.Login(context.Background(), "a@b.com", "secret", 7)
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, f.last.method)
	require.Equal(t, "/auth/login", f.last.path)
	require.Equal(t, "application/json", f.last.header.Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(f.last.body, &body))
	require.Equal(t, "a@b.com", body["email"])
	require.Equal(t, "secret", body["password"])
	require.Equal(t, float64(7), body["site_id"])
}

func TestVerifyEmailOmitsEmptyPassword(t *testing.T) {
	f := newBackendFixture(t, http.StatusOK, `{}`)
	c := aegis.New(f.server.URL)

	_, err := c.VerifyEmail(context.Background(), "tok", "")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(f.last.body, &body))
	require.Equal(t, "tok", body["token"])
	require.NotContains(t, body, "password")

	_, err = c.VerifyEmail(context.Background(), "tok", "hunter22")
	require.NoError(t, err)

	require.NoError(t, json.Unmarshal(f.last.body, &body))
	require.Equal(t, "hunter22", body["password"])
}

func TestListUsersBySitePath(t *testing.T) {
	f := newBackendFixture(t, http.StatusOK, `{"users":[]}`)

	c := aegis.New(f.server.URL, aegis.WithMasterKey("k"))
	_, err := c.ListUsersBySite(context.Background(), 31)
	require.NoError(t, err)
	require.Equal(t, "/master/sites/31/users", f.last.path)
}

func TestDecode(t *testing.T) {
	outcome := aegis.Outcome{
		Success: true,
		Data:    json.RawMessage(`{"status":"healthy"}`),
	}

	health, err := aegis.Decode[aegis.Health](outcome)
	require.NoError(t, err)
	require.Equal(t, "healthy", health.Status)
}

func TestDecodeFailedOutcome(t *testing.T) {
	outcome := aegis.Outcome{Success: false, Err: "boom"}

	_, err := aegis.Decode[aegis.Health](outcome)
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}

func TestDecodeMalformedData(t *testing.T) {
	outcome := aegis.Outcome{Success: true, Data: json.RawMessage(`{`)}

	_, err := aegis.Decode[aegis.Health](outcome)
	require.Error(t, err)
}

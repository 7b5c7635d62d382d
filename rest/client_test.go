package rest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehub/shule/core"
)

type memTokens struct {
	token string
}

func (m *memTokens) Token() string { return m.token }

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	tenant string
	hasTen bool
}

// newTestClient returns a client pointed at a capture server.
func newTestClient(t *testing.T, tokens TokenSource, location string, status int, body string) (*Client, *recorded) {
	t.Helper()
	rec := new(recorded)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.auth = r.Header.Get("Authorization")
		rec.tenant = r.Header.Get(TenantHeader)
		_, rec.hasTen = r.Header[TenantHeader]
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{
		BaseURL:  srv.URL,
		Tokens:   tokens,
		Location: func() string { return location },
	})
	require.NoError(t, err)
	return client, rec
}

func Test_Client_bearerHeader(t *testing.T) {
	tokens := &memTokens{token: "tok-1"}
	client, rec := newTestClient(t, tokens, "/greenfield/students", http.StatusOK, `[]`)

	var out []struct{}
	require.NoError(t, client.Get(context.Background(), "/api/students", nil, &out))
	assert.Equal(t, "Bearer tok-1", rec.auth)
}

func Test_Client_bearerFreshness(t *testing.T) {
	tokens := &memTokens{} // no token when the client is constructed
	client, rec := newTestClient(t, tokens, "/greenfield/students", http.StatusOK, `[]`)

	var out []struct{}
	require.NoError(t, client.Get(context.Background(), "/api/students", nil, &out))
	assert.Empty(t, rec.auth, "no session, no header")

	// login happens elsewhere; the next call must pick the token up
	tokens.token = "tok-2"
	require.NoError(t, client.Get(context.Background(), "/api/students", nil, &out))
	assert.Equal(t, "Bearer tok-2", rec.auth)
}

func Test_Client_tenantHeader(t *testing.T) {
	client, rec := newTestClient(t, nil, "/GreenField/fees/groups", http.StatusOK, `{}`)

	var out struct{}
	require.NoError(t, client.Get(context.Background(), "/api/fees/groups", nil, &out))
	assert.Equal(t, "GreenField", rec.tenant, "slug is byte-for-byte the first path segment")
}

func Test_Client_tenantHeaderReservedPaths(t *testing.T) {
	for _, location := range []string{"/admin/schools", "/login", ""} {
		client, rec := newTestClient(t, nil, location, http.StatusOK, `{}`)

		var out struct{}
		require.NoError(t, client.Get(context.Background(), "/api/ping", nil, &out))
		assert.False(t, rec.hasTen, "no tenant header for location %q", location)
	}
}

func Test_Client_queryAndVerbs(t *testing.T) {
	client, rec := newTestClient(t, nil, "/greenfield", http.StatusOK, `{}`)

	query := url.Values{"search": {"amani"}}
	var out struct{}
	require.NoError(t, client.Get(context.Background(), "/api/students", query, &out))
	assert.Equal(t, "/api/students", rec.path)
	assert.Equal(t, "search=amani", rec.query)

	require.NoError(t, client.Post(context.Background(), "/api/students", map[string]string{"name": "x"}, &out))
	assert.Equal(t, http.MethodPost, rec.method)

	require.NoError(t, client.Delete(context.Background(), "/api/students/1"))
	assert.Equal(t, http.MethodDelete, rec.method)
}

func Test_Client_errorMessageDecoding(t *testing.T) {
	client, _ := newTestClient(t, nil, "/greenfield", http.StatusBadRequest, `{"message":"authentication failed"}`)

	err := client.Post(context.Background(), "/api/auth/login", map[string]string{}, nil)
	require.Error(t, err)

	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "authentication failed", apiErr.Message)
}

func Test_Client_errorFallbackMessage(t *testing.T) {
	client, _ := newTestClient(t, nil, "/greenfield", http.StatusInternalServerError, `not json at all`)

	err := client.Get(context.Background(), "/api/students", nil, nil)
	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.NotEmpty(t, apiErr.Message, "a backend without a message still surfaces something readable")
}

func Test_Client_rejectsUnbuildableRequest(t *testing.T) {
	client, err := NewClient(Options{BaseURL: "http://localhost:0"})
	require.NoError(t, err)

	// an invalid method can never form a request; the call rejects immediately
	_, err = NewRequest(context.Background(), "GET METHOD", "http://localhost:0/x", nil, "", "")
	assert.Error(t, err)

	// and a relative path with control characters fails at construction too
	assert.Error(t, client.Get(context.Background(), "/api/\x7f%zz", nil, nil))
}

func Test_Client_upload(t *testing.T) {
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "student_document", r.FormValue("kind"))
		_, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "report.pdf", hdr.Filename)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"up-1","url":"/uploads/up-1/report.pdf"}`))
	}))
	defer srv.Close()

	client, err := NewClient(Options{BaseURL: srv.URL, Location: func() string { return "/greenfield" }})
	require.NoError(t, err)

	var res struct {
		ID string `json:"id"`
	}
	fields := map[string]string{"kind": "student_document"}
	err = client.Upload(context.Background(), "/api/uploads", "file", "report.pdf",
		bytes.NewReader([]byte("%PDF-1.4")), fields, &res)
	require.NoError(t, err)
	assert.Equal(t, "up-1", res.ID)
	assert.Contains(t, contentType, "multipart/form-data")
}

package githubapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/common"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/storage/githubtest"
)

func newTestClient(t *testing.T) (*Client, *githubtest.Server) {
	t.Helper()
	srv := githubtest.New()
	t.Cleanup(srv.Close)
	c := NewClient("test-token", "zenibaba", "ZEXXY_KEYAUTH", "main", WithBaseURL(srv.URL))
	return c, srv
}

func TestClient_Get_Success(t *testing.T) {
	c, srv := newTestClient(t)
	want := []byte(`{"users": []}`)
	sha := srv.Seed("db.json", want)

	got, err := c.Get(context.Background(), "db.json")
	require.NoError(t, err)
	assert.Equal(t, want, got.Content)
	assert.Equal(t, sha, got.SHA)
}

func TestClient_Get_DecodesWrappedBase64(t *testing.T) {
	c, srv := newTestClient(t)
	// long enough that the fake wraps the base64 payload across lines
	want := []byte(strings.Repeat(`{"key": "value"},`, 50))
	srv.Seed("db.json", want)

	got, err := c.Get(context.Background(), "db.json")
	require.NoError(t, err)
	assert.Equal(t, want, got.Content)
}

func TestClient_Get_NotFound(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Get(context.Background(), "db.json")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestClient_Get_ServerErrorIsNotNotFound(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Seed("db.json", []byte("{}"))
	srv.FailNextGet(http.StatusForbidden)

	_, err := c.Get(context.Background(), "db.json")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrorNotFound))
	assert.Contains(t, err.Error(), "403")
}

func TestClient_Get_SendsAuthHeaders(t *testing.T) {
	var gotAuth, gotAccept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClient("tok-123", "o", "r", "main", WithBaseURL(ts.URL))
	_, _ = c.Get(context.Background(), "db.json")

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/vnd.github.v3+json", gotAccept)
}

func TestClient_Put_Create(t *testing.T) {
	c, srv := newTestClient(t)
	content := []byte(`{"users": []}`)

	newSHA, err := c.Put(context.Background(), "db.json", content, "", "init")
	require.NoError(t, err)
	assert.Equal(t, githubtest.BlobSHA(content), newSHA)

	stored, ok := srv.Content("db.json")
	require.True(t, ok)
	assert.Equal(t, content, stored)
}

func TestClient_Put_ConditionalUpdate(t *testing.T) {
	c, srv := newTestClient(t)
	sha := srv.Seed("db.json", []byte("v1"))

	newSHA, err := c.Put(context.Background(), "db.json", []byte("v2"), sha, "update")
	require.NoError(t, err)
	assert.NotEqual(t, sha, newSHA)
	assert.Equal(t, newSHA, srv.SHA("db.json"))
}

func TestClient_Put_StaleSHAConflicts(t *testing.T) {
	c, srv := newTestClient(t)
	stale := srv.Seed("db.json", []byte("v1"))
	srv.Seed("db.json", []byte("v2")) // advances the sha

	_, err := c.Put(context.Background(), "db.json", []byte("v3"), stale, "update")
	assert.ErrorIs(t, err, common.ErrVersionConflict)
}

func TestClient_Put_ServerErrorPreservesBody(t *testing.T) {
	c, srv := newTestClient(t)
	srv.FailNextPut(http.StatusForbidden)

	_, err := c.Put(context.Background(), "db.json", []byte("x"), "", "msg")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrVersionConflict))
	assert.Contains(t, err.Error(), "injected failure")
}

func TestClient_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close() // connection refused from here on

	c := NewClient("t", "o", "r", "main", WithBaseURL(ts.URL))

	_, err := c.Get(context.Background(), "db.json")
	assert.Error(t, err)

	_, err = c.Put(context.Background(), "db.json", []byte("x"), "", "m")
	assert.Error(t, err)
}

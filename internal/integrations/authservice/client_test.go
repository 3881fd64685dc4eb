package authservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, logger.Nop())
}

func TestResolveToken(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/sessions/me", r.URL.Path)
		assert.Equal(t, "Bearer good", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_id":"user_123","role":"admin"}`))
	})

	identity, err := client.ResolveToken(context.Background(), "good")

	require.NoError(t, err)
	assert.Equal(t, "user_123", identity.UserID)
	assert.Equal(t, domain.RoleAdmin, identity.Role)
	assert.True(t, identity.IsAdmin())
}

func TestResolveToken_Unauthorized(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ResolveToken(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = client.ResolveToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolveToken_UnknownRoleBecomesClient(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user_id":"u1","role":"owner"}`))
	})

	identity, err := client.ResolveToken(context.Background(), "t")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, identity.Role)
}

func TestResolveToken_BadResponses(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := client.ResolveToken(context.Background(), "t")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	client = newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"role":"client"}`))
	})
	_, err = client.ResolveToken(context.Background(), "t")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

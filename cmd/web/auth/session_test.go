package auth

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionManager_SaveAndGetSession_RoundTrip(t *testing.T) {
	sm := NewSessionManager("test-secret")

	req := httptest.NewRequest("GET", "http://example.com/", nil)
	rr := httptest.NewRecorder()

	err := sm.SaveSession(rr, req, "user-1", "alice@example.com", AccessUser)
	require.NoError(t, err)

	res := rr.Result()
	require.NotNil(t, res)
	cookies := res.Cookies()
	require.NotEmpty(t, cookies)

	var sessionCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == SessionName {
			sessionCookie = c
			break
		}
	}
	require.NotNil(t, sessionCookie)
	require.NotEmpty(t, sessionCookie.Value)

	req2 := httptest.NewRequest("GET", "http://example.com/", nil)
	req2.AddCookie(sessionCookie)

	uid, email, err := sm.GetSession(req2)
	require.NoError(t, err)
	require.Equal(t, "user-1", uid)
	require.Equal(t, "alice@example.com", email)
	require.True(t, sm.IsAuthenticated(req2))

	require.Equal(t, AccessUser, sm.GetAccessLevel(req2))

	createdAt := sm.GetSessionCreatedAt(req2)
	require.False(t, createdAt.IsZero())
	require.WithinDuration(t, time.Now(), createdAt, 5*time.Second)
}

func TestSessionManager_SaveSession_SecureDetection(t *testing.T) {
	sm := NewSessionManager("test-secret")

	t.Run("tls implies secure", func(t *testing.T) {
		req := httptest.NewRequest("GET", "https://example.com/", nil)
		req.TLS = &tls.ConnectionState{}
		rr := httptest.NewRecorder()

		err := sm.SaveSession(rr, req, "user-1", "alice@example.com", AccessUser)
		require.NoError(t, err)

		var found bool
		for _, c := range rr.Result().Cookies() {
			if c.Name == SessionName {
				found = true
				require.True(t, c.Secure)
				break
			}
		}
		require.True(t, found)
	})

	t.Run("x-forwarded-proto implies secure", func(t *testing.T) {
		req := httptest.NewRequest("GET", "http://example.com/", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		rr := httptest.NewRecorder()

		err := sm.SaveSession(rr, req, "user-1", "alice@example.com", AccessUser)
		require.NoError(t, err)

		var found bool
		for _, c := range rr.Result().Cookies() {
			if c.Name == SessionName {
				found = true
				require.True(t, c.Secure)
				break
			}
		}
		require.True(t, found)
	})
}

func TestSessionManager_GetSession_NotAuthenticated(t *testing.T) {
	sm := NewSessionManager("test-secret")

	req := httptest.NewRequest("GET", "http://example.com/", nil)
	uid, email, err := sm.GetSession(req)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	require.Equal(t, "", uid)
	require.Equal(t, "", email)
	require.False(t, sm.IsAuthenticated(req))
}

func TestSessionManager_GetAccessLevel_UnknownLevelIsUnauthenticated(t *testing.T) {
	sm := NewSessionManager("test-secret")

	req := httptest.NewRequest("GET", "http://example.com/", nil)
	rr := httptest.NewRecorder()
	require.NoError(t, sm.SaveSession(rr, req, "user-1", "alice@example.com", AccessLevel("superuser")))

	req2 := httptest.NewRequest("GET", "http://example.com/", nil)
	for _, c := range rr.Result().Cookies() {
		req2.AddCookie(c)
	}
	require.Equal(t, AccessUnauthenticated, sm.GetAccessLevel(req2))
}

func TestSessionManager_ClearSession(t *testing.T) {
	sm := NewSessionManager("test-secret")

	req := httptest.NewRequest("GET", "http://example.com/", nil)
	rr := httptest.NewRecorder()
	require.NoError(t, sm.ClearSession(rr, req))

	var found bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == SessionName {
			found = true
			require.Less(t, c.MaxAge, 0)
		}
	}
	require.True(t, found)
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoful/console-gateway/internal/api/http/middleware"
	"github.com/autoful/console-gateway/internal/auth"
	"github.com/autoful/console-gateway/internal/gateway"
	"github.com/autoful/console-gateway/internal/identity"
	"github.com/autoful/console-gateway/internal/session"
)

type stubIDP struct {
	session *identity.Session
	err     error
}

func (s *stubIDP) SignUp(ctx context.Context, email, password string) (*identity.Session, error) {
	return s.session, s.err
}

func (s *stubIDP) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	return s.session, s.err
}

func (s *stubIDP) SignOut(ctx context.Context) error { return nil }

func (s *stubIDP) Current() *identity.Session { return s.session }

func (s *stubIDP) Token(ctx context.Context) (string, error) {
	if s.session == nil {
		return "", identity.ErrNoSession
	}
	return s.session.IDToken, nil
}

func (s *stubIDP) HasSession() bool { return s.session != nil }

func authTestRouter(t *testing.T, idp *stubIDP, backend http.HandlerFunc) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	store := session.NewStore()
	svc := auth.NewService(idp, gateway.NewClient(srv.URL, idp, 0), store)

	r := gin.New()
	NewAuthHandler(svc, store).RegisterRoutes(r, nil)
	return r, store
}

func TestSessionEndpoint(t *testing.T) {
	r, store := authTestRouter(t, &stubIDP{}, func(w http.ResponseWriter, rq *http.Request) {})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/session", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.User)
	assert.False(t, resp.Initialized, "a fresh store has not settled yet")

	store.SetUser(&session.User{SubjectID: "u", Role: session.RoleMechanic, BackendID: 5})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/session", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, session.RoleMechanic, resp.User.Role)
	assert.True(t, resp.Initialized)
}

func TestLoginCustomerEndpoint(t *testing.T) {
	idp := &stubIDP{session: &identity.Session{SubjectID: "uid-1", Email: "a@b.com", IDToken: "tok"}}
	r, store := authTestRouter(t, idp, func(w http.ResponseWriter, rq *http.Request) {
		w.Write([]byte(`{"status":"success","customer_id":42,"name":"Jane Doe"}`))
	})

	body := strings.NewReader(`{"email":"a@b.com","password":"hunter22"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login/customer", body))

	require.Equal(t, http.StatusOK, w.Code)

	var user session.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, int64(42), user.BackendID)
	assert.Equal(t, session.RoleCustomer, user.Role)
	require.NotNil(t, store.Snapshot().User)
}

func TestLoginRejectsInvalidBody(t *testing.T) {
	r, _ := authTestRouter(t, &stubIDP{}, func(w http.ResponseWriter, rq *http.Request) {})

	body := strings.NewReader(`{"email":"not-an-email"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login/customer", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginMapsProviderRejectionTo401(t *testing.T) {
	idp := &stubIDP{err: &identity.ProviderError{Code: "INVALID_PASSWORD", Message: "incorrect email or password"}}
	r, store := authTestRouter(t, idp, func(w http.ResponseWriter, rq *http.Request) {})

	body := strings.NewReader(`{"email":"a@b.com","password":"wrong"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login/mechanic", body))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "incorrect email or password")
	assert.Equal(t, "incorrect email or password", store.Snapshot().Err)
}

func TestLoginPassesBackendStatusThrough(t *testing.T) {
	idp := &stubIDP{session: &identity.Session{SubjectID: "uid-1", Email: "a@b.com", IDToken: "tok"}}
	r, _ := authTestRouter(t, idp, func(w http.ResponseWriter, rq *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no customer record"}`))
	})

	body := strings.NewReader(`{"email":"a@b.com","password":"hunter22"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login/customer", body))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no customer record")
}

func TestCredentialLimitSparesSessionPolling(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := session.NewStore()
	idp := &stubIDP{err: &identity.ProviderError{Code: "INVALID_PASSWORD", Message: "incorrect email or password"}}
	svc := auth.NewService(idp, gateway.NewClient("http://backend.invalid", idp, 0), store)

	exhausted := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too_many_requests"})
	}
	r := gin.New()
	NewAuthHandler(svc, store).RegisterRoutes(r, exhausted)

	body := strings.NewReader(`{"email":"a@b.com","password":"x"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login/customer", body))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// the shell's poll and the rest of the lifecycle bypass the bucket
	for _, route := range []struct {
		method, path string
	}{
		{http.MethodGet, "/auth/session"},
		{http.MethodPost, "/auth/clear-error"},
		{http.MethodPost, "/auth/logout"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.NotEqual(t, http.StatusTooManyRequests, w.Code, "%s %s must not be throttled", route.method, route.path)
	}
}

func TestFailedRequestLoggedUnderRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	idp := &stubIDP{err: &identity.ProviderError{Code: "INVALID_PASSWORD", Message: "incorrect email or password"}}
	store := session.NewStore()
	svc := auth.NewService(idp, gateway.NewClient("http://backend.invalid", idp, 0), store)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	NewAuthHandler(svc, store).RegisterRoutes(r, nil)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	req := httptest.NewRequest(http.MethodPost, "/auth/login/customer",
		strings.NewReader(`{"email":"a@b.com","password":"wrong"}`))
	req.Header.Set("X-Request-Id", "rid-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, buf.String(), "operation=request_failed id=rid-123")
}

func TestClearErrorEndpoint(t *testing.T) {
	r, store := authTestRouter(t, &stubIDP{}, func(w http.ResponseWriter, rq *http.Request) {})
	store.Fail("stale banner")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/clear-error", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.Snapshot().Err)
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cuecafe/internal/identity"
	"cuecafe/internal/session"
	"cuecafe/pkg/logger"
	"cuecafe/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUsers struct {
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	insertFunc      func(ctx context.Context, user model.User) (*model.User, error)
}

func (m *mockUsers) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUsers) InsertUser(ctx context.Context, user model.User) (*model.User, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, user)
	}
	user.ID = "user-1"
	return &user, nil
}

func (m *mockUsers) UpdateUser(ctx context.Context, id string, patch map[string]any) (*model.User, error) {
	return &model.User{ID: id}, nil
}

func (m *mockUsers) TouchLastLogin(ctx context.Context, id string) error {
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json", Output: io.Discard})
}

func newAuthRouter(users identity.UserStore, sessions session.Store) *httprouter.Router {
	svc := identity.NewService(users, sessions, "pepper", testLogger())
	router := httprouter.New()
	NewAuthHandler(svc, sessions, testLogger()).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSignupEndpoint_Created(t *testing.T) {
	sessions := session.NewMemStore()
	router := newAuthRouter(&mockUsers{}, sessions)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", map[string]string{
		"email":    "ana@example.com",
		"phone":    "9876543210",
		"name":     "Ana",
		"password": "secret123",
	}, "")

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data model.Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "user-1", resp.Data.UserID)
	assert.Equal(t, 1, sessions.Len())
}

func TestSignupEndpoint_MissingFields(t *testing.T) {
	router := newAuthRouter(&mockUsers{}, session.NewMemStore())

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", map[string]string{
		"email": "ana@example.com",
	}, "")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "All fields are required")
}

func TestSignupEndpoint_DuplicateEmail(t *testing.T) {
	users := &mockUsers{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "existing", Email: email}, nil
		},
	}
	router := newAuthRouter(users, session.NewMemStore())

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", map[string]string{
		"email":    "ana@example.com",
		"phone":    "9876543210",
		"name":     "Ana",
		"password": "secret123",
	}, "")

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	users := &mockUsers{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: email, PasswordHash: identity.Digest("right-pass", "pepper")}, nil
		},
	}
	router := newAuthRouter(users, session.NewMemStore())

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong-pass",
	}, "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestMeEndpoint(t *testing.T) {
	sessions := session.NewMemStore()
	require.NoError(t, sessions.Put(model.Session{Token: "tok-1", UserID: "user-1", Email: "ana@example.com"}))
	router := newAuthRouter(&mockUsers{}, sessions)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil, "tok-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ana@example.com")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil, "stale-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndpoint_NoContent(t *testing.T) {
	sessions := session.NewMemStore()
	require.NoError(t, sessions.Put(model.Session{Token: "tok-1", UserID: "user-1"}))
	router := newAuthRouter(&mockUsers{}, sessions)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", nil, "tok-1")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, sessions.Len())

	// Logging out again is still a success.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", nil, "tok-1")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup_ReturnsTokenAndUser(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/signup", map[string]any{
		"email":    "Alice@Example.com",
		"password": "supersecret",
		"name":     "Alice",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	body := decodeBody[AuthResponse](t, resp)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "alice@example.com", body.User.Email)
	assert.Equal(t, "Alice", body.User.Name)
	assert.NotEmpty(t, body.User.ID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)
	ts.signupTestUser(t, "alice@example.com")

	resp := ts.api.Post("/api/v1/auth/signup", map[string]any{
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)

	body := decodeBody[APIError](t, resp)
	assert.Equal(t, "Email already registered", body.Message)
}

func TestSignup_ValidationErrors(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/signup", map[string]any{
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestLogin_Roundtrip(t *testing.T) {
	ts := setupTestServer(t)
	ts.signupTestUser(t, "alice@example.com")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decodeBody[AuthResponse](t, resp)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "alice@example.com", body.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := setupTestServer(t)
	ts.signupTestUser(t, "alice@example.com")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	body := decodeBody[APIError](t, resp)
	assert.Equal(t, "Incorrect password. Please try again.", body.Message)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "whatever-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	body := decodeBody[APIError](t, resp)
	assert.Equal(t, "No account found with this email. Please check your email or sign up.", body.Message)
}

func TestGetCurrentUser(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.signupTestUser(t, "alice@example.com")

	resp := ts.api.Get("/api/v1/auth/me", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[UserResponse](t, resp)
	assert.Equal(t, "alice@example.com", body.Email)
}

func TestGetCurrentUser_AuthFailures(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/auth/me")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/auth/me", "Authorization: NotBearer xyz")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/auth/me", "Authorization: Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/khabaroff/admin-auth/src/middleware"
	"github.com/khabaroff/admin-auth/src/models"
	"github.com/khabaroff/admin-auth/src/repositories"
	"github.com/khabaroff/admin-auth/src/repositories/mock"
	"github.com/khabaroff/admin-auth/src/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const loginPath = "/api/admin/auth/login"

// withJWTSecret installs a signing secret for the test
func withJWTSecret(t *testing.T) {
	t.Helper()
	original := middleware.JWTSecret
	require.NoError(t, middleware.SetJWTSecret("test-secret-for-unit-tests-32ch!"))
	t.Cleanup(func() { middleware.JWTSecret = original })
}

// storedAdmin returns an admin row whose hash matches password
func storedAdmin(t *testing.T, username, password string, active bool) *models.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.AdminUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     active,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
	}
}

// repoWith returns a mock repository that knows only admin
func repoWith(admin *models.AdminUser) *mock.AdminRepository {
	repo := mock.NewAdminRepository()
	repo.GetByUsernameFunc = func(ctx context.Context, username string) (*models.AdminUser, error) {
		if admin != nil && username == admin.Username {
			copied := *admin
			return &copied, nil
		}
		return nil, repositories.ErrAdminNotFound
	}
	return repo
}

func performLogin(repo *mock.AdminRepository, body string) *httptest.ResponseRecorder {
	w, c := createTestContext()
	c.Request = newJSONRequest(http.MethodPost, loginPath, body)

	handler := NewAdminHandler(services.NewAdminService(repo), true)
	handler.HandleAdminLogin(c)
	return w
}

func TestHandleAdminLogin_MissingFields(t *testing.T) {
	withJWTSecret(t)

	bodies := map[string]string{
		"missing username": `{"password":"correct"}`,
		"missing password": `{"username":"admin"}`,
		"empty username":   `{"username":"","password":"correct"}`,
		"empty password":   `{"username":"admin","password":""}`,
		"empty object":     `{}`,
		"null username":    `{"username":null,"password":"correct"}`,
		"false username":   `{"username":false,"password":"correct"}`,
		"zero username":    `{"username":0,"password":"correct"}`,
		"zero password":    `{"username":"admin","password":0.0}`,
		"array body":       `["admin","correct"]`,
		"string body":      `"admin"`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			repo := repoWith(storedAdmin(t, "admin", "correct", true))
			w := performLogin(repo, body)

			assertStatusCode(t, w, http.StatusBadRequest)
			assertJSONError(t, w, "Username and password are required")
			assert.Empty(t, repo.Calls["GetByUsername"], "store must not be queried")
		})
	}
}

func TestHandleAdminLogin_UnknownUser(t *testing.T) {
	withJWTSecret(t)

	repo := repoWith(storedAdmin(t, "admin", "correct", true))
	w := performLogin(repo, `{"username":"ghost","password":"correct"}`)

	assertStatusCode(t, w, http.StatusUnauthorized)
	assertJSONError(t, w, "Invalid credentials")
}

func TestHandleAdminLogin_WrongPassword(t *testing.T) {
	withJWTSecret(t)

	repo := repoWith(storedAdmin(t, "admin", "correct", true))
	w := performLogin(repo, `{"username":"admin","password":"wrong"}`)

	assertStatusCode(t, w, http.StatusUnauthorized)
	assertJSONError(t, w, "Invalid credentials")
	assert.Empty(t, repo.Calls["UpdateLastLogin"])
}

func TestHandleAdminLogin_InactiveAccount(t *testing.T) {
	withJWTSecret(t)

	for _, password := range []string{"correct", "wrong"} {
		repo := repoWith(storedAdmin(t, "admin", "correct", false))
		w := performLogin(repo, `{"username":"admin","password":"`+password+`"}`)

		assertStatusCode(t, w, http.StatusForbidden)
		assertJSONError(t, w, "Account is inactive")
		assert.Empty(t, repo.Calls["UpdateLastLogin"])
	}
}

func TestHandleAdminLogin_Success(t *testing.T) {
	withJWTSecret(t)

	admin := storedAdmin(t, "admin", "correct", true)
	repo := repoWith(admin)

	var recordedAt time.Time
	repo.UpdateLastLoginFunc = func(ctx context.Context, adminID uuid.UUID, at time.Time) error {
		assert.Equal(t, admin.ID, adminID)
		recordedAt = at
		return nil
	}

	w := performLogin(repo, `{"username":"admin","password":"correct"}`)

	assertStatusCode(t, w, http.StatusOK)
	response := decodeBody(t, w)

	assert.Equal(t, true, response["success"])
	token, _ := response["token"].(string)
	require.NotEmpty(t, token)

	user, ok := response["user"].(map[string]interface{})
	require.True(t, ok, "expected user object, got %v", response["user"])
	assert.Equal(t, admin.ID.String(), user["id"])
	assert.Equal(t, "admin", user["username"])
	assert.Len(t, user, 2)

	require.Len(t, repo.Calls["UpdateLastLogin"], 1)
	assert.WithinDuration(t, time.Now(), recordedAt, 5*time.Second)

	claims, err := middleware.ValidateAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.String(), claims.AdminID)
	assert.Equal(t, "admin", claims.Username)

	cookie := responseCookie(w, models.AdminTokenCookie)
	require.NotNil(t, cookie)
	assert.Equal(t, token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
}

func TestHandleAdminLogin_LastLoginFailureIsNotFatal(t *testing.T) {
	withJWTSecret(t)

	repo := repoWith(storedAdmin(t, "admin", "correct", true))
	repo.UpdateLastLoginFunc = func(ctx context.Context, adminID uuid.UUID, at time.Time) error {
		return errors.New("connection reset by peer")
	}

	w := performLogin(repo, `{"username":"admin","password":"correct"}`)

	assertStatusCode(t, w, http.StatusOK)
	assert.NotEmpty(t, decodeBody(t, w)["token"])
}

func TestHandleAdminLogin_StoreError(t *testing.T) {
	withJWTSecret(t)

	repo := mock.NewAdminRepository()
	repo.GetByUsernameFunc = func(ctx context.Context, username string) (*models.AdminUser, error) {
		return nil, errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	}

	w := performLogin(repo, `{"username":"admin","password":"correct"}`)

	assertStatusCode(t, w, http.StatusInternalServerError)
	response := decodeBody(t, w)
	assert.Equal(t, "Internal server error", response["error"])
	assert.Contains(t, response["details"], "connection refused")
}

func TestHandleAdminLogin_MalformedBody(t *testing.T) {
	withJWTSecret(t)

	for _, body := range []string{`{"username":`, ``, `null`} {
		repo := repoWith(nil)
		w := performLogin(repo, body)

		assertStatusCode(t, w, http.StatusInternalServerError)
		response := decodeBody(t, w)
		assert.Equal(t, "Internal server error", response["error"])
		assert.NotEmpty(t, response["details"])
		assert.Empty(t, repo.Calls["GetByUsername"])
	}
}

func TestHandleAdminLogin_NonStringFieldsReachLookup(t *testing.T) {
	withJWTSecret(t)

	repo := repoWith(storedAdmin(t, "admin", "correct", true))
	w := performLogin(repo, `{"username":42,"password":true}`)

	assertStatusCode(t, w, http.StatusUnauthorized)
	assertJSONError(t, w, "Invalid credentials")
	require.Len(t, repo.Calls["GetByUsername"], 1)
	assert.Equal(t, "42", repo.Calls["GetByUsername"][0])
}

func TestHandleAdminLogin_SigningFailure(t *testing.T) {
	original := middleware.JWTSecret
	middleware.JWTSecret = ""
	defer func() { middleware.JWTSecret = original }()

	repo := repoWith(storedAdmin(t, "admin", "correct", true))
	w := performLogin(repo, `{"username":"admin","password":"correct"}`)

	assertStatusCode(t, w, http.StatusInternalServerError)
	assert.Equal(t, "JWT secret is not configured", decodeBody(t, w)["details"])
}

func TestHandleAdminLogout(t *testing.T) {
	w, c := createTestContext()
	c.Request = newJSONRequest(http.MethodPost, "/api/admin/auth/logout", "")

	NewAdminHandler(services.NewAdminService(mock.NewAdminRepository()), false).HandleAdminLogout(c)

	assertStatusCode(t, w, http.StatusOK)
	cookie := responseCookie(w, models.AdminTokenCookie)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestHandleAdminStatus(t *testing.T) {
	w, c := createTestContext()
	c.Request = newJSONRequest(http.MethodGet, "/api/admin/auth/me", "")
	c.Set(middleware.AdminIDKey, "3f1c2a5e-0000-4000-8000-000000000001")
	c.Set(middleware.UsernameKey, "admin")

	NewAdminHandler(services.NewAdminService(mock.NewAdminRepository()), true).HandleAdminStatus(c)

	assertStatusCode(t, w, http.StatusOK)
	response := decodeBody(t, w)
	assert.Equal(t, true, response["authenticated"])
	assert.Equal(t, "3f1c2a5e-0000-4000-8000-000000000001", response["admin_id"])
	assert.Equal(t, "admin", response["username"])
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/khabaroff/admin-auth/src/logging"
	"github.com/khabaroff/admin-auth/src/middleware"
	"github.com/khabaroff/admin-auth/src/models"
	"github.com/khabaroff/admin-auth/src/services"
)

// Client-facing error messages
const (
	msgCredentialsRequired = "Username and password are required"
	msgInvalidCredentials  = "Invalid credentials"
	msgAccountInactive     = "Account is inactive"
	msgInternalError       = "Internal server error"
)

// AdminHandler handles admin authentication
type AdminHandler struct {
	adminService *services.AdminService
	cookieSecure bool
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService, cookieSecure bool) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		cookieSecure: cookieSecure,
	}
}

// AdminLoginRequest represents the request body for admin login
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var errNullBody = errors.New("request body is null")

// bindLoginRequest decodes the body loosely: only JSON that does not parse is
// an error, any field that is absent, null, false, 0 or "" is left empty.
func bindLoginRequest(c *gin.Context) (AdminLoginRequest, error) {
	var body any
	if err := c.ShouldBindJSON(&body); err != nil {
		return AdminLoginRequest{}, err
	}
	if body == nil {
		return AdminLoginRequest{}, errNullBody
	}

	fields, _ := body.(map[string]any)
	return AdminLoginRequest{
		Username: credentialValue(fields["username"]),
		Password: credentialValue(fields["password"]),
	}, nil
}

// credentialValue returns the text of a truthy JSON value, or "" for a falsy one
func credentialValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if !val {
			return ""
		}
		return "true"
	case float64:
		if val == 0 {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		// objects and arrays are truthy
		raw, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

// AdminLoginUser is the public part of the authenticated admin
type AdminLoginUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// AdminLoginResponse represents the response for successful login
type AdminLoginResponse struct {
	Success bool           `json:"success"`
	Token   string         `json:"token"`
	User    AdminLoginUser `json:"user"`
}

// HandleAdminLogin authenticates admin user and returns JWT token
func (ah *AdminHandler) HandleAdminLogin(c *gin.Context) {
	logger := logging.ComponentLogger("admin_auth", middleware.GetRequestID(c))

	req, err := bindLoginRequest(c)
	if err != nil {
		loginError(c, err)
		return
	}

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgCredentialsRequired})
		return
	}

	logger.Info().Str("username", req.Username).Msg("admin login attempt")

	admin, err := ah.adminService.AuthenticateAdmin(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		logger.Warn().Str("username", req.Username).Msg("admin login rejected: invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidCredentials})
		return
	case errors.Is(err, services.ErrAccountInactive):
		logger.Warn().Str("username", req.Username).Msg("admin login rejected: account inactive")
		c.JSON(http.StatusForbidden, gin.H{"error": msgAccountInactive})
		return
	case err != nil:
		loginError(c, err)
		return
	}

	token, expiresAt, err := middleware.GenerateAdminToken(admin.ID, admin.Username)
	if err != nil {
		loginError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		models.AdminTokenCookie,
		token,
		int(middleware.TokenTTL.Seconds()),
		"/",
		"",
		ah.cookieSecure,
		true, // HttpOnly
	)

	logger.Info().
		Str("admin_id", admin.ID.String()).
		Str("username", admin.Username).
		Time("expires_at", expiresAt).
		Msg("admin login successful")

	c.JSON(http.StatusOK, AdminLoginResponse{
		Success: true,
		Token:   token,
		User: AdminLoginUser{
			ID:       admin.ID,
			Username: admin.Username,
		},
	})
}

// HandleAdminLogout clears the admin token cookie
func (ah *AdminHandler) HandleAdminLogout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(models.AdminTokenCookie, "", -1, "/", "", ah.cookieSecure, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// AdminStatusResponse represents the response for admin status check
type AdminStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	AdminID       string `json:"admin_id"`
	Username      string `json:"username"`
}

// HandleAdminStatus returns the admin identity carried by the validated token
func (ah *AdminHandler) HandleAdminStatus(c *gin.Context) {
	c.JSON(http.StatusOK, AdminStatusResponse{
		Authenticated: true,
		AdminID:       c.GetString(middleware.AdminIDKey),
		Username:      c.GetString(middleware.UsernameKey),
	})
}

// loginError writes the login 500 body and records err on the context for the request log
func loginError(c *gin.Context, err error) {
	details := "Unknown"
	if err != nil && err.Error() != "" {
		details = err.Error()
		_ = c.Error(err)
	}

	logger := logging.ComponentLogger("admin_auth", middleware.GetRequestID(c))
	logger.Error().Str("details", details).Msg("admin login failed unexpectedly")

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   msgInternalError,
		"details": details,
	})
}

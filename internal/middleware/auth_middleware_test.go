package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paxala/internal/access"
	"paxala/internal/auth"
	"paxala/internal/middleware"
	"paxala/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const jwtSecret = "test-secret-key"

// stubUsers is the stored role of each known user.
type stubUsers map[uuid.UUID]model.Role

func (s stubUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	role, ok := s[id]
	if !ok {
		return nil, nil
	}
	return &model.User{ID: id, Role: role}, nil
}

var users = stubUsers{}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/protected")
	protected.Use(middleware.JWTAuthMiddleware(auth.NewTokenManager(jwtSecret, 24), users))

	protected.GET("/resource", func(c *gin.Context) {
		userID, exists := c.Get(middleware.UserIDKey)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User ID not found in context"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Access granted",
			"user_id": userID,
			"role":    middleware.CurrentPrincipal(c).Role,
		})
	})
	protected.GET("/admin", middleware.Require(access.ManageUsers), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Admin area"})
	})

	return r
}

// generateTestToken stores the user with role and signs a token for it.
func generateTestToken(userID uuid.UUID, role model.Role) string {
	users[userID] = role
	token, _ := auth.NewTokenManager(jwtSecret, 24).GenerateToken(userID, role)
	return token
}

func doGet(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	router := setupRouter()
	userID := uuid.New()

	resp := doGet(router, "/protected/resource", "Bearer "+generateTestToken(userID, model.RoleStaff))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), userID.String())
	assert.Contains(t, resp.Body.String(), "STAFF")
}

func TestJWTAuthMiddleware_NoAuthHeader(t *testing.T) {
	resp := doGet(setupRouter(), "/protected/resource", "")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header is required")
}

func TestJWTAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	resp := doGet(setupRouter(), "/protected/resource", "InvalidFormat token123")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header format must be Bearer {token}")
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	resp := doGet(setupRouter(), "/protected/resource", "Bearer invalid-token")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid or expired token")
}

func TestJWTAuthMiddleware_TokenWithInvalidUserID(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": "not-a-valid-uuid",
		"role":    "ADMIN",
		"exp":     jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(jwtSecret))

	resp := doGet(setupRouter(), "/protected/resource", "Bearer "+tokenString)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid user ID in token")
}

func TestJWTAuthMiddleware_TokenWithUnknownRole(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": uuid.NewString(),
		"role":    "SUPERUSER",
		"exp":     jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(jwtSecret))

	resp := doGet(setupRouter(), "/protected/resource", "Bearer "+tokenString)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid role in token")
}

func TestRequire_ForbidsOtherRoles(t *testing.T) {
	router := setupRouter()

	resp := doGet(router, "/protected/admin", "Bearer "+generateTestToken(uuid.New(), model.RoleClient))
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "Insufficient permissions")

	resp = doGet(router, "/protected/admin", "Bearer "+generateTestToken(uuid.New(), model.RoleAdmin))
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestJWTAuthMiddleware_UsesStoredRole(t *testing.T) {
	router := setupRouter()
	userID := uuid.New()
	token := generateTestToken(userID, model.RoleAdmin)

	assert.Equal(t, http.StatusOK, doGet(router, "/protected/admin", "Bearer "+token).Code)

	users[userID] = model.RoleClient
	resp := doGet(router, "/protected/admin", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestJWTAuthMiddleware_UnknownUser(t *testing.T) {
	token, err := auth.NewTokenManager(jwtSecret, 24).GenerateToken(uuid.New(), model.RoleAdmin)
	assert.NoError(t, err)

	resp := doGet(setupRouter(), "/protected/resource", "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "User no longer exists")
}

func TestRequire_WithoutAuthIsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/open", middleware.Require(access.ManageUsers), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	resp := doGet(r, "/open", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

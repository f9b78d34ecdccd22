package middleware

import (
	"context"
	"net/http"
	"strings"

	"paxala/internal/access"
	"paxala/internal/apperr"
	"paxala/internal/auth"
	"paxala/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserLookup loads the token's user so role changes apply to tokens that
// are already issued.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// JWTAuthMiddleware authenticates the bearer token and takes the caller's
// role from the stored user, not from the token claim.
func JWTAuthMiddleware(tokens *auth.TokenManager, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := tokens.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
			return
		}
		if !claims.Role.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid role in token"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(RoleKey, user.Role)
		c.Next()
	}
}

// CurrentPrincipal returns the caller set by JWTAuthMiddleware, or nil.
func CurrentPrincipal(c *gin.Context) *access.Principal {
	rawID, ok := c.Get(UserIDKey)
	if !ok {
		return nil
	}
	userID, ok := rawID.(uuid.UUID)
	if !ok {
		return nil
	}
	role, _ := c.Get(RoleKey)
	r, _ := role.(model.Role)
	return &access.Principal{UserID: userID, Role: r}
}

// Require gates a route on a role-only capability.
func Require(capability access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := access.Check(CurrentPrincipal(c), capability, access.Resource{}); err != nil {
			c.AbortWithStatusJSON(apperr.KindOf(err).Status(), gin.H{"error": apperr.PublicMessage(err)})
			return
		}
		c.Next()
	}
}

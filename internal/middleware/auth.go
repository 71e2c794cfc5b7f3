package middleware

import (
	"net/http"
	"strings"

	"github.com/gleysonwener/new-lu/internal/apierror"
	"github.com/gleysonwener/new-lu/internal/model"
	"github.com/gleysonwener/new-lu/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey      = "claims"
	CurrentUserKey = "current_user"
)

// JWTClaims are the custom claims embedded in every access token.
// Subject carries the username.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route: signature,
// expiry, and subject presence, then resolves the subject to a live user row.
// A token whose user no longer exists is rejected the same as a bad token.
func JWTAuth(secret string, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Not authenticated"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		user, err := users.FindByUsername(c.Request.Context(), claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// RequireRole rejects requests whose resolved principal is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user, ok := c.MustGet(CurrentUserKey).(*model.User)
		if !ok || !allowed[user.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Not enough permissions"))
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the resolved principal from the Gin context.
func CurrentUser(c *gin.Context) *model.User {
	user, _ := c.MustGet(CurrentUserKey).(*model.User)
	return user
}

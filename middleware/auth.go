package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"foodees-api/access"
	"foodees-api/errs"
	"foodees-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionKey = "session"

type Claims struct {
	UserID uint            `json:"user_id"`
	Name   string          `json:"name"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs a JWT for user. Every call starts a new session: the
// token id (jti) is a fresh uuid, which also keys the session's cart.
func GenerateToken(user *models.User, secret []byte, ttl time.Duration) (string, access.Session, error) {
	now := time.Now()
	sess := access.Session{
		ID:     uuid.NewString(),
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
	}
	claims := Claims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", access.Session{}, err
	}
	return signed, sess, nil
}

// ParseToken validates a signed token and returns the session it carries.
func ParseToken(tokenStr string, secret []byte) (access.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return access.Session{}, err
	}
	if !token.Valid || claims.UserID == 0 || claims.ID == "" {
		return access.Session{}, errors.New("token is missing session claims")
	}
	return access.Session{ID: claims.ID, UserID: claims.UserID, Role: claims.Role, Name: claims.Name}, nil
}

// SessionVerifier confirms a parsed session still belongs to a live account.
type SessionVerifier interface {
	VerifySession(ctx context.Context, sess access.Session) error
}

// AuthRequired validates the bearer token and stores the session in the
// context. With a non-nil verifier every request also re-checks the account.
func AuthRequired(secret []byte, verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			return
		}
		sess, err := ParseToken(strings.TrimPrefix(authHeader, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if verifier != nil {
			if err := verifier.VerifySession(c.Request.Context(), sess); err != nil {
				if errors.Is(err, errs.ErrUnauthenticated) {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account is no longer active"})
					return
				}
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		for _, r := range roles {
			if sess.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Access denied. Required role(s): " + rolesString(roles),
		})
	}
}

func rolesString(roles []models.UserRole) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// SessionFrom returns the session AuthRequired stored, if any.
func SessionFrom(c *gin.Context) (access.Session, bool) {
	val, ok := c.Get(sessionKey)
	if !ok {
		return access.Session{}, false
	}
	sess, ok := val.(access.Session)
	return sess, ok
}

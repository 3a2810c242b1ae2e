package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"actionmate/apperr"
	"actionmate/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserID   = "userId"
	ctxNickname = "nickname"
)

var (
	errNoToken      = apperr.Unauthorized("No authorization token provided")
	errTokenFormat  = apperr.Unauthorized("Format should be: Bearer <token>")
	errTokenInvalid = apperr.Unauthorized("Token validation failed")
)

type Claims struct {
	UserID   string `json:"userId"`
	Nickname string `json:"nickname,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for the given user.
func IssueToken(secret []byte, user models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Nickname: user.Nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// JWTAuthMiddleware resolves the viewer from a Bearer token (or ?token=)
// and stores it on the gin context.
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip middleware for OPTIONS requests (CORS preflight)
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			token := c.Query("token")
			if token == "" {
				abort(c, errNoToken)
				return
			}
			authHeader = "Bearer " + token
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, errTokenFormat)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid || claims.UserID == "" {
			abort(c, errTokenInvalid)
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxNickname, claims.Nickname)
		c.Next()
	}
}

// CurrentUser returns the viewer stored by JWTAuthMiddleware.
func CurrentUser(c *gin.Context) models.User {
	return models.User{
		ID:       c.GetString(ctxUserID),
		Nickname: c.GetString(ctxNickname),
	}
}

// abort ends the request with err rendered like the handlers render errors.
func abort(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	c.AbortWithStatusJSON(code.HTTPStatus(), gin.H{
		"error":   code,
		"message": err.Error(),
	})
}

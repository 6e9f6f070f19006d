// Package middleware holds the gin middleware for authentication, role checks,
// rate limiting, request logging and metrics.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/justsurfingit/ejobs/internal/apperr"
	"github.com/justsurfingit/ejobs/internal/models"
	"go.uber.org/zap"
)

const userKey = "ejobs.user"

// UserLoader resolves the subject of a verified token.
type UserLoader interface {
	GetActiveUser(ctx context.Context, id uint) (*models.User, error)
}

// Authenticator verifies bearer tokens issued by the external auth server.
type Authenticator struct {
	secret []byte
	users  UserLoader
	log    *zap.Logger
}

func NewAuthenticator(secret string, users UserLoader, log *zap.Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), users: users, log: log}
}

// Required rejects requests without a valid token. A user already attached
// by Optional is reused.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Next()
			return
		}
		user, err := a.authenticate(c)
		if err == nil && user == nil {
			err = apperr.Unauthorized("authentication credentials were not provided")
		}
		if err != nil {
			a.log.Debug("authentication failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
			abort(c, err)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// Optional attaches the user when a valid token is present and otherwise lets
// the request through anonymously.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := a.authenticate(c); err == nil && user != nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

// authenticate returns (nil, nil) when no Authorization header is present.
func (a *Authenticator) authenticate(c *gin.Context) (*models.User, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, nil
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, apperr.Unauthorized("invalid authorization header")
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, &apperr.Error{Status: http.StatusUnauthorized, Message: "invalid token", Err: err}
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, apperr.Unauthorized("invalid token subject")
	}

	user, err := a.users.GetActiveUser(c.Request.Context(), uint(id))
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Status == http.StatusNotFound {
			return nil, apperr.Unauthorized("user not found or inactive")
		}
		return nil, err
	}
	return user, nil
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// SetUser stores user on the context; used by tests and by Required.
func SetUser(c *gin.Context, user *models.User) {
	c.Set(userKey, user)
}

// RequireRole lets the request through only for the listed roles. It must run
// after Required.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abort(c, apperr.Unauthorized("authentication credentials were not provided"))
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		abort(c, apperr.Forbidden("you do not have permission to perform this action"))
	}
}

func abort(c *gin.Context, err error) {
	e := apperr.From(err)
	c.AbortWithStatusJSON(e.Status, gin.H{"error": e.Message})
}

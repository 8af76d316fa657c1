package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

// Context keys set by Auth.
const (
	KeySession   = "session"
	KeySessionID = "session_id"
	KeyUserID    = "user_id"
	KeyUsername  = "username"
	KeyRole      = "role"
)

// SessionResolver looks up the live session named by a token.
type SessionResolver interface {
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
}

// Auth validates the JWT, resolves its session and injects the session user
// into context. Role and username come from the live session, not the token,
// so role changes apply to tokens issued before them.
func Auth(jwtSecret string, sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing session")
			}

			sess, err := sessions.Session(c.Request().Context(), sid)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
				}
				return err
			}

			c.Set(KeySession, sess)
			c.Set(KeySessionID, sess.ID)
			c.Set(KeyUserID, sess.User.ID)
			c.Set(KeyUsername, sess.User.Username)
			c.Set(KeyRole, string(sess.User.Role))

			return next(c)
		}
	}
}

package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

// SessionManager opens and closes marketplace sessions.
type SessionManager interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthService implements login and logout and signs session tokens.
type AuthService struct {
	sessions  SessionManager
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(sessions SessionManager, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	sess, err := s.sessions.Login(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(sess)
	if err != nil {
		_ = s.sessions.Logout(ctx, sess.ID)
		return "", nil, err
	}
	return token, sess, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Logout(ctx, sessionID)
}

func (s *AuthService) generateToken(sess *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":     sess.ID,
		"user_id": sess.User.ID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	Store  *Store
	Secret string
	TTL    time.Duration
}

func NewService(store *Store, secret string, ttl time.Duration) *Service {
	return &Service{Store: store, Secret: secret, TTL: ttl}
}

type LoginResult struct {
	Token string      `json:"token"`
	User  UserContext `json:"user"`
}

// Login verifies the password and issues a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.Store.FindActiveUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if err := CheckPassword(user.Password, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	identity := UserContext{UserID: user.ID, EmployeeID: user.EmployeeID, RoleName: user.RoleName}
	token, err := GenerateToken(s.Secret, Claims{UserID: user.ID, EmployeeID: user.EmployeeID, RoleName: user.RoleName}, s.TTL)
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.Store.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.Warn("update last_login failed", "userId", user.ID, "err", err)
	}
	return LoginResult{Token: token, User: identity}, nil
}

func (s *Service) UserActive(ctx context.Context, userID string) (bool, error) {
	return s.Store.UserActive(ctx, userID)
}

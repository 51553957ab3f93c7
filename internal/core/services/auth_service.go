package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ballothub/ballot/internal/core/domain"
	"github.com/ballothub/ballot/internal/core/ports"
)

const sessionTTL = 12 * time.Hour

type authService struct {
	accounts            ports.AccountRepository
	secret              []byte
	requireVerification bool
}

func NewAuthService(accounts ports.AccountRepository, secret []byte, requireVerification bool) ports.AuthService {
	return &authService{
		accounts:            accounts,
		secret:              secret,
		requireVerification: requireVerification,
	}
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (string, *domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	// Administrators bypass identity verification.
	if s.requireVerification && !account.Admin && !account.Verified {
		return "", nil, domain.ErrPendingVerification
	}

	token, err := s.issueToken(account)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, account, nil
}

func (s *authService) Verify(token string) (domain.Principal, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}
	accountID, err := uuid.Parse(sub)
	if err != nil {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	username, _ := claims["username"].(string)
	admin, _ := claims["admin"].(bool)

	return domain.Principal{AccountID: accountID, Username: username, Admin: admin}, nil
}

func (s *authService) issueToken(account *domain.Account) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      account.ID.String(),
		"username": account.Username,
		"admin":    account.Admin,
		"iat":      now.Unix(),
		"exp":      now.Add(sessionTTL).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/carelink/hospital-system/internal/auth"
	"github.com/carelink/hospital-system/internal/core/domain"
	"github.com/carelink/hospital-system/internal/core/ports"
)

// AuthService implements signup and login over the credential store.
type AuthService struct {
	repo   ports.AuthRepository
	issuer *auth.Issuer
	audit  ports.AuditRecorder
	log    zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, issuer *auth.Issuer, audit ports.AuditRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, audit: audit, log: log}
}

// Signup creates a new account. No token is issued here; the caller logs in
// as a separate step.
func (s *AuthService) Signup(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return domain.ErrMissingField
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("signup: lookup: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("signup: hash: %w", err)
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	// The unique index closes the check-then-insert race: a concurrent
	// signup for the same email surfaces here as ErrDuplicateEmail.
	if err := s.repo.Insert(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("signup: insert: %w", err)
	}

	s.record(domain.AuditEvent{Actor: email, Action: domain.AuditSignup})
	s.log.Info().Str("email", email).Msg("account created")
	return nil
}

// Login verifies credentials and returns a signed bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrMissingField
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(domain.AuditEvent{Actor: email, Action: domain.AuditLoginFailure})
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("login: lookup: %w", err)
	}

	if !auth.VerifyPassword(password, account.PasswordHash) {
		s.record(domain.AuditEvent{Actor: email, Action: domain.AuditLoginFailure})
		return "", domain.ErrInvalidPassword
	}

	token, err := s.issuer.Issue(account.Email)
	if err != nil {
		return "", fmt.Errorf("login: issue token: %w", err)
	}

	s.record(domain.AuditEvent{Actor: email, Action: domain.AuditLoginSuccess})
	s.log.Info().Str("email", email).Msg("login succeeded")
	return token, nil
}

func (s *AuthService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.audit.Record(event)
}

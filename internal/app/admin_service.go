package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"college_assistant_bot/internal/domain/news"

	"golang.org/x/crypto/bcrypt"
)

// Secret verifies the admin password typed by a caller.
type Secret interface {
	Verify(candidate string) bool
}

// PlainSecret compares against a plaintext password in constant time.
type PlainSecret string

func (s PlainSecret) Verify(candidate string) bool {
	if s == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s), []byte(candidate)) == 1
}

// HashedSecret holds a bcrypt hash of the admin password.
type HashedSecret []byte

func (s HashedSecret) Verify(candidate string) bool {
	if len(s) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(s, []byte(candidate)) == nil
}

var ErrAdminSecretMissing = errors.New("admin secret is not configured")

type AdminService struct {
	newsRepo news.Repository
	secret   Secret
}

func NewAdminService(nr news.Repository, secret Secret) (*AdminService, error) {
	if secret == nil {
		return nil, ErrAdminSecretMissing
	}
	return &AdminService{
		newsRepo: nr,
		secret:   secret,
	}, nil
}

// Authenticate checks one login attempt.
func (s *AdminService) Authenticate(password string) bool {
	return s.secret.Verify(password)
}

// PublishNews stores a validated news draft.
func (s *AdminService) PublishNews(ctx context.Context, d news.Draft) (*news.Item, error) {
	item, err := s.newsRepo.Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("failed to publish news: %w", err)
	}
	return item, nil
}

package session

import (
	"context"
	"strings"

	"github.com/angelmondragon/burgershop-backend/pkg/config"
	"github.com/angelmondragon/burgershop-backend/pkg/security"
)

// Authenticator checks the admin credential.
type Authenticator interface {
	Authenticate(ctx context.Context, password string) (bool, error)
}

// PasswordAuthenticator checks against an argon2id hash when one is
// configured, and otherwise against the plain password.
type PasswordAuthenticator struct {
	hash  string
	plain string
}

func NewPasswordAuthenticator(cfg config.AdminConfig) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		hash:  strings.TrimSpace(cfg.PasswordHash),
		plain: cfg.Password,
	}
}

func (a *PasswordAuthenticator) Authenticate(_ context.Context, password string) (bool, error) {
	if a.hash != "" {
		return security.VerifyPassword(password, a.hash)
	}
	return security.EqualPlain(password, a.plain), nil
}

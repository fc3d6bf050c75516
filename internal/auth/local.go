package auth

import (
	"context"
	"errors"

	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/storage"
)

// LocalAuthProvider resolves tokens against the local user store. A
// configured fallback token maps to a demo user so a fresh install works
// without seeding users first.
type LocalAuthProvider struct {
	Token  string
	users  storage.UserRepository
	logger internal.Logger
}

func (a *LocalAuthProvider) ValidateTokenLocal(token string) (*internal.User, error) {
	if a.users != nil {
		if user, err := a.users.GetUserByToken(context.Background(), token); err == nil {
			return user, nil
		}
	}
	if token == a.Token {
		return &internal.User{ID: "u1", Token: a.Token, Name: "Demo User"}, nil
	}
	a.logger.Warnf("invalid token: %s", token)
	return nil, errors.New("invalid token")
}

func (a *LocalAuthProvider) ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error) {
	a.logger.Warnf("ValidateTokenRemote not implemented in LocalAuthProvider")
	return nil, errors.New("not implemented in LocalAuthProvider")
}

func NewLocalAuthProvider(token string, users storage.UserRepository, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{Token: token, users: users, logger: logger}
}

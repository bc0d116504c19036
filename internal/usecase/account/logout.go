package account

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/auth"
	domain "github.com/BruksfildServices01/coach-crm/internal/domain/account"
)

// Logout revokes the refresh token. A missing or unknown token is not an
// error.
type Logout struct {
	repo domain.Repository
}

func NewLogout(repo domain.Repository) *Logout {
	return &Logout{repo: repo}
}

func (uc *Logout) Execute(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}

	stored, err := uc.repo.FindRefreshToken(ctx, auth.HashRefreshToken(rawToken))
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if stored.IsRevoked() {
		return nil
	}

	return uc.repo.RevokeRefreshToken(ctx, stored.ID, time.Now())
}

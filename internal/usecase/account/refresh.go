package account

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/auth"
	domain "github.com/BruksfildServices01/coach-crm/internal/domain/account"
)

// Refresh issues a new access token from a refresh token. The refresh token
// itself is not rotated.
type Refresh struct {
	repo   domain.Repository
	issuer *auth.Issuer
}

func NewRefresh(repo domain.Repository, issuer *auth.Issuer) *Refresh {
	return &Refresh{repo: repo, issuer: issuer}
}

func (uc *Refresh) Execute(
	ctx context.Context,
	rawToken string,
) (string, time.Time, error) {

	if rawToken == "" {
		return "", time.Time{}, errMissingRefresh
	}

	stored, err := uc.repo.FindRefreshToken(ctx, auth.HashRefreshToken(rawToken))
	if errors.Is(err, domain.ErrNotFound) {
		return "", time.Time{}, errInvalidRefresh
	}
	if err != nil {
		return "", time.Time{}, err
	}
	if !stored.IsActiveAt(time.Now()) {
		return "", time.Time{}, errInvalidRefresh
	}

	acc, err := uc.repo.FindByID(ctx, stored.AccountID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", time.Time{}, errInvalidRefresh
	}
	if err != nil {
		return "", time.Time{}, err
	}

	identity, err := domain.IdentityOf(acc)
	if err != nil {
		return "", time.Time{}, err
	}

	return uc.issuer.Issue(identity)
}

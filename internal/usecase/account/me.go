package account

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type GetMe struct {
	repo domain.Repository
}

func NewGetMe(repo domain.Repository) *GetMe {
	return &GetMe{repo: repo}
}

func (uc *GetMe) Execute(ctx context.Context, id domain.Identity) (*models.Account, error) {
	acc, err := uc.repo.FindByID(ctx, id.AccountID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrUnauthenticated("invalid_token", "Account no longer exists.")
	}
	return acc, err
}

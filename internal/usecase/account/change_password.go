package account

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/coach-crm/internal/auth"
	domain "github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
)

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

type ChangePassword struct {
	repo   domain.Repository
	hasher auth.PasswordHasher
}

func NewChangePassword(repo domain.Repository, hasher auth.PasswordHasher) *ChangePassword {
	return &ChangePassword{repo: repo, hasher: hasher}
}

func (uc *ChangePassword) Execute(
	ctx context.Context,
	id domain.Identity,
	in ChangePasswordInput,
) error {

	if err := domain.ValidatePassword(in.NewPassword); err != nil {
		return err
	}

	acc, err := uc.repo.FindByID(ctx, id.AccountID)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrUnauthenticated("invalid_token", "Account no longer exists.")
	}
	if err != nil {
		return err
	}

	if !uc.hasher.Verify(in.CurrentPassword, acc.PasswordHash, acc.PasswordSalt) {
		return httperr.ErrValidation("wrong_password", "Current password is incorrect.")
	}

	hash, salt, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}

	return uc.repo.UpdatePassword(ctx, acc.ID, hash, salt)
}

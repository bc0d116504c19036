package account

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/coach-crm/internal/auth"
	domain "github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type RegisterPlayerInput struct {
	Email    string
	Password string
}

// RegisterPlayer attaches a login to an athlete a coach already created
// with the same email.
type RegisterPlayer struct {
	accounts domain.Repository
	roster   roster.Repository
	hasher   auth.PasswordHasher
}

func NewRegisterPlayer(
	accounts domain.Repository,
	rosterRepo roster.Repository,
	hasher auth.PasswordHasher,
) *RegisterPlayer {
	return &RegisterPlayer{
		accounts: accounts,
		roster:   rosterRepo,
		hasher:   hasher,
	}
}

func (uc *RegisterPlayer) Execute(
	ctx context.Context,
	in RegisterPlayerInput,
) (*models.Account, *models.Athlete, error) {

	email, err := checkEmail(in.Email, nil)
	if err != nil {
		return nil, nil, err
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, nil, err
	}

	athlete, err := uc.roster.FindAthleteByEmail(ctx, email)
	if errors.Is(err, roster.ErrNotFound) {
		return nil, nil, httperr.ErrNotFound("athlete_not_found", "No athlete with this email. Ask your coach to add you first.")
	}
	if err != nil {
		return nil, nil, err
	}

	_, err = uc.accounts.FindByAthleteID(ctx, athlete.ID)
	switch {
	case err == nil:
		return nil, nil, httperr.ErrConflict("already_registered", "This athlete already has an account.")
	case !errors.Is(err, domain.ErrNotFound):
		return nil, nil, err
	}

	exists, err := uc.accounts.EmailExists(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, errEmailTaken
	}

	hash, salt, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, err
	}

	athleteID := athlete.ID
	acc := &models.Account{
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Kind:         models.AccountKindPlayer,
		AthleteID:    &athleteID,
	}

	if err := uc.accounts.CreatePlayerAccount(ctx, acc); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, nil, errEmailTaken
		}
		return nil, nil, err
	}

	return acc, athlete, nil
}

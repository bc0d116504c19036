package coach

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

var errCoachNotFound = httperr.ErrNotFound("coach_not_found", "Coach not found.")

type Profile struct {
	Coach          *models.Coach
	HasUserAccount bool
}

// ======================================================
// GET
// ======================================================

type GetProfile struct {
	roster   roster.Repository
	accounts account.Repository
}

func NewGetProfile(rosterRepo roster.Repository, accounts account.Repository) *GetProfile {
	return &GetProfile{roster: rosterRepo, accounts: accounts}
}

func (uc *GetProfile) Execute(ctx context.Context, id account.Identity) (*Profile, error) {
	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}
	return uc.load(ctx, coachID)
}

func (uc *GetProfile) load(ctx context.Context, coachID uint) (*Profile, error) {
	c, err := uc.roster.GetCoach(ctx, coachID)
	if errors.Is(err, roster.ErrNotFound) {
		return nil, errCoachNotFound
	}
	if err != nil {
		return nil, err
	}

	_, err = uc.accounts.FindByCoachID(ctx, coachID)
	switch {
	case errors.Is(err, account.ErrNotFound):
		return &Profile{Coach: c}, nil
	case err != nil:
		return nil, err
	}
	return &Profile{Coach: c, HasUserAccount: true}, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateProfileInput struct {
	FirstName string
	LastName  string
}

type UpdateProfile struct {
	get   *GetProfile
	audit *audit.Logger
}

func NewUpdateProfile(rosterRepo roster.Repository, accounts account.Repository, audit *audit.Logger) *UpdateProfile {
	return &UpdateProfile{
		get:   NewGetProfile(rosterRepo, accounts),
		audit: audit,
	}
}

// Execute renames the coach. The login email is not editable here.
func (uc *UpdateProfile) Execute(ctx context.Context, id account.Identity, in UpdateProfileInput) (*Profile, error) {
	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}

	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, httperr.ErrValidation("invalid_name", "First and last name are required.")
	}

	p, err := uc.get.load(ctx, coachID)
	if err != nil {
		return nil, err
	}

	p.Coach.FirstName = first
	p.Coach.LastName = last
	if err := uc.get.roster.UpdateCoach(ctx, p.Coach); err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			return nil, errCoachNotFound
		}
		return nil, err
	}

	accountID := id.AccountID
	uc.audit.Log(ctx, audit.Event{
		CoachID:   coachID,
		AccountID: &accountID,
		Action:    "coach_updated",
		Entity:    audit.EntityCoach,
		EntityID:  &coachID,
	})
	return p, nil
}

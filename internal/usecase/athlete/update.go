package athlete

import (
	"context"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type UpdateAthlete struct {
	repo  roster.Repository
	audit *audit.Logger
}

func NewUpdateAthlete(repo roster.Repository, audit *audit.Logger) *UpdateAthlete {
	return &UpdateAthlete{repo: repo, audit: audit}
}

func (uc *UpdateAthlete) Execute(
	ctx context.Context,
	id account.Identity,
	athleteID uint,
	in ProfileInput,
) (*models.Athlete, error) {

	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}

	var a *models.Athlete
	err = uc.repo.Transaction(ctx, func(tx roster.Repository) error {
		var err error
		a, err = tx.GetAthlete(ctx, coachID, athleteID)
		if err != nil {
			return mapNotFound(err, errAthleteNotFound)
		}

		if err := in.apply(a); err != nil {
			return err
		}
		if err := ensureEmailFree(ctx, tx, a.Email, a.ID); err != nil {
			return err
		}

		if err := tx.UpdateAthlete(ctx, a); err != nil {
			if httperr.IsUniqueViolation(err) {
				return errEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Log(ctx, event(id, coachID, "athlete_updated", audit.EntityAthlete, a.ID, nil))
	return a, nil
}

type DeleteAthlete struct {
	repo  roster.Repository
	audit *audit.Logger
}

func NewDeleteAthlete(repo roster.Repository, audit *audit.Logger) *DeleteAthlete {
	return &DeleteAthlete{repo: repo, audit: audit}
}

// Execute removes the athlete with its memberships, player account and
// plans targeting them.
func (uc *DeleteAthlete) Execute(
	ctx context.Context,
	id account.Identity,
	athleteID uint,
) error {

	coachID, err := id.RequireCoach()
	if err != nil {
		return err
	}

	var a *models.Athlete
	err = uc.repo.Transaction(ctx, func(tx roster.Repository) error {
		var err error
		a, err = tx.GetAthlete(ctx, coachID, athleteID)
		if err != nil {
			return mapNotFound(err, errAthleteNotFound)
		}
		return mapNotFound(tx.DeleteAthlete(ctx, a.ID), errAthleteNotFound)
	})
	if err != nil {
		return err
	}

	uc.audit.Log(ctx, event(id, coachID, "athlete_deleted", audit.EntityAthlete, a.ID, map[string]any{
		"name": a.FirstName + " " + a.LastName,
	}))
	return nil
}

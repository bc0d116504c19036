package athlete

import (
	"context"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	ProfileInput

	// Nil places the athlete in the coach's bucket team.
	TeamID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAthlete struct {
	repo  roster.Repository
	audit *audit.Logger
}

func NewCreateAthlete(
	repo roster.Repository,
	audit *audit.Logger,
) *CreateAthlete {
	return &CreateAthlete{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAthlete) Execute(
	ctx context.Context,
	id account.Identity,
	in CreateInput,
) (*models.Athlete, error) {

	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}

	athlete := &models.Athlete{}
	if err := in.apply(athlete); err != nil {
		return nil, err
	}

	err = uc.repo.Transaction(ctx, func(tx roster.Repository) error {
		// --------------------------------------------------
		// Target team: the given one or the bucket
		// --------------------------------------------------
		var team *models.Team
		var err error
		if in.TeamID != nil {
			team, err = tx.GetTeam(ctx, coachID, *in.TeamID)
			if err != nil {
				return mapNotFound(err, errTeamNotFound)
			}
		} else {
			team, err = tx.EnsureUnassignedTeam(ctx, coachID)
			if err != nil {
				return err
			}
		}

		if err := ensureEmailFree(ctx, tx, athlete.Email, 0); err != nil {
			return err
		}

		// --------------------------------------------------
		// Athlete + first membership
		// --------------------------------------------------
		if err := tx.CreateAthlete(ctx, athlete); err != nil {
			if httperr.IsUniqueViolation(err) {
				return errEmailTaken
			}
			return err
		}

		return tx.AddMembership(ctx, &models.TeamMembership{
			AthleteID: athlete.ID,
			TeamID:    team.ID,
			JoinedAt:  time.Now(),
			Role:      roster.RolePlayer,
		})
	})
	if err != nil {
		return nil, err
	}

	created, err := uc.repo.GetAthlete(ctx, coachID, athlete.ID)
	if err != nil {
		return nil, err
	}

	uc.audit.Log(ctx, event(id, coachID, "athlete_created", audit.EntityAthlete, athlete.ID, map[string]any{
		"teamId": in.TeamID,
	}))

	return created, nil
}

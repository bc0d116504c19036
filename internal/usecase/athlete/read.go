package athlete

import (
	"context"

	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type ListAthletes struct {
	repo roster.Repository
}

func NewListAthletes(repo roster.Repository) *ListAthletes {
	return &ListAthletes{repo: repo}
}

// Execute lists the coach's athletes, bucketed ones included. teamID must
// be one of the coach's visible teams.
func (uc *ListAthletes) Execute(
	ctx context.Context,
	id account.Identity,
	teamID *uint,
) ([]models.Athlete, error) {

	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}

	if teamID != nil {
		if _, err := uc.repo.GetTeam(ctx, coachID, *teamID); err != nil {
			return nil, mapNotFound(err, errTeamNotFound)
		}
	}

	return uc.repo.ListAthletes(ctx, coachID, teamID)
}

type GetAthlete struct {
	repo roster.Repository
}

func NewGetAthlete(repo roster.Repository) *GetAthlete {
	return &GetAthlete{repo: repo}
}

func (uc *GetAthlete) Execute(
	ctx context.Context,
	id account.Identity,
	athleteID uint,
) (*models.Athlete, error) {

	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}

	a, err := uc.repo.GetAthlete(ctx, coachID, athleteID)
	if err != nil {
		return nil, mapNotFound(err, errAthleteNotFound)
	}
	return a, nil
}

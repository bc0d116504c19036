package team

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

var errTeamNotFound = httperr.ErrNotFound("team_not_found", "Team not found.")

func mapNotFound(err error) error {
	if errors.Is(err, roster.ErrNotFound) {
		return errTeamNotFound
	}
	return err
}

// ======================================================
// LIST (coach)
// ======================================================

type ListTeams struct {
	repo roster.Repository
}

func NewListTeams(repo roster.Repository) *ListTeams {
	return &ListTeams{repo: repo}
}

func (uc *ListTeams) Execute(ctx context.Context, id account.Identity) ([]roster.TeamSummary, error) {
	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}
	return uc.repo.ListTeams(ctx, coachID)
}

// ======================================================
// MY TEAMS (either kind)
// ======================================================

type MyTeams struct {
	repo roster.Repository
}

func NewMyTeams(repo roster.Repository) *MyTeams {
	return &MyTeams{repo: repo}
}

// Execute returns the coach's own teams or, for a player, the teams their
// athlete belongs to. The bucket is never included.
func (uc *MyTeams) Execute(ctx context.Context, id account.Identity) ([]roster.TeamSummary, error) {
	switch {
	case id.IsCoach():
		return uc.repo.ListTeams(ctx, id.CoachID)
	case id.IsPlayer():
		return uc.repo.ListAthleteTeams(ctx, id.AthleteID)
	default:
		return nil, httperr.ErrForbidden("unknown_account_kind", "Account kind not supported.")
	}
}

// ======================================================
// GET
// ======================================================

type GetTeam struct {
	repo roster.Repository
}

func NewGetTeam(repo roster.Repository) *GetTeam {
	return &GetTeam{repo: repo}
}

func (uc *GetTeam) Execute(ctx context.Context, id account.Identity, teamID uint) (*roster.TeamSummary, error) {
	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}

	summary, err := uc.repo.GetTeamSummary(ctx, coachID, teamID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return summary, nil
}

// ======================================================
// ROSTER
// ======================================================

type ListTeamAthletes struct {
	repo roster.Repository
}

func NewListTeamAthletes(repo roster.Repository) *ListTeamAthletes {
	return &ListTeamAthletes{repo: repo}
}

func (uc *ListTeamAthletes) Execute(ctx context.Context, id account.Identity, teamID uint) ([]models.Athlete, error) {
	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetTeam(ctx, coachID, teamID); err != nil {
		return nil, mapNotFound(err)
	}
	return uc.repo.ListAthletes(ctx, coachID, &teamID)
}

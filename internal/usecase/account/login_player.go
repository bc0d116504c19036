package account

import (
	"context"

	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type PlayerSession struct {
	*Session
	Athlete *models.Athlete
	Teams   []roster.TeamSummary
}

// LoginPlayer is a player login that also returns the profile summary the
// client shows right after signing in.
type LoginPlayer struct {
	login  *Login
	roster roster.Repository
}

func NewLoginPlayer(login *Login, rosterRepo roster.Repository) *LoginPlayer {
	return &LoginPlayer{login: login, roster: rosterRepo}
}

func (uc *LoginPlayer) Execute(
	ctx context.Context,
	in LoginInput,
) (*PlayerSession, error) {

	session, err := uc.login.Execute(ctx, models.AccountKindPlayer, in)
	if err != nil {
		return nil, err
	}

	athlete, err := uc.roster.GetAthleteByID(ctx, session.Identity.AthleteID)
	if err != nil {
		return nil, err
	}

	teams, err := uc.roster.ListAthleteTeams(ctx, athlete.ID)
	if err != nil {
		return nil, err
	}

	return &PlayerSession{
		Session: session,
		Athlete: athlete,
		Teams:   teams,
	}, nil
}

package player

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
	"github.com/BruksfildServices01/coach-crm/internal/timezone"
)

type Profile struct {
	Athlete        *models.Athlete
	Age            *int
	Teams          []roster.TeamSummary
	HasUserAccount bool
}

type GetProfile struct {
	roster   roster.Repository
	accounts account.Repository
	tz       string
	now      func() time.Time
}

func NewGetProfile(rosterRepo roster.Repository, accounts account.Repository, tz string) *GetProfile {
	return &GetProfile{
		roster:   rosterRepo,
		accounts: accounts,
		tz:       tz,
		now:      time.Now,
	}
}

func (uc *GetProfile) WithClock(now func() time.Time) *GetProfile {
	uc.now = now
	return uc
}

func (uc *GetProfile) Execute(ctx context.Context, id account.Identity) (*Profile, error) {
	athleteID, err := id.RequirePlayer()
	if err != nil {
		return nil, err
	}

	a, err := uc.roster.GetAthleteByID(ctx, athleteID)
	if errors.Is(err, roster.ErrNotFound) {
		return nil, httperr.ErrNotFound("athlete_not_found", "Athlete not found.")
	}
	if err != nil {
		return nil, err
	}

	teams, err := uc.roster.ListAthleteTeams(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	_, err = uc.accounts.FindByAthleteID(ctx, athleteID)
	if err != nil && !errors.Is(err, account.ErrNotFound) {
		return nil, err
	}

	p := &Profile{
		Athlete:        a,
		Teams:          teams,
		HasUserAccount: err == nil,
	}
	if a.BirthDate != nil {
		age := AgeOn(*a.BirthDate, timezone.DateOf(uc.now(), uc.tz))
		p.Age = &age
	}
	return p, nil
}

// AgeOn returns the completed years between birth and day.
func AgeOn(birth, day time.Time) int {
	age := day.Year() - birth.Year()
	if day.Month() < birth.Month() || (day.Month() == birth.Month() && day.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

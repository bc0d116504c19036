package athlete

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
	"github.com/BruksfildServices01/coach-crm/internal/validators"
)

var (
	errAthleteNotFound = httperr.ErrNotFound("athlete_not_found", "Athlete not found.")
	errTeamNotFound    = httperr.ErrNotFound("team_not_found", "Team not found.")
	errEmailTaken      = httperr.ErrConflict("athlete_email_taken", "Another athlete already uses this email.")
)

// ProfileInput is the editable part of an athlete.
type ProfileInput struct {
	FirstName string
	LastName  string
	BirthDate *time.Time
	Weight    *float64
	Height    *float64
	Email     *string
}

// apply validates in and copies it onto a.
func (in ProfileInput) apply(a *models.Athlete) error {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return httperr.ErrValidation("invalid_name", "First and last name are required.")
	}
	if in.Weight != nil && *in.Weight < 0 {
		return httperr.ErrValidation("invalid_weight", "Weight must not be negative.")
	}
	if in.Height != nil && *in.Height < 0 {
		return httperr.ErrValidation("invalid_height", "Height must not be negative.")
	}

	var email *string
	if in.Email != nil {
		if e := validators.NormalizeEmail(*in.Email); e != "" {
			if !validators.IsEmailSyntaxValid(e) {
				return httperr.ErrValidation("invalid_email", "Email is not valid.")
			}
			email = &e
		}
	}

	a.FirstName = first
	a.LastName = last
	a.BirthDate = in.BirthDate
	a.Weight = in.Weight
	a.Height = in.Height
	a.Email = email
	return nil
}

// ensureEmailFree rejects an email already used by another athlete.
func ensureEmailFree(ctx context.Context, repo roster.Repository, email *string, selfID uint) error {
	if email == nil {
		return nil
	}
	other, err := repo.FindAthleteByEmail(ctx, *email)
	if errors.Is(err, roster.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != selfID {
		return errEmailTaken
	}
	return nil
}

func mapNotFound(err error, notFound error) error {
	if errors.Is(err, roster.ErrNotFound) {
		return notFound
	}
	return err
}

func event(id account.Identity, coachID uint, action string, entity string, entityID uint, meta any) audit.Event {
	accountID := id.AccountID
	return audit.Event{
		CoachID:   coachID,
		AccountID: &accountID,
		Action:    action,
		Entity:    entity,
		EntityID:  &entityID,
		Metadata:  meta,
	}
}

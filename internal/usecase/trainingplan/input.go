package trainingplan

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/domain/training"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

var (
	errPlanNotFound    = httperr.ErrNotFound("plan_not_found", "Training plan not found.")
	errAthleteNotFound = httperr.ErrNotFound("athlete_not_found", "Athlete not found.")
	errTeamNotFound    = httperr.ErrNotFound("team_not_found", "Team not found.")
)

// PlanInput is the raw create/update payload. Date is YYYY-MM-DD, times
// are HH:MM and may be empty.
type PlanInput struct {
	Name        string
	Description string
	Date        string
	StartTime   string
	EndTime     string
	AthleteID   *uint
	TeamID      *uint
}

// build validates in and returns the plan fields plus its target.
func (in PlanInput) build() (models.TrainingPlan, training.Target, error) {
	target, err := training.TargetOf(in.AthleteID, in.TeamID)
	if err != nil {
		return models.TrainingPlan{}, training.Target{}, err
	}

	date, err := training.ParseDate(in.Date)
	if err != nil {
		return models.TrainingPlan{}, training.Target{}, err
	}
	start, err := training.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return models.TrainingPlan{}, training.Target{}, err
	}
	end, err := training.ParseTimeOfDay(in.EndTime)
	if err != nil {
		return models.TrainingPlan{}, training.Target{}, err
	}

	name := strings.TrimSpace(in.Name)
	if err := training.ValidateSchedule(name, start, end); err != nil {
		return models.TrainingPlan{}, training.Target{}, err
	}

	return models.TrainingPlan{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Date:        date,
		StartTime:   start,
		EndTime:     end,
	}, target, nil
}

// checkTarget verifies the coach owns the plan's athlete or visible team.
func checkTarget(ctx context.Context, rosterRepo roster.Repository, coachID uint, t training.Target) error {
	var err error
	switch t.Kind {
	case training.TargetAthlete:
		if _, err = rosterRepo.GetAthlete(ctx, coachID, t.ID); errors.Is(err, roster.ErrNotFound) {
			return errAthleteNotFound
		}
	case training.TargetTeam:
		if _, err = rosterRepo.GetTeam(ctx, coachID, t.ID); errors.Is(err, roster.ErrNotFound) {
			return errTeamNotFound
		}
	}
	return err
}

func mapNotFound(err error) error {
	if errors.Is(err, training.ErrNotFound) {
		return errPlanNotFound
	}
	return err
}

func event(id account.Identity, coachID uint, action string, planID uint, meta any) audit.Event {
	accountID := id.AccountID
	return audit.Event{
		CoachID:   coachID,
		AccountID: &accountID,
		Action:    action,
		Entity:    audit.EntityTrainingPlan,
		EntityID:  &planID,
		Metadata:  meta,
	}
}

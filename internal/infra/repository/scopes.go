package repository

import (
	"errors"

	"github.com/samber/oops"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
)

// --------------------------------------------------
// Ownership scopes
// --------------------------------------------------

// Athletes with at least one membership in any team (bucket included) of
// the coach.
const coachAthleteIDsSQL = `
	SELECT tm.athlete_id
	FROM team_memberships tm
	JOIN teams t ON t.id = tm.team_id
	WHERE t.coach_id = ?`

func athletesOwnedBy(coachID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("athletes.id IN ("+coachAthleteIDsSQL+")", coachID)
	}
}

func visibleTeamsOf(coachID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("teams.coach_id = ? AND teams.name <> ?", coachID, roster.UnassignedTeamName)
	}
}

// A plan is the coach's when its team is the coach's or its athlete is.
func plansOwnedByCoach(coachID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"(training_plans.team_id IN (SELECT id FROM teams WHERE coach_id = ?) OR training_plans.athlete_id IN ("+coachAthleteIDsSQL+"))",
			coachID, coachID,
		)
	}
}

// A plan is visible to a player when it targets them or one of their teams.
func plansVisibleToAthlete(athleteID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"(training_plans.athlete_id = ? OR training_plans.team_id IN (SELECT team_id FROM team_memberships WHERE athlete_id = ?))",
			athleteID, athleteID,
		)
	}
}

func planOrder(db *gorm.DB) *gorm.DB {
	return db.Order("training_plans.date ASC, training_plans.start_time ASC NULLS LAST, training_plans.id ASC")
}

// --------------------------------------------------
// Errors
// --------------------------------------------------

// wrapErr maps a missing row to notFound and tags anything else with the
// failing operation.
func wrapErr(err error, notFound error, op string, kv ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	return oops.In("repository").With("op", op).With(kv...).Wrap(err)
}

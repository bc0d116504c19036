package training

import (
	"context"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/models"
)

// Filter narrows a plan listing. Dates are inclusive calendar days.
type Filter struct {
	AthleteID *uint
	TeamID    *uint
	From      *time.Time
	To        *time.Time
}

// Repository returns plans with Athlete and Team loaded, ordered by date,
// start time (nulls last) and id.
type Repository interface {
	// ListForCoach matches plans whose team belongs to the coach or whose
	// athlete is one of the coach's athletes. With AthleteID set it also
	// includes plans of the coach's teams the athlete belongs to.
	ListForCoach(
		ctx context.Context,
		coachID uint,
		f Filter,
	) ([]models.TrainingPlan, error)

	// ListForAthlete matches plans targeting the athlete or any team the
	// athlete belongs to.
	ListForAthlete(
		ctx context.Context,
		athleteID uint,
		f Filter,
	) ([]models.TrainingPlan, error)

	GetForCoach(
		ctx context.Context,
		coachID uint,
		planID uint,
	) (*models.TrainingPlan, error)

	GetForAthlete(
		ctx context.Context,
		athleteID uint,
		planID uint,
	) (*models.TrainingPlan, error)

	Create(
		ctx context.Context,
		plan *models.TrainingPlan,
	) error

	Update(
		ctx context.Context,
		plan *models.TrainingPlan,
	) error

	Delete(
		ctx context.Context,
		planID uint,
	) error
}

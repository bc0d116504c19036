package trainingplan

import (
	"context"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/training"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
	"github.com/BruksfildServices01/coach-crm/internal/timezone"
)

var errUnknownKind = httperr.ErrForbidden("unknown_account_kind", "Account kind not supported.")

// ======================================================
// LIST
// ======================================================

type ListPlans struct {
	repo training.Repository
}

func NewListPlans(repo training.Repository) *ListPlans {
	return &ListPlans{repo: repo}
}

// Execute lists the plans visible to the caller. Players only filter by
// date; athlete and team filters apply to coaches.
func (uc *ListPlans) Execute(
	ctx context.Context,
	id account.Identity,
	f training.Filter,
) ([]models.TrainingPlan, error) {

	switch {
	case id.IsCoach():
		coachID, err := id.RequireCoach()
		if err != nil {
			return nil, err
		}
		return uc.repo.ListForCoach(ctx, coachID, f)

	case id.IsPlayer():
		athleteID, err := id.RequirePlayer()
		if err != nil {
			return nil, err
		}
		return uc.repo.ListForAthlete(ctx, athleteID, training.Filter{From: f.From, To: f.To})
	}

	return nil, errUnknownKind
}

// ======================================================
// UPCOMING
// ======================================================

type Upcoming struct {
	list *ListPlans
	tz   string
	now  func() time.Time
}

func NewUpcoming(repo training.Repository, tz string) *Upcoming {
	return &Upcoming{
		list: NewListPlans(repo),
		tz:   tz,
		now:  time.Now,
	}
}

// WithClock overrides the clock used to resolve "today".
func (uc *Upcoming) WithClock(now func() time.Time) *Upcoming {
	uc.now = now
	return uc
}

// Execute lists plans dated on or after from; nil means today in the
// configured timezone.
func (uc *Upcoming) Execute(
	ctx context.Context,
	id account.Identity,
	from *time.Time,
) ([]models.TrainingPlan, error) {

	if from == nil {
		today := timezone.DateOf(uc.now(), uc.tz)
		from = &today
	}
	return uc.list.Execute(ctx, id, training.Filter{From: from})
}

// ======================================================
// GET
// ======================================================

type GetPlan struct {
	repo training.Repository
}

func NewGetPlan(repo training.Repository) *GetPlan {
	return &GetPlan{repo: repo}
}

func (uc *GetPlan) Execute(
	ctx context.Context,
	id account.Identity,
	planID uint,
) (*models.TrainingPlan, error) {

	var (
		plan *models.TrainingPlan
		err  error
	)

	switch {
	case id.IsCoach():
		plan, err = uc.repo.GetForCoach(ctx, id.CoachID, planID)
	case id.IsPlayer():
		plan, err = uc.repo.GetForAthlete(ctx, id.AthleteID, planID)
	default:
		return nil, errUnknownKind
	}
	if err != nil {
		return nil, mapNotFound(err)
	}
	return plan, nil
}

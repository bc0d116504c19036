package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/coach-crm/internal/domain/training"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type TrainingPlanGormRepository struct {
	db *gorm.DB
}

func NewTrainingPlanGormRepository(db *gorm.DB) *TrainingPlanGormRepository {
	return &TrainingPlanGormRepository{db: db}
}

var _ training.Repository = (*TrainingPlanGormRepository)(nil)

func (r *TrainingPlanGormRepository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.TrainingPlan{}).
		Preload("Athlete").
		Preload("Team")
}

func withDateRange(f training.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.From != nil {
			db = db.Where("training_plans.date >= ?", f.From.Format(training.DateLayout))
		}
		if f.To != nil {
			db = db.Where("training_plans.date <= ?", f.To.Format(training.DateLayout))
		}
		return db
	}
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *TrainingPlanGormRepository) ListForCoach(
	ctx context.Context,
	coachID uint,
	f training.Filter,
) ([]models.TrainingPlan, error) {

	q := r.base(ctx).Scopes(plansOwnedByCoach(coachID), withDateRange(f))

	if f.AthleteID != nil {
		q = q.Where(`(training_plans.athlete_id = ? OR training_plans.team_id IN (
				SELECT tm.team_id FROM team_memberships tm
				JOIN teams t ON t.id = tm.team_id
				WHERE tm.athlete_id = ? AND t.coach_id = ?))`,
			*f.AthleteID, *f.AthleteID, coachID)
	}
	if f.TeamID != nil {
		q = q.Where("training_plans.team_id = ?", *f.TeamID)
	}

	var plans []models.TrainingPlan
	if err := q.Scopes(planOrder).Find(&plans).Error; err != nil {
		return nil, wrapErr(err, training.ErrNotFound, "list_plans_for_coach", "coach_id", coachID)
	}
	return plans, nil
}

func (r *TrainingPlanGormRepository) ListForAthlete(
	ctx context.Context,
	athleteID uint,
	f training.Filter,
) ([]models.TrainingPlan, error) {

	var plans []models.TrainingPlan
	if err := r.base(ctx).
		Scopes(plansVisibleToAthlete(athleteID), withDateRange(f), planOrder).
		Find(&plans).Error; err != nil {
		return nil, wrapErr(err, training.ErrNotFound, "list_plans_for_athlete", "athlete_id", athleteID)
	}
	return plans, nil
}

// --------------------------------------------------
// Single plan
// --------------------------------------------------

func (r *TrainingPlanGormRepository) GetForCoach(
	ctx context.Context,
	coachID uint,
	planID uint,
) (*models.TrainingPlan, error) {

	var plan models.TrainingPlan
	if err := r.base(ctx).
		Scopes(plansOwnedByCoach(coachID)).
		Where("training_plans.id = ?", planID).
		First(&plan).Error; err != nil {
		return nil, wrapErr(err, training.ErrNotFound, "get_plan_for_coach", "plan_id", planID)
	}
	return &plan, nil
}

func (r *TrainingPlanGormRepository) GetForAthlete(
	ctx context.Context,
	athleteID uint,
	planID uint,
) (*models.TrainingPlan, error) {

	var plan models.TrainingPlan
	if err := r.base(ctx).
		Scopes(plansVisibleToAthlete(athleteID)).
		Where("training_plans.id = ?", planID).
		First(&plan).Error; err != nil {
		return nil, wrapErr(err, training.ErrNotFound, "get_plan_for_athlete", "plan_id", planID)
	}
	return &plan, nil
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

func (r *TrainingPlanGormRepository) Create(
	ctx context.Context,
	plan *models.TrainingPlan,
) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(plan).Error
	return wrapErr(err, training.ErrNotFound, "create_plan")
}

func (r *TrainingPlanGormRepository) Update(
	ctx context.Context,
	plan *models.TrainingPlan,
) error {
	err := r.db.WithContext(ctx).
		Model(plan).
		Omit(clause.Associations).
		Select("name", "description", "date", "start_time", "end_time", "athlete_id", "team_id").
		Updates(plan).Error
	return wrapErr(err, training.ErrNotFound, "update_plan", "plan_id", plan.ID)
}

func (r *TrainingPlanGormRepository) Delete(
	ctx context.Context,
	planID uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.TrainingPlan{}, planID)
	if res.Error != nil {
		return wrapErr(res.Error, training.ErrNotFound, "delete_plan", "plan_id", planID)
	}
	if res.RowsAffected == 0 {
		return training.ErrNotFound
	}
	return nil
}

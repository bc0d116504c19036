package trainingplan

import (
	"context"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/domain/training"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

// ======================================================
// CREATE
// ======================================================

type CreatePlan struct {
	plans  training.Repository
	roster roster.Repository
	audit  *audit.Logger
}

func NewCreatePlan(
	plans training.Repository,
	rosterRepo roster.Repository,
	audit *audit.Logger,
) *CreatePlan {
	return &CreatePlan{
		plans:  plans,
		roster: rosterRepo,
		audit:  audit,
	}
}

func (uc *CreatePlan) Execute(
	ctx context.Context,
	id account.Identity,
	in PlanInput,
) (*models.TrainingPlan, error) {

	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}

	plan, target, err := in.build()
	if err != nil {
		return nil, err
	}
	if err := checkTarget(ctx, uc.roster, coachID, target); err != nil {
		return nil, err
	}
	target.Apply(&plan)

	if err := uc.plans.Create(ctx, &plan); err != nil {
		return nil, err
	}

	uc.audit.Log(ctx, event(id, coachID, "plan_created", plan.ID, map[string]any{
		"athleteId": plan.AthleteID,
		"teamId":    plan.TeamID,
	}))

	return uc.plans.GetForCoach(ctx, coachID, plan.ID)
}

// ======================================================
// UPDATE
// ======================================================

type UpdatePlan struct {
	plans  training.Repository
	roster roster.Repository
	audit  *audit.Logger
}

func NewUpdatePlan(
	plans training.Repository,
	rosterRepo roster.Repository,
	audit *audit.Logger,
) *UpdatePlan {
	return &UpdatePlan{
		plans:  plans,
		roster: rosterRepo,
		audit:  audit,
	}
}

// Execute replaces every editable field, target included.
func (uc *UpdatePlan) Execute(
	ctx context.Context,
	id account.Identity,
	planID uint,
	in PlanInput,
) (*models.TrainingPlan, error) {

	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}

	existing, err := uc.plans.GetForCoach(ctx, coachID, planID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	plan, target, err := in.build()
	if err != nil {
		return nil, err
	}
	if err := checkTarget(ctx, uc.roster, coachID, target); err != nil {
		return nil, err
	}

	plan.ID = existing.ID
	plan.CreatedAt = existing.CreatedAt
	target.Apply(&plan)

	if err := uc.plans.Update(ctx, &plan); err != nil {
		return nil, mapNotFound(err)
	}

	uc.audit.Log(ctx, event(id, coachID, "plan_updated", plan.ID, nil))
	return uc.plans.GetForCoach(ctx, coachID, plan.ID)
}

// ======================================================
// DELETE
// ======================================================

type DeletePlan struct {
	plans training.Repository
	audit *audit.Logger
}

func NewDeletePlan(plans training.Repository, audit *audit.Logger) *DeletePlan {
	return &DeletePlan{plans: plans, audit: audit}
}

func (uc *DeletePlan) Execute(
	ctx context.Context,
	id account.Identity,
	planID uint,
) error {

	coachID, err := id.RequireCoach()
	if err != nil {
		return err
	}

	plan, err := uc.plans.GetForCoach(ctx, coachID, planID)
	if err != nil {
		return mapNotFound(err)
	}

	if err := uc.plans.Delete(ctx, plan.ID); err != nil {
		return mapNotFound(err)
	}

	uc.audit.Log(ctx, event(id, coachID, "plan_deleted", plan.ID, map[string]any{
		"name": plan.Name,
		"date": plan.Date.Format(training.DateLayout),
	}))
	return nil
}

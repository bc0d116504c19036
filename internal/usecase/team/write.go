package team

import (
	"context"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

func event(id account.Identity, coachID uint, action string, teamID uint, meta any) audit.Event {
	accountID := id.AccountID
	return audit.Event{
		CoachID:   coachID,
		AccountID: &accountID,
		Action:    action,
		Entity:    audit.EntityTeam,
		EntityID:  &teamID,
		Metadata:  meta,
	}
}

// ======================================================
// CREATE
// ======================================================

type CreateTeam struct {
	repo  roster.Repository
	audit *audit.Logger
}

func NewCreateTeam(repo roster.Repository, audit *audit.Logger) *CreateTeam {
	return &CreateTeam{repo: repo, audit: audit}
}

func (uc *CreateTeam) Execute(ctx context.Context, id account.Identity, name string) (*models.Team, error) {
	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}

	name, err = roster.ValidateTeamName(name)
	if err != nil {
		return nil, err
	}

	team := &models.Team{Name: name, CoachID: coachID}
	if err := uc.repo.CreateTeam(ctx, team); err != nil {
		return nil, err
	}

	uc.audit.Log(ctx, event(id, coachID, "team_created", team.ID, map[string]any{"name": name}))
	return team, nil
}

// ======================================================
// RENAME
// ======================================================

type UpdateTeam struct {
	repo  roster.Repository
	audit *audit.Logger
}

func NewUpdateTeam(repo roster.Repository, audit *audit.Logger) *UpdateTeam {
	return &UpdateTeam{repo: repo, audit: audit}
}

func (uc *UpdateTeam) Execute(ctx context.Context, id account.Identity, teamID uint, name string) (*models.Team, error) {
	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}

	name, err = roster.ValidateTeamName(name)
	if err != nil {
		return nil, err
	}

	team, err := uc.repo.GetTeam(ctx, coachID, teamID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	old := team.Name
	team.Name = name
	if err := uc.repo.UpdateTeam(ctx, team); err != nil {
		return nil, mapNotFound(err)
	}

	uc.audit.Log(ctx, event(id, coachID, "team_updated", team.ID, map[string]any{
		"from": old,
		"to":   name,
	}))
	return team, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteTeam struct {
	repo  roster.Repository
	audit *audit.Logger
}

func NewDeleteTeam(repo roster.Repository, audit *audit.Logger) *DeleteTeam {
	return &DeleteTeam{repo: repo, audit: audit}
}

// Execute deletes the team with its memberships and team plans. Former
// members left without a team of the coach go to the bucket.
func (uc *DeleteTeam) Execute(ctx context.Context, id account.Identity, teamID uint) error {
	coachID, err := id.RequireCoach()
	if err != nil {
		return err
	}

	var rebucketed []uint
	err = uc.repo.Transaction(ctx, func(tx roster.Repository) error {
		if _, err := tx.GetTeam(ctx, coachID, teamID); err != nil {
			return mapNotFound(err)
		}

		members, err := tx.ListTeamMemberIDs(ctx, teamID)
		if err != nil {
			return err
		}

		if err := tx.DeleteTeam(ctx, teamID); err != nil {
			return mapNotFound(err)
		}

		now := time.Now()
		for _, athleteID := range members {
			added, err := roster.EnsureBucketed(ctx, tx, coachID, athleteID, now)
			if err != nil {
				return err
			}
			if added {
				rebucketed = append(rebucketed, athleteID)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.audit.Log(ctx, event(id, coachID, "team_deleted", teamID, map[string]any{
		"rebucketed": rebucketed,
	}))
	return nil
}

package athlete

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

var (
	errAlreadyMember      = httperr.ErrConflict("already_member", "Athlete is already in this team.")
	errMembershipNotFound = httperr.ErrNotFound("membership_not_found", "Athlete is not in this team.")
)

// ======================================================
// ASSIGN
// ======================================================

type AssignToTeam struct {
	repo  roster.Repository
	audit *audit.Logger
}

func NewAssignToTeam(repo roster.Repository, audit *audit.Logger) *AssignToTeam {
	return &AssignToTeam{repo: repo, audit: audit}
}

// Execute adds the athlete to one of the coach's teams and takes them out
// of the bucket.
func (uc *AssignToTeam) Execute(
	ctx context.Context,
	id account.Identity,
	athleteID uint,
	teamID uint,
) (*models.Athlete, error) {

	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}

	err = uc.repo.Transaction(ctx, func(tx roster.Repository) error {
		team, err := tx.GetTeam(ctx, coachID, teamID)
		if err != nil {
			return mapNotFound(err, errTeamNotFound)
		}
		if _, err := tx.GetAthlete(ctx, coachID, athleteID); err != nil {
			return mapNotFound(err, errAthleteNotFound)
		}

		has, err := tx.HasMembership(ctx, athleteID, team.ID)
		if err != nil {
			return err
		}
		if has {
			return errAlreadyMember
		}

		if err := tx.AddMembership(ctx, &models.TeamMembership{
			AthleteID: athleteID,
			TeamID:    team.ID,
			JoinedAt:  time.Now(),
			Role:      roster.RolePlayer,
		}); err != nil {
			if httperr.IsUniqueViolation(err) {
				return errAlreadyMember
			}
			return err
		}

		return roster.LeaveBucket(ctx, tx, coachID, athleteID)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Log(ctx, event(id, coachID, "athlete_assigned", audit.EntityMembership, athleteID, map[string]any{
		"teamId": teamID,
	}))

	return uc.repo.GetAthlete(ctx, coachID, athleteID)
}

// ======================================================
// REMOVE
// ======================================================

type RemoveFromTeam struct {
	repo  roster.Repository
	audit *audit.Logger
}

func NewRemoveFromTeam(repo roster.Repository, audit *audit.Logger) *RemoveFromTeam {
	return &RemoveFromTeam{repo: repo, audit: audit}
}

// Execute drops the membership. An athlete left without any of the coach's
// real teams goes to the bucket, so they stay listed for the coach.
func (uc *RemoveFromTeam) Execute(
	ctx context.Context,
	id account.Identity,
	athleteID uint,
	teamID uint,
) (*models.Athlete, error) {

	coachID, err := id.RequireCoach()
	if err != nil {
		return nil, err
	}

	var rebucketed bool
	err = uc.repo.Transaction(ctx, func(tx roster.Repository) error {
		if _, err := tx.GetTeam(ctx, coachID, teamID); err != nil {
			return mapNotFound(err, errTeamNotFound)
		}
		if _, err := tx.GetAthlete(ctx, coachID, athleteID); err != nil {
			return mapNotFound(err, errAthleteNotFound)
		}

		if err := tx.RemoveMembership(ctx, athleteID, teamID); err != nil {
			if errors.Is(err, roster.ErrNotFound) {
				return errMembershipNotFound
			}
			return err
		}

		var err error
		rebucketed, err = roster.EnsureBucketed(ctx, tx, coachID, athleteID, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Log(ctx, event(id, coachID, "athlete_unassigned", audit.EntityMembership, athleteID, map[string]any{
		"teamId":     teamID,
		"rebucketed": rebucketed,
	}))

	return uc.repo.GetAthlete(ctx, coachID, athleteID)
}

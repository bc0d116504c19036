// Package roster holds the team/athlete ownership rules, including the
// hidden per-coach bucket team that keeps athletes without a real team
// discoverable.
package roster

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

var ErrNotFound = errors.New("roster: not found")

const (
	UnassignedTeamName = "_Unassigned"
	RolePlayer         = "player"
)

func IsUnassigned(name string) bool {
	return name == UnassignedTeamName
}

// ===============================
// Validations
// ===============================

func ValidateTeamName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", httperr.ErrValidation("invalid_team_name", "Team name is required.")
	}
	if IsUnassigned(name) {
		return "", httperr.ErrValidation("reserved_team_name", "This team name is reserved.")
	}
	return name, nil
}

// VisibleTeamIDs returns the ids of the coach's real teams among the
// athlete's loaded memberships.
func VisibleTeamIDs(a *models.Athlete, coachID uint) []uint {
	ids := make([]uint, 0, len(a.Memberships))
	for _, m := range a.Memberships {
		if m.Team == nil || m.Team.CoachID != coachID || IsUnassigned(m.Team.Name) {
			continue
		}
		ids = append(ids, m.TeamID)
	}
	return ids
}

// ===============================
// Bucket
// ===============================

// EnsureBucketed puts the athlete into the coach's bucket team when they
// have no membership left in any of the coach's real teams. It reports
// whether a bucket membership was added.
func EnsureBucketed(
	ctx context.Context,
	repo Repository,
	coachID uint,
	athleteID uint,
	now time.Time,
) (bool, error) {

	n, err := repo.CountVisibleMemberships(ctx, coachID, athleteID)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	bucket, err := repo.EnsureUnassignedTeam(ctx, coachID)
	if err != nil {
		return false, err
	}

	has, err := repo.HasMembership(ctx, athleteID, bucket.ID)
	if err != nil {
		return false, err
	}
	if has {
		return false, nil
	}

	if err := repo.AddMembership(ctx, &models.TeamMembership{
		AthleteID: athleteID,
		TeamID:    bucket.ID,
		JoinedAt:  now,
		Role:      RolePlayer,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// LeaveBucket drops the athlete's bucket membership once they joined a real
// team of the coach. Missing bucket or membership is fine.
func LeaveBucket(
	ctx context.Context,
	repo Repository,
	coachID uint,
	athleteID uint,
) error {

	bucket, err := repo.FindUnassignedTeam(ctx, coachID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	err = repo.RemoveMembership(ctx, athleteID, bucket.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

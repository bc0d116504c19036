package roster

import (
	"context"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/models"
)

// TeamSummary is a visible team with its owner and size.
type TeamSummary struct {
	ID             uint
	Name           string
	CoachID        uint
	CoachFirstName string
	CoachLastName  string
	AthleteCount   int64
	CreatedAt      time.Time
}

// Repository covers coaches, teams, athletes and memberships. Every
// coach-facing lookup takes the coach id and only matches rows that coach
// owns; a row outside that scope is reported as ErrNotFound.
type Repository interface {
	// -------- Coach --------
	GetCoach(
		ctx context.Context,
		coachID uint,
	) (*models.Coach, error)

	UpdateCoach(
		ctx context.Context,
		coach *models.Coach,
	) error

	// -------- Teams --------
	ListTeams(
		ctx context.Context,
		coachID uint,
	) ([]TeamSummary, error)

	// GetTeamSummary is GetTeam with the owner's name and the athlete
	// count.
	GetTeamSummary(
		ctx context.Context,
		coachID uint,
		teamID uint,
	) (*TeamSummary, error)

	// GetTeam never returns the bucket team.
	GetTeam(
		ctx context.Context,
		coachID uint,
		teamID uint,
	) (*models.Team, error)

	CreateTeam(
		ctx context.Context,
		team *models.Team,
	) error

	UpdateTeam(
		ctx context.Context,
		team *models.Team,
	) error

	DeleteTeam(
		ctx context.Context,
		teamID uint,
	) error

	ListTeamMemberIDs(
		ctx context.Context,
		teamID uint,
	) ([]uint, error)

	// EnsureUnassignedTeam returns the coach's bucket, creating it on
	// first need.
	EnsureUnassignedTeam(
		ctx context.Context,
		coachID uint,
	) (*models.Team, error)

	FindUnassignedTeam(
		ctx context.Context,
		coachID uint,
	) (*models.Team, error)

	// -------- Athletes --------
	// ListAthletes returns the coach's athletes with Memberships (and each
	// membership's Team) loaded. teamID narrows to one team.
	ListAthletes(
		ctx context.Context,
		coachID uint,
		teamID *uint,
	) ([]models.Athlete, error)

	GetAthlete(
		ctx context.Context,
		coachID uint,
		athleteID uint,
	) (*models.Athlete, error)

	// GetAthleteByID is unscoped; callers resolve the id from a trusted
	// identity.
	GetAthleteByID(
		ctx context.Context,
		athleteID uint,
	) (*models.Athlete, error)

	FindAthleteByEmail(
		ctx context.Context,
		email string,
	) (*models.Athlete, error)

	CreateAthlete(
		ctx context.Context,
		athlete *models.Athlete,
	) error

	UpdateAthlete(
		ctx context.Context,
		athlete *models.Athlete,
	) error

	DeleteAthlete(
		ctx context.Context,
		athleteID uint,
	) error

	// -------- Memberships --------
	HasMembership(
		ctx context.Context,
		athleteID uint,
		teamID uint,
	) (bool, error)

	AddMembership(
		ctx context.Context,
		m *models.TeamMembership,
	) error

	RemoveMembership(
		ctx context.Context,
		athleteID uint,
		teamID uint,
	) error

	// CountVisibleMemberships counts the athlete's memberships in the
	// coach's teams, bucket excluded.
	CountVisibleMemberships(
		ctx context.Context,
		coachID uint,
		athleteID uint,
	) (int64, error)

	// -------- Player side --------
	ListAthleteTeams(
		ctx context.Context,
		athleteID uint,
	) ([]TeamSummary, error)

	// Transaction runs fn against a repository bound to one transaction.
	Transaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error
}

package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type RosterGormRepository struct {
	db *gorm.DB
}

func NewRosterGormRepository(db *gorm.DB) *RosterGormRepository {
	return &RosterGormRepository{db: db}
}

var _ roster.Repository = (*RosterGormRepository)(nil)

func (r *RosterGormRepository) Transaction(
	ctx context.Context,
	fn func(repo roster.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RosterGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Coach
// --------------------------------------------------

func (r *RosterGormRepository) GetCoach(
	ctx context.Context,
	coachID uint,
) (*models.Coach, error) {

	var coach models.Coach
	if err := r.db.WithContext(ctx).First(&coach, coachID).Error; err != nil {
		return nil, wrapErr(err, roster.ErrNotFound, "get_coach", "coach_id", coachID)
	}
	return &coach, nil
}

func (r *RosterGormRepository) UpdateCoach(
	ctx context.Context,
	coach *models.Coach,
) error {
	err := r.db.WithContext(ctx).
		Model(coach).
		Select("first_name", "last_name").
		Updates(coach).Error
	return wrapErr(err, roster.ErrNotFound, "update_coach", "coach_id", coach.ID)
}

// --------------------------------------------------
// Teams
// --------------------------------------------------

func (r *RosterGormRepository) summaries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("teams").
		Select(`teams.id, teams.name, teams.coach_id, teams.created_at,
			coaches.first_name AS coach_first_name,
			coaches.last_name AS coach_last_name,
			(SELECT COUNT(*) FROM team_memberships tm WHERE tm.team_id = teams.id) AS athlete_count`).
		Joins("JOIN coaches ON coaches.id = teams.coach_id").
		Where("teams.name <> ?", roster.UnassignedTeamName).
		Order("teams.name ASC, teams.id ASC")
}

func (r *RosterGormRepository) ListTeams(
	ctx context.Context,
	coachID uint,
) ([]roster.TeamSummary, error) {

	var out []roster.TeamSummary
	if err := r.summaries(ctx).
		Where("teams.coach_id = ?", coachID).
		Scan(&out).Error; err != nil {
		return nil, wrapErr(err, roster.ErrNotFound, "list_teams", "coach_id", coachID)
	}
	return out, nil
}

func (r *RosterGormRepository) ListAthleteTeams(
	ctx context.Context,
	athleteID uint,
) ([]roster.TeamSummary, error) {

	var out []roster.TeamSummary
	if err := r.summaries(ctx).
		Where("teams.id IN (SELECT team_id FROM team_memberships WHERE athlete_id = ?)", athleteID).
		Scan(&out).Error; err != nil {
		return nil, wrapErr(err, roster.ErrNotFound, "list_athlete_teams", "athlete_id", athleteID)
	}
	return out, nil
}

func (r *RosterGormRepository) GetTeamSummary(
	ctx context.Context,
	coachID uint,
	teamID uint,
) (*roster.TeamSummary, error) {

	var out []roster.TeamSummary
	if err := r.summaries(ctx).
		Where("teams.coach_id = ? AND teams.id = ?", coachID, teamID).
		Limit(1).
		Scan(&out).Error; err != nil {
		return nil, wrapErr(err, roster.ErrNotFound, "get_team_summary", "team_id", teamID)
	}
	if len(out) == 0 {
		return nil, roster.ErrNotFound
	}
	return &out[0], nil
}

func (r *RosterGormRepository) GetTeam(
	ctx context.Context,
	coachID uint,
	teamID uint,
) (*models.Team, error) {

	var team models.Team
	if err := r.db.WithContext(ctx).
		Scopes(visibleTeamsOf(coachID)).
		Where("teams.id = ?", teamID).
		First(&team).Error; err != nil {
		return nil, wrapErr(err, roster.ErrNotFound, "get_team", "team_id", teamID)
	}
	return &team, nil
}

func (r *RosterGormRepository) CreateTeam(
	ctx context.Context,
	team *models.Team,
) error {
	err := r.db.WithContext(ctx).Create(team).Error
	return wrapErr(err, roster.ErrNotFound, "create_team", "coach_id", team.CoachID)
}

func (r *RosterGormRepository) UpdateTeam(
	ctx context.Context,
	team *models.Team,
) error {
	err := r.db.WithContext(ctx).
		Model(team).
		Select("name").
		Updates(team).Error
	return wrapErr(err, roster.ErrNotFound, "update_team", "team_id", team.ID)
}

func (r *RosterGormRepository) DeleteTeam(
	ctx context.Context,
	teamID uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Team{}, teamID)
	if res.Error != nil {
		return wrapErr(res.Error, roster.ErrNotFound, "delete_team", "team_id", teamID)
	}
	if res.RowsAffected == 0 {
		return roster.ErrNotFound
	}
	return nil
}

func (r *RosterGormRepository) ListTeamMemberIDs(
	ctx context.Context,
	teamID uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.TeamMembership{}).
		Where("team_id = ?", teamID).
		Order("athlete_id").
		Pluck("athlete_id", &ids).Error; err != nil {
		return nil, wrapErr(err, roster.ErrNotFound, "list_team_members", "team_id", teamID)
	}
	return ids, nil
}

func (r *RosterGormRepository) FindUnassignedTeam(
	ctx context.Context,
	coachID uint,
) (*models.Team, error) {

	var team models.Team
	if err := r.db.WithContext(ctx).
		Where("coach_id = ? AND name = ?", coachID, roster.UnassignedTeamName).
		First(&team).Error; err != nil {
		return nil, wrapErr(err, roster.ErrNotFound, "find_unassigned_team", "coach_id", coachID)
	}
	return &team, nil
}

// EnsureUnassignedTeam relies on idx_teams_unassigned_per_coach: a racing
// insert turns into a no-op and the row is read back.
func (r *RosterGormRepository) EnsureUnassignedTeam(
	ctx context.Context,
	coachID uint,
) (*models.Team, error) {

	team, err := r.FindUnassignedTeam(ctx, coachID)
	if err == nil {
		return team, nil
	}
	if err != roster.ErrNotFound {
		return nil, err
	}

	bucket := models.Team{Name: roster.UnassignedTeamName, CoachID: coachID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&bucket).Error; err != nil {
		return nil, wrapErr(err, roster.ErrNotFound, "create_unassigned_team", "coach_id", coachID)
	}

	return r.FindUnassignedTeam(ctx, coachID)
}

// --------------------------------------------------
// Athletes
// --------------------------------------------------

func (r *RosterGormRepository) ListAthletes(
	ctx context.Context,
	coachID uint,
	teamID *uint,
) ([]models.Athlete, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Athlete{}).
		Scopes(athletesOwnedBy(coachID))

	if teamID != nil {
		q = q.Where("athletes.id IN (SELECT athlete_id FROM team_memberships WHERE team_id = ?)", *teamID)
	}

	var athletes []models.Athlete
	if err := q.
		Preload("Memberships.Team").
		Order("athletes.last_name ASC, athletes.first_name ASC, athletes.id ASC").
		Find(&athletes).Error; err != nil {
		return nil, wrapErr(err, roster.ErrNotFound, "list_athletes", "coach_id", coachID)
	}
	return athletes, nil
}

func (r *RosterGormRepository) GetAthlete(
	ctx context.Context,
	coachID uint,
	athleteID uint,
) (*models.Athlete, error) {

	var athlete models.Athlete
	if err := r.db.WithContext(ctx).
		Scopes(athletesOwnedBy(coachID)).
		Preload("Memberships.Team").
		Where("athletes.id = ?", athleteID).
		First(&athlete).Error; err != nil {
		return nil, wrapErr(err, roster.ErrNotFound, "get_athlete", "athlete_id", athleteID)
	}
	return &athlete, nil
}

func (r *RosterGormRepository) GetAthleteByID(
	ctx context.Context,
	athleteID uint,
) (*models.Athlete, error) {

	var athlete models.Athlete
	if err := r.db.WithContext(ctx).
		Preload("Memberships.Team").
		First(&athlete, athleteID).Error; err != nil {
		return nil, wrapErr(err, roster.ErrNotFound, "get_athlete_by_id", "athlete_id", athleteID)
	}
	return &athlete, nil
}

func (r *RosterGormRepository) FindAthleteByEmail(
	ctx context.Context,
	email string,
) (*models.Athlete, error) {

	var athlete models.Athlete
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&athlete).Error; err != nil {
		return nil, wrapErr(err, roster.ErrNotFound, "find_athlete_by_email")
	}
	return &athlete, nil
}

func (r *RosterGormRepository) CreateAthlete(
	ctx context.Context,
	athlete *models.Athlete,
) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(athlete).Error
	return wrapErr(err, roster.ErrNotFound, "create_athlete")
}

func (r *RosterGormRepository) UpdateAthlete(
	ctx context.Context,
	athlete *models.Athlete,
) error {
	err := r.db.WithContext(ctx).
		Model(athlete).
		Select("first_name", "last_name", "birth_date", "weight", "height", "email").
		Updates(athlete).Error
	return wrapErr(err, roster.ErrNotFound, "update_athlete", "athlete_id", athlete.ID)
}

func (r *RosterGormRepository) DeleteAthlete(
	ctx context.Context,
	athleteID uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Athlete{}, athleteID)
	if res.Error != nil {
		return wrapErr(res.Error, roster.ErrNotFound, "delete_athlete", "athlete_id", athleteID)
	}
	if res.RowsAffected == 0 {
		return roster.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Memberships
// --------------------------------------------------

func (r *RosterGormRepository) HasMembership(
	ctx context.Context,
	athleteID uint,
	teamID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TeamMembership{}).
		Where("athlete_id = ? AND team_id = ?", athleteID, teamID).
		Count(&count).Error; err != nil {
		return false, wrapErr(err, roster.ErrNotFound, "has_membership", "athlete_id", athleteID, "team_id", teamID)
	}
	return count > 0, nil
}

func (r *RosterGormRepository) AddMembership(
	ctx context.Context,
	m *models.TeamMembership,
) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(m).Error
	return wrapErr(err, roster.ErrNotFound, "add_membership", "athlete_id", m.AthleteID, "team_id", m.TeamID)
}

func (r *RosterGormRepository) RemoveMembership(
	ctx context.Context,
	athleteID uint,
	teamID uint,
) error {
	res := r.db.WithContext(ctx).
		Where("athlete_id = ? AND team_id = ?", athleteID, teamID).
		Delete(&models.TeamMembership{})
	if res.Error != nil {
		return wrapErr(res.Error, roster.ErrNotFound, "remove_membership", "athlete_id", athleteID, "team_id", teamID)
	}
	if res.RowsAffected == 0 {
		return roster.ErrNotFound
	}
	return nil
}

func (r *RosterGormRepository) CountVisibleMemberships(
	ctx context.Context,
	coachID uint,
	athleteID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TeamMembership{}).
		Joins("JOIN teams ON teams.id = team_memberships.team_id").
		Where("team_memberships.athlete_id = ?", athleteID).
		Scopes(visibleTeamsOf(coachID)).
		Count(&count).Error; err != nil {
		return 0, wrapErr(err, roster.ErrNotFound, "count_visible_memberships", "athlete_id", athleteID)
	}
	return count, nil
}

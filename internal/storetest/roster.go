package storetest

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

// ======================================================
// Scoping
// ======================================================

func (s *Store) coachOwnsAthlete(coachID, athleteID uint) bool {
	for _, m := range s.st.memberships {
		if m.AthleteID != athleteID {
			continue
		}
		if t, ok := s.st.teams[m.TeamID]; ok && t.CoachID == coachID {
			return true
		}
	}
	return false
}

func (s *Store) visibleTeam(coachID, teamID uint) (models.Team, bool) {
	t, ok := s.st.teams[teamID]
	if !ok || t.CoachID != coachID || roster.IsUnassigned(t.Name) {
		return models.Team{}, false
	}
	return t, true
}

func (s *Store) membershipsOf(athleteID uint) []models.TeamMembership {
	var out []models.TeamMembership
	for _, m := range s.st.memberships {
		if m.AthleteID != athleteID {
			continue
		}
		if t, ok := s.st.teams[m.TeamID]; ok {
			team := t
			m.Team = &team
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) loadAthlete(a models.Athlete) models.Athlete {
	a.Memberships = s.membershipsOf(a.ID)
	return a
}

func (s *Store) summary(t models.Team) roster.TeamSummary {
	coach := s.st.coaches[t.CoachID]
	var n int64
	for _, m := range s.st.memberships {
		if m.TeamID == t.ID {
			n++
		}
	}
	return roster.TeamSummary{
		ID:             t.ID,
		Name:           t.Name,
		CoachID:        t.CoachID,
		CoachFirstName: coach.FirstName,
		CoachLastName:  coach.LastName,
		AthleteCount:   n,
		CreatedAt:      t.CreatedAt,
	}
}

func sortSummaries(out []roster.TeamSummary) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
}

// ======================================================
// Coach
// ======================================================

// AddCoach seeds a coach without an account.
func (s *Store) AddCoach(first, last, email string) models.Coach {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	c := models.Coach{ID: s.id(), FirstName: first, LastName: last, Email: email, CreatedAt: now, UpdatedAt: now}
	s.st.coaches[c.ID] = c
	return c
}

func (s *Store) GetCoach(_ context.Context, coachID uint) (*models.Coach, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.st.coaches[coachID]
	if !ok {
		return nil, roster.ErrNotFound
	}
	return &c, nil
}

func (s *Store) UpdateCoach(_ context.Context, coach *models.Coach) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.st.coaches[coach.ID]
	if !ok {
		return roster.ErrNotFound
	}
	c.FirstName, c.LastName = coach.FirstName, coach.LastName
	c.UpdatedAt = s.Now()
	s.st.coaches[c.ID] = c
	return nil
}

// ======================================================
// Teams
// ======================================================

func (s *Store) ListTeams(_ context.Context, coachID uint) ([]roster.TeamSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []roster.TeamSummary
	for _, t := range s.st.teams {
		if _, ok := s.visibleTeam(coachID, t.ID); ok {
			out = append(out, s.summary(t))
		}
	}
	sortSummaries(out)
	return out, nil
}

func (s *Store) ListAthleteTeams(_ context.Context, athleteID uint) ([]roster.TeamSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []roster.TeamSummary
	for _, m := range s.st.memberships {
		if m.AthleteID != athleteID {
			continue
		}
		t, ok := s.st.teams[m.TeamID]
		if !ok || roster.IsUnassigned(t.Name) {
			continue
		}
		out = append(out, s.summary(t))
	}
	sortSummaries(out)
	return out, nil
}

func (s *Store) GetTeamSummary(_ context.Context, coachID, teamID uint) (*roster.TeamSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.visibleTeam(coachID, teamID)
	if !ok {
		return nil, roster.ErrNotFound
	}
	summary := s.summary(t)
	return &summary, nil
}

func (s *Store) GetTeam(_ context.Context, coachID, teamID uint) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.visibleTeam(coachID, teamID)
	if !ok {
		return nil, roster.ErrNotFound
	}
	return &t, nil
}

func (s *Store) CreateTeam(_ context.Context, team *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertTeam(team)
	return nil
}

func (s *Store) insertTeam(team *models.Team) {
	now := s.Now()
	team.ID = s.id()
	team.CreatedAt, team.UpdatedAt = now, now
	s.st.teams[team.ID] = *team
}

func (s *Store) UpdateTeam(_ context.Context, team *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.st.teams[team.ID]
	if !ok {
		return roster.ErrNotFound
	}
	t.Name = team.Name
	t.UpdatedAt = s.Now()
	s.st.teams[t.ID] = t
	return nil
}

func (s *Store) DeleteTeam(_ context.Context, teamID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.teams[teamID]; !ok {
		return roster.ErrNotFound
	}
	delete(s.st.teams, teamID)
	for id, m := range s.st.memberships {
		if m.TeamID == teamID {
			delete(s.st.memberships, id)
		}
	}
	for id, p := range s.st.plans {
		if p.TeamID != nil && *p.TeamID == teamID {
			delete(s.st.plans, id)
		}
	}
	return nil
}

func (s *Store) ListTeamMemberIDs(_ context.Context, teamID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []uint
	for _, m := range s.st.memberships {
		if m.TeamID == teamID {
			ids = append(ids, m.AthleteID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *Store) FindUnassignedTeam(_ context.Context, coachID uint) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.bucket(coachID); ok {
		return &t, nil
	}
	return nil, roster.ErrNotFound
}

func (s *Store) bucket(coachID uint) (models.Team, bool) {
	for _, t := range s.st.teams {
		if t.CoachID == coachID && roster.IsUnassigned(t.Name) {
			return t, true
		}
	}
	return models.Team{}, false
}

func (s *Store) EnsureUnassignedTeam(_ context.Context, coachID uint) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.bucket(coachID); ok {
		return &t, nil
	}
	t := models.Team{Name: roster.UnassignedTeamName, CoachID: coachID}
	s.insertTeam(&t)
	return &t, nil
}

// ======================================================
// Athletes
// ======================================================

func (s *Store) ListAthletes(_ context.Context, coachID uint, teamID *uint) ([]models.Athlete, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Athlete
	for _, a := range s.st.athletes {
		if !s.coachOwnsAthlete(coachID, a.ID) {
			continue
		}
		if teamID != nil && !s.hasMembership(a.ID, *teamID) {
			continue
		}
		out = append(out, s.loadAthlete(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetAthlete(_ context.Context, coachID, athleteID uint) (*models.Athlete, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.st.athletes[athleteID]
	if !ok || !s.coachOwnsAthlete(coachID, athleteID) {
		return nil, roster.ErrNotFound
	}
	a = s.loadAthlete(a)
	return &a, nil
}

func (s *Store) GetAthleteByID(_ context.Context, athleteID uint) (*models.Athlete, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.st.athletes[athleteID]
	if !ok {
		return nil, roster.ErrNotFound
	}
	a = s.loadAthlete(a)
	return &a, nil
}

func (s *Store) FindAthleteByEmail(_ context.Context, email string) (*models.Athlete, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.st.athletes {
		if a.Email != nil && *a.Email == email {
			return &a, nil
		}
	}
	return nil, roster.ErrNotFound
}

func (s *Store) emailTaken(email *string, exceptID uint) bool {
	if email == nil {
		return false
	}
	for _, a := range s.st.athletes {
		if a.ID != exceptID && a.Email != nil && *a.Email == *email {
			return true
		}
	}
	return false
}

func (s *Store) CreateAthlete(_ context.Context, athlete *models.Athlete) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(athlete.Email, 0) {
		return uniqueViolation("idx_athletes_email")
	}
	now := s.Now()
	athlete.ID = s.id()
	athlete.CreatedAt, athlete.UpdatedAt = now, now

	stored := *athlete
	stored.Memberships = nil
	s.st.athletes[athlete.ID] = stored
	return nil
}

func (s *Store) UpdateAthlete(_ context.Context, athlete *models.Athlete) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.st.athletes[athlete.ID]
	if !ok {
		return roster.ErrNotFound
	}
	if s.emailTaken(athlete.Email, athlete.ID) {
		return uniqueViolation("idx_athletes_email")
	}
	a.FirstName, a.LastName = athlete.FirstName, athlete.LastName
	a.BirthDate, a.Weight, a.Height, a.Email = athlete.BirthDate, athlete.Weight, athlete.Height, athlete.Email
	a.UpdatedAt = s.Now()
	s.st.athletes[a.ID] = a
	return nil
}

// DeleteAthlete cascades like the foreign keys do: memberships, the player
// account with its refresh tokens, and plans targeting the athlete.
func (s *Store) DeleteAthlete(_ context.Context, athleteID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.athletes[athleteID]; !ok {
		return roster.ErrNotFound
	}
	delete(s.st.athletes, athleteID)

	for id, m := range s.st.memberships {
		if m.AthleteID == athleteID {
			delete(s.st.memberships, id)
		}
	}
	for id, p := range s.st.plans {
		if p.AthleteID != nil && *p.AthleteID == athleteID {
			delete(s.st.plans, id)
		}
	}
	for id, a := range s.st.accounts {
		if a.AthleteID == nil || *a.AthleteID != athleteID {
			continue
		}
		delete(s.st.accounts, id)
		for tid, t := range s.st.tokens {
			if t.AccountID == id {
				delete(s.st.tokens, tid)
			}
		}
	}
	return nil
}

// ======================================================
// Memberships
// ======================================================

func (s *Store) hasMembership(athleteID, teamID uint) bool {
	for _, m := range s.st.memberships {
		if m.AthleteID == athleteID && m.TeamID == teamID {
			return true
		}
	}
	return false
}

func (s *Store) HasMembership(_ context.Context, athleteID, teamID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMembership(athleteID, teamID), nil
}

func (s *Store) AddMembership(_ context.Context, m *models.TeamMembership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasMembership(m.AthleteID, m.TeamID) {
		return uniqueViolation("idx_membership_athlete_team")
	}
	if m.Role == "" {
		m.Role = roster.RolePlayer
	}
	m.ID = s.id()
	stored := *m
	stored.Team, stored.Athlete = nil, nil
	s.st.memberships[m.ID] = stored
	return nil
}

func (s *Store) RemoveMembership(_ context.Context, athleteID, teamID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, m := range s.st.memberships {
		if m.AthleteID == athleteID && m.TeamID == teamID {
			delete(s.st.memberships, id)
			return nil
		}
	}
	return roster.ErrNotFound
}

func (s *Store) CountVisibleMemberships(_ context.Context, coachID, athleteID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, m := range s.st.memberships {
		if m.AthleteID != athleteID {
			continue
		}
		if _, ok := s.visibleTeam(coachID, m.TeamID); ok {
			n++
		}
	}
	return n, nil
}

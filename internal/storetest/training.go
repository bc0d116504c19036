package storetest

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/domain/training"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

func (s *Store) planOwnedByCoach(p models.TrainingPlan, coachID uint) bool {
	if p.TeamID != nil {
		t, ok := s.st.teams[*p.TeamID]
		return ok && t.CoachID == coachID
	}
	return p.AthleteID != nil && s.coachOwnsAthlete(coachID, *p.AthleteID)
}

func (s *Store) planVisibleToAthlete(p models.TrainingPlan, athleteID uint) bool {
	if p.AthleteID != nil {
		return *p.AthleteID == athleteID
	}
	return p.TeamID != nil && s.hasMembership(athleteID, *p.TeamID)
}

func inRange(p models.TrainingPlan, f training.Filter) bool {
	if f.From != nil && p.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && p.Date.After(*f.To) {
		return false
	}
	return true
}

func (s *Store) loadPlan(p models.TrainingPlan) models.TrainingPlan {
	if p.AthleteID != nil {
		if a, ok := s.st.athletes[*p.AthleteID]; ok {
			p.Athlete = &a
		}
	}
	if p.TeamID != nil {
		if t, ok := s.st.teams[*p.TeamID]; ok {
			p.Team = &t
		}
	}
	return p
}

// sortPlans mirrors ORDER BY date, start_time NULLS LAST, id.
func sortPlans(plans []models.TrainingPlan) {
	sort.Slice(plans, func(i, j int) bool {
		a, b := plans[i], plans[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		switch {
		case a.StartTime == nil && b.StartTime != nil:
			return false
		case a.StartTime != nil && b.StartTime == nil:
			return true
		case a.StartTime != nil && b.StartTime != nil && *a.StartTime != *b.StartTime:
			return time.Duration(*a.StartTime) < time.Duration(*b.StartTime)
		}
		return a.ID < b.ID
	})
}

func (s *Store) ListForCoach(_ context.Context, coachID uint, f training.Filter) ([]models.TrainingPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.TrainingPlan
	for _, p := range s.st.plans {
		if !s.planOwnedByCoach(p, coachID) || !inRange(p, f) {
			continue
		}
		if f.AthleteID != nil {
			direct := p.AthleteID != nil && *p.AthleteID == *f.AthleteID
			viaTeam := false
			if p.TeamID != nil {
				t := s.st.teams[*p.TeamID]
				viaTeam = t.CoachID == coachID && s.hasMembership(*f.AthleteID, t.ID)
			}
			if !direct && !viaTeam {
				continue
			}
		}
		if f.TeamID != nil && (p.TeamID == nil || *p.TeamID != *f.TeamID) {
			continue
		}
		out = append(out, s.loadPlan(p))
	}
	sortPlans(out)
	return out, nil
}

func (s *Store) ListForAthlete(_ context.Context, athleteID uint, f training.Filter) ([]models.TrainingPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.TrainingPlan
	for _, p := range s.st.plans {
		if s.planVisibleToAthlete(p, athleteID) && inRange(p, f) {
			out = append(out, s.loadPlan(p))
		}
	}
	sortPlans(out)
	return out, nil
}

func (s *Store) GetForCoach(_ context.Context, coachID, planID uint) (*models.TrainingPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.st.plans[planID]
	if !ok || !s.planOwnedByCoach(p, coachID) {
		return nil, training.ErrNotFound
	}
	p = s.loadPlan(p)
	return &p, nil
}

func (s *Store) GetForAthlete(_ context.Context, athleteID, planID uint) (*models.TrainingPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.st.plans[planID]
	if !ok || !s.planVisibleToAthlete(p, athleteID) {
		return nil, training.ErrNotFound
	}
	p = s.loadPlan(p)
	return &p, nil
}

func (s *Store) Create(_ context.Context, plan *models.TrainingPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	plan.ID = s.id()
	plan.CreatedAt, plan.UpdatedAt = now, now

	stored := *plan
	stored.Athlete, stored.Team = nil, nil
	s.st.plans[plan.ID] = stored
	return nil
}

func (s *Store) Update(_ context.Context, plan *models.TrainingPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.plans[plan.ID]; !ok {
		return training.ErrNotFound
	}
	plan.UpdatedAt = s.Now()
	stored := *plan
	stored.Athlete, stored.Team = nil, nil
	s.st.plans[plan.ID] = stored
	return nil
}

func (s *Store) Delete(_ context.Context, planID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.plans[planID]; !ok {
		return training.ErrNotFound
	}
	delete(s.st.plans, planID)
	return nil
}

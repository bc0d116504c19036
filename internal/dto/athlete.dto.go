package dto

import (
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/domain/training"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type AthleteDTO struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	BirthDate *string   `json:"birthDate"`
	Weight    *float64  `json:"weight"`
	Height    *float64  `json:"height"`
	Email     *string   `json:"email"`
	TeamIDs   []uint    `json:"teamIds"`
	CreatedAt time.Time `json:"createdAt"`
}

type AthleteRequest struct {
	FirstName string   `json:"firstName" binding:"required"`
	LastName  string   `json:"lastName" binding:"required"`
	BirthDate string   `json:"birthDate"`
	Weight    *float64 `json:"weight"`
	Height    *float64 `json:"height"`
	Email     *string  `json:"email"`
	TeamID    *uint    `json:"teamId"`
}

// FromAthlete renders the athlete as seen by coachID: TeamIDs only lists
// that coach's real teams.
func FromAthlete(a *models.Athlete, coachID uint) AthleteDTO {
	return AthleteDTO{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		BirthDate: formatDate(a.BirthDate),
		Weight:    a.Weight,
		Height:    a.Height,
		Email:     a.Email,
		TeamIDs:   roster.VisibleTeamIDs(a, coachID),
		CreatedAt: a.CreatedAt,
	}
}

func FromAthletes(list []models.Athlete, coachID uint) []AthleteDTO {
	out := make([]AthleteDTO, 0, len(list))
	for i := range list {
		out = append(out, FromAthlete(&list[i], coachID))
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(training.DateLayout)
	return &s
}

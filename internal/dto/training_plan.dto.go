package dto

import (
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/domain/training"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type TrainingPlanDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	StartTime   *string   `json:"startTime"`
	EndTime     *string   `json:"endTime"`
	AthleteID   *uint     `json:"athleteId"`
	AthleteName *string   `json:"athleteName"`
	TeamID      *uint     `json:"teamId"`
	TeamName    *string   `json:"teamName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TrainingPlanRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	AthleteID   *uint  `json:"athleteId"`
	TeamID      *uint  `json:"teamId"`
}

func FromTrainingPlan(p *models.TrainingPlan) TrainingPlanDTO {
	out := TrainingPlanDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Date:        p.Date.Format(training.DateLayout),
		StartTime:   training.FormatTimeOfDay(p.StartTime),
		EndTime:     training.FormatTimeOfDay(p.EndTime),
		AthleteID:   p.AthleteID,
		TeamID:      p.TeamID,
		CreatedAt:   p.CreatedAt,
	}
	if p.Athlete != nil {
		name := p.Athlete.FirstName + " " + p.Athlete.LastName
		out.AthleteName = &name
	}
	if p.Team != nil {
		name := p.Team.Name
		out.TeamName = &name
	}
	return out
}

func FromTrainingPlans(list []models.TrainingPlan) []TrainingPlanDTO {
	out := make([]TrainingPlanDTO, 0, len(list))
	for i := range list {
		out = append(out, FromTrainingPlan(&list[i]))
	}
	return out
}

package dto

import (
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type TeamDTO struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	AthleteCount int64     `json:"athleteCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type TeamRequest struct {
	Name string `json:"name" binding:"required"`
}

type CoachRefDTO struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TeamInfoDTO is the team view shared with players: owner and size only.
type TeamInfoDTO struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Coach       CoachRefDTO `json:"coach"`
	PlayerCount int64       `json:"playerCount"`
}

func FromTeamSummary(s roster.TeamSummary) TeamDTO {
	return TeamDTO{
		ID:           s.ID,
		Name:         s.Name,
		AthleteCount: s.AthleteCount,
		CreatedAt:    s.CreatedAt,
	}
}

func FromTeamSummaries(list []roster.TeamSummary) []TeamDTO {
	out := make([]TeamDTO, 0, len(list))
	for _, s := range list {
		out = append(out, FromTeamSummary(s))
	}
	return out
}

// FromTeam is used right after a create or rename, before any member.
func FromTeam(t *models.Team, athleteCount int64) TeamDTO {
	return TeamDTO{
		ID:           t.ID,
		Name:         t.Name,
		AthleteCount: athleteCount,
		CreatedAt:    t.CreatedAt,
	}
}

func TeamInfos(list []roster.TeamSummary) []TeamInfoDTO {
	out := make([]TeamInfoDTO, 0, len(list))
	for _, s := range list {
		out = append(out, TeamInfoDTO{
			ID:   s.ID,
			Name: s.Name,
			Coach: CoachRefDTO{
				ID:        s.CoachID,
				FirstName: s.CoachFirstName,
				LastName:  s.CoachLastName,
			},
			PlayerCount: s.AthleteCount,
		})
	}
	return out
}

package dto

import (
	"slices"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

// -------- Requests --------

type RegisterCoachRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type RegisterPlayerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type CoachProfileRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// -------- Responses --------

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type PlayerSummaryDTO struct {
	ID         uint     `json:"id"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Email      *string  `json:"email"`
	TeamNames  []string `json:"teamNames"`
	CoachNames []string `json:"coachNames"`
}

type PlayerLoginResponse struct {
	TokenResponse
	Profile PlayerSummaryDTO `json:"profile"`
}

type AccountDTO struct {
	ID          uint               `json:"id"`
	Email       string             `json:"email"`
	UserType    models.AccountKind `json:"userType"`
	CoachID     *uint              `json:"coachId,omitempty"`
	AthleteID   *uint              `json:"athleteId,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	LastLoginAt *time.Time         `json:"lastLoginAt"`
}

type CoachDTO struct {
	ID             uint      `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	HasUserAccount bool      `json:"hasUserAccount"`
	CreatedAt      time.Time `json:"createdAt"`
}

type PlayerProfileDTO struct {
	ID             uint          `json:"id"`
	FirstName      string        `json:"firstName"`
	LastName       string        `json:"lastName"`
	Email          *string       `json:"email"`
	BirthDate      *string       `json:"birthDate"`
	Weight         *float64      `json:"weight"`
	Height         *float64      `json:"height"`
	Age            *int          `json:"age"`
	Teams          []TeamInfoDTO `json:"teams"`
	HasUserAccount bool          `json:"hasUserAccount"`
}

func FromAccount(a *models.Account) AccountDTO {
	return AccountDTO{
		ID:          a.ID,
		Email:       a.Email,
		UserType:    a.Kind,
		CoachID:     a.CoachID,
		AthleteID:   a.AthleteID,
		CreatedAt:   a.CreatedAt,
		LastLoginAt: a.LastLoginAt,
	}
}

func FromCoach(c *models.Coach, hasAccount bool) CoachDTO {
	return CoachDTO{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		HasUserAccount: hasAccount,
		CreatedAt:      c.CreatedAt,
	}
}

// PlayerSummary lists team names and the distinct names of their coaches.
func PlayerSummary(a *models.Athlete, teams []roster.TeamSummary) PlayerSummaryDTO {
	out := PlayerSummaryDTO{
		ID:         a.ID,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Email:      a.Email,
		TeamNames:  make([]string, 0, len(teams)),
		CoachNames: make([]string, 0, len(teams)),
	}
	for _, t := range teams {
		out.TeamNames = append(out.TeamNames, t.Name)
		coach := t.CoachFirstName + " " + t.CoachLastName
		if !slices.Contains(out.CoachNames, coach) {
			out.CoachNames = append(out.CoachNames, coach)
		}
	}
	return out
}

func PlayerProfile(a *models.Athlete, age *int, teams []roster.TeamSummary, hasAccount bool) PlayerProfileDTO {
	return PlayerProfileDTO{
		ID:             a.ID,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Email:          a.Email,
		BirthDate:      formatDate(a.BirthDate),
		Weight:         a.Weight,
		Height:         a.Height,
		Age:            age,
		Teams:          TeamInfos(teams),
		HasUserAccount: hasAccount,
	}
}

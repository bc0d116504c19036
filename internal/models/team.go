package models

import "time"

type Team struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100;not null" json:"name"`

	CoachID uint   `gorm:"not null;index" json:"coach_id"`
	Coach   *Coach `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Memberships []TeamMembership `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TeamMembership struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AthleteID uint     `gorm:"not null;uniqueIndex:idx_membership_athlete_team" json:"athlete_id"`
	Athlete   *Athlete `json:"-"`

	TeamID uint  `gorm:"not null;uniqueIndex:idx_membership_athlete_team;index" json:"team_id"`
	Team   *Team `json:"-"`

	JoinedAt time.Time `gorm:"not null" json:"joined_at"`
	Role     string    `gorm:"size:30;not null;default:'player'" json:"role"`
}

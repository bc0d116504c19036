package models

import (
	"time"

	"gorm.io/datatypes"
)

// TrainingPlan targets exactly one athlete or one team.
type TrainingPlan struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string          `gorm:"size:150;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	StartTime   *datatypes.Time `json:"start_time"`
	EndTime     *datatypes.Time `json:"end_time"`

	AthleteID *uint    `gorm:"index" json:"athlete_id"`
	Athlete   *Athlete `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	TeamID *uint `gorm:"index" json:"team_id"`
	Team   *Team `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

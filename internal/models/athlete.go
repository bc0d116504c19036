package models

import "time"

type Athlete struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string     `gorm:"size:100;not null" json:"first_name"`
	LastName  string     `gorm:"size:100;not null" json:"last_name"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date"`
	Weight    *float64   `json:"weight"`
	Height    *float64   `json:"height"`
	Email     *string    `gorm:"size:255;uniqueIndex" json:"email"`

	Memberships []TeamMembership `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Account     *Account         `gorm:"foreignKey:AthleteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

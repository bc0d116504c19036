package models

import "time"

type AccountKind string

const (
	AccountKindCoach  AccountKind = "Coach"
	AccountKindPlayer AccountKind = "Player"
)

// Account is a login identity. Kind selects which of CoachID / AthleteID is
// set; a database check constraint keeps the two in sync.
type Account struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash []byte      `gorm:"not null" json:"-"`
	PasswordSalt []byte      `gorm:"not null" json:"-"`
	Kind         AccountKind `gorm:"size:20;not null" json:"kind"`

	CoachID *uint  `gorm:"uniqueIndex" json:"coach_id"`
	Coach   *Coach `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AthleteID *uint    `gorm:"uniqueIndex" json:"athlete_id"`
	Athlete   *Athlete `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

type RefreshToken struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// SHA-256 of the token handed to the client.
	TokenHash string `gorm:"size:64;uniqueIndex;not null" json:"-"`

	AccountID uint     `gorm:"not null;index" json:"account_id"`
	Account   *Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at"`
}

func (t *RefreshToken) IsExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

func (t *RefreshToken) IsActiveAt(now time.Time) bool {
	return !t.IsRevoked() && !t.IsExpiredAt(now)
}

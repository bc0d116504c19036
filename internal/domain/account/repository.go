package account

import (
	"context"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type Repository interface {
	// -------- Accounts --------
	EmailExists(
		ctx context.Context,
		email string,
	) (bool, error)

	// CreateCoachAccount stores the coach profile and its account together.
	CreateCoachAccount(
		ctx context.Context,
		acc *models.Account,
		coach *models.Coach,
	) error

	CreatePlayerAccount(
		ctx context.Context,
		acc *models.Account,
	) error

	FindByEmail(
		ctx context.Context,
		email string,
	) (*models.Account, error)

	FindByID(
		ctx context.Context,
		id uint,
	) (*models.Account, error)

	FindByCoachID(
		ctx context.Context,
		coachID uint,
	) (*models.Account, error)

	FindByAthleteID(
		ctx context.Context,
		athleteID uint,
	) (*models.Account, error)

	TouchLastLogin(
		ctx context.Context,
		accountID uint,
		at time.Time,
	) error

	UpdatePassword(
		ctx context.Context,
		accountID uint,
		hash []byte,
		salt []byte,
	) error

	// -------- Refresh tokens --------
	CreateRefreshToken(
		ctx context.Context,
		token *models.RefreshToken,
	) error

	FindRefreshToken(
		ctx context.Context,
		tokenHash string,
	) (*models.RefreshToken, error)

	RevokeRefreshToken(
		ctx context.Context,
		id uint,
		at time.Time,
	) error
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

var _ account.Repository = (*AccountGormRepository)(nil)

// --------------------------------------------------
// Accounts
// --------------------------------------------------

func (r *AccountGormRepository) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, wrapErr(err, account.ErrNotFound, "email_exists")
	}
	return count > 0, nil
}

func (r *AccountGormRepository) CreateCoachAccount(
	ctx context.Context,
	acc *models.Account,
	coach *models.Coach,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(coach).Error; err != nil {
			return err
		}
		acc.CoachID = &coach.ID
		acc.Kind = models.AccountKindCoach
		return tx.Create(acc).Error
	})
	return wrapErr(err, account.ErrNotFound, "create_coach_account", "email", acc.Email)
}

func (r *AccountGormRepository) CreatePlayerAccount(
	ctx context.Context,
	acc *models.Account,
) error {
	acc.Kind = models.AccountKindPlayer
	err := r.db.WithContext(ctx).Create(acc).Error
	return wrapErr(err, account.ErrNotFound, "create_player_account", "email", acc.Email)
}

func (r *AccountGormRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*models.Account, error) {
	return r.findOne(ctx, "find_by_email", "email = ?", email)
}

func (r *AccountGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.Account, error) {
	return r.findOne(ctx, "find_by_id", "id = ?", id)
}

func (r *AccountGormRepository) FindByCoachID(
	ctx context.Context,
	coachID uint,
) (*models.Account, error) {
	return r.findOne(ctx, "find_by_coach", "coach_id = ?", coachID)
}

func (r *AccountGormRepository) FindByAthleteID(
	ctx context.Context,
	athleteID uint,
) (*models.Account, error) {
	return r.findOne(ctx, "find_by_athlete", "athlete_id = ?", athleteID)
}

func (r *AccountGormRepository) findOne(
	ctx context.Context,
	op string,
	query string,
	arg any,
) (*models.Account, error) {

	var acc models.Account
	if err := r.db.WithContext(ctx).
		Where(query, arg).
		First(&acc).Error; err != nil {
		return nil, wrapErr(err, account.ErrNotFound, op, "arg", arg)
	}
	return &acc, nil
}

func (r *AccountGormRepository) TouchLastLogin(
	ctx context.Context,
	accountID uint,
	at time.Time,
) error {
	err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("last_login_at", at).Error
	return wrapErr(err, account.ErrNotFound, "touch_last_login", "account_id", accountID)
}

func (r *AccountGormRepository) UpdatePassword(
	ctx context.Context,
	accountID uint,
	hash []byte,
	salt []byte,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]any{
			"password_hash": hash,
			"password_salt": salt,
		})
	if res.Error != nil {
		return wrapErr(res.Error, account.ErrNotFound, "update_password", "account_id", accountID)
	}
	if res.RowsAffected == 0 {
		return account.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Refresh tokens
// --------------------------------------------------

func (r *AccountGormRepository) CreateRefreshToken(
	ctx context.Context,
	token *models.RefreshToken,
) error {
	err := r.db.WithContext(ctx).Create(token).Error
	return wrapErr(err, account.ErrNotFound, "create_refresh_token", "account_id", token.AccountID)
}

func (r *AccountGormRepository) FindRefreshToken(
	ctx context.Context,
	tokenHash string,
) (*models.RefreshToken, error) {

	var token models.RefreshToken
	if err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&token).Error; err != nil {
		return nil, wrapErr(err, account.ErrNotFound, "find_refresh_token")
	}
	return &token, nil
}

func (r *AccountGormRepository) RevokeRefreshToken(
	ctx context.Context,
	id uint,
	at time.Time,
) error {
	err := r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at).Error
	return wrapErr(err, account.ErrNotFound, "revoke_refresh_token", "token_id", id)
}

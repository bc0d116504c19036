package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/coach-crm/internal/config"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

const connectAttempts = 6

// NewDB opens the pool, retrying while the database comes up.
func NewDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	var db *gorm.DB

	backoff := retry.WithMaxRetries(connectAttempts, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		conn, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
			PrepareStmt: true,
			Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			slog.WarnContext(ctx, "database not reachable, retrying", "error", err)
			return retry.RetryableError(err)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.WarnContext(ctx, "database ping failed, retrying", "error", err)
			return retry.RetryableError(err)
		}

		db = conn
		return nil
	})
	if err != nil {
		return nil, oops.In("db").Wrapf(err, "connect")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, oops.In("db").Wrapf(err, "get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// ======================================================
// MIGRATIONS
// ======================================================

type checkConstraint struct {
	model any
	name  string
	sql   string
}

var checkConstraints = []checkConstraint{
	{
		model: &models.Account{},
		name:  "chk_accounts_kind",
		sql: `ALTER TABLE accounts ADD CONSTRAINT chk_accounts_kind CHECK (
			(kind = 'Coach' AND coach_id IS NOT NULL AND athlete_id IS NULL) OR
			(kind = 'Player' AND athlete_id IS NOT NULL AND coach_id IS NULL)
		)`,
	},
	{
		model: &models.TrainingPlan{},
		name:  "chk_training_plans_target",
		sql: `ALTER TABLE training_plans ADD CONSTRAINT chk_training_plans_target
			CHECK ((athlete_id IS NULL) <> (team_id IS NULL))`,
	},
}

// Migrate brings the schema up to date. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)

	if err := tx.AutoMigrate(
		&models.Coach{},
		&models.Athlete{},
		&models.Account{},
		&models.RefreshToken{},
		&models.Team{},
		&models.TeamMembership{},
		&models.TrainingPlan{},
		&models.AuditLog{},
	); err != nil {
		return oops.In("db").Wrapf(err, "auto migrate")
	}

	for _, c := range checkConstraints {
		if tx.Migrator().HasConstraint(c.model, c.name) {
			continue
		}
		if err := tx.Exec(c.sql).Error; err != nil {
			return oops.In("db").With("constraint", c.name).Wrapf(err, "add constraint")
		}
	}

	// One hidden bucket team per coach.
	if err := tx.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_unassigned_per_coach
		ON teams (coach_id)
		WHERE name = '_Unassigned'
	`).Error; err != nil {
		return oops.In("db").Wrapf(err, "create bucket index")
	}

	return nil
}

// Ping is used by the readiness probe.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

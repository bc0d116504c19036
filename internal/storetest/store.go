// Package storetest provides an in-memory implementation of every
// repository interface, with the same ownership scoping and cascade
// behavior as the Postgres repositories.
package storetest

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/domain/training"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type state struct {
	nextID      uint
	coaches     map[uint]models.Coach
	athletes    map[uint]models.Athlete
	teams       map[uint]models.Team
	memberships map[uint]models.TeamMembership
	plans       map[uint]models.TrainingPlan
	accounts    map[uint]models.Account
	tokens      map[uint]models.RefreshToken
	audits      []models.AuditLog
}

func (s state) clone() state {
	return state{
		nextID:      s.nextID,
		coaches:     maps.Clone(s.coaches),
		athletes:    maps.Clone(s.athletes),
		teams:       maps.Clone(s.teams),
		memberships: maps.Clone(s.memberships),
		plans:       maps.Clone(s.plans),
		accounts:    maps.Clone(s.accounts),
		tokens:      maps.Clone(s.tokens),
		audits:      slices.Clone(s.audits),
	}
}

type Store struct {
	mu  sync.Mutex
	st  state
	Now func() time.Time

	// AuditErr, when set, fails every audit write.
	AuditErr error
}

var (
	_ account.Repository  = (*Store)(nil)
	_ roster.Repository   = (*Store)(nil)
	_ training.Repository = (*Store)(nil)
	_ audit.Store         = (*Store)(nil)
)

func New() *Store {
	return &Store{
		Now: time.Now,
		st: state{
			coaches:     map[uint]models.Coach{},
			athletes:    map[uint]models.Athlete{},
			teams:       map[uint]models.Team{},
			memberships: map[uint]models.TeamMembership{},
			plans:       map[uint]models.TrainingPlan{},
			accounts:    map[uint]models.Account{},
			tokens:      map[uint]models.RefreshToken{},
		},
	}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint}
}

func (s *Store) id() uint {
	s.st.nextID++
	return s.st.nextID
}

// Transaction restores the previous state when fn fails.
func (s *Store) Transaction(ctx context.Context, fn func(repo roster.Repository) error) error {
	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// ======================================================
// Inspection helpers for tests
// ======================================================

// Memberships returns the athlete's memberships with Team loaded.
func (s *Store) Memberships(athleteID uint) []models.TeamMembership {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.membershipsOf(athleteID)
}

func (s *Store) Teams(coachID uint) []models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Team
	for _, t := range s.st.teams {
		if t.CoachID == coachID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) AuditLogs() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.st.audits)
}

func (s *Store) PlanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.plans)
}

func (s *Store) AccountCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.accounts)
}

// ======================================================
// Accounts
// ======================================================

func (s *Store) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accountWhere(func(a models.Account) bool { return a.Email == email })
	return ok, nil
}

func (s *Store) CreateCoachAccount(_ context.Context, acc *models.Account, coach *models.Coach) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accountWhere(func(a models.Account) bool { return a.Email == acc.Email }); ok {
		return uniqueViolation("idx_accounts_email")
	}

	now := s.Now()
	coach.ID = s.id()
	coach.CreatedAt, coach.UpdatedAt = now, now
	s.st.coaches[coach.ID] = *coach

	coachID := coach.ID
	acc.ID = s.id()
	acc.Kind = models.AccountKindCoach
	acc.CoachID = &coachID
	acc.CreatedAt = now
	s.st.accounts[acc.ID] = *acc
	return nil
}

func (s *Store) CreatePlayerAccount(_ context.Context, acc *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accountWhere(func(a models.Account) bool { return a.Email == acc.Email }); ok {
		return uniqueViolation("idx_accounts_email")
	}
	if acc.AthleteID != nil {
		if _, ok := s.accountWhere(func(a models.Account) bool {
			return a.AthleteID != nil && *a.AthleteID == *acc.AthleteID
		}); ok {
			return uniqueViolation("idx_accounts_athlete_id")
		}
	}

	acc.ID = s.id()
	acc.Kind = models.AccountKindPlayer
	acc.CreatedAt = s.Now()
	s.st.accounts[acc.ID] = *acc
	return nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	return s.findAccount(func(a models.Account) bool { return a.Email == email })
}

func (s *Store) FindByID(_ context.Context, id uint) (*models.Account, error) {
	return s.findAccount(func(a models.Account) bool { return a.ID == id })
}

func (s *Store) FindByCoachID(_ context.Context, coachID uint) (*models.Account, error) {
	return s.findAccount(func(a models.Account) bool { return a.CoachID != nil && *a.CoachID == coachID })
}

func (s *Store) FindByAthleteID(_ context.Context, athleteID uint) (*models.Account, error) {
	return s.findAccount(func(a models.Account) bool { return a.AthleteID != nil && *a.AthleteID == athleteID })
}

func (s *Store) findAccount(match func(models.Account) bool) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accountWhere(match)
	if !ok {
		return nil, account.ErrNotFound
	}
	return &acc, nil
}

func (s *Store) accountWhere(match func(models.Account) bool) (models.Account, bool) {
	for _, a := range s.st.accounts {
		if match(a) {
			return a, true
		}
	}
	return models.Account{}, false
}

func (s *Store) TouchLastLogin(_ context.Context, accountID uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.st.accounts[accountID]
	if !ok {
		return nil
	}
	acc.LastLoginAt = &at
	s.st.accounts[accountID] = acc
	return nil
}

func (s *Store) UpdatePassword(_ context.Context, accountID uint, hash, salt []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.st.accounts[accountID]
	if !ok {
		return account.ErrNotFound
	}
	acc.PasswordHash, acc.PasswordSalt = hash, salt
	s.st.accounts[accountID] = acc
	return nil
}

func (s *Store) CreateRefreshToken(_ context.Context, token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.st.tokens {
		if t.TokenHash == token.TokenHash {
			return uniqueViolation("idx_refresh_tokens_token_hash")
		}
	}
	token.ID = s.id()
	token.CreatedAt = s.Now()
	s.st.tokens[token.ID] = *token
	return nil
}

func (s *Store) FindRefreshToken(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.st.tokens {
		if t.TokenHash == tokenHash {
			return &t, nil
		}
	}
	return nil, account.ErrNotFound
}

func (s *Store) RevokeRefreshToken(_ context.Context, id uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.st.tokens[id]
	if !ok || t.RevokedAt != nil {
		return nil
	}
	t.RevokedAt = &at
	s.st.tokens[id] = t
	return nil
}

// ======================================================
// Audit
// ======================================================

func (s *Store) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.AuditErr != nil {
		return s.AuditErr
	}
	log.ID = s.id()
	log.CreatedAt = s.Now()
	s.st.audits = append(s.st.audits, *log)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.AuditLog
	for i := len(s.st.audits) - 1; i >= 0; i-- {
		l := s.st.audits[i]
		switch {
		case l.CoachID != q.CoachID:
		case q.Action != "" && l.Action != q.Action:
		case q.Entity != "" && l.Entity != q.Entity:
		case q.From != nil && l.CreatedAt.Before(*q.From):
		case q.To != nil && !l.CreatedAt.Before(*q.To):
		default:
			matched = append(matched, l)
		}
	}

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

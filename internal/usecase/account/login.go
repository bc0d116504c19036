package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/auth"
	domain "github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/models"
	"github.com/BruksfildServices01/coach-crm/internal/validators"
)

type LoginInput struct {
	Email    string
	Password string
}

// Session is what a successful login hands back to the client.
type Session struct {
	Identity         domain.Identity
	AccessToken      string
	ExpiresAt        time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type Login struct {
	repo       domain.Repository
	hasher     auth.PasswordHasher
	issuer     *auth.Issuer
	refreshTTL time.Duration

	// Verified against for unknown emails so both failures cost the same.
	dummyHash []byte
	dummySalt []byte
}

func NewLogin(
	repo domain.Repository,
	hasher auth.PasswordHasher,
	issuer *auth.Issuer,
	refreshTTL time.Duration,
) *Login {
	uc := &Login{
		repo:       repo,
		hasher:     hasher,
		issuer:     issuer,
		refreshTTL: refreshTTL,
	}
	var err error
	uc.dummyHash, uc.dummySalt, err = hasher.Hash("dummy-password-for-timing")
	if err != nil {
		// Without a dummy hash unknown emails would answer faster.
		panic(fmt.Sprintf("login: dummy hash: %v", err))
	}
	return uc
}

// Execute authenticates an account of the given kind. Unknown email, wrong
// password and wrong kind all fail the same way.
func (uc *Login) Execute(
	ctx context.Context,
	kind models.AccountKind,
	in LoginInput,
) (*Session, error) {

	email := validators.NormalizeEmail(in.Email)

	acc, err := uc.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		uc.hasher.Verify(in.Password, uc.dummyHash, uc.dummySalt)
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !uc.hasher.Verify(in.Password, acc.PasswordHash, acc.PasswordSalt) {
		return nil, errInvalidCredentials
	}
	if acc.Kind != kind {
		return nil, errInvalidCredentials
	}

	identity, err := domain.IdentityOf(acc)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := uc.repo.TouchLastLogin(ctx, acc.ID, now); err != nil {
		return nil, err
	}

	return uc.startSession(ctx, identity, now)
}

func (uc *Login) startSession(
	ctx context.Context,
	identity domain.Identity,
	now time.Time,
) (*Session, error) {

	access, expiresAt, err := uc.issuer.Issue(identity)
	if err != nil {
		return nil, err
	}

	raw, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	refresh := &models.RefreshToken{
		TokenHash: auth.HashRefreshToken(raw),
		AccountID: identity.AccountID,
		ExpiresAt: now.Add(uc.refreshTTL),
	}
	if err := uc.repo.CreateRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}

	return &Session{
		Identity:         identity,
		AccessToken:      access,
		ExpiresAt:        expiresAt,
		RefreshToken:     raw,
		RefreshExpiresAt: refresh.ExpiresAt,
	}, nil
}

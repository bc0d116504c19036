package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/coach-crm/internal/auth"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
	"github.com/BruksfildServices01/coach-crm/internal/storetest"
)

type fixture struct {
	store  *storetest.Store
	hasher *auth.Argon2Hasher
	issuer *auth.Issuer
	login  *Login
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hasher := auth.NewArgon2Hasher()
	hasher.Memory = 1024
	hasher.Threads = 1

	store := storetest.New()
	issuer := auth.NewIssuer("test-secret", 12*time.Hour)
	return &fixture{
		store:  store,
		hasher: hasher,
		issuer: issuer,
		login:  NewLogin(store, hasher, issuer, 30*24*time.Hour),
	}
}

func (f *fixture) registerCoach(t *testing.T, email, password string) *models.Coach {
	t.Helper()
	_, coach, err := NewRegisterCoach(f.store, f.hasher, nil).Execute(context.Background(), RegisterCoachInput{
		FirstName: "Ana",
		LastName:  "Lima",
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)
	return coach
}

// seedAthlete adds an athlete in a bucket team of a fresh coach.
func (f *fixture) seedAthlete(t *testing.T, email string) *models.Athlete {
	t.Helper()
	ctx := context.Background()
	coach := f.store.AddCoach("Carl", "Coach", "carl@club.io")
	bucket, err := f.store.EnsureUnassignedTeam(ctx, coach.ID)
	require.NoError(t, err)

	a := &models.Athlete{FirstName: "Jane", LastName: "Doe", Email: &email}
	require.NoError(t, f.store.CreateAthlete(ctx, a))
	require.NoError(t, f.store.AddMembership(ctx, &models.TeamMembership{AthleteID: a.ID, TeamID: bucket.ID, JoinedAt: time.Now()}))
	return a
}

func TestRegisterCoach(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acc, coach, err := NewRegisterCoach(f.store, f.hasher, nil).Execute(ctx, RegisterCoachInput{
		FirstName: " Ana ",
		LastName:  "Lima",
		Email:     " Ana@Club.IO ",
		Password:  "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@club.io", acc.Email)
	assert.Equal(t, models.AccountKindCoach, acc.Kind)
	require.NotNil(t, acc.CoachID)
	assert.Equal(t, coach.ID, *acc.CoachID)
	assert.Equal(t, "Ana", coach.FirstName)
	assert.NotEqual(t, []byte("secret1"), acc.PasswordHash)
	assert.NotEmpty(t, acc.PasswordSalt)
}

func TestRegisterCoach_Validation(t *testing.T) {
	f := newFixture(t)
	uc := NewRegisterCoach(f.store, f.hasher, func(string) bool { return false })

	tests := []struct {
		name string
		in   RegisterCoachInput
		code string
	}{
		{"missing name", RegisterCoachInput{Email: "a@b.io", Password: "secret1"}, "invalid_name"},
		{"bad email", RegisterCoachInput{FirstName: "A", LastName: "B", Email: "nope", Password: "secret1"}, "invalid_email"},
		{"bad domain", RegisterCoachInput{FirstName: "A", LastName: "B", Email: "a@b.io", Password: "secret1"}, "invalid_email_domain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := uc.Execute(context.Background(), tt.in)
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
		})
	}

	_, _, err := NewRegisterCoach(f.store, f.hasher, nil).Execute(context.Background(), RegisterCoachInput{
		FirstName: "A", LastName: "B", Email: "a@b.io", Password: "12345",
	})
	assert.True(t, httperr.IsBusiness(err, "weak_password"))
}

func TestRegisterCoach_DuplicateEmailIsConflict(t *testing.T) {
	f := newFixture(t)
	f.registerCoach(t, "ana@club.io", "secret1")

	_, _, err := NewRegisterCoach(f.store, f.hasher, nil).Execute(context.Background(), RegisterCoachInput{
		FirstName: "Other", LastName: "Coach", Email: "ANA@club.io", Password: "secret2",
	})

	kind, ok := httperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, httperr.KindConflict, kind)
}

func TestRegisterPlayer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	athlete := f.seedAthlete(t, "jane@club.io")
	uc := NewRegisterPlayer(f.store, f.store, f.hasher)

	acc, got, err := uc.Execute(ctx, RegisterPlayerInput{Email: "Jane@Club.io", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, athlete.ID, got.ID)
	assert.Equal(t, models.AccountKindPlayer, acc.Kind)
	require.NotNil(t, acc.AthleteID)
	assert.Equal(t, athlete.ID, *acc.AthleteID)

	_, _, err = uc.Execute(ctx, RegisterPlayerInput{Email: "jane@club.io", Password: "secret1"})
	assert.True(t, httperr.IsBusiness(err, "already_registered"))

	_, _, err = uc.Execute(ctx, RegisterPlayerInput{Email: "ghost@club.io", Password: "secret1"})
	assert.True(t, httperr.IsBusiness(err, "athlete_not_found"))
}

func TestRegisterPlayer_EmailUsedByCoach(t *testing.T) {
	f := newFixture(t)
	f.registerCoach(t, "shared@club.io", "secret1")
	f.seedAthlete(t, "shared@club.io")

	_, _, err := NewRegisterPlayer(f.store, f.store, f.hasher).Execute(context.Background(), RegisterPlayerInput{
		Email: "shared@club.io", Password: "secret1",
	})
	assert.True(t, httperr.IsBusiness(err, "email_taken"))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	coach := f.registerCoach(t, "ana@club.io", "secret1")

	session, err := f.login.Execute(ctx, models.AccountKindCoach, LoginInput{Email: "ANA@club.io", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, coach.ID, session.Identity.CoachID)
	assert.NotEmpty(t, session.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), session.RefreshExpiresAt, time.Minute)

	claims, err := f.issuer.Parse(session.AccessToken)
	require.NoError(t, err)
	id, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, session.Identity, id)

	acc, err := f.store.FindByEmail(ctx, "ana@club.io")
	require.NoError(t, err)
	assert.NotNil(t, acc.LastLoginAt)

	stored, err := f.store.FindRefreshToken(ctx, auth.HashRefreshToken(session.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, acc.ID, stored.AccountID)
}

func TestLogin_FailuresLookTheSame(t *testing.T) {
	f := newFixture(t)
	f.registerCoach(t, "ana@club.io", "secret1")

	tests := []struct {
		name string
		kind models.AccountKind
		in   LoginInput
	}{
		{"wrong password", models.AccountKindCoach, LoginInput{Email: "ana@club.io", Password: "nope"}},
		{"unknown email", models.AccountKindCoach, LoginInput{Email: "ghost@club.io", Password: "secret1"}},
		{"wrong kind", models.AccountKindPlayer, LoginInput{Email: "ana@club.io", Password: "secret1"}},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.login.Execute(context.Background(), tt.kind, tt.in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))
			messages = append(messages, err.Error())
		})
	}
	require.Len(t, messages, 3)
	assert.Equal(t, messages[0], messages[1])
	assert.Equal(t, messages[0], messages[2])
}

type brokenHasher struct{}

func (brokenHasher) Hash(string) ([]byte, []byte, error) {
	return nil, nil, errors.New("entropy exhausted")
}

func (brokenHasher) Verify(string, []byte, []byte) bool { return false }

func TestNewLogin_HasherFailureIsFatal(t *testing.T) {
	assert.PanicsWithValue(t, "login: dummy hash: entropy exhausted", func() {
		NewLogin(storetest.New(), brokenHasher{}, auth.NewIssuer("test-secret", time.Hour), time.Hour)
	})
}

func TestLoginPlayer_ReturnsProfileSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	athlete := f.seedAthlete(t, "jane@club.io")

	coach := f.store.AddCoach("Bea", "Silva", "bea@club.io")
	team := &models.Team{Name: "Sharks", CoachID: coach.ID}
	require.NoError(t, f.store.CreateTeam(ctx, team))
	require.NoError(t, f.store.AddMembership(ctx, &models.TeamMembership{AthleteID: athlete.ID, TeamID: team.ID}))

	_, _, err := NewRegisterPlayer(f.store, f.store, f.hasher).Execute(ctx, RegisterPlayerInput{Email: "jane@club.io", Password: "secret1"})
	require.NoError(t, err)

	session, err := NewLoginPlayer(f.login, f.store).Execute(ctx, LoginInput{Email: "jane@club.io", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, athlete.ID, session.Identity.AthleteID)
	assert.Equal(t, "Jane", session.Athlete.FirstName)
	require.Len(t, session.Teams, 1)
	assert.Equal(t, "Sharks", session.Teams[0].Name)
	assert.Equal(t, "Bea", session.Teams[0].CoachFirstName)
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerCoach(t, "ana@club.io", "secret1")
	session, err := f.login.Execute(ctx, models.AccountKindCoach, LoginInput{Email: "ana@club.io", Password: "secret1"})
	require.NoError(t, err)

	uc := NewRefresh(f.store, f.issuer)

	token, exp, err := uc.Execute(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))
	claims, err := f.issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, session.Identity.AccountID, claims.UserID)

	// Not rotated: the same refresh token keeps working.
	_, _, err = uc.Execute(ctx, session.RefreshToken)
	require.NoError(t, err)

	_, _, err = uc.Execute(ctx, "")
	assert.True(t, httperr.IsBusiness(err, "missing_refresh_token"))

	_, _, err = uc.Execute(ctx, "forged")
	assert.True(t, httperr.IsBusiness(err, "invalid_refresh_token"))
}

func TestRefresh_ExpiredOrRevoked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerCoach(t, "ana@club.io", "secret1")
	acc, err := f.store.FindByEmail(ctx, "ana@club.io")
	require.NoError(t, err)

	expired := "expired-token"
	require.NoError(t, f.store.CreateRefreshToken(ctx, &models.RefreshToken{
		TokenHash: auth.HashRefreshToken(expired),
		AccountID: acc.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, _, err = NewRefresh(f.store, f.issuer).Execute(ctx, expired)
	assert.True(t, httperr.IsBusiness(err, "invalid_refresh_token"))

	session, err := f.login.Execute(ctx, models.AccountKindCoach, LoginInput{Email: "ana@club.io", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, NewLogout(f.store).Execute(ctx, session.RefreshToken))

	_, _, err = NewRefresh(f.store, f.issuer).Execute(ctx, session.RefreshToken)
	assert.True(t, httperr.IsBusiness(err, "invalid_refresh_token"))
}

func TestLogout_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewLogout(f.store)

	assert.NoError(t, uc.Execute(ctx, ""))
	assert.NoError(t, uc.Execute(ctx, "unknown"))

	f.registerCoach(t, "ana@club.io", "secret1")
	session, err := f.login.Execute(ctx, models.AccountKindCoach, LoginInput{Email: "ana@club.io", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, uc.Execute(ctx, session.RefreshToken))
	require.NoError(t, uc.Execute(ctx, session.RefreshToken))

	stored, err := f.store.FindRefreshToken(ctx, auth.HashRefreshToken(session.RefreshToken))
	require.NoError(t, err)
	assert.NotNil(t, stored.RevokedAt)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerCoach(t, "ana@club.io", "secret1")
	session, err := f.login.Execute(ctx, models.AccountKindCoach, LoginInput{Email: "ana@club.io", Password: "secret1"})
	require.NoError(t, err)
	before, err := f.store.FindByID(ctx, session.Identity.AccountID)
	require.NoError(t, err)

	uc := NewChangePassword(f.store, f.hasher)

	err = uc.Execute(ctx, session.Identity, ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "secret2"})
	assert.True(t, httperr.IsBusiness(err, "wrong_password"))

	err = uc.Execute(ctx, session.Identity, ChangePasswordInput{CurrentPassword: "secret1", NewPassword: "123"})
	assert.True(t, httperr.IsBusiness(err, "weak_password"))

	require.NoError(t, uc.Execute(ctx, session.Identity, ChangePasswordInput{CurrentPassword: "secret1", NewPassword: "secret2"}))

	after, err := f.store.FindByID(ctx, session.Identity.AccountID)
	require.NoError(t, err)
	assert.NotEqual(t, before.PasswordSalt, after.PasswordSalt)

	_, err = f.login.Execute(ctx, models.AccountKindCoach, LoginInput{Email: "ana@club.io", Password: "secret1"})
	assert.Error(t, err)
	_, err = f.login.Execute(ctx, models.AccountKindCoach, LoginInput{Email: "ana@club.io", Password: "secret2"})
	assert.NoError(t, err)
}

func TestGetMe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerCoach(t, "ana@club.io", "secret1")
	session, err := f.login.Execute(ctx, models.AccountKindCoach, LoginInput{Email: "ana@club.io", Password: "secret1"})
	require.NoError(t, err)

	acc, err := NewGetMe(f.store).Execute(ctx, session.Identity)
	require.NoError(t, err)
	assert.Equal(t, "ana@club.io", acc.Email)

	gone := session.Identity
	gone.AccountID = 9999
	_, err = NewGetMe(f.store).Execute(ctx, gone)
	assert.True(t, httperr.IsBusiness(err, "invalid_token"))
}

package athlete

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
	"github.com/BruksfildServices01/coach-crm/internal/storetest"
)

func coachIdentity(coach models.Coach) account.Identity {
	return account.Identity{
		AccountID: coach.ID + 1000,
		Email:     coach.Email,
		Kind:      models.AccountKindCoach,
		CoachID:   coach.ID,
	}
}

func newTeam(t *testing.T, store *storetest.Store, coachID uint, name string) *models.Team {
	t.Helper()
	team := &models.Team{Name: name, CoachID: coachID}
	require.NoError(t, store.CreateTeam(context.Background(), team))
	return team
}

func teamNames(ms []models.TeamMembership) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.Team.Name)
	}
	return out
}

func create(t *testing.T, store *storetest.Store, id account.Identity, first string, teamID *uint) *models.Athlete {
	t.Helper()
	a, err := NewCreateAthlete(store, audit.New(store)).Execute(context.Background(), id, CreateInput{
		ProfileInput: ProfileInput{FirstName: first, LastName: "Doe"},
		TeamID:       teamID,
	})
	require.NoError(t, err)
	return a
}

func TestCreateAthlete_WithoutTeamGoesToBucket(t *testing.T) {
	store := storetest.New()
	coach := store.AddCoach("Carl", "Coach", "carl@club.io")
	id := coachIdentity(coach)

	a := create(t, store, id, "Jane", nil)

	assert.Equal(t, []string{roster.UnassignedTeamName}, teamNames(store.Memberships(a.ID)))
	assert.Empty(t, roster.VisibleTeamIDs(a, coach.ID))

	listed, err := NewListAthletes(store).Execute(context.Background(), id, nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, a.ID, listed[0].ID)

	logs := store.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, "athlete_created", logs[0].Action)
	assert.Equal(t, coach.ID, logs[0].CoachID)
}

func TestCreateAthlete_IntoTeam(t *testing.T) {
	store := storetest.New()
	coach := store.AddCoach("Carl", "Coach", "carl@club.io")
	sharks := newTeam(t, store, coach.ID, "Sharks")

	a := create(t, store, coachIdentity(coach), "Jane", &sharks.ID)

	assert.Equal(t, []string{"Sharks"}, teamNames(store.Memberships(a.ID)))
	assert.Equal(t, []uint{sharks.ID}, roster.VisibleTeamIDs(a, coach.ID))
}

func TestCreateAthlete_Validation(t *testing.T) {
	store := storetest.New()
	coach := store.AddCoach("Carl", "Coach", "carl@club.io")
	other := store.AddCoach("Olga", "Other", "olga@club.io")
	foreign := newTeam(t, store, other.ID, "Foreign")
	uc := NewCreateAthlete(store, audit.New(store))
	ctx := context.Background()

	neg := -1.0
	bad := "not-an-email"

	cases := []struct {
		name string
		in   CreateInput
		code string
	}{
		{"missing name", CreateInput{ProfileInput: ProfileInput{FirstName: " ", LastName: "Doe"}}, "invalid_name"},
		{"negative weight", CreateInput{ProfileInput: ProfileInput{FirstName: "J", LastName: "D", Weight: &neg}}, "invalid_weight"},
		{"negative height", CreateInput{ProfileInput: ProfileInput{FirstName: "J", LastName: "D", Height: &neg}}, "invalid_height"},
		{"bad email", CreateInput{ProfileInput: ProfileInput{FirstName: "J", LastName: "D", Email: &bad}}, "invalid_email"},
		{"foreign team", CreateInput{ProfileInput: ProfileInput{FirstName: "J", LastName: "D"}, TeamID: &foreign.ID}, "team_not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, coachIdentity(coach), tc.in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}

	assert.Empty(t, store.Teams(coach.ID), "a failed create must not leave a bucket behind")
}

func TestCreateAthlete_DuplicateEmail(t *testing.T) {
	store := storetest.New()
	coach := store.AddCoach("Carl", "Coach", "carl@club.io")
	uc := NewCreateAthlete(store, audit.New(store))
	ctx := context.Background()

	email := "Jane@Club.io"
	_, err := uc.Execute(ctx, coachIdentity(coach), CreateInput{ProfileInput: ProfileInput{FirstName: "Jane", LastName: "Doe", Email: &email}})
	require.NoError(t, err)

	again := "jane@club.io"
	_, err = uc.Execute(ctx, coachIdentity(coach), CreateInput{ProfileInput: ProfileInput{FirstName: "Jay", LastName: "Doe", Email: &again}})
	assert.True(t, httperr.IsBusiness(err, "athlete_email_taken"))
}

func TestAthletes_PlayerIsForbidden(t *testing.T) {
	store := storetest.New()
	player := account.Identity{AccountID: 1, Kind: models.AccountKindPlayer, AthleteID: 5}

	_, err := NewListAthletes(store).Execute(context.Background(), player, nil)
	assert.True(t, httperr.IsBusiness(err, "coach_only"))

	_, err = NewCreateAthlete(store, nil).Execute(context.Background(), player, CreateInput{})
	assert.True(t, httperr.IsBusiness(err, "coach_only"))
}

func TestAthletes_CrossTenantIsNotFound(t *testing.T) {
	store := storetest.New()
	ctx := context.Background()
	carl := store.AddCoach("Carl", "Coach", "carl@club.io")
	olga := store.AddCoach("Olga", "Other", "olga@club.io")

	jane := create(t, store, coachIdentity(carl), "Jane", nil)
	olgaID := coachIdentity(olga)

	_, err := NewGetAthlete(store).Execute(ctx, olgaID, jane.ID)
	assert.True(t, httperr.IsBusiness(err, "athlete_not_found"))

	_, err = NewUpdateAthlete(store, nil).Execute(ctx, olgaID, jane.ID, ProfileInput{FirstName: "X", LastName: "Y"})
	assert.True(t, httperr.IsBusiness(err, "athlete_not_found"))

	err = NewDeleteAthlete(store, nil).Execute(ctx, olgaID, jane.ID)
	assert.True(t, httperr.IsBusiness(err, "athlete_not_found"))

	listed, err := NewListAthletes(store).Execute(ctx, olgaID, nil)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestUpdateAthlete(t *testing.T) {
	store := storetest.New()
	coach := store.AddCoach("Carl", "Coach", "carl@club.io")
	id := coachIdentity(coach)
	jane := create(t, store, id, "Jane", nil)

	w := 61.5
	email := " JANE@club.io "
	updated, err := NewUpdateAthlete(store, audit.New(store)).Execute(context.Background(), id, jane.ID, ProfileInput{
		FirstName: "Janet",
		LastName:  "Doe",
		Weight:    &w,
		Email:     &email,
	})
	require.NoError(t, err)

	assert.Equal(t, "Janet", updated.FirstName)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "jane@club.io", *updated.Email)

	// keeping its own email is not a conflict
	_, err = NewUpdateAthlete(store, nil).Execute(context.Background(), id, jane.ID, ProfileInput{
		FirstName: "Janet",
		LastName:  "Doe",
		Email:     &email,
	})
	require.NoError(t, err)
}

func TestDeleteAthlete(t *testing.T) {
	store := storetest.New()
	coach := store.AddCoach("Carl", "Coach", "carl@club.io")
	id := coachIdentity(coach)
	jane := create(t, store, id, "Jane", nil)

	require.NoError(t, NewDeleteAthlete(store, audit.New(store)).Execute(context.Background(), id, jane.ID))

	assert.Empty(t, store.Memberships(jane.ID))
	_, err := NewGetAthlete(store).Execute(context.Background(), id, jane.ID)
	assert.True(t, httperr.IsBusiness(err, "athlete_not_found"))
}

// txCounter records how many units of work were opened.
type txCounter struct {
	*storetest.Store
	txs int
}

func (c *txCounter) Transaction(ctx context.Context, fn func(repo roster.Repository) error) error {
	c.txs++
	return c.Store.Transaction(ctx, fn)
}

func TestUpdateAndDeleteAthlete_RunInTransaction(t *testing.T) {
	store := storetest.New()
	ctx := context.Background()
	coach := store.AddCoach("Carl", "Coach", "carl@club.io")
	id := coachIdentity(coach)
	jane := create(t, store, id, "Jane", nil)
	john := create(t, store, id, "John", nil)
	taken := "taken@club.io"
	_, err := NewUpdateAthlete(store, nil).Execute(ctx, id, john.ID, ProfileInput{FirstName: "John", LastName: "Doe", Email: &taken})
	require.NoError(t, err)

	repo := &txCounter{Store: store}
	_, err = NewUpdateAthlete(repo, audit.New(store)).Execute(ctx, id, jane.ID, ProfileInput{
		FirstName: "Janet",
		LastName:  "Doe",
		Email:     &taken,
	})
	assert.True(t, httperr.IsBusiness(err, "athlete_email_taken"))
	assert.Equal(t, 1, repo.txs)

	got, err := NewGetAthlete(store).Execute(ctx, id, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Nil(t, got.Email)

	require.NoError(t, NewDeleteAthlete(repo, audit.New(store)).Execute(ctx, id, jane.ID))
	assert.Equal(t, 2, repo.txs)

	err = NewDeleteAthlete(repo, nil).Execute(ctx, id, jane.ID)
	assert.True(t, httperr.IsBusiness(err, "athlete_not_found"))

	var actions []string
	for _, l := range store.AuditLogs() {
		actions = append(actions, l.Action)
	}
	assert.NotContains(t, actions, "athlete_updated")
	assert.Contains(t, actions, "athlete_deleted")
}

func TestAssignToTeam_LeavesBucket(t *testing.T) {
	store := storetest.New()
	coach := store.AddCoach("Carl", "Coach", "carl@club.io")
	id := coachIdentity(coach)
	sharks := newTeam(t, store, coach.ID, "Sharks")
	jane := create(t, store, id, "Jane", nil)

	a, err := NewAssignToTeam(store, audit.New(store)).Execute(context.Background(), id, jane.ID, sharks.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sharks"}, teamNames(store.Memberships(jane.ID)))
	assert.Equal(t, []uint{sharks.ID}, roster.VisibleTeamIDs(a, coach.ID))
}

func TestAssignToTeam_Errors(t *testing.T) {
	store := storetest.New()
	ctx := context.Background()
	coach := store.AddCoach("Carl", "Coach", "carl@club.io")
	other := store.AddCoach("Olga", "Other", "olga@club.io")
	id := coachIdentity(coach)
	sharks := newTeam(t, store, coach.ID, "Sharks")
	foreign := newTeam(t, store, other.ID, "Foreign")
	jane := create(t, store, id, "Jane", &sharks.ID)
	uc := NewAssignToTeam(store, nil)

	_, err := uc.Execute(ctx, id, jane.ID, sharks.ID)
	assert.True(t, httperr.IsBusiness(err, "already_member"))

	_, err = uc.Execute(ctx, id, jane.ID, foreign.ID)
	assert.True(t, httperr.IsBusiness(err, "team_not_found"))

	_, err = uc.Execute(ctx, id, 9999, sharks.ID)
	assert.True(t, httperr.IsBusiness(err, "athlete_not_found"))

	bucket, err := store.EnsureUnassignedTeam(ctx, coach.ID)
	require.NoError(t, err)
	_, err = uc.Execute(ctx, id, jane.ID, bucket.ID)
	assert.True(t, httperr.IsBusiness(err, "team_not_found"), "the bucket is not addressable")
}

func TestRemoveFromTeam_LastTeamRebuckets(t *testing.T) {
	store := storetest.New()
	coach := store.AddCoach("Carl", "Coach", "carl@club.io")
	id := coachIdentity(coach)
	sharks := newTeam(t, store, coach.ID, "Sharks")
	jane := create(t, store, id, "Jane", &sharks.ID)

	a, err := NewRemoveFromTeam(store, audit.New(store)).Execute(context.Background(), id, jane.ID, sharks.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{roster.UnassignedTeamName}, teamNames(store.Memberships(jane.ID)))
	assert.Empty(t, roster.VisibleTeamIDs(a, coach.ID))

	listed, err := NewListAthletes(store).Execute(context.Background(), id, nil)
	require.NoError(t, err)
	assert.Len(t, listed, 1, "an athlete without teams stays listed")
}

func TestRemoveFromTeam_OtherTeamsLeft(t *testing.T) {
	store := storetest.New()
	ctx := context.Background()
	coach := store.AddCoach("Carl", "Coach", "carl@club.io")
	id := coachIdentity(coach)
	sharks := newTeam(t, store, coach.ID, "Sharks")
	jets := newTeam(t, store, coach.ID, "Jets")
	jane := create(t, store, id, "Jane", &sharks.ID)

	_, err := NewAssignToTeam(store, nil).Execute(ctx, id, jane.ID, jets.ID)
	require.NoError(t, err)

	_, err = NewRemoveFromTeam(store, nil).Execute(ctx, id, jane.ID, sharks.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"Jets"}, teamNames(store.Memberships(jane.ID)))
	for _, team := range store.Teams(coach.ID) {
		assert.False(t, roster.IsUnassigned(team.Name), "no bucket is needed")
	}
}

func TestRemoveFromTeam_NotAMember(t *testing.T) {
	store := storetest.New()
	coach := store.AddCoach("Carl", "Coach", "carl@club.io")
	id := coachIdentity(coach)
	sharks := newTeam(t, store, coach.ID, "Sharks")
	jets := newTeam(t, store, coach.ID, "Jets")
	jane := create(t, store, id, "Jane", &sharks.ID)

	_, err := NewRemoveFromTeam(store, nil).Execute(context.Background(), id, jane.ID, jets.ID)
	assert.True(t, httperr.IsBusiness(err, "membership_not_found"))
}

func TestAuditFailureDoesNotFailTheOperation(t *testing.T) {
	store := storetest.New()
	store.AuditErr = errors.New("audit down")
	coach := store.AddCoach("Carl", "Coach", "carl@club.io")

	a := create(t, store, coachIdentity(coach), "Jane", nil)
	assert.NotZero(t, a.ID)
	assert.Empty(t, store.AuditLogs())
}

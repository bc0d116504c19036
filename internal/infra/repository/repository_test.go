//go:build integration

package repository_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/domain/training"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/infra/repository"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

func newCoach(email string) *models.Coach {
	coach := &models.Coach{FirstName: "C", LastName: email, Email: email}
	acc := &models.Account{Email: email, PasswordHash: []byte("h"), PasswordSalt: []byte("s")}
	Expect(repository.NewAccountGormRepository(db).CreateCoachAccount(ctx, acc, coach)).To(Succeed())
	return coach
}

func member(repo roster.Repository, athleteID, teamID uint) {
	Expect(repo.AddMembership(ctx, &models.TeamMembership{
		AthleteID: athleteID,
		TeamID:    teamID,
		JoinedAt:  time.Now(),
		Role:      roster.RolePlayer,
	})).To(Succeed())
}

var _ = Describe("RosterGormRepository", func() {
	var (
		repo   *repository.RosterGormRepository
		carl   *models.Coach
		olga   *models.Coach
		sharks *models.Team
		jane   *models.Athlete
	)

	BeforeEach(func() {
		repo = repository.NewRosterGormRepository(db)
		carl = newCoach("carl@club.io")
		olga = newCoach("olga@club.io")

		sharks = &models.Team{Name: "Sharks", CoachID: carl.ID}
		Expect(repo.CreateTeam(ctx, sharks)).To(Succeed())

		email := "jane@club.io"
		jane = &models.Athlete{FirstName: "Jane", LastName: "Doe", Email: &email}
		Expect(repo.CreateAthlete(ctx, jane)).To(Succeed())
		member(repo, jane.ID, sharks.ID)
	})

	Describe("bucket team", func() {
		It("is created once per coach", func() {
			first, err := repo.EnsureUnassignedTeam(ctx, carl.ID)
			Expect(err).NotTo(HaveOccurred())
			second, err := repo.EnsureUnassignedTeam(ctx, carl.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(second.ID).To(Equal(first.ID))
			Expect(first.Name).To(Equal(roster.UnassignedTeamName))
		})

		It("rejects a second bucket row at the database", func() {
			_, err := repo.EnsureUnassignedTeam(ctx, carl.ID)
			Expect(err).NotTo(HaveOccurred())

			err = db.Create(&models.Team{Name: roster.UnassignedTeamName, CoachID: carl.ID}).Error
			Expect(httperr.IsUniqueViolation(err)).To(BeTrue())
		})

		It("is hidden from listings and lookups", func() {
			bucket, err := repo.EnsureUnassignedTeam(ctx, carl.ID)
			Expect(err).NotTo(HaveOccurred())

			teams, err := repo.ListTeams(ctx, carl.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(teams).To(HaveLen(1))
			Expect(teams[0].Name).To(Equal("Sharks"))
			Expect(teams[0].AthleteCount).To(BeEquivalentTo(1))

			_, err = repo.GetTeam(ctx, carl.ID, bucket.ID)
			Expect(err).To(MatchError(roster.ErrNotFound))
		})
	})

	Describe("tenant scoping", func() {
		It("only finds athletes through the coach's teams", func() {
			got, err := repo.GetAthlete(ctx, carl.ID, jane.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Memberships).To(HaveLen(1))

			_, err = repo.GetAthlete(ctx, olga.ID, jane.ID)
			Expect(err).To(MatchError(roster.ErrNotFound))

			list, err := repo.ListAthletes(ctx, olga.ID, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
		})

		It("keeps bucketed athletes on the roster", func() {
			bucket, err := repo.EnsureUnassignedTeam(ctx, carl.ID)
			Expect(err).NotTo(HaveOccurred())
			member(repo, jane.ID, bucket.ID)
			Expect(repo.RemoveMembership(ctx, jane.ID, sharks.ID)).To(Succeed())

			list, err := repo.ListAthletes(ctx, carl.ID, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))

			visible, err := repo.CountVisibleMemberships(ctx, carl.ID, jane.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(visible).To(BeZero())
		})

		It("does not see other coaches' teams", func() {
			_, err := repo.GetTeam(ctx, olga.ID, sharks.ID)
			Expect(err).To(MatchError(roster.ErrNotFound))

			_, err = repo.GetTeamSummary(ctx, olga.ID, sharks.ID)
			Expect(err).To(MatchError(roster.ErrNotFound))
		})

		It("summarises a single team", func() {
			got, err := repo.GetTeamSummary(ctx, carl.ID, sharks.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Sharks"))
			Expect(got.AthleteCount).To(BeEquivalentTo(1))
			Expect(got.CoachFirstName).To(Equal("C"))

			bucket, err := repo.EnsureUnassignedTeam(ctx, carl.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.GetTeamSummary(ctx, carl.ID, bucket.ID)
			Expect(err).To(MatchError(roster.ErrNotFound))
		})
	})

	Describe("transactions", func() {
		It("rolls back every write when the callback fails", func() {
			err := repo.Transaction(ctx, func(tx roster.Repository) error {
				Expect(tx.CreateTeam(ctx, &models.Team{Name: "Dolphins", CoachID: carl.ID})).To(Succeed())
				return roster.ErrNotFound
			})
			Expect(err).To(MatchError(roster.ErrNotFound))

			teams, err := repo.ListTeams(ctx, carl.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(teams).To(HaveLen(1))
		})
	})

	Describe("cascades", func() {
		It("drops memberships and team plans with the team", func() {
			plans := repository.NewTrainingPlanGormRepository(db)
			plan := &models.TrainingPlan{Name: "Match", Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), TeamID: &sharks.ID}
			Expect(plans.Create(ctx, plan)).To(Succeed())

			Expect(repo.DeleteTeam(ctx, sharks.ID)).To(Succeed())

			has, err := repo.HasMembership(ctx, jane.ID, sharks.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(has).To(BeFalse())

			_, err = plans.GetForCoach(ctx, carl.ID, plan.ID)
			Expect(err).To(MatchError(training.ErrNotFound))
		})

		It("drops the player account with the athlete", func() {
			accounts := repository.NewAccountGormRepository(db)
			Expect(accounts.CreatePlayerAccount(ctx, &models.Account{
				Email:        "jane@club.io",
				PasswordHash: []byte("h"),
				PasswordSalt: []byte("s"),
				AthleteID:    &jane.ID,
			})).To(Succeed())

			Expect(repo.DeleteAthlete(ctx, jane.ID)).To(Succeed())

			_, err := accounts.FindByEmail(ctx, "jane@club.io")
			Expect(err).To(MatchError(account.ErrNotFound))
		})
	})
})

var _ = Describe("TrainingPlanGormRepository", func() {
	var (
		rosterRepo *repository.RosterGormRepository
		plans      *repository.TrainingPlanGormRepository
		carl       *models.Coach
		sharks     *models.Team
		jane       *models.Athlete
	)

	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	BeforeEach(func() {
		rosterRepo = repository.NewRosterGormRepository(db)
		plans = repository.NewTrainingPlanGormRepository(db)
		carl = newCoach("carl@club.io")

		sharks = &models.Team{Name: "Sharks", CoachID: carl.ID}
		Expect(rosterRepo.CreateTeam(ctx, sharks)).To(Succeed())
		jane = &models.Athlete{FirstName: "Jane", LastName: "Doe"}
		Expect(rosterRepo.CreateAthlete(ctx, jane)).To(Succeed())
		member(rosterRepo, jane.ID, sharks.ID)
	})

	It("enforces exactly one target", func() {
		err := plans.Create(ctx, &models.TrainingPlan{Name: "x", Date: day(1), TeamID: &sharks.ID, AthleteID: &jane.ID})
		Expect(err).To(HaveOccurred())

		err = plans.Create(ctx, &models.TrainingPlan{Name: "x", Date: day(1)})
		Expect(err).To(HaveOccurred())
	})

	It("shows team plans to members from a date on", func() {
		early := &models.TrainingPlan{Name: "Early", Date: day(1), TeamID: &sharks.ID}
		late := &models.TrainingPlan{Name: "Late", Date: day(10), AthleteID: &jane.ID}
		Expect(plans.Create(ctx, late)).To(Succeed())
		Expect(plans.Create(ctx, early)).To(Succeed())

		all, err := plans.ListForAthlete(ctx, jane.ID, training.Filter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))
		Expect(all[0].ID).To(Equal(early.ID))
		Expect(all[0].Team).NotTo(BeNil())

		from := day(10)
		upcoming, err := plans.ListForAthlete(ctx, jane.ID, training.Filter{From: &from})
		Expect(err).NotTo(HaveOccurred())
		Expect(upcoming).To(HaveLen(1))
		Expect(upcoming[0].ID).To(Equal(late.ID))

		coach, err := plans.ListForCoach(ctx, carl.ID, training.Filter{AthleteID: &jane.ID})
		Expect(err).NotTo(HaveOccurred())
		Expect(coach).To(HaveLen(2))
	})
})

var _ = Describe("AuditGormRepository", func() {
	It("pages the coach's trail newest first", func() {
		carl := newCoach("carl@club.io")
		olga := newCoach("olga@club.io")
		logger := audit.New(repository.NewAuditGormRepository(db))

		for _, action := range []string{"team_created", "team_updated", "athlete_created"} {
			logger.Log(ctx, audit.Event{CoachID: carl.ID, Action: action, Entity: audit.EntityTeam})
		}
		logger.Log(ctx, audit.Event{CoachID: olga.ID, Action: "team_created", Entity: audit.EntityTeam})

		logs, total, err := logger.List(ctx, audit.Query{CoachID: carl.ID, Limit: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(BeEquivalentTo(3))
		Expect(logs).To(HaveLen(2))
		Expect(logs[0].Action).To(Equal("athlete_created"))

		logs, total, err = logger.List(ctx, audit.Query{CoachID: carl.ID, Action: "team_created", Limit: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(BeEquivalentTo(1))
		Expect(logs).To(HaveLen(1))
	})
})

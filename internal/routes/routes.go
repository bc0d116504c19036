package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/auth"
	"github.com/BruksfildServices01/coach-crm/internal/config"
	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/domain/roster"
	"github.com/BruksfildServices01/coach-crm/internal/domain/training"
	"github.com/BruksfildServices01/coach-crm/internal/handlers"
	"github.com/BruksfildServices01/coach-crm/internal/metrics"
	"github.com/BruksfildServices01/coach-crm/internal/middleware"
	"github.com/BruksfildServices01/coach-crm/internal/models"
	"github.com/BruksfildServices01/coach-crm/internal/tracing"
	ucAccount "github.com/BruksfildServices01/coach-crm/internal/usecase/account"
	ucAthlete "github.com/BruksfildServices01/coach-crm/internal/usecase/athlete"
	ucCoach "github.com/BruksfildServices01/coach-crm/internal/usecase/coach"
	ucPlayer "github.com/BruksfildServices01/coach-crm/internal/usecase/player"
	ucTeam "github.com/BruksfildServices01/coach-crm/internal/usecase/team"
	ucPlan "github.com/BruksfildServices01/coach-crm/internal/usecase/trainingplan"
	"github.com/BruksfildServices01/coach-crm/internal/validators"
)

// Deps is everything the HTTP layer needs. The repositories are the gorm
// ones in production and in-memory ones in tests.
type Deps struct {
	Config   *config.Config
	Accounts account.Repository
	Roster   roster.Repository
	Plans    training.Repository
	Audit    audit.Store
	Hasher   auth.PasswordHasher
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Ready    handlers.ReadinessCheck
	// Tracer defaults to the global provider.
	Tracer trace.TracerProvider
}

// NewRouter builds a gin engine with the global middleware and every route.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Tracer == nil {
		d.Tracer = otel.GetTracerProvider()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Tracing(d.Tracer, tracing.Propagator()),
		middleware.AccessLog(d.Logger, d.Metrics),
		middleware.CORSMiddleware(d.Config.CORSOrigins),
	)

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// INFRA
	// ======================================================
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	auditLogger := audit.New(d.Audit)
	if d.Metrics != nil {
		auditLogger.OnFailure(d.Metrics.AuditFailures.Inc)
	}

	var domainCheck ucAccount.EmailDomainCheck
	if cfg.VerifyEmailDomain {
		domainCheck = validators.IsEmailDomainValid
	}

	// ======================================================
	// USE CASES: ACCOUNT
	// ======================================================
	loginUC := ucAccount.NewLogin(d.Accounts, d.Hasher, issuer, cfg.RefreshTokenTTL)

	authHandler := handlers.NewAuthHandler(
		ucAccount.NewRegisterCoach(d.Accounts, d.Hasher, domainCheck),
		ucAccount.NewRegisterPlayer(d.Accounts, d.Roster, d.Hasher),
		loginUC,
		ucAccount.NewLoginPlayer(loginUC, d.Roster),
		ucAccount.NewRefresh(d.Accounts, issuer),
		ucAccount.NewLogout(d.Accounts),
		ucAccount.NewChangePassword(d.Accounts, d.Hasher),
		ucAccount.NewGetMe(d.Accounts),
		cfg.CookieDomain,
	)

	// ======================================================
	// USE CASES: ROSTER
	// ======================================================
	athleteHandler := handlers.NewAthleteHandler(
		ucAthlete.NewListAthletes(d.Roster),
		ucAthlete.NewGetAthlete(d.Roster),
		ucAthlete.NewCreateAthlete(d.Roster, auditLogger),
		ucAthlete.NewUpdateAthlete(d.Roster, auditLogger),
		ucAthlete.NewDeleteAthlete(d.Roster, auditLogger),
		ucAthlete.NewAssignToTeam(d.Roster, auditLogger),
		ucAthlete.NewRemoveFromTeam(d.Roster, auditLogger),
	)

	teamHandler := handlers.NewTeamHandler(
		ucTeam.NewListTeams(d.Roster),
		ucTeam.NewMyTeams(d.Roster),
		ucTeam.NewGetTeam(d.Roster),
		ucTeam.NewListTeamAthletes(d.Roster),
		ucTeam.NewCreateTeam(d.Roster, auditLogger),
		ucTeam.NewUpdateTeam(d.Roster, auditLogger),
		ucTeam.NewDeleteTeam(d.Roster, auditLogger),
	)

	// ======================================================
	// USE CASES: TRAINING PLANS
	// ======================================================
	planHandler := handlers.NewTrainingPlanHandler(
		ucPlan.NewListPlans(d.Plans),
		ucPlan.NewUpcoming(d.Plans, cfg.Timezone),
		ucPlan.NewGetPlan(d.Plans),
		ucPlan.NewCreatePlan(d.Plans, d.Roster, auditLogger),
		ucPlan.NewUpdatePlan(d.Plans, d.Roster, auditLogger),
		ucPlan.NewDeletePlan(d.Plans, auditLogger),
	)

	profileHandler := handlers.NewProfileHandler(
		ucCoach.NewGetProfile(d.Roster, d.Accounts),
		ucCoach.NewUpdateProfile(d.Roster, d.Accounts, auditLogger),
		ucPlayer.NewGetProfile(d.Roster, d.Accounts, cfg.Timezone),
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)
	healthHandler := handlers.NewHealthHandler(d.Ready)

	// ======================================================
	// PROBES / METRICS
	// ======================================================
	r.GET("/health", healthHandler.Liveness)
	r.GET("/healthz/liveness", healthHandler.Liveness)
	r.GET("/healthz/readiness", healthHandler.Readiness)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH (public)
		// ------------------------------
		authAPI := api.Group("/auth")
		authAPI.POST("/register", authHandler.Register)
		authAPI.POST("/register-player", authHandler.RegisterPlayer)
		authAPI.POST("/login", authHandler.Login)
		authAPI.POST("/login-player", authHandler.LoginPlayer)
		authAPI.POST("/refresh", authHandler.Refresh)
		authAPI.POST("/logout", authHandler.Logout)

		// ------------------------------
		// AUTHENTICATED (either kind)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(issuer))
		{
			secured.POST("/auth/change-password", authHandler.ChangePassword)
			secured.GET("/auth/me", authHandler.Me)

			secured.GET("/teams/my-teams", teamHandler.MyTeams)

			secured.GET("/trainingplans", planHandler.List)
			secured.GET("/trainingplans/upcoming", planHandler.Upcoming)
			secured.GET("/trainingplans/:id", planHandler.Get)

			secured.GET("/players/me", middleware.RequireKind(models.AccountKindPlayer), profileHandler.GetPlayer)
		}

		// ------------------------------
		// COACH ONLY
		// ------------------------------
		coach := api.Group("/")
		coach.Use(
			middleware.AuthMiddleware(issuer),
			middleware.RequireKind(models.AccountKindCoach),
		)
		{
			coach.GET("/athletes", athleteHandler.List)
			coach.GET("/athletes/:id", athleteHandler.Get)
			coach.POST("/athletes", athleteHandler.Create)
			coach.PUT("/athletes/:id", athleteHandler.Update)
			coach.DELETE("/athletes/:id", athleteHandler.Delete)
			coach.POST("/athletes/:id/teams/:teamId", athleteHandler.AssignTeam)
			coach.DELETE("/athletes/:id/teams/:teamId", athleteHandler.RemoveTeam)

			coach.GET("/teams", teamHandler.List)
			coach.GET("/teams/:id", teamHandler.Get)
			coach.GET("/teams/:id/athletes", teamHandler.Athletes)
			coach.POST("/teams", teamHandler.Create)
			coach.PUT("/teams/:id", teamHandler.Update)
			coach.DELETE("/teams/:id", teamHandler.Delete)

			coach.POST("/trainingplans", planHandler.Create)
			coach.PUT("/trainingplans/:id", planHandler.Update)
			coach.DELETE("/trainingplans/:id", planHandler.Delete)

			coach.GET("/coaches", profileHandler.GetCoach)
			coach.PUT("/coaches", profileHandler.UpdateCoach)

			coach.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Route not found."})
	})
}

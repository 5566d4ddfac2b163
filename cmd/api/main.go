package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/placementflow/placementflow-backend/internal/config"
	"github.com/placementflow/placementflow-backend/internal/database"
	"github.com/placementflow/placementflow-backend/internal/handlers"
	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/repos"
	"github.com/placementflow/placementflow-backend/internal/server"
	"github.com/placementflow/placementflow-backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	lg, err := logger.New(getLogMode())
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()

	cfg := config.Load(lg)

	db, err := database.Connect(cfg, lg)
	if err != nil {
		lg.Fatal("Database connection failed", "error", err)
	}

	userRepo := repos.NewUserRepo(db, lg)
	profileRepo := repos.NewProfileRepo(db, lg)
	skillsRepo := repos.NewSkillsRepo(db, lg)
	jobRepo := repos.NewJobRepo(db, lg)
	sessionRepo := repos.NewChatSessionRepo(db, lg)
	inputRepo := repos.NewChatInputRepo(db, lg)
	outputRepo := repos.NewChatOutputRepo(db, lg)
	requestRepo := repos.NewGenerationRequestRepo(db, lg)
	coverLetterRepo := repos.NewCoverLetterRepo(db, lg)
	creditsRepo := repos.NewUserCreditsRepo(db, lg)
	trackingRepo := repos.NewTrackingRepo(db, lg)
	aiCallLogRepo := repos.NewAICallLogRepo(db, lg)

	llm, err := services.NewLLMService(lg, cfg)
	if err != nil {
		lg.Fatal("LLM client init failed", "error", err)
	}
	tokens := services.NewTokenCounter(lg)
	usage := services.NewUsageRecorder(lg, aiCallLogRepo)

	var answerGate, coverLetterGate services.Gate
	switch cfg.QuotaPolicy {
	case config.QuotaPolicyBalance:
		answerGate = services.NewBalanceGate(lg, creditsRepo, repos.CreditColumnResolveAI)
		coverLetterGate = services.NewBalanceGate(lg, creditsRepo, repos.CreditColumnCoverLetter)
	default:
		answerGate = services.NewCountingGate(lg, func(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
			return sessionRepo.CountInputsForUserBetween(ctx, nil, userID, from, to)
		}, cfg.AnswerDailyLimit)
		coverLetterGate = services.NewCountingGate(lg, func(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
			return requestRepo.CountForUserBetween(ctx, nil, userID, from, to)
		}, cfg.CoverLetterDailyLimit)
	}

	authSvc := services.NewAuthService(lg, &cfg, db, userRepo, creditsRepo)
	profileSvc := services.NewProfileService(lg, profileRepo, skillsRepo, creditsRepo)
	jobSvc := services.NewJobService(lg, jobRepo)
	sessionSvc := services.NewSessionService(lg, sessionRepo, inputRepo, outputRepo, jobRepo)
	trackingSvc := services.NewTrackingService(lg, trackingRepo, jobRepo)
	genSvc := services.NewGenerationService(
		lg, llm, tokens, usage, answerGate, coverLetterGate,
		sessionRepo, inputRepo, outputRepo, requestRepo, coverLetterRepo,
		profileRepo, skillsRepo, jobRepo,
	)

	router := server.NewRouter(&server.RouterConfig{
		Log:               lg,
		Cfg:               &cfg,
		Auth:              authSvc,
		AuthHandler:       handlers.NewAuthHandler(lg, authSvc),
		JobHandler:        handlers.NewJobHandler(lg, jobSvc),
		GenerationHandler: handlers.NewGenerationHandler(lg, genSvc, profileSvc),
		SessionHandler:    handlers.NewSessionHandler(lg, sessionSvc),
		ProfileHandler:    handlers.NewProfileHandler(lg, profileSvc),
		TrackingHandler:   handlers.NewTrackingHandler(lg, trackingSvc),
	})

	lg.Info("Starting server", "port", cfg.Port, "quota_policy", cfg.QuotaPolicy)
	if err := router.Run(":" + cfg.Port); err != nil {
		lg.Fatal("Server stopped", "error", err)
	}
}

func getLogMode() string {
	if mode := os.Getenv("LOG_MODE"); mode != "" {
		return mode
	}
	return "development"
}

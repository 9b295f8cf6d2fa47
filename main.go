package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"aeon/adapters/memledger"
	"aeon/adapters/memstore"
	"aeon/adapters/postgres"
	"aeon/ai"
	"aeon/app"
	"aeon/internal/config"
	"aeon/internal/errors"
	"aeon/models"
	"aeon/ports"
	"aeon/ui"
)

func main() {
	// Load .env file if present; environment variables take precedence
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] No .env file found, using environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] Configuration error: %v", err)
	}

	bank, err := loadQuestionBank(appConfig)
	if err != nil {
		log.Fatalf("[Main] Question bank error: %v", err)
	}
	log.Printf("[Main] Loaded question bank with %d questions", bank.Size())

	ledger := initLedger(appConfig)
	store := memstore.New(appConfig.Session.TTL)

	sessions := app.NewSessionService(store, bank, ledger)
	profiles := app.NewProfileService(store, bank, initEnricher(appConfig))

	server, err := ui.NewApp(ui.Config{
		Port:    appConfig.Server.Port,
		GinMode: appConfig.Server.GinMode,
	}, sessions, profiles, ledger)
	if err != nil {
		log.Fatalf("[Main] Server setup error: %v", err)
	}

	if err := server.Start(); err != nil {
		log.Fatalf("[Main] Server error: %v", err)
	}
}

// loadQuestionBank reads the pool from QUESTIONS_FILE or falls back to the
// built-in ten questions
func loadQuestionBank(appConfig *config.Config) (*models.QuestionBank, error) {
	if appConfig.Data.QuestionsFile == "" {
		return models.DefaultQuestionBank(), nil
	}
	bank, err := models.LoadQuestionBank(appConfig.Data.QuestionsFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load questions file")
	}
	return bank, nil
}

// initLedger picks the PostgreSQL audit ledger when DATABASE_URL is set and
// the in-memory one otherwise. A broken database connection downgrades to
// memory rather than aborting startup.
func initLedger(appConfig *config.Config) ports.AuditLedger {
	if appConfig.Database.URL == "" {
		log.Printf("[Main] No DATABASE_URL configured, audit log kept in memory")
		return memledger.New()
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		log.Printf("[Main] Database connection failed, audit log kept in memory: %v", err)
		return memledger.New()
	}
	ledger, err := postgres.NewAuditLedger(db)
	if err != nil {
		log.Printf("[Main] Audit schema setup failed, audit log kept in memory: %v", err)
		return memledger.New()
	}
	log.Printf("[Main] Audit log persisted to PostgreSQL")
	return ledger
}

// initEnricher returns the OpenAI-backed enricher, or nil when no API key
// is configured; all profile output is then computed locally
func initEnricher(appConfig *config.Config) ports.Enricher {
	aiConfig := &models.AIConfig{
		OpenAIKey:     appConfig.AI.OpenAIKey,
		OpenAIModel:   appConfig.AI.OpenAIModel,
		SystemContext: appConfig.AI.SystemContext,
		MaxTokens:     appConfig.AI.MaxTokens,
		Temperature:   appConfig.AI.Temperature,
		Timeout:       appConfig.AI.Timeout,
	}
	if !aiConfig.Enabled() {
		log.Printf("[Main] No OPENAI_API_KEY configured, profile enrichment disabled")
		return nil
	}
	log.Printf("[Main] Profile enrichment enabled with model %s", aiConfig.OpenAIModel)
	return ai.NewAeonEnricher(aiConfig)
}

package ui

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"aeon/adapters/excel"
	"aeon/app"
	"aeon/models"
	"aeon/ports"
)

// App is the public JSON API with the admin dashboard mounted under /admin
type App struct {
	router   *chi.Mux
	sessions *app.SessionService
	profiles *app.ProfileService
	ledger   ports.AuditLedger
	bank     *models.QuestionBank
	trivia   *triviaResults
	port     string
}

// Config holds HTTP server configuration
type Config struct {
	Port    string
	GinMode string
}

// NewApp wires the router over the session and profile services
func NewApp(config Config, sessions *app.SessionService, profiles *app.ProfileService, ledger ports.AuditLedger) (*App, error) {
	a := &App{
		router:   chi.NewRouter(),
		sessions: sessions,
		profiles: profiles,
		ledger:   ledger,
		bank:     sessions.Bank(),
		trivia:   newTriviaResults(),
		port:     config.Port,
	}

	a.setupMiddleware()
	a.setupRoutes()

	admin, err := newAdminServer(config.GinMode, sessions, ledger, excel.NewSessionExporter(a.bank))
	if err != nil {
		return nil, err
	}
	a.router.Mount("/admin", admin.Handler())

	return a, nil
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	// Session lifecycle
	a.router.Post("/session", a.handleCreateSession)
	a.router.Get("/session/{token}", a.handleGetSession)
	a.router.Post("/session/{token}/answer", a.handleSaveAnswer)
	a.router.Post("/session/{token}/complete", a.handleCompleteSession)
	a.router.Get("/result/{token}", a.handleResult)
	a.router.Get("/stats", a.handleStats)

	// AEON interview flow
	a.router.Post("/aeon/question/{token}", a.handleNextQuestion)
	a.router.Post("/aeon/glyph/{token}", a.handleGlyph)
	a.router.Post("/aeon/summary/{token}", a.handleSummary)
	a.router.Post("/aeon/task/{token}", a.handleTask)

	// Token-less endpoints kept for older clients
	a.router.Post("/aeon/question", a.handleLegacyQuestion)
	a.router.Post("/aeon/glyph", a.handleLegacyGlyph)
	a.router.Post("/aeon/summary", a.handleLegacySummary)
	a.router.Post("/aeon/task", a.handleLegacyTask)

	// Static trivia quiz kept for backward compatibility
	a.router.Get("/test/{id}", a.handleGetTest)
	a.router.Post("/test/{id}/submit", a.handleSubmitTest)
	a.router.Post("/test/{id}/autosave", a.handleAutosaveTest)
	a.router.Get("/testresult/{id}", a.handleTestResult)
}

// Handler exposes the router for tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server on the configured port
func (a *App) Start() error {
	addr := ":" + a.port
	log.Printf("[UI] Starting AEON server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

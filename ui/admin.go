package ui

import (
	"embed"
	"encoding/csv"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"

	"aeon/adapters/excel"
	"aeon/app"
	"aeon/domain/scoring"
	"aeon/internal/analytics"
	"aeon/models"
	"aeon/ports"
)

//go:embed templates/admin/*.html
var adminTemplates embed.FS

// adminServer is the HTML dashboard for operators, served under /admin
type adminServer struct {
	engine   *gin.Engine
	sessions *app.SessionService
	ledger   ports.AuditLedger
	exporter *excel.SessionExporter
}

func newAdminServer(mode string, sessions *app.SessionService, ledger ports.AuditLedger, exporter *excel.SessionExporter) (*adminServer, error) {
	if mode != "" {
		gin.SetMode(mode)
	}

	funcMap := template.FuncMap{
		"mulpct": func(v float64) float64 { return v * 100 },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(adminTemplates, "templates/admin/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse admin templates: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.SetHTMLTemplate(templates)

	s := &adminServer{
		engine:   engine,
		sessions: sessions,
		ledger:   ledger,
		exporter: exporter,
	}
	s.setupRoutes()
	return s, nil
}

// Handler returns the engine for mounting. Routes carry the /admin prefix
// themselves; the parent router passes the path through unchanged.
func (s *adminServer) Handler() http.Handler {
	return s.engine
}

func (s *adminServer) setupRoutes() {
	admin := s.engine.Group("/admin")
	admin.GET("", s.handleSessions)
	admin.GET("/session/:token", s.handleSessionDetail)
	admin.POST("/session/:token/delete", s.handleDeleteSession)
	admin.GET("/stats", s.handleStats)
	admin.GET("/log", s.handleLog)
	admin.GET("/export/sessions", s.handleExportSessionsCSV)
	admin.GET("/export/sessions.xlsx", s.handleExportSessionsXLSX)
	admin.GET("/export/log", s.handleExportLogCSV)
}

type sessionRow struct {
	Token       string
	CreatedAt   string
	Completed   bool
	Answers     int
	RawAnswers  int
	Performance int
}

func (s *adminServer) sessionRows() []sessionRow {
	sessions := s.sessions.Sessions()
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	bank := s.sessions.Bank()
	rows := make([]sessionRow, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, sessionRow{
			Token:       session.Token,
			CreatedAt:   session.CreatedAt.Format("2006-01-02 15:04:05"),
			Completed:   session.IsCompleted(),
			Answers:     session.AnsweredCount(),
			RawAnswers:  session.RawAnswerCount(),
			Performance: scoring.PerformanceScore(session.AnswersSnapshot(), bank),
		})
	}
	return rows
}

func (s *adminServer) handleSessions(c *gin.Context) {
	c.HTML(http.StatusOK, "sessions.html", gin.H{
		"Sessions": s.sessionRows(),
	})
}

// handleSessionDetail renders any stored session, expired ones included
func (s *adminServer) handleSessionDetail(c *gin.Context) {
	token := c.Param("token")
	for _, session := range s.sessions.Sessions() {
		if session.Token == token {
			s.renderSessionDetail(c, session)
			return
		}
	}
	c.String(http.StatusNotFound, "session not found")
}

type answerRow struct {
	QuestionID string
	Question   string
	Answer     string
	Score      int
}

func (s *adminServer) renderSessionDetail(c *gin.Context, session *models.Session) {
	bank := s.sessions.Bank()
	answers := session.AnswersSnapshot()

	rows := make([]answerRow, 0, len(answers))
	for _, questionID := range session.QuestionOrderSnapshot() {
		text, ok := answers[questionID]
		if !ok {
			continue
		}
		question, _ := bank.ByID(questionID)
		rows = append(rows, answerRow{
			QuestionID: questionID,
			Question:   question.Text,
			Answer:     text,
			Score:      scoring.Score(text, question.Keywords).Score,
		})
	}

	elapsed := time.Now().UTC().Sub(session.CreatedAt)
	summaryMD := scoring.BuildSummary(answers, bank, elapsed)
	summaryHTML := template.HTML(markdown.ToHTML([]byte(summaryMD), nil, nil))

	c.HTML(http.StatusOK, "session_detail.html", gin.H{
		"Token":       session.Token,
		"CreatedAt":   session.CreatedAt.Format("2006-01-02 15:04:05"),
		"Completed":   session.IsCompleted(),
		"Performance": scoring.PerformanceScore(answers, bank),
		"Glyph":       scoring.ComputeGlyphProfile(answers, bank),
		"Answers":     rows,
		"Summary":     summaryHTML,
	})
}

func (s *adminServer) handleDeleteSession(c *gin.Context) {
	s.sessions.Delete(c.Request.Context(), c.Param("token"))
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (s *adminServer) handleStats(c *gin.Context) {
	sessions := s.sessions.Sessions()
	completed := 0
	totalAnswers := 0
	for _, session := range sessions {
		if session.IsCompleted() {
			completed++
		}
		totalAnswers += session.AnsweredCount()
	}

	dist, err := analytics.AnalyzeScores(sessions, s.sessions.Bank())
	if err != nil {
		log.Printf("[Admin] Failed to analyze score distribution: %v", err)
	}

	c.HTML(http.StatusOK, "stats.html", gin.H{
		"Total":        len(sessions),
		"Completed":    completed,
		"Active":       len(sessions) - completed,
		"TotalAnswers": totalAnswers,
		"Distribution": dist,
	})
}

func (s *adminServer) handleLog(c *gin.Context) {
	events, err := s.ledger.All(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to read audit log")
		return
	}

	// Newest first
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	c.HTML(http.StatusOK, "log.html", gin.H{"Events": events})
}

func (s *adminServer) handleExportSessionsCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=sessions.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write([]string{"token", "created_at", "completed", "answers", "raw_answers", "performance_score"})
	for _, row := range s.sessionRows() {
		_ = writer.Write([]string{
			row.Token,
			row.CreatedAt,
			fmt.Sprintf("%t", row.Completed),
			fmt.Sprintf("%d", row.Answers),
			fmt.Sprintf("%d", row.RawAnswers),
			fmt.Sprintf("%d", row.Performance),
		})
	}
}

func (s *adminServer) handleExportSessionsXLSX(c *gin.Context) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+excel.Filename(time.Now().UTC()))

	if err := s.exporter.WriteWorkbook(c.Writer, s.sessions.Sessions()); err != nil {
		log.Printf("[Admin] Failed to write sessions workbook: %v", err)
	}
}

func (s *adminServer) handleExportLogCSV(c *gin.Context) {
	events, err := s.ledger.All(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to read audit log")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=log.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write([]string{"time", "action", "details"})
	for _, event := range events {
		_ = writer.Write([]string{
			event.Time.Format(time.RFC3339),
			event.Action,
			fmt.Sprintf("%v", map[string]interface{}(event.Details)),
		})
	}
}

package excel

import (
	"fmt"
	"io"
	"time"

	"aeon/domain/scoring"
	"aeon/internal/errors"
	"aeon/models"

	"github.com/xuri/excelize/v2"
)

const sessionsSheet = "Sessions"

// SessionExporter writes session rollups as an Excel workbook for the
// admin export endpoint
type SessionExporter struct {
	bank *models.QuestionBank
}

// NewSessionExporter creates an exporter bound to the question bank
func NewSessionExporter(bank *models.QuestionBank) *SessionExporter {
	return &SessionExporter{bank: bank}
}

// WriteWorkbook renders one row per session into an xlsx workbook
func (e *SessionExporter) WriteWorkbook(w io.Writer, sessions []*models.Session) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sessionsSheet)
	if err != nil {
		return errors.Wrap(err, "failed to create sessions sheet")
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Token", "Created At", "Last Activity", "Completed", "Questions Asked", "Questions Answered", "Raw Answers", "Performance Score"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return errors.Wrap(err, "failed to compute header cell")
		}
		if err := f.SetCellValue(sessionsSheet, cell, header); err != nil {
			return errors.Wrap(err, "failed to write header cell")
		}
	}

	for i, session := range sessions {
		row := []interface{}{
			session.Token,
			session.CreatedAt.Format(time.RFC3339),
			session.LastActivity().Format(time.RFC3339),
			session.IsCompleted(),
			session.AskedCount(),
			session.AnsweredCount(),
			session.RawAnswerCount(),
			scoring.PerformanceScore(session.AnswersSnapshot(), e.bank),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "failed to compute row cell")
		}
		if err := f.SetSheetRow(sessionsSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "failed to write session row %d", i+1)
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}

// Filename returns a timestamped attachment name for the export
func Filename(now time.Time) string {
	return fmt.Sprintf("sessions_%s.xlsx", now.Format("20060102_150405"))
}

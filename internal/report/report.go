package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/quizsmith/backend/internal/exam"
)

// GeneratePDF renders a one-page score report for a graded attempt.
func GeneratePDF(at exam.Attempt) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, "Quiz Score Report", "", 1, "C", false, 0, "")

	subtitle := "Generated Practice Quiz"
	if at.Subject != "" {
		subtitle = at.Subject + " | " + at.Difficulty
	}
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 9, subtitle, "", 1, "C", false, 0, "")

	status := "NOT PASSED"
	if at.Passed {
		status = "PASSED"
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("Result: %s | Score: %d/%d (%.0f%%) | Date: %s",
			status, at.Score, at.Total, pct(at.Score, at.Total), at.CreatedAt.Format("2006-01-02")),
		"", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Question Breakdown", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(118, 7, "Question", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Yours", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 7, "Correct", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 7, "Result", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range at.Results {
		given := row.Given
		if given == "" {
			given = "-"
		}
		outcome := "wrong"
		if row.Correct {
			outcome = "right"
		}
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(118, 7, clip(row.Question, 78), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, given, "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 7, row.Expected, "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 7, outcome, "1", 1, "C", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Attempt ID: "+at.ID, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pct(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) * 100 / float64(b)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

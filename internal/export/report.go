package export

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"

	"gridsynth/internal/model"
)

// BuildSummaryPDF renders a one-page run summary for a generated dataset.
func BuildSummaryPDF(title string, points []model.EnergyDataPoint) ([]byte, error) {
	s := Summarize(points)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, title)
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format(time.RFC3339)))
	pdf.Ln(8)

	rows := [][2]string{
		{"Data points", fmt.Sprintf("%d", s.Points)},
		{"Nodes", fmt.Sprintf("%d", s.Nodes)},
		{"Total kWh", fmt.Sprintf("%.1f", s.TotalKWh)},
		{"Average kWh", fmt.Sprintf("%.2f", s.AverageKWh)},
		{"Anomalies", fmt.Sprintf("%d (%.1f%%)", s.Anomalies, s.AnomalyShare*100)},
	}
	if s.Points > 0 {
		rows = append(rows,
			[2]string{"From", s.Start.Format(time.RFC3339)},
			[2]string{"To", s.End.Format(time.RFC3339)},
		)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 6, "Metric", "1", 0, "L", false, 0, "")
	pdf.CellFormat(80, 6, "Value", "1", 0, "L", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(60, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 6, row[1], "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteSummaryPDF writes the run summary report to path.
func WriteSummaryPDF(path, title string, points []model.EnergyDataPoint) error {
	b, err := BuildSummaryPDF(title, points)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

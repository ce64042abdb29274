package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gridsynth/internal/model"
)

// BuildWorkbook renders data points as an XLSX workbook with a data
// sheet and a summary sheet.
func BuildWorkbook(points []model.EnergyDataPoint) (*excelize.File, error) {
	f := excelize.NewFile()
	dataSheet := "data"
	summarySheet := "summary"
	f.SetSheetName("Sheet1", dataSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("creating summary sheet: %w", err)
	}

	for i, col := range StandardHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(dataSheet, cell, col); err != nil {
			return nil, err
		}
	}

	for rowIdx, p := range points {
		values := []interface{}{
			p.DataID, p.NodeID, p.KWh, p.Location, p.Timestamp,
			p.Hour, p.DayOfWeek, p.Month, string(p.PatternType), p.Anomaly,
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(dataSheet, cell, v); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", rowIdx+2, err)
			}
		}
	}

	s := Summarize(points)
	summary := [][]interface{}{
		{"Data points", s.Points},
		{"Nodes", s.Nodes},
		{"Total kWh", s.TotalKWh},
		{"Average kWh", s.AverageKWh},
		{"Anomalies", s.Anomalies},
		{"Anomaly share", s.AnomalyShare},
	}
	for i, row := range summary {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), row[0])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), row[1])
	}

	return f, nil
}

// WriteXLSX exports points to an XLSX file at path.
func WriteXLSX(path string, points []model.EnergyDataPoint) error {
	f, err := BuildWorkbook(points)
	if err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return f.Close()
}

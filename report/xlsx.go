// Package report exports a prediction as a workbook or a chart image.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/angas/solara-go/dataset"
	"github.com/angas/solara-go/hours"
	"github.com/angas/solara-go/predict"
	"github.com/xuri/excelize/v2"
)

const (
	HourlySheet  = "Pronostico"
	SummarySheet = "Resumen"
	DatasetSheet = "Datos"
)

var hourlyHeader = []any{"Hora", "UV", "Ozono (µg/m³)", "Precipitación (mm)", "Tendencia LSTM", "Fecha y hora"}

// WriteXLSX writes the hourly table and a summary sheet.
func WriteXLSX(w io.Writer, p *predict.Prediction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", HourlySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := setRow(f, HourlySheet, 1, hourlyHeader); err != nil {
		return err
	}
	day := hours.Day(p.Date)
	for i, h := range p.Hours {
		dh := day[h.Hour]
		row := []any{dh.Label(), h.UV, h.Ozone, h.Precipitation, h.LSTMTrend, dh.IsoString()}
		if err := setRow(f, HourlySheet, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(HourlySheet, "A1", "F1", bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetColWidth(HourlySheet, "A", "F", 18); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	for i, row := range summaryRows(p) {
		if err := setRow(f, SummarySheet, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SummarySheet, "A1", fmt.Sprintf("A%d", len(summaryRows(p))), bold); err != nil {
		return fmt.Errorf("summary style: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "A", "B", 24); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteDatasetXLSX writes a dataset as a workbook that Parse reads back,
// readings are stored as numbers.
func WriteDatasetXLSX(w io.Writer, ds *dataset.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DatasetSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, row := range ds.Rows() {
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
			if i == 0 || j == ds.Columns.Date {
				continue
			}
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				values[j] = n
			}
		}
		if err := setRow(f, DatasetSheet, i+1, values); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func summaryRows(p *predict.Prediction) [][]any {
	m := p.Metrics
	return [][]any{
		{"Fecha", p.Date},
		{"UV máximo", p.UVMax},
		{"Ozono diario (µg/m³)", p.OzoneDay},
		{"Precipitación diaria (mm)", p.PrecipitationDay},
		{"Nivel de riesgo", p.Risk.Level},
		{"MAE UV", m.MaeUV},
		{"RMSE UV", m.RmseUV},
		{"R² UV", m.R2UV},
		{"MAE Ozono", m.MaeOzone},
		{"RMSE Ozono", m.RmseOzone},
		{"R² Ozono", m.R2Ozone},
		{"MAE Precipitación", m.MaePrecipitation},
		{"RMSE Precipitación", m.RmsePrecipitation},
		{"R² Precipitación", m.R2Precipitation},
		{"Precisión LSTM", m.LSTMAccuracy},
		{"Registros históricos", p.Basis.Records},
		{"Generado", hours.FormatTimeInGuiTimezone(p.Created)},
	}
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

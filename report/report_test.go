package report

import (
	"bytes"
	"image/png"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/angas/solara-go/dataset"
	"github.com/angas/solara-go/predict"
	"github.com/xuri/excelize/v2"
)

func testPrediction() *predict.Prediction {
	return &predict.Prediction{
		ID:               "c0ffee",
		Date:             "2025-03-01",
		UVMax:            9.4,
		OzoneDay:         44,
		PrecipitationDay: 3.2,
		Hours:            predict.Hourly(9.4, 44, 3.2, 9),
		Metrics:          predict.Metrics{MaeUV: 33, LSTMAccuracy: 0.91},
		Risk:             predict.Risk(9.4),
		Basis:            predict.Basis{Records: 30},
		Created:          time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, testPrediction()); err != nil {
		t.Fatalf("WriteXLSX() unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() unexpected error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(HourlySheet)
	if err != nil {
		t.Fatalf("GetRows(%s) unexpected error: %v", HourlySheet, err)
	}
	if len(rows) != 25 {
		t.Fatalf("got %d hourly rows, wanted 25", len(rows))
	}
	if rows[0][0] != "Hora" || rows[13][0] != "12:00" || rows[13][1] != "9.4" || rows[13][5] != "2025-03-01T12:00:00" {
		t.Errorf("unexpected hourly rows: %v / %v", rows[0], rows[13])
	}

	summary, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("GetRows(%s) unexpected error: %v", SummarySheet, err)
	}
	found := map[string]string{}
	for _, row := range summary {
		if len(row) == 2 {
			found[row[0]] = row[1]
		}
	}
	tests := map[string]string{
		"Fecha":                "2025-03-01",
		"Nivel de riesgo":      "Muy Alto",
		"MAE UV":               "33",
		"Registros históricos": "30",
	}
	for key, want := range tests {
		if found[key] != want {
			t.Errorf("summary %q got %q, wanted %q", key, found[key], want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, testPrediction()); err != nil {
		t.Fatalf("WritePNG() unexpected error: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() unexpected error: %v", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() <= b.Dx() {
		t.Errorf("unexpected image bounds %v", b)
	}
}

func TestWriteDatasetXLSX(t *testing.T) {
	ds := dataset.Sample(rand.New(rand.NewPCG(3, 4)), dataset.SampleStart, 10)

	var buf bytes.Buffer
	if err := WriteDatasetXLSX(&buf, ds); err != nil {
		t.Fatalf("WriteDatasetXLSX() unexpected error: %v", err)
	}

	back, err := dataset.Parse(&buf, "muestra.xlsx")
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if back.Len() != 10 {
		t.Fatalf("got %d records, wanted 10", back.Len())
	}
	for i, r := range back.Records {
		want := ds.Records[i]
		if r.Date != want.Date || r.UV.Value() != want.UV.Value() ||
			r.O3.Value() != want.O3.Value() || r.PP.Value() != want.PP.Value() {
			t.Errorf("record %d got %+v, wanted %+v", i, r, want)
		}
	}
}

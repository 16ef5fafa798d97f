package www

import (
	"time"

	"github.com/angas/solara-go/dataset"
	"github.com/angas/solara-go/hours"
	"github.com/angas/solara-go/predict"
	"github.com/angas/solara-go/workspace"
)

const previewRows = 10

type statusView struct {
	HasData    bool
	Name       string
	Records    int
	LoadedAt   time.Time
	Prediction *predict.Prediction
	Version    string
}

func newStatusView(snap workspace.Snapshot, version string) statusView {
	v := statusView{
		HasData:    snap.HasData(),
		Records:    snap.Dataset.Len(),
		Prediction: snap.Prediction,
		Version:    version,
	}
	if snap.Dataset != nil {
		v.Name = snap.Dataset.Name
		v.LoadedAt = snap.Dataset.LoadedAt
	}
	return v
}

type datasetView struct {
	Flashes    []Flash
	Error      string
	HasData    bool
	Dataset    *dataset.Dataset
	Stats      []dataset.Stats
	Preview    []dataset.Record
	FirstDate  time.Time
	LastDate   time.Time
	MaxUpload  int64
	SampleDays int
}

func newDatasetView(snap workspace.Snapshot, maxUpload int64, sampleDays int) datasetView {
	v := datasetView{
		HasData:    snap.HasData(),
		Dataset:    snap.Dataset,
		MaxUpload:  maxUpload,
		SampleDays: sampleDays,
	}
	if !v.HasData {
		return v
	}
	for _, variable := range dataset.Variables {
		v.Stats = append(v.Stats, snap.Summary.Of(variable))
	}
	v.Preview = snap.Dataset.Records[:min(previewRows, len(snap.Dataset.Records))]
	v.FirstDate = snap.Dataset.FirstDate()
	v.LastDate = snap.Dataset.LastDate()
	return v
}

type predictionView struct {
	Flashes  []Flash
	Error    string
	HasData  bool
	Records  int
	Date     string
	MinDate  string
	Today    string
	LongDate string
}

type resultsView struct {
	Flashes    []Flash
	Error      string
	Prediction *predict.Prediction
	Peak       predict.Hour
	LongDate   string
	Daylight   []predict.Hour
}

func newResultsView(p *predict.Prediction, flashes []Flash) resultsView {
	v := resultsView{Flashes: flashes, Prediction: p}
	if p == nil {
		return v
	}
	v.Peak = p.Peak()
	v.LongDate = hours.LongDate(p.Day)
	for _, h := range p.Hours {
		if h.UV > 0 {
			v.Daylight = append(v.Daylight, h)
		}
	}
	return v
}

// Package workspace keeps the loaded dataset and the latest prediction in
// memory. Nothing survives a restart.
package workspace

import (
	"errors"
	"sync"

	"github.com/angas/solara-go/dataset"
	"github.com/angas/solara-go/predict"
)

// ErrStale is returned when a prediction was made from a dataset that has
// since been replaced.
var ErrStale = errors.New("dataset changed during prediction")

type Snapshot struct {
	Dataset    *dataset.Dataset
	Summary    dataset.Summary
	Prediction *predict.Prediction
	Version    uint64

	// DatasetVersion only moves when a new dataset is set
	DatasetVersion uint64
}

func (s Snapshot) HasData() bool {
	return s.Dataset.Len() > 0
}

type Workspace struct {
	mu         sync.RWMutex
	ds         *dataset.Dataset
	summary    dataset.Summary
	prediction *predict.Prediction
	version    uint64
	dsVersion  uint64
	changes    chan struct{}
}

func New() *Workspace {
	return &Workspace{
		summary: dataset.Summarize(nil),
		changes: make(chan struct{}, 1),
	}
}

// SetDataset replaces the dataset, the previous prediction no longer applies.
func (w *Workspace) SetDataset(ds *dataset.Dataset) {
	w.mu.Lock()
	w.ds = ds
	w.summary = dataset.Summarize(ds)
	w.prediction = nil
	w.version++
	w.dsVersion++
	w.mu.Unlock()
	w.notify()
}

func (w *Workspace) Dataset() *dataset.Dataset {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ds
}

func (w *Workspace) Summary() dataset.Summary {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.summary
}

// SetPrediction stores p only if the dataset it was computed from, identified
// by the snapshot's DatasetVersion, is still the current one.
func (w *Workspace) SetPrediction(datasetVersion uint64, p *predict.Prediction) error {
	w.mu.Lock()
	if datasetVersion != w.dsVersion {
		w.mu.Unlock()
		return ErrStale
	}
	w.prediction = p
	w.version++
	w.mu.Unlock()
	w.notify()
	return nil
}

func (w *Workspace) Prediction() *predict.Prediction {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.prediction
}

func (w *Workspace) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return Snapshot{
		Dataset:    w.ds,
		Summary:    w.summary,
		Prediction: w.prediction,
		Version:    w.version,

		DatasetVersion: w.dsVersion,
	}
}

// Changes is signalled after every update. Signals coalesce, a reader
// that falls behind sees one pending signal, not one per update.
func (w *Workspace) Changes() <-chan struct{} {
	return w.changes
}

func (w *Workspace) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

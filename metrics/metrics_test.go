package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveUpload(t *testing.T) {
	c := NewCollector("test")

	c.ObserveUpload(ResultOK, 20*time.Millisecond, 30)
	c.ObserveUpload(ResultMissingColumns, 5*time.Millisecond, 0)
	c.ObserveUpload(ResultOK, 10*time.Millisecond, 12)

	if got := testutil.ToFloat64(c.UploadsTotal.WithLabelValues(ResultOK)); got != 2 {
		t.Errorf("ok uploads got %v, wanted 2", got)
	}
	if got := testutil.ToFloat64(c.UploadsTotal.WithLabelValues(ResultMissingColumns)); got != 1 {
		t.Errorf("missing column uploads got %v, wanted 1", got)
	}
	if got := testutil.ToFloat64(c.LoadedRecords); got != 12 {
		t.Errorf("loaded records got %v, wanted 12", got)
	}
}

func TestObservePrediction(t *testing.T) {
	c := NewCollector("test")

	c.ObservePrediction(ResultOK, 9.3)
	c.ObservePrediction(ResultNoData, 0)

	if got := testutil.ToFloat64(c.PredictedUVMax); got != 9.3 {
		t.Errorf("uv max got %v, wanted 9.3", got)
	}
	if got := testutil.ToFloat64(c.PredictionsTotal.WithLabelValues(ResultNoData)); got != 1 {
		t.Errorf("no data predictions got %v, wanted 1", got)
	}
}

func TestHandler(t *testing.T) {
	c := NewCollector("test")
	c.ObserveRequest("/dataset", "POST", "200", time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		`test_http_requests_total{method="POST",route="/dataset",status="200"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output lacks %q", want)
		}
	}
}

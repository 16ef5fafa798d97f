package www

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/angas/solara-go/config"
	"github.com/angas/solara-go/database"
	"github.com/angas/solara-go/metrics"
	"github.com/angas/solara-go/predict"
	"github.com/angas/solara-go/workspace"
	"github.com/angas/solara-go/www/chartjs"
	ws "github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/xuri/excelize/v2"
)

const futureDate = "2099-06-15"

type fakeLog struct {
	entries []database.LogEntryRow
	minLvl  slog.Level
	page    int
}

func (f *fakeLog) GetLogEntries(ctx context.Context, minLvl slog.Level, page, pageSize int) ([]database.LogEntryRow, error) {
	f.minLvl = minLvl
	f.page = page
	start := (page - 1) * pageSize
	if start >= len(f.entries) {
		return nil, nil
	}
	return f.entries[start:min(start+pageSize, len(f.entries))], nil
}

func (f *fakeLog) CountLogEntries(ctx context.Context, minLvl slog.Level) (int, error) {
	return len(f.entries), nil
}

func (f *fakeLog) Path() string      { return "test.db" }
func (f *fakeLog) BackupDir() string { return "backup" }

func (f *fakeLog) Version(ctx context.Context) (int, error) {
	return 2, nil
}

type testEnv struct {
	server *Server
	ws     *workspace.Workspace
	mc     *metrics.Collector
	log    *fakeLog
	// Cookies returned by the last request, sent with the next one
	cookies []*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	maxUploadMb := 1
	cnfg := &config.AppConfig{}
	cnfg.Api.MaxUploadMb = &maxUploadMb

	seed := uint64(7)
	env := &testEnv{
		ws:  workspace.New(),
		mc:  metrics.NewCollector("test"),
		log: &fakeLog{},
	}
	predictor := predict.New(predict.NewRand(&seed), false)

	s, err := NewServer(cnfg, env.log, env.ws, predictor, env.mc, predict.NewRand(&seed), "1.2.3")
	if err != nil {
		t.Fatalf("NewServer() unexpected error: %v", err)
	}
	env.server = s
	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		e.cookies = cookies
	}
	return rec
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func (e *testEnv) postForm(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func (e *testEnv) upload(t *testing.T, field, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	} else if err := mw.WriteField("comment", "sin archivo"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/dataset", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(t, req)
}

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

var validRows = [][]any{
	{"Fecha", "Radiación UV", "Ozono", "Precipitacion (mm)"},
	{"2024-01-01", 8.0, 40, 2.0},
	{"2024-01-02", "", 44, 1.0},
	{"2024-01-03", 10.0, 48, 0.0},
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("got status %d, wanted %d, body: %s", rec.Code, status, rec.Body.String())
	}
}

func expectBody(t *testing.T, rec *httptest.ResponseRecorder, parts ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, p := range parts {
		if !strings.Contains(body, p) {
			t.Errorf("body lacks %q:\n%s", p, body)
		}
	}
}

func TestUploadDataset(t *testing.T) {
	env := newTestEnv(t)

	rec := env.upload(t, "file", "junin.xlsx", workbook(t, validRows))
	expectStatus(t, rec, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != "/dataset" {
		t.Errorf("redirected to %q", loc)
	}

	if got := env.ws.Dataset().Len(); got != 3 {
		t.Fatalf("workspace holds %d records, wanted 3", got)
	}
	// The gap is filled before anything is shown
	if uv := env.ws.Dataset().Records[1].UV; !uv.IsValid() || uv.Value() != 9 {
		t.Errorf("interpolated uv got %+v, wanted 9", uv)
	}

	rec = env.get(t, "/dataset")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "Archivo junin.xlsx cargado: 3 registros", "alert-success", "2024-01-03")

	// Flashes are shown once
	rec = env.get(t, "/dataset")
	if strings.Contains(rec.Body.String(), "alert-success") {
		t.Errorf("flash message shown twice")
	}

	if got := testutil.ToFloat64(env.mc.UploadsTotal.WithLabelValues(metrics.ResultOK)); got != 1 {
		t.Errorf("ok uploads got %v, wanted 1", got)
	}
}

func TestUploadRejected(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		file    func(t *testing.T) []byte
		status  int
		message string
		result  string
	}{
		{
			name:  "missing columns",
			field: "file",
			file: func(t *testing.T) []byte {
				return workbook(t, [][]any{{"fecha", "temperatura"}, {"2024-01-01", 12.5}})
			},
			status:  http.StatusUnprocessableEntity,
			message: "Faltan: radiacion, o3, precipitacion",
			result:  metrics.ResultMissingColumns,
		},
		{
			name:    "no file",
			field:   "",
			file:    func(t *testing.T) []byte { return nil },
			status:  http.StatusBadRequest,
			message: "Seleccione un archivo Excel",
			result:  metrics.ResultInvalid,
		},
		{
			name:    "not a workbook",
			field:   "file",
			file:    func(t *testing.T) []byte { return []byte("fecha;uv\n2024-01-01;8") },
			status:  http.StatusBadRequest,
			message: "Error al procesar el archivo",
			result:  metrics.ResultInvalid,
		},
		{
			name:    "too large",
			field:   "file",
			file:    func(t *testing.T) []byte { return bytes.Repeat([]byte("x"), 2<<20) },
			status:  http.StatusRequestEntityTooLarge,
			message: "1.0 MB",
			result:  metrics.ResultTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.upload(t, tt.field, "datos.xlsx", tt.file(t))
			expectStatus(t, rec, tt.status)
			expectBody(t, rec, tt.message, "alert-error")

			if env.ws.Dataset() != nil {
				t.Errorf("rejected upload reached the workspace")
			}
			if got := testutil.ToFloat64(env.mc.UploadsTotal.WithLabelValues(tt.result)); got != 1 {
				t.Errorf("%s uploads got %v, wanted 1", tt.result, got)
			}
		})
	}
}

func TestSampleDataset(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/dataset/sample", nil)
	expectStatus(t, rec, http.StatusSeeOther)
	if got := env.ws.Dataset().Len(); got != 30 {
		t.Errorf("sample has %d records, wanted 30", got)
	}

	rec = env.get(t, "/dataset/chart")
	expectStatus(t, rec, http.StatusOK)
	var chart chartjs.Chart
	if err := json.NewDecoder(rec.Body).Decode(&chart); err != nil {
		t.Fatalf("decoding chart: %v", err)
	}
	if chart.Type != "bar" || len(chart.Data.Labels) != 3 || len(chart.Data.Datasets) != 3 {
		t.Errorf("unexpected chart %+v", chart.Data)
	}
	if uvMax := chart.Data.Datasets[0].Data[0]; uvMax == nil || *uvMax < 7 || *uvMax > 11 {
		t.Errorf("uv max out of sample range: %v", uvMax)
	}
}

func TestPredictionRejected(t *testing.T) {
	tests := []struct {
		name    string
		load    bool
		date    string
		status  int
		message string
	}{
		{name: "no data", load: false, date: futureDate, status: http.StatusConflict, message: "Primero debe cargar los datos históricos"},
		{name: "bad date", load: true, date: "mañana", status: http.StatusBadRequest, message: "Seleccione una fecha válida"},
		{name: "empty date", load: true, date: "", status: http.StatusBadRequest, message: "Seleccione una fecha válida"},
		{name: "past date", load: true, date: "2001-01-01", status: http.StatusBadRequest, message: "no puede ser anterior a hoy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.load {
				expectStatus(t, env.upload(t, "file", "junin.xlsx", workbook(t, validRows)), http.StatusSeeOther)
			}

			rec := env.postForm(t, "/prediction", url.Values{"date": {tt.date}})
			expectStatus(t, rec, tt.status)
			expectBody(t, rec, tt.message)

			if env.ws.Prediction() != nil {
				t.Errorf("rejected prediction was stored")
			}
		})
	}
}

func TestPredictionAndResults(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/results")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "No hay resultados disponibles")

	expectStatus(t, env.get(t, "/results/chart"), http.StatusNotFound)
	expectStatus(t, env.get(t, "/results/export.xlsx"), http.StatusNotFound)

	expectStatus(t, env.upload(t, "file", "junin.xlsx", workbook(t, validRows)), http.StatusSeeOther)

	rec = env.get(t, "/prediction")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "3 registros históricos", `name="date"`)

	rec = env.postForm(t, "/prediction", url.Values{"date": {futureDate}})
	expectStatus(t, rec, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != "/results" {
		t.Errorf("redirected to %q", loc)
	}

	p := env.ws.Prediction()
	if p == nil || p.Date != futureDate {
		t.Fatalf("prediction not stored: %+v", p)
	}

	rec = env.get(t, "/results")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "Predicción generada para el", "Nivel de riesgo: "+p.Risk.Level, "Métricas del modelo")

	rec = env.get(t, "/results/chart")
	expectStatus(t, rec, http.StatusOK)
	var chart chartjs.Chart
	if err := json.NewDecoder(rec.Body).Decode(&chart); err != nil {
		t.Fatalf("decoding chart: %v", err)
	}
	if len(chart.Data.Labels) != 24 || len(chart.Data.Datasets) != 4 {
		t.Fatalf("got %d labels and %d datasets", len(chart.Data.Labels), len(chart.Data.Datasets))
	}
	if noon := chart.Data.Datasets[0].Data[12]; noon == nil || *noon != p.UVMax {
		t.Errorf("uv at noon got %v, wanted %v", noon, p.UVMax)
	}
	if chart.Data.Datasets[2].YAxisID != chartjs.RightAxis {
		t.Errorf("ozone should use the right axis")
	}

	if got := testutil.ToFloat64(env.mc.PredictionsTotal.WithLabelValues(metrics.ResultOK)); got != 1 {
		t.Errorf("ok predictions got %v, wanted 1", got)
	}
}

func TestExports(t *testing.T) {
	env := newTestEnv(t)
	expectStatus(t, env.upload(t, "file", "junin.xlsx", workbook(t, validRows)), http.StatusSeeOther)
	expectStatus(t, env.postForm(t, "/prediction", url.Values{"date": {futureDate}}), http.StatusSeeOther)

	rec := env.get(t, "/results/export.xlsx")
	expectStatus(t, rec, http.StatusOK)
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "prediccion-"+futureDate+".xlsx") {
		t.Errorf("got Content-Disposition %q", cd)
	}
	f, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("export is not a workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Pronostico")
	if err != nil {
		t.Fatalf("reading hourly sheet: %v", err)
	}
	if len(rows) != 25 {
		t.Errorf("got %d rows, wanted header plus 24 hours", len(rows))
	}

	rec = env.get(t, "/results/chart.png")
	expectStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("got Content-Type %q", ct)
	}
	if _, err := png.DecodeConfig(rec.Body); err != nil {
		t.Errorf("export is not a png: %v", err)
	}
}

func TestExportFailureHidesCause(t *testing.T) {
	env := newTestEnv(t)
	expectStatus(t, env.upload(t, "file", "junin.xlsx", workbook(t, validRows)), http.StatusSeeOther)
	expectStatus(t, env.postForm(t, "/prediction", url.Values{"date": {futureDate}}), http.StatusSeeOther)

	h := NewExportHandler(slog.Default(), env.ws, "text/csv", "csv", func(*bytes.Buffer, *predict.Prediction) error {
		return errors.New("xml: unexpected EOF in sheet1.xml")
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/results/export.csv", nil))

	expectStatus(t, rec, http.StatusInternalServerError)
	expectBody(t, rec, "Error interno del servidor")
	if strings.Contains(rec.Body.String(), "sheet1.xml") {
		t.Errorf("body leaks the export error: %s", rec.Body.String())
	}
}

func TestStalePredictionIsConflict(t *testing.T) {
	ue := userError(fmt.Errorf("storing prediction: %w", workspace.ErrStale), 0)
	if ue.Status != http.StatusConflict {
		t.Errorf("got status %d, wanted %d", ue.Status, http.StatusConflict)
	}
	if !strings.Contains(ue.Message, "inténtelo de nuevo") {
		t.Errorf("unexpected message %q", ue.Message)
	}
}

func TestNewDatasetClearsResults(t *testing.T) {
	env := newTestEnv(t)
	expectStatus(t, env.upload(t, "file", "junin.xlsx", workbook(t, validRows)), http.StatusSeeOther)
	expectStatus(t, env.postForm(t, "/prediction", url.Values{"date": {futureDate}}), http.StatusSeeOther)
	expectStatus(t, env.postForm(t, "/dataset/sample", nil), http.StatusSeeOther)

	expectStatus(t, env.get(t, "/results/chart"), http.StatusNotFound)
}

func TestRegion(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/region")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "Departamento de Junín", "Huancayo", "Valle del Mantaro", "Janka (&gt;4,800m)")
}

func TestLog(t *testing.T) {
	env := newTestEnv(t)
	for i := range 30 {
		env.log.entries = append(env.log.entries, database.LogEntryRow{
			Timestamp: time.Date(2025, 3, 1, 10, i, 0, 0, time.UTC),
			Level:     int(slog.LevelWarn),
			Module:    "www",
			Message:   "entrada de prueba",
		})
	}

	rec := env.get(t, "/log?level=warn")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "30 entradas", "entrada de prueba", `hx-get="/log?page=2&pageSize=25&level=WARN"`)
	if env.log.minLvl != slog.LevelWarn || env.log.page != 1 {
		t.Errorf("queried level %v page %d", env.log.minLvl, env.log.page)
	}

	rec = env.get(t, "/log?page=2&level=WARN")
	expectStatus(t, rec, http.StatusOK)
	if n := strings.Count(rec.Body.String(), "<tr"); n != 5 {
		t.Errorf("got %d rows on the last page, wanted 5", n)
	}
	if strings.Contains(rec.Body.String(), "hx-trigger") {
		t.Errorf("last page should not load more")
	}
}

func TestSysInfo(t *testing.T) {
	env := newTestEnv(t)
	expectStatus(t, env.postForm(t, "/dataset/sample", nil), http.StatusSeeOther)

	rec := env.get(t, "/sysinfo")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "1.2.3", "test.db, esquema v2", "<dd>30</dd>")
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/logout", nil)
	expectStatus(t, rec, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("redirected to %q", loc)
	}

	expectStatus(t, env.get(t, "/logout"), http.StatusMethodNotAllowed)
}

func TestStaticAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "Predictor de Índice UV", `ws-connect="/ws"`)

	env.get(t, "/region")
	env.get(t, "/region")

	rec = env.get(t, "/metrics")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, `test_http_requests_total{method="GET",route="/region",status="200"} 2`)
}

func TestWebsocketSendsStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go env.server.hub.Run(ctx)

	srv := httptest.NewServer(env.server.Handler())
	defer srv.Close()

	conn, resp, err := ws.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	defer resp.Body.Close()

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatal(err)
	}
	_, r, err := conn.NextReader()
	if err != nil {
		t.Fatalf("reading status: %v", err)
	}
	msg, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{`id="status"`, `hx-swap-oob="true"`, "Sin datos cargados", "v1.2.3"} {
		if !strings.Contains(string(msg), want) {
			t.Errorf("status lacks %q: %s", want, msg)
		}
	}
}

package predict

import (
	"time"
)

type Hour struct {
	Hour          int     `json:"hora"`
	UV            float64 `json:"uv"`
	Ozone         float64 `json:"ozono"`
	Precipitation float64 `json:"precipitacion"`
	LSTMTrend     float64 `json:"lstm_trend"`
}

// Metrics are presented as model performance indicators. There is no model
// behind them, they are drawn at random within plausible ranges.
type Metrics struct {
	MaeUV             float64 `json:"mae_uv"`
	RmseUV            float64 `json:"rmse_uv"`
	R2UV              float64 `json:"r2_uv"`
	MaeOzone          float64 `json:"mae_ozono"`
	RmseOzone         float64 `json:"rmse_ozono"`
	R2Ozone           float64 `json:"r2_ozono"`
	MaePrecipitation  float64 `json:"mae_precipitacion"`
	RmsePrecipitation float64 `json:"rmse_precipitacion"`
	R2Precipitation   float64 `json:"r2_precipitacion"`
	LSTMAccuracy      float64 `json:"lstm_accuracy"`
}

// Basis are the historical figures a prediction starts from.
type Basis struct {
	Records       int     `json:"records"`
	AvgUV         float64 `json:"avg_uv"`
	AvgOzone      float64 `json:"avg_ozono"`
	AvgPrecip     float64 `json:"avg_precipitacion"`
	HistoricalAvg float64 `json:"historical_avg"`
}

type Prediction struct {
	ID               string    `json:"id"`
	Date             string    `json:"fecha"`
	Day              time.Time `json:"-"`
	UVMax            float64   `json:"uvMax"`
	OzoneDay         float64   `json:"ozonoDia"`
	PrecipitationDay float64   `json:"precipitacionDia"`
	Hours            []Hour    `json:"datosHorarios"`
	Metrics          Metrics   `json:"metricas"`
	Risk             RiskLevel `json:"riesgo"`
	Basis            Basis     `json:"base"`
	Created          time.Time `json:"timestamp"`
}

// Peak returns the hour with the highest UV index.
func (p *Prediction) Peak() Hour {
	var peak Hour
	for _, h := range p.Hours {
		if h.UV > peak.UV {
			peak = h
		}
	}
	return peak
}

// AccuracyPercent is the LSTM accuracy as a whole percentage.
func (p *Prediction) AccuracyPercent() int {
	return int(p.Metrics.LSTMAccuracy*100 + 0.5)
}

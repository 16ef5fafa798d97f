// Package predict turns historical averages into an hourly profile for a day.
package predict

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/angas/solara-go/convert"
	"github.com/angas/solara-go/dataset"
	"github.com/angas/solara-go/hours"
	"github.com/angas/solara-go/profile"
	"github.com/google/uuid"
)

var (
	ErrNoData      = errors.New("no historical data loaded")
	ErrInvalidDate = errors.New("invalid prediction date")
	ErrPastDate    = errors.New("prediction date is in the past")
)

type Predictor struct {
	mu             sync.Mutex // guards rng
	rng            *rand.Rand
	allowPastDates bool
	today          func() string
}

func New(rng *rand.Rand, allowPastDates bool) *Predictor {
	return &Predictor{
		rng:            rng,
		allowPastDates: allowPastDates,
		today:          hours.Today,
	}
}

// NewRand returns a seeded generator when seed is set, otherwise a random one.
func NewRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (p *Predictor) Predict(ds *dataset.Dataset, date string) (*Prediction, error) {
	if ds.Len() == 0 {
		return nil, ErrNoData
	}

	day, err := hours.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	if !p.allowPastDates && date < p.today() {
		return nil, fmt.Errorf("%w: %s", ErrPastDate, date)
	}

	sum := dataset.Summarize(ds)
	// The trend leans on the UV history
	basis := Basis{
		Records:       sum.Records,
		AvgUV:         sum.Of(dataset.UV).Mean,
		AvgOzone:      sum.Of(dataset.O3).Mean,
		AvgPrecip:     sum.Of(dataset.PP).Mean,
		HistoricalAvg: sum.Of(dataset.UV).Mean,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	uvMax := convert.OneDecimal(basis.AvgUV * (0.8 + p.rng.Float64()*0.4))
	ozoneDay := convert.RoundFloat64(basis.AvgOzone*(0.8+p.rng.Float64()*0.4), 0)
	ppDay := convert.OneDecimal(basis.AvgPrecip * (0.5 + p.rng.Float64()*1.5))

	return &Prediction{
		ID:               uuid.NewString(),
		Date:             date,
		Day:              day,
		UVMax:            uvMax,
		OzoneDay:         ozoneDay,
		PrecipitationDay: ppDay,
		Hours:            Hourly(uvMax, ozoneDay, ppDay, basis.HistoricalAvg),
		Metrics:          p.metrics(),
		Risk:             Risk(uvMax),
		Basis:            basis,
		Created:          time.Now(),
	}, nil
}

// Hourly evaluates the diurnal profiles for every hour of the day.
func Hourly(uvMax, ozoneDay, ppDay, historicalAvg float64) []Hour {
	hs := make([]Hour, hours.PerDay)
	for h := range hours.PerDay {
		hs[h] = Hour{
			Hour:          h,
			UV:            convert.OneDecimal(profile.UV(h, uvMax)),
			Ozone:         convert.OneDecimal(profile.Ozone(h, ozoneDay)),
			Precipitation: convert.TwoDecimals(profile.Precipitation(h, ppDay)),
			LSTMTrend:     convert.OneDecimal(profile.LSTMTrend(h, uvMax, historicalAvg)),
		}
	}
	return hs
}

func (p *Predictor) metrics() Metrics {
	between := func(lo, hi float64, decimals int) float64 {
		return convert.RoundFloat64(lo+p.rng.Float64()*(hi-lo), decimals)
	}
	return Metrics{
		MaeUV:             between(20, 70, 0),
		RmseUV:            between(30, 100, 0),
		R2UV:              between(0.85, 0.95, 2),
		MaeOzone:          between(2, 7, 0),
		RmseOzone:         between(3, 11, 0),
		R2Ozone:           between(0.80, 0.95, 2),
		MaePrecipitation:  between(0.5, 2.5, 2),
		RmsePrecipitation: between(1, 4, 2),
		R2Precipitation:   between(0.75, 0.95, 2),
		LSTMAccuracy:      between(0.88, 0.98, 2),
	}
}

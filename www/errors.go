package www

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/angas/solara-go/dataset"
	"github.com/angas/solara-go/metrics"
	"github.com/angas/solara-go/predict"
	"github.com/angas/solara-go/workspace"
	"github.com/dustin/go-humanize"
)

var (
	ErrNoFile    = errors.New("no file in upload")
	ErrTooLarge  = errors.New("upload too large")
	ErrNoResults = errors.New("no prediction available")
)

// UserError pairs an HTTP status with the message shown in the page.
type UserError struct {
	Status  int
	Message string
	Result  string // metrics result label
	Err     error
}

func (e *UserError) Error() string {
	return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// userError classifies err, maxUpload is only used in the size message.
func userError(err error, maxUpload int64) *UserError {
	var mce *dataset.MissingColumnsError
	var mbe *http.MaxBytesError

	switch {
	case errors.As(err, &mce):
		return &UserError{
			Status: http.StatusUnprocessableEntity,
			Message: "El archivo debe contener las columnas: fecha, radiación solar, O3 y precipitaciones. Faltan: " +
				strings.Join(mce.Missing, ", "),
			Result: metrics.ResultMissingColumns,
			Err:    err,
		}
	case errors.Is(err, ErrTooLarge), errors.As(err, &mbe):
		return &UserError{
			Status:  http.StatusRequestEntityTooLarge,
			Message: fmt.Sprintf("El archivo supera el tamaño máximo de %s", humanize.Bytes(uint64(maxUpload))),
			Result:  metrics.ResultTooLarge,
			Err:     err,
		}
	case errors.Is(err, ErrNoFile):
		return &UserError{
			Status:  http.StatusBadRequest,
			Message: "Seleccione un archivo Excel (.xlsx)",
			Result:  metrics.ResultInvalid,
			Err:     err,
		}
	case errors.Is(err, dataset.ErrUnreadable):
		return &UserError{
			Status:  http.StatusBadRequest,
			Message: "Error al procesar el archivo",
			Result:  metrics.ResultInvalid,
			Err:     err,
		}
	case errors.Is(err, predict.ErrNoData):
		return &UserError{
			Status:  http.StatusConflict,
			Message: "Primero debe cargar los datos históricos",
			Result:  metrics.ResultNoData,
			Err:     err,
		}
	case errors.Is(err, predict.ErrInvalidDate):
		return &UserError{
			Status:  http.StatusBadRequest,
			Message: "Seleccione una fecha válida",
			Result:  metrics.ResultInvalid,
			Err:     err,
		}
	case errors.Is(err, predict.ErrPastDate):
		return &UserError{
			Status:  http.StatusBadRequest,
			Message: "La fecha de predicción no puede ser anterior a hoy",
			Result:  metrics.ResultInvalid,
			Err:     err,
		}
	case errors.Is(err, workspace.ErrStale):
		return &UserError{
			Status:  http.StatusConflict,
			Message: "Los datos cambiaron mientras se generaba la predicción, inténtelo de nuevo",
			Result:  metrics.ResultNoData,
			Err:     err,
		}
	case errors.Is(err, ErrNoResults):
		return &UserError{
			Status:  http.StatusNotFound,
			Message: "No hay resultados disponibles. Genere una predicción primero.",
			Result:  metrics.ResultNoData,
			Err:     err,
		}
	default:
		return &UserError{
			Status:  http.StatusInternalServerError,
			Message: "Error interno del servidor",
			Result:  metrics.ResultError,
			Err:     err,
		}
	}
}

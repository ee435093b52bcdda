package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/retailops/returns-complaints/app/httpjson"
	"github.com/retailops/returns-complaints/etl"
	"github.com/retailops/returns-complaints/models"
)

type Runner interface {
	RunSynthetic(ctx context.Context, n int) (etl.RunResult, error)
	ImportCSV(ctx context.Context, path string) (etl.RunResult, error)
}

// ResetFunc drops, recreates and reseeds the schema.
type ResetFunc func(ctx context.Context) error

type AdminHandler struct {
	runner    Runner
	reset     ResetFunc
	rows      int
	sampleCSV string
	log       *zap.Logger
}

// NewAdminHandler builds the maintenance endpoints. rows is the size of each
// synthetic run; an empty sampleCSV disables the CSV import.
func NewAdminHandler(runner Runner, reset ResetFunc, rows int, sampleCSV string, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		runner:    runner,
		reset:     reset,
		rows:      rows,
		sampleCSV: sampleCSV,
		log:       log,
	}
}

type RunResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Result  *etl.RunResult `json:"result,omitempty"`
}

// HandleRunETL loads a synthetic batch and then the sample CSV. Skipped rows
// are reported in the result; only store failures make the run fail. A failed
// run still reports the rows committed before the failure.
func (h *AdminHandler) HandleRunETL(w http.ResponseWriter, r *http.Request) {
	total, err := h.runner.RunSynthetic(r.Context(), h.rows)
	if err != nil {
		h.failed(w, err, total)
		return
	}

	if h.sampleCSV != "" {
		fromCSV, err := h.runner.ImportCSV(r.Context(), h.sampleCSV)
		total.Merge(fromCSV.Result)
		total.Added += fromCSV.Added
		if err != nil {
			h.failed(w, err, total)
			return
		}
	}

	h.log.Info("etl run finished",
		zap.Int64("added", total.Added),
		zap.Int("skipped", total.Skipped),
	)
	httpjson.Write(w, http.StatusOK, RunResponse{
		Status:  "success",
		Message: fmt.Sprintf("ETL finished. Records added: %d", total.Added),
		Result:  &total,
	})
}

func (h *AdminHandler) failed(w http.ResponseWriter, err error, partial etl.RunResult) {
	h.log.Error("etl run failed",
		zap.Error(err),
		zap.Int64("added", partial.Added),
		zap.Int("inserted", partial.Inserted),
	)

	var msg string
	switch {
	case models.IsIntegrity(err):
		msg = "Data integrity error: " + err.Error()
	case errors.Is(err, etl.ErrSource):
		msg = "ETL error: " + err.Error()
	default:
		msg = "Database error: " + err.Error()
	}
	resp := RunResponse{Status: "error", Message: msg}
	if partial.Added > 0 || partial.Inserted > 0 || partial.Skipped > 0 {
		resp.Result = &partial
	}
	httpjson.Write(w, http.StatusInternalServerError, resp)
}

// HandleInitDB resets the schema and sends the browser back to the overview.
func (h *AdminHandler) HandleInitDB(w http.ResponseWriter, r *http.Request) {
	if err := h.reset(r.Context()); err != nil {
		h.log.Error("reset schema", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to initialize database")
		return
	}
	h.log.Info("database initialized")
	http.Redirect(w, r, "/?initialized=1", http.StatusSeeOther)
}

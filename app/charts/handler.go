package charts

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/retailops/returns-complaints/app/httpjson"
	"github.com/retailops/returns-complaints/models"
)

// ChartLimit is the number of bars on the reason and product charts.
const ChartLimit = 10

type AggregateProvider interface {
	ComplaintsByReason(ctx context.Context, limit int) ([]models.LabelCount, error)
	ComplaintsByProduct(ctx context.Context, limit int) ([]models.LabelCount, error)
	ComplaintsByMonth(ctx context.Context) ([]models.LabelCount, error)
}

type ChartHandler struct {
	repo AggregateProvider
	log  *zap.Logger
}

func NewChartHandler(r AggregateProvider, log *zap.Logger) *ChartHandler {
	return &ChartHandler{repo: r, log: log}
}

func (h *ChartHandler) HandleTopReasons(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.ComplaintsByReason(r.Context(), ChartLimit)
	h.respond(w, "top_reasons", rows, err, func() Figure {
		return barFigure(rows, "Top return reasons", "Return reason", "Complaints", "Blues", 0)
	})
}

func (h *ChartHandler) HandleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.ComplaintsByMonth(r.Context())
	h.respond(w, "monthly_trend", rows, err, func() Figure {
		return lineFigure(rows, "Complaints by month", "Month", "Complaints")
	})
}

func (h *ChartHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.ComplaintsByProduct(r.Context(), ChartLimit)
	h.respond(w, "products", rows, err, func() Figure {
		return barFigure(rows, "Complaints by product", "Product", "Complaints", "Reds", -45)
	})
}

// respond writes the figure, {"error":"no data"} for an empty aggregate, or a
// 500 when the query failed.
func (h *ChartHandler) respond(w http.ResponseWriter, chart string, rows []models.LabelCount, err error, build func() Figure) {
	if err != nil {
		h.log.Error("chart query failed", zap.String("chart", chart), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to build chart")
		return
	}
	if len(rows) == 0 {
		httpjson.Error(w, http.StatusOK, models.NoDataLabel)
		return
	}
	httpjson.Write(w, http.StatusOK, build())
}

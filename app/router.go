// Package app assembles the HTTP surface of the complaints service.
package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/retailops/returns-complaints/app/admin"
	"github.com/retailops/returns-complaints/app/catalog"
	"github.com/retailops/returns-complaints/app/charts"
	"github.com/retailops/returns-complaints/app/complaints"
	"github.com/retailops/returns-complaints/app/dashboard"
	"github.com/retailops/returns-complaints/app/reasons"
)

// Handlers are the feature handlers mounted by NewRouter.
type Handlers struct {
	Dashboard  *dashboard.DashboardHandler
	Complaints *complaints.ComplaintHandler
	Charts     *charts.ChartHandler
	Catalog    *catalog.CatalogHandler
	Reasons    *reasons.ReasonHandler
	Admin      *admin.AdminHandler
}

// RequestTimeout bounds every request, including a full ETL run.
const RequestTimeout = 60 * time.Second

func NewRouter(h Handlers, metrics *prometheus.Registry, log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(log), middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(metrics, promhttp.HandlerOpts{}))
	}

	r.Get("/", h.Dashboard.HandleIndex)
	r.Get("/dashboard", h.Dashboard.HandleDashboard)
	r.Get("/add", h.Complaints.HandleForm)
	r.Post("/add", h.Complaints.HandleSubmit)
	r.Post("/run_etl", h.Admin.HandleRunETL)
	r.Get("/init_db", h.Admin.HandleInitDB)

	r.Route("/api", func(r chi.Router) {
		r.Get("/complaints", h.Dashboard.HandleComplaints)
		r.Get("/stats", h.Dashboard.HandleStats)
		r.Get("/products", h.Catalog.HandleGet)
		r.Get("/products/{sku}", h.Catalog.HandleGetProduct)
		r.Get("/reasons", h.Reasons.HandleGetAll)
		r.Post("/reasons", h.Reasons.HandleCreate)

		r.Route("/charts", func(r chi.Router) {
			r.Get("/top_reasons", h.Charts.HandleTopReasons)
			r.Get("/monthly_trend", h.Charts.HandleMonthlyTrend)
			r.Get("/products", h.Charts.HandleProducts)
		})
	})
	return r
}

// RequestLogger logs one line per request with its status and latency.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

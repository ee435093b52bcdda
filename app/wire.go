package app

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/retailops/returns-complaints/app/admin"
	"github.com/retailops/returns-complaints/app/catalog"
	"github.com/retailops/returns-complaints/app/charts"
	"github.com/retailops/returns-complaints/app/complaints"
	"github.com/retailops/returns-complaints/app/dashboard"
	"github.com/retailops/returns-complaints/app/reasons"
	"github.com/retailops/returns-complaints/etl"
	"github.com/retailops/returns-complaints/models"
	"github.com/retailops/returns-complaints/web"
)

// Options tunes the handlers built by New.
type Options struct {
	ETLRows        int
	SampleCSV      string
	BatchSize      int
	NumberAttempts int
}

// NewPipeline builds the ETL pipeline over db. It is shared by the HTTP
// admin endpoint and the command line.
func NewPipeline(db *gorm.DB, opts Options, metrics *etl.Metrics, log *zap.Logger) *etl.Pipeline {
	ref := models.NewCatalog(db)
	loader := etl.NewLoader(db, log.Named("loader"),
		etl.WithBatchSize(opts.BatchSize),
		etl.WithNumberAttempts(opts.NumberAttempts),
	)
	return etl.NewPipeline(
		etl.NewGenerator(ref, nil, nil),
		loader,
		models.NewComplaintsRepository(db),
		metrics,
		log.Named("etl"),
	)
}

// New wires repositories, pipeline and handlers over db and returns the
// router.
func New(db *gorm.DB, opts Options, log *zap.Logger) (http.Handler, error) {
	pages, err := web.Load()
	if err != nil {
		return nil, err
	}

	metrics := etl.NewMetrics()
	ref := models.NewCatalog(db)
	complaintsRepo := models.NewComplaintsRepository(db).WithNumberAttempts(opts.NumberAttempts)
	stats := models.NewStatsRepository(db)
	reset := func(ctx context.Context) error { return models.ResetSchema(ctx, db) }

	h := Handlers{
		Dashboard:  dashboard.NewDashboardHandler(stats, complaintsRepo, pages, log.Named("dashboard")),
		Complaints: complaints.NewComplaintHandler(ref, complaintsRepo, pages, log.Named("complaints")),
		Charts:     charts.NewChartHandler(stats, log.Named("charts")),
		Catalog:    catalog.NewCatalogHandler(ref.Products),
		Reasons:    reasons.NewReasonHandler(ref.Reasons),
		Admin:      admin.NewAdminHandler(NewPipeline(db, opts, metrics, log), reset, opts.ETLRows, opts.SampleCSV, log.Named("admin")),
	}
	return NewRouter(h, metrics.Registry(), log), nil
}

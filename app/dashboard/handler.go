package dashboard

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/retailops/returns-complaints/app/httpjson"
	"github.com/retailops/returns-complaints/models"
	"github.com/retailops/returns-complaints/web"
)

const (
	// RecentLimit is the number of complaints listed on the overview page.
	RecentLimit = 10
	// APILimit caps /api/complaints.
	APILimit = 100

	dateLayout = "2006-01-02 15:04"
)

type StatsProvider interface {
	DashboardStats(ctx context.Context, now time.Time) (models.DashboardStats, error)
}

type ComplaintLister interface {
	Recent(ctx context.Context, limit int) ([]models.Complaint, error)
}

type Renderer interface {
	Render(w http.ResponseWriter, code int, name string, data any) error
}

// Complaint is the /api/complaints representation.
type Complaint struct {
	ID        uint   `json:"id"`
	Number    string `json:"number"`
	ProductID uint   `json:"product_id"`
	Product   string `json:"product"`
	ReasonID  uint   `json:"reason_id"`
	Reason    string `json:"reason"`
	Customer  string `json:"customer"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

type DashboardHandler struct {
	stats      StatsProvider
	complaints ComplaintLister
	pages      Renderer
	log        *zap.Logger
	now        func() time.Time
}

func NewDashboardHandler(stats StatsProvider, complaints ComplaintLister, pages Renderer, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		stats:      stats,
		complaints: complaints,
		pages:      pages,
		log:        log,
		now:        time.Now,
	}
}

type indexPage struct {
	Stats       models.DashboardStats
	Complaints  []models.Complaint
	Added       bool
	Initialized bool
	Error       string
}

// HandleIndex renders the summary figures and the latest complaints.
func (h *DashboardHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := indexPage{
		Added:       q.Get("added") == "1",
		Initialized: q.Get("initialized") == "1",
	}

	stats, err := h.stats.DashboardStats(r.Context(), h.now())
	if err != nil {
		h.log.Error("dashboard stats", zap.Error(err))
		h.fail(w, err)
		return
	}
	page.Stats = stats

	recent, err := h.complaints.Recent(r.Context(), RecentLimit)
	if err != nil {
		h.log.Error("recent complaints", zap.Error(err))
		h.fail(w, err)
		return
	}
	page.Complaints = recent

	if err := h.pages.Render(w, http.StatusOK, web.PageIndex, page); err != nil {
		h.log.Error("render index", zap.Error(err))
	}
}

func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if err := h.pages.Render(w, http.StatusOK, web.PageDashboard, nil); err != nil {
		h.log.Error("render dashboard", zap.Error(err))
	}
}

func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.DashboardStats(r.Context(), h.now())
	if err != nil {
		h.log.Error("dashboard stats", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	httpjson.Write(w, http.StatusOK, stats)
}

func (h *DashboardHandler) HandleComplaints(w http.ResponseWriter, r *http.Request) {
	res, err := h.complaints.Recent(r.Context(), APILimit)
	if err != nil {
		h.log.Error("list complaints", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to get complaints")
		return
	}

	out := make([]Complaint, len(res))
	for i, c := range res {
		out[i] = Complaint{
			ID:        c.ID,
			Number:    c.Number,
			ProductID: c.ProductID,
			Product:   c.Product.Name,
			ReasonID:  c.ReasonID,
			Reason:    c.Reason.Name,
			Customer:  c.CustomerName,
			Date:      c.ComplaintDate.Format(dateLayout),
			Status:    string(c.Status),
		}
	}
	httpjson.Write(w, http.StatusOK, out)
}

func (h *DashboardHandler) fail(w http.ResponseWriter, err error) {
	page := indexPage{
		Stats: models.DashboardStats{TopReason: models.NoDataLabel},
		Error: "Database unavailable: " + err.Error(),
	}
	if rerr := h.pages.Render(w, http.StatusInternalServerError, web.PageIndex, page); rerr != nil {
		h.log.Error("render index", zap.Error(rerr))
	}
}

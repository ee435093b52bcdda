package complaints

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/retailops/returns-complaints/models"
	"github.com/retailops/returns-complaints/web"
)

type ReferenceProvider interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetAllReasons(ctx context.Context) ([]models.ReturnReason, error)
}

type Submitter interface {
	Submit(ctx context.Context, s models.Submission) (*models.Complaint, error)
}

type Renderer interface {
	Render(w http.ResponseWriter, code int, name string, data any) error
}

type ComplaintHandler struct {
	ref   ReferenceProvider
	repo  Submitter
	pages Renderer
	log   *zap.Logger
}

func NewComplaintHandler(ref ReferenceProvider, repo Submitter, pages Renderer, log *zap.Logger) *ComplaintHandler {
	return &ComplaintHandler{ref: ref, repo: repo, pages: pages, log: log}
}

// addPage is the data behind the add form. The submitted values are kept so
// a rejected form comes back filled in.
type addPage struct {
	Products     []models.Product
	Reasons      []models.ReturnReason
	ProductID    uint
	ReasonID     uint
	CustomerName string
	Description  string
	Error        string
}

func (h *ComplaintHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, addPage{})
}

// HandleSubmit stores a complaint and redirects to the overview. Unparsable
// ids are a 400; a rejected submission re-renders the form with the reason.
func (h *ComplaintHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, addPage{Error: "Invalid form data"})
		return
	}

	page := addPage{
		CustomerName: strings.TrimSpace(r.PostForm.Get("customer_name")),
		Description:  strings.TrimSpace(r.PostForm.Get("description")),
	}

	productID, err := parseID(r.PostForm.Get("product_id"))
	if err != nil {
		page.Error = "Invalid product"
		h.render(w, r, http.StatusBadRequest, page)
		return
	}
	page.ProductID = productID

	reasonID, err := parseID(r.PostForm.Get("reason_id"))
	if err != nil {
		page.Error = "Invalid reason"
		h.render(w, r, http.StatusBadRequest, page)
		return
	}
	page.ReasonID = reasonID

	c, err := h.repo.Submit(r.Context(), models.Submission{
		ProductID:    productID,
		ReasonID:     reasonID,
		CustomerName: page.CustomerName,
		Description:  page.Description,
	})
	if err != nil {
		h.log.Warn("complaint rejected",
			zap.Uint("product_id", productID),
			zap.Uint("reason_id", reasonID),
			zap.Error(err),
		)
		page.Error = submitError(err)
		h.render(w, r, http.StatusOK, page)
		return
	}

	h.log.Info("complaint added", zap.String("number", c.Number), zap.Uint("id", c.ID))
	http.Redirect(w, r, "/?added=1", http.StatusSeeOther)
}

func (h *ComplaintHandler) render(w http.ResponseWriter, r *http.Request, code int, page addPage) {
	products, err := h.ref.GetAllProducts(r.Context())
	if err != nil {
		h.log.Error("list products", zap.Error(err))
		http.Error(w, "failed to load products", http.StatusInternalServerError)
		return
	}
	reasons, err := h.ref.GetAllReasons(r.Context())
	if err != nil {
		h.log.Error("list reasons", zap.Error(err))
		http.Error(w, "failed to load reasons", http.StatusInternalServerError)
		return
	}
	page.Products = products
	page.Reasons = reasons

	if err := h.pages.Render(w, code, web.PageAdd, page); err != nil {
		h.log.Error("render add form", zap.Error(err))
	}
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("id must be positive")
	}
	return uint(id), nil
}

func submitError(err error) string {
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, models.ErrReasonNotFound):
		return "Reason not found"
	case errors.Is(err, models.ErrNumberExhausted):
		return "Could not allocate a complaint number, please retry"
	case models.IsIntegrity(err):
		return "Complaint conflicts with existing data"
	default:
		return "Failed to add complaint"
	}
}

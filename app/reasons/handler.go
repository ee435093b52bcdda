package reasons

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/retailops/returns-complaints/app/httpjson"
	"github.com/retailops/returns-complaints/models"
)

type ReasonResponse struct {
	ID       uint   `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Severity int    `json:"severity"`
	Category string `json:"category"`
}

type ReasonProvider interface {
	GetAllReasons(ctx context.Context) ([]models.ReturnReason, error)
	CreateReason(ctx context.Context, reason *models.ReturnReason) error
}

type ReasonHandler struct {
	repo ReasonProvider
}

func NewReasonHandler(r ReasonProvider) *ReasonHandler {
	return &ReasonHandler{repo: r}
}

func (h *ReasonHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	reasons, err := h.repo.GetAllReasons(r.Context())
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "failed to fetch reasons")
		return
	}

	response := make([]ReasonResponse, len(reasons))
	for i, rr := range reasons {
		response[i] = ReasonResponse{
			ID:       rr.ID,
			Code:     rr.Code,
			Name:     rr.Name,
			Severity: rr.Severity,
			Category: rr.Category,
		}
	}

	httpjson.Write(w, http.StatusOK, response)
}

func (h *ReasonHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Code     string `json:"code"`
		Name     string `json:"name"`
		Severity *int   `json:"severity"`
		Category string `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	input.Name = strings.TrimSpace(input.Name)
	if input.Code == "" || input.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "Missing code or name")
		return
	}
	// An omitted severity is left to the repository default.
	var severity int
	if input.Severity != nil {
		severity = *input.Severity
		if severity < 1 || severity > 5 {
			httpjson.Error(w, http.StatusBadRequest, "Severity must be between 1 and 5")
			return
		}
	}

	reason := &models.ReturnReason{
		Code:     input.Code,
		Name:     input.Name,
		Severity: severity,
		Category: strings.TrimSpace(input.Category),
	}

	err := h.repo.CreateReason(r.Context(), reason)
	if errors.Is(err, models.ErrDuplicate) {
		httpjson.Error(w, http.StatusConflict, "Reason code already exists")
		return
	}
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create reason")
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]string{
		"message": "Reason created successfully",
	})
}

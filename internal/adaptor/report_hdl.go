package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"billboard-watch/internal/data/entity"
	"billboard-watch/internal/dto/request"
	"billboard-watch/internal/usecase"
	"billboard-watch/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
	}
}

// callerFromContext rebuilds the authenticated identity the auth middleware
// stored on the request.
func callerFromContext(r *http.Request) (usecase.Caller, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Caller{}, false
	}

	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		return usecase.Caller{}, false
	}

	return usecase.Caller{ID: userID, Role: entity.UserRole(role)}, true
}

// Create handles POST /api/reports
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReportRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Create(r.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(w, err, "create report")
		return
	}

	utils.ResponseCreated(w, "Report created successfully", map[string]any{"report": resp})
}

// List handles GET /api/reports
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.ListReportsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:  parseIntDefault(query.Get("page"), 1),
			Limit: parseIntDefault(query.Get("limit"), 10),
		},
		Status:        query.Get("status"),
		ViolationType: query.Get("violationType"),
		StartDate:     query.Get("startDate"),
		EndDate:       query.Get("endDate"),
		Search:        query.Get("search"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.List(r.Context(), caller, req)
	if err != nil {
		h.handleServiceError(w, err, "list reports")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetByID handles GET /api/reports/{id}
func (h *ReportHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid report ID", nil)
		return
	}

	resp, err := h.service.GetByID(r.Context(), caller, id)
	if err != nil {
		h.handleServiceError(w, err, "get report")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]any{"report": resp})
}

// UpdateStatus handles PUT /api/reports/{id}/status
func (h *ReportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid report ID", nil)
		return
	}

	var req request.UpdateReportStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.UpdateStatus(r.Context(), caller, id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update report status")
		return
	}

	utils.ResponseSuccess(w, "Report status updated successfully", map[string]any{"report": resp})
}

// Delete handles DELETE /api/reports/{id}
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid report ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		h.handleServiceError(w, err, "delete report")
		return
	}

	utils.ResponseSuccess(w, "Report deleted successfully", nil)
}

// Stats handles GET /api/reports/analytics/stats
func (h *ReportHandler) Stats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Stats(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "report stats")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// Heatmap handles GET /api/reports/analytics/heatmap
func (h *ReportHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Heatmap(r.Context(), r.URL.Query().Get("bounds"))
	if err != nil {
		h.handleServiceError(w, err, "report heatmap")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

func parseIntDefault(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}

	return result
}

func (h *ReportHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrForbidden):
		h.log.Warn(operation+" denied", zap.Error(err))
		utils.ResponseForbidden(w, "Access denied")

	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Report not found")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

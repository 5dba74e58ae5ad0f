package usecase

import (
	"context"
	"fmt"
	"time"

	"billboard-watch/internal/data/entity"
	"billboard-watch/internal/data/repository"
	"billboard-watch/internal/dto/request"
	"billboard-watch/internal/dto/response"
	"billboard-watch/internal/policy"
	"billboard-watch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// monthlyStatsCap limits the monthly aggregation to the most recent groups.
const monthlyStatsCap = 12

type ReportService interface {
	Create(ctx context.Context, caller Caller, req *request.CreateReportRequest) (*response.ReportResponse, error)
	List(ctx context.Context, caller Caller, req *request.ListReportsRequest) (*response.ReportListResponse, error)
	GetByID(ctx context.Context, caller Caller, id uuid.UUID) (*response.ReportResponse, error)
	UpdateStatus(ctx context.Context, caller Caller, id uuid.UUID, req *request.UpdateReportStatusRequest) (*response.ReportResponse, error)
	Delete(ctx context.Context, caller Caller, id uuid.UUID) error
	Stats(ctx context.Context) (*response.StatsResponse, error)
	Heatmap(ctx context.Context, bounds string) (*response.HeatmapResponse, error)
}

type reportService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReportService(repo *repository.Repository, log *zap.Logger) ReportService {
	return &reportService{
		repo: repo,
		log:  log,
	}
}

func (s *reportService) Create(ctx context.Context, caller Caller, req *request.CreateReportRequest) (*response.ReportResponse, error) {
	if !policy.Allow(caller.Role, caller.ID, caller.ID, policy.OpCreate) {
		return nil, ErrForbidden
	}

	now := time.Now()
	report := &entity.Report{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReportedBy: caller.ID,
		Location: entity.Location{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
			Address:   req.Location.Address,
			City:      req.Location.City,
		},
		ViolationType: entity.ViolationType(req.ViolationType),
		Description:   req.Description,
		Images:        req.Images,
		Confidence:    req.Confidence,
		Status:        entity.StatusPending,
	}

	if report.Images == nil {
		report.Images = []string{}
	}

	if err := s.repo.Report.Create(ctx, report); err != nil {
		s.log.Error("Failed to create report",
			zap.Error(err), zap.String("user_id", caller.ID.String()))
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.log.Info("Report created",
		zap.String("report_id", report.ID.String()),
		zap.String("user_id", caller.ID.String()),
		zap.String("violation_type", req.ViolationType))

	resp := response.ReportToResponse(report)
	return &resp, nil
}

func (s *reportService) List(ctx context.Context, caller Caller, req *request.ListReportsRequest) (*response.ReportListResponse, error) {
	filter, err := s.buildFilter(caller, req)
	if err != nil {
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.PerPage()
	offset := utils.CalculateOffset(page, limit)

	reports, err := s.repo.Report.FindAll(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to list reports", zap.Error(err))
		return nil, fmt.Errorf("list reports: %w", err)
	}

	total, err := s.repo.Report.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count reports", zap.Error(err))
		return nil, fmt.Errorf("count reports: %w", err)
	}

	return &response.ReportListResponse{
		Reports:    response.ReportsToResponse(reports),
		Pagination: response.NewPaginationMeta(page, limit, total),
	}, nil
}

// buildFilter turns validated query params into the typed filter. Callers
// with role user are always scoped to their own reports, overriding any
// other scoping.
func (s *reportService) buildFilter(caller Caller, req *request.ListReportsRequest) (repository.ReportFilter, error) {
	var filter repository.ReportFilter

	if req.Status != "" {
		status := entity.ReportStatus(req.Status)
		if !status.Valid() {
			return filter, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
		}
		filter.Status = &status
	}

	if req.ViolationType != "" {
		violationType := entity.ViolationType(req.ViolationType)
		if !violationType.Valid() {
			return filter, fmt.Errorf("%w: unknown violation type %q", ErrValidation, req.ViolationType)
		}
		filter.ViolationType = &violationType
	}

	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid startDate %q", ErrValidation, req.StartDate)
		}
		filter.StartDate = &start
	}

	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid endDate %q", ErrValidation, req.EndDate)
		}
		filter.EndDate = &end
	}

	filter.Search = req.Search

	if !policy.CanModerate(caller.Role) {
		callerID := caller.ID
		filter.ReportedBy = &callerID
	}

	return filter, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (s *reportService) GetByID(ctx context.Context, caller Caller, id uuid.UUID) (*response.ReportResponse, error) {
	report, err := s.repo.Report.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find report",
			zap.Error(err), zap.String("report_id", id.String()))
		return nil, fmt.Errorf("find report: %w", err)
	}
	if report == nil {
		return nil, ErrNotFound
	}

	if !policy.Allow(caller.Role, caller.ID, report.ReportedBy, policy.OpRead) {
		s.log.Warn("Report read denied",
			zap.String("report_id", id.String()),
			zap.String("user_id", caller.ID.String()))
		return nil, ErrForbidden
	}

	resp := response.ReportToResponse(report)
	return &resp, nil
}

// UpdateStatus assigns the report status directly; any of the four values
// is reachable from any other for an authorized caller. Setting a terminal
// status stamps the resolution fields, everything else clears them.
func (s *reportService) UpdateStatus(ctx context.Context, caller Caller, id uuid.UUID, req *request.UpdateReportStatusRequest) (*response.ReportResponse, error) {
	if !policy.Allow(caller.Role, caller.ID, uuid.Nil, policy.OpUpdateStatus) {
		s.log.Warn("Status update denied",
			zap.String("report_id", id.String()),
			zap.String("user_id", caller.ID.String()))
		return nil, ErrForbidden
	}

	status := entity.ReportStatus(req.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}

	report, err := s.repo.Report.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find report",
			zap.Error(err), zap.String("report_id", id.String()))
		return nil, fmt.Errorf("find report: %w", err)
	}
	if report == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	report.Status = status
	report.UpdatedAt = now

	if status.Terminal() {
		callerID := caller.ID
		report.ResolvedBy = &callerID
		report.ResolvedAt = &now
	} else {
		report.ResolvedBy = nil
		report.ResolvedAt = nil
	}

	if req.AdminNotes != nil {
		report.AdminNotes = req.AdminNotes
	}

	if err := s.repo.Report.UpdateStatus(ctx, report); err != nil {
		s.log.Error("Failed to update report status",
			zap.Error(err), zap.String("report_id", id.String()))
		return nil, fmt.Errorf("update report status: %w", err)
	}

	s.log.Info("Report status updated",
		zap.String("report_id", id.String()),
		zap.String("status", string(status)),
		zap.String("updated_by", caller.ID.String()))

	resp := response.ReportToResponse(report)
	return &resp, nil
}

func (s *reportService) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	report, err := s.repo.Report.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find report",
			zap.Error(err), zap.String("report_id", id.String()))
		return fmt.Errorf("find report: %w", err)
	}
	if report == nil {
		return ErrNotFound
	}

	if !policy.Allow(caller.Role, caller.ID, report.ReportedBy, policy.OpDelete) {
		s.log.Warn("Report delete denied",
			zap.String("report_id", id.String()),
			zap.String("user_id", caller.ID.String()))
		return ErrForbidden
	}

	if err := s.repo.Report.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete report",
			zap.Error(err), zap.String("report_id", id.String()))
		return fmt.Errorf("delete report: %w", err)
	}

	s.log.Info("Report deleted",
		zap.String("report_id", id.String()),
		zap.String("deleted_by", caller.ID.String()))

	return nil
}

func (s *reportService) Stats(ctx context.Context) (*response.StatsResponse, error) {
	statusStats, err := s.repo.Report.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("status stats: %w", err)
	}

	violationTypeStats, err := s.repo.Report.CountByViolationType(ctx)
	if err != nil {
		return nil, fmt.Errorf("violation type stats: %w", err)
	}

	monthlyStats, err := s.repo.Report.MonthlyCounts(ctx, monthlyStatsCap)
	if err != nil {
		return nil, fmt.Errorf("monthly stats: %w", err)
	}

	overview := response.StatsOverview{}
	for status, dst := range map[entity.ReportStatus]*int64{
		entity.StatusPending:  &overview.Pending,
		entity.StatusVerified: &overview.Verified,
		entity.StatusResolved: &overview.Resolved,
	} {
		st := status
		count, err := s.repo.Report.CountWithStatus(ctx, &st)
		if err != nil {
			return nil, fmt.Errorf("count %s reports: %w", status, err)
		}
		*dst = count
	}

	total, err := s.repo.Report.CountWithStatus(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}
	overview.Total = total

	if statusStats == nil {
		statusStats = []repository.StatusCount{}
	}
	if violationTypeStats == nil {
		violationTypeStats = []repository.ViolationTypeCount{}
	}
	if monthlyStats == nil {
		monthlyStats = []repository.MonthlyCount{}
	}

	return &response.StatsResponse{
		Overview:           overview,
		StatusStats:        statusStats,
		ViolationTypeStats: violationTypeStats,
		MonthlyStats:       monthlyStats,
	}, nil
}

func (s *reportService) Heatmap(ctx context.Context, bounds string) (*response.HeatmapResponse, error) {
	box, err := repository.ParseBounds(bounds)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	points, err := s.repo.Report.FindWithinBounds(ctx, box)
	if err != nil {
		s.log.Error("Failed to load heatmap data", zap.Error(err))
		return nil, fmt.Errorf("load heatmap data: %w", err)
	}

	if points == nil {
		points = []repository.HeatmapPoint{}
	}

	return &response.HeatmapResponse{HeatmapData: points}, nil
}

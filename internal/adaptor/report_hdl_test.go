package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"billboard-watch/internal/dto/request"
	"billboard-watch/internal/dto/response"
	"billboard-watch/internal/usecase"
	"billboard-watch/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubReportService struct {
	createFn       func(ctx context.Context, caller usecase.Caller, req *request.CreateReportRequest) (*response.ReportResponse, error)
	listFn         func(ctx context.Context, caller usecase.Caller, req *request.ListReportsRequest) (*response.ReportListResponse, error)
	getByIDFn      func(ctx context.Context, caller usecase.Caller, id uuid.UUID) (*response.ReportResponse, error)
	updateStatusFn func(ctx context.Context, caller usecase.Caller, id uuid.UUID, req *request.UpdateReportStatusRequest) (*response.ReportResponse, error)
	deleteFn       func(ctx context.Context, caller usecase.Caller, id uuid.UUID) error
	statsFn        func(ctx context.Context) (*response.StatsResponse, error)
	heatmapFn      func(ctx context.Context, bounds string) (*response.HeatmapResponse, error)
}

func (s *stubReportService) Create(ctx context.Context, caller usecase.Caller, req *request.CreateReportRequest) (*response.ReportResponse, error) {
	return s.createFn(ctx, caller, req)
}

func (s *stubReportService) List(ctx context.Context, caller usecase.Caller, req *request.ListReportsRequest) (*response.ReportListResponse, error) {
	return s.listFn(ctx, caller, req)
}

func (s *stubReportService) GetByID(ctx context.Context, caller usecase.Caller, id uuid.UUID) (*response.ReportResponse, error) {
	return s.getByIDFn(ctx, caller, id)
}

func (s *stubReportService) UpdateStatus(ctx context.Context, caller usecase.Caller, id uuid.UUID, req *request.UpdateReportStatusRequest) (*response.ReportResponse, error) {
	return s.updateStatusFn(ctx, caller, id, req)
}

func (s *stubReportService) Delete(ctx context.Context, caller usecase.Caller, id uuid.UUID) error {
	return s.deleteFn(ctx, caller, id)
}

func (s *stubReportService) Stats(ctx context.Context) (*response.StatsResponse, error) {
	return s.statsFn(ctx)
}

func (s *stubReportService) Heatmap(ctx context.Context, bounds string) (*response.HeatmapResponse, error) {
	return s.heatmapFn(ctx, bounds)
}

func newReportHandler(t *testing.T, stub *stubReportService) *ReportHandler {
	t.Helper()
	return NewReportHandler(stub, zaptest.NewLogger(t))
}

func authed(req *http.Request, role string) *http.Request {
	return req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), role))
}

func TestCreateReportHandler(t *testing.T) {
	t.Run("requires authentication context", func(t *testing.T) {
		h := newReportHandler(t, &stubReportService{})

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader("{}")))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubReportService{
			createFn: func(ctx context.Context, caller usecase.Caller, req *request.CreateReportRequest) (*response.ReportResponse, error) {
				return &response.ReportResponse{ID: uuid.New().String(), Status: "pending"}, nil
			},
		}
		h := newReportHandler(t, stub)

		body := `{"location":{"latitude":-6.2,"longitude":106.8,"address":"Jl. Sudirman 1"},"violationType":"size"}`
		rec := httptest.NewRecorder()
		h.Create(rec, authed(httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(body)), "user"))

		require.Equal(t, http.StatusCreated, rec.Code)
		env := decodeEnvelope(t, rec)
		require.True(t, env.Success)
		require.Contains(t, string(env.Data), `"report"`)
	})

	t.Run("out-of-range coordinates", func(t *testing.T) {
		h := newReportHandler(t, &stubReportService{})

		body := `{"location":{"latitude":95.0,"longitude":106.8,"address":"x"},"violationType":"size"}`
		rec := httptest.NewRecorder()
		h.Create(rec, authed(httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(body)), "user"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown violation type", func(t *testing.T) {
		h := newReportHandler(t, &stubReportService{})

		body := `{"location":{"latitude":-6.2,"longitude":106.8,"address":"x"},"violationType":"noise"}`
		rec := httptest.NewRecorder()
		h.Create(rec, authed(httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(body)), "user"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListReportsHandler(t *testing.T) {
	t.Run("query parameters reach the service", func(t *testing.T) {
		var got *request.ListReportsRequest
		stub := &stubReportService{
			listFn: func(ctx context.Context, caller usecase.Caller, req *request.ListReportsRequest) (*response.ReportListResponse, error) {
				got = req
				return &response.ReportListResponse{
					Reports:    []response.ReportResponse{},
					Pagination: response.NewPaginationMeta(req.Page, req.PerPage(), 0),
				}, nil
			},
		}
		h := newReportHandler(t, stub)

		target := "/api/reports?page=2&limit=25&status=verified&violationType=size&search=sudirman"
		rec := httptest.NewRecorder()
		h.List(rec, authed(httptest.NewRequest(http.MethodGet, target, nil), "moderator"))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 2, got.Page)
		require.Equal(t, 25, got.Limit)
		require.Equal(t, "verified", got.Status)
		require.Equal(t, "size", got.ViolationType)
		require.Equal(t, "sudirman", got.Search)
	})

	t.Run("unparseable paging falls back to defaults", func(t *testing.T) {
		var got *request.ListReportsRequest
		stub := &stubReportService{
			listFn: func(ctx context.Context, caller usecase.Caller, req *request.ListReportsRequest) (*response.ReportListResponse, error) {
				got = req
				return &response.ReportListResponse{Reports: []response.ReportResponse{}}, nil
			},
		}
		h := newReportHandler(t, stub)

		rec := httptest.NewRecorder()
		h.List(rec, authed(httptest.NewRequest(http.MethodGet, "/api/reports?page=abc&limit=-5", nil), "user"))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 1, got.Page)
		require.Equal(t, 10, got.Limit)
	})

	t.Run("limit above the cap is rejected", func(t *testing.T) {
		h := newReportHandler(t, &stubReportService{})

		rec := httptest.NewRecorder()
		h.List(rec, authed(httptest.NewRequest(http.MethodGet, "/api/reports?limit=500", nil), "user"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReportHandlerErrorMapping(t *testing.T) {
	router := func(stub *stubReportService) *chi.Mux {
		h := newReportHandler(t, stub)
		r := chi.NewRouter()
		r.Get("/api/reports/{id}", h.GetByID)
		r.Delete("/api/reports/{id}", h.Delete)
		return r
	}

	t.Run("forbidden read", func(t *testing.T) {
		r := router(&stubReportService{
			getByIDFn: func(ctx context.Context, caller usecase.Caller, id uuid.UUID) (*response.ReportResponse, error) {
				return nil, usecase.ErrForbidden
			},
		})

		rec := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodGet, "/api/reports/"+uuid.New().String(), nil), "user")
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, "Access denied", decodeEnvelope(t, rec).Message)
	})

	t.Run("missing report", func(t *testing.T) {
		r := router(&stubReportService{
			getByIDFn: func(ctx context.Context, caller usecase.Caller, id uuid.UUID) (*response.ReportResponse, error) {
				return nil, usecase.ErrNotFound
			},
		})

		rec := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodGet, "/api/reports/"+uuid.New().String(), nil), "admin")
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "Report not found", decodeEnvelope(t, rec).Message)
	})

	t.Run("malformed report id", func(t *testing.T) {
		r := router(&stubReportService{})

		rec := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodDelete, "/api/reports/not-a-uuid", nil), "admin")
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Invalid report ID", decodeEnvelope(t, rec).Message)
	})
}

func TestHeatmapHandler(t *testing.T) {
	t.Run("bounds pass through", func(t *testing.T) {
		var got string
		stub := &stubReportService{
			heatmapFn: func(ctx context.Context, bounds string) (*response.HeatmapResponse, error) {
				got = bounds
				return &response.HeatmapResponse{HeatmapData: nil}, nil
			},
		}
		h := newReportHandler(t, stub)

		rec := httptest.NewRecorder()
		h.Heatmap(rec, httptest.NewRequest(http.MethodGet, "/api/reports/analytics/heatmap?bounds=-6.3,106.7,-6.1,106.9", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "-6.3,106.7,-6.1,106.9", got)
	})

	t.Run("malformed bounds", func(t *testing.T) {
		stub := &stubReportService{
			heatmapFn: func(ctx context.Context, bounds string) (*response.HeatmapResponse, error) {
				return nil, usecase.ErrValidation
			},
		}
		h := newReportHandler(t, stub)

		rec := httptest.NewRecorder()
		h.Heatmap(rec, httptest.NewRequest(http.MethodGet, "/api/reports/analytics/heatmap?bounds=1,2", nil))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

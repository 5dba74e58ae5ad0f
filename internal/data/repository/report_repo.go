package repository

import (
	"context"
	"fmt"
	"time"

	"billboard-watch/internal/data/entity"
	"billboard-watch/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type StatusCount struct {
	Status entity.ReportStatus `json:"status"`
	Count  int64               `json:"count"`
}

type ViolationTypeCount struct {
	ViolationType entity.ViolationType `json:"violationType"`
	Count         int64                `json:"count"`
}

type MonthlyCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// HeatmapPoint is the reduced projection returned for map rendering.
type HeatmapPoint struct {
	Latitude      float64              `json:"latitude"`
	Longitude     float64              `json:"longitude"`
	Status        entity.ReportStatus  `json:"status"`
	ViolationType entity.ViolationType `json:"violationType"`
	CreatedAt     time.Time            `json:"createdAt"`
}

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	FindAll(ctx context.Context, filter ReportFilter, limit, offset int) ([]*entity.Report, error)
	Count(ctx context.Context, filter ReportFilter) (int64, error)
	UpdateStatus(ctx context.Context, report *entity.Report) error
	Delete(ctx context.Context, id uuid.UUID) error

	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountByViolationType(ctx context.Context) ([]ViolationTypeCount, error)
	MonthlyCounts(ctx context.Context, limit int) ([]MonthlyCount, error)
	CountWithStatus(ctx context.Context, status *entity.ReportStatus) (int64, error)
	FindWithinBounds(ctx context.Context, box *BoundingBox) ([]HeatmapPoint, error)
}

type reportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReportRepository(db database.PgxIface, log *zap.Logger) ReportRepository {
	return &reportRepository{
		db:  db,
		log: log.With(zap.String("repository", "report")),
	}
}

const reportColumns = `id, reported_by, latitude, longitude, address, city,
	       violation_type, description, images, confidence, status,
	       assigned_to, resolved_by, resolved_at, admin_notes,
	       created_at, updated_at`

func scanReport(row pgx.Row) (*entity.Report, error) {
	var report entity.Report
	err := row.Scan(
		&report.ID,
		&report.ReportedBy,
		&report.Location.Latitude,
		&report.Location.Longitude,
		&report.Location.Address,
		&report.Location.City,
		&report.ViolationType,
		&report.Description,
		&report.Images,
		&report.Confidence,
		&report.Status,
		&report.AssignedTo,
		&report.ResolvedBy,
		&report.ResolvedAt,
		&report.AdminNotes,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO reports (id, reported_by, latitude, longitude, address, city,
		                    violation_type, description, images, confidence, status,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		report.ID,
		report.ReportedBy,
		report.Location.Latitude,
		report.Location.Longitude,
		report.Location.Address,
		report.Location.City,
		report.ViolationType,
		report.Description,
		report.Images,
		report.Confidence,
		report.Status,
		report.CreatedAt,
		report.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create report",
			zap.Error(err),
			zap.String("reported_by", report.ReportedBy.String()),
		)
		return fmt.Errorf("create report: %w", err)
	}

	return nil
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

	report, err := scanReport(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find report by ID",
			zap.Error(err),
			zap.String("report_id", id.String()),
		)
		return nil, fmt.Errorf("find report by ID %s: %w", id.String(), err)
	}

	return report, nil
}

func (r *reportRepository) FindAll(ctx context.Context, filter ReportFilter, limit, offset int) ([]*entity.Report, error) {
	where, args := filter.buildWhere()

	query := fmt.Sprintf(`SELECT `+reportColumns+` FROM reports%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list reports",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reports limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var reports []*entity.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			r.log.Error("Failed to scan report row", zap.Error(err))
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}

	return reports, nil
}

func (r *reportRepository) Count(ctx context.Context, filter ReportFilter) (int64, error) {
	where, args := filter.buildWhere()
	query := "SELECT COUNT(*) FROM reports" + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count reports", zap.Error(err))
		return 0, fmt.Errorf("count reports: %w", err)
	}

	return count, nil
}

// UpdateStatus writes the moderation fields only. The resolved columns are
// set or cleared exactly as the entity carries them.
func (r *reportRepository) UpdateStatus(ctx context.Context, report *entity.Report) error {
	query := `
		UPDATE reports
		SET status = $2, resolved_by = $3, resolved_at = $4,
		    admin_notes = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		report.ID,
		report.Status,
		report.ResolvedBy,
		report.ResolvedAt,
		report.AdminNotes,
		report.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update report status",
			zap.Error(err),
			zap.String("report_id", report.ID.String()),
		)
		return fmt.Errorf("update report %s: %w", report.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("report %s not found", report.ID.String())
	}

	return nil
}

func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reports WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete report",
			zap.Error(err),
			zap.String("report_id", id.String()),
		)
		return fmt.Errorf("delete report %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("report %s not found", id.String())
	}

	return nil
}

func (r *reportRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	query := `SELECT status, COUNT(*) FROM reports GROUP BY status`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to count reports by status", zap.Error(err))
		return nil, fmt.Errorf("count reports by status: %w", err)
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	return counts, nil
}

func (r *reportRepository) CountByViolationType(ctx context.Context) ([]ViolationTypeCount, error) {
	query := `SELECT violation_type, COUNT(*) FROM reports GROUP BY violation_type`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to count reports by violation type", zap.Error(err))
		return nil, fmt.Errorf("count reports by violation type: %w", err)
	}
	defer rows.Close()

	var counts []ViolationTypeCount
	for rows.Next() {
		var c ViolationTypeCount
		if err := rows.Scan(&c.ViolationType, &c.Count); err != nil {
			return nil, fmt.Errorf("scan violation type count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate violation type counts: %w", err)
	}

	return counts, nil
}

// MonthlyCounts groups report counts by calendar month of creation, most
// recent first, capped at limit groups.
func (r *reportRepository) MonthlyCounts(ctx context.Context, limit int) ([]MonthlyCount, error) {
	query := `
		SELECT EXTRACT(YEAR FROM created_at)::int AS year,
		       EXTRACT(MONTH FROM created_at)::int AS month,
		       COUNT(*)
		FROM reports
		GROUP BY year, month
		ORDER BY year DESC, month DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to count reports by month", zap.Error(err))
		return nil, fmt.Errorf("count reports by month: %w", err)
	}
	defer rows.Close()

	var counts []MonthlyCount
	for rows.Next() {
		var c MonthlyCount
		if err := rows.Scan(&c.Year, &c.Month, &c.Count); err != nil {
			return nil, fmt.Errorf("scan monthly count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly counts: %w", err)
	}

	return counts, nil
}

// CountWithStatus returns the total report count, or the count for one
// status when status is non-nil.
func (r *reportRepository) CountWithStatus(ctx context.Context, status *entity.ReportStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM reports`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count reports", zap.Error(err))
		return 0, fmt.Errorf("count reports: %w", err)
	}

	return count, nil
}

// FindWithinBounds returns the heatmap projection for reports inside the
// box, boundary-inclusive. A nil box matches everything.
func (r *reportRepository) FindWithinBounds(ctx context.Context, box *BoundingBox) ([]HeatmapPoint, error) {
	query := `SELECT latitude, longitude, status, violation_type, created_at FROM reports`
	args := []any{}
	if box != nil {
		query += ` WHERE latitude >= $1 AND latitude <= $2 AND longitude >= $3 AND longitude <= $4`
		args = append(args, box.SWLat, box.NELat, box.SWLng, box.NELng)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query heatmap points", zap.Error(err))
		return nil, fmt.Errorf("find reports within bounds: %w", err)
	}
	defer rows.Close()

	var points []HeatmapPoint
	for rows.Next() {
		var p HeatmapPoint
		if err := rows.Scan(&p.Latitude, &p.Longitude, &p.Status, &p.ViolationType, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan heatmap point: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate heatmap points: %w", err)
	}

	return points, nil
}

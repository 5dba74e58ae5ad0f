package usecase

import (
	"context"
	"time"

	"billboard-watch/internal/data/entity"
	"billboard-watch/internal/data/repository"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory stand-in mirroring the store's contracts:
// not-found reads return (nil, nil), default reads exclude the password
// hash, and the consume calls are match-and-clear.
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) add(user *entity.User) {
	stored := *user
	f.users[user.ID] = &stored
}

func cloneUser(user *entity.User, withPassword bool) *entity.User {
	clone := *user
	if !withPassword {
		clone.PasswordHash = ""
	}
	return &clone
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(user, false), nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return cloneUser(user, false), nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByIDWithPassword(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(user, true), nil
}

func (f *fakeUserRepo) FindByEmailWithPassword(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return cloneUser(user, true), nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return nil
	}
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Phone = user.Phone
	stored.Role = user.Role
	stored.IsActive = user.IsActive
	stored.IsEmailVerified = user.IsEmailVerified
	stored.UpdatedAt = user.UpdatedAt
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	stored, ok := f.users[id]
	if !ok {
		return nil
	}
	stored.PasswordHash = passwordHash
	stored.PasswordResetToken = nil
	stored.PasswordResetExpires = nil
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if stored, ok := f.users[id]; ok {
		stored.LastLogin = &at
	}
	return nil
}

func (f *fakeUserRepo) SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error {
	if stored, ok := f.users[id]; ok {
		stored.PasswordResetToken = &token
		stored.PasswordResetExpires = &expires
	}
	return nil
}

func (f *fakeUserRepo) ConsumeVerificationToken(ctx context.Context, tokenValue string) (*entity.User, error) {
	for _, stored := range f.users {
		if stored.EmailVerificationToken != nil && *stored.EmailVerificationToken == tokenValue {
			stored.IsEmailVerified = true
			stored.EmailVerificationToken = nil
			return cloneUser(stored, false), nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ConsumeResetToken(ctx context.Context, tokenValue, passwordHash string) (*entity.User, error) {
	for _, stored := range f.users {
		if stored.PasswordResetToken == nil || *stored.PasswordResetToken != tokenValue {
			continue
		}
		if stored.PasswordResetExpires == nil || !stored.PasswordResetExpires.After(time.Now()) {
			continue
		}
		stored.PasswordHash = passwordHash
		stored.PasswordResetToken = nil
		stored.PasswordResetExpires = nil
		return cloneUser(stored, false), nil
	}
	return nil, nil
}

// fakeReportRepo keeps reports in memory and records the filter of the last
// list call so scoping decisions can be asserted.
type fakeReportRepo struct {
	reports map[uuid.UUID]*entity.Report

	lastFilter *repository.ReportFilter
	monthly    []repository.MonthlyCount
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*entity.Report)}
}

func (f *fakeReportRepo) add(report *entity.Report) {
	stored := *report
	f.reports[report.ID] = &stored
}

func (f *fakeReportRepo) matches(report *entity.Report, filter repository.ReportFilter) bool {
	if filter.ReportedBy != nil && report.ReportedBy != *filter.ReportedBy {
		return false
	}
	if filter.Status != nil && report.Status != *filter.Status {
		return false
	}
	if filter.ViolationType != nil && report.ViolationType != *filter.ViolationType {
		return false
	}
	return true
}

func (f *fakeReportRepo) Create(ctx context.Context, report *entity.Report) error {
	f.add(report)
	return nil
}

func (f *fakeReportRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, nil
	}
	clone := *report
	return &clone, nil
}

func (f *fakeReportRepo) FindAll(ctx context.Context, filter repository.ReportFilter, limit, offset int) ([]*entity.Report, error) {
	f.lastFilter = &filter

	var out []*entity.Report
	for _, report := range f.reports {
		if f.matches(report, filter) {
			clone := *report
			out = append(out, &clone)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeReportRepo) Count(ctx context.Context, filter repository.ReportFilter) (int64, error) {
	var count int64
	for _, report := range f.reports {
		if f.matches(report, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeReportRepo) UpdateStatus(ctx context.Context, report *entity.Report) error {
	stored, ok := f.reports[report.ID]
	if !ok {
		return nil
	}
	stored.Status = report.Status
	stored.ResolvedBy = report.ResolvedBy
	stored.ResolvedAt = report.ResolvedAt
	stored.AdminNotes = report.AdminNotes
	stored.UpdatedAt = report.UpdatedAt
	return nil
}

func (f *fakeReportRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.reports, id)
	return nil
}

func (f *fakeReportRepo) CountByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	counts := make(map[entity.ReportStatus]int64)
	for _, report := range f.reports {
		counts[report.Status]++
	}
	var out []repository.StatusCount
	for status, count := range counts {
		out = append(out, repository.StatusCount{Status: status, Count: count})
	}
	return out, nil
}

func (f *fakeReportRepo) CountByViolationType(ctx context.Context) ([]repository.ViolationTypeCount, error) {
	counts := make(map[entity.ViolationType]int64)
	for _, report := range f.reports {
		counts[report.ViolationType]++
	}
	var out []repository.ViolationTypeCount
	for violationType, count := range counts {
		out = append(out, repository.ViolationTypeCount{ViolationType: violationType, Count: count})
	}
	return out, nil
}

func (f *fakeReportRepo) MonthlyCounts(ctx context.Context, limit int) ([]repository.MonthlyCount, error) {
	if len(f.monthly) > limit {
		return f.monthly[:limit], nil
	}
	return f.monthly, nil
}

func (f *fakeReportRepo) CountWithStatus(ctx context.Context, status *entity.ReportStatus) (int64, error) {
	var count int64
	for _, report := range f.reports {
		if status == nil || report.Status == *status {
			count++
		}
	}
	return count, nil
}

func (f *fakeReportRepo) FindWithinBounds(ctx context.Context, box *repository.BoundingBox) ([]repository.HeatmapPoint, error) {
	var out []repository.HeatmapPoint
	for _, report := range f.reports {
		if box != nil && !box.Contains(report.Location.Latitude, report.Location.Longitude) {
			continue
		}
		out = append(out, repository.HeatmapPoint{
			Latitude:      report.Location.Latitude,
			Longitude:     report.Location.Longitude,
			Status:        report.Status,
			ViolationType: report.ViolationType,
			CreatedAt:     report.CreatedAt,
		})
	}
	return out, nil
}

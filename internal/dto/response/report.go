package response

import (
	"time"

	"billboard-watch/internal/data/entity"
)

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	City      *string `json:"city,omitempty"`
}

type ReportResponse struct {
	ID            string               `json:"id"`
	ReportedBy    string               `json:"reportedBy"`
	Location      LocationResponse     `json:"location"`
	ViolationType entity.ViolationType `json:"violationType"`
	Description   *string              `json:"description,omitempty"`
	Images        []string             `json:"images"`
	Confidence    *float64             `json:"confidence,omitempty"`
	Status        entity.ReportStatus  `json:"status"`
	AssignedTo    *string              `json:"assignedTo,omitempty"`
	ResolvedBy    *string              `json:"resolvedBy,omitempty"`
	ResolvedAt    *time.Time           `json:"resolvedAt,omitempty"`
	AdminNotes    *string              `json:"adminNotes,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

func ReportToResponse(report *entity.Report) ReportResponse {
	resp := ReportResponse{
		ID:         report.ID.String(),
		ReportedBy: report.ReportedBy.String(),
		Location: LocationResponse{
			Latitude:  report.Location.Latitude,
			Longitude: report.Location.Longitude,
			Address:   report.Location.Address,
			City:      report.Location.City,
		},
		ViolationType: report.ViolationType,
		Description:   report.Description,
		Images:        report.Images,
		Confidence:    report.Confidence,
		Status:        report.Status,
		ResolvedAt:    report.ResolvedAt,
		AdminNotes:    report.AdminNotes,
		CreatedAt:     report.CreatedAt,
	}

	if resp.Images == nil {
		resp.Images = []string{}
	}
	if report.AssignedTo != nil {
		s := report.AssignedTo.String()
		resp.AssignedTo = &s
	}
	if report.ResolvedBy != nil {
		s := report.ResolvedBy.String()
		resp.ResolvedBy = &s
	}

	return resp
}

func ReportsToResponse(reports []*entity.Report) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for _, report := range reports {
		out = append(out, ReportToResponse(report))
	}
	return out
}

type ReportListResponse struct {
	Reports    []ReportResponse `json:"reports"`
	Pagination PaginationMeta   `json:"pagination"`
}

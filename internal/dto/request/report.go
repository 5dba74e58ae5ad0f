package request

type LocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Address   string  `json:"address" validate:"required,min=1,max=500"`
	City      *string `json:"city,omitempty" validate:"omitempty,max=100"`
}

type CreateReportRequest struct {
	Location      LocationRequest `json:"location" validate:"required"`
	ViolationType string          `json:"violationType" validate:"required,oneof=size location content structural"`
	Description   *string         `json:"description,omitempty" validate:"omitempty,max=1000"`
	Images        []string        `json:"images,omitempty"`
	Confidence    *float64        `json:"confidence,omitempty" validate:"omitempty,min=0,max=1"`
}

type UpdateReportStatusRequest struct {
	Status     string  `json:"status" validate:"required,oneof=pending verified resolved dismissed"`
	AdminNotes *string `json:"adminNotes,omitempty" validate:"omitempty,max=1000"`
}

// ListReportsRequest carries the recognized query parameters for listings.
// Parsed from the URL query, then validated before any store call.
type ListReportsRequest struct {
	PaginatedRequest
	Status        string `validate:"omitempty,oneof=pending verified resolved dismissed"`
	ViolationType string `validate:"omitempty,oneof=size location content structural"`
	StartDate     string `validate:"omitempty"`
	EndDate       string `validate:"omitempty"`
	Search        string
}

package request

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

type PaginatedRequest struct {
	Page  int `json:"page" validate:"min=1"`
	Limit int `json:"limit" validate:"min=1,max=100"`
}

// PerPage clamps the requested page size to the allowed window.
func (p PaginatedRequest) PerPage() int {
	if p.Limit < 1 {
		return defaultPerPage
	}
	if p.Limit > maxPerPage {
		return maxPerPage
	}
	return p.Limit
}

package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"billboard-watch/internal/data/entity"

	"github.com/google/uuid"
)

// ReportFilter is the typed query specification for report listings. Each
// field is one recognized filter dimension; nil/empty means no restriction
// on that dimension.
type ReportFilter struct {
	Status        *entity.ReportStatus
	ViolationType *entity.ViolationType
	StartDate     *time.Time
	EndDate       *time.Time
	// Search matches case-insensitively as a substring against address,
	// city, and description.
	Search string
	// ReportedBy scopes results to one owner. The service layer sets it for
	// callers with role user; it overrides any other scoping.
	ReportedBy *uuid.UUID
}

// buildWhere renders the filter as a WHERE clause with positional args.
// Returns an empty string when nothing is restricted.
func (f ReportFilter) buildWhere() (string, []any) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != nil {
		conditions = append(conditions, "status = "+arg(*f.Status))
	}
	if f.ViolationType != nil {
		conditions = append(conditions, "violation_type = "+arg(*f.ViolationType))
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= "+arg(*f.StartDate))
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= "+arg(*f.EndDate))
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		p := arg(pattern)
		conditions = append(conditions, fmt.Sprintf(
			"(address ILIKE %s OR city ILIKE %s OR description ILIKE %s)", p, p, p))
	}
	if f.ReportedBy != nil {
		conditions = append(conditions, "reported_by = "+arg(*f.ReportedBy))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters so a search term matches
// literally.
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace

// BoundingBox is a rectangular geographic region given by its southwest and
// northeast corners. Containment is boundary-inclusive.
type BoundingBox struct {
	SWLat float64
	SWLng float64
	NELat float64
	NELng float64
}

// Contains reports whether the coordinates fall within the box.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.SWLat && lat <= b.NELat && lng >= b.SWLng && lng <= b.NELng
}

// ParseBounds parses "swLat,swLng,neLat,neLng". An empty string means no
// bounds (nil box). Wrong arity or non-numeric components are an error, not
// an empty filter.
func ParseBounds(s string) (*BoundingBox, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bounds must have 4 comma-separated components, got %d", len(parts))
	}

	values := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bounds component %q is not a number", part)
		}
		values[i] = v
	}

	return &BoundingBox{
		SWLat: values[0],
		SWLng: values[1],
		NELat: values[2],
		NELng: values[3],
	}, nil
}

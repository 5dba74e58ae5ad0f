package entity

import (
	"time"

	"github.com/google/uuid"
)

type ViolationType string

const (
	ViolationSize       ViolationType = "size"
	ViolationLocation   ViolationType = "location"
	ViolationContent    ViolationType = "content"
	ViolationStructural ViolationType = "structural"
)

func (v ViolationType) Valid() bool {
	switch v {
	case ViolationSize, ViolationLocation, ViolationContent, ViolationStructural:
		return true
	}
	return false
}

type ReportStatus string

const (
	StatusPending   ReportStatus = "pending"
	StatusVerified  ReportStatus = "verified"
	StatusResolved  ReportStatus = "resolved"
	StatusDismissed ReportStatus = "dismissed"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

// Terminal reports whether the status stamps resolvedBy/resolvedAt.
func (s ReportStatus) Terminal() bool {
	return s == StatusResolved || s == StatusDismissed
}

type Location struct {
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
	Address   string  `db:"address"`
	City      *string `db:"city"`
}

type Report struct {
	Base
	ReportedBy    uuid.UUID     `db:"reported_by"`
	Location      Location
	ViolationType ViolationType `db:"violation_type"`
	Description   *string       `db:"description"`
	Images        []string      `db:"images"`
	Confidence    *float64      `db:"confidence"`
	Status        ReportStatus  `db:"status"`
	AssignedTo    *uuid.UUID    `db:"assigned_to"`
	ResolvedBy    *uuid.UUID    `db:"resolved_by"`
	ResolvedAt    *time.Time    `db:"resolved_at"`
	AdminNotes    *string       `db:"admin_notes"`
}

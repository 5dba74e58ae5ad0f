// Package policy is the single source of truth for role- and ownership-based
// access decisions on reports. Handlers and services must not compare role
// strings themselves.
package policy

import (
	"billboard-watch/internal/data/entity"

	"github.com/google/uuid"
)

// Operation on a report a caller may request.
type Operation string

const (
	OpCreate       Operation = "create"
	OpRead         Operation = "read"
	OpList         Operation = "list"
	OpUpdateStatus Operation = "update-status"
	OpDelete       Operation = "delete"
)

// Allow decides whether the caller may perform op on a report owned by
// ownerID. Rules are evaluated in order, first match wins:
//
//  1. admin/moderator: read, list and update-status on any report;
//     delete only for admin.
//  2. user: create always; read, list and delete only on own reports;
//     never update-status.
//  3. everything else: deny.
func Allow(role entity.UserRole, callerID, ownerID uuid.UUID, op Operation) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleModerator:
		switch op {
		case OpCreate, OpRead, OpList, OpUpdateStatus:
			return true
		case OpDelete:
			return role == entity.RoleAdmin
		}
		return false

	case entity.RoleUser:
		switch op {
		case OpCreate:
			return true
		case OpRead, OpList, OpDelete:
			return callerID == ownerID
		}
		return false
	}

	return false
}

// CanModerate reports whether the role has blanket access to reports,
// which controls whether list queries are scoped to the caller.
func CanModerate(role entity.UserRole) bool {
	return role == entity.RoleAdmin || role == entity.RoleModerator
}

package usecase

import (
	"billboard-watch/internal/data/entity"
	"billboard-watch/internal/data/repository"
	"billboard-watch/pkg/token"
	"billboard-watch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Caller is the authenticated identity established by the auth middleware.
type Caller struct {
	ID   uuid.UUID
	Role entity.UserRole
}

type Service struct {
	Auth   AuthService
	Report ReportService
}

func NewService(repo *repository.Repository, tokens *token.Service, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, tokens, config, log),
		Report: NewReportService(repo, log),
	}
}

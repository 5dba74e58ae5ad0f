package repository

import (
	"billboard-watch/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User   UserRepository
	Report ReportRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:   NewUserRepository(db, log),
		Report: NewReportRepository(db, log),
	}
}

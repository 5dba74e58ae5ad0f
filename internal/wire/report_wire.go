package wire

import (
	"net/http"

	"billboard-watch/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReport(
	r chi.Router,
	reportHandler *adaptor.ReportHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/api/reports", func(r chi.Router) {
		r.Use(auth)

		r.Post("/", reportHandler.Create)
		r.Get("/", reportHandler.List)

		// Fixed prefixes before the id parameter
		r.Get("/analytics/stats", reportHandler.Stats)
		r.Get("/analytics/heatmap", reportHandler.Heatmap)

		r.Get("/{id}", reportHandler.GetByID)
		r.Put("/{id}/status", reportHandler.UpdateStatus)
		r.Delete("/{id}", reportHandler.Delete)
	})
}

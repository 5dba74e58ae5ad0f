package response

import "billboard-watch/internal/data/repository"

type StatsOverview struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Verified int64 `json:"verified"`
	Resolved int64 `json:"resolved"`
}

type StatsResponse struct {
	Overview           StatsOverview                   `json:"overview"`
	StatusStats        []repository.StatusCount        `json:"statusStats"`
	ViolationTypeStats []repository.ViolationTypeCount `json:"violationTypeStats"`
	MonthlyStats       []repository.MonthlyCount       `json:"monthlyStats"`
}

type HeatmapResponse struct {
	HeatmapData []repository.HeatmapPoint `json:"heatmapData"`
}

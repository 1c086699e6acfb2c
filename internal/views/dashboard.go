// Package views builds screen-ready values from store query results.
// Every builder is a pure function over injected collections: no store
// access, no side effects, deterministic for identical inputs.
package views

import (
	"time"

	"terralot/internal/model"
)

// DashboardStats is the farm-wide summary the home screen renders.
type DashboardStats struct {
	TotalLots          int `json:"total_lots"`
	ActiveLots         int `json:"active_lots"`
	TotalTasks         int `json:"total_tasks"`
	PendingTasks       int `json:"pending_tasks"`
	CompletedTasks     int `json:"completed_tasks"`
	TotalTreatments    int `json:"total_treatments"`
	RecentTreatments   int `json:"recent_treatments"`
	TotalHealthRecords int `json:"total_health_records"`
	ActiveHealthIssues int `json:"active_health_issues"`
}

// recentWindow is the trailing window for "recent" treatments.
const recentWindow = 7 * 24 * time.Hour

// BuildDashboardStats computes the dashboard counts. A treatment is
// recent when applicationDate >= now - 7d, boundary instant included.
func BuildDashboardStats(
	lots []model.Lot,
	tasks []model.Task,
	treatments []model.Treatment,
	records []model.HealthRecord,
	now time.Time,
) DashboardStats {
	stats := DashboardStats{
		TotalLots:          len(lots),
		TotalTasks:         len(tasks),
		TotalTreatments:    len(treatments),
		TotalHealthRecords: len(records),
	}
	for _, lot := range lots {
		if lot.Status == model.LotActive {
			stats.ActiveLots++
		}
	}
	for _, task := range tasks {
		switch task.Status {
		case model.TaskPending:
			stats.PendingTasks++
		case model.TaskCompleted:
			stats.CompletedTasks++
		}
	}
	cutoff := now.Add(-recentWindow)
	for _, treatment := range treatments {
		if !treatment.ApplicationDate.Before(cutoff) {
			stats.RecentTreatments++
		}
	}
	for _, record := range records {
		if record.Status == model.HealthUnderTreatment {
			stats.ActiveHealthIssues++
		}
	}
	return stats
}

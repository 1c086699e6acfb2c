package views

import (
	"time"

	"terralot/internal/model"
)

// InspectionStatus classifies how urgent an infrastructure inspection is.
type InspectionStatus string

const (
	InspectionOverdue   InspectionStatus = "overdue"
	InspectionUpcoming  InspectionStatus = "upcoming"
	InspectionScheduled InspectionStatus = "scheduled"
)

// upcomingWindow is how far ahead an inspection counts as upcoming.
// Exactly 7 days out is still upcoming.
const upcomingWindow = 7 * 24 * time.Hour

// InspectionStatusFor classifies a next-inspection date relative to now.
func InspectionStatusFor(nextInspection, now time.Time) InspectionStatus {
	switch {
	case nextInspection.Before(now):
		return InspectionOverdue
	case nextInspection.Sub(now) <= upcomingWindow:
		return InspectionUpcoming
	default:
		return InspectionScheduled
	}
}

// InspectionStatusOf classifies one infrastructure record.
func InspectionStatusOf(inf model.Infrastructure, now time.Time) InspectionStatus {
	return InspectionStatusFor(inf.NextInspection, now)
}

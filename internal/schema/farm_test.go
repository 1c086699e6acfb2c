package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func farmRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := Farm()
	require.NoError(t, err)
	return reg
}

func validLot() map[string]any {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	return map[string]any{
		"id":   "lot-1",
		"name": "North field",
		"code": "NF-01",
		"area": 4.5,
		"coordinates": []any{
			map[string]any{"latitude": -34.6, "longitude": -58.4},
			map[string]any{"latitude": -34.7, "longitude": -58.4},
			map[string]any{"latitude": -34.7, "longitude": -58.5},
		},
		"status":         "active",
		"ownerId":        "user-1",
		"organizationId": "org-1",
		"createdAt":      now,
		"updatedAt":      now,
	}
}

func TestLotPerimeterNeedsThreePoints(t *testing.T) {
	reg := farmRegistry(t)

	lot := validLot()
	lot["coordinates"] = []any{
		map[string]any{"latitude": -34.6, "longitude": -58.4},
		map[string]any{"latitude": -34.7, "longitude": -58.4},
	}
	err := reg.Validate(TypeLot, lot)
	var verr *ViolationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "3 points")

	assert.NoError(t, reg.Validate(TypeLot, validLot()))
}

func TestLotAreaMustBePositive(t *testing.T) {
	reg := farmRegistry(t)
	lot := validLot()
	lot["area"] = 0.0
	assert.Error(t, reg.Validate(TypeLot, lot))
	lot["area"] = -2.0
	assert.Error(t, reg.Validate(TypeLot, lot))
}

func TestLotSlopeRange(t *testing.T) {
	reg := farmRegistry(t)
	lot := validLot()
	lot["slope"] = 101.0
	assert.Error(t, reg.Validate(TypeLot, lot))
	lot["slope"] = 35.0
	assert.NoError(t, reg.Validate(TypeLot, lot))
}

func TestTaskCompletedAtPairsWithStatus(t *testing.T) {
	reg := farmRegistry(t)
	due := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	task := map[string]any{
		"id":       "task-1",
		"title":    "Prune",
		"dueDate":  due,
		"priority": "high",
		"status":   "completed",
		"category": "maintenance",
	}
	assert.Error(t, reg.Validate(TypeTask, task), "completed without completedAt")

	task["completedAt"] = due.Add(time.Hour)
	assert.NoError(t, reg.Validate(TypeTask, task))

	task["status"] = "pending"
	assert.Error(t, reg.Validate(TypeTask, task), "completedAt on a pending task")
}

func TestInfrastructureInspectionOrdering(t *testing.T) {
	reg := farmRegistry(t)
	last := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	inf := map[string]any{
		"id":             "inf-1",
		"lotId":          "lot-1",
		"type":           "irrigation",
		"status":         "good",
		"lastInspection": last,
		"nextInspection": last.AddDate(0, 1, 0),
	}
	assert.NoError(t, reg.Validate(TypeInfrastructure, inf))

	inf["nextInspection"] = last
	assert.Error(t, reg.Validate(TypeInfrastructure, inf))

	inf["nextInspection"] = last.AddDate(0, 0, -1)
	assert.Error(t, reg.Validate(TypeInfrastructure, inf))
}

func TestCropHistoryFailureReason(t *testing.T) {
	reg := farmRegistry(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	crop := map[string]any{
		"id":                  "crop-1",
		"lotId":               "lot-1",
		"cropType":            "maize",
		"variety":             "DK-72",
		"season":              "2024",
		"startDate":           start,
		"plantingDate":        start.AddDate(0, 0, 10),
		"expectedHarvestDate": start.AddDate(0, 6, 0),
		"density": map[string]any{
			"plantsPerHectare": 70000.0,
			"rowSpacing":       0.52,
			"plantSpacing":     0.27,
		},
		"status":         "failed",
		"createdBy":      "user-1",
		"organizationId": "org-1",
		"createdAt":      start,
		"updatedAt":      start,
	}
	assert.Error(t, reg.Validate(TypeCropHistory, crop), "failed without failureReason")

	crop["failureReason"] = "late frost"
	assert.NoError(t, reg.Validate(TypeCropHistory, crop))

	crop["status"] = "in_progress"
	assert.Error(t, reg.Validate(TypeCropHistory, crop), "failureReason outside failed status")
}

func TestTreatmentEffectivenessOnlyWhenEvaluated(t *testing.T) {
	reg := farmRegistry(t)
	applied := time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)
	treatment := map[string]any{
		"id":                "treat-1",
		"lotId":             "lot-1",
		"type":              "fungicide",
		"product":           "CuproMax",
		"activeIngredient":  "copper oxychloride",
		"quantity":          12.0,
		"unit":              "l",
		"dosagePerHectare":  2.5,
		"applicationMethod": "spray",
		"applicationDate":   applied,
		"applicator":        "J. Fernandez",
		"status":            "applied",
		"createdBy":         "user-1",
		"organizationId":    "org-1",
		"createdAt":         applied,
		"updatedAt":         applied,
	}
	assert.NoError(t, reg.Validate(TypeTreatment, treatment))

	treatment["effectiveness"] = map[string]any{
		"rating":         4,
		"evaluationDate": applied.AddDate(0, 0, 14),
		"observations":   "good control",
	}
	assert.Error(t, reg.Validate(TypeTreatment, treatment), "effectiveness before evaluation")

	treatment["status"] = "evaluated"
	assert.NoError(t, reg.Validate(TypeTreatment, treatment))
}

func TestHealthRecordResolutionPairsWithStatus(t *testing.T) {
	reg := farmRegistry(t)
	date := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	record := map[string]any{
		"id":             "health-1",
		"lotId":          "lot-1",
		"date":           date,
		"type":           "pest",
		"name":           "aphids",
		"severity":       "medium",
		"description":    "colonies on new growth",
		"status":         "resolved",
		"createdBy":      "user-1",
		"organizationId": "org-1",
		"createdAt":      date,
		"updatedAt":      date,
	}
	assert.Error(t, reg.Validate(TypeHealthRecord, record), "resolved without resolution")

	record["resolution"] = map[string]any{
		"date":          date.AddDate(0, 0, 21),
		"effectiveness": 5,
		"notes":         "no aphids after second spray",
	}
	assert.NoError(t, reg.Validate(TypeHealthRecord, record))

	record["status"] = "controlled"
	assert.Error(t, reg.Validate(TypeHealthRecord, record), "resolution outside resolved status")
}

func TestHealthRecordAffectedAreaPercentage(t *testing.T) {
	reg := farmRegistry(t)
	date := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	record := map[string]any{
		"id":             "health-2",
		"lotId":          "lot-1",
		"date":           date,
		"type":           "disease",
		"name":           "rust",
		"severity":       "high",
		"description":    "orange pustules",
		"status":         "identified",
		"createdBy":      "user-1",
		"organizationId": "org-1",
		"createdAt":      date,
		"updatedAt":      date,
		"affectedArea": map[string]any{
			"size":         1.2,
			"percentage":   130.0,
			"distribution": "scattered",
			"location":     "edge",
		},
	}
	assert.Error(t, reg.Validate(TypeHealthRecord, record))
}

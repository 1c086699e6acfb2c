package schema

import (
	"fmt"
	"time"
)

// Entity type names used across the store, query engine and views.
const (
	TypeLot            = "Lot"
	TypeLocation       = "Location"
	TypeCropHistory    = "CropHistory"
	TypeTreatment      = "Treatment"
	TypeHealthRecord   = "HealthRecord"
	TypeInfrastructure = "Infrastructure"
	TypeImageRecord    = "ImageRecord"
	TypeTask           = "Task"
	TypeEconomicRecord = "EconomicRecord"
	TypeAlert          = "Alert"
)

// Farm returns the registry for the farm-management data model: lots and
// the child entities that attach to them by foreign key.
func Farm() (*Registry, error) {
	return NewRegistry(
		EntityDef{
			Name:     TypeLocation,
			Embedded: true,
			Fields: []Field{
				{Name: "latitude", Type: TypeFloat},
				{Name: "longitude", Type: TypeFloat},
			},
		},
		EntityDef{
			Name: TypeLot,
			Fields: []Field{
				{Name: "id", PrimaryKey: true},
				{Name: "name"},
				{Name: "code"},
				{Name: "area", Type: TypeFloat},
				{Name: "coordinates", Kind: KindList, Ref: TypeLocation},
				{Name: "soilType", Optional: true},
				{Name: "irrigation", Kind: KindEmbedded, Optional: true},
				{Name: "slope", Type: TypeFloat, Optional: true},
				{Name: "orientation", Optional: true,
					Enum: []string{"N", "S", "E", "W", "NE", "NW", "SE", "SW"}},
				{Name: "status",
					Enum: []string{"active", "fallow", "preparation", "inactive"}},
				{Name: "notes", Optional: true},
				{Name: "lastInspectionDate", Type: TypeDate, Optional: true},
				{Name: "ownerId"},
				{Name: "organizationId"},
				{Name: "createdAt", Type: TypeDate},
				{Name: "updatedAt", Type: TypeDate},
			},
			Check: checkLot,
		},
		EntityDef{
			Name: TypeCropHistory,
			Fields: []Field{
				{Name: "id", PrimaryKey: true},
				{Name: "lotId", Kind: KindReference, Ref: TypeLot},
				{Name: "cropType"},
				{Name: "variety"},
				{Name: "season"},
				{Name: "startDate", Type: TypeDate},
				{Name: "plantingDate", Type: TypeDate},
				{Name: "expectedHarvestDate", Type: TypeDate},
				{Name: "actualHarvestDate", Type: TypeDate, Optional: true},
				{Name: "endDate", Type: TypeDate, Optional: true},
				{Name: "yield", Kind: KindEmbedded, Optional: true},
				{Name: "density", Kind: KindEmbedded},
				{Name: "fertilization", Kind: KindList, Type: TypeObject, Optional: true},
				{Name: "irrigation", Kind: KindList, Type: TypeObject, Optional: true},
				{Name: "weather", Kind: KindEmbedded, Optional: true},
				{Name: "costs", Kind: KindEmbedded, Optional: true},
				{Name: "status",
					Enum: []string{"planned", "in_progress", "harvested", "failed", "completed"}},
				{Name: "failureReason", Optional: true},
				{Name: "notes", Optional: true},
				{Name: "images", Kind: KindList, Optional: true},
				{Name: "createdBy"},
				{Name: "organizationId"},
				{Name: "createdAt", Type: TypeDate},
				{Name: "updatedAt", Type: TypeDate},
			},
			Check: checkCropHistory,
		},
		EntityDef{
			Name: TypeTreatment,
			Fields: []Field{
				{Name: "id", PrimaryKey: true},
				{Name: "lotId", Kind: KindReference, Ref: TypeLot},
				{Name: "cropHistoryId", Kind: KindReference, Ref: TypeCropHistory, Optional: true},
				{Name: "type",
					Enum: []string{"fertilizer", "pesticide", "herbicide", "fungicide", "biological", "other"}},
				{Name: "product"},
				{Name: "activeIngredient"},
				{Name: "quantity", Type: TypeFloat},
				{Name: "unit"},
				{Name: "dosagePerHectare", Type: TypeFloat},
				{Name: "applicationMethod",
					Enum: []string{"spray", "drip", "granular", "foliar", "soil", "other"}},
				{Name: "applicationDate", Type: TypeDate},
				{Name: "nextApplicationDate", Type: TypeDate, Optional: true},
				{Name: "applicator"},
				{Name: "weather", Kind: KindEmbedded, Optional: true},
				{Name: "effectiveness", Kind: KindEmbedded, Optional: true},
				{Name: "costs", Kind: KindEmbedded, Optional: true},
				{Name: "safetyMeasures", Kind: KindEmbedded, Optional: true},
				{Name: "certification", Kind: KindEmbedded, Optional: true},
				{Name: "images", Kind: KindList, Optional: true},
				{Name: "notes", Optional: true},
				{Name: "status",
					Enum: []string{"planned", "applied", "evaluated", "cancelled"}},
				{Name: "createdBy"},
				{Name: "organizationId"},
				{Name: "createdAt", Type: TypeDate},
				{Name: "updatedAt", Type: TypeDate},
			},
			Check: checkTreatment,
		},
		EntityDef{
			Name: TypeHealthRecord,
			Fields: []Field{
				{Name: "id", PrimaryKey: true},
				{Name: "lotId", Kind: KindReference, Ref: TypeLot},
				{Name: "cropHistoryId", Kind: KindReference, Ref: TypeCropHistory, Optional: true},
				{Name: "date", Type: TypeDate},
				{Name: "type",
					Enum: []string{"pest", "disease", "deficiency", "weed", "stress", "other"}},
				{Name: "name"},
				{Name: "severity",
					Enum: []string{"low", "medium", "high", "critical"}},
				{Name: "description"},
				{Name: "symptoms", Kind: KindList, Optional: true},
				{Name: "affectedArea", Kind: KindEmbedded, Optional: true},
				{Name: "diagnosis", Kind: KindEmbedded, Optional: true},
				{Name: "treatment", Kind: KindEmbedded, Optional: true},
				{Name: "monitoring", Kind: KindEmbedded, Optional: true},
				{Name: "images", Kind: KindList, Type: TypeObject, Optional: true},
				{Name: "status",
					Enum: []string{"identified", "under_treatment", "controlled", "resolved"}},
				{Name: "resolution", Kind: KindEmbedded, Optional: true},
				{Name: "notes", Optional: true},
				{Name: "createdBy"},
				{Name: "organizationId"},
				{Name: "createdAt", Type: TypeDate},
				{Name: "updatedAt", Type: TypeDate},
			},
			Check: checkHealthRecord,
		},
		EntityDef{
			Name: TypeInfrastructure,
			Fields: []Field{
				{Name: "id", PrimaryKey: true},
				{Name: "lotId", Kind: KindReference, Ref: TypeLot},
				{Name: "type",
					Enum: []string{"irrigation", "greenhouse", "storage", "other"}},
				{Name: "status",
					Enum: []string{"good", "regular", "needs_repair", "critical"}},
				{Name: "lastInspection", Type: TypeDate},
				{Name: "nextInspection", Type: TypeDate},
				{Name: "notes", Optional: true},
			},
			Check: checkInfrastructure,
		},
		EntityDef{
			Name: TypeImageRecord,
			Fields: []Field{
				{Name: "id", PrimaryKey: true},
				{Name: "lotId", Kind: KindReference, Ref: TypeLot},
				{Name: "uri"},
				{Name: "type",
					Enum: []string{"general", "issue", "progress", "infrastructure"}},
				{Name: "date", Type: TypeDate},
				{Name: "notes", Optional: true},
				{Name: "location", Kind: KindEmbedded, Ref: TypeLocation, Optional: true},
			},
		},
		EntityDef{
			Name: TypeTask,
			Fields: []Field{
				{Name: "id", PrimaryKey: true},
				{Name: "lotId", Kind: KindReference, Ref: TypeLot, Optional: true},
				{Name: "title"},
				{Name: "description", Optional: true},
				{Name: "dueDate", Type: TypeDate},
				{Name: "priority", Enum: []string{"low", "medium", "high"}},
				{Name: "status",
					Enum: []string{"pending", "in_progress", "completed", "cancelled"}},
				{Name: "assignedTo", Optional: true},
				{Name: "category",
					Enum: []string{"treatment", "maintenance", "harvest", "planting", "other"}},
				{Name: "completedAt", Type: TypeDate, Optional: true},
				{Name: "notes", Optional: true},
			},
			Check: checkTask,
		},
		EntityDef{
			Name: TypeEconomicRecord,
			Fields: []Field{
				{Name: "id", PrimaryKey: true},
				{Name: "lotId", Kind: KindReference, Ref: TypeLot, Optional: true},
				{Name: "date", Type: TypeDate},
				{Name: "type", Enum: []string{"income", "expense"}},
				{Name: "category"},
				{Name: "amount", Type: TypeFloat},
				{Name: "description"},
				{Name: "paymentMethod", Optional: true},
				{Name: "invoice", Optional: true},
				{Name: "notes", Optional: true},
			},
		},
		EntityDef{
			Name: TypeAlert,
			Fields: []Field{
				{Name: "id", PrimaryKey: true},
				{Name: "lotId", Kind: KindReference, Ref: TypeLot, Optional: true},
				{Name: "type",
					Enum: []string{"weather", "pest", "disease", "task", "maintenance", "other"}},
				{Name: "severity", Enum: []string{"info", "warning", "critical"}},
				{Name: "title"},
				{Name: "description"},
				{Name: "createdAt", Type: TypeDate},
				{Name: "expiresAt", Type: TypeDate, Optional: true},
				{Name: "acknowledged", Type: TypeBool},
				{Name: "relatedTaskId", Kind: KindReference, Ref: TypeTask, Optional: true},
			},
		},
	)
}

func checkLot(data map[string]any) error {
	if area, ok := numberField(data, "area"); ok && area <= 0 {
		return fmt.Errorf("area must be positive")
	}
	if coords, ok := data["coordinates"]; ok && coords != nil {
		items, err := asList(coords)
		if err == nil && len(items) < 3 {
			return fmt.Errorf("coordinates need at least 3 points to close a perimeter")
		}
	}
	if slope, ok := numberField(data, "slope"); ok && (slope < 0 || slope > 100) {
		return fmt.Errorf("slope must be between 0 and 100")
	}
	return nil
}

func checkCropHistory(data map[string]any) error {
	status, _ := data["status"].(string)
	if status == "failed" && stringField(data, "failureReason") == "" {
		return fmt.Errorf("failureReason is required when status is failed")
	}
	if status != "failed" && stringField(data, "failureReason") != "" {
		return fmt.Errorf("failureReason only applies to failed crops")
	}
	if _, ok := data["actualHarvestDate"]; ok && data["actualHarvestDate"] != nil {
		if status != "harvested" && status != "completed" {
			return fmt.Errorf("actualHarvestDate requires harvested or completed status")
		}
	}
	if density, ok := data["density"].(map[string]any); ok {
		for _, k := range []string{"plantsPerHectare", "rowSpacing", "plantSpacing"} {
			if v, ok := numberField(density, k); ok && v <= 0 {
				return fmt.Errorf("density.%s must be positive", k)
			}
		}
	}
	if costs, ok := data["costs"].(map[string]any); ok {
		for k := range costs {
			if v, ok := numberField(costs, k); ok && v < 0 {
				return fmt.Errorf("costs.%s must not be negative", k)
			}
		}
	}
	return nil
}

func checkTreatment(data map[string]any) error {
	if q, ok := numberField(data, "quantity"); ok && q <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if d, ok := numberField(data, "dosagePerHectare"); ok && d <= 0 {
		return fmt.Errorf("dosagePerHectare must be positive")
	}
	status, _ := data["status"].(string)
	if _, ok := data["effectiveness"]; ok && data["effectiveness"] != nil && status != "evaluated" {
		return fmt.Errorf("effectiveness is only recorded for evaluated treatments")
	}
	return nil
}

func checkHealthRecord(data map[string]any) error {
	if area, ok := data["affectedArea"].(map[string]any); ok {
		if pct, ok := numberField(area, "percentage"); ok && (pct < 0 || pct > 100) {
			return fmt.Errorf("affectedArea.percentage must be between 0 and 100")
		}
	}
	status, _ := data["status"].(string)
	_, hasResolution := data["resolution"]
	hasResolution = hasResolution && data["resolution"] != nil
	if status == "resolved" && !hasResolution {
		return fmt.Errorf("resolution is required when status is resolved")
	}
	if status != "resolved" && hasResolution {
		return fmt.Errorf("resolution only applies to resolved records")
	}
	return nil
}

func checkInfrastructure(data map[string]any) error {
	last, okLast := dateField(data, "lastInspection")
	next, okNext := dateField(data, "nextInspection")
	if okLast && okNext && !next.After(last) {
		return fmt.Errorf("nextInspection must be after lastInspection")
	}
	return nil
}

func checkTask(data map[string]any) error {
	status, _ := data["status"].(string)
	_, hasCompletedAt := data["completedAt"]
	hasCompletedAt = hasCompletedAt && data["completedAt"] != nil
	if status == "completed" && !hasCompletedAt {
		return fmt.Errorf("completedAt is required when status is completed")
	}
	if status != "completed" && hasCompletedAt {
		return fmt.Errorf("completedAt only applies to completed tasks")
	}
	return nil
}

func numberField(data map[string]any, name string) (float64, bool) {
	switch v := data[name].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func stringField(data map[string]any, name string) string {
	s, _ := data[name].(string)
	return s
}

func dateField(data map[string]any, name string) (time.Time, bool) {
	switch v := data[name].(type) {
	case time.Time:
		return v, true
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

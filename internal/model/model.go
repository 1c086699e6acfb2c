// Package model defines the typed farm entities the views and the
// reminder scheduler consume. The store itself is schema-driven and
// generic; these structs are the screen-facing shape, converted from
// store entities through a JSON round trip.
package model

import "time"

// Location is one point of a lot perimeter.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LotStatus is the production state of a lot.
type LotStatus string

const (
	LotActive      LotStatus = "active"
	LotFallow      LotStatus = "fallow"
	LotPreparation LotStatus = "preparation"
	LotInactive    LotStatus = "inactive"
)

// Irrigation describes how a lot is watered.
type Irrigation struct {
	Type        string `json:"type"` // drip, sprinkler, flood, none
	Description string `json:"description,omitempty"`
}

// Lot is a managed parcel of land, the root aggregate the other
// entities attach to by foreign key.
type Lot struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Code               string     `json:"code"`
	Area               float64    `json:"area"` // hectares
	Coordinates        []Location `json:"coordinates"`
	SoilType           string     `json:"soilType,omitempty"`
	Irrigation         *Irrigation `json:"irrigation,omitempty"`
	Slope              float64    `json:"slope,omitempty"` // percentage
	Orientation        string     `json:"orientation,omitempty"`
	Status             LotStatus  `json:"status"`
	Notes              string     `json:"notes,omitempty"`
	LastInspectionDate *time.Time `json:"lastInspectionDate,omitempty"`
	OwnerID            string     `json:"ownerId"`
	OrganizationID     string     `json:"organizationId"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// CropStatus is the lifecycle state of a crop cycle.
type CropStatus string

const (
	CropPlanned    CropStatus = "planned"
	CropInProgress CropStatus = "in_progress"
	CropHarvested  CropStatus = "harvested"
	CropFailed     CropStatus = "failed"
	CropCompleted  CropStatus = "completed"
)

// Yield is the harvested output of a crop cycle.
type Yield struct {
	Amount  float64 `json:"amount"`
	Unit    string  `json:"unit"`
	Quality string  `json:"quality,omitempty"`
}

// Density describes planting density.
type Density struct {
	PlantsPerHectare float64 `json:"plantsPerHectare"`
	RowSpacing       float64 `json:"rowSpacing"`   // meters
	PlantSpacing     float64 `json:"plantSpacing"` // meters
}

// FertilizationEvent is one dated fertilizer application.
type FertilizationEvent struct {
	Date    time.Time `json:"date"`
	Product string    `json:"product"`
	Amount  float64   `json:"amount"`
	Unit    string    `json:"unit"`
	Method  string    `json:"method"`
}

// IrrigationEvent is one dated irrigation run.
type IrrigationEvent struct {
	Date     time.Time `json:"date"`
	Duration float64   `json:"duration"` // hours
	Amount   float64   `json:"amount,omitempty"`
	Type     string    `json:"type"`
}

// CropCosts is the optional cost breakdown of a crop cycle.
type CropCosts struct {
	Seeds       float64 `json:"seeds,omitempty"`
	Fertilizers float64 `json:"fertilizers,omitempty"`
	Pesticides  float64 `json:"pesticides,omitempty"`
	Labor       float64 `json:"labor,omitempty"`
	Irrigation  float64 `json:"irrigation,omitempty"`
	Other       float64 `json:"other,omitempty"`
}

// CropHistory is one crop cycle on a lot.
type CropHistory struct {
	ID                  string               `json:"id"`
	LotID               string               `json:"lotId"`
	CropType            string               `json:"cropType"`
	Variety             string               `json:"variety"`
	Season              string               `json:"season"`
	StartDate           time.Time            `json:"startDate"`
	PlantingDate        time.Time            `json:"plantingDate"`
	ExpectedHarvestDate time.Time            `json:"expectedHarvestDate"`
	ActualHarvestDate   *time.Time           `json:"actualHarvestDate,omitempty"`
	EndDate             *time.Time           `json:"endDate,omitempty"`
	Yield               *Yield               `json:"yield,omitempty"`
	Density             Density              `json:"density"`
	Fertilization       []FertilizationEvent `json:"fertilization,omitempty"`
	Irrigation          []IrrigationEvent    `json:"irrigation,omitempty"`
	Costs               *CropCosts           `json:"costs,omitempty"`
	Status              CropStatus           `json:"status"`
	FailureReason       string               `json:"failureReason,omitempty"`
	Notes               string               `json:"notes,omitempty"`
	Images              []string             `json:"images,omitempty"`
	CreatedBy           string               `json:"createdBy"`
	OrganizationID      string               `json:"organizationId"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

// TreatmentStatus is the lifecycle state of a treatment.
type TreatmentStatus string

const (
	TreatmentPlanned   TreatmentStatus = "planned"
	TreatmentApplied   TreatmentStatus = "applied"
	TreatmentEvaluated TreatmentStatus = "evaluated"
	TreatmentCancelled TreatmentStatus = "cancelled"
)

// WeatherSnapshot captures conditions at application time.
type WeatherSnapshot struct {
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection string  `json:"windDirection,omitempty"`
	Conditions    string  `json:"conditions"`
	SoilMoisture  string  `json:"soilMoisture,omitempty"`
}

// Effectiveness is the post-application evaluation of a treatment.
type Effectiveness struct {
	Rating         int       `json:"rating"` // 1-5
	EvaluationDate time.Time `json:"evaluationDate"`
	Observations   string    `json:"observations"`
}

// SafetyMeasures records handling constraints of an applied product.
type SafetyMeasures struct {
	ReentryInterval     int      `json:"reentryInterval"` // hours
	HarvestInterval     int      `json:"harvestInterval"` // days
	ProtectiveEquipment []string `json:"protectiveEquipment,omitempty"`
}

// Certification is the optional organic certification block.
type Certification struct {
	Organic             bool   `json:"organic"`
	Certifier           string `json:"certifier,omitempty"`
	CertificationNumber string `json:"certificationNumber,omitempty"`
}

// Treatment is one product application on a lot.
type Treatment struct {
	ID                  string           `json:"id"`
	LotID               string           `json:"lotId"`
	CropHistoryID       string           `json:"cropHistoryId,omitempty"`
	Type                string           `json:"type"`
	Product             string           `json:"product"`
	ActiveIngredient    string           `json:"activeIngredient"`
	Quantity            float64          `json:"quantity"`
	Unit                string           `json:"unit"`
	DosagePerHectare    float64          `json:"dosagePerHectare"`
	ApplicationMethod   string           `json:"applicationMethod"`
	ApplicationDate     time.Time        `json:"applicationDate"`
	NextApplicationDate *time.Time       `json:"nextApplicationDate,omitempty"`
	Applicator          string           `json:"applicator"`
	Weather             *WeatherSnapshot `json:"weather,omitempty"`
	Effectiveness       *Effectiveness   `json:"effectiveness,omitempty"`
	SafetyMeasures      *SafetyMeasures  `json:"safetyMeasures,omitempty"`
	Certification       *Certification   `json:"certification,omitempty"`
	Images              []string         `json:"images,omitempty"`
	Notes               string           `json:"notes,omitempty"`
	Status              TreatmentStatus  `json:"status"`
	CreatedBy           string           `json:"createdBy"`
	OrganizationID      string           `json:"organizationId"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// HealthStatus is the lifecycle state of a health incident.
type HealthStatus string

const (
	HealthIdentified     HealthStatus = "identified"
	HealthUnderTreatment HealthStatus = "under_treatment"
	HealthControlled     HealthStatus = "controlled"
	HealthResolved       HealthStatus = "resolved"
)

// AffectedArea locates and sizes a health incident.
type AffectedArea struct {
	Size         float64 `json:"size"` // hectares
	Percentage   float64 `json:"percentage"`
	Distribution string  `json:"distribution"`
	Location     string  `json:"location"`
}

// Diagnosis records how an incident was identified.
type Diagnosis struct {
	ConfirmedBy string    `json:"confirmedBy,omitempty"`
	Method      string    `json:"method"`
	Date        time.Time `json:"date"`
	Confidence  string    `json:"confidence"`
}

// HealthTreatment links recommendations to applied measures.
type HealthTreatment struct {
	Recommended   []string   `json:"recommended,omitempty"`
	Applied       []string   `json:"applied,omitempty"`
	Effectiveness int        `json:"effectiveness,omitempty"`
	TreatmentDate *time.Time `json:"treatmentDate,omitempty"`
	FollowUpDate  *time.Time `json:"followUpDate,omitempty"`
}

// Monitoring is the follow-up cadence of an incident.
type Monitoring struct {
	Frequency          string    `json:"frequency"`
	Method             string    `json:"method"`
	ResponsiblePerson  string    `json:"responsiblePerson"`
	NextInspectionDate time.Time `json:"nextInspectionDate"`
}

// HealthImage is one typed photo attached to an incident.
type HealthImage struct {
	URI         string    `json:"uri"`
	Type        string    `json:"type"` // symptom, damage, treatment, recovery
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
}

// Resolution closes a health incident.
type Resolution struct {
	Date          time.Time `json:"date"`
	Effectiveness int       `json:"effectiveness"`
	Notes         string    `json:"notes"`
}

// HealthRecord is one pest, disease or stress incident on a lot.
type HealthRecord struct {
	ID             string           `json:"id"`
	LotID          string           `json:"lotId"`
	CropHistoryID  string           `json:"cropHistoryId,omitempty"`
	Date           time.Time        `json:"date"`
	Type           string           `json:"type"`
	Name           string           `json:"name"`
	Severity       string           `json:"severity"`
	Description    string           `json:"description"`
	Symptoms       []string         `json:"symptoms,omitempty"`
	AffectedArea   *AffectedArea    `json:"affectedArea,omitempty"`
	Diagnosis      *Diagnosis       `json:"diagnosis,omitempty"`
	Treatment      *HealthTreatment `json:"treatment,omitempty"`
	Monitoring     *Monitoring      `json:"monitoring,omitempty"`
	Images         []HealthImage    `json:"images,omitempty"`
	Status         HealthStatus     `json:"status"`
	Resolution     *Resolution      `json:"resolution,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	CreatedBy      string           `json:"createdBy"`
	OrganizationID string           `json:"organizationId"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Infrastructure is a physical installation on a lot.
type Infrastructure struct {
	ID             string    `json:"id"`
	LotID          string    `json:"lotId"`
	Type           string    `json:"type"`   // irrigation, greenhouse, storage, other
	Status         string    `json:"status"` // good, regular, needs_repair, critical
	LastInspection time.Time `json:"lastInspection"`
	NextInspection time.Time `json:"nextInspection"`
	Notes          string    `json:"notes,omitempty"`
}

// ImageRecord is a standalone photo attached to a lot.
type ImageRecord struct {
	ID       string    `json:"id"`
	LotID    string    `json:"lotId"`
	URI      string    `json:"uri"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes,omitempty"`
	Location *Location `json:"location,omitempty"`
}

// Priority orders task urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// Task is a dated unit of farm work, optionally attached to a lot.
type Task struct {
	ID          string     `json:"id"`
	LotID       string     `json:"lotId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     time.Time  `json:"dueDate"`
	Priority    Priority   `json:"priority"`
	Status      TaskStatus `json:"status"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	Category    string     `json:"category"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// EconomicRecord is one income or expense entry.
type EconomicRecord struct {
	ID            string    `json:"id"`
	LotID         string    `json:"lotId,omitempty"`
	Date          time.Time `json:"date"`
	Type          string    `json:"type"` // income, expense
	Category      string    `json:"category"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	Invoice       string    `json:"invoice,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// Alert is a surfaced warning, optionally linked to a task.
type Alert struct {
	ID            string     `json:"id"`
	LotID         string     `json:"lotId,omitempty"`
	Type          string     `json:"type"`
	Severity      string     `json:"severity"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CreatedAt     time.Time  `json:"createdAt"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	Acknowledged  bool       `json:"acknowledged"`
	RelatedTaskID string     `json:"relatedTaskId,omitempty"`
}

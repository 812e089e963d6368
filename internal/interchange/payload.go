package interchange

import "fmt"

// PayloadVersion identifies the interchange payload format.
const PayloadVersion = "1.0"

// Correlation key prefixes, one per referenceable entity type. Keys are
// payload-local ordinals like "mot:1"; they are never storage ids and do
// not survive outside one payload.
const (
	keyMot        = "mot"
	keyService    = "service"
	keyFuel       = "fuel"
	keyTodo       = "todo"
	keyAttachment = "attachment"
	keyPart       = "part"
	keyConsumable = "consumable"
)

func correlationKey(prefix string, n int) string {
	return fmt.Sprintf("%s:%d", prefix, n)
}

// Payload is the portable representation of a set of vehicles and every
// record that hangs off them.
type Payload struct {
	Version    string          `json:"version"`
	ExportedAt string          `json:"exported_at"` // RFC 3339
	Vehicles   []VehicleRecord `json:"vehicles"`
}

// VehicleRecord is one self-contained vehicle graph. Reference entities
// appear as natural names (vehicle type, part category, consumable type)
// and every internal cross-reference is a correlation key.
type VehicleRecord struct {
	VehicleType        string  `json:"vehicle_type"`
	Name               string  `json:"name,omitempty"`
	RegistrationNumber string  `json:"registration_number,omitempty"`
	Make               string  `json:"make,omitempty"`
	Model              string  `json:"model,omitempty"`
	Year               int     `json:"year,omitempty"`
	VIN                string  `json:"vin,omitempty"`
	EngineNumber       string  `json:"engine_number,omitempty"`
	Color              string  `json:"color,omitempty"`
	Status             string  `json:"status,omitempty"`
	PurchaseCost       float64 `json:"purchase_cost,omitempty"`
	PurchaseDate       string  `json:"purchase_date,omitempty"`
	PurchaseMileage    int     `json:"purchase_mileage,omitempty"`
	ServiceIntervalMonths int  `json:"service_interval_months,omitempty"`
	ServiceIntervalMiles  int  `json:"service_interval_miles,omitempty"`
	DepreciationMethod string  `json:"depreciation_method,omitempty"`
	DepreciationYears  int     `json:"depreciation_years,omitempty"`
	DepreciationRate   float64 `json:"depreciation_rate,omitempty"`
	RoadTaxExempt      bool    `json:"road_tax_exempt,omitempty"`
	MotExempt          bool    `json:"mot_exempt,omitempty"`

	Specification    *SpecificationEntry `json:"specification,omitempty"`
	MotRecords       []MotEntry          `json:"mot_records,omitempty"`
	ServiceRecords   []ServiceEntry      `json:"service_records,omitempty"`
	FuelRecords      []FuelEntry         `json:"fuel_records,omitempty"`
	Parts            []PartEntry         `json:"parts,omitempty"`
	Consumables      []ConsumableEntry   `json:"consumables,omitempty"`
	Todos            []TodoEntry         `json:"todos,omitempty"`
	RoadTaxRecords   []RoadTaxEntry      `json:"road_tax_records,omitempty"`
	InsuranceRecords []InsuranceEntry    `json:"insurance_records,omitempty"`
	Attachments      []AttachmentEntry   `json:"attachments,omitempty"`
}

// SpecificationEntry mirrors the vehicle's data sheet.
type SpecificationEntry struct {
	EngineType        string `json:"engine_type,omitempty"`
	Displacement      string `json:"displacement,omitempty"`
	MaxPower          string `json:"max_power,omitempty"`
	MaxTorque         string `json:"max_torque,omitempty"`
	FuelSystem        string `json:"fuel_system,omitempty"`
	Cooling           string `json:"cooling,omitempty"`
	SparkplugType     string `json:"sparkplug_type,omitempty"`
	CoolantType       string `json:"coolant_type,omitempty"`
	CoolantCapacity   string `json:"coolant_capacity,omitempty"`
	Gearbox           string `json:"gearbox,omitempty"`
	Transmission      string `json:"transmission,omitempty"`
	FinalDrive        string `json:"final_drive,omitempty"`
	EngineOilType     string `json:"engine_oil_type,omitempty"`
	EngineOilCapacity string `json:"engine_oil_capacity,omitempty"`
	FrontSuspension   string `json:"front_suspension,omitempty"`
	RearSuspension    string `json:"rear_suspension,omitempty"`
	FrontBrakes       string `json:"front_brakes,omitempty"`
	RearBrakes        string `json:"rear_brakes,omitempty"`
	FrontTyre         string `json:"front_tyre,omitempty"`
	RearTyre          string `json:"rear_tyre,omitempty"`
	FrontTyrePressure string `json:"front_tyre_pressure,omitempty"`
	RearTyrePressure  string `json:"rear_tyre_pressure,omitempty"`
	DryWeight         string `json:"dry_weight,omitempty"`
	WetWeight         string `json:"wet_weight,omitempty"`
	FuelCapacity      string `json:"fuel_capacity,omitempty"`
	TopSpeed          string `json:"top_speed,omitempty"`
	AdditionalInfo    string `json:"additional_info,omitempty"`
	SourceURL         string `json:"source_url,omitempty"`
	ScrapedAt         int64  `json:"scraped_at,omitempty"`
}

// MotEntry is one MOT test result.
type MotEntry struct {
	Key            string  `json:"key"`
	TestDate       string  `json:"test_date,omitempty"`
	ExpiryDate     string  `json:"expiry_date,omitempty"`
	Result         string  `json:"result,omitempty"`
	Mileage        int     `json:"mileage,omitempty"`
	TestNumber     string  `json:"test_number,omitempty"`
	TestingStation string  `json:"testing_station,omitempty"`
	Advisories     string  `json:"advisories,omitempty"`
	Failures       string  `json:"failures,omitempty"`
	TestCost       float64 `json:"test_cost,omitempty"`
	RepairCost     float64 `json:"repair_cost,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// ServiceEntry is one maintenance event with its line items.
type ServiceEntry struct {
	Key                string             `json:"key"`
	MotKey             string             `json:"mot_key,omitempty"`
	ServiceDate        string             `json:"service_date,omitempty"`
	ServiceType        string             `json:"service_type,omitempty"`
	LaborCost          float64            `json:"labor_cost,omitempty"`
	PartsCost          float64            `json:"parts_cost,omitempty"`
	ConsumablesCost    float64            `json:"consumables_cost,omitempty"`
	AdditionalCosts    float64            `json:"additional_costs,omitempty"`
	Mileage            int                `json:"mileage,omitempty"`
	ServiceProvider    string             `json:"service_provider,omitempty"`
	NextServiceDate    string             `json:"next_service_date,omitempty"`
	NextServiceMileage int                `json:"next_service_mileage,omitempty"`
	WorkPerformed      string             `json:"work_performed,omitempty"`
	Notes              string             `json:"notes,omitempty"`
	Items              []ServiceItemEntry `json:"items,omitempty"`
}

// ServiceItemEntry is one line item. Exactly one of PartKey and
// ConsumableKey must be set.
type ServiceItemEntry struct {
	Type          string  `json:"type"`
	Description   string  `json:"description,omitempty"`
	Cost          float64 `json:"cost,omitempty"`
	Quantity      int     `json:"quantity,omitempty"`
	PartKey       string  `json:"part_key,omitempty"`
	ConsumableKey string  `json:"consumable_key,omitempty"`
}

// FuelEntry is one fill-up.
type FuelEntry struct {
	Key      string  `json:"key"`
	Date     string  `json:"date,omitempty"`
	Litres   float64 `json:"litres,omitempty"`
	Cost     float64 `json:"cost,omitempty"`
	Mileage  int     `json:"mileage,omitempty"`
	FuelType string  `json:"fuel_type,omitempty"`
	Station  string  `json:"station,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// PartEntry is one purchased part. Category is the part category's
// natural name; the four *Key fields carry same-payload cross-references.
type PartEntry struct {
	Key                   string  `json:"key"`
	Category              string  `json:"category,omitempty"`
	ServiceKey            string  `json:"service_key,omitempty"`
	MotKey                string  `json:"mot_key,omitempty"`
	TodoKey               string  `json:"todo_key,omitempty"`
	AttachmentKey         string  `json:"attachment_key,omitempty"`
	Name                  string  `json:"name"`
	Description           string  `json:"description,omitempty"`
	PartNumber            string  `json:"part_number,omitempty"`
	Manufacturer          string  `json:"manufacturer,omitempty"`
	Supplier              string  `json:"supplier,omitempty"`
	Price                 float64 `json:"price,omitempty"`
	Quantity              int     `json:"quantity,omitempty"`
	Cost                  float64 `json:"cost,omitempty"`
	WarrantyMonths        int     `json:"warranty_months,omitempty"`
	PurchaseDate          string  `json:"purchase_date,omitempty"`
	InstallationDate      string  `json:"installation_date,omitempty"`
	MileageAtInstallation int     `json:"mileage_at_installation,omitempty"`
	IncludedInServiceCost bool    `json:"included_in_service_cost,omitempty"`
	Notes                 string  `json:"notes,omitempty"`
	ProductURL            string  `json:"product_url,omitempty"`
}

// ConsumableEntry is one consumable. Type is the consumable type's
// natural name.
type ConsumableEntry struct {
	Key                      string  `json:"key"`
	Type                     string  `json:"type,omitempty"`
	ServiceKey               string  `json:"service_key,omitempty"`
	MotKey                   string  `json:"mot_key,omitempty"`
	TodoKey                  string  `json:"todo_key,omitempty"`
	AttachmentKey            string  `json:"attachment_key,omitempty"`
	Description              string  `json:"description"`
	Brand                    string  `json:"brand,omitempty"`
	PartNumber               string  `json:"part_number,omitempty"`
	Supplier                 string  `json:"supplier,omitempty"`
	Quantity                 float64 `json:"quantity,omitempty"`
	Cost                     float64 `json:"cost,omitempty"`
	LastChanged              string  `json:"last_changed,omitempty"`
	MileageAtChange          int     `json:"mileage_at_change,omitempty"`
	ReplacementIntervalMiles int     `json:"replacement_interval_miles,omitempty"`
	NextReplacementMileage   int     `json:"next_replacement_mileage,omitempty"`
	IncludedInServiceCost    bool    `json:"included_in_service_cost,omitempty"`
	Notes                    string  `json:"notes,omitempty"`
	ProductURL               string  `json:"product_url,omitempty"`
}

// TodoEntry is one outstanding job.
type TodoEntry struct {
	Key         string `json:"key"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Priority    int    `json:"priority,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Completed   bool   `json:"completed,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// RoadTaxEntry is one taxation period.
type RoadTaxEntry struct {
	StartDate  string  `json:"start_date,omitempty"`
	ExpiryDate string  `json:"expiry_date,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
	Frequency  string  `json:"frequency,omitempty"`
	SORN       bool    `json:"sorn,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// InsuranceEntry is one cover period. The holder is always the importing
// owner.
type InsuranceEntry struct {
	Provider     string  `json:"provider,omitempty"`
	PolicyNumber string  `json:"policy_number,omitempty"`
	CoverageType string  `json:"coverage_type,omitempty"`
	StartDate    string  `json:"start_date,omitempty"`
	ExpiryDate   string  `json:"expiry_date,omitempty"`
	AnnualCost   float64 `json:"annual_cost,omitempty"`
	Excess       string  `json:"excess,omitempty"`
	AutoRenewal  bool    `json:"auto_renewal,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// AttachmentEntry is attachment metadata. EntityType/EntityKey link the
// attachment to another record in the same payload; both empty means a
// vehicle-level attachment. Binary content never travels in the payload.
type AttachmentEntry struct {
	Key              string `json:"key"`
	EntityType       string `json:"entity_type,omitempty"`
	EntityKey        string `json:"entity_key,omitempty"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename,omitempty"`
	MimeType         string `json:"mime_type,omitempty"`
	FileSize         int64  `json:"file_size,omitempty"`
	StoragePath      string `json:"storage_path,omitempty"`
	Category         string `json:"category,omitempty"`
	Description      string `json:"description,omitempty"`
}

package models

// MotRecord is a periodic roadworthiness test result for a vehicle.
type MotRecord struct {
	ID             UUID    `db:"id" json:"id"`
	VehicleID      UUID    `db:"vehicle_id" json:"vehicle_id"`
	TestDate       string  `db:"test_date" json:"test_date,omitempty"` // YYYY-MM-DD
	ExpiryDate     string  `db:"expiry_date" json:"expiry_date,omitempty"`
	Result         string  `db:"result" json:"result,omitempty"`
	Mileage        int     `db:"mileage" json:"mileage,omitempty"`
	TestNumber     string  `db:"test_number" json:"test_number,omitempty"`
	TestingStation string  `db:"testing_station" json:"testing_station,omitempty"`
	Advisories     string  `db:"advisories" json:"advisories,omitempty"`
	Failures       string  `db:"failures" json:"failures,omitempty"`
	TestCost       float64 `db:"test_cost" json:"test_cost,omitempty"`
	RepairCost     float64 `db:"repair_cost" json:"repair_cost,omitempty"`
	Notes          string  `db:"notes" json:"notes,omitempty"`
	CreatedAt      int64   `db:"created_at" json:"created_at"`
}

// TableName returns the table name for MotRecord.
func (MotRecord) TableName() string {
	return "mot_records"
}

// ServiceRecord is a maintenance event. A service performed as part of an
// MOT test carries the MOT record's id.
type ServiceRecord struct {
	ID                 UUID    `db:"id" json:"id"`
	VehicleID          UUID    `db:"vehicle_id" json:"vehicle_id"`
	MotRecordID        UUID    `db:"mot_record_id" json:"mot_record_id,omitempty"`
	ServiceDate        string  `db:"service_date" json:"service_date,omitempty"`
	ServiceType        string  `db:"service_type" json:"service_type,omitempty"`
	LaborCost          float64 `db:"labor_cost" json:"labor_cost,omitempty"`
	PartsCost          float64 `db:"parts_cost" json:"parts_cost,omitempty"`
	ConsumablesCost    float64 `db:"consumables_cost" json:"consumables_cost,omitempty"`
	AdditionalCosts    float64 `db:"additional_costs" json:"additional_costs,omitempty"`
	Mileage            int     `db:"mileage" json:"mileage,omitempty"`
	ServiceProvider    string  `db:"service_provider" json:"service_provider,omitempty"`
	NextServiceDate    string  `db:"next_service_date" json:"next_service_date,omitempty"`
	NextServiceMileage int     `db:"next_service_mileage" json:"next_service_mileage,omitempty"`
	WorkPerformed      string  `db:"work_performed" json:"work_performed,omitempty"`
	Notes              string  `db:"notes" json:"notes,omitempty"`
	CreatedAt          int64   `db:"created_at" json:"created_at"`
}

// TableName returns the table name for ServiceRecord.
func (ServiceRecord) TableName() string {
	return "service_records"
}

// Service item types.
const (
	ServiceItemPart       = "part"
	ServiceItemConsumable = "consumable"
)

// ServiceItem is a line item inside a service record. It points to exactly
// one part or one consumable and snapshots cost/quantity at service time,
// independent of the referenced item's current values.
type ServiceItem struct {
	ID              UUID    `db:"id" json:"id"`
	ServiceRecordID UUID    `db:"service_record_id" json:"service_record_id"`
	Type            string  `db:"type" json:"type"`
	Description     string  `db:"description" json:"description,omitempty"`
	Cost            float64 `db:"cost" json:"cost,omitempty"`
	Quantity        int     `db:"quantity" json:"quantity,omitempty"`
	PartID          UUID    `db:"part_id" json:"part_id,omitempty"`
	ConsumableID    UUID    `db:"consumable_id" json:"consumable_id,omitempty"`
}

// TableName returns the table name for ServiceItem.
func (ServiceItem) TableName() string {
	return "service_items"
}

// FuelRecord is a single fill-up.
type FuelRecord struct {
	ID        UUID    `db:"id" json:"id"`
	VehicleID UUID    `db:"vehicle_id" json:"vehicle_id"`
	Date      string  `db:"date" json:"date,omitempty"`
	Litres    float64 `db:"litres" json:"litres,omitempty"`
	Cost      float64 `db:"cost" json:"cost,omitempty"`
	Mileage   int     `db:"mileage" json:"mileage,omitempty"`
	FuelType  string  `db:"fuel_type" json:"fuel_type,omitempty"`
	Station   string  `db:"station" json:"station,omitempty"`
	Notes     string  `db:"notes" json:"notes,omitempty"`
	CreatedAt int64   `db:"created_at" json:"created_at"`
}

// TableName returns the table name for FuelRecord.
func (FuelRecord) TableName() string {
	return "fuel_records"
}

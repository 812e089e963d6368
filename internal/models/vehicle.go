package models

import "time"

// Vehicle statuses accepted by import and CRUD.
const (
	StatusLive     = "Live"
	StatusSold     = "Sold"
	StatusScrapped = "Scrapped"
	StatusExported = "Exported"
)

// ValidStatus reports whether s is an accepted vehicle status.
func ValidStatus(s string) bool {
	switch s {
	case StatusLive, StatusSold, StatusScrapped, StatusExported:
		return true
	}
	return false
}

// Vehicle is the aggregate root. Every dependent record (MOT, service,
// fuel, parts, consumables, todos, road tax, insurance, attachments)
// hangs off a vehicle and shares its lifecycle.
type Vehicle struct {
	ID                 UUID    `db:"id" json:"id"`
	OwnerID            UUID    `db:"owner_id" json:"owner_id"`
	VehicleTypeID      UUID    `db:"vehicle_type_id" json:"vehicle_type_id"`
	Name               string  `db:"name" json:"name"`
	RegistrationNumber string  `db:"registration_number" json:"registration_number,omitempty"`
	Make               string  `db:"make" json:"make,omitempty"`
	Model              string  `db:"model" json:"model,omitempty"`
	Year               int     `db:"year" json:"year,omitempty"`
	VIN                string  `db:"vin" json:"vin,omitempty"`
	EngineNumber       string  `db:"engine_number" json:"engine_number,omitempty"`
	Color              string  `db:"color" json:"color,omitempty"`
	Status             string  `db:"status" json:"status"`
	PurchaseCost       float64 `db:"purchase_cost" json:"purchase_cost,omitempty"`
	PurchaseDate       string  `db:"purchase_date" json:"purchase_date,omitempty"` // YYYY-MM-DD
	PurchaseMileage    int     `db:"purchase_mileage" json:"purchase_mileage,omitempty"`
	ServiceIntervalMonths int  `db:"service_interval_months" json:"service_interval_months,omitempty"`
	ServiceIntervalMiles  int  `db:"service_interval_miles" json:"service_interval_miles,omitempty"`
	DepreciationMethod string  `db:"depreciation_method" json:"depreciation_method,omitempty"`
	DepreciationYears  int     `db:"depreciation_years" json:"depreciation_years,omitempty"`
	DepreciationRate   float64 `db:"depreciation_rate" json:"depreciation_rate,omitempty"`
	RoadTaxExempt      bool    `db:"road_tax_exempt" json:"road_tax_exempt,omitempty"`
	MotExempt          bool    `db:"mot_exempt" json:"mot_exempt,omitempty"`
	CreatedAt          int64   `db:"created_at" json:"created_at"`
	UpdatedAt          int64   `db:"updated_at" json:"updated_at"`
}

// TableName returns the table name for Vehicle.
func (Vehicle) TableName() string {
	return "vehicles"
}

// CreatedAtTime returns the CreatedAt as time.Time.
func (v *Vehicle) CreatedAtTime() time.Time {
	return time.Unix(v.CreatedAt, 0)
}

// Touch updates the UpdatedAt timestamp.
func (v *Vehicle) Touch() {
	v.UpdatedAt = time.Now().Unix()
}

// Specification holds the technical data sheet for a vehicle.
// Zero or one per vehicle.
type Specification struct {
	ID               UUID   `db:"id" json:"id"`
	VehicleID        UUID   `db:"vehicle_id" json:"vehicle_id"`
	EngineType       string `db:"engine_type" json:"engine_type,omitempty"`
	Displacement     string `db:"displacement" json:"displacement,omitempty"`
	MaxPower         string `db:"max_power" json:"max_power,omitempty"`
	MaxTorque        string `db:"max_torque" json:"max_torque,omitempty"`
	FuelSystem       string `db:"fuel_system" json:"fuel_system,omitempty"`
	Cooling          string `db:"cooling" json:"cooling,omitempty"`
	SparkplugType    string `db:"sparkplug_type" json:"sparkplug_type,omitempty"`
	CoolantType      string `db:"coolant_type" json:"coolant_type,omitempty"`
	CoolantCapacity  string `db:"coolant_capacity" json:"coolant_capacity,omitempty"`
	Gearbox          string `db:"gearbox" json:"gearbox,omitempty"`
	Transmission     string `db:"transmission" json:"transmission,omitempty"`
	FinalDrive       string `db:"final_drive" json:"final_drive,omitempty"`
	EngineOilType    string `db:"engine_oil_type" json:"engine_oil_type,omitempty"`
	EngineOilCapacity string `db:"engine_oil_capacity" json:"engine_oil_capacity,omitempty"`
	FrontSuspension  string `db:"front_suspension" json:"front_suspension,omitempty"`
	RearSuspension   string `db:"rear_suspension" json:"rear_suspension,omitempty"`
	FrontBrakes      string `db:"front_brakes" json:"front_brakes,omitempty"`
	RearBrakes       string `db:"rear_brakes" json:"rear_brakes,omitempty"`
	FrontTyre        string `db:"front_tyre" json:"front_tyre,omitempty"`
	RearTyre         string `db:"rear_tyre" json:"rear_tyre,omitempty"`
	FrontTyrePressure string `db:"front_tyre_pressure" json:"front_tyre_pressure,omitempty"`
	RearTyrePressure string `db:"rear_tyre_pressure" json:"rear_tyre_pressure,omitempty"`
	DryWeight        string `db:"dry_weight" json:"dry_weight,omitempty"`
	WetWeight        string `db:"wet_weight" json:"wet_weight,omitempty"`
	FuelCapacity     string `db:"fuel_capacity" json:"fuel_capacity,omitempty"`
	TopSpeed         string `db:"top_speed" json:"top_speed,omitempty"`
	AdditionalInfo   string `db:"additional_info" json:"additional_info,omitempty"`
	SourceURL        string `db:"source_url" json:"source_url,omitempty"`
	ScrapedAt        int64  `db:"scraped_at" json:"scraped_at,omitempty"`
}

// TableName returns the table name for Specification.
func (Specification) TableName() string {
	return "specifications"
}

package models

// Part is a purchased component fitted (or to be fitted) to a vehicle.
// It may be linked to the service record or MOT record it was fitted
// during, to the todo that tracks the job, and to a receipt attachment.
type Part struct {
	ID                    UUID    `db:"id" json:"id"`
	VehicleID             UUID    `db:"vehicle_id" json:"vehicle_id"`
	PartCategoryID        UUID    `db:"part_category_id" json:"part_category_id,omitempty"`
	ServiceRecordID       UUID    `db:"service_record_id" json:"service_record_id,omitempty"`
	MotRecordID           UUID    `db:"mot_record_id" json:"mot_record_id,omitempty"`
	TodoID                UUID    `db:"todo_id" json:"todo_id,omitempty"`
	ReceiptAttachmentID   UUID    `db:"receipt_attachment_id" json:"receipt_attachment_id,omitempty"`
	Name                  string  `db:"name" json:"name"`
	Description           string  `db:"description" json:"description,omitempty"`
	PartNumber            string  `db:"part_number" json:"part_number,omitempty"`
	Manufacturer          string  `db:"manufacturer" json:"manufacturer,omitempty"`
	Supplier              string  `db:"supplier" json:"supplier,omitempty"`
	Price                 float64 `db:"price" json:"price,omitempty"`
	Quantity              int     `db:"quantity" json:"quantity,omitempty"`
	Cost                  float64 `db:"cost" json:"cost,omitempty"`
	WarrantyMonths        int     `db:"warranty_months" json:"warranty_months,omitempty"`
	PurchaseDate          string  `db:"purchase_date" json:"purchase_date,omitempty"`
	InstallationDate      string  `db:"installation_date" json:"installation_date,omitempty"`
	MileageAtInstallation int     `db:"mileage_at_installation" json:"mileage_at_installation,omitempty"`
	IncludedInServiceCost bool    `db:"included_in_service_cost" json:"included_in_service_cost,omitempty"`
	Notes                 string  `db:"notes" json:"notes,omitempty"`
	ProductURL            string  `db:"product_url" json:"product_url,omitempty"`
	CreatedAt             int64   `db:"created_at" json:"created_at"`
}

// TableName returns the table name for Part.
func (Part) TableName() string {
	return "parts"
}

// Consumable is a serviceable fluid or wear item (oil, filter, brake
// fluid) with a replacement schedule. Cross-reference links mirror Part.
type Consumable struct {
	ID                       UUID    `db:"id" json:"id"`
	VehicleID                UUID    `db:"vehicle_id" json:"vehicle_id"`
	ConsumableTypeID         UUID    `db:"consumable_type_id" json:"consumable_type_id"`
	ServiceRecordID          UUID    `db:"service_record_id" json:"service_record_id,omitempty"`
	MotRecordID              UUID    `db:"mot_record_id" json:"mot_record_id,omitempty"`
	TodoID                   UUID    `db:"todo_id" json:"todo_id,omitempty"`
	ReceiptAttachmentID      UUID    `db:"receipt_attachment_id" json:"receipt_attachment_id,omitempty"`
	Description              string  `db:"description" json:"description"`
	Brand                    string  `db:"brand" json:"brand,omitempty"`
	PartNumber               string  `db:"part_number" json:"part_number,omitempty"`
	Supplier                 string  `db:"supplier" json:"supplier,omitempty"`
	Quantity                 float64 `db:"quantity" json:"quantity,omitempty"`
	Cost                     float64 `db:"cost" json:"cost,omitempty"`
	LastChanged              string  `db:"last_changed" json:"last_changed,omitempty"`
	MileageAtChange          int     `db:"mileage_at_change" json:"mileage_at_change,omitempty"`
	ReplacementIntervalMiles int     `db:"replacement_interval_miles" json:"replacement_interval_miles,omitempty"`
	NextReplacementMileage   int     `db:"next_replacement_mileage" json:"next_replacement_mileage,omitempty"`
	IncludedInServiceCost    bool    `db:"included_in_service_cost" json:"included_in_service_cost,omitempty"`
	Notes                    string  `db:"notes" json:"notes,omitempty"`
	ProductURL               string  `db:"product_url" json:"product_url,omitempty"`
	CreatedAt                int64   `db:"created_at" json:"created_at"`
	UpdatedAt                int64   `db:"updated_at" json:"updated_at"`
}

// TableName returns the table name for Consumable.
func (Consumable) TableName() string {
	return "consumables"
}

package models

// Todo is an outstanding job against a vehicle.
type Todo struct {
	ID          UUID   `db:"id" json:"id"`
	VehicleID   UUID   `db:"vehicle_id" json:"vehicle_id"`
	Title       string `db:"title" json:"title,omitempty"`
	Description string `db:"description" json:"description,omitempty"`
	Priority    int    `db:"priority" json:"priority,omitempty"`
	DueDate     string `db:"due_date" json:"due_date,omitempty"`
	Completed   bool   `db:"completed" json:"completed,omitempty"`
	CompletedAt string `db:"completed_at" json:"completed_at,omitempty"`
	Notes       string `db:"notes" json:"notes,omitempty"`
	CreatedAt   int64  `db:"created_at" json:"created_at"`
}

// TableName returns the table name for Todo.
func (Todo) TableName() string {
	return "todos"
}

// RoadTax is one taxation period for a vehicle.
type RoadTax struct {
	ID         UUID    `db:"id" json:"id"`
	VehicleID  UUID    `db:"vehicle_id" json:"vehicle_id"`
	StartDate  string  `db:"start_date" json:"start_date,omitempty"`
	ExpiryDate string  `db:"expiry_date" json:"expiry_date,omitempty"`
	Amount     float64 `db:"amount" json:"amount,omitempty"`
	Frequency  string  `db:"frequency" json:"frequency,omitempty"`
	SORN       bool    `db:"sorn" json:"sorn,omitempty"`
	Notes      string  `db:"notes" json:"notes,omitempty"`
	CreatedAt  int64   `db:"created_at" json:"created_at"`
}

// TableName returns the table name for RoadTax.
func (RoadTax) TableName() string {
	return "road_tax_records"
}

// InsurancePolicy is a cover period. The holder is the vehicle's owner.
type InsurancePolicy struct {
	ID           UUID    `db:"id" json:"id"`
	VehicleID    UUID    `db:"vehicle_id" json:"vehicle_id"`
	HolderID     UUID    `db:"holder_id" json:"holder_id"`
	Provider     string  `db:"provider" json:"provider,omitempty"`
	PolicyNumber string  `db:"policy_number" json:"policy_number,omitempty"`
	CoverageType string  `db:"coverage_type" json:"coverage_type,omitempty"`
	StartDate    string  `db:"start_date" json:"start_date,omitempty"`
	ExpiryDate   string  `db:"expiry_date" json:"expiry_date,omitempty"`
	AnnualCost   float64 `db:"annual_cost" json:"annual_cost,omitempty"`
	Excess       string  `db:"excess" json:"excess,omitempty"`
	AutoRenewal  bool    `db:"auto_renewal" json:"auto_renewal,omitempty"`
	Notes        string  `db:"notes" json:"notes,omitempty"`
	CreatedAt    int64   `db:"created_at" json:"created_at"`
}

// TableName returns the table name for InsurancePolicy.
func (InsurancePolicy) TableName() string {
	return "insurance_policies"
}

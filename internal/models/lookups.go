package models

// Lookup entities are shared reference rows resolved by natural name,
// optionally scoped to a parent vehicle type. They are find-or-created by
// the interchange resolver and never duplicated; uniqueness is enforced by
// the schema.

// VehicleType is a top-level vehicle classification (Car, Motorcycle...).
type VehicleType struct {
	ID   UUID   `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// TableName returns the table name for VehicleType.
func (VehicleType) TableName() string {
	return "vehicle_types"
}

// VehicleMake is a manufacturer, scoped to a vehicle type.
type VehicleMake struct {
	ID            UUID   `db:"id" json:"id"`
	VehicleTypeID UUID   `db:"vehicle_type_id" json:"vehicle_type_id"`
	Name          string `db:"name" json:"name"`
}

// TableName returns the table name for VehicleMake.
func (VehicleMake) TableName() string {
	return "vehicle_makes"
}

// VehicleModel is a model of a make, keyed by name and first model year.
type VehicleModel struct {
	ID        UUID   `db:"id" json:"id"`
	MakeID    UUID   `db:"make_id" json:"make_id"`
	Name      string `db:"name" json:"name"`
	StartYear int    `db:"start_year" json:"start_year"`
	EndYear   int    `db:"end_year" json:"end_year,omitempty"`
}

// TableName returns the table name for VehicleModel.
func (VehicleModel) TableName() string {
	return "vehicle_models"
}

// PartCategory groups parts, optionally per vehicle type.
type PartCategory struct {
	ID            UUID   `db:"id" json:"id"`
	VehicleTypeID UUID   `db:"vehicle_type_id" json:"vehicle_type_id,omitempty"`
	Name          string `db:"name" json:"name"`
}

// TableName returns the table name for PartCategory.
func (PartCategory) TableName() string {
	return "part_categories"
}

// ConsumableType classifies consumables (Engine Oil, Air Filter...).
type ConsumableType struct {
	ID            UUID   `db:"id" json:"id"`
	VehicleTypeID UUID   `db:"vehicle_type_id" json:"vehicle_type_id,omitempty"`
	Name          string `db:"name" json:"name"`
}

// TableName returns the table name for ConsumableType.
func (ConsumableType) TableName() string {
	return "consumable_types"
}

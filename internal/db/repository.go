package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/motorlog/motorlog/internal/models"
)

// Querier is the subset of database operations shared by *sql.DB and
// *sql.Tx. Repository methods run against whichever the repository was
// bound to, so the same code serves both autocommit reads and
// transactional imports.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Repository provides data access for the MotorLog ownership graph.
type Repository struct {
	q Querier
}

// NewRepository creates a repository bound to the database connection.
func NewRepository(db *DB) *Repository {
	return &Repository{q: db.DB}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{q: tx}
}

// BeginTx starts a write transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.DB.BeginTx(ctx, nil)
}

// nullable converts an empty string to NULL. Used for columns where the
// schema distinguishes absent from empty, e.g. the per-owner unique
// registration number.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// --- users ---

// CreateUser inserts a user row.
func (r *Repository) CreateUser(ctx context.Context, u *models.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, email, created_at) VALUES (?, ?, ?)`,
		u.ID, u.Email, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser fetches a user by id. Returns sql.ErrNoRows when absent.
func (r *Repository) GetUser(ctx context.Context, id models.UUID) (*models.User, error) {
	var u models.User
	err := r.q.QueryRowContext(ctx,
		`SELECT id, email, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// --- lookup tables ---

// EnsureVehicleType resolves a vehicle type by name, creating it when
// missing. The insert is a no-op on conflict so concurrent callers
// converge on one row. The bool reports whether a row was created.
func (r *Repository) EnsureVehicleType(ctx context.Context, name string) (models.UUID, bool, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO vehicle_types (id, name) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
		models.NewUUID(), name)
	if err != nil {
		return "", false, fmt.Errorf("failed to ensure vehicle type %q: %w", name, err)
	}
	created, _ := res.RowsAffected()

	var id models.UUID
	err = r.q.QueryRowContext(ctx,
		`SELECT id FROM vehicle_types WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve vehicle type %q: %w", name, err)
	}
	return id, created > 0, nil
}

// EnsureVehicleMake resolves a make by name within a vehicle type.
func (r *Repository) EnsureVehicleMake(ctx context.Context, typeID models.UUID, name string) (models.UUID, bool, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO vehicle_makes (id, vehicle_type_id, name) VALUES (?, ?, ?)
		 ON CONFLICT(name, vehicle_type_id) DO NOTHING`,
		models.NewUUID(), typeID, name)
	if err != nil {
		return "", false, fmt.Errorf("failed to ensure make %q: %w", name, err)
	}
	created, _ := res.RowsAffected()

	var id models.UUID
	err = r.q.QueryRowContext(ctx,
		`SELECT id FROM vehicle_makes WHERE name = ? AND vehicle_type_id = ?`, name, typeID).Scan(&id)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve make %q: %w", name, err)
	}
	return id, created > 0, nil
}

// EnsureVehicleModel resolves a model by name, make and first model year.
func (r *Repository) EnsureVehicleModel(ctx context.Context, makeID models.UUID, name string, startYear, endYear int) (models.UUID, bool, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO vehicle_models (id, make_id, name, start_year, end_year) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name, make_id, start_year) DO NOTHING`,
		models.NewUUID(), makeID, name, startYear, endYear)
	if err != nil {
		return "", false, fmt.Errorf("failed to ensure model %q: %w", name, err)
	}
	created, _ := res.RowsAffected()

	var id models.UUID
	err = r.q.QueryRowContext(ctx,
		`SELECT id FROM vehicle_models WHERE name = ? AND make_id = ? AND start_year = ?`,
		name, makeID, startYear).Scan(&id)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve model %q: %w", name, err)
	}
	return id, created > 0, nil
}

// EnsurePartCategory resolves a part category by name within a vehicle type.
func (r *Repository) EnsurePartCategory(ctx context.Context, typeID models.UUID, name string) (models.UUID, bool, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO part_categories (id, vehicle_type_id, name) VALUES (?, ?, ?)
		 ON CONFLICT(name, vehicle_type_id) DO NOTHING`,
		models.NewUUID(), typeID, name)
	if err != nil {
		return "", false, fmt.Errorf("failed to ensure part category %q: %w", name, err)
	}
	created, _ := res.RowsAffected()

	var id models.UUID
	err = r.q.QueryRowContext(ctx,
		`SELECT id FROM part_categories WHERE name = ? AND vehicle_type_id IS ?`, name, typeID).Scan(&id)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve part category %q: %w", name, err)
	}
	return id, created > 0, nil
}

// EnsureConsumableType resolves a consumable type by name.
func (r *Repository) EnsureConsumableType(ctx context.Context, typeID models.UUID, name string) (models.UUID, bool, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO consumable_types (id, vehicle_type_id, name) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO NOTHING`,
		models.NewUUID(), typeID, name)
	if err != nil {
		return "", false, fmt.Errorf("failed to ensure consumable type %q: %w", name, err)
	}
	created, _ := res.RowsAffected()

	var id models.UUID
	err = r.q.QueryRowContext(ctx,
		`SELECT id FROM consumable_types WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve consumable type %q: %w", name, err)
	}
	return id, created > 0, nil
}

// VehicleTypeName returns the name of a vehicle type.
func (r *Repository) VehicleTypeName(ctx context.Context, id models.UUID) (string, error) {
	var name string
	err := r.q.QueryRowContext(ctx, `SELECT name FROM vehicle_types WHERE id = ?`, id).Scan(&name)
	return name, err
}

// PartCategoryName returns the name of a part category, "" for the empty id.
func (r *Repository) PartCategoryName(ctx context.Context, id models.UUID) (string, error) {
	if id == "" {
		return "", nil
	}
	var name string
	err := r.q.QueryRowContext(ctx, `SELECT name FROM part_categories WHERE id = ?`, id).Scan(&name)
	return name, err
}

// ConsumableTypeName returns the name of a consumable type.
func (r *Repository) ConsumableTypeName(ctx context.Context, id models.UUID) (string, error) {
	var name string
	err := r.q.QueryRowContext(ctx, `SELECT name FROM consumable_types WHERE id = ?`, id).Scan(&name)
	return name, err
}

// --- vehicles ---

const vehicleColumns = `id, owner_id, vehicle_type_id, name,
	COALESCE(registration_number, ''), make, model, year, vin, engine_number,
	color, status, purchase_cost, purchase_date, purchase_mileage,
	service_interval_months, service_interval_miles, depreciation_method,
	depreciation_years, depreciation_rate, road_tax_exempt, mot_exempt,
	created_at, updated_at`

func scanVehicle(row interface{ Scan(...interface{}) error }) (*models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(&v.ID, &v.OwnerID, &v.VehicleTypeID, &v.Name,
		&v.RegistrationNumber, &v.Make, &v.Model, &v.Year, &v.VIN, &v.EngineNumber,
		&v.Color, &v.Status, &v.PurchaseCost, &v.PurchaseDate, &v.PurchaseMileage,
		&v.ServiceIntervalMonths, &v.ServiceIntervalMiles, &v.DepreciationMethod,
		&v.DepreciationYears, &v.DepreciationRate, &v.RoadTaxExempt, &v.MotExempt,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateVehicle inserts a vehicle row.
func (r *Repository) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO vehicles (id, owner_id, vehicle_type_id, name, registration_number,
			make, model, year, vin, engine_number, color, status,
			purchase_cost, purchase_date, purchase_mileage,
			service_interval_months, service_interval_miles,
			depreciation_method, depreciation_years, depreciation_rate,
			road_tax_exempt, mot_exempt, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.OwnerID, v.VehicleTypeID, v.Name, nullable(v.RegistrationNumber),
		v.Make, v.Model, v.Year, v.VIN, v.EngineNumber, v.Color, v.Status,
		v.PurchaseCost, v.PurchaseDate, v.PurchaseMileage,
		v.ServiceIntervalMonths, v.ServiceIntervalMiles,
		v.DepreciationMethod, v.DepreciationYears, v.DepreciationRate,
		v.RoadTaxExempt, v.MotExempt, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// GetVehicle fetches a vehicle owned by ownerID. Returns sql.ErrNoRows
// when absent or owned by someone else.
func (r *Repository) GetVehicle(ctx context.Context, ownerID, id models.UUID) (*models.Vehicle, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ? AND owner_id = ?`, id, ownerID)
	return scanVehicle(row)
}

// ListVehiclesByOwner returns all of an owner's vehicles in creation order.
func (r *Repository) ListVehiclesByOwner(ctx context.Context, ownerID models.UUID) ([]*models.Vehicle, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE owner_id = ? ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// CountVehicles returns the number of vehicles the owner holds.
func (r *Repository) CountVehicles(ctx context.Context, ownerID models.UUID) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM vehicles WHERE owner_id = ?`, ownerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return n, nil
}

// DeleteVehicle removes a vehicle and, via the schema's cascades, every
// dependent record.
func (r *Repository) DeleteVehicle(ctx context.Context, ownerID, id models.UUID) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM vehicles WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// VehicleExistsByRegistration reports whether the owner already has a
// vehicle with the given registration number.
func (r *Repository) VehicleExistsByRegistration(ctx context.Context, ownerID models.UUID, registration string) (bool, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM vehicles WHERE owner_id = ? AND registration_number = ?`,
		ownerID, registration).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return n > 0, nil
}

// --- specification ---

// InsertSpecification inserts a vehicle's data sheet.
func (r *Repository) InsertSpecification(ctx context.Context, s *models.Specification) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO specifications (id, vehicle_id, engine_type, displacement,
			max_power, max_torque, fuel_system, cooling, sparkplug_type,
			coolant_type, coolant_capacity, gearbox, transmission, final_drive,
			engine_oil_type, engine_oil_capacity, front_suspension, rear_suspension,
			front_brakes, rear_brakes, front_tyre, rear_tyre,
			front_tyre_pressure, rear_tyre_pressure, dry_weight, wet_weight,
			fuel_capacity, top_speed, additional_info, source_url, scraped_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.VehicleID, s.EngineType, s.Displacement,
		s.MaxPower, s.MaxTorque, s.FuelSystem, s.Cooling, s.SparkplugType,
		s.CoolantType, s.CoolantCapacity, s.Gearbox, s.Transmission, s.FinalDrive,
		s.EngineOilType, s.EngineOilCapacity, s.FrontSuspension, s.RearSuspension,
		s.FrontBrakes, s.RearBrakes, s.FrontTyre, s.RearTyre,
		s.FrontTyrePressure, s.RearTyrePressure, s.DryWeight, s.WetWeight,
		s.FuelCapacity, s.TopSpeed, s.AdditionalInfo, s.SourceURL, s.ScrapedAt)
	if err != nil {
		return fmt.Errorf("failed to insert specification: %w", err)
	}
	return nil
}

// GetSpecification fetches the vehicle's data sheet, nil when absent.
func (r *Repository) GetSpecification(ctx context.Context, vehicleID models.UUID) (*models.Specification, error) {
	var s models.Specification
	err := r.q.QueryRowContext(ctx,
		`SELECT id, vehicle_id, engine_type, displacement, max_power, max_torque,
			fuel_system, cooling, sparkplug_type, coolant_type, coolant_capacity,
			gearbox, transmission, final_drive, engine_oil_type, engine_oil_capacity,
			front_suspension, rear_suspension, front_brakes, rear_brakes,
			front_tyre, rear_tyre, front_tyre_pressure, rear_tyre_pressure,
			dry_weight, wet_weight, fuel_capacity, top_speed, additional_info,
			source_url, scraped_at
		 FROM specifications WHERE vehicle_id = ?`, vehicleID).
		Scan(&s.ID, &s.VehicleID, &s.EngineType, &s.Displacement, &s.MaxPower, &s.MaxTorque,
			&s.FuelSystem, &s.Cooling, &s.SparkplugType, &s.CoolantType, &s.CoolantCapacity,
			&s.Gearbox, &s.Transmission, &s.FinalDrive, &s.EngineOilType, &s.EngineOilCapacity,
			&s.FrontSuspension, &s.RearSuspension, &s.FrontBrakes, &s.RearBrakes,
			&s.FrontTyre, &s.RearTyre, &s.FrontTyrePressure, &s.RearTyrePressure,
			&s.DryWeight, &s.WetWeight, &s.FuelCapacity, &s.TopSpeed, &s.AdditionalInfo,
			&s.SourceURL, &s.ScrapedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get specification: %w", err)
	}
	return &s, nil
}

// --- MOT records ---

// InsertMotRecord inserts an MOT test record.
func (r *Repository) InsertMotRecord(ctx context.Context, m *models.MotRecord) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO mot_records (id, vehicle_id, test_date, expiry_date, result,
			mileage, test_number, testing_station, advisories, failures,
			test_cost, repair_cost, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.VehicleID, m.TestDate, m.ExpiryDate, m.Result,
		m.Mileage, m.TestNumber, m.TestingStation, m.Advisories, m.Failures,
		m.TestCost, m.RepairCost, m.Notes, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert MOT record: %w", err)
	}
	return nil
}

// ListMotRecords returns a vehicle's MOT records in creation order.
func (r *Repository) ListMotRecords(ctx context.Context, vehicleID models.UUID) ([]*models.MotRecord, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, vehicle_id, test_date, expiry_date, result, mileage,
			test_number, testing_station, advisories, failures,
			test_cost, repair_cost, notes, created_at
		 FROM mot_records WHERE vehicle_id = ? ORDER BY created_at, id`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list MOT records: %w", err)
	}
	defer rows.Close()

	var records []*models.MotRecord
	for rows.Next() {
		var m models.MotRecord
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.TestDate, &m.ExpiryDate, &m.Result,
			&m.Mileage, &m.TestNumber, &m.TestingStation, &m.Advisories, &m.Failures,
			&m.TestCost, &m.RepairCost, &m.Notes, &m.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &m)
	}
	return records, rows.Err()
}

// --- service records ---

// InsertServiceRecord inserts a maintenance event.
func (r *Repository) InsertServiceRecord(ctx context.Context, s *models.ServiceRecord) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO service_records (id, vehicle_id, mot_record_id, service_date,
			service_type, labor_cost, parts_cost, consumables_cost, additional_costs,
			mileage, service_provider, next_service_date, next_service_mileage,
			work_performed, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.VehicleID, s.MotRecordID, s.ServiceDate,
		s.ServiceType, s.LaborCost, s.PartsCost, s.ConsumablesCost, s.AdditionalCosts,
		s.Mileage, s.ServiceProvider, s.NextServiceDate, s.NextServiceMileage,
		s.WorkPerformed, s.Notes, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert service record: %w", err)
	}
	return nil
}

// ListServiceRecords returns a vehicle's service records in creation order.
func (r *Repository) ListServiceRecords(ctx context.Context, vehicleID models.UUID) ([]*models.ServiceRecord, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, vehicle_id, COALESCE(mot_record_id, ''), service_date, service_type,
			labor_cost, parts_cost, consumables_cost, additional_costs, mileage,
			service_provider, next_service_date, next_service_mileage,
			work_performed, notes, created_at
		 FROM service_records WHERE vehicle_id = ? ORDER BY created_at, id`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service records: %w", err)
	}
	defer rows.Close()

	var records []*models.ServiceRecord
	for rows.Next() {
		var s models.ServiceRecord
		if err := rows.Scan(&s.ID, &s.VehicleID, &s.MotRecordID, &s.ServiceDate, &s.ServiceType,
			&s.LaborCost, &s.PartsCost, &s.ConsumablesCost, &s.AdditionalCosts, &s.Mileage,
			&s.ServiceProvider, &s.NextServiceDate, &s.NextServiceMileage,
			&s.WorkPerformed, &s.Notes, &s.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &s)
	}
	return records, rows.Err()
}

// --- service items ---

// InsertServiceItem inserts a service line item.
func (r *Repository) InsertServiceItem(ctx context.Context, it *models.ServiceItem) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO service_items (id, service_record_id, type, description,
			cost, quantity, part_id, consumable_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.ServiceRecordID, it.Type, it.Description,
		it.Cost, it.Quantity, it.PartID, it.ConsumableID)
	if err != nil {
		return fmt.Errorf("failed to insert service item: %w", err)
	}
	return nil
}

// ListServiceItems returns the line items of a service record.
func (r *Repository) ListServiceItems(ctx context.Context, serviceRecordID models.UUID) ([]*models.ServiceItem, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, service_record_id, type, description, cost, quantity,
			COALESCE(part_id, ''), COALESCE(consumable_id, '')
		 FROM service_items WHERE service_record_id = ? ORDER BY id`, serviceRecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service items: %w", err)
	}
	defer rows.Close()

	var items []*models.ServiceItem
	for rows.Next() {
		var it models.ServiceItem
		if err := rows.Scan(&it.ID, &it.ServiceRecordID, &it.Type, &it.Description,
			&it.Cost, &it.Quantity, &it.PartID, &it.ConsumableID); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// --- fuel records ---

// InsertFuelRecord inserts a fill-up.
func (r *Repository) InsertFuelRecord(ctx context.Context, f *models.FuelRecord) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO fuel_records (id, vehicle_id, date, litres, cost, mileage,
			fuel_type, station, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.VehicleID, f.Date, f.Litres, f.Cost, f.Mileage,
		f.FuelType, f.Station, f.Notes, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert fuel record: %w", err)
	}
	return nil
}

// ListFuelRecords returns a vehicle's fuel records in creation order.
func (r *Repository) ListFuelRecords(ctx context.Context, vehicleID models.UUID) ([]*models.FuelRecord, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, vehicle_id, date, litres, cost, mileage, fuel_type, station, notes, created_at
		 FROM fuel_records WHERE vehicle_id = ? ORDER BY created_at, id`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fuel records: %w", err)
	}
	defer rows.Close()

	var records []*models.FuelRecord
	for rows.Next() {
		var f models.FuelRecord
		if err := rows.Scan(&f.ID, &f.VehicleID, &f.Date, &f.Litres, &f.Cost, &f.Mileage,
			&f.FuelType, &f.Station, &f.Notes, &f.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &f)
	}
	return records, rows.Err()
}

// --- todos ---

// InsertTodo inserts an outstanding job.
func (r *Repository) InsertTodo(ctx context.Context, t *models.Todo) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO todos (id, vehicle_id, title, description, priority,
			due_date, completed, completed_at, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.VehicleID, t.Title, t.Description, t.Priority,
		t.DueDate, t.Completed, t.CompletedAt, t.Notes, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

// ListTodos returns a vehicle's todos in creation order.
func (r *Repository) ListTodos(ctx context.Context, vehicleID models.UUID) ([]*models.Todo, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, vehicle_id, title, description, priority, due_date,
			completed, completed_at, notes, created_at
		 FROM todos WHERE vehicle_id = ? ORDER BY created_at, id`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []*models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.VehicleID, &t.Title, &t.Description, &t.Priority,
			&t.DueDate, &t.Completed, &t.CompletedAt, &t.Notes, &t.CreatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, &t)
	}
	return todos, rows.Err()
}

// --- road tax ---

// InsertRoadTax inserts a taxation period.
func (r *Repository) InsertRoadTax(ctx context.Context, rt *models.RoadTax) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO road_tax_records (id, vehicle_id, start_date, expiry_date,
			amount, frequency, sorn, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rt.ID, rt.VehicleID, rt.StartDate, rt.ExpiryDate,
		rt.Amount, rt.Frequency, rt.SORN, rt.Notes, rt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert road tax record: %w", err)
	}
	return nil
}

// ListRoadTax returns a vehicle's taxation periods in creation order.
func (r *Repository) ListRoadTax(ctx context.Context, vehicleID models.UUID) ([]*models.RoadTax, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, vehicle_id, start_date, expiry_date, amount, frequency, sorn, notes, created_at
		 FROM road_tax_records WHERE vehicle_id = ? ORDER BY created_at, id`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list road tax records: %w", err)
	}
	defer rows.Close()

	var records []*models.RoadTax
	for rows.Next() {
		var rt models.RoadTax
		if err := rows.Scan(&rt.ID, &rt.VehicleID, &rt.StartDate, &rt.ExpiryDate,
			&rt.Amount, &rt.Frequency, &rt.SORN, &rt.Notes, &rt.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &rt)
	}
	return records, rows.Err()
}

// --- insurance ---

// InsertInsurancePolicy inserts a cover period.
func (r *Repository) InsertInsurancePolicy(ctx context.Context, p *models.InsurancePolicy) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO insurance_policies (id, vehicle_id, holder_id, provider,
			policy_number, coverage_type, start_date, expiry_date, annual_cost,
			excess, auto_renewal, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.VehicleID, p.HolderID, p.Provider,
		p.PolicyNumber, p.CoverageType, p.StartDate, p.ExpiryDate, p.AnnualCost,
		p.Excess, p.AutoRenewal, p.Notes, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert insurance policy: %w", err)
	}
	return nil
}

// ListInsurancePolicies returns a vehicle's cover periods in creation order.
func (r *Repository) ListInsurancePolicies(ctx context.Context, vehicleID models.UUID) ([]*models.InsurancePolicy, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, vehicle_id, holder_id, provider, policy_number, coverage_type,
			start_date, expiry_date, annual_cost, excess, auto_renewal, notes, created_at
		 FROM insurance_policies WHERE vehicle_id = ? ORDER BY created_at, id`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurance policies: %w", err)
	}
	defer rows.Close()

	var policies []*models.InsurancePolicy
	for rows.Next() {
		var p models.InsurancePolicy
		if err := rows.Scan(&p.ID, &p.VehicleID, &p.HolderID, &p.Provider, &p.PolicyNumber,
			&p.CoverageType, &p.StartDate, &p.ExpiryDate, &p.AnnualCost,
			&p.Excess, &p.AutoRenewal, &p.Notes, &p.CreatedAt); err != nil {
			return nil, err
		}
		policies = append(policies, &p)
	}
	return policies, rows.Err()
}

// --- attachments ---

// InsertAttachment inserts attachment metadata.
func (r *Repository) InsertAttachment(ctx context.Context, a *models.Attachment) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO attachments (id, owner_id, vehicle_id, entity_type, entity_id,
			filename, original_filename, mime_type, file_size, storage_path,
			category, description, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.OwnerID, a.VehicleID, a.EntityType, a.EntityID,
		a.Filename, a.OriginalFilename, a.MimeType, a.FileSize, a.StoragePath,
		a.Category, a.Description, a.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to insert attachment: %w", err)
	}
	return nil
}

// UpdateAttachmentEntity sets the entity an attachment belongs to.
func (r *Repository) UpdateAttachmentEntity(ctx context.Context, id, entityID models.UUID) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE attachments SET entity_id = ? WHERE id = ?`, entityID, id)
	if err != nil {
		return fmt.Errorf("failed to update attachment entity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("attachment %s not found", id)
	}
	return nil
}

// ListAttachments returns a vehicle's attachment metadata in upload order.
func (r *Repository) ListAttachments(ctx context.Context, vehicleID models.UUID) ([]*models.Attachment, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, owner_id, vehicle_id, entity_type, COALESCE(entity_id, ''),
			filename, original_filename, mime_type, file_size, storage_path,
			category, description, uploaded_at
		 FROM attachments WHERE vehicle_id = ? ORDER BY uploaded_at, id`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	var attachments []*models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.VehicleID, &a.EntityType, &a.EntityID,
			&a.Filename, &a.OriginalFilename, &a.MimeType, &a.FileSize, &a.StoragePath,
			&a.Category, &a.Description, &a.UploadedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, &a)
	}
	return attachments, rows.Err()
}

// --- parts ---

// InsertPart inserts a part.
func (r *Repository) InsertPart(ctx context.Context, p *models.Part) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO parts (id, vehicle_id, part_category_id, service_record_id,
			mot_record_id, todo_id, receipt_attachment_id, name, description,
			part_number, manufacturer, supplier, price, quantity, cost,
			warranty_months, purchase_date, installation_date, mileage_at_installation,
			included_in_service_cost, notes, product_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.VehicleID, p.PartCategoryID, p.ServiceRecordID,
		p.MotRecordID, p.TodoID, p.ReceiptAttachmentID, p.Name, p.Description,
		p.PartNumber, p.Manufacturer, p.Supplier, p.Price, p.Quantity, p.Cost,
		p.WarrantyMonths, p.PurchaseDate, p.InstallationDate, p.MileageAtInstallation,
		p.IncludedInServiceCost, p.Notes, p.ProductURL, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert part: %w", err)
	}
	return nil
}

// ListParts returns a vehicle's parts in creation order.
func (r *Repository) ListParts(ctx context.Context, vehicleID models.UUID) ([]*models.Part, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, vehicle_id, COALESCE(part_category_id, ''), COALESCE(service_record_id, ''),
			COALESCE(mot_record_id, ''), COALESCE(todo_id, ''), COALESCE(receipt_attachment_id, ''),
			name, description, part_number, manufacturer, supplier, price, quantity,
			cost, warranty_months, purchase_date, installation_date,
			mileage_at_installation, included_in_service_cost, notes, product_url, created_at
		 FROM parts WHERE vehicle_id = ? ORDER BY created_at, id`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	defer rows.Close()

	var parts []*models.Part
	for rows.Next() {
		var p models.Part
		if err := rows.Scan(&p.ID, &p.VehicleID, &p.PartCategoryID, &p.ServiceRecordID,
			&p.MotRecordID, &p.TodoID, &p.ReceiptAttachmentID,
			&p.Name, &p.Description, &p.PartNumber, &p.Manufacturer, &p.Supplier,
			&p.Price, &p.Quantity, &p.Cost, &p.WarrantyMonths, &p.PurchaseDate,
			&p.InstallationDate, &p.MileageAtInstallation, &p.IncludedInServiceCost,
			&p.Notes, &p.ProductURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		parts = append(parts, &p)
	}
	return parts, rows.Err()
}

// --- consumables ---

// InsertConsumable inserts a consumable.
func (r *Repository) InsertConsumable(ctx context.Context, c *models.Consumable) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO consumables (id, vehicle_id, consumable_type_id, service_record_id,
			mot_record_id, todo_id, receipt_attachment_id, description, brand,
			part_number, supplier, quantity, cost, last_changed, mileage_at_change,
			replacement_interval_miles, next_replacement_mileage,
			included_in_service_cost, notes, product_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.VehicleID, c.ConsumableTypeID, c.ServiceRecordID,
		c.MotRecordID, c.TodoID, c.ReceiptAttachmentID, c.Description, c.Brand,
		c.PartNumber, c.Supplier, c.Quantity, c.Cost, c.LastChanged, c.MileageAtChange,
		c.ReplacementIntervalMiles, c.NextReplacementMileage,
		c.IncludedInServiceCost, c.Notes, c.ProductURL, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert consumable: %w", err)
	}
	return nil
}

// ListConsumables returns a vehicle's consumables in creation order.
func (r *Repository) ListConsumables(ctx context.Context, vehicleID models.UUID) ([]*models.Consumable, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, vehicle_id, consumable_type_id, COALESCE(service_record_id, ''),
			COALESCE(mot_record_id, ''), COALESCE(todo_id, ''), COALESCE(receipt_attachment_id, ''),
			description, brand, part_number, supplier, quantity, cost, last_changed,
			mileage_at_change, replacement_interval_miles, next_replacement_mileage,
			included_in_service_cost, notes, product_url, created_at, updated_at
		 FROM consumables WHERE vehicle_id = ? ORDER BY created_at, id`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list consumables: %w", err)
	}
	defer rows.Close()

	var consumables []*models.Consumable
	for rows.Next() {
		var c models.Consumable
		if err := rows.Scan(&c.ID, &c.VehicleID, &c.ConsumableTypeID, &c.ServiceRecordID,
			&c.MotRecordID, &c.TodoID, &c.ReceiptAttachmentID,
			&c.Description, &c.Brand, &c.PartNumber, &c.Supplier, &c.Quantity, &c.Cost,
			&c.LastChanged, &c.MileageAtChange, &c.ReplacementIntervalMiles,
			&c.NextReplacementMileage, &c.IncludedInServiceCost,
			&c.Notes, &c.ProductURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		consumables = append(consumables, &c)
	}
	return consumables, rows.Err()
}

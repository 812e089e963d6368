package interchange

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/motorlog/motorlog/internal/db"
	"github.com/motorlog/motorlog/internal/logging"
	"github.com/motorlog/motorlog/internal/models"
)

func TestMain(m *testing.M) {
	logging.Init(io.Discard, "error")
	os.Exit(m.Run())
}

// setupEngine opens an in-memory database with the schema applied and an
// owner to import under.
func setupEngine(t *testing.T) (*db.DB, *db.Repository, models.UUID) {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })

	migrator := db.NewMigrator(database.DB, filepath.Join("..", "db", "migrations"))
	if err := migrator.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := migrator.Up(); err != nil {
		t.Fatalf("Up() error = %v", err)
	}

	repo := db.NewRepository(database)
	owner := &models.User{ID: models.NewUUID(), Email: "owner@example.com", CreatedAt: time.Now().Unix()}
	if err := repo.CreateUser(context.Background(), owner); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	return database, repo, owner.ID
}

// simpleVehicle builds a minimal importable vehicle record.
func simpleVehicle(typeName, registration, makeName, modelName string, year int) VehicleRecord {
	return VehicleRecord{
		VehicleType:        typeName,
		RegistrationNumber: registration,
		Make:               makeName,
		Model:              modelName,
		Year:               year,
	}
}

// fullVehicle builds a vehicle record exercising every dependent entity
// type and every cross-reference field.
func fullVehicle(registration string) VehicleRecord {
	rec := simpleVehicle("Car", registration, "Toyota", "Corolla", 2020)
	rec.Color = "Silver"
	rec.Status = models.StatusLive
	rec.Specification = &SpecificationEntry{
		EngineType:   "Inline-4",
		Displacement: "1798 cc",
		FuelCapacity: "50 L",
	}
	rec.MotRecords = []MotEntry{
		{Key: "mot:1", TestDate: "2024-03-01", ExpiryDate: "2025-03-01", Result: "Pass", Mileage: 41000},
		{Key: "mot:2", TestDate: "2025-03-01", ExpiryDate: "2026-03-01", Result: "Pass", Mileage: 47000},
	}
	rec.Todos = []TodoEntry{
		{Key: "todo:1", Title: "Replace wipers", Priority: 2},
	}
	rec.Attachments = []AttachmentEntry{
		{Key: "attachment:1", EntityType: models.EntityMot, EntityKey: "mot:2",
			Filename: "mot-cert.pdf", MimeType: "application/pdf", FileSize: 52000},
		{Key: "attachment:2", Filename: "logbook.pdf", MimeType: "application/pdf", FileSize: 110000},
	}
	rec.ServiceRecords = []ServiceEntry{
		{
			Key: "service:1", MotKey: "mot:2", ServiceDate: "2025-03-01",
			ServiceType: "Annual", LaborCost: 150, Mileage: 47000,
			Items: []ServiceItemEntry{
				{Type: models.ServiceItemPart, Description: "Brake pads", Cost: 35.50, Quantity: 1, PartKey: "part:1"},
				{Type: models.ServiceItemConsumable, Description: "Engine oil", Cost: 42, Quantity: 4, ConsumableKey: "consumable:1"},
			},
		},
	}
	rec.FuelRecords = []FuelEntry{
		{Key: "fuel:1", Date: "2025-04-10", Litres: 43.1, Cost: 62.40, Mileage: 47600, FuelType: "Petrol"},
	}
	rec.Parts = []PartEntry{
		{
			Key: "part:1", Category: "Brakes", ServiceKey: "service:1", MotKey: "mot:2",
			TodoKey: "todo:1", AttachmentKey: "attachment:2",
			Name: "Brake pads", Manufacturer: "Brembo", Cost: 35.50, Quantity: 1,
		},
	}
	rec.Consumables = []ConsumableEntry{
		{
			Key: "consumable:1", Type: "Engine Oil", ServiceKey: "service:1",
			Description: "5W-30 fully synthetic", Brand: "Castrol", Quantity: 4, Cost: 42,
			ReplacementIntervalMiles: 9000,
		},
	}
	rec.RoadTaxRecords = []RoadTaxEntry{
		{StartDate: "2025-01-01", ExpiryDate: "2026-01-01", Amount: 180, Frequency: "annual"},
	}
	rec.InsuranceRecords = []InsuranceEntry{
		{Provider: "Acme Insurance", PolicyNumber: "POL-9931", CoverageType: "comprehensive",
			StartDate: "2025-01-01", ExpiryDate: "2026-01-01", AnnualCost: 420.50},
	}
	return rec
}

// importPayload runs a default-config import and fails the test on error.
func importPayload(t *testing.T, database *db.DB, ownerID models.UUID, vehicles ...VehicleRecord) *ImportResult {
	t.Helper()
	importer := NewImporter(database, DefaultConfig())
	result, err := importer.Import(context.Background(), &Payload{
		Version:    PayloadVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Vehicles:   vehicles,
	}, ownerID, ImportOptions{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("Import() failed: %v", result.Errors)
	}
	return result
}

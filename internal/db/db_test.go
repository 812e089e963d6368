package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/motorlog/motorlog/internal/models"
)

// setupTestDB opens an in-memory database with the full schema applied.
func setupTestDB(t *testing.T) (*DB, *Repository) {
	t.Helper()

	database, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })

	migrator := NewMigrator(database.DB, "migrations")
	if err := migrator.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := migrator.Up(); err != nil {
		t.Fatalf("Up() error = %v", err)
	}

	return database, NewRepository(database)
}

// createTestUser inserts a user and returns its id.
func createTestUser(t *testing.T, r *Repository, email string) models.UUID {
	t.Helper()
	u := &models.User{ID: models.NewUUID(), Email: email, CreatedAt: time.Now().Unix()}
	if err := r.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return u.ID
}

// createTestVehicle inserts a vehicle with a fresh vehicle type.
func createTestVehicle(t *testing.T, r *Repository, ownerID models.UUID, name, registration string) *models.Vehicle {
	t.Helper()
	ctx := context.Background()

	typeID, _, err := r.EnsureVehicleType(ctx, "Car")
	if err != nil {
		t.Fatalf("EnsureVehicleType() error = %v", err)
	}

	now := time.Now().Unix()
	v := &models.Vehicle{
		ID:                 models.NewUUID(),
		OwnerID:            ownerID,
		VehicleTypeID:      typeID,
		Name:               name,
		RegistrationNumber: registration,
		Status:             models.StatusLive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := r.CreateVehicle(ctx, v); err != nil {
		t.Fatalf("CreateVehicle() error = %v", err)
	}
	return v
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	database, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer database.Close()

	var fk int
	if err := database.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("PRAGMA foreign_keys error = %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}

	if _, err := Open(filepath.Join(dir, "nested", "deeper")); err != nil {
		t.Errorf("Open() with nested dir error = %v", err)
	}
}

package backup

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/motorlog/motorlog/internal/db"
	"github.com/motorlog/motorlog/internal/interchange"
	"github.com/motorlog/motorlog/internal/logging"
	"github.com/motorlog/motorlog/internal/models"
)

func TestMain(m *testing.M) {
	logging.Init(io.Discard, "error")
	os.Exit(m.Run())
}

func setupFleet(t *testing.T) (*interchange.Exporter, models.UUID) {
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
	ctx := context.Background()
	owner := &models.User{ID: models.NewUUID(), Email: "owner@example.com", CreatedAt: time.Now().Unix()}
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	payload := &interchange.Payload{Vehicles: []interchange.VehicleRecord{{
		VehicleType:        "Car",
		RegistrationNumber: "BACKUP01",
		Make:               "Honda",
		Model:              "Civic",
		Year:               2018,
	}}}
	importer := interchange.NewImporter(database, interchange.DefaultConfig())
	if _, err := importer.Import(ctx, payload, owner.ID, interchange.ImportOptions{}); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	return interchange.NewExporter(database, interchange.DefaultConfig()), owner.ID
}

func TestRunOnceWritesArchive(t *testing.T) {
	exporter, ownerID := setupFleet(t)
	dir := t.TempDir()

	s := NewScheduler(exporter, ownerID, Config{Interval: IntervalManual, Dir: dir})
	path, err := s.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	payload, err := interchange.ReadArchive(path)
	if err != nil {
		t.Fatalf("ReadArchive() error = %v", err)
	}
	if len(payload.Vehicles) != 1 || payload.Vehicles[0].RegistrationNumber != "BACKUP01" {
		t.Errorf("backup payload = %+v, want one BACKUP01 vehicle", payload.Vehicles)
	}
}

func TestRunOnceSealsArchive(t *testing.T) {
	exporter, ownerID := setupFleet(t)
	dir := t.TempDir()

	s := NewScheduler(exporter, ownerID, Config{Interval: IntervalManual, Dir: dir, Passphrase: "hunter2"})
	path, err := s.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	if _, err := interchange.ReadArchive(path); err == nil {
		t.Error("sealed backup opened without a passphrase")
	}
	payload, err := interchange.ReadSealedArchive(path, "hunter2")
	if err != nil {
		t.Fatalf("ReadSealedArchive() error = %v", err)
	}
	if len(payload.Vehicles) != 1 {
		t.Errorf("sealed backup carries %d vehicles, want 1", len(payload.Vehicles))
	}
}

func TestRetentionKeepsNewestArchives(t *testing.T) {
	exporter, ownerID := setupFleet(t)
	dir := t.TempDir()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		path := filepath.Join(dir, "motorlog_old_"+string(rune('a'+i))+".tar.gz")
		if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		stamp := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, stamp, stamp); err != nil {
			t.Fatalf("Chtimes() error = %v", err)
		}
	}

	s := NewScheduler(exporter, ownerID, Config{Interval: IntervalManual, Dir: dir, RetentionCount: 2})
	newest, err := s.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	archives, err := listArchives(dir)
	if err != nil {
		t.Fatalf("listArchives() error = %v", err)
	}
	if len(archives) != 2 {
		t.Fatalf("retention kept %d archives, want 2", len(archives))
	}
	found := false
	for _, a := range archives {
		if a.path == newest {
			found = true
		}
	}
	if !found {
		t.Error("retention deleted the archive it just wrote")
	}
}

func TestIntervalDuration(t *testing.T) {
	s := NewScheduler(nil, "", Config{Interval: IntervalDaily})
	if d, err := s.intervalDuration(); err != nil || d != 24*time.Hour {
		t.Errorf("daily duration = %v, %v", d, err)
	}
	s.cfg.Interval = "hourly"
	if _, err := s.intervalDuration(); err == nil {
		t.Error("unknown interval accepted")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	exporter, ownerID := setupFleet(t)

	s := NewScheduler(exporter, ownerID, Config{Interval: IntervalDaily, Dir: t.TempDir()})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	s.Stop()
	s.Stop()
}

func TestStartManualModeIsNoOp(t *testing.T) {
	exporter, ownerID := setupFleet(t)

	s := NewScheduler(exporter, ownerID, Config{Interval: IntervalManual, Dir: t.TempDir()})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Error("manual mode wrote a backup on Start()")
	}
}

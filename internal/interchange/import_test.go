package interchange

import (
	"context"
	"strings"
	"testing"
	"time"

	apperrors "github.com/motorlog/motorlog/internal/errors"
	"github.com/motorlog/motorlog/internal/models"
)

func TestImportExportDeleteReimport(t *testing.T) {
	database, repo, ownerID := setupEngine(t)
	ctx := context.Background()

	importPayload(t, database, ownerID, fullVehicle("TEST001"))

	exporter := NewExporter(database, DefaultConfig())
	exported, err := exporter.Export(ctx, ownerID, ExportOptions{IncludeAttachments: true})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !exported.Success || len(exported.Data) != 1 {
		t.Fatalf("Export() = %+v, want one vehicle", exported)
	}

	vehicles, err := repo.ListVehiclesByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("ListVehiclesByOwner() error = %v", err)
	}
	oldID := vehicles[0].ID
	if err := repo.DeleteVehicle(ctx, ownerID, oldID); err != nil {
		t.Fatalf("DeleteVehicle() error = %v", err)
	}

	result := importPayload(t, database, ownerID, exported.Data...)

	newID, ok := result.VehicleMap["TEST001"]
	if !ok {
		t.Fatal("VehicleMap has no entry for TEST001")
	}
	if newID == oldID {
		t.Error("reimport reused the old vehicle id")
	}

	v, err := repo.GetVehicle(ctx, ownerID, newID)
	if err != nil {
		t.Fatalf("GetVehicle() error = %v", err)
	}
	if v.Make != "Toyota" || v.Model != "Corolla" || v.Year != 2020 {
		t.Errorf("reimported vehicle = %s/%s/%d, want Toyota/Corolla/2020", v.Make, v.Model, v.Year)
	}
	if v.RegistrationNumber != "TEST001" {
		t.Errorf("registration = %q, want TEST001", v.RegistrationNumber)
	}

	// dependent counts must survive the round trip
	reExported, err := NewExporter(database, DefaultConfig()).Export(ctx, ownerID, ExportOptions{IncludeAttachments: true})
	if err != nil {
		t.Fatalf("second Export() error = %v", err)
	}
	before, after := exported.Data[0], reExported.Data[0]
	if len(after.MotRecords) != len(before.MotRecords) ||
		len(after.ServiceRecords) != len(before.ServiceRecords) ||
		len(after.FuelRecords) != len(before.FuelRecords) ||
		len(after.Parts) != len(before.Parts) ||
		len(after.Consumables) != len(before.Consumables) ||
		len(after.Todos) != len(before.Todos) ||
		len(after.RoadTaxRecords) != len(before.RoadTaxRecords) ||
		len(after.InsuranceRecords) != len(before.InsuranceRecords) ||
		len(after.Attachments) != len(before.Attachments) {
		t.Errorf("dependent counts changed across round trip:\nbefore %+v\nafter  %+v", before, after)
	}
	if len(after.ServiceRecords) > 0 && len(after.ServiceRecords[0].Items) != len(before.ServiceRecords[0].Items) {
		t.Errorf("service item count changed: %d -> %d",
			len(before.ServiceRecords[0].Items), len(after.ServiceRecords[0].Items))
	}
}

func TestImportAttachmentLinkedToPart(t *testing.T) {
	database, repo, ownerID := setupEngine(t)
	ctx := context.Background()

	// receipt and part reference each other
	rec := simpleVehicle("Car", "LINK001", "Toyota", "Yaris", 2019)
	rec.Attachments = []AttachmentEntry{
		{Key: "attachment:1", EntityType: models.EntityPart, EntityKey: "part:1",
			Filename: "alternator-receipt.pdf", MimeType: "application/pdf", FileSize: 4200},
	}
	rec.Parts = []PartEntry{
		{Key: "part:1", AttachmentKey: "attachment:1", Name: "Alternator", Cost: 180, Quantity: 1},
	}
	rec.Consumables = []ConsumableEntry{
		{Key: "consumable:1", Type: "Coolant", Description: "OAT coolant", Quantity: 1, Cost: 12},
	}
	rec.Attachments = append(rec.Attachments, AttachmentEntry{
		Key: "attachment:2", EntityType: models.EntityConsumable, EntityKey: "consumable:1",
		Filename: "coolant-receipt.pdf", MimeType: "application/pdf", FileSize: 2100,
	})

	verify := func(vehicleID models.UUID) {
		t.Helper()
		parts, err := repo.ListParts(ctx, vehicleID)
		if err != nil {
			t.Fatalf("ListParts() error = %v", err)
		}
		consumables, err := repo.ListConsumables(ctx, vehicleID)
		if err != nil {
			t.Fatalf("ListConsumables() error = %v", err)
		}
		attachments, err := repo.ListAttachments(ctx, vehicleID)
		if err != nil {
			t.Fatalf("ListAttachments() error = %v", err)
		}
		if len(parts) != 1 || len(consumables) != 1 || len(attachments) != 2 {
			t.Fatalf("got %d parts, %d consumables, %d attachments, want 1/1/2",
				len(parts), len(consumables), len(attachments))
		}
		byName := make(map[string]*models.Attachment, len(attachments))
		for _, a := range attachments {
			byName[a.Filename] = a
		}
		partReceipt := byName["alternator-receipt.pdf"]
		if partReceipt == nil || partReceipt.EntityID != parts[0].ID {
			t.Errorf("part receipt links to %v, want part %s", partReceipt, parts[0].ID)
		}
		if parts[0].ReceiptAttachmentID != partReceipt.ID {
			t.Errorf("part receipt attachment id = %s, want %s",
				parts[0].ReceiptAttachmentID, partReceipt.ID)
		}
		coolantReceipt := byName["coolant-receipt.pdf"]
		if coolantReceipt == nil || coolantReceipt.EntityID != consumables[0].ID {
			t.Errorf("consumable receipt links to %v, want consumable %s", coolantReceipt, consumables[0].ID)
		}
	}

	result := importPayload(t, database, ownerID, rec)
	verify(result.VehicleMap["LINK001"])

	// the links must survive a full round trip
	exported, err := NewExporter(database, DefaultConfig()).Export(ctx, ownerID, ExportOptions{IncludeAttachments: true})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if err := repo.DeleteVehicle(ctx, ownerID, result.VehicleMap["LINK001"]); err != nil {
		t.Fatalf("DeleteVehicle() error = %v", err)
	}
	reimported := importPayload(t, database, ownerID, exported.Data...)
	verify(reimported.VehicleMap["LINK001"])
}

func TestImportDuplicateRejected(t *testing.T) {
	database, repo, ownerID := setupEngine(t)
	ctx := context.Background()

	importPayload(t, database, ownerID, simpleVehicle("Car", "DUP001", "Honda", "Civic", 2018))

	exporter := NewExporter(database, DefaultConfig())
	exported, err := exporter.Export(ctx, ownerID, ExportOptions{})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	importer := NewImporter(database, DefaultConfig())
	result, err := importer.Import(ctx, &Payload{Vehicles: exported.Data}, ownerID, ImportOptions{})
	if err == nil || result.Success {
		t.Fatal("reimport over an existing registration should fail")
	}
	if !apperrors.Is(err, apperrors.ErrDuplicate) {
		t.Errorf("error code = %s, want %s", apperrors.CodeOf(err), apperrors.ErrDuplicate)
	}
	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "already exists") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors %v do not mention \"already exists\"", result.Errors)
	}

	count, err := repo.CountVehicles(ctx, ownerID)
	if err != nil {
		t.Fatalf("CountVehicles() error = %v", err)
	}
	if count != 1 {
		t.Errorf("vehicle count = %d, want 1 (storage unchanged)", count)
	}
}

func TestImportThreeVehicleRoundTrip(t *testing.T) {
	database, repo, ownerID := setupEngine(t)
	ctx := context.Background()

	importPayload(t, database, ownerID,
		simpleVehicle("Car", "FLEET01", "Ford", "Focus", 2017),
		simpleVehicle("Car", "FLEET02", "Mazda", "MX-5", 2019),
		simpleVehicle("Motorcycle", "FLEET03", "Honda", "CB500F", 2021),
	)

	exported, err := NewExporter(database, DefaultConfig()).Export(ctx, ownerID, ExportOptions{})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(exported.Data) != 3 {
		t.Fatalf("Export() returned %d vehicles, want 3", len(exported.Data))
	}

	vehicles, err := repo.ListVehiclesByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("ListVehiclesByOwner() error = %v", err)
	}
	for _, v := range vehicles {
		if err := repo.DeleteVehicle(ctx, ownerID, v.ID); err != nil {
			t.Fatalf("DeleteVehicle() error = %v", err)
		}
	}

	result := importPayload(t, database, ownerID, exported.Data...)
	if result.Statistics.VehiclesImported != 3 {
		t.Errorf("VehiclesImported = %d, want 3", result.Statistics.VehiclesImported)
	}

	for _, registration := range []string{"FLEET01", "FLEET02", "FLEET03"} {
		exists, err := repo.VehicleExistsByRegistration(ctx, ownerID, registration)
		if err != nil {
			t.Fatalf("VehicleExistsByRegistration() error = %v", err)
		}
		if !exists {
			t.Errorf("vehicle %s missing after reimport", registration)
		}
	}
}

func TestImportDryRunIsNoOp(t *testing.T) {
	database, repo, ownerID := setupEngine(t)
	ctx := context.Background()

	payload := &Payload{Vehicles: []VehicleRecord{fullVehicle("DRYRUN01")}}

	before, err := repo.CountVehicles(ctx, ownerID)
	if err != nil {
		t.Fatalf("CountVehicles() error = %v", err)
	}

	importer := NewImporter(database, DefaultConfig())
	dry, err := importer.Import(ctx, payload, ownerID, ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry-run Import() error = %v", err)
	}
	if !dry.Success {
		t.Fatalf("dry-run Import() failed: %v", dry.Errors)
	}

	after, err := repo.CountVehicles(ctx, ownerID)
	if err != nil {
		t.Fatalf("CountVehicles() error = %v", err)
	}
	if before != after {
		t.Errorf("vehicle count changed by dry run: %d -> %d", before, after)
	}
	exists, err := repo.VehicleExistsByRegistration(ctx, ownerID, "DRYRUN01")
	if err != nil {
		t.Fatalf("VehicleExistsByRegistration() error = %v", err)
	}
	if exists {
		t.Error("dry run persisted the vehicle")
	}

	// statistics must match a real run on the same payload
	real, err := importer.Import(ctx, payload, ownerID, ImportOptions{})
	if err != nil {
		t.Fatalf("real Import() error = %v", err)
	}
	dryStats, realStats := dry.Statistics, real.Statistics
	dryStats.ProcessingTimeSeconds, realStats.ProcessingTimeSeconds = 0, 0
	dryStats.MemoryPeakMB, realStats.MemoryPeakMB = 0, 0
	if dryStats != realStats {
		t.Errorf("dry-run statistics differ from real run:\ndry  %+v\nreal %+v", dryStats, realStats)
	}
}

func TestImportValidationFailure(t *testing.T) {
	database, repo, ownerID := setupEngine(t)
	ctx := context.Background()

	// no type, no name, no registration, no make/model
	importer := NewImporter(database, DefaultConfig())
	result, err := importer.Import(ctx, &Payload{Vehicles: []VehicleRecord{{Year: 2020}}}, ownerID, ImportOptions{})
	if err == nil || result.Success {
		t.Fatal("import of an empty record should fail")
	}
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("error code = %s, want %s", apperrors.CodeOf(err), apperrors.ErrValidation)
	}
	if len(result.Errors) == 0 {
		t.Error("validation failure returned an empty error list")
	}
	if result.VehicleMap != nil {
		t.Error("failed import returned a vehicle map")
	}

	count, err := repo.CountVehicles(ctx, ownerID)
	if err != nil {
		t.Fatalf("CountVehicles() error = %v", err)
	}
	if count != 0 {
		t.Errorf("vehicle count = %d, want 0", count)
	}
}

func TestImportCreatesNewVehicleType(t *testing.T) {
	database, repo, ownerID := setupEngine(t)
	ctx := context.Background()

	result := importPayload(t, database, ownerID, simpleVehicle("NewType", "NEWT01", "Maker", "Thing", 2022))

	v, err := repo.GetVehicle(ctx, ownerID, result.VehicleMap["NEWT01"])
	if err != nil {
		t.Fatalf("GetVehicle() error = %v", err)
	}
	name, err := repo.VehicleTypeName(ctx, v.VehicleTypeID)
	if err != nil {
		t.Fatalf("VehicleTypeName() error = %v", err)
	}
	if name != "NewType" {
		t.Errorf("vehicle type = %q, want NewType", name)
	}
	if result.Statistics.ReferenceEntitiesCreated == 0 {
		t.Error("ReferenceEntitiesCreated = 0, want > 0")
	}
}

func TestImportAtomicRollback(t *testing.T) {
	database, repo, ownerID := setupEngine(t)
	ctx := context.Background()

	importer := NewImporter(database, DefaultConfig())
	result, err := importer.Import(ctx, &Payload{Vehicles: []VehicleRecord{
		simpleVehicle("Car", "GOOD01", "Toyota", "Yaris", 2021),
		{}, // missing every mandatory field
	}}, ownerID, ImportOptions{})
	if err == nil || result.Success {
		t.Fatal("batch with an invalid vehicle should fail")
	}

	count, err := repo.CountVehicles(ctx, ownerID)
	if err != nil {
		t.Fatalf("CountVehicles() error = %v", err)
	}
	if count != 0 {
		t.Errorf("vehicle count = %d, want 0 (neither vehicle committed)", count)
	}
}

func TestImportReferenceReuse(t *testing.T) {
	database, _, ownerID := setupEngine(t)

	importPayload(t, database, ownerID,
		simpleVehicle("SharedType", "REUSE01", "Alpha", "One", 2020),
		simpleVehicle("SharedType", "REUSE02", "Beta", "Two", 2021),
	)

	var n int
	err := database.QueryRow(`SELECT COUNT(1) FROM vehicle_types WHERE name = 'SharedType'`).Scan(&n)
	if err != nil {
		t.Fatalf("count query error = %v", err)
	}
	if n != 1 {
		t.Errorf("vehicle_types rows for SharedType = %d, want 1", n)
	}
}

func TestImportDanglingReference(t *testing.T) {
	database, repo, ownerID := setupEngine(t)
	ctx := context.Background()

	rec := simpleVehicle("Car", "DANGLE01", "Toyota", "Yaris", 2021)
	rec.ServiceRecords = []ServiceEntry{
		{Key: "service:1", MotKey: "mot:99", ServiceDate: "2025-01-01"},
	}

	importer := NewImporter(database, DefaultConfig())
	result, err := importer.Import(ctx, &Payload{Vehicles: []VehicleRecord{rec}}, ownerID, ImportOptions{})
	if err == nil || result.Success {
		t.Fatal("import with a dangling reference should fail")
	}
	if !apperrors.Is(err, apperrors.ErrReferenceResolution) {
		t.Errorf("error code = %s, want %s", apperrors.CodeOf(err), apperrors.ErrReferenceResolution)
	}

	count, err := repo.CountVehicles(ctx, ownerID)
	if err != nil {
		t.Fatalf("CountVehicles() error = %v", err)
	}
	if count != 0 {
		t.Errorf("vehicle count = %d, want 0 after rollback", count)
	}
}

func TestImportServiceItemNeedsExactlyOneReference(t *testing.T) {
	database, _, ownerID := setupEngine(t)

	rec := fullVehicle("ITEM01")
	rec.ServiceRecords[0].Items = append(rec.ServiceRecords[0].Items, ServiceItemEntry{
		Type: models.ServiceItemPart, PartKey: "part:1", ConsumableKey: "consumable:1",
	})

	importer := NewImporter(database, DefaultConfig())
	result, err := importer.Import(context.Background(), &Payload{Vehicles: []VehicleRecord{rec}}, ownerID, ImportOptions{})
	if err == nil || result.Success {
		t.Fatal("service item with two references should fail validation")
	}
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("error code = %s, want %s", apperrors.CodeOf(err), apperrors.ErrValidation)
	}
}

func TestImportBatchSizeLimit(t *testing.T) {
	database, _, ownerID := setupEngine(t)

	cfg := DefaultConfig()
	cfg.BatchSize = 1
	importer := NewImporter(database, cfg)
	result, err := importer.Import(context.Background(), &Payload{Vehicles: []VehicleRecord{
		simpleVehicle("Car", "BATCH01", "A", "B", 2020),
		simpleVehicle("Car", "BATCH02", "C", "D", 2021),
	}}, ownerID, ImportOptions{})
	if err == nil || result.Success {
		t.Fatal("batch over the configured size should fail")
	}
	if !apperrors.Is(err, apperrors.ErrResourceLimit) {
		t.Errorf("error code = %s, want %s", apperrors.CodeOf(err), apperrors.ErrResourceLimit)
	}
}

func TestImportLimitOption(t *testing.T) {
	database, repo, ownerID := setupEngine(t)

	importer := NewImporter(database, DefaultConfig())
	result, err := importer.Import(context.Background(), &Payload{Vehicles: []VehicleRecord{
		simpleVehicle("Car", "LIM01", "A", "B", 2020),
		simpleVehicle("Car", "LIM02", "C", "D", 2021),
	}}, ownerID, ImportOptions{Limit: 1})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Statistics.VehiclesImported != 1 {
		t.Errorf("VehiclesImported = %d, want 1", result.Statistics.VehiclesImported)
	}

	count, err := repo.CountVehicles(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("CountVehicles() error = %v", err)
	}
	if count != 1 {
		t.Errorf("vehicle count = %d, want 1", count)
	}
}

func TestImportDerivesName(t *testing.T) {
	database, repo, ownerID := setupEngine(t)
	ctx := context.Background()

	result := importPayload(t, database, ownerID, simpleVehicle("Car", "NAME01", "Suzuki", "Swift", 2016))

	v, err := repo.GetVehicle(ctx, ownerID, result.VehicleMap["NAME01"])
	if err != nil {
		t.Fatalf("GetVehicle() error = %v", err)
	}
	if v.Name != "NAME01" {
		t.Errorf("derived name = %q, want NAME01", v.Name)
	}

	// no registration: the name comes from the explicit display name
	result2 := importPayload(t, database, ownerID, VehicleRecord{
		VehicleType: "Car", Name: "Weekend Jimny", Make: "Suzuki", Model: "Jimny", Year: 2019,
	})
	v2, err := repo.GetVehicle(ctx, ownerID, result2.VehicleMap["Weekend Jimny"])
	if err != nil {
		t.Fatalf("GetVehicle() error = %v", err)
	}
	if v2.Name != "Weekend Jimny" {
		t.Errorf("name = %q, want Weekend Jimny", v2.Name)
	}
}

func TestImportExecutionTimeout(t *testing.T) {
	database, _, ownerID := setupEngine(t)

	cfg := DefaultConfig()
	cfg.MaxExecutionTime = time.Nanosecond
	importer := NewImporter(database, cfg)
	result, err := importer.Import(context.Background(), &Payload{Vehicles: []VehicleRecord{
		simpleVehicle("Car", "SLOW01", "A", "B", 2020),
	}}, ownerID, ImportOptions{})
	if err == nil || result.Success {
		t.Fatal("import past the execution budget should fail")
	}
	if !apperrors.Is(err, apperrors.ErrResourceLimit) {
		t.Errorf("error code = %s, want %s", apperrors.CodeOf(err), apperrors.ErrResourceLimit)
	}
}

func TestImportRejectsMalformedOwnerID(t *testing.T) {
	database, _, _ := setupEngine(t)

	payload := &Payload{Vehicles: []VehicleRecord{simpleVehicle("Car", "OWNER01", "Ford", "Ka", 2009)}}
	result, err := NewImporter(database, DefaultConfig()).Import(context.Background(), payload, "not-an-id", ImportOptions{})
	if err == nil {
		t.Fatal("Import() accepted a malformed owner id")
	}
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("error code = %s, want %s", apperrors.CodeOf(err), apperrors.ErrValidation)
	}
	if result.Success {
		t.Error("result.Success = true for a malformed owner id")
	}
}

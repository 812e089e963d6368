package interchange

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/motorlog/motorlog/internal/db"
	apperrors "github.com/motorlog/motorlog/internal/errors"
	"github.com/motorlog/motorlog/internal/logging"
	"github.com/motorlog/motorlog/internal/models"
	"github.com/motorlog/motorlog/internal/telemetry"
	"github.com/motorlog/motorlog/internal/uuid"
)

// Importer reconstructs vehicle ownership graphs from payloads. One call
// is one transaction: every vehicle in the batch commits, or none do.
type Importer struct {
	db  *db.DB
	cfg Config
	log *logging.Logger
}

// NewImporter creates an importer over the given database.
func NewImporter(database *db.DB, cfg Config) *Importer {
	return &Importer{db: database, cfg: cfg, log: logging.Get()}
}

// ImportOptions modifies one import call.
type ImportOptions struct {
	// DryRun runs the full validation and build path, then rolls the
	// transaction back instead of committing. Statistics and errors are
	// identical to a real run on the same payload.
	DryRun bool

	// Limit caps the number of vehicles processed from the payload.
	// 0 processes everything.
	Limit int
}

// keyMap carries one vehicle's correlation-key assignments: every key
// defined so far maps to the id freshly assigned during this import.
type keyMap map[string]models.UUID

// resolve returns the id a key was assigned. An empty key resolves to an
// empty id (absent reference); an unknown key is a dangling reference.
func (m keyMap) resolve(key string) (models.UUID, error) {
	if key == "" {
		return "", nil
	}
	id, ok := m[key]
	if !ok {
		return "", apperrors.Newf(apperrors.ErrReferenceResolution,
			"reference %q does not resolve to an entity in this payload", key)
	}
	return id, nil
}

// Import builds every vehicle in the payload under ownerID. On any
// failure the transaction rolls back and the result carries Success=false
// with zero statistics; the same error is also returned.
func (im *Importer) Import(ctx context.Context, payload *Payload, ownerID models.UUID, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()
	sampler := telemetry.NewMemorySampler()

	if err := uuid.Validate(ownerID.String()); err != nil {
		appErr := apperrors.Wrap(apperrors.ErrValidation, "invalid owner id", err)
		return newImportFailure(appErr.Message, []string{appErr.Message}), appErr
	}

	records := payload.Vehicles
	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}
	if im.cfg.BatchSize > 0 && len(records) > im.cfg.BatchSize {
		err := apperrors.Newf(apperrors.ErrResourceLimit,
			"batch of %d vehicles exceeds the configured maximum of %d", len(records), im.cfg.BatchSize)
		return newImportFailure(err.Message, []string{err.Message}), err
	}

	// validate everything up front; a single bad vehicle fails the batch
	var validationErrs []string
	for i := range records {
		validationErrs = append(validationErrs, validateRecord(i, &records[i])...)
	}
	if len(validationErrs) > 0 {
		err := apperrors.New(apperrors.ErrValidation, "payload failed validation")
		im.log.Warn("import rejected", map[string]interface{}{
			"owner_id": ownerID,
			"errors":   len(validationErrs),
		})
		return newImportFailure(err.Message, validationErrs), err
	}

	tx, err := im.db.BeginTx(ctx)
	if err != nil {
		wrapped := apperrors.Wrap(apperrors.ErrPersistence, "failed to begin transaction", err)
		return newImportFailure(wrapped.Message, []string{wrapped.Message}), wrapped
	}
	defer tx.Rollback()

	repo := db.NewRepository(im.db).WithTx(tx)

	duplicates, err := checkDuplicates(ctx, repo, ownerID, records)
	if err != nil {
		wrapped := apperrors.Wrap(apperrors.ErrPersistence, "duplicate check failed", err)
		return newImportFailure(wrapped.Message, []string{wrapped.Message}), wrapped
	}
	if len(duplicates) > 0 {
		appErr := apperrors.New(apperrors.ErrDuplicate, "duplicate vehicles in batch")
		im.log.Warn("import rejected", map[string]interface{}{
			"owner_id":   ownerID,
			"duplicates": len(duplicates),
		})
		return newImportFailure(appErr.Message, duplicates), appErr
	}

	res := newResolver(repo)
	var stats Statistics
	vehicleMap := make(map[string]models.UUID, len(records))

	for i := range records {
		if err := ctx.Err(); err != nil {
			wrapped := apperrors.Wrap(apperrors.ErrResourceLimit, "import canceled", err)
			return newImportFailure(wrapped.Message, []string{wrapped.Message}), wrapped
		}
		if im.cfg.MaxExecutionTime > 0 && time.Since(start) > im.cfg.MaxExecutionTime {
			wrapped := apperrors.Newf(apperrors.ErrResourceLimit,
				"import exceeded maximum execution time of %s", im.cfg.MaxExecutionTime)
			return newImportFailure(wrapped.Message, []string{wrapped.Message}), wrapped
		}

		rec := &records[i]
		vehicleID, err := im.importVehicle(ctx, repo, res, ownerID, rec, &stats)
		if err != nil {
			msg := fmt.Sprintf("vehicle %d: %v", i+1, err)
			im.log.Error("import failed", err, map[string]interface{}{
				"owner_id": ownerID,
				"vehicle":  i + 1,
			})
			return newImportFailure("import failed", []string{msg}), err
		}
		vehicleMap[vehicleMapKey(rec)] = vehicleID
		stats.VehiclesImported++

		if im.cfg.EnableMemoryCleanup && im.cfg.CleanupInterval > 0 && (i+1)%im.cfg.CleanupInterval == 0 {
			// memory knob only; the transaction stays open until the end
			runtime.GC()
			sampler.Sample()
			if im.cfg.MemoryLimitMB > 0 && telemetry.AllocMB() > float64(im.cfg.MemoryLimitMB) {
				wrapped := apperrors.Newf(apperrors.ErrResourceLimit,
					"import exceeded memory limit of %d MB", im.cfg.MemoryLimitMB)
				return newImportFailure(wrapped.Message, []string{wrapped.Message}), wrapped
			}
		}
	}

	stats.ReferenceEntitiesCreated = res.created

	if opts.DryRun {
		if err := tx.Rollback(); err != nil {
			wrapped := apperrors.Wrap(apperrors.ErrPersistence, "dry-run rollback failed", err)
			return newImportFailure(wrapped.Message, []string{wrapped.Message}), wrapped
		}
	} else {
		if err := tx.Commit(); err != nil {
			wrapped := apperrors.Wrap(apperrors.ErrPersistence, "failed to commit import", err)
			return newImportFailure(wrapped.Message, []string{wrapped.Message}), wrapped
		}
	}

	sampler.Sample()
	stats.ProcessingTimeSeconds = time.Since(start).Seconds()
	stats.MemoryPeakMB = sampler.PeakMB()

	im.log.Info("import complete", map[string]interface{}{
		"owner_id":          ownerID,
		"vehicles_imported": stats.VehiclesImported,
		"dry_run":           opts.DryRun,
		"duration_s":        stats.ProcessingTimeSeconds,
	})
	return newImportSuccess(stats, vehicleMap), nil
}

// validateRecord checks the mandatory fields of one vehicle record and
// derives the display name the way the rest of the app would. Index i is
// zero-based; messages report one-based positions.
func validateRecord(i int, rec *VehicleRecord) []string {
	var errs []string
	pos := i + 1

	if strings.TrimSpace(rec.VehicleType) == "" {
		errs = append(errs, fmt.Sprintf("vehicle %d: vehicle type is required", pos))
	}
	registration := strings.TrimSpace(rec.RegistrationNumber)
	name := strings.TrimSpace(rec.Name)
	if registration == "" && name == "" {
		errs = append(errs, fmt.Sprintf("vehicle %d: a registration number or a name is required", pos))
	}
	if name == "" && (strings.TrimSpace(rec.Make) == "" || strings.TrimSpace(rec.Model) == "") {
		errs = append(errs, fmt.Sprintf("vehicle %d: a make and model or a name is required", pos))
	}
	if rec.Status != "" && !models.ValidStatus(rec.Status) {
		errs = append(errs, fmt.Sprintf("vehicle %d: unknown status %q", pos, rec.Status))
	}

	for j, item := range collectServiceItems(rec) {
		if (item.PartKey == "") == (item.ConsumableKey == "") {
			errs = append(errs, fmt.Sprintf(
				"vehicle %d: service item %d must reference exactly one part or consumable", pos, j+1))
		}
	}
	return errs
}

func collectServiceItems(rec *VehicleRecord) []ServiceItemEntry {
	var items []ServiceItemEntry
	for _, s := range rec.ServiceRecords {
		items = append(items, s.Items...)
	}
	return items
}

// vehicleMapKey is the caller-facing handle for a newly imported vehicle.
func vehicleMapKey(rec *VehicleRecord) string {
	if registration := strings.TrimSpace(rec.RegistrationNumber); registration != "" {
		return registration
	}
	return strings.TrimSpace(rec.Name)
}

// deriveName fills the display name from the registration or the
// make/model pair when the payload carries none.
func deriveName(rec *VehicleRecord) string {
	if name := strings.TrimSpace(rec.Name); name != "" {
		return name
	}
	if registration := strings.TrimSpace(rec.RegistrationNumber); registration != "" {
		return registration
	}
	return strings.TrimSpace(rec.Make + " " + rec.Model)
}

// importVehicle builds one vehicle and its dependents in dependency
// order, remapping every correlation key to a freshly assigned id.
func (im *Importer) importVehicle(ctx context.Context, repo *db.Repository, res *resolver, ownerID models.UUID, rec *VehicleRecord, stats *Statistics) (models.UUID, error) {
	now := time.Now().Unix()
	keys := make(keyMap)

	typeID, err := res.vehicleType(ctx, strings.TrimSpace(rec.VehicleType))
	if err != nil {
		return "", err
	}
	if makeName := strings.TrimSpace(rec.Make); makeName != "" {
		makeID, err := res.vehicleMake(ctx, typeID, makeName)
		if err != nil {
			return "", err
		}
		if model := strings.TrimSpace(rec.Model); model != "" {
			if _, err := res.vehicleModel(ctx, makeID, model, rec.Year); err != nil {
				return "", err
			}
		}
	}

	status := rec.Status
	if status == "" {
		status = models.StatusLive
	}
	vehicle := &models.Vehicle{
		ID:                 models.NewUUID(),
		OwnerID:            ownerID,
		VehicleTypeID:      typeID,
		Name:               deriveName(rec),
		RegistrationNumber: strings.TrimSpace(rec.RegistrationNumber),
		Make:               rec.Make,
		Model:              rec.Model,
		Year:               rec.Year,
		VIN:                rec.VIN,
		EngineNumber:       rec.EngineNumber,
		Color:              rec.Color,
		Status:             status,
		PurchaseCost:       rec.PurchaseCost,
		PurchaseDate:       rec.PurchaseDate,
		PurchaseMileage:    rec.PurchaseMileage,
		ServiceIntervalMonths: rec.ServiceIntervalMonths,
		ServiceIntervalMiles:  rec.ServiceIntervalMiles,
		DepreciationMethod: rec.DepreciationMethod,
		DepreciationYears:  rec.DepreciationYears,
		DepreciationRate:   rec.DepreciationRate,
		RoadTaxExempt:      rec.RoadTaxExempt,
		MotExempt:          rec.MotExempt,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := repo.CreateVehicle(ctx, vehicle); err != nil {
		return "", apperrors.Wrap(apperrors.ErrPersistence, "failed to persist vehicle", err)
	}

	if rec.Specification != nil {
		s := rec.Specification
		err := repo.InsertSpecification(ctx, &models.Specification{
			ID:                models.NewUUID(),
			VehicleID:         vehicle.ID,
			EngineType:        s.EngineType,
			Displacement:      s.Displacement,
			MaxPower:          s.MaxPower,
			MaxTorque:         s.MaxTorque,
			FuelSystem:        s.FuelSystem,
			Cooling:           s.Cooling,
			SparkplugType:     s.SparkplugType,
			CoolantType:       s.CoolantType,
			CoolantCapacity:   s.CoolantCapacity,
			Gearbox:           s.Gearbox,
			Transmission:      s.Transmission,
			FinalDrive:        s.FinalDrive,
			EngineOilType:     s.EngineOilType,
			EngineOilCapacity: s.EngineOilCapacity,
			FrontSuspension:   s.FrontSuspension,
			RearSuspension:    s.RearSuspension,
			FrontBrakes:       s.FrontBrakes,
			RearBrakes:        s.RearBrakes,
			FrontTyre:         s.FrontTyre,
			RearTyre:          s.RearTyre,
			FrontTyrePressure: s.FrontTyrePressure,
			RearTyrePressure:  s.RearTyrePressure,
			DryWeight:         s.DryWeight,
			WetWeight:         s.WetWeight,
			FuelCapacity:      s.FuelCapacity,
			TopSpeed:          s.TopSpeed,
			AdditionalInfo:    s.AdditionalInfo,
			SourceURL:         s.SourceURL,
			ScrapedAt:         s.ScrapedAt,
		})
		if err != nil {
			return "", apperrors.Wrap(apperrors.ErrPersistence, "failed to persist specification", err)
		}
	}

	for _, m := range rec.MotRecords {
		mot := &models.MotRecord{
			ID:             models.NewUUID(),
			VehicleID:      vehicle.ID,
			TestDate:       m.TestDate,
			ExpiryDate:     m.ExpiryDate,
			Result:         m.Result,
			Mileage:        m.Mileage,
			TestNumber:     m.TestNumber,
			TestingStation: m.TestingStation,
			Advisories:     m.Advisories,
			Failures:       m.Failures,
			TestCost:       m.TestCost,
			RepairCost:     m.RepairCost,
			Notes:          m.Notes,
			CreatedAt:      now,
		}
		if err := repo.InsertMotRecord(ctx, mot); err != nil {
			return "", apperrors.Wrap(apperrors.ErrPersistence, "failed to persist MOT record", err)
		}
		if m.Key != "" {
			keys[m.Key] = mot.ID
		}
		stats.MotRecords++
	}

	// service items are built after parts and consumables; keep the
	// entry keys so the items can find their parent records
	serviceIDs := make([]models.UUID, len(rec.ServiceRecords))
	for i, s := range rec.ServiceRecords {
		motID, err := keys.resolve(s.MotKey)
		if err != nil {
			return "", err
		}
		svc := &models.ServiceRecord{
			ID:                 models.NewUUID(),
			VehicleID:          vehicle.ID,
			MotRecordID:        motID,
			ServiceDate:        s.ServiceDate,
			ServiceType:        s.ServiceType,
			LaborCost:          s.LaborCost,
			PartsCost:          s.PartsCost,
			ConsumablesCost:    s.ConsumablesCost,
			AdditionalCosts:    s.AdditionalCosts,
			Mileage:            s.Mileage,
			ServiceProvider:    s.ServiceProvider,
			NextServiceDate:    s.NextServiceDate,
			NextServiceMileage: s.NextServiceMileage,
			WorkPerformed:      s.WorkPerformed,
			Notes:              s.Notes,
			CreatedAt:          now,
		}
		if err := repo.InsertServiceRecord(ctx, svc); err != nil {
			return "", apperrors.Wrap(apperrors.ErrPersistence, "failed to persist service record", err)
		}
		if s.Key != "" {
			keys[s.Key] = svc.ID
		}
		serviceIDs[i] = svc.ID
		stats.ServiceRecords++
	}

	for _, f := range rec.FuelRecords {
		fuel := &models.FuelRecord{
			ID:        models.NewUUID(),
			VehicleID: vehicle.ID,
			Date:      f.Date,
			Litres:    f.Litres,
			Cost:      f.Cost,
			Mileage:   f.Mileage,
			FuelType:  f.FuelType,
			Station:   f.Station,
			Notes:     f.Notes,
			CreatedAt: now,
		}
		if err := repo.InsertFuelRecord(ctx, fuel); err != nil {
			return "", apperrors.Wrap(apperrors.ErrPersistence, "failed to persist fuel record", err)
		}
		if f.Key != "" {
			keys[f.Key] = fuel.ID
		}
		stats.FuelRecords++
	}

	for _, t := range rec.Todos {
		todo := &models.Todo{
			ID:          models.NewUUID(),
			VehicleID:   vehicle.ID,
			Title:       t.Title,
			Description: t.Description,
			Priority:    t.Priority,
			DueDate:     t.DueDate,
			Completed:   t.Completed,
			CompletedAt: t.CompletedAt,
			Notes:       t.Notes,
			CreatedAt:   now,
		}
		if err := repo.InsertTodo(ctx, todo); err != nil {
			return "", apperrors.Wrap(apperrors.ErrPersistence, "failed to persist todo", err)
		}
		if t.Key != "" {
			keys[t.Key] = todo.ID
		}
		stats.Todos++
	}

	for _, rt := range rec.RoadTaxRecords {
		err := repo.InsertRoadTax(ctx, &models.RoadTax{
			ID:         models.NewUUID(),
			VehicleID:  vehicle.ID,
			StartDate:  rt.StartDate,
			ExpiryDate: rt.ExpiryDate,
			Amount:     rt.Amount,
			Frequency:  rt.Frequency,
			SORN:       rt.SORN,
			Notes:      rt.Notes,
			CreatedAt:  now,
		})
		if err != nil {
			return "", apperrors.Wrap(apperrors.ErrPersistence, "failed to persist road tax record", err)
		}
		stats.RoadTaxRecords++
	}

	for _, p := range rec.InsuranceRecords {
		err := repo.InsertInsurancePolicy(ctx, &models.InsurancePolicy{
			ID:           models.NewUUID(),
			VehicleID:    vehicle.ID,
			HolderID:     ownerID,
			Provider:     p.Provider,
			PolicyNumber: p.PolicyNumber,
			CoverageType: p.CoverageType,
			StartDate:    p.StartDate,
			ExpiryDate:   p.ExpiryDate,
			AnnualCost:   p.AnnualCost,
			Excess:       p.Excess,
			AutoRenewal:  p.AutoRenewal,
			Notes:        p.Notes,
			CreatedAt:    now,
		})
		if err != nil {
			return "", apperrors.Wrap(apperrors.ErrPersistence, "failed to persist insurance policy", err)
		}
		stats.InsuranceRecords++
	}

	// attachments and parts reference each other, so attachments that
	// point at a part or consumable are inserted without an entity id
	// and linked once their target exists
	type deferredLink struct {
		attachmentID models.UUID
		entityKey    string
	}
	var deferredLinks []deferredLink

	for _, a := range rec.Attachments {
		entityType := a.EntityType
		entityID := models.UUID("")
		deferLink := false
		switch entityType {
		case "", models.EntityVehicle:
			entityType = models.EntityVehicle
			entityID = vehicle.ID
		case models.EntityPart, models.EntityConsumable:
			deferLink = a.EntityKey != ""
		default:
			entityID, err = keys.resolve(a.EntityKey)
			if err != nil {
				return "", err
			}
		}
		attachment := &models.Attachment{
			ID:               models.NewUUID(),
			OwnerID:          ownerID,
			VehicleID:        vehicle.ID,
			EntityType:       entityType,
			EntityID:         entityID,
			Filename:         a.Filename,
			OriginalFilename: a.OriginalFilename,
			MimeType:         a.MimeType,
			FileSize:         a.FileSize,
			StoragePath:      a.StoragePath,
			Category:         a.Category,
			Description:      a.Description,
			UploadedAt:       now,
		}
		if err := repo.InsertAttachment(ctx, attachment); err != nil {
			return "", apperrors.Wrap(apperrors.ErrPersistence, "failed to persist attachment", err)
		}
		if a.Key != "" {
			keys[a.Key] = attachment.ID
		}
		if deferLink {
			deferredLinks = append(deferredLinks, deferredLink{
				attachmentID: attachment.ID,
				entityKey:    a.EntityKey,
			})
		}
		stats.Attachments++
	}

	for _, p := range rec.Parts {
		var categoryID models.UUID
		if category := strings.TrimSpace(p.Category); category != "" {
			categoryID, err = res.partCategory(ctx, typeID, category)
			if err != nil {
				return "", err
			}
		}
		serviceID, err := keys.resolve(p.ServiceKey)
		if err != nil {
			return "", err
		}
		motID, err := keys.resolve(p.MotKey)
		if err != nil {
			return "", err
		}
		todoID, err := keys.resolve(p.TodoKey)
		if err != nil {
			return "", err
		}
		attachmentID, err := keys.resolve(p.AttachmentKey)
		if err != nil {
			return "", err
		}
		part := &models.Part{
			ID:                    models.NewUUID(),
			VehicleID:             vehicle.ID,
			PartCategoryID:        categoryID,
			ServiceRecordID:       serviceID,
			MotRecordID:           motID,
			TodoID:                todoID,
			ReceiptAttachmentID:   attachmentID,
			Name:                  p.Name,
			Description:           p.Description,
			PartNumber:            p.PartNumber,
			Manufacturer:          p.Manufacturer,
			Supplier:              p.Supplier,
			Price:                 p.Price,
			Quantity:              p.Quantity,
			Cost:                  p.Cost,
			WarrantyMonths:        p.WarrantyMonths,
			PurchaseDate:          p.PurchaseDate,
			InstallationDate:      p.InstallationDate,
			MileageAtInstallation: p.MileageAtInstallation,
			IncludedInServiceCost: p.IncludedInServiceCost,
			Notes:                 p.Notes,
			ProductURL:            p.ProductURL,
			CreatedAt:             now,
		}
		if err := repo.InsertPart(ctx, part); err != nil {
			return "", apperrors.Wrap(apperrors.ErrPersistence, "failed to persist part", err)
		}
		if p.Key != "" {
			keys[p.Key] = part.ID
		}
		stats.Parts++
	}

	for _, c := range rec.Consumables {
		typeName := strings.TrimSpace(c.Type)
		if typeName == "" {
			typeName = "General"
		}
		consumableTypeID, err := res.consumableType(ctx, typeID, typeName)
		if err != nil {
			return "", err
		}
		serviceID, err := keys.resolve(c.ServiceKey)
		if err != nil {
			return "", err
		}
		motID, err := keys.resolve(c.MotKey)
		if err != nil {
			return "", err
		}
		todoID, err := keys.resolve(c.TodoKey)
		if err != nil {
			return "", err
		}
		attachmentID, err := keys.resolve(c.AttachmentKey)
		if err != nil {
			return "", err
		}
		consumable := &models.Consumable{
			ID:                       models.NewUUID(),
			VehicleID:                vehicle.ID,
			ConsumableTypeID:         consumableTypeID,
			ServiceRecordID:          serviceID,
			MotRecordID:              motID,
			TodoID:                   todoID,
			ReceiptAttachmentID:      attachmentID,
			Description:              c.Description,
			Brand:                    c.Brand,
			PartNumber:               c.PartNumber,
			Supplier:                 c.Supplier,
			Quantity:                 c.Quantity,
			Cost:                     c.Cost,
			LastChanged:              c.LastChanged,
			MileageAtChange:          c.MileageAtChange,
			ReplacementIntervalMiles: c.ReplacementIntervalMiles,
			NextReplacementMileage:   c.NextReplacementMileage,
			IncludedInServiceCost:    c.IncludedInServiceCost,
			Notes:                    c.Notes,
			ProductURL:               c.ProductURL,
			CreatedAt:                now,
			UpdatedAt:                now,
		}
		if err := repo.InsertConsumable(ctx, consumable); err != nil {
			return "", apperrors.Wrap(apperrors.ErrPersistence, "failed to persist consumable", err)
		}
		if c.Key != "" {
			keys[c.Key] = consumable.ID
		}
		stats.Consumables++
	}

	for _, link := range deferredLinks {
		entityID, err := keys.resolve(link.entityKey)
		if err != nil {
			return "", err
		}
		if err := repo.UpdateAttachmentEntity(ctx, link.attachmentID, entityID); err != nil {
			return "", apperrors.Wrap(apperrors.ErrPersistence, "failed to link attachment", err)
		}
	}

	// line items go last: they may point at any part or consumable in
	// the vehicle, regardless of declaration order
	for i, s := range rec.ServiceRecords {
		for _, entry := range s.Items {
			partID, err := keys.resolve(entry.PartKey)
			if err != nil {
				return "", err
			}
			consumableID, err := keys.resolve(entry.ConsumableKey)
			if err != nil {
				return "", err
			}
			itemType := entry.Type
			if itemType == "" {
				if partID != "" {
					itemType = models.ServiceItemPart
				} else {
					itemType = models.ServiceItemConsumable
				}
			}
			item := &models.ServiceItem{
				ID:              models.NewUUID(),
				ServiceRecordID: serviceIDs[i],
				Type:            itemType,
				Description:     entry.Description,
				Cost:            entry.Cost,
				Quantity:        entry.Quantity,
				PartID:          partID,
				ConsumableID:    consumableID,
			}
			if err := repo.InsertServiceItem(ctx, item); err != nil {
				return "", apperrors.Wrap(apperrors.ErrPersistence, "failed to persist service item", err)
			}
			stats.ServiceItems++
		}
	}

	return vehicle.ID, nil
}

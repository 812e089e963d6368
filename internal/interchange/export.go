package interchange

import (
	"context"
	"runtime"
	"sort"
	"time"

	"github.com/motorlog/motorlog/internal/db"
	apperrors "github.com/motorlog/motorlog/internal/errors"
	"github.com/motorlog/motorlog/internal/logging"
	"github.com/motorlog/motorlog/internal/models"
	"github.com/motorlog/motorlog/internal/telemetry"
	"github.com/motorlog/motorlog/internal/uuid"
)

// Exporter serializes vehicle ownership graphs into portable payloads.
// Export is strictly read-only. One call reads inside one transaction, so
// concurrent writers never leak a half-updated fleet into the payload.
type Exporter struct {
	db  *db.DB
	cfg Config
	log *logging.Logger
}

// NewExporter creates an exporter over the given database.
func NewExporter(database *db.DB, cfg Config) *Exporter {
	return &Exporter{db: database, cfg: cfg, log: logging.Get()}
}

// ExportOptions narrows one export call.
type ExportOptions struct {
	// VehicleIDs restricts the export to the listed vehicles. Empty
	// exports the owner's whole fleet.
	VehicleIDs []models.UUID

	// IncludeAttachments carries attachment metadata in the payload.
	IncludeAttachments bool
}

// Export serializes the owner's vehicles. On failure the result carries
// Success=false and a message with no partial data; the same error is
// also returned for callers that propagate it.
func (e *Exporter) Export(ctx context.Context, ownerID models.UUID, opts ExportOptions) (*ExportResult, error) {
	start := time.Now()
	sampler := telemetry.NewMemorySampler()

	if err := uuid.Validate(ownerID.String()); err != nil {
		appErr := apperrors.Wrap(apperrors.ErrValidation, "invalid owner id", err)
		return newExportFailure(appErr.Message), appErr
	}

	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		wrapped := apperrors.Wrap(apperrors.ErrExportFailed, "failed to begin transaction", err)
		return newExportFailure(wrapped.Message), wrapped
	}
	// never writes; rollback just releases the snapshot
	defer tx.Rollback()
	repo := db.NewRepository(e.db).WithTx(tx)

	vehicles, err := e.loadVehicles(ctx, repo, ownerID, opts)
	if err != nil {
		wrapped := apperrors.Wrap(apperrors.ErrExportFailed, "failed to read vehicles", err)
		e.log.Error("export failed", wrapped, map[string]interface{}{"owner_id": ownerID})
		return newExportFailure(wrapped.Message), wrapped
	}

	// the original presents fleets grouped by type, then by name
	typeNames := make(map[models.UUID]string)
	for _, v := range vehicles {
		if _, ok := typeNames[v.VehicleTypeID]; ok {
			continue
		}
		name, err := repo.VehicleTypeName(ctx, v.VehicleTypeID)
		if err != nil {
			wrapped := apperrors.Wrap(apperrors.ErrExportFailed, "failed to read vehicle types", err)
			return newExportFailure(wrapped.Message), wrapped
		}
		typeNames[v.VehicleTypeID] = name
	}
	sort.SliceStable(vehicles, func(i, j int) bool {
		ti, tj := typeNames[vehicles[i].VehicleTypeID], typeNames[vehicles[j].VehicleTypeID]
		if ti != tj {
			return ti < tj
		}
		return vehicles[i].Name < vehicles[j].Name
	})

	var stats Statistics
	records := make([]VehicleRecord, 0, len(vehicles))
	for i, v := range vehicles {
		if err := ctx.Err(); err != nil {
			wrapped := apperrors.Wrap(apperrors.ErrResourceLimit, "export canceled", err)
			return newExportFailure(wrapped.Message), wrapped
		}
		if e.cfg.MaxExecutionTime > 0 && time.Since(start) > e.cfg.MaxExecutionTime {
			wrapped := apperrors.Newf(apperrors.ErrResourceLimit,
				"export exceeded maximum execution time of %s", e.cfg.MaxExecutionTime)
			return newExportFailure(wrapped.Message), wrapped
		}

		rec, err := e.serializeVehicle(ctx, repo, typeNames[v.VehicleTypeID], v, opts.IncludeAttachments, &stats)
		if err != nil {
			wrapped := apperrors.Wrap(apperrors.ErrExportFailed, "failed to serialize vehicle", err)
			e.log.Error("export failed", wrapped, map[string]interface{}{
				"owner_id":   ownerID,
				"vehicle_id": v.ID,
			})
			return newExportFailure(wrapped.Message), wrapped
		}
		records = append(records, rec)

		if e.cfg.EnableMemoryCleanup && e.cfg.CleanupInterval > 0 && (i+1)%e.cfg.CleanupInterval == 0 {
			runtime.GC()
			sampler.Sample()
		}
	}

	sampler.Sample()
	stats.VehicleCount = len(records)
	stats.ProcessingTimeSeconds = time.Since(start).Seconds()
	stats.MemoryPeakMB = sampler.PeakMB()

	e.log.Info("export complete", map[string]interface{}{
		"owner_id":      ownerID,
		"vehicle_count": stats.VehicleCount,
		"duration_s":    stats.ProcessingTimeSeconds,
	})
	return newExportSuccess(records, stats), nil
}

func (e *Exporter) loadVehicles(ctx context.Context, repo *db.Repository, ownerID models.UUID, opts ExportOptions) ([]*models.Vehicle, error) {
	if len(opts.VehicleIDs) == 0 {
		return repo.ListVehiclesByOwner(ctx, ownerID)
	}
	vehicles := make([]*models.Vehicle, 0, len(opts.VehicleIDs))
	for _, id := range opts.VehicleIDs {
		v, err := repo.GetVehicle(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

// serializeVehicle walks one vehicle's dependents in traversal order,
// assigns payload-local correlation keys, and rewrites every foreign key
// as a key. Storage ids never enter the payload.
func (e *Exporter) serializeVehicle(ctx context.Context, repo *db.Repository, typeName string, v *models.Vehicle, includeAttachments bool, stats *Statistics) (VehicleRecord, error) {
	rec := VehicleRecord{
		VehicleType:        typeName,
		Name:               v.Name,
		RegistrationNumber: v.RegistrationNumber,
		Make:               v.Make,
		Model:              v.Model,
		Year:               v.Year,
		VIN:                v.VIN,
		EngineNumber:       v.EngineNumber,
		Color:              v.Color,
		Status:             v.Status,
		PurchaseCost:       v.PurchaseCost,
		PurchaseDate:       v.PurchaseDate,
		PurchaseMileage:    v.PurchaseMileage,
		ServiceIntervalMonths: v.ServiceIntervalMonths,
		ServiceIntervalMiles:  v.ServiceIntervalMiles,
		DepreciationMethod: v.DepreciationMethod,
		DepreciationYears:  v.DepreciationYears,
		DepreciationRate:   v.DepreciationRate,
		RoadTaxExempt:      v.RoadTaxExempt,
		MotExempt:          v.MotExempt,
	}

	spec, err := repo.GetSpecification(ctx, v.ID)
	if err != nil {
		return rec, err
	}
	if spec != nil {
		rec.Specification = specificationEntry(spec)
	}

	mots, err := repo.ListMotRecords(ctx, v.ID)
	if err != nil {
		return rec, err
	}
	services, err := repo.ListServiceRecords(ctx, v.ID)
	if err != nil {
		return rec, err
	}
	fuels, err := repo.ListFuelRecords(ctx, v.ID)
	if err != nil {
		return rec, err
	}
	parts, err := repo.ListParts(ctx, v.ID)
	if err != nil {
		return rec, err
	}
	consumables, err := repo.ListConsumables(ctx, v.ID)
	if err != nil {
		return rec, err
	}
	todos, err := repo.ListTodos(ctx, v.ID)
	if err != nil {
		return rec, err
	}
	roadTax, err := repo.ListRoadTax(ctx, v.ID)
	if err != nil {
		return rec, err
	}
	policies, err := repo.ListInsurancePolicies(ctx, v.ID)
	if err != nil {
		return rec, err
	}
	var attachments []*models.Attachment
	if includeAttachments {
		attachments, err = repo.ListAttachments(ctx, v.ID)
		if err != nil {
			return rec, err
		}
	}

	// correlation keys are assigned up front so cross-references can
	// point forward as well as backward within the payload
	keys := exportKeys{
		mot:        make(map[models.UUID]string, len(mots)),
		service:    make(map[models.UUID]string, len(services)),
		fuel:       make(map[models.UUID]string, len(fuels)),
		todo:       make(map[models.UUID]string, len(todos)),
		attachment: make(map[models.UUID]string, len(attachments)),
		part:       make(map[models.UUID]string, len(parts)),
		consumable: make(map[models.UUID]string, len(consumables)),
	}
	for i, m := range mots {
		keys.mot[m.ID] = correlationKey(keyMot, i+1)
	}
	for i, s := range services {
		keys.service[s.ID] = correlationKey(keyService, i+1)
	}
	for i, f := range fuels {
		keys.fuel[f.ID] = correlationKey(keyFuel, i+1)
	}
	for i, t := range todos {
		keys.todo[t.ID] = correlationKey(keyTodo, i+1)
	}
	for i, a := range attachments {
		keys.attachment[a.ID] = correlationKey(keyAttachment, i+1)
	}
	for i, p := range parts {
		keys.part[p.ID] = correlationKey(keyPart, i+1)
	}
	for i, c := range consumables {
		keys.consumable[c.ID] = correlationKey(keyConsumable, i+1)
	}

	for _, m := range mots {
		rec.MotRecords = append(rec.MotRecords, MotEntry{
			Key:            keys.mot[m.ID],
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
		})
		stats.MotRecords++
	}

	for _, s := range services {
		entry := ServiceEntry{
			Key:                keys.service[s.ID],
			MotKey:             keys.mot[s.MotRecordID],
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
		}
		items, err := repo.ListServiceItems(ctx, s.ID)
		if err != nil {
			return rec, err
		}
		for _, it := range items {
			entry.Items = append(entry.Items, ServiceItemEntry{
				Type:          it.Type,
				Description:   it.Description,
				Cost:          it.Cost,
				Quantity:      it.Quantity,
				PartKey:       keys.part[it.PartID],
				ConsumableKey: keys.consumable[it.ConsumableID],
			})
			stats.ServiceItems++
		}
		rec.ServiceRecords = append(rec.ServiceRecords, entry)
		stats.ServiceRecords++
	}

	for _, f := range fuels {
		rec.FuelRecords = append(rec.FuelRecords, FuelEntry{
			Key:      keys.fuel[f.ID],
			Date:     f.Date,
			Litres:   f.Litres,
			Cost:     f.Cost,
			Mileage:  f.Mileage,
			FuelType: f.FuelType,
			Station:  f.Station,
			Notes:    f.Notes,
		})
		stats.FuelRecords++
	}

	for _, p := range parts {
		category, err := repo.PartCategoryName(ctx, p.PartCategoryID)
		if err != nil {
			return rec, err
		}
		rec.Parts = append(rec.Parts, PartEntry{
			Key:                   keys.part[p.ID],
			Category:              category,
			ServiceKey:            keys.service[p.ServiceRecordID],
			MotKey:                keys.mot[p.MotRecordID],
			TodoKey:               keys.todo[p.TodoID],
			AttachmentKey:         keys.attachment[p.ReceiptAttachmentID],
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
		})
		stats.Parts++
	}

	for _, c := range consumables {
		typeName, err := repo.ConsumableTypeName(ctx, c.ConsumableTypeID)
		if err != nil {
			return rec, err
		}
		rec.Consumables = append(rec.Consumables, ConsumableEntry{
			Key:                      keys.consumable[c.ID],
			Type:                     typeName,
			ServiceKey:               keys.service[c.ServiceRecordID],
			MotKey:                   keys.mot[c.MotRecordID],
			TodoKey:                  keys.todo[c.TodoID],
			AttachmentKey:            keys.attachment[c.ReceiptAttachmentID],
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
		})
		stats.Consumables++
	}

	for _, t := range todos {
		rec.Todos = append(rec.Todos, TodoEntry{
			Key:         keys.todo[t.ID],
			Title:       t.Title,
			Description: t.Description,
			Priority:    t.Priority,
			DueDate:     t.DueDate,
			Completed:   t.Completed,
			CompletedAt: t.CompletedAt,
			Notes:       t.Notes,
		})
		stats.Todos++
	}

	for _, rt := range roadTax {
		rec.RoadTaxRecords = append(rec.RoadTaxRecords, RoadTaxEntry{
			StartDate:  rt.StartDate,
			ExpiryDate: rt.ExpiryDate,
			Amount:     rt.Amount,
			Frequency:  rt.Frequency,
			SORN:       rt.SORN,
			Notes:      rt.Notes,
		})
		stats.RoadTaxRecords++
	}

	for _, p := range policies {
		rec.InsuranceRecords = append(rec.InsuranceRecords, InsuranceEntry{
			Provider:     p.Provider,
			PolicyNumber: p.PolicyNumber,
			CoverageType: p.CoverageType,
			StartDate:    p.StartDate,
			ExpiryDate:   p.ExpiryDate,
			AnnualCost:   p.AnnualCost,
			Excess:       p.Excess,
			AutoRenewal:  p.AutoRenewal,
			Notes:        p.Notes,
		})
		stats.InsuranceRecords++
	}

	for _, a := range attachments {
		rec.Attachments = append(rec.Attachments, AttachmentEntry{
			Key:              keys.attachment[a.ID],
			EntityType:       a.EntityType,
			EntityKey:        keys.entityKey(a.EntityType, a.EntityID),
			Filename:         a.Filename,
			OriginalFilename: a.OriginalFilename,
			MimeType:         a.MimeType,
			FileSize:         a.FileSize,
			StoragePath:      a.StoragePath,
			Category:         a.Category,
			Description:      a.Description,
		})
		stats.Attachments++
	}

	return rec, nil
}

type exportKeys struct {
	mot        map[models.UUID]string
	service    map[models.UUID]string
	fuel       map[models.UUID]string
	todo       map[models.UUID]string
	attachment map[models.UUID]string
	part       map[models.UUID]string
	consumable map[models.UUID]string
}

// entityKey translates an attachment's entity link into the target's
// correlation key. Vehicle-level attachments carry no key.
func (k exportKeys) entityKey(entityType string, entityID models.UUID) string {
	switch entityType {
	case models.EntityMot:
		return k.mot[entityID]
	case models.EntityService:
		return k.service[entityID]
	case models.EntityFuel:
		return k.fuel[entityID]
	case models.EntityPart:
		return k.part[entityID]
	case models.EntityConsumable:
		return k.consumable[entityID]
	case models.EntityTodo:
		return k.todo[entityID]
	}
	return ""
}

func specificationEntry(s *models.Specification) *SpecificationEntry {
	return &SpecificationEntry{
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
	}
}

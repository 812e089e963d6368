package interchange

import "github.com/motorlog/motorlog/internal/models"

// Statistics summarizes one export or import call. A failed call carries
// zero-valued statistics; partial counts never leak out.
type Statistics struct {
	VehicleCount     int `json:"vehicle_count,omitempty"`
	VehiclesImported int `json:"vehicles_imported,omitempty"`

	MotRecords               int `json:"mot_records,omitempty"`
	ServiceRecords           int `json:"service_records,omitempty"`
	ServiceItems             int `json:"service_items,omitempty"`
	FuelRecords              int `json:"fuel_records,omitempty"`
	Parts                    int `json:"parts,omitempty"`
	Consumables              int `json:"consumables,omitempty"`
	Todos                    int `json:"todos,omitempty"`
	RoadTaxRecords           int `json:"road_tax_records,omitempty"`
	InsuranceRecords         int `json:"insurance_records,omitempty"`
	Attachments              int `json:"attachments,omitempty"`
	ReferenceEntitiesCreated int `json:"reference_entities_created,omitempty"`

	Errors                int     `json:"errors"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
	MemoryPeakMB          float64 `json:"memory_peak_mb"`
}

// ExportResult is the outcome of one export call.
type ExportResult struct {
	Success    bool            `json:"success"`
	Data       []VehicleRecord `json:"data,omitempty"`
	Statistics Statistics      `json:"statistics"`
	Message    string          `json:"message,omitempty"`
}

// ImportResult is the outcome of one import call. VehicleMap maps each
// imported vehicle's registration number (or name when unregistered) to
// its newly assigned id; it is absent on failure.
type ImportResult struct {
	Success    bool                       `json:"success"`
	Statistics Statistics                 `json:"statistics"`
	Errors     []string                   `json:"errors,omitempty"`
	Message    string                     `json:"message,omitempty"`
	VehicleMap map[string]models.UUID     `json:"vehicle_map,omitempty"`
}

func newExportSuccess(data []VehicleRecord, stats Statistics) *ExportResult {
	return &ExportResult{Success: true, Data: data, Statistics: stats}
}

func newExportFailure(message string) *ExportResult {
	return &ExportResult{Success: false, Message: message}
}

func newImportSuccess(stats Statistics, vehicleMap map[string]models.UUID) *ImportResult {
	return &ImportResult{Success: true, Statistics: stats, VehicleMap: vehicleMap}
}

func newImportFailure(message string, errs []string) *ImportResult {
	return &ImportResult{
		Success:    false,
		Statistics: Statistics{Errors: len(errs)},
		Errors:     errs,
		Message:    message,
	}
}

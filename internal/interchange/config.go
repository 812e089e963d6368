// Package interchange implements the vehicle data interchange engine:
// export of a vehicle's whole ownership graph to a portable payload and
// transactional import of such payloads with identifier remapping.
package interchange

import "time"

// Config tunes the interchange engine. It is injected into the exporter
// and importer, never read from globals.
type Config struct {
	// BatchSize is the maximum number of vehicles accepted in one import
	// call. 0 means unbounded.
	BatchSize int

	// MemoryLimitMB aborts an import when the heap grows past this many
	// megabytes. 0 means unbounded.
	MemoryLimitMB int

	// MaxExecutionTime bounds one export or import call. Checked
	// cooperatively between vehicles; 0 means unbounded.
	MaxExecutionTime time.Duration

	// AllowedMimeTypes lists payload content types accepted by the gate.
	AllowedMimeTypes []string

	// MaxFileSizeMB is the largest raw payload accepted by the gate.
	MaxFileSizeMB int

	// EnableMemoryCleanup turns the periodic GC pass on or off.
	EnableMemoryCleanup bool

	// CleanupInterval is the number of vehicles processed between memory
	// cleanup passes. It never splits the transaction.
	CleanupInterval int
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		BatchSize:           25,
		MemoryLimitMB:       1024,
		MaxExecutionTime:    0,
		AllowedMimeTypes:    []string{"application/json", "application/gzip"},
		MaxFileSizeMB:       100,
		EnableMemoryCleanup: true,
		CleanupInterval:     25,
	}
}

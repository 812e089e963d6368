package models

// Entity types an attachment can link to.
const (
	EntityVehicle    = "vehicle"
	EntityMot        = "mot"
	EntityService    = "service"
	EntityFuel       = "fuel"
	EntityPart       = "part"
	EntityConsumable = "consumable"
	EntityTodo       = "todo"
)

// Attachment is binary-backed metadata. The interchange engine carries
// only this metadata and the entity link; file content is owned by the
// attachment storage service.
type Attachment struct {
	ID               UUID   `db:"id" json:"id"`
	OwnerID          UUID   `db:"owner_id" json:"owner_id"`
	VehicleID        UUID   `db:"vehicle_id" json:"vehicle_id"`
	EntityType       string `db:"entity_type" json:"entity_type"`
	EntityID         UUID   `db:"entity_id" json:"entity_id,omitempty"`
	Filename         string `db:"filename" json:"filename"`
	OriginalFilename string `db:"original_filename" json:"original_filename,omitempty"`
	MimeType         string `db:"mime_type" json:"mime_type,omitempty"`
	FileSize         int64  `db:"file_size" json:"file_size,omitempty"`
	StoragePath      string `db:"storage_path" json:"storage_path,omitempty"`
	Category         string `db:"category" json:"category,omitempty"`
	Description      string `db:"description" json:"description,omitempty"`
	UploadedAt       int64  `db:"uploaded_at" json:"uploaded_at"`
}

// TableName returns the table name for Attachment.
func (Attachment) TableName() string {
	return "attachments"
}

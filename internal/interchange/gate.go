package interchange

import (
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	apperrors "github.com/motorlog/motorlog/internal/errors"
)

// CheckPayload gates a raw payload before any parsing: size against the
// configured ceiling and content type (sniffed from the bytes, never
// trusted from the caller) against the allow list.
func CheckPayload(raw []byte, cfg Config) error {
	if len(raw) == 0 {
		return apperrors.New(apperrors.ErrPayloadFormat, "payload is empty")
	}

	if cfg.MaxFileSizeMB > 0 {
		limit := uint64(cfg.MaxFileSizeMB) * 1024 * 1024
		if uint64(len(raw)) > limit {
			return apperrors.Newf(apperrors.ErrPayloadFormat,
				"payload size %s exceeds the limit of %s",
				humanize.IBytes(uint64(len(raw))), humanize.IBytes(limit))
		}
	}

	detected := mimetype.Detect(raw)
	for _, allowed := range cfg.AllowedMimeTypes {
		if detected.Is(allowed) {
			return nil
		}
	}
	return apperrors.Newf(apperrors.ErrPayloadFormat,
		"payload type %q is not allowed", detected.String())
}

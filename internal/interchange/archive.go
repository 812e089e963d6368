package interchange

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/motorlog/motorlog/internal/crypto"
	apperrors "github.com/motorlog/motorlog/internal/errors"
)

// Archive member names.
const (
	manifestName = "manifest.json"
	dataName     = "data.json"
)

// manifest describes the archived payload and pins its checksum.
type manifest struct {
	Version      string `json:"version"`
	CreatedAt    string `json:"created_at"`
	VehicleCount int    `json:"vehicle_count"`
	Checksum     string `json:"checksum"` // sha-256 of data.json, hex
}

// buildArchive encodes the payload as a tar.gz of manifest.json plus
// data.json. Attachment binaries never enter the archive; the payload
// carries metadata only.
func buildArchive(payload *Payload) ([]byte, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, "failed to encode payload", err)
	}
	sum := sha256.Sum256(data)

	m := manifest{
		Version:      PayloadVersion,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		VehicleCount: len(payload.Vehicles),
		Checksum:     hex.EncodeToString(sum[:]),
	}
	manifestData, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, "failed to encode manifest", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, member := range []struct {
		name string
		data []byte
	}{
		{manifestName, manifestData},
		{dataName, data},
	} {
		hdr := &tar.Header{
			Name:    member.name,
			Mode:    0644,
			Size:    int64(len(member.data)),
			ModTime: time.Now(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrExportFailed, "failed to write archive header", err)
		}
		if _, err := tw.Write(member.data); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrExportFailed, "failed to write archive member", err)
		}
	}

	if err := tw.Close(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, "failed to finalize archive", err)
	}
	if err := gz.Close(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, "failed to finalize archive", err)
	}
	return buf.Bytes(), nil
}

// decodeArchive verifies the manifest checksum and decodes the payload.
func decodeArchive(raw []byte) (*Payload, error) {
	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptedArchive, "archive is not gzip", err)
	}
	defer gz.Close()

	var manifestData, data []byte
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCorruptedArchive, "failed to read archive", err)
		}
		content, err := io.ReadAll(tr)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCorruptedArchive, "failed to read archive member", err)
		}
		switch hdr.Name {
		case manifestName:
			manifestData = content
		case dataName:
			data = content
		}
	}
	if manifestData == nil || data == nil {
		return nil, apperrors.New(apperrors.ErrCorruptedArchive,
			fmt.Sprintf("archive is missing %s or %s", manifestName, dataName))
	}

	var m manifest
	if err := json.Unmarshal(manifestData, &m); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptedArchive, "failed to decode manifest", err)
	}
	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != m.Checksum {
		return nil, apperrors.New(apperrors.ErrCorruptedArchive, "payload checksum mismatch")
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptedArchive, "failed to decode payload", err)
	}
	return &payload, nil
}

// WriteArchive writes the payload as a plain tar.gz archive.
func WriteArchive(path string, payload *Payload) error {
	raw, err := buildArchive(payload)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, "failed to write archive", err)
	}
	return nil
}

// WriteSealedArchive writes the payload as a tar.gz archive encrypted
// with a key derived from the passphrase.
func WriteSealedArchive(path string, payload *Payload, passphrase string) error {
	raw, err := buildArchive(payload)
	if err != nil {
		return err
	}
	sealed, err := crypto.Seal(raw, passphrase)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, "failed to encrypt archive", err)
	}
	if err := os.WriteFile(path, sealed, 0600); err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, "failed to write archive", err)
	}
	return nil
}

// ReadArchive reads a plain payload archive, verifies the manifest
// checksum, and decodes the payload. Sealed archives are rejected;
// use ReadSealedArchive for those.
func ReadArchive(path string) (*Payload, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportFailed, "failed to open archive", err)
	}
	if crypto.IsSealed(raw) {
		return nil, apperrors.New(apperrors.ErrImportFailed, "archive is encrypted, a passphrase is required")
	}
	return decodeArchive(raw)
}

// ReadSealedArchive decrypts and reads an archive written by
// WriteSealedArchive.
func ReadSealedArchive(path, passphrase string) (*Payload, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportFailed, "failed to open archive", err)
	}
	data, err := crypto.Open(raw, passphrase)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptedArchive, "failed to decrypt archive", err)
	}
	return decodeArchive(data)
}

package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Save writes a model description to path in the .addons format.
//
// FormatVersion, LibraryVersion and CreatedAt are stamped by Save; the
// caller supplies the layer configurations and optional metadata.
func Save(path string, desc *Description) error {
	//nolint:gosec // G304: file path is caller-supplied, expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := Write(file, desc); err != nil {
		return err
	}

	return file.Close()
}

// Write writes a model description to w in the .addons format.
func Write(w io.Writer, desc *Description) error {
	stamped := *desc
	stamped.FormatVersion = FormatVersion
	stamped.LibraryVersion = libraryVersion
	stamped.CreatedAt = time.Now().UTC()

	headerJSON, err := json.Marshal(&stamped)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	if _, err := io.WriteString(w, MagicBytes); err != nil {
		return fmt.Errorf("failed to write magic bytes: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(FormatVersion)); err != nil {
		return fmt.Errorf("failed to write version: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(headerJSON))); err != nil { //nolint:gosec // G115: bounded by MaxHeaderSize
		return fmt.Errorf("failed to write header length: %w", err)
	}

	checksum := ComputeChecksum(headerJSON)
	if _, err := w.Write(checksum[:]); err != nil {
		return fmt.Errorf("failed to write checksum: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	return nil
}

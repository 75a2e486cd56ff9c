package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load reads a model description from a .addons file.
func Load(path string) (*Description, error) {
	//nolint:gosec // G304: file path is caller-supplied, expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Read(file)
}

// Read reads a model description from r.
//
// Returns ErrInvalidMagic, ErrUnsupportedVersion, ErrHeaderTooLarge or
// ErrChecksumMismatch (possibly wrapped) for malformed input.
func Read(r io.Reader) (*Description, error) {
	magic := make([]byte, len(MagicBytes))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if string(magic) != MagicBytes {
		return nil, ErrInvalidMagic
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	var headerLen uint32
	if err := binary.Read(r, binary.LittleEndian, &headerLen); err != nil {
		return nil, fmt.Errorf("failed to read header length: %w", err)
	}
	if headerLen > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	var stored [ChecksumSize]byte
	if _, err := io.ReadFull(r, stored[:]); err != nil {
		return nil, fmt.Errorf("failed to read checksum: %w", err)
	}

	headerJSON := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if err := ValidateChecksum(ComputeChecksum(headerJSON), stored); err != nil {
		return nil, err
	}

	var desc Description
	if err := json.Unmarshal(headerJSON, &desc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal header: %w", err)
	}

	return &desc, nil
}

// Package serialization implements the .addons model-description
// container: a versioned binary envelope around a JSON header holding
// the layer configurations of a model, protected by a SHA-256 checksum.
//
// Layout:
//
//	magic (4 bytes) | version (uint32 LE) | header length (uint32 LE) |
//	checksum (32 bytes, SHA-256 of the header payload) | header JSON
//
// The layers shipped by this library are parameter-free, so the
// container carries configurations only; weight tensors stay with the
// host framework's own model format.
package serialization

import (
	"time"

	"github.com/MHStadler/addons/internal/nn"
)

// Format constants.
const (
	MagicBytes    = "ADNS"
	FormatVersion = 1

	ChecksumSize = 32 // SHA-256

	// MaxHeaderSize bounds the JSON header so a corrupted length field
	// cannot trigger an absurd allocation on load.
	MaxHeaderSize = 16 << 20
)

const libraryVersion = "0.1.0"

// Description is the JSON header of a .addons file.
type Description struct {
	FormatVersion  int               `json:"format_version"`     // Version of the .addons format
	LibraryVersion string            `json:"library_version"`    // Version of the library that created this file
	CreatedAt      time.Time         `json:"created_at"`         // When the file was created
	Layers         []nn.LayerConfig  `json:"layers"`             // Layer configurations, in model order
	Metadata       map[string]string `json:"metadata,omitempty"` // Custom metadata
}

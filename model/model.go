// Copyright 2026 The addons authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model provides save/load for model descriptions: ordered
// layer configurations in the .addons container format.
//
//	desc := &model.Description{Layers: []nn.LayerConfig{sd.Config()}}
//	if err := model.Save("gates.addons", desc); err != nil {
//	    ...
//	}
//
//	desc, err := model.Load("gates.addons")
package model

import (
	"io"

	"github.com/MHStadler/addons/internal/serialization"
)

// Description is the JSON header of a .addons file: layer
// configurations in model order plus free-form metadata.
type Description = serialization.Description

// Sentinel errors returned for malformed files.
var (
	ErrChecksumMismatch   = serialization.ErrChecksumMismatch
	ErrInvalidMagic       = serialization.ErrInvalidMagic
	ErrUnsupportedVersion = serialization.ErrUnsupportedVersion
	ErrHeaderTooLarge     = serialization.ErrHeaderTooLarge
)

// Save writes a model description to path in the .addons format.
func Save(path string, desc *Description) error {
	return serialization.Save(path, desc)
}

// Load reads a model description from a .addons file.
func Load(path string) (*Description, error) {
	return serialization.Load(path)
}

// Write writes a model description to w in the .addons format.
func Write(w io.Writer, desc *Description) error {
	return serialization.Write(w, desc)
}

// Read reads a model description from r.
func Read(r io.Reader) (*Description, error) {
	return serialization.Read(r)
}

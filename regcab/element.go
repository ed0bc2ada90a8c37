// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regcab

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxLayers is the maximum number of layers of a sub-detector.
	MaxLayers = 10
	// MaxSubDets is the maximum number of sub-detectors.
	MaxSubDets = 4
)

// SubDet labels a sub-detector of the silicon strip tracker.
type SubDet uint32

const (
	TIB     SubDet = iota // tracker inner barrel
	TOB                   // tracker outer barrel
	TID                   // tracker inner disks
	TEC                   // tracker end caps
	Unknown               // out-of-range sentinel
)

func (sub SubDet) String() string {
	switch sub {
	case TIB:
		return "TIB"
	case TOB:
		return "TOB"
	case TID:
		return "TID"
	case TEC:
		return "TEC"
	}
	return "unknown"
}

// ParseSubDet converts a sub-detector name (or its numeric value)
// to a SubDet.
func ParseSubDet(name string) (SubDet, error) {
	switch strings.ToUpper(name) {
	case "TIB":
		return TIB, nil
	case "TOB":
		return TOB, nil
	case "TID":
		return TID, nil
	case "TEC":
		return TEC, nil
	}
	v, err := strconv.ParseUint(name, 10, 32)
	if err != nil || v >= MaxSubDets {
		return Unknown, fmt.Errorf("regcab: invalid sub-detector %q", name)
	}
	return SubDet(v), nil
}

// ElementIndex packs a (region, sub-detector, layer) triple into a
// single integer:
//
//	index = region*MaxSubDets*MaxLayers + subdet*MaxLayers + layer
//
// The encoding is stable and may be persisted.
type ElementIndex uint32

// ElementIndexOf encodes a (region, sub-detector, layer) triple.
//
// The arguments are not validated: a sub-detector or layer beyond
// MaxSubDets or MaxLayers aliases the index space of a neighbouring
// region. Callers that cannot guarantee their inputs should use
// CheckedElementIndexOf instead.
func ElementIndexOf(r Region, sub SubDet, layer Layer) ElementIndex {
	return ElementIndex(uint32(r)*MaxSubDets*MaxLayers + uint32(sub)*MaxLayers + uint32(layer))
}

// CheckedElementIndexOf encodes a (region, sub-detector, layer) triple,
// rejecting out-of-range sub-detector or layer values.
func CheckedElementIndexOf(r Region, sub SubDet, layer Layer) (ElementIndex, error) {
	switch {
	case sub >= MaxSubDets:
		return 0, fmt.Errorf("regcab: invalid sub-detector (got=%d, max=%d)", sub, MaxSubDets-1)
	case layer >= MaxLayers:
		return 0, fmt.Errorf("regcab: invalid layer (got=%d, max=%d)", layer, MaxLayers-1)
	}
	return ElementIndexOf(r, sub, layer), nil
}

// ElementIndexAt encodes the element holding the given position.
func (ix Index) ElementIndexAt(pos Position, sub SubDet, layer Layer) ElementIndex {
	return ElementIndexOf(ix.RegionOf(pos), sub, layer)
}

// LayerOf extracts the layer from an element index.
func LayerOf(idx ElementIndex) Layer {
	return Layer(uint32(idx) % MaxLayers)
}

// SubDetOf extracts the sub-detector from an element index.
func SubDetOf(idx ElementIndex) SubDet {
	return SubDet(uint32(idx) / MaxLayers % MaxSubDets)
}

// RegionOfElement extracts the region from an element index.
func RegionOfElement(idx ElementIndex) Region {
	return Region(uint32(idx) / (MaxSubDets * MaxLayers))
}

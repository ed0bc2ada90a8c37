// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regcab

// Detector ids pack the location of a detector module into a uint32:
//
//	bits 25-27: sub-detector (3=TIB, 4=TID, 5=TOB, 6=TEC)
//	bits 14-17: layer (or disk/wheel for the forward sub-detectors)
//	bits  0-13: module number within the layer
const (
	detIDSubDetShift = 25
	detIDSubDetMask  = 0x7
	detIDLayerShift  = 14
	detIDLayerMask   = 0xf
	detIDModuleMask  = 0x3fff

	detIDTIB = 3
	detIDTID = 4
	detIDTOB = 5
	detIDTEC = 6
)

// SubDetFromDetID extracts the sub-detector from a detector id.
func SubDetFromDetID(detid uint32) SubDet {
	switch detid >> detIDSubDetShift & detIDSubDetMask {
	case detIDTIB:
		return TIB
	case detIDTID:
		return TID
	case detIDTOB:
		return TOB
	case detIDTEC:
		return TEC
	}
	return Unknown
}

// LayerFromDetID extracts the layer from a detector id.
func LayerFromDetID(detid uint32) uint32 {
	return detid >> detIDLayerShift & detIDLayerMask
}

// DetIDOf builds the detector id of a module. It is the inverse of
// SubDetFromDetID and LayerFromDetID over their shared fields.
func DetIDOf(sub SubDet, layer, module uint32) uint32 {
	var id uint32
	switch sub {
	case TIB:
		id = detIDTIB
	case TID:
		id = detIDTID
	case TOB:
		id = detIDTOB
	case TEC:
		id = detIDTEC
	}
	return id<<detIDSubDetShift |
		(layer&detIDLayerMask)<<detIDLayerShift |
		module&detIDModuleMask
}

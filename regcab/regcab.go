// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regcab gives a regional view of the silicon strip tracker
// cabling. The angular acceptance of the tracker is divided into
// (eta,phi) "regions". A region within a given sub-detector is called
// a "wedge". A layer within a given wedge is called an "element".
package regcab // import "github.com/go-lpc/strip/regcab"

import (
	"fmt"
	"math"
)

// Region identifies one cell of the (eta,phi) grid.
type Region uint32

// Layer identifies a layer within a wedge.
type Layer uint32

// Position is a point in (eta,phi) space.
// Phi is periodic with period 2*pi and is expected to be
// normalized into [0,2*pi) before being handed to an Index.
type Position struct {
	Eta float64
	Phi float64
}

// PositionIndex is a pair of grid cell coordinates. The fields are
// signed so the index can temporarily hold out-of-grid values while
// a window scan runs them through Normalize.
type PositionIndex struct {
	Eta int
	Phi int
}

// Index maps between positions, grid cell indices and regions for a
// fixed grid. It is immutable after construction and safe for
// concurrent use.
type Index struct {
	etadivs uint32  // number of regions in eta
	phidivs uint32  // number of regions in phi
	etamax  float64 // tracker extent in eta
}

// NewIndex returns an Index for a grid with etadivs divisions in eta,
// phidivs divisions in phi, covering eta in [-etamax,+etamax).
func NewIndex(etadivs, phidivs uint32, etamax float64) (Index, error) {
	switch {
	case etadivs == 0:
		return Index{}, fmt.Errorf("regcab: invalid number of eta divisions (got=0)")
	case phidivs == 0:
		return Index{}, fmt.Errorf("regcab: invalid number of phi divisions (got=0)")
	case etamax <= 0:
		return Index{}, fmt.Errorf("regcab: invalid eta extent (got=%v)", etamax)
	}
	return Index{etadivs: etadivs, phidivs: phidivs, etamax: etamax}, nil
}

// EtaDivisions returns the number of regions in eta.
func (ix Index) EtaDivisions() uint32 { return ix.etadivs }

// PhiDivisions returns the number of regions in phi.
func (ix Index) PhiDivisions() uint32 { return ix.phidivs }

// EtaMax returns the tracker extent in eta.
func (ix Index) EtaMax() float64 { return ix.etamax }

// Regions returns the total number of regions of the grid.
func (ix Index) Regions() uint32 { return ix.etadivs * ix.phidivs }

// RegionDimensions returns the (eta,phi) widths of one region.
func (ix Index) RegionDimensions() (etaw, phiw float64) {
	return 2 * ix.etamax / float64(ix.etadivs), 2 * math.Pi / float64(ix.phidivs)
}

// PositionIndexOf quantizes a position into grid cell coordinates.
// A position exactly on a grid line belongs to the higher-index cell.
func (ix Index) PositionIndexOf(pos Position) PositionIndex {
	etaw, phiw := ix.RegionDimensions()
	return PositionIndex{
		Eta: int((pos.Eta + ix.etamax) / etaw),
		Phi: int(pos.Phi / phiw),
	}
}

// RegionOf returns the region holding the given position.
func (ix Index) RegionOf(pos Position) Region {
	return ix.RegionOfIndex(ix.PositionIndexOf(pos))
}

// RegionOfIndex encodes grid cell coordinates into a region,
// row-major in eta.
func (ix Index) RegionOfIndex(idx PositionIndex) Region {
	return Region(uint32(idx.Eta)*ix.phidivs + uint32(idx.Phi))
}

// PositionIndexOfRegion decodes a region into grid cell coordinates.
func (ix Index) PositionIndexOfRegion(r Region) PositionIndex {
	return PositionIndex{
		Eta: int(uint32(r) / ix.phidivs),
		Phi: int(uint32(r) % ix.phidivs),
	}
}

// PositionOfIndex returns the center of the grid cell with the given
// coordinates, the canonical representative position of that cell.
func (ix Index) PositionOfIndex(idx PositionIndex) Position {
	etaw, phiw := ix.RegionDimensions()
	return Position{
		Eta: etaw*float64(idx.Eta) + etaw/2 - ix.etamax,
		Phi: phiw*float64(idx.Phi) + phiw/2,
	}
}

// PositionOfRegion returns the center of the given region.
func (ix Index) PositionOfRegion(r Region) Position {
	return ix.PositionOfIndex(ix.PositionIndexOfRegion(r))
}

// Normalize wraps the phi coordinate of idx modulo the number of phi
// divisions and reports whether the eta coordinate is within the grid.
// Eta has hard boundaries, not periodicity: Normalize returns false,
// with idx.Eta untouched, for a cell beyond the tracker acceptance.
func (ix Index) Normalize(idx *PositionIndex) bool {
	n := int(ix.phidivs)
	idx.Phi = ((idx.Phi % n) + n) % n
	if idx.Eta < 0 || idx.Eta >= int(ix.etadivs) {
		return false
	}
	return true
}

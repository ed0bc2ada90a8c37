// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regcab

import "math"

// ForEachElementInWindow visits the elements of all regions within
// deta (resp. dphi) of pos in eta (resp. phi), for the given
// sub-detector and layer. Candidate cells wrap around in phi; cells
// beyond the tracker acceptance in eta are skipped. Visitation is
// row-major over the window (eta outer, phi inner) and deterministic.
func (ix Index) ForEachElementInWindow(pos Position, deta, dphi float64, sub SubDet, layer Layer, visit func(ElementIndex)) {
	var (
		center     = ix.PositionIndexOf(pos)
		etaw, phiw = ix.RegionDimensions()
		neta       = int(deta / etaw)
		nphi       = int(dphi / phiw)
	)
	for ieta := -neta; ieta <= neta; ieta++ {
		for iphi := -nphi; iphi <= nphi; iphi++ {
			idx := PositionIndex{
				Eta: center.Eta + ieta,
				Phi: center.Phi + iphi,
			}
			if !ix.Normalize(&idx) {
				continue
			}
			visit(ElementIndexOf(ix.RegionOfIndex(idx), sub, layer))
		}
	}
}

// ForEachElementInRadius visits the elements of all regions within dR
// of pos, for the given sub-detector and layer.
//
// The radial cut is approximated by a symmetric rectangular window of
// half-width dR*dR/sqrt(2) in both eta and phi, as in the historical
// cabling code. Callers needing a tight circular boundary must apply
// their own post-filter.
func (ix Index) ForEachElementInRadius(pos Position, dR float64, sub SubDet, layer Layer, visit func(ElementIndex)) {
	d := dR * dR / math.Sqrt2
	ix.ForEachElementInWindow(pos, d, d, sub, layer, visit)
}

// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regcab

import (
	"fmt"
	"math"
	"sort"
)

// Connection describes one FED channel reading out a detector module.
type Connection struct {
	FEDID     uint16  // front-end driver id
	FEDCh     uint16  // front-end driver channel
	DetID     uint32  // detector id of the module read out
	APVPair   uint16  // APV pair index within the module
	NAPVPairs uint16  // number of APV pairs of the module
	Eta       float64 // pseudorapidity of the module
	Phi       float64 // azimuth of the module, in [0,2*pi)
}

// ElementCabling maps detector ids to the connections of one element.
type ElementCabling map[uint32][]Connection

// WedgeCabling holds the elements of one wedge, indexed by layer.
type WedgeCabling []ElementCabling

// RegionCabling holds the wedges of one region, indexed by
// sub-detector.
type RegionCabling []WedgeCabling

// Table holds the full cabling, indexed by region.
type Table []RegionCabling

// Cabling combines a grid Index with a populated cabling table.
// It is read-only after population and safe for concurrent readers
// once handed out.
type Cabling struct {
	Index
	table Table
}

// SetTable installs the full cabling table. The table must have one
// entry per region of the grid.
func (cab *Cabling) SetTable(table Table) { cab.table = table }

// Table returns the full cabling table.
func (cab *Cabling) Table() Table { return cab.table }

// Wedges returns the cabling of one region, indexed by sub-detector.
// A region with no cabling yields a nil slice.
func (cab *Cabling) Wedges(r Region) RegionCabling {
	if int(r) >= len(cab.table) {
		return nil
	}
	return cab.table[r]
}

// Connections returns the cabling of one element. An element with no
// registered connection yields a nil map, not an error.
func (cab *Cabling) Connections(idx ElementIndex) ElementCabling {
	var (
		r     = RegionOfElement(idx)
		sub   = SubDetOf(idx)
		layer = LayerOf(idx)
	)
	if int(r) >= len(cab.table) {
		return nil
	}
	wedges := cab.table[r]
	if int(sub) >= len(wedges) {
		return nil
	}
	elems := wedges[sub]
	if int(layer) >= len(elems) {
		return nil
	}
	return elems[layer]
}

// ConnectionsInWindow gathers the connections of all elements within
// the given (eta,phi) window, in element visitation order, with
// connections of one element ordered by detector id.
func (cab *Cabling) ConnectionsInWindow(pos Position, deta, dphi float64, sub SubDet, layer Layer) []Connection {
	var conns []Connection
	cab.ForEachElementInWindow(pos, deta, dphi, sub, layer, func(idx ElementIndex) {
		conns = append(conns, cab.elementConnections(idx)...)
	})
	return conns
}

// ConnectionsInRadius gathers the connections of all elements within
// dR of pos, with the same radial approximation as
// ForEachElementInRadius.
func (cab *Cabling) ConnectionsInRadius(pos Position, dR float64, sub SubDet, layer Layer) []Connection {
	d := dR * dR / math.Sqrt2
	return cab.ConnectionsInWindow(pos, d, d, sub, layer)
}

func (cab *Cabling) elementConnections(idx ElementIndex) []Connection {
	elem := cab.Connections(idx)
	if len(elem) == 0 {
		return nil
	}
	detids := make([]uint32, 0, len(elem))
	for detid := range elem {
		detids = append(detids, detid)
	}
	sort.Slice(detids, func(i, j int) bool { return detids[i] < detids[j] })

	var conns []Connection
	for _, detid := range detids {
		conns = append(conns, elem[detid]...)
	}
	return conns
}

// Builder assembles a Cabling from individual connections. It is a
// single-writer, bulk-load step: populate with Add, then publish the
// result once with Cabling.
type Builder struct {
	idx   Index
	table Table
}

// NewBuilder returns a Builder for the given grid.
func NewBuilder(idx Index) *Builder {
	table := make(Table, idx.Regions())
	for i := range table {
		wedges := make(RegionCabling, MaxSubDets)
		for j := range wedges {
			wedges[j] = make(WedgeCabling, MaxLayers)
		}
		table[i] = wedges
	}
	return &Builder{idx: idx, table: table}
}

// Add routes a connection to its element, resolving the region from
// the connection position and the sub-detector and layer from its
// detector id. The phi coordinate is wrapped into [0,2*pi).
func (b *Builder) Add(conn Connection) error {
	sub := SubDetFromDetID(conn.DetID)
	if sub == Unknown {
		return fmt.Errorf("regcab: unknown sub-detector for det-id 0x%x", conn.DetID)
	}
	layer := LayerFromDetID(conn.DetID)
	if layer >= MaxLayers {
		return fmt.Errorf("regcab: invalid layer %d for det-id 0x%x", layer, conn.DetID)
	}
	if conn.Eta < -b.idx.EtaMax() || conn.Eta >= b.idx.EtaMax() {
		return fmt.Errorf("regcab: det-id 0x%x outside eta acceptance (eta=%v, max=%v)",
			conn.DetID, conn.Eta, b.idx.EtaMax(),
		)
	}

	pos := Position{Eta: conn.Eta, Phi: wrapPhi(conn.Phi)}
	conn.Phi = pos.Phi

	elem := b.table[b.idx.RegionOf(pos)][sub][layer]
	if elem == nil {
		elem = make(ElementCabling)
		b.table[b.idx.RegionOf(pos)][sub][layer] = elem
	}
	elem[conn.DetID] = append(elem[conn.DetID], conn)
	return nil
}

// Cabling publishes the assembled cabling. The Builder must not be
// used afterwards.
func (b *Builder) Cabling() *Cabling {
	cab := &Cabling{Index: b.idx}
	cab.SetTable(b.table)
	b.table = nil
	return cab
}

func wrapPhi(phi float64) float64 {
	phi = math.Mod(phi, 2*math.Pi)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi
}

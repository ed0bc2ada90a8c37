// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cabfmt describes and handles regional cabling snapshot
// files. A snapshot is a YAML document holding the grid parameters and
// the flat list of FED channel connections of a cabling, protected by
// a CRC-16 checksum; the nested cabling table is rebuilt on read.
package cabfmt // import "github.com/go-lpc/strip/internal/cabfmt"

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"sort"

	"github.com/go-lpc/strip/internal/crc16"
	"github.com/go-lpc/strip/regcab"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Snapshot is the on-disk form of a regional cabling.
type Snapshot struct {
	Version      string       `yaml:"version,omitempty"`
	EtaDivisions uint32       `yaml:"eta-divisions"`
	PhiDivisions uint32       `yaml:"phi-divisions"`
	EtaMax       float64      `yaml:"eta-max"`
	CRC          uint16       `yaml:"crc"`
	Connections  []Connection `yaml:"connections"`
}

// Connection is the on-disk form of one FED channel connection.
type Connection struct {
	FEDID     uint16  `yaml:"fed-id"`
	FEDCh     uint16  `yaml:"fed-ch"`
	DetID     uint32  `yaml:"det-id"`
	APVPair   uint16  `yaml:"apv-pair"`
	NAPVPairs uint16  `yaml:"napv-pairs"`
	Eta       float64 `yaml:"eta"`
	Phi       float64 `yaml:"phi"`
}

// Encode writes the snapshot of cab to w. Connections are flattened
// in element order (region, sub-detector, layer, det-id), so encoding
// a given cabling is deterministic.
func Encode(w io.Writer, cab *regcab.Cabling, version string) error {
	snap := &Snapshot{
		Version:      version,
		EtaDivisions: cab.EtaDivisions(),
		PhiDivisions: cab.PhiDivisions(),
		EtaMax:       cab.EtaMax(),
		Connections:  flatten(cab),
	}
	snap.CRC = snap.checksum()

	err := yaml.NewEncoder(w).Encode(snap)
	if err != nil {
		return xerrors.Errorf("cabfmt: could not encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot from r and verifies its checksum.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	err := yaml.NewDecoder(r).Decode(&snap)
	if err != nil {
		return nil, xerrors.Errorf("cabfmt: could not decode snapshot: %w", err)
	}

	if got, want := snap.checksum(), snap.CRC; got != want {
		return nil, xerrors.Errorf("cabfmt: invalid snapshot checksum: got=0x%04x, want=0x%04x",
			got, want,
		)
	}

	return &snap, nil
}

// Cabling rebuilds the regional cabling held by the snapshot.
func (snap *Snapshot) Cabling() (*regcab.Cabling, error) {
	idx, err := regcab.NewIndex(snap.EtaDivisions, snap.PhiDivisions, snap.EtaMax)
	if err != nil {
		return nil, xerrors.Errorf("cabfmt: invalid snapshot grid: %w", err)
	}

	bld := regcab.NewBuilder(idx)
	for i, conn := range snap.Connections {
		err = bld.Add(regcab.Connection{
			FEDID:     conn.FEDID,
			FEDCh:     conn.FEDCh,
			DetID:     conn.DetID,
			APVPair:   conn.APVPair,
			NAPVPairs: conn.NAPVPairs,
			Eta:       conn.Eta,
			Phi:       conn.Phi,
		})
		if err != nil {
			return nil, xerrors.Errorf("cabfmt: could not add connection %d: %w", i, err)
		}
	}

	return bld.Cabling(), nil
}

// Decode reads a snapshot from r and rebuilds the cabling it holds.
func Decode(r io.Reader) (*regcab.Cabling, error) {
	snap, err := DecodeSnapshot(r)
	if err != nil {
		return nil, err
	}
	return snap.Cabling()
}

// Write writes the snapshot of cab to the named file.
func Write(fname string, cab *regcab.Cabling, version string) error {
	f, err := os.Create(fname)
	if err != nil {
		return xerrors.Errorf("cabfmt: could not create %q: %w", fname, err)
	}
	defer f.Close()

	err = Encode(f, cab, version)
	if err != nil {
		return xerrors.Errorf("cabfmt: could not encode %q: %w", fname, err)
	}

	err = f.Close()
	if err != nil {
		return xerrors.Errorf("cabfmt: could not close %q: %w", fname, err)
	}
	return nil
}

// Read rebuilds the cabling held by the named snapshot file.
func Read(fname string) (*regcab.Cabling, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, xerrors.Errorf("cabfmt: could not open %q: %w", fname, err)
	}
	defer f.Close()

	cab, err := Decode(f)
	if err != nil {
		return nil, xerrors.Errorf("cabfmt: could not decode %q: %w", fname, err)
	}
	return cab, nil
}

// checksum folds the grid parameters and connections into a CRC-16,
// hashing float fields through their IEEE-754 bit patterns.
func (snap *Snapshot) checksum() uint16 {
	crc := crc16.New(nil)
	binary.Write(crc, binary.LittleEndian, snap.EtaDivisions)
	binary.Write(crc, binary.LittleEndian, snap.PhiDivisions)
	binary.Write(crc, binary.LittleEndian, math.Float64bits(snap.EtaMax))
	for _, conn := range snap.Connections {
		binary.Write(crc, binary.LittleEndian, conn.FEDID)
		binary.Write(crc, binary.LittleEndian, conn.FEDCh)
		binary.Write(crc, binary.LittleEndian, conn.DetID)
		binary.Write(crc, binary.LittleEndian, conn.APVPair)
		binary.Write(crc, binary.LittleEndian, conn.NAPVPairs)
		binary.Write(crc, binary.LittleEndian, math.Float64bits(conn.Eta))
		binary.Write(crc, binary.LittleEndian, math.Float64bits(conn.Phi))
	}
	return crc.Sum16()
}

func flatten(cab *regcab.Cabling) []Connection {
	var conns []Connection
	for _, wedges := range cab.Table() {
		for _, elems := range wedges {
			for _, elem := range elems {
				detids := make([]uint32, 0, len(elem))
				for detid := range elem {
					detids = append(detids, detid)
				}
				sort.Slice(detids, func(i, j int) bool { return detids[i] < detids[j] })
				for _, detid := range detids {
					for _, conn := range elem[detid] {
						conns = append(conns, Connection{
							FEDID:     conn.FEDID,
							FEDCh:     conn.FEDCh,
							DetID:     conn.DetID,
							APVPair:   conn.APVPair,
							NAPVPairs: conn.NAPVPairs,
							Eta:       conn.Eta,
							Phi:       conn.Phi,
						})
					}
				}
			}
		}
	}
	return conns
}

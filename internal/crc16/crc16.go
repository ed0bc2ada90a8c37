// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package crc16 provides the CRC-16/CCITT-FALSE checksum used to
// protect cabling snapshots against corruption.
package crc16 // import "github.com/go-lpc/strip/internal/crc16"

import (
	"encoding/binary"
	"hash"
)

const (
	ccittPoly = 0x1021
	ccittInit = 0xffff
)

// Table holds the lookup table of a CRC-16 polynomial.
type Table [256]uint16

// MakeTable returns the lookup table for the given polynomial.
func MakeTable(poly uint16) *Table {
	var tab Table
	for i := range tab {
		crc := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		tab[i] = crc
	}
	return &tab
}

var ccitt = MakeTable(ccittPoly)

// Hash16 is the common interface implemented by all 16-bit hash
// functions.
type Hash16 interface {
	hash.Hash
	Sum16() uint16
}

// New creates a new Hash16 computing the CRC-16 checksum using the
// polynomial represented by tab. A nil tab selects CRC-16/CCITT-FALSE.
func New(tab *Table) Hash16 {
	if tab == nil {
		tab = ccitt
	}
	return &digest{crc: ccittInit, tab: tab}
}

// Checksum returns the CRC-16/CCITT-FALSE checksum of data.
func Checksum(data []byte) uint16 {
	crc := uint16(ccittInit)
	for _, v := range data {
		crc = crc<<8 ^ ccitt[byte(crc>>8)^v]
	}
	return crc
}

type digest struct {
	crc uint16
	tab *Table
}

func (d *digest) Size() int      { return 2 }
func (d *digest) BlockSize() int { return 1 }
func (d *digest) Reset()         { d.crc = ccittInit }

func (d *digest) Write(p []byte) (int, error) {
	for _, v := range p {
		d.crc = d.crc<<8 ^ d.tab[byte(d.crc>>8)^v]
	}
	return len(p), nil
}

func (d *digest) Sum16() uint16 { return d.crc }

func (d *digest) Sum(in []byte) []byte {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], d.crc)
	return append(in, buf[:]...)
}

// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-lpc/strip/internal/cabfmt"
	"github.com/go-lpc/strip/regcab"
)

func writeSnapshot(t *testing.T, fname string, etadivs, phidivs uint32, etamax float64, conns []regcab.Connection) {
	t.Helper()

	idx, err := regcab.NewIndex(etadivs, phidivs, etamax)
	if err != nil {
		t.Fatalf("could not create index: %+v", err)
	}
	bld := regcab.NewBuilder(idx)
	for _, conn := range conns {
		if err := bld.Add(conn); err != nil {
			t.Fatalf("could not add connection: %+v", err)
		}
	}
	if err := cabfmt.Write(fname, bld.Cabling(), "test"); err != nil {
		t.Fatalf("could not write snapshot: %+v", err)
	}
}

func TestMap(t *testing.T) {
	tmpdir, err := os.MkdirTemp("", "strip-map-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpdir)

	f1 := filepath.Join(tmpdir, "tib.yaml")
	writeSnapshot(t, f1, 2, 4, 2.0, []regcab.Connection{
		{
			FEDID: 50, FEDCh: 1,
			DetID: regcab.DetIDOf(regcab.TIB, 1, 1),
			Eta:   0.5, Phi: 0.1,
		},
	})

	f2 := filepath.Join(tmpdir, "tob.yaml")
	writeSnapshot(t, f2, 2, 4, 2.0, []regcab.Connection{
		{
			FEDID: 60, FEDCh: 7,
			DetID: regcab.DetIDOf(regcab.TOB, 3, 5),
			Eta:   -1.2, Phi: 3.0,
		},
	})

	oname := filepath.Join(tmpdir, "map.png")
	err = xmain(oname, []string{f1, f2})
	if err != nil {
		t.Fatalf("could not map cabling: %+v", err)
	}

	fi, err := os.Stat(oname)
	if err != nil {
		t.Fatalf("could not stat output plot: %+v", err)
	}
	if fi.Size() == 0 {
		t.Fatalf("empty output plot %q", oname)
	}
}

func TestMapGridMismatch(t *testing.T) {
	tmpdir, err := os.MkdirTemp("", "strip-map-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpdir)

	f1 := filepath.Join(tmpdir, "a.yaml")
	writeSnapshot(t, f1, 2, 4, 2.0, nil)

	f2 := filepath.Join(tmpdir, "b.yaml")
	writeSnapshot(t, f2, 4, 4, 2.0, nil)

	err = xmain(filepath.Join(tmpdir, "map.png"), []string{f1, f2})
	if err == nil {
		t.Fatalf("expected an error (got=nil)")
	}
	if !strings.Contains(err.Error(), "grid mismatch") {
		t.Fatalf("invalid error: got=%q", err.Error())
	}
}

func TestMapMissingFile(t *testing.T) {
	err := xmain("map.png", []string{"/dev/null/not-there"})
	if err == nil {
		t.Fatalf("expected an error (got=nil)")
	}
}

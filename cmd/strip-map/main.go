// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// strip-map draws the region occupancy of regional cabling snapshots
// as a 2-dim histogram over the (eta,phi) grid.
//
// Usage: strip-map [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//	$> strip-map -o map.png ./cabling.yaml
//	$> strip-map -o map.png ./tib.yaml ./tob.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/go-lpc/strip/internal/cabfmt"
	"github.com/go-lpc/strip/regcab"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"
)

func main() {
	log.SetPrefix("strip-map: ")
	log.SetFlags(0)

	oname := flag.String("o", "map.png", "path to output plot file")

	flag.Usage = func() {
		fmt.Printf(`strip-map draws the region occupancy of regional cabling snapshots
as a 2-dim histogram over the (eta,phi) grid.

Usage: strip-map [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> strip-map -o map.png ./cabling.yaml
 $> strip-map -o map.png ./tib.yaml ./tob.yaml

`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		log.Fatalf("missing path to input cabling snapshot file")
	}

	err := xmain(*oname, flag.Args())
	if err != nil {
		log.Fatalf("could not map cabling: %+v", err)
	}
}

func xmain(oname string, fnames []string) error {
	cabs, err := readAll(fnames)
	if err != nil {
		return err
	}

	h, err := fill(cabs)
	if err != nil {
		return err
	}

	p := hplot.New()
	p.Title.Text = "Region occupancy"
	p.X.Label.Text = "eta"
	p.Y.Label.Text = "phi (rad)"
	p.Add(hplot.NewH2D(h, moreland.SmoothBlueRed().Palette(255)))

	err = p.Save(6*vg.Inch, 4*vg.Inch, oname)
	if err != nil {
		return fmt.Errorf("could not save plot %q: %w", oname, err)
	}

	return nil
}

func readAll(fnames []string) ([]*regcab.Cabling, error) {
	var (
		grp  errgroup.Group
		cabs = make([]*regcab.Cabling, len(fnames))
	)
	for i, fname := range fnames {
		i, fname := i, fname
		grp.Go(func() error {
			cab, err := cabfmt.Read(fname)
			if err != nil {
				return fmt.Errorf("could not read snapshot %q: %w", fname, err)
			}
			cabs[i] = cab
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return cabs, nil
}

// fill histograms the connections of all snapshots over the grid of
// the first one. All snapshots must share the same grid.
func fill(cabs []*regcab.Cabling) (*hbook.H2D, error) {
	ref := cabs[0]
	h := hbook.NewH2D(
		int(ref.EtaDivisions()), -ref.EtaMax(), +ref.EtaMax(),
		int(ref.PhiDivisions()), 0, 2*math.Pi,
	)

	for i, cab := range cabs {
		if cab.EtaDivisions() != ref.EtaDivisions() ||
			cab.PhiDivisions() != ref.PhiDivisions() ||
			cab.EtaMax() != ref.EtaMax() {
			return nil, fmt.Errorf("snapshot %d grid mismatch: got=(%d,%d,%v), want=(%d,%d,%v)",
				i,
				cab.EtaDivisions(), cab.PhiDivisions(), cab.EtaMax(),
				ref.EtaDivisions(), ref.PhiDivisions(), ref.EtaMax(),
			)
		}
		for _, wedges := range cab.Table() {
			for _, elems := range wedges {
				for _, elem := range elems {
					for _, conns := range elem {
						for _, conn := range conns {
							h.Fill(conn.Eta, conn.Phi, 1)
						}
					}
				}
			}
		}
	}

	return h, nil
}

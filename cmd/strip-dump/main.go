// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// strip-dump decodes and displays regional cabling snapshot files.
//
// Usage: strip-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//	$> strip-dump ./cabling.yaml
//	=== cabling "STRIP2020_1" ===
//	eta divisions:      20
//	phi divisions:      24
//	eta max:           2.5
//	connections:     15232
//	region 44:
//	  TIB layer 1: 2 module(s), 3 connection(s)
//	[...]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-lpc/strip/internal/cabfmt"
	"github.com/go-lpc/strip/regcab"
)

func main() {
	log.SetPrefix("strip-dump: ")
	log.SetFlags(0)

	verbose := flag.Bool("v", false, "list individual connections")

	flag.Usage = func() {
		fmt.Printf(`strip-dump decodes and displays regional cabling snapshot files.

Usage: strip-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> strip-dump ./cabling.yaml
 === cabling "STRIP2020_1" ===
 eta divisions:      20
 phi divisions:      24
 eta max:           2.5
 connections:     15232
 region 44:
   TIB layer 1: 2 module(s), 3 connection(s)
 [...]

`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		log.Fatalf("missing path to input cabling snapshot file")
	}

	for _, fname := range flag.Args() {
		err := process(os.Stdout, fname, *verbose)
		if err != nil {
			log.Fatalf("could not dump file %q: %+v", fname, err)
		}
	}
}

func process(w io.Writer, fname string, verbose bool) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	f, err := os.Open(fname)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", fname, err)
	}
	defer f.Close()

	snap, err := cabfmt.DecodeSnapshot(f)
	if err != nil {
		return fmt.Errorf("could not decode snapshot: %w", err)
	}

	cab, err := snap.Cabling()
	if err != nil {
		return fmt.Errorf("could not build cabling: %w", err)
	}

	fmt.Fprintf(wbuf, "=== cabling %q ===\n", snap.Version)
	fmt.Fprintf(wbuf, "eta divisions: % 7d\n", cab.EtaDivisions())
	fmt.Fprintf(wbuf, "phi divisions: % 7d\n", cab.PhiDivisions())
	fmt.Fprintf(wbuf, "eta max:       % 7v\n", cab.EtaMax())
	fmt.Fprintf(wbuf, "connections:   % 7d\n", len(snap.Connections))

	for r, wedges := range cab.Table() {
		if empty(wedges) {
			continue
		}
		fmt.Fprintf(wbuf, "region %d:\n", r)
		for sub, elems := range wedges {
			for layer, elem := range elems {
				if len(elem) == 0 {
					continue
				}
				fmt.Fprintf(wbuf, "  %v layer %d: %d module(s), %d connection(s)\n",
					regcab.SubDet(sub), layer, len(elem), nconns(elem),
				)
				if !verbose {
					continue
				}
				for _, conn := range cab.ConnectionsInWindow(
					cab.PositionOfRegion(regcab.Region(r)), 0, 0,
					regcab.SubDet(sub), regcab.Layer(layer),
				) {
					fmt.Fprintf(wbuf, "    fed=%03d/%02d det-id=0x%08x apv=%d/%d eta=%+.3f phi=%.3f\n",
						conn.FEDID, conn.FEDCh, conn.DetID,
						conn.APVPair, conn.NAPVPairs, conn.Eta, conn.Phi,
					)
				}
			}
		}
	}

	return nil
}

func empty(wedges regcab.RegionCabling) bool {
	for _, elems := range wedges {
		for _, elem := range elems {
			if len(elem) != 0 {
				return false
			}
		}
	}
	return true
}

func nconns(elem regcab.ElementCabling) int {
	n := 0
	for _, conns := range elem {
		n += len(conns)
	}
	return n
}

// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// strip-regions is an interactive shell to explore the regional view
// of the silicon strip tracker cabling.
//
// Usage: strip-regions [OPTIONS]
//
// Example:
//
//	$> strip-regions -eta-divs 2 -phi-divs 4 -eta-max 2
//	strip> region 0.5 0.1
//	region=4 index=(eta=1, phi=0)
//	strip> element 4 TOB 3
//	element=173
//	strip> quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-lpc/strip/internal/cabfmt"
	"github.com/go-lpc/strip/regcab"
	"github.com/peterh/liner"
)

func main() {
	log.SetPrefix("strip-regions: ")
	log.SetFlags(0)

	var (
		etadivs = flag.Uint("eta-divs", 20, "number of regions in eta")
		phidivs = flag.Uint("phi-divs", 24, "number of regions in phi")
		etamax  = flag.Float64("eta-max", 2.5, "tracker extent in eta")
		fname   = flag.String("cabling", "", "path to a cabling snapshot file (optional)")
	)

	flag.Usage = func() {
		fmt.Printf(`strip-regions is an interactive shell to explore the regional view
of the silicon strip tracker cabling.

Usage: strip-regions [OPTIONS]

Example:

 $> strip-regions -eta-divs 2 -phi-divs 4 -eta-max 2
 strip> region 0.5 0.1
 region=4 index=(eta=1, phi=0)
 strip> element 4 TOB 3
 element=173
 strip> quit

`)
		flag.PrintDefaults()
	}

	flag.Parse()

	cab, err := load(uint32(*etadivs), uint32(*phidivs), *etamax, *fname)
	if err != nil {
		log.Fatalf("could not set up cabling: %+v", err)
	}

	err = interact(os.Stdout, cab)
	if err != nil {
		log.Fatalf("could not run shell: %+v", err)
	}
}

// load returns the cabling of the given snapshot file or, without one,
// an empty cabling over the grid given on the command line.
func load(etadivs, phidivs uint32, etamax float64, fname string) (*regcab.Cabling, error) {
	if fname != "" {
		cab, err := cabfmt.Read(fname)
		if err != nil {
			return nil, fmt.Errorf("could not read snapshot %q: %w", fname, err)
		}
		return cab, nil
	}

	idx, err := regcab.NewIndex(etadivs, phidivs, etamax)
	if err != nil {
		return nil, fmt.Errorf("could not create index: %w", err)
	}
	return regcab.NewBuilder(idx).Cabling(), nil
}

func interact(w io.Writer, cab *regcab.Cabling) error {
	term := liner.NewLiner()
	defer term.Close()

	term.SetCtrlCAborts(true)

	for {
		line, err := term.Prompt("strip> ")
		switch err {
		case nil:
			// ok
		case io.EOF, liner.ErrPromptAborted:
			fmt.Fprintf(w, "\n")
			return nil
		default:
			return fmt.Errorf("could not read line: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		term.AppendHistory(line)

		if line == "quit" || line == "exit" {
			return nil
		}

		err = dispatch(w, cab, line)
		if err != nil {
			fmt.Fprintf(w, "error: %+v\n", err)
		}
	}
}

func dispatch(w io.Writer, cab *regcab.Cabling, line string) error {
	args := strings.Fields(line)
	cmd, args := args[0], args[1:]

	switch cmd {
	case "help":
		fmt.Fprintf(w, `commands:
 dim                                   grid dimensions
 region ETA PHI                        region holding a position
 pos REGION                            center position of a region
 element REGION SUBDET LAYER           element index of a triple
 decode INDEX                          decode an element index
 window ETA PHI DETA DPHI SUBDET LAYER elements in a window
 radius ETA PHI DR SUBDET LAYER        elements in a radius
 conns INDEX                           connections of an element
 quit                                  exit the shell
`)
		return nil

	case "dim":
		if len(args) != 0 {
			return fmt.Errorf("usage: dim")
		}
		etaw, phiw := cab.RegionDimensions()
		fmt.Fprintf(w, "grid: %dx%d regions, |eta|<%v, region size (%v x %v)\n",
			cab.EtaDivisions(), cab.PhiDivisions(), cab.EtaMax(), etaw, phiw,
		)
		return nil

	case "region":
		pos, err := parsePos(args, 2)
		if err != nil {
			return err
		}
		idx := cab.PositionIndexOf(pos)
		norm := idx
		if !cab.Normalize(&norm) {
			return fmt.Errorf("position (eta=%v, phi=%v) outside acceptance", pos.Eta, pos.Phi)
		}
		fmt.Fprintf(w, "region=%d index=(eta=%d, phi=%d)\n",
			cab.RegionOfIndex(norm), norm.Eta, norm.Phi,
		)
		return nil

	case "pos":
		if len(args) != 1 {
			return fmt.Errorf("usage: pos REGION")
		}
		reg, err := parseRegion(cab, args[0])
		if err != nil {
			return err
		}
		pos := cab.PositionOfRegion(reg)
		fmt.Fprintf(w, "region=%d center=(eta=%v, phi=%v)\n", reg, pos.Eta, pos.Phi)
		return nil

	case "element":
		if len(args) != 3 {
			return fmt.Errorf("usage: element REGION SUBDET LAYER")
		}
		reg, err := parseRegion(cab, args[0])
		if err != nil {
			return err
		}
		sub, err := regcab.ParseSubDet(args[1])
		if err != nil {
			return err
		}
		layer, err := parseLayer(args[2])
		if err != nil {
			return err
		}
		idx, err := regcab.CheckedElementIndexOf(reg, sub, layer)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "element=%d\n", idx)
		return nil

	case "decode":
		if len(args) != 1 {
			return fmt.Errorf("usage: decode INDEX")
		}
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid element index %q", args[0])
		}
		idx := regcab.ElementIndex(v)
		fmt.Fprintf(w, "element=%d region=%d subdet=%v layer=%d\n",
			idx, regcab.RegionOfElement(idx), regcab.SubDetOf(idx), regcab.LayerOf(idx),
		)
		return nil

	case "window":
		if len(args) != 6 {
			return fmt.Errorf("usage: window ETA PHI DETA DPHI SUBDET LAYER")
		}
		pos, err := parsePos(args[:2], 2)
		if err != nil {
			return err
		}
		deta, err := parseFloat(args[2])
		if err != nil {
			return err
		}
		dphi, err := parseFloat(args[3])
		if err != nil {
			return err
		}
		sub, err := regcab.ParseSubDet(args[4])
		if err != nil {
			return err
		}
		layer, err := parseLayer(args[5])
		if err != nil {
			return err
		}
		cab.ForEachElementInWindow(pos, deta, dphi, sub, layer, func(idx regcab.ElementIndex) {
			fmt.Fprintf(w, "element=%d region=%d\n", idx, regcab.RegionOfElement(idx))
		})
		return nil

	case "radius":
		if len(args) != 5 {
			return fmt.Errorf("usage: radius ETA PHI DR SUBDET LAYER")
		}
		pos, err := parsePos(args[:2], 2)
		if err != nil {
			return err
		}
		dR, err := parseFloat(args[2])
		if err != nil {
			return err
		}
		sub, err := regcab.ParseSubDet(args[3])
		if err != nil {
			return err
		}
		layer, err := parseLayer(args[4])
		if err != nil {
			return err
		}
		cab.ForEachElementInRadius(pos, dR, sub, layer, func(idx regcab.ElementIndex) {
			fmt.Fprintf(w, "element=%d region=%d\n", idx, regcab.RegionOfElement(idx))
		})
		return nil

	case "conns":
		if len(args) != 1 {
			return fmt.Errorf("usage: conns INDEX")
		}
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid element index %q", args[0])
		}
		idx := regcab.ElementIndex(v)
		conns := cab.ConnectionsInWindow(
			cab.PositionOfRegion(regcab.RegionOfElement(idx)), 0, 0,
			regcab.SubDetOf(idx), regcab.LayerOf(idx),
		)
		if len(conns) == 0 {
			fmt.Fprintf(w, "element=%d: no connections\n", idx)
			return nil
		}
		for _, conn := range conns {
			fmt.Fprintf(w, "fed=%03d/%02d det-id=0x%08x apv=%d/%d\n",
				conn.FEDID, conn.FEDCh, conn.DetID, conn.APVPair, conn.NAPVPairs,
			)
		}
		return nil
	}

	return fmt.Errorf("unknown command %q (try \"help\")", cmd)
}

func parsePos(args []string, n int) (regcab.Position, error) {
	if len(args) != n {
		return regcab.Position{}, fmt.Errorf("expected ETA PHI")
	}
	eta, err := parseFloat(args[0])
	if err != nil {
		return regcab.Position{}, err
	}
	phi, err := parseFloat(args[1])
	if err != nil {
		return regcab.Position{}, err
	}
	return regcab.Position{Eta: eta, Phi: phi}, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func parseLayer(s string) (regcab.Layer, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid layer %q", s)
	}
	return regcab.Layer(v), nil
}

func parseRegion(cab *regcab.Cabling, s string) (regcab.Region, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || uint32(v) >= cab.Regions() {
		return 0, fmt.Errorf("invalid region %q", s)
	}
	return regcab.Region(v), nil
}

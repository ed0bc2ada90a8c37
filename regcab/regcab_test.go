// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regcab

import (
	"math"
	"testing"
)

func TestNewIndex(t *testing.T) {
	for _, tc := range []struct {
		name    string
		etadivs uint32
		phidivs uint32
		etamax  float64
		want    string
	}{
		{
			name:    "valid",
			etadivs: 2, phidivs: 4, etamax: 2.0,
		},
		{
			name:    "no-eta-divisions",
			etadivs: 0, phidivs: 4, etamax: 2.0,
			want: "regcab: invalid number of eta divisions (got=0)",
		},
		{
			name:    "no-phi-divisions",
			etadivs: 2, phidivs: 0, etamax: 2.0,
			want: "regcab: invalid number of phi divisions (got=0)",
		},
		{
			name:    "zero-eta-extent",
			etadivs: 2, phidivs: 4, etamax: 0,
			want: "regcab: invalid eta extent (got=0)",
		},
		{
			name:    "negative-eta-extent",
			etadivs: 2, phidivs: 4, etamax: -2.5,
			want: "regcab: invalid eta extent (got=-2.5)",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ix, err := NewIndex(tc.etadivs, tc.phidivs, tc.etamax)
			switch {
			case tc.want == "" && err != nil:
				t.Fatalf("could not create index: %+v", err)
			case tc.want != "":
				if err == nil {
					t.Fatalf("expected an error (got=nil)")
				}
				if got, want := err.Error(), tc.want; got != want {
					t.Fatalf("invalid error:\ngot= %q\nwant=%q", got, want)
				}
				return
			}

			if got, want := ix.EtaDivisions(), tc.etadivs; got != want {
				t.Fatalf("invalid eta divisions: got=%d, want=%d", got, want)
			}
			if got, want := ix.PhiDivisions(), tc.phidivs; got != want {
				t.Fatalf("invalid phi divisions: got=%d, want=%d", got, want)
			}
			if got, want := ix.EtaMax(), tc.etamax; got != want {
				t.Fatalf("invalid eta extent: got=%v, want=%v", got, want)
			}
			if got, want := ix.Regions(), tc.etadivs*tc.phidivs; got != want {
				t.Fatalf("invalid number of regions: got=%d, want=%d", got, want)
			}
		})
	}
}

func TestRegionDimensions(t *testing.T) {
	ix, err := NewIndex(2, 4, 2.0)
	if err != nil {
		t.Fatalf("could not create index: %+v", err)
	}

	etaw, phiw := ix.RegionDimensions()
	if got, want := etaw, 2.0; got != want {
		t.Fatalf("invalid eta width: got=%v, want=%v", got, want)
	}
	if got, want := phiw, math.Pi/2; got != want {
		t.Fatalf("invalid phi width: got=%v, want=%v", got, want)
	}
}

func TestRegionOf(t *testing.T) {
	ix, err := NewIndex(2, 4, 2.0)
	if err != nil {
		t.Fatalf("could not create index: %+v", err)
	}

	for _, tc := range []struct {
		name string
		pos  Position
		idx  PositionIndex
		reg  Region
	}{
		{
			name: "upper-eta-half",
			pos:  Position{Eta: 0.5, Phi: 0.1},
			idx:  PositionIndex{Eta: 1, Phi: 0},
			reg:  4,
		},
		{
			name: "lower-eta-half",
			pos:  Position{Eta: -0.5, Phi: 0.1},
			idx:  PositionIndex{Eta: 0, Phi: 0},
			reg:  0,
		},
		{
			name: "last-phi-sector",
			pos:  Position{Eta: 1.0, Phi: 2 * math.Pi * 0.9},
			idx:  PositionIndex{Eta: 1, Phi: 3},
			reg:  7,
		},
		{
			name: "grid-line-belongs-to-higher-cell",
			pos:  Position{Eta: 0.0, Phi: math.Pi / 2},
			idx:  PositionIndex{Eta: 1, Phi: 1},
			reg:  5,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got, want := ix.PositionIndexOf(tc.pos), tc.idx; got != want {
				t.Fatalf("invalid position index: got=%v, want=%v", got, want)
			}
			if got, want := ix.RegionOf(tc.pos), tc.reg; got != want {
				t.Fatalf("invalid region: got=%d, want=%d", got, want)
			}
			if got, want := ix.RegionOfIndex(tc.idx), tc.reg; got != want {
				t.Fatalf("invalid region from index: got=%d, want=%d", got, want)
			}
		})
	}
}

func TestRegionRoundTrip(t *testing.T) {
	ix, err := NewIndex(5, 12, 2.5)
	if err != nil {
		t.Fatalf("could not create index: %+v", err)
	}

	for r := Region(0); r < Region(ix.Regions()); r++ {
		if got, want := ix.RegionOf(ix.PositionOfRegion(r)), r; got != want {
			t.Fatalf("region round trip failed: got=%d, want=%d", got, want)
		}
	}
}

func TestPositionIndexBijectivity(t *testing.T) {
	ix, err := NewIndex(4, 6, 3.0)
	if err != nil {
		t.Fatalf("could not create index: %+v", err)
	}

	for ieta := 0; ieta < int(ix.EtaDivisions()); ieta++ {
		for iphi := 0; iphi < int(ix.PhiDivisions()); iphi++ {
			idx := PositionIndex{Eta: ieta, Phi: iphi}
			got := ix.PositionIndexOf(ix.PositionOfIndex(idx))
			if got != idx {
				t.Fatalf("position index round trip failed: got=%v, want=%v", got, idx)
			}
			if got, want := ix.PositionIndexOfRegion(ix.RegionOfIndex(idx)), idx; got != want {
				t.Fatalf("region decode round trip failed: got=%v, want=%v", got, want)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	ix, err := NewIndex(2, 4, 2.0)
	if err != nil {
		t.Fatalf("could not create index: %+v", err)
	}

	for _, tc := range []struct {
		name string
		idx  PositionIndex
		want PositionIndex
		ok   bool
	}{
		{
			name: "in-grid",
			idx:  PositionIndex{Eta: 1, Phi: 2},
			want: PositionIndex{Eta: 1, Phi: 2},
			ok:   true,
		},
		{
			name: "phi-wrap-high",
			idx:  PositionIndex{Eta: 0, Phi: 4},
			want: PositionIndex{Eta: 0, Phi: 0},
			ok:   true,
		},
		{
			name: "phi-wrap-low",
			idx:  PositionIndex{Eta: 0, Phi: -1},
			want: PositionIndex{Eta: 0, Phi: 3},
			ok:   true,
		},
		{
			name: "phi-wrap-multiple-periods",
			idx:  PositionIndex{Eta: 0, Phi: -5},
			want: PositionIndex{Eta: 0, Phi: 3},
			ok:   true,
		},
		{
			name: "eta-beyond-acceptance",
			idx:  PositionIndex{Eta: 2, Phi: 1},
			want: PositionIndex{Eta: 2, Phi: 1},
			ok:   false,
		},
		{
			name: "eta-below-acceptance",
			idx:  PositionIndex{Eta: -1, Phi: 1},
			want: PositionIndex{Eta: -1, Phi: 1},
			ok:   false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			idx := tc.idx
			if got, want := ix.Normalize(&idx), tc.ok; got != want {
				t.Fatalf("invalid normalization: got=%v, want=%v", got, want)
			}
			if got, want := idx, tc.want; got != want {
				t.Fatalf("invalid normalized index: got=%v, want=%v", got, want)
			}
		})
	}
}

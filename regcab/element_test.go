// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regcab

import (
	"testing"
)

func TestElementIndexOf(t *testing.T) {
	if got, want := ElementIndexOf(4, TOB, 3), ElementIndex(173); got != want {
		t.Fatalf("invalid element index: got=%d, want=%d", got, want)
	}
	if got, want := RegionOfElement(173), Region(4); got != want {
		t.Fatalf("invalid region: got=%d, want=%d", got, want)
	}
	if got, want := SubDetOf(173), TOB; got != want {
		t.Fatalf("invalid sub-detector: got=%v, want=%v", got, want)
	}
	if got, want := LayerOf(173), Layer(3); got != want {
		t.Fatalf("invalid layer: got=%d, want=%d", got, want)
	}
}

func TestElementIndexRoundTrip(t *testing.T) {
	for r := Region(0); r < 8; r++ {
		for sub := TIB; sub < MaxSubDets; sub++ {
			for layer := Layer(0); layer < MaxLayers; layer++ {
				idx := ElementIndexOf(r, sub, layer)
				if got, want := RegionOfElement(idx), r; got != want {
					t.Fatalf("invalid region: got=%d, want=%d", got, want)
				}
				if got, want := SubDetOf(idx), sub; got != want {
					t.Fatalf("invalid sub-detector: got=%v, want=%v", got, want)
				}
				if got, want := LayerOf(idx), layer; got != want {
					t.Fatalf("invalid layer: got=%d, want=%d", got, want)
				}
			}
		}
	}
}

func TestCheckedElementIndexOf(t *testing.T) {
	for _, tc := range []struct {
		name  string
		reg   Region
		sub   SubDet
		layer Layer
		idx   ElementIndex
		want  string
	}{
		{
			name: "valid",
			reg:  4, sub: TOB, layer: 3,
			idx: 173,
		},
		{
			name: "invalid-subdet",
			reg:  4, sub: Unknown, layer: 3,
			want: "regcab: invalid sub-detector (got=4, max=3)",
		},
		{
			name: "invalid-layer",
			reg:  4, sub: TOB, layer: 10,
			want: "regcab: invalid layer (got=10, max=9)",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			idx, err := CheckedElementIndexOf(tc.reg, tc.sub, tc.layer)
			if tc.want != "" {
				if err == nil {
					t.Fatalf("expected an error (got=nil)")
				}
				if got, want := err.Error(), tc.want; got != want {
					t.Fatalf("invalid error:\ngot= %q\nwant=%q", got, want)
				}
				return
			}
			if err != nil {
				t.Fatalf("could not encode element index: %+v", err)
			}
			if got, want := idx, tc.idx; got != want {
				t.Fatalf("invalid element index: got=%d, want=%d", got, want)
			}
		})
	}
}

func TestElementIndexAt(t *testing.T) {
	ix, err := NewIndex(2, 4, 2.0)
	if err != nil {
		t.Fatalf("could not create index: %+v", err)
	}

	pos := Position{Eta: 0.5, Phi: 0.1} // region 4
	if got, want := ix.ElementIndexAt(pos, TOB, 3), ElementIndex(173); got != want {
		t.Fatalf("invalid element index: got=%d, want=%d", got, want)
	}
}

func TestSubDetString(t *testing.T) {
	for _, tc := range []struct {
		sub  SubDet
		want string
	}{
		{TIB, "TIB"},
		{TOB, "TOB"},
		{TID, "TID"},
		{TEC, "TEC"},
		{Unknown, "unknown"},
		{SubDet(42), "unknown"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			if got, want := tc.sub.String(), tc.want; got != want {
				t.Fatalf("invalid sub-detector name: got=%q, want=%q", got, want)
			}
		})
	}
}

func TestParseSubDet(t *testing.T) {
	for _, tc := range []struct {
		name string
		sub  SubDet
		err  bool
	}{
		{name: "TIB", sub: TIB},
		{name: "tob", sub: TOB},
		{name: "Tid", sub: TID},
		{name: "TEC", sub: TEC},
		{name: "0", sub: TIB},
		{name: "3", sub: TEC},
		{name: "4", sub: Unknown, err: true},
		{name: "pixel", sub: Unknown, err: true},
		{name: "", sub: Unknown, err: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sub, err := ParseSubDet(tc.name)
			if tc.err {
				if err == nil {
					t.Fatalf("expected an error (got=nil)")
				}
				return
			}
			if err != nil {
				t.Fatalf("could not parse sub-detector: %+v", err)
			}
			if got, want := sub, tc.sub; got != want {
				t.Fatalf("invalid sub-detector: got=%v, want=%v", got, want)
			}
		})
	}
}

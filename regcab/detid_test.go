// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regcab

import (
	"fmt"
	"testing"
)

func TestDetID(t *testing.T) {
	for _, tc := range []struct {
		sub    SubDet
		layer  uint32
		module uint32
	}{
		{sub: TIB, layer: 1, module: 0},
		{sub: TIB, layer: 4, module: 42},
		{sub: TID, layer: 3, module: 100},
		{sub: TOB, layer: 6, module: 0x3fff},
		{sub: TEC, layer: 9, module: 7},
	} {
		t.Run(fmt.Sprintf("%v-l%d-m%d", tc.sub, tc.layer, tc.module), func(t *testing.T) {
			detid := DetIDOf(tc.sub, tc.layer, tc.module)
			if got, want := SubDetFromDetID(detid), tc.sub; got != want {
				t.Fatalf("invalid sub-detector: got=%v, want=%v", got, want)
			}
			if got, want := LayerFromDetID(detid), tc.layer; got != want {
				t.Fatalf("invalid layer: got=%d, want=%d", got, want)
			}
		})
	}
}

func TestSubDetFromDetIDUnknown(t *testing.T) {
	for _, detid := range []uint32{
		0,
		1 << 25, // below the strip tracker range
		7 << 25, // above the strip tracker range
	} {
		if got, want := SubDetFromDetID(detid), Unknown; got != want {
			t.Fatalf("invalid sub-detector for det-id 0x%x: got=%v, want=%v", detid, got, want)
		}
	}
}

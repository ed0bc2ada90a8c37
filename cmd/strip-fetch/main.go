// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// strip-fetch retrieves a regional cabling from the conditions
// database and writes it out as a snapshot file.
//
// Usage: strip-fetch [OPTIONS]
//
// Example:
//
//	$> strip-fetch -db stripcond -tag STRIP2020_1 -o cabling.yaml
//	$> strip-fetch -o cabling.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/go-lpc/strip/conddb"
	"github.com/go-lpc/strip/internal/cabfmt"
)

func main() {
	log.SetPrefix("strip-fetch: ")
	log.SetFlags(0)

	var (
		dbname = flag.String("db", "stripcond", "name of the conditions database")
		tag    = flag.String("tag", "", "cabling version tag (default: newest)")
		oname  = flag.String("o", "cabling.yaml", "path to output snapshot file")
	)

	flag.Usage = func() {
		fmt.Printf(`strip-fetch retrieves a regional cabling from the conditions
database and writes it out as a snapshot file.

Usage: strip-fetch [OPTIONS]

Example:

 $> strip-fetch -db stripcond -tag STRIP2020_1 -o cabling.yaml
 $> strip-fetch -o cabling.yaml

`)
		flag.PrintDefaults()
	}

	flag.Parse()

	err := xmain(*dbname, *tag, *oname)
	if err != nil {
		log.Fatalf("could not fetch cabling: %+v", err)
	}
}

func xmain(dbname, tag, oname string) error {
	db, err := conddb.Open(dbname)
	if err != nil {
		return fmt.Errorf("could not open conditions db %q: %w", dbname, err)
	}
	defer db.Close()

	ctx := context.Background()
	if tag == "" {
		tag, err = db.LastCablingVersion(ctx)
		if err != nil {
			return fmt.Errorf("could not get last cabling version: %w", err)
		}
		log.Printf("cabling version: %q", tag)
	}

	cab, err := db.LoadCabling(ctx, tag)
	if err != nil {
		return fmt.Errorf("could not load cabling %q: %w", tag, err)
	}
	log.Printf("regions: %d", cab.Regions())

	err = cabfmt.Write(oname, cab, tag)
	if err != nil {
		return fmt.Errorf("could not write snapshot %q: %w", oname, err)
	}

	return nil
}

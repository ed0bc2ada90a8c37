// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package conddb holds types to retrieve the regional cabling of the
// silicon strip tracker from the conditions database.
package conddb // import "github.com/go-lpc/strip/conddb"

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-lpc/strip/regcab"
	_ "github.com/go-sql-driver/mysql"
)

const (
	host = "localhost"
)

var (
	usr = "username"
	pwd = "s3cr3t"

	drvName = "mysql"
)

// DB exposes convenience methods to easily retrieve cabling data from
// the conditions database.
type DB struct {
	db   *sql.DB
	name string // name of the conditions database
}

// Open opens a connection to the conditions database dbname.
func Open(dbname string) (*DB, error) {
	db, err := sql.Open(drvName, dsn(dbname))
	if err != nil {
		return nil, fmt.Errorf("conddb: could not open %q db: %w", dbname, err)
	}

	err = ping(db, dbname)
	if err != nil {
		return nil, fmt.Errorf("conddb: could not ping %q db: %w", dbname, err)
	}

	return &DB{db: db, name: dbname}, nil
}

func dsn(db string) string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s", usr, pwd, host, db)
}

func ping(db *sql.DB, dbname string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("conddb: could not ping %q db: %w", dbname, err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// LastCablingVersion returns the tag of the newest cabling of the
// conditions database.
func (db *DB) LastCablingVersion(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag := ""
	rows, err := db.db.QueryContext(
		ctx,
		"SELECT tag FROM cablings ORDER BY datetime DESC LIMIT 1",
	)
	if err != nil {
		return tag, fmt.Errorf("conddb: could not query cabling version: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		err = rows.Scan(&tag)
		if err != nil {
			return tag, fmt.Errorf("conddb: could not get cabling version value: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return tag, fmt.Errorf("conddb: could not scan db for cabling version: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return tag, fmt.Errorf("conddb: context error while retrieving cabling version: %w", err)
	}

	return tag, nil
}

// GridParams returns the grid parameters of the cabling with the given
// tag.
func (db *DB) GridParams(ctx context.Context, tag string) (etadivs, phidivs uint32, etamax float64, err error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := db.db.QueryContext(
		ctx,
		"SELECT etadivs, phidivs, etamax FROM cablings WHERE tag=?",
		tag,
	)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("conddb: could not query grid parameters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		err = rows.Scan(&etadivs, &phidivs, &etamax)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("conddb: could not get grid parameters: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return 0, 0, 0, fmt.Errorf("conddb: could not scan db for grid parameters: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return 0, 0, 0, fmt.Errorf("conddb: context error while retrieving grid parameters: %w", err)
	}

	return etadivs, phidivs, etamax, nil
}

// FEDConnections returns the FED channel connections of the cabling
// with the given tag, ordered by (FED id, FED channel).
func (db *DB) FEDConnections(ctx context.Context, tag string) ([]regcab.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var conns []regcab.Connection
	rows, err := db.db.QueryContext(
		ctx,
		`
SELECT fedchannels.fed_id, fedchannels.fed_ch, fedchannels.det_id,
       fedchannels.apv_pair, fedchannels.napv_pairs,
       fedchannels.eta, fedchannels.phi
FROM fedchannels
JOIN cablings ON cablings.identifier=fedchannels.cabling
WHERE cablings.tag=?
ORDER BY fedchannels.fed_id, fedchannels.fed_ch
`,
		tag,
	)
	if err != nil {
		return conns, fmt.Errorf("conddb: could not run FED connections query: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var conn regcab.Connection
		err = rows.Scan(
			&conn.FEDID, &conn.FEDCh, &conn.DetID,
			&conn.APVPair, &conn.NAPVPairs,
			&conn.Eta, &conn.Phi,
		)
		if err != nil {
			return conns, fmt.Errorf("conddb: could not scan row %d for FED connections: %w", i, err)
		}
		i++

		conns = append(conns, conn)
	}

	if err := rows.Err(); err != nil {
		return conns, fmt.Errorf("conddb: could not scan db for FED connections: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return conns, fmt.Errorf("conddb: context error while retrieving FED connections: %w", err)
	}

	return conns, nil
}

// LoadCabling assembles the regional cabling with the given tag from
// the conditions database. An empty tag selects the newest cabling.
func (db *DB) LoadCabling(ctx context.Context, tag string) (*regcab.Cabling, error) {
	if tag == "" {
		v, err := db.LastCablingVersion(ctx)
		if err != nil {
			return nil, fmt.Errorf("conddb: could not get last cabling version: %w", err)
		}
		tag = v
	}

	etadivs, phidivs, etamax, err := db.GridParams(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("conddb: could not get grid parameters for %q: %w", tag, err)
	}

	idx, err := regcab.NewIndex(etadivs, phidivs, etamax)
	if err != nil {
		return nil, fmt.Errorf("conddb: invalid grid parameters for %q: %w", tag, err)
	}

	conns, err := db.FEDConnections(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("conddb: could not get FED connections for %q: %w", tag, err)
	}

	bld := regcab.NewBuilder(idx)
	for i, conn := range conns {
		err = bld.Add(conn)
		if err != nil {
			return nil, fmt.Errorf("conddb: could not add connection %d (det-id 0x%x): %w",
				i, conn.DetID, err,
			)
		}
	}

	return bld.Cabling(), nil
}

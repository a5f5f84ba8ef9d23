// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package locate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cloudeng.io/goldenhour"
)

// PostalDB provides postal code lookups using the tab separated data
// published by www.geonames.org.
type PostalDB struct {
	lookup map[string]goldenhour.Coordinate
}

// NewPostalDB returns an empty PostalDB.
func NewPostalDB() *PostalDB {
	return &PostalDB{lookup: make(map[string]goldenhour.Coordinate)}
}

// Coordinate returns the coordinate for the specified admin code and
// postal code (eg. AK 99553). GB and CA postal codes come in two formats,
// either the short form or long form:
//
//	GB: Eng BN91, or Eng "BN91 9AA".
//	CA: AB T0A, or AB "T0A 0A0".
func (db *PostalDB) Coordinate(admin, postal string) (goldenhour.Coordinate, bool) {
	c, ok := db.lookup[admin+" "+postal]
	return c, ok
}

// Len returns the number of entries in the database.
func (db *PostalDB) Len() int {
	return len(db.lookup)
}

// Load adds the entries in data to the database.
func (db *PostalDB) Load(data []byte) error {
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if len(line) == 0 {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != 12 {
			return fmt.Errorf("line %v: wrong number of fields: (%v != 12) %v", lineno, len(parts), line)
		}
		lat, err := strconv.ParseFloat(parts[9], 64)
		if err != nil {
			return fmt.Errorf("line %v: invalid latitude: %v: %v", lineno, parts[9], err)
		}
		long, err := strconv.ParseFloat(parts[10], 64)
		if err != nil {
			return fmt.Errorf("line %v: invalid longitude: %v: %v", lineno, parts[10], err)
		}
		db.lookup[parts[4]+" "+parts[1]] = goldenhour.Coordinate{Latitude: lat, Longitude: long}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read postal data: %v", err)
	}
	return nil
}

// LoadFile is like Load but reads the data from filename.
func (db *PostalDB) LoadFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if err := db.Load(data); err != nil {
		return fmt.Errorf("%v: %w", filename, err)
	}
	return nil
}

// Postal is a Provider that looks up a fixed postal code.
type Postal struct {
	DB     *PostalDB
	Admin  string
	Postal string
}

// Locate implements Provider.
func (p Postal) Locate(ctx context.Context) (goldenhour.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return goldenhour.Coordinate{}, unavailable("%v", err)
	}
	if p.DB == nil {
		return goldenhour.Coordinate{}, unavailable("no postal code database")
	}
	c, ok := p.DB.Coordinate(p.Admin, p.Postal)
	if !ok {
		return goldenhour.Coordinate{}, unavailable("unknown postal code: %v %v", p.Admin, p.Postal)
	}
	return c, nil
}

/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package connstr parses fossil-style connection strings with the
// combinator engine.
package connstr

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/dburkart/parsnip/pkg/combinator"
	"github.com/dburkart/parsnip/pkg/fp"
)

const (
	SchemeFile   = "file"
	SchemeFossil = "fossil"

	DefaultDatabase = "default"
	DefaultPath     = "./"
	LocalAddress    = "local"
)

type ConnectionString struct {
	Local    bool
	Address  string
	Database string
}

// Parse takes a connection string and splits it into the parts needed to
// make a connection. Anything without a scheme is a local path, and an
// empty path means the current directory.
//
// Formats:
//
//	./path/to/local/db
//	file://./path/to/local/db
//	fossil://<host:port>[/<db_name>]
func Parse(connStr string) (ConnectionString, error) {
	c, err := combinator.ParseAll(grammar, connStr)
	if err != nil {
		return ConnectionString{}, errors.Wrapf(err, "invalid connection string '%s'", connStr)
	}
	return c, nil
}

var grammar = build()

func build() combinator.Parser[ConnectionString] {
	scheme := combinator.KeepLeft(combinator.MustRegex(`[A-Za-z][A-Za-z0-9+.\-]*`), combinator.Str("://"))

	local := combinator.Map(combinator.MustRegex(`.*`), func(path string) ConnectionString {
		if path == "" {
			path = DefaultPath
		}
		return ConnectionString{Local: true, Address: LocalAddress, Database: path}
	})

	host := combinator.MustRegex(`[^/]*`)
	name := combinator.KeepRight(combinator.Str("/"), combinator.MustRegex(`[^/]*`).Desc("database name"))

	remote := combinator.Map2(host, combinator.Optional(name), func(h string, n fp.Option[string]) ConnectionString {
		db := n.GetOrElse("")
		if db == "" {
			db = DefaultDatabase
		}
		return ConnectionString{Address: h, Database: db}
	})

	// Once "<scheme>://" has matched the string is never reread as a path.
	return combinator.FlatMap(combinator.Optional(scheme), func(s fp.Option[string]) combinator.Parser[ConnectionString] {
		if s.IsNone() {
			return local
		}
		switch s.Get() {
		case SchemeFile:
			return local
		case SchemeFossil:
			return remote
		}
		return combinator.Fail[ConnectionString](fmt.Sprintf("unrecognized scheme: %s", s.Get()))
	})
}

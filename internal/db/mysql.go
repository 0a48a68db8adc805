// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the MySQL implementation of the database store.
package db

import (
	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQLStore is the MySQL implementation of the Store interface.
// The DSN format is "user:password@tcp(host:port)/dbname". The DSN must
// include `?parseTime=true&multiStatements=true`: parseTime for DATETIME
// scanning and multiStatements because migration files contain several
// statements each.
type MySQLStore struct {
	bunStore
}

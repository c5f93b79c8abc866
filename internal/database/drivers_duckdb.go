//go:build cgo

package database

import (
	_ "github.com/marcboeker/go-duckdb"
)

// Package repository implements data access for all entities over
// database/sql.  Sentinel errors defined here let handlers map failure
// scenarios to HTTP responses without inspecting driver errors:
// ErrNotFound becomes 404 and ErrConflict 409.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when an id lookup, update or delete resolves no
// row.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update violates a unique
// constraint, such as a duplicate email or a double-booked seat.
var ErrConflict = errors.New("conflict")

// isDuplicate reports whether err is a MySQL duplicate-key failure
// (error 1062).  The driver does not expose a typed error for this.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

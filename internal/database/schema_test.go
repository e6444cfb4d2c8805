package database

import (
	"strings"
	"testing"
)

// Every duplicate check in the repositories leans on one of these
// indexes; a missing index would make the conflict path dead code.
func TestSchemaDeclaresUniqueKeys(t *testing.T) {
	all := strings.Join(schema, "\n")
	for _, key := range []string{
		"uq_users_username",
		"uq_users_email",
		"uq_rooms_name_location",
		"uq_seats_room_number",
		"uq_reservations_active",
	} {
		if !strings.Contains(all, key) {
			t.Errorf("schema missing unique key %s", key)
		}
	}
}

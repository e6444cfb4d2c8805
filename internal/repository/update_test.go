package repository

import (
	"reflect"
	"testing"
)

func TestBuildUpdate(t *testing.T) {
	allowed := []string{"name", "location", "capacity"}

	tests := []struct {
		name      string
		fields    map[string]any
		wantQuery string
		wantArgs  []any
		wantOK    bool
	}{
		{
			name:      "single field",
			fields:    map[string]any{"name": "Room A"},
			wantQuery: "UPDATE rooms SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			wantArgs:  []any{"Room A", uint64(7)},
			wantOK:    true,
		},
		{
			name:      "fields follow allowed order, not map order",
			fields:    map[string]any{"capacity": uint32(12), "name": "Room B"},
			wantQuery: "UPDATE rooms SET name = ?, capacity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			wantArgs:  []any{"Room B", uint32(12), uint64(7)},
			wantOK:    true,
		},
		{
			name:      "unknown keys are dropped",
			fields:    map[string]any{"is_admin": true, "location": "2F"},
			wantQuery: "UPDATE rooms SET location = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			wantArgs:  []any{"2F", uint64(7)},
			wantOK:    true,
		},
		{
			name:   "nothing allowed present",
			fields: map[string]any{"is_admin": true},
			wantOK: false,
		},
		{
			name:   "empty map",
			fields: map[string]any{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, ok := buildUpdate("rooms", tt.fields, allowed, uint64(7))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if query != tt.wantQuery {
				t.Errorf("query = %q, want %q", query, tt.wantQuery)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}

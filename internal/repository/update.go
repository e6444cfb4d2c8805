package repository

import "strings"

// buildUpdate assembles a sparse UPDATE statement from a field map.
// Only the listed allowed columns are applied, in the order given;
// unknown keys are ignored silently.  updated_at is always refreshed.
// The returned args end with the row id.  ok is false when no allowed
// field was present, in which case nothing should be executed.
func buildUpdate(table string, fields map[string]any, allowed []string, id any) (query string, args []any, ok bool) {
	var set []string
	for _, col := range allowed {
		v, present := fields[col]
		if !present {
			continue
		}
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if len(set) == 0 {
		return "", nil, false
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	query = "UPDATE " + table + " SET " + strings.Join(set, ", ") + " WHERE id = ?"
	args = append(args, id)
	return query, args, true
}

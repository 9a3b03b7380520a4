package geoclient

import "fmt"

// Dialect selects the command syntax of a target server. geo42 takes
// bare GeoJSON arguments; Tile38 wraps them with the OBJECT keyword and
// caps INTERSECTS results with an explicit LIMIT.
type Dialect string

const (
	DialectGeo42  Dialect = "geo42"
	DialectTile38 Dialect = "tile38"
)

// DefaultIntersectsLimit is applied to Tile38 INTERSECTS when the
// caller does not set a limit, large enough to never truncate the
// benchmark result set.
const DefaultIntersectsLimit = 100000

// ParseDialect validates a dialect name from configuration.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case DialectGeo42, DialectTile38:
		return Dialect(s), nil
	}
	return "", fmt.Errorf("geoclient: unknown dialect %q (expected geo42 or tile38)", s)
}

// setArgs builds the SET command for one object upsert.
func (d Dialect) setArgs(collection, id string, geometry []byte) []any {
	if d == DialectTile38 {
		return []any{"SET", collection, id, "OBJECT", string(geometry)}
	}
	return []any{"SET", collection, id, string(geometry)}
}

// intersectsArgs builds the INTERSECTS query command.
func (d Dialect) intersectsArgs(collection string, geometry []byte, limit int) []any {
	if d == DialectTile38 {
		if limit <= 0 {
			limit = DefaultIntersectsLimit
		}
		return []any{"INTERSECTS", collection, "LIMIT", limit, "OBJECT", string(geometry)}
	}
	return []any{"INTERSECTS", collection, string(geometry)}
}

// resultCount extracts the result cardinality from either server's
// reply shape without depending on it: geo42 replies with a flat array
// of ids, Tile38 with [cursor, [objects...]].
func resultCount(v any) int {
	arr, ok := v.([]any)
	if !ok {
		return 0
	}
	if len(arr) == 2 {
		if inner, ok := arr[1].([]any); ok {
			return len(inner)
		}
	}
	return len(arr)
}

package repositories

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

var fieldPathPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// splitFieldPath validates a dotted field path and returns its segments.
// Paths end up inside SQL expressions so anything but identifiers is refused.
func splitFieldPath(path string) ([]string, error) {
	if !fieldPathPattern.MatchString(path) {
		return nil, fmt.Errorf("invalid field path %q", path)
	}
	return strings.Split(path, "."), nil
}

// applyPatch merges patch into body. Dotted keys write into nested objects,
// creating them when missing.
func applyPatch(body, patch map[string]interface{}) {
	for key, value := range patch {
		segments := strings.Split(key, ".")
		target := body
		for _, seg := range segments[:len(segments)-1] {
			next, ok := target[seg].(map[string]interface{})
			if !ok {
				next = map[string]interface{}{}
				target[seg] = next
			}
			target = next
		}
		target[segments[len(segments)-1]] = value
	}
}

func cloneFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if nested, ok := v.(map[string]interface{}); ok {
			out[k] = cloneFields(nested)
			continue
		}
		out[k] = v
	}
	delete(out, "id")
	return out
}

// normalizeScalar converts named scalar types (e.g. entities.UniversityType)
// to their base kinds before they reach a driver.
func normalizeScalar(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return v
}

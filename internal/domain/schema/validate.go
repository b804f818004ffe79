package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/multierr"

	domainerrors "scrapemyuni.backend/internal/domain/errors"
)

// Violation is a single schema failure at a field path
type Violation struct {
	Path   string
	Reason string
}

func (v *Violation) Error() string {
	return v.Path + ": " + v.Reason
}

// Validate checks a full document at creation time: every required field
// present and non-empty, every field of the declared kind, enum values in
// their set and no undeclared fields.
func (r *Registry) Validate(name string, fields map[string]interface{}) error {
	s, ok := r.schemas[name]
	if !ok {
		return domainerrors.InternalError(fmt.Errorf("schema %q is not registered", name))
	}

	var errs error
	for _, req := range s.Required {
		if isEmpty(fields[req]) {
			errs = multierr.Append(errs, &Violation{Path: req, Reason: "required field is missing or empty"})
		}
	}
	for _, key := range sortedKeys(fields) {
		f, ok := s.Properties[key]
		if !ok {
			errs = multierr.Append(errs, &Violation{Path: key, Reason: "unknown field"})
			continue
		}
		errs = multierr.Append(errs, checkValue(key, f, fields[key]))
	}
	return asValidationError(name, errs)
}

// ValidatePatch checks only the supplied fields of a partial update. Keys
// may be dotted paths into nested objects. Required top-level fields may be
// replaced but not cleared.
func (r *Registry) ValidatePatch(name string, fields map[string]interface{}) error {
	s, ok := r.schemas[name]
	if !ok {
		return domainerrors.InternalError(fmt.Errorf("schema %q is not registered", name))
	}

	required := make(map[string]bool, len(s.Required))
	for _, req := range s.Required {
		required[req] = true
	}

	var errs error
	for _, key := range sortedKeys(fields) {
		path := strings.Split(key, ".")
		f, ok := s.Lookup(path)
		if !ok {
			errs = multierr.Append(errs, &Violation{Path: key, Reason: "unknown field"})
			continue
		}
		if len(path) == 1 && required[key] && isEmpty(fields[key]) {
			errs = multierr.Append(errs, &Violation{Path: key, Reason: "required field cannot be cleared"})
			continue
		}
		errs = multierr.Append(errs, checkValue(key, f, fields[key]))
	}
	return asValidationError(name, errs)
}

func asValidationError(name string, errs error) error {
	if errs == nil {
		return nil
	}
	details := map[string]string{}
	for _, err := range multierr.Errors(errs) {
		if v, ok := err.(*Violation); ok {
			details[v.Path] = v.Reason
		}
	}
	return domainerrors.ValidationFailed(fmt.Sprintf("%s payload failed validation", name), errs, details)
}

func checkValue(path string, f Field, v interface{}) error {
	// nil is an absent optional value; an empty Kind is a free form subtree
	if v == nil || f.Kind == "" {
		return nil
	}
	rv := reflect.ValueOf(v)

	switch f.Kind {
	case KindString:
		if rv.Kind() != reflect.String {
			return &Violation{Path: path, Reason: "expected string"}
		}
		if len(f.Enum) > 0 && !contains(f.Enum, rv.String()) {
			return &Violation{Path: path, Reason: "must be one of " + strings.Join(f.Enum, ", ")}
		}
	case KindNumber:
		if !isNumber(v, rv) {
			return &Violation{Path: path, Reason: "expected number"}
		}
	case KindBoolean:
		if rv.Kind() != reflect.Bool {
			return &Violation{Path: path, Reason: "expected boolean"}
		}
	case KindDate:
		if !isDate(v) {
			return &Violation{Path: path, Reason: "expected RFC 3339 timestamp"}
		}
	case KindObject:
		m, ok := v.(map[string]interface{})
		if !ok {
			return &Violation{Path: path, Reason: "expected object"}
		}
		if f.Properties == nil {
			return nil
		}
		var errs error
		for _, key := range sortedKeys(m) {
			sub, ok := f.Properties[key]
			if !ok {
				errs = multierr.Append(errs, &Violation{Path: path + "." + key, Reason: "unknown field"})
				continue
			}
			errs = multierr.Append(errs, checkValue(path+"."+key, sub, m[key]))
		}
		return errs
	case KindList:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return &Violation{Path: path, Reason: "expected list"}
		}
		if f.Items == nil {
			return nil
		}
		var errs error
		for i := 0; i < rv.Len(); i++ {
			errs = multierr.Append(errs, checkValue(fmt.Sprintf("%s[%d]", path, i), *f.Items, rv.Index(i).Interface()))
		}
		return errs
	}
	return nil
}

func isNumber(v interface{}, rv reflect.Value) bool {
	if _, ok := v.(json.Number); ok {
		return true
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isDate(v interface{}) bool {
	switch t := v.(type) {
	case time.Time:
		return true
	case *time.Time:
		return true
	case null.Time:
		return true
	case string:
		_, err := time.Parse(time.RFC3339, t)
		return err == nil
	}
	return false
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	if nt, ok := v.(null.Time); ok {
		return !nt.Valid
	}
	return false
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

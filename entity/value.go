package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Value wraps a field value and provides type conversion helpers.
type Value struct {
	Raw any
}

// String returns the value as a string.
func (v Value) String() string {
	if v.Raw == nil {
		return ""
	}
	return fmt.Sprintf("%v", v.Raw)
}

// Time returns the value as a time.Time.
func (v Value) Time() (time.Time, error) {
	t, ok := v.Raw.(time.Time)
	if !ok {
		return time.Time{}, errors.Errorf("value is not a time.Time: %T", v.Raw)
	}
	return t, nil
}

// Format applies a time layout to timestamp values, falling back to String.
func (v Value) Format(layout string) string {
	if layout != "" {
		if t, err := v.Time(); err == nil {
			return t.Format(layout)
		}
	}
	return v.String()
}

// Row is one record of the dataset, never mutated by the grid.
type Row map[string]any

// Lookup walks nested maps along a dotted path.
func (row Row) Lookup(path string) (val Value, ok bool) {

	var cur any = map[string]any(row)
	for _, key := range strings.Split(path, ".") {

		var obj map[string]any
		switch typed := cur.(type) {
		case map[string]any:
			obj = typed
		case Row:
			obj = typed
		default:
			return
		}

		cur, ok = obj[key]
		if !ok {
			return
		}
	}

	val = Value{Raw: cur}
	return
}

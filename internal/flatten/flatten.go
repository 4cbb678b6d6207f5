// Package flatten collapses arbitrarily nested values into a single flat
// sequence. The data layer uses it to turn lists of (column, value)
// condition pairs into alternating column/value slots for positional
// SQL parameter binding.
package flatten

import (
	"fmt"
	"reflect"
	"sort"
)

// Flatten walks v depth-first, left to right, and returns every leaf value
// at a single depth. Slices and arrays are descended into; maps are expanded
// to alternating key/value pairs, keys visited in sorted order. A bare
// non-sequence value is wrapped into a one-element result, so a
// single-element slice wrapping another slice unwraps rather than nesting.
func Flatten(v any) []any {
	out := []any{}
	walk(reflect.ValueOf(v), &out)
	return out
}

// IndexMap returns the flattened leaves keyed by their position.
func IndexMap(v any) map[int]any {
	flat := Flatten(v)
	out := make(map[int]any, len(flat))
	for i, e := range flat {
		out[i] = e
	}
	return out
}

// Even returns the elements at even indexes of s. After flattening a list of
// condition pairs these are the column names.
func Even(s []any) []any {
	out := make([]any, 0, (len(s)+1)/2)
	for i, e := range s {
		if i%2 == 0 {
			out = append(out, e)
		}
	}
	return out
}

// Odd returns the elements at odd indexes of s. After flattening a list of
// condition pairs these are the bound values.
func Odd(s []any) []any {
	out := make([]any, 0, len(s)/2)
	for i, e := range s {
		if i%2 != 0 {
			out = append(out, e)
		}
	}
	return out
}

func walk(v reflect.Value, out *[]any) {
	if !v.IsValid() {
		*out = append(*out, nil)
		return
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			*out = append(*out, nil)
			return
		}
		walk(v.Elem(), out)
	case reflect.Slice, reflect.Array:
		// Byte slices are scalars, not sequences of numbers.
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			*out = append(*out, v.Interface())
			return
		}
		for i := 0; i < v.Len(); i++ {
			walk(v.Index(i), out)
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			*out = append(*out, k.Interface())
			walk(v.MapIndex(k), out)
		}
	default:
		*out = append(*out, v.Interface())
	}
}

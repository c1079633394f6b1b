package delta

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

var deepOpts = cmp.Options{cmp.Exporter(func(reflect.Type) bool { return true })}

// Equal reports whether two collection elements are the same element.
// Types with an Equal(T) bool method decide for themselves, comparable
// values (pointers included) use ==, everything else is compared deeply.
func Equal[T any](a, b T) bool {
	if e, ok := any(a).(interface{ Equal(T) bool }); ok {
		return e.Equal(b)
	}
	va, vb := any(a), any(b)
	if va == nil || vb == nil {
		return va == vb
	}
	if ta := reflect.TypeOf(va); ta == reflect.TypeOf(vb) && ta.Comparable() {
		return va == vb
	}
	return cmp.Equal(a, b, deepOpts)
}

func sameElements[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

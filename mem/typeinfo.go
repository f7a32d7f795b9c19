package mem

import (
	"reflect"
	"unsafe"
)

// SizeOf returns the size of T in bytes.
func SizeOf[T any]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// AlignOf returns the required alignment of T in bytes.
func AlignOf[T any]() int {
	var z T
	return int(unsafe.Alignof(z))
}

// Trivial reports whether values of T contain no Go pointers and may
// therefore be stored in raw allocator memory that the garbage
// collector does not scan. Containers call this once at construction to
// pick between block-backed and collector-visible element storage.
func Trivial[T any]() bool {
	return !containsPointers(reflect.TypeFor[T]())
}

func containsPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && containsPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if containsPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

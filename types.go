package config

import "strings"

// Version is the library version, reported by embedding programs.
const Version = "1.0.0"

// ValueType identifies the shape of a keyword's value.
type ValueType int

const (
	typeUnset ValueType = iota // no type declared anywhere

	// TypeScalar is a single string value, the default.
	TypeScalar
	// TypeArray is an ordered list of string values.
	TypeArray
	// TypeHash is an ordered mapping of string keys to string values.
	TypeHash
)

// String returns the lowercase type name used in config and
// definitions files.
func (t ValueType) String() string {
	switch t {
	case TypeScalar:
		return "scalar"
	case TypeArray:
		return "array"
	case TypeHash:
		return "hash"
	}
	return "unknown"
}

// parseValueType maps a type name from a config or definitions file
// to its ValueType.
func parseValueType(name string) (ValueType, bool) {
	switch strings.ToLower(name) {
	case "scalar":
		return TypeScalar, true
	case "array":
		return TypeArray, true
	case "hash":
		return TypeHash, true
	}
	return typeUnset, false
}

// DefaultSeparator is the value separator used when neither a
// definitions file nor an inline declaration provides one.
const DefaultSeparator = ','

// RawLine is a fully assembled logical line: comments stripped,
// continuations joined, includes expanded. File and Line point at the
// first physical line it came from, for error reporting.
type RawLine struct {
	File string
	Line int
	Text string
}

// Definition carries the expected shape of a keyword, as declared in a
// definitions file. A Definition with an empty Section applies to the
// keyword in any section that has no section-specific entry.
type Definition struct {
	Section   string
	Keyword   string
	Type      ValueType // typeUnset when not declared
	Separator rune      // 0 when not declared
	Allowed   []string  // nil when any value is allowed
}

// Value is a tagged variant holding a scalar, array or hash value.
type Value struct {
	kind   ValueType
	scalar string
	array  []string
	hash   *Hash
}

func scalarValue(s string) Value { return Value{kind: TypeScalar, scalar: s} }

func arrayValue(a []string) Value { return Value{kind: TypeArray, array: a} }

func hashValue(h *Hash) Value { return Value{kind: TypeHash, hash: h} }

// Kind returns the shape of the value.
func (v Value) Kind() ValueType { return v.kind }

// Scalar returns the scalar value. It is only meaningful when Kind is
// TypeScalar.
func (v Value) Scalar() string { return v.scalar }

// Array returns a copy of the array elements in order. It is only
// meaningful when Kind is TypeArray.
func (v Value) Array() []string {
	if v.array == nil {
		return nil
	}
	out := make([]string, len(v.array))
	copy(out, v.array)
	return out
}

// Hash returns the hash value. It is only meaningful when Kind is
// TypeHash.
func (v Value) Hash() *Hash { return v.hash }

// Equal reports whether two values have the same shape and contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case TypeScalar:
		return v.scalar == o.scalar
	case TypeArray:
		if len(v.array) != len(o.array) {
			return false
		}
		for i, s := range v.array {
			if o.array[i] != s {
				return false
			}
		}
		return true
	case TypeHash:
		return v.hash.Equal(o.hash)
	}
	return true
}

// Hash is a string-to-string mapping that preserves key insertion
// order. Setting an existing key updates its value in place; new keys
// append.
type Hash struct {
	keys []string
	vals map[string]string
}

func newHash() *Hash {
	return &Hash{vals: make(map[string]string)}
}

func (h *Hash) set(key, value string) {
	if _, ok := h.vals[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.vals[key] = value
}

// Get returns the value for key and whether the key is present.
func (h *Hash) Get(key string) (string, bool) {
	v, ok := h.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (h *Hash) Keys() []string {
	out := make([]string, len(h.keys))
	copy(out, h.keys)
	return out
}

// Len returns the number of keys.
func (h *Hash) Len() int { return len(h.keys) }

// Equal reports whether two hashes have the same keys in the same
// order with the same values.
func (h *Hash) Equal(o *Hash) bool {
	if h == nil || o == nil {
		return h == o
	}
	if len(h.keys) != len(o.keys) {
		return false
	}
	for i, k := range h.keys {
		if o.keys[i] != k || o.vals[k] != h.vals[k] {
			return false
		}
	}
	return true
}

package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ValueKind discriminates the two shapes a node value can take.
type ValueKind int

const (
	// KindScalar is a single string, number or bool.
	KindScalar ValueKind = iota
	// KindSet is an unordered set of scalars, produced only by Add.
	KindSet
)

// Value is a tagged variant holding either one scalar or a set of
// scalars. The zero Value is a scalar nil; callers should use Scalar
// to construct values.
type Value struct {
	kind   ValueKind
	scalar any
	set    map[any]struct{}
}

// Scalar wraps a single scalar (string, number or bool) as a Value.
func Scalar(v any) Value {
	return Value{kind: KindScalar, scalar: v}
}

// Kind reports whether the value is a scalar or a set.
func (v Value) Kind() ValueKind {
	return v.kind
}

// ScalarValue returns the scalar payload. It is only meaningful when
// Kind is KindScalar.
func (v Value) ScalarValue() any {
	return v.scalar
}

// Add merges another scalar into the value. A scalar is promoted to a
// two-element set holding the old and new scalars; a set absorbs the
// new scalar. Adding a scalar already present leaves the set unchanged.
func (v Value) Add(s any) Value {
	if v.kind == KindSet {
		set := make(map[any]struct{}, len(v.set)+1)
		for member := range v.set {
			set[member] = struct{}{}
		}
		set[s] = struct{}{}
		return Value{kind: KindSet, set: set}
	}
	if v.scalar == s {
		return v
	}
	return Value{kind: KindSet, set: map[any]struct{}{v.scalar: {}, s: {}}}
}

// Members returns the scalars held by a set value. For a scalar value
// it returns a one-element slice, so callers can iterate uniformly.
func (v Value) Members() []any {
	if v.kind == KindScalar {
		return []any{v.scalar}
	}
	members := make([]any, 0, len(v.set))
	for member := range v.set {
		members = append(members, member)
	}
	return members
}

// Len returns 1 for a scalar and the set size for a set.
func (v Value) Len() int {
	if v.kind == KindScalar {
		return 1
	}
	return len(v.set)
}

// Contains reports whether the scalar is the value itself or a member
// of the set.
func (v Value) Contains(s any) bool {
	if v.kind == KindScalar {
		return v.scalar == s
	}
	_, ok := v.set[s]
	return ok
}

// MarshalJSON encodes a scalar as itself and a set as an array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindScalar {
		return json.Marshal(v.scalar)
	}
	return json.Marshal(v.Members())
}

// ErrNotScalar rejects JSON payloads that are neither a scalar nor a
// flat array of scalars. Node state has no nesting beyond one level.
var ErrNotScalar = errors.New("value must be a scalar or a set of scalars")

// UnmarshalJSON decodes an array as a set and anything else as a
// scalar. Numbers arrive as json.Number to keep ints and floats apart.
// Objects and nested arrays fail with ErrNotScalar: letting one into
// the store would poison later merges, since only scalars are hashable
// set members.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if members, ok := raw.([]any); ok {
		set := make(map[any]struct{}, len(members))
		for _, member := range members {
			if !isScalar(member) {
				return fmt.Errorf("%w, got set member of type %T", ErrNotScalar, member)
			}
			set[member] = struct{}{}
		}
		*v = Value{kind: KindSet, set: set}
		return nil
	}
	if !isScalar(raw) {
		return fmt.Errorf("%w, got %T", ErrNotScalar, raw)
	}
	*v = Scalar(raw)
	return nil
}

// isScalar reports whether a decoded JSON payload is a plain scalar.
func isScalar(raw any) bool {
	switch raw.(type) {
	case nil, string, bool, json.Number:
		return true
	default:
		return false
	}
}

func (v Value) String() string {
	if v.kind == KindScalar {
		return fmt.Sprintf("%v", v.scalar)
	}
	return fmt.Sprintf("%v", v.Members())
}

package tween

import (
	"sort"
	"strconv"
	"strings"
)

// Op tells how a Value combines with the live property value.
type Op uint8

const (
	// OpSet is an absolute value.
	OpSet Op = iota
	// OpAdd adds to the live value ("+N" / "-N").
	OpAdd
	// OpMul multiplies the live value ("*N").
	OpMul
)

// Value is a parsed value descriptor.
//
// A Value is either a number (Op + Num) or, when Fields is non-nil, a record
// of numbers for compound properties such as scale {x, y}. Records nest one
// level only; a record inside a record is ignored when resolving.
type Value struct {
	Op     Op
	Num    float64
	Fields map[string]Value
}

// Number returns an absolute value.
func Number(n float64) Value { return Value{Op: OpSet, Num: n} }

// Add returns a relative value "+n".
func Add(n float64) Value { return Value{Op: OpAdd, Num: n} }

// Mul returns a relative value "*n".
func Mul(n float64) Value { return Value{Op: OpMul, Num: n} }

// Record returns a compound value.
func Record(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{Fields: fields}
}

// IsRecord reports whether v is a compound value.
func (v Value) IsRecord() bool { return v.Fields != nil }

// Resolve applies v to the live value current.
func (v Value) Resolve(current float64) float64 {
	switch v.Op {
	case OpAdd:
		return current + v.Num
	case OpMul:
		return current * v.Num
	default:
		return v.Num
	}
}

// PropertySpec maps property names to value descriptors.
type PropertySpec map[string]Value

// Keys returns the property names in a stable order.
func (s PropertySpec) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseValue converts a loosely typed descriptor into a Value.
//
// Supported inputs:
//   - numbers of any Go numeric kind: absolute value
//   - "+N" / "-N": live value plus N
//   - "*N": live value times N
//   - "N": absolute value
//   - map[string]any / map[string]float64 / map[string]Value: one-level record
//
// ok is false for anything else, including unparsable strings.
func ParseValue(raw any) (Value, bool) {
	switch v := raw.(type) {
	case Value:
		return v, true
	case string:
		return parseString(v)
	case map[string]Value:
		return Record(v), true
	case map[string]float64:
		fields := make(map[string]Value, len(v))
		for k, n := range v {
			fields[k] = Number(n)
		}
		return Record(fields), true
	case map[string]any:
		fields := make(map[string]Value, len(v))
		for k, sub := range v {
			// 只支持一层嵌套
			if _, nested := sub.(map[string]any); nested {
				continue
			}
			if parsed, ok := ParseValue(sub); ok {
				fields[k] = parsed
			}
		}
		return Record(fields), true
	}
	if n, ok := toFloat(raw); ok {
		return Number(n), true
	}
	return Value{}, false
}

func parseString(s string) (Value, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, false
	}
	switch s[0] {
	case '+', '-':
		n, err := strconv.ParseFloat(strings.TrimSpace(s[1:]), 64)
		if err != nil {
			return Value{}, false
		}
		if s[0] == '-' {
			n = -n
		}
		return Add(n), true
	case '*':
		n, err := strconv.ParseFloat(strings.TrimSpace(s[1:]), 64)
		if err != nil {
			return Value{}, false
		}
		return Mul(n), true
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, false
	}
	return Number(n), true
}

// ParseSpec converts a loosely typed property map. Entries that cannot be
// parsed are dropped.
func ParseSpec(raw map[string]any) PropertySpec {
	if raw == nil {
		return nil
	}
	spec := make(PropertySpec, len(raw))
	for k, v := range raw {
		if parsed, ok := ParseValue(v); ok {
			spec[k] = parsed
		}
	}
	return spec
}

// toSpec accepts the forms SetProperty receives for "to"/"from".
func toSpec(raw any) (PropertySpec, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case PropertySpec:
		return v, true
	case map[string]Value:
		return PropertySpec(v), true
	case map[string]any:
		return ParseSpec(v), true
	case map[string]float64:
		spec := make(PropertySpec, len(v))
		for k, n := range v {
			spec[k] = Number(n)
		}
		return spec, true
	}
	return nil, false
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// Apply writes spec onto target immediately, resolving relative values
// against the live properties. Properties missing on the target are skipped.
func Apply(target Target, spec PropertySpec) {
	if target == nil {
		return
	}
	for _, key := range spec.Keys() {
		v := spec[key]
		if v.IsRecord() {
			for _, sub := range PropertySpec(v.Fields).Keys() {
				sv := v.Fields[sub]
				if sv.IsRecord() {
					continue
				}
				if cur, ok := target.Field(key, sub); ok {
					target.SetField(key, sub, sv.Resolve(cur))
				}
			}
			continue
		}
		if cur, ok := target.Property(key); ok {
			target.SetProperty(key, v.Resolve(cur))
		}
	}
}

package docstore

import (
	"encoding/json"
	"reflect"
	"strconv"
	"time"
)

// Fields is the schema-less field bag of a document.
type Fields map[string]any

// Document is one stored document of a collection.
type Document struct {
	Collection string
	ID         string
	Fields     Fields
	UpdatedAt  time.Time
}

type undefinedValue struct{}

func (undefinedValue) MarshalJSON() ([]byte, error) {
	return nil, ErrUndefinedField
}

// Undefined marks a field that has no value. Stores reject documents that
// still carry it, so writers strip it with Sanitize first.
var Undefined any = undefinedValue{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedValue)
	return ok
}

// Optional returns *p, or Undefined when p is nil.
func Optional[T any](p *T) any {
	if p == nil {
		return Undefined
	}
	return *p
}

// Sanitize returns a copy of f without undefined entries. Nil values, typed
// nil pointers, slices and maps count as undefined. Nested field bags are
// sanitized too.
func Sanitize(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if isAbsent(v) {
			continue
		}
		switch nested := v.(type) {
		case Fields:
			out[k] = Sanitize(nested)
		case map[string]any:
			out[k] = map[string]any(Sanitize(nested))
		default:
			out[k] = v
		}
	}
	return out
}

func isAbsent(v any) bool {
	if v == nil || IsUndefined(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// findUndefined returns the dotted path of the first Undefined value in f.
func findUndefined(f map[string]any, prefix string) (string, bool) {
	for k, v := range f {
		path := prefix + k
		if IsUndefined(v) {
			return path, true
		}
		switch nested := v.(type) {
		case Fields:
			if p, ok := findUndefined(nested, path+"."); ok {
				return p, true
			}
		case map[string]any:
			if p, ok := findUndefined(nested, path+"."); ok {
				return p, true
			}
		}
	}
	return "", false
}

// normalize converts f to its JSON representation, the shape every store
// hands back on reads (numbers become float64, times RFC3339 strings).
func normalize(f Fields) (Fields, error) {
	if f == nil {
		return Fields{}, nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	out := Fields{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Clone returns a deep copy of f.
func (f Fields) Clone() Fields {
	out, err := normalize(f)
	if err != nil {
		// unreachable for documents that came out of a store
		return Fields{}
	}
	return out
}

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

func (f Fields) String(key string) string {
	s, _ := f[key].(string)
	return s
}

// StringPtr returns nil when key is absent or not a string.
func (f Fields) StringPtr(key string) *string {
	s, ok := f[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func (f Fields) Bool(key string) bool {
	b, _ := f[key].(bool)
	return b
}

func (f Fields) Int64(key string) int64 {
	n, _ := toInt64(f[key])
	return n
}

// Int64Ptr returns nil when key is absent or not numeric.
func (f Fields) Int64Ptr(key string) *int64 {
	n, ok := toInt64(f[key])
	if !ok {
		return nil
	}
	return &n
}

func (f Fields) Strings(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Time parses RFC3339 strings and accepts time.Time values.
func (f Fields) Time(key string) (time.Time, bool) {
	switch v := f[key].(type) {
	case time.Time:
		return v.UTC(), true
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}
	return time.Time{}, false
}

// Map returns a nested field bag or nil.
func (f Fields) Map(key string) Fields {
	switch v := f[key].(type) {
	case Fields:
		return v
	case map[string]any:
		return Fields(v)
	}
	return nil
}

// Maps returns a list of nested field bags, skipping non-object entries.
func (f Fields) Maps(key string) []Fields {
	var out []Fields
	switch v := f[key].(type) {
	case []Fields:
		return append(out, v...)
	case []map[string]any:
		for _, m := range v {
			out = append(out, Fields(m))
		}
	case []any:
		for _, it := range v {
			switch m := it.(type) {
			case map[string]any:
				out = append(out, Fields(m))
			case Fields:
				out = append(out, m)
			}
		}
	}
	return out
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		fl, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int64(fl), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

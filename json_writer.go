package household

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// objectWriter builds a JSON object whose keys keep the order they were set
// in, so that database lines are stable from one save to the next.
// Its zero value is an empty object.
type objectWriter struct {
	keys   []string
	values []json.RawMessage
	err    error
}

// recordObject starts the object of a record with its kind and id.
func recordObject(r Record) *objectWriter {
	w := new(objectWriter)
	return w.set("kind", r.Kind()).set("id", r.Key())
}

// set marshals value under key. Setting a key twice replaces the value in place.
func (w *objectWriter) set(key string, value any) *objectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot encode %q: %w", key, err)
		return w
	}
	for i, k := range w.keys {
		if k == key {
			w.values[i] = raw
			return w
		}
	}
	w.keys = append(w.keys, key)
	w.values = append(w.values, raw)
	return w
}

// setNonZero is set, except that zero values are left out.
func (w *objectWriter) setNonZero(key string, value any) *objectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.set(key, value)
}

func (w *objectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range w.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		key, _ := json.Marshal(k)
		b.Write(key)
		b.WriteByte(':')
		b.Write(w.values[i])
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

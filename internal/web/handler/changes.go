package handler

import (
	"reflect"
	"strings"
)

// Changes turns an update request into a column map. Every non nil pointer field
// is included under its json name, nil fields are left untouched.
// Request structs name their json fields after the table columns.
// Embedded structs without a json name are flattened like encoding/json does.
func Changes(req any) map[string]any {
	out := map[string]any{}
	collect(reflect.Indirect(reflect.ValueOf(req)), out)

	return out
}

func collect(v reflect.Value, out map[string]any) {
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()

	for i := range t.NumField() {
		f := t.Field(i)

		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if f.Anonymous && name == "" {
			collect(reflect.Indirect(v.Field(i)), out)
			continue
		}

		if name == "" || name == "-" || !f.IsExported() {
			continue
		}

		fv := v.Field(i)
		if fv.Kind() != reflect.Pointer || fv.IsNil() {
			continue
		}

		out[name] = fv.Elem().Interface()
	}
}

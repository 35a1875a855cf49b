/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"text/tabwriter"
)

const emptyValue = "<empty>"

// writeTable flattens data into FIELD/VALUE rows, e.g. "Errors[0].Message".
func writeTable(w io.Writer, data any) error {
	rows := map[string]string{}
	flatten("", reflect.ValueOf(data), rows)

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, rows[k])
	}
	return tw.Flush()
}

func flatten(prefix string, v reflect.Value, rows map[string]string) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			rows[field(prefix)] = emptyValue
			return
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		rows[field(prefix)] = emptyValue
		return
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		n := 0
		for i := range t.NumField() {
			if !t.Field(i).IsExported() {
				continue
			}
			n++
			flatten(join(prefix, t.Field(i).Name), v.Field(i), rows)
		}
		if n == 0 {
			rows[field(prefix)] = emptyValue
		}
	case reflect.Map:
		if v.Len() == 0 {
			rows[field(prefix)] = emptyValue
			return
		}
		iter := v.MapRange()
		for iter.Next() {
			flatten(join(prefix, fmt.Sprint(iter.Key().Interface())), iter.Value(), rows)
		}
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			rows[field(prefix)] = emptyValue
			return
		}
		for i := range v.Len() {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), v.Index(i), rows)
		}
	default:
		rows[field(prefix)] = fmt.Sprint(v.Interface())
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func field(prefix string) string {
	if prefix == "" {
		return "value"
	}
	return prefix
}

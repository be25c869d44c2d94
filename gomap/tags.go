package gomap

import (
	"reflect"
	"strings"
	"unicode"
)

type field struct {
	index    []int
	name     string
	optional bool
}

// fields lists the params read into struct type ty, including those of
// embedded structs.
func fields(ty reflect.Type) []field {
	var res []field
	for i := range ty.NumField() {
		f := ty.Field(i)
		tag, hasTag := f.Tag.Lookup("prc")
		if tag == "-" {
			continue
		}
		if f.Anonymous && !hasTag && f.Type.Kind() == reflect.Struct {
			for _, sub := range fields(f.Type) {
				sub.index = append([]int{i}, sub.index...)
				res = append(res, sub)
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = snake(f.Name)
		}
		res = append(res, field{
			index:    []int{i},
			name:     name,
			optional: opts == "optional",
		})
	}
	return res
}

// snake turns WalkSpeedMax into walk_speed_max and HPRatio into hp_ratio.
func snake(name string) string {
	rs := []rune(name)
	var b strings.Builder
	for i, r := range rs {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(rs[i-1]) || unicode.IsDigit(rs[i-1]) ||
				(i+1 < len(rs) && unicode.IsLower(rs[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

package apiclient

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ArrayFormat selects how slice-valued params are serialized.
type ArrayFormat int

const (
	// ArrayRepeat writes k=a&k=b.
	ArrayRepeat ArrayFormat = iota
	// ArrayComma writes k=a,b. Empty slices are omitted.
	ArrayComma
)

// Param is one query parameter. Nil values are omitted.
type Param struct {
	Key   string
	Value any
}

// Params keeps query parameters in caller order.
type Params []Param

// Add appends a parameter and returns the extended list.
func (p Params) Add(key string, value any) Params {
	return append(p, Param{Key: key, Value: value})
}

// Encode serializes the params as a query string without the leading '?'.
func (p Params) Encode(format ArrayFormat) string {
	var b strings.Builder
	write := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}
	for _, param := range p {
		values, isList, ok := paramValues(param.Value)
		if !ok {
			continue
		}
		if isList && format == ArrayComma {
			if len(values) > 0 {
				write(param.Key, strings.Join(values, ","))
			}
			continue
		}
		for _, v := range values {
			write(param.Key, v)
		}
	}
	return b.String()
}

func appendQuery(existing string, params Params, format ArrayFormat) string {
	encoded := params.Encode(format)
	switch {
	case existing == "":
		return encoded
	case encoded == "":
		return existing
	}
	return existing + "&" + encoded
}

// paramValues flattens v into its string forms. ok is false when v must be omitted.
func paramValues(v any) (values []string, isList bool, ok bool) {
	if v == nil {
		return nil, false, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false, false
		}
		rv = rv.Elem()
	}
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]string, 0, rv.Len())
		for i := range rv.Len() {
			if s, ok := scalarString(rv.Index(i)); ok {
				out = append(out, s)
			}
		}
		return out, true, true
	}
	s, ok := scalarString(rv)
	if !ok {
		return nil, false, false
	}
	return []string{s}, false, true
}

var timeType = reflect.TypeOf(time.Time{})

func scalarString(rv reflect.Value) (string, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	if rv.Type() == timeType {
		return rv.Interface().(time.Time).Format(time.RFC3339Nano), true
	}
	if rv.CanInterface() {
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			return s.String(), true
		}
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes()), true
		}
	}
	return "", false
}

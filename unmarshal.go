package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Decode copies a parsed Config into the struct pointed to by v.
// Each field of the target maps to a section; each field of a section
// struct maps to a keyword. Struct tags override the default mapping
// of the lowercased field name:
//
//	type AppConfig struct {
//	    Server struct {
//	        Host    string            `config:"host"`
//	        Port    int               `config:"port"`
//	        Aliases []string          `config:"aliases"`  // array keyword
//	        Limits  map[string]string `config:"limits"`   // hash keyword
//	    } `config:"server"`
//	    Ignored string `config:"-"`
//	}
//
// Scalar keywords decode into string, bool, integer and float fields.
// Sections or keywords absent from the file leave their fields at the
// zero value, unless the tag carries the "required" option.
func (c *Config) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer")
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("decode target must be a pointer to struct")
	}

	t := elem.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := elem.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		name, opts := parseTag(field.Tag.Get("config"))
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}

		kws, err := c.Keywords(name)
		if err != nil {
			if hasOption(opts, "required") {
				return fmt.Errorf("required section %s not found", name)
			}
			continue
		}
		if fieldValue.Kind() != reflect.Struct {
			return fmt.Errorf("section field %s must be a struct", field.Name)
		}
		if err := c.decodeSection(name, kws, fieldValue); err != nil {
			return err
		}
	}
	return nil
}

// decodeSection fills one section struct from the section's keywords.
func (c *Config) decodeSection(section string, kws []string, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		name, opts := parseTag(field.Tag.Get("config"))
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}

		val, err := c.Values(section, name)
		if err != nil {
			if hasOption(opts, "required") {
				return fmt.Errorf("required keyword %s not found in section %s", name, section)
			}
			continue
		}
		if err := setField(fieldValue, val); err != nil {
			return fmt.Errorf("section %s, keyword %s: %v", section, name, err)
		}
	}
	return nil
}

// setField sets one struct field from a parsed Value.
func setField(field reflect.Value, val Value) error {
	switch val.Kind() {
	case TypeArray:
		if field.Kind() != reflect.Slice {
			return fmt.Errorf("array value needs a slice field, not %s", field.Kind())
		}
		items := val.Array()
		slice := reflect.MakeSlice(field.Type(), len(items), len(items))
		for i, item := range items {
			if err := setScalar(slice.Index(i), item); err != nil {
				return fmt.Errorf("index %d: %v", i, err)
			}
		}
		field.Set(slice)
		return nil

	case TypeHash:
		if field.Kind() != reflect.Map {
			return fmt.Errorf("hash value needs a map field, not %s", field.Kind())
		}
		m := reflect.MakeMap(field.Type())
		h := val.Hash()
		for _, k := range h.Keys() {
			s, _ := h.Get(k)
			elemValue := reflect.New(field.Type().Elem()).Elem()
			if err := setScalar(elemValue, s); err != nil {
				return fmt.Errorf("key %s: %v", k, err)
			}
			m.SetMapIndex(reflect.ValueOf(k), elemValue)
		}
		field.Set(m)
		return nil

	default:
		return setScalar(field, val.Scalar())
	}
}

// setScalar converts a string value into a field of a basic kind.
func setScalar(field reflect.Value, s string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as int", s)
		}
		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as uint", s)
		}
		field.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as float", s)
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}

func parseTag(tag string) (string, []string) {
	parts := strings.Split(tag, ",")
	return parts[0], parts[1:]
}

func hasOption(opts []string, option string) bool {
	for _, opt := range opts {
		if opt == option {
			return true
		}
	}
	return false
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "1", "on":
		return true, nil
	case "false", "no", "0", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value: %s", s)
}

// Package models defines the node descriptor and run context models exchanged between a node and its host.
package models

import (
	"encoding/json"
	"fmt"
)

// PropertyType is the input type of a node property.
type PropertyType string

const (
	PropertyTypeString   PropertyType = "string"
	PropertyTypeNumber   PropertyType = "number"
	PropertyTypeBoolean  PropertyType = "boolean"
	PropertyTypeOptions  PropertyType = "options"
	PropertyTypeEmail    PropertyType = "email"
	PropertyTypeDatetime PropertyType = "datetime"
)

// Valid reports whether t is one of the known property types.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeString, PropertyTypeNumber, PropertyTypeBoolean,
		PropertyTypeOptions, PropertyTypeEmail, PropertyTypeDatetime:
		return true
	default:
		return false
	}
}

// OptionValue is a value selectable in an OPTIONS property.
// The set is closed: values are only available through the package variables below.
type OptionValue struct {
	value string
}

var (
	OptionValue1 = OptionValue{value: "value1"}
	OptionValue2 = OptionValue{value: "value2"}
)

var optionValues = []OptionValue{OptionValue1, OptionValue2}

// ParseOptionValue returns the option value with the given string form.
func ParseOptionValue(s string) (OptionValue, error) {
	for _, v := range optionValues {
		if v.value == s {
			return v, nil
		}
	}

	return OptionValue{}, fmt.Errorf("unknown option value %q", s)
}

func (v OptionValue) String() string {
	return v.value
}

// IsZero reports whether v was not obtained from the closed set.
func (v OptionValue) IsZero() bool {
	return v.value == ""
}

func (v OptionValue) MarshalText() ([]byte, error) {
	if v.IsZero() {
		return nil, fmt.Errorf("empty option value")
	}

	return []byte(v.value), nil
}

func (v *OptionValue) UnmarshalText(text []byte) error {
	parsed, err := ParseOptionValue(string(text))
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// Option is one selectable entry of an OPTIONS property.
type Option struct {
	Value       OptionValue `json:"value"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
}

// DisplayOptions controls when a property is shown.
// Show maps a controlling property name to the values that make this property visible.
type DisplayOptions struct {
	Show map[string][]any `json:"show,omitempty"`
}

// Property describes one configurable input of a node.
type Property struct {
	Name           string          `json:"name"`
	DisplayName    string          `json:"displayName"`
	Type           PropertyType    `json:"type"`
	Placeholder    string          `json:"placeholder,omitempty"`
	Description    string          `json:"description,omitempty"`
	Default        any             `json:"default"`
	Required       bool            `json:"required"`
	Options        []Option        `json:"options,omitempty"`
	DisplayOptions *DisplayOptions `json:"displayOptions,omitempty"`
}

// Visible evaluates the display options against the current property values.
// Every controlling property must hold one of its allowed values.
func (p Property) Visible(values map[string]any) bool {
	if p.DisplayOptions == nil {
		return true
	}

	for field, allowed := range p.DisplayOptions.Show {
		current, ok := values[field]
		if !ok || !containsValue(allowed, current) {
			return false
		}
	}

	return true
}

// OptionValues returns the string forms of the property's options.
func (p Property) OptionValues() []string {
	values := make([]string, 0, len(p.Options))
	for _, o := range p.Options {
		values = append(values, o.Value.String())
	}

	return values
}

func containsValue(allowed []any, current any) bool {
	for _, a := range allowed {
		if sameValue(a, current) {
			return true
		}
	}

	return false
}

// sameValue compares a declared value with a submitted one.
// Option values compare by string form and numbers regardless of their Go type.
func sameValue(declared, current any) bool {
	if ov, ok := declared.(OptionValue); ok {
		declared = ov.String()
	}

	if ov, ok := current.(OptionValue); ok {
		current = ov.String()
	}

	if df, ok := toFloat(declared); ok {
		cf, ok := toFloat(current)

		return ok && df == cf
	}

	return declared == current
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()

		return f, err == nil
	default:
		return 0, false
	}
}

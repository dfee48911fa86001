package models

import (
	"errors"
	"fmt"
	"maps"
)

// NodeKind represents the category of a node type.
type NodeKind string

const (
	NodeKindAction  NodeKind = "action"
	NodeKindTrigger NodeKind = "trigger"
)

// ErrInvalidNodeType indicates a descriptor that breaks its structural invariants.
var ErrInvalidNodeType = errors.New("invalid node type")

// NodeType is the static descriptor a node exposes to its host.
type NodeType struct {
	ID          string     `json:"id"`
	Type        NodeKind   `json:"type"`
	Name        string     `json:"name"`
	IsPublic    bool       `json:"is_public"`
	DisplayName string     `json:"displayName"`
	Icon        string     `json:"icon"`
	Description string     `json:"description"`
	Properties  []Property `json:"properties"`
}

// Property returns the property declared with the given name.
func (n *NodeType) Property(name string) (Property, bool) {
	for _, p := range n.Properties {
		if p.Name == name {
			return p, true
		}
	}

	return Property{}, false
}

// Validate checks the descriptor's structural invariants.
func (n *NodeType) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidNodeType)
	}

	if n.Type != NodeKindAction && n.Type != NodeKindTrigger {
		return fmt.Errorf("%w: unsupported kind %q", ErrInvalidNodeType, n.Type)
	}

	declared := make(map[string]bool, len(n.Properties))

	for i, p := range n.Properties {
		if p.Name == "" {
			return fmt.Errorf("%w: property %d has no name", ErrInvalidNodeType, i)
		}

		if declared[p.Name] {
			return fmt.Errorf("%w: duplicate property %q", ErrInvalidNodeType, p.Name)
		}

		if !p.Type.Valid() {
			return fmt.Errorf("%w: property %q has unsupported type %q", ErrInvalidNodeType, p.Name, p.Type)
		}

		if err := validateOptions(p); err != nil {
			return err
		}

		if p.Default != nil && !defaultMatchesType(p) {
			return fmt.Errorf("%w: default of property %q does not match type %q", ErrInvalidNodeType, p.Name, p.Type)
		}

		if p.DisplayOptions != nil {
			for field := range p.DisplayOptions.Show {
				if !declared[field] {
					return fmt.Errorf("%w: property %q is shown depending on %q which is not declared before it",
						ErrInvalidNodeType, p.Name, field)
				}
			}
		}

		declared[p.Name] = true
	}

	return nil
}

func validateOptions(p Property) error {
	if p.Type != PropertyTypeOptions {
		if len(p.Options) > 0 {
			return fmt.Errorf("%w: property %q declares options but is of type %q", ErrInvalidNodeType, p.Name, p.Type)
		}

		return nil
	}

	if len(p.Options) == 0 {
		return fmt.Errorf("%w: options property %q has no options", ErrInvalidNodeType, p.Name)
	}

	for _, o := range p.Options {
		if o.Value.IsZero() {
			return fmt.Errorf("%w: options property %q has an empty option", ErrInvalidNodeType, p.Name)
		}
	}

	return nil
}

func defaultMatchesType(p Property) bool {
	switch p.Type {
	case PropertyTypeString, PropertyTypeEmail, PropertyTypeDatetime:
		_, ok := p.Default.(string)

		return ok
	case PropertyTypeNumber:
		_, ok := toFloat(p.Default)

		return ok
	case PropertyTypeBoolean:
		_, ok := p.Default.(bool)

		return ok
	case PropertyTypeOptions:
		ov, ok := p.Default.(OptionValue)
		if !ok {
			return false
		}

		for _, o := range p.Options {
			if o.Value == ov {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// ApplyDefaults returns a copy of values where every missing property with a default is filled in.
// Option defaults are stored in their string form.
func (n *NodeType) ApplyDefaults(values map[string]any) map[string]any {
	out := make(map[string]any, len(n.Properties))
	maps.Copy(out, values)

	for _, p := range n.Properties {
		if _, ok := out[p.Name]; ok || p.Default == nil {
			continue
		}

		if ov, ok := p.Default.(OptionValue); ok {
			out[p.Name] = ov.String()

			continue
		}

		out[p.Name] = p.Default
	}

	return out
}

// VisibleProperties returns, in declaration order, the names of the properties shown for the given values.
func (n *NodeType) VisibleProperties(values map[string]any) []string {
	visible := make([]string, 0, len(n.Properties))

	for _, p := range n.Properties {
		if p.Visible(values) {
			visible = append(visible, p.Name)
		}
	}

	return visible
}

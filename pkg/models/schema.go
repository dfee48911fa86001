package models

// JSONSchema represents a JSON Schema for property value validation.
type JSONSchema struct {
	Schema      string                     `json:"$schema,omitempty"`
	Type        string                     `json:"type"`
	Properties  map[string]*SchemaProperty `json:"properties,omitempty"`
	Required    []string                   `json:"required,omitempty"`
	Title       string                     `json:"title,omitempty"`
	Description string                     `json:"description,omitempty"`
}

// SchemaProperty represents a JSON Schema property.
type SchemaProperty struct {
	Type        string `json:"type"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Default     any    `json:"default,omitempty"`
	Format      string `json:"format,omitempty"`
}

const jsonSchemaDraft = "http://json-schema.org/draft-07/schema#"

// JSONSchema renders the descriptor's properties as a JSON Schema document.
func (n *NodeType) JSONSchema() *JSONSchema {
	schema := &JSONSchema{
		Schema:      jsonSchemaDraft,
		Type:        "object",
		Properties:  make(map[string]*SchemaProperty, len(n.Properties)),
		Title:       n.DisplayName,
		Description: n.Description,
	}

	for _, p := range n.Properties {
		sp := &SchemaProperty{
			Title:       p.DisplayName,
			Description: p.Description,
			Default:     p.Default,
		}

		switch p.Type {
		case PropertyTypeString:
			sp.Type = "string"
		case PropertyTypeNumber:
			sp.Type = "number"
		case PropertyTypeBoolean:
			sp.Type = "boolean"
		case PropertyTypeOptions:
			sp.Type = "string"
			for _, v := range p.OptionValues() {
				sp.Enum = append(sp.Enum, v)
			}
		case PropertyTypeEmail:
			sp.Type = "string"
			sp.Format = "email"
		case PropertyTypeDatetime:
			sp.Type = "string"
			sp.Format = "date-time"
		}

		schema.Properties[p.Name] = sp

		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}

	return schema
}

// Package lexal provides the lexal node: adds a textual and a numeric property and optionally stringifies the sum.
package lexal

import (
	"github.com/lexal/lexal-node/pkg/models"
)

const (
	// NodeTypeID identifies the base lexal node.
	NodeTypeID = "80eadd09-3f33-4148-80ee-adde09856abf"

	// ExtendedNodeTypeID identifies the lexal node with the conditional demo properties.
	ExtendedNodeTypeID = "6d0c0f0b-8d43-4a5e-9b61-2f4f3c9a1e57"
)

// Property names.
const (
	PropertyStr    = "str_field"
	PropertyInt    = "int_field"
	PropertyChange = "change_field"

	PropertyChangeOn = "change_on"
	PropertyField1   = "field1"
	PropertyField2   = "field2"
	PropertyEmail    = "email_field"
	PropertyDatetime = "dt_field"
)

const icon = `<svg><text x="8" y="50" font-size="50">🤖</text></svg>`

func baseProperties() []models.Property {
	return []models.Property{
		{
			DisplayName: "Текстовое поле",
			Name:        PropertyStr,
			Type:        models.PropertyTypeString,
			Description: "number",
			Required:    true,
			Default:     "0",
		},
		{
			DisplayName: "Числовое поле",
			Name:        PropertyInt,
			Type:        models.PropertyTypeNumber,
			Description: "number",
			Required:    true,
			Default:     0,
		},
		{
			DisplayName: "Переключатель в строку",
			Name:        PropertyChange,
			Type:        models.PropertyTypeBoolean,
			Description: "Выключено -> int; Включено -> str",
			Required:    true,
			Default:     false,
		},
	}
}

func fieldOptions() []models.Option {
	return []models.Option{
		{Value: models.OptionValue1, Name: "Значение 1", Description: "Первое значение"},
		{Value: models.OptionValue2, Name: "Значение 2", Description: "Второе значение"},
	}
}

func extendedProperties() []models.Property {
	whenChangeOn := &models.DisplayOptions{
		Show: map[string][]any{PropertyChangeOn: {true}},
	}

	return append(baseProperties(),
		models.Property{
			DisplayName: "Показать дополнительные поля",
			Name:        PropertyChangeOn,
			Type:        models.PropertyTypeBoolean,
			Default:     false,
		},
		models.Property{
			DisplayName:    "Поле 1",
			Name:           PropertyField1,
			Type:           models.PropertyTypeOptions,
			Default:        models.OptionValue1,
			Options:        fieldOptions(),
			DisplayOptions: whenChangeOn,
		},
		models.Property{
			DisplayName:    "Поле 2",
			Name:           PropertyField2,
			Type:           models.PropertyTypeOptions,
			Default:        models.OptionValue1,
			Options:        fieldOptions(),
			DisplayOptions: whenChangeOn,
		},
		models.Property{
			DisplayName: "Почта",
			Name:        PropertyEmail,
			Type:        models.PropertyTypeEmail,
			Placeholder: "user@example.com",
			DisplayOptions: &models.DisplayOptions{
				Show: map[string][]any{
					PropertyChangeOn: {true},
					PropertyField1:   {models.OptionValue1},
					PropertyField2:   {models.OptionValue1},
				},
			},
		},
		models.Property{
			DisplayName: "Дата и время",
			Name:        PropertyDatetime,
			Type:        models.PropertyTypeDatetime,
			DisplayOptions: &models.DisplayOptions{
				Show: map[string][]any{
					PropertyChangeOn: {true},
					PropertyField1:   {models.OptionValue2},
					PropertyField2:   {models.OptionValue2},
				},
			},
		},
	)
}

// NodeType returns the descriptor of the base lexal node.
func NodeType() *models.NodeType {
	return &models.NodeType{
		ID:          NodeTypeID,
		Type:        models.NodeKindAction,
		Name:        "lexal_name",
		IsPublic:    false,
		DisplayName: "lexal_display",
		Icon:        icon,
		Description: "lexal_description",
		Properties:  baseProperties(),
	}
}

// ExtendedNodeType returns the descriptor of the lexal node with conditionally visible properties.
func ExtendedNodeType() *models.NodeType {
	return &models.NodeType{
		ID:          ExtendedNodeTypeID,
		Type:        models.NodeKindAction,
		Name:        "lexal_extended_name",
		IsPublic:    false,
		DisplayName: "lexal_extended_display",
		Icon:        icon,
		Description: "lexal_extended_description",
		Properties:  extendedProperties(),
	}
}

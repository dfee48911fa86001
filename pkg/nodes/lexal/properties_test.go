package lexal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeType_Valid(t *testing.T) {
	require.NoError(t, NodeType().Validate())
	require.NoError(t, ExtendedNodeType().Validate())
}

func TestNodeType_Metadata(t *testing.T) {
	nodeType := NodeType()

	assert.Equal(t, NodeTypeID, nodeType.ID)
	assert.Equal(t, "lexal_name", nodeType.Name)
	assert.Equal(t, "lexal_display", nodeType.DisplayName)
	assert.False(t, nodeType.IsPublic)

	names := make([]string, 0, len(nodeType.Properties))
	for _, p := range nodeType.Properties {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{PropertyStr, PropertyInt, PropertyChange}, names)
}

func TestExtendedNodeType_Visibility(t *testing.T) {
	nodeType := ExtendedNodeType()

	tests := []struct {
		name   string
		values map[string]any
		want   []string
	}{
		{
			name:   "extra fields hidden",
			values: map[string]any{PropertyChangeOn: false},
			want:   []string{PropertyStr, PropertyInt, PropertyChange, PropertyChangeOn},
		},
		{
			name:   "conditional fields hidden while options hidden",
			values: map[string]any{PropertyChangeOn: false, PropertyField1: "value1", PropertyField2: "value1"},
			want:   []string{PropertyStr, PropertyInt, PropertyChange, PropertyChangeOn},
		},
		{
			name:   "options shown",
			values: map[string]any{PropertyChangeOn: true, PropertyField1: "value1", PropertyField2: "value2"},
			want:   []string{PropertyStr, PropertyInt, PropertyChange, PropertyChangeOn, PropertyField1, PropertyField2},
		},
		{
			name:   "email shown",
			values: map[string]any{PropertyChangeOn: true, PropertyField1: "value1", PropertyField2: "value1"},
			want: []string{
				PropertyStr, PropertyInt, PropertyChange, PropertyChangeOn,
				PropertyField1, PropertyField2, PropertyEmail,
			},
		},
		{
			name:   "datetime shown",
			values: map[string]any{PropertyChangeOn: true, PropertyField1: "value2", PropertyField2: "value2"},
			want: []string{
				PropertyStr, PropertyInt, PropertyChange, PropertyChangeOn,
				PropertyField1, PropertyField2, PropertyDatetime,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nodeType.VisibleProperties(tt.values))
		})
	}
}

func TestExtendedNodeType_JSON(t *testing.T) {
	data, err := json.Marshal(ExtendedNodeType())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	properties, ok := decoded["properties"].([]any)
	require.True(t, ok)
	require.Len(t, properties, 8)

	field1, ok := properties[4].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "field1", field1["name"])
	assert.Equal(t, "value1", field1["default"])

	options, ok := field1["options"].([]any)
	require.True(t, ok)
	assert.Len(t, options, 2)
}

package storcli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValueMarshalYAMLKeepsOrder(t *testing.T) {
	v, err := ParseValue([]byte(`{"Zeta":1,"Alpha":"123","Mid":[true,null,2.5],"Empty":{}}`))
	require.NoError(t, err)

	out, err := yaml.Marshal(v)
	require.NoError(t, err)

	assert.Equal(t, "Zeta: 1\nAlpha: \"123\"\nMid:\n    - true\n    - null\n    - 2.5\nEmpty: {}\n", string(out))
}

func TestValueMarshalYAMLRoundTrip(t *testing.T) {
	v, err := ParseValue([]byte(`{"Model":"PERC H730P Mini","On":"yes","Drives":[{"EID:Slt":"32:0"}]}`))
	require.NoError(t, err)

	out, err := yaml.Marshal(v)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, "PERC H730P Mini", back["Model"])
	assert.Equal(t, "yes", back["On"])
	assert.Equal(t, []any{map[string]any{"EID:Slt": "32:0"}}, back["Drives"])
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplement(t *testing.T) {
	got, err := Tool(0).Complement()
	require.NoError(t, err)
	assert.Equal(t, Tool(1), got)

	got, err = Tool(1).Complement()
	require.NoError(t, err)
	assert.Equal(t, Tool(0), got)

	for _, bad := range []Tool{NoTool, 2, 9} {
		got, err := bad.Complement()
		assert.ErrorIs(t, err, ErrUnknownTool, "tool %d", bad)
		assert.Equal(t, NoTool, got)
	}
}

func TestAxis(t *testing.T) {
	a, err := Tool(0).Axis()
	require.NoError(t, err)
	assert.Equal(t, "A", a)

	b, err := Tool(1).Axis()
	require.NoError(t, err)
	assert.Equal(t, "B", b)

	_, err = NoTool.Axis()
	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "unknown tool -1", te.Error())
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStringSet(t *testing.T) {
	set := NewStringSet([]string{" Dessert", "vegan", "dessert", "", "Quick "})
	assert.Equal(t, StringSet{"dessert", "quick", "vegan"}, set)
	assert.True(t, set.Contains("VEGAN"))
	assert.False(t, set.Contains("keto"))
}

func TestStringSetValueScan(t *testing.T) {
	v, err := StringSet{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)

	empty, err := StringSet(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)

	var s StringSet
	require.NoError(t, s.Scan([]byte(`["x","y"]`)))
	assert.Equal(t, StringSet{"x", "y"}, s)
	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s)
	assert.Error(t, s.Scan(42))
}

func TestRecipeLists(t *testing.T) {
	r := Recipe{
		Ingredients:  "2 apples\n\n  1 cup sugar  \n",
		Instructions: "Peel\nBake",
	}
	assert.Equal(t, []string{"2 apples", "1 cup sugar"}, r.IngredientList())
	assert.Equal(t, []string{"Peel", "Bake"}, r.InstructionList())
}

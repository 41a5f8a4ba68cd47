package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStageSet_Default(t *testing.T) {
	set, err := ParseStageSet(DefaultStages)
	require.NoError(t, err)

	choices := set.Choices()
	require.Len(t, choices, 7)
	assert.Equal(t, StageChoice{Value: "stage1", Display: "Stage 1"}, choices[0])
	assert.Equal(t, "notunderstand", choices[6].Value)

	assert.True(t, set.Contains("normal"))
	assert.False(t, set.Contains("bogus"))
}

func TestParseStageSet_DisplayDefaultsToValue(t *testing.T) {
	set, err := ParseStageSet("benign,malignant:Malignant")
	require.NoError(t, err)

	choices := set.Choices()
	require.Len(t, choices, 2)
	assert.Equal(t, StageChoice{Value: "benign", Display: "benign"}, choices[0])
	assert.Equal(t, StageChoice{Value: "malignant", Display: "Malignant"}, choices[1])
}

func TestParseStageSet_SkipsEmptyEntries(t *testing.T) {
	set, err := ParseStageSet("a:A, ,b:B,")
	require.NoError(t, err)
	assert.Len(t, set.Choices(), 2)
}

func TestParseStageSet_DuplicateValue(t *testing.T) {
	_, err := ParseStageSet("a:A,a:Again")
	require.Error(t, err)
}

func TestParseStageSet_Empty(t *testing.T) {
	_, err := ParseStageSet("")
	require.Error(t, err)
}

func TestStageSet_ChoicesPreserveOrder(t *testing.T) {
	set, err := ParseStageSet("z:Z,a:A,m:M")
	require.NoError(t, err)

	choices := set.Choices()
	require.Len(t, choices, 3)
	assert.Equal(t, "z", choices[0].Value)
	assert.Equal(t, "a", choices[1].Value)
	assert.Equal(t, "m", choices[2].Value)
}

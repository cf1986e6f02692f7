package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillLevelRank(t *testing.T) {
	assert.Less(t, SkillBeginner.Rank(), SkillIntermediate.Rank())
	assert.Less(t, SkillIntermediate.Rank(), SkillAdvanced.Rank())
	assert.Less(t, SkillAdvanced.Rank(), SkillExpert.Rank())
	assert.Equal(t, 0, SkillLevel("Guru").Rank())
	assert.False(t, SkillLevel("").Valid())
}

func TestParseSkillLevel(t *testing.T) {
	level, err := ParseSkillLevel(" expert ")
	require.NoError(t, err)
	assert.Equal(t, SkillExpert, level)

	_, err = ParseSkillLevel("ninja")
	assert.Error(t, err)
}

func TestProficiency(t *testing.T) {
	assert.Equal(t, 4, ProficiencyNative.Rank())
	assert.True(t, ProficiencyConversational.Valid())

	p, err := ParseProficiency("FLUENT")
	require.NoError(t, err)
	assert.Equal(t, ProficiencyFluent, p)

	_, err = ParseProficiency("Bilingual")
	assert.Error(t, err)
}

package document

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLoadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Sample()))

	doc, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, Sample(), doc)
}

func TestLoadRejectsUnknownLevel(t *testing.T) {
	src := `{"personalInfo": {"fullName": "X"}, "skills": [{"name": "Go", "level": "Guru"}]}`
	_, err := Load(strings.NewReader(src))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestLoadRejectsBadMonth(t *testing.T) {
	src := `{"personalInfo": {}, "experience": [{"startDate": "Jan 2020"}]}`
	_, err := Load(strings.NewReader(src))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestLoadFillsMissingSequences(t *testing.T) {
	doc, err := Load(strings.NewReader(`{"personalInfo": {"fullName": "Jane"}, "projects": [{"name": "P"}], "skills": null}`))
	require.NoError(t, err)
	assert.NotNil(t, doc.Experience)
	assert.NotNil(t, doc.Skills)
	assert.NotNil(t, doc.Projects[0].Technologies)
}

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateLinks(t *testing.T) {
	src := `<html><body>
<a href="https://outside.example">outside</a>
<div id="cv-preview"><a href="https://a.example" style="color: red">A</a><p><a href="https://b.example">B</a></p><a>no href</a></div>
</body></html>`

	out, n, err := AnnotateLinks(src, "cv-preview")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, out, `data-href="https://a.example"`)
	assert.Contains(t, out, `data-href="https://b.example"`)
	assert.NotContains(t, out, `data-href="https://outside.example"`)
	assert.Contains(t, out, "color: red; color: #1d4ed8")
	assert.Equal(t, 2, strings.Count(out, `data-pdf-link="true"`))
}

func TestLocateMissingSurface(t *testing.T) {
	err := Locate(`<html><body><div id="other"></div></body></html>`, SurfaceID)
	assert.ErrorIs(t, err, ErrSurfaceNotFound)

	_, _, err = AnnotateLinks(`<p>nothing</p>`, SurfaceID)
	assert.ErrorIs(t, err, ErrSurfaceNotFound)
}

package presenter

import (
	"errors"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	input := "+++\nname: Demo\nseparator: \"***\"\ntheme:\n  content_font: \"#ffffff\"\n+++\n# Welcome\nsubtitle\n***\n## Second\n- a\n"

	pres, err := ParseDocument([]byte(input), Presentation{})
	require.NoError(t, err)

	assert.Equal(t, "Demo", pres.Name)
	assert.Equal(t, "***", pres.Separator)
	assert.Equal(t, "#ffffff", pres.Theme.ContentFont)
	require.Len(t, pres.Slides, 2)
	assert.True(t, pres.Slides[0].TitleSlide)
	assert.Equal(t, "Welcome", pres.Slides[0].Title)
	assert.False(t, pres.Slides[1].TitleSlide)
	assert.Equal(t, [][]string{{"a"}}, pres.Slides[1].Lists())
}

func TestParseDocumentDefaults(t *testing.T) {
	defaults := Presentation{
		Separator:  "===",
		Background: "bg.png",
		Theme:      ThemeConfig{TitleFont: "000000", ContentFont: "111111"},
	}
	input := "+++\ntheme:\n  content_font: \"222222\"\n+++\n## A\n===\n## B"

	pres, err := ParseDocument([]byte(input), defaults)
	require.NoError(t, err)

	assert.Equal(t, "===", pres.Separator)
	assert.Equal(t, "bg.png", pres.Background)
	assert.Equal(t, ThemeConfig{TitleFont: "000000", ContentFont: "222222"}, pres.Theme)
	require.Len(t, pres.Slides, 2)
	assert.False(t, pres.Slides[0].TitleSlide)
}

func TestParseDocumentCRLF(t *testing.T) {
	pres, err := ParseDocument([]byte("## A\r\ntext\r\n---\r\n## B\r\n"), Presentation{})
	require.NoError(t, err)

	require.Len(t, pres.Slides, 2)
	assert.Equal(t, DefaultSeparator, pres.Separator)
	assert.Equal(t, "A", pres.Slides[0].Title)
	assert.Equal(t, []string{"text"}, pres.Slides[0].Content())
	assert.Equal(t, "B", pres.Slides[1].Title)
}

func TestParseDocumentErrors(t *testing.T) {
	_, err := ParseDocument([]byte("  \n---\n\n"), Presentation{})
	assert.True(t, errors.Is(err, ErrNoSlides))

	_, err = ParseDocument([]byte("+++\nname: [unclosed\n+++\n# x"), Presentation{})
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.md")
	require.NoError(t, ioutil.WriteFile(path, []byte("# Hello\n---\n## More"), 0644))

	pres, err := ParseFile(path, Presentation{})
	require.NoError(t, err)
	assert.Equal(t, "deck", pres.Name)
	assert.Equal(t, dir, pres.BaseDir)
	assert.Len(t, pres.Slides, 2)

	_, err = ParseFile(filepath.Join(dir, "missing.md"), Presentation{})
	assert.Error(t, err)
}

package presenter

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedShape struct {
	kind       string
	frame      Frame
	paragraphs []Paragraph
	tokens     []CodeToken
	table      *Table
	path       string
	alt        string
}

type recordingPage struct {
	layout     PageLayout
	background *RGB
	notes      string
	shapes     []recordedShape
}

func (p *recordingPage) SetBackground(c RGB) { p.background = &c }
func (p *recordingPage) SetNotes(notes string) { p.notes = notes }

func (p *recordingPage) AddPicture(frame Frame, path, alt string) error {
	p.shapes = append(p.shapes, recordedShape{kind: "picture", frame: frame, path: path, alt: alt})
	return nil
}

func (p *recordingPage) AddTextBox(frame Frame, paragraphs []Paragraph) {
	p.shapes = append(p.shapes, recordedShape{kind: "text", frame: frame, paragraphs: paragraphs})
}

func (p *recordingPage) AddCodeBox(frame Frame, tokens []CodeToken, fill RGB, size float64) {
	p.shapes = append(p.shapes, recordedShape{kind: "code", frame: frame, tokens: tokens})
}

func (p *recordingPage) AddTable(frame Frame, table *Table, style TableStyle) {
	p.shapes = append(p.shapes, recordedShape{kind: "table", frame: frame, table: table})
}

type recordingCanvas struct {
	pages []*recordingPage
}

func (c *recordingCanvas) AddPage(layout PageLayout) Page {
	p := &recordingPage{layout: layout}
	c.pages = append(c.pages, p)
	return p
}

func kinds(shapes []recordedShape) []string {
	var out []string
	for _, s := range shapes {
		out = append(out, s.kind)
	}
	return out
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	require.NoError(t, png.Encode(f, img))
}

func TestRenderPlacesBodyInOrder(t *testing.T) {
	pres, err := ParseDocument([]byte("# Deck\n---\n## Slide\ntext\n- a\n- b\n```go\nvar x = 1\n```\n| A | B |\n|---|---|\n| 1 | 2 |\n<!-- say this -->"), Presentation{
		Theme: ThemeConfig{TitleBackground: "000000", ContentBackground: "ffffff"},
	})
	require.NoError(t, err)

	canvas := &recordingCanvas{}
	require.NoError(t, NewRenderer(pres).Render(pres, canvas))
	require.Len(t, canvas.pages, 2)

	title := canvas.pages[0]
	assert.Equal(t, LayoutTitle, title.layout)
	assert.Equal(t, &RGB{0, 0, 0}, title.background)
	require.Len(t, title.shapes, 1)
	assert.Equal(t, titleSlideSize, title.shapes[0].paragraphs[0].Size)
	assert.Equal(t, AlignCenter, title.shapes[0].paragraphs[0].Align)

	page := canvas.pages[1]
	assert.Equal(t, LayoutContent, page.layout)
	assert.Equal(t, &RGB{255, 255, 255}, page.background)
	assert.Equal(t, []string{"text", "text", "text", "code", "table"}, kinds(page.shapes))
	assert.Equal(t, "say this", page.notes)

	list := page.shapes[2]
	require.Len(t, list.paragraphs, 2)
	assert.Equal(t, "•", list.paragraphs[0].Bullet)
	assert.Equal(t, pageMargin+listIndent, list.frame.Left)

	code := page.shapes[3]
	assert.Equal(t, CodeBlockMinHeight, code.frame.Height)
	assert.Equal(t, ColorKeyword, code.tokens[0].Color)

	for i := 1; i < len(page.shapes); i++ {
		prev, cur := page.shapes[i-1].frame, page.shapes[i].frame
		assert.GreaterOrEqual(t, cur.Top, prev.Bottom(), "shape %d overlaps the one above", i)
	}
}

func TestRenderOrderedListBullets(t *testing.T) {
	canvas := &recordingCanvas{}
	r := &Renderer{}
	require.NoError(t, r.RenderSlide(ParseSlide("## L\n1. one\n2. two"), canvas))

	list := canvas.pages[0].shapes[1]
	assert.Equal(t, "1.", list.paragraphs[0].Bullet)
	assert.Equal(t, "2.", list.paragraphs[1].Bullet)
}

func TestRenderImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "wide.png"), 400, 100)

	hook := test.NewLocal(logger.Logger)
	defer hook.Reset()

	canvas := &recordingCanvas{}
	r := &Renderer{BaseDir: dir}
	require.NoError(t, r.RenderSlide(ParseSlide("## Pics\n![wide](./wide.png)\n![gone](missing.png)"), canvas))

	shapes := canvas.pages[0].shapes
	require.Equal(t, []string{"text", "picture"}, kinds(shapes))
	pic := shapes[1]
	assert.Equal(t, filepath.Join(dir, "wide.png"), pic.path)
	assert.Equal(t, "wide", pic.alt)
	assert.InDelta(t, contentWidth, pic.frame.Width, 1e-9)
	assert.InDelta(t, contentWidth/4, pic.frame.Height, 1e-9)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "image not found", entry.Message)
}

func TestRenderBackgroundImage(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "bg.png"), 16, 12)

	canvas := &recordingCanvas{}
	r := &Renderer{BaseDir: dir, Background: "bg.png"}
	require.NoError(t, r.RenderSlide(ParseSlide("## T"), canvas))

	shapes := canvas.pages[0].shapes
	require.Equal(t, []string{"picture", "text"}, kinds(shapes))
	assert.Equal(t, Frame{0, 0, PageWidth, PageHeight}, shapes[0].frame)
}

func TestRenderRejectsDanglingCodeRef(t *testing.T) {
	s := &Slide{Body: []BodyItem{&CodeBlockRef{Index: 2}}}
	err := (&Renderer{}).RenderSlide(s, &recordingCanvas{})
	assert.Error(t, err)
}

func TestTextHeight(t *testing.T) {
	one := TextHeight("short", textSize, contentWidth)
	two := TextHeight("short\nlines", textSize, contentWidth)
	assert.Greater(t, two, one)

	wide := TextHeight(strings.Repeat("漢", 60), textSize, contentWidth)
	assert.Greater(t, wide, one)
}

func TestImageSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	writePNG(t, path, 30, 20)

	w, h, err := ImageSize(path)
	require.NoError(t, err)
	assert.Equal(t, 30, w)
	assert.Equal(t, 20, h)

	_, _, err = ImageSize(filepath.Join(t.TempDir(), "none.png"))
	assert.Error(t, err)
}

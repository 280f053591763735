package presenter

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const pixelsPerInch = 96

var deckTemplates = DefaultRenderer()

type HTMLOptions struct {
	Title     string
	RevealURL string
	// RefDir is the directory the page is served from. Pictures are linked
	// relative to it.
	RefDir     string
	LiveReload bool
}

// HTMLCanvas draws pages as absolutely positioned boxes inside reveal.js
// sections.
type HTMLCanvas struct {
	opts  HTMLOptions
	pages []*htmlPage
}

func NewHTMLCanvas(opts HTMLOptions) *HTMLCanvas {
	if opts.RevealURL == "" {
		opts.RevealURL = DefaultRevealURL
	}
	opts.RevealURL = strings.TrimSuffix(opts.RevealURL, "/")
	return &HTMLCanvas{opts: opts}
}

func (c *HTMLCanvas) AddPage(layout PageLayout) Page {
	p := &htmlPage{
		canvas: c,
		ID:     fmt.Sprintf("slide-%d", len(c.pages)+1),
		Layout: layout.String(),
	}
	c.pages = append(c.pages, p)
	return p
}

// Bytes executes the document template over all pages added so far.
func (c *HTMLCanvas) Bytes() ([]byte, error) {
	for _, p := range c.pages {
		if p.err != nil {
			return nil, fmt.Errorf("%s: %w", p.ID, p.err)
		}
	}
	data := struct {
		HTMLOptions
		Version       string
		Width, Height int
		Pages         []*htmlPage
	}{
		HTMLOptions: c.opts,
		Version:     Version,
		Width:       int(PageWidth * pixelsPerInch),
		Height:      int(PageHeight * pixelsPerInch),
		Pages:       c.pages,
	}
	buf := &bytes.Buffer{}
	err := deckTemplates.ExecuteTemplate(buf, "main", data)
	return buf.Bytes(), err
}

type htmlPage struct {
	canvas *HTMLCanvas
	err    error

	ID         string
	Layout     string
	Background string
	Shapes     []template.HTML
	Notes      template.HTML
}

func (p *htmlPage) HasNotes() bool {
	return len(p.Notes) > 0
}

func (p *htmlPage) SetBackground(color RGB) {
	p.Background = color.Hex()
}

func (p *htmlPage) SetNotes(notes string) {
	p.Notes = renderNotes(notes)
}

func (p *htmlPage) shape(name string, data interface{}) {
	if p.err != nil {
		return
	}
	buf := &bytes.Buffer{}
	if err := deckTemplates.ExecuteTemplate(buf, name, data); err != nil {
		p.err = err
		return
	}
	p.Shapes = append(p.Shapes, template.HTML(buf.String()))
}

func (p *htmlPage) AddTextBox(frame Frame, paragraphs []Paragraph) {
	type para struct {
		Style  template.CSS
		Bullet string
		Runs   []Run
	}
	data := struct {
		Style      template.CSS
		Paragraphs []para
	}{Style: frameStyle(frame)}
	for _, pg := range paragraphs {
		style := fmt.Sprintf("font-size:%gpt;text-align:%s;", pg.Size, cssAlign(pg.Align))
		if pg.Bold {
			style += "font-weight:bold;"
		}
		if pg.Color != nil {
			style += "color:" + pg.Color.Hex() + ";"
		}
		data.Paragraphs = append(data.Paragraphs, para{
			Style:  template.CSS(style),
			Bullet: pg.Bullet,
			Runs:   pg.Runs,
		})
	}
	p.shape("textbox", data)
}

func (p *htmlPage) AddCodeBox(frame Frame, tokens []CodeToken, fill RGB, size float64) {
	type token struct {
		Style template.CSS
		Text  string
	}
	data := struct {
		Style  template.CSS
		Tokens []token
	}{
		Style: frameStyle(frame) + template.CSS(fmt.Sprintf("background:%s;font-size:%gpt;", fill.Hex(), size)),
	}
	for _, t := range tokens {
		data.Tokens = append(data.Tokens, token{
			Style: template.CSS("color:" + t.Color.Hex() + ";"),
			Text:  t.Text,
		})
	}
	p.shape("codebox", data)
}

func (p *htmlPage) AddTable(frame Frame, table *Table, style TableStyle) {
	type cell struct {
		Style template.CSS
		Runs  []Run
	}
	cellStyle := func(col int, header bool) template.CSS {
		s := fmt.Sprintf("border:1px solid %s;font-size:%gpt;", style.Border.Hex(), style.Size)
		if col < len(table.Alignments) {
			s += "text-align:" + cssAlign(table.Alignments[col]) + ";"
		}
		if header {
			s += fmt.Sprintf("background:%s;color:%s;", style.HeaderFill.Hex(), style.HeaderFont.Hex())
		} else if style.Color != nil {
			s += "color:" + style.Color.Hex() + ";"
		}
		return template.CSS(s)
	}

	data := struct {
		Style   template.CSS
		Headers []cell
		Rows    [][]cell
	}{Style: frameStyle(frame)}
	if table.HasHeader {
		for i, h := range table.Headers {
			data.Headers = append(data.Headers, cell{Style: cellStyle(i, true), Runs: ParseInline(h)})
		}
	}
	for _, row := range table.Rows {
		var cells []cell
		for i, v := range row {
			cells = append(cells, cell{Style: cellStyle(i, false), Runs: ParseInline(v)})
		}
		data.Rows = append(data.Rows, cells)
	}
	p.shape("table", data)
}

func (p *htmlPage) AddPicture(frame Frame, path, alt string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	p.shape("picture", struct {
		Style template.CSS
		Src   template.URL
		Alt   string
	}{
		Style: frameStyle(frame) + "object-fit:contain;",
		Src:   p.canvas.pictureURL(path),
		Alt:   alt,
	})
	return p.err
}

// pictureURL links path relative to RefDir, or by file URL without one.
func (c *HTMLCanvas) pictureURL(path string) template.URL {
	if c.opts.RefDir != "" {
		if rel, err := filepath.Rel(c.opts.RefDir, path); err == nil {
			return template.URL((&url.URL{Path: filepath.ToSlash(rel)}).String())
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return template.URL((&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String())
}

func frameStyle(f Frame) template.CSS {
	return template.CSS(fmt.Sprintf("left:%gpx;top:%gpx;width:%gpx;height:%gpx;",
		f.Left*pixelsPerInch, f.Top*pixelsPerInch, f.Width*pixelsPerInch, f.Height*pixelsPerInch))
}

func cssAlign(a Alignment) string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

package presenter

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"
)

const (
	pageMargin     = 0.5
	contentWidth   = PageWidth - 2*pageMargin
	titleHeight    = 1.0
	bodyTop        = pageMargin + titleHeight + 0.2
	elementSpacing = 0.2
	listIndent     = 0.5
	imageHeight    = 3.0
	lineSpacing    = 1.2
	pointsPerInch  = 72.0

	titleSize      = 32.0
	titleSlideSize = 44.0
	textSize       = 16.0
	codeSize       = 12.0
	tableSize      = 12.0
)

var headingSizes = map[ContentType]float64{
	ContentH3: 22,
	ContentH4: 20,
	ContentH5: 18,
	ContentH6: 18,
}

var (
	tableHeaderFill = RGB{50, 50, 50}
	tableBorder     = RGB{200, 200, 200}
	white           = RGB{255, 255, 255}
)

// Renderer lays slides out on a Canvas.
type Renderer struct {
	Theme Theme
	// Background is an image painted full-bleed under every slide.
	Background string
	BaseDir    string
}

func NewRenderer(pres *Presentation) *Renderer {
	return &Renderer{
		Theme:      pres.Theme.Resolve(),
		Background: pres.Background,
		BaseDir:    pres.BaseDir,
	}
}

// Render draws every slide of pres, one page each, in order.
func (r *Renderer) Render(pres *Presentation, canvas Canvas) error {
	for i, s := range pres.Slides {
		if err := r.RenderSlide(s, canvas); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return nil
}

// RenderSlide adds one page for s.
func (r *Renderer) RenderSlide(s *Slide, canvas Canvas) error {
	layout := LayoutContent
	if s.TitleSlide {
		layout = LayoutTitle
	}
	page := canvas.AddPage(layout)

	if bg := r.Theme.Background(s.TitleSlide); bg != nil {
		page.SetBackground(*bg)
	}
	if r.Background != "" {
		path := r.resolve(r.Background)
		if !fileExists(path) {
			logger.WithField("path", path).Warn("background image not found")
		} else if err := page.AddPicture(Frame{0, 0, PageWidth, PageHeight}, path, ""); err != nil {
			logger.WithFields(logrus.Fields{"path": path, "error": err}).Warn("could not add background image")
		}
	}

	font := r.Theme.Font(s.TitleSlide)
	top := pageMargin
	if s.Title != "" {
		top = r.placeTitle(s, page, font)
	}

	for _, item := range s.Body {
		switch it := item.(type) {
		case *Content:
			top = r.placeContent(it, page, font, top)
		case *List:
			top = r.placeList(it, page, font, top)
		case *Table:
			top = r.placeTable(it, page, font, top)
		case *CodeBlockRef:
			if it.Index < 0 || it.Index >= len(s.CodeBlocks) {
				return fmt.Errorf("code block %d out of range", it.Index)
			}
			top = r.placeCode(s.CodeBlocks[it.Index], page, top)
		default:
			return fmt.Errorf("unknown body item %T", item)
		}
	}

	for _, img := range s.Images {
		top = r.placeImage(img, page, top)
	}

	if top > PageHeight {
		logger.WithFields(logrus.Fields{"title": s.Title, "bottom": top}).Warn("slide content runs past the page")
	}

	if s.HasNotes() {
		page.SetNotes(s.SpeakerNotes)
	}
	return nil
}

func (r *Renderer) placeTitle(s *Slide, page Page, font *RGB) float64 {
	p := Paragraph{
		Runs:  ParseInline(s.Title),
		Size:  titleSize,
		Bold:  true,
		Color: font,
		Align: AlignLeft,
	}
	if s.TitleSlide {
		p.Size = titleSlideSize
		p.Align = AlignCenter
		frame := Frame{pageMargin, 2.5, contentWidth, 1.5}
		page.AddTextBox(frame, []Paragraph{p})
		return frame.Bottom() + elementSpacing
	}
	page.AddTextBox(Frame{pageMargin, pageMargin, contentWidth, titleHeight}, []Paragraph{p})
	return bodyTop
}

func (r *Renderer) placeContent(c *Content, page Page, font *RGB, top float64) float64 {
	p := Paragraph{
		Runs:  ParseInline(c.Text),
		Size:  textSize,
		Color: font,
		Align: AlignLeft,
	}
	if size, ok := headingSizes[c.Type]; ok {
		p.Size = size
		p.Bold = true
	}
	frame := Frame{pageMargin, top, contentWidth, TextHeight(PlainText(c.Text), p.Size, contentWidth)}
	page.AddTextBox(frame, []Paragraph{p})
	return frame.Bottom() + elementSpacing
}

func (r *Renderer) placeList(l *List, page Page, font *RGB, top float64) float64 {
	width := contentWidth - listIndent
	var (
		paragraphs []Paragraph
		height     float64
	)
	for i, item := range l.Items {
		bullet := "•"
		if l.Ordered {
			bullet = fmt.Sprintf("%d.", i+1)
		}
		paragraphs = append(paragraphs, Paragraph{
			Runs:   ParseInline(item),
			Bullet: bullet,
			Size:   textSize,
			Color:  font,
			Align:  AlignLeft,
		})
		height += TextHeight(bullet+" "+PlainText(item), textSize, width)
	}
	frame := Frame{pageMargin + listIndent, top, width, height}
	page.AddTextBox(frame, paragraphs)
	return frame.Bottom() + elementSpacing
}

func (r *Renderer) placeTable(t *Table, page Page, font *RGB, top float64) float64 {
	d := t.Dimensions()
	frame := Frame{pageMargin, top, d.Width, d.TotalHeight}
	page.AddTable(frame, t, TableStyle{
		HeaderFill: tableHeaderFill,
		HeaderFont: white,
		Border:     tableBorder,
		Size:       tableSize,
		Color:      font,
	})
	return frame.Bottom() + elementSpacing
}

func (r *Renderer) placeCode(cb CodeBlock, page Page, top float64) float64 {
	frame := Frame{pageMargin, top, contentWidth, CodeBlockHeight(cb.Code)}
	page.AddCodeBox(frame, TokenizeCode(cb.Code, cb.Language), r.Theme.CodeFill(), codeSize)
	return frame.Bottom() + elementSpacing
}

func (r *Renderer) placeImage(img ImageRef, page Page, top float64) float64 {
	path := r.resolve(img.Path)
	if !fileExists(path) {
		logger.WithField("path", path).Warn("image not found")
		return top
	}

	width, height := imageHeight, imageHeight
	if w, h, err := ImageSize(path); err == nil && h > 0 {
		width = imageHeight * float64(w) / float64(h)
		if width > contentWidth {
			width = contentWidth
			height = contentWidth * float64(h) / float64(w)
		}
	} else if err != nil {
		logger.WithFields(logrus.Fields{"path": path, "error": err}).Debug("could not probe image size")
	}

	frame := Frame{(PageWidth - width) / 2, top, width, height}
	if err := page.AddPicture(frame, path, img.Alt); err != nil {
		logger.WithFields(logrus.Fields{"path": path, "error": err}).Warn("could not add image")
		return top
	}
	return frame.Bottom() + elementSpacing
}

// resolve makes a markdown path absolute against the deck's directory.
func (r *Renderer) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.BaseDir, strings.TrimPrefix(path, "./"))
}

// TextHeight estimates the height in inches of text wrapped into width
// inches at size points. Glyphs are taken as half an em wide on average.
func TextHeight(text string, size, width float64) float64 {
	perLine := int(width * pointsPerInch / (size * 0.5))
	if perLine < 1 {
		perLine = 1
	}
	lines := 0
	for _, line := range strings.Split(text, "\n") {
		lines += int(math.Max(1, math.Ceil(float64(runewidth.StringWidth(line))/float64(perLine))))
	}
	return float64(lines)*size*lineSpacing/pointsPerInch + 0.1
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

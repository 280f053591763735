package presenter

// Page geometry in inches.
const (
	PageWidth  = 10.0
	PageHeight = 7.5
)

// Frame is a box on a page, in inches from the top left corner.
type Frame struct {
	Left, Top, Width, Height float64
}

func (f Frame) Bottom() float64 {
	return f.Top + f.Height
}

type PageLayout int

const (
	LayoutContent PageLayout = iota
	LayoutTitle
)

func (l PageLayout) String() string {
	if l == LayoutTitle {
		return "title"
	}
	return "content"
}

// Paragraph is one line-broken unit of a text box.
type Paragraph struct {
	Runs   []Run
	Bullet string
	Size   float64
	Bold   bool
	Color  *RGB
	Align  Alignment
}

type TableStyle struct {
	HeaderFill RGB
	HeaderFont RGB
	Border     RGB
	Size       float64
	Color      *RGB
}

// Canvas is the output document a Renderer draws on.
type Canvas interface {
	AddPage(layout PageLayout) Page
}

// Page receives shapes at explicit frames. The renderer decides every frame;
// the page only draws.
type Page interface {
	SetBackground(color RGB)
	AddPicture(frame Frame, path, alt string) error
	AddTextBox(frame Frame, paragraphs []Paragraph)
	AddCodeBox(frame Frame, tokens []CodeToken, fill RGB, size float64)
	AddTable(frame Frame, table *Table, style TableStyle)
	SetNotes(notes string)
}

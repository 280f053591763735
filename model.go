package presenter

// ContentType distinguishes plain paragraphs from sub-headings in a slide body.
type ContentType string

const (
	ContentText ContentType = "text"
	ContentH3   ContentType = "h3"
	ContentH4   ContentType = "h4"
	ContentH5   ContentType = "h5"
	ContentH6   ContentType = "h6"
)

// Alignment is the horizontal alignment of a table column.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// BodyItem is one ordered content unit of a slide. The set of
// implementations is closed: *Content, *List, *Table and *CodeBlockRef.
type BodyItem interface {
	bodyItem()
}

// Content is a paragraph or a sub-heading.
type Content struct {
	Text string
	Type ContentType
}

// List is a run of bullet or numbered items. Ordered is set when the
// first item used a numeric marker.
type List struct {
	Items   []string
	Ordered bool
}

// Table is a parsed pipe table. Headers (when HasHeader), every row and
// Alignments always have the same length.
type Table struct {
	HasHeader  bool
	Headers    []string
	Rows       [][]string
	Alignments []Alignment
	Raw        []string
}

// CodeBlockRef marks the position of a fenced code block in the body. Index
// points into Slide.CodeBlocks.
type CodeBlockRef struct {
	Index int
}

func (*Content) bodyItem()      {}
func (*List) bodyItem()         {}
func (*Table) bodyItem()        {}
func (*CodeBlockRef) bodyItem() {}

type ImageRef struct {
	Alt  string
	Path string
}

type CodeBlock struct {
	Language string
	Code     string
}

// Slide is the parsed form of one slide's markdown.
type Slide struct {
	Title        string
	Body         []BodyItem
	Images       []ImageRef
	CodeBlocks   []CodeBlock
	SpeakerNotes string

	// TitleSlide is set by ParseDocument for a leading "# " slide.
	TitleSlide bool
}

func (s *Slide) HasNotes() bool {
	return len(s.SpeakerNotes) > 0
}

// Content returns the text of every Content item in body order.
func (s *Slide) Content() []string {
	content := []string{}
	for _, item := range s.Body {
		if c, ok := item.(*Content); ok {
			content = append(content, c.Text)
		}
	}
	return content
}

// ContentTypes is parallel to Content.
func (s *Slide) ContentTypes() []ContentType {
	types := []ContentType{}
	for _, item := range s.Body {
		if c, ok := item.(*Content); ok {
			types = append(types, c.Type)
		}
	}
	return types
}

// Lists returns the items of every List in body order.
func (s *Slide) Lists() [][]string {
	lists := [][]string{}
	for _, item := range s.Body {
		if l, ok := item.(*List); ok {
			lists = append(lists, l.Items)
		}
	}
	return lists
}

// Tables returns every table in body order.
func (s *Slide) Tables() []*Table {
	var tables []*Table
	for _, item := range s.Body {
		if t, ok := item.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// Presentation is a parsed deck.
type Presentation struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Separator   string      `yaml:"separator"`
	Background  string      `yaml:"background"`
	Theme       ThemeConfig `yaml:"theme"`

	// BaseDir resolves relative image paths. Empty means the working directory.
	BaseDir string   `yaml:"-"`
	Slides  []*Slide `yaml:"-"`
}

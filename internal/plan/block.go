package plan

// BlockKind identifies a display block's shape.
type BlockKind int

const (
	// BlockHeading is a section or card title. Level 1 is a section,
	// level 2 a card within it.
	BlockHeading BlockKind = iota
	// BlockKeyValue is a labelled value ("Breakfast: Oats + Milk").
	BlockKeyValue
	// BlockText is a line of free text made of styled spans.
	BlockText
	// BlockList is an ordered list of plain lines.
	BlockList
	// BlockInvalid flags content that could not be rendered.
	BlockInvalid
)

// Span is a run of text within a BlockText line.
type Span struct {
	Text string
	Bold bool
}

// Block is one markup-agnostic unit of rendered plan output. Renderers
// produce blocks; the TUI paints them. Keeping the two apart lets the
// renderer logic be tested without a terminal.
type Block struct {
	Kind  BlockKind
	Level int    // heading depth, BlockHeading only
	Title string // heading text, key-value label, or invalid reason
	Value string // key-value value
	Items []string
	Spans []Span
}

// Heading returns a heading block.
func Heading(level int, text string) Block {
	return Block{Kind: BlockHeading, Level: level, Title: text}
}

// KeyValue returns a labelled-value block.
func KeyValue(key, value string) Block {
	return Block{Kind: BlockKeyValue, Title: key, Value: value}
}

// TextLine returns a single-span text block.
func TextLine(text string) Block {
	return Block{Kind: BlockText, Spans: []Span{{Text: text}}}
}

// Invalid returns a block flagging unrenderable content.
func Invalid(reason string) Block {
	return Block{Kind: BlockInvalid, Title: reason}
}

// PlainText flattens a text block's spans, dropping styling.
func (b Block) PlainText() string {
	var out string
	for _, s := range b.Spans {
		out += s.Text
	}
	return out
}

package types

// BlockKind tags a ContentBlock variant.
type BlockKind string

const (
	BlockDayHeading   BlockKind = "day_heading"
	BlockSectionTitle BlockKind = "section_title"
	BlockBoldLabel    BlockKind = "bold_label"
	BlockKeyValue     BlockKind = "key_value"
	BlockList         BlockKind = "list"
	BlockParagraph    BlockKind = "paragraph"
)

// SpanKind tags an InlineSpan node.
type SpanKind string

const (
	SpanText   SpanKind = "text"
	SpanBold   SpanKind = "bold"
	SpanItalic SpanKind = "italic"
	SpanCode   SpanKind = "code"
)

// InlineSpan is one node of formatted inline text. Text is always raw,
// unescaped content; renderers must escape it.
type InlineSpan struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
}

// ListItem is a single bullet or numbered entry of a list block.
type ListItem struct {
	Text  string       `json:"text"`
	Spans []InlineSpan `json:"spans"`
}

// ContentBlock is one structured unit of an assistant reply.
// Which fields are populated depends on Kind:
//   - day_heading:   Badge, Rest
//   - section_title: Text, Spans
//   - bold_label:    Text
//   - key_value:     Key, Value, Spans (formatted value)
//   - list:          Items
//   - paragraph:     Text, Spans
type ContentBlock struct {
	Kind  BlockKind    `json:"kind"`
	Badge string       `json:"badge,omitempty"`
	Rest  string       `json:"rest,omitempty"`
	Text  string       `json:"text,omitempty"`
	Key   string       `json:"key,omitempty"`
	Value string       `json:"value,omitempty"`
	Spans []InlineSpan `json:"spans,omitempty"`
	Items []ListItem   `json:"items,omitempty"`
}

// ItemTexts returns the raw text of every list item, in order.
func (b ContentBlock) ItemTexts() []string {
	out := make([]string, 0, len(b.Items))
	for _, it := range b.Items {
		out = append(out, it.Text)
	}
	return out
}

package structurer

import (
	"html"
	"strings"

	"github.com/Riyasinha-01/Voyage/internal/types"
)

// RenderSpansHTML renders spans as HTML. Span text is always escaped, so the
// only markup in the output is the tags emitted here.
func RenderSpansHTML(spans []types.InlineSpan) string {
	var b strings.Builder
	writeSpans(&b, spans)
	return b.String()
}

func writeSpans(b *strings.Builder, spans []types.InlineSpan) {
	for _, s := range spans {
		text := html.EscapeString(s.Text)
		switch s.Kind {
		case types.SpanBold:
			b.WriteString("<strong>" + text + "</strong>")
		case types.SpanItalic:
			b.WriteString("<em>" + text + "</em>")
		case types.SpanCode:
			b.WriteString("<code>" + text + "</code>")
		default:
			b.WriteString(text)
		}
	}
}

// RenderHTML renders blocks with the class names the chat window styles.
func RenderHTML(blocks []types.ContentBlock) string {
	var b strings.Builder
	for _, blk := range blocks {
		switch blk.Kind {
		case types.BlockDayHeading:
			b.WriteString(`<div class="msg-day-heading"><span class="msg-day-badge">`)
			b.WriteString(html.EscapeString(blk.Badge))
			b.WriteString(`</span><span class="msg-day-rest">`)
			b.WriteString(html.EscapeString(blk.Rest))
			b.WriteString(`</span></div>`)
		case types.BlockSectionTitle:
			b.WriteString(`<p class="msg-section-title">`)
			writeSpans(&b, blk.Spans)
			b.WriteString(`</p>`)
		case types.BlockBoldLabel:
			b.WriteString(`<p class="msg-bold-label">`)
			b.WriteString(html.EscapeString(blk.Text))
			b.WriteString(`</p>`)
		case types.BlockKeyValue:
			b.WriteString(`<div class="msg-kv"><span class="msg-kv-key">`)
			b.WriteString(html.EscapeString(blk.Key))
			b.WriteString(`</span><span class="msg-kv-val">`)
			writeSpans(&b, blk.Spans)
			b.WriteString(`</span></div>`)
		case types.BlockList:
			b.WriteString(`<ul class="msg-list">`)
			for _, it := range blk.Items {
				b.WriteString(`<li class="msg-list-item"><span class="msg-bullet">›</span><span>`)
				writeSpans(&b, it.Spans)
				b.WriteString(`</span></li>`)
			}
			b.WriteString(`</ul>`)
		default:
			b.WriteString(`<p class="msg-para">`)
			writeSpans(&b, blk.Spans)
			b.WriteString(`</p>`)
		}
	}
	return b.String()
}

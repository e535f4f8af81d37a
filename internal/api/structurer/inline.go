package structurer

import (
	"regexp"
	"strings"

	"github.com/Riyasinha-01/Voyage/internal/types"
)

type inlineRule struct {
	re   *regexp.Regexp
	kind types.SpanKind
}

// Applied in order. Text captured by an earlier rule is final and is not
// scanned again by later ones.
var inlineRules = []inlineRule{
	{re: regexp.MustCompile(`\*\*(.+?)\*\*`), kind: types.SpanBold},
	{re: regexp.MustCompile(`\*(.+?)\*`), kind: types.SpanItalic},
	{re: regexp.MustCompile("`(.+?)`"), kind: types.SpanCode},
}

// InlineFormat converts **bold**, *italic* and `code` markers into a flat
// list of typed spans. Matching is non-nested and shortest-span.
func InlineFormat(text string) []types.InlineSpan {
	if text == "" {
		return nil
	}
	spans := []types.InlineSpan{{Kind: types.SpanText, Text: text}}
	for _, rule := range inlineRules {
		next := make([]types.InlineSpan, 0, len(spans))
		for _, s := range spans {
			if s.Kind != types.SpanText {
				next = append(next, s)
				continue
			}
			next = append(next, splitSpan(s.Text, rule)...)
		}
		spans = next
	}
	return spans
}

func splitSpan(text string, rule inlineRule) []types.InlineSpan {
	matches := rule.re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []types.InlineSpan{{Kind: types.SpanText, Text: text}}
	}
	out := make([]types.InlineSpan, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			out = append(out, types.InlineSpan{Kind: types.SpanText, Text: text[last:m[0]]})
		}
		out = append(out, types.InlineSpan{Kind: rule.kind, Text: text[m[2]:m[3]]})
		last = m[1]
	}
	if last < len(text) {
		out = append(out, types.InlineSpan{Kind: types.SpanText, Text: text[last:]})
	}
	return out
}

// PlainText drops formatting and returns the concatenated span text.
func PlainText(spans []types.InlineSpan) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Package structurer turns free-text assistant replies into typed content
// blocks for display.
package structurer

import (
	"regexp"
	"strings"

	"github.com/Riyasinha-01/Voyage/internal/types"
)

var (
	dayHeadingRe   = regexp.MustCompile(`(?i)^(\*{1,2})?(Day\s+\d+)`)
	dayBadgeRe     = regexp.MustCompile(`(?i)Day\s+\d+`)
	edgeBoldRe     = regexp.MustCompile(`^\*{1,2}|\*{1,2}$`)
	leadingHashRe  = regexp.MustCompile(`^#+\s*`)
	restLeadRe     = regexp.MustCompile(`^[\s\-–—:]+`)
	mdHeadingRe    = regexp.MustCompile(`^#{1,3}\s`)
	mdHeadingTrim  = regexp.MustCompile(`^#{1,3}\s+`)
	boldOnlyRe     = regexp.MustCompile(`^\*{2}.+\*{2}$`)
	bulletRe       = regexp.MustCompile(`^[-*•]\s`)
	bulletTrim     = regexp.MustCompile(`^[-*•]\s+`)
	numberedRe     = regexp.MustCompile(`^\d+\.\s`)
	numberedTrim   = regexp.MustCompile(`^\d+\.\s+`)
	keyValueLineRe = regexp.MustCompile(`^[A-Z][^:]{0,30}:\s`)
)

// Structure splits text into display blocks. It never fails: lines that match
// nothing more specific become paragraphs.
func Structure(text string) []types.ContentBlock {
	lines := strings.Split(text, "\n")
	blocks := make([]types.ContentBlock, 0, len(lines))
	var pending []types.ListItem

	flush := func() {
		if len(pending) == 0 {
			return
		}
		blocks = append(blocks, types.ContentBlock{Kind: types.BlockList, Items: pending})
		pending = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			continue
		}

		if dayHeadingRe.MatchString(trimmed) {
			flush()
			blocks = append(blocks, dayHeading(trimmed))
			continue
		}

		if mdHeadingRe.MatchString(trimmed) {
			flush()
			clean := mdHeadingTrim.ReplaceAllString(trimmed, "")
			blocks = append(blocks, types.ContentBlock{
				Kind:  types.BlockSectionTitle,
				Text:  clean,
				Spans: InlineFormat(clean),
			})
			continue
		}

		if isBoldOnly(trimmed) {
			flush()
			blocks = append(blocks, types.ContentBlock{
				Kind: types.BlockBoldLabel,
				Text: trimmed[2 : len(trimmed)-2],
			})
			continue
		}

		if bulletRe.MatchString(trimmed) {
			item := bulletTrim.ReplaceAllString(trimmed, "")
			pending = append(pending, types.ListItem{Text: item, Spans: InlineFormat(item)})
			continue
		}

		if numberedRe.MatchString(trimmed) {
			item := numberedTrim.ReplaceAllString(trimmed, "")
			pending = append(pending, types.ListItem{Text: item, Spans: InlineFormat(item)})
			continue
		}

		if keyValueLineRe.MatchString(trimmed) && !strings.HasPrefix(trimmed, "http") {
			flush()
			colon := strings.Index(trimmed, ":")
			key := trimmed[:colon]
			val := strings.TrimSpace(trimmed[colon+1:])
			blocks = append(blocks, types.ContentBlock{
				Kind:  types.BlockKeyValue,
				Key:   key,
				Value: val,
				Spans: InlineFormat(val),
			})
			continue
		}

		flush()
		blocks = append(blocks, types.ContentBlock{
			Kind:  types.BlockParagraph,
			Text:  trimmed,
			Spans: InlineFormat(trimmed),
		})
	}

	flush()
	return blocks
}

// dayHeading splits a "Day N" line into its badge and trailing label.
func dayHeading(line string) types.ContentBlock {
	clean := edgeBoldRe.ReplaceAllString(line, "")
	clean = leadingHashRe.ReplaceAllString(clean, "")
	clean = strings.TrimSuffix(clean, ":")

	badge := dayBadgeRe.FindString(clean)
	rest := strings.Replace(clean, badge, "", 1)
	rest = strings.ReplaceAll(rest, "**", "")
	rest = restLeadRe.ReplaceAllString(rest, "")
	rest = strings.TrimSuffix(strings.TrimSpace(rest), ":")

	return types.ContentBlock{Kind: types.BlockDayHeading, Badge: badge, Rest: rest}
}

// isBoldOnly reports whether the whole line is one **bold** span.
func isBoldOnly(line string) bool {
	if !boldOnlyRe.MatchString(line) || len(line) < 5 {
		return false
	}
	inner := line[2 : len(line)-2]
	return !strings.Contains(inner, "**") && !strings.Contains(line, " ** ")
}

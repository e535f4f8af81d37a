package structurer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riyasinha-01/Voyage/internal/types"
)

func TestStructure_ItineraryScenario(t *testing.T) {
	text := "Day 1: Arrive in Paris\n- Visit the Louvre\n- Walk along the Seine\n\nDestination: Paris"

	blocks := Structure(text)
	require.Len(t, blocks, 3)

	assert.Equal(t, types.BlockDayHeading, blocks[0].Kind)
	assert.Equal(t, "Day 1", blocks[0].Badge)
	assert.Equal(t, "Arrive in Paris", blocks[0].Rest)

	assert.Equal(t, types.BlockList, blocks[1].Kind)
	assert.Equal(t, []string{"Visit the Louvre", "Walk along the Seine"}, blocks[1].ItemTexts())

	assert.Equal(t, types.BlockKeyValue, blocks[2].Kind)
	assert.Equal(t, "Destination", blocks[2].Key)
	assert.Equal(t, "Paris", blocks[2].Value)
}

func TestStructure_Lists(t *testing.T) {
	t.Run("mixed bullet styles share one list", func(t *testing.T) {
		blocks := Structure("- ramen\n1. sushi\n• tempura\n* mochi")
		require.Len(t, blocks, 1)
		assert.Equal(t, []string{"ramen", "sushi", "tempura", "mochi"}, blocks[0].ItemTexts())
	})

	t.Run("blank line flushes", func(t *testing.T) {
		blocks := Structure("- a\n\n- b")
		require.Len(t, blocks, 2)
		assert.Equal(t, []string{"a"}, blocks[0].ItemTexts())
		assert.Equal(t, []string{"b"}, blocks[1].ItemTexts())
	})

	t.Run("non list line flushes", func(t *testing.T) {
		blocks := Structure("- a\nthen we rest\n- b")
		require.Len(t, blocks, 3)
		assert.Equal(t, types.BlockList, blocks[0].Kind)
		assert.Equal(t, types.BlockParagraph, blocks[1].Kind)
		assert.Equal(t, types.BlockList, blocks[2].Kind)
	})

	t.Run("list at end of input is flushed", func(t *testing.T) {
		blocks := Structure("Packing list\n- passport\n- adapter")
		require.Len(t, blocks, 2)
		assert.Equal(t, []string{"passport", "adapter"}, blocks[1].ItemTexts())
	})

	t.Run("items keep inline formatting", func(t *testing.T) {
		blocks := Structure("- try **okonomiyaki**")
		require.Len(t, blocks, 1)
		require.Len(t, blocks[0].Items, 1)
		assert.Equal(t, []types.InlineSpan{
			{Kind: types.SpanText, Text: "try "},
			{Kind: types.SpanBold, Text: "okonomiyaki"},
		}, blocks[0].Items[0].Spans)
	})
}

func TestStructure_DayHeadings(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		badge string
		rest  string
	}{
		{"plain colon", "Day 1: Arrive in Paris", "Day 1", "Arrive in Paris"},
		{"bold wrapped", "**Day 2**", "Day 2", ""},
		{"bold with label", "**Day 2:** Kyoto temples", "Day 2", "Kyoto temples"},
		{"lower case with dash", "day 3 – Osaka", "day 3", "Osaka"},
		{"trailing colon", "Day 10 Departure:", "Day 10", "Departure"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blocks := Structure(tc.line)
			require.Len(t, blocks, 1)
			assert.Equal(t, types.BlockDayHeading, blocks[0].Kind)
			assert.Equal(t, tc.badge, blocks[0].Badge)
			assert.Equal(t, tc.rest, blocks[0].Rest)
		})
	}
}

func TestStructure_LineKinds(t *testing.T) {
	t.Run("markdown heading", func(t *testing.T) {
		blocks := Structure("## Budget **Breakdown**")
		require.Len(t, blocks, 1)
		assert.Equal(t, types.BlockSectionTitle, blocks[0].Kind)
		assert.Equal(t, "Budget **Breakdown**", blocks[0].Text)
		assert.Equal(t, []types.InlineSpan{
			{Kind: types.SpanText, Text: "Budget "},
			{Kind: types.SpanBold, Text: "Breakdown"},
		}, blocks[0].Spans)
	})

	t.Run("four hashes is not a heading", func(t *testing.T) {
		blocks := Structure("#### deep")
		require.Len(t, blocks, 1)
		assert.Equal(t, types.BlockParagraph, blocks[0].Kind)
	})

	t.Run("bold only label", func(t *testing.T) {
		blocks := Structure("**Tips for travellers**")
		require.Len(t, blocks, 1)
		assert.Equal(t, types.BlockBoldLabel, blocks[0].Kind)
		assert.Equal(t, "Tips for travellers", blocks[0].Text)
	})

	t.Run("two bold spans are a paragraph", func(t *testing.T) {
		blocks := Structure("**Tokyo** and **Kyoto**")
		require.Len(t, blocks, 1)
		assert.Equal(t, types.BlockParagraph, blocks[0].Kind)
	})

	t.Run("key value with formatted value", func(t *testing.T) {
		blocks := Structure("Estimated Budget: **$1,200**")
		require.Len(t, blocks, 1)
		assert.Equal(t, types.BlockKeyValue, blocks[0].Kind)
		assert.Equal(t, "Estimated Budget", blocks[0].Key)
		assert.Equal(t, "**$1,200**", blocks[0].Value)
		assert.Equal(t, []types.InlineSpan{{Kind: types.SpanBold, Text: "$1,200"}}, blocks[0].Spans)
	})

	t.Run("long key falls through to paragraph", func(t *testing.T) {
		blocks := Structure("This is a very long sentence that goes on: and on")
		require.Len(t, blocks, 1)
		assert.Equal(t, types.BlockParagraph, blocks[0].Kind)
	})

	t.Run("colon without trailing value is a paragraph", func(t *testing.T) {
		blocks := Structure("Destination:")
		require.Len(t, blocks, 1)
		assert.Equal(t, types.BlockParagraph, blocks[0].Kind)
	})
}

func TestStructure_OneBlockPerLine(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"Hello",
		"Day 1: Lisbon\n- Alfama\n- Belém\n2. Sintra\n\n## Food\nTry *pastel de nata*\nCost: 5 EUR\n**Note**\n",
		"  indented line  \n\t- tabbed bullet\n1. one\n\nKey: value\nplain",
	}
	for _, in := range inputs {
		blocks := Structure(in)

		nonBlank := 0
		for _, line := range strings.Split(in, "\n") {
			if strings.TrimSpace(line) != "" {
				nonBlank++
			}
		}
		covered := 0
		for _, b := range blocks {
			if b.Kind == types.BlockList {
				covered += len(b.Items)
				continue
			}
			covered++
		}
		assert.Equal(t, nonBlank, covered, "input %q", in)
	}
}

func TestStructure_PreservesOrder(t *testing.T) {
	blocks := Structure("Intro line\nDay 1: Porto\n- Ribeira\nTotal: 300 EUR")
	kinds := make([]types.BlockKind, 0, len(blocks))
	for _, b := range blocks {
		kinds = append(kinds, b.Kind)
	}
	assert.Equal(t, []types.BlockKind{
		types.BlockParagraph,
		types.BlockDayHeading,
		types.BlockList,
		types.BlockKeyValue,
	}, kinds)
}

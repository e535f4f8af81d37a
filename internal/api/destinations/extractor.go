// Package destinations scores capitalized phrases in assistant replies to
// guess which places the reply is about.
package destinations

import (
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/Riyasinha-01/Voyage/internal/types"
)

// Weights is the additive score each heuristic contributes per match.
type Weights struct {
	VerbPhrase  int
	Preposition int
	Bold        int
	List        int
	KeyValue    int
}

// DefaultWeights are the empirically tuned defaults.
var DefaultWeights = Weights{
	VerbPhrase:  3,
	Preposition: 1,
	Bold:        4,
	List:        2,
	KeyValue:    5,
}

const DefaultMaxResults = 6

// DefaultStopWords are capitalized tokens that keep showing up next to
// travel phrasing without being places.
var DefaultStopWords = []string{
	"The", "This", "That", "These", "Those", "There", "Here", "Then", "When",
	"What", "Where", "Which", "While", "With", "Your", "You", "They", "We",
	"It", "Its", "If", "In", "On", "At", "To", "For", "From", "And", "But",
	"Or", "Of", "By", "As", "An", "A", "I", "My", "Our", "Some", "Many",
	"Most", "Also", "Each", "Every", "All", "Any", "Both", "After", "Before",
	"During", "Day", "Days", "Night", "Nights", "Morning", "Afternoon",
	"Evening", "Lunch", "Dinner", "Breakfast", "Brunch", "Note", "Notes",
	"Tip", "Tips", "Budget", "Cost", "Costs", "Total", "Price", "Stay",
	"Food", "Transport", "Transportation", "Accommodation", "Activities",
	"Activity", "Itinerary", "Overview", "Summary", "Option", "Options",
	"Hotel", "Hostel", "Restaurant", "Cafe", "Museum", "Free", "Mid", "Range",
	"Luxury", "Low", "Medium", "High", "Optional", "Recommended", "Highlights",
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
	"Sunday", "January", "February", "March", "April", "May", "June", "July",
	"August", "September", "October", "November", "December", "Spring",
	"Summer", "Autumn", "Fall", "Winter", "Vegetarian", "Vegan", "Enjoy",
	"Visit", "Explore", "Start", "Head", "Take", "Try", "Check", "Return",
	"Arrive", "Depart", "Departure", "Arrival", "Welcome", "Great", "Best",
	"Local", "Traditional", "Cultural", "Adventure", "Relaxation", "Nightlife",
	"Plan", "Trip", "Travel", "Tour", "Walk", "Walking", "Day Trip",
	"Destination", "Location", "Place", "City", "Town", "Region", "Area",
}

// DefaultLabelStopWords are structural labels that get bolded in itineraries.
var DefaultLabelStopWords = []string{
	"Day", "Note", "Cost", "Budget", "Stay", "Food", "Transport", "Total",
	"Activities", "Mid", "Range",
}

// place matches one to four capitalized words on a single line.
const place = `\p{Lu}[\p{L}'’.-]*[\p{L}](?:[ \t]+\p{Lu}[\p{L}'’.-]*[\p{L}]){0,3}`

type heuristic int

const (
	verbPhrase heuristic = iota
	preposition
	bold
	list
	keyValue
)

// pattern is one scoring rule. Every submatch group in regex is a candidate.
type pattern struct {
	regex *regexp.Regexp
	kind  heuristic
	name  string
}

var patterns = []pattern{
	{
		regex: regexp.MustCompile(`(?i:\b(?:visiting|visit|explore|exploring|arrive in|arriving in|arrive at|arrival in|days? in|nights? in|weekend in|trip to|travel to|travelling to|traveling to|journey to|fly to|flying to|head to|heading to|stay in|staying in|welcome to|tour of|heart of|city of|town of|island of|capital of|discover|discovering))[ \t]+(` + place + `)`),
		kind:  verbPhrase,
		name:  "verb_phrase",
	},
	{
		regex: regexp.MustCompile(`\b(?:in|to|at|near|around|across|through|via|from)[ \t]+(` + place + `)`),
		kind:  preposition,
		name:  "preposition",
	},
	{
		regex: regexp.MustCompile(`\*\*(\p{Lu}[^*\n]{1,50}?)\*\*`),
		kind:  bold,
		name:  "bold",
	},
	{
		regex: regexp.MustCompile(`(?:(` + place + `)[ \t]*)?(?:,[ \t]*and|,|\band)[ \t]+(` + place + `)`),
		kind:  list,
		name:  "list",
	},
	{
		regex: regexp.MustCompile(`(?m)^[ \t]*[-*•]?[ \t]*\**(?:Destination|Location|Place|City|Town|Region|Area)\**[ \t]*:[ \t]*\**[ \t]*([^\n]+)$`),
		kind:  keyValue,
		name:  "key_value",
	},
}

var (
	trailingNoiseRe = regexp.MustCompile(`[\s*.,;:!?'"’)\]]+$`)
	leadingNoiseRe  = regexp.MustCompile(`^[\s*'"‘(\[]+`)
	valueCutRe      = regexp.MustCompile(`[,(;–—]| - `)
)

// Extractor ranks destination candidates. The zero value is not usable; build
// one with NewExtractor.
type Extractor struct {
	weights    Weights
	maxResults int
	stopWords  map[string]struct{}
	labels     map[string]struct{}
}

type Option func(*Extractor)

func WithWeights(w Weights) Option {
	return func(e *Extractor) { e.weights = w }
}

func WithMaxResults(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxResults = n
		}
	}
}

// WithStopWords adds words to the default stop-word set.
func WithStopWords(words ...string) Option {
	return func(e *Extractor) {
		for _, w := range words {
			e.stopWords[strings.TrimSpace(w)] = struct{}{}
		}
	}
}

// WithLabelStopWords adds labels to the default bold-label stoplist.
func WithLabelStopWords(words ...string) Option {
	return func(e *Extractor) {
		for _, w := range words {
			e.labels[strings.TrimSpace(w)] = struct{}{}
		}
	}
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		weights:    DefaultWeights,
		maxResults: DefaultMaxResults,
		stopWords:  lo.SliceToMap(DefaultStopWords, func(w string) (string, struct{}) { return w, struct{}{} }),
		labels:     lo.SliceToMap(DefaultLabelStopWords, func(w string) (string, struct{}) { return w, struct{}{} }),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns up to MaxResults names ordered by descending score.
func (e *Extractor) Extract(text string) []string {
	return lo.Map(e.Candidates(text), func(c types.DestinationCandidate, _ int) string {
		return c.Name
	})
}

// Candidates is Extract with the scores kept.
func (e *Extractor) Candidates(text string) []types.DestinationCandidate {
	scores := make(map[string]int)
	var order []string

	add := func(raw string, weight int) {
		name := e.trimLeadingStopWords(normalize(raw))
		if e.rejected(name) {
			return
		}
		if _, seen := scores[name]; !seen {
			order = append(order, name)
		}
		scores[name] += weight
	}

	for _, p := range patterns {
		weight := e.weight(p.kind)
		for _, m := range p.regex.FindAllStringSubmatch(text, -1) {
			for _, group := range m[1:] {
				if group == "" {
					continue
				}
				switch p.kind {
				case bold:
					if e.isLabel(group) {
						continue
					}
				case keyValue:
					group = valueCutRe.Split(group, 2)[0]
				}
				add(group, weight)
			}
		}
	}

	ranked := make([]types.DestinationCandidate, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, types.DestinationCandidate{Name: name, Score: scores[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > e.maxResults {
		ranked = ranked[:e.maxResults]
	}
	return ranked
}

func (e *Extractor) weight(h heuristic) int {
	switch h {
	case verbPhrase:
		return e.weights.VerbPhrase
	case preposition:
		return e.weights.Preposition
	case bold:
		return e.weights.Bold
	case list:
		return e.weights.List
	case keyValue:
		return e.weights.KeyValue
	}
	return 0
}

func (e *Extractor) rejected(name string) bool {
	if len([]rune(name)) <= 2 {
		return true
	}
	_, stop := e.stopWords[name]
	return stop
}

// trimLeadingStopWords drops sentence-initial words such as "Explore" or
// "In" that the greedy place pattern pulls into a name. The last word is
// always kept.
func (e *Extractor) trimLeadingStopWords(name string) string {
	words := strings.Fields(name)
	i := 0
	for i < len(words)-1 {
		if _, stop := e.stopWords[words[i]]; !stop {
			break
		}
		i++
	}
	if i == 0 {
		return name
	}
	return strings.Join(words[i:], " ")
}

// isLabel reports whether a bold phrase is a structural label such as
// "Day 2" or "Budget:".
func (e *Extractor) isLabel(phrase string) bool {
	first := strings.FieldsFunc(normalize(phrase), func(r rune) bool {
		return r == ' ' || r == '\t' || r == ':' || r == '-'
	})
	if len(first) == 0 {
		return true
	}
	_, ok := e.labels[first[0]]
	return ok
}

// normalize trims whitespace, trailing punctuation and markdown asterisks.
func normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = leadingNoiseRe.ReplaceAllString(s, "")
	s = trailingNoiseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

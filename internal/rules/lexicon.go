package rules

import (
	"regexp"
	"sort"
	"strings"
)

// Lexicons holds the word lists the lexical rules match against.
// These are deployment data: callers may supply their own lists, and
// DefaultLexicons returns the shipped set.
type Lexicons struct {
	SpamPhrases        []string
	FluffPhrases       []string
	HedgePhrases       []string
	VagueDatePhrases   []string
	VagueNumberPhrases []string
	Misspellings       []string
	ClaimTriggers      []string
	CTAVerbs           []string
}

// DefaultLexicons returns the shipped deployment word lists.
func DefaultLexicons() Lexicons {
	return Lexicons{
		SpamPhrases: []string{
			"act now", "limited time", "buy now", "click here", "order now",
			"free", "win", "winner", "guaranteed", "no obligation", "urgent",
			"exclusive deal", "risk free", "cash bonus", "double your",
			"once in a lifetime", "don't miss out", "100% free",
		},
		FluffPhrases: []string{
			"really great", "really", "very", "actually", "basically",
			"just", "quite", "literally", "absolutely", "incredibly",
			"extremely", "totally", "truly", "super", "amazingly",
		},
		HedgePhrases: []string{
			"might", "could", "maybe", "perhaps", "possibly", "probably",
			"seems", "appears", "sort of", "kind of", "i think", "we think",
			"i believe", "we believe", "arguably", "likely",
		},
		VagueDatePhrases: []string{
			"soon", "recently", "shortly", "eventually", "in the near future",
			"at some point", "one day", "in a while", "any day now",
		},
		VagueNumberPhrases: []string{
			"a few", "several", "many", "a lot", "lots of", "tons of",
			"countless", "a number of", "a couple", "plenty of",
		},
		Misspellings: []string{
			"recieve", "seperate", "definately", "occured", "untill",
			"alot", "teh", "thier", "acheive", "wierd", "accomodate",
			"calender", "concensus", "embarass", "existance", "judgement",
			"priviledge", "recomend", "succesful", "tommorow",
		},
		ClaimTriggers: []string{
			"best", "fastest", "cheapest", "biggest", "leading", "top rated",
			"number one", "proven", "guaranteed", "everyone", "nobody",
			"always", "never", "revolutionary", "unmatched", "world class",
		},
		CTAVerbs: []string{
			"subscribe", "click", "join", "sign", "register", "download",
			"buy", "order", "learn", "discover", "get", "grab", "claim",
			"reserve", "book", "start", "try", "shop", "visit", "share",
			"follow", "reply", "read", "check", "explore",
		},
	}
}

// phrasePattern compiles a case-insensitive, word-bounded alternation of
// phrases. Longer phrases are listed first so "really great" wins over
// "really" at the same position.
func phrasePattern(phrases []string) *regexp.Regexp {
	sorted := make([]string, len(phrases))
	copy(sorted, phrases)
	sort.Slice(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	escaped := make([]string, 0, len(sorted))
	for _, p := range sorted {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		escaped = append(escaped, regexp.QuoteMeta(p))
	}
	if len(escaped) == 0 {
		// Match nothing.
		return regexp.MustCompile(`\b\B`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`)
}

// urlPattern locates URLs so rules can skip matches inside them.
var urlPattern = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s<>"]+`)

// urlSpans returns the [start,end) byte ranges of URLs in text.
func urlSpans(text string) [][]int {
	return urlPattern.FindAllStringIndex(text, -1)
}

// insideAny reports whether [start,end) intersects any of the spans.
func insideAny(spans [][]int, start, end int) bool {
	for _, sp := range spans {
		if start < sp[1] && sp[0] < end {
			return true
		}
	}
	return false
}

package derive

import (
	"regexp"
	"strings"
)

// Matcher is one named extraction strategy. Match reports the captured text
// and whether the strategy applied.
type Matcher struct {
	Name  string
	Match func(description string) (string, bool)
}

func regexMatcher(name, pattern string) Matcher {
	re := regexp.MustCompile(pattern)
	return Matcher{
		Name: name,
		Match: func(s string) (string, bool) {
			m := re.FindStringSubmatch(s)
			if m == nil {
				return "", false
			}
			return strings.TrimSpace(m[1]), true
		},
	}
}

var nameSeparators = []string{" - ", " – ", " | ", ": ", " / ", " for ", " FOR "}

func separatorMatcher() Matcher {
	return Matcher{
		Name: "leading-segment",
		Match: func(s string) (string, bool) {
			for _, sep := range nameSeparators {
				if i := strings.Index(s, sep); i >= 0 {
					if head := strings.TrimSpace(s[:i]); head != "" {
						return head, true
					}
				}
			}
			return "", false
		},
	}
}

func firstWordsMatcher(name string, n int) Matcher {
	return Matcher{
		Name: name,
		Match: func(s string) (string, bool) {
			words := strings.Fields(s)
			if len(words) < n {
				return "", false
			}
			return strings.Join(words[:n], " "), true
		},
	}
}

// propertyNameMatchers run most specific first; "Verde 13-2HZ NBRR" is the
// calibration shape for the first one.
var propertyNameMatchers = []Matcher{
	regexMatcher("well-designation", `(?i)([A-Za-z]+\s+\d+[-]\d*[A-Za-z]*\s+[A-Za-z]+)`),
	regexMatcher("horizontal-suffix", `(?i)([A-Za-z]+\s+\d+[-]\d*[Hh][Zz]?\s+[A-Za-z]+)`),
	regexMatcher("dash-h", `(?i)([A-Za-z]+\s+\d+[-]\d*[Hh])`),
	regexMatcher("dash-number", `(?i)([A-Za-z]+\s+\d+[-]\d+[Hh]?)`),
	regexMatcher("number-h", `(?i)([A-Za-z]+\s+\d+[Hh])`),
	regexMatcher("name-token", `(?i)([A-Za-z]+\s+[A-Za-z0-9\-]+)`),
	separatorMatcher(),
	firstWordsMatcher("first-two-words", 2),
	firstWordsMatcher("first-word", 1),
}

var propertyNumberMatchers = []Matcher{
	regexMatcher("six-digit-dash", `(\d{6}[-]\d+)`),
	regexMatcher("five-six-digit-dash", `(\d{5,6}[-]\d+)`),
	regexMatcher("four-six-digit-dash", `(\d{4,6}[-]\d+)`),
	regexMatcher("property-label", `(?i)Property\s*#?\s*(\d+[-]?\d*)`),
	regexMatcher("well-label", `(?i)Well\s*#?\s*(\d+[-]?\d*)`),
	regexMatcher("id-label", `(?i)ID\s*#?\s*(\d+[-]?\d*)`),
	regexMatcher("bare-digits", `(\d{3,})`),
}

// PropertyNameMatchers returns the property-name strategies in priority order.
func PropertyNameMatchers() []Matcher {
	return append([]Matcher(nil), propertyNameMatchers...)
}

// PropertyNumberMatchers returns the property-number strategies in priority order.
func PropertyNumberMatchers() []Matcher {
	return append([]Matcher(nil), propertyNumberMatchers...)
}

func firstMatch(matchers []Matcher, s string) (string, string, bool) {
	for _, m := range matchers {
		if v, ok := m.Match(s); ok && v != "" {
			return v, m.Name, true
		}
	}
	return "", "", false
}

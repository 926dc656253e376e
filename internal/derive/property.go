package derive

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/joseph-ayodele/revenue-parser/constants"
)

const UnknownProperty = "Unknown Property"

const (
	jitterSpan       = 0.05
	minOwnerInterest = 0.001
	maxOwnerInterest = 0.999
)

var propertyNoise = regexp.MustCompile(`(?i)\b(well|lease|unit|property)\b`)

// PropertyInfo is the best-effort metadata read from a line item description.
// None of it is sourced from the statement's own columns.
type PropertyInfo struct {
	Name          string
	Number        string
	Product       constants.ProductType
	Unit          string
	BTUFactor     float64
	OwnerInterest string // 9 decimal places, always inside (0,1)
}

// PropertyName applies the name matchers and strips generic words such as
// "well" or "lease" from the result.
func PropertyName(description string) string {
	raw := rawPropertyName(strings.TrimSpace(description))
	if name := cleanPropertyName(raw); name != "" {
		return name
	}
	return UnknownProperty
}

// rawPropertyName is the uncleaned matcher result, or "" when nothing matches.
func rawPropertyName(desc string) string {
	if v, _, ok := firstMatch(propertyNameMatchers, desc); ok {
		return v
	}
	return ""
}

// numberSeed is the name hashed into a synthetic property number.
func numberSeed(desc string) string {
	if raw := rawPropertyName(desc); raw != "" {
		return raw
	}
	return UnknownProperty
}

func cleanPropertyName(s string) string {
	return strings.Join(strings.Fields(propertyNoise.ReplaceAllString(s, "")), " ")
}

// PropertyNumber returns the first pattern match, or a number synthesized from
// name when the description carries none.
func PropertyNumber(description, name string) string {
	if v, _, ok := firstMatch(propertyNumberMatchers, description); ok {
		return v
	}
	return SyntheticPropertyNumber(name)
}

// SyntheticPropertyNumber derives a stable six digit number from name using a
// 32-bit rolling string hash, suffixed with "-1".
func SyntheticPropertyNumber(name string) string {
	var h int32
	for _, u := range utf16.Encode([]rune(name)) {
		h = (h << 5) - h + int32(u)
	}
	n := int64(h) % 900000
	if n < 0 {
		n = -n
	}
	return strconv.FormatInt(n+100000, 10) + "-1"
}

// InferProduct scans the description for product keywords in priority order
// and falls back to OIL.
func InferProduct(description string) constants.ProductProfile {
	text := strings.ToLower(description)
	for _, p := range constants.ProductProfiles() {
		for _, kw := range p.Keywords {
			if strings.Contains(text, kw) {
				return p
			}
		}
	}
	return constants.ProfileFor(constants.Oil)
}

// OwnerInterest perturbs base by up to half of jitterSpan in either direction.
// r is expected in [0,1).
func OwnerInterest(base, r float64) string {
	v := base + (r-0.5)*jitterSpan
	v = math.Max(minOwnerInterest, math.Min(maxOwnerInterest, v))
	return fmt.Sprintf("%.9f", v)
}

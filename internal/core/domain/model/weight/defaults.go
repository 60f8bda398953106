package weight

import "strings"

type keywordWeight struct {
	keyword string
	grams   int
}

// categoryKeywordWeights is scanned in order; the first keyword contained in
// the code wins.
var categoryKeywordWeights = []keywordWeight{
	{"pods", 30},
	{"pod", 30},
	{"coil", 20},
	{"coils", 20},
	{"60ml", 110},
	{"120ml", 180},
	{"device", 250},
	{"devices", 250},
	{"tank", 120},
	{"tanks", 120},
	{"accessor", 50},
	{"accessories", 50},
}

// KeywordDefault looks up a typical weight for a category or product type code.
func KeywordDefault(code string) (int, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return 0, false
	}
	for _, kw := range categoryKeywordWeights {
		if strings.Contains(code, kw.keyword) {
			return kw.grams, true
		}
	}
	return 0, false
}

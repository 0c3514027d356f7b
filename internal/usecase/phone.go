package usecase

import "strings"

// prefixStripLengths maps a country code to the total number of characters
// to drop from the front of the number, '+' included. Longest code wins.
// This is a best-effort heuristic for the sheet's NO PREFIX column, not an
// E.164 parser; unknown codes get the generic 3-character strip.
var prefixStripLengths = map[string]int{
	"1":   2,
	"39":  3,
	"44":  3,
	"33":  3,
	"49":  3,
	"34":  3,
	"420": 4,
	"358": 4,
}

const genericPrefixStrip = 3

// StripIntlPrefix returns the local variant of a phone number. Numbers
// without a leading '+' are returned untouched.
func StripIntlPrefix(phone string) string {
	if !strings.HasPrefix(phone, "+") {
		return phone
	}

	digits := phone[1:]
	strip := genericPrefixStrip
	longest := 0
	for code, n := range prefixStripLengths {
		if strings.HasPrefix(digits, code) && len(code) > longest {
			longest = len(code)
			strip = n
		}
	}
	if strip > len(phone) {
		return ""
	}
	return phone[strip:]
}

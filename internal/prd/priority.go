package prd

import "regexp"

var (
	highKeywords = regexp.MustCompile(`(?i)\b(?:must|critical|high|priority)\b`)
	lowKeywords  = regexp.MustCompile(`(?i)\b(?:nice|low|optional|should)\b`)
)

// Classify derives a priority from keywords in the item text. High keywords
// are checked first, so mixed text resolves to High.
func Classify(text string) Priority {
	switch {
	case highKeywords.MatchString(text):
		return PriorityHigh
	case lowKeywords.MatchString(text):
		return PriorityLow
	default:
		return PriorityMedium
	}
}

package prd

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// chain is an ordered list of extraction strategies; the first non-empty
// result wins.
type chain []func(doc string) string

func (c chain) run(doc string) string {
	for _, candidate := range c {
		if v := candidate(doc); v != "" {
			return v
		}
	}
	return ""
}

func fromSection(s *section) func(string) string {
	return s.Extract
}

// fromLine returns the trimmed first capture group of re.
func fromLine(re *regexp.Regexp) func(string) string {
	return func(doc string) string {
		if m := re.FindStringSubmatch(doc); m != nil {
			return strings.TrimSpace(m[1])
		}
		return ""
	}
}

func literal(s string) func(string) string {
	return func(string) string { return s }
}

var (
	projectLine = regexp.MustCompile(`(?im)^project(?:\s+name)?[:\s]+(.+)$`)
	topHeading  = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	nameLine    = regexp.MustCompile(`(?im)^name[:\s]+(.+)$`)
)

var projectNameChain = chain{
	fromLine(projectLine),
	fromLine(topHeading),
	fromLine(nameLine),
	literal(DefaultProjectName),
}

func extractProjectName(doc string) string {
	return projectNameChain.run(doc)
}

// minDescriptionLine is the length a bare line must exceed to stand in for a
// missing description section.
const minDescriptionLine = 20

var descriptionChain = chain{
	fromSection(newSection("Description")),
	fromSection(newSection("Overview")),
	fromSection(newSection("Summary")),
	firstProseLine,
	literal(DefaultDescription),
}

func extractDescription(doc string) string {
	return descriptionChain.run(doc)
}

func firstProseLine(doc string) string {
	for _, line := range strings.Split(doc, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if utf8.RuneCountInString(line) > minDescriptionLine {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

var techStackSections = chain{
	fromSection(newSection(`Tech(?:nology)?\s+Stack`)),
	fromSection(newSection("Technologies")),
	fromSection(newSection("Stack")),
}

// extractTechStack lists the technologies in document order. Marked list
// items are taken whole; unmarked lines and bodies with no items at all
// are split on commas.
func extractTechStack(doc string) []string {
	body := techStackSections.run(doc)
	if body == "" {
		return []string{}
	}
	items := listItems(body)
	if len(items) == 0 {
		return splitCommas(body, []string{})
	}
	out := []string{}
	for _, it := range items {
		if it.marked {
			out = append(out, it.text)
			continue
		}
		out = splitCommas(it.text, out)
	}
	return out
}

func splitCommas(s string, out []string) []string {
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

var featureSections = chain{
	fromSection(newSection("Features")),
	fromSection(newSection("Functionality")),
	fromSection(newSection("Requirements")),
}

func extractFeatures(doc string) []Feature {
	body := featureSections.run(doc)
	if body == "" {
		return []Feature{}
	}
	items := listItems(body)
	features := make([]Feature, 0, len(items))
	for _, it := range items {
		features = append(features, Feature{
			Title:       it.text,
			Description: it.text,
			Priority:    Classify(it.text),
		})
	}
	return features
}

// Package prd turns a free-form Product Requirements Document into a
// structured record. Parse keeps no state between calls and is safe for
// concurrent use.
package prd

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Priority is the urgency of a feature.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Placeholders used when a field cannot be found in the document.
const (
	DefaultProjectName = "Untitled Project"
	DefaultDescription = "No description provided"
)

// Feature is one requirement item from a Features-like section.
type Feature struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Priority    Priority `json:"priority" yaml:"priority"`
}

// ParsedPRD is the structured record extracted from a document.
// feature_count is derived from Features when serialized.
type ParsedPRD struct {
	ProjectName string
	Description string
	TechStack   []string
	Features    []Feature
}

// FeatureCount returns len(p.Features).
func (p ParsedPRD) FeatureCount() int {
	return len(p.Features)
}

// record is the wire shape of ParsedPRD. Slices are never nil so they
// serialize as [] rather than null.
type record struct {
	ProjectName  string    `json:"project_name" yaml:"project_name"`
	Description  string    `json:"description" yaml:"description"`
	TechStack    []string  `json:"tech_stack" yaml:"tech_stack"`
	Features     []Feature `json:"features" yaml:"features"`
	FeatureCount int       `json:"feature_count" yaml:"feature_count"`
}

func (p ParsedPRD) record() record {
	r := record{
		ProjectName:  p.ProjectName,
		Description:  p.Description,
		TechStack:    p.TechStack,
		Features:     p.Features,
		FeatureCount: len(p.Features),
	}
	if r.TechStack == nil {
		r.TechStack = []string{}
	}
	if r.Features == nil {
		r.Features = []Feature{}
	}
	return r
}

func (p ParsedPRD) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.record())
}

// UnmarshalJSON accepts the wire shape. feature_count is ignored because it
// is always recomputed from features.
func (p *ParsedPRD) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*p = ParsedPRD{
		ProjectName: r.ProjectName,
		Description: r.Description,
		TechStack:   r.TechStack,
		Features:    r.Features,
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p ParsedPRD) MarshalYAML() (any, error) {
	return p.record(), nil
}

// ParseError reports a fault in the extraction machinery itself. Missing
// sections or odd lines never produce one.
type ParseError struct {
	Excerpt string // leading part of the input
	Length  int    // input length in bytes
	Cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error parsing PRD: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Parse extracts a ParsedPRD from doc. Identical input always yields an
// identical record; absent fields fall back to the documented placeholders.
// The only error is *ParseError.
func Parse(doc string) (ParsedPRD, error) {
	return guard(doc, assemble)
}

func assemble(doc string) ParsedPRD {
	return ParsedPRD{
		ProjectName: extractProjectName(doc),
		Description: extractDescription(doc),
		TechStack:   extractTechStack(doc),
		Features:    extractFeatures(doc),
	}
}

// guard runs fn, converting a panic into a *ParseError.
func guard(doc string, fn func(string) ParsedPRD) (p ParsedPRD, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			p = ParsedPRD{}
			err = &ParseError{
				Excerpt: truncate(doc, 200),
				Length:  len(doc),
				Cause:   cause,
			}
		}
	}()
	return fn(doc), nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

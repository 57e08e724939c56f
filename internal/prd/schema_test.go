package prd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestValidate_ParsedRecordPasses(t *testing.T) {
	p, err := Parse(samplePRD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := Marshal(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(data); err != nil {
		t.Errorf("expected parsed record to validate, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing fields", `{"project_name":"X"}`},
		{"empty project name", `{"project_name":"","description":"d","tech_stack":[],"features":[],"feature_count":0}`},
		{"bad priority", `{"project_name":"X","description":"d","tech_stack":[],"features":[{"title":"a","description":"a","priority":"Urgent"}],"feature_count":1}`},
		{"null tech stack", `{"project_name":"X","description":"d","tech_stack":null,"features":[],"feature_count":0}`},
		{"count mismatch", `{"project_name":"X","description":"d","tech_stack":[],"features":[],"feature_count":2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.data))
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
			if len(se.Issues) == 0 {
				t.Error("expected at least one issue")
			}
		})
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	err := Validate([]byte(`{not json`))
	if err == nil {
		t.Fatal("expected error for malformed json")
	}
	var se *SchemaError
	if errors.As(err, &se) {
		t.Error("expected a decode error, not a schema error")
	}
}

func TestEncode_YAML(t *testing.T) {
	p, _ := Parse("# Todo App\n\nFeatures:\n- must support login\n")
	var buf bytes.Buffer
	if err := Encode(&buf, p, FormatYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"project_name: Todo App",
		"tech_stack: []",
		"- title: must support login",
		"priority: High",
		"feature_count: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected yaml to contain %q, got:\n%s", want, out)
		}
	}
}

func TestEncode_JSONEndsWithNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, ParsedPRD{ProjectName: "a", Description: "b"}, FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "}\n") {
		t.Errorf("expected trailing newline, got %q", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q): unexpected error state %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

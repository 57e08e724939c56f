package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const todoPRD = `# Todo App

## Description
A todo app for teams

## Features
- Must have login
- Optional dark mode

## Tech Stack
- Go
- SQLite
`

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestParse_Stdin(t *testing.T) {
	out, _, err := run(t, todoPRD, "parse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("expected json output, got %q: %v", out, err)
	}
	if got["project_name"] != "Todo App" {
		t.Errorf("expected project name %q, got %v", "Todo App", got["project_name"])
	}
	if got["feature_count"] != float64(2) {
		t.Errorf("expected feature_count 2, got %v", got["feature_count"])
	}
}

func TestParse_FileToOutputYAML(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "todo.md")
	outPath := filepath.Join(dir, "todo.yaml")
	if err := os.WriteFile(in, []byte(todoPRD), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := run(t, "", "parse", in, "--format", "yaml", "--output", outPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected nothing on stdout, got %q", stdout)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{"project_name: Todo App", "- Go", "priority: High", "feature_count: 2"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %q in yaml output:\n%s", want, data)
		}
	}
}

func TestParse_BadFormat(t *testing.T) {
	if _, _, err := run(t, todoPRD, "parse", "-", "--format", "toml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParse_UnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := run(t, "", "parse", path)
	if err == nil || !strings.Contains(err.Error(), "unsupported file extension") {
		t.Fatalf("expected unsupported extension error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(good, []byte(`{"project_name":"A","description":"B","tech_stack":["Go"],"features":[{"title":"x","description":"x","priority":"Medium"}],"feature_count":1}`), 0o644)
	os.WriteFile(bad, []byte(`{"project_name":"A","description":"B","tech_stack":[],"features":[{"title":"x","description":"x","priority":"Urgent"}],"feature_count":1}`), 0o644)

	out, _, err := run(t, "", "validate", good)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "valid") {
		t.Errorf("expected valid message, got %q", out)
	}

	_, stderr, err := run(t, "", "validate", bad)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(stderr, "priority") {
		t.Errorf("expected priority issue on stderr, got %q", stderr)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "prdparse version dev\n" {
		t.Errorf("unexpected version output %q", out)
	}
}

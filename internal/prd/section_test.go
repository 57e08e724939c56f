package prd

import "testing"

func TestSection_Extract(t *testing.T) {
	tests := []struct {
		name  string
		label string
		doc   string
		want  string
	}{
		{
			name:  "markdown heading until next heading",
			label: "Features",
			doc:   "# App\n## Features\n- one\n- two\n## Timeline\nsoon\n",
			want:  "- one\n- two",
		},
		{
			name:  "heading is case insensitive",
			label: "Features",
			doc:   "### FEATURES:\n- one\n",
			want:  "- one",
		},
		{
			name:  "heading runs to end of document",
			label: "Overview",
			doc:   "# Overview\nfirst line\n\nsecond line",
			want:  "first line\n\nsecond line",
		},
		{
			name:  "deeper heading does not end the section",
			label: "Features",
			doc:   "## Features\n- one\n#### detail\n- two\n",
			want:  "- one\n#### detail\n- two",
		},
		{
			name:  "plain label until next label line",
			label: "Features",
			doc:   "Features:\n- one\n- two\nTimeline:\nsoon\n",
			want:  "- one\n- two",
		},
		{
			name:  "plain label without colon",
			label: "Summary",
			doc:   "Summary\nshort summary, with punctuation.\n",
			want:  "short summary, with punctuation.",
		},
		{
			name:  "first body line is never a boundary",
			label: "Description",
			doc:   "Description:\nA todo app for teams\n",
			want:  "A todo app for teams",
		},
		{
			name:  "heading form wins over earlier plain label",
			label: "Features",
			doc:   "Features:\n- plain\n\n## Features\n- heading\n",
			want:  "- heading",
		},
		{
			name:  "label pattern",
			label: `Tech(?:nology)?\s+Stack`,
			doc:   "## Technology  Stack\n- Go\n",
			want:  "- Go",
		},
		{
			name:  "label must start the line",
			label: "Features",
			doc:   "Key Features:\n- one\n",
			want:  "",
		},
		{
			name:  "label must be alone on its line",
			label: "Features",
			doc:   "Features include:\n- one\n",
			want:  "",
		},
		{
			name:  "missing section",
			label: "Summary",
			doc:   "# App\nnothing here\n",
			want:  "",
		},
		{
			name:  "empty document",
			label: "Summary",
			doc:   "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newSection(tt.label).Extract(tt.doc)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

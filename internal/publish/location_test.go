package publish

import (
	"path/filepath"
	"testing"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantDir string
		wantStr string
		wantErr bool
	}{
		{
			name:    "chapter only",
			input:   "chapter3",
			wantDir: filepath.Join("chapters", "chapter3"),
			wantStr: "chapter3",
		},
		{
			name:    "chapter and section",
			input:   "chapter3\nsection2",
			wantDir: filepath.Join("chapters", "chapter3", "sections", "section2"),
			wantStr: "chapter3/section2",
		},
		{
			name:    "full depth",
			input:   "chapter4\nsection2\nsubsection1",
			wantDir: filepath.Join("chapters", "chapter4", "sections", "section2", "subsections", "subsection1"),
			wantStr: "chapter4/section2/subsection1",
		},
		{
			name:    "case and spaces normalized",
			input:   "Chapter 3\nSection 2",
			wantDir: filepath.Join("chapters", "chapter3", "sections", "section2"),
			wantStr: "chapter3/section2",
		},
		{
			name:    "blank segments dropped",
			input:   "chapter1\n\nsection1\n",
			wantDir: filepath.Join("chapters", "chapter1", "sections", "section1"),
			wantStr: "chapter1/section1",
		},
		{name: "empty", input: "", wantErr: true},
		{name: "only blanks", input: "\n \n", wantErr: true},
		{name: "too deep", input: "a\nb\nc\nd", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseLocation(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLocation(%q) returned error: %v", tt.input, err)
			}
			if got := loc.Dir("chapters"); got != tt.wantDir {
				t.Errorf("Dir = %q, want %q", got, tt.wantDir)
			}
			if got := loc.String(); got != tt.wantStr {
				t.Errorf("String = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

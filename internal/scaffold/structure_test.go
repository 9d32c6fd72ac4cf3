package scaffold

import (
	"os"
	"path/filepath"
	"testing"
)

const structureYAML = `chapter:
  chapter: 1
  num_sections: 2
  figs: true
sections:
  - section: 1
    num_subsections: 1
    figs: true
    tabs: true
  - section: 2
    num_subsections: 0
subsections:
  "1":
    - subsection: 1
      code: true
`

func TestLoadStructure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chapter.yaml")
	if err := os.WriteFile(path, []byte(structureYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := LoadStructure(path)
	if err != nil {
		t.Fatalf("LoadStructure returned error: %v", err)
	}
	if st.Chapter.Chapter != 1 || st.Chapter.NumSections != 2 || !st.Chapter.Figs {
		t.Errorf("unexpected chapter spec: %+v", st.Chapter)
	}
	if len(st.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(st.Sections))
	}
	if !st.Sections[0].Tabs || st.Sections[0].NumSubsections != 1 {
		t.Errorf("unexpected first section spec: %+v", st.Sections[0])
	}
	subs := st.Subsections["1"]
	if len(subs) != 1 || subs[0].Subsection != 1 || !subs[0].Code {
		t.Errorf("unexpected subsections for section 1: %+v", subs)
	}
}

func TestLoadStructureRejectsBadIdentifiers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chapter.yaml")
	if err := os.WriteFile(path, []byte("chapter:\n  chapter: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStructure(path); err == nil {
		t.Fatal("expected validation error for chapter number 0, got none")
	}
}

func TestLoadStructureMissingFile(t *testing.T) {
	if _, err := LoadStructure(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing structure file, got none")
	}
}

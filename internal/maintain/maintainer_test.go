package maintain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kingrea/texkeep/internal/config"
	"github.com/kingrea/texkeep/internal/latex"
	"github.com/kingrea/texkeep/internal/scaffold"
)

func newTestMaintainer(t *testing.T) (*Maintainer, *config.Config) {
	t.Helper()
	thesisDir := t.TempDir()
	cfg, err := config.NewConfig(thesisDir)
	if err != nil {
		t.Fatal(err)
	}
	return NewMaintainer(cfg, nil), cfg
}

func scaffoldChapter(t *testing.T, cfg *config.Config) {
	t.Helper()
	s := scaffold.NewScaffolder(cfg, latex.NewRenderer("chapters"), nil)
	chapter := scaffold.ChapterSpec{Chapter: 1, NumSections: 1}
	sections := []scaffold.SectionSpec{{Section: 1, NumSubsections: 1, Figs: true}}
	subsections := map[string][]scaffold.SubsectionSpec{"1": {{Subsection: 1}}}
	if err := s.InitChapterTree(chapter, sections, subsections); err != nil {
		t.Fatal(err)
	}
}

func TestCheckInputsOnFreshTreeReportsZero(t *testing.T) {
	m, cfg := newTestMaintainer(t)
	scaffoldChapter(t, cfg)

	findings, err := m.CheckInputs(cfg.ThesisDir)
	if err != nil {
		t.Fatalf("CheckInputs returned error: %v", err)
	}
	if m.Counter() != 0 {
		t.Errorf("expected zero broken references, got %d", m.Counter())
	}
	if len(findings) != 0 {
		t.Errorf("expected no findings, got %+v", findings)
	}
}

func TestCheckInputsCountsMissingTargets(t *testing.T) {
	m, cfg := newTestMaintainer(t)
	scaffoldChapter(t, cfg)

	sectionFile := filepath.Join(cfg.ChaptersDir(), "chapter1", "sections", "section1", "section1.tex")
	appendText(t, sectionFile, "\n\\input{chapters/chapter1/figs/ghost.tex}\n")

	findings, err := m.CheckInputs(cfg.ThesisDir)
	if err != nil {
		t.Fatalf("CheckInputs returned error: %v", err)
	}
	if m.Counter() != 1 {
		t.Errorf("expected counter == 1, got %d", m.Counter())
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %+v", findings)
	}
	if findings[0].Kind != FindingMissingInclude {
		t.Errorf("unexpected finding kind %q", findings[0].Kind)
	}
	if findings[0].Path != "chapters/chapter1/figs/ghost.tex" {
		t.Errorf("unexpected finding path %q", findings[0].Path)
	}
	if findings[0].Source != sectionFile {
		t.Errorf("unexpected finding source %q", findings[0].Source)
	}
}

func TestCheckMain(t *testing.T) {
	m, cfg := newTestMaintainer(t)
	scaffoldChapter(t, cfg)

	mainText := "\\documentclass{scrbook}\n" +
		"\\begin{document}\n" +
		"\\input{chapters/chapter1/chapter1.tex}\n" +
		"\\input{chapters/chapter9/chapter9.tex}\n" +
		"\\end{document}\n"
	if err := os.WriteFile(cfg.MainFile(), []byte(mainText), 0o644); err != nil {
		t.Fatal(err)
	}

	findings, err := m.CheckMain()
	if err != nil {
		t.Fatalf("CheckMain returned error: %v", err)
	}
	if got := m.Counter(); got != 0 {
		t.Errorf("CheckMain must not touch the counter, got %d", got)
	}
	var missing, unreferenced int
	for _, f := range findings {
		switch f.Kind {
		case FindingMainMissingInclude:
			missing++
			if f.Path != "chapters/chapter9/chapter9.tex" {
				t.Errorf("unexpected missing include %q", f.Path)
			}
		case FindingUnreferencedChapter:
			unreferenced++
		}
	}
	if missing != 1 {
		t.Errorf("expected 1 missing root include, got %d", missing)
	}
	// chapter1.tex is referenced; nothing else lives under chapters/.
	if unreferenced != 0 {
		t.Errorf("expected no unreferenced chapter files, got %d", unreferenced)
	}
}

func TestCheckMainReportsUnreferencedChapterFiles(t *testing.T) {
	m, cfg := newTestMaintainer(t)
	scaffoldChapter(t, cfg)

	if err := os.WriteFile(cfg.MainFile(), []byte("\\documentclass{scrbook}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	findings, err := m.CheckMain()
	if err != nil {
		t.Fatalf("CheckMain returned error: %v", err)
	}
	found := false
	for _, f := range findings {
		if f.Kind == FindingUnreferencedChapter && f.Path == "chapters/chapter1/chapter1.tex" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected chapter1.tex to be reported as unreferenced, findings: %+v", findings)
	}
}

func TestCheckMainMissingRootDocumentIsFatal(t *testing.T) {
	m, _ := newTestMaintainer(t)
	if _, err := m.CheckMain(); err == nil {
		t.Fatal("expected error for missing root document, got none")
	}
}

func TestCleanup(t *testing.T) {
	m, cfg := newTestMaintainer(t)
	empty := filepath.Join(cfg.ThesisDir, "chapters", "chapter1", "figs")
	if err := os.MkdirAll(empty, 0o755); err != nil {
		t.Fatal(err)
	}
	full := filepath.Join(cfg.ThesisDir, "chapters", "chapter1", "tabs")
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(full, "t.tex"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	findings, err := m.Cleanup(cfg.ThesisDir, false)
	if err != nil {
		t.Fatalf("Cleanup returned error: %v", err)
	}
	if len(findings) != 1 || findings[0].Path != empty {
		t.Fatalf("expected the empty figs dir to be reported, got %+v", findings)
	}
	if _, err := os.Stat(empty); err != nil {
		t.Error("report-only cleanup must not delete")
	}

	if _, err := m.Cleanup(cfg.ThesisDir, true); err != nil {
		t.Fatalf("Cleanup(delete) returned error: %v", err)
	}
	if _, err := os.Stat(empty); err == nil {
		t.Error("expected empty dir to be deleted")
	}
	if _, err := os.Stat(full); err != nil {
		t.Error("non-empty dir must survive cleanup")
	}
}

func TestFindInputs(t *testing.T) {
	m, cfg := newTestMaintainer(t)
	path := filepath.Join(cfg.ThesisDir, "sample.tex")
	text := "intro\n\\input{chapters/a.tex}\nmiddle\n\\input{chapters/b.tex}\n"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	inputs, err := m.FindInputs(path)
	if err != nil {
		t.Fatalf("FindInputs returned error: %v", err)
	}
	want := []string{"chapters/a.tex", "chapters/b.tex"}
	if len(inputs) != len(want) {
		t.Fatalf("expected %d inputs, got %v", len(want), inputs)
	}
	for i := range want {
		if inputs[i] != want[i] {
			t.Errorf("inputs[%d] = %q, want %q", i, inputs[i], want[i])
		}
	}
}

func TestScanAggregatesAndResets(t *testing.T) {
	m, cfg := newTestMaintainer(t)
	scaffoldChapter(t, cfg)
	if err := os.WriteFile(cfg.MainFile(), []byte("\\input{chapters/chapter1/chapter1.tex}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chapterFile := filepath.Join(cfg.ChaptersDir(), "chapter1", "chapter1.tex")
	appendText(t, chapterFile, "\n\\input{chapters/chapter1/missing.tex}\n")

	report, err := m.Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if report.BrokenIncludes != 1 {
		t.Errorf("expected 1 broken include, got %d", report.BrokenIncludes)
	}

	// Repeated scans do not accumulate.
	report, err = m.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if report.BrokenIncludes != 1 {
		t.Errorf("expected counter reset between scans, got %d", report.BrokenIncludes)
	}
}

func appendText(t *testing.T, path, text string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString(text); err != nil {
		t.Fatal(err)
	}
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"

	"github.com/kingrea/texkeep/internal/config"
	"github.com/kingrea/texkeep/internal/maintain"
)

func newTestWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	thesisDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(thesisDir, "main.tex"), []byte("\\documentclass{scrbook}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.NewConfig(thesisDir)
	if err != nil {
		t.Fatal(err)
	}
	w, err := New(cfg, maintain.NewMaintainer(cfg, nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	return w, thesisDir
}

func TestRelevant(t *testing.T) {
	w, _ := newTestWatcher(t)
	defer w.fsw.Close()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"tex write", fsnotify.Event{Name: "/t/chapters/chapter1/chapter1.tex", Op: fsnotify.Write}, true},
		{"tex create", fsnotify.Event{Name: "/t/chapters/chapter1/section1.tex", Op: fsnotify.Create}, true},
		{"tex remove", fsnotify.Event{Name: "/t/chapters/chapter1/old.tex", Op: fsnotify.Remove}, true},
		{"tex rename", fsnotify.Event{Name: "/t/chapters/chapter1/moved.tex", Op: fsnotify.Rename}, true},
		{"directory create", fsnotify.Event{Name: "/t/chapters/chapter2", Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: "/t/chapters/chapter1/chapter1.tex", Op: fsnotify.Chmod}, false},
		{"dotfile", fsnotify.Event{Name: "/t/.main.tex.swp", Op: fsnotify.Write}, false},
		{"other extension", fsnotify.Event{Name: "/t/figures/plot.png", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v %s) = %v, want %v", tt.event.Op, tt.event.Name, got, tt.want)
			}
		})
	}
}

func TestStartAndStop(t *testing.T) {
	w, _ := newTestWatcher(t)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	w.Stop()
}

func TestRescanReplacesPendingReport(t *testing.T) {
	w, thesisDir := newTestWatcher(t)
	defer w.fsw.Close()

	w.rescan()
	// A second scan with a new broken include must win over the unread one.
	appendLine := "\\input{chapters/chapter9/missing.tex}\n"
	f, err := os.OpenFile(filepath.Join(thesisDir, "main.tex"), os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(appendLine); err != nil {
		t.Fatal(err)
	}
	f.Close()
	w.rescan()

	report := <-w.Reports()
	if report.BrokenIncludes != 1 {
		t.Errorf("expected the newer report with 1 broken include, got %d", report.BrokenIncludes)
	}
	select {
	case extra := <-w.Reports():
		t.Errorf("expected a single pending report, got a second one: %+v", extra)
	default:
	}
}

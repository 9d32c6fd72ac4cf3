// Package maintain checks referential integrity between the thesis document
// tree and the filesystem: every \input{} target must exist, every chapter
// file should be referenced from the root document, and empty directories
// are reported or removed.
package maintain

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kingrea/texkeep/internal/config"
	"github.com/kingrea/texkeep/internal/logging"
)

// inputPattern captures the text between "input{" and the next "}".
// This is deliberately not a LaTeX parse.
var inputPattern = regexp.MustCompile(`input\{([^}]*)\}`)

// Maintainer scans a thesis tree for broken \input{} references. It carries
// a running counter of missing targets across a scan; the filesystem is the
// single source of truth and every check re-reads from disk.
type Maintainer struct {
	thesisDir   string
	chaptersDir string
	mainFile    string
	texExt      string
	log         *logging.Logger
	counter     int
}

// NewMaintainer builds a maintainer for the given thesis configuration.
func NewMaintainer(cfg *config.Config, log *logging.Logger) *Maintainer {
	return &Maintainer{
		thesisDir:   cfg.ThesisDir,
		chaptersDir: cfg.ChaptersDir(),
		mainFile:    cfg.MainFile(),
		texExt:      cfg.TexExtension(),
		log:         log,
	}
}

// Counter returns the number of \input{} targets found missing so far.
func (m *Maintainer) Counter() int {
	return m.counter
}

// ResetCounter clears the missing-target counter before a fresh scan.
func (m *Maintainer) ResetCounter() {
	m.counter = 0
}

// CheckInputs recursively descends root; for every .tex file it extracts
// the \input{} targets and tests their existence against the thesis root.
// Missing targets increment the counter and are returned as findings.
// Empty directories are skipped, not descended.
func (m *Maintainer) CheckInputs(root string) ([]Finding, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("maintain: read dir %s: %w", root, err)
	}
	var findings []Finding
	for _, entry := range entries {
		child := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			empty, err := isEmptyDir(child)
			if err != nil {
				return nil, err
			}
			if empty {
				continue
			}
			sub, err := m.CheckInputs(child)
			if err != nil {
				return nil, err
			}
			findings = append(findings, sub...)
			continue
		}
		if !strings.Contains(entry.Name(), m.texExt) {
			continue
		}
		inputs, err := m.FindInputs(child)
		if err != nil {
			return nil, err
		}
		for _, input := range inputs {
			target := filepath.Join(m.thesisDir, filepath.FromSlash(input))
			if _, err := os.Stat(target); err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					return nil, fmt.Errorf("maintain: stat %s: %w", target, err)
				}
				m.counter++
				m.log.Warn("file %s is included in %s but does not exist!", target, child)
				findings = append(findings, Finding{
					Kind:   FindingMissingInclude,
					Path:   input,
					Source: child,
				})
				continue
			}
			m.log.Debug("file %s is included in %s and exists", target, child)
		}
	}
	return findings, nil
}

// CheckMain reads the root document, reports whether each of its \input{}
// targets resolves, and lists chapter files on disk that the root document
// never references. Neither case touches the counter.
func (m *Maintainer) CheckMain() ([]Finding, error) {
	data, err := os.ReadFile(m.mainFile)
	if err != nil {
		return nil, fmt.Errorf("maintain: read %s: %w", m.mainFile, err)
	}
	included := map[string]bool{}
	var findings []Finding
	for _, match := range inputPattern.FindAllStringSubmatch(string(data), -1) {
		input := match[1]
		included[path.Clean(input)] = true
		target := filepath.Join(m.thesisDir, filepath.FromSlash(input))
		if _, err := os.Stat(target); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("maintain: stat %s: %w", target, err)
			}
			m.log.Warn("%s does not exist but is included in %s!", target, m.mainFile)
			findings = append(findings, Finding{
				Kind:   FindingMainMissingInclude,
				Path:   input,
				Source: m.mainFile,
			})
			continue
		}
		m.log.Debug("%s exists and is included in %s", target, m.mainFile)
	}

	chapterFiles, err := filepath.Glob(filepath.Join(m.chaptersDir, "chapter*", "*"+m.texExt))
	if err != nil {
		return nil, fmt.Errorf("maintain: glob chapter files: %w", err)
	}
	for _, chapterFile := range chapterFiles {
		rel, err := filepath.Rel(m.thesisDir, chapterFile)
		if err != nil {
			return nil, fmt.Errorf("maintain: relativize %s: %w", chapterFile, err)
		}
		rel = filepath.ToSlash(rel)
		if included[rel] {
			continue
		}
		m.log.Warn("%s is not referenced from %s", chapterFile, m.mainFile)
		findings = append(findings, Finding{
			Kind: FindingUnreferencedChapter,
			Path: rel,
		})
	}
	return findings, nil
}

// Cleanup recursively finds directories with no contents. When delete is
// true they are removed, otherwise only reported.
func (m *Maintainer) Cleanup(root string, delete bool) ([]Finding, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("maintain: read dir %s: %w", root, err)
	}
	var findings []Finding
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		child := filepath.Join(root, entry.Name())
		empty, err := isEmptyDir(child)
		if err != nil {
			return nil, err
		}
		if !empty {
			sub, err := m.Cleanup(child, delete)
			if err != nil {
				return nil, err
			}
			findings = append(findings, sub...)
			continue
		}
		m.log.Debug("%s is empty!", child)
		findings = append(findings, Finding{Kind: FindingEmptyDir, Path: child})
		if delete {
			if err := os.RemoveAll(child); err != nil {
				return nil, fmt.Errorf("maintain: remove %s: %w", child, err)
			}
			m.log.Debug("%s is deleted since delete=true", child)
		} else {
			m.log.Debug("%s is not deleted since delete=false", child)
		}
	}
	return findings, nil
}

// FindInputs extracts all \input{} targets from the given file.
func (m *Maintainer) FindInputs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("maintain: read %s: %w", path, err)
	}
	matches := inputPattern.FindAllStringSubmatch(string(data), -1)
	inputs := make([]string, 0, len(matches))
	for _, match := range matches {
		inputs = append(inputs, match[1])
	}
	return inputs, nil
}

func isEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("maintain: read dir %s: %w", dir, err)
	}
	return len(entries) == 0, nil
}

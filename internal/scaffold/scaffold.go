package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kingrea/texkeep/internal/config"
	"github.com/kingrea/texkeep/internal/latex"
	"github.com/kingrea/texkeep/internal/logging"
)

// Scaffolder builds chapter directory trees under the configured chapters
// directory and fills them with template files.
type Scaffolder struct {
	chaptersDir string
	texExt      string
	renderer    *latex.Renderer
	log         *logging.Logger
}

// NewScaffolder builds a scaffolder for the given thesis configuration.
func NewScaffolder(cfg *config.Config, renderer *latex.Renderer, log *logging.Logger) *Scaffolder {
	return &Scaffolder{
		chaptersDir: cfg.ChaptersDir(),
		texExt:      cfg.TexExtension(),
		renderer:    renderer,
		log:         log,
	}
}

// InitChapterTree creates the directory tree and template files for one
// chapter. Child template files are written depth-first before the parent
// text that references them is persisted, so a written parent never carries
// a dangling \input{} reference.
//
// Re-running against an existing chapter directory is an error, not a no-op.
func (s *Scaffolder) InitChapterTree(chapter ChapterSpec, sections []SectionSpec, subsections map[string][]SubsectionSpec) error {
	if chapter.NumSections != len(sections) {
		return fmt.Errorf("scaffold: number of sections does not match: expected %d, got %d",
			chapter.NumSections, len(sections))
	}

	chapterName := "chapter" + strconv.Itoa(chapter.Chapter)
	chapterPath := filepath.Join(s.chaptersDir, chapterName)
	if err := os.MkdirAll(s.chaptersDir, 0o755); err != nil {
		return fmt.Errorf("scaffold: ensure chapters dir: %w", err)
	}
	if err := os.Mkdir(chapterPath, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			s.log.Error("%s already exists! Maybe you want to create a new chapter?", chapterPath)
			return fmt.Errorf("scaffold: %s already exists", chapterPath)
		}
		return fmt.Errorf("scaffold: create chapter dir: %w", err)
	}
	chapterFile := filepath.Join(chapterPath, chapterName+s.texExt)

	if err := s.CreateSubfolders(chapterPath, chapter.subfolders()); err != nil {
		return err
	}

	chapterText := s.renderer.Chapter(chapterName, chapterName)

	if chapter.NumSections != 0 {
		secRoot := filepath.Join(chapterPath, "sections")
		if err := os.MkdirAll(secRoot, 0o755); err != nil {
			return fmt.Errorf("scaffold: create sections dir: %w", err)
		}
		for _, section := range sections {
			secName := "section" + strconv.Itoa(section.Section)
			secSubs := subsections[strconv.Itoa(section.Section)]
			if section.NumSubsections != len(secSubs) {
				return fmt.Errorf("scaffold: %s: number of subsections does not match: expected %d, got %d",
					secName, section.NumSubsections, len(secSubs))
			}
			secDir := filepath.Join(secRoot, secName)
			if err := os.MkdirAll(secDir, 0o755); err != nil {
				return fmt.Errorf("scaffold: create section dir: %w", err)
			}
			secFile := filepath.Join(secDir, secName+s.texExt)
			secText := s.renderer.Section(chapterName+"-"+secName, chapterName+"-"+secName)
			if err := s.CreateSubfolders(secDir, section.subfolders()); err != nil {
				return err
			}
			chapterText += s.renderer.Input(secFile)

			if section.NumSubsections != 0 {
				subsecRoot := filepath.Join(secDir, "subsections")
				if err := os.MkdirAll(subsecRoot, 0o755); err != nil {
					return fmt.Errorf("scaffold: create subsections dir: %w", err)
				}
				for _, subsection := range secSubs {
					subsecName := "subsection" + strconv.Itoa(subsection.Subsection)
					subsecDir := filepath.Join(subsecRoot, subsecName)
					if err := os.MkdirAll(subsecDir, 0o755); err != nil {
						return fmt.Errorf("scaffold: create subsection dir: %w", err)
					}
					subsecFile := filepath.Join(subsecDir, subsecName+s.texExt)
					title := chapterName + "-" + secName + "-" + subsecName
					if err := s.writeTexFile(subsecFile, s.renderer.Subsection(title, title)); err != nil {
						return err
					}
					if err := s.CreateSubfolders(subsecDir, subsection.subfolders()); err != nil {
						return err
					}
					secText += s.renderer.Input(subsecFile)
				}
			} else {
				s.log.Debug("no subsections created in %s", secDir)
			}
			if err := s.writeTexFile(secFile, secText); err != nil {
				return err
			}
		}
	} else {
		s.log.Debug("no sections created in %s", chapterPath)
	}

	return s.writeTexFile(chapterFile, chapterText)
}

// CreateSubfolders creates the figs/tabs/code directories flagged in sub.
// Pre-existing folders are logged, not errors.
func (s *Scaffolder) CreateSubfolders(path string, sub Subfolders) error {
	for _, f := range sub.flags() {
		dir := filepath.Join(path, f.name)
		if !f.want {
			s.log.Debug("folder %s was not created because it was set to false", dir)
			continue
		}
		if err := os.Mkdir(dir, 0o755); err != nil {
			if errors.Is(err, fs.ErrExist) {
				s.log.Debug("folder %s already exists", dir)
				continue
			}
			return fmt.Errorf("scaffold: create %s: %w", dir, err)
		}
	}
	return nil
}

// writeTexFile writes a template file unless it already exists;
// first writer wins.
func (s *Scaffolder) writeTexFile(path, text string) error {
	if _, err := os.Stat(path); err == nil {
		s.log.Debug("file %s already exists", path)
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("scaffold: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("scaffold: write %s: %w", path, err)
	}
	return nil
}

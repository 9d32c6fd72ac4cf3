// Package scaffold creates chapter/section/subsection directory trees with
// template files from a YAML structure description.
package scaffold

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Subfolders flags which of the figs/tabs/code folders a level carries.
type Subfolders struct {
	Figs bool `yaml:"figs"`
	Tabs bool `yaml:"tabs"`
	Code bool `yaml:"code"`
}

// ChapterSpec describes the chapter top level. Specs are immutable value
// records; the scaffolder never mutates caller-owned input.
type ChapterSpec struct {
	Chapter     int  `yaml:"chapter"`
	NumSections int  `yaml:"num_sections"`
	Figs        bool `yaml:"figs"`
	Tabs        bool `yaml:"tabs"`
	Code        bool `yaml:"code"`
}

// SectionSpec describes one section of a chapter.
type SectionSpec struct {
	Section        int  `yaml:"section"`
	NumSubsections int  `yaml:"num_subsections"`
	Figs           bool `yaml:"figs"`
	Tabs           bool `yaml:"tabs"`
	Code           bool `yaml:"code"`
}

// SubsectionSpec describes one subsection of a section.
type SubsectionSpec struct {
	Subsection int  `yaml:"subsection"`
	Figs       bool `yaml:"figs"`
	Tabs       bool `yaml:"tabs"`
	Code       bool `yaml:"code"`
}

// Structure models a chapter structure file: the chapter spec, its ordered
// sections and a map from section number to that section's subsections.
type Structure struct {
	Chapter     ChapterSpec                 `yaml:"chapter"`
	Sections    []SectionSpec               `yaml:"sections"`
	Subsections map[string][]SubsectionSpec `yaml:"subsections"`
}

// LoadStructure reads and validates a chapter structure YAML file.
func LoadStructure(path string) (Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Structure{}, fmt.Errorf("scaffold: read %s: %w", path, err)
	}
	var st Structure
	if err := yaml.Unmarshal(data, &st); err != nil {
		return Structure{}, fmt.Errorf("scaffold: parse %s: %w", path, err)
	}
	if err := st.Validate(); err != nil {
		return Structure{}, fmt.Errorf("scaffold: %s: %w", path, err)
	}
	return st, nil
}

// Validate checks the identifiers; the count invariants are enforced when
// the tree is built so they report expected-vs-actual at the failing level.
func (st Structure) Validate() error {
	if st.Chapter.Chapter < 1 {
		return fmt.Errorf("chapter number must be >= 1, got %d", st.Chapter.Chapter)
	}
	for i, sec := range st.Sections {
		if sec.Section < 1 {
			return fmt.Errorf("sections[%d]: section number must be >= 1, got %d", i, sec.Section)
		}
	}
	for key, subs := range st.Subsections {
		for i, sub := range subs {
			if sub.Subsection < 1 {
				return fmt.Errorf("subsections[%s][%d]: subsection number must be >= 1, got %d", key, i, sub.Subsection)
			}
		}
	}
	return nil
}

func (s Subfolders) flags() []struct {
	name string
	want bool
} {
	return []struct {
		name string
		want bool
	}{
		{"figs", s.Figs},
		{"tabs", s.Tabs},
		{"code", s.Code},
	}
}

func (c ChapterSpec) subfolders() Subfolders {
	return Subfolders{Figs: c.Figs, Tabs: c.Tabs, Code: c.Code}
}

func (s SectionSpec) subfolders() Subfolders {
	return Subfolders{Figs: s.Figs, Tabs: s.Tabs, Code: s.Code}
}

func (s SubsectionSpec) subfolders() Subfolders {
	return Subfolders{Figs: s.Figs, Tabs: s.Tabs, Code: s.Code}
}

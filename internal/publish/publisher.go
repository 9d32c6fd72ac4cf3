package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kingrea/texkeep/internal/config"
	"github.com/kingrea/texkeep/internal/latex"
	"github.com/kingrea/texkeep/internal/logging"
)

// Publisher writes artifacts into the chapter tree and keeps the parent
// .tex file of each goal directory pointing at the rendered fragments.
//
// The link-back append (read full contents, conditionally append) is not
// safe against concurrent invocation; texkeep is a one-shot tool and does
// not guard against it.
type Publisher struct {
	chaptersDir  string
	texExt       string
	textWidthCm  float64
	arrayStretch float64
	renderer     *latex.Renderer
	log          *logging.Logger
}

// NewPublisher builds a publisher for the given thesis configuration.
func NewPublisher(cfg *config.Config, renderer *latex.Renderer, log *logging.Logger) *Publisher {
	return &Publisher{
		chaptersDir:  cfg.ChaptersDir(),
		texExt:       cfg.TexExtension(),
		textWidthCm:  cfg.TextWidthCm(),
		arrayStretch: cfg.ArrayStretch(),
		renderer:     renderer,
		log:          log,
	}
}

// FigureDesc carries the metadata rendered into a figure fragment.
type FigureDesc struct {
	Width    float64
	Caption  latex.Caption
	Label    string
	Position string
}

// ListingDesc carries the metadata rendered into a code listing fragment.
type ListingDesc struct {
	Language string
	Caption  latex.Caption
	Label    string
	Position string
}

// PublishFigure persists fig under <goal>/figs/<filename>, renders the
// figure fragment next to it and links the fragment into the goal
// directory's parent file. The output format is taken from the filename
// extension. fig must be a RasterFigure or a VectorFigure.
func (p *Publisher) PublishFigure(loc Location, filename string, fig FigureArtifact, desc FigureDesc) error {
	goal := loc.Dir(p.chaptersDir)
	folder := filepath.Join(goal, "figs")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("publish: create %s: %w", folder, err)
	}
	format := fileFormat(filename)
	target := filepath.Join(folder, filename)

	switch f := fig.(type) {
	case RasterFigure:
		if err := f.SaveTo(target, format); err != nil {
			return err
		}
	case VectorFigure:
		if f.Convert == nil && format != "svg" {
			if format == "eps" {
				return fmt.Errorf("publish: a vector converter is required when saving to eps format")
			}
			p.log.Warn("no vector converter configured, falling back to raw SVG output for %s", target)
		}
		if err := f.SaveTo(target, format); err != nil {
			return err
		}
	default:
		return fmt.Errorf("publish: figure is neither a RasterFigure nor a VectorFigure, got %T", fig)
	}

	fragment := strings.TrimSuffix(target, "."+format) + p.texExt
	text, err := p.renderer.Render(latex.KindFigure, latex.Fields{
		"position": desc.Position,
		"width":    strconv.FormatFloat(desc.Width, 'g', -1, 64),
		"fname":    p.renderer.RootRelative(target),
		"caption":  desc.Caption,
		"label":    desc.Label,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(fragment, []byte(text), 0o644); err != nil {
		return fmt.Errorf("publish: write %s: %w", fragment, err)
	}
	return p.linkBack(goal, fragment)
}

// PublishTable renders the dataset as a LaTeX table under
// <goal>/tabs/<filename> and links it into the goal directory's parent
// file. A column format of the wrong length fails before anything is
// written.
func (p *Publisher) PublishTable(loc Location, filename string, table Table, desc TableDesc, formatters map[string]Formatter, opts TableOptions) error {
	if err := p.validateColumns(table, opts); err != nil {
		return err
	}
	goal := loc.Dir(p.chaptersDir)
	folder := filepath.Join(goal, "tabs")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("publish: create %s: %w", folder, err)
	}
	data := renderTabular(table, desc, formatters)
	data = p.rewriteTable(data, opts)

	stretch := opts.ArrayStretch
	if stretch == 0 {
		stretch = p.arrayStretch
	}
	text := p.renderer.Table(stretch, strings.TrimRight(data, "\n"))

	target := filepath.Join(folder, filename)
	if err := os.WriteFile(target, []byte(text), 0o644); err != nil {
		return fmt.Errorf("publish: write %s: %w", target, err)
	}
	return p.linkBack(goal, target)
}

// PublishListing copies a source file under <goal>/code/<filename>,
// renders a minted listing fragment next to it and links the fragment into
// the goal directory's parent file.
func (p *Publisher) PublishListing(loc Location, filename string, source []byte, desc ListingDesc) error {
	goal := loc.Dir(p.chaptersDir)
	folder := filepath.Join(goal, "code")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("publish: create %s: %w", folder, err)
	}
	target := filepath.Join(folder, filename)
	if err := os.WriteFile(target, source, 0o644); err != nil {
		return fmt.Errorf("publish: write %s: %w", target, err)
	}
	fragment := strings.TrimSuffix(target, "."+fileFormat(filename)) + p.texExt
	text, err := p.renderer.Render(latex.KindCode, latex.Fields{
		"position": desc.Position,
		"language": desc.Language,
		"fname":    p.renderer.RootRelative(target),
		"caption":  desc.Caption,
		"label":    desc.Label,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(fragment, []byte(text), 0o644); err != nil {
		return fmt.Errorf("publish: write %s: %w", fragment, err)
	}
	return p.linkBack(goal, fragment)
}

func (p *Publisher) validateColumns(table Table, opts TableOptions) error {
	n := len(table.Columns)
	if len(opts.ColumnMeasures) > 0 && len(opts.ColumnMeasures) != n {
		return fmt.Errorf("publish: the number of column measures %d does not match the number of columns in the data %d",
			len(opts.ColumnMeasures), n)
	}
	if opts.ColumnFormat != "" && len(opts.ColumnFormat) != n {
		return fmt.Errorf("publish: the number of columns %d does not match the number of columns in the data %d",
			len(opts.ColumnFormat), n)
	}
	return nil
}

// rewriteTable applies the column specification override and, unless a top
// caption was requested, relocates the caption and label lines to the
// bottom of the table. The relocation assumes the layout renderTabular
// produces: caption on the 3rd line, label on the 4th.
func (p *Publisher) rewriteTable(data string, opts TableOptions) string {
	spec := opts.ColumnFormat
	if len(opts.ColumnMeasures) > 0 {
		width := 0.0
		for _, measure := range opts.ColumnMeasures {
			if m := measureWidthPattern.FindString(measure); m != "" {
				if v, err := strconv.ParseFloat(m, 64); err == nil {
					width += v
				}
			}
		}
		if width > p.textWidthCm {
			p.log.Warn("the table width %gcm exceeds the limits of the document class %gcm!", width, p.textWidthCm)
		}
		spec = strings.Join(opts.ColumnMeasures, "")
	}
	if spec != "" {
		data = columnSpecPattern.ReplaceAllString(data, "${1}"+spec+"}")
	}
	if !opts.TopCaption {
		lines := strings.Split(data, "\n")
		caption, label := lines[2], lines[3]
		lines = append(lines[:2], lines[4:]...)
		n := len(lines)
		rebuilt := make([]string, 0, n+2)
		rebuilt = append(rebuilt, lines[:n-2]...)
		rebuilt = append(rebuilt, caption, label)
		rebuilt = append(rebuilt, lines[n-2:]...)
		data = strings.Join(rebuilt, "\n")
	}
	return data
}

// linkBack appends an \input{} statement for child to the single .tex file
// in the goal directory, unless that exact statement is already present.
func (p *Publisher) linkBack(goal, child string) error {
	parents, err := filepath.Glob(filepath.Join(goal, "*"+p.texExt))
	if err != nil {
		return fmt.Errorf("publish: glob %s: %w", goal, err)
	}
	if len(parents) == 0 {
		return fmt.Errorf("publish: no parent %s file in %s", p.texExt, goal)
	}
	if len(parents) > 1 {
		p.log.Warn("%d %s files in %s, linking into %s", len(parents), p.texExt, goal, parents[0])
	}
	parent := parents[0]

	statement := p.renderer.Input(child)
	current, err := os.ReadFile(parent)
	if err != nil {
		return fmt.Errorf("publish: read %s: %w", parent, err)
	}
	if strings.Contains(string(current), statement) {
		p.log.Debug("%s is already in %s", strings.TrimSpace(statement), parent)
		return nil
	}
	file, err := os.OpenFile(parent, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("publish: open %s: %w", parent, err)
	}
	defer file.Close()
	if _, err := file.WriteString(statement); err != nil {
		return fmt.Errorf("publish: append to %s: %w", parent, err)
	}
	p.log.Debug("%s is appended to the end of %s", strings.TrimSpace(statement), parent)
	return file.Close()
}

func fileFormat(filename string) string {
	parts := strings.Split(filename, ".")
	return strings.ToLower(parts[len(parts)-1])
}

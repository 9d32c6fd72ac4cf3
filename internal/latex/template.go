// Package latex renders the LaTeX fragments texkeep writes into the thesis
// tree: chapter/section/subsection skeletons, figure, table and listing
// environments, \input statements and siunitx quantities. Rendering is pure
// string production; writing to disk is the caller's responsibility.
package latex

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
)

// Kind names one of the built-in templates.
type Kind string

const (
	KindChapter    Kind = "chapter"
	KindSection    Kind = "section"
	KindSubsection Kind = "subsection"
	KindFigure     Kind = "figure"
	KindTable      Kind = "table"
	KindCode       Kind = "code"
	KindInput      Kind = "input"
)

// Fields maps placeholder names to their values for one render.
type Fields map[string]any

// Caption is a figure or listing caption. A non-empty Short renders as
// \caption[short]{long}; otherwise \caption{long}.
type Caption struct {
	Long  string
	Short string
}

// The template texts use << >> delimiters so LaTeX's braces stay literal.
const (
	chapterText = "% !TEX root = ../../main.tex\n\n" +
		"\\chapter{<<.title>>}\n" +
		"\\label{cha:<<.label>>}\n\n" +
		"This is a chapter.\n"

	sectionText = "\\section{<<.title>>}\n" +
		"\\label{sec:<<.label>>}\n\n" +
		"This is a section within a chapter.\n"

	subsectionText = "\\subsection{<<.title>>}\n" +
		"\\label{subsec:<<.label>>}\n\n" +
		"This is a subsection within a section.\n"

	figureText = "\\begin{figure}[<<.position>>]\n" +
		"\t\\centering\n" +
		"\t\\includegraphics[width=<<.width>>\\textwidth]{<<.fname>>}\n" +
		"\t\\caption{<<.caption>>}\n" +
		"\t\\label{fig:<<.label>>}\n" +
		"\\end{figure}\n"

	figureShortText = "\\begin{figure}[<<.position>>]\n" +
		"\t\\centering\n" +
		"\t\\includegraphics[width=<<.width>>\\textwidth]{<<.fname>>}\n" +
		"\t\\caption[<<.short_caption>>]{<<.long_caption>>}\n" +
		"\t\\label{fig:<<.label>>}\n" +
		"\\end{figure}\n"

	codeText = "\\begin{listing}[<<.position>>]\n" +
		"\t\\inputminted{<<.language>>}{<<.fname>>}\n" +
		"\t\\caption{<<.caption>>}\n" +
		"\t\\label{lst:<<.label>>}\n" +
		"\\end{listing}\n"

	codeShortText = "\\begin{listing}[<<.position>>]\n" +
		"\t\\inputminted{<<.language>>}{<<.fname>>}\n" +
		"\t\\caption[<<.short_caption>>]{<<.long_caption>>}\n" +
		"\t\\label{lst:<<.label>>}\n" +
		"\\end{listing}\n"

	tableText = "\\begingroup\n" +
		"\\renewcommand{\\arraystretch}{<<.arraystretch>>}\n" +
		"<<.data>>\n" +
		"\\endgroup\n"

	inputText = "\n\\input{<<.path>>}\n"
)

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).
		Delims("<<", ">>").
		Option("missingkey=error").
		Parse(text))
}

var templates = map[string]*template.Template{
	"chapter":      mustParse("chapter", chapterText),
	"section":      mustParse("section", sectionText),
	"subsection":   mustParse("subsection", subsectionText),
	"figure":       mustParse("figure", figureText),
	"figure-short": mustParse("figure-short", figureShortText),
	"code":         mustParse("code", codeText),
	"code-short":   mustParse("code-short", codeShortText),
	"table":        mustParse("table", tableText),
	"input":        mustParse("input", inputText),
}

// Renderer fills the built-in templates. The anchor is the path segment
// generated \input{} paths are made relative to, normally "chapters".
type Renderer struct {
	anchor string
}

// NewRenderer builds a renderer anchored at the given chapters segment.
func NewRenderer(anchor string) *Renderer {
	if anchor == "" {
		anchor = "chapters"
	}
	return &Renderer{anchor: anchor}
}

// Render fills the template of the given kind with the supplied fields.
// A placeholder without a matching field is an error.
func (r *Renderer) Render(kind Kind, fields Fields) (string, error) {
	name := string(kind)
	prepared := Fields{}
	for k, v := range fields {
		prepared[k] = v
	}
	switch kind {
	case KindFigure, KindCode:
		switch c := prepared["caption"].(type) {
		case Caption:
			if c.Short != "" {
				name += "-short"
				prepared["long_caption"] = c.Long
				prepared["short_caption"] = c.Short
				delete(prepared, "caption")
			} else {
				prepared["caption"] = c.Long
			}
		}
	case KindInput:
		if p, ok := prepared["path"].(string); ok {
			prepared["path"] = r.RootRelative(p)
		}
	}
	tmpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("latex: unknown template kind %q", kind)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(prepared)); err != nil {
		return "", fmt.Errorf("latex: render %s: %w", kind, err)
	}
	return buf.String(), nil
}

// Chapter renders the chapter skeleton.
func (r *Renderer) Chapter(title, label string) string {
	return r.must(KindChapter, Fields{"title": title, "label": label})
}

// Section renders the section skeleton.
func (r *Renderer) Section(title, label string) string {
	return r.must(KindSection, Fields{"title": title, "label": label})
}

// Subsection renders the subsection skeleton.
func (r *Renderer) Subsection(title, label string) string {
	return r.must(KindSubsection, Fields{"title": title, "label": label})
}

// Input renders an \input{} statement for path, rewritten root-relative.
func (r *Renderer) Input(path string) string {
	return r.must(KindInput, Fields{"path": path})
}

// Table wraps pre-rendered tabular text in the arraystretch group.
func (r *Renderer) Table(arrayStretch float64, data string) string {
	return r.must(KindTable, Fields{
		"arraystretch": trimFloat(arrayStretch),
		"data":         data,
	})
}

func (r *Renderer) must(kind Kind, fields Fields) string {
	out, err := r.Render(kind, fields)
	if err != nil {
		// The fixed-field helpers supply every placeholder themselves.
		panic(err)
	}
	return out
}

// RootRelative rewrites path so that only the portion from the anchor
// segment onward remains, forward-slash separated. Paths without the
// anchor are returned slash-normalized but otherwise untouched.
func (r *Renderer) RootRelative(path string) string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	parts := strings.Split(normalized, "/")
	for i, part := range parts {
		if part == r.anchor {
			return strings.Join(parts[i:], "/")
		}
	}
	return filepath.ToSlash(path)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

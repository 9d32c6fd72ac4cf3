// internal/tui/app.go
//
// The texkeep status dashboard. It uses bubbletea, which follows The Elm
// Architecture: the App model holds all state, Update reacts to messages,
// View renders the current state to a string.

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/texkeep/internal/maintain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(1, 1)
)

// Scanner runs one integrity scan; satisfied by *maintain.Maintainer.
type Scanner interface {
	Scan() (maintain.Report, error)
}

type scanDoneMsg struct {
	report maintain.Report
	err    error
}

// findingItem adapts a maintain.Finding to the bubbles list.
type findingItem struct {
	finding maintain.Finding
}

func (i findingItem) Title() string {
	switch i.finding.Kind {
	case maintain.FindingMissingInclude:
		return errStyle.Render("missing include  ") + i.finding.Path
	case maintain.FindingMainMissingInclude:
		return errStyle.Render("missing in main  ") + i.finding.Path
	case maintain.FindingUnreferencedChapter:
		return warnStyle.Render("not referenced   ") + i.finding.Path
	case maintain.FindingEmptyDir:
		return warnStyle.Render("empty directory  ") + i.finding.Path
	default:
		return i.finding.Path
	}
}

func (i findingItem) Description() string {
	switch i.finding.Kind {
	case maintain.FindingMissingInclude:
		return "included from " + i.finding.Source
	case maintain.FindingMainMissingInclude:
		return "included from the root document"
	case maintain.FindingUnreferencedChapter:
		return "exists on disk but the root document never \\input{}s it"
	case maintain.FindingEmptyDir:
		return "remove with `texkeep cleanup --delete`"
	default:
		return ""
	}
}

func (i findingItem) FilterValue() string { return i.finding.Path }

// App is the dashboard model. It holds ALL the state.
type App struct {
	thesisDir string
	scanner   Scanner

	findings list.Model
	report   maintain.Report
	scanned  bool
	scanning bool
	err      error

	width  int
	height int
}

// NewApp builds the dashboard for a thesis directory.
func NewApp(thesisDir string, scanner Scanner) App {
	delegate := list.NewDefaultDelegate()
	findings := list.New(nil, delegate, 0, 0)
	findings.Title = "findings"
	findings.SetShowStatusBar(false)
	findings.SetShowHelp(false)
	return App{
		thesisDir: thesisDir,
		scanner:   scanner,
		findings:  findings,
	}
}

// Init kicks off the first scan.
func (a App) Init() tea.Cmd {
	return a.scanCmd()
}

func (a App) scanCmd() tea.Cmd {
	scanner := a.scanner
	return func() tea.Msg {
		report, err := scanner.Scan()
		return scanDoneMsg{report: report, err: err}
	}
}

// Update reacts to key presses, window resizes and finished scans.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.findings.SetSize(msg.Width-2, max(msg.Height-6, 3))
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "r":
			if !a.scanning {
				a.scanning = true
				return a, a.scanCmd()
			}
			return a, nil
		}

	case scanDoneMsg:
		a.scanning = false
		a.scanned = true
		a.err = msg.err
		if msg.err == nil {
			a.report = msg.report
			items := make([]list.Item, 0, len(msg.report.Findings))
			for _, finding := range msg.report.Findings {
				items = append(items, findingItem{finding: finding})
			}
			return a, a.findings.SetItems(items)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.findings, cmd = a.findings.Update(msg)
	return a, cmd
}

// View renders the dashboard.
func (a App) View() string {
	header := titleStyle.Render("texkeep") + " " + a.thesisDir
	var status string
	switch {
	case a.scanning || !a.scanned:
		status = "scanning..."
	case a.err != nil:
		status = errStyle.Render(fmt.Sprintf("scan failed: %v", a.err))
	case a.report.BrokenIncludes == 0 && len(a.report.Findings) == 0:
		status = okStyle.Render("all \\input{} statements resolve")
	default:
		status = fmt.Sprintf("%s broken, %s empty, %s unreferenced",
			errStyle.Render(fmt.Sprintf("%d", a.report.BrokenIncludes)),
			warnStyle.Render(fmt.Sprintf("%d", a.report.Count(maintain.FindingEmptyDir))),
			warnStyle.Render(fmt.Sprintf("%d", a.report.Count(maintain.FindingUnreferencedChapter))),
		)
	}
	help := helpStyle.Render("r rescan • q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, status, a.findings.View(), help)
}

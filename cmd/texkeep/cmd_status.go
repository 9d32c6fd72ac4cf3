package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/texkeep/internal/maintain"
	"github.com/kingrea/texkeep/internal/tui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Open the interactive status dashboard",
	Long: `Runs a full scan and shows the findings in an interactive dashboard:
broken includes, chapter files the root document never references and
empty directories. Press r to rescan, q to quit.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	maintainer := maintain.NewMaintainer(cfg, log)
	program := tea.NewProgram(
		tui.NewApp(cfg.ThesisDir, maintainer),
		tea.WithAltScreen(),
	)
	_, err = program.Run()
	return err
}

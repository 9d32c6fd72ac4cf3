package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/texkeep/internal/maintain"
)

var flagDelete bool

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Find (and optionally delete) empty directories",
	Long: `Recursively finds directories with no contents in the thesis tree.
Without --delete they are only reported.`,
	Args: cobra.NoArgs,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().BoolVar(&flagDelete, "delete", false, "delete the empty directories instead of only reporting them")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	maintainer := maintain.NewMaintainer(cfg, log)
	findings, err := maintainer.Cleanup(cfg.ThesisDir, flagDelete)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	for _, finding := range findings {
		if flagDelete {
			fmt.Printf("deleted: %s\n", finding.Path)
		} else {
			fmt.Printf("empty: %s\n", finding.Path)
		}
	}
	if len(findings) == 0 {
		fmt.Println("no empty directories")
	}
	return nil
}

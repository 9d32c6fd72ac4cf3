package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kingrea/texkeep/internal/maintain"
	"github.com/kingrea/texkeep/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the thesis tree and re-check includes on change",
	Long: `Watches the thesis tree and re-runs the include check whenever .tex
files change, printing a summary after each scan. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	maintainer := maintain.NewMaintainer(cfg, log)
	watcher, err := watch.New(cfg, maintainer, log)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	fmt.Printf("watching %s\n", cfg.ThesisDir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case report := <-watcher.Reports():
			if report.BrokenIncludes == 0 {
				fmt.Println("ok: all \\input{} statements resolve")
				continue
			}
			fmt.Printf("%d broken \\input{} statement(s)\n", report.BrokenIncludes)
			for _, finding := range report.Findings {
				if finding.Kind == maintain.FindingMissingInclude {
					fmt.Printf("  missing: %s (included from %s)\n", finding.Path, finding.Source)
				}
			}
		}
	}
}

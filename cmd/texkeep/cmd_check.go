package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/texkeep/internal/maintain"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check every \\input{} statement against the filesystem",
	Long: `Recursively scans the thesis tree for .tex files, extracts their
\input{} targets and verifies each referenced file exists. Also checks
the root document and reports chapter files it never references.

Exits non-zero when broken includes are found, for CI use.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	maintainer := maintain.NewMaintainer(cfg, log)
	findings, err := maintainer.CheckInputs(cfg.ThesisDir)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	mainFindings, err := maintainer.CheckMain()
	if err != nil {
		log.Error("%v", err)
		return err
	}
	findings = append(findings, mainFindings...)

	for _, finding := range findings {
		switch finding.Kind {
		case maintain.FindingMissingInclude:
			fmt.Printf("missing: %s (included from %s)\n", finding.Path, finding.Source)
		case maintain.FindingMainMissingInclude:
			fmt.Printf("missing: %s (included from the root document)\n", finding.Path)
		case maintain.FindingUnreferencedChapter:
			fmt.Printf("unreferenced: %s\n", finding.Path)
		}
	}
	if maintainer.Counter() == 0 {
		log.Info("all files in \\input{} statements do exist!")
		fmt.Println("all \\input{} statements resolve")
		return nil
	}
	return fmt.Errorf("%d broken \\input{} statement(s)", maintainer.Counter())
}

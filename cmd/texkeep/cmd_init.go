package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/texkeep/internal/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init <structure.yaml>",
	Short: "Scaffold a chapter directory tree from a structure file",
	Long: `Creates the chapter/section/subsection directories described by the
structure file, writes template .tex files into them and wires the
\input{} statements so every parent references its children.

Re-running against an existing chapter directory is an error, never a
silent overwrite.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	structure, err := scaffold.LoadStructure(args[0])
	if err != nil {
		log.Error("%v", err)
		return err
	}
	scaffolder := scaffold.NewScaffolder(cfg, newRenderer(cfg), log)
	if err := scaffolder.InitChapterTree(structure.Chapter, structure.Sections, structure.Subsections); err != nil {
		log.Error("%v", err)
		return err
	}
	log.Info("chapter%d scaffolded under %s", structure.Chapter.Chapter, cfg.ChaptersDir())
	fmt.Printf("chapter%d scaffolded under %s\n", structure.Chapter.Chapter, cfg.ChaptersDir())
	return nil
}

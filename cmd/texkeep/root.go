package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kingrea/texkeep/internal/config"
	"github.com/kingrea/texkeep/internal/latex"
	"github.com/kingrea/texkeep/internal/logging"
)

var (
	flagDir     string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "texkeep",
	Short: "Maintain a multi-chapter LaTeX thesis directory tree",
	Long: `texkeep scaffolds chapter/section/subsection directory trees with
template files, tracks cross-file \input{} links, detects broken or
missing includes and publishes computed results as LaTeX fragments.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "d", ".", "thesis root directory")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "also log debug entries")
}

// setup resolves the thesis directory, seeds .texkeep/ and constructs the
// collaborators shared by every command. The caller owns closing the logger.
func setup() (*config.Config, *logging.Logger, error) {
	dir, err := filepath.Abs(flagDir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve thesis dir: %w", err)
	}
	if err := config.InitTexkeepDir(dir); err != nil {
		return nil, nil, fmt.Errorf("initialize %s: %w", config.TexkeepDir, err)
	}
	cfg, err := config.NewConfig(dir)
	if err != nil {
		return nil, nil, err
	}
	opts := []logging.Option{logging.WithMirror(os.Stderr)}
	if !flagVerbose {
		opts = append(opts, logging.WithMinLevel(logging.LevelInfo))
	}
	log, err := logging.New(dir, opts...)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// newRenderer builds the fragment renderer anchored at the configured
// chapters directory name.
func newRenderer(cfg *config.Config) *latex.Renderer {
	return latex.NewRenderer(cfg.Project.Layout.ChaptersDir)
}

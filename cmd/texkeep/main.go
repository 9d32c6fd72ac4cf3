// cmd/texkeep/main.go
//
// This is the entry point for the texkeep CLI, a maintenance tool for a
// multi-chapter LaTeX thesis. It scaffolds chapter trees, checks \input{}
// integrity, cleans up empty directories, publishes code listings and can
// watch the tree or show a live status dashboard.

package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

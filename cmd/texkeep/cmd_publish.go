package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingrea/texkeep/internal/latex"
	"github.com/kingrea/texkeep/internal/publish"
)

var (
	flagLocation     string
	flagLanguage     string
	flagCaption      string
	flagShortCaption string
	flagLabel        string
	flagPosition     string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish an artifact into the chapter tree",
}

var publishCodeCmd = &cobra.Command{
	Use:   "code <source-file>",
	Short: "Publish a source file as a code listing",
	Long: `Copies the source file into the code/ folder of the target location,
renders a minted listing fragment next to it and registers the fragment
in the location's parent .tex file. Publishing the same listing twice
appends the \input{} line only once.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublishCode,
}

func init() {
	publishCodeCmd.Flags().StringVar(&flagLocation, "at", "", "target location, e.g. chapter3/section2 (required)")
	publishCodeCmd.Flags().StringVar(&flagLanguage, "language", "text", "minted language of the listing")
	publishCodeCmd.Flags().StringVar(&flagCaption, "caption", "", "listing caption (required)")
	publishCodeCmd.Flags().StringVar(&flagShortCaption, "short-caption", "", "short caption for the list of listings")
	publishCodeCmd.Flags().StringVar(&flagLabel, "label", "", "label placed inside \\label{lst:...} (required)")
	publishCodeCmd.Flags().StringVar(&flagPosition, "position", "htbp", "LaTeX positional argument")
	publishCodeCmd.MarkFlagRequired("at")
	publishCodeCmd.MarkFlagRequired("caption")
	publishCodeCmd.MarkFlagRequired("label")
	publishCmd.AddCommand(publishCodeCmd)
	rootCmd.AddCommand(publishCmd)
}

func runPublishCode(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	location, err := publish.ParseLocation(strings.ReplaceAll(flagLocation, "/", "\n"))
	if err != nil {
		return err
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	publisher := publish.NewPublisher(cfg, newRenderer(cfg), log)
	desc := publish.ListingDesc{
		Language: flagLanguage,
		Caption:  latex.Caption{Long: flagCaption, Short: flagShortCaption},
		Label:    flagLabel,
		Position: flagPosition,
	}
	if err := publisher.PublishListing(location, filepath.Base(args[0]), source, desc); err != nil {
		log.Error("%v", err)
		return err
	}
	fmt.Printf("published %s at %s\n", filepath.Base(args[0]), location)
	return nil
}

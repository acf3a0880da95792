package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/vmunix/mkvcat/internal/catalog"
	"github.com/vmunix/mkvcat/internal/config"
	"github.com/vmunix/mkvcat/internal/indexer"
	"github.com/vmunix/mkvcat/pkg/release"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] [dir]",
	Short: "Catalog media files under a directory",
	Long: `Scan a directory tree and update the catalog and duplicates tables.

Examples:
  mkvcat scan /media/movies
  mkvcat scan --dry-run --json .
  mkvcat scan --catalog out/Movies.csv --duplicates out/Duplicates.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().Bool("dry-run", false, "Report what would change without writing files")
	scanCmd.Flags().String("catalog", "", "Catalog table path (overrides config)")
	scanCmd.Flags().String("duplicates", "", "Duplicates table path (overrides config)")
}

// ScanSummaryJSON is the JSON form of an indexer run.
type ScanSummaryJSON struct {
	Root       string        `json:"root"`
	Scanned    int           `json:"scanned"`
	New        int           `json:"new"`
	Known      int           `json:"known"`
	Duplicates int           `json:"duplicates"`
	Skipped    int           `json:"skipped"`
	TotalBytes int64         `json:"total_bytes"`
	Similar    []SimilarJSON `json:"similar,omitempty"`
	DryRun     bool          `json:"dry_run,omitempty"`
}

// SimilarJSON is one near-duplicate pair.
type SimilarJSON struct {
	A          string  `json:"a"`
	B          string  `json:"b"`
	Score      float64 `json:"score"`
	Confidence string  `json:"confidence"`
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	catalogPath, _ := cmd.Flags().GetString("catalog")
	duplicatesPath, _ := cmd.Flags().GetString("duplicates")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if catalogPath != "" {
		cfg.Output.Catalog = catalogPath
	}
	if duplicatesPath != "" {
		cfg.Output.Duplicates = duplicatesPath
	}
	if cfg.Output.Catalog == cfg.Output.Duplicates {
		return fmt.Errorf("catalog and duplicates must be different files")
	}

	root := cfg.Scan.Root
	if len(args) > 0 {
		root = args[0]
	}

	extractor, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	fsys := afero.NewOsFs()
	ix := indexer.New(indexerConfig(cfg, dryRun), extractor, catalog.NewStore(fsys), fsys, newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := ix.Run(ctx, root)
	if err != nil {
		return err
	}

	out := summaryJSON(root, sum, dryRun)
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printSummary(cmd.OutOrStdout(), out, cfg)
	return nil
}

func newExtractor(cfg *config.Config) (*release.Extractor, error) {
	vocab := release.DefaultVocabulary().WithLanguages(cfg.Extract.ExtraLanguages...)
	extractor, err := release.NewExtractor(vocab)
	if err != nil {
		return nil, fmt.Errorf("building extractor: %w", err)
	}
	return extractor, nil
}

func indexerConfig(cfg *config.Config, dryRun bool) indexer.Config {
	return indexer.Config{
		CatalogPath:         cfg.Output.Catalog,
		DuplicatesPath:      cfg.Output.Duplicates,
		Extensions:          cfg.Scan.Extensions,
		ExcludeDirs:         cfg.Scan.ExcludeDirs,
		Dedupe:              cfg.DedupeOptions(),
		SimilarityThreshold: cfg.Dedupe.SimilarityThreshold,
		AllowEmptyTitles:    cfg.Extract.AllowEmptyTitles,
		DryRun:              dryRun,
	}
}

func summaryJSON(root string, sum *indexer.Summary, dryRun bool) ScanSummaryJSON {
	out := ScanSummaryJSON{
		Root:       root,
		Scanned:    sum.Scanned,
		New:        sum.New,
		Known:      sum.Known,
		Duplicates: sum.Duplicates,
		Skipped:    sum.Skipped,
		TotalBytes: sum.TotalBytes,
		DryRun:     dryRun,
	}
	for _, p := range sum.Similar {
		out.Similar = append(out.Similar, SimilarJSON{
			A:          p.A.Title,
			B:          p.B.Title,
			Score:      p.Score,
			Confidence: p.Confidence.String(),
		})
	}
	return out
}

func printSummary(w io.Writer, s ScanSummaryJSON, cfg *config.Config) {
	fmt.Fprintf(w, "Scanned:     %d files (%s)\n", s.Scanned, humanize.IBytes(uint64(s.TotalBytes)))
	fmt.Fprintf(w, "New:         %d\n", s.New)
	fmt.Fprintf(w, "Known:       %d\n", s.Known)
	fmt.Fprintf(w, "Duplicates:  %d\n", s.Duplicates)
	if s.Skipped > 0 {
		fmt.Fprintf(w, "Skipped:     %d\n", s.Skipped)
	}
	for _, p := range s.Similar {
		fmt.Fprintf(w, "Similar:     %q ~ %q (%.2f, %s)\n", p.A, p.B, p.Score, p.Confidence)
	}
	if s.DryRun {
		fmt.Fprintln(w, "\nDry run: nothing written.")
		return
	}
	fmt.Fprintf(w, "\n%s updated\n%s updated\n", cfg.Output.Catalog, cfg.Output.Duplicates)
}

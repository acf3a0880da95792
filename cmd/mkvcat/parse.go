package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/mkvcat/pkg/release"
)

// ParseResultJSON is the JSON-friendly representation of a parsed filename.
type ParseResultJSON struct {
	Input     string `json:"input"`
	Title     string `json:"title"`
	Year      string `json:"year,omitempty"`
	Format    string `json:"format,omitempty"`
	Encoding  string `json:"encoding"`
	Languages string `json:"languages,omitempty"`
	Audio     string `json:"audio,omitempty"`
	Season    string `json:"season,omitempty"`
	Episode   string `json:"episode,omitempty"`
	Size      string `json:"size,omitempty"`
}

func toJSON(input string, r release.Record) ParseResultJSON {
	return ParseResultJSON{
		Input:     input,
		Title:     r.Title,
		Year:      r.Year,
		Format:    r.Format,
		Encoding:  r.Encoding,
		Languages: r.Languages,
		Audio:     r.Audio,
		Season:    r.Season,
		Episode:   r.Episode,
		Size:      r.Size,
	}
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <filename>",
	Short: "Parse a filename (no files are read or written)",
	Long: `Parse a media filename and print the extracted metadata.

Examples:
  mkvcat parse "Movie.Name.(2021).1080p.x265.[Tamil + Telugu].DD+5.1.mkv"
  mkvcat parse --file names.txt --json`,
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("file", "f", "", "Read filenames from file (one per line)")
	// Note: --json is inherited from root as persistent flag
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	inputFile, _ := cmd.Flags().GetString("file")

	var names []string
	switch {
	case inputFile != "":
		n, err := readNameFile(inputFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		names = n
	case len(args) > 0:
		names = []string{args[0]}
	default:
		return fmt.Errorf("usage: mkvcat parse <filename> or mkvcat parse --file <filename>")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	extractor, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	results := make([]ParseResultJSON, 0, len(names))
	for _, name := range names {
		results = append(results, toJSON(name, extractor.Extract(name, nil)))
	}

	w := cmd.OutOrStdout()
	if jsonOutput {
		return outputJSON(w, results)
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printHumanReadable(w, r)
	}
	return nil
}

// readNameFile reads filenames from a file, one per line.
// Blank lines and lines starting with # are ignored.
func readNameFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			names = append(names, line)
		}
	}
	return names, scanner.Err()
}

// printHumanReadable outputs one parse result.
func printHumanReadable(w io.Writer, r ParseResultJSON) {
	fmt.Fprintf(w, "Title:       %s\n", valueOrEmpty(r.Title))
	if r.Year != "" {
		fmt.Fprintf(w, "Year:        %s\n", r.Year)
	}
	if r.Season != "" {
		fmt.Fprintf(w, "Season:      %s\n", r.Season)
		fmt.Fprintf(w, "Episode:     %s\n", r.Episode)
	}
	fmt.Fprintf(w, "Format:      %s\n", valueOrEmpty(r.Format))
	fmt.Fprintf(w, "Encoding:    %s\n", r.Encoding)
	if r.Languages != "" {
		fmt.Fprintf(w, "Languages:   %s\n", r.Languages)
	}
	if r.Audio != "" {
		fmt.Fprintf(w, "Audio:       %s\n", r.Audio)
	}
}

// valueOrEmpty returns the value or an empty placeholder.
func valueOrEmpty(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// outputJSON writes a single object for one result, an array otherwise.
func outputJSON(w io.Writer, results []ParseResultJSON) error {
	var output any = results
	if len(results) == 1 {
		output = results[0]
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

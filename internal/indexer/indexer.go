// Package indexer scans a directory, catalogs the media files found and
// logs duplicate titles.
package indexer

//go:generate mockgen -source=indexer.go -destination=mocks/mock_store.go -package=mocks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/vmunix/mkvcat/internal/catalog"
	"github.com/vmunix/mkvcat/internal/scan"
	"github.com/vmunix/mkvcat/pkg/dedupe"
	"github.com/vmunix/mkvcat/pkg/release"
)

// Store loads and saves catalog tables.
type Store interface {
	Load(path string) ([]catalog.Row, error)
	Save(path string, rows []catalog.Row) error
}

// Config for the indexer.
type Config struct {
	CatalogPath         string
	DuplicatesPath      string
	Extensions          []string
	ExcludeDirs         []string
	Dedupe              dedupe.Options
	SimilarityThreshold float64 // 0 disables the near-duplicate report
	AllowEmptyTitles    bool
	DryRun              bool // compute everything, write nothing
}

// Summary reports what a run did.
type Summary struct {
	Scanned    int // media files found
	Skipped    int // files with no usable title
	Known      int // files already present, unchanged, in the catalog
	New        int // records added to the catalog
	Duplicates int // rows filed in the duplicates log this run
	TotalBytes int64
	Similar    []dedupe.Pair
}

// Indexer runs catalog updates.
type Indexer struct {
	cfg       Config
	extractor *release.Extractor
	store     Store
	fs        afero.Fs
	log       *slog.Logger
}

// New creates an indexer. A nil extractor uses the default vocabulary.
func New(cfg Config, extractor *release.Extractor, store Store, fsys afero.Fs, log *slog.Logger) *Indexer {
	if extractor == nil {
		extractor, _ = release.NewExtractor(release.DefaultVocabulary())
	}
	return &Indexer{
		cfg:       cfg,
		extractor: extractor,
		store:     store,
		fs:        fsys,
		log:       log,
	}
}

// Run scans root and merges what it finds into the catalog and the
// duplicates log. Cancellation is checked between files.
func (ix *Indexer) Run(ctx context.Context, root string) (*Summary, error) {
	files, err := scan.Walk(ix.fs, root, scan.Options{
		Extensions:  ix.cfg.Extensions,
		ExcludeDirs: ix.cfg.ExcludeDirs,
		OnError: func(path string, err error) {
			ix.log.Warn("skipping unreadable path", "path", path, "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	ix.log.Info("scan complete", "root", root, "files", len(files))

	sum := &Summary{Scanned: len(files)}
	records := make([]release.Record, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec := ix.extractor.Extract(f.Name, ix.sizeLookup(f.Path, sum))
		if err := rec.Validate(); err != nil && !ix.cfg.AllowEmptyTitles {
			ix.log.Warn("skipping file", "path", f.Path, "error", err)
			sum.Skipped++
			continue
		}
		ix.log.Debug("extracted", "path", f.Path, "title", rec.Title, "year", rec.Year)
		records = append(records, rec)
	}

	existing, err := ix.store.Load(ix.cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	existingDups, err := ix.store.Load(ix.cfg.DuplicatesPath)
	if err != nil {
		return nil, fmt.Errorf("load duplicates: %w", err)
	}

	// A file cataloged by an earlier run is not a duplicate of itself.
	known := make(map[catalog.Row]bool, len(existing))
	for _, row := range existing {
		known[row] = true
	}
	fresh := records[:0]
	for _, rec := range records {
		if known[catalog.FromRecord(rec)] {
			sum.Known++
			continue
		}
		fresh = append(fresh, rec)
	}

	base := catalog.Records(existing)
	baseUnique := len(dedupe.Deduplicate(base, ix.cfg.Dedupe).Unique)
	res := dedupe.Deduplicate(append(base, fresh...), ix.cfg.Dedupe)
	sum.New = len(res.Unique) - baseUnique

	// Rows already in the log are not filed again.
	prior := catalog.Merge(existingDups, nil)
	dups := catalog.Merge(prior, catalog.FromRecords(res.Duplicates))
	filed := dups[len(prior):]
	sum.Duplicates = len(filed)
	for _, d := range filed {
		ix.log.Info("duplicate", "title", d.Title, "year", d.Year, "size", d.Size)
	}

	sum.Similar = newPairs(dedupe.Similar(res.Unique, ix.cfg.SimilarityThreshold), known)
	for _, p := range sum.Similar {
		ix.log.Warn("possible duplicate",
			"a", p.A.Title,
			"b", p.B.Title,
			"score", fmt.Sprintf("%.2f", p.Score),
			"confidence", p.Confidence.String(),
		)
	}

	if !ix.cfg.DryRun {
		if err := ix.store.Save(ix.cfg.CatalogPath, catalog.FromRecords(res.Unique)); err != nil {
			return nil, fmt.Errorf("save catalog: %w", err)
		}
		ix.log.Info("catalog updated", "path", ix.cfg.CatalogPath, "rows", len(res.Unique))

		if err := ix.store.Save(ix.cfg.DuplicatesPath, dups); err != nil {
			return nil, fmt.Errorf("save duplicates: %w", err)
		}
		ix.log.Info("duplicates updated", "path", ix.cfg.DuplicatesPath, "rows", len(dups))
	}

	ix.log.Info("run complete",
		"scanned", sum.Scanned,
		"new", sum.New,
		"known", sum.Known,
		"duplicates", sum.Duplicates,
		"skipped", sum.Skipped,
		"size", humanize.IBytes(uint64(sum.TotalBytes)),
		"dry_run", ix.cfg.DryRun,
	)
	return sum, nil
}

// newPairs drops pairs whose records were both cataloged by an earlier run.
func newPairs(pairs []dedupe.Pair, known map[catalog.Row]bool) []dedupe.Pair {
	out := pairs[:0]
	for _, p := range pairs {
		if known[catalog.FromRecord(p.A)] && known[catalog.FromRecord(p.B)] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sizeLookup wraps scan.SizeOf to log misses and tally bytes.
func (ix *Indexer) sizeLookup(path string, sum *Summary) release.SizeFunc {
	stat := scan.SizeOf(ix.fs, path)
	return func() (int64, error) {
		n, err := stat()
		if err != nil {
			ix.log.Warn("size unavailable", "path", path, "error", err)
			return 0, err
		}
		sum.TotalBytes += n
		return n, nil
	}
}

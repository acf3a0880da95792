// Package dedupe partitions extracted records into first-seen and duplicate sets.
package dedupe

import (
	"fmt"
	"strings"

	"github.com/vmunix/mkvcat/pkg/release"
)

// KeyMode selects which fields identify a movie.
type KeyMode int

const (
	// KeyTitle keys on the normalized title alone.
	KeyTitle KeyMode = iota
	// KeyTitleYear appends the year to the title key when a year is present.
	KeyTitleYear
)

func (k KeyMode) String() string {
	switch k {
	case KeyTitleYear:
		return "title_year"
	default:
		return "title"
	}
}

// ParseKeyMode parses "title" or "title_year".
func ParseKeyMode(s string) (KeyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "title":
		return KeyTitle, nil
	case "title_year":
		return KeyTitleYear, nil
	default:
		return KeyTitle, fmt.Errorf("unknown key mode %q", s)
	}
}

// Policy decides what lands in the duplicates set on a key collision.
type Policy int

const (
	// PolicyFirstAndLater files the first-seen record under duplicates on the
	// first collision, alongside every later record with the same key.
	PolicyFirstAndLater Policy = iota
	// PolicyLaterOnly files only the repeats.
	PolicyLaterOnly
)

func (p Policy) String() string {
	switch p {
	case PolicyLaterOnly:
		return "later"
	default:
		return "first_and_later"
	}
}

// ParsePolicy parses "first_and_later" or "later".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first_and_later":
		return PolicyFirstAndLater, nil
	case "later":
		return PolicyLaterOnly, nil
	default:
		return PolicyFirstAndLater, fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// Options configures Deduplicate. The zero value keys on title and uses
// PolicyFirstAndLater.
type Options struct {
	Key    KeyMode
	Policy Policy
	// Loose keys on release.CleanTitle instead of the case-folded title,
	// so "Movie.Name" and "movie name" collide.
	Loose bool
}

// Result holds the two partitions, each in input order.
type Result struct {
	Unique     []release.Record
	Duplicates []release.Record
}

// Key returns the dedup key of r under opts.
func Key(r release.Record, opts Options) string {
	title := release.FoldTitle(r.Title)
	if opts.Loose {
		title = release.CleanTitle(r.Title)
	}
	if opts.Key == KeyTitleYear && r.Year != "" {
		return title + "\x00" + r.Year
	}
	return title
}

// Deduplicate keeps the first record of every key in Unique. Repeats go to
// Duplicates, preceded by the first-seen record under PolicyFirstAndLater.
// Under that policy the first record appears in both partitions.
func Deduplicate(records []release.Record, opts Options) Result {
	type entry struct {
		index    int  // position in Unique
		reported bool // first-seen record already filed as duplicate
	}

	var res Result
	seen := make(map[string]*entry, len(records))

	for _, r := range records {
		key := Key(r, opts)
		e, ok := seen[key]
		if !ok {
			seen[key] = &entry{index: len(res.Unique)}
			res.Unique = append(res.Unique, r)
			continue
		}
		if opts.Policy == PolicyFirstAndLater && !e.reported {
			res.Duplicates = append(res.Duplicates, res.Unique[e.index])
			e.reported = true
		}
		res.Duplicates = append(res.Duplicates, r)
	}
	return res
}

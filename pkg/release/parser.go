package release

import (
	"sort"
	"strings"
)

// SizeFunc reports the size in bytes of the file behind a filename.
// A non-nil error leaves Record.Size empty.
type SizeFunc func() (int64, error)

// titleTrimSet is stripped from the end of an extracted title.
const titleTrimSet = " \t._-(["

// Extractor parses filenames against a compiled Vocabulary.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	re *compiled
}

// NewExtractor compiles v into an Extractor.
func NewExtractor(v Vocabulary) (*Extractor, error) {
	c, err := compile(v)
	if err != nil {
		return nil, err
	}
	return &Extractor{re: c}, nil
}

var defaultExtractor = mustExtractor(DefaultVocabulary())

func mustExtractor(v Vocabulary) *Extractor {
	e, err := NewExtractor(v)
	if err != nil {
		panic(err)
	}
	return e
}

// Extract parses name with the default vocabulary.
func Extract(name string, size SizeFunc) Record {
	return defaultExtractor.Extract(name, size)
}

// Extract parses a filename into a Record. Steps run in a fixed order:
// each one sees the filename as left by the previous steps.
// Unmatched fields stay empty; Encoding falls back to DefaultEncoding.
func (e *Extractor) Extract(name string, size SizeFunc) Record {
	var r Record

	// Promotional "www.site.tld - " prefix
	name = e.re.sourceTag.ReplaceAllString(name, "")

	if m := e.re.format.FindStringSubmatch(name); m != nil {
		r.Format = m[1]
	}

	r.Encoding = DefaultEncoding
	if m := e.re.encoding.FindStringSubmatch(name); m != nil {
		r.Encoding = m[1]
	}

	r.Languages = e.languages(name)
	r.Audio = e.audio(name)

	if m := e.re.seasonEpisode.FindStringSubmatch(name); len(m) == 3 {
		r.Season, r.Episode = m[1], m[2]
	}

	r.Size = resolveSize(size)

	// Brackets carry languages and release groups, never the title.
	name = strings.TrimSpace(bracketRegex.ReplaceAllString(name, ""))
	r.Title, r.Year = splitTitleYear(name)

	return r
}

// languages merges the first bracketed segment with inline language names.
func (e *Extractor) languages(name string) string {
	seen := make(map[string]string)
	add := func(tok string) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return
		}
		key := strings.ToLower(tok)
		if canon, ok := e.re.canonical[key]; ok {
			tok = canon
		}
		if _, dup := seen[key]; !dup {
			seen[key] = tok
		}
	}

	if m := bracketRegex.FindStringSubmatch(name); m != nil {
		for _, tok := range strings.Split(m[1], languageSeparator) {
			add(tok)
		}
	}
	if e.re.language != nil {
		for _, m := range e.re.language.FindAllStringSubmatch(name, -1) {
			add(m[1])
		}
	}
	return joinSorted(seen, languageSeparator)
}

// audio collects every audio tag in name as a set.
func (e *Extractor) audio(name string) string {
	seen := make(map[string]string)
	for _, m := range e.re.audio.FindAllStringSubmatch(name, -1) {
		key := strings.ToLower(m[1])
		if _, dup := seen[key]; !dup {
			seen[key] = m[1]
		}
	}
	return joinSorted(seen, audioSeparator)
}

func joinSorted(set map[string]string, sep string) string {
	if len(set) == 0 {
		return ""
	}
	vals := make([]string, 0, len(set))
	for _, v := range set {
		vals = append(vals, v)
	}
	sort.Strings(vals)
	return strings.Join(vals, sep)
}

func resolveSize(size SizeFunc) string {
	if size == nil {
		return ""
	}
	n, err := size()
	if err != nil || n < 0 {
		return ""
	}
	return FormatSize(n)
}

// splitTitleYear prefers "Title (2021)". Otherwise the first bare 19xx/20xx
// token is the year and the title is everything before its first occurrence.
// A title that itself contains such a number ("Part 1999") is cut short there.
func splitTitleYear(name string) (title, year string) {
	if m := titleYearRegex.FindStringSubmatch(name); m != nil {
		return trimTitle(m[1]), m[2]
	}
	m := bareYearRegex.FindStringSubmatch(name)
	if m == nil {
		return trimTitle(name), ""
	}
	year = m[1]
	if idx := strings.Index(name, year); idx >= 0 {
		name = name[:idx]
	}
	return trimTitle(name), year
}

func trimTitle(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), titleTrimSet)
}

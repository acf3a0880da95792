package release

import (
	"regexp"
	"strings"
)

// DefaultEncoding is reported when a filename carries no codec tag.
const DefaultEncoding = "x264"

// Vocabulary is the static token catalog the extractor matches against.
// Each pattern is a regular expression source; Languages is a plain name list.
type Vocabulary struct {
	SourceTag     string
	Format        string
	Encoding      string
	Audio         string
	SeasonEpisode string
	Languages     []string
}

// DefaultVocabulary returns the built-in token catalog.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		SourceTag:     `(?i)^\s*www\.[\w.-]+ - `,
		Format:        `(?i)(\d{3,4}p|4K|2160p|HDRip|BluRay|HQ HDRip)`,
		Encoding:      `(?i)(x264|x265|HEVC|AVC|SDR|HDR10\+?)`,
		Audio:         `(?i)(DD\+5\.1|DD\+|DD plus|AAC|Dolby Atmos|2\.1|\d{3,4}Kbps)`,
		SeasonEpisode: `(?i)[Ss](\d{1,2})[\sEeP]*(\d{1,2})`,
		Languages: []string{
			"Tamil", "Telugu", "Hindi", "Malayalam", "Kannada", "Bengali",
			"Marathi", "Punjabi", "Gujarati", "Odia", "Urdu", "English",
		},
	}
}

// WithLanguages returns a copy of v with extra language names appended.
// Names already present (case-insensitively) are ignored.
func (v Vocabulary) WithLanguages(extra ...string) Vocabulary {
	langs := make([]string, 0, len(v.Languages)+len(extra))
	langs = append(langs, v.Languages...)
	for _, name := range extra {
		name = strings.TrimSpace(name)
		if name == "" || containsFold(langs, name) {
			continue
		}
		langs = append(langs, name)
	}
	v.Languages = langs
	return v
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// Patterns that are structural rather than vocabulary.
var (
	bracketRegex      = regexp.MustCompile(`\[(.*?)\]`)
	titleYearRegex    = regexp.MustCompile(`(.+?) \((\d{4})\)`)
	bareYearRegex     = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	languageSeparator = " + "
	audioSeparator    = " & "
)

// compiled holds the regular expressions built from a Vocabulary.
type compiled struct {
	sourceTag     *regexp.Regexp
	format        *regexp.Regexp
	encoding      *regexp.Regexp
	audio         *regexp.Regexp
	seasonEpisode *regexp.Regexp
	language      *regexp.Regexp
	canonical     map[string]string // lowercase -> vocabulary spelling
}

func compile(v Vocabulary) (*compiled, error) {
	c := &compiled{canonical: make(map[string]string, len(v.Languages))}

	var err error
	for _, p := range []struct {
		dst **regexp.Regexp
		src string
	}{
		{&c.sourceTag, v.SourceTag},
		{&c.format, v.Format},
		{&c.encoding, v.Encoding},
		{&c.audio, v.Audio},
		{&c.seasonEpisode, v.SeasonEpisode},
	} {
		if *p.dst, err = regexp.Compile(p.src); err != nil {
			return nil, err
		}
	}

	quoted := make([]string, 0, len(v.Languages))
	for _, name := range v.Languages {
		quoted = append(quoted, regexp.QuoteMeta(name))
		c.canonical[strings.ToLower(name)] = name
	}
	if len(quoted) > 0 {
		c.language, err = regexp.Compile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

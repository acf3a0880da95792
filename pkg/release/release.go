// Package release extracts catalog metadata from loosely structured media filenames.
package release

// Column names of a persisted record, in output order.
var Columns = []string{
	"Movie Name",
	"Year",
	"Format",
	"Encoding",
	"Languages",
	"Audio Format",
	"Season",
	"Episode",
	"Size",
}

// Record contains metadata parsed from a single filename.
// An empty string means the field is absent.
type Record struct {
	Title     string
	Year      string // 4 digits
	Format    string // 1080p, 4K, HDRip, BluRay, ...
	Encoding  string // never empty, defaults to x264
	Languages string // sorted, joined with " + "
	Audio     string // sorted, joined with " & "
	Season    string // set together with Episode
	Episode   string
	Size      string // "1.5 GB", "700.0 MB"
}

// Fields returns the record values in Columns order.
func (r Record) Fields() []string {
	return []string{
		r.Title,
		r.Year,
		r.Format,
		r.Encoding,
		r.Languages,
		r.Audio,
		r.Season,
		r.Episode,
		r.Size,
	}
}

// HasEpisode reports whether season and episode were both extracted.
func (r Record) HasEpisode() bool {
	return r.Season != "" && r.Episode != ""
}

// Validate returns ErrEmptyTitle when no title could be extracted.
func (r Record) Validate() error {
	if r.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}

package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/mkvcat/pkg/release"
)

func rec(title, year, size string) release.Record {
	return release.Record{Title: title, Year: year, Encoding: "x264", Size: size}
}

func titles(rs []release.Record) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Title+"|"+r.Size)
	}
	return out
}

func TestDeduplicate_FirstAndLater(t *testing.T) {
	records := []release.Record{
		rec("Leo", "2023", "1"),
		rec("Jailer", "2023", "2"),
		rec("leo ", "2023", "3"),
		rec("LEO", "2023", "4"),
		rec("Jailer", "", "5"),
	}

	res := Deduplicate(records, Options{})

	assert.Equal(t, []string{"Leo|1", "Jailer|2"}, titles(res.Unique))
	assert.Equal(t, []string{"Leo|1", "leo |3", "LEO|4", "Jailer|2", "Jailer|5"}, titles(res.Duplicates))
	assert.GreaterOrEqual(t, len(res.Unique)+len(res.Duplicates), len(records))
}

func TestDeduplicate_LaterOnly(t *testing.T) {
	records := []release.Record{
		rec("Leo", "2023", "1"),
		rec("Leo", "2023", "2"),
		rec("Vikram", "2022", "3"),
		rec("Leo", "2023", "4"),
	}

	res := Deduplicate(records, Options{Policy: PolicyLaterOnly})

	assert.Equal(t, []string{"Leo|1", "Vikram|3"}, titles(res.Unique))
	assert.Equal(t, []string{"Leo|2", "Leo|4"}, titles(res.Duplicates))
	assert.Equal(t, len(records), len(res.Unique)+len(res.Duplicates))
}

func TestDeduplicate_TitleYear(t *testing.T) {
	records := []release.Record{
		rec("Dune", "1984", "1"),
		rec("Dune", "2021", "2"),
		rec("Dune", "2021", "3"),
		rec("Dune", "", "4"),
	}

	res := Deduplicate(records, Options{Key: KeyTitleYear, Policy: PolicyLaterOnly})

	assert.Equal(t, []string{"Dune|1", "Dune|2", "Dune|4"}, titles(res.Unique))
	assert.Equal(t, []string{"Dune|3"}, titles(res.Duplicates))
}

func TestDeduplicate_Loose(t *testing.T) {
	records := []release.Record{
		rec("Movie.Name", "", "1"),
		rec("movie name", "", "2"),
	}

	strict := Deduplicate(records, Options{})
	assert.Len(t, strict.Unique, 2)

	loose := Deduplicate(records, Options{Loose: true, Policy: PolicyLaterOnly})
	assert.Equal(t, []string{"Movie.Name|1"}, titles(loose.Unique))
	assert.Equal(t, []string{"movie name|2"}, titles(loose.Duplicates))
}

func TestDeduplicate_UniqueHasOneRecordPerKey(t *testing.T) {
	var records []release.Record
	for i := 0; i < 10; i++ {
		records = append(records, rec("Same", "", string(rune('a'+i))))
	}

	for _, p := range []Policy{PolicyFirstAndLater, PolicyLaterOnly} {
		res := Deduplicate(records, Options{Policy: p})
		require.Len(t, res.Unique, 1, p.String())
		assert.Equal(t, "a", res.Unique[0].Size)
	}
}

func TestDeduplicate_Empty(t *testing.T) {
	res := Deduplicate(nil, Options{})
	assert.Empty(t, res.Unique)
	assert.Empty(t, res.Duplicates)
}

func TestParseKeyMode(t *testing.T) {
	tests := []struct {
		in      string
		want    KeyMode
		wantErr bool
	}{
		{"", KeyTitle, false},
		{"title", KeyTitle, false},
		{"Title_Year", KeyTitleYear, false},
		{"year", KeyTitle, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKeyMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustKeyMode(t, got.String()))
		})
	}
}

func mustKeyMode(t *testing.T, s string) KeyMode {
	t.Helper()
	k, err := ParseKeyMode(s)
	require.NoError(t, err)
	return k
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("later")
	require.NoError(t, err)
	assert.Equal(t, PolicyLaterOnly, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyFirstAndLater, p)
	assert.Equal(t, "first_and_later", p.String())

	_, err = ParsePolicy("all")
	assert.Error(t, err)
}

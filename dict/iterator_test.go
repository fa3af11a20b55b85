package dict

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/az-ai-labs/fsadict/fsa"
)

func TestIteratorYieldsEveryEntry(t *testing.T) {
	for _, version := range []byte{fsa.VersionFSA5, fsa.VersionCFSA, fsa.VersionCFSA2} {
		d := buildDict(t, version, testMeta(), polishEntries)

		var got []entry
		it := NewIterator(d)
		for row, ok := it.Next(); ok; row, ok = it.Next() {
			got = append(got, entry{row.Word(), row.Stem(), row.Tag()})
		}

		want := append([]entry(nil), polishEntries...)
		sort.Slice(want, func(i, j int) bool {
			if want[i].word != want[j].word {
				return want[i].word < want[j].word
			}
			return want[i].stem < want[j].stem
		})
		sort.Slice(got, func(i, j int) bool {
			if got[i].word != got[j].word {
				return got[i].word < got[j].word
			}
			return got[i].stem < got[j].stem
		})
		assert.Equal(t, want, got, "version 0x%02X", version)
	}
}

func TestIteratorDecodesCharset(t *testing.T) {
	meta := Metadata{
		Separator: '+',
		Encoding:  charmap.ISO8859_2,
		Encoder:   EncoderTrimPrefixAndSuffix,
	}
	entries := []entry{
		{"żółwia", "żółw", "subst:sg:gen"},
		{"żółwie", "żółw", "subst:pl:nom"},
	}
	d := buildDict(t, fsa.VersionCFSA2, meta, entries)

	seen := map[string]string{}
	it := NewIterator(d)
	for row, ok := it.Next(); ok; row, ok = it.Next() {
		require.Equal(t, "żółw", row.Stem())
		seen[row.Word()] = row.Tag()
	}
	assert.Equal(t, map[string]string{
		"żółwia": "subst:sg:gen",
		"żółwie": "subst:pl:nom",
	}, seen)
}

func TestIteratorSkipsSequencesWithoutSeparator(t *testing.T) {
	meta := testMeta()
	seqs := [][]byte{
		[]byte("plain"),
		[]byte("word+A+tag"),
	}
	d, err := New(mustFSA(t, fsa.VersionFSA5, seqs), meta)
	require.NoError(t, err)

	var words []string
	it := NewIterator(d)
	for row, ok := it.Next(); ok; row, ok = it.Next() {
		words = append(words, row.Word())
	}
	assert.Equal(t, []string{"word"}, words)
}

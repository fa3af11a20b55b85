package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/az-ai-labs/fsadict/fsa"
	"github.com/az-ai-labs/fsadict/internal/fsatest"
)

// entry is one dictionary row used to assemble test automata.
type entry struct {
	word, stem, tag string
}

// buildDict assembles word+SEP+encoded-stem+SEP+tag sequences, builds an
// automaton image and wraps it in a Dictionary.
func buildDict(t *testing.T, version byte, meta Metadata, entries []entry) *Dictionary {
	t.Helper()
	enc := func(s string) []byte {
		if meta.Encoding == nil {
			return []byte(s)
		}
		b, err := meta.Encoding.NewEncoder().Bytes([]byte(s))
		require.NoError(t, err)
		return b
	}
	var seqs [][]byte
	for _, e := range entries {
		word := enc(e.word)
		seq := append([]byte(nil), word...)
		seq = append(seq, meta.Separator)
		seq = meta.Encoder.Encode(seq, word, enc(e.stem))
		seq = append(seq, meta.Separator)
		seq = append(seq, enc(e.tag)...)
		seqs = append(seqs, seq)
	}
	d, err := New(mustFSA(t, version, seqs), meta)
	require.NoError(t, err)
	return d
}

func mustFSA(t *testing.T, version byte, seqs [][]byte) fsa.Automaton {
	t.Helper()
	a, err := fsa.FromBytes(fsatest.Build(version, seqs, true))
	require.NoError(t, err)
	return a
}

var polishEntries = []entry{
	{"kot", "kot", "subst:sg:nom"},
	{"kota", "kot", "subst:sg:gen"},
	{"koty", "kot", "subst:pl:nom"},
	{"psa", "pies", "subst:sg:gen"},
	{"psu", "pies", "subst:sg:dat"},
	{"wygrana", "wygrana", "subst"},
	{"wygrana", "wygrać", "verb:ppas"},
}

func testMeta() Metadata {
	return Metadata{Separator: '+', Encoder: EncoderTrimSuffix}
}

func TestLookupFindsAllForms(t *testing.T) {
	for _, version := range []byte{fsa.VersionFSA5, fsa.VersionCFSA, fsa.VersionCFSA2} {
		d := buildDict(t, version, testMeta(), polishEntries)
		l := NewLookup(d)

		rows := l.Lookup("kota")
		require.Len(t, rows, 1, "version 0x%02X", version)
		assert.Equal(t, "kota", rows[0].Word())
		assert.Equal(t, "kot", rows[0].Stem())
		assert.Equal(t, "subst:sg:gen", rows[0].Tag())

		rows = l.Lookup("psu")
		require.Len(t, rows, 1)
		assert.Equal(t, "pies", rows[0].Stem())
		assert.Equal(t, "subst:sg:dat", rows[0].Tag())
	}
}

func TestLookupMultipleReadings(t *testing.T) {
	d := buildDict(t, fsa.VersionFSA5, testMeta(), polishEntries)
	l := NewLookup(d)

	rows := l.Lookup("wygrana")
	require.Len(t, rows, 2)
	stems := []string{rows[0].Stem(), rows[1].Stem()}
	assert.ElementsMatch(t, []string{"wygrana", "wygrać"}, stems)
}

func TestLookupEmptyOutcomes(t *testing.T) {
	entries := append([]entry(nil), polishEntries...)
	d := buildDict(t, fsa.VersionFSA5, testMeta(), entries)
	l := NewLookup(d)

	tests := []struct {
		name string
		word string
	}{
		{"absent word", "sowa"},
		{"diverges inside a form", "kotx"},
		{"prefix only", "ko"},
		{"empty word", ""},
		{"separator in word", "ko+ta"},
		{"separator alone", "+"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, l.Lookup(tt.word))
		})
	}
}

// A stored sequence with no separator behind it is not a dictionary
// entry; looking its prefix up must yield nothing instead of failing.
func TestLookupWordWithoutSeparatorArc(t *testing.T) {
	meta := testMeta()
	seqs := [][]byte{[]byte("solo")}
	for _, e := range polishEntries {
		seq := append([]byte(e.word), '+')
		seq = meta.Encoder.Encode(seq, []byte(e.word), []byte(e.stem))
		seq = append(seq, '+')
		seq = append(seq, e.tag...)
		seqs = append(seqs, seq)
	}
	d, err := New(mustFSA(t, fsa.VersionFSA5, seqs), meta)
	require.NoError(t, err)

	l := NewLookup(d)
	assert.Empty(t, l.Lookup("solo"))
	assert.Empty(t, l.Lookup("sol"))
	require.NotEmpty(t, l.Lookup("kota"), "regular entries still resolve")
}

func TestLookupIdempotent(t *testing.T) {
	d := buildDict(t, fsa.VersionCFSA2, testMeta(), polishEntries)
	l := NewLookup(d)

	type pair struct{ stem, tag string }
	snapshot := func(word string) []pair {
		var out []pair
		for _, row := range l.Lookup(word) {
			out = append(out, pair{row.Stem(), row.Tag()})
		}
		return out
	}

	first := snapshot("wygrana")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, snapshot("wygrana"), "iteration %d", i)
	}
}

func TestLookupRowPoolGrowth(t *testing.T) {
	// More readings for one word than the initial row pool holds.
	var entries []entry
	for i := 0; i < 2*initialRows+3; i++ {
		entries = append(entries, entry{
			word: "forma",
			stem: "stem",
			tag:  string(rune('a' + i)),
		})
	}
	d := buildDict(t, fsa.VersionFSA5, testMeta(), entries)
	l := NewLookup(d)

	rows := l.Lookup("forma")
	assert.Len(t, rows, len(entries))
	for _, row := range rows {
		assert.Equal(t, "stem", row.Stem())
	}
}

func TestLookupCharsetDictionary(t *testing.T) {
	meta := Metadata{
		Separator: '+',
		Encoding:  charmap.ISO8859_2,
		Encoder:   EncoderTrimSuffix,
	}
	d := buildDict(t, fsa.VersionFSA5, meta, []entry{
		{"żółwia", "żółw", "subst:sg:gen"},
		{"żółw", "żółw", "subst:sg:nom"},
	})
	l := NewLookup(d)

	rows := l.Lookup("żółwia")
	require.Len(t, rows, 1)
	assert.Equal(t, "żółwia", rows[0].Word())
	assert.Equal(t, "żółw", rows[0].Stem())
	assert.Equal(t, "subst:sg:gen", rows[0].Tag())

	// Unmappable characters cannot occur in the dictionary; the lookup
	// recovers with an empty result instead of an error.
	assert.Empty(t, l.Lookup("职"))
}

func TestLookupAppliesSubstitutions(t *testing.T) {
	meta := testMeta()
	meta.Input = []Replacement{{From: "ß", To: "ss"}}
	meta.Output = []Replacement{{From: "ss", To: "ß"}}
	d := buildDict(t, fsa.VersionFSA5, meta, []entry{
		{"strasse", "strasse", "noun"},
	})
	l := NewLookup(d)

	rows := l.Lookup("straße")
	require.Len(t, rows, 1)
	assert.Equal(t, "straße", rows[0].Word())
	assert.Equal(t, "strasse", rows[0].Stem())
}

func TestLookupTagless(t *testing.T) {
	d := buildDict(t, fsa.VersionFSA5, testMeta(), []entry{
		{"bare", "bar", ""},
	})
	l := NewLookup(d)

	rows := l.Lookup("bare")
	require.Len(t, rows, 1)
	assert.Equal(t, "bar", rows[0].Stem())
	assert.Equal(t, "", rows[0].Tag())
}

func TestNewValidatesMetadata(t *testing.T) {
	a := mustFSA(t, fsa.VersionFSA5, [][]byte{[]byte("a+A+x")})

	_, err := New(a, Metadata{Separator: 0, Encoder: EncoderTrimSuffix})
	assert.Error(t, err, "zero separator")

	_, err = New(a, Metadata{Separator: '+', Encoder: EncoderType(42)})
	assert.Error(t, err, "unknown encoder")
}

package fsa_test

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/az-ai-labs/fsadict/fsa"
	"github.com/az-ai-labs/fsadict/internal/fsatest"
)

// versions lists every on-disk encoding; most tests run against all of
// them through the same Automaton interface.
var versions = []struct {
	name    string
	version byte
}{
	{"fsa5", fsa.VersionFSA5},
	{"cfsa", fsa.VersionCFSA},
	{"cfsa2", fsa.VersionCFSA2},
}

var testWords = []string{
	"cat", "cats", "dog", "dogged", "dogs", "door", "zebra",
}

func load(t *testing.T, version byte, words []string, numbers bool) fsa.Automaton {
	t.Helper()
	a, err := fsa.FromBytes(fsatest.BuildStrings(version, words, numbers))
	require.NoError(t, err)
	return a
}

// collect drains every stored sequence reachable from node.
func collect(a fsa.Automaton, node int) []string {
	var out []string
	it := fsa.NewIterator(a, node)
	for seq, ok := it.Next(); ok; seq, ok = it.Next() {
		out = append(out, string(seq))
	}
	return out
}

func TestCodecsEnumerateStoredSequences(t *testing.T) {
	want := append([]string(nil), testWords...)
	sort.Strings(want)

	for _, v := range versions {
		t.Run(v.name, func(t *testing.T) {
			a := load(t, v.version, testWords, true)
			assert.Equal(t, want, collect(a, a.Root()))
		})
	}
}

func TestCodecsArcNavigation(t *testing.T) {
	for _, v := range versions {
		t.Run(v.name, func(t *testing.T) {
			a := load(t, v.version, testWords, true)
			root := a.Root()

			// Root fans out to the distinct first bytes, in byte order.
			require.Equal(t, 3, fsa.ArcCount(a, root))
			var labels []byte
			for arc := a.FirstArc(root); arc != 0; arc = a.NextArc(arc) {
				labels = append(labels, a.Label(arc))
			}
			assert.Equal(t, []byte("cdz"), labels)

			// Every stored label is found by the scan; absent ones are not.
			assert.NotZero(t, a.Arc(root, 'd'))
			assert.Zero(t, a.Arc(root, 'x'))

			// "cat" ends on a final, non-terminal arc ("cats" continues).
			node := root
			for _, b := range []byte("ca") {
				arc := a.Arc(node, b)
				require.NotZero(t, arc)
				require.False(t, a.IsFinal(arc))
				node = a.EndNode(arc)
			}
			arc := a.Arc(node, 't')
			require.NotZero(t, arc)
			assert.True(t, a.IsFinal(arc))
			assert.False(t, a.IsTerminal(arc))

			// The 's' of "cats" is final and terminal.
			arc = a.Arc(a.EndNode(arc), 's')
			require.NotZero(t, arc)
			assert.True(t, a.IsFinal(arc))
			assert.True(t, a.IsTerminal(arc))
		})
	}
}

func TestCodecsRightLanguageCounts(t *testing.T) {
	for _, v := range versions {
		t.Run(v.name, func(t *testing.T) {
			a := load(t, v.version, testWords, true)
			require.True(t, a.Flags().Numbers())
			assert.Equal(t, len(testWords), a.RightCount(a.Root()))

			// The subtree under "dog" holds dog, dogged, dogs.
			node := a.Root()
			for _, b := range []byte("dog") {
				node = a.EndNode(a.Arc(node, b))
			}
			assert.Equal(t, 2, a.RightCount(node)) // "ged", "s"
		})
	}
}

func TestCodecsWithoutNumbers(t *testing.T) {
	for _, v := range versions {
		t.Run(v.name, func(t *testing.T) {
			a := load(t, v.version, testWords, false)
			assert.False(t, a.Flags().Numbers())

			want := append([]string(nil), testWords...)
			sort.Strings(want)
			assert.Equal(t, want, collect(a, a.Root()))
		})
	}
}

func TestStat(t *testing.T) {
	for _, v := range versions {
		for _, numbers := range []bool{true, false} {
			a := load(t, v.version, testWords, numbers)
			info := fsa.Stat(a)
			assert.Equal(t, len(testWords), info.Sequences, "%s numbers=%v", v.name, numbers)
			assert.Equal(t, len(testWords), info.FinalArcs, "%s numbers=%v", v.name, numbers)
			assert.Greater(t, info.Nodes, 0)
			assert.GreaterOrEqual(t, info.Arcs, info.Nodes-1)
		}
	}
}

func TestFromBytesHeaderErrors(t *testing.T) {
	valid := fsatest.BuildStrings(fsa.VersionFSA5, testWords, true)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, fsa.ErrTruncated},
		{"short", []byte{'\\', 'f', 's'}, fsa.ErrTruncated},
		{"bad magic", append([]byte("\\fsb"), valid[4:]...), fsa.ErrBadMagic},
		{"unknown version", append([]byte("\\fsa\x42"), valid[5:]...), fsa.ErrUnsupportedVersion},
		{"truncated body", valid[:6], fsa.ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fsa.FromBytes(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewReadsStream(t *testing.T) {
	image := fsatest.BuildStrings(fsa.VersionCFSA2, testWords, true)
	a, err := fsa.New(bytes.NewReader(image))
	require.NoError(t, err)
	assert.Equal(t, len(testWords), a.RightCount(a.Root()))
}

package dict

import (
	"bytes"

	"golang.org/x/text/encoding"

	"github.com/az-ai-labs/fsadict/fsa"
)

// initialRows is the row pool size of a fresh Lookup; the pool doubles
// whenever a lookup yields more results.
const initialRows = 8

// WordData is one lookup result row: the inflected word with one decoded
// (stem, tag) pair. Rows belong to the Lookup (or Iterator) that
// produced them and are overwritten by its next call; callers keeping
// results must copy the strings or byte slices out first.
type WordData struct {
	word    string
	stemBuf []byte
	tagBuf  []byte
	dec     *encoding.Decoder
}

// Word returns the inflected word, with output substitutions applied.
func (w *WordData) Word() string { return w.word }

// Stem returns the decoded base form.
func (w *WordData) Stem() string { return w.decodeString(w.stemBuf) }

// Tag returns the decoded grammatical tag; empty when the entry carries
// none.
func (w *WordData) Tag() string { return w.decodeString(w.tagBuf) }

// StemBytes returns the base form in the dictionary's byte encoding.
// The slice aliases the row's buffer.
func (w *WordData) StemBytes() []byte { return w.stemBuf }

// TagBytes returns the tag in the dictionary's byte encoding. The slice
// aliases the row's buffer.
func (w *WordData) TagBytes() []byte { return w.tagBuf }

func (w *WordData) decodeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if w.dec == nil {
		return string(b)
	}
	s, err := w.dec.String(string(b))
	if err != nil {
		// The decoder was chosen by the metadata collaborator to
		// match the dictionary bytes; a failure here means the entry
		// bytes are not in the declared encoding.
		return string(b)
	}
	return s
}

// Lookup is a single-session lookup service over one dictionary. It owns
// reusable scratch state (match result, enumerator, row pool, codec
// buffers) and must not be used from more than one goroutine at a time;
// create one Lookup per worker.
type Lookup struct {
	dict *Dictionary
	aut  fsa.Automaton
	root int
	sep  byte
	code EncoderType

	trav   *fsa.Traversal
	finals *fsa.Iterator
	match  fsa.MatchResult

	enc *encoding.Encoder
	dec *encoding.Decoder

	rows    []WordData
	wordBuf []byte
}

// NewLookup creates a lookup session over d.
func NewLookup(d *Dictionary) *Lookup {
	l := &Lookup{
		dict: d,
		aut:  d.FSA,
		root: d.FSA.Root(),
		sep:  d.Meta.Separator,
		code: d.Meta.Encoder,
		trav: fsa.NewTraversal(d.FSA),
		rows: make([]WordData, initialRows),
	}
	l.finals = fsa.NewIterator(d.FSA, 0)
	if d.Meta.Encoding != nil {
		l.enc = d.Meta.Encoding.NewEncoder()
		l.dec = d.Meta.Encoding.NewDecoder()
	}
	return l
}

// Lookup returns all (stem, tag) rows stored for word. The returned
// slice and its rows are reused by the next call on this session.
//
// Empty results, never errors: a word containing the separator byte, a
// word with characters unmappable in the dictionary encoding, and a word
// absent from the dictionary. A word stored with no separator arc behind
// it (which a well-formed dictionary never contains) also yields an
// empty result rather than an error, matching the reference behavior of
// the on-disk format.
func (l *Lookup) Lookup(word string) []WordData {
	in := applyReplacements(word, l.dict.Meta.Input)

	wb, ok := l.encode(in)
	if !ok {
		return nil
	}
	l.wordBuf = wb
	// Entries reserve the separator byte; a query containing it cannot
	// be stored and would desynchronize the entry layout.
	if bytes.IndexByte(wb, l.sep) >= 0 {
		return nil
	}

	l.trav.Match(&l.match, wb, l.root)
	if l.match.Kind != fsa.SequenceIsAPrefix {
		return nil
	}
	arc := l.aut.Arc(l.match.Node, l.sep)
	if arc == 0 || l.aut.IsFinal(arc) {
		// No base forms behind this word.
		return nil
	}

	display := applyReplacements(in, l.dict.Meta.Output)
	prefix := l.code.PrefixBytes()
	n := 0
	l.finals.RestartFrom(l.aut.EndNode(arc))
	for {
		seq, more := l.finals.Next()
		if !more {
			break
		}
		// seq is [prefix bytes][stem payload] SEP [tag]. The scan for
		// the tag separator starts past the codec header, whose count
		// bytes may collide with the separator value.
		sepPos := prefix
		for sepPos < len(seq) && seq[sepPos] != l.sep {
			sepPos++
		}

		row := l.row(n)
		n++
		row.word = display
		row.dec = l.dec
		row.stemBuf = l.code.Decode(row.stemBuf[:0], wb, seq[:sepPos])
		row.tagBuf = row.tagBuf[:0]
		if sepPos+1 < len(seq) {
			row.tagBuf = append(row.tagBuf, seq[sepPos+1:]...)
		}
	}
	return l.rows[:n]
}

// row returns the i-th pool row, doubling the pool when exhausted.
func (l *Lookup) row(i int) *WordData {
	if i == len(l.rows) {
		grown := make([]WordData, 2*len(l.rows))
		copy(grown, l.rows)
		l.rows = grown
	}
	return &l.rows[i]
}

// encode converts a query to the dictionary's byte encoding, reusing the
// session buffer. ok is false when the word cannot be represented, which
// proves the dictionary cannot contain it.
func (l *Lookup) encode(word string) ([]byte, bool) {
	if l.enc == nil {
		return append(l.wordBuf[:0], word...), true
	}
	out, err := l.enc.Bytes([]byte(word))
	if err != nil {
		return nil, false
	}
	return append(l.wordBuf[:0], out...), true
}

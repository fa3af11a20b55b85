package dict

import "github.com/az-ai-labs/fsadict/fsa"

// Iterator walks every entry of a dictionary in stored (byte-
// lexicographic) order, decoding each into a WordData row without
// needing a query word. Like Lookup, an Iterator is single-goroutine
// scratch state over a shared Dictionary.
type Iterator struct {
	dict   *Dictionary
	finals *fsa.Iterator
	row    WordData
}

// NewIterator returns an iterator over all entries of d.
func NewIterator(d *Dictionary) *Iterator {
	it := &Iterator{
		dict:   d,
		finals: fsa.NewIterator(d.FSA, d.FSA.Root()),
	}
	if d.Meta.Encoding != nil {
		it.row.dec = d.Meta.Encoding.NewDecoder()
	}
	return it
}

// Next returns the next entry, or false when the dictionary is
// exhausted. The row is reused by the following call.
func (it *Iterator) Next() (*WordData, bool) {
	meta := &it.dict.Meta
	prefix := meta.Encoder.PrefixBytes()
	for {
		seq, more := it.finals.Next()
		if !more {
			return nil, false
		}
		// Entries are inflected SEP encoded-stem SEP tag; the
		// inflected part never contains the separator.
		wordEnd := indexByte(seq, meta.Separator, 0)
		if wordEnd < 0 {
			// A sequence with no separator carries no stem entry;
			// skip it rather than fail the whole walk.
			continue
		}
		word := seq[:wordEnd]
		rest := seq[wordEnd+1:]

		// The stem scan starts past the codec header bytes, which may
		// collide with the separator value.
		stemEnd := indexByte(rest, meta.Separator, prefix)
		if stemEnd < 0 {
			stemEnd = len(rest)
		}

		row := &it.row
		row.word = applyReplacements(row.decodeString(word), meta.Output)
		row.stemBuf = meta.Encoder.Decode(row.stemBuf[:0], word, rest[:stemEnd])
		row.tagBuf = row.tagBuf[:0]
		if stemEnd+1 < len(rest) {
			row.tagBuf = append(row.tagBuf, rest[stemEnd+1:]...)
		}
		return row, true
	}
}

// indexByte returns the index of the first b in s at or after from, or
// -1 if absent.
func indexByte(s []byte, b byte, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

package dict

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
)

// Replacement is one ordered character substitution applied to lookup
// input before encoding or to the word field of results after decoding.
type Replacement struct {
	From string
	To   string
}

// Metadata is the resolved dictionary configuration a metadata
// collaborator supplies. Parsing metadata files is not this package's
// job; callers hand over final values.
//
// Separator is the single byte dividing inflected form, encoded stem and
// tag inside every stored entry; the collaborator guarantees it encodes
// to exactly one byte in Encoding and never occurs inside entry content.
// A nil Encoding means entries are raw UTF-8.
type Metadata struct {
	Separator byte
	Encoding  encoding.Encoding
	Encoder   EncoderType

	// Input substitutions are applied to a query before it is encoded;
	// Output substitutions to the word field of each result row.
	Input  []Replacement
	Output []Replacement
}

func (m Metadata) validate() error {
	if m.Separator == 0 {
		return fmt.Errorf("dict: separator byte must be set")
	}
	if m.Encoder < EncoderNone || m.Encoder > EncoderTrimInfixAndSuffix {
		return fmt.Errorf("dict: invalid encoder type %d", int(m.Encoder))
	}
	return nil
}

// applyReplacements applies rs to s in order. Most dictionaries carry no
// substitutions, so the common path is a no-op.
func applyReplacements(s string, rs []Replacement) string {
	for _, r := range rs {
		s = strings.ReplaceAll(s, r.From, r.To)
	}
	return s
}

// Package dict looks inflected words up in a compressed morphological
// dictionary, returning their base forms (stems) and grammatical tags.
//
// A dictionary is a finite-state automaton (package fsa) whose stored
// sequences have the shape
//
//	inflected SEP encoded-stem SEP tag
//
// where SEP is a separator byte and the stem is delta-compressed against
// the inflected form by one of four codecs (EncoderType). The package
// provides two layers:
//
//   - Lookup: per-session word lookup returning WordData rows.
//   - Iterator: a walk over every entry of the dictionary.
//
// The automaton is immutable and safely shared; Lookup and Iterator hold
// mutable scratch state and must each stay confined to one goroutine.
// The intended pattern is one Lookup per worker over one shared
// Dictionary.
package dict

import (
	"fmt"
	"io"

	"github.com/az-ai-labs/fsadict/fsa"
)

// Dictionary pairs a loaded automaton with its resolved metadata.
type Dictionary struct {
	FSA  fsa.Automaton
	Meta Metadata
}

// New wraps an already-loaded automaton.
func New(a fsa.Automaton, meta Metadata) (*Dictionary, error) {
	if err := meta.validate(); err != nil {
		return nil, err
	}
	return &Dictionary{FSA: a, Meta: meta}, nil
}

// Load reads an automaton image from r.
func Load(r io.Reader, meta Metadata) (*Dictionary, error) {
	a, err := fsa.New(r)
	if err != nil {
		return nil, fmt.Errorf("dict: %w", err)
	}
	return New(a, meta)
}

// LoadFile reads an automaton image from the file at path.
func LoadFile(path string, meta Metadata) (*Dictionary, error) {
	a, err := fsa.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dict: %w", err)
	}
	return New(a, meta)
}

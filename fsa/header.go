package fsa

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Automaton file versions, stored in the byte following the magic number.
const (
	VersionFSA5  = 0x05
	VersionCFSA  = 0xC5
	VersionCFSA2 = 0xC6
)

// fsaMagic is the 4-byte magic number opening every automaton file.
var fsaMagic = [4]byte{'\\', 'f', 's', 'a'}

var (
	// ErrBadMagic means the stream does not start with the \fsa magic.
	ErrBadMagic = errors.New("fsa: invalid file magic")
	// ErrUnsupportedVersion means the version byte selects no known codec.
	ErrUnsupportedVersion = errors.New("fsa: unsupported automaton version")
	// ErrTruncated means the stream ended inside the header.
	ErrTruncated = errors.New("fsa: truncated automaton stream")
)

// New reads an automaton from r, selecting the codec from the header
// version byte. The whole stream is read into memory; the returned
// automaton holds the only reference to it.
func New(r io.Reader) (Automaton, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fsa: reading automaton: %w", err)
	}
	return FromBytes(data)
}

// ReadFile reads an automaton from the file at path.
func ReadFile(path string) (Automaton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fsa: reading automaton: %w", err)
	}
	return FromBytes(data)
}

// FromBytes decodes an automaton from an in-memory image. The automaton
// takes ownership of data; callers must not modify it afterwards.
func FromBytes(data []byte) (Automaton, error) {
	if len(data) < len(fsaMagic)+1 {
		return nil, ErrTruncated
	}
	if data[0] != fsaMagic[0] || data[1] != fsaMagic[1] ||
		data[2] != fsaMagic[2] || data[3] != fsaMagic[3] {
		return nil, ErrBadMagic
	}
	version := data[4]
	body := data[5:]
	switch version {
	case VersionFSA5:
		return newFSA5(body)
	case VersionCFSA:
		return newCFSA(body)
	case VersionCFSA2:
		return newCFSA2(body)
	default:
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnsupportedVersion, version)
	}
}

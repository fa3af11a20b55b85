package dict

import "fmt"

// EncoderType selects the stem compression codec of a dictionary: how an
// entry's stem was delta-encoded against its inflected form at build
// time. The selector comes from dictionary metadata.
type EncoderType int

const (
	// EncoderNone stores the stem verbatim.
	EncoderNone EncoderType = iota
	// EncoderTrimSuffix encodes the stem as "strip K trailing bytes
	// from the inflected form, append a literal suffix".
	EncoderTrimSuffix
	// EncoderTrimPrefixAndSuffix additionally strips a run of leading
	// bytes from the inflected form.
	EncoderTrimPrefixAndSuffix
	// EncoderTrimInfixAndSuffix strips an interior span and a run of
	// trailing bytes; the most general and the slowest to encode.
	EncoderTrimInfixAndSuffix
)

// removeEverything is the reserved single-byte count meaning "discard the
// whole source sequence". Counts are stored biased by 'A', so a count of
// 0 reads as 'A' in the raw entry bytes.
const removeEverything = 255

// ParseEncoderType resolves a metadata selector name (NONE, SUFFIX,
// PREFIX, INFIX).
func ParseEncoderType(name string) (EncoderType, error) {
	switch name {
	case "NONE":
		return EncoderNone, nil
	case "SUFFIX":
		return EncoderTrimSuffix, nil
	case "PREFIX":
		return EncoderTrimPrefixAndSuffix, nil
	case "INFIX":
		return EncoderTrimInfixAndSuffix, nil
	default:
		return 0, fmt.Errorf("dict: unknown encoder type %q", name)
	}
}

func (t EncoderType) String() string {
	switch t {
	case EncoderNone:
		return "NONE"
	case EncoderTrimSuffix:
		return "SUFFIX"
	case EncoderTrimPrefixAndSuffix:
		return "PREFIX"
	case EncoderTrimInfixAndSuffix:
		return "INFIX"
	default:
		return fmt.Sprintf("EncoderType(%d)", int(t))
	}
}

// PrefixBytes returns the number of codec header bytes opening every
// encoded stem: the 'A'-biased trim counts.
func (t EncoderType) PrefixBytes() int {
	switch t {
	case EncoderNone:
		return 0
	case EncoderTrimSuffix:
		return 1
	case EncoderTrimPrefixAndSuffix:
		return 2
	default:
		return 3
	}
}

// Encode appends to dst the encoding of target relative to source and
// returns the extended slice. Decode inverts it exactly:
// Decode(nil, source, Encode(nil, source, target)) equals target for all
// byte sequences, including empty ones.
func (t EncoderType) Encode(dst, source, target []byte) []byte {
	switch t {
	case EncoderNone:
		return append(dst, target...)
	case EncoderTrimSuffix:
		return encodeTrimSuffix(dst, source, target)
	case EncoderTrimPrefixAndSuffix:
		return encodeTrimPrefixSuffix(dst, source, target)
	default:
		return encodeTrimInfixSuffix(dst, source, target)
	}
}

// Decode appends to dst the stem reconstructed from source and the
// encoded form, and returns the extended slice. Encoded forms shorter
// than PrefixBytes or inconsistent with source indicate a corrupt entry
// and panic; entries read from a well-formed dictionary never do.
func (t EncoderType) Decode(dst, source, encoded []byte) []byte {
	switch t {
	case EncoderNone:
		return append(dst, encoded...)
	case EncoderTrimSuffix:
		return decodeTrimSuffix(dst, source, encoded)
	case EncoderTrimPrefixAndSuffix:
		return decodeTrimPrefixSuffix(dst, source, encoded)
	default:
		return decodeTrimInfixSuffix(dst, source, encoded)
	}
}

// sharedPrefixLen returns the length of the longest common prefix of a
// and b.
func sharedPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func encodeTrimSuffix(dst, source, target []byte) []byte {
	shared := sharedPrefixLen(source, target)
	trim := len(source) - shared
	if trim >= removeEverything {
		trim = removeEverything
		shared = 0
	}
	dst = append(dst, byte(trim)+'A')
	return append(dst, target[shared:]...)
}

func decodeTrimSuffix(dst, source, encoded []byte) []byte {
	trim := int(encoded[0] - 'A')
	if trim == removeEverything {
		trim = len(source)
	}
	dst = append(dst, source[:len(source)-trim]...)
	return append(dst, encoded[1:]...)
}

func encodeTrimPrefixSuffix(dst, source, target []byte) []byte {
	// Pick the source offset whose tail shares the longest prefix with
	// the target, considering only anchors both of whose trim counts
	// still fit in one byte.
	maxShared, maxIdx := 0, 0
	for i := 0; i < len(source); i++ {
		shared := sharedPrefixLen(source[i:], target)
		if shared > maxShared && i < removeEverything &&
			len(source)-(i+shared) < removeEverything {
			maxShared, maxIdx = shared, i
		}
	}
	trimPrefix := maxIdx
	trimSuffix := len(source) - (maxIdx + maxShared)
	if trimPrefix >= removeEverything || trimSuffix >= removeEverything {
		// Unencodable in one byte each: discard the whole source.
		maxShared = 0
		trimPrefix, trimSuffix = removeEverything, removeEverything
	}
	dst = append(dst, byte(trimPrefix)+'A', byte(trimSuffix)+'A')
	return append(dst, target[maxShared:]...)
}

func decodeTrimPrefixSuffix(dst, source, encoded []byte) []byte {
	trimPrefix := int(encoded[0] - 'A')
	trimSuffix := int(encoded[1] - 'A')
	if trimPrefix == removeEverything || trimSuffix == removeEverything {
		trimPrefix = len(source)
		trimSuffix = 0
	}
	dst = append(dst, source[trimPrefix:len(source)-trimSuffix]...)
	return append(dst, encoded[2:]...)
}

// sharedPrefixWithGap returns the shared prefix length of target and the
// concatenation source[:i] + source[i+j:].
func sharedPrefixWithGap(source []byte, i, j int, target []byte) int {
	k := 0
	for k < i && k < len(target) && source[k] == target[k] {
		k++
	}
	if k < i {
		return k
	}
	for i+j+(k-i) < len(source) && k < len(target) && source[j+k] == target[k] {
		k++
	}
	return k
}

func encodeTrimInfixSuffix(dst, source, target []byte) []byte {
	// Baseline: no infix removed.
	infixIdx, infixLen := 0, 0
	maxShared := sharedPrefixLen(source, target)

	// Try every interior span; deleting [i, i+j) must lengthen the
	// shared prefix to be worth encoding, and every count must still
	// fit in one byte.
	for i := 0; i < len(source) && i < removeEverything; i++ {
		for j := 1; j <= len(source)-i && j < removeEverything; j++ {
			shared := sharedPrefixWithGap(source, i, j, target)
			if shared > maxShared && len(source)-j-shared < removeEverything {
				maxShared = shared
				infixIdx, infixLen = i, j
			}
		}
	}

	trimSuffix := len(source) - infixLen - maxShared
	// A span touching the end of the source is just a suffix trim;
	// normalize so equivalent outcomes have one encoding.
	if trimSuffix == 0 && infixLen > 0 && infixIdx+infixLen == len(source) {
		trimSuffix = infixLen
		infixIdx, infixLen = 0, 0
	}
	if infixIdx >= removeEverything || infixLen >= removeEverything ||
		trimSuffix >= removeEverything {
		maxShared = 0
		infixIdx = 0
		infixLen, trimSuffix = removeEverything, removeEverything
	}
	dst = append(dst, byte(infixIdx)+'A', byte(infixLen)+'A', byte(trimSuffix)+'A')
	return append(dst, target[maxShared:]...)
}

func decodeTrimInfixSuffix(dst, source, encoded []byte) []byte {
	infixIdx := int(encoded[0] - 'A')
	infixLen := int(encoded[1] - 'A')
	trimSuffix := int(encoded[2] - 'A')
	if infixIdx == removeEverything || infixLen == removeEverything ||
		trimSuffix == removeEverything {
		infixIdx, infixLen, trimSuffix = 0, len(source), 0
	}
	dst = append(dst, source[:infixIdx]...)
	dst = append(dst, source[infixIdx+infixLen:len(source)-trimSuffix]...)
	return append(dst, encoded[3:]...)
}

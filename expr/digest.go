package expr

import (
	"encoding/binary"
	"fmt"

	"github.com/dchest/siphash"
)

// fixed keys keep digests stable across processes
const (
	digestK0 = 0x5eb2f1c0a8e43d17
	digestK1 = 0x91c6d0e2b74fa853
)

// Digest returns a content address for e: a 128-bit siphash of its canonical
// structure. Ids do not contribute, so two independently parsed or reversed
// trees of the same shape have the same digest.
func Digest(e *Expression) string {
	buf := appendCanonical(nil, e)
	lo, hi := siphash.Hash128(digestK0, digestK1, buf)
	return fmt.Sprintf("%016x%016x", hi, lo)
}

// Equivalent reports whether a and b have the same structure, ignoring ids.
func Equivalent(a, b *Expression) bool {
	return Digest(a) == Digest(b)
}

func appendCanonical(buf []byte, e *Expression) []byte {
	var kind byte = 'S'
	switch {
	case e.IsTerminal():
		kind = 'T'
	case e.parallel:
		kind = 'P'
	}
	var flags byte
	if e.negative {
		flags |= 1
	}
	if e.capturing {
		flags |= 2
	}
	buf = append(buf, kind, flags)
	buf = appendString(buf, string(e.quantifier))
	buf = appendString(buf, e.terminal)
	buf = binary.AppendUvarint(buf, uint64(len(e.children)))
	for _, c := range e.children {
		buf = appendCanonical(buf, c)
	}
	return buf
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

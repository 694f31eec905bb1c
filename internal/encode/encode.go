// Package encode implements the payload encoder chain: a named encoder
// transforms a word value before it is substituted into a request; an
// EncoderSpec composes zero or more of them left-to-right.
package encode

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Name identifies one of the fixed encoder kinds known to the engine.
type Name string

const (
	URLEncode       Name = "urlencode"
	Base64          Name = "base64"
	Hex             Name = "hex"
	DoubleURLEncode Name = "double-urlencode"
)

// Apply runs a single named encoder over value. An unrecognized name is
// the identity transform, not an error, so callers can pass encoder specs
// through without pre-validating every name.
func Apply(name Name, value string) string {
	switch name {
	case URLEncode:
		return urlEncode(value)
	case Base64:
		return base64.StdEncoding.EncodeToString([]byte(value))
	case Hex:
		return hex.EncodeToString([]byte(value))
	case DoubleURLEncode:
		return urlEncode(urlEncode(value))
	default:
		return value
	}
}

// Chain composes a list of encoder names left-to-right over value.
func Chain(names []Name, value string) string {
	result := value
	for _, n := range names {
		result = Apply(n, result)
	}
	return result
}

const upperHex = "0123456789ABCDEF"

// isUnreserved reports whether b is an RFC 3986 unreserved byte
// (ALPHA / DIGIT / "-" / "." / "_" / "~"), the only bytes left untouched.
func isUnreserved(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '.' || b == '_' || b == '~':
		return true
	default:
		return false
	}
}

// urlEncode applies RFC 3986 percent-encoding of every byte outside the
// unreserved set, e.g. " " -> "%20". This is plain percent-encoding, not
// net/url's context-sensitive query/path escaping (which would encode a
// space as "+"), matching the engine's own encoder semantics.
func urlEncode(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

package encode

import "strings"

// ParseSpec parses "KEYWORD:encoder1,encoder2,..." into its keyword and
// ordered encoder name list. A spec with no ':' is a bare keyword with no
// encoders. Names are lowercased and trimmed; unrecognized names still
// round-trip (Apply treats them as identity).
func ParseSpec(spec string) (keyword string, names []Name) {
	pos := strings.IndexByte(spec, ':')
	if pos < 0 {
		return spec, nil
	}

	keyword = spec[:pos]
	for _, part := range strings.Split(spec[pos+1:], ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		names = append(names, Name(part))
	}
	return keyword, names
}

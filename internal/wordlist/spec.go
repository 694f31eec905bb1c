// Package wordlist loads Wordlists from disk and parses the CLI's
// "path[:KEYWORD]" spec string surface.
package wordlist

import "strings"

// DefaultKeyword is used when a spec string carries no explicit keyword.
const DefaultKeyword = "FUZZ"

// ParseSpec splits a "path:KEYWORD" spec into its path and keyword. A spec
// with no colon yields DefaultKeyword. The keyword is taken from the last
// colon, so a path itself containing a colon (rare outside Windows-style
// paths) splits on the wrong boundary.
func ParseSpec(spec string) (path, keyword string) {
	if pos := strings.LastIndex(spec, ":"); pos >= 0 {
		return spec[:pos], spec[pos+1:]
	}
	return spec, DefaultKeyword
}

package payload

import "strings"

// ParseMode maps a CLI/config mode name (case-insensitive) to a Mode,
// defaulting to Clusterbomb for anything unrecognized — the same
// permissive-default policy the engine's other parsers use.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pitchfork":
		return Pitchfork
	case "sniper":
		return Sniper
	default:
		return Clusterbomb
	}
}

func (m Mode) String() string {
	switch m {
	case Pitchfork:
		return "pitchfork"
	case Sniper:
		return "sniper"
	default:
		return "clusterbomb"
	}
}

package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// CombineMode selects how a side's active families combine.
type CombineMode int

const (
	Or CombineMode = iota
	And
)

// ParseCombineMode maps "and"/"or" (case-insensitive) to a CombineMode,
// defaulting to Or for anything else.
func ParseCombineMode(s string) CombineMode {
	if strings.EqualFold(s, "and") {
		return And
	}
	return Or
}

// Side is one half (match or filter) of a ResponseClassifier: six
// independent criterion families, combined under Mode once each active
// family has reduced to a single boolean via "matches any of its criteria."
type Side struct {
	Mode   CombineMode
	Status []StatusCriterion
	Lines  []NumericCriterion
	Size   []NumericCriterion
	Words  []NumericCriterion
	Regex  []*regexp.Regexp
	Time   []TimeCriterion
}

// evaluate reduces the side to a boolean. emptyDefault is returned when no
// family holds any criteria (true for the match side, false for the filter
// side).
func (s Side) evaluate(r Response, emptyDefault bool) bool {
	var active []bool

	if len(s.Status) > 0 {
		active = append(active, anyStatus(s.Status, r.StatusCode))
	}
	if len(s.Lines) > 0 {
		active = append(active, anyNumeric(s.Lines, r.LineCount))
	}
	if len(s.Size) > 0 {
		active = append(active, anyNumeric(s.Size, r.BodyLength))
	}
	if len(s.Words) > 0 {
		active = append(active, anyNumeric(s.Words, r.WordCount))
	}
	if len(s.Regex) > 0 {
		active = append(active, anyRegex(s.Regex, r.Body))
	}
	if len(s.Time) > 0 {
		active = append(active, anyTime(s.Time, r.ElapsedMS))
	}

	if len(active) == 0 {
		return emptyDefault
	}

	switch s.Mode {
	case And:
		for _, v := range active {
			if !v {
				return false
			}
		}
		return true
	default: // Or
		for _, v := range active {
			if v {
				return true
			}
		}
		return false
	}
}

func anyStatus(cs []StatusCriterion, code int) bool {
	for _, c := range cs {
		if c.Matches(code) {
			return true
		}
	}
	return false
}

func anyNumeric(cs []NumericCriterion, value int) bool {
	for _, c := range cs {
		if c.Matches(value) {
			return true
		}
	}
	return false
}

func anyRegex(res []*regexp.Regexp, body string) bool {
	for _, re := range res {
		if re.MatchString(body) {
			return true
		}
	}
	return false
}

func anyTime(cs []TimeCriterion, elapsedMS int64) bool {
	for _, c := range cs {
		if c.Matches(elapsedMS) {
			return true
		}
	}
	return false
}

// SideSpec is the raw, string-shaped form of one Side, as it arrives from a
// CLI flag or a config file field — one spec string per criterion family,
// plus the combine mode.
type SideSpec struct {
	Mode   string
	Status string
	Lines  string
	Size   string
	Words  string
	Regex  []string
	Time   string
}

// ParseSide compiles a SideSpec into a Side, surfacing the first parse
// failure across any family.
func ParseSide(spec SideSpec) (Side, error) {
	var status []StatusCriterion
	if strings.TrimSpace(spec.Status) != "" {
		var err error
		status, err = ParseStatusCodes(spec.Status)
		if err != nil {
			return Side{}, fmt.Errorf("status: %w", err)
		}
	}
	lines, err := ParseNumericCriteria(spec.Lines)
	if err != nil {
		return Side{}, fmt.Errorf("lines: %w", err)
	}
	size, err := ParseNumericCriteria(spec.Size)
	if err != nil {
		return Side{}, fmt.Errorf("size: %w", err)
	}
	words, err := ParseNumericCriteria(spec.Words)
	if err != nil {
		return Side{}, fmt.Errorf("words: %w", err)
	}
	tcrit, err := ParseTimeCriteria(spec.Time)
	if err != nil {
		return Side{}, fmt.Errorf("time: %w", err)
	}

	var regexes []*regexp.Regexp
	for _, pattern := range spec.Regex {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Side{}, fmt.Errorf("regex %q: %w", pattern, err)
		}
		regexes = append(regexes, re)
	}

	return Side{
		Mode:   ParseCombineMode(spec.Mode),
		Status: status,
		Lines:  lines,
		Size:   size,
		Words:  words,
		Regex:  regexes,
		Time:   tcrit,
	}, nil
}

package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rohmanhakim/fuzzhammer/internal/payload"
	"github.com/rohmanhakim/fuzzhammer/pkg/failure"
)

// LoadError is a fatal, non-retryable wordlist-file failure (missing file,
// permission denied); there's nothing transient to retry a local file read
// against.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("wordlist: load %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Severity() failure.Severity { return failure.SeverityFatal }

// Load reads path line by line, trimming whitespace and dropping blank
// lines and '#'-prefixed comments, and binds the result to keyword.
func Load(path, keyword string) (payload.Wordlist, failure.ClassifiedError) {
	f, err := os.Open(path)
	if err != nil {
		return payload.Wordlist{}, &LoadError{Path: path, Cause: err}
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return payload.Wordlist{}, &LoadError{Path: path, Cause: err}
	}

	return payload.NewWordlist(keyword, words), nil
}

// LoadSpec parses spec via ParseSpec and loads the resulting path/keyword.
func LoadSpec(spec string) (payload.Wordlist, failure.ClassifiedError) {
	path, keyword := ParseSpec(spec)
	return Load(path, keyword)
}

package decklist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ssargent/deckcode/pkg/deck"
)

// Case pairs a deck code with the deck it is expected to encode.
type Case struct {
	Code string
	Deck deck.Deck
	// Line is where the code appears in the source, starting at 1.
	Line int
}

// ReadCases reads a fixture case file. Each case is a deck code on its own
// line followed by "count:code" lines; cases are separated by one or more
// blank lines. The last case does not need a trailing blank line. Lines
// starting with '#' are ignored.
func ReadCases(r io.Reader) ([]Case, error) {
	var (
		cases   []Case
		current *Case
		line    int
	)
	flush := func() {
		if current != nil {
			cases = append(cases, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		switch {
		case text == "":
			flush()
		case strings.HasPrefix(text, "#"):
		case current == nil:
			current = &Case{Code: text, Line: line}
		default:
			t, err := ParseToken(text)
			if err != nil {
				return nil, &LineError{Line: line, Text: text, Err: err}
			}
			current.Deck = append(current.Deck, t)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cases: %w", err)
	}
	flush()

	return cases, nil
}

// LoadCases reads a fixture case file from disk.
func LoadCases(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cases file: %w", err)
	}
	defer f.Close()

	cases, err := ReadCases(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// Package decklist reads and writes decks in the file formats the CLI
// accepts.
//
// Three formats are supported:
//
//   - Text: one "count:code" token per line. Blank lines and lines starting
//     with '#' are ignored.
//   - YAML: a document with a "cards" list of {code, count} entries.
//   - JSONC: the same document as JSON, with comments and trailing commas
//     allowed.
//
// The package also reads fixture case files, which pair deck codes with the
// decks they encode (see ReadCases).
package decklist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/deckcode/pkg/deck"
)

// Format identifies a deck file format.
type Format string

const (
	FormatText  Format = "text"
	FormatYAML  Format = "yaml"
	FormatJSONC Format = "jsonc"
)

// ErrMalformedLine is matched by every LineError.
var ErrMalformedLine = errors.New("decklist: malformed line")

// LineError reports a text line that is not a "count:code" token.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	msg := fmt.Sprintf("decklist: line %d: malformed token %q", e.Line, e.Text)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedLine.
func (e *LineError) Is(target error) bool {
	return target == ErrMalformedLine
}

// File is the YAML and JSONC document shape.
type File struct {
	Name  string    `json:"name,omitempty" yaml:"name,omitempty"`
	Cards deck.Deck `json:"cards" yaml:"cards"`
}

// FormatFromPath picks a format from a file extension. Unknown extensions
// are read as text.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json", ".jsonc":
		return FormatJSONC
	default:
		return FormatText
	}
}

// LoadFile reads a deck file, choosing the parser by extension.
func LoadFile(path string) (deck.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}

	d, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse reads a deck in the given format.
func Parse(data []byte, format Format) (deck.Deck, error) {
	switch format {
	case FormatText:
		return ParseText(bytes.NewReader(data))
	case FormatYAML:
		return ParseYAML(data)
	case FormatJSONC:
		return ParseJSONC(data)
	default:
		return nil, fmt.Errorf("decklist: unknown format %q", format)
	}
}

// ParseText reads "count:code" lines.
func ParseText(r io.Reader) (deck.Deck, error) {
	var d deck.Deck
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if skipLine(text) {
			continue
		}

		t, err := ParseToken(text)
		if err != nil {
			return nil, &LineError{Line: line, Text: text, Err: err}
		}
		d = append(d, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}
	return d, nil
}

// ParseToken parses a single "count:code" token. The code is not checked
// here; that is the codec's job.
func ParseToken(s string) (deck.Token, error) {
	countText, code, ok := strings.Cut(s, ":")
	if !ok {
		return deck.Token{}, fmt.Errorf("missing ':' in %q", s)
	}

	count, err := strconv.Atoi(strings.TrimSpace(countText))
	if err != nil {
		return deck.Token{}, fmt.Errorf("count is not a number: %w", err)
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return deck.Token{}, errors.New("missing card code")
	}
	return deck.Token{Code: code, Count: count}, nil
}

// ParseTokens parses a list of "count:code" values, such as repeated
// command-line flags.
func ParseTokens(values []string) (deck.Deck, error) {
	d := make(deck.Deck, 0, len(values))
	for _, v := range values {
		t, err := ParseToken(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
		}
		d = append(d, t)
	}
	return d, nil
}

// ParseYAML reads a YAML deck document.
func ParseYAML(data []byte) (deck.Deck, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML deck: %w", err)
	}
	return f.Cards, nil
}

// ParseJSONC reads a JSON deck document that may contain comments and
// trailing commas.
func ParseJSONC(data []byte) (deck.Deck, error) {
	var f File
	if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
		return nil, fmt.Errorf("failed to parse JSON deck: %w", err)
	}
	return f.Cards, nil
}

// WriteText writes d as "count:code" lines in the order given.
func WriteText(w io.Writer, d deck.Deck) error {
	bw := bufio.NewWriter(w)
	for _, t := range d {
		if _, err := fmt.Fprintln(bw, t); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// RenderText returns d as "count:code" lines.
func RenderText(d deck.Deck) string {
	var b strings.Builder
	for _, t := range d {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func skipLine(text string) bool {
	return text == "" || strings.HasPrefix(text, "#")
}

package storage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/badjano/favtree/internal/model"
)

// The text format stores one element per line, in sequence order:
//
//	# favtree v1
//	0	-1	Root
//	1	0	Fruit
//	2	1	Apple	apple.png	red green	origin=orchard;grade=A
//
// Fields are separated by tabs: id, depth, name, icon, keywords, payload.
// Trailing empty fields are omitted. Payload entries are key=value pairs
// separated by ';'.
//
// Escaping:
//   - \ (backslash) is encoded as \\
//   - newline, carriage return and tab are encoded as \n, \r and \t
//   - in payload entries ';' and '=' are encoded as \; and \=
const textHeader = "# favtree v1"

// EncodeText writes elements in the text format
func EncodeText(w io.Writer, elements []*model.Element) error {
	writer := bufio.NewWriter(w)

	if _, err := writer.WriteString(textHeader + "\n"); err != nil {
		return err
	}

	for _, e := range elements {
		fields := []string{
			strconv.Itoa(e.ID),
			strconv.Itoa(e.Depth),
			escapeText(e.Name, ""),
			escapeText(e.Icon, ""),
			escapeText(e.Keywords, ""),
			encodePayload(e.Payload),
		}
		for len(fields) > 3 && fields[len(fields)-1] == "" {
			fields = fields[:len(fields)-1]
		}
		if _, err := writer.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}

	return writer.Flush()
}

// DecodeText reads elements in the text format
func DecodeText(r io.Reader) ([]*model.Element, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var elements []*model.Element
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		e, err := parseElementLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		elements = append(elements, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return elements, nil
}

// parseElementLine parses one element line
// Format: id<TAB>depth<TAB>name[<TAB>icon[<TAB>keywords[<TAB>payload]]]
func parseElementLine(line string) (*model.Element, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 || len(fields) > 6 {
		return nil, fmt.Errorf("invalid element line format: %q", line)
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", fields[0], err)
	}
	depth, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid depth %q: %w", fields[1], err)
	}

	e := &model.Element{ID: id, Depth: depth, Name: unescapeText(fields[2])}
	if len(fields) > 3 {
		e.Icon = unescapeText(fields[3])
	}
	if len(fields) > 4 {
		e.Keywords = unescapeText(fields[4])
	}
	if len(fields) > 5 {
		payload, err := decodePayload(fields[5])
		if err != nil {
			return nil, err
		}
		e.Payload = payload
	}
	return e, nil
}

// escapeText encodes a value with escape sequences; extra lists additional
// characters that are escaped with a plain backslash
func escapeText(text string, extra string) string {
	var result strings.Builder
	for _, ch := range text {
		switch {
		case ch == '\\':
			result.WriteString(`\\`)
		case ch == '\n':
			result.WriteString(`\n`)
		case ch == '\r':
			result.WriteString(`\r`)
		case ch == '\t':
			result.WriteString(`\t`)
		case strings.ContainsRune(extra, ch):
			result.WriteByte('\\')
			result.WriteRune(ch)
		default:
			result.WriteRune(ch)
		}
	}
	return result.String()
}

// unescapeText reverses escapeText. Unrecognised escapes keep the escaped
// character.
func unescapeText(text string) string {
	var result strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] != '\\' || i+1 == len(text) {
			result.WriteByte(text[i])
			continue
		}
		i++
		switch text[i] {
		case 'n':
			result.WriteByte('\n')
		case 'r':
			result.WriteByte('\r')
		case 't':
			result.WriteByte('\t')
		default:
			result.WriteByte(text[i])
		}
	}
	return result.String()
}

// splitUnescaped splits s at every sep that is not preceded by a backslash
// escape. The parts keep their escape sequences.
func splitUnescaped(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func encodePayload(payload map[string]string) string {
	if len(payload) == 0 {
		return ""
	}

	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = escapeText(k, ";=") + "=" + escapeText(payload[k], ";=")
	}
	return strings.Join(pairs, ";")
}

func decodePayload(field string) (map[string]string, error) {
	if field == "" {
		return nil, nil
	}

	payload := make(map[string]string)
	for _, pair := range splitUnescaped(field, ';') {
		kv := splitUnescaped(pair, '=')
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid payload entry: %q", pair)
		}
		payload[unescapeText(kv[0])] = unescapeText(kv[1])
	}
	return payload, nil
}

// TextStore handles text format file persistence
type TextStore struct {
	FilePath string
}

// NewTextStore creates a new text store for the given file path
func NewTextStore(filePath string) *TextStore {
	return &TextStore{FilePath: filePath}
}

// Load loads a sequence from a text file
func (s *TextStore) Load(_ context.Context) ([]*model.Element, error) {
	f, err := os.Open(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	elements, err := DecodeText(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text format: %w", err)
	}
	return elements, nil
}

// Save saves a sequence to a text file
func (s *TextStore) Save(_ context.Context, elements []*model.Element) error {
	if err := ensureDir(s.FilePath); err != nil {
		return err
	}

	f, err := os.Create(s.FilePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := EncodeText(f, elements); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	return f.Close()
}

// Exists checks if the file exists
func (s *TextStore) Exists() bool {
	return fileExists(s.FilePath)
}

// Path returns the file path
func (s *TextStore) Path() string {
	return s.FilePath
}

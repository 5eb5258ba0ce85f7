package import_parser

import (
	"bufio"
	"strings"

	"github.com/badjano/favtree/internal/model"
)

// Headers rank by level, list items below any header by indentation
const listRankBase = 100

// MarkdownParser imports markdown files
type MarkdownParser struct{}

func (p *MarkdownParser) Name() string {
	return "Markdown"
}

// Parse converts markdown content to a depth-encoded sequence. Headers nest
// by level, list items nest by indentation below the current header, and
// plain text lines become leaves of the innermost header or item.
func (p *MarkdownParser) Parse(content string) ([]*model.Element, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	levels := newLevelStack()

	for scanner.Scan() {
		line := scanner.Text()

		// Skip empty lines
		if strings.TrimSpace(line) == "" {
			continue
		}

		if level, text := parseHeader(line); level > 0 {
			levels.push(text, level)
			continue
		}

		if indent, text := parseListItem(line); indent >= 0 {
			levels.push(text, listRankBase+indent)
			continue
		}

		levels.leaf(strings.TrimSpace(line))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return levels.elements, nil
}

// parseHeader extracts the 1-based level and text from a markdown header.
// Level is 0 when the line is not a header.
func parseHeader(line string) (level int, text string) {
	for level < len(line) && line[level] == '#' {
		level++
	}

	if level == 0 || level > 6 || (level < len(line) && line[level] != ' ') {
		return 0, ""
	}

	text = strings.TrimSpace(line[level:])
	if text == "" {
		return 0, ""
	}
	return level, text
}

// parseListItem extracts indentation and text from a list item. Indent is -1
// when the line is not a list item.
func parseListItem(line string) (indent int, text string) {
	indent = getIndentLevel(line)
	trimmed := strings.TrimSpace(line)

	// Check for list markers
	if len(trimmed) > 2 && (trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+') && trimmed[1] == ' ' {
		return indent, strings.TrimSpace(trimmed[2:])
	}

	return -1, ""
}

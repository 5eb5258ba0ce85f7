package import_parser

import (
	"bufio"
	"strings"

	"github.com/badjano/favtree/internal/model"
)

// IndentedTextParser imports plain text files with indentation-based hierarchy
type IndentedTextParser struct{}

func (p *IndentedTextParser) Name() string {
	return "Indented Text"
}

// Parse converts indented text to a depth-encoded sequence. A line indented
// further than the previous one becomes its child; a line indented less
// returns to the closest open level at or above its indentation.
func (p *IndentedTextParser) Parse(content string) ([]*model.Element, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	levels := newLevelStack()

	for scanner.Scan() {
		line := scanner.Text()

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		levels.push(text, getIndentLevel(line))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return levels.elements, nil
}

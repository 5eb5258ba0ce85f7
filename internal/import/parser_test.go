package import_parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/badjano/favtree/internal/model"
	"github.com/badjano/favtree/internal/tree"
)

type line struct {
	name  string
	depth int
}

func outline(elements []*model.Element) []line {
	out := make([]line, 0, len(elements))
	for _, e := range elements[1:] {
		out = append(out, line{e.Name, e.Depth})
	}
	return out
}

func TestIndentedTextParser(t *testing.T) {
	content := "Fruit\n  Apple\n    Red\n  Pear\n\nVeg\n\tCarrot\n"

	elements, err := ImportFile(content, FormatIndentedText)
	require.NoError(t, err)

	require.NotEmpty(t, elements)
	assert.Equal(t, model.RootDepth, elements[0].Depth)
	assert.Equal(t, []line{
		{"Fruit", 0},
		{"Apple", 1},
		{"Red", 2},
		{"Pear", 1},
		{"Veg", 0},
		{"Carrot", 1},
	}, outline(elements))
	assert.NoError(t, tree.ValidateDepths(elements))
}

func TestIndentedTextParserClampsDeepIndent(t *testing.T) {
	content := "A\n        B\n    C\n D\nE\n"

	elements, err := ImportFile(content, FormatIndentedText)
	require.NoError(t, err)

	assert.Equal(t, []line{
		{"A", 0},
		{"B", 1},
		{"C", 1},
		{"D", 1},
		{"E", 0},
	}, outline(elements))
	assert.NoError(t, tree.ValidateDepths(elements))
}

func TestIndentedTextParserAssignsSequentialIDs(t *testing.T) {
	elements, err := ImportFile("one\n  two\nthree\n", FormatIndentedText)
	require.NoError(t, err)

	for i, e := range elements {
		assert.Equal(t, i, e.ID)
	}
}

func TestEmptyContentYieldsRootOnly(t *testing.T) {
	for _, format := range []ImportFormat{FormatIndentedText, FormatMarkdown} {
		elements, err := ImportFile("\n   \n", format)
		require.NoError(t, err)
		require.Len(t, elements, 1)
		assert.True(t, elements[0].IsRoot())
	}
}

func TestMarkdownParser(t *testing.T) {
	content := `# Assets
Loose note
## Prefabs
- Player
  - Weapon
- Enemy
## Scenes
* Main
# Docs
+ Readme
`

	elements, err := ImportFile(content, FormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, []line{
		{"Assets", 0},
		{"Loose note", 1},
		{"Prefabs", 1},
		{"Player", 2},
		{"Weapon", 3},
		{"Enemy", 2},
		{"Scenes", 1},
		{"Main", 2},
		{"Docs", 0},
		{"Readme", 1},
	}, outline(elements))
	assert.NoError(t, tree.ValidateDepths(elements))
}

func TestMarkdownParserSkippedHeaderLevel(t *testing.T) {
	elements, err := ImportFile("# Top\n### Deep\n## Mid\n", FormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, []line{
		{"Top", 0},
		{"Deep", 1},
		{"Mid", 1},
	}, outline(elements))
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		line  string
		level int
		text  string
	}{
		{"# Title", 1, "Title"},
		{"### Three  ", 3, "Three"},
		{"#hashtag", 0, ""},
		{"#", 0, ""},
		{"####### seven", 0, ""},
		{"plain", 0, ""},
	}

	for _, tt := range tests {
		level, text := parseHeader(tt.line)
		if level != tt.level || text != tt.text {
			t.Errorf("parseHeader(%q) = (%d, %q), want (%d, %q)", tt.line, level, text, tt.level, tt.text)
		}
	}
}

func TestParseListItem(t *testing.T) {
	tests := []struct {
		line   string
		indent int
		text   string
	}{
		{"- item", 0, "item"},
		{"    * nested", 4, "nested"},
		{"\t+ tabbed", 2, "tabbed"},
		{"-no space", -1, ""},
		{"text", -1, ""},
	}

	for _, tt := range tests {
		indent, text := parseListItem(tt.line)
		if indent != tt.indent || text != tt.text {
			t.Errorf("parseListItem(%q) = (%d, %q), want (%d, %q)", tt.line, indent, text, tt.indent, tt.text)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatMarkdown, DetectFormat("notes.md"))
	assert.Equal(t, FormatMarkdown, DetectFormat("NOTES.Markdown"))
	assert.Equal(t, FormatIndentedText, DetectFormat("notes.txt"))
	assert.Equal(t, FormatIndentedText, DetectFormat("notes"))
}

func TestImportFileUnknownFormat(t *testing.T) {
	_, err := ImportFile("x", ImportFormat("csv"))
	assert.Error(t, err)
}

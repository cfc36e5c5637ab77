package docs

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/etnz/investlog"
)

// readmeTopics extracts the "* name: description" entries of readme.md.
func readmeTopics(t *testing.T) []string {
	t.Helper()
	file, err := os.Open("readme.md")
	require.NoError(t, err)
	defer file.Close()

	var topics []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topics = append(topics, strings.TrimSpace(matches[1]))
		}
	}
	require.NoError(t, scanner.Err())
	return topics
}

func TestTopics(t *testing.T) {
	// Every topic of the readme can be loaded, and every markdown file is
	// listed in the readme.
	topics := readmeTopics(t)
	require.NotEmpty(t, topics)

	for _, topic := range topics {
		t.Run("load_"+topic, func(t *testing.T) {
			_, err := GetTopic(topic)
			assert.NoError(t, err)
		})
	}

	files, err := filepath.Glob("*.md")
	require.NoError(t, err)
	for _, file := range files {
		if file == "readme.md" {
			continue
		}
		assert.Contains(t, topics, strings.TrimSuffix(file, ".md"), "topic %q is not listed in docs/readme.md", file)
	}

	all, err := GetAllTopics()
	require.NoError(t, err)
	assert.ElementsMatch(t, topics, all)
}

func TestGetTopics(t *testing.T) {
	all, err := GetTopic(All)
	require.NoError(t, err)
	for _, title := range []string{"# Searching transactions", "# Date presets", "# Ledger file", "# Dashboard", "# HTTP API"} {
		assert.Contains(t, all, title)
	}
	assert.NotContains(t, all, "ivl topic <name>", "the readme is not a topic")

	two, err := GetTopics("search", "ledger")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(two, "# Searching transactions"))
	assert.Contains(t, two, "# Ledger file")

	_, err = GetTopic("nope")
	assert.Error(t, err)
	_, err = GetTopics("search", "nope")
	assert.Error(t, err)
}

// Block is a fenced code block of a markdown file.
type Block struct {
	Lang    string
	Content string
	File    string
	Line    int
}

// parseMarkdown returns the fenced code blocks of file.
func parseMarkdown(t *testing.T, file string) []*Block {
	t.Helper()
	content, err := os.ReadFile(file)
	require.NoError(t, err)

	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []*Block
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		var body strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			body.Write(line.Value(content))
		}
		blocks = append(blocks, &Block{
			Lang:    string(fcb.Info.Segment.Value(content)),
			Content: body.String(),
			File:    file,
			Line:    lineNumber(content, fcb.Info.Segment.Start),
		})
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return blocks
}

// lineNumber computes the line of an offset in source.
func lineNumber(source []byte, offset int) int {
	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}

func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	require.NoError(t, err)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			for _, b := range parseMarkdown(t, file) {
				switch b.Lang {
				case "bash":
					for _, line := range strings.Split(strings.TrimSpace(b.Content), "\n") {
						assert.True(t, strings.HasPrefix(line, "ivl "), "%s:%d: not an ivl command: %q", b.File, b.Line, line)
					}
				case "json":
					if file == "ledger.md" {
						// ledger lines must decode as records
						records, err := investlog.DecodeRecords(strings.NewReader(b.Content), b.File, investlog.DefaultCurrency)
						assert.NoError(t, err, "%s:%d", b.File, b.Line)
						assert.NotEmpty(t, records)
						continue
					}
					assert.True(t, json.Valid([]byte(b.Content)), "%s:%d: invalid json", b.File, b.Line)
				default:
					t.Errorf("%s:%d: unexpected code block language %q", b.File, b.Line, b.Lang)
				}
			}
		})
	}
}

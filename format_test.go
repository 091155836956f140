package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgaitan/readeckbot/readeck"
)

func TestChunker(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		limit    int
		expected []string
	}{
		{
			name:     "short text is a single chunk",
			text:     "Hello world.",
			limit:    20,
			expected: []string{"Hello world."},
		},
		{
			name:     "short text is trimmed",
			text:     "  Hello world.  ",
			limit:    20,
			expected: []string{"Hello world."},
		},
		{
			name:     "empty text yields nothing",
			text:     "",
			limit:    10,
			expected: nil,
		},
		{
			name:     "whitespace only yields nothing",
			text:     "   \n\t  ",
			limit:    10,
			expected: nil,
		},
		{
			name:     "splits after the last period in each window",
			text:     "Alice went to the store. She bought apples. Then she went home.",
			limit:    30,
			expected: []string{"Alice went to the store.", "She bought apples.", "Then she went home."},
		},
		{
			name:     "sentence per chunk on tight limits",
			text:     "First. Second. Third.",
			limit:    8,
			expected: []string{"First.", "Second.", "Third."},
		},
		{
			name:     "sentence longer than the limit is kept whole",
			text:     "Short. This sentence is much longer than the limit allows. End.",
			limit:    10,
			expected: []string{"Short.", "This sentence is much longer than the limit allows.", "End."},
		},
		{
			name:     "no periods at all emits the remainder",
			text:     "word word word word word",
			limit:    10,
			expected: []string{"word word word word word"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.expected, chunker(c.text, c.limit))
		})
	}
}

// Every chunk is trimmed and non-empty, and every chunk except the last
// ends right after a period.
func TestChunkerBoundaries(t *testing.T) {
	text := strings.Repeat("A fairly average sentence, with some filler. ", 50)
	chunks := chunker(text, 100)

	require.NotEmpty(t, chunks)
	for i, c := range chunks {
		assert.Equal(t, strings.TrimSpace(c), c)
		assert.NotEmpty(t, c)
		assert.LessOrEqual(t, len(c), 100)
		if i < len(chunks)-1 {
			assert.Equal(t, byte('.'), c[len(c)-1])
		}
	}
}

func TestExtractURL(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		link   string
		title  string
		labels []string
	}{
		{
			name: "bare url",
			text: "https://example.com/article",
			link: "https://example.com/article",
		},
		{
			name:  "url with title",
			text:  "https://example.com/article Good read",
			link:  "https://example.com/article",
			title: "Good read",
		},
		{
			name:   "url with title and labels",
			text:   "https://example.com/article Good read +go +news",
			link:   "https://example.com/article",
			title:  "Good read",
			labels: []string{"go", "news"},
		},
		{
			name: "no url",
			text: "just some words",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			link, title, labels := extractURL(c.text)
			assert.Equal(t, c.link, link)
			assert.Equal(t, c.title, title)
			assert.Equal(t, c.labels, labels)
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://example.com/a", normalizeURL("https://example.com/a,"))
	assert.Equal(t, "https://example.com", normalizeURL("example.com."))
	assert.Equal(t, "http://example.com", normalizeURL("http://example.com"))
}

func TestFormatBookmarks(t *testing.T) {
	out := formatBookmarks([]readeck.Bookmark{
		{ID: "a1", Title: "A Title", URL: "https://one.example"},
		{ID: "b2", URL: "https://two.example"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[A Title](https://one.example)")
	assert.Contains(t, lines[0], `/b\_a1`)
	// Untitled bookmarks fall back to their URL.
	assert.Contains(t, lines[1], "two.example")
}

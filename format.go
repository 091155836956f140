package main

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-telegram/bot"

	"github.com/mgaitan/readeckbot/readeck"
)

// msgLimit leaves headroom under Telegram's 4096 character ceiling.
const msgLimit = 4000

// chunker splits article text into pieces of at most limit characters,
// breaking after the last period that fits in each window. When a window
// holds no usable period the chunk extends forward to the next one, so a
// single sentence longer than the limit is sent whole rather than cut
// mid-sentence. Chunks are trimmed and empty ones dropped.
func chunker(text string, limit int) []string {
	if len(text) <= limit {
		if s := strings.TrimSpace(text); s != "" {
			return []string{s}
		}
		return nil
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := min(start+limit, len(text))

		// Periods at the very start of the window cannot terminate a
		// chunk; the boundary must land strictly after the cursor.
		if dot := strings.LastIndexByte(text[start:end], '.'); dot > 0 {
			chunks = append(chunks, text[start:start+dot+1])
			start += dot + 1
			continue
		}

		next := strings.IndexByte(text[end:], '.')
		if next == -1 {
			chunks = append(chunks, text[start:])
			break
		}
		chunks = append(chunks, text[start:end+next+1])
		start = end + next + 1
	}

	trimmed := chunks[:0]
	for _, c := range chunks {
		if c = strings.TrimSpace(c); c != "" {
			trimmed = append(trimmed, c)
		}
	}
	return trimmed
}

var (
	urlre   = regexp.MustCompile(`https?://\S+`)
	labelre = regexp.MustCompile(`\+(\w+)`)
)

// extractURL pulls the first URL out of a message, along with an
// optional title and +label markers from the surrounding text.
func extractURL(text string) (link, title string, labels []string) {
	link = urlre.FindString(text)
	if link == "" {
		return "", "", nil
	}

	rest := strings.Replace(text, link, "", 1)
	for _, m := range labelre.FindAllStringSubmatch(rest, -1) {
		labels = append(labels, m[1])
	}
	rest = labelre.ReplaceAllString(rest, "")

	return link, strings.TrimSpace(rest), labels
}

// normalizeURL guarantees a scheme and removes stray punctuation picked
// up from the surrounding sentence.
func normalizeURL(link string) string {
	link = strings.Trim(link, ".,:;!?)]}")
	if parsed, err := url.Parse(link); err != nil || parsed.Scheme == "" {
		return "https://" + link
	}
	return link
}

// formatBookmarks renders a bookmark list as MarkdownV2, one line per
// bookmark with a /b_<id> shortcut for the detail card.
func formatBookmarks(bookmarks []readeck.Bookmark) string {
	var b strings.Builder
	for _, bm := range bookmarks {
		title := bm.Title
		if title == "" {
			title = bm.URL
		}
		age := humanize.Time(bm.Created)
		fmt.Fprintf(&b, "• [%s](%s) \\(%s\\) \\| /b\\_%s\n",
			bot.EscapeMarkdown(title), bm.URL, bot.EscapeMarkdown(age), bm.ID)
	}
	return b.String()
}

// Package stats counts words and characters in markdown content.
package stats

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

var (
	fencedCode = regexp.MustCompile("(?s)```.*?```")
	inlineCode = regexp.MustCompile("`[^`]*`")
	mdLink     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdSymbols  = regexp.MustCompile(`[#*_~>\-]`)
)

// Stats summarizes a piece of writing.
type Stats struct {
	Words           int
	Chars           int // characters after markdown syntax is removed
	CharsWithSpaces int // characters in the raw content
}

// Compute counts words and characters in content, ignoring code and
// markdown syntax.
func Compute(content string) Stats {
	plain := PlainText(content)
	return Stats{
		Words:           len(strings.Fields(plain)),
		Chars:           utf8.RuneCountInString(plain),
		CharsWithSpaces: utf8.RuneCountInString(content),
	}
}

// PlainText strips code blocks, inline code, link targets and markdown
// symbols from content.
func PlainText(content string) string {
	plain := fencedCode.ReplaceAllString(content, "")
	plain = inlineCode.ReplaceAllString(plain, "")
	plain = mdLink.ReplaceAllString(plain, "$1")
	plain = mdSymbols.ReplaceAllString(plain, "")
	return strings.TrimSpace(plain)
}

func (s Stats) String() string {
	return fmt.Sprintf("%s %s · %s characters",
		humanize.Comma(int64(s.Words)),
		plural(s.Words, "word", "words"),
		humanize.Comma(int64(s.Chars)))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

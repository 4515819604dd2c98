package websearch

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// extractText collects visible text from an HTML document, skipping script
// and style subtrees, collapsed to single spaces and capped at limit runes.
func extractText(r io.Reader, limit int) (string, error) {
	tokenizer := html.NewTokenizer(r)

	var (
		b    strings.Builder
		skip int
	)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return capRunes(strings.Join(strings.Fields(b.String()), " "), limit), nil
			}
			return "", tokenizer.Err()

		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}

		case html.TextToken:
			if skip == 0 {
				b.Write(tokenizer.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func capRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// Package docs reads the reply instructions document and flattens it into
// Markdown-like text for use in prompts.
package docs

import (
	"strconv"
	"strings"

	"google.golang.org/api/docs/v1"
)

const headingPrefix = "HEADING_"

// Render converts a document's paragraphs into a single string. Bold runs
// become **text** and italic runs *text*; headings get one '#' per level and
// bullet items a "- " prefix. Empty paragraphs and non-paragraph elements
// such as tables are dropped. Paragraphs are separated by a blank line.
func Render(doc *docs.Document) string {
	if doc == nil || doc.Body == nil {
		return ""
	}
	var blocks []string
	for _, el := range doc.Body.Content {
		if el == nil || el.Paragraph == nil {
			continue
		}
		if text := renderParagraph(el.Paragraph); text != "" {
			blocks = append(blocks, text)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func renderParagraph(p *docs.Paragraph) string {
	var b strings.Builder
	for _, el := range p.Elements {
		if el == nil || el.TextRun == nil {
			continue
		}
		b.WriteString(renderRun(el.TextRun))
	}
	text := b.String()

	if level := headingLevel(p.ParagraphStyle); level > 0 {
		text = strings.Repeat("#", level) + " " + strings.TrimSpace(text)
	}
	if p.Bullet != nil {
		text = "- " + strings.TrimSpace(text)
	}
	return strings.TrimSpace(text)
}

func renderRun(run *docs.TextRun) string {
	text := run.Content
	style := run.TextStyle
	if style == nil {
		return text
	}
	if style.Bold {
		text = "**" + strings.TrimSpace(text) + "**"
	}
	if style.Italic {
		text = "*" + strings.TrimSpace(text) + "*"
	}
	return text
}

// headingLevel returns N for a HEADING_N named style and 0 otherwise.
func headingLevel(style *docs.ParagraphStyle) int {
	if style == nil || !strings.HasPrefix(style.NamedStyleType, headingPrefix) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(style.NamedStyleType, headingPrefix))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

package views

import (
	"github.com/a-h/templ"

	"github.com/tbardin/fieldnotes/markdown"
)

// Markdown renders a post body as HTML for use inside templ templates.
func Markdown(content string) templ.Component {
	return markdown.Markdown(content)
}

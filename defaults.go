package fieldnotes

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/tbardin/fieldnotes/content"
	"github.com/tbardin/fieldnotes/markdown"
	"github.com/tbardin/fieldnotes/views"
)

// DefaultViews returns a plain, unstyled set of templates so a site runs
// before the user supplies their own templ components. Every real
// deployment is expected to replace these.
func DefaultViews(cfg SiteConfig) ViewFuncs {
	d := defaultViews{cfg: cfg}
	return ViewFuncs{
		Home:           d.home,
		HomePartial:    d.home,
		BlogSection:    d.blogSection,
		Post:           d.post,
		PostPartial:    d.post,
		AdminLogin:     d.adminLogin,
		AdminDashboard: d.adminDashboard,
		AdminImages:    d.adminImages,
		NotFound:       d.notFound,
		ServerError:    d.serverError,
	}
}

type defaultViews struct {
	cfg SiteConfig
}

func component(fn func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return fn(w)
	})
}

func (d defaultViews) page(w io.Writer, title string, body func(w io.Writer) error) error {
	fmt.Fprintf(w, "<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>%s</title></head><body>", html.EscapeString(title))
	fmt.Fprintf(w, "<header><h1><a href=\"/\">%s</a></h1></header><main>", html.EscapeString(d.cfg.Name))
	if err := body(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</main><script src=\"/public/analytics.js\" defer></script></body></html>")
	return err
}

func writePostCard(w io.Writer, p content.Post) {
	fmt.Fprintf(w, "<article><h2><a href=\"%s/\">%s %s</a></h2>", p.Link, html.EscapeString(p.BannerEmoji), html.EscapeString(p.Title))
	fmt.Fprintf(w, "<p><time datetime=%q>%s</time> · %s · %s</p>",
		p.Date, views.DisplayDate(p.Date), html.EscapeString(p.Category), views.ReadTimeLabel(p.ReadTime))
	fmt.Fprintf(w, "<p>%s</p></article>", html.EscapeString(p.Excerpt))
}

func (d defaultViews) listing(w io.Writer, posts []content.Post, activeTag, activeCategory string, tags, categories []string) error {
	io.WriteString(w, "<nav>")
	for _, c := range categories {
		marker := ""
		if c == activeCategory {
			marker = " *"
		}
		fmt.Fprintf(w, "<a href=\"/?category=%s\">%s%s</a> ", views.PathEscape(c), html.EscapeString(c), marker)
	}
	io.WriteString(w, "</nav><nav>")
	for _, t := range tags {
		marker := ""
		if t == activeTag {
			marker = " *"
		}
		fmt.Fprintf(w, "<a href=\"/?tag=%s\">#%s%s</a> ", views.PathEscape(t), html.EscapeString(t), marker)
	}
	io.WriteString(w, "</nav>")
	for _, p := range posts {
		writePostCard(w, p)
	}
	return nil
}

func (d defaultViews) home(posts []content.Post, activeTag, activeCategory string, tags, categories []string, siteURL string) templ.Component {
	return component(func(w io.Writer) error {
		return d.page(w, d.cfg.Name, func(w io.Writer) error {
			return d.listing(w, posts, activeTag, activeCategory, tags, categories)
		})
	})
}

func (d defaultViews) blogSection(posts []content.Post, activeTag, activeCategory string, tags, categories []string) templ.Component {
	return component(func(w io.Writer) error {
		return d.listing(w, posts, activeTag, activeCategory, tags, categories)
	})
}

func (d defaultViews) post(post content.Post, posts []content.Post, siteURL string) templ.Component {
	return component(func(w io.Writer) error {
		return d.page(w, post.Title+" — "+d.cfg.Name, func(w io.Writer) error {
			if post.BannerEmoji != "" || post.BannerBG != "" {
				fmt.Fprintf(w, "<div style=\"background:%s\"><span>%s</span></div>",
					html.EscapeString(post.BannerBG), html.EscapeString(post.BannerEmoji))
			}
			fmt.Fprintf(w, "<h1>%s</h1>", html.EscapeString(post.Title))
			fmt.Fprintf(w, "<p><time datetime=%q>%s</time> · %s · %s</p>",
				post.Date, views.DisplayDate(post.Date), html.EscapeString(post.Category), views.ReadTimeLabel(post.ReadTime))
			if err := markdown.Markdown(post.Body).Render(context.Background(), w); err != nil {
				return err
			}
			related := views.FilterRelatedPosts(post, posts)
			if len(related) > 0 {
				io.WriteString(w, "<aside><h2>Related</h2>")
				for _, p := range related {
					fmt.Fprintf(w, "<p><a href=\"%s/\">%s</a></p>", p.Link, html.EscapeString(p.Title))
				}
				io.WriteString(w, "</aside>")
			}
			return nil
		})
	})
}

func (d defaultViews) adminLogin(showError bool, csrfToken string) templ.Component {
	return component(func(w io.Writer) error {
		return d.page(w, "Admin", func(w io.Writer) error {
			if showError {
				io.WriteString(w, "<p>Wrong password.</p>")
			}
			fmt.Fprintf(w, "<form method=\"post\" action=\"/admin/login/\"><input type=\"hidden\" name=\"_csrf\" value=%q><input type=\"password\" name=\"password\" autofocus><button>Log in</button></form>", csrfToken)
			return nil
		})
	})
}

func (d defaultViews) adminDashboard(posts []content.Post, report content.Report, message, csrfToken string) templ.Component {
	return component(func(w io.Writer) error {
		return d.page(w, "Dashboard", func(w io.Writer) error {
			if message != "" {
				fmt.Fprintf(w, "<p>%s</p>", html.EscapeString(message))
			}
			fmt.Fprintf(w, "<form method=\"post\" action=\"/admin/sync/\"><input type=\"hidden\" name=\"_csrf\" value=%q><button>Sync content</button></form>", csrfToken)
			if !report.OK() {
				io.WriteString(w, "<h2>Lint problems</h2><ul>")
				for _, p := range report.Problems {
					fmt.Fprintf(w, "<li>%s</li>", html.EscapeString(p.String()))
				}
				io.WriteString(w, "</ul>")
			}
			io.WriteString(w, "<table><tr><th>Title</th><th>Date</th><th>Category</th><th>Source</th><th>Published</th></tr>")
			for _, p := range posts {
				fmt.Fprintf(w, "<tr><td><a href=\"%s/\">%s</a></td><td>%s</td><td>%s</td><td>%s</td><td>%v</td></tr>",
					p.Link, html.EscapeString(p.Title), p.Date, html.EscapeString(p.Category), html.EscapeString(p.Source), p.Published)
			}
			io.WriteString(w, "</table>")
			return nil
		})
	})
}

func (d defaultViews) adminImages(images []Image, csrfToken string) templ.Component {
	return component(func(w io.Writer) error {
		return d.page(w, "Images", func(w io.Writer) error {
			fmt.Fprintf(w, "<form method=\"post\" action=\"/admin/images/upload/\" enctype=\"multipart/form-data\"><input type=\"hidden\" name=\"_csrf\" value=%q><input type=\"file\" name=\"image\"><button>Upload</button></form><ul>", csrfToken)
			for _, img := range images {
				fmt.Fprintf(w, "<li><a href=\"/public/uploads/%s\">%s</a> %dx%d (%d bytes)</li>",
					views.PathEscape(img.Filename), html.EscapeString(img.Filename), img.Width, img.Height, img.Size)
			}
			io.WriteString(w, "</ul>")
			return nil
		})
	})
}

func (d defaultViews) notFound() templ.Component {
	return component(func(w io.Writer) error {
		return d.page(w, "Not found", func(w io.Writer) error {
			io.WriteString(w, "<p>That page does not exist. <a href=\"/\">Back home.</a></p>")
			return nil
		})
	})
}

func (d defaultViews) serverError() templ.Component {
	return component(func(w io.Writer) error {
		return d.page(w, "Something broke", func(w io.Writer) error {
			io.WriteString(w, "<p>Something went wrong on our side. Try again in a minute.</p>")
			return nil
		})
	})
}

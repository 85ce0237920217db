// Package render produces the single-file prototype pages. Each page is a
// complete HTML document styled with the Tailwind CDN build: a shared head and
// hero section carrying the archetype name and the idea text, one of four
// archetype bodies, and a footer.
package render

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-idea-prototyper/internal/domain"
)

const head = "<meta charset='UTF-8'/>" +
	"<meta name='viewport' content='width=device-width, initial-scale=1.0'/>" +
	"<script src='https://cdn.tailwindcss.com'></script>" +
	"<title>SaaS.ai Prototype</title>"

const footer = `<footer class='py-10 text-center text-slate-400'>Built with SaaS.ai</footer>`

// Render returns the full HTML document for site and ideaText. The idea text
// is HTML-escaped before interpolation; an unknown site falls back to the
// landing body.
func Render(site domain.SiteType, ideaText string) string {
	body, ok := bodies[site]
	if !ok {
		body = bodies[domain.SiteLanding]
	}

	var b strings.Builder
	b.Grow(len(head) + len(body) + len(ideaText) + 2048)
	b.WriteString("\n    <!doctype html>\n    <html>\n      <head>")
	b.WriteString(head)
	b.WriteString("</head>\n      <body class='min-h-screen bg-slate-950'>\n")
	b.WriteString(hero(site, ideaText))
	b.WriteString(body)
	b.WriteString("        ")
	b.WriteString(footer)
	b.WriteString("\n      </body>\n    </html>\n")
	return b.String()
}

// Title returns the display name for site, e.g. "Dashboard".
func Title(site domain.SiteType) string {
	// Casers carry state; build one per call.
	return cases.Title(language.English).String(string(site))
}

func hero(site domain.SiteType, ideaText string) string {
	return `
    <header class='bg-gradient-to-br from-slate-900 via-slate-800 to-slate-900 text-white'>
      <div class='max-w-6xl mx-auto px-6 py-20'>
        <h1 class='text-4xl md:text-6xl font-extrabold tracking-tight'>Prototype: ` + html.EscapeString(Title(site)) + `</h1>
        <p class='mt-4 text-slate-300 text-lg'>Idea: ` + html.EscapeString(ideaText) + `</p>
        <div class='mt-8 flex gap-3'>
          <a href='#' class='px-5 py-3 rounded-lg bg-blue-600 hover:bg-blue-500 transition'>Get Started</a>
          <a href='#' class='px-5 py-3 rounded-lg bg-white/10 hover:bg-white/20 transition'>Learn More</a>
        </div>
      </div>
    </header>
`
}

// bodies maps each archetype to its section markup. The blog article is kept
// as Markdown and converted once at init.
var bodies = map[domain.SiteType]string{
	domain.SiteLanding:   landingBody,
	domain.SiteDashboard: dashboardBody,
	domain.SiteEcommerce: ecommerceBody,
	domain.SiteBlog:      blogBody(mustMarkdown(blogArticle)),
}

func mustMarkdown(src string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		panic("render: blog article: " + err.Error())
	}
	return buf.String()
}

// Package web embeds the HTML templates and static assets served by the
// journal web service.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages lists the page templates, each rendered inside layout.html.
var Pages = []string{"index", "journal", "projects", "about"}

// Templates parses every page together with the shared layout. Pages
// define the same blocks, so each gets its own template set.
func Templates() (map[string]*template.Template, error) {
	layout, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(Pages))

	for _, name := range Pages {
		t, err := template.Must(layout.Clone()).ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing page %s: %w", name, err)
		}

		pages[name] = t
	}

	return pages, nil
}

// Static returns the static asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // unreachable: the directory is embedded
	}

	return sub
}

// Package view renders the landing page and serves the static assets it
// links to. Templates and assets are embedded in the binary.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"

	"wish-landing/internal/domain"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

var contentTypes = map[string]string{
	".svg": "image/svg+xml",
	".png": "image/png",
	".css": "text/css; charset=utf-8",
}

type View struct {
	page *template.Template
}

// New parses the embedded page template.
func New() (*View, error) {
	page, err := template.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("view: parse page template: %w", err)
	}
	return &View{page: page}, nil
}

func (v *View) RenderPage(w io.Writer, page domain.Page) error {
	if err := v.page.Execute(w, page); err != nil {
		return fmt.Errorf("view: execute page template: %w", err)
	}
	return nil
}

// Asset looks up an embedded file by its URL path, e.g. "assets/logo.svg".
func (v *View) Asset(name string) ([]byte, string, bool) {
	name = path.Clean(name)
	if path.Dir(name) != "assets" {
		return nil, "", false
	}
	contentType, known := contentTypes[path.Ext(name)]
	if !known {
		return nil, "", false
	}
	body, err := assetFS.ReadFile(name)
	if err != nil {
		return nil, "", false
	}
	return body, contentType, true
}

// Package view renders the server-side HTML pages.
package view

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"todolist/shared/identity"
)

const (
	PageHome      = "home"
	PageSignup    = "signup"
	PageLogin     = "login"
	PageCurrent   = "current"
	PageCompleted = "completed"
	PageCreate    = "create"
	PageView      = "view"
	PageError     = "error"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
}

var pages = parse(PageHome, PageSignup, PageLogin, PageCurrent, PageCompleted, PageCreate, PageView, PageError)

// Page is the data every template receives. Form holds the submitted or
// current form values, Data the page specific view model.
type Page struct {
	Title string
	User  identity.Identity
	Error string
	Code  int
	Next  string
	Form  any
	Data  any
}

// NewPage starts a page for the identity bound to ctx, if any.
func NewPage(ctx context.Context, title string) Page {
	id, _ := identity.FromContext(ctx)

	return Page{Title: title, User: id}
}

func parse(names ...string) map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(names))

	for _, name := range names {
		parsed[name] = template.Must(
			template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"),
		)
	}

	return parsed
}

// Render executes the named page into w. The page is rendered to a buffer
// first so a template error never leaves a half written response.
func Render(w io.Writer, name string, page Page) error {
	tmpl, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("failed to render page %q: %w", name, err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write page %q: %w", name, err)
	}

	return nil
}

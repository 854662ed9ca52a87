package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"pet-lost-found/internal/ports/auth"
)

//go:embed templates/*.html
var files embed.FS

// Páginas disponibles. Cada una se parsea junto al layout.
const (
	PageHome      = "home"
	PageForm      = "form"
	PageDashboard = "dashboard"
	PageFlyer     = "flyer"
)

// Page es lo que recibe el layout.
type Page struct {
	Title  string
	User   *auth.Claims
	Notice string
	Body   any
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	// pct: coordenada del plano 0-100 a porcentaje CSS
	"pct": func(v float64) string { return strconv.FormatFloat(v, 'f', 0, 64) + "%" },
	"safeURL": func(s string) template.URL {
		// previews locales (data:image/...) y URLs del object store
		return template.URL(s)
	},
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, p := range []string{PageHome, PageForm, PageDashboard} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+p+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		r.pages[p] = t
	}
	// el flyer es una página imprimible sin layout
	t, err := template.New("flyer.html").Funcs(funcs).ParseFS(files, "templates/flyer.html")
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", PageFlyer, err)
	}
	r.pages[PageFlyer] = t
	return r, nil
}

// Render ejecuta en un buffer para no mandar una respuesta a medias.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Page) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	var err error
	if page == PageFlyer {
		err = t.ExecuteTemplate(&buf, "flyer.html", data)
	} else {
		err = t.ExecuteTemplate(&buf, "layout.html", data)
	}
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

// MustNew es para el router: los templates están embebidos, un error acá es de build.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

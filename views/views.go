// Package views renders the server-side HTML pages of the site.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rpupo63/portfolio-site/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home.html", "post.html"}

// Site holds the values shared by every page
type Site struct {
	Title        string
	BaseURL      string
	GATrackingID string
	Footer       FooterData
}

type Renderer struct {
	site     Site
	footer   template.HTML
	pages    map[string]*template.Template
	markdown goldmark.Markdown
}

// layoutData is what base.html sees; Page is the page specific part
type layoutData struct {
	SiteTitle    string
	Title        string
	Description  string
	Canonical    string
	GATrackingID string
	Footer       template.HTML
	Page         any
}

type HomePage struct {
	Projects []*models.Project
	Posts    []*models.BlogPost
}

type PostPage struct {
	Post *models.BlogPost
	Body template.HTML
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"categoryLabel": CategoryLabel,
		"postPath":      PostPath,
		"isoDate": func(t time.Time) string {
			return t.UTC().Format(time.RFC3339)
		},
		"displayDate": func(t time.Time) string {
			return t.UTC().Format("January 2, 2006")
		},
	}
}

// New parses the embedded layouts and renders the footer once
func New(site Site) (*Renderer, error) {
	base, err := template.New("base.html").Funcs(funcs()).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone base layout for %s: %w", name, err)
		}
		if pages[name], err = clone.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}

	footer, err := Footer(site.Footer)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
		),
	)

	return &Renderer{
		site:     site,
		footer:   footer,
		pages:    pages,
		markdown: md,
	}, nil
}

// Markdown converts post content to HTML. Raw HTML in the source is not passed through.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Home renders the landing page
func (r *Renderer) Home(w io.Writer, page HomePage) error {
	return r.render(w, "home.html", layoutData{
		Canonical: strings.TrimSuffix(r.site.BaseURL, "/") + "/",
		Page:      page,
	})
}

// Post renders a single blog post page
func (r *Renderer) Post(w io.Writer, post *models.BlogPost) error {
	body, err := r.Markdown(post.Content)
	if err != nil {
		return err
	}

	description := ""
	if post.Summary != nil {
		description = *post.Summary
	}

	return r.render(w, "post.html", layoutData{
		Title:       post.Title,
		Description: description,
		Canonical:   PostURL(r.site.BaseURL, post.Slug),
		Page:        PostPage{Post: post, Body: body},
	})
}

func (r *Renderer) render(w io.Writer, name string, data layoutData) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if r.site.BaseURL == "" {
		data.Canonical = ""
	}
	data.SiteTitle = r.site.Title
	data.GATrackingID = r.site.GATrackingID
	data.Footer = r.footer

	// a failed render writes nothing
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// CategoryLabel turns a stored category such as "web-apps" into "Web Apps"
func CategoryLabel(category string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(category)
	return cases.Title(language.English).String(words)
}

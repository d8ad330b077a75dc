package views

import (
	"bytes"
	"fmt"
	"html/template"
)

var footerTemplates = template.Must(template.New("footer").Parse(`
{{- define "section" -}}
<section class="footer-section"><h3 class="footer-section-title text-sm font-semibold uppercase tracking-wider">{{.Title}}</h3>{{.Children}}</section>
{{- end -}}
{{- define "links" -}}
<ul class="footer-links">{{range .}}<li><a href="{{.URL}}">{{.Label}}</a></li>{{end}}</ul>
{{- end -}}
{{- define "footer" -}}
<footer class="site-footer"><div class="footer-sections">{{range .Sections}}{{.}}{{end}}</div>{{with .Copyright}}<p class="footer-copyright">{{.}}</p>{{end}}</footer>
{{- end -}}
`))

// FooterSection renders a footer block: a heading styled uppercase by CSS,
// followed by children exactly as given. The title text itself is not changed.
func FooterSection(title string, children template.HTML) (template.HTML, error) {
	var buf bytes.Buffer
	err := footerTemplates.ExecuteTemplate(&buf, "section", struct {
		Title    string
		Children template.HTML
	}{title, children})
	if err != nil {
		return "", fmt.Errorf("render footer section %q: %w", title, err)
	}
	return template.HTML(buf.String()), nil
}

type FooterLink struct {
	Label string `mapstructure:"label" yaml:"label"`
	URL   string `mapstructure:"url" yaml:"url"`
}

// FooterData is everything the site footer shows. Sections without links are
// left out.
type FooterData struct {
	Contact   []FooterLink
	Elsewhere []FooterLink
	Site      []FooterLink
	Copyright string
}

// Footer composes the CONTACT, ELSEWHERE and SITE sections
func Footer(data FooterData) (template.HTML, error) {
	groups := []struct {
		title string
		links []FooterLink
	}{
		{"CONTACT", data.Contact},
		{"ELSEWHERE", data.Elsewhere},
		{"SITE", data.Site},
	}

	var sections []template.HTML
	for _, g := range groups {
		if len(g.links) == 0 {
			continue
		}
		var links bytes.Buffer
		if err := footerTemplates.ExecuteTemplate(&links, "links", g.links); err != nil {
			return "", fmt.Errorf("render %s links: %w", g.title, err)
		}
		section, err := FooterSection(g.title, template.HTML(links.String()))
		if err != nil {
			return "", err
		}
		sections = append(sections, section)
	}

	var buf bytes.Buffer
	err := footerTemplates.ExecuteTemplate(&buf, "footer", struct {
		Sections  []template.HTML
		Copyright string
	}{sections, data.Copyright})
	if err != nil {
		return "", fmt.Errorf("render footer: %w", err)
	}
	return template.HTML(buf.String()), nil
}

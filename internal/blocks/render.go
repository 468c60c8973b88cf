// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// render.go renders resolved content blocks to HTML. Each block type maps
// to exactly one template; blocks render strictly in array order, and an
// unrecognized type is an error rather than a silent skip.
package blocks

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"amalcms/internal/markdown"
	"amalcms/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateNames maps each block type to its template file.
var templateNames = map[models.BlockType]string{
	models.BlockText:        "text.html",
	models.BlockServices:    "services.html",
	models.BlockStats:       "stats.html",
	models.BlockProgramme:   "programme.html",
	models.BlockImpact:      "impact.html",
	models.BlockSponsorship: "sponsorship.html",
	models.BlockTimeline:    "timeline.html",
	models.BlockGallery:     "gallery.html",
	models.BlockList:        "list.html",
}

// Renderer renders content blocks and full public pages.
type Renderer struct {
	templates map[models.BlockType]*template.Template
	page      *template.Template
}

// NewRenderer parses all block templates from the embedded filesystem.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[models.BlockType]*template.Template, len(templateNames))}

	for blockType, name := range templateNames {
		tmpl, err := template.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", blockType, err)
		}
		r.templates[blockType] = tmpl
	}

	page, err := template.ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	r.page = page

	return r, nil
}

// textView is the template data for text blocks: the Markdown body is
// converted to HTML before rendering.
type textView struct {
	Heading string
	Body    template.HTML
}

// Render renders one block with its type's template. The payload is
// decoded and validated shapes are assumed; invalid payloads still render
// whatever fields they carry.
func (r *Renderer) Render(b models.Block) (template.HTML, error) {
	tmpl, ok := r.templates[b.Type]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, b.Type)
	}

	payload, err := Decode(b)
	if err != nil {
		return "", err
	}

	var data any = payload
	if text, ok := payload.(*TextPayload); ok {
		body, err := markdown.ToHTML(text.Text)
		if err != nil {
			return "", fmt.Errorf("render text block: %w", err)
		}
		data = textView{Heading: text.Heading, Body: template.HTML(body)}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s block: %w", b.Type, err)
	}
	return template.HTML(buf.String()), nil
}

// RenderAll renders blocks in array order and concatenates the results.
// The order on the main record is authoritative: no reordering, filtering,
// or deduplication happens here.
func (r *Renderer) RenderAll(bs []models.Block) (template.HTML, error) {
	var sb strings.Builder
	for i, b := range bs {
		html, err := r.Render(b)
		if err != nil {
			return "", fmt.Errorf("block %d: %w", i+1, err)
		}
		sb.WriteString(string(html))
		sb.WriteString("\n")
	}
	return template.HTML(sb.String()), nil
}

// pageView is the template data for a full public page.
type pageView struct {
	Locale  string
	Dir     string
	Title   string
	Excerpt string
	Body    template.HTML
}

// RenderPage renders a complete public HTML page for a resolved entity.
// Arabic pages get dir="rtl".
func (r *Renderer) RenderPage(locale, title, excerpt string, bs []models.Block) ([]byte, error) {
	body, err := r.RenderAll(bs)
	if err != nil {
		return nil, err
	}

	dir := "ltr"
	if locale == "ar" {
		dir = "rtl"
	}

	var buf bytes.Buffer
	err = r.page.Execute(&buf, pageView{
		Locale:  locale,
		Dir:     dir,
		Title:   title,
		Excerpt: excerpt,
		Body:    body,
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

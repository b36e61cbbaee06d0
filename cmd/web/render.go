package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"visnex.global/web/internal/platform/requestctx"
	"visnex.global/web/internal/ui"
)

// renderer executes the page and fragment templates. With a dev directory set,
// templates are reparsed from disk on every request.
type renderer struct {
	devDir string
	cache  *template.Template
}

func newRenderer(devDir string) (*renderer, error) {
	r := &renderer{devDir: devDir}
	if devDir != "" {
		// Fail fast on a broken checkout even in dev mode.
		if _, err := parseTemplates(os.DirFS(devDir)); err != nil {
			return nil, err
		}
		return r, nil
	}
	tc, err := parseTemplates(ui.Templates())
	if err != nil {
		return nil, err
	}
	r.cache = tc
	return r, nil
}

func parseTemplates(fsys fs.FS) (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
	}
	matches, err := fs.Glob(fsys, "*.tmpl")
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no templates found")
	}
	return template.New("_root").Funcs(funcMap).ParseFS(fsys, matches...)
}

func (rd *renderer) templates() (*template.Template, error) {
	if rd.devDir != "" {
		return parseTemplates(os.DirFS(rd.devDir))
	}
	if rd.cache == nil {
		return nil, fmt.Errorf("template not initialized")
	}
	return rd.cache, nil
}

// render executes the base layout.
func (rd *renderer) render(w http.ResponseWriter, r *http.Request, data any) {
	rd.execute(w, r, "base", data)
}

// renderTemplate executes a named fragment without the layout.
func (rd *renderer) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	rd.execute(w, r, name, data)
}

// execute buffers the output so a failing template never leaves a half written page.
func (rd *renderer) execute(w http.ResponseWriter, r *http.Request, name string, data any) {
	t, err := rd.templates()
	if err != nil {
		requestctx.Logger(r.Context()).Error("template parse failed", zap.Error(err))
		http.Error(w, "template parse error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		requestctx.Logger(r.Context()).Error("template exec failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

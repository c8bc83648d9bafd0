package main

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

//go:embed templates/*.tmpl static/*
var pageAssetsFS embed.FS

type pageTemplateRenderer struct {
	env string
}

func newPageTemplateRenderer(env string) *pageTemplateRenderer {
	return &pageTemplateRenderer{
		env: env,
	}
}

var pageTemplateFuncs = template.FuncMap{
	"text": func(texts map[string]string, key string) string {
		if value, ok := texts[key]; ok {
			return value
		}
		return key
	},
	"cssColor": func(value string) template.CSS {
		return template.CSS(strings.TrimSpace(value))
	},
	"add": func(a, b int) int {
		return a + b
	},
}

func (r *pageTemplateRenderer) templatesForRender(contentTemplatePath string) (*template.Template, error) {
	var sourceFS fs.FS
	if r.env == "development" {
		sourceFS = os.DirFS(".")
	} else {
		sourceFS = pageAssetsFS
	}

	templates, err := template.New("layout.tmpl").Funcs(pageTemplateFuncs).ParseFS(sourceFS, pageTemplateLayoutPath, contentTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return templates, nil
}

func pageStaticFileSystem(env string) (http.FileSystem, error) {
	if env == "development" {
		return http.Dir("static"), nil
	}

	sub, err := fs.Sub(pageAssetsFS, "static")
	if err != nil {
		return nil, fmt.Errorf("page static fs: %w", err)
	}
	return http.FS(sub), nil
}

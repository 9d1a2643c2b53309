package http

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// loadTemplates parses the page templates from dir, or the embedded copies
// when dir is empty.
func loadTemplates(dir string) (*template.Template, error) {
	tmpl := template.New("")
	var err error
	if dir != "" {
		tmpl, err = tmpl.ParseGlob(dir + "/*.html")
	} else {
		tmpl, err = tmpl.ParseFS(templateFiles, "templates/*.html")
	}
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// serveStatic mounts /static from dir, or from the embedded assets.
func serveStatic(router *gin.Engine, dir string) {
	if dir != "" {
		router.Static("/static", dir)
		return
	}
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // embedded directory always exists
	}
	router.StaticFS("/static", http.FS(sub))
}

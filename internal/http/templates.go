package http

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

//go:embed static
var embeddedStatic embed.FS

var templateFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(entities.DateLayout)
	},
	"formatTimestamp": func(t time.Time) string {
		return t.Local().Format("2006-01-02 15:04:05")
	},
}

// LoadTemplates parses the page templates from dir, or from the copies
// embedded in the binary when dir is empty.
func LoadTemplates(dir string) (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs)

	var err error
	if dir == "" {
		tmpl, err = tmpl.ParseFS(embeddedTemplates, "templates/*.html")
	} else {
		tmpl, err = tmpl.ParseGlob(filepath.Join(dir, "*.html"))
	}
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

func staticFS() fs.FS {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

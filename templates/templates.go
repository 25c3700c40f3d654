package templates

import (
	"embed"
	"html/template"
	"rentvsbuy/utils/helpers"
	"strconv"
)

//go:embed *.html
var files embed.FS

// Load parses the embedded page templates with the helpers they rely on.
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "*.html")
}

// Funcs returns the template helpers used by the pages.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money": helpers.FormatMoney,
		"num": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		"deltaClass": func(v float64) string {
			if v >= 0 {
				return "favours-buying"
			}
			return "favours-renting"
		},
	}
}

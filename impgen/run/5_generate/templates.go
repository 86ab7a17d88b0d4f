package generate

import "text/template"

// facadeTemplate renders a complete facade file from a facadeData.
//
//nolint:gochecknoglobals // parsed once, read-only afterwards
var facadeTemplate = template.Must(template.New("facade").Parse(`// Code generated by impgen. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/toejough/impshape"
{{range .Imports}}	{{.}}
{{end}})

// {{.Name}} implements {{.Interface}} by dispatching every method to the instance
// object of a mock. Calls are recorded in the mock's function table.
type {{.Name}} struct {
	mock *impshape.Mock
}

// New{{.Name}} wraps mock.
func New{{.Name}}(mock *impshape.Mock) *{{.Name}} {
	return &{{.Name}}{mock: mock}
}
{{range .Methods}}
// {{.Name}} calls the instance member {{printf "%q" .Name}}.
func (facade *{{$.Name}}) {{.Name}}({{.Params}}){{.Results}} {
{{- if .Rest}}
	args := []any{ {{- .Args -}} }
	for _, arg := range {{.Rest}} {
		args = append(args, arg)
	}
{{end}}
{{- if eq (len .ResultTypes) 0}}
	{{.Call}}
{{- else if eq (len .ResultTypes) 1}}
	r0, _ := {{.Call}}.({{index .ResultTypes 0}})

	return r0
{{- else}}
	results, _ := {{.Call}}.([]any)
{{range $index, $type := .ResultTypes}}
	var r{{$index}} {{$type}}
	if len(results) > {{$index}} {
		r{{$index}}, _ = results[{{$index}}].({{$type}})
	}
{{end}}
	return {{.Returns}}
{{- end}}
}
{{end}}
var _ {{.Interface}} = (*{{.Name}})(nil)
`))

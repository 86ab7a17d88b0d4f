// Package generate renders typed facades over impshape mocks.
package generate

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"

	detect "github.com/toejough/impshape/impgen/run/3_detect"
)

// Facade renders the source of a struct named name that implements iface by
// calling members of a mock's instance object. A single result is type-asserted
// from the member's return value. Multiple results are taken from a returned
// []any, and missing or mistyped entries yield zero values.
func Facade(iface detect.Interface, name, pkgName string) (string, error) {
	data := facadeData{
		Package:   pkgName,
		Name:      name,
		Interface: iface.Name,
		Imports:   iface.Imports,
		Methods:   make([]methodData, 0, len(iface.Methods)),
	}

	for _, method := range iface.Methods {
		data.Methods = append(data.Methods, newMethodData(method))
	}

	var buf bytes.Buffer

	err := facadeTemplate.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute facade template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to format generated code: %w\n%s", err, buf.String())
	}

	return string(formatted), nil
}

type facadeData struct {
	Package   string
	Name      string
	Interface string
	Imports   []string
	Methods   []methodData
}

type methodData struct {
	Name        string
	Params      string
	Results     string
	ResultTypes []string
	// Args lists the fixed arguments; Rest names the variadic parameter, if any.
	Args    string
	Rest    string
	Call    string
	Returns string
}

func newMethodData(method detect.Method) methodData {
	data := methodData{Name: method.Name, ResultTypes: method.Results}

	params := make([]string, len(method.Params))
	fixed := make([]string, 0, len(method.Params))

	for i, param := range method.Params {
		params[i] = param.Name + " " + param.Type

		if method.Variadic && i == len(method.Params)-1 {
			data.Rest = param.Name

			continue
		}

		fixed = append(fixed, param.Name)
	}

	data.Params = strings.Join(params, ", ")
	data.Args = strings.Join(fixed, ", ")

	switch len(method.Results) {
	case 0:
	case 1:
		data.Results = " " + method.Results[0]
	default:
		data.Results = " (" + strings.Join(method.Results, ", ") + ")"
	}

	callArgs := []string{strconv.Quote(method.Name)}

	switch {
	case data.Rest != "":
		callArgs = append(callArgs, "args...")
	case data.Args != "":
		callArgs = append(callArgs, data.Args)
	}

	data.Call = "facade.mock.Instance().Call(" + strings.Join(callArgs, ", ") + ")"

	returns := make([]string, len(method.Results))
	for i := range returns {
		returns[i] = "r" + strconv.Itoa(i)
	}

	data.Returns = strings.Join(returns, ", ")

	return data
}

// Package detect finds an interface declaration and flattens its method set.
package detect

import (
	"errors"
	"fmt"
	"go/token"
	"sort"
	"strconv"
	"strings"

	"github.com/dave/dst"

	astutil "github.com/toejough/impshape/impgen/run/0_util"
)

// Exported variables.
var (
	ErrInterfaceNotFound   = errors.New("interface not found")
	ErrUnresolvedImport    = errors.New("no import provides package")
	ErrUnsupportedEmbed    = errors.New("unsupported embedded interface")
	ErrUnsupportedGeneric  = errors.New("generic interfaces are not supported")
	ErrDuplicateMethodName = errors.New("duplicate method")
)

// Interface is a flattened interface ready for generation.
type Interface struct {
	Name    string
	Package string
	Methods []Method
	// Imports holds the import lines (optionally aliased) the method types need.
	Imports []string
}

// Method is one interface method.
type Method struct {
	Name     string
	Params   []Param
	Results  []string
	Variadic bool
}

// Param is one method parameter.
type Param struct {
	Name string
	Type string
}

// Find locates the interface named name among files and flattens it, following
// embedded interfaces declared in the same files. Methods are sorted by name.
func Find(files []*dst.File, name string) (Interface, error) {
	finder := &finder{files: files, seen: map[string]bool{}, methods: map[string]Method{}}

	spec, file := finder.lookup(name)
	if spec == nil {
		return Interface{}, fmt.Errorf("%w: %s", ErrInterfaceNotFound, name)
	}

	if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
		return Interface{}, fmt.Errorf("%w: %s", ErrUnsupportedGeneric, name)
	}

	err := finder.collect(spec, file)
	if err != nil {
		return Interface{}, err
	}

	imports, err := finder.imports()
	if err != nil {
		return Interface{}, err
	}

	methods := make([]Method, 0, len(finder.methods))
	for _, method := range finder.methods {
		methods = append(methods, method)
	}

	sort.Slice(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })

	return Interface{Name: name, Package: file.Name.Name, Methods: methods, Imports: imports}, nil
}

// finder accumulates methods and the type expressions that need imports.
type finder struct {
	files   []*dst.File
	seen    map[string]bool
	methods map[string]Method
	// exprs maps each file to the type expressions drawn from it.
	exprs map[*dst.File][]dst.Expr
}

func (f *finder) collect(spec *dst.TypeSpec, file *dst.File) error {
	if f.seen[spec.Name.Name] {
		return nil
	}

	f.seen[spec.Name.Name] = true

	iface, _ := spec.Type.(*dst.InterfaceType)
	if iface.Methods == nil {
		return nil
	}

	for _, field := range iface.Methods.List {
		err := f.collectField(field, file)
		if err != nil {
			return err
		}
	}

	return nil
}

func (f *finder) collectField(field *dst.Field, file *dst.File) error {
	funcType, isMethod := field.Type.(*dst.FuncType)
	if !isMethod {
		return f.collectEmbedded(field.Type)
	}

	method := Method{Name: field.Names[0].Name}

	if existing, ok := f.methods[method.Name]; ok && !sameSignature(existing, funcType) {
		return fmt.Errorf("%w: %s", ErrDuplicateMethodName, method.Name)
	}

	method.Params, method.Variadic = params(funcType.Params)
	method.Results = astutil.FieldTypes(funcType.Results)
	f.methods[method.Name] = method

	if f.exprs == nil {
		f.exprs = map[*dst.File][]dst.Expr{}
	}

	f.exprs[file] = append(f.exprs[file], funcType)

	return nil
}

func (f *finder) collectEmbedded(expr dst.Expr) error {
	ident, isLocal := expr.(*dst.Ident)
	if !isLocal {
		return fmt.Errorf("%w: %s", ErrUnsupportedEmbed, astutil.TypeString(expr))
	}

	spec, file := f.lookup(ident.Name)
	if spec == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedEmbed, ident.Name)
	}

	return f.collect(spec, file)
}

// imports resolves every referenced package qualifier to an import line from the
// file the qualifier came from.
func (f *finder) imports() ([]string, error) {
	lines := map[string]bool{}

	for file, exprs := range f.exprs {
		for _, qualifier := range astutil.Qualifiers(exprs...) {
			line, ok := importLine(file, qualifier)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnresolvedImport, qualifier)
			}

			lines[line] = true
		}
	}

	sorted := make([]string, 0, len(lines))
	for line := range lines {
		sorted = append(sorted, line)
	}

	sort.Strings(sorted)

	return sorted, nil
}

func (f *finder) lookup(name string) (*dst.TypeSpec, *dst.File) {
	for _, file := range f.files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, isTypeSpec := spec.(*dst.TypeSpec)
				if !isTypeSpec || typeSpec.Name.Name != name {
					continue
				}

				if _, isInterface := typeSpec.Type.(*dst.InterfaceType); isInterface {
					return typeSpec, file
				}
			}
		}
	}

	return nil, nil
}

// importLine finds the import in file that binds qualifier.
func importLine(file *dst.File, qualifier string) (string, bool) {
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		if spec.Name != nil {
			if spec.Name.Name == qualifier {
				return spec.Name.Name + " " + spec.Path.Value, true
			}

			continue
		}

		if guessPackageName(path) == qualifier {
			return spec.Path.Value, true
		}
	}

	return "", false
}

// guessPackageName applies the usual conventions: the last path element, minus a
// major version suffix, a gopkg.in version, or a go- prefix.
func guessPackageName(path string) string {
	elements := strings.Split(path, "/")
	last := elements[len(elements)-1]

	if isMajorVersion(last) && len(elements) > 1 {
		last = elements[len(elements)-2]
	}

	if before, _, found := strings.Cut(last, ".v"); found {
		last = before
	}

	last = strings.TrimPrefix(last, "go-")

	return strings.ReplaceAll(last, "-", "")
}

func isMajorVersion(element string) bool {
	if len(element) < 2 || element[0] != 'v' {
		return false
	}

	_, err := strconv.Atoi(element[1:])

	return err == nil
}

// params names every parameter. Blank, missing, and reserved names become
// p<index>.
func params(fields *dst.FieldList) ([]Param, bool) {
	if fields == nil {
		return nil, false
	}

	var (
		result   []Param
		variadic bool
	)

	for _, field := range fields.List {
		rendered := astutil.TypeString(field.Type)
		_, variadic = field.Type.(*dst.Ellipsis)

		names := []string{""}
		if len(field.Names) > 0 {
			names = names[:0]
			for _, name := range field.Names {
				names = append(names, name.Name)
			}
		}

		for _, name := range names {
			if isReserved(name) {
				name = "p" + strconv.Itoa(len(result))
			}

			result = append(result, Param{Name: name, Type: rendered})
		}
	}

	return result, variadic
}

// isReserved reports names the generated method bodies cannot use for parameters.
func isReserved(name string) bool {
	switch name {
	case "", "_", "facade", "args", "result", "results", "impshape":
		return true
	}

	if len(name) > 1 && (name[0] == 'p' || name[0] == 'r') {
		_, err := strconv.Atoi(name[1:])

		return err == nil
	}

	return false
}

// sameSignature reports whether an embedded redeclaration matches an existing method.
func sameSignature(existing Method, funcType *dst.FuncType) bool {
	paramList, variadic := params(funcType.Params)
	if variadic != existing.Variadic || len(paramList) != len(existing.Params) {
		return false
	}

	for i, param := range paramList {
		if param.Type != existing.Params[i].Type {
			return false
		}
	}

	results := astutil.FieldTypes(funcType.Results)
	if len(results) != len(existing.Results) {
		return false
	}

	for i, result := range results {
		if result != existing.Results[i] {
			return false
		}
	}

	return true
}

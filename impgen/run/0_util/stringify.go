// Package astutil renders DST type expressions back to Go source.
package astutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dave/dst"
)

// FieldTypes expands a field list into one type string per declared name.
// Unnamed fields contribute one entry each.
func FieldTypes(fields *dst.FieldList) []string {
	if fields == nil {
		return nil
	}

	types := make([]string, 0, len(fields.List))

	for _, field := range fields.List {
		rendered := TypeString(field.Type)

		count := max(len(field.Names), 1)
		for range count {
			types = append(types, rendered)
		}
	}

	return types
}

// Qualifiers returns the sorted package identifiers referenced by expr, such as
// "time" for *time.Duration.
func Qualifiers(exprs ...dst.Expr) []string {
	seen := map[string]bool{}

	for _, expr := range exprs {
		if expr == nil {
			continue
		}

		dst.Inspect(expr, func(node dst.Node) bool {
			selector, ok := node.(*dst.SelectorExpr)
			if !ok {
				return true
			}

			if ident, isIdent := selector.X.(*dst.Ident); isIdent {
				seen[ident.Name] = true
			}

			return false
		})
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// TypeString renders a type expression.
//
//nolint:cyclop // one case per expression kind
func TypeString(expr dst.Expr) string {
	switch typed := expr.(type) {
	case nil:
		return ""
	case *dst.Ident:
		return typed.Name
	case *dst.BasicLit:
		return typed.Value
	case *dst.SelectorExpr:
		return TypeString(typed.X) + "." + typed.Sel.Name
	case *dst.StarExpr:
		return "*" + TypeString(typed.X)
	case *dst.ParenExpr:
		return "(" + TypeString(typed.X) + ")"
	case *dst.Ellipsis:
		return "..." + TypeString(typed.Elt)
	case *dst.ArrayType:
		return "[" + TypeString(typed.Len) + "]" + TypeString(typed.Elt)
	case *dst.MapType:
		return "map[" + TypeString(typed.Key) + "]" + TypeString(typed.Value)
	case *dst.ChanType:
		return chanString(typed)
	case *dst.FuncType:
		return "func" + signatureString(typed)
	case *dst.InterfaceType:
		return interfaceString(typed)
	case *dst.StructType:
		return structString(typed)
	case *dst.IndexExpr:
		return TypeString(typed.X) + "[" + TypeString(typed.Index) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typed.Indices))
		for i, index := range typed.Indices {
			indices[i] = TypeString(index)
		}

		return TypeString(typed.X) + "[" + strings.Join(indices, ", ") + "]"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

func chanString(typed *dst.ChanType) string {
	switch typed.Dir {
	case dst.SEND:
		return "chan<- " + TypeString(typed.Value)
	case dst.RECV:
		return "<-chan " + TypeString(typed.Value)
	default:
		return "chan " + TypeString(typed.Value)
	}
}

func interfaceString(typed *dst.InterfaceType) string {
	if typed.Methods == nil || len(typed.Methods.List) == 0 {
		return "interface{}"
	}

	entries := make([]string, 0, len(typed.Methods.List))

	for _, field := range typed.Methods.List {
		funcType, isFunc := field.Type.(*dst.FuncType)
		if !isFunc || len(field.Names) == 0 {
			entries = append(entries, TypeString(field.Type))

			continue
		}

		entries = append(entries, field.Names[0].Name+signatureString(funcType))
	}

	return "interface{ " + strings.Join(entries, "; ") + " }"
}

// signatureString renders params and results without the func keyword.
func signatureString(typed *dst.FuncType) string {
	rendered := "(" + strings.Join(FieldTypes(typed.Params), ", ") + ")"

	results := FieldTypes(typed.Results)

	switch len(results) {
	case 0:
		return rendered
	case 1:
		return rendered + " " + results[0]
	default:
		return rendered + " (" + strings.Join(results, ", ") + ")"
	}
}

func structString(typed *dst.StructType) string {
	if typed.Fields == nil || len(typed.Fields.List) == 0 {
		return "struct{}"
	}

	fields := make([]string, 0, len(typed.Fields.List))

	for _, field := range typed.Fields.List {
		names := make([]string, len(field.Names))
		for i, name := range field.Names {
			names[i] = name.Name
		}

		rendered := TypeString(field.Type)
		if len(names) > 0 {
			rendered = strings.Join(names, ", ") + " " + rendered
		}

		if field.Tag != nil {
			rendered += " " + field.Tag.Value
		}

		fields = append(fields, rendered)
	}

	return "struct{ " + strings.Join(fields, "; ") + " }"
}

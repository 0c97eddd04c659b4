package adapter

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	m "asympt.dev/pkg/asympt/internal/model"
)

// DeclSource extracts the top-level declarations of a user input source.
// Type signatures are rendered in curried arrow form so the shape parser
// can work over plain syntax.
type DeclSource interface {
	Load(path m.Path) ([]m.Declaration, error)
}

// GoDeclSource reads declarations from a Go source file using go/parser.
type GoDeclSource struct{}

// NewGoDeclSource constructs a GoDeclSource.
func NewGoDeclSource() *GoDeclSource {
	return &GoDeclSource{}
}

// Load parses the file and returns one Declaration per top-level function,
// type and interface. Methods are skipped: benchmarking targets free
// functions only.
func (a *GoDeclSource) Load(path m.Path) ([]m.Declaration, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, string(path), nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var decls []m.Declaration

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv != nil {
				continue
			}

			decls = append(decls, m.Declaration{
				Name:     d.Name.Name,
				Kind:     m.KindFunction,
				TypeText: renderArrowType(d.Type),
			})

		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}

			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				kind := m.KindDataType
				if _, isInterface := ts.Type.(*ast.InterfaceType); isInterface {
					kind = m.KindTypeClass
				}

				decls = append(decls, m.Declaration{
					Name: ts.Name.Name,
					Kind: kind,
				})
			}
		}
	}

	return decls, nil
}

// renderArrowType flattens a function signature into curried arrow form,
// e.g. func(xs []int, n int) int -> "[]int -> int -> int".
func renderArrowType(fn *ast.FuncType) string {
	var parts []string

	if fn.Params != nil {
		for _, field := range fn.Params.List {
			typeText := renderExprType(field.Type)

			// A field with n names contributes n curried arguments.
			count := len(field.Names)
			if count == 0 {
				count = 1
			}

			for i := 0; i < count; i++ {
				parts = append(parts, typeText)
			}
		}
	}

	parts = append(parts, renderResultType(fn.Results))

	return strings.Join(parts, " -> ")
}

func renderResultType(results *ast.FieldList) string {
	if results == nil || len(results.List) == 0 {
		return "()"
	}

	var types []string

	for _, field := range results.List {
		typeText := renderExprType(field.Type)

		count := len(field.Names)
		if count == 0 {
			count = 1
		}

		for i := 0; i < count; i++ {
			types = append(types, typeText)
		}
	}

	if len(types) == 1 {
		return types[0]
	}

	return "(" + strings.Join(types, ", ") + ")"
}

func renderExprType(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return renderExprType(e.X) + "." + e.Sel.Name
	case *ast.ArrayType:
		if e.Len == nil {
			return "[]" + renderExprType(e.Elt)
		}

		return "[...]" + renderExprType(e.Elt)
	case *ast.MapType:
		return "map[" + renderExprType(e.Key) + "]" + renderExprType(e.Value)
	case *ast.StarExpr:
		return "*" + renderExprType(e.X)
	case *ast.FuncType:
		// Nested function types stay parenthesized so their arrows do
		// not count as top-level.
		return "(" + renderArrowType(e) + ")"
	case *ast.ChanType:
		return "chan " + renderExprType(e.Value)
	case *ast.InterfaceType:
		return "interface{}"
	case *ast.Ellipsis:
		return "[]" + renderExprType(e.Elt)
	}

	return fmt.Sprintf("%T", expr)
}

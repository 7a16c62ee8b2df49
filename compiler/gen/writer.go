package gen

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path"
	"strconv"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/imports"
)

// File is a rendered package file, with the imports its directive
// expressions need.
type File struct {
	*jen.File
	// Path of the file on disk.
	Path string
	// Imports maps the import names used by directive expressions to
	// their paths.
	Imports map[string]string
}

// Format renders the file, adds the imports of the directive expressions
// and formats the result the way goimports does.
func (f *File) Format() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError("render", f.Path, "rendering file", err)
	}
	src := buf.Bytes()
	if len(f.Imports) > 0 {
		fset := token.NewFileSet()
		af, err := parser.ParseFile(fset, f.Path, src, parser.ParseComments)
		if err != nil {
			return nil, f.debug(src, "parse", err)
		}
		for name, p := range f.Imports {
			if imported(af, p) {
				continue
			}
			if name == path.Base(p) {
				name = ""
			}
			astutil.AddNamedImport(fset, af, name, p)
		}
		var out bytes.Buffer
		if err := format.Node(&out, fset, af); err != nil {
			return nil, f.debug(src, "print", err)
		}
		src = out.Bytes()
	}
	formatted, err := imports.Process(f.Path, src, nil)
	if err != nil {
		return nil, f.debug(src, "format", err)
	}
	return formatted, nil
}

// Write formats the file and writes it to its path.
func (f *File) Write() error {
	src, err := f.Format()
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.Path, src, 0o644); err != nil {
		return NewGenerationError("write", f.Path, "writing file", err)
	}
	return nil
}

// debug writes the unformatted source next to the output for debugging
// (errors intentionally ignored as we're already in error state).
func (f *File) debug(src []byte, phase string, err error) error {
	debugPath := f.Path + ".error"
	_ = os.WriteFile(debugPath, src, 0o644)
	return NewGenerationError(phase, f.Path, "unformatted source written to "+debugPath, err)
}

func imported(f *ast.File, p string) bool {
	for _, s := range f.Imports {
		if v, err := strconv.Unquote(s.Path.Value); err == nil && v == p {
			return true
		}
	}
	return false
}

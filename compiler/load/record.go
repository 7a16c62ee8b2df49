// Package load reads Go packages and extracts the struct types annotated
// for builder and generator synthesis, together with the raw per-field
// directives attached to them.
package load

import (
	"encoding/json"
	"go/token"
	"go/types"
)

// Package is a loaded Go package declaring at least one record.
type Package struct {
	Path    string    `json:"path,omitempty"`
	Name    string    `json:"name,omitempty"`
	Dir     string    `json:"dir,omitempty"`
	Records []*Record `json:"records,omitempty"`

	// Types is the type-checked package the records belong to.
	Types *types.Package `json:"-"`
	Fset  *token.FileSet `json:"-"`
}

// Record is a struct type annotated with //boulder:buildable and/or
// //boulder:generatable.
type Record struct {
	Name        string `json:"name,omitempty"`
	Pos         string `json:"pos,omitempty"`
	Buildable   bool   `json:"buildable,omitempty"`
	Generatable bool   `json:"generatable,omitempty"`
	// Context is the accessor type expression named by //boulder:context,
	// empty for records built without one.
	Context    string       `json:"context,omitempty"`
	TypeParams []*TypeParam `json:"type_params,omitempty"`
	Fields     []*Field     `json:"fields,omitempty"`
	// Imports maps the import names of the declaring file to their paths.
	// Directive expressions are resolved against them.
	Imports map[string]string `json:"imports,omitempty"`

	Object      *types.TypeName `json:"-"`
	ContextType types.Type      `json:"-"`
}

// TypeParam is a type parameter of a generic record.
type TypeParam struct {
	Name       string `json:"name,omitempty"`
	Constraint string `json:"constraint,omitempty"`

	Type *types.TypeParam `json:"-"`
}

// Field is a record field and the directives attached to it.
type Field struct {
	Name       string       `json:"name,omitempty"`
	Type       string       `json:"type,omitempty"`
	Embedded   bool         `json:"embedded,omitempty"`
	Tag        string       `json:"tag,omitempty"`
	Directives []*Directive `json:"directives,omitempty"`

	Var *types.Var `json:"-"`
}

// Directive source kinds.
const (
	SourceComment = "comment"
	SourceTag     = "tag"
)

// Directive is one raw field directive, as written:
//
//	//boulder:<name>[(<annotation>)] [<argument>]
//	`boulder:"<name>[(<annotation>)][=<argument>];..."`
type Directive struct {
	Name       string `json:"name"`
	Annotation string `json:"annotation,omitempty"`
	Arg        string `json:"arg,omitempty"`
	Pos        string `json:"pos,omitempty"`
	Source     string `json:"source,omitempty"`
}

// String returns the directive in comment form.
func (d *Directive) String() string {
	s := d.Name
	if d.Annotation != "" {
		s += "(" + d.Annotation + ")"
	}
	if d.Arg != "" {
		s += " " + d.Arg
	}
	return s
}

// MarshalPackages encodes the loaded packages as indented JSON.
func MarshalPackages(pkgs []*Package) ([]byte, error) {
	return json.MarshalIndent(pkgs, "", "  ")
}

// UnmarshalPackages decodes packages encoded by MarshalPackages. The type
// information is not part of the encoding.
func UnmarshalPackages(buf []byte) ([]*Package, error) {
	var pkgs []*Package
	if err := json.Unmarshal(buf, &pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

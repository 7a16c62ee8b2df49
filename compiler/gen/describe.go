package gen

import (
	"encoding/json"
	"io"
)

type (
	// Description summarizes a record and the strategies chosen for it.
	Description struct {
		Package    string             `json:"package"`
		Name       string             `json:"name"`
		Pos        string             `json:"pos,omitempty"`
		Builder    string             `json:"builder,omitempty"`
		Generator  string             `json:"generator,omitempty"`
		Context    string             `json:"context,omitempty"`
		Result     string             `json:"result"`
		TypeParams []string           `json:"type_params,omitempty"`
		Fields     []FieldDescription `json:"fields,omitempty"`
	}

	// FieldDescription summarizes the slots of a field.
	FieldDescription struct {
		Name      string `json:"name"`
		Type      string `json:"type"`
		Setter    string `json:"setter"`
		Slot      string `json:"slot"`
		Builder   string `json:"builder,omitempty"`
		Generator string `json:"generator,omitempty"`
	}
)

// Descriptions returns the description of every record of the graph.
func (g *Graph) Descriptions() []Description {
	var ds []Description
	for _, p := range g.Packages {
		for _, t := range p.Types {
			d := Description{
				Package: p.Path,
				Name:    t.Name,
				Pos:     t.Pos,
				Context: t.Context,
				Result:  t.Result,
			}
			if t.Buildable {
				d.Builder = t.BuilderName()
			}
			if t.Generatable {
				d.Generator = t.GeneratorName()
			}
			for _, tp := range t.TypeParams {
				d.TypeParams = append(d.TypeParams, tp.Name+" "+tp.Constraint)
			}
			for _, f := range t.Fields {
				fd := FieldDescription{
					Name:   f.Name,
					Type:   f.Field.Type,
					Setter: f.Setter,
					Slot:   f.Slot,
				}
				if f.Build != nil {
					fd.Builder = f.Build.String()
				}
				if f.Gen != nil {
					fd.Generator = f.Gen.String()
				}
				d.Fields = append(d.Fields, fd)
			}
			ds = append(ds, d)
		}
	}
	return ds
}

// Describe writes the descriptions of the graph as indented JSON.
func (g *Graph) Describe(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g.Descriptions())
}

package gen

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/boulder/compiler/load"
)

// snapshotVersion changes whenever the generated code changes for the
// same records.
const snapshotVersion = 2

// Snapshot is the state a generated file depends on.
type Snapshot struct {
	Version  int            `json:"version"`
	Header   string         `json:"header"`
	Output   string         `json:"output"`
	Features []string       `json:"features"`
	Records  []*load.Record `json:"records"`
	Bases    []BaseFact     `json:"bases"`
}

// BaseFact is what the generated code of one slot relies on about its
// nested record, which may live in another package.
type BaseFact struct {
	Record    string   `json:"record"`
	Field     string   `json:"field"`
	Slot      string   `json:"slot"`
	Base      string   `json:"base"`
	Chain     string   `json:"chain,omitempty"`
	Builder   bool     `json:"builder"`
	Generator bool     `json:"generator"`
	Context   string   `json:"context,omitempty"`
	Setters   []string `json:"setters,omitempty"`
}

// EncodeSnapshot encodes the snapshot of a package with msgpack. Map keys
// are sorted, so equal records encode to equal bytes.
func EncodeSnapshot(c *Config, p *Package) ([]byte, error) {
	s := Snapshot{
		Version: snapshotVersion,
		Header:  c.header(),
		Output:  c.output(),
		Records: p.Records,
		Bases:   baseFacts(p),
	}
	for _, f := range c.Features {
		s.Features = append(s.Features, f.Name)
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.SetSortMapKeys(true)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// baseFacts lists the resolved nested bases of every slot of p, in field
// order.
func baseFacts(p *Package) []BaseFact {
	var facts []BaseFact
	for _, t := range p.Types {
		for _, f := range t.Fields {
			for _, s := range []struct {
				name string
				plan *Plan
			}{{"build", f.Build}, {"generate", f.Gen}} {
				if s.plan == nil || s.plan.Strategy == nil || s.plan.Nested == nil {
					continue
				}
				n := s.plan.Nested
				obj := n.Base.Named.Origin().Obj()
				fact := BaseFact{
					Record:    t.Name,
					Field:     f.Name,
					Slot:      s.name,
					Base:      obj.Pkg().Path() + "." + obj.Name(),
					Chain:     n.Chain.String(),
					Builder:   n.Base.Builder,
					Generator: n.Base.Generator,
				}
				if n.Base.Context != nil {
					fact.Context = n.Base.Context.String()
				}
				for _, o := range n.Overrides {
					fact.Setters = append(fact.Setters, o.Setter)
				}
				facts = append(facts, fact)
			}
		}
	}
	return facts
}

// DecodeSnapshot decodes a snapshot written by EncodeSnapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	s := &Snapshot{}
	if err := dec.Decode(s); err != nil {
		return nil, err
	}
	return s, nil
}

// unchanged reports whether the output exists and was generated from the
// same snapshot.
func unchanged(dir, output string, snap []byte) bool {
	if _, err := os.Stat(output); err != nil {
		return false
	}
	prev, err := os.ReadFile(filepath.Join(dir, SnapshotFile))
	return err == nil && bytes.Equal(prev, snap)
}

func writeSnapshot(dir string, snap []byte) error {
	return os.WriteFile(filepath.Join(dir, SnapshotFile), snap, 0o644)
}

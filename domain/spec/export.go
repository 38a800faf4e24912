package spec

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"godyn/domain/block"
	"godyn/domain/schema"
)

// The export document is the self-describing interchange form of a
// registry. It is an aid for read-only collaborators (visualization,
// reporting, domain DSLs), not the source of truth: TypeDef constraint
// predicates cannot round-trip and export as their description only.

// TypeDoc is the exported form of a TypeDef.
type TypeDoc struct {
	Name        string `json:"name" yaml:"name"`
	Primitive   string `json:"primitive" yaml:"primitive"`
	Constraint  string `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Units       string `json:"units,omitempty" yaml:"units,omitempty"`
}

// FieldDoc is one exported space field.
type FieldDoc struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// SpaceDoc is the exported form of a Space.
type SpaceDoc struct {
	Name   string     `json:"name" yaml:"name"`
	Fields []FieldDoc `json:"fields" yaml:"fields"`
}

// VariableDoc is one exported state variable.
type VariableDoc struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Initial any    `json:"initial,omitempty" yaml:"initial,omitempty"`
}

// EntityDoc is the exported form of an Entity.
type EntityDoc struct {
	Name      string        `json:"name" yaml:"name"`
	Variables []VariableDoc `json:"variables" yaml:"variables"`
}

// PortGroupDoc carries one exported port group as names.
type PortGroupDoc []string

// BlockDoc is the exported form of a role block.
type BlockDoc struct {
	Name        string               `json:"name" yaml:"name"`
	Role        block.Role           `json:"role" yaml:"role"`
	ForwardIn   PortGroupDoc         `json:"forward_in" yaml:"forward_in"`
	ForwardOut  PortGroupDoc         `json:"forward_out" yaml:"forward_out"`
	BackwardIn  PortGroupDoc         `json:"backward_in" yaml:"backward_in"`
	BackwardOut PortGroupDoc         `json:"backward_out" yaml:"backward_out"`
	Updates     []block.UpdateTarget `json:"updates,omitempty" yaml:"updates,omitempty"`
	ParamsUsed  []string             `json:"params_used,omitempty" yaml:"params_used,omitempty"`
}

// WiringGroupDoc is one exported named wiring group.
type WiringGroupDoc struct {
	Name    string         `json:"name" yaml:"name"`
	Wirings []block.Wiring `json:"wirings" yaml:"wirings"`
}

// ParameterDoc is one exported parameter.
type ParameterDoc struct {
	Name string  `json:"name" yaml:"name"`
	Type TypeDoc `json:"type" yaml:"type"`
}

// Document is the full exported registry.
type Document struct {
	Name       string           `json:"name" yaml:"name"`
	Types      []TypeDoc        `json:"types" yaml:"types"`
	Spaces     []SpaceDoc       `json:"spaces" yaml:"spaces"`
	Entities   []EntityDoc      `json:"entities" yaml:"entities"`
	Blocks     []BlockDoc       `json:"blocks" yaml:"blocks"`
	Wirings    []WiringGroupDoc `json:"wirings" yaml:"wirings"`
	Parameters []ParameterDoc   `json:"parameters" yaml:"parameters"`
}

func exportType(td schema.TypeDef) TypeDoc {
	doc := TypeDoc{
		Name:        td.Name,
		Primitive:   string(td.Primitive),
		Description: td.Description,
		Units:       td.Units,
	}
	if td.Constraint != nil {
		// Predicates do not round-trip; keep their description.
		doc.Constraint = td.Description
		if doc.Constraint == "" {
			doc.Constraint = "opaque predicate"
		}
	}
	return doc
}

func portNames(ports []block.Port) PortGroupDoc {
	out := make(PortGroupDoc, len(ports))
	for i, p := range ports {
		out[i] = p.Name
	}
	return out
}

// Export renders the registry as an interchange document.
func (s *GDSSpec) Export() *Document {
	doc := &Document{Name: string(s.name)}

	for _, td := range s.Types() {
		doc.Types = append(doc.Types, exportType(td))
	}
	for _, sp := range s.Spaces() {
		sd := SpaceDoc{Name: sp.Name}
		for _, f := range sp.Fields {
			sd.Fields = append(sd.Fields, FieldDoc{Name: f.Name, Type: f.Type.Name})
		}
		doc.Spaces = append(doc.Spaces, sd)
	}
	for _, e := range s.Entities() {
		ed := EntityDoc{Name: e.Name}
		for _, v := range e.Variables {
			ed.Variables = append(ed.Variables, VariableDoc{Name: v.Name, Type: v.Type.Name, Initial: v.Initial})
		}
		doc.Entities = append(doc.Entities, ed)
	}
	for _, rb := range s.Blocks() {
		doc.Blocks = append(doc.Blocks, BlockDoc{
			Name:        rb.Name(),
			Role:        rb.Role,
			ForwardIn:   portNames(rb.Atomic.Ports.ForwardIn),
			ForwardOut:  portNames(rb.Atomic.Ports.ForwardOut),
			BackwardIn:  portNames(rb.Atomic.Ports.BackwardIn),
			BackwardOut: portNames(rb.Atomic.Ports.BackwardOut),
			Updates:     rb.Updates,
			ParamsUsed:  rb.ParamsUsed,
		})
	}
	for _, name := range s.WiringGroupNames() {
		group, _ := s.WiringGroup(name)
		doc.Wirings = append(doc.Wirings, WiringGroupDoc{Name: name, Wirings: group})
	}
	for _, name := range s.Parameters() {
		td, _ := s.Parameter(name)
		doc.Parameters = append(doc.Parameters, ParameterDoc{Name: name, Type: exportType(td)})
	}

	return doc
}

// JSON renders the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// YAML renders the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}

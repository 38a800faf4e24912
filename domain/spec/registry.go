package spec

import (
	"fmt"

	"godyn/domain/block"
	"godyn/domain/core"
	"godyn/domain/schema"
)

// GDSSpec is the mutable registry holding one full typed specification:
// types, spaces, entities, role-annotated blocks, named wiring groups
// and parameters, each keyed by name.
//
// It is the only mutable object in the system. A single writer owns it
// during registration; after Seal any number of readers (compiler,
// verification, projection, export) may consume it concurrently.
type GDSSpec struct {
	name core.SpecName

	types      map[string]schema.TypeDef
	spaces     map[string]schema.Space
	entities   map[string]schema.Entity
	blocks     map[string]*block.RoleBlock
	wirings    map[string][]block.Wiring
	parameters map[string]schema.TypeDef

	// Insertion order per collection, for deterministic iteration.
	typeOrder   []string
	spaceOrder  []string
	entityOrder []string
	blockOrder  []string
	wiringOrder []string
	paramOrder  []string

	sealed bool
}

// New creates an empty registry.
func New(name core.SpecName) *GDSSpec {
	return &GDSSpec{
		name:       name,
		types:      make(map[string]schema.TypeDef),
		spaces:     make(map[string]schema.Space),
		entities:   make(map[string]schema.Entity),
		blocks:     make(map[string]*block.RoleBlock),
		wirings:    make(map[string][]block.Wiring),
		parameters: make(map[string]schema.TypeDef),
	}
}

// Name returns the spec name.
func (s *GDSSpec) Name() core.SpecName { return s.name }

// Seal freezes the registry. Every Register* after Seal fails.
func (s *GDSSpec) Seal() { s.sealed = true }

// Sealed reports whether registration is closed.
func (s *GDSSpec) Sealed() bool { return s.sealed }

func (s *GDSSpec) gate(collection, name string, taken bool) error {
	if s.sealed {
		return fmt.Errorf("%w: cannot register %s %q", core.ErrSpecSealed, collection, name)
	}
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", collection)
	}
	if taken {
		return core.NewDuplicateNameError(collection, name)
	}
	return nil
}

// RegisterType adds a type definition. Fails on duplicate name.
func (s *GDSSpec) RegisterType(td schema.TypeDef) error {
	_, taken := s.types[td.Name]
	if err := s.gate("type", td.Name, taken); err != nil {
		return err
	}
	s.types[td.Name] = td
	s.typeOrder = append(s.typeOrder, td.Name)
	return nil
}

// RegisterSpace adds a space. Fails on duplicate name.
func (s *GDSSpec) RegisterSpace(sp schema.Space) error {
	_, taken := s.spaces[sp.Name]
	if err := s.gate("space", sp.Name, taken); err != nil {
		return err
	}
	s.spaces[sp.Name] = sp
	s.spaceOrder = append(s.spaceOrder, sp.Name)
	return nil
}

// RegisterEntity adds an entity. Fails on duplicate name.
func (s *GDSSpec) RegisterEntity(e schema.Entity) error {
	_, taken := s.entities[e.Name]
	if err := s.gate("entity", e.Name, taken); err != nil {
		return err
	}
	s.entities[e.Name] = e
	s.entityOrder = append(s.entityOrder, e.Name)
	return nil
}

// RegisterBlock adds a role-refined block. Fails on duplicate name.
func (s *GDSSpec) RegisterBlock(rb *block.RoleBlock) error {
	_, taken := s.blocks[rb.Name()]
	if err := s.gate("block", rb.Name(), taken); err != nil {
		return err
	}
	s.blocks[rb.Name()] = rb
	s.blockOrder = append(s.blockOrder, rb.Name())
	return nil
}

// RegisterWiring adds a named wiring group. Fails on duplicate name.
func (s *GDSSpec) RegisterWiring(name string, wirings []block.Wiring) error {
	_, taken := s.wirings[name]
	if err := s.gate("wiring", name, taken); err != nil {
		return err
	}
	s.wirings[name] = wirings
	s.wiringOrder = append(s.wiringOrder, name)
	return nil
}

// RegisterParameter adds a parameter with its type. Fails on duplicate
// name. Blocks reference parameters by name via ParamsUsed; the
// reference resolves at Validate, never at construction.
func (s *GDSSpec) RegisterParameter(name string, td schema.TypeDef) error {
	_, taken := s.parameters[name]
	if err := s.gate("parameter", name, taken); err != nil {
		return err
	}
	s.parameters[name] = td
	s.paramOrder = append(s.paramOrder, name)
	return nil
}

// Lookup accessors

// Type retrieves a type definition by name.
func (s *GDSSpec) Type(name string) (schema.TypeDef, bool) {
	td, ok := s.types[name]
	return td, ok
}

// Space retrieves a space by name.
func (s *GDSSpec) Space(name string) (schema.Space, bool) {
	sp, ok := s.spaces[name]
	return sp, ok
}

// Entity retrieves an entity by name.
func (s *GDSSpec) Entity(name string) (schema.Entity, bool) {
	e, ok := s.entities[name]
	return e, ok
}

// Block retrieves a block by name.
func (s *GDSSpec) Block(name string) (*block.RoleBlock, bool) {
	b, ok := s.blocks[name]
	return b, ok
}

// Parameter retrieves a parameter type by name.
func (s *GDSSpec) Parameter(name string) (schema.TypeDef, bool) {
	td, ok := s.parameters[name]
	return td, ok
}

// Ordered iteration

// Types returns all type definitions in registration order.
func (s *GDSSpec) Types() []schema.TypeDef {
	out := make([]schema.TypeDef, 0, len(s.typeOrder))
	for _, name := range s.typeOrder {
		out = append(out, s.types[name])
	}
	return out
}

// Spaces returns all spaces in registration order.
func (s *GDSSpec) Spaces() []schema.Space {
	out := make([]schema.Space, 0, len(s.spaceOrder))
	for _, name := range s.spaceOrder {
		out = append(out, s.spaces[name])
	}
	return out
}

// Entities returns all entities in registration order.
func (s *GDSSpec) Entities() []schema.Entity {
	out := make([]schema.Entity, 0, len(s.entityOrder))
	for _, name := range s.entityOrder {
		out = append(out, s.entities[name])
	}
	return out
}

// Blocks returns all role blocks in registration order.
func (s *GDSSpec) Blocks() []*block.RoleBlock {
	out := make([]*block.RoleBlock, 0, len(s.blockOrder))
	for _, name := range s.blockOrder {
		out = append(out, s.blocks[name])
	}
	return out
}

// WiringGroup retrieves one named wiring group.
func (s *GDSSpec) WiringGroup(name string) ([]block.Wiring, bool) {
	g, ok := s.wirings[name]
	return g, ok
}

// WiringGroupNames returns group names in registration order.
func (s *GDSSpec) WiringGroupNames() []string {
	return append([]string{}, s.wiringOrder...)
}

// Parameters returns parameter names in registration order.
func (s *GDSSpec) Parameters() []string {
	return append([]string{}, s.paramOrder...)
}

// Validate checks whole-registry structure, collecting every problem in
// one pass rather than stopping at the first: wiring endpoints must name
// registered blocks, wires naming a space must name a registered one,
// every params_used entry must name a registered parameter, and every
// mechanism update must name a registered entity variable.
func (s *GDSSpec) Validate() []error {
	var errs []error

	for _, groupName := range s.wiringOrder {
		for _, w := range s.wirings[groupName] {
			if _, ok := s.blocks[w.SourceBlock]; !ok {
				errs = append(errs, fmt.Errorf("wiring %q: source block %q not registered", groupName, w.SourceBlock))
			}
			if _, ok := s.blocks[w.TargetBlock]; !ok {
				errs = append(errs, fmt.Errorf("wiring %q: target block %q not registered", groupName, w.TargetBlock))
			}
			if w.Space != "" {
				if _, ok := s.spaces[w.Space]; !ok {
					errs = append(errs, fmt.Errorf("wiring %q: space %q not registered", groupName, w.Space))
				}
			}
		}
	}

	for _, blockName := range s.blockOrder {
		rb := s.blocks[blockName]
		for _, param := range rb.ParamsUsed {
			if _, ok := s.parameters[param]; !ok {
				errs = append(errs, fmt.Errorf("block %q: parameter %q not registered", blockName, param))
			}
		}
		for _, u := range rb.Updates {
			entity, ok := s.entities[u.Entity]
			if !ok {
				errs = append(errs, fmt.Errorf("block %q: update target entity %q not registered", blockName, u.Entity))
				continue
			}
			if _, ok := entity.Variable(u.Variable); !ok {
				errs = append(errs, fmt.Errorf("block %q: entity %q has no variable %q", blockName, u.Entity, u.Variable))
			}
		}
	}

	return errs
}

package block

import (
	"godyn/domain/token"
)

// Port is a named connection point. Its token set is derived once from
// the name and drives all structural matching.
type Port struct {
	Name   string    `json:"name" yaml:"name"`
	Tokens token.Set `json:"-" yaml:"-"`
}

// NewPort creates a port with its derived token set.
func NewPort(name string) Port {
	return Port{Name: name, Tokens: token.Tokenize(name)}
}

// Equal reports value equality by name and token set.
func (p Port) Equal(other Port) bool {
	return p.Name == other.Name && p.Tokens.Equal(other.Tokens)
}

// Interface is the four-group directional port signature every block
// exposes: covariant flow enters forward_in and leaves forward_out,
// contravariant flow enters backward_in and leaves backward_out.
type Interface struct {
	ForwardIn   []Port `json:"forward_in" yaml:"forward_in"`
	ForwardOut  []Port `json:"forward_out" yaml:"forward_out"`
	BackwardIn  []Port `json:"backward_in" yaml:"backward_in"`
	BackwardOut []Port `json:"backward_out" yaml:"backward_out"`
}

// Ports builds the ports of one group from names.
func Ports(names ...string) []Port {
	out := make([]Port, len(names))
	for i, n := range names {
		out[i] = NewPort(n)
	}
	return out
}

// groupTokens unions the token sets of one port group.
func groupTokens(ports []Port) token.Set {
	union := make(token.Set)
	for _, p := range ports {
		for tok := range p.Tokens {
			union[tok] = struct{}{}
		}
	}
	return union
}

// ForwardInTokens returns the union of forward_in port tokens.
func (i Interface) ForwardInTokens() token.Set { return groupTokens(i.ForwardIn) }

// ForwardOutTokens returns the union of forward_out port tokens.
func (i Interface) ForwardOutTokens() token.Set { return groupTokens(i.ForwardOut) }

// BackwardInTokens returns the union of backward_in port tokens.
func (i Interface) BackwardInTokens() token.Set { return groupTokens(i.BackwardIn) }

// BackwardOutTokens returns the union of backward_out port tokens.
func (i Interface) BackwardOutTokens() token.Set { return groupTokens(i.BackwardOut) }

// concat builds the composite interface of two children: every group is
// the concatenation of both children's group, so outer composites can
// still see and re-wire inner ports.
func concat(a, b Interface) Interface {
	return Interface{
		ForwardIn:   append(append([]Port{}, a.ForwardIn...), b.ForwardIn...),
		ForwardOut:  append(append([]Port{}, a.ForwardOut...), b.ForwardOut...),
		BackwardIn:  append(append([]Port{}, a.BackwardIn...), b.BackwardIn...),
		BackwardOut: append(append([]Port{}, a.BackwardOut...), b.BackwardOut...),
	}
}

// Package regroup inserts chains of empty parent groups between scene nodes and their parents.
//
// For every requested node, Insert wraps the node in one new group per GroupSpec (the first spec
// directly above the node, the last at the top of the chain), hangs the chain where the node used
// to hang, gives the node its original children back, and renames the node with a "_GRP" suffix.
// The scene itself is reached only through the Host interface, so any scene graph can be edited;
// package scene provides an in-memory one that can be loaded from and saved to glTF.
package regroup

import (
	"fmt"
	"strings"
)

// NamingMode selects how the names of inserted groups are built.
type NamingMode int

const (
	// CustomName uses each GroupSpec's name as the group's name, verbatim.
	CustomName NamingMode = iota
	// UpperGroupName combines each GroupSpec's name with the name of the node's parent
	// (or the node itself, if it has no parent).
	UpperGroupName
	// LowerGroupName combines each GroupSpec's name with the name of the node itself.
	LowerGroupName
)

func (m NamingMode) String() string {
	switch m {
	case CustomName:
		return "custom"
	case UpperGroupName:
		return "upper"
	case LowerGroupName:
		return "lower"
	}
	return fmt.Sprintf("NamingMode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m NamingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; it accepts "custom", "upper" and "lower".
func (m *NamingMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "custom", "":
		*m = CustomName
	case "upper":
		*m = UpperGroupName
	case "lower":
		*m = LowerGroupName
	default:
		return fmt.Errorf("unknown naming mode %q (want custom, upper or lower)", text)
	}
	return nil
}

// NamingStyle controls which side of the base name a GroupSpec's name goes on. It has no effect
// with CustomName.
type NamingStyle int

const (
	Prefix NamingStyle = iota // <spec>_<base>
	Suffix                    // <base>_<spec>
)

func (s NamingStyle) String() string {
	switch s {
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	}
	return fmt.Sprintf("NamingStyle(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s NamingStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; it accepts "prefix" and "suffix".
func (s *NamingStyle) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "prefix", "":
		*s = Prefix
	case "suffix":
		*s = Suffix
	default:
		return fmt.Errorf("unknown naming style %q (want prefix or suffix)", text)
	}
	return nil
}

// GroupSpec describes one group to insert above each node.
type GroupSpec struct {
	Name string `yaml:"name"`
	// ObjectPivot places the group exactly where the node is in the world (position, rotation and scale);
	// otherwise the group sits at the world origin with an identity transform.
	ObjectPivot bool `yaml:"object_pivot"`
}

// Request is everything a single insertion needs. Groups are listed innermost first.
type Request struct {
	Nodes  []NodeRef   `yaml:"nodes"`
	Groups []GroupSpec `yaml:"groups"`
	Naming NamingMode  `yaml:"naming"`
	Style  NamingStyle `yaml:"style"`
}

// groupSpecs returns the request's GroupSpecs with their names trimmed, dropping any left empty.
func (req Request) groupSpecs() []GroupSpec {
	specs := make([]GroupSpec, 0, len(req.Groups))
	for _, spec := range req.Groups {
		spec.Name = strings.TrimSpace(spec.Name)
		if spec.Name == "" {
			continue
		}
		specs = append(specs, spec)
	}
	return specs
}

// nodes returns the request's nodes without duplicates, in the order they were first given.
func (req Request) nodes() []NodeRef {
	nodes := make([]NodeRef, 0, len(req.Nodes))
	seen := make(map[NodeRef]struct{}, len(req.Nodes))
	for _, n := range req.Nodes {
		if _, exists := seen[n]; exists {
			continue
		}
		seen[n] = struct{}{}
		nodes = append(nodes, n)
	}
	return nodes
}

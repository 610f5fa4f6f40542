package scene

import (
	"regexp"
)

// NodeFilter represents a chain of node filters, executed in sequence to collect the desired nodes
// out of an entire hierarchy. The filters are executed lazily, when one of the finishing functions
// (First, ForEach, Count, Nodes, ...) is called. The starting Node itself is never part of the results.
type NodeFilter struct {
	Filters        []func(*Node) bool // The slice of filters that are currently active on the NodeFilter.
	Start          *Node              // The start (root) of the filter.
	stopOnFiltered bool               // If the filter should continue through to a node's children if the node itself doesn't pass the filter
	MaxDepth       int                // How deep the node filter should search in the starting node's hierarchy; a value that is less than zero means the entire tree will be traversed.
}

func newNodeFilter(startingNode *Node) NodeFilter {
	return NodeFilter{
		Start:    startingNode,
		MaxDepth: -1,
	}
}

func (nf NodeFilter) passes(node *Node) bool {
	for _, filter := range nf.Filters {
		if !filter(node) {
			return false
		}
	}
	return true
}

// executeFilters walks the tree depth-first, calling execute for each Node that passes the filters.
// It returns false once execute has asked to stop.
func (nf NodeFilter) executeFilters(node *Node, depth int, execute func(*Node) bool) bool {

	successfulFilter := true

	if node != nf.Start {
		successfulFilter = nf.passes(node)
		if successfulFilter && !execute(node) {
			return false
		}
	}

	if nf.MaxDepth >= 0 && depth >= nf.MaxDepth {
		return true
	}

	if nf.stopOnFiltered && !successfulFilter {
		return true
	}

	for _, child := range node.Children() {
		if !nf.executeFilters(child, depth+1, execute) {
			return false
		}
	}

	return true

}

// ByFunc allows you to filter a given selection of nodes by the provided filter function (which takes a Node
// and returns a boolean, indicating whether or not to add that Node to the resulting NodeFilter).
func (nf NodeFilter) ByFunc(filterFunc func(node *Node) bool) NodeFilter {
	nf.Filters = append(nf.Filters, filterFunc)
	return nf
}

// ByName allows you to filter a given selection of nodes if their names are wholly equal
// to the provided name string.
func (nf NodeFilter) ByName(name string) NodeFilter {
	nf.Filters = append(nf.Filters, func(node *Node) bool { return node.Name() == name })
	return nf
}

// ByRegex allows you to filter a given selection of nodes by their names using the given regex string.
// If the regexp string is invalid, no Nodes pass the filter.
func (nf NodeFilter) ByRegex(regexString string) NodeFilter {
	re, err := regexp.Compile(regexString)
	nf.Filters = append(nf.Filters, func(node *Node) bool {
		return err == nil && re.MatchString(node.Name())
	})
	return nf
}

// ByType allows you to filter a given selection of nodes by the provided NodeType.
func (nf NodeFilter) ByType(nodeType NodeType) NodeFilter {
	nf.Filters = append(nf.Filters, func(node *Node) bool {
		return node.Type().Is(nodeType)
	})
	return nf
}

// ByProp allows you to filter a given selection of nodes by a property value check - if the nodes filtered
// have a property with the given value, they are included.
func (nf NodeFilter) ByProp(propName string, propValue any) NodeFilter {
	nf.Filters = append(nf.Filters, func(node *Node) bool {
		value, ok := node.Properties().Get(propName)
		return ok && value == propValue
	})
	return nf
}

// Not allows you to filter OUT the given Nodes.
func (nf NodeFilter) Not(others ...*Node) NodeFilter {
	nf.Filters = append(nf.Filters, func(node *Node) bool {
		for _, other := range others {
			if node == other {
				return false
			}
		}
		return true
	})
	return nf
}

// StopOnFiltered allows you to specify that if a node doesn't pass a filter, none of its children will pass as well.
func (nf NodeFilter) StopOnFiltered() NodeFilter {
	nf.stopOnFiltered = true
	return nf
}

// SetMaxDepth sets the maximum search depth of the NodeFilter to the value provided; a depth of 1 searches only
// the starting Node's direct children.
func (nf NodeFilter) SetMaxDepth(depth int) NodeFilter {
	nf.MaxDepth = depth
	return nf
}

// ForEach executes the provided function on each filtered Node.
// The function must return a boolean indicating whether to continue running on each node in the tree that fulfills the
// filter set (true) or not (false).
func (nf NodeFilter) ForEach(callback func(node *Node) bool) {
	nf.executeFilters(nf.Start, 0, callback)
}

// First returns the first Node in the NodeFilter; if the NodeFilter is empty, this function returns nil.
func (nf NodeFilter) First() *Node {
	var result *Node
	nf.ForEach(func(node *Node) bool { result = node; return false })
	return result
}

// Count returns the number of Nodes that fit the filter set.
func (nf NodeFilter) Count() int {
	count := 0
	nf.ForEach(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Contains returns if the provided Node is contained in the NodeFilter.
func (nf NodeFilter) Contains(node *Node) bool {
	found := false
	nf.ForEach(func(n *Node) bool {
		found = n == node
		return !found
	})
	return found
}

// IsEmpty returns true if the NodeFilter contains no Nodes.
func (nf NodeFilter) IsEmpty() bool {
	return nf.First() == nil
}

// Nodes returns the NodeFilter's results as a slice of Nodes.
func (nf NodeFilter) Nodes() []*Node {
	out := []*Node{}
	nf.ForEach(func(node *Node) bool {
		out = append(out, node)
		return true
	})
	return out
}

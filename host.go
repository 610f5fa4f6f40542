package regroup

// NodeRef refers to a node in the host's scene by its name. It is a weak reference: it stays valid only for as long as
// a node by that name exists.
type NodeRef string

// NodeType filters the nodes a Host returns; a Host should treat it as a category, so NodeTypeTransform matches
// groups and joints as well.
type NodeType string

const (
	NodeTypeTransform NodeType = "Transform"
)

// Transform is a world-space transform. Rotation is in radians, applied in X, Y, Z order.
type Transform struct {
	Translation [3]float64
	Rotation    [3]float64
	Scale       [3]float64
}

// IdentityTransform returns a Transform at the origin with no rotation and a scale of one.
func IdentityTransform() Transform {
	return Transform{Scale: [3]float64{1, 1, 1}}
}

// Host is the scene graph insertions edit. Errors wrapping ErrHostUnavailable mean the Host can no longer be used
// and abort the whole insertion; any other error only fails the node being processed.
type Host interface {
	Exists(ref NodeRef) (bool, error)
	// Parent returns the node's parent; ok is false for nodes at the scene root.
	Parent(ref NodeRef) (parent NodeRef, ok bool, err error)
	// Children returns the node's direct children of the given type, in order.
	Children(ref NodeRef, nodeType NodeType) ([]NodeRef, error)
	// CreateEmpty creates an empty group at the scene root with an identity transform, returning its reference.
	CreateEmpty(name string) (NodeRef, error)
	// Rename renames the node, returning its new reference.
	Rename(ref NodeRef, newName string) (NodeRef, error)
	SetWorldTransform(ref NodeRef, transform Transform) error
	// MatchWorldTransform sets target's world transform to source's.
	MatchWorldTransform(target, source NodeRef) error
	// Reparent parents child under parent, keeping its world transform; an empty parent means the scene root.
	Reparent(child, parent NodeRef) error
	// FindByName returns every node with the name given.
	FindByName(name string) ([]NodeRef, error)
	BeginUndoTransaction(label string) error
	EndUndoTransaction() error
}

// Selector is implemented by Hosts that have a selection. After an insertion, the renamed nodes are selected.
type Selector interface {
	Selected(nodeType NodeType) ([]NodeRef, error)
	Select(refs ...NodeRef) error
}

// Feedback shows messages to the user: warnings, and transient confirmations.
type Feedback interface {
	Warn(message string)
	Notify(message string)
}

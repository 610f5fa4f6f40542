package scene

import (
	"fmt"

	"github.com/solarlune/regroup"
)

// Host lets a regroup.Inserter edit a Scene. Nodes are referred to by name, which a Scene keeps unique.
// Host also implements regroup.Selector over the Scene's selection.
type Host struct {
	scene  *Scene
	closed bool
}

var (
	_ regroup.Host     = (*Host)(nil)
	_ regroup.Selector = (*Host)(nil)
)

// NewHost creates a Host editing the Scene given.
func NewHost(scene *Scene) *Host {
	return &Host{scene: scene}
}

// Scene returns the Scene the Host edits.
func (h *Host) Scene() *Scene {
	return h.scene
}

// Close detaches the Host from its Scene; every call made afterwards fails with regroup.ErrHostUnavailable.
func (h *Host) Close() {
	h.closed = true
}

func (h *Host) check() error {
	if h.closed || h.scene == nil {
		return regroup.ErrHostUnavailable
	}
	return nil
}

func (h *Host) node(ref regroup.NodeRef) (*Node, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	node := h.scene.Node(string(ref))
	if node == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotInScene, ref)
	}
	return node, nil
}

func (h *Host) Exists(ref regroup.NodeRef) (bool, error) {
	if err := h.check(); err != nil {
		return false, err
	}
	return h.scene.Node(string(ref)) != nil, nil
}

func (h *Host) Parent(ref regroup.NodeRef) (regroup.NodeRef, bool, error) {
	node, err := h.node(ref)
	if err != nil {
		return "", false, err
	}
	parent := node.Parent()
	if parent == nil || parent == h.scene.Root {
		return "", false, nil
	}
	return regroup.NodeRef(parent.Name()), true, nil
}

func (h *Host) Children(ref regroup.NodeRef, nodeType regroup.NodeType) ([]regroup.NodeRef, error) {
	node, err := h.node(ref)
	if err != nil {
		return nil, err
	}
	children := node.SearchTree().SetMaxDepth(1).ByType(NodeType(nodeType)).Nodes()
	return refs(children), nil
}

func (h *Host) CreateEmpty(name string) (regroup.NodeRef, error) {
	if err := h.check(); err != nil {
		return "", err
	}
	group, err := h.scene.CreateGroup(name)
	if err != nil {
		return "", err
	}
	return regroup.NodeRef(group.Name()), nil
}

func (h *Host) Rename(ref regroup.NodeRef, newName string) (regroup.NodeRef, error) {
	node, err := h.node(ref)
	if err != nil {
		return "", err
	}
	if err := h.scene.Rename(node, newName); err != nil {
		return "", err
	}
	return regroup.NodeRef(node.Name()), nil
}

func (h *Host) SetWorldTransform(ref regroup.NodeRef, transform regroup.Transform) error {
	node, err := h.node(ref)
	if err != nil {
		return err
	}
	return h.scene.SetWorldTransform(node, MatrixFromTransform(transform))
}

func (h *Host) MatchWorldTransform(target, source regroup.NodeRef) error {
	targetNode, err := h.node(target)
	if err != nil {
		return err
	}
	sourceNode, err := h.node(source)
	if err != nil {
		return err
	}
	return h.scene.SetWorldTransform(targetNode, sourceNode.Transform())
}

func (h *Host) Reparent(child, parent regroup.NodeRef) error {

	childNode, err := h.node(child)
	if err != nil {
		return err
	}

	var parentNode *Node
	if parent != "" {
		if parentNode, err = h.node(parent); err != nil {
			return err
		}
	}

	return h.scene.Reparent(childNode, parentNode)

}

func (h *Host) FindByName(name string) ([]regroup.NodeRef, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	return refs(h.scene.Root.SearchTree().ByName(name).Nodes()), nil
}

func (h *Host) BeginUndoTransaction(label string) error {
	if err := h.check(); err != nil {
		return err
	}
	h.scene.BeginTransaction(label)
	return nil
}

// EndUndoTransaction closes the transaction even if the Host has been closed since it was opened.
func (h *Host) EndUndoTransaction() error {
	if h.scene == nil {
		return regroup.ErrHostUnavailable
	}
	return h.scene.EndTransaction()
}

// Selected returns the selected nodes of the given type.
func (h *Host) Selected(nodeType regroup.NodeType) ([]regroup.NodeRef, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	out := []*Node{}
	for _, n := range h.scene.Selected() {
		if n.Type().Is(NodeType(nodeType)) {
			out = append(out, n)
		}
	}
	return refs(out), nil
}

// Select replaces the selection with the nodes given.
func (h *Host) Select(selection ...regroup.NodeRef) error {
	nodes := make([]*Node, 0, len(selection))
	for _, ref := range selection {
		node, err := h.node(ref)
		if err != nil {
			return err
		}
		nodes = append(nodes, node)
	}
	return h.scene.Select(nodes...)
}

// MatrixFromTransform converts a regroup.Transform into a world Matrix4.
func MatrixFromTransform(transform regroup.Transform) Matrix4 {
	return NewMatrix4Compose(
		NewVectorFromArray(transform.Translation),
		NewVectorFromArray(transform.Scale),
		NewMatrix4RotateFromEuler(NewVectorFromArray(transform.Rotation)),
	)
}

// TransformFromMatrix converts a world Matrix4 into a regroup.Transform.
func TransformFromMatrix(matrix Matrix4) regroup.Transform {
	position, scale, rotation := matrix.Decompose()
	return regroup.Transform{
		Translation: position.Array(),
		Rotation:    rotation.ToEuler().Array(),
		Scale:       scale.Array(),
	}
}

func refs(nodes []*Node) []regroup.NodeRef {
	out := make([]regroup.NodeRef, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, regroup.NodeRef(n.Name()))
	}
	return out
}

package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNameTaken     = errors.New("name is already taken")
	ErrInvalidName   = errors.New("invalid node name")
	ErrNotInScene    = errors.New("node is not part of the scene")
	ErrCycle         = errors.New("parenting would create a cycle")
	ErrShapeNode     = errors.New("shape nodes cannot be parents or be reparented")
	ErrRootNode      = errors.New("the scene root cannot be edited")
	ErrNoTransaction = errors.New("no transaction is open")
)

// Scene represents a hierarchy of Nodes underneath a root. Node names are unique within a Scene, so a name can
// be used to refer to a Node for as long as it exists.
type Scene struct {
	Name string
	// Root is the scene's root Node; top-level Nodes are its children.
	Root *Node

	library   *Library
	selection []*Node

	txDepth int
	current *Transaction
	history []*Transaction
}

// NewScene creates a new Scene by the name given.
func NewScene(name string) *Scene {
	scene := &Scene{
		Name: name,
		Root: newNode("Root", NodeTypeTransform),
	}
	scene.Root.scene = scene
	return scene
}

// Library returns the Library the Scene was loaded into; if it was created through code, this will be nil.
func (scene *Scene) Library() *Library {
	return scene.library
}

// Node returns the Node by the given name, or nil if there's no such Node in the Scene.
func (scene *Scene) Node(name string) *Node {
	if name == "" {
		return nil
	}
	return scene.Root.SearchTree().ByName(name).First()
}

// Contains returns if the Node is currently part of the Scene's hierarchy.
func (scene *Scene) Contains(node *Node) bool {
	return node != nil && node.Scene() == scene
}

// UniqueName returns the name given if no Node in the Scene uses it; otherwise it appends the lowest number
// that makes it unique (so "Cube" becomes "Cube1", then "Cube2").
func (scene *Scene) UniqueName(name string) string {
	if scene.Node(name) == nil {
		return name
	}
	for i := 1; ; i++ {
		candidate := name + strconv.Itoa(i)
		if scene.Node(candidate) == nil {
			return candidate
		}
	}
}

func (scene *Scene) validateName(name string) error {
	if strings.TrimSpace(name) == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if scene.Node(name) != nil {
		return fmt.Errorf("%w: %q", ErrNameTaken, name)
	}
	return nil
}

// AddNode creates a new Node of the given type and name underneath the parent provided (or the scene root if parent is nil).
// The new Node has an identity local transform.
func (scene *Scene) AddNode(name string, nodeType NodeType, parent *Node) (*Node, error) {

	if err := scene.validateName(name); err != nil {
		return nil, err
	}

	if parent == nil {
		parent = scene.Root
	} else if !scene.Contains(parent) {
		return nil, fmt.Errorf("%w: %q", ErrNotInScene, parent.Name())
	} else if !parent.IsTransform() {
		return nil, fmt.Errorf("%w: %q", ErrShapeNode, parent.Name())
	}

	node := newNode(name, nodeType)
	parent.addChildren(node)
	scene.record(OpCreate, node, string(nodeType))
	return node, nil

}

// CreateGroup creates a new empty group at the scene root, sitting at the world origin with an identity transform.
func (scene *Scene) CreateGroup(name string) (*Node, error) {
	return scene.AddNode(name, NodeTypeGroup, nil)
}

// Rename renames the Node to the name given, which must not be taken by another Node in the Scene.
func (scene *Scene) Rename(node *Node, newName string) error {

	if !scene.Contains(node) {
		return ErrNotInScene
	}

	if node == scene.Root {
		return ErrRootNode
	}

	if node.name == newName {
		return nil
	}

	if err := scene.validateName(newName); err != nil {
		return err
	}

	oldName := node.name
	node.name = newName
	scene.record(OpRename, node, oldName+" -> "+newName)
	return nil

}

// Reparent parents the child underneath the new parent (or the scene root if parent is nil), keeping the child where it is in the world.
// Reparenting a Node underneath its current parent does nothing, so sibling order is kept.
func (scene *Scene) Reparent(child, parent *Node) error {

	if !scene.Contains(child) {
		return ErrNotInScene
	}

	if child == scene.Root {
		return ErrRootNode
	}

	if !child.IsTransform() {
		return fmt.Errorf("%w: %q", ErrShapeNode, child.Name())
	}

	if parent == nil {
		parent = scene.Root
	} else if !scene.Contains(parent) {
		return fmt.Errorf("%w: %q", ErrNotInScene, parent.Name())
	} else if !parent.IsTransform() {
		return fmt.Errorf("%w: %q", ErrShapeNode, parent.Name())
	}

	if parent == child || child.IsAncestorOf(parent) {
		return fmt.Errorf("%w: %q under %q", ErrCycle, child.Name(), parent.Name())
	}

	if child.parent == parent {
		return nil
	}

	parent.adopt(child)
	scene.record(OpReparent, child, parent.Name())
	return nil

}

// SetWorldTransform sets the Node's world transform, recording the change in any open transaction.
func (scene *Scene) SetWorldTransform(node *Node, transform Matrix4) error {

	if !scene.Contains(node) {
		return ErrNotInScene
	}

	if node == scene.Root {
		return ErrRootNode
	}

	node.SetWorldTransform(transform)
	scene.record(OpTransform, node, node.WorldPosition().String())
	return nil

}

// Delete removes the Node and all of its children from the Scene.
func (scene *Scene) Delete(node *Node) error {

	if !scene.Contains(node) {
		return ErrNotInScene
	}

	if node == scene.Root {
		return ErrRootNode
	}

	node.parent.removeChildren(node)
	scene.record(OpDelete, node, "")
	return nil

}

// Select replaces the Scene's selection with the given Nodes, in order; duplicates are ignored.
func (scene *Scene) Select(nodes ...*Node) error {

	selection := make([]*Node, 0, len(nodes))
	seen := newSet[*Node]()

	for _, n := range nodes {
		if !scene.Contains(n) {
			return ErrNotInScene
		}
		if seen.Contains(n) {
			continue
		}
		seen.Add(n)
		selection = append(selection, n)
	}

	scene.selection = selection
	return nil

}

// Selected returns the currently selected Nodes that still exist in the Scene, in selection order.
func (scene *Scene) Selected() []*Node {
	out := make([]*Node, 0, len(scene.selection))
	for _, n := range scene.selection {
		if scene.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// ClearSelection deselects everything.
func (scene *Scene) ClearSelection() {
	scene.selection = nil
}

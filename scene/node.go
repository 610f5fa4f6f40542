package scene

import (
	"strings"
)

// NodeType represents a Node's type. Node types are categorized, and can be said to extend or "be of" more general types.
// For example, a group has a type of NodeTypeGroup. That type can also be said to be NodeTypeTransform
// (because it is a transform). However, it is not of type NodeTypeShape, as that is a different category.
type NodeType string

const (
	NodeTypeTransform NodeType = "Transform"      // NodeTypeTransform represents any node that carries a transform and can be parented
	NodeTypeGroup     NodeType = "TransformGroup" // NodeTypeGroup represents specifically an empty group
	NodeTypeJoint     NodeType = "TransformJoint" // NodeTypeJoint represents specifically a skeleton joint

	NodeTypeShape  NodeType = "Shape"       // NodeTypeShape represents any shape node; shapes hang under transforms and are not transforms themselves
	NodeTypeMesh   NodeType = "ShapeMesh"   // NodeTypeMesh represents specifically a mesh shape
	NodeTypeCamera NodeType = "ShapeCamera" // NodeTypeCamera represents specifically a camera shape
)

// Is returns true if a NodeType satisfies another NodeType category. A specific node type can be said to
// contain a more general one, but not vice-versa. For example, a group (which has type NodeTypeGroup) can be
// said to be a transform (NodeTypeTransform), but the reverse is not true.
func (nt NodeType) Is(other NodeType) bool {
	if nt == other {
		return true
	}
	return strings.Contains(string(nt), string(other))
}

var nodeID uint64 = 0

// Node represents an object in a Scene's hierarchy. Transform Nodes have a position, scale, and rotation relative to their
// parent; shape Nodes hang off of a transform and describe what it is (a mesh, a camera).
// Nodes are created, renamed, and reparented through their Scene, which keeps names unique.
type Node struct {
	id               uint64 // Unique ID for this node
	name             string
	nodeType         NodeType
	position         Vector
	scale            Vector
	rotation         Matrix4
	children         []*Node
	parent           *Node
	cachedTransform  Matrix4
	isTransformDirty bool
	props            *Properties
	scene            *Scene // Only set on a Scene's root Node
	shapeIndex       int    // For shapes loaded from glTF, the index of the mesh or camera they represent; -1 otherwise
	source           *gltfSource
}

func newNode(name string, nodeType NodeType) *Node {

	nb := &Node{
		id:               nodeID,
		name:             name,
		nodeType:         nodeType,
		scale:            Vector{1, 1, 1, 0},
		rotation:         NewMatrix4(),
		children:         []*Node{},
		isTransformDirty: true,
		props:            NewProperties(),
		// We set this just in case we call a transform property getter before setting it and caching anything
		cachedTransform: NewMatrix4(),
		shapeIndex:      -1,
	}

	nodeID++

	return nb
}

// ID returns the object's unique ID.
func (node *Node) ID() uint64 {
	return node.id
}

// Name returns the object's name.
func (node *Node) Name() string {
	return node.name
}

// Type returns the NodeType for this object.
func (node *Node) Type() NodeType {
	return node.nodeType
}

// IsTransform returns true if the Node is a transform (and so can be parented and moved).
func (node *Node) IsTransform() bool {
	return node.nodeType.Is(NodeTypeTransform)
}

// Properties returns this object's Properties.
func (node *Node) Properties() *Properties {
	return node.props
}

// Transform returns a Matrix4 indicating the global position, rotation, and scale of the object, transforming it by any parents'.
// If there's no change between the previous Transform() call and this one, Transform() will return a cached version of the
// transform for efficiency.
func (node *Node) Transform() Matrix4 {

	// S * R * T * P

	if !node.isTransformDirty {
		return node.cachedTransform
	}

	transform := node.LocalTransform()

	if node.parent != nil {
		transform = transform.Mult(node.parent.Transform())
	}

	node.cachedTransform = transform
	node.isTransformDirty = false

	return transform

}

// LocalTransform returns the Node's transform relative to its parent.
func (node *Node) LocalTransform() Matrix4 {
	return NewMatrix4Compose(node.position, node.scale, node.rotation)
}

// SetWorldTransform sets the Node's global (world) transform to the full 4x4 transformation matrix provided.
// The local transform is recomputed against the Node's current parent.
func (node *Node) SetWorldTransform(transform Matrix4) {

	local := transform

	if node.parent != nil {
		local = transform.Mult(node.parent.Transform().Inverted())
	}

	node.setLocalTransform(local)

}

func (node *Node) setLocalTransform(local Matrix4) {
	position, scale, rotation := local.Decompose()
	node.position = position
	node.scale = scale
	node.rotation = rotation
	node.dirtyTransform()
}

// dirtyTransform sets this Node and all recursive children's isTransformDirty flags to be true, indicating that they need to be
// rebuilt. This should be called when modifying the transformation properties (position, scale, rotation) of the Node.
func (node *Node) dirtyTransform() {

	for _, child := range node.children {
		child.dirtyTransform()
	}

	node.isTransformDirty = true

}

// LocalPosition returns the object's local position (position relative to its parent).
func (node *Node) LocalPosition() Vector {
	return node.position
}

// SetLocalPosition sets the object's local position (position relative to its parent). If this object has no parent, the position should be
// relative to world origin (0, 0, 0).
func (node *Node) SetLocalPosition(position Vector) {
	node.position = Vector{X: position.X, Y: position.Y, Z: position.Z}
	node.dirtyTransform()
}

// LocalScale returns the object's local scale (scale relative to its parent).
func (node *Node) LocalScale() Vector {
	return node.scale
}

// SetLocalScale sets the object's local scale (scale relative to its parent).
func (node *Node) SetLocalScale(scale Vector) {
	node.scale = Vector{X: scale.X, Y: scale.Y, Z: scale.Z}
	node.dirtyTransform()
}

// LocalRotation returns the object's local rotation Matrix4.
func (node *Node) LocalRotation() Matrix4 {
	return node.rotation.Clone()
}

// SetLocalRotation sets the object's local rotation Matrix4 (relative to any parent).
func (node *Node) SetLocalRotation(rotation Matrix4) {
	node.rotation.Set(rotation)
	node.dirtyTransform()
}

// WorldPosition returns the object's world position (position relative to the world origin point of {0, 0, 0}).
func (node *Node) WorldPosition() Vector {
	position := node.Transform().Row(3) // We don't want to have to decompose if we don't have to
	position.W = 0
	return position
}

// WorldScale returns the object's absolute world scale.
func (node *Node) WorldScale() Vector {
	_, scale, _ := node.Transform().Decompose()
	return scale
}

// WorldRotation returns an absolute rotation Matrix4 representing the object's rotation.
func (node *Node) WorldRotation() Matrix4 {
	_, _, rotation := node.Transform().Decompose()
	return rotation
}

// Parent returns the Node's parent. If the Node has no parent, this will return nil.
func (node *Node) Parent() *Node {
	return node.parent
}

// Scene looks for the Node's parents recursively to return what scene it exists in.
// If the node is not within a tree (i.e. unparented), this will return nil.
func (node *Node) Scene() *Scene {
	root := node.Root()
	if root != nil {
		return root.scene
	}
	return nil
}

// Root returns the root node in the scene by recursively traversing this node's hierarchy of
// parents upwards. If the node is not the root and it has no path to a scene root, this
// function returns nil.
func (node *Node) Root() *Node {

	if node.parent == nil {
		if node.scene != nil {
			return node
		}
		return nil
	}

	return node.parent.Root()

}

// IsAncestorOf returns true if the Node is a parent, grandparent, etc. of the other Node.
func (node *Node) IsAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == node {
			return true
		}
	}
	return false
}

// addChildren parents the children to the Node, keeping their local transforms (so they move along with their new parent).
// If the children are already parented to other Nodes, they are unparented before doing so.
func (node *Node) addChildren(children ...*Node) {
	for _, child := range children {
		if child.parent != nil {
			child.parent.removeChildren(child)
		}
		child.parent = node
		child.dirtyTransform()
		node.children = append(node.children, child)
	}
}

// adopt parents the child to the Node while keeping the child's world transform where it is.
func (node *Node) adopt(child *Node) {
	world := child.Transform()
	node.addChildren(child)
	child.SetWorldTransform(world)
}

func (node *Node) removeChildren(children ...*Node) {

	for _, child := range children {
		for i, c := range node.children {
			if c == child {
				child.parent = nil
				child.dirtyTransform()
				node.children[i] = nil
				node.children = append(node.children[:i], node.children[i+1:]...)
				break
			}
		}
	}

}

// ReindexChild moves the child in the calling Node's children slice to the specified newPosition.
// The function returns the old index where the child Node was, or -1 if it wasn't a child of the calling Node.
// The newPosition is clamped to the size of the node's children slice.
func (node *Node) ReindexChild(child *Node, newPosition int) int {

	if child.parent != node {
		return -1
	}

	oldIndex := child.Index()

	if newPosition < 0 {
		newPosition = 0
	} else if newPosition > len(node.children)-1 {
		newPosition = len(node.children) - 1
	}

	node.children = append(node.children[:oldIndex], node.children[oldIndex+1:]...)

	node.children = append(node.children, nil)
	copy(node.children[newPosition+1:], node.children[newPosition:])
	node.children[newPosition] = child

	return oldIndex

}

// Index returns the index of the Node in its parent's children list.
// If the node doesn't have a parent, its index will be -1.
func (node *Node) Index() int {
	if node.parent != nil {
		for i, c := range node.parent.children {
			if c == node {
				return i
			}
		}
	}
	return -1
}

// Children returns a copy of the Node's children slice.
func (node *Node) Children() []*Node {
	return append(make([]*Node, 0, len(node.children)), node.children...)
}

// ChildrenRecursive returns the Node's recursive children (i.e. children, grandchildren, etc), depth-first.
func (node *Node) ChildrenRecursive() []*Node {
	out := []*Node{}
	for _, child := range node.children {
		out = append(out, child)
		out = append(out, child.ChildrenRecursive()...)
	}
	return out
}

// SearchTree returns a NodeFilter to search the given Node's hierarchical tree.
func (node *Node) SearchTree() NodeFilter {
	return newNodeFilter(node)
}

// HierarchyAsString returns a string displaying the hierarchy of this Node, and all recursive children.
// This is a useful function to debug the layout of a node tree, for example.
// All Nodes except for the top-level Node will show their type by means of a prefix ("GRP" for groups, for example).
// All Nodes listed in the hierarchy will also show their world positions, truncated to the first 2 decimals.
func (node *Node) HierarchyAsString() string {

	var printNode func(node *Node, level int) string

	printNode = func(node *Node, level int) string {

		prefix := ""

		if level == 0 {
			prefix = "ROOT"
		} else {

			nodeType := node.Type()

			if nodeType.Is(NodeTypeGroup) {
				prefix = "GRP"
			} else if nodeType.Is(NodeTypeJoint) {
				prefix = "JNT"
			} else if nodeType.Is(NodeTypeMesh) {
				prefix = "MESH"
			} else if nodeType.Is(NodeTypeCamera) {
				prefix = "CAM"
			} else if nodeType.Is(NodeTypeShape) {
				prefix = "SHAPE"
			} else {
				prefix = "XFORM"
			}

		}

		str := ""

		if node.parent != nil {
			str += strings.Repeat("    |", level) + "\n"
		}

		str += strings.Repeat("    |", level)

		if level > 0 {
			str += "-"
		}
		str += " [" + prefix + "] " + node.Name() + " : " + node.WorldPosition().String() + "\n"

		for _, child := range node.children {
			str += printNode(child, level+1)
		}

		return str
	}

	return printNode(node, 0)
}

// Get searches a node's hierarchy using a string to find a specified node. The path is in the format of names of nodes, separated by forward
// slashes ('/'), and is relative to the node you use to call Get. As an example of Get, if you had a foot parented to a leg, which was
// parented to a hip, that was finally parented to the root of the scene, it would be found at "Hip/Leg/Foot". Note also that you can use "../" to
// "go up one" in the hierarchy (so foot.Get("../") would return the Leg node).
func (node *Node) Get(path string) *Node {

	var search func(node *Node) *Node

	split := []string{}

	for _, s := range strings.Split(path, `/`) {
		if len(strings.TrimSpace(s)) > 0 {
			split = append(split, s)
		}
	}

	search = func(node *Node) *Node {

		if node == nil {
			return nil
		} else if len(split) == 0 {
			return node
		}

		if split[0] == ".." {
			split = split[1:]
			return search(node.Parent())
		}

		for _, child := range node.children {
			if child.Name() == split[0] {
				split = split[1:]
				return search(child)
			}
		}

		return nil

	}

	return search(node)

}

// Path returns a string indicating the hierarchical path to get this Node from the root. The path returned will be absolute, such that
// passing it to Get() called on the scene root node will return this node. The path returned will not contain the root node's name.
func (node *Node) Path() string {

	root := node.Root()

	if root == nil || root == node {
		return ""
	}

	parent := node.Parent()
	path := node.Name()

	for parent != nil && parent != root {
		path = parent.Name() + "/" + path
		parent = parent.Parent()
	}

	return path

}

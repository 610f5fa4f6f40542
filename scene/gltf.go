package scene

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
)

// gltfSource records where a Node came from in the document it was loaded from, so that skins and animations
// referring to it by index can be pointed at it again on save.
type gltfSource struct {
	index int
	node  *gltf.Node
}

// LoadGLTFFile loads a .gltf or .glb file from the filepath given. External buffers referenced by a .gltf file are
// resolved relative to its directory.
// LoadGLTFFile will return a Library, and an error if the process fails.
func LoadGLTFFile(path string) (*Library, error) {

	doc, err := gltf.Open(path)

	if err != nil {
		return nil, err
	}

	return loadGLTFDocument(doc)

}

// LoadGLTFData loads a .gltf or .glb file from the byte data given. Buffers must be embedded (a .glb's binary chunk,
// or base64 data URIs).
// LoadGLTFData will return a Library, and an error if the process fails.
func LoadGLTFData(data []byte) (*Library, error) {

	decoder := gltf.NewDecoder(bytes.NewReader(data))

	doc := gltf.NewDocument()

	err := decoder.Decode(doc)

	if err != nil {
		return nil, err
	}

	return loadGLTFDocument(doc)

}

func loadGLTFDocument(doc *gltf.Document) (*Library, error) {

	library := NewLibrary()
	library.document = doc

	joints := newSet[int]()
	for _, skin := range doc.Skins {
		for _, j := range skin.Joints {
			joints.Add(j)
		}
	}

	for sceneIndex, s := range doc.Scenes {

		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Scene%d", sceneIndex)
		}

		scene := library.AddScene(name)

		// Guards against malformed files where a node is its own ancestor.
		visiting := newSet[int]()

		var loadNode func(index int, parent *Node) error

		loadNode = func(index int, parent *Node) error {

			if index < 0 || index >= len(doc.Nodes) {
				return fmt.Errorf("scene %q: node index %d out of range", name, index)
			}

			if visiting.Contains(index) {
				return fmt.Errorf("scene %q: node %d is its own ancestor", name, index)
			}
			visiting.Add(index)
			defer delete(visiting, index)

			node := doc.Nodes[index]

			nodeName := node.Name
			if nodeName == "" {
				nodeName = fmt.Sprintf("Node%d", index)
			}
			nodeName = strings.ReplaceAll(nodeName, "/", "_")

			nodeType := NodeTypeTransform
			if joints.Contains(index) {
				nodeType = NodeTypeJoint
			}

			obj := newNode(scene.UniqueName(nodeName), nodeType)
			obj.source = &gltfSource{index: index, node: node}
			parent.addChildren(obj)

			if dataMap, isMap := node.Extras.(map[string]any); isMap {
				for tagName, data := range dataMap {
					obj.props.Set(tagName, data)
				}
			}

			matrix := NewMatrix4FromFloats(node.Matrix)

			if !matrix.IsIdentity() && !matrix.IsZero() {

				position, scale, rotation := matrix.Decompose()

				obj.SetLocalPosition(position)
				obj.SetLocalScale(scale)
				obj.SetLocalRotation(rotation)

			} else {

				obj.SetLocalPosition(NewVectorFromArray(node.Translation))
				obj.SetLocalScale(NewVectorFromArray(node.Scale))
				obj.SetLocalRotation(NewQuaternionFromArray(node.Rotation).ToMatrix4())

			}

			if node.Mesh != nil {
				shape := newNode(scene.UniqueName(obj.name+"Shape"), NodeTypeMesh)
				shape.shapeIndex = *node.Mesh
				obj.addChildren(shape)
			}

			if node.Camera != nil {
				shape := newNode(scene.UniqueName(obj.name+"CameraShape"), NodeTypeCamera)
				shape.shapeIndex = *node.Camera
				obj.addChildren(shape)
			}

			for _, child := range node.Children {
				if err := loadNode(child, obj); err != nil {
					return err
				}
			}

			return nil

		}

		for _, n := range s.Nodes {
			if err := loadNode(n, scene.Root); err != nil {
				return nil, err
			}
		}

	}

	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(library.Scenes) {
		library.ExportedScene = library.Scenes[*doc.Scene]
	} else if len(library.Scenes) > 0 {
		library.ExportedScene = library.Scenes[0]
	}

	return library, nil

}

// SaveFile writes the Library out to the filepath given. Files ending in ".glb" are written as binary glTF;
// anything else is written as a .gltf JSON file with its buffers embedded.
func (lib *Library) SaveFile(path string) error {

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	binary := strings.EqualFold(filepath.Ext(path), ".glb")

	if err := lib.Save(f, binary); err != nil {
		f.Close()
		return err
	}

	return f.Close()

}

// Save writes the Library's scenes out as a glTF document. Node hierarchies, names, local transforms and properties
// (as extras) come from the Library's scenes; everything else (meshes, materials, buffers, and so on) is carried over
// from the document the Library was loaded from. Skins and animations are pointed at their nodes' new indices.
func (lib *Library) Save(w io.Writer, binary bool) error {

	doc, err := lib.toDocument()
	if err != nil {
		return err
	}

	for i, buf := range doc.Buffers {
		if binary && i == 0 {
			if !buf.IsEmbeddedResource() {
				buf.URI = ""
			}
			continue
		}
		if len(buf.Data) > 0 && !buf.IsEmbeddedResource() {
			buf.EmbeddedResource()
		}
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = binary
	if !binary {
		encoder.SetJSONIndent("", "  ")
	}

	return encoder.Encode(doc)

}

func (lib *Library) toDocument() (*gltf.Document, error) {

	doc := gltf.NewDocument()
	if lib.document != nil {
		copied := *lib.document
		doc = &copied
	}

	doc.Nodes = nil
	doc.Scenes = nil
	doc.Scene = nil

	// Save rewrites buffer URIs, so the Library's own document must not share them.
	buffers := make([]*gltf.Buffer, 0, len(doc.Buffers))
	for _, buf := range doc.Buffers {
		copied := *buf
		buffers = append(buffers, &copied)
	}
	doc.Buffers = buffers

	// Source node index -> written node index
	remap := map[int]int{}

	identity := NewMatrix4().ToFloats()

	var writeNode func(n *Node) int

	writeNode = func(n *Node) int {

		gn := &gltf.Node{
			Name:        n.name,
			Matrix:      identity,
			Translation: n.position.Array(),
			Rotation:    n.rotation.ToQuaternion().Array(),
			Scale:       n.scale.Array(),
		}

		if n.source != nil {
			gn.Skin = n.source.node.Skin
			gn.Weights = n.source.node.Weights
			gn.Extensions = n.source.node.Extensions
		}

		if n.props.Len() > 0 {
			extras := make(map[string]any, n.props.Len())
			for _, name := range n.props.Names() {
				extras[name], _ = n.props.Get(name)
			}
			gn.Extras = extras
		}

		index := len(doc.Nodes)
		doc.Nodes = append(doc.Nodes, gn)

		if n.source != nil {
			if _, exists := remap[n.source.index]; !exists {
				remap[n.source.index] = index
			}
		}

		for _, child := range n.children {

			if child.IsTransform() {
				gn.Children = append(gn.Children, writeNode(child))
				continue
			}

			// Shapes made in code don't point at anything in the document, and so can't be written.
			if child.shapeIndex < 0 {
				continue
			}

			switch {
			case child.nodeType.Is(NodeTypeMesh) && gn.Mesh == nil:
				gn.Mesh = gltf.Index(child.shapeIndex)
			case child.nodeType.Is(NodeTypeCamera) && gn.Camera == nil:
				gn.Camera = gltf.Index(child.shapeIndex)
			}

		}

		return index

	}

	for i, scene := range lib.Scenes {

		gs := &gltf.Scene{Name: scene.Name}

		for _, top := range scene.Root.children {
			if top.IsTransform() {
				gs.Nodes = append(gs.Nodes, writeNode(top))
			}
		}

		doc.Scenes = append(doc.Scenes, gs)

		if scene == lib.ExportedScene {
			doc.Scene = gltf.Index(i)
		}

	}

	if doc.Scene == nil && len(doc.Scenes) > 0 {
		doc.Scene = gltf.Index(0)
	}

	skins := make([]*gltf.Skin, 0, len(doc.Skins))

	for _, skin := range doc.Skins {

		copied := *skin
		copied.Joints = make([]int, len(skin.Joints))

		for i, j := range skin.Joints {
			newIndex, exists := remap[j]
			if !exists {
				return nil, fmt.Errorf("skin %q refers to a joint that is no longer in any scene", skin.Name)
			}
			copied.Joints[i] = newIndex
		}

		if skin.Skeleton != nil {
			if newIndex, exists := remap[*skin.Skeleton]; exists {
				copied.Skeleton = gltf.Index(newIndex)
			} else {
				copied.Skeleton = nil
			}
		}

		skins = append(skins, &copied)

	}

	doc.Skins = skins

	animations := make([]*gltf.Animation, 0, len(doc.Animations))

	for _, anim := range doc.Animations {

		copied := *anim
		copied.Channels = nil

		for _, channel := range anim.Channels {

			c := *channel

			if channel.Target.Node != nil {
				newIndex, exists := remap[*channel.Target.Node]
				if !exists {
					// The animated node was deleted; its channel goes with it.
					continue
				}
				c.Target.Node = gltf.Index(newIndex)
			}

			copied.Channels = append(copied.Channels, &c)

		}

		animations = append(animations, &copied)

	}

	doc.Animations = animations

	return doc, nil

}

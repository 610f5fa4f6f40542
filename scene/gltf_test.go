package scene

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/solarlune/regroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDocument builds a small document: a rig with a skinned body mesh and a camera, spread over two scenes.
func testDocument() *gltf.Document {

	trs := func(name string, translation [3]float64) *gltf.Node {
		return &gltf.Node{
			Name:        name,
			Matrix:      NewMatrix4().ToFloats(),
			Translation: translation,
			Rotation:    [4]float64{0, 0, 0, 1},
			Scale:       [3]float64{1, 1, 1},
		}
	}

	rig := trs("Rig", [3]float64{0, 1, 0})
	rig.Children = []int{1, 2}
	rig.Extras = map[string]any{"kind": "character"}

	bone := trs("Bone", [3]float64{0, 2, 0})

	body := trs("Body", [3]float64{})
	body.Mesh = gltf.Index(0)
	body.Skin = gltf.Index(0)

	camera := &gltf.Node{
		Name:        "Camera",
		Matrix:      NewMatrix4Compose(NewVector(1, 2, 3), NewVector(2, 2, 2), NewMatrix4()).ToFloats(),
		Translation: [3]float64{},
		Rotation:    [4]float64{0, 0, 0, 1},
		Scale:       [3]float64{1, 1, 1},
		Camera:      gltf.Index(0),
	}

	// Shares a name with the rig, and sits in the second scene.
	duplicate := trs("Rig", [3]float64{4, 0, 0})

	return &gltf.Document{
		Asset:   gltf.Asset{Version: "2.0"},
		Nodes:   []*gltf.Node{rig, bone, body, camera, duplicate},
		Meshes:  []*gltf.Mesh{{Name: "BodyMesh"}},
		Cameras: []*gltf.Camera{{Name: "Lens", Perspective: &gltf.Perspective{Yfov: 0.8, Znear: 0.1}}},
		Skins:   []*gltf.Skin{{Name: "Skin", Joints: []int{1}}},
		Scenes: []*gltf.Scene{
			{Name: "Main", Nodes: []int{0, 3}},
			{Name: "Extra", Nodes: []int{4}},
		},
		Scene: gltf.Index(0),
	}

}

func encode(t *testing.T, doc *gltf.Document, binary bool) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	encoder := gltf.NewEncoder(buf)
	encoder.AsBinary = binary
	require.NoError(t, encoder.Encode(doc))
	return buf.Bytes()
}

func TestLoadGLTFData(t *testing.T) {

	library, err := LoadGLTFData(encode(t, testDocument(), false))
	require.NoError(t, err)

	require.Len(t, library.Scenes, 2)
	main := library.FindScene("Main")
	require.NotNil(t, main)
	assert.Equal(t, main, library.ExportedScene)
	assert.Equal(t, library, main.Library())

	rig := main.Node("Rig")
	require.NotNil(t, rig)
	assert.Equal(t, NodeTypeTransform, rig.Type())
	kind, ok := rig.Properties().Get("kind")
	assert.True(t, ok)
	assert.Equal(t, "character", kind)

	bone := main.Node("Bone")
	require.NotNil(t, bone)
	assert.Equal(t, NodeTypeJoint, bone.Type())
	assert.Equal(t, rig, bone.Parent())
	assert.True(t, bone.WorldPosition().Equals(NewVector(0, 3, 0)), "got %s", bone.WorldPosition())

	bodyShape := main.Node("BodyShape")
	require.NotNil(t, bodyShape)
	assert.Equal(t, NodeTypeMesh, bodyShape.Type())
	assert.Equal(t, "Body", bodyShape.Parent().Name())

	camera := main.Node("Camera")
	require.NotNil(t, camera)
	assert.True(t, camera.LocalPosition().Equals(NewVector(1, 2, 3)), "got %s", camera.LocalPosition())
	assert.True(t, camera.LocalScale().Equals(NewVector(2, 2, 2)), "got %s", camera.LocalScale())
	assert.Equal(t, NodeTypeCamera, main.Node("CameraCameraShape").Type())

	extra := library.FindScene("Extra")
	require.NotNil(t, extra)
	assert.NotNil(t, extra.Node("Rig"))
	assert.Equal(t, rig, library.FindNode("Rig"))
	assert.Nil(t, library.FindNode("Leg"))

}

func TestLoadGLTFDuplicateNames(t *testing.T) {

	doc := testDocument()
	doc.Nodes[3].Name = "Rig"

	library, err := LoadGLTFData(encode(t, doc, false))
	require.NoError(t, err)

	main := library.ExportedScene
	assert.Equal(t, []string{"Rig", "Rig1"}, names(main.Root.Children()))

}

func TestLoadGLTFDataBadIndex(t *testing.T) {

	doc := testDocument()
	doc.Scenes[0].Nodes = []int{12}

	_, err := LoadGLTFData(encode(t, doc, false))
	assert.Error(t, err)

}

func TestSaveGLTFRoundTrip(t *testing.T) {

	for _, binary := range []bool{false, true} {

		library, err := LoadGLTFData(encode(t, testDocument(), binary))
		require.NoError(t, err)

		main := library.ExportedScene

		// Move the body up out of the rig, under a new group, so that node indices shift.
		group, err := main.CreateGroup("CTRL")
		require.NoError(t, err)
		group.SetLocalPosition(NewVector(0, 0, 5))
		require.NoError(t, main.Reparent(main.Node("Body"), group))
		require.NoError(t, main.Rename(main.Node("Body"), "Body_GRP"))

		buf := &bytes.Buffer{}
		require.NoError(t, library.Save(buf, binary))

		reloaded, err := LoadGLTFData(buf.Bytes())
		require.NoError(t, err)

		again := reloaded.ExportedScene
		require.NotNil(t, again)
		assert.Equal(t, "Main", again.Name)
		assert.Equal(t, []string{"Rig", "Camera", "CTRL"}, names(again.Root.Children()))

		body := again.Node("Body_GRP")
		require.NotNil(t, body)
		assert.Equal(t, "CTRL", body.Parent().Name())
		assert.True(t, body.WorldPosition().Equals(NewVector(0, 1, 0)), "got %s", body.WorldPosition())
		assert.Equal(t, NodeTypeMesh, again.Node("Body_GRPShape").Type())

		// The skin still points at the bone.
		assert.Equal(t, NodeTypeJoint, again.Node("Bone").Type())

		camera := again.Node("Camera")
		assert.True(t, camera.LocalScale().Equals(NewVector(2, 2, 2)), "got %s", camera.LocalScale())

		kind, _ := again.Node("Rig").Properties().Get("kind")
		assert.Equal(t, "character", kind)

		require.Len(t, reloaded.Scenes, 2)
		assert.NotNil(t, reloaded.Scenes[1].Node("Rig"))

	}

}

func TestSaveGLTFFile(t *testing.T) {

	library := NewLibrary()
	scene := library.AddScene("Built")
	library.ExportedScene = scene

	group, err := scene.CreateGroup("Group")
	require.NoError(t, err)
	group.SetLocalPosition(NewVector(1, 1, 1))
	leaf, err := scene.AddNode("Leaf", NodeTypeTransform, group)
	require.NoError(t, err)
	leaf.SetLocalRotation(NewMatrix4Rotate(0, 0, 1, 0.5))

	// Shapes that don't come from a file can't be written, and are dropped.
	_, err = scene.AddNode("LeafShape", NodeTypeMesh, leaf)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "built.glb")
	require.NoError(t, library.SaveFile(path))

	loaded, err := LoadGLTFFile(path)
	require.NoError(t, err)

	again := loaded.ExportedScene
	require.NotNil(t, again)
	assert.Nil(t, again.Node("LeafShape"))
	assert.True(t, again.Node("Leaf").LocalRotation().Equals(leaf.LocalRotation()))
	assert.True(t, again.Node("Leaf").WorldPosition().Equals(NewVector(1, 1, 1)))

}

func TestSaveGLTFMirroredGroups(t *testing.T) {

	library := NewLibrary()
	rig := library.AddScene("Rig")
	library.ExportedScene = rig

	root, err := rig.AddNode("Root", NodeTypeTransform, nil)
	require.NoError(t, err)
	leg, err := rig.AddNode("Leg", NodeTypeTransform, root)
	require.NoError(t, err)
	leg.SetLocalPosition(NewVector(1, 2, 3))
	leg.SetLocalScale(NewVector(-1, 1, 1))
	leg.SetLocalRotation(NewMatrix4Rotate(0, 1, 0, 0.3))

	world := leg.Transform()

	result, err := regroup.Insert(NewHost(rig), nil, regroup.Request{
		Nodes:  []regroup.NodeRef{"Leg"},
		Groups: []regroup.GroupSpec{{Name: "CTRL", ObjectPivot: true}},
	})
	require.NoError(t, err)
	require.Equal(t, []regroup.NodeRef{"Leg_GRP"}, result.Renamed)

	for _, binary := range []bool{false, true} {

		buf := &bytes.Buffer{}
		require.NoError(t, library.Save(buf, binary))

		reloaded, err := LoadGLTFData(buf.Bytes())
		require.NoError(t, err)

		again := reloaded.ExportedScene
		require.NotNil(t, again)

		for _, name := range []string{"CTRL", "Leg_GRP"} {
			node := again.Node(name)
			require.NotNil(t, node, name)
			assert.True(t, node.Transform().Equals(world), "%s (binary: %t):\n%s", name, binary, node.Transform())
		}

		assert.Equal(t, "CTRL", again.Node("Leg_GRP").Parent().Name())
		assert.Equal(t, "Root", again.Node("CTRL").Parent().Name())

	}

}

func TestSaveGLTFLeavesSourceBuffers(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "rig.gltf")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "rig.bin"), []byte{1, 2, 3, 4}, 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`{
		"asset": {"version": "2.0"},
		"buffers": [{"byteLength": 4, "uri": "rig.bin"}],
		"nodes": [{"name": "Leg"}],
		"scenes": [{"name": "Main", "nodes": [0]}],
		"scene": 0
	}`), 0o644))

	library, err := LoadGLTFFile(path)
	require.NoError(t, err)

	for _, binary := range []bool{false, true} {

		buf := &bytes.Buffer{}
		require.NoError(t, library.Save(buf, binary))

		require.Len(t, library.document.Buffers, 1)
		assert.Equal(t, "rig.bin", library.document.Buffers[0].URI, "binary: %t", binary)

		reloaded, err := LoadGLTFData(buf.Bytes())
		require.NoError(t, err)
		assert.NotNil(t, reloaded.ExportedScene.Node("Leg"))

	}

}

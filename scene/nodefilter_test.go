package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newFilterTestScene() *Scene {

	scene := NewScene("Test")

	body, _ := scene.AddNode("Body", NodeTypeTransform, nil)
	_, _ = scene.AddNode("BodyShape", NodeTypeMesh, body)
	armL, _ := scene.AddNode("Arm.L", NodeTypeJoint, body)
	_, _ = scene.AddNode("Arm.R", NodeTypeJoint, body)
	_, _ = scene.AddNode("Hand.L", NodeTypeJoint, armL)
	_, _ = scene.CreateGroup("Lights")
	_, _ = scene.AddNode("Camera", NodeTypeTransform, nil)
	camera := scene.Node("Camera")
	_, _ = scene.AddNode("CameraShape", NodeTypeCamera, camera)
	camera.Properties().Set("main", true)

	return scene

}

func names(nodes []*Node) []string {
	out := []string{}
	for _, n := range nodes {
		out = append(out, n.Name())
	}
	return out
}

func TestNodeFilter(t *testing.T) {

	scene := newFilterTestScene()
	root := scene.Root

	t.Run("by name", func(t *testing.T) {
		assert.Equal(t, "Arm.R", root.SearchTree().ByName("Arm.R").First().Name())
		assert.Nil(t, root.SearchTree().ByName("Leg").First())
		assert.True(t, root.SearchTree().ByName("Leg").IsEmpty())
	})

	t.Run("by type", func(t *testing.T) {
		assert.Equal(t, []string{"Arm.L", "Hand.L", "Arm.R"}, names(root.SearchTree().ByType(NodeTypeJoint).Nodes()))
		assert.Equal(t, []string{"BodyShape", "CameraShape"}, names(root.SearchTree().ByType(NodeTypeShape).Nodes()))
		assert.Equal(t, 6, root.SearchTree().ByType(NodeTypeTransform).Count())
	})

	t.Run("by regex", func(t *testing.T) {
		assert.Equal(t, []string{"Arm.L", "Hand.L"}, names(root.SearchTree().ByRegex(`\.L$`).Nodes()))
		assert.Equal(t, 0, root.SearchTree().ByRegex(`(`).Count())
	})

	t.Run("by func", func(t *testing.T) {
		armL := scene.Node("Arm.L")
		found := root.SearchTree().ByFunc(func(node *Node) bool { return node.Parent() == armL }).Nodes()
		assert.Equal(t, []string{"Hand.L"}, names(found))
	})

	t.Run("by prop", func(t *testing.T) {
		assert.Equal(t, []string{"Camera"}, names(root.SearchTree().ByProp("main", true).Nodes()))
	})

	t.Run("max depth", func(t *testing.T) {
		assert.Equal(t, []string{"Body", "Lights", "Camera"}, names(root.SearchTree().SetMaxDepth(1).Nodes()))
		assert.Equal(t, []string{"BodyShape", "Arm.L", "Arm.R"}, names(scene.Node("Body").SearchTree().SetMaxDepth(1).Nodes()))
	})

	t.Run("stop on filtered", func(t *testing.T) {
		// Hand.L is a joint, but it sits under Arm.L, which doesn't pass.
		found := root.SearchTree().ByRegex(`^(Body|Arm\.R|Hand\.L)$`).StopOnFiltered().Nodes()
		assert.Equal(t, []string{"Body", "Arm.R"}, names(found))
	})

	t.Run("not", func(t *testing.T) {
		body := scene.Node("Body")
		assert.False(t, root.SearchTree().Not(body).Contains(body))
		assert.True(t, root.SearchTree().Contains(body))
	})

	t.Run("for each stops early", func(t *testing.T) {
		count := 0
		root.SearchTree().ForEach(func(node *Node) bool {
			count++
			return count < 3
		})
		assert.Equal(t, 3, count)
	})

}

package scene

import (
	"math"
	"testing"

	"github.com/solarlune/regroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost(t *testing.T) {

	scene := NewScene("Test")
	host := NewHost(scene)

	root, _ := scene.AddNode("Root", NodeTypeTransform, nil)
	leg, _ := scene.AddNode("Leg", NodeTypeTransform, root)
	leg.SetLocalPosition(NewVector(1, 2, 3))
	_, _ = scene.AddNode("LegShape", NodeTypeMesh, leg)
	_, _ = scene.AddNode("Foot", NodeTypeJoint, leg)

	t.Run("exists", func(t *testing.T) {
		exists, err := host.Exists("Leg")
		require.NoError(t, err)
		assert.True(t, exists)
		exists, err = host.Exists("Arm")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("parent", func(t *testing.T) {
		parent, ok, err := host.Parent("Leg")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, regroup.NodeRef("Root"), parent)

		_, ok, err = host.Parent("Root")
		require.NoError(t, err)
		assert.False(t, ok)

		_, _, err = host.Parent("Arm")
		assert.ErrorIs(t, err, ErrNotInScene)
	})

	t.Run("children", func(t *testing.T) {
		children, err := host.Children("Leg", regroup.NodeTypeTransform)
		require.NoError(t, err)
		assert.Equal(t, []regroup.NodeRef{"Foot"}, children)
	})

	t.Run("find by name", func(t *testing.T) {
		found, err := host.FindByName("Foot")
		require.NoError(t, err)
		assert.Equal(t, []regroup.NodeRef{"Foot"}, found)
		found, err = host.FindByName("Hand")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("transforms", func(t *testing.T) {
		group, err := host.CreateEmpty("CTRL")
		require.NoError(t, err)
		assert.Equal(t, regroup.NodeRef("CTRL"), group)
		assert.Equal(t, NodeTypeGroup, scene.Node("CTRL").Type())

		require.NoError(t, host.MatchWorldTransform(group, "Leg"))
		assert.True(t, scene.Node("CTRL").Transform().Equals(leg.Transform()))

		require.NoError(t, host.SetWorldTransform(group, regroup.Transform{
			Translation: [3]float64{0, 0, 4},
			Rotation:    [3]float64{0, math.Pi / 2, 0},
			Scale:       [3]float64{1, 1, 1},
		}))
		got := TransformFromMatrix(scene.Node("CTRL").Transform())
		assert.InDeltaSlice(t, []float64{0, 0, 4}, got.Translation[:], 1e-9)
		assert.InDeltaSlice(t, []float64{0, math.Pi / 2, 0}, got.Rotation[:], 1e-6)

		require.NoError(t, host.SetWorldTransform(group, regroup.IdentityTransform()))
		assert.True(t, scene.Node("CTRL").Transform().IsIdentity())
	})

	t.Run("reparent and rename", func(t *testing.T) {
		require.NoError(t, host.Reparent("Leg", "CTRL"))
		assert.Equal(t, "CTRL", leg.Parent().Name())
		assert.True(t, leg.WorldPosition().Equals(NewVector(1, 2, 3)))

		require.NoError(t, host.Reparent("CTRL", ""))
		assert.Equal(t, scene.Root, scene.Node("CTRL").Parent())

		renamed, err := host.Rename("Leg", "Leg_GRP")
		require.NoError(t, err)
		assert.Equal(t, regroup.NodeRef("Leg_GRP"), renamed)

		_, err = host.Rename("Leg_GRP", "Foot")
		assert.ErrorIs(t, err, ErrNameTaken)
	})

	t.Run("selection", func(t *testing.T) {
		require.NoError(t, scene.Select(scene.Node("LegShape"), scene.Node("Foot")))
		selected, err := host.Selected(regroup.NodeTypeTransform)
		require.NoError(t, err)
		assert.Equal(t, []regroup.NodeRef{"Foot"}, selected)

		require.NoError(t, host.Select("Leg_GRP", "Root"))
		assert.Equal(t, []*Node{leg, root}, scene.Selected())
	})

	t.Run("undo transactions", func(t *testing.T) {
		require.NoError(t, host.BeginUndoTransaction("Insert Groups"))
		_, err := host.CreateEmpty("Extra")
		require.NoError(t, err)
		require.NoError(t, host.EndUndoTransaction())
		history := scene.History()
		require.NotEmpty(t, history)
		assert.Equal(t, "Insert Groups", history[len(history)-1].Label)
	})

	t.Run("closed", func(t *testing.T) {
		require.NoError(t, host.BeginUndoTransaction("Closing"))
		host.Close()
		_, err := host.Exists("Leg_GRP")
		assert.ErrorIs(t, err, regroup.ErrHostUnavailable)
		_, err = host.CreateEmpty("Late")
		assert.ErrorIs(t, err, regroup.ErrHostUnavailable)
		assert.ErrorIs(t, host.Reparent("Leg_GRP", "Root"), regroup.ErrHostUnavailable)
		assert.NoError(t, host.EndUndoTransaction())
		assert.False(t, scene.InTransaction())
	})

}

package regroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupNames(t *testing.T) {

	tests := []struct {
		name      string
		node      NodeRef
		parent    NodeRef
		hasParent bool
		mode      NamingMode
		style     NamingStyle
		spec      string
		want      string
	}{
		{"custom ignores base", "Hand", "Arm", true, CustomName, Suffix, "CTRL", "CTRL"},
		{"upper prefix", "Hand", "Arm", true, UpperGroupName, Prefix, "CTRL", "CTRL_Arm"},
		{"upper suffix", "Hand", "Arm", true, UpperGroupName, Suffix, "CTRL", "Arm_CTRL"},
		{"upper without parent", "Hand", "", false, UpperGroupName, Prefix, "CTRL", "CTRL_Hand"},
		{"lower prefix", "Hand", "Arm", true, LowerGroupName, Prefix, "OFF", "OFF_Hand"},
		{"lower suffix", "Hand", "Arm", true, LowerGroupName, Suffix, "OFF", "Hand_OFF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := baseName(tt.node, tt.parent, tt.hasParent, tt.mode)
			assert.Equal(t, tt.want, groupName(GroupSpec{Name: tt.spec}, base, tt.mode, tt.style))
		})
	}

}

func TestNamingText(t *testing.T) {

	var mode NamingMode
	assert.NoError(t, mode.UnmarshalText([]byte("Upper")))
	assert.Equal(t, UpperGroupName, mode)
	assert.Error(t, mode.UnmarshalText([]byte("sideways")))
	assert.Equal(t, "lower", LowerGroupName.String())

	var style NamingStyle
	assert.NoError(t, style.UnmarshalText([]byte("suffix")))
	assert.Equal(t, Suffix, style)
	assert.Error(t, style.UnmarshalText([]byte("infix")))

	text, err := Prefix.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "prefix", string(text))

}

func TestRequestNormalisation(t *testing.T) {

	req := Request{
		Nodes:  []NodeRef{"A", "B", "A"},
		Groups: []GroupSpec{{Name: "  CTRL "}, {Name: ""}, {Name: "\t"}, {Name: "OFF", ObjectPivot: true}},
	}

	assert.Equal(t, []NodeRef{"A", "B"}, req.nodes())
	assert.Equal(t, []GroupSpec{{Name: "CTRL"}, {Name: "OFF", ObjectPivot: true}}, req.groupSpecs())

	// The request itself is left alone.
	assert.Equal(t, "  CTRL ", req.Groups[0].Name)

}

// Package panel is the view model behind a group insertion panel: the list of nodes to process, the rows of
// groups to insert, and the naming options. A UI binds its widgets to a Panel and calls Submit on its main
// button; the Panel turns its state into a regroup.Request.
package panel

import (
	"fmt"

	"github.com/solarlune/regroup"
)

// Panel holds the state of a group insertion panel. The zero value isn't usable; create Panels with New.
type Panel struct {
	feedback  regroup.Feedback
	selection []regroup.NodeRef
	rows      []regroup.GroupSpec
	naming    regroup.NamingMode
	style     regroup.NamingStyle
}

// New creates a Panel with an empty selection list and a single empty group row. Warnings go to the Feedback given
// (which may be nil, to discard them).
func New(feedback regroup.Feedback) *Panel {
	if feedback == nil {
		feedback = regroup.NewZapFeedback(nil)
	}
	p := &Panel{
		feedback: feedback,
		naming:   regroup.CustomName,
		style:    regroup.Prefix,
	}
	p.AddGroupRow()
	return p
}

// Selection returns the nodes in the selection list, in the order they were added.
func (p *Panel) Selection() []regroup.NodeRef {
	return append([]regroup.NodeRef(nil), p.selection...)
}

// Add appends the nodes given to the selection list, ignoring any already in it. It returns how many were added.
func (p *Panel) Add(refs ...regroup.NodeRef) int {
	added := 0
	for _, ref := range refs {
		if ref == "" || p.contains(ref) {
			continue
		}
		p.selection = append(p.selection, ref)
		added++
	}
	return added
}

// AddSelected adds the transform nodes selected in the host to the selection list.
func (p *Panel) AddSelected(host regroup.Selector) (int, error) {

	selected, err := host.Selected(regroup.NodeTypeTransform)
	if err != nil {
		return 0, err
	}

	if len(selected) == 0 {
		p.feedback.Warn("No transform objects selected.")
		return 0, nil
	}

	return p.Add(selected...), nil

}

// Remove removes the nodes given from the selection list.
func (p *Panel) Remove(refs ...regroup.NodeRef) {

	if len(refs) == 0 {
		p.feedback.Warn("No objects selected in the list.")
		return
	}

	for _, ref := range refs {
		for i, s := range p.selection {
			if s == ref {
				p.selection = append(p.selection[:i], p.selection[i+1:]...)
				break
			}
		}
	}

}

// Clear empties the selection list.
func (p *Panel) Clear() {
	p.selection = nil
}

// Highlight selects the nodes given in the host, as when they're picked in the selection list.
func (p *Panel) Highlight(host regroup.Selector, refs ...regroup.NodeRef) error {
	if len(refs) == 0 {
		return nil
	}
	return host.Select(refs...)
}

func (p *Panel) contains(ref regroup.NodeRef) bool {
	for _, s := range p.selection {
		if s == ref {
			return true
		}
	}
	return false
}

// Rows returns the group rows, innermost group first.
func (p *Panel) Rows() []regroup.GroupSpec {
	return append([]regroup.GroupSpec(nil), p.rows...)
}

// AddGroupRow appends an empty group row, with the object pivot option on. It returns the new row's index.
func (p *Panel) AddGroupRow() int {
	p.rows = append(p.rows, regroup.GroupSpec{ObjectPivot: true})
	return len(p.rows) - 1
}

// RemoveGroupRow removes the group row at the index given.
func (p *Panel) RemoveGroupRow(index int) error {
	if err := p.checkRow(index); err != nil {
		return err
	}
	p.rows = append(p.rows[:index], p.rows[index+1:]...)
	return nil
}

// SetGroupRow sets the name and pivot option of the group row at the index given.
func (p *Panel) SetGroupRow(index int, name string, objectPivot bool) error {
	if err := p.checkRow(index); err != nil {
		return err
	}
	p.rows[index] = regroup.GroupSpec{Name: name, ObjectPivot: objectPivot}
	return nil
}

func (p *Panel) checkRow(index int) error {
	if index < 0 || index >= len(p.rows) {
		return fmt.Errorf("group row %d out of range [0, %d)", index, len(p.rows))
	}
	return nil
}

// Naming returns the selected naming mode.
func (p *Panel) Naming() regroup.NamingMode {
	return p.naming
}

// SetNaming selects the naming mode.
func (p *Panel) SetNaming(mode regroup.NamingMode) {
	p.naming = mode
}

// Style returns the selected naming style.
func (p *Panel) Style() regroup.NamingStyle {
	return p.style
}

// SetStyle selects the naming style.
func (p *Panel) SetStyle(style regroup.NamingStyle) {
	p.style = style
}

// Request returns a snapshot of the Panel's state as a regroup.Request.
func (p *Panel) Request() regroup.Request {
	return regroup.Request{
		Nodes:  p.Selection(),
		Groups: p.Rows(),
		Naming: p.naming,
		Style:  p.style,
	}
}

// Submit runs an insertion with the Panel's current state. Nodes the insertion found no longer exist are dropped
// from the selection list.
func (p *Panel) Submit(inserter *regroup.Inserter) (*regroup.Result, error) {

	result, err := inserter.Insert(p.Request())

	if result != nil {
		for _, skipped := range result.Skipped {
			p.Remove(skipped)
		}
	}

	return result, err

}

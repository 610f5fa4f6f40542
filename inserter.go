package regroup

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Result is the outcome of an insertion.
type Result struct {
	// Renamed holds the new reference of every node that was processed successfully, in request order.
	Renamed []NodeRef
	// Created maps each renamed node to the groups created above it, innermost first.
	Created map[NodeRef][]NodeRef
	// Skipped holds the requested nodes that no longer existed.
	Skipped []NodeRef
	// Failed holds the nodes a Host operation failed for.
	Failed []*PerNodeInsertionError
}

// Inserter inserts groups into a Host's scene.
type Inserter struct {
	host         Host
	feedback     Feedback
	logger       *zap.Logger
	undoLabel    string
	renameSuffix string
}

// NewInserter creates an Inserter editing the Host given and reporting to the Feedback given (which may be nil).
func NewInserter(host Host, feedback Feedback, options ...Option) *Inserter {

	if feedback == nil {
		feedback = NewZapFeedback(nil)
	}

	ins := &Inserter{
		host:         host,
		feedback:     feedback,
		logger:       zap.NewNop(),
		undoLabel:    "Insert Groups",
		renameSuffix: "_GRP",
	}

	for _, opt := range options {
		opt(ins)
	}

	return ins

}

// Insert runs a single insertion with a default Inserter.
func Insert(host Host, feedback Feedback, req Request) (*Result, error) {
	return NewInserter(host, feedback).Insert(req)
}

// Insert wraps every node in the request in the request's chain of groups, within one undo transaction.
//
// If there's nothing to do (no nodes, none that exist, or no group names), Insert changes nothing and returns a
// *ValidationError, along with a Result listing the skipped nodes. A Host operation failing for one node is reported
// and recorded in Result.Failed, and the remaining nodes are still processed. If the Host becomes unusable, Insert
// stops and returns a *HostOperationFailure with the Result so far.
func (ins *Inserter) Insert(req Request) (*Result, error) {

	result := &Result{
		Created: map[NodeRef][]NodeRef{},
	}

	nodes, specs, err := ins.validate(req, result)
	if err != nil {
		return result, err
	}

	if err := ins.host.BeginUndoTransaction(ins.undoLabel); err != nil {
		return result, ins.abort("begin undo transaction", err)
	}

	err = ins.insertAll(nodes, specs, req, result)

	if endErr := ins.host.EndUndoTransaction(); endErr != nil && err == nil {
		err = ins.abort("end undo transaction", endErr)
	}

	if err != nil {
		return result, err
	}

	ins.feedback.Notify(fmt.Sprintf("Groups inserted successfully for %d object(s).", len(result.Renamed)))

	return result, nil

}

func (ins *Inserter) validate(req Request, result *Result) ([]NodeRef, []GroupSpec, error) {

	requested := req.nodes()

	if len(requested) == 0 {
		return nil, nil, ins.invalid("No objects selected for group insertion.")
	}

	nodes := make([]NodeRef, 0, len(requested))

	for _, n := range requested {
		exists, err := ins.host.Exists(n)
		if err != nil {
			return nil, nil, ins.abort("check object exists", err)
		}
		if !exists {
			ins.skip(n, result)
			continue
		}
		nodes = append(nodes, n)
	}

	if len(nodes) == 0 {
		return nil, nil, ins.invalid("No valid objects remaining.")
	}

	specs := req.groupSpecs()

	if len(specs) == 0 {
		return nil, nil, ins.invalid("No group names specified.")
	}

	return nodes, specs, nil

}

func (ins *Inserter) invalid(message string) error {
	ins.feedback.Warn(message)
	return &ValidationError{Message: message}
}

func (ins *Inserter) skip(node NodeRef, result *Result) {
	warning := &StaleReferenceWarning{Node: node}
	ins.feedback.Warn(warning.Error())
	result.Skipped = append(result.Skipped, node)
}

func (ins *Inserter) abort(op string, err error) error {
	failure := &HostOperationFailure{Op: op, Err: err}
	ins.feedback.Warn(failure.Error())
	ins.logger.Error("group insertion aborted", zap.String("op", op), zap.Error(err))
	return failure
}

func (ins *Inserter) insertAll(nodes []NodeRef, specs []GroupSpec, req Request, result *Result) error {

	for _, node := range nodes {

		// An earlier node's insertion may have renamed or removed this one.
		exists, err := ins.host.Exists(node)
		if err != nil {
			return ins.abort("check object exists", err)
		}
		if !exists {
			ins.skip(node, result)
			continue
		}

		renamed, created, err := ins.insertNode(node, specs, req.Naming, req.Style)

		if err != nil {

			var nodeErr *PerNodeInsertionError
			if !errors.As(err, &nodeErr) {
				nodeErr = &PerNodeInsertionError{Node: node, Op: "insert groups", Err: err}
			}

			if errors.Is(err, ErrHostUnavailable) {
				return ins.abort(nodeErr.Op, nodeErr.Err)
			}

			ins.feedback.Warn(nodeErr.Error())
			ins.logger.Debug("group insertion failed", zap.String("node", string(node)), zap.String("op", nodeErr.Op), zap.Error(nodeErr.Err))
			result.Failed = append(result.Failed, nodeErr)
			continue

		}

		result.Renamed = append(result.Renamed, renamed)
		result.Created[renamed] = created

	}

	if selector, ok := ins.host.(Selector); ok && len(result.Renamed) > 0 {
		if err := selector.Select(result.Renamed...); err != nil {
			if errors.Is(err, ErrHostUnavailable) {
				return ins.abort("select results", err)
			}
			ins.logger.Debug("could not select inserted groups", zap.Error(err))
		}
	}

	return nil

}

// insertNode wraps one node in the chain of groups. Anything done before a failing step is left in place.
func (ins *Inserter) insertNode(node NodeRef, specs []GroupSpec, mode NamingMode, style NamingStyle) (NodeRef, []NodeRef, error) {

	fail := func(op string, err error) (NodeRef, []NodeRef, error) {
		return "", nil, &PerNodeInsertionError{Node: node, Op: op, Err: err}
	}

	parent, hasParent, err := ins.host.Parent(node)
	if err != nil {
		return fail("get parent", err)
	}

	children, err := ins.host.Children(node, NodeTypeTransform)
	if err != nil {
		return fail("get children", err)
	}

	base := baseName(node, parent, hasParent, mode)

	created := make([]NodeRef, 0, len(specs))
	last := node

	for _, spec := range specs {

		name, err := ins.resolveName(groupName(spec, base, mode, style))
		if err != nil {
			return fail("find name", err)
		}

		group, err := ins.host.CreateEmpty(name)
		if err != nil {
			return fail("create group", err)
		}

		created = append(created, group)

		if spec.ObjectPivot {
			err = ins.host.MatchWorldTransform(group, node)
		} else {
			err = ins.host.SetWorldTransform(group, IdentityTransform())
		}
		if err != nil {
			return fail("set pivot", err)
		}

		if err := ins.host.Reparent(last, group); err != nil {
			return fail("reparent", err)
		}

		ins.logger.Debug("created group",
			zap.String("group", string(group)),
			zap.String("node", string(node)),
			zap.String("wraps", string(last)),
			zap.Bool("object_pivot", spec.ObjectPivot),
		)

		last = group

	}

	if hasParent {
		if err := ins.host.Reparent(last, parent); err != nil {
			return fail("reparent", err)
		}
	}

	for _, child := range children {
		if err := ins.host.Reparent(child, node); err != nil {
			return fail("reparent child", err)
		}
	}

	renamed, err := ins.host.Rename(node, string(node)+ins.renameSuffix)
	if err != nil {
		return fail("rename", err)
	}

	return renamed, created, nil

}

package regroup

import "go.uber.org/zap"

// Option configures an Inserter.
type Option func(*Inserter)

// WithLogger sets the logger the Inserter writes debug records to.
func WithLogger(logger *zap.Logger) Option {
	return func(ins *Inserter) {
		if logger != nil {
			ins.logger = logger
		}
	}
}

// WithUndoLabel sets the label of the undo transaction each insertion runs in.
func WithUndoLabel(label string) Option {
	return func(ins *Inserter) {
		ins.undoLabel = label
	}
}

// WithRenameSuffix sets the suffix appended to the name of every processed node (by default, "_GRP").
func WithRenameSuffix(suffix string) Option {
	return func(ins *Inserter) {
		ins.renameSuffix = suffix
	}
}

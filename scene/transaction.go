package scene

import "github.com/google/uuid"

// OpKind identifies the kind of edit recorded in a Transaction.
type OpKind string

const (
	OpCreate    OpKind = "create"
	OpRename    OpKind = "rename"
	OpReparent  OpKind = "reparent"
	OpTransform OpKind = "transform"
	OpDelete    OpKind = "delete"
)

// Op is a single recorded edit: what happened, to which Node (by its name at the time), and a short detail string.
type Op struct {
	Kind   OpKind
	Node   string
	Detail string
}

// Transaction groups the edits made between BeginTransaction and the matching EndTransaction, so a host can
// present (and revert) them as one step.
type Transaction struct {
	ID    uuid.UUID
	Label string
	Ops   []Op
}

// BeginTransaction opens a transaction with the given label. Transactions nest; edits made in nested transactions
// belong to the outermost one.
func (scene *Scene) BeginTransaction(label string) {
	if scene.txDepth == 0 {
		scene.current = &Transaction{ID: uuid.New(), Label: label}
	}
	scene.txDepth++
}

// EndTransaction closes the innermost open transaction. Closing the outermost transaction adds it to the Scene's
// history, unless nothing was edited while it was open.
func (scene *Scene) EndTransaction() error {

	if scene.txDepth == 0 {
		return ErrNoTransaction
	}

	scene.txDepth--

	if scene.txDepth == 0 {
		if len(scene.current.Ops) > 0 {
			scene.history = append(scene.history, scene.current)
		}
		scene.current = nil
	}

	return nil

}

// InTransaction returns true if a transaction is currently open.
func (scene *Scene) InTransaction() bool {
	return scene.txDepth > 0
}

// History returns the closed transactions, oldest first.
func (scene *Scene) History() []*Transaction {
	return append([]*Transaction(nil), scene.history...)
}

func (scene *Scene) record(kind OpKind, node *Node, detail string) {
	if scene.current == nil {
		return
	}
	scene.current.Ops = append(scene.current.Ops, Op{Kind: kind, Node: node.Name(), Detail: detail})
}

package scene

// TreeWatcher is a utility struct used to watch a tree for hierarchy changes underneath a specific node. This is useful when, for example,
// reporting which nodes an edit created or removed.
type TreeWatcher struct {
	rootNode     *Node
	elements     []*Node
	prevElements []*Node
	watchFilter  func(node *Node) bool
	// OnChange is run for every Node under the root that has been added to (added is true) or removed from (added is false)
	// the tree since the previous Update.
	OnChange func(node *Node, added bool)
}

// NewTreeWatcher creates a new TreeWatcher, a utility that watches the scene tree underneath the rootNode for changes.
// The current contents of the tree are taken as the starting point, so the first Update only reports later changes.
func NewTreeWatcher(rootNode *Node, onChange func(node *Node, added bool)) *TreeWatcher {
	treeWatcher := &TreeWatcher{
		rootNode: rootNode,
		OnChange: onChange,
	}
	treeWatcher.prevElements = treeWatcher.collect()
	return treeWatcher
}

func (watch *TreeWatcher) collect() []*Node {

	elements := make([]*Node, 0, cap(watch.prevElements))

	if watch.rootNode != nil {
		watch.rootNode.SearchTree().ForEach(func(node *Node) bool {
			if watch.watchFilter == nil || watch.watchFilter(node) {
				elements = append(elements, node)
			}
			return true
		})
	}

	return elements

}

// Update compares the tree against its contents at the previous Update, calling OnChange for each
// added Node (in tree order) and then for each removed Node.
func (watch *TreeWatcher) Update() {

	watch.elements = watch.collect()

	previous := newSet[*Node]()
	for _, p := range watch.prevElements {
		previous.Add(p)
	}

	current := newSet[*Node]()
	for _, e := range watch.elements {
		current.Add(e)
	}

	if watch.OnChange != nil {

		for _, e := range watch.elements {
			if !previous.Contains(e) {
				watch.OnChange(e, true)
			}
		}

		for _, p := range watch.prevElements {
			if !current.Contains(p) {
				watch.OnChange(p, false)
			}
		}

	}

	watch.prevElements = watch.elements

}

// SetRoot sets the root Node to be watched for the TreeWatcher.
func (watch *TreeWatcher) SetRoot(rootNode *Node) {
	watch.rootNode = rootNode
	watch.prevElements = watch.collect()
}

// SetWatchFilter sets a function used to filter down which nodes to watch; it is called for each object in the scene tree,
// and the Node is watched if it returns true. A nil filter watches every Node. The tree is snapshotted again
// under the new filter, so the next Update only reports later changes.
func (watch *TreeWatcher) SetWatchFilter(filter func(node *Node) bool) {
	watch.watchFilter = filter
	watch.prevElements = watch.collect()
}
